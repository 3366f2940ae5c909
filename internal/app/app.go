package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/khrees2412/resumatch/internal/api"
	"github.com/khrees2412/resumatch/internal/config"
	"github.com/khrees2412/resumatch/internal/database"
	"github.com/khrees2412/resumatch/internal/scraper"
	"github.com/khrees2412/resumatch/internal/session"
	"github.com/khrees2412/resumatch/internal/status"
	"github.com/khrees2412/resumatch/internal/theme"
)

// Options tune how the App is assembled from the command line
type Options struct {
	// APIURL overrides the configured backend URL when non-empty
	APIURL  string
	Verbose bool
	Alerter session.Alerter
}

// App is the dependency container for the CLI application
type App struct {
	Config     *config.Config
	Store      *database.Store
	HTTPClient *http.Client
	API        *api.Client
	Theme      *theme.Controller
	Page       *session.Page
	Logger     *slog.Logger

	logFile io.Closer
}

// NewApp initializes and returns a new App instance. The theme is read
// before it returns so that nothing renders in the wrong palette.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	// A missing .env is normal
	_ = godotenv.Load()

	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig
	if opts.APIURL != "" {
		cfg.APIURL = strings.TrimRight(opts.APIURL, "/")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg}
	a.Logger, a.logFile, err = newLogger(dir, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return nil, err
	}

	a.Store, err = database.Open(filepath.Join(dir, "resumatch.db"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a.Theme, err = theme.NewController(a.Store)
	if err != nil {
		a.Close()
		return nil, err
	}

	// A zero timeout leaves backend calls bounded only by the context
	a.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	a.API = api.NewClient(cfg.APIURL, a.HTTPClient, a.Logger)

	a.Page = session.New(session.Options{
		Backend: a.API,
		Fetcher: newFetcher(cfg, a.Logger),
		Store:   a.Store,
		Monitor: status.NewMonitor(a.API, a.Logger),
		Alerter: opts.Alerter,
		Logger:  a.Logger,
	})
	if err := a.Page.Restore(); err != nil {
		a.Close()
		return nil, err
	}

	a.Logger.Debug("app initialized", slog.String("api_url", cfg.APIURL), slog.String("dir", dir))
	return a, nil
}

// Close closes all resources
func (a *App) Close() error {
	var err error
	if a.Store != nil {
		err = a.Store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}

func newFetcher(cfg *config.Config, logger *slog.Logger) scraper.Fetcher {
	if cfg.JobFetchMode == config.FetchModeHTTP {
		return &scraper.HTTPFetcher{}
	}
	return &scraper.BrowserFetcher{Timeout: cfg.BrowserTimeout, Logger: logger}
}

// newLogger writes to resumatch.log in dir, or to stderr at debug level
// when verbose is set
func newLogger(dir, level string, verbose bool) (*slog.Logger, io.Closer, error) {
	if verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(h), nil, nil
	}

	f, err := os.OpenFile(filepath.Join(dir, "resumatch.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h), f, nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
