package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/khrees2412/resumatch/internal/scraper"
	"github.com/khrees2412/resumatch/internal/status"
	"github.com/khrees2412/resumatch/internal/upload"
	"github.com/khrees2412/resumatch/pkg/models"
)

// User-facing alert texts
const (
	AlertBlankInput   = "Please paste both your resume and the job description."
	AlertAnalyzeFail  = "Failed to connect to server. Check if backend is running."
	AlertNotPDF       = "Please upload a PDF file."
	AlertParseFail    = "Failed to parse PDF. Please copy-paste text manually."
	AlertJobFetchFail = "Failed to fetch the job posting. Please paste the description manually."
)

var (
	// ErrAlerted marks failures the user has already been shown an alert for
	ErrAlerted = errors.New("alerted")

	ErrBlankInput    = errors.New("resume and job description are both required")
	ErrServerOffline = errors.New("server is offline")
	ErrBusy          = errors.New("another request is still in progress")
)

// Backend is the part of the API client the page drives
type Backend interface {
	Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error)
	ParsePDF(ctx context.Context, fileName string, file io.Reader) (string, error)
}

// Store persists what the page shows between invocations
type Store interface {
	LoadDraft() (*models.Draft, error)
	SaveDraft(draft *models.Draft) error
	LoadResult() (*models.AnalysisResult, error)
	SaveResult(result *models.AnalysisResult) error
	CreateHistoryEntry(entry *models.HistoryEntry) error
}

// Alerter shows a blocking message to the user
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to Alerter
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Options wires a Page to its collaborators. Fetcher and Logger are optional.
type Options struct {
	Backend Backend
	Fetcher scraper.Fetcher
	Store   Store
	Monitor *status.Monitor
	Alerter Alerter
	Logger  *slog.Logger
}

// Page is the single view: two input fields, the server badge and the
// current result. It is driven from one goroutine.
type Page struct {
	backend Backend
	fetcher scraper.Fetcher
	store   Store
	monitor *status.Monitor
	alerter Alerter
	logger  *slog.Logger

	resume    string
	job       string
	result    *models.AnalysisResult
	loading   bool
	uploading bool
}

func New(opts Options) *Page {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Page{
		backend: opts.Backend,
		fetcher: opts.Fetcher,
		store:   opts.Store,
		monitor: opts.Monitor,
		alerter: opts.Alerter,
		logger:  logger,
	}
}

// Restore loads the persisted fields and result
func (p *Page) Restore() error {
	draft, err := p.store.LoadDraft()
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	result, err := p.store.LoadResult()
	if err != nil {
		return fmt.Errorf("load result: %w", err)
	}
	p.resume, p.job, p.result = draft.Resume, draft.Job, result
	return nil
}

// CheckServer runs the one startup health check
func (p *Page) CheckServer(ctx context.Context) status.Status {
	return p.monitor.Check(ctx)
}

func (p *Page) Status() status.Status { return p.monitor.Status() }

func (p *Page) Resume() string { return p.resume }

func (p *Page) Job() string { return p.job }

func (p *Page) Loading() bool { return p.loading }

func (p *Page) Uploading() bool { return p.uploading }

// Result is the current result, nil when none is shown
func (p *Page) Result() *models.AnalysisResult { return p.result }

// CanAnalyze reports whether the analyze control is enabled
func (p *Page) CanAnalyze() bool {
	return !p.loading &&
		p.Status() != status.Offline &&
		strings.TrimSpace(p.resume) != "" &&
		strings.TrimSpace(p.job) != ""
}

// SetResume replaces the resume field
func (p *Page) SetResume(text string) error {
	p.resume = text
	return p.saveDraft()
}

// SetJob replaces the job description field
func (p *Page) SetJob(text string) error {
	p.job = text
	return p.saveDraft()
}

func (p *Page) saveDraft() error {
	if err := p.store.SaveDraft(&models.Draft{Resume: p.resume, Job: p.job}); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Analyze submits both fields. The previous result is cleared first and is
// only replaced on success; loading is released on every path.
func (p *Page) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	if p.loading {
		return nil, ErrBusy
	}
	if strings.TrimSpace(p.resume) == "" || strings.TrimSpace(p.job) == "" {
		return nil, p.fail(AlertBlankInput, ErrBlankInput)
	}
	if p.Status() == status.Offline {
		return nil, ErrServerOffline
	}

	p.loading = true
	defer func() { p.loading = false }()

	p.setResult(nil)

	result, err := p.backend.Analyze(ctx, models.AnalysisRequest{Resume: p.resume, Job: p.job})
	if err != nil {
		p.logger.Error("analysis failed", slog.Any("error", err))
		return nil, p.fail(AlertAnalyzeFail, fmt.Errorf("analyze: %w", err))
	}

	p.setResult(result)
	entry := &models.HistoryEntry{
		Result:      *result,
		ResumeChars: len([]rune(p.resume)),
		JobChars:    len([]rune(p.job)),
	}
	if err := p.store.CreateHistoryEntry(entry); err != nil {
		p.logger.Warn("could not record analysis history", slog.Any("error", err))
	}
	p.logger.Info("analysis complete", slog.Float64("score", result.Score), slog.Int("missing", len(result.Missing)))
	return result, nil
}

func (p *Page) setResult(result *models.AnalysisResult) {
	p.result = result
	if err := p.store.SaveResult(result); err != nil {
		p.logger.Warn("could not persist current result", slog.Any("error", err))
	}
}

// UploadResume sends a local PDF to the backend parser and replaces the
// resume field with the extracted text. Non-PDF files never reach the
// backend, and a failed parse leaves the resume untouched.
func (p *Page) UploadResume(ctx context.Context, path string) (*upload.File, error) {
	if p.uploading {
		return nil, ErrBusy
	}

	file, err := upload.Inspect(path)
	if errors.Is(err, upload.ErrNotPDF) {
		return nil, p.fail(AlertNotPDF, err)
	}
	if err != nil {
		return nil, p.fail(fmt.Sprintf("Could not read %s.", path), err)
	}

	p.uploading = true
	defer func() { p.uploading = false }()

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, p.fail(fmt.Sprintf("Could not read %s.", path), err)
	}
	defer f.Close()

	text, err := p.backend.ParsePDF(ctx, file.Name, f)
	if err != nil {
		p.logger.Error("upload failed", slog.String("file", file.Name), slog.Any("error", err))
		return nil, p.fail(AlertParseFail, fmt.Errorf("parse pdf: %w", err))
	}

	if err := p.SetResume(text); err != nil {
		return nil, err
	}
	p.logger.Info("resume extracted", slog.String("file", file.Name), slog.Int("chars", len(text)))
	return file, nil
}

// ImportJob fetches a job posting and replaces the job field with its text
func (p *Page) ImportJob(ctx context.Context, url string) (*scraper.JobPosting, error) {
	if p.fetcher == nil {
		return nil, errors.New("job import is not configured")
	}

	posting, err := scraper.FetchJob(ctx, p.fetcher, url)
	if err != nil {
		p.logger.Error("job import failed", slog.String("url", url), slog.Any("error", err))
		return nil, p.fail(AlertJobFetchFail, err)
	}

	if err := p.SetJob(posting.Description); err != nil {
		return nil, err
	}
	return posting, nil
}

// fail shows message and returns cause marked as already alerted
func (p *Page) fail(message string, cause error) error {
	if p.alerter != nil {
		p.alerter.Alert(message)
	}
	return fmt.Errorf("%w: %w", ErrAlerted, cause)
}
