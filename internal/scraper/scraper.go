package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultPageLoadTimeout = 30 * time.Second
	renderSettleDelay      = 2 * time.Second

	// Limit body size to 2MB to avoid huge downloads
	maxPageBytes = 2 << 20

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// ErrNoDescription is returned when a page has no readable posting text
var ErrNoDescription = errors.New("could not find a job description on the page")

// Fetcher returns the HTML of a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BrowserFetcher renders pages in headless Chrome so client-side job boards
// have their description in the DOM before it is read
type BrowserFetcher struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// createBrowserContext creates a new browser context with appropriate options
func (f *BrowserFetcher) createBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel2 := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		// Suppress unmarshal warnings from protocol drift
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		f.logger().Debug("chromedp", slog.String("msg", msg))
	}))

	return ctx, func() {
		cancel2()
		cancel()
	}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := f.createBrowserContext(ctx)
	defer cancel()

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultPageLoadTimeout
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(renderSettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Expand truncated descriptions where boards hide them
			showMoreSelectors := []string{
				`button[aria-label*="Show more"]`,
				`.show-more-less-html__button`,
			}
			for _, sel := range showMoreSelectors {
				var nodes int
				if err := chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, sel), &nodes).Do(ctx); err == nil && nodes > 0 {
					_ = chromedp.Click(sel, chromedp.ByQuery).Do(ctx)
				}
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}

func (f *BrowserFetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}

// HTTPFetcher downloads the raw HTML without running scripts
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultPageLoadTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch URL: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// JobPosting is the readable content of a job page
type JobPosting struct {
	URL         string
	Title       string
	Description string
}

// FetchJob downloads url with fetcher and extracts the posting text
func FetchJob(ctx context.Context, fetcher Fetcher, url string) (*JobPosting, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("invalid job URL %q: must start with http:// or https://", url)
	}

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	title, description, err := ExtractText(html)
	if err != nil {
		return nil, err
	}
	if description == "" {
		return nil, ErrNoDescription
	}

	return &JobPosting{URL: url, Title: title, Description: description}, nil
}
