package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/khrees2412/resumatch/pkg/models"
)

const (
	healthPath   = "/api/health"
	analyzePath  = "/api/analyze"
	parsePDFPath = "/api/parse-pdf"

	// aliveStatus is the health payload value that means the backend is ready
	aliveStatus = "alive"

	// Bodies are small JSON documents; cap reads to avoid runaway responses
	maxResponseBytes = 8 << 20
)

// Error is a non-2xx answer from the backend
type Error struct {
	StatusCode int
	Message    string // the backend's "error" field, or the raw body
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to the ResuMatch analysis backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a client for the backend at baseURL.
// A nil httpClient uses http.DefaultClient; a nil logger discards logs.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the backend root this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health reports whether the backend answered its health check with "alive"
func (c *Client) Health(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false, err
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &payload); err != nil {
		return false, err
	}
	return payload.Status == aliveStatus, nil
}

// Analyze submits a resume/job pair and returns the backend's result
func (c *Client) Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Data *models.AnalysisResult `json:"data"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("unexpected response format from %s: missing data", analyzePath)
	}
	if payload.Data.Missing == nil {
		payload.Data.Missing = []string{}
	}
	return payload.Data, nil
}

// ParsePDF uploads a PDF as multipart field "file" and returns the extracted text
func (c *Client) ParsePDF(ctx context.Context, fileName string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+parsePDFPath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var payload struct {
		Text *string `json:"text"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	if payload.Text == nil {
		return "", fmt.Errorf("unexpected response format from %s: missing text", parsePDFPath)
	}
	return *payload.Text, nil
}

// do sends req and decodes a 2xx JSON body into out
func (c *Client) do(req *http.Request, out any) error {
	c.logger.Debug("backend request", slog.String("method", req.Method), slog.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("backend response", slog.String("path", req.URL.Path), slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		c.logger.Warn("backend error", slog.String("path", req.URL.Path), slog.Any("error", apiErr))
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
