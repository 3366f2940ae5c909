package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khrees2412/resumatch/pkg/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected bool
		wantErr  bool
	}{
		{name: "alive", status: 200, body: `{"status":"alive","message":"ResuMatch Backend Ready"}`, expected: true},
		{name: "other status value", status: 200, body: `{"status":"sleeping"}`, expected: false},
		{name: "missing field", status: 200, body: `{}`, expected: false},
		{name: "server error", status: 503, body: `unavailable`, wantErr: true},
		{name: "not json", status: 200, body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/health" || r.Method != http.MethodGet {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			alive, err := NewClient(srv.URL, srv.Client(), nil).Health(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Health() error = %v, wantErr %v", err, tt.wantErr)
			}
			if alive != tt.expected {
				t.Errorf("Health() = %v, expected %v", alive, tt.expected)
			}
		})
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if alive, err := NewClient(url, nil, nil).Health(context.Background()); err == nil || alive {
		t.Errorf("expected error for closed server, got alive=%v err=%v", alive, err)
	}
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req models.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Resume != "resume text" || req.Job != "job text" {
			t.Errorf("request = %+v", req)
		}
		io.WriteString(w, `{"status":"success","data":{"score":85,"missing":["docker"],"breakdown":{"lexical":90.0,"semantic":80.0}}}`)
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL+"/", srv.Client(), nil).Analyze(context.Background(),
		models.AnalysisRequest{Resume: "resume text", Job: "job text"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.Score != 85 || result.Breakdown.Lexical != 90 || result.Breakdown.Semantic != 80 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Missing) != 1 || result.Missing[0] != "docker" {
		t.Errorf("missing = %v", result.Missing)
	}
}

func TestAnalyzeBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Resume too long. Max 50,000 characters."}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).Analyze(context.Background(), models.AnalysisRequest{Resume: "r", Job: "j"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || !strings.Contains(apiErr.Message, "too long") {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestAnalyzeMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, srv.Client(), nil).Analyze(context.Background(), models.AnalysisRequest{}); err == nil {
		t.Error("expected error when data is absent")
	}
}

func TestParsePDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/parse-pdf" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "cv.pdf" || string(data) != "%PDF-1.4 fake" {
			t.Errorf("upload = %s %q", header.Filename, data)
		}
		io.WriteString(w, `{"status":"success","text":"Jane Doe Go Engineer"}`)
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL, srv.Client(), nil).ParsePDF(context.Background(), "cv.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("ParsePDF() error: %v", err)
	}
	if text != "Jane Doe Go Engineer" {
		t.Errorf("text = %q", text)
	}
}

func TestParsePDFServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"PDF parsing error: EOF"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).ParsePDF(context.Background(), "cv.pdf", strings.NewReader("x"))
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Fatalf("expected HTTP 500 *Error, got %v", err)
	}
}
