package render

import (
	"strings"
	"testing"

	"github.com/khrees2412/resumatch/internal/status"
	"github.com/khrees2412/resumatch/pkg/models"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		score    float64
		expected Band
	}{
		{100, BandHigh},
		{70, BandHigh},
		{69.99, BandPotential},
		{40, BandPotential},
		{39.9, BandLow},
		{0, BandLow},
	}

	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.expected {
			t.Errorf("BandFor(%v) = %v, expected %v", tt.score, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := map[float64]string{
		90:     "90.0%",
		80.04:  "80.0%",
		33.333: "33.3%",
		0:      "0.0%",
		62.25:  "62.3%",
		6.25:   "6.3%",
		0.25:   "0.3%",
		99.95:  "100.0%",
		0.15:   "0.1%",
		-2.25:  "-2.3%",
	}
	for in, want := range tests {
		if got := Percent(in); got != want {
			t.Errorf("Percent(%v) = %q, expected %q", in, got, want)
		}
	}
}

func TestResultHighMatchNothingMissing(t *testing.T) {
	out := Result(&models.AnalysisResult{
		Score:     85,
		Breakdown: models.Breakdown{Lexical: 90.0, Semantic: 80.0},
		Missing:   []string{},
	})

	for _, want := range []string{"85%", "High Match", "90.0%", "80.0%", NoneMissingMessage} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered result missing %q:\n%s", want, out)
		}
	}
}

func TestResultLowMatch(t *testing.T) {
	out := Result(&models.AnalysisResult{
		Score:     30,
		Breakdown: models.Breakdown{Lexical: 12.345, Semantic: 41.0},
		Missing:   []string{"kubernetes", "terraform"},
	})

	if !strings.Contains(out, "Low Match") {
		t.Errorf("expected low match badge:\n%s", out)
	}
	if strings.Contains(out, NoneMissingMessage) {
		t.Error("success message shown despite missing keywords")
	}
	k, tf := strings.Index(out, "kubernetes"), strings.Index(out, "terraform")
	if k < 0 || tf < 0 || k > tf {
		t.Errorf("missing keywords not rendered in order:\n%s", out)
	}
	if !strings.Contains(out, "12.3%") {
		t.Errorf("lexical not rounded to one decimal:\n%s", out)
	}
}

func TestResultPlaceholder(t *testing.T) {
	if out := Result(nil); !strings.Contains(out, EmptyResultMessage) {
		t.Errorf("Result(nil) = %q", out)
	}
}

func TestMissingKeywordsWraps(t *testing.T) {
	words := make([]string, 30)
	for i := range words {
		words[i] = "keyword"
	}
	out := MissingKeywords(words)
	if strings.Count(out, "keyword") != 30 {
		t.Errorf("expected 30 tags, got %d", strings.Count(out, "keyword"))
	}
	if !strings.Contains(out, "\n") {
		t.Error("long tag lists should wrap")
	}
}

func TestStatusBadge(t *testing.T) {
	if out := StatusBadge(status.Online); !strings.Contains(out, "Server: Online") {
		t.Errorf("online badge = %q", out)
	}
	if out := StatusBadge(status.Offline); !strings.Contains(out, "Server: Offline") {
		t.Errorf("offline badge = %q", out)
	}
	if out := StatusBadge(status.Checking); !strings.Contains(out, "Checking...") {
		t.Errorf("checking badge = %q", out)
	}
}
