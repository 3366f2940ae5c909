package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/resumatch/pkg/models"
)

// createTestStore creates a temporary test database
func createTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

func TestPreferenceRoundTrip(t *testing.T) {
	store, _ := createTestStore(t)

	if _, ok, err := store.GetPreference("theme"); err != nil || ok {
		t.Fatalf("expected unset preference, got ok=%v err=%v", ok, err)
	}

	if err := store.SetPreference("theme", "dark"); err != nil {
		t.Fatalf("failed to set preference: %v", err)
	}
	if err := store.SetPreference("theme", "light"); err != nil {
		t.Fatalf("failed to overwrite preference: %v", err)
	}

	value, ok, err := store.GetPreference("theme")
	if err != nil || !ok {
		t.Fatalf("failed to get preference: ok=%v err=%v", ok, err)
	}
	if value != "light" {
		t.Errorf("theme = %q, expected last write %q", value, "light")
	}
}

// TestDraftSurvivesReopen tests that the input fields persist across processes
func TestDraftSurvivesReopen(t *testing.T) {
	store, dbPath := createTestStore(t)

	draft, err := store.LoadDraft()
	if err != nil {
		t.Fatalf("failed to load empty draft: %v", err)
	}
	if draft.Resume != "" || draft.Job != "" {
		t.Fatalf("expected empty draft, got %+v", draft)
	}

	draft.Resume = "Go developer, 5 years"
	draft.Job = "Senior Go engineer"
	if err := store.SaveDraft(draft); err != nil {
		t.Fatalf("failed to save draft: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadDraft()
	if err != nil {
		t.Fatalf("failed to load draft: %v", err)
	}
	if got.Resume != draft.Resume || got.Job != draft.Job {
		t.Errorf("draft = %+v, expected %+v", got, draft)
	}
}

func TestCurrentResult(t *testing.T) {
	store, _ := createTestStore(t)

	result, err := store.LoadResult()
	if err != nil || result != nil {
		t.Fatalf("expected no result, got %+v err=%v", result, err)
	}

	want := &models.AnalysisResult{
		Score:     72.5,
		Breakdown: models.Breakdown{Lexical: 61.25, Semantic: 80},
		Missing:   []string{"kubernetes", "terraform"},
	}
	if err := store.SaveResult(want); err != nil {
		t.Fatalf("failed to save result: %v", err)
	}

	got, err := store.LoadResult()
	if err != nil {
		t.Fatalf("failed to load result: %v", err)
	}
	if got.Score != want.Score || got.Breakdown != want.Breakdown || len(got.Missing) != 2 {
		t.Errorf("result = %+v, expected %+v", got, want)
	}

	if err := store.SaveResult(nil); err != nil {
		t.Fatalf("failed to clear result: %v", err)
	}
	if got, _ := store.LoadResult(); got != nil {
		t.Errorf("expected cleared result, got %+v", got)
	}
}

func TestHistoryOrderingAndLookup(t *testing.T) {
	store, _ := createTestStore(t)

	base := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	for i, score := range []float64{30, 55, 90} {
		entry := &models.HistoryEntry{
			Result:    models.AnalysisResult{Score: score},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.CreateHistoryEntry(entry); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
		if entry.ID == "" {
			t.Fatal("entry ID not set after creation")
		}
	}

	entries, err := store.ListHistory(2)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Result.Score != 90 || entries[1].Result.Score != 55 {
		t.Errorf("expected newest first, got %v then %v", entries[0].Result.Score, entries[1].Result.Score)
	}
	if entries[0].Result.Missing == nil {
		t.Error("missing keywords should decode to an empty list, not nil")
	}

	got, err := store.GetHistoryEntry(entries[0].ID[:8])
	if err != nil {
		t.Fatalf("failed to get by prefix: %v", err)
	}
	if got.ID != entries[0].ID {
		t.Errorf("prefix lookup returned %s, expected %s", got.ID, entries[0].ID)
	}

	if _, err := store.GetHistoryEntry("does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryClampsOutOfRangeScore(t *testing.T) {
	store, _ := createTestStore(t)

	tests := []struct {
		score    float64
		expected float64
	}{
		{140, 100},
		{-3, 0},
		{62.25, 62.25},
	}

	for _, tt := range tests {
		entry := &models.HistoryEntry{Result: models.AnalysisResult{Score: tt.score}}
		if err := store.CreateHistoryEntry(entry); err != nil {
			t.Fatalf("CreateHistoryEntry(score=%v) error: %v", tt.score, err)
		}
		got, err := store.GetHistoryEntry(entry.ID)
		if err != nil {
			t.Fatalf("GetHistoryEntry() error: %v", err)
		}
		if got.Result.Score != tt.expected {
			t.Errorf("stored score = %v, expected %v", got.Result.Score, tt.expected)
		}
	}
}
