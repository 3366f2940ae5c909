package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/resumatch/pkg/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// Preference operations

// GetPreference returns the stored value for key and whether it was set
func (s *Store) GetPreference(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) SetPreference(key, value string) error {
	query := `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`
	_, err := s.db.Exec(query, key, value, time.Now())
	return err
}

// Session operations

// LoadDraft returns the current resume and job fields
func (s *Store) LoadDraft() (*models.Draft, error) {
	draft := &models.Draft{}
	err := s.db.QueryRow(`SELECT resume, job, updated_at FROM session WHERE id=1`).
		Scan(&draft.Resume, &draft.Job, &draft.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *Store) SaveDraft(draft *models.Draft) error {
	draft.UpdatedAt = time.Now()
	_, err := s.db.Exec(`UPDATE session SET resume=?, job=?, updated_at=? WHERE id=1`,
		draft.Resume, draft.Job, draft.UpdatedAt)
	return err
}

// LoadResult returns the current result, or nil when none is shown
func (s *Store) LoadResult() (*models.AnalysisResult, error) {
	var raw sql.NullString
	if err := s.db.QueryRow(`SELECT result_json FROM session WHERE id=1`).Scan(&raw); err != nil {
		return nil, err
	}
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	result := &models.AnalysisResult{}
	if err := json.Unmarshal([]byte(raw.String), result); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	return result, nil
}

// SaveResult replaces the current result; nil clears it
func (s *Store) SaveResult(result *models.AnalysisResult) error {
	var raw sql.NullString
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		raw = sql.NullString{String: string(data), Valid: true}
	}
	_, err := s.db.Exec(`UPDATE session SET result_json=?, updated_at=? WHERE id=1`, raw, time.Now())
	return err
}

// History operations

func (s *Store) CreateHistoryEntry(entry *models.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	missing := entry.Result.Missing
	if missing == nil {
		missing = []string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return err
	}

	query := `INSERT INTO analyses (id, score, lexical, semantic, missing_json, resume_chars, job_chars, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.Exec(query, entry.ID, clampScore(entry.Result.Score), entry.Result.Breakdown.Lexical,
		entry.Result.Breakdown.Semantic, string(missingJSON), entry.ResumeChars, entry.JobChars, entry.CreatedAt)
	return err
}

// clampScore keeps out-of-range backend scores inside the column's 0-100 check
func clampScore(score float64) float64 {
	return min(max(score, 0), 100)
}

// ListHistory returns the most recent entries first; limit <= 0 returns all
func (s *Store) ListHistory(limit int) ([]*models.HistoryEntry, error) {
	query := `SELECT id, score, lexical, semantic, missing_json, resume_chars, job_chars, created_at
			  FROM analyses ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetHistoryEntry looks an entry up by full id or unique id prefix
func (s *Store) GetHistoryEntry(idOrPrefix string) (*models.HistoryEntry, error) {
	query := `SELECT id, score, lexical, semantic, missing_json, resume_chars, job_chars, created_at
			  FROM analyses WHERE id LIKE ? || '%' LIMIT 2`
	rows, err := s.db.Query(query, idOrPrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("id prefix %q is ambiguous", idOrPrefix)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(row rowScanner) (*models.HistoryEntry, error) {
	entry := &models.HistoryEntry{}
	var missingJSON string
	err := row.Scan(&entry.ID, &entry.Result.Score, &entry.Result.Breakdown.Lexical,
		&entry.Result.Breakdown.Semantic, &missingJSON, &entry.ResumeChars, &entry.JobChars, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(missingJSON), &entry.Result.Missing); err != nil {
		return nil, fmt.Errorf("decode missing keywords: %w", err)
	}
	return entry, nil
}
