package models

import "time"

// AnalysisRequest is the payload sent to the analyze endpoint
type AnalysisRequest struct {
	Resume string `json:"resume"`
	Job    string `json:"job"`
}

// Breakdown splits the overall score into its two components
type Breakdown struct {
	Lexical  float64 `json:"lexical"`  // exact keyword overlap, 0-100
	Semantic float64 `json:"semantic"` // contextual similarity, 0-100
}

// AnalysisResult is the backend's verdict for one resume/job pair
type AnalysisResult struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Missing   []string  `json:"missing"`
}

// Draft holds the two input fields between invocations
type Draft struct {
	Resume    string    `json:"resume"`
	Job       string    `json:"job"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is a stored successful analysis
type HistoryEntry struct {
	ID          string         `json:"id"`
	Result      AnalysisResult `json:"result"`
	ResumeChars int            `json:"resume_chars"`
	JobChars    int            `json:"job_chars"`
	CreatedAt   time.Time      `json:"created_at"`
}
