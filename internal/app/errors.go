package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotInitialized = errors.New("application not initialized")
	ErrNoResult       = errors.New("no analysis result yet, run 'resumatch analyze' first")
	ErrNoInput        = errors.New("no text given, use --text, --file or pipe it on stdin")
)
