package app

import (
	"errors"
	"time"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Input: exactly one of URL or PDFPath.
	URL     string
	PDFPath string

	// OutputPath receives the record JSON; empty means stdout.
	OutputPath string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Fetching
	FetchTimeout time.Duration
	UserAgent    string

	// Behavior
	Verbose bool
}

// Validate checks the invariants the pipeline depends on. Input presence is
// checked by the pipeline itself; this covers what must be known at startup.
func (c Config) Validate() error {
	if c.LLMModel == "" {
		return errors.New("config: LLM model is required")
	}
	if c.LLMAPIKey == "" && c.LLMBaseURL == "" {
		return errors.New("config: LLM API key is required (or a base URL for a local endpoint)")
	}
	if c.URL != "" && c.PDFPath != "" {
		return errors.New("config: provide either a URL or a PDF path, not both")
	}
	return nil
}
