package extract

import "unicode/utf8"

// MaxTextRunes caps the retained length of any extracted body.
const MaxTextRunes = 20000

// Kind tags an extraction Outcome.
type Kind int

const (
	// KindText means usable text was recovered.
	KindText Kind = iota
	// KindScanned means the document is structurally valid but carries no
	// machine-readable text layer (most likely an image scan).
	KindScanned
	// KindFailure means no text could be recovered; Reason carries the diagnostic.
	KindFailure
)

// Outcome is the tagged result of an extraction attempt. It is produced by the
// HTML cascade and the PDF extractor and consumed only by the pipeline.
type Outcome struct {
	Kind      Kind
	Text      string
	Truncated bool
	Reason    string
}

// TextOutcome builds a text outcome, truncating the body to MaxTextRunes.
func TextOutcome(text string) Outcome {
	t, cut := TruncateRunes(text, MaxTextRunes)
	return Outcome{Kind: KindText, Text: t, Truncated: cut}
}

// ScannedOutcome marks a document with no recoverable text layer.
func ScannedOutcome() Outcome {
	return Outcome{Kind: KindScanned}
}

// FailureOutcome carries a human-readable diagnostic; it never panics upward.
func FailureOutcome(reason string) Outcome {
	return Outcome{Kind: KindFailure, Reason: reason}
}

// TruncateRunes cuts s to at most n runes and reports whether it was cut.
// Counting runes rather than bytes keeps multibyte text intact at the boundary.
func TruncateRunes(s string, n int) (string, bool) {
	if n <= 0 {
		return "", s != ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:n]), true
}
