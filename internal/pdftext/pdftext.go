// Package pdftext extracts page-ordered text from PDF byte streams and
// distinguishes text-bearing documents from scanned/image-only ones.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/ctinews/newsradar/internal/extract"
)

// minTextRunes is the scanned-document threshold: a structurally valid PDF
// whose total stripped text falls below this is assumed to be an image scan.
const minTextRunes = 50

// FromBytes parses the document page by page and returns a tagged outcome.
// Parse-level failures (including parser panics on malformed files) map to a
// failure outcome; they never crash the caller.
func FromBytes(data []byte) (out extract.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("pdf parser panic recovered")
			out = extract.FailureOutcome(fmt.Sprintf("error al extraer PDF: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return extract.FailureOutcome(fmt.Sprintf("error al extraer PDF: %v", err))
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			log.Debug().Int("page", i).Err(err).Msg("pdf page text unavailable")
			continue
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	total := sb.String()
	if utf8.RuneCountInString(strings.TrimSpace(total)) < minTextRunes {
		return extract.ScannedOutcome()
	}
	return extract.TextOutcome(total)
}
