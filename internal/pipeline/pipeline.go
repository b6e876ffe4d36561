// Package pipeline sequences fetch, extraction, and classification for a
// single ingestion request and produces the externally visible record.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ctinews/newsradar/internal/classify"
	"github.com/ctinews/newsradar/internal/extract"
	"github.com/ctinews/newsradar/internal/fetch"
	"github.com/ctinews/newsradar/internal/pdftext"
)

// snippetRunes caps the extracted-text snippet carried on every record.
const snippetRunes = 5000

// StatusIdentified marks records produced by this pipeline for editorial review.
const StatusIdentified = "Identificado"

// PDFMarker replaces the source URL for uploaded documents.
const PDFMarker = "Archivo PDF"

// Scanned-document record texts. OCR is out of scope: the condition is
// detected and reported, never attempted.
const (
	scannedTitle   = "PDF No Procesable (Requiere OCR)"
	scannedSummary = "El documento parece ser un PDF escaneado o una imagen sin capa de texto. El sistema actual no soporta OCR (Reconocimiento Óptico de Caracteres)."
	ThemeFormatError = "Error de Formato"
)

// defaultTitle is used when the classification carries no title.
const defaultTitle = "Sin título"

// ErrNoInput is returned when neither a URL nor PDF bytes are supplied.
var ErrNoInput = errors.New("debe proporcionar una URL o un archivo PDF")

// ErrNoContent is returned when no text could be extracted from the input.
var ErrNoContent = errors.New("no se pudo extraer contenido del documento")

// Request carries exactly one input: a URL to fetch, or raw PDF bytes.
type Request struct {
	URL string
	PDF []byte
}

// Record is the pipeline output, always fully populated — including on
// degraded classification — so downstream review can proceed with at least
// the extracted raw text.
type Record struct {
	Title          string          `json:"title"`
	OriginalURL    string          `json:"original_url"`
	Status         string          `json:"status"`
	Classification classify.Result `json:"classification"`
	ContentSnippet string          `json:"content_snippet"`
}

// Fetcher retrieves raw bytes and a declared content type for a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// TextClassifier turns article text into a structured judgment. It never
// fails; degraded results carry sentinel field values instead.
type TextClassifier interface {
	Classify(ctx context.Context, text string) classify.Result
}

// Pipeline wires the fetcher, the extraction chain, and the classifier.
// A Pipeline value is safe for concurrent Analyze calls: extraction is
// request-local and only the classifier serializes internally.
type Pipeline struct {
	Fetcher    Fetcher
	Classifier TextClassifier
	// ExtractPDF allows tests to substitute the PDF extractor. Nil means
	// pdftext.FromBytes.
	ExtractPDF func(data []byte) extract.Outcome
}

// New builds a Pipeline with the default PDF extractor.
func New(fetcher Fetcher, classifier TextClassifier) *Pipeline {
	return &Pipeline{Fetcher: fetcher, Classifier: classifier, ExtractPDF: pdftext.FromBytes}
}

// Analyze runs the full chain for one request. Extraction failures reject the
// request (no record); scanned documents and degraded classifications still
// yield a complete record.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (Record, error) {
	var outcome extract.Outcome
	var source string

	switch {
	case req.URL != "":
		source = req.URL
		outcome = p.fromURL(ctx, req.URL)
	case len(req.PDF) > 0:
		source = PDFMarker
		outcome = p.extractPDF(req.PDF)
	default:
		return Record{}, ErrNoInput
	}

	switch outcome.Kind {
	case extract.KindFailure:
		log.Warn().Str("source", source).Str("reason", outcome.Reason).Msg("extraction failed")
		return Record{}, fmt.Errorf("%w: %s", ErrNoContent, outcome.Reason)
	case extract.KindScanned:
		// No text to classify; the classifier is deliberately not invoked.
		log.Info().Str("source", source).Msg("scanned document detected")
		return scannedRecord(source), nil
	}

	result := p.Classifier.Classify(ctx, outcome.Text)
	title := result.Title
	if title == "" {
		title = defaultTitle
	}
	snippet, _ := extract.TruncateRunes(outcome.Text, snippetRunes)
	return Record{
		Title:          title,
		OriginalURL:    source,
		Status:         StatusIdentified,
		Classification: result,
		ContentSnippet: snippet,
	}, nil
}

// fromURL fetches the document and dispatches on its declared type: PDF
// responses go through the PDF extractor, anything else through the HTML
// cascade. Network and status errors map to failure outcomes.
func (p *Pipeline) fromURL(ctx context.Context, url string) extract.Outcome {
	body, contentType, err := p.Fetcher.Get(ctx, url)
	if err != nil {
		return extract.FailureOutcome(fmt.Sprintf("error al descargar la URL: %v", err))
	}
	if fetch.IsPDF(contentType, url) {
		return p.extractPDF(body)
	}
	if title := extract.Title(body); title != "" {
		log.Debug().Str("url", url).Str("title", title).Msg("document fetched")
	}
	return extract.FromHTML(body, url)
}

func (p *Pipeline) extractPDF(data []byte) extract.Outcome {
	if p.ExtractPDF != nil {
		return p.ExtractPDF(data)
	}
	return pdftext.FromBytes(data)
}

// scannedRecord synthesizes the terminal record for image-only documents.
func scannedRecord(source string) Record {
	return Record{
		Title:       scannedTitle,
		OriginalURL: source,
		Status:      StatusIdentified,
		Classification: classify.Result{
			Title:     scannedTitle,
			Summary:   scannedSummary,
			Theme:     ThemeFormatError,
			Geography: "N/A",
			Impact:    "N/A",
			Keywords:  []string{},
		},
	}
}
