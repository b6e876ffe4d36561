package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ctinews/newsradar/internal/classify"
	"github.com/ctinews/newsradar/internal/extract"
	"github.com/ctinews/newsradar/internal/fetch"
)

// countingClassifier records invocations and returns a fixed result.
type countingClassifier struct {
	calls  int
	result classify.Result
}

func (c *countingClassifier) Classify(_ context.Context, _ string) classify.Result {
	c.calls++
	return c.result
}

func fullResult() classify.Result {
	return classify.Result{
		Title:     "Título clasificado",
		Summary:   "Resumen",
		Theme:     "Biotecnología",
		Geography: "Latam",
		Impact:    "Impacto",
		Keywords:  []string{"salud"},
	}
}

func articleHTML(paragraphs int) string {
	var sb strings.Builder
	sb.WriteString(`<html><head><title>Noticia</title></head><body><article>`)
	for i := 0; i < paragraphs; i++ {
		sb.WriteString("<p>El ecosistema de ciencia y tecnología de la ciudad registró avances significativos durante el trimestre.</p>")
	}
	sb.WriteString(`</article></body></html>`)
	return sb.String()
}

func TestAnalyze_URLHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML(6)))
	}))
	defer srv.Close()

	cls := &countingClassifier{result: fullResult()}
	p := New(&fetch.Client{Timeout: 2 * time.Second}, cls)

	rec, err := p.Analyze(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "Título clasificado" || rec.OriginalURL != srv.URL || rec.Status != StatusIdentified {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if cls.calls != 1 {
		t.Fatalf("expected one classification, got %d", cls.calls)
	}
	if !strings.Contains(rec.ContentSnippet, "avances significativos") {
		t.Fatalf("expected snippet from extracted text, got %q", rec.ContentSnippet)
	}
}

func TestAnalyze_ClassificationFieldsAlwaysPresent(t *testing.T) {
	// Even an all-empty classifier result yields a fully-shaped record.
	cls := &countingClassifier{result: classify.Result{Keywords: []string{}}}
	p := New(nil, cls)
	p.ExtractPDF = func([]byte) extract.Outcome {
		return extract.TextOutcome(strings.Repeat("texto del documento pdf con suficiente contenido. ", 10))
	}

	rec, err := p.Analyze(context.Background(), Request{PDF: []byte("%PDF")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "Sin título" {
		t.Fatalf("expected default title, got %q", rec.Title)
	}
	if rec.OriginalURL != PDFMarker {
		t.Fatalf("expected PDF marker, got %q", rec.OriginalURL)
	}
	if rec.Classification.Keywords == nil {
		t.Fatal("keywords must never be nil")
	}
}

func TestAnalyze_ScannedPDFSkipsClassifier(t *testing.T) {
	cls := &countingClassifier{result: fullResult()}
	p := New(nil, cls)
	p.ExtractPDF = func([]byte) extract.Outcome { return extract.ScannedOutcome() }

	rec, err := p.Analyze(context.Background(), Request{PDF: []byte("%PDF")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cls.calls != 0 {
		t.Fatalf("classifier must not run for scanned documents, ran %d times", cls.calls)
	}
	if rec.Classification.Theme != ThemeFormatError {
		t.Fatalf("expected format-error theme, got %q", rec.Classification.Theme)
	}
	if !strings.Contains(rec.Classification.Summary, "OCR") {
		t.Fatalf("expected explanatory summary, got %q", rec.Classification.Summary)
	}
}

func TestAnalyze_ExtractionFailureRejectsRequest(t *testing.T) {
	cls := &countingClassifier{result: fullResult()}
	p := New(nil, cls)
	p.ExtractPDF = func([]byte) extract.Outcome { return extract.FailureOutcome("pdf corrupto") }

	_, err := p.Analyze(context.Background(), Request{PDF: []byte("junk")})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if cls.calls != 0 {
		t.Fatal("classifier must not run when extraction fails")
	}
}

func TestAnalyze_NoInputRejectedUpfront(t *testing.T) {
	cls := &countingClassifier{result: fullResult()}
	p := New(failingFetcher{}, cls)

	_, err := p.Analyze(context.Background(), Request{})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	if cls.calls != 0 {
		t.Fatal("nothing should run without input")
	}
}

type failingFetcher struct{}

func (failingFetcher) Get(context.Context, string) ([]byte, string, error) {
	return nil, "", errors.New("fetcher must not be called")
}

func TestAnalyze_FetchErrorRejectsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cls := &countingClassifier{result: fullResult()}
	p := New(&fetch.Client{Timeout: 2 * time.Second}, cls)

	_, err := p.Analyze(context.Background(), Request{URL: srv.URL})
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if cls.calls != 0 {
		t.Fatal("classifier must not run on fetch failure")
	}
}

func TestAnalyze_PDFURLDispatchesToPDFExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	var gotPDF []byte
	cls := &countingClassifier{result: fullResult()}
	p := New(&fetch.Client{Timeout: 2 * time.Second}, cls)
	p.ExtractPDF = func(data []byte) extract.Outcome {
		gotPDF = data
		return extract.TextOutcome(strings.Repeat("contenido del informe en pdf. ", 10))
	}

	rec, err := p.Analyze(context.Background(), Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(gotPDF) != "%PDF-1.4" {
		t.Fatalf("PDF bytes not handed to extractor: %q", gotPDF)
	}
	if rec.OriginalURL != srv.URL {
		t.Fatalf("URL source must keep the URL, got %q", rec.OriginalURL)
	}
}

func TestAnalyze_SnippetTruncation(t *testing.T) {
	long := strings.Repeat("contenido extraído del documento original. ", 1000)
	cls := &countingClassifier{result: fullResult()}
	p := New(nil, cls)
	p.ExtractPDF = func([]byte) extract.Outcome { return extract.TextOutcome(long) }

	rec, err := p.Analyze(context.Background(), Request{PDF: []byte("%PDF")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := utf8.RuneCountInString(rec.ContentSnippet); got != snippetRunes {
		t.Fatalf("expected %d-rune snippet, got %d", snippetRunes, got)
	}
	// The snippet must be a prefix of the (already truncated) body.
	if !strings.HasPrefix(strings.Repeat("contenido extraído del documento original. ", 1000), rec.ContentSnippet) {
		t.Fatal("snippet must be a prefix of the extracted text")
	}
}
