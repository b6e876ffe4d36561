package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// nonContentSelector matches elements that never carry article text.
const nonContentSelector = "script, style, nav, header, footer, aside, iframe, noscript, form, button, input"

// containerSelectors are probed in priority order for the main content region.
var containerSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".post-content",
	".entry-content",
	".article-body",
	".content",
}

// minParagraphRunes filters out one-line paragraphs (captions, bylines,
// cookie notices) in the paragraph-concatenation fallback.
const minParagraphRunes = 50

// HeuristicStrategy is the tree-based fallback: strip non-content elements,
// probe a ranked list of semantic containers, and as a last resort
// concatenate paragraph text above a length threshold.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "heuristic" }

func (HeuristicStrategy) Extract(body []byte, _ string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}

	doc.Find(nonContentSelector).Remove()

	// First matching container wins, even when its text turns out thin; the
	// cascade's acceptance floor deals with that.
	for _, selector := range containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := normalizeWhitespace(sel.Text())
		return text, text != ""
	}

	// Fallback: all paragraphs above the length floor, joined by newlines.
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(t) > minParagraphRunes {
			parts = append(parts, collapseSpaces(t))
		}
	})
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
