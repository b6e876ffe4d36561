package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// minAcceptRunes is the floor below which an extraction result is treated as
// boilerplate noise rather than article content.
const minAcceptRunes = 100

// NoContentReason is the diagnostic reported when every strategy comes up empty.
const NoContentReason = "no se pudo extraer contenido significativo"

// Strategy is a single content-extraction tactic over fetched HTML.
// Implementations return the recovered text and whether they consider it
// usable; the cascade applies its own acceptance floor on top.
type Strategy interface {
	Name() string
	Extract(body []byte, pageURL string) (string, bool)
}

// DefaultStrategies returns the extraction cascade in priority order:
// specialized article extraction first, tree-heuristic fallback second.
func DefaultStrategies() []Strategy {
	return []Strategy{ArticleStrategy{}, HeuristicStrategy{}}
}

// FromHTML runs the strategy cascade over fetched HTML and returns the first
// acceptable result, normalized and truncated. All strategies failing yields a
// failure outcome, never an error.
func FromHTML(body []byte, pageURL string) Outcome {
	return Cascade(DefaultStrategies(), body, pageURL)
}

// Cascade tries strategies in order, first success wins.
func Cascade(strategies []Strategy, body []byte, pageURL string) Outcome {
	for _, s := range strategies {
		text, ok := s.Extract(body, pageURL)
		if !ok {
			continue
		}
		text = norm.NFC.String(strings.TrimSpace(text))
		if utf8.RuneCountInString(text) <= minAcceptRunes {
			log.Debug().Str("strategy", s.Name()).Str("url", pageURL).Msg("extraction below acceptance floor")
			continue
		}
		return TextOutcome(text)
	}
	return FailureOutcome(NoContentReason)
}
