// Package classify serializes access to an external inference endpoint and
// turns article text into a structured editorial judgment. Classification is
// advisory: every failure path resolves to a degraded but well-formed result,
// never an error to the caller.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ctinews/newsradar/internal/extract"
	"github.com/ctinews/newsradar/internal/llm"
)

// maxInputRunes caps the text embedded into the prompt.
const maxInputRunes = 15000

// defaultMaxAttempts bounds the retry loop, initial attempt included.
const defaultMaxAttempts = 3

// Sentinel field values of a degraded result.
const (
	ThemeSystemError = "Error de Sistema"
	DegradedTitle    = "Error de Conexión (IA Sobrecargada)"
)

// Result is the structured classification. All six fields are always
// populated, never absent; Keywords is never nil so it marshals as [].
type Result struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Theme     string   `json:"theme"`
	Geography string   `json:"geography"`
	Impact    string   `json:"impact"`
	Keywords  []string `json:"keywords"`
}

// Classifier submits bounded article text to an OpenAI-compatible endpoint.
// The external quota is a scarce shared resource: a single mutex owned by the
// Classifier instance keeps at most one call (including its retries) in
// flight process-wide. The lock has no timeout; waiters queue until the
// current holder's full attempt sequence completes.
type Classifier struct {
	Client llm.Client
	Model  string
	// MaxAttempts includes the initial attempt. Zero means 3.
	MaxAttempts int

	mu    sync.Mutex
	sleep func(time.Duration)
}

// New builds a Classifier with the default retry policy.
func New(client llm.Client, model string) *Classifier {
	return &Classifier{Client: client, Model: model, sleep: time.Sleep}
}

// Classify analyzes the given text. It never returns an error: after the
// retry budget is exhausted the last diagnostic is folded into a degraded
// result whose theme is the system-error sentinel.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	sleep := c.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	capped, _ := extract.TruncateRunes(text, maxInputRunes)
	log.Debug().Int("input_runes", len([]rune(capped))).Str("model", c.Model).Msg("classification started")

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		res, err := c.attempt(ctx, capped)
		if err == nil {
			return res
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Str("model", c.Model).Msg("classification attempt failed")
		if attempt < attempts-1 {
			sleep(time.Duration(2*(attempt+1)) * time.Second)
		}
	}
	return degraded(attempts, lastErr)
}

// attempt performs one call and one parse. Both failure modes are returned as
// values so the retry loop treats them uniformly.
func (c *Classifier) attempt(ctx context.Context, text string) (Result, error) {
	if c.Client == nil || c.Model == "" {
		return Result{}, errors.New("classifier not configured")
	}
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(text)},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return Result{}, fmt.Errorf("classification call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("no choices")
	}

	raw := extractJSON(resp.Choices[0].Message.Content)
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return Result{}, fmt.Errorf("parse classification json: %w", err)
	}
	// Partial conformance is tolerated: missing fields stay empty rather than
	// failing the attempt.
	if res.Keywords == nil {
		res.Keywords = []string{}
	}
	return res, nil
}

func degraded(attempts int, lastErr error) Result {
	diag := "error desconocido"
	if lastErr != nil {
		diag = lastErr.Error()
	}
	return Result{
		Title:     DegradedTitle,
		Summary:   fmt.Sprintf("No se pudo generar el análisis tras %d intentos. El proveedor reporta: %s", attempts, diag),
		Theme:     ThemeSystemError,
		Geography: "N/A",
		Impact:    "N/A",
		Keywords:  []string{},
	}
}
