// Package app wires configuration to the ingestion pipeline and runs a
// single analysis end to end.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ctinews/newsradar/internal/classify"
	"github.com/ctinews/newsradar/internal/fetch"
	"github.com/ctinews/newsradar/internal/llm"
	"github.com/ctinews/newsradar/internal/pipeline"
)

// App owns the wired pipeline for the lifetime of the process. The
// classifier's single-flight lock lives here: one App means one lock.
type App struct {
	cfg      Config
	pipeline *pipeline.Pipeline
}

func New(ctx context.Context, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	client := openai.NewClientWithConfig(transportCfg)
	provider := &llm.OpenAIProvider{Inner: client}

	// Quick connectivity check by listing models. Best effort: warn and
	// continue, the classifier degrades gracefully on its own.
	{
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if models, err := provider.ListModels(ctx); err != nil {
			log.Warn().Err(err).Msg("LLM model list failed; continuing")
		} else if len(models.Models) == 0 {
			log.Warn().Msg("LLM returned zero models")
		}
	}

	fetcher := &fetch.Client{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.FetchTimeout,
	}
	classifier := classify.New(provider, cfg.LLMModel)

	return &App{
		cfg:      cfg,
		pipeline: pipeline.New(fetcher, classifier),
	}, nil
}

// Pipeline exposes the wired pipeline for callers embedding the App in a
// larger service.
func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipeline
}

// Run analyzes the configured input and writes the record JSON to the output
// path, or stdout when none is set.
func (a *App) Run(ctx context.Context) error {
	req := pipeline.Request{URL: a.cfg.URL}
	if a.cfg.PDFPath != "" {
		data, err := os.ReadFile(a.cfg.PDFPath)
		if err != nil {
			return fmt.Errorf("read pdf: %w", err)
		}
		req.PDF = data
	}

	rec, err := a.pipeline.Analyze(ctx, req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	out = append(out, '\n')

	if a.cfg.OutputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(a.cfg.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote record")
	return nil
}
