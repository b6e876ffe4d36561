package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ctinews/newsradar/internal/app"
	"github.com/ctinews/newsradar/internal/pipeline"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		url          string
		pdfPath      string
		outputPath   string
		configPath   string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		fetchTimeout time.Duration
		userAgent    string
		verbose      bool
	)

	flag.StringVar(&url, "url", "", "URL of the article or document to analyze")
	flag.StringVar(&pdfPath, "pdf", "", "Path to a local PDF file to analyze")
	flag.StringVar(&outputPath, "out", "", "Path to write the record JSON (default: stdout)")
	flag.StringVar(&configPath, "config", os.Getenv("NEWSRADAR_CONFIG"), "Optional YAML config file")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-document download timeout (default 15s)")
	flag.StringVar(&userAgent, "fetch.ua", "", "Override the User-Agent sent to news sites")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		URL:          url,
		PDFPath:      pdfPath,
		OutputPath:   outputPath,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		LLMAPIKey:    llmKey,
		FetchTimeout: fetchTimeout,
		UserAgent:    userAgent,
		Verbose:      verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadFileConfig(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(2)
		}
		app.MergeFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.URL == "" && cfg.PDFPath == "" {
		fmt.Fprintln(os.Stderr, "newsradar: provide -url or -pdf")
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(2)
	}

	if err := a.Run(ctx); err != nil {
		// Input problems (nothing extractable) exit distinctly from
		// operational failures so wrappers can branch on them.
		if errors.Is(err, pipeline.ErrNoContent) || errors.Is(err, pipeline.ErrNoInput) {
			log.Error().Err(err).Msg("input rejected")
			os.Exit(3)
		}
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}
}
