package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/config"
	"github.com/ingresure/ingresure-api/internal/enrichment"
	"github.com/ingresure/ingresure-api/internal/foodapi"
	"github.com/ingresure/ingresure-api/internal/logger"
)

// Entry point for the offline enrichment job: replay the
// unknown-ingredient log against the external food APIs and promote
// high-confidence results into the dynamic ontology.
func main() {
	minFrequency := flag.Int("min-frequency", 1, "only enrich ingredients seen at least this many times")
	dryRun := flag.Bool("dry-run", false, "report what would be enriched without writing")
	flag.Parse()

	logger.Init(true)
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	}
	env := cfg.EnvVars

	var usda, off foodapi.Source
	if env.USDAFDCAPIKey != "" {
		usda = foodapi.NewUSDAClient(env.USDAFDCAPIKey)
	}
	if env.OpenFoodFactsEnabled {
		off = foodapi.NewOFFClient()
	}
	if usda == nil && off == nil {
		logger.Get().Fatal("no food API configured; set USDA_FDC_API_KEY or enable Open Food Facts")
	}

	job := &enrichment.Job{
		Log:          enrichment.NewUnknownLog(env.UnknownLogPath),
		Dynamic:      enrichment.NewDynamicOntology(env.DynamicOntologyPath),
		Fetcher:      foodapi.NewFetcher(usda, off),
		MinFrequency: *minFrequency,
		DryRun:       *dryRun,
	}

	enriched, err := job.Run(context.Background())
	if err != nil {
		logger.Get().Error("enrichment job failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Get().Info("enrichment job finished",
		zap.Int("enriched", enriched),
		zap.Bool("dry_run", *dryRun))
}
