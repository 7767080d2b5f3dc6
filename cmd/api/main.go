package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"campaign-insights-go/internal/aggregator"
	"campaign-insights-go/internal/client"
	"campaign-insights-go/internal/config"
	"campaign-insights-go/internal/dataset"
	"campaign-insights-go/internal/logger"
	"campaign-insights-go/internal/processor"
	"campaign-insights-go/internal/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWith(cfg.Environment, cfg.LogLevel, os.Stdout)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
}

// run serves until the listener fails. The data source is closed before it
// returns.
func run(cfg config.Config, log *logger.Logger) error {
	log.WithField("service", "campaign-insights-go").WithField("source", cfg.Source).Info("starting service")

	src, closeSrc, err := openSource(cfg, log)
	if err != nil {
		return fmt.Errorf("open data source: %w", err)
	}
	defer closeSrc()

	if cfg.FallbackToMock && cfg.Source != config.SourceMock {
		src = dataset.FallbackSource{Primary: src, Fallback: dataset.MockSource{}, Log: log.Component("source")}
		log.Info("mock fallback enabled")
	}

	policy, _ := aggregator.ParseRatePolicy(cfg.RatePolicy) // validated by config.Load
	svc := processor.New(src, processor.Options{
		RatePolicy:    policy,
		RateTolerance: cfg.RateTolerance,
		Tiers:         cfg.Tiers,
	}, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(svc, log.Component("http"), cfg.TopN, cfg.BottomN).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openSource builds the configured data source and its cleanup func.
func openSource(cfg config.Config, log *logger.Logger) (dataset.Source, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case config.SourceAPI:
		c := client.New(cfg.APIBaseURL,
			time.Duration(cfg.APITimeoutSec)*time.Second,
			time.Duration(cfg.APIMaxRetrySec)*time.Second,
			log.Component("client"))
		return dataset.APISource{Client: c}, noop, nil

	case config.SourceXLSX:
		log.WithField("dataset_path", cfg.DatasetPath).Info("reading retailers from workbook")
		return dataset.ExcelSource{Path: cfg.DatasetPath}, noop, nil

	case config.SourcePostgres, config.SourceSQLite:
		dsn := cfg.DatabaseURL
		if cfg.Source == config.SourceSQLite {
			dsn = cfg.SQLitePath
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := dataset.OpenSQL(ctx, cfg.Source, dsn)
		if err != nil {
			if cfg.FallbackToMock {
				log.WithError(err).Warn("database unavailable, serving mock data")
				return dataset.MockSource{}, noop, nil
			}
			return nil, noop, err
		}
		return db, func() { db.Close() }, nil

	default:
		return dataset.MockSource{}, noop, nil
	}
}
