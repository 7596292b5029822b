package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finzen/internal/amqp"
	"finzen/internal/cli"
	"finzen/internal/export"
	gsheet "finzen/internal/export/google"
	"finzen/internal/export/memory"
	"finzen/internal/log"
	"finzen/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting finzen-export-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitJournal(logger, cfg.JournalDBPath)
	defer store.Close()

	// Google Sheets is the real sink; without a spreadsheet the worker
	// drains into memory so queues do not back up in dev setups.
	var appender export.RecordAppender
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		appender = sheetsClient
	} else {
		logger.Warn("Google Sheets disabled - exporting to memory only")
		appender = memory.New()
	}

	processor := services.NewExportProcessor(store, appender)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("AMQP disabled - relying on periodic drain only")
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Catch entries journaled while the worker was down.
	if n, err := processor.DrainPending(ctx, cfg.ExportBatchSize); err != nil {
		logger.Error("Startup drain failed", "error", err)
	} else if n > 0 {
		logger.Info("Startup drain complete", "exported", n)
	}

	g, gctx := errgroup.WithContext(ctx)

	if amqpClient != nil {
		g.Go(func() error {
			err := amqpClient.ConsumeJournalSync(gctx, func(msg *amqp.JournalSyncMessage) error {
				return processor.HandleSyncMessage(gctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if _, err := processor.DrainPending(gctx, cfg.ExportBatchSize); err != nil {
					logger.Error("Periodic drain failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("finzen-export-worker stopped")
}
