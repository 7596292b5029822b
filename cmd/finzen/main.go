package main

import (
	"context"
	"fmt"
	"os"

	"finzen/internal/amqp"
	"finzen/internal/api"
	"finzen/internal/cli"
	"finzen/internal/journal"
	"finzen/internal/log"
	"finzen/internal/services"
	"finzen/internal/session"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	sess := session.New(cfg.TokenFilePath)
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, sess)
	sess.Attach(client.Auth)

	// The journal and the broker are optional: without them every
	// command still works, mutations just are not mirrored locally.
	var store *journal.Store
	if cfg.JournalDBPath != "" {
		var err error
		store, err = journal.Open(cfg.JournalDBPath)
		if err != nil {
			logger.Warn("Journal disabled", "error", err, "path", cfg.JournalDBPath)
		} else {
			defer store.Close()
		}
	}

	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" && store != nil {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	goals := services.NewGoalService(client.Goals, store, publisher)
	app := cli.NewApp(client, sess, goals, os.Stdout, os.Stdin)

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
