// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FitCoach Authors

package main

import (
	"context"
	"fmt"

	"fitcoach/internal/adapter"
	"fitcoach/internal/config"
	handlerhttp "fitcoach/internal/handler/http"
	"fitcoach/internal/logger"
	"fitcoach/internal/mailer"
	"fitcoach/internal/server"
	"fitcoach/internal/service"
	"fitcoach/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fitcoach-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("backend", cfg.Storage.Backend).Msg("received configs")

	st, err := store.NewStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating store")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing store")
		}
	}()

	chatClient := adapter.NewOpenAIChatClient(cfg.Chat, log)
	sender := mailer.NewMailer(cfg.Mail, log)

	services := service.NewServices(st, chatClient, sender, cfg, log)
	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
