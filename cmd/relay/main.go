package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/payops/stripe-discord-relay/internal/relay/application"
	"github.com/payops/stripe-discord-relay/internal/relay/infrastructure/discord"
	relayhttp "github.com/payops/stripe-discord-relay/internal/relay/infrastructure/http"
	"github.com/payops/stripe-discord-relay/internal/relay/infrastructure/opencollective"
	"github.com/payops/stripe-discord-relay/internal/relay/infrastructure/stripeapi"
	"github.com/payops/stripe-discord-relay/internal/relay/signature"
	"github.com/payops/stripe-discord-relay/pkg/logging"
	"github.com/payops/stripe-discord-relay/pkg/shutdown"
	"github.com/payops/stripe-discord-relay/pkg/tracing"
)

func main() {
	log := logging.New(env("LOG_LEVEL", "info"))

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	botToken := os.Getenv("DISCORD_BOT_TOKEN")
	channelID := os.Getenv("DISCORD_CHANNEL_ID")
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if botToken == "" || channelID == "" || stripeKey == "" {
		log.Error("DISCORD_BOT_TOKEN, DISCORD_CHANNEL_ID and STRIPE_SECRET_KEY must be set")
		os.Exit(1)
	}
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	httpAddr := ":" + env("PORT", "3000")
	ocEndpoint := env("OPENCOLLECTIVE_GRAPHQL_API", opencollective.DefaultEndpoint)
	ignored := splitIDs(os.Getenv("IGNORED_EVENT_IDS"))
	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	tp, err := tracing.Init(ctx, "stripe-discord-relay", otlpEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	if tp != nil {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	chat, err := discord.New(log, botToken)
	if err != nil {
		log.Error("discord connect failed", "err", err)
		os.Exit(1)
	}
	defer chat.Close()

	processor := stripeapi.New(log, stripeKey)
	orders := opencollective.New(log, ocEndpoint)

	summarizer := application.NewSummarizer(log, processor, orders)
	svc := application.NewService(log, summarizer, chat, channelID, ignored)
	verifier := signature.NewVerifier(log, webhookSecret)
	handler := relayhttp.NewHandler(log, svc, verifier)

	// HTTP server
	r := chi.NewRouter()
	r.Mount("/", handler.Routes())
	srv := &http.Server{
		Addr:         httpAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("listening for stripe webhooks", "addr", httpAddr, "channel_id", channelID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("relay shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
