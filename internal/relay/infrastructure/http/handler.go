package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/payops/stripe-discord-relay/internal/relay/application"
	"github.com/payops/stripe-discord-relay/internal/relay/domain"
	"github.com/payops/stripe-discord-relay/internal/relay/signature"
)

const signatureHeader = "Stripe-Signature"

type Handler struct {
	log      *slog.Logger
	service  *application.Service
	verifier *signature.Verifier
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service, verifier *signature.Verifier) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		verifier: verifier,
		tracer:   otel.Tracer("relay-http"),
	}
}

// Routes wires the two endpoints; chi answers 404 for unknown paths and 405
// for known paths with the wrong method.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.status)
	r.Post("/webhook/stripe", h.webhook)

	return r
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Stats()
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w,
		"<html><body>Server listening since %s<br />Connected to Discord Channel Id: %s<br />Number of events processed: %d</body></html>",
		stats.StartedAt.Format(time.RFC3339), stats.ChannelID, stats.Processed)
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "StripeWebhook")
	defer span.End()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	if err := h.verifier.Verify(body, r.Header.Get(signatureHeader)); err != nil {
		h.log.Error("signature verification failed", "err", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	ev, err := domain.ParseEvent(body)
	if err != nil {
		h.log.Error("invalid webhook payload", "err", err)
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	outcome, err := h.service.HandleEvent(ctx, ev)
	if err != nil {
		h.log.Error("event handling failed", "event_id", ev.ID, "err", err)
		http.Error(w, "failed to deliver summary", http.StatusInternalServerError)
		return
	}

	switch outcome {
	case application.OutcomeUnsupported:
		_, _ = w.Write([]byte("event type not supported"))
	default:
		_, _ = w.Write([]byte("ok"))
	}
}
