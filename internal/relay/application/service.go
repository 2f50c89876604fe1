package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/payops/stripe-discord-relay/internal/relay/domain"
)

type Outcome int

const (
	OutcomePosted Outcome = iota
	OutcomeIgnored
	OutcomeUnsupported
)

// Service dispatches parsed webhook events: filters unsupported kinds and
// ignore-listed ids, posts the summary to the chat channel and owns the
// processed-event counter shown on the status page.
type Service struct {
	log        *slog.Logger
	summarizer *Summarizer
	chat       ChatClient
	channelID  string
	ignored    map[string]struct{}
	startedAt  time.Time
	processed  atomic.Int64
}

func NewService(log *slog.Logger, summarizer *Summarizer, chat ChatClient, channelID string, ignoredEventIDs []string) *Service {
	ignored := make(map[string]struct{}, len(ignoredEventIDs))
	for _, id := range ignoredEventIDs {
		if id = strings.TrimSpace(id); id != "" {
			ignored[id] = struct{}{}
		}
	}
	return &Service{
		log:        log,
		summarizer: summarizer,
		chat:       chat,
		channelID:  channelID,
		ignored:    ignored,
		startedAt:  time.Now().UTC(),
	}
}

func (s *Service) HandleEvent(ctx context.Context, ev domain.PaymentEvent) (Outcome, error) {
	if ev.Kind == domain.KindOther {
		s.log.Info("unsupported event type", "event_id", ev.ID, "type", ev.RawType)
		return OutcomeUnsupported, nil
	}

	s.log.Info("processing charge event",
		"event_id", ev.ID, "type", ev.RawType, "payment_method", ev.Charge.PaymentMethod())

	summary := s.summarizer.Summarize(ctx, ev)

	if _, ok := s.ignored[ev.ID]; ok {
		// Dry run: the summary is logged but never posted and the counter
		// stays untouched.
		s.log.Info("event id on ignore list, skipping post", "event_id", ev.ID, "summary", summary)
		return OutcomeIgnored, nil
	}

	if err := s.chat.PostMessage(ctx, s.channelID, summary); err != nil {
		return 0, fmt.Errorf("post summary for event %s: %w", ev.ID, err)
	}
	s.processed.Add(1)
	s.log.Info("summary posted", "event_id", ev.ID, "summary", summary)
	return OutcomePosted, nil
}

type Stats struct {
	StartedAt time.Time
	ChannelID string
	Processed int64
}

func (s *Service) Stats() Stats {
	return Stats{
		StartedAt: s.startedAt,
		ChannelID: s.channelID,
		Processed: s.processed.Load(),
	}
}
