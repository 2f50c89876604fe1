package application

import (
	"context"
	"errors"
	"testing"

	"github.com/payops/stripe-discord-relay/internal/relay/domain"
)

type spyChat struct {
	err      error
	channels []string
	messages []string
}

func (s *spyChat) PostMessage(ctx context.Context, channelID, text string) error {
	if s.err != nil {
		return s.err
	}
	s.channels = append(s.channels, channelID)
	s.messages = append(s.messages, text)
	return nil
}

func newService(chat ChatClient, ignored []string) *Service {
	summarizer := NewSummarizer(testLogger(), &fakeProcessor{}, &fakeOrders{})
	return NewService(testLogger(), summarizer, chat, "chan-1", ignored)
}

func TestHandleEventPostsAndCounts(t *testing.T) {
	chat := &spyChat{}
	svc := newService(chat, nil)

	outcome, err := svc.HandleEvent(context.Background(), succeededEvent())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if outcome != OutcomePosted {
		t.Fatalf("outcome = %v, want OutcomePosted", outcome)
	}
	if len(chat.messages) != 1 || chat.channels[0] != "chan-1" {
		t.Fatalf("unexpected chat calls: %v %v", chat.channels, chat.messages)
	}
	if got := svc.Stats().Processed; got != 1 {
		t.Fatalf("processed = %d, want 1", got)
	}
}

func TestHandleEventIgnoreListSkipsPost(t *testing.T) {
	chat := &spyChat{}
	svc := newService(chat, []string{"evt_1"})

	outcome, err := svc.HandleEvent(context.Background(), succeededEvent())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if outcome != OutcomeIgnored {
		t.Fatalf("outcome = %v, want OutcomeIgnored", outcome)
	}
	if len(chat.messages) != 0 {
		t.Fatalf("chat was called for an ignored event: %v", chat.messages)
	}
	if got := svc.Stats().Processed; got != 0 {
		t.Fatalf("processed = %d, want 0", got)
	}
}

func TestHandleEventUnsupportedKind(t *testing.T) {
	chat := &spyChat{}
	svc := newService(chat, nil)

	ev := domain.PaymentEvent{ID: "evt_9", Kind: domain.KindOther, RawType: "invoice.paid"}
	outcome, err := svc.HandleEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if outcome != OutcomeUnsupported {
		t.Fatalf("outcome = %v, want OutcomeUnsupported", outcome)
	}
	if len(chat.messages) != 0 {
		t.Fatalf("chat was called for an unsupported event: %v", chat.messages)
	}
}

func TestHandleEventPostFailure(t *testing.T) {
	chat := &spyChat{err: errors.New("discord down")}
	svc := newService(chat, nil)

	if _, err := svc.HandleEvent(context.Background(), succeededEvent()); err == nil {
		t.Fatal("expected error when the chat post fails")
	}
	if got := svc.Stats().Processed; got != 0 {
		t.Fatalf("processed = %d, want 0 after failed post", got)
	}
}

func TestIgnoreListTrimsWhitespaceAndEmpties(t *testing.T) {
	chat := &spyChat{}
	svc := newService(chat, []string{" evt_1 ", "", "evt_2"})

	if outcome, _ := svc.HandleEvent(context.Background(), succeededEvent()); outcome != OutcomeIgnored {
		t.Fatalf("outcome = %v, want OutcomeIgnored", outcome)
	}
}
