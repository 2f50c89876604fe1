package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/payops/stripe-discord-relay/internal/relay/domain"
)

const (
	discordUserIDKey = "discord_userid"
	orderIDKey       = "orderId"
)

// Summarizer turns a parsed payment event into the chat message text. It is a
// pure function of the event and the lookup responses; every lookup failure
// degrades the summary instead of failing it.
type Summarizer struct {
	log       *slog.Logger
	processor ProcessorAPI
	orders    OrderLookup
}

func NewSummarizer(log *slog.Logger, processor ProcessorAPI, orders OrderLookup) *Summarizer {
	return &Summarizer{log: log, processor: processor, orders: orders}
}

func (s *Summarizer) Summarize(ctx context.Context, ev domain.PaymentEvent) string {
	switch ev.Kind {
	case domain.KindChargeSucceeded:
		return s.summarizeSucceeded(ctx, ev)
	case domain.KindChargeRefunded:
		return summarizeRefunded(ev.Charge)
	default:
		return fmt.Sprintf("Received Stripe event: %s", ev.RawType)
	}
}

// summarizeSucceeded resolves "from" and the description through an ordered
// pipeline; later steps override earlier ones, the Open Collective order
// override is final.
func (s *Summarizer) summarizeSucceeded(ctx context.Context, ev domain.PaymentEvent) string {
	ch := ev.Charge
	from := s.resolveFrom(ctx, ev)
	description := s.resolveDescription(ctx, ev)
	from, description = s.applyOrderOverride(ctx, ev, from, description)

	var b strings.Builder
	fmt.Fprintf(&b, "💳 Received %s", domain.FormatAmount(ch.Amount, ch.Currency))
	if ch.ApplicationFee > 0 {
		fmt.Fprintf(&b, " (including %s %s application fee)",
			domain.FormatAmount(ch.ApplicationFee, ch.Currency),
			domain.ResolveApplicationName(ch.ApplicationID))
	}
	fmt.Fprintf(&b, " from %s", from)
	if description != "" {
		fmt.Fprintf(&b, " (%s)", description)
	}
	if ch.ReceiptURL != "" {
		fmt.Fprintf(&b, " [[View Receipt](<%s>)]", ch.ReceiptURL)
	}
	return b.String()
}

func summarizeRefunded(ch domain.ChargePayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Refunded %s to %s",
		domain.FormatAmount(ch.AmountRefunded, ch.Currency),
		firstNonEmpty(ch.BillingName, "unknown"))
	if description := firstNonEmpty(ch.Description, ch.StatementDescriptor); description != "" {
		fmt.Fprintf(&b, " (%s)", description)
	}
	if ch.ReceiptURL != "" {
		fmt.Fprintf(&b, " [[View Receipt](<%s>)]", ch.ReceiptURL)
	}
	return b.String()
}

// resolveFrom starts from the billing name and lets the customer record
// override it. A discord_userid in the customer metadata wins over the plain
// name and renders as a channel mention.
func (s *Summarizer) resolveFrom(ctx context.Context, ev domain.PaymentEvent) string {
	ch := ev.Charge
	from := firstNonEmpty(ch.BillingName, "unknown")
	if ch.CustomerID == "" {
		return from
	}
	customer, err := s.processor.FetchCustomer(ctx, ch.CustomerID)
	if err != nil {
		s.log.Warn("customer lookup failed", "event_id", ev.ID, "customer_id", ch.CustomerID, "err", err)
		return from
	}
	if customer.Deleted {
		return from
	}
	if customer.Name != "" {
		from = customer.Name
	}
	if id := customer.Metadata[discordUserIDKey]; id != "" {
		from = "<@" + id + ">"
	}
	return from
}

// resolveDescription falls back from the charge description to the statement
// descriptor, then replaces both with the invoice line items when an invoice
// can be resolved, directly or through the payment intent.
func (s *Summarizer) resolveDescription(ctx context.Context, ev domain.PaymentEvent) string {
	ch := ev.Charge
	description := firstNonEmpty(ch.Description, ch.StatementDescriptor)

	invoiceID := ch.InvoiceID
	if invoiceID == "" && ch.PaymentIntentID != "" {
		id, err := s.processor.FetchPaymentIntentInvoice(ctx, ch.PaymentIntentID)
		if err != nil {
			s.log.Warn("payment intent lookup failed", "event_id", ev.ID, "payment_intent", ch.PaymentIntentID, "err", err)
		} else {
			invoiceID = id
		}
	}
	if invoiceID == "" {
		return description
	}
	lines, err := s.processor.FetchInvoiceLines(ctx, invoiceID)
	if err != nil {
		s.log.Warn("invoice lookup failed", "event_id", ev.ID, "invoice_id", invoiceID, "err", err)
		return description
	}
	return strings.Join(lines, " \n")
}

// applyOrderOverride replaces both values with the Open Collective order data
// when the charge came through Open Collective and carries an order id. A
// failed lookup keeps the values already resolved.
func (s *Summarizer) applyOrderOverride(ctx context.Context, ev domain.PaymentEvent, from, description string) (string, string) {
	ch := ev.Charge
	if domain.ResolveApplicationName(ch.ApplicationID) != domain.AppOpenCollective {
		return from, description
	}
	raw := ch.Metadata[orderIDKey]
	if raw == "" {
		return from, description
	}
	orderID, err := strconv.Atoi(raw)
	if err != nil {
		s.log.Warn("unparseable order id in charge metadata", "event_id", ev.ID, "order_id", raw)
		return from, description
	}
	info, err := s.orders.GetOrderInfo(ctx, orderID)
	if err != nil {
		s.log.Warn("order lookup failed", "event_id", ev.ID, "order_id", orderID, "err", err)
		return from, description
	}
	from = fmt.Sprintf("%s (<https://opencollective.com/%s>)", info.CreatedByAccount.Name, info.CreatedByAccount.Slug)
	return from, info.Description
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
