package application

import (
	"context"

	"github.com/payops/stripe-discord-relay/internal/relay/domain"
)

type ChatClient interface {
	PostMessage(ctx context.Context, channelID, text string) error
}

type ProcessorAPI interface {
	FetchCustomer(ctx context.Context, customerID string) (domain.Customer, error)
	FetchInvoiceLines(ctx context.Context, invoiceID string) ([]string, error)
	// FetchPaymentIntentInvoice returns the invoice id associated with a
	// payment intent, or "" when it has none.
	FetchPaymentIntentInvoice(ctx context.Context, paymentIntentID string) (string, error)
}

type OrderLookup interface {
	GetOrderInfo(ctx context.Context, orderID int) (domain.OrderInfo, error)
}
