package stripeapi

import (
	"context"
	"log/slog"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/payops/stripe-discord-relay/internal/relay/domain"
)

// Client implements application.ProcessorAPI against the Stripe REST API.
type Client struct {
	log *slog.Logger
	api *client.API
}

func New(log *slog.Logger, secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{log: log, api: api}
}

func (c *Client) FetchCustomer(ctx context.Context, customerID string) (domain.Customer, error) {
	customer, err := c.api.Customers.Get(customerID, &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return domain.Customer{}, err
	}
	return domain.Customer{
		Name:     customer.Name,
		Deleted:  customer.Deleted,
		Metadata: customer.Metadata,
	}, nil
}

func (c *Client) FetchInvoiceLines(ctx context.Context, invoiceID string) ([]string, error) {
	invoice, err := c.api.Invoices.Get(invoiceID, &stripe.InvoiceParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, err
	}
	if invoice.Lines == nil {
		return nil, nil
	}
	lines := make([]string, 0, len(invoice.Lines.Data))
	for _, line := range invoice.Lines.Data {
		lines = append(lines, line.Description)
	}
	return lines, nil
}

func (c *Client) FetchPaymentIntentInvoice(ctx context.Context, paymentIntentID string) (string, error) {
	intent, err := c.api.PaymentIntents.Get(paymentIntentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return "", err
	}
	if intent.Invoice == nil {
		return "", nil
	}
	return intent.Invoice.ID, nil
}
