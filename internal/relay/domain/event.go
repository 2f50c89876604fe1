package domain

import (
	"encoding/json"
	"fmt"
)

type EventKind int

const (
	KindOther EventKind = iota
	KindChargeSucceeded
	KindChargeRefunded
)

const (
	typeChargeSucceeded = "charge.succeeded"
	typeChargeRefunded  = "charge.refunded"
)

// PaymentEvent is a Stripe webhook event parsed once at the boundary. Kind is
// derived from the raw type field exactly once; RawType is kept for the
// unsupported-event message.
type PaymentEvent struct {
	ID      string
	Kind    EventKind
	RawType string
	Charge  ChargePayload
}

// ChargePayload carries the charge fields the summarizer needs. Amounts are
// minor units. Optional string fields use "" as the absent value.
type ChargePayload struct {
	Amount              int64
	AmountRefunded      int64
	Currency            string
	Description         string
	StatementDescriptor string
	BillingName         string
	PaymentMethodType   string
	PaymentMethodBrand  string
	ApplicationID       string
	ApplicationFee      int64
	ReceiptURL          string
	InvoiceID           string
	PaymentIntentID     string
	CustomerID          string
	Metadata            map[string]string
}

// PaymentMethod returns the card brand for card charges, the raw payment
// method type otherwise.
func (c ChargePayload) PaymentMethod() string {
	if c.PaymentMethodType == "card" && c.PaymentMethodBrand != "" {
		return c.PaymentMethodBrand
	}
	return c.PaymentMethodType
}

type wireEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object wireCharge `json:"object"`
	} `json:"data"`
}

type wireCharge struct {
	Amount              int64  `json:"amount"`
	AmountRefunded      int64  `json:"amount_refunded"`
	Currency            string `json:"currency"`
	Description         string `json:"description"`
	StatementDescriptor string `json:"statement_descriptor"`
	BillingDetails      struct {
		Name string `json:"name"`
	} `json:"billing_details"`
	PaymentMethodDetails struct {
		Type string `json:"type"`
		Card struct {
			Brand string `json:"brand"`
		} `json:"card"`
	} `json:"payment_method_details"`
	Application    string            `json:"application"`
	ApplicationFee int64             `json:"application_fee"`
	ReceiptURL     string            `json:"receipt_url"`
	Invoice        string            `json:"invoice"`
	PaymentIntent  string            `json:"payment_intent"`
	Customer       string            `json:"customer"`
	Metadata       map[string]string `json:"metadata"`
}

// ParseEvent decodes a raw webhook body into a PaymentEvent.
func ParseEvent(body []byte) (PaymentEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(body, &w); err != nil {
		return PaymentEvent{}, fmt.Errorf("parse stripe event: %w", err)
	}
	ch := w.Data.Object
	return PaymentEvent{
		ID:      w.ID,
		Kind:    kindOf(w.Type),
		RawType: w.Type,
		Charge: ChargePayload{
			Amount:              ch.Amount,
			AmountRefunded:      ch.AmountRefunded,
			Currency:            ch.Currency,
			Description:         ch.Description,
			StatementDescriptor: ch.StatementDescriptor,
			BillingName:         ch.BillingDetails.Name,
			PaymentMethodType:   ch.PaymentMethodDetails.Type,
			PaymentMethodBrand:  ch.PaymentMethodDetails.Card.Brand,
			ApplicationID:       ch.Application,
			ApplicationFee:      ch.ApplicationFee,
			ReceiptURL:          ch.ReceiptURL,
			InvoiceID:           ch.Invoice,
			PaymentIntentID:     ch.PaymentIntent,
			CustomerID:          ch.Customer,
			Metadata:            ch.Metadata,
		},
	}, nil
}

func kindOf(rawType string) EventKind {
	switch rawType {
	case typeChargeSucceeded:
		return KindChargeSucceeded
	case typeChargeRefunded:
		return KindChargeRefunded
	default:
		return KindOther
	}
}
