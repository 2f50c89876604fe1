package opencollective

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/machinebox/graphql"

	"github.com/payops/stripe-discord-relay/internal/relay/domain"
)

const DefaultEndpoint = "https://api.opencollective.com/graphql/v2"

// Every lookup is bounded; a slow Open Collective API must surface as a
// lookup failure, not hang the webhook request.
const lookupTimeout = 3 * time.Second

const orderInfoQuery = `
query getOrderInfo($orderId: Int!) {
  order(order: { legacyId: $orderId }) {
    description
    platformTipAmount {
      value
      currency
    }
    tax {
      type
      rate
    }
    hostFeePercent
    totalAmount {
      value
      currency
    }
    createdByAccount {
      slug
      name
      description
      imageUrl
    }
  }
}`

// Client implements application.OrderLookup against the Open Collective
// GraphQL API with a single fixed query. No retries.
type Client struct {
	log *slog.Logger
	gql *graphql.Client
}

func New(log *slog.Logger, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{log: log, gql: graphql.NewClient(endpoint)}
}

func (c *Client) GetOrderInfo(ctx context.Context, orderID int) (domain.OrderInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req := graphql.NewRequest(orderInfoQuery)
	req.Var("orderId", orderID)

	var resp struct {
		Order *domain.OrderInfo `json:"order"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return domain.OrderInfo{}, fmt.Errorf("order %d: %w", orderID, err)
	}
	if resp.Order == nil {
		return domain.OrderInfo{}, fmt.Errorf("order %d: not found", orderID)
	}
	return *resp.Order, nil
}
