package infra

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// CheckoutItem is one order line mapped into the provider's format.
type CheckoutItem struct {
	Title     string
	UnitPrice float64
	Quantity  int
}

// CheckoutSession is the redirect handle the provider returns.
type CheckoutSession struct {
	ID  string
	URL string
}

// RedirectURLs are where the provider sends the buyer after checkout.
type RedirectURLs struct {
	Success string
	Failure string
	Pending string
}

// CheckoutGateway abstracts the payment provider so services and tests never
// touch the SDK.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, orderID uint, items []CheckoutItem, urls RedirectURLs) (*CheckoutSession, error)
}

// StripeGateway creates hosted Checkout Sessions.
type StripeGateway struct {
	client *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{client: client.New(secretKey, nil)}
}

func (g *StripeGateway) CreateSession(ctx context.Context, orderID uint, items []CheckoutItem, urls RedirectURLs) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(item.UnitPrice * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(urls.Success),
		CancelURL:  stripe.String(urls.Failure),
	}
	params.Context = ctx
	params.AddMetadata("orderId", strconv.FormatUint(uint64(orderID), 10))

	s, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("checkout: create session: %w", err)
	}

	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
