package processor

import (
	"context"
	"errors"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Omise creates payment sources through the Omise API. The source id doubles as the
// client handle: the browser completes the source flow and a charge is made against it.
type Omise struct {
	client     *omise.Client
	sourceType string
}

// NewOmise creates an Omise processor. sourceType defaults to promptpay.
func NewOmise(publicKey, secretKey, sourceType string) (*Omise, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	if sourceType == "" {
		sourceType = "promptpay"
	}
	return &Omise{client: c, sourceType: sourceType}, nil
}

// CreatePaymentIntent creates a source for amount and returns its id as the client secret.
// Client.WithContext sets the context on the shared client, so ctx is only checked before the call.
func (o *Omise) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := &omise.Source{}
	req := &operations.CreateSource{
		Type:     o.sourceType,
		Amount:   amount,
		Currency: currency,
	}
	if err := o.client.Do(src, req); err != nil {
		return nil, err
	}
	if src.ID == "" {
		return nil, errors.New("omise returned a source without id")
	}
	return &Intent{
		ID:           src.ID,
		ClientSecret: src.ID,
		Amount:       src.Amount,
		Currency:     src.Currency,
	}, nil
}
