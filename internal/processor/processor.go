package processor

import (
	"context"
	"fmt"
)

// Intent is what a processor hands back for a pending card payment. ClientSecret is the
// value the browser needs to confirm the payment out of band.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Processor creates payment intents with an external payment provider. Amount is in the
// currency's minor unit.
type Processor interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// Options selects and configures a processor.
type Options struct {
	Provider        string
	StripeSecretKey string
	OmisePublicKey  string
	OmiseSecretKey  string
	OmiseSourceType string
}

// New builds the processor named by opts.Provider ("stripe" or "omise").
func New(opts Options) (Processor, error) {
	switch opts.Provider {
	case "stripe", "":
		return NewStripe(opts.StripeSecretKey), nil
	case "omise":
		return NewOmise(opts.OmisePublicKey, opts.OmiseSecretKey, opts.OmiseSourceType)
	default:
		return nil, fmt.Errorf("unknown payment provider %q", opts.Provider)
	}
}
