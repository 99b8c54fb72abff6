// Package payment talks to the external card processor. It creates payment
// intents for new donations and authenticates the processor's webhook events.
package payment

import (
	"context"
	"fmt"
)

// Intent is the processor-side handle for a pending charge
type Intent struct {
	ID           string
	ClientSecret string
}

type Processor interface {
	// CreatePaymentIntent asks the processor to prepare a charge of amountMinor
	// units of currency. Metadata is attached to the intent verbatim.
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)
}

// ProcessorError carries a rejection reported by the processor itself, as
// opposed to a transport failure.
type ProcessorError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *ProcessorError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment processor error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("payment processor error (%d): %s", e.StatusCode, e.Message)
}
