package lightning

import (
	"context"
	"time"
)

type Invoice struct {
	PaymentHash    string
	PaymentRequest string
	AmountMsat     uint64
	ExpiresAt      time.Time
}

type PaymentResult struct {
	PaymentHash string
	Preimage    string
	AmountMsat  uint64
	FeeMsat     uint64
}

// NodeService is the Lightning node collaborator. Payment failures wrap
// common.ErrPayment, channel failures wrap common.ErrChannel.
type NodeService interface {
	CreateInvoice(ctx context.Context, amountMsat uint64, expiry time.Duration, description string) (*Invoice, error)
	PayInvoice(ctx context.Context, bolt11 string, amountMsat uint64) (*PaymentResult, error)
	SendKeysend(ctx context.Context, nodeID string, amountMsat uint64) (*PaymentResult, error)
	OpenChannel(ctx context.Context, nodeID string, amountSats uint64, pushMsat uint64, public bool) (string, error)
}

type InvoiceState string

const (
	InvoiceStateOpen     InvoiceState = "open"
	InvoiceStateSettled  InvoiceState = "settled"
	InvoiceStateCanceled InvoiceState = "canceled"
)

// InvoiceTracker streams state changes of one invoice until ctx is done.
type InvoiceTracker interface {
	TrackInvoice(ctx context.Context, paymentHash string) (<-chan InvoiceState, <-chan error, error)
}
