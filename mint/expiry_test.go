package mint

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/ledger"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodeStates answers every subscription with a fixed current state.
type nodeStates map[string]lightning.InvoiceState

func (n nodeStates) TrackInvoice(ctx context.Context, paymentHash string) (<-chan lightning.InvoiceState, <-chan error, error) {
	state, ok := n[paymentHash]
	if !ok {
		return nil, nil, errors.New("invoice not found")
	}
	states := make(chan lightning.InvoiceState, 1)
	states <- state
	return states, make(chan error), nil
}

func TestInvoiceExpiryRunner(t *testing.T) {
	t.Run("Grace Only", func(t *testing.T) {
		invoices := ledger.NewInvoiceLedger(ledger.NewMemoryInvoiceStore())
		_, err := invoices.Create(ledger.NewInvoice{PaymentHash: "stale", AmountMsat: 1000, MintID: testMint, ExpiresAt: time.Now().Add(-time.Hour)})
		require.NoError(t, err)
		_, err = invoices.Create(ledger.NewInvoice{PaymentHash: "recent", AmountMsat: 1000, MintID: testMint, ExpiresAt: time.Now().Add(-time.Minute)})
		require.NoError(t, err)
		_, err = invoices.Create(ledger.NewInvoice{PaymentHash: "fresh", AmountMsat: 1000, MintID: testMint, ExpiresAt: time.Now().Add(time.Hour)})
		require.NoError(t, err)

		runner := NewInvoiceExpiryRunner(invoices, nil, 10*time.Minute, time.Second)
		runner.Run()
		runner.Run()

		assert.Equal(t, models.RunnerStatus{Processed: 1, Failed: 0}, runner.Status())
		stale, _ := invoices.GetByPaymentHash("stale")
		assert.Equal(t, models.InvoiceStatusExpired, stale.Status)
		recent, _ := invoices.GetByPaymentHash("recent")
		assert.Equal(t, models.InvoiceStatusUnpaid, recent.Status)
		fresh, _ := invoices.GetByPaymentHash("fresh")
		assert.Equal(t, models.InvoiceStatusUnpaid, fresh.Status)
	})

	t.Run("Settled At Node Stays Mintable", func(t *testing.T) {
		invoices := ledger.NewInvoiceLedger(ledger.NewMemoryInvoiceStore())
		for _, hash := range []string{"late-paid", "canceled", "unreachable"} {
			_, err := invoices.Create(ledger.NewInvoice{PaymentHash: hash, AmountMsat: 1000, MintID: testMint, ExpiresAt: time.Now().Add(-time.Hour)})
			require.NoError(t, err)
		}
		node := nodeStates{
			"late-paid": lightning.InvoiceStateSettled,
			"canceled":  lightning.InvoiceStateCanceled,
		}

		runner := NewInvoiceExpiryRunner(invoices, node, 10*time.Minute, time.Second)
		runner.Run()

		assert.Equal(t, models.RunnerStatus{Processed: 1, Failed: 1}, runner.Status())
		paid, _ := invoices.GetByPaymentHash("late-paid")
		assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
		assert.Equal(t, models.TokenStatusNotIssued, paid.TokenStatus)
		canceled, _ := invoices.GetByPaymentHash("canceled")
		assert.Equal(t, models.InvoiceStatusExpired, canceled.Status)
		unreachable, _ := invoices.GetByPaymentHash("unreachable")
		assert.Equal(t, models.InvoiceStatusUnpaid, unreachable.Status)
	})

	t.Run("Silent Node Times Out", func(t *testing.T) {
		invoices := ledger.NewInvoiceLedger(ledger.NewMemoryInvoiceStore())
		_, err := invoices.Create(ledger.NewInvoice{PaymentHash: "silent", AmountMsat: 1000, MintID: testMint, ExpiresAt: time.Now().Add(-time.Hour)})
		require.NoError(t, err)

		runner := NewInvoiceExpiryRunner(invoices, silentTracker{}, 0, 20*time.Millisecond)
		runner.Run()

		assert.Equal(t, models.RunnerStatus{Processed: 0, Failed: 1}, runner.Status())
		silent, _ := invoices.GetByPaymentHash("silent")
		assert.Equal(t, models.InvoiceStatusUnpaid, silent.Status)
	})
}

type silentTracker struct{}

func (silentTracker) TrackInvoice(ctx context.Context, paymentHash string) (<-chan lightning.InvoiceState, <-chan error, error) {
	return make(chan lightning.InvoiceState), make(chan error), nil
}

func TestNewInvoiceExpiryService(t *testing.T) {
	invoices := ledger.NewInvoiceLedger(ledger.NewMemoryInvoiceStore())

	t.Run("Disabled", func(t *testing.T) {
		app.Config.InvoiceExpiry.Enabled = false

		service := NewInvoiceExpiryService(invoices, nil, nil)

		assert.Equal(t, app.EmptyServiceName, service.Health().Name)
	})

	t.Run("Enabled", func(t *testing.T) {
		app.Config.InvoiceExpiry.Enabled = true
		app.Config.InvoiceExpiry.IntervalMillis = 1000
		defer func() { app.Config.InvoiceExpiry = models.ServiceConfig{} }()

		service := NewInvoiceExpiryService(invoices, nodeStates{}, &sync.WaitGroup{})

		assert.Equal(t, InvoiceExpiryName, service.Health().Name)
	})
}
