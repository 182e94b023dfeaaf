package mint

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/ledger"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

const InvoiceExpiryName = "invoice expiry"

var errSubscriptionEnded = errors.New("invoice subscription ended")

// InvoiceExpiryRunner expires unpaid invoices once they are grace past
// expires_at and the node confirms they never settled.
type InvoiceExpiryRunner struct {
	invoices *ledger.InvoiceLedger
	tracker  lightning.InvoiceTracker
	grace    time.Duration
	timeout  time.Duration

	expired atomic.Int64
	failed  atomic.Int64
}

// settledAtNode reads the current invoice state from the node. The first
// update of a subscription is the state the node holds.
func (x *InvoiceExpiryRunner) settledAtNode(invoice models.Invoice) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), x.timeout)
	defer cancel()

	states, errs, err := x.tracker.TrackInvoice(ctx, invoice.PaymentHash)
	if err != nil {
		return false, err
	}
	select {
	case state, ok := <-states:
		if !ok {
			return false, errSubscriptionEnded
		}
		return state == lightning.InvoiceStateSettled, nil
	case err := <-errs:
		if err == nil {
			err = errSubscriptionEnded
		}
		return false, err
	case <-ctx.Done():
		return false, common.WrapTimeout(ctx.Err())
	}
}

func (x *InvoiceExpiryRunner) Run() {
	var check ledger.PaymentCheck
	if x.tracker != nil {
		check = x.settledAtNode
	}
	expired, failed := x.invoices.ExpireDue(x.grace, check)
	x.expired.Add(expired)
	x.failed.Add(failed)
	if expired > 0 || failed > 0 {
		log.Info("[INVOICE EXPIRY] Expired ", expired, " invoices, ", failed, " failed")
	}
}

func (x *InvoiceExpiryRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{
		Processed: x.expired.Load(),
		Failed:    x.failed.Load(),
	}
}

// NewInvoiceExpiryRunner builds a runner. A nil tracker expires on the
// grace period alone.
func NewInvoiceExpiryRunner(invoices *ledger.InvoiceLedger, tracker lightning.InvoiceTracker, grace time.Duration, timeout time.Duration) *InvoiceExpiryRunner {
	return &InvoiceExpiryRunner{
		invoices: invoices,
		tracker:  tracker,
		grace:    grace,
		timeout:  timeout,
	}
}

func NewInvoiceExpiryService(invoices *ledger.InvoiceLedger, tracker lightning.InvoiceTracker, wg *sync.WaitGroup) app.Service {
	if !app.Config.InvoiceExpiry.Enabled {
		log.Debug("[INVOICE EXPIRY] Invoice expiry disabled")
		return app.NewEmptyService(wg)
	}

	log.Debug("[INVOICE EXPIRY] Initializing invoice expiry")
	runner := NewInvoiceExpiryRunner(
		invoices,
		tracker,
		time.Duration(app.Config.Settlement.ExpiryGraceSecs)*time.Second,
		time.Duration(app.Config.Settlement.CallTimeoutMillis)*time.Millisecond,
	)
	return app.NewRunnerService(
		InvoiceExpiryName,
		runner,
		wg,
		time.Duration(app.Config.InvoiceExpiry.IntervalMillis)*time.Millisecond,
	)
}
