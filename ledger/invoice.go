package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// InvoiceStore persists invoices. Every status mutation is a conditional
// write that reports whether the guard matched.
type InvoiceStore interface {
	Insert(invoice models.Invoice) error
	FindByHash(hash string) (models.Invoice, error)
	FindByPaymentHash(paymentHash string) (models.Invoice, error)
	UpdateStatus(paymentHash string, from []models.InvoiceStatus, to models.InvoiceStatus, at time.Time) (bool, error)
	MarkTokenIssued(hash string, at time.Time) (bool, error)
	FindExpirable(now time.Time) ([]models.Invoice, error)
	FindUnsettled() ([]models.Invoice, error)
}

type NewInvoice struct {
	PaymentHash string
	AmountMsat  uint64
	Bolt11      string
	MintID      string
	Memo        string
	ExpiresAt   time.Time
}

type InvoiceLedger struct {
	store InvoiceStore
	now   func() time.Time
}

func NewInvoiceLedger(store InvoiceStore) *InvoiceLedger {
	return &InvoiceLedger{store: store, now: time.Now}
}

func (l *InvoiceLedger) Create(req NewInvoice) (models.Invoice, error) {
	if req.PaymentHash == "" || req.MintID == "" {
		return models.Invoice{}, fmt.Errorf("create invoice: %w", common.ErrInvalidRequest)
	}
	now := l.now()
	invoice := models.Invoice{
		Hash:        uuid.NewString(),
		PaymentHash: req.PaymentHash,
		AmountMsat:  req.AmountMsat,
		Status:      models.InvoiceStatusUnpaid,
		TokenStatus: models.TokenStatusNotIssued,
		Memo:        req.Memo,
		Bolt11:      req.Bolt11,
		MintID:      req.MintID,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := l.store.Insert(invoice); err != nil {
		return models.Invoice{}, fmt.Errorf("create invoice %s: %w", req.PaymentHash, err)
	}
	log.WithField("payment_hash", invoice.PaymentHash).WithField("mint_id", invoice.MintID).Debug("[INVOICE LEDGER] Created invoice")
	return invoice, nil
}

func (l *InvoiceLedger) GetByHash(hash string) (models.Invoice, error) {
	return l.store.FindByHash(hash)
}

func (l *InvoiceLedger) GetByPaymentHash(paymentHash string) (models.Invoice, error) {
	return l.store.FindByPaymentHash(paymentHash)
}

// MarkPaid is idempotent for invoices that are already paid.
func (l *InvoiceLedger) MarkPaid(paymentHash string) (models.Invoice, error) {
	from := []models.InvoiceStatus{models.InvoiceStatusUnpaid, models.InvoiceStatusInFlight}
	_, err := l.store.UpdateStatus(paymentHash, from, models.InvoiceStatusPaid, l.now())
	if err != nil {
		return models.Invoice{}, fmt.Errorf("mark paid %s: %w", paymentHash, err)
	}
	// the row is read back either way, a lost race against another MarkPaid
	// still ends up paid
	invoice, err := l.store.FindByPaymentHash(paymentHash)
	if err != nil {
		return models.Invoice{}, err
	}
	if invoice.Status != models.InvoiceStatusPaid {
		return invoice, fmt.Errorf("mark paid %s from %s: %w", paymentHash, invoice.Status, common.ErrInvalidTransition)
	}
	log.WithField("payment_hash", paymentHash).Debug("[INVOICE LEDGER] Invoice paid")
	return invoice, nil
}

func (l *InvoiceLedger) MarkInFlight(paymentHash string) error {
	return l.transition(paymentHash, []models.InvoiceStatus{models.InvoiceStatusUnpaid}, models.InvoiceStatusInFlight)
}

func (l *InvoiceLedger) Expire(paymentHash string) error {
	from := []models.InvoiceStatus{models.InvoiceStatusUnpaid, models.InvoiceStatusInFlight}
	return l.transition(paymentHash, from, models.InvoiceStatusExpired)
}

func (l *InvoiceLedger) transition(paymentHash string, from []models.InvoiceStatus, to models.InvoiceStatus) error {
	matched, err := l.store.UpdateStatus(paymentHash, from, to, l.now())
	if err != nil {
		return fmt.Errorf("transition %s to %s: %w", paymentHash, to, err)
	}
	if matched {
		return nil
	}
	invoice, err := l.store.FindByPaymentHash(paymentHash)
	if err != nil {
		return err
	}
	if invoice.Status == to {
		return nil
	}
	return fmt.Errorf("transition %s from %s to %s: %w", paymentHash, invoice.Status, to, common.ErrInvalidTransition)
}

// MarkIssued flips token_status exactly once. Concurrent callers on the same
// hash race on the storage guard and all but one observe
// ErrPreventDoubleIssuance.
func (l *InvoiceLedger) MarkIssued(hash string) error {
	matched, err := l.store.MarkTokenIssued(hash, l.now())
	if err != nil {
		return fmt.Errorf("mark issued %s: %w", hash, err)
	}
	if matched {
		log.WithField("hash", hash).Debug("[INVOICE LEDGER] Tokens issued")
		return nil
	}
	invoice, err := l.store.FindByHash(hash)
	if err != nil {
		return err
	}
	return checkIssuable(invoice)
}

func checkIssuable(invoice models.Invoice) error {
	if invoice.TokenStatus == models.TokenStatusIssued {
		return fmt.Errorf("invoice %s: %w", invoice.Hash, common.ErrPreventDoubleIssuance)
	}
	if invoice.Status != models.InvoiceStatusPaid {
		return fmt.Errorf("invoice %s is %s: %w", invoice.Hash, invoice.Status, common.ErrInvoiceNotPayable)
	}
	return nil
}

func (l *InvoiceLedger) ListExpirable(now time.Time) ([]models.Invoice, error) {
	return l.store.FindExpirable(now)
}

// ListOpen returns every unpaid and in flight invoice, expired ones
// included. A payment may have settled at the node just before expiry.
func (l *InvoiceLedger) ListOpen() ([]models.Invoice, error) {
	return l.store.FindUnsettled()
}

// PaymentCheck reports whether the node settled an invoice.
type PaymentCheck func(invoice models.Invoice) (bool, error)

// ExpireDue expires unpaid invoices more than grace past their expiry and
// returns how many were expired and how many failed. With a check, invoices
// the node reports settled are marked paid instead and unconfirmed ones are
// left for the next run.
func (l *InvoiceLedger) ExpireDue(grace time.Duration, check PaymentCheck) (int64, int64) {
	invoices, err := l.ListExpirable(l.now().Add(-grace))
	if err != nil {
		log.WithError(err).Error("[INVOICE LEDGER] Error listing expirable invoices")
		return 0, 1
	}
	var expired, failed int64
	for _, invoice := range invoices {
		logger := log.WithField("payment_hash", invoice.PaymentHash)
		if check != nil {
			settled, err := check(invoice)
			if err != nil {
				failed++
				logger.WithError(err).Warn("[INVOICE LEDGER] Error checking invoice at node")
				continue
			}
			if settled {
				if _, err := l.MarkPaid(invoice.PaymentHash); err != nil {
					failed++
					logger.WithError(err).Error("[INVOICE LEDGER] Error marking settled invoice paid")
				} else {
					logger.Warn("[INVOICE LEDGER] Invoice settled at node past expiry, marked paid")
				}
				continue
			}
		}
		err := l.Expire(invoice.PaymentHash)
		if err == nil {
			expired++
			continue
		}
		// paid in the meantime
		if errors.Is(err, common.ErrInvalidTransition) {
			continue
		}
		failed++
		logger.WithError(err).Error("[INVOICE LEDGER] Error expiring invoice")
	}
	if expired > 0 {
		log.Info("[INVOICE LEDGER] Expired ", expired, " invoices")
	}
	return expired, failed
}
