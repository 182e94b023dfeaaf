package lsp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

// TokenIssuer mints a serialized e-cash token. Implemented by the
// settlement coordinator.
type TokenIssuer interface {
	IssueToken(ctx context.Context, mintID string, amountMsat uint64) (string, error)
}

// Messenger delivers a token to a customer's public identity.
type Messenger interface {
	SendToken(ctx context.Context, recipient string, token string) error
}

const undelivered = "undelivered"

// DeliveryEngine forwards payments received for customer invoices. The
// strategies run in order and the first success ends the cascade.
type DeliveryEngine struct {
	customers   CustomerStore
	invoices    CustomerInvoiceStore
	node        lightning.NodeService
	issuer      TokenIssuer
	messenger   Messenger
	mintID      string
	callTimeout time.Duration
	now         func() time.Time
}

func NewDeliveryEngine(customers CustomerStore, invoices CustomerInvoiceStore, node lightning.NodeService, issuer TokenIssuer, messenger Messenger, mintID string, callTimeout time.Duration) *DeliveryEngine {
	return &DeliveryEngine{
		customers:   customers,
		invoices:    invoices,
		node:        node,
		issuer:      issuer,
		messenger:   messenger,
		mintID:      mintID,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// ChannelCapacitySat sizes a channel at 120% of the pushed amount.
func ChannelCapacitySat(amountMsat uint64) uint64 {
	return (amountMsat / common.MsatPerSat) * 12 / 10
}

func (e *DeliveryEngine) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.callTimeout)
}

// HandlePaymentReceived is the bus handler. Undeliverable payments and
// permanent failures are acknowledged after raising an alert. Other
// failures, timeouts included, are returned for redelivery.
func (e *DeliveryEngine) HandlePaymentReceived(ctx context.Context, event models.PaymentEvent) error {
	strategy, err := e.Deliver(ctx, event.PaymentHash, event.Amount())
	if err == nil {
		return nil
	}
	logger := log.WithField("payment_hash", event.PaymentHash).WithField("amount_msat", event.Amount())
	if errors.Is(err, common.ErrUndeliverablePayment) {
		app.Metrics().RecordDelivery(undelivered)
		logger.WithError(err).Error("[DELIVERY] Payment received but undeliverable, manual reconciliation required")
		return nil
	}
	if common.IsFatal(err) || common.IsPermanent(err) {
		logger.WithError(err).WithField("strategy", strategy).Error("[DELIVERY] Delivery failed, manual reconciliation required")
		return nil
	}
	logger.WithError(err).WithField("strategy", strategy).Warn("[DELIVERY] Delivery failed, leaving event for redelivery")
	return err
}

// Deliver runs the cascade for one received payment and reports the
// strategy that completed it.
func (e *DeliveryEngine) Deliver(ctx context.Context, paymentHash string, amountMsat uint64) (models.DeliveryStrategy, error) {
	logger := log.WithField("payment_hash", paymentHash)

	invoice, err := e.invoices.FindByPaymentHash(paymentHash)
	if errors.Is(err, common.ErrNotFound) {
		logger.Debug("[DELIVERY] No customer invoice for payment")
		return models.DeliveryNone, nil
	}
	if err != nil {
		return models.DeliveryNone, err
	}
	if invoice.DeliveredAt != nil {
		logger.WithField("via", invoice.DeliveredVia).Debug("[DELIVERY] Payment already delivered")
		return invoice.DeliveredVia, nil
	}
	if amountMsat == 0 {
		amountMsat = invoice.AmountMsat
	}

	customer, err := e.customers.FindByAlias(invoice.Alias)
	if errors.Is(err, common.ErrNotFound) {
		logger.WithField("alias", invoice.Alias).Warn("[DELIVERY] Customer of invoice not found")
		return models.DeliveryNone, nil
	}
	if err != nil {
		return models.DeliveryNone, err
	}
	logger = logger.WithField("alias", customer.Alias)

	if customer.NodeID == nil || *customer.NodeID == "" {
		logger.Debug("[DELIVERY] Customer has no node id")
		return models.DeliveryNone, nil
	}
	nodeID := *customer.NodeID

	strategy, err := e.cascade(ctx, logger, invoice, customer, nodeID, amountMsat)
	if err != nil {
		return strategy, err
	}

	if _, err := e.invoices.MarkDelivered(paymentHash, strategy, e.now()); err != nil {
		logger.WithError(err).Error("[DELIVERY] Error recording delivery")
	}
	app.Metrics().RecordDelivery(string(strategy))
	logger.WithField("strategy", strategy).Info("[DELIVERY] Payment delivered")
	return strategy, nil
}

func (e *DeliveryEngine) cascade(ctx context.Context, logger *log.Entry, invoice models.CustomerInvoice, customer models.Customer, nodeID string, amountMsat uint64) (models.DeliveryStrategy, error) {
	// a stored token means an earlier attempt already reached the last step
	if invoice.Token == "" {
		callCtx, cancel := e.call(ctx)
		_, err := e.node.SendKeysend(callCtx, nodeID, amountMsat)
		cancel()
		if err == nil {
			return models.DeliveryKeysend, nil
		}
		if errors.Is(err, common.ErrTimeout) {
			// the keysend may still land, falling through could pay twice
			return models.DeliveryKeysend, fmt.Errorf("keysend outcome unknown: %w", err)
		}
		logger.WithError(err).Warn("[DELIVERY] Keysend failed")

		if amountMsat > customer.Config.MinChannelSizeSat*common.MsatPerSat {
			capacity := ChannelCapacitySat(amountMsat)
			callCtx, cancel := e.call(ctx)
			_, err := e.node.OpenChannel(callCtx, nodeID, capacity, amountMsat, customer.Config.PublicChannels)
			cancel()
			if err == nil {
				logger.WithField("capacity_sat", capacity).Info("[DELIVERY] Opened channel")
				return models.DeliveryChannel, nil
			}
			if errors.Is(err, common.ErrTimeout) {
				return models.DeliveryChannel, fmt.Errorf("channel open outcome unknown: %w", err)
			}
			logger.WithError(err).Warn("[DELIVERY] Channel open failed")
		}
	}

	return models.DeliveryEcash, e.sendToken(ctx, invoice, customer, amountMsat)
}

func (e *DeliveryEngine) sendToken(ctx context.Context, invoice models.CustomerInvoice, customer models.Customer, amountMsat uint64) error {
	if customer.NostrPubkey == nil || *customer.NostrPubkey == "" {
		return fmt.Errorf("customer %s has no public identity: %w", customer.Alias, common.ErrUndeliverablePayment)
	}
	if !customer.Config.EnableEcash {
		return fmt.Errorf("customer %s disabled ecash: %w", customer.Alias, common.ErrUndeliverablePayment)
	}
	if amountMsat > customer.Config.MaxEcashReceiveSat*common.MsatPerSat {
		return fmt.Errorf("%d msat above ecash limit of %s: %w", amountMsat, customer.Alias, common.ErrUndeliverablePayment)
	}

	token := invoice.Token
	if token == "" {
		issued, err := e.issuer.IssueToken(ctx, e.mintID, amountMsat)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		stored, err := e.invoices.SetToken(invoice.PaymentHash, issued)
		if err != nil {
			// circulation is already credited, a redelivery would mint again
			log.WithField("payment_hash", invoice.PaymentHash).WithField("amount_msat", amountMsat).WithError(err).
				Error("[DELIVERY] Issued token not stored, sending it without a record")
			if serr := e.send(ctx, *customer.NostrPubkey, issued); serr != nil {
				return fmt.Errorf("store token: %w", errors.Join(common.ErrUnrecordedToken, err, serr))
			}
			return nil
		}
		token = stored
	}

	return e.send(ctx, *customer.NostrPubkey, token)
}

func (e *DeliveryEngine) send(ctx context.Context, recipient string, token string) error {
	callCtx, cancel := e.call(ctx)
	defer cancel()
	if err := e.messenger.SendToken(callCtx, recipient, token); err != nil {
		return fmt.Errorf("send token: %w", common.WrapTimeout(err))
	}
	return nil
}
