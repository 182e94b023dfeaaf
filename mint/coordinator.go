package mint

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/ledger"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

const (
	OperationRequestMint = "request_mint"
	OperationMint        = "mint"
	OperationSplit       = "split"
	OperationMelt        = "melt"
	OperationIssueToken  = "issue_token"
)

type Ledgers struct {
	Invoices *ledger.InvoiceLedger
	Account  *ledger.MintAccount
	Proofs   *ledger.ProofStore
	Melts    *ledger.PendingMelts
}

type Options struct {
	CallTimeout        time.Duration
	LockTimeout        time.Duration
	InvoiceExpiry      time.Duration
	InvoiceDescription string
	Network            string
}

func OptionsFromConfig() Options {
	return Options{
		CallTimeout:        time.Duration(app.Config.Settlement.CallTimeoutMillis) * time.Millisecond,
		LockTimeout:        time.Duration(app.Config.Settlement.LockTimeoutMillis) * time.Millisecond,
		InvoiceExpiry:      time.Duration(app.Config.Settlement.InvoiceExpirySecs) * time.Second,
		InvoiceDescription: app.Config.Settlement.InvoiceDescription,
		Network:            app.Config.Lnd.Network,
	}
}

// Coordinator sequences engine and node calls with ledger mutations. Every
// operation that moves value runs under the mint lock from the first check
// to the last write.
type Coordinator struct {
	ledgers Ledgers
	engine  Engine
	node    lightning.NodeService
	locker  app.Locker
	opts    Options
}

func NewCoordinator(ledgers Ledgers, engine Engine, node lightning.NodeService, locker app.Locker, opts Options) *Coordinator {
	return &Coordinator{
		ledgers: ledgers,
		engine:  engine,
		node:    node,
		locker:  locker,
		opts:    opts,
	}
}

type MintRequest struct {
	Hash        string
	PaymentHash string
	Outputs     models.BlindedMessages
}

type MeltRequest struct {
	Bolt11  string
	Proofs  models.Proofs
	Outputs models.BlindedMessages
}

type MeltResult struct {
	Paid     bool
	Preimage string
	FeeMsat  uint64
	Change   models.BlindedSignatures
}

// checkAmounts rejects proofs or outputs whose amounts do not add up
// within a uint64.
func checkAmounts(proofs models.Proofs, outputs models.BlindedMessages) error {
	if _, ok := proofs.Sum(); !ok {
		return fmt.Errorf("proof amounts overflow: %w", common.ErrInvalidRequest)
	}
	if _, ok := outputs.Sum(); !ok {
		return fmt.Errorf("output amounts overflow: %w", common.ErrInvalidRequest)
	}
	return nil
}

func lockResource(mintID string) string {
	return fmt.Sprintf("%s/%s", "mint", mintID)
}

// withMintLock runs fn holding the mint lock. Once acquired, fn runs to
// completion even if ctx is canceled.
func (c *Coordinator) withMintLock(ctx context.Context, mintID string, fn func(ctx context.Context) error) error {
	lockCtx, cancel := context.WithTimeout(ctx, c.opts.LockTimeout)
	defer cancel()

	unlock, err := c.locker.Lock(lockCtx, lockResource(mintID))
	if err != nil {
		return fmt.Errorf("lock %s: %w", mintID, common.WrapTimeout(err))
	}
	defer unlock()

	return fn(context.WithoutCancel(ctx))
}

func (c *Coordinator) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opts.CallTimeout)
}

func (c *Coordinator) record(mintID string, operation string, err error) {
	app.Metrics().RecordOperation(mintID, operation, err)
	if err != nil {
		return
	}
	if circulation, err := c.ledgers.Account.GetCirculation(mintID); err == nil {
		app.Metrics().SetCirculation(mintID, circulation)
	}
}

// RequestMint creates a node invoice for amountMsat and records it against
// the mint.
func (c *Coordinator) RequestMint(ctx context.Context, mintID string, amountMsat uint64) (invoice models.Invoice, err error) {
	defer func() { c.record(mintID, OperationRequestMint, err) }()

	if amountMsat == 0 {
		return models.Invoice{}, fmt.Errorf("zero amount: %w", common.ErrInvalidRequest)
	}
	if _, err := c.ledgers.Account.GetMint(mintID); err != nil {
		return models.Invoice{}, err
	}

	callCtx, cancel := c.call(ctx)
	defer cancel()
	created, err := c.node.CreateInvoice(callCtx, amountMsat, c.opts.InvoiceExpiry, c.opts.InvoiceDescription)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("create node invoice: %w", common.WrapTimeout(err))
	}

	return c.ledgers.Invoices.Create(ledger.NewInvoice{
		PaymentHash: created.PaymentHash,
		AmountMsat:  amountMsat,
		Bolt11:      created.PaymentRequest,
		MintID:      mintID,
		Memo:        c.opts.InvoiceDescription,
		ExpiresAt:   created.ExpiresAt,
	})
}

func (c *Coordinator) findInvoice(mintID string, req MintRequest) (models.Invoice, error) {
	var invoice models.Invoice
	var err error
	switch {
	case req.Hash != "":
		invoice, err = c.ledgers.Invoices.GetByHash(req.Hash)
	case req.PaymentHash != "":
		invoice, err = c.ledgers.Invoices.GetByPaymentHash(req.PaymentHash)
	default:
		return invoice, fmt.Errorf("hash or payment hash required: %w", common.ErrInvalidRequest)
	}
	if err != nil {
		return invoice, err
	}
	if invoice.MintID != mintID {
		return invoice, fmt.Errorf("invoice of mint %s: %w", invoice.MintID, common.ErrNotFound)
	}
	return invoice, nil
}

// ProcessMint signs outputs worth exactly the paid invoice amount. A failed
// signature leaves the invoice paid and not issued so the caller can retry.
func (c *Coordinator) ProcessMint(ctx context.Context, mintID string, req MintRequest) (promises models.BlindedSignatures, err error) {
	defer func() { c.record(mintID, OperationMint, err) }()
	logger := log.WithField("mint_id", mintID).WithField("hash", req.Hash).WithField("payment_hash", req.PaymentHash)

	err = c.withMintLock(ctx, mintID, func(ctx context.Context) error {
		invoice, err := c.findInvoice(mintID, req)
		if err != nil {
			return err
		}
		if invoice.TokenStatus == models.TokenStatusIssued {
			return fmt.Errorf("invoice %s: %w", invoice.Hash, common.ErrPreventDoubleIssuance)
		}
		if invoice.Status != models.InvoiceStatusPaid {
			return fmt.Errorf("invoice %s is %s: %w", invoice.Hash, invoice.Status, common.ErrInvoiceNotPayable)
		}
		total, ok := req.Outputs.Sum()
		if !ok {
			return fmt.Errorf("outputs overflow: %w", common.ErrAmountMismatch)
		}
		if total != invoice.AmountMsat {
			return fmt.Errorf("outputs %d msat, invoice %d msat: %w", total, invoice.AmountMsat, common.ErrAmountMismatch)
		}

		callCtx, cancel := c.call(ctx)
		signed, err := c.engine.Issue(callCtx, mintID, req.Outputs)
		cancel()
		if err != nil {
			return fmt.Errorf("issue for invoice %s: %w", invoice.Hash, common.WrapTimeout(err))
		}

		if err := c.ledgers.Invoices.MarkIssued(invoice.Hash); err != nil {
			return err
		}
		if _, err := c.ledgers.Account.Credit(mintID, invoice.AmountMsat); err != nil {
			// token status already flipped, circulation must be repaired by hand
			logger.WithError(err).Error("[SETTLEMENT] Error crediting issued invoice")
			return err
		}
		promises = signed
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("[SETTLEMENT] Mint failed")
		return nil, err
	}
	logger.Info("[SETTLEMENT] Minted ", len(promises), " promises")
	return promises, nil
}

// ProcessSplit exchanges proofs for new promises of the same value. Promises
// are only returned once the input secrets are recorded as spent.
func (c *Coordinator) ProcessSplit(ctx context.Context, mintID string, proofs models.Proofs, outputs models.BlindedMessages) (promises models.BlindedSignatures, err error) {
	defer func() { c.record(mintID, OperationSplit, err) }()
	logger := log.WithField("mint_id", mintID)

	if len(proofs) == 0 {
		return nil, fmt.Errorf("no proofs: %w", common.ErrInvalidRequest)
	}
	if err := checkAmounts(proofs, outputs); err != nil {
		return nil, err
	}

	err = c.withMintLock(ctx, mintID, func(ctx context.Context) error {
		if _, err := c.ledgers.Account.GetMint(mintID); err != nil {
			return err
		}
		if err := c.ledgers.Proofs.CheckUnspent(mintID, proofs); err != nil {
			return err
		}

		callCtx, cancel := c.call(ctx)
		signed, err := c.engine.VerifyAndSignSplit(callCtx, mintID, proofs, outputs)
		cancel()
		if err != nil {
			return fmt.Errorf("split: %w", common.WrapTimeout(err))
		}

		if err := c.ledgers.Proofs.RecordUsedProofs(mintID, proofs); err != nil {
			logger.WithError(err).Warn("[SETTLEMENT] Discarding ", len(signed), " split promises")
			return err
		}
		promises = signed
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("[SETTLEMENT] Split failed")
		return nil, err
	}
	logger.Info("[SETTLEMENT] Split ", len(proofs), " proofs into ", len(promises), " promises")
	return promises, nil
}

// ProcessMelt pays bolt11 with proofs. The proofs are only marked spent
// after the payment succeeded, a pending marker covers the gap.
func (c *Coordinator) ProcessMelt(ctx context.Context, mintID string, req MeltRequest) (result *MeltResult, err error) {
	defer func() { c.record(mintID, OperationMelt, err) }()

	decoded, err := lightning.DecodeInvoice(req.Bolt11, c.opts.Network)
	if err != nil {
		return nil, err
	}
	if decoded.AmountMsat == 0 {
		return nil, fmt.Errorf("amountless invoice: %w", common.ErrInvalidRequest)
	}
	if len(req.Proofs) == 0 {
		return nil, fmt.Errorf("no proofs: %w", common.ErrInvalidRequest)
	}
	if err := checkAmounts(req.Proofs, req.Outputs); err != nil {
		return nil, err
	}
	paid := decoded.AmountMsat
	logger := log.WithField("mint_id", mintID).WithField("payment_hash", decoded.PaymentHash)

	err = c.withMintLock(ctx, mintID, func(ctx context.Context) error {
		mint, err := c.ledgers.Account.GetMint(mintID)
		if err != nil {
			return err
		}
		if err := c.ledgers.Proofs.CheckUnspent(mintID, req.Proofs); err != nil {
			return err
		}

		required := paid + mint.FeeReservePolicy.Reserve(paid)
		callCtx, cancel := c.call(ctx)
		err = c.engine.VerifyMelt(callCtx, mintID, req.Proofs, required)
		cancel()
		if err != nil {
			return fmt.Errorf("verify melt of %d msat: %w", required, common.WrapTimeout(err))
		}

		pending, err := c.ledgers.Melts.Begin(mintID, req.Bolt11, decoded.PaymentHash, paid, req.Proofs)
		if err != nil {
			return err
		}
		logger = logger.WithField("melt_id", pending.MeltID)

		callCtx, cancel = c.call(ctx)
		payment, err := c.node.PayInvoice(callCtx, req.Bolt11, 0)
		cancel()
		if err != nil {
			if errors.Is(err, common.ErrTimeout) {
				// outcome unknown, the marker stays pending for reconciliation
				logger.WithError(err).Error("[SETTLEMENT] Payment outcome unknown")
				return err
			}
			if ferr := c.ledgers.Melts.Fail(pending.MeltID); ferr != nil {
				logger.WithError(ferr).Error("[SETTLEMENT] Error failing pending melt")
			}
			return fmt.Errorf("pay %s: %w", decoded.PaymentHash, err)
		}

		if err := c.ledgers.Proofs.RecordUsedProofs(mintID, req.Proofs); err != nil {
			logger.WithError(err).Error("[SETTLEMENT] Payment sent but proofs not recorded")
			return err
		}

		var change models.BlindedSignatures
		if len(req.Outputs) > 0 {
			callCtx, cancel = c.call(ctx)
			change, err = c.engine.SignChange(callCtx, mintID, req.Proofs, paid+payment.FeeMsat, req.Outputs)
			cancel()
			if err != nil {
				logger.WithError(err).Error("[SETTLEMENT] Error signing melt change")
				change = nil
			}
		}

		debit, carry := bits.Add64(paid, change.Total(), 0)
		if carry != 0 {
			logger.Error("[SETTLEMENT] Melt change overflows debit, discarding change")
			change, debit = nil, paid
		}
		if _, err := c.ledgers.Account.Debit(mintID, debit); err != nil {
			return err
		}
		if err := c.ledgers.Melts.Settle(pending.MeltID); err != nil {
			logger.WithError(err).Error("[SETTLEMENT] Error settling pending melt")
		}

		result = &MeltResult{
			Paid:     true,
			Preimage: payment.Preimage,
			FeeMsat:  payment.FeeMsat,
			Change:   change,
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("[SETTLEMENT] Melt failed")
		return nil, err
	}
	logger.Info("[SETTLEMENT] Melted ", paid, " msat")
	return result, nil
}

// IssueToken mints a serialized token worth amountMsat without a backing
// invoice. Used by the delivery cascade after a payment was received.
func (c *Coordinator) IssueToken(ctx context.Context, mintID string, amountMsat uint64) (token string, err error) {
	defer func() { c.record(mintID, OperationIssueToken, err) }()

	if amountMsat == 0 {
		return "", fmt.Errorf("zero amount: %w", common.ErrInvalidRequest)
	}

	err = c.withMintLock(ctx, mintID, func(ctx context.Context) error {
		if _, err := c.ledgers.Account.GetMint(mintID); err != nil {
			return err
		}

		callCtx, cancel := c.call(ctx)
		issued, err := c.engine.IssueToken(callCtx, mintID, amountMsat)
		cancel()
		if err != nil {
			return fmt.Errorf("issue token: %w", common.WrapTimeout(err))
		}

		if _, err := c.ledgers.Account.Credit(mintID, amountMsat); err != nil {
			return err
		}
		token = issued
		return nil
	})
	if err != nil {
		log.WithError(err).WithField("mint_id", mintID).Warn("[SETTLEMENT] Token issuance failed")
		return "", err
	}
	log.WithField("mint_id", mintID).Info("[SETTLEMENT] Issued token of ", amountMsat, " msat")
	return token, nil
}

// CheckFees returns the fee reserve a melt of bolt11 has to cover.
func (c *Coordinator) CheckFees(mintID string, bolt11 string) (uint64, error) {
	mint, err := c.ledgers.Account.GetMint(mintID)
	if err != nil {
		return 0, err
	}
	decoded, err := lightning.DecodeInvoice(bolt11, c.opts.Network)
	if err != nil {
		return 0, err
	}
	return mint.FeeReservePolicy.Reserve(decoded.AmountMsat), nil
}

func (c *Coordinator) Keys(ctx context.Context, mintID string, keysetID string) (models.Keys, error) {
	mint, err := c.ledgers.Account.GetMint(mintID)
	if err != nil {
		return nil, err
	}
	if keysetID == "" {
		keysetID = mint.ActiveKeysetID
	}
	callCtx, cancel := c.call(ctx)
	defer cancel()
	keys, err := c.engine.Keys(callCtx, mintID, keysetID)
	return keys, common.WrapTimeout(err)
}

func (c *Coordinator) Keysets(ctx context.Context, mintID string) ([]models.Keyset, error) {
	if _, err := c.ledgers.Account.GetMint(mintID); err != nil {
		return nil, err
	}
	callCtx, cancel := c.call(ctx)
	defer cancel()
	keysets, err := c.engine.Keysets(callCtx, mintID)
	return keysets, common.WrapTimeout(err)
}

func (c *Coordinator) Info(ctx context.Context, mintID string) (models.MintInfo, error) {
	if _, err := c.ledgers.Account.GetMint(mintID); err != nil {
		return models.MintInfo{}, err
	}
	callCtx, cancel := c.call(ctx)
	defer cancel()
	info, err := c.engine.Info(callCtx, mintID)
	return info, common.WrapTimeout(err)
}

// HandlePaymentReceived marks the matching invoice paid. Payments for
// invoices this side does not know are acknowledged and ignored.
func (c *Coordinator) HandlePaymentReceived(ctx context.Context, event models.PaymentEvent) error {
	logger := log.WithField("payment_hash", event.PaymentHash)

	invoice, err := c.ledgers.Invoices.MarkPaid(event.PaymentHash)
	switch {
	case err == nil:
		logger.WithField("mint_id", invoice.MintID).Info("[SETTLEMENT] Invoice paid")
		return nil
	case errors.Is(err, common.ErrNotFound):
		logger.Debug("[SETTLEMENT] Ignoring payment for unknown invoice")
		return nil
	case errors.Is(err, common.ErrInvalidTransition):
		logger.WithError(err).Warn("[SETTLEMENT] Payment received for expired invoice")
		return nil
	}
	logger.WithError(err).Error("[SETTLEMENT] Error marking invoice paid")
	return err
}

// ReconcilePending reports melts whose payment outcome was never recorded.
// They are left untouched for the operator.
func (c *Coordinator) ReconcilePending() (int, error) {
	melts, err := c.ledgers.Melts.Unresolved()
	if err != nil {
		return 0, err
	}
	for _, melt := range melts {
		log.WithFields(log.Fields{
			"melt_id":      melt.MeltID,
			"mint_id":      melt.MintID,
			"payment_hash": melt.PaymentHash,
			"amount_msat":  melt.AmountMsat,
			"secrets":      len(melt.Secrets),
			"created_at":   melt.CreatedAt,
		}).Error("[SETTLEMENT] Unresolved melt requires manual reconciliation")
	}
	return len(melts), nil
}
