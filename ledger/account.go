package ledger

import (
	"fmt"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

type MintStore interface {
	Ensure(mint models.MintLedger) error
	Find(mintID string) (models.MintLedger, error)
	Increment(mintID string, amountMsat uint64) (models.MintLedger, error)
	// Decrement only applies when circulation covers the amount. The bool is
	// false when the guard did not match.
	Decrement(mintID string, amountMsat uint64) (models.MintLedger, bool, error)
}

// MintAccount tracks circulation per mint. Callers hold the mint lock.
type MintAccount struct {
	store MintStore
}

func NewMintAccount(store MintStore) *MintAccount {
	return &MintAccount{store: store}
}

func (a *MintAccount) EnsureMint(config models.MintConfig) error {
	mint := models.MintLedger{
		MintID:            config.MintID,
		ActiveKeysetID:    config.ActiveKeysetID,
		InactiveKeysetIDs: config.InactiveKeysetIDs,
		MaxOrder:          config.MaxOrder,
		FeeReservePolicy:  config.FeeReservePolicy,
	}
	if mint.InactiveKeysetIDs == nil {
		mint.InactiveKeysetIDs = []string{}
	}
	if err := a.store.Ensure(mint); err != nil {
		return fmt.Errorf("ensure mint %s: %w", config.MintID, err)
	}
	return nil
}

func (a *MintAccount) GetMint(mintID string) (models.MintLedger, error) {
	return a.store.Find(mintID)
}

func (a *MintAccount) GetCirculation(mintID string) (uint64, error) {
	mint, err := a.store.Find(mintID)
	if err != nil {
		return 0, err
	}
	return mint.CirculationMsat, nil
}

func (a *MintAccount) Credit(mintID string, amountMsat uint64) (uint64, error) {
	mint, err := a.store.Increment(mintID, amountMsat)
	if err != nil {
		return 0, fmt.Errorf("credit %s: %w", mintID, err)
	}
	return mint.CirculationMsat, nil
}

// Debit never clamps. An amount above circulation is an invariant breach and
// leaves the ledger untouched.
func (a *MintAccount) Debit(mintID string, amountMsat uint64) (uint64, error) {
	mint, ok, err := a.store.Decrement(mintID, amountMsat)
	if err != nil {
		return 0, fmt.Errorf("debit %s: %w", mintID, err)
	}
	if !ok {
		err := fmt.Errorf("debit %d msat from %s with %d in circulation: %w", amountMsat, mintID, mint.CirculationMsat, common.ErrLedgerUnderflow)
		log.WithError(err).WithField("mint_id", mintID).Error("[MINT ACCOUNT] Ledger underflow, manual reconciliation required")
		return mint.CirculationMsat, err
	}
	return mint.CirculationMsat, nil
}
