package ledger

import (
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
	"github.com/google/uuid"
)

type PendingMeltStore interface {
	Insert(melt models.PendingMelt) error
	UpdateStatus(meltID string, status string, at time.Time) error
	FindPending() ([]models.PendingMelt, error)
}

// PendingMelts marks outgoing payments before they are attempted.
type PendingMelts struct {
	store PendingMeltStore
	now   func() time.Time
}

func NewPendingMelts(store PendingMeltStore) *PendingMelts {
	return &PendingMelts{store: store, now: time.Now}
}

func (m *PendingMelts) Begin(mintID string, bolt11 string, paymentHash string, amountMsat uint64, proofs models.Proofs) (models.PendingMelt, error) {
	now := m.now()
	melt := models.PendingMelt{
		MeltID:      uuid.NewString(),
		MintID:      mintID,
		Bolt11:      bolt11,
		PaymentHash: paymentHash,
		AmountMsat:  amountMsat,
		Secrets:     proofs.Secrets(),
		Status:      models.MeltStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.store.Insert(melt); err != nil {
		return models.PendingMelt{}, fmt.Errorf("begin melt on %s: %w", mintID, err)
	}
	return melt, nil
}

func (m *PendingMelts) Settle(meltID string) error {
	return m.store.UpdateStatus(meltID, models.MeltStatusSettled, m.now())
}

func (m *PendingMelts) Fail(meltID string) error {
	return m.store.UpdateStatus(meltID, models.MeltStatusFailed, m.now())
}

func (m *PendingMelts) Unresolved() ([]models.PendingMelt, error) {
	return m.store.FindPending()
}
