package ledger

import (
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type UsedProofStore interface {
	FindSpent(mintID string, secrets []string) ([]string, error)
	// InsertBatch records all proofs or none. Any secret already present
	// fails the batch with ErrDoubleSpend.
	InsertBatch(proofs []models.UsedProof) error
}

// ProofStore is the append-only spent secret set of every mint.
type ProofStore struct {
	store UsedProofStore
	now   func() time.Time
}

func NewProofStore(store UsedProofStore) *ProofStore {
	return &ProofStore{store: store, now: time.Now}
}

func duplicateSecret(proofs models.Proofs) (string, bool) {
	seen := make(map[string]struct{}, len(proofs))
	for _, proof := range proofs {
		if _, ok := seen[proof.Secret]; ok {
			return proof.Secret, true
		}
		seen[proof.Secret] = struct{}{}
	}
	return "", false
}

// CheckUnspent is a read only pre-check. It does not reserve anything.
func (p *ProofStore) CheckUnspent(mintID string, proofs models.Proofs) error {
	if _, dup := duplicateSecret(proofs); dup {
		return fmt.Errorf("secret repeated in request: %w", common.ErrDoubleSpend)
	}
	spent, err := p.store.FindSpent(mintID, proofs.Secrets())
	if err != nil {
		return fmt.Errorf("check unspent %s: %w", mintID, err)
	}
	if len(spent) > 0 {
		return fmt.Errorf("%d of %d secrets already spent on %s: %w", len(spent), len(proofs), mintID, common.ErrDoubleSpend)
	}
	return nil
}

func (p *ProofStore) RecordUsedProofs(mintID string, proofs models.Proofs) error {
	if len(proofs) == 0 {
		return nil
	}
	if _, dup := duplicateSecret(proofs); dup {
		return fmt.Errorf("secret repeated in request: %w", common.ErrDoubleSpend)
	}
	batchID := uuid.NewString()
	now := p.now()
	used := make([]models.UsedProof, 0, len(proofs))
	for _, proof := range proofs {
		used = append(used, models.UsedProof{
			MintID:     mintID,
			Secret:     proof.Secret,
			AmountMsat: proof.Amount,
			KeysetID:   proof.Id,
			BatchID:    batchID,
			CreatedAt:  now,
		})
	}
	if err := p.store.InsertBatch(used); err != nil {
		err = fmt.Errorf("record %d proofs on %s: %w", len(proofs), mintID, err)
		if common.IsFatal(err) {
			log.WithError(err).WithField("mint_id", mintID).Error("[PROOF STORE] Double spend rejected")
		}
		return err
	}
	log.WithField("mint_id", mintID).WithField("batch_id", batchID).Debug("[PROOF STORE] Recorded ", len(proofs), " proofs")
	return nil
}
