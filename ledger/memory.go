package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
)

type memoryInvoiceStore struct {
	mu            sync.Mutex
	byHash        map[string]*models.Invoice
	byPaymentHash map[string]*models.Invoice
}

func NewMemoryInvoiceStore() InvoiceStore {
	return &memoryInvoiceStore{
		byHash:        make(map[string]*models.Invoice),
		byPaymentHash: make(map[string]*models.Invoice),
	}
}

func (s *memoryInvoiceStore) Insert(invoice models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byPaymentHash[invoice.PaymentHash]; ok {
		return common.ErrDuplicatePaymentHash
	}
	if _, ok := s.byHash[invoice.Hash]; ok {
		return common.ErrDuplicatePaymentHash
	}
	stored := invoice
	s.byHash[invoice.Hash] = &stored
	s.byPaymentHash[invoice.PaymentHash] = &stored
	return nil
}

func (s *memoryInvoiceStore) FindByHash(hash string) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.byHash[hash]
	if !ok {
		return models.Invoice{}, fmt.Errorf("invoice %s: %w", hash, common.ErrNotFound)
	}
	return *invoice, nil
}

func (s *memoryInvoiceStore) FindByPaymentHash(paymentHash string) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.byPaymentHash[paymentHash]
	if !ok {
		return models.Invoice{}, fmt.Errorf("invoice %s: %w", paymentHash, common.ErrNotFound)
	}
	return *invoice, nil
}

func (s *memoryInvoiceStore) UpdateStatus(paymentHash string, from []models.InvoiceStatus, to models.InvoiceStatus, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.byPaymentHash[paymentHash]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if invoice.Status == status {
			invoice.Status = to
			invoice.UpdatedAt = at
			if to == models.InvoiceStatusPaid {
				confirmedAt := at
				invoice.ConfirmedAt = &confirmedAt
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryInvoiceStore) MarkTokenIssued(hash string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.byHash[hash]
	if !ok || invoice.Status != models.InvoiceStatusPaid || invoice.TokenStatus != models.TokenStatusNotIssued {
		return false, nil
	}
	invoice.TokenStatus = models.TokenStatusIssued
	invoice.UpdatedAt = at
	return true, nil
}

func (s *memoryInvoiceStore) FindExpirable(now time.Time) ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoices := []models.Invoice{}
	for _, invoice := range s.byHash {
		if invoice.Status != models.InvoiceStatusUnpaid && invoice.Status != models.InvoiceStatusInFlight {
			continue
		}
		if invoice.ExpiresAt.IsZero() || invoice.ExpiresAt.After(now) {
			continue
		}
		invoices = append(invoices, *invoice)
	}
	return invoices, nil
}

func (s *memoryInvoiceStore) FindUnsettled() ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoices := []models.Invoice{}
	for _, invoice := range s.byHash {
		if invoice.Status != models.InvoiceStatusUnpaid && invoice.Status != models.InvoiceStatusInFlight {
			continue
		}
		invoices = append(invoices, *invoice)
	}
	return invoices, nil
}

type memoryMintStore struct {
	mu    sync.Mutex
	mints map[string]*models.MintLedger
}

func NewMemoryMintStore() MintStore {
	return &memoryMintStore{mints: make(map[string]*models.MintLedger)}
}

func (s *memoryMintStore) Ensure(mint models.MintLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	existing, ok := s.mints[mint.MintID]
	if !ok {
		stored := mint
		stored.CirculationMsat = 0
		stored.CreatedAt = now
		stored.UpdatedAt = now
		s.mints[mint.MintID] = &stored
		return nil
	}
	existing.ActiveKeysetID = mint.ActiveKeysetID
	existing.InactiveKeysetIDs = mint.InactiveKeysetIDs
	existing.MaxOrder = mint.MaxOrder
	existing.FeeReservePolicy = mint.FeeReservePolicy
	existing.UpdatedAt = now
	return nil
}

func (s *memoryMintStore) Find(mintID string) (models.MintLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mint, ok := s.mints[mintID]
	if !ok {
		return models.MintLedger{}, fmt.Errorf("mint %s: %w", mintID, common.ErrMintNotFound)
	}
	return *mint, nil
}

func (s *memoryMintStore) Increment(mintID string, amountMsat uint64) (models.MintLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mint, ok := s.mints[mintID]
	if !ok {
		return models.MintLedger{}, fmt.Errorf("mint %s: %w", mintID, common.ErrMintNotFound)
	}
	mint.CirculationMsat += amountMsat
	mint.UpdatedAt = time.Now()
	return *mint, nil
}

func (s *memoryMintStore) Decrement(mintID string, amountMsat uint64) (models.MintLedger, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mint, ok := s.mints[mintID]
	if !ok {
		return models.MintLedger{}, false, fmt.Errorf("mint %s: %w", mintID, common.ErrMintNotFound)
	}
	if mint.CirculationMsat < amountMsat {
		return *mint, false, nil
	}
	mint.CirculationMsat -= amountMsat
	mint.UpdatedAt = time.Now()
	return *mint, true, nil
}

type memoryUsedProofStore struct {
	mu     sync.Mutex
	proofs map[string]map[string]models.UsedProof
}

func NewMemoryUsedProofStore() UsedProofStore {
	return &memoryUsedProofStore{proofs: make(map[string]map[string]models.UsedProof)}
}

func (s *memoryUsedProofStore) FindSpent(mintID string, secrets []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spent := []string{}
	for _, secret := range secrets {
		if _, ok := s.proofs[mintID][secret]; ok {
			spent = append(spent, secret)
		}
	}
	return spent, nil
}

func (s *memoryUsedProofStore) InsertBatch(proofs []models.UsedProof) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, proof := range proofs {
		if _, ok := s.proofs[proof.MintID][proof.Secret]; ok {
			return common.ErrDoubleSpend
		}
	}
	for _, proof := range proofs {
		if s.proofs[proof.MintID] == nil {
			s.proofs[proof.MintID] = make(map[string]models.UsedProof)
		}
		s.proofs[proof.MintID][proof.Secret] = proof
	}
	return nil
}

type memoryPendingMeltStore struct {
	mu    sync.Mutex
	melts map[string]*models.PendingMelt
}

func NewMemoryPendingMeltStore() PendingMeltStore {
	return &memoryPendingMeltStore{melts: make(map[string]*models.PendingMelt)}
}

func (s *memoryPendingMeltStore) Insert(melt models.PendingMelt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := melt
	s.melts[melt.MeltID] = &stored
	return nil
}

func (s *memoryPendingMeltStore) UpdateStatus(meltID string, status string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	melt, ok := s.melts[meltID]
	if !ok || melt.Status != models.MeltStatusPending {
		return fmt.Errorf("pending melt %s: %w", meltID, common.ErrNotFound)
	}
	melt.Status = status
	melt.UpdatedAt = at
	return nil
}

func (s *memoryPendingMeltStore) FindPending() ([]models.PendingMelt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	melts := []models.PendingMelt{}
	for _, melt := range s.melts {
		if melt.Status == models.MeltStatusPending {
			melts = append(melts, *melt)
		}
	}
	return melts, nil
}
