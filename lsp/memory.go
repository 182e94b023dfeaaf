package lsp

import (
	"fmt"
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
)

type memoryCustomerStore struct {
	mu        sync.Mutex
	customers map[string]*models.Customer
}

func NewMemoryCustomerStore() CustomerStore {
	return &memoryCustomerStore{customers: make(map[string]*models.Customer)}
}

func (s *memoryCustomerStore) Insert(customer models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if customer.NostrPubkey != nil {
		for _, existing := range s.customers {
			if existing.NostrPubkey != nil && *existing.NostrPubkey == *customer.NostrPubkey {
				return ErrDuplicatePubkey
			}
		}
	}
	if _, ok := s.customers[customer.Alias]; ok {
		return ErrDuplicateAlias
	}
	stored := customer
	s.customers[customer.Alias] = &stored
	return nil
}

func (s *memoryCustomerStore) FindByAlias(alias string) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[alias]
	if !ok {
		return models.Customer{}, fmt.Errorf("customer %s: %w", alias, common.ErrNotFound)
	}
	return *customer, nil
}

func (s *memoryCustomerStore) FindByNostrPubkey(pubkey string) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, customer := range s.customers {
		if customer.NostrPubkey != nil && *customer.NostrPubkey == pubkey {
			return *customer, nil
		}
	}
	return models.Customer{}, fmt.Errorf("customer with pubkey %s: %w", pubkey, common.ErrNotFound)
}

func (s *memoryCustomerStore) UpdateConfig(alias string, config models.CustomerConfig, at time.Time) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[alias]
	if !ok {
		return models.Customer{}, fmt.Errorf("customer %s: %w", alias, common.ErrNotFound)
	}
	customer.Config = config
	customer.UpdatedAt = at
	return *customer, nil
}

type memoryCustomerInvoiceStore struct {
	mu       sync.Mutex
	invoices map[string]*models.CustomerInvoice
}

func NewMemoryCustomerInvoiceStore() CustomerInvoiceStore {
	return &memoryCustomerInvoiceStore{invoices: make(map[string]*models.CustomerInvoice)}
}

func (s *memoryCustomerInvoiceStore) Insert(invoice models.CustomerInvoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[invoice.PaymentHash]; ok {
		return common.ErrDuplicatePaymentHash
	}
	stored := invoice
	s.invoices[invoice.PaymentHash] = &stored
	return nil
}

func (s *memoryCustomerInvoiceStore) FindByPaymentHash(paymentHash string) (models.CustomerInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.invoices[paymentHash]
	if !ok {
		return models.CustomerInvoice{}, fmt.Errorf("customer invoice %s: %w", paymentHash, common.ErrNotFound)
	}
	return *invoice, nil
}

func (s *memoryCustomerInvoiceStore) SetToken(paymentHash string, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.invoices[paymentHash]
	if !ok {
		return "", fmt.Errorf("customer invoice %s: %w", paymentHash, common.ErrNotFound)
	}
	if invoice.Token == "" {
		invoice.Token = token
	}
	return invoice.Token, nil
}

func (s *memoryCustomerInvoiceStore) MarkDelivered(paymentHash string, via models.DeliveryStrategy, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.invoices[paymentHash]
	if !ok || invoice.DeliveredAt != nil {
		return false, nil
	}
	deliveredAt := at
	invoice.DeliveredVia = via
	invoice.DeliveredAt = &deliveredAt
	return true, nil
}

func (s *memoryCustomerInvoiceStore) FindOpen(now time.Time) ([]models.CustomerInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoices := []models.CustomerInvoice{}
	for _, invoice := range s.invoices {
		if invoice.DeliveredAt == nil && invoice.ExpiresAt.After(now) {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}
