package lsp

import (
	"errors"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
)

var (
	ErrDuplicateAlias  = errors.New("alias already taken")
	ErrDuplicatePubkey = errors.New("pubkey already registered")
)

type CustomerStore interface {
	Insert(customer models.Customer) error
	FindByAlias(alias string) (models.Customer, error)
	FindByNostrPubkey(pubkey string) (models.Customer, error)
	UpdateConfig(alias string, config models.CustomerConfig, at time.Time) (models.Customer, error)
}

type CustomerInvoiceStore interface {
	Insert(invoice models.CustomerInvoice) error
	FindByPaymentHash(paymentHash string) (models.CustomerInvoice, error)
	// SetToken keeps the first token stored for an invoice and returns it.
	SetToken(paymentHash string, token string) (string, error)
	// MarkDelivered reports false when the invoice was already delivered.
	MarkDelivered(paymentHash string, via models.DeliveryStrategy, at time.Time) (bool, error)
	FindOpen(now time.Time) ([]models.CustomerInvoice, error)
}
