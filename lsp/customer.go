package lsp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/dan13ram/walletka-settlement/nostr"
	log "github.com/sirupsen/logrus"
)

const aliasAttempts = 8

var syllables = []string{
	"ko", "mi", "yu", "ta", "sa", "na", "shi", "ka", "to", "mo", "fu", "hi", "ma",
	"ku", "re", "no", "do", "chi", "ro", "me", "ri", "ra", "sen", "gan", "ga",
}

func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

// GenerateAlias joins two to four random syllables.
func GenerateAlias() string {
	count := 2 + randomInt(3)
	var b strings.Builder
	for i := 0; i < count; i++ {
		b.WriteString(syllables[randomInt(len(syllables))])
	}
	return b.String()
}

// ValidateNodeID checks for a compressed secp256k1 public key in hex.
func ValidateNodeID(nodeID string) error {
	b, err := hex.DecodeString(nodeID)
	if err != nil || len(b) != common.NodeIDLength {
		return fmt.Errorf("node id %q: %w", nodeID, common.ErrInvalidRequest)
	}
	if _, err := btcec.ParsePubKey(b); err != nil {
		return fmt.Errorf("node id %q: %w", nodeID, common.ErrInvalidRequest)
	}
	return nil
}

type CustomerOptions struct {
	InvoiceExpiry      time.Duration
	InvoiceDescription string
	// ResumeWindow keeps recently expired invoices in OpenInvoices.
	ResumeWindow time.Duration
}

func CustomerOptionsFromConfig() CustomerOptions {
	return CustomerOptions{
		InvoiceExpiry:      time.Duration(app.Config.Lsp.InvoiceExpirySecs) * time.Second,
		InvoiceDescription: app.Config.Lsp.InvoiceDescription,
		ResumeWindow:       time.Duration(app.Config.Settlement.ExpiryGraceSecs) * time.Second,
	}
}

type CustomerService struct {
	customers CustomerStore
	invoices  CustomerInvoiceStore
	node      lightning.NodeService
	opts      CustomerOptions
	alias     func() string
	now       func() time.Time
}

func NewCustomerService(customers CustomerStore, invoices CustomerInvoiceStore, node lightning.NodeService, opts CustomerOptions) *CustomerService {
	return &CustomerService{
		customers: customers,
		invoices:  invoices,
		node:      node,
		opts:      opts,
		alias:     GenerateAlias,
		now:       time.Now,
	}
}

// Signup registers a customer under a fresh alias. A known pubkey returns
// the existing customer and false.
func (s *CustomerService) Signup(nostrPubkey string, nodeID *string) (models.Customer, bool, error) {
	pubkey, err := nostr.ParsePublicKey(nostrPubkey)
	if err != nil {
		return models.Customer{}, false, fmt.Errorf("%w: %s", common.ErrInvalidRequest, err.Error())
	}
	if nodeID != nil && *nodeID != "" {
		if err := ValidateNodeID(*nodeID); err != nil {
			return models.Customer{}, false, err
		}
	} else {
		nodeID = nil
	}

	existing, err := s.customers.FindByNostrPubkey(pubkey)
	if err == nil {
		log.WithField("alias", existing.Alias).Info("[LSP] Customer with same pubkey already exists")
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return models.Customer{}, false, err
	}

	now := s.now()
	customer := models.Customer{
		NodeID:      nodeID,
		NostrPubkey: &pubkey,
		Config:      models.DefaultCustomerConfig(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for attempt := 0; attempt < aliasAttempts; attempt++ {
		customer.Alias = s.alias()
		err = s.customers.Insert(customer)
		if !errors.Is(err, ErrDuplicateAlias) {
			break
		}
	}
	if errors.Is(err, ErrDuplicatePubkey) {
		// a concurrent signup registered the same pubkey first
		existing, ferr := s.customers.FindByNostrPubkey(pubkey)
		if ferr != nil {
			return models.Customer{}, false, fmt.Errorf("signup: %w", ferr)
		}
		return existing, false, nil
	}
	if err != nil {
		return models.Customer{}, false, fmt.Errorf("signup: %w", err)
	}
	log.WithField("alias", customer.Alias).Info("[LSP] Customer created")
	return customer, true, nil
}

func (s *CustomerService) GetByAlias(alias string) (models.Customer, error) {
	return s.customers.FindByAlias(alias)
}

func (s *CustomerService) UpdateConfig(alias string, config models.CustomerConfig) (models.Customer, error) {
	customer, err := s.customers.UpdateConfig(alias, config, s.now())
	if err != nil {
		return models.Customer{}, err
	}
	log.WithField("alias", alias).Info("[LSP] Updated customer config")
	return customer, nil
}

// IssueInvoice creates a node invoice paid on behalf of the customer.
func (s *CustomerService) IssueInvoice(ctx context.Context, alias string, amountMsat uint64) (models.CustomerInvoice, error) {
	if amountMsat == 0 {
		return models.CustomerInvoice{}, fmt.Errorf("zero amount: %w", common.ErrInvalidRequest)
	}
	customer, err := s.customers.FindByAlias(alias)
	if err != nil {
		return models.CustomerInvoice{}, err
	}

	created, err := s.node.CreateInvoice(ctx, amountMsat, s.opts.InvoiceExpiry, s.opts.InvoiceDescription)
	if err != nil {
		return models.CustomerInvoice{}, fmt.Errorf("create node invoice: %w", common.WrapTimeout(err))
	}

	invoice := models.CustomerInvoice{
		PaymentHash: created.PaymentHash,
		Alias:       customer.Alias,
		Bolt11:      created.PaymentRequest,
		AmountMsat:  amountMsat,
		ExpiresAt:   created.ExpiresAt,
		CreatedAt:   s.now(),
	}
	if err := s.invoices.Insert(invoice); err != nil {
		return models.CustomerInvoice{}, err
	}
	log.WithField("alias", alias).WithField("payment_hash", invoice.PaymentHash).Info("[LSP] Issued invoice")
	return invoice, nil
}

// OpenInvoices lists undelivered invoices that can still be paid or that
// expired within the resume window.
func (s *CustomerService) OpenInvoices() ([]models.CustomerInvoice, error) {
	return s.invoices.FindOpen(s.now().Add(-s.opts.ResumeWindow))
}

// Nip05 resolves a customer alias to its hex pubkey.
func (s *CustomerService) Nip05(name string) (string, error) {
	customer, err := s.customers.FindByAlias(strings.ToLower(name))
	if err != nil {
		return "", err
	}
	if customer.NostrPubkey == nil {
		return "", fmt.Errorf("customer %s without pubkey: %w", name, common.ErrNotFound)
	}
	return *customer.NostrPubkey, nil
}
