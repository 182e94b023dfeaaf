package lsp

import (
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"go.mongodb.org/mongo-driver/bson"
)

type mongoCustomerStore struct {
	db app.Database
}

func NewMongoCustomerStore(db app.Database) CustomerStore {
	return &mongoCustomerStore{db: db}
}

func (s *mongoCustomerStore) Insert(customer models.Customer) error {
	_, err := s.db.InsertOne(models.CollectionCustomers, customer)
	if !app.IsDuplicateKey(err) {
		return err
	}
	// alias and nostr_pubkey are both unique, the pubkey lookup tells them apart
	if customer.NostrPubkey != nil {
		if _, ferr := s.FindByNostrPubkey(*customer.NostrPubkey); ferr == nil {
			return ErrDuplicatePubkey
		}
	}
	return ErrDuplicateAlias
}

func (s *mongoCustomerStore) findOne(filter bson.M) (models.Customer, error) {
	var customer models.Customer
	err := s.db.FindOne(models.CollectionCustomers, filter, &customer)
	if app.IsNotFound(err) {
		return customer, fmt.Errorf("customer %v: %w", filter, common.ErrNotFound)
	}
	return customer, err
}

func (s *mongoCustomerStore) FindByAlias(alias string) (models.Customer, error) {
	return s.findOne(bson.M{"alias": alias})
}

func (s *mongoCustomerStore) FindByNostrPubkey(pubkey string) (models.Customer, error) {
	return s.findOne(bson.M{"nostr_pubkey": pubkey})
}

func (s *mongoCustomerStore) UpdateConfig(alias string, config models.CustomerConfig, at time.Time) (models.Customer, error) {
	var customer models.Customer
	update := bson.M{
		"$set": bson.M{
			"config":     config,
			"updated_at": at,
		},
	}
	err := s.db.FindOneAndUpdate(models.CollectionCustomers, bson.M{"alias": alias}, update, &customer)
	if app.IsNotFound(err) {
		return customer, fmt.Errorf("customer %s: %w", alias, common.ErrNotFound)
	}
	return customer, err
}

type mongoCustomerInvoiceStore struct {
	db app.Database
}

func NewMongoCustomerInvoiceStore(db app.Database) CustomerInvoiceStore {
	return &mongoCustomerInvoiceStore{db: db}
}

func (s *mongoCustomerInvoiceStore) Insert(invoice models.CustomerInvoice) error {
	_, err := s.db.InsertOne(models.CollectionCustomerInvoices, invoice)
	if app.IsDuplicateKey(err) {
		return common.ErrDuplicatePaymentHash
	}
	return err
}

func (s *mongoCustomerInvoiceStore) FindByPaymentHash(paymentHash string) (models.CustomerInvoice, error) {
	var invoice models.CustomerInvoice
	err := s.db.FindOne(models.CollectionCustomerInvoices, bson.M{"payment_hash": paymentHash}, &invoice)
	if app.IsNotFound(err) {
		return invoice, fmt.Errorf("customer invoice %s: %w", paymentHash, common.ErrNotFound)
	}
	return invoice, err
}

func (s *mongoCustomerInvoiceStore) SetToken(paymentHash string, token string) (string, error) {
	filter := bson.M{
		"payment_hash": paymentHash,
		"token":        bson.M{"$exists": false},
	}
	if _, err := s.db.UpdateOne(models.CollectionCustomerInvoices, filter, bson.M{"$set": bson.M{"token": token}}); err != nil {
		return "", err
	}
	invoice, err := s.FindByPaymentHash(paymentHash)
	if err != nil {
		return "", err
	}
	return invoice.Token, nil
}

func (s *mongoCustomerInvoiceStore) MarkDelivered(paymentHash string, via models.DeliveryStrategy, at time.Time) (bool, error) {
	filter := bson.M{
		"payment_hash": paymentHash,
		"delivered_at": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"delivered_via": via,
			"delivered_at":  at,
		},
	}
	matched, err := s.db.UpdateOne(models.CollectionCustomerInvoices, filter, update)
	return matched > 0, err
}

func (s *mongoCustomerInvoiceStore) FindOpen(now time.Time) ([]models.CustomerInvoice, error) {
	filter := bson.M{
		"delivered_at": bson.M{"$exists": false},
		"expires_at":   bson.M{"$gt": now},
	}
	invoices := []models.CustomerInvoice{}
	err := s.db.FindMany(models.CollectionCustomerInvoices, filter, &invoices)
	return invoices, err
}
