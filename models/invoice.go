package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionInvoices = "invoices"
)

type InvoiceStatus string

// types of invoice status
const (
	InvoiceStatusUnpaid   InvoiceStatus = "unpaid"
	InvoiceStatusInFlight InvoiceStatus = "in_flight"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusExpired  InvoiceStatus = "expired"
)

type TokenStatus string

const (
	TokenStatusNotIssued TokenStatus = "not_issued"
	TokenStatusIssued    TokenStatus = "issued"
)

type Invoice struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Hash        string              `bson:"hash" json:"hash"`
	PaymentHash string              `bson:"payment_hash" json:"payment_hash"`
	AmountMsat  uint64              `bson:"amount_msat" json:"amount_msat"`
	Status      InvoiceStatus       `bson:"status" json:"status"`
	TokenStatus TokenStatus         `bson:"token_status" json:"token_status"`
	Memo        string              `bson:"memo" json:"memo"`
	Bolt11      string              `bson:"bolt11" json:"bolt11"`
	MintID      string              `bson:"mint_id" json:"mint_id"`
	ConfirmedAt *time.Time          `bson:"confirmed_at" json:"confirmed_at,omitempty"`
	ExpiresAt   time.Time           `bson:"expires_at" json:"expires_at"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}
