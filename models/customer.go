package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionCustomers        = "customers"
	CollectionCustomerInvoices = "customer_invoices"
)

type DeliveryStrategy string

const (
	DeliveryKeysend DeliveryStrategy = "keysend"
	DeliveryChannel DeliveryStrategy = "channel"
	DeliveryEcash   DeliveryStrategy = "ecash"
	DeliveryNone    DeliveryStrategy = "none"
)

type CustomerConfig struct {
	MinChannelSizeSat  uint64 `bson:"min_channel_size_sat" json:"min_channel_size_sat"`
	IncludeOnchainFee  bool   `bson:"include_onchain_fee" json:"include_onchain_fee"`
	EnableEcash        bool   `bson:"enable_ecash" json:"enable_ecash"`
	MaxEcashReceiveSat uint64 `bson:"max_ecash_receive_sat" json:"max_ecash_receive_sat"`
	PublicChannels     bool   `bson:"public_channels" json:"public_channels"`
}

func DefaultCustomerConfig() CustomerConfig {
	return CustomerConfig{
		MinChannelSizeSat:  20_000,
		IncludeOnchainFee:  false,
		EnableEcash:        true,
		MaxEcashReceiveSat: 210_000_000_000,
		PublicChannels:     true,
	}
}

type Customer struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Alias       string              `bson:"alias" json:"alias"`
	NodeID      *string             `bson:"node_id" json:"node_id,omitempty"`
	NostrPubkey *string             `bson:"nostr_pubkey,omitempty" json:"nostr_pubkey,omitempty"`
	Config      CustomerConfig      `bson:"config" json:"config"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

// CustomerInvoice links an invoice issued on behalf of a customer to the
// customer alias, so received payments can be routed back to them.
type CustomerInvoice struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PaymentHash string              `bson:"payment_hash" json:"payment_hash"`
	Alias       string              `bson:"alias" json:"alias"`
	Bolt11      string              `bson:"bolt11" json:"bolt11"`
	AmountMsat  uint64              `bson:"amount_msat" json:"amount_msat"`
	ExpiresAt   time.Time           `bson:"expires_at" json:"expires_at"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`

	// Token is kept once minted so a redelivered event resends the same
	// token instead of minting again.
	Token        string           `bson:"token,omitempty" json:"-"`
	DeliveredVia DeliveryStrategy `bson:"delivered_via,omitempty" json:"delivered_via,omitempty"`
	DeliveredAt  *time.Time       `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
}
