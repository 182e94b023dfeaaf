package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionUsedProofs  = "used_proofs"
	CollectionPendingMelt = "pending_melts"
)

type UsedProof struct {
	Id         *primitive.ObjectID `bson:"_id,omitempty"`
	MintID     string              `bson:"mint_id"`
	Secret     string              `bson:"secret"`
	AmountMsat uint64              `bson:"amount_msat"`
	KeysetID   string              `bson:"keyset_id"`
	BatchID    string              `bson:"batch_id"`
	CreatedAt  time.Time           `bson:"created_at"`
}

// types of pending melt status
const (
	MeltStatusPending = "pending"
	MeltStatusSettled = "settled"
	MeltStatusFailed  = "failed"
)

// PendingMelt is written before an outgoing payment is attempted so that a
// crash between payment and proof recording can be found on restart.
type PendingMelt struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	MeltID      string              `bson:"melt_id"`
	MintID      string              `bson:"mint_id"`
	Bolt11      string              `bson:"bolt11"`
	PaymentHash string              `bson:"payment_hash"`
	AmountMsat  uint64              `bson:"amount_msat"`
	Secrets     []string            `bson:"secrets"`
	Status      string              `bson:"status"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}
