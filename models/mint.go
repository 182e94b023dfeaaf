package models

import (
	"math"
	"math/bits"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionMints = "mints"
)

type FeeReservePolicy struct {
	MinFeeReserveMsat uint64  `bson:"min_fee_reserve_msat" json:"min_fee_reserve_msat" yaml:"min_fee_reserve_msat"`
	PercentFeeReserve float64 `bson:"percent_fee_reserve" json:"percent_fee_reserve" yaml:"percent_fee_reserve"`
}

// Reserve is the routing fee held back when paying amountMsat. The percent
// part is rounded up to the next msat.
func (p FeeReservePolicy) Reserve(amountMsat uint64) uint64 {
	percent := uint64(math.Ceil(float64(amountMsat) * p.PercentFeeReserve / 100))
	if percent > p.MinFeeReserveMsat {
		return percent
	}
	return p.MinFeeReserveMsat
}

// MintLedger is the accounting record of a single mint. CirculationMsat is
// only ever changed through conditional increments.
type MintLedger struct {
	Id                *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MintID            string              `bson:"mint_id" json:"mint_id"`
	ActiveKeysetID    string              `bson:"active_keyset_id" json:"active_keyset_id"`
	InactiveKeysetIDs []string            `bson:"inactive_keyset_ids" json:"inactive_keyset_ids"`
	CirculationMsat   uint64              `bson:"circulation_msat" json:"circulation_msat"`
	MaxOrder          uint8               `bson:"max_order" json:"max_order"`
	FeeReservePolicy  FeeReservePolicy    `bson:"fee_reserve_policy" json:"fee_reserve_policy"`
	CreatedAt         time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updated_at"`
}

type BlindedMessage struct {
	Amount uint64 `json:"amount"`
	B_     string `json:"B_"`
}

// addAmounts sums amounts and reports false when the total does not fit
// in a uint64.
func addAmounts(amounts []uint64) (uint64, bool) {
	var total, carry uint64
	for _, amount := range amounts {
		total, carry = bits.Add64(total, amount, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}

// saturate maps an overflowing sum onto math.MaxUint64 so it never equals
// a real amount.
func saturate(total uint64, ok bool) uint64 {
	if !ok {
		return math.MaxUint64
	}
	return total
}

type BlindedMessages []BlindedMessage

// Sum is the checked total of the output amounts.
func (b BlindedMessages) Sum() (uint64, bool) {
	amounts := make([]uint64, 0, len(b))
	for _, m := range b {
		amounts = append(amounts, m.Amount)
	}
	return addAmounts(amounts)
}

func (b BlindedMessages) Total() uint64 {
	return saturate(b.Sum())
}

type BlindedSignature struct {
	Amount uint64 `json:"amount"`
	C_     string `json:"C_"`
	Id     string `json:"id"`
}

type BlindedSignatures []BlindedSignature

func (b BlindedSignatures) Sum() (uint64, bool) {
	amounts := make([]uint64, 0, len(b))
	for _, s := range b {
		amounts = append(amounts, s.Amount)
	}
	return addAmounts(amounts)
}

func (b BlindedSignatures) Total() uint64 {
	return saturate(b.Sum())
}

type Proof struct {
	Amount uint64 `json:"amount"`
	Secret string `json:"secret"`
	C      string `json:"C"`
	Id     string `json:"id"`
}

type Proofs []Proof

func (p Proofs) Sum() (uint64, bool) {
	amounts := make([]uint64, 0, len(p))
	for _, proof := range p {
		amounts = append(amounts, proof.Amount)
	}
	return addAmounts(amounts)
}

func (p Proofs) Total() uint64 {
	return saturate(p.Sum())
}

func (p Proofs) Secrets() []string {
	secrets := make([]string, 0, len(p))
	for _, proof := range p {
		secrets = append(secrets, proof.Secret)
	}
	return secrets
}

type Keys map[uint64]string

type Keyset struct {
	Id     string `json:"id"`
	Active bool   `json:"active"`
}

type MintInfo struct {
	Name            string            `json:"name"`
	Version         string            `json:"version,omitempty"`
	Description     string            `json:"description,omitempty"`
	DescriptionLong string            `json:"description_long,omitempty"`
	Contact         map[string]string `json:"contact,omitempty"`
	Motd            string            `json:"motd,omitempty"`
}
