package models

type EventKind string

const (
	EventPaymentReceived   EventKind = "PaymentReceived"
	EventPaymentSuccessful EventKind = "PaymentSuccessful"
	EventPaymentFailed     EventKind = "PaymentFailed"
	EventChannelPending    EventKind = "ChannelPending"
	EventChannelReady      EventKind = "ChannelReady"
	EventChannelClosed     EventKind = "ChannelClosed"
)

func (k EventKind) Known() bool {
	switch k {
	case EventPaymentReceived,
		EventPaymentSuccessful,
		EventPaymentFailed,
		EventChannelPending,
		EventChannelReady,
		EventChannelClosed:
		return true
	}
	return false
}

// PaymentEvent is the bus envelope. RoutingKey is transport metadata and is
// not serialized.
type PaymentEvent struct {
	Kind               EventKind `json:"kind"`
	PaymentHash        string    `json:"payment_hash,omitempty"`
	AmountMsat         *uint64   `json:"amount_msat,omitempty"`
	ChannelID          string    `json:"channel_id,omitempty"`
	CounterpartyNodeID string    `json:"counterparty_node_id,omitempty"`
	RoutingKey         string    `json:"-"`
}

func NewPaymentReceived(paymentHash string, amountMsat uint64) PaymentEvent {
	return PaymentEvent{
		Kind:        EventPaymentReceived,
		PaymentHash: paymentHash,
		AmountMsat:  &amountMsat,
		RoutingKey:  paymentHash,
	}
}

func (e PaymentEvent) Amount() uint64 {
	if e.AmountMsat == nil {
		return 0
	}
	return *e.AmountMsat
}
