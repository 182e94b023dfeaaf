package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

// BindingKey binds every queue to the fanout exchange. Fanout ignores it.
const BindingKey = "*"

var (
	ErrUnknownKind    = errors.New("unknown event kind")
	ErrMalformedEvent = errors.New("malformed event")
	ErrBusClosed      = errors.New("bus closed")
)

// Handler processes one event. A nil return acknowledges the delivery, an
// error leaves it for redelivery.
type Handler func(ctx context.Context, event models.PaymentEvent) error

// Notifier is an at-least-once publish/subscribe bus. Every queue gets a
// copy of each event; consumers of the same queue compete for messages.
type Notifier interface {
	Publish(ctx context.Context, event models.PaymentEvent, routingKey string) error
	// Subscribe blocks until ctx is done or the subscription is lost.
	Subscribe(ctx context.Context, queue string, handler Handler) error
	Close() error
}

type Decision string

const (
	DecisionAck     Decision = "ack"
	DecisionRequeue Decision = "requeue"
)

func Encode(event models.PaymentEvent) ([]byte, error) {
	return json.Marshal(event)
}

func Decode(body []byte) (models.PaymentEvent, error) {
	var event models.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("%w: %s", ErrMalformedEvent, err.Error())
	}
	if !event.Kind.Known() {
		return event, fmt.Errorf("%w: %q", ErrUnknownKind, event.Kind)
	}
	if event.Kind == models.EventPaymentReceived && event.PaymentHash == "" {
		return event, fmt.Errorf("%w: payment received without payment hash", ErrMalformedEvent)
	}
	return event, nil
}

// Dispatch decodes a delivery and decides its acknowledgment. Payloads that
// cannot be understood are acknowledged so they never loop.
func Dispatch(ctx context.Context, queue string, body []byte, routingKey string, handler Handler) Decision {
	decision := dispatch(ctx, queue, body, routingKey, handler)
	app.Metrics().RecordBusMessage(queue, string(decision))
	return decision
}

func dispatch(ctx context.Context, queue string, body []byte, routingKey string, handler Handler) Decision {
	logger := log.WithField("queue", queue).WithField("routing_key", routingKey)

	event, err := Decode(body)
	if err != nil {
		logger.WithError(err).Warn("[NOTIFIER] Dropping undecodable event")
		return DecisionAck
	}
	event.RoutingKey = routingKey

	if event.Kind != models.EventPaymentReceived {
		logger.WithField("kind", event.Kind).Debug("[NOTIFIER] Ignoring event")
		return DecisionAck
	}

	if err := handler(ctx, event); err != nil {
		logger.WithError(err).WithField("payment_hash", event.PaymentHash).Warn("[NOTIFIER] Handler failed, leaving event for redelivery")
		return DecisionRequeue
	}
	return DecisionAck
}
