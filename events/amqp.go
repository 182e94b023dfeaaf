package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

type AMQPBus struct {
	url      string
	exchange string
	prefetch int

	mu     sync.Mutex
	conn   *amqp.Connection
	pubCh  *amqp.Channel
	closed bool
}

func NewAMQPBus(url string, exchange string, prefetch int) *AMQPBus {
	return &AMQPBus{
		url:      url,
		exchange: exchange,
		prefetch: prefetch,
	}
}

func (b *AMQPBus) declareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		b.exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

// publisher returns a live publishing channel, redialing after a lost
// connection.
func (b *AMQPBus) publisher() (*amqp.Channel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}
	if b.pubCh != nil && !b.pubCh.IsClosed() && b.conn != nil && !b.conn.IsClosed() {
		return b.pubCh, nil
	}
	if b.conn == nil || b.conn.IsClosed() {
		log.Debug("[AMQP] Connecting publisher")
		conn, err := amqp.Dial(b.url)
		if err != nil {
			return nil, fmt.Errorf("dial broker: %w", err)
		}
		b.conn = conn
	}
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := b.declareExchange(ch); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", b.exchange, err)
	}
	b.pubCh = ch
	return ch, nil
}

// Publish is fire and forget, no publisher confirms are requested.
func (b *AMQPBus) Publish(ctx context.Context, event models.PaymentEvent, routingKey string) error {
	body, err := Encode(event)
	if err != nil {
		return err
	}
	ch, err := b.publisher()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, b.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	log.WithField("kind", event.Kind).WithField("routing_key", routingKey).Debug("[AMQP] Published event")
	return nil
}

func (b *AMQPBus) Subscribe(ctx context.Context, queue string, handler Handler) error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := b.declareExchange(ch); err != nil {
		return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
	}
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(q.Name, BindingKey, b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}
	if err := ch.Qos(b.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := ch.Consume(
		q.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	log.WithField("queue", queue).Info("[AMQP] Subscribed")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr, ok := <-closed:
			if !ok || amqpErr == nil {
				return errors.New("connection closed")
			}
			return amqpErr
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			switch Dispatch(ctx, queue, d.Body, d.RoutingKey, handler) {
			case DecisionAck:
				err = d.Ack(false)
			default:
				err = d.Nack(false, true)
			}
			if err != nil {
				return fmt.Errorf("settle delivery on %s: %w", queue, err)
			}
		}
	}
}

func (b *AMQPBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.pubCh != nil {
		b.pubCh.Close()
	}
	if b.conn != nil && !b.conn.IsClosed() {
		return b.conn.Close()
	}
	return nil
}
