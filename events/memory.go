package events

import (
	"context"
	"sync"

	"github.com/dan13ram/walletka-settlement/models"
)

const memoryQueueSize = 1024

type memoryMessage struct {
	body       []byte
	routingKey string
}

type memoryQueue struct {
	messages chan memoryMessage
}

// requeue never blocks the consumer that nacked the message
func (q *memoryQueue) requeue(msg memoryMessage) {
	select {
	case q.messages <- msg:
	default:
		go func() { q.messages <- msg }()
	}
}

// MemoryBus is an in-process Notifier with the same fanout and redelivery
// semantics as the broker. Queues only receive events published after they
// are declared.
type MemoryBus struct {
	mu     sync.RWMutex
	queues map[string]*memoryQueue
	done   chan struct{}
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		queues: make(map[string]*memoryQueue),
		done:   make(chan struct{}),
	}
}

func (b *MemoryBus) DeclareQueue(name string) {
	b.declare(name)
}

func (b *MemoryBus) declare(name string) *memoryQueue {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.queues[name]
	if !ok {
		q = &memoryQueue{messages: make(chan memoryMessage, memoryQueueSize)}
		b.queues[name] = q
	}
	return q
}

func (b *MemoryBus) Publish(ctx context.Context, event models.PaymentEvent, routingKey string) error {
	body, err := Encode(event)
	if err != nil {
		return err
	}
	return b.publishBody(ctx, body, routingKey)
}

func (b *MemoryBus) publishBody(ctx context.Context, body []byte, routingKey string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	for _, q := range b.queues {
		select {
		case q.messages <- memoryMessage{body: body, routingKey: routingKey}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, queue string, handler Handler) error {
	q := b.declare(queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.done:
			return ErrBusClosed
		case msg := <-q.messages:
			if Dispatch(ctx, queue, msg.body, msg.routingKey, handler) == DecisionRequeue {
				q.requeue(msg)
			}
		}
	}
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
	return nil
}
