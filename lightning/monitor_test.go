package lightning_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dan13ram/walletka-settlement/events"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/lightning/mocks"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	log.SetOutput(io.Discard)
}

type fakeTracker struct {
	mu       sync.Mutex
	calls    map[string]int
	failures int
	states   map[string]chan lightning.InvoiceState
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		calls:  make(map[string]int),
		states: make(map[string]chan lightning.InvoiceState),
	}
}

func (f *fakeTracker) channel(hash string) chan lightning.InvoiceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.states[hash]
	if !ok {
		ch = make(chan lightning.InvoiceState, 4)
		f.states[hash] = ch
	}
	return ch
}

func (f *fakeTracker) TrackInvoice(ctx context.Context, paymentHash string) (<-chan lightning.InvoiceState, <-chan error, error) {
	f.mu.Lock()
	f.calls[paymentHash]++
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return nil, nil, errors.New("connection refused")
	}
	f.mu.Unlock()
	return f.channel(paymentHash), make(chan error), nil
}

func (f *fakeTracker) Calls(hash string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[hash]
}

func subscribeOnce(t *testing.T, bus *events.MemoryBus, queue string) <-chan models.PaymentEvent {
	received := make(chan models.PaymentEvent, 8)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = bus.Subscribe(ctx, queue, func(ctx context.Context, event models.PaymentEvent) error {
			received <- event
			return nil
		})
	}()
	return received
}

func TestInvoiceMonitor(t *testing.T) {
	t.Run("Publishes Settled Invoice", func(t *testing.T) {
		bus := events.NewMemoryBus()
		bus.DeclareQueue("mint")
		received := subscribeOnce(t, bus, "mint")

		tracker := newFakeTracker()
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, bus, 10*time.Millisecond, wg)
		go monitor.Start()

		monitor.Watch("hash1", 21000, time.Now().Add(time.Minute))
		tracker.channel("hash1") <- lightning.InvoiceStateOpen
		tracker.channel("hash1") <- lightning.InvoiceStateSettled

		select {
		case event := <-received:
			assert.Equal(t, models.EventPaymentReceived, event.Kind)
			assert.Equal(t, "hash1", event.PaymentHash)
			assert.Equal(t, uint64(21000), event.Amount())
			assert.Equal(t, "hash1", event.RoutingKey)
		case <-time.After(time.Second):
			t.Fatal("no event published")
		}

		assert.Eventually(t, func() bool { return monitor.Watching() == 0 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, int64(1), monitor.Health().Processed)

		monitor.Stop()
		wg.Wait()
	})

	t.Run("Canceled Invoice Publishes Nothing", func(t *testing.T) {
		bus := events.NewMemoryBus()
		bus.DeclareQueue("mint")
		received := subscribeOnce(t, bus, "mint")

		tracker := newFakeTracker()
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, bus, 10*time.Millisecond, wg)
		go monitor.Start()

		monitor.Watch("hash2", 1000, time.Now().Add(time.Minute))
		tracker.channel("hash2") <- lightning.InvoiceStateCanceled

		assert.Eventually(t, func() bool { return monitor.Watching() == 0 }, time.Second, 5*time.Millisecond)
		select {
		case <-received:
			t.Fatal("unexpected event")
		case <-time.After(50 * time.Millisecond):
		}

		monitor.Stop()
		wg.Wait()
	})

	t.Run("Retries Tracking After Errors", func(t *testing.T) {
		bus := events.NewMemoryBus()
		bus.DeclareQueue("mint")
		received := subscribeOnce(t, bus, "mint")

		tracker := newFakeTracker()
		tracker.failures = 2
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, bus, 5*time.Millisecond, wg)
		go monitor.Start()

		monitor.Watch("hash3", 5000, time.Now().Add(time.Minute))
		tracker.channel("hash3") <- lightning.InvoiceStateSettled

		select {
		case event := <-received:
			assert.Equal(t, "hash3", event.PaymentHash)
		case <-time.After(time.Second):
			t.Fatal("no event published")
		}
		assert.Equal(t, 3, tracker.Calls("hash3"))

		monitor.Stop()
		wg.Wait()
	})

	t.Run("Duplicate Watch Is Ignored", func(t *testing.T) {
		tracker := newFakeTracker()
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, events.NewMemoryBus(), 5*time.Millisecond, wg)
		go monitor.Start()

		monitor.Watch("hash4", 1000, time.Now().Add(time.Minute))
		monitor.Watch("hash4", 1000, time.Now().Add(time.Minute))
		assert.Equal(t, 1, monitor.Watching())

		monitor.Stop()
		wg.Wait()
		assert.Equal(t, 0, monitor.Watching())
		assert.False(t, monitor.Health().Healthy)
	})

	t.Run("Expired Invoice Stops Tracking", func(t *testing.T) {
		tracker := newFakeTracker()
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, events.NewMemoryBus(), 5*time.Millisecond, wg)
		go monitor.Start()

		monitor.Watch("hash5", 1000, time.Now().Add(-time.Second))
		assert.Eventually(t, func() bool { return monitor.Watching() == 0 }, time.Second, 5*time.Millisecond)

		monitor.Stop()
		wg.Wait()
	})

	t.Run("Expired Invoice Settled While Away Is Published", func(t *testing.T) {
		bus := events.NewMemoryBus()
		bus.DeclareQueue("mint")
		received := subscribeOnce(t, bus, "mint")

		tracker := newFakeTracker()
		tracker.channel("hash8") <- lightning.InvoiceStateSettled
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, bus, 50*time.Millisecond, wg)
		go monitor.Start()

		monitor.Watch("hash8", 2000, time.Now().Add(-time.Hour))

		select {
		case event := <-received:
			assert.Equal(t, "hash8", event.PaymentHash)
			assert.Equal(t, uint64(2000), event.Amount())
		case <-time.After(time.Second):
			t.Fatal("no event published")
		}

		monitor.Stop()
		wg.Wait()
	})

	t.Run("Watch After Stop Is Ignored", func(t *testing.T) {
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(newFakeTracker(), events.NewMemoryBus(), 5*time.Millisecond, wg)
		go monitor.Start()
		monitor.Stop()
		wg.Wait()

		monitor.Watch("hash6", 1000, time.Now().Add(time.Minute))
		assert.Equal(t, 0, monitor.Watching())
	})
}

func TestWatchedNode(t *testing.T) {
	t.Run("Watches Created Invoices", func(t *testing.T) {
		node := mocks.NewMockNodeService(t)
		tracker := newFakeTracker()
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(tracker, events.NewMemoryBus(), 5*time.Millisecond, wg)
		go monitor.Start()

		invoice := &lightning.Invoice{PaymentHash: "hash7", PaymentRequest: "lnbcrt1", AmountMsat: 1000, ExpiresAt: time.Now().Add(time.Minute)}
		node.EXPECT().CreateInvoice(mock.Anything, uint64(1000), time.Hour, "memo").Return(invoice, nil)

		watched := lightning.NewWatchedNode(node, monitor)
		got, err := watched.CreateInvoice(context.Background(), 1000, time.Hour, "memo")

		assert.NoError(t, err)
		assert.Equal(t, invoice, got)
		assert.Equal(t, 1, monitor.Watching())

		monitor.Stop()
		wg.Wait()
	})

	t.Run("Node Error Watches Nothing", func(t *testing.T) {
		node := mocks.NewMockNodeService(t)
		wg := &sync.WaitGroup{}
		wg.Add(1)
		monitor := lightning.NewInvoiceMonitor(newFakeTracker(), events.NewMemoryBus(), 5*time.Millisecond, wg)
		go monitor.Start()

		node.EXPECT().CreateInvoice(mock.Anything, uint64(1000), time.Hour, "memo").Return(nil, errors.New("node offline"))

		watched := lightning.NewWatchedNode(node, monitor)
		got, err := watched.CreateInvoice(context.Background(), 1000, time.Hour, "memo")

		assert.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 0, monitor.Watching())

		monitor.Stop()
		wg.Wait()
	})
}
