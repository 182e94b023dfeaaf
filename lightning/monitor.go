package lightning

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/events"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

const InvoiceMonitorName = "invoice monitor"

// InvoiceMonitor follows every invoice handed to Watch and publishes a
// PaymentReceived event once it settles.
type InvoiceMonitor struct {
	tracker InvoiceTracker
	bus     events.Notifier
	backoff time.Duration
	wg      *sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	watching map[string]struct{}
	watchWg  sync.WaitGroup

	settled atomic.Int64
	failed  atomic.Int64
	started time.Time
}

func NewInvoiceMonitor(tracker InvoiceTracker, bus events.Notifier, backoff time.Duration, wg *sync.WaitGroup) *InvoiceMonitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &InvoiceMonitor{
		tracker:  tracker,
		bus:      bus,
		backoff:  backoff,
		wg:       wg,
		ctx:      ctx,
		cancel:   cancel,
		watching: make(map[string]struct{}),
		started:  time.Now(),
	}
}

// Watch starts following an invoice until it settles, is canceled or
// expires. An invoice already past expiry is checked once. Watching the
// same payment hash twice is a no-op.
func (m *InvoiceMonitor) Watch(paymentHash string, amountMsat uint64, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx.Err() != nil {
		return
	}
	if _, ok := m.watching[paymentHash]; ok {
		return
	}
	m.watching[paymentHash] = struct{}{}
	m.watchWg.Add(1)
	go m.follow(paymentHash, amountMsat, expiresAt)
}

func (m *InvoiceMonitor) Watching() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watching)
}

func (m *InvoiceMonitor) done(paymentHash string) {
	m.mu.Lock()
	delete(m.watching, paymentHash)
	m.mu.Unlock()
	m.watchWg.Done()
}

func (m *InvoiceMonitor) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(m.backoff):
		return true
	}
}

func (m *InvoiceMonitor) follow(paymentHash string, amountMsat uint64, expiresAt time.Time) {
	defer m.done(paymentHash)
	logger := log.WithField("payment_hash", paymentHash)

	// invoices resumed past their expiry still get one look at the node,
	// it reports a settlement made while nobody was watching
	deadline := expiresAt
	if now := time.Now(); deadline.Before(now) {
		deadline = now
	}
	ctx, cancel := context.WithDeadline(m.ctx, deadline.Add(m.backoff))
	defer cancel()

	for ctx.Err() == nil {
		states, errs, err := m.tracker.TrackInvoice(ctx, paymentHash)
		if err != nil {
			logger.WithError(err).Warn("[INVOICE MONITOR] Error tracking invoice")
			if !m.wait(ctx) {
				break
			}
			continue
		}

		state := m.receive(ctx, states, errs)
		switch state {
		case InvoiceStateSettled:
			m.publish(paymentHash, amountMsat)
			return
		case InvoiceStateCanceled:
			logger.Debug("[INVOICE MONITOR] Invoice canceled")
			return
		}
		if !m.wait(ctx) {
			break
		}
	}
	logger.Debug("[INVOICE MONITOR] Stopped tracking invoice")
}

// receive drains one subscription and reports the final state it observed,
// or InvoiceStateOpen if the subscription ended first.
func (m *InvoiceMonitor) receive(ctx context.Context, states <-chan InvoiceState, errs <-chan error) InvoiceState {
	for {
		select {
		case state, ok := <-states:
			if !ok {
				return InvoiceStateOpen
			}
			if state != InvoiceStateOpen {
				return state
			}
		case err := <-errs:
			if err != nil {
				log.WithError(err).Warn("[INVOICE MONITOR] Invoice subscription failed")
			}
			return InvoiceStateOpen
		case <-ctx.Done():
			return InvoiceStateOpen
		}
	}
}

// publish retries until the event reaches the bus or the monitor stops.
func (m *InvoiceMonitor) publish(paymentHash string, amountMsat uint64) {
	event := models.NewPaymentReceived(paymentHash, amountMsat)
	for {
		err := m.bus.Publish(m.ctx, event, event.RoutingKey)
		if err == nil {
			m.settled.Add(1)
			log.WithField("payment_hash", paymentHash).Info("[INVOICE MONITOR] Published payment received")
			return
		}
		m.failed.Add(1)
		log.WithError(err).WithField("payment_hash", paymentHash).Error("[INVOICE MONITOR] Error publishing payment received")
		if !m.wait(m.ctx) {
			return
		}
	}
}

func (m *InvoiceMonitor) Start() {
	log.Info("[INVOICE MONITOR] Starting service")
	<-m.ctx.Done()
	m.watchWg.Wait()
	log.Info("[INVOICE MONITOR] Stopped service")
	m.wg.Done()
}

func (m *InvoiceMonitor) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         InvoiceMonitorName,
		LastSyncTime: m.started,
		NextSyncTime: time.Now(),
		Processed:    m.settled.Load(),
		Failed:       m.failed.Load(),
		Healthy:      m.ctx.Err() == nil,
	}
}

func (m *InvoiceMonitor) Stop() {
	log.Debug("[INVOICE MONITOR] Stopping service")
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()
}

var _ app.Service = (*InvoiceMonitor)(nil)

// WatchedNode hands every invoice it creates to an InvoiceMonitor.
type WatchedNode struct {
	NodeService
	monitor *InvoiceMonitor
}

func NewWatchedNode(node NodeService, monitor *InvoiceMonitor) *WatchedNode {
	return &WatchedNode{NodeService: node, monitor: monitor}
}

func (n *WatchedNode) CreateInvoice(ctx context.Context, amountMsat uint64, expiry time.Duration, description string) (*Invoice, error) {
	invoice, err := n.NodeService.CreateInvoice(ctx, amountMsat, expiry, description)
	if err != nil {
		return nil, err
	}
	n.monitor.Watch(invoice.PaymentHash, invoice.AmountMsat, invoice.ExpiresAt)
	return invoice, nil
}
