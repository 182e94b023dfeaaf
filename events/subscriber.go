package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

// SubscriberService keeps one subscription alive, resubscribing after a
// backoff whenever it is lost.
type SubscriberService struct {
	name    string
	bus     Notifier
	queue   string
	handler Handler
	backoff time.Duration
	wg      *sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	processed atomic.Int64
	failed    atomic.Int64

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func NewSubscriberService(name string, bus Notifier, queue string, handler Handler, backoff time.Duration, wg *sync.WaitGroup) *SubscriberService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SubscriberService{
		name:    name,
		bus:     bus,
		queue:   queue,
		handler: handler,
		backoff: backoff,
		wg:      wg,
		ctx:     ctx,
		cancel:  cancel,
		health: models.ServiceHealth{
			Name:    name,
			Healthy: true,
		},
	}
}

func (s *SubscriberService) handle(ctx context.Context, event models.PaymentEvent) error {
	err := s.handler(ctx, event)
	if err != nil {
		s.failed.Add(1)
	} else {
		s.processed.Add(1)
	}
	s.updateHealth(true)
	return err
}

func (s *SubscriberService) Start() {
	log.Info("[", s.name, "] Starting service on queue ", s.queue)
	for {
		s.updateHealth(true)
		err := s.bus.Subscribe(s.ctx, s.queue, s.handle)
		if s.ctx.Err() != nil {
			break
		}
		if errors.Is(err, ErrBusClosed) {
			log.Warn("[", s.name, "] Bus closed")
			break
		}
		s.updateHealth(false)
		log.WithError(err).Error("[", s.name, "] Subscription lost, retrying in ", s.backoff)

		select {
		case <-s.ctx.Done():
		case <-time.After(s.backoff):
		}
		if s.ctx.Err() != nil {
			break
		}
	}
	log.Info("[", s.name, "] Stopped service")
	s.wg.Done()
}

func (s *SubscriberService) updateHealth(healthy bool) {
	s.healthMu.Lock()
	defer s.healthMu.Unlock()
	now := time.Now()
	s.health = models.ServiceHealth{
		Name:         s.name,
		LastSyncTime: now,
		NextSyncTime: now,
		Processed:    s.processed.Load(),
		Failed:       s.failed.Load(),
		Healthy:      healthy,
	}
}

func (s *SubscriberService) Health() models.ServiceHealth {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()
	return s.health
}

func (s *SubscriberService) Stop() {
	log.Debug("[", s.name, "] Stopping service")
	s.cancel()
}

var _ app.Service = (*SubscriberService)(nil)
