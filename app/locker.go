package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dan13ram/walletka-settlement/common"
	log "github.com/sirupsen/logrus"
)

// Locker hands out exclusive, context bounded locks on named resources.
type Locker interface {
	Lock(ctx context.Context, resource string) (unlock func(), err error)
}

// MemoryLocker is a keyed mutex for single process deployments.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]chan struct{})}
}

func (l *MemoryLocker) slot(resource string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[resource]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[resource] = s
	}
	return s
}

func (l *MemoryLocker) Lock(ctx context.Context, resource string) (func(), error) {
	s := l.slot(resource)
	select {
	case s <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("lock %s: %w", resource, errors.Join(common.ErrTimeout, ctx.Err()))
	}
	var once sync.Once
	return func() { once.Do(func() { <-s }) }, nil
}

// DatabaseLocker takes locks through the mongo-lock collection so several
// processes can share mints.
type DatabaseLocker struct {
	db Database
}

func NewDatabaseLocker(db Database) *DatabaseLocker {
	return &DatabaseLocker{db: db}
}

func (l *DatabaseLocker) Lock(ctx context.Context, resource string) (func(), error) {
	lockId, err := l.db.XLock(ctx, resource)
	if err != nil {
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := l.db.Unlock(lockId); err != nil {
				log.WithError(err).WithField("resource", resource).Error("[LOCKER] Error releasing lock")
			}
		})
	}, nil
}

func NewLocker() Locker {
	if Config.Settlement.DistributedLock {
		log.Debug("[LOCKER] Using distributed locker")
		return NewDatabaseLocker(DB)
	}
	log.Debug("[LOCKER] Using in-process locker")
	return NewMemoryLocker()
}
