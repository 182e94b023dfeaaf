package app

import (
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Start()
	Health() models.ServiceHealth
	Stop()
}

type EmptyService struct {
	wg *sync.WaitGroup
}

func (e *EmptyService) Start() {}

func (e *EmptyService) Stop() {
	e.wg.Done()
}

const EmptyServiceName = "empty"

func (e *EmptyService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         EmptyServiceName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
		Healthy:      true,
	}
}

func NewEmptyService(wg *sync.WaitGroup) *EmptyService {
	return &EmptyService{
		wg: wg,
	}
}

type Runner interface {
	Run()
	Status() models.RunnerStatus
}

// RunnerService calls a Runner every interval until stopped.
type RunnerService struct {
	name     string
	runner   Runner
	wg       *sync.WaitGroup
	interval time.Duration
	stop     chan bool

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func (s *RunnerService) Start() {
	log.Info("[", s.name, "] Starting service")
	stop := false
	for !stop {
		log.Debug("[", s.name, "] Starting run")

		s.runner.Run()
		s.updateHealth()

		log.Debug("[", s.name, "] Finished run, sleeping for ", s.interval)

		select {
		case <-s.stop:
			stop = true
			log.Info("[", s.name, "] Stopped service")
		case <-time.After(s.interval):
		}
	}
	s.wg.Done()
}

func (s *RunnerService) updateHealth() {
	s.healthMu.Lock()
	defer s.healthMu.Unlock()

	status := s.runner.Status()
	lastSyncTime := time.Now()
	s.health = models.ServiceHealth{
		Name:         s.name,
		LastSyncTime: lastSyncTime,
		NextSyncTime: lastSyncTime.Add(s.interval),
		Processed:    status.Processed,
		Failed:       status.Failed,
		Healthy:      true,
	}
}

func (s *RunnerService) Health() models.ServiceHealth {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()

	return s.health
}

// Stop does not block when the service was never started.
func (s *RunnerService) Stop() {
	log.Debug("[", s.name, "] Stopping service")
	select {
	case s.stop <- true:
	default:
		log.Debug("[", s.name, "] Service not running")
	}
}

func NewRunnerService(name string, runner Runner, wg *sync.WaitGroup, interval time.Duration) *RunnerService {
	if name == "" || runner == nil || wg == nil || interval <= 0 {
		log.Error("[RUNNER] Invalid parameters for runner service")
		return nil
	}
	return &RunnerService{
		name:     name,
		runner:   runner,
		wg:       wg,
		interval: interval,
		stop:     make(chan bool, 1),
		health: models.ServiceHealth{
			Name:    name,
			Healthy: true,
		},
	}
}
