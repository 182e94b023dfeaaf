package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
	"github.com/stretchr/testify/assert"
)

type MockRunner struct {
	runs atomic.Int64
}

func (m *MockRunner) Run() {
	m.runs.Add(1)
}

func (m *MockRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{
		Processed: m.runs.Load(),
		Failed:    1,
	}
}

func TestRunnerService(t *testing.T) {
	mockRunner := &MockRunner{}
	interval := 100 * time.Millisecond
	wg := &sync.WaitGroup{}
	service := NewRunnerService("TestService", mockRunner, wg, interval)
	wg.Add(1)

	go service.Start()

	time.Sleep(600 * time.Millisecond)

	service.Stop()

	wg.Wait()

	health := service.Health()
	assert.True(t, health.Healthy)
	assert.Equal(t, "TestService", health.Name)
	assert.GreaterOrEqual(t, health.Processed, int64(5))
	assert.Equal(t, int64(1), health.Failed)
	assert.False(t, health.LastSyncTime.IsZero())
	assert.Equal(t, health.LastSyncTime.Add(interval), health.NextSyncTime)
}

func TestNewRunnerServiceInvalidParameters(t *testing.T) {
	wg := &sync.WaitGroup{}
	invalidService := NewRunnerService("", nil, wg, 0)
	assert.Nil(t, invalidService)

	invalidService = NewRunnerService("TestService", &MockRunner{}, wg, 0)
	assert.Nil(t, invalidService)
}

func TestRunnerServiceStop(t *testing.T) {
	wg := &sync.WaitGroup{}
	mockRunner := &MockRunner{}
	service := NewRunnerService("TestService", mockRunner, wg, 100*time.Millisecond)

	assert.NotPanics(t, func() {
		service.Stop()
		service.Stop()
	})
}

func TestEmptyService(t *testing.T) {
	wg := &sync.WaitGroup{}
	wg.Add(1)
	service := NewEmptyService(wg)

	service.Start()
	service.Stop()
	wg.Wait()

	assert.Equal(t, EmptyServiceName, service.Health().Name)
	assert.True(t, service.Health().Healthy)
}
