package app

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dan13ram/walletka-settlement/app/mocks"
)

func NewTestHealthCheck() *HealthCheckRunner {
	x := &HealthCheckRunner{
		instanceId: "instanceId",
		hostname:   "hostname",
		mintIds:    []string{"mint-one"},
	}
	return x
}

func TestHealthStatus(t *testing.T) {
	x := NewTestHealthCheck()

	status := x.Status()
	assert.Equal(t, status.Processed, int64(0))
	assert.Equal(t, status.Failed, int64(0))
}

func TestFindLastHealth(t *testing.T) {

	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		x := NewTestHealthCheck()
		filter := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
		}
		var health models.Health
		mockDB.EXPECT().FindOne(models.CollectionHealthChecks, filter, &health).Return(nil)

		_, err := x.FindLastHealth()

		assert.Nil(t, err)
	})

	t.Run("With Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		x := NewTestHealthCheck()
		filter := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
		}
		var health models.Health
		mockDB.EXPECT().FindOne(models.CollectionHealthChecks, filter, &health).Return(errors.New("error"))

		_, err := x.FindLastHealth()

		assert.NotNil(t, err)
		assert.Equal(t, err.Error(), "error")
	})

}

type MockService struct {
	healthy bool
}

func (e *MockService) Start() {}

func (e *MockService) Stop() {
}

const MockServiceName = "mock"

func (e *MockService) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         MockServiceName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
		Healthy:      e.healthy,
	}
}

func NewMockService() Service {
	return &MockService{healthy: true}
}

func TestServices(t *testing.T) {
	x := NewTestHealthCheck()
	wg := &sync.WaitGroup{}
	x.SetServices([]Service{
		NewEmptyService(wg),
		NewEmptyService(wg),
		NewMockService(),
	})

	assert.Equal(t, len(x.services), 3)

	assert.Equal(t, x.services[0].Health().Name, EmptyServiceName)
	assert.Equal(t, x.services[1].Health().Name, EmptyServiceName)
	assert.Equal(t, x.services[2].Health().Name, MockServiceName)
}

func TestServiceHealths(t *testing.T) {
	x := NewTestHealthCheck()
	wg := &sync.WaitGroup{}
	x.SetServices([]Service{
		NewEmptyService(wg),
		NewEmptyService(wg),
		NewMockService(),
	})

	healths := x.ServiceHealths()

	assert.Equal(t, len(healths), 1)

	assert.Equal(t, healths[0].Name, MockServiceName)

}

func TestPostHealth(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		x := NewTestHealthCheck()
		wg := &sync.WaitGroup{}
		x.SetServices([]Service{
			NewEmptyService(wg),
			NewEmptyService(wg),
			NewMockService(),
		})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		filter := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
		}

		onInsert := bson.M{
			"instance_id": x.instanceId,
			"hostname":    x.hostname,
			"created_at":  nil,
		}

		onUpdate := bson.M{
			"mint_ids":        x.mintIds,
			"healthy":         true,
			"service_healths": []models.ServiceHealth{},
			"updated_at":      nil,
		}

		update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

		call := mockDB.EXPECT().UpsertOne(models.CollectionHealthChecks, filter, mock.Anything)
		call.Run(func(_ string, _ interface{}, arg interface{}) {

			updateArg := arg.(bson.M)

			updateArg["$setOnInsert"].(bson.M)["created_at"] = nil
			updateArg["$set"].(bson.M)["updated_at"] = nil
			updateArg["$set"].(bson.M)["service_healths"] = []models.ServiceHealth{}

			assert.Equal(t, updateArg, update)
		})
		call.Return(primitive.NewObjectID(), nil)

		success := x.PostHealth()
		assert.True(t, success)
	})

	t.Run("Unhealthy Service", func(t *testing.T) {
		x := NewTestHealthCheck()
		x.SetServices([]Service{
			NewMockService(),
			&MockService{healthy: false},
		})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		call := mockDB.EXPECT().UpsertOne(models.CollectionHealthChecks, mock.Anything, mock.Anything)
		call.Run(func(_ string, _ interface{}, arg interface{}) {
			updateArg := arg.(bson.M)
			assert.Equal(t, false, updateArg["$set"].(bson.M)["healthy"])
			assert.Len(t, updateArg["$set"].(bson.M)["service_healths"], 2)
		})
		call.Return(primitive.NewObjectID(), nil)

		success := x.PostHealth()
		assert.True(t, success)
	})

	t.Run("With Error", func(t *testing.T) {
		x := NewTestHealthCheck()
		wg := &sync.WaitGroup{}
		x.SetServices([]Service{
			NewEmptyService(wg),
			NewEmptyService(wg),
			NewMockService(),
		})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		call := mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything)
		call.Return(primitive.NewObjectID(), errors.New("error"))

		success := x.PostHealth()
		assert.False(t, success)
	})

	t.Run("Via Run", func(t *testing.T) {
		x := NewTestHealthCheck()
		wg := &sync.WaitGroup{}
		x.SetServices([]Service{
			NewEmptyService(wg),
			NewEmptyService(wg),
			NewMockService(),
		})

		mockDB := mocks.NewMockDatabase(t)
		DB = mockDB

		call := mockDB.EXPECT().UpsertOne(mock.Anything, mock.Anything, mock.Anything)
		call.Return(primitive.NewObjectID(), errors.New("error"))

		x.Run()
	})

}

func TestNewHealthCheck(t *testing.T) {
	Config = models.Config{}
	Config.HealthCheck.InstanceID = "walletka-settlement-01"
	Config.HealthCheck.IntervalMillis = 1000
	Config.Mints = []models.MintConfig{{MintID: "mint-one"}, {MintID: "mint-two"}}

	x := NewHealthCheck()

	hostname, _ := os.Hostname()

	assert.NotNil(t, x)
	assert.Equal(t, "walletka-settlement-01", x.instanceId)
	assert.Equal(t, hostname, x.hostname)
	assert.Equal(t, []string{"mint-one", "mint-two"}, x.mintIds)

	wg := &sync.WaitGroup{}
	service := NewHealthService(x, wg)
	assert.NotNil(t, service)
	assert.Equal(t, HealthServiceName, service.Health().Name)
}
