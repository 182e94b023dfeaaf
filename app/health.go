package app

import (
	"os"
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	HealthServiceName = "health"
)

type HealthCheckRunner struct {
	instanceId string
	hostname   string
	mintIds    []string

	mu       sync.RWMutex
	services []Service
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{}
}

func (x *HealthCheckRunner) SetServices(services []Service) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.services = services
}

func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		health := service.Health()
		if health.Name == EmptyServiceName {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

func (x *HealthCheckRunner) filter() bson.M {
	return bson.M{
		"instance_id": x.instanceId,
		"hostname":    x.hostname,
	}
}

func (x *HealthCheckRunner) FindLastHealth() (models.Health, error) {
	var health models.Health
	err := DB.FindOne(models.CollectionHealthChecks, x.filter(), &health)
	return health, err
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	serviceHealths := x.ServiceHealths()
	healthy := true
	for _, health := range serviceHealths {
		healthy = healthy && health.Healthy
	}

	onInsert := bson.M{
		"instance_id": x.instanceId,
		"hostname":    x.hostname,
		"created_at":  time.Now(),
	}

	onUpdate := bson.M{
		"mint_ids":        x.mintIds,
		"healthy":         healthy,
		"service_healths": serviceHealths,
		"updated_at":      time.Now(),
	}

	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	_, err := DB.UpsertOne(models.CollectionHealthChecks, x.filter(), update)
	if err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}

	log.Debug("[HEALTH] Posted health")
	return true
}

func NewHealthCheck() *HealthCheckRunner {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatal("[HEALTH] Error getting hostname: ", err)
	}

	mintIds := make([]string, 0, len(Config.Mints))
	for _, mint := range Config.Mints {
		mintIds = append(mintIds, mint.MintID)
	}

	x := &HealthCheckRunner{
		instanceId: Config.HealthCheck.InstanceID,
		hostname:   hostname,
		mintIds:    mintIds,
	}

	log.Debug("[HEALTH] Initialized health")

	return x
}

func NewHealthService(x *HealthCheckRunner, wg *sync.WaitGroup) Service {
	return NewRunnerService(HealthServiceName, x, wg, time.Duration(Config.HealthCheck.IntervalMillis)*time.Millisecond)
}
