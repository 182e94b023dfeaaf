package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionHealthChecks = "healthchecks"
)

type RunnerStatus struct {
	Processed int64 `bson:"processed" json:"processed"`
	Failed    int64 `bson:"failed" json:"failed"`
}

type ServiceHealth struct {
	Name         string    `bson:"name" json:"name"`
	LastSyncTime time.Time `bson:"last_sync_time" json:"last_sync_time"`
	NextSyncTime time.Time `bson:"next_sync_time" json:"next_sync_time"`
	Processed    int64     `bson:"processed" json:"processed"`
	Failed       int64     `bson:"failed" json:"failed"`
	Healthy      bool      `bson:"healthy" json:"healthy"`
}

type Health struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	InstanceID     string              `bson:"instance_id" json:"instance_id"`
	Hostname       string              `bson:"hostname" json:"hostname"`
	MintIDs        []string            `bson:"mint_ids" json:"mint_ids"`
	Healthy        bool                `bson:"healthy" json:"healthy"`
	ServiceHealths []ServiceHealth     `bson:"service_healths" json:"service_healths"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}
