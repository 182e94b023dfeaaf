package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	lock "github.com/square/mongo-lock"
)

const (
	lockPollInterval = 50 * time.Millisecond
	lockTTLSecs      = 60
)

type Database interface {
	Connect() error
	SetupIndexes() error
	SetupLocker() error
	Disconnect() error

	InsertOne(collection string, data interface{}) (primitive.ObjectID, error)
	InsertMany(collection string, data []interface{}) error
	FindOne(collection string, filter interface{}, result interface{}) error
	FindMany(collection string, filter interface{}, result interface{}) error
	UpdateOne(collection string, filter interface{}, update interface{}) (int64, error)
	UpsertOne(collection string, filter interface{}, update interface{}) (primitive.ObjectID, error)
	FindOneAndUpdate(collection string, filter interface{}, update interface{}, result interface{}) error
	DeleteMany(collection string, filter interface{}) (int64, error)

	XLock(ctx context.Context, resourceId string) (string, error)
	Unlock(lockId string) error
}

// mongoDatabase is a wrapper around the mongo database
type mongoDatabase struct {
	db       *mongo.Database
	uri      string
	database string
	timeout  time.Duration
	locker   *lock.Client
	purger   lock.Purger
}

var (
	DB Database
)

func (d *mongoDatabase) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.timeout)
}

// Connect connects to the database
func (d *mongoDatabase) Connect() error {
	log.Debug("[DB] Connecting to database")
	wcMajority := writeconcern.Majority()
	wcMajority.WTimeout = d.timeout

	ctx, cancel := d.callContext()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.uri).SetWriteConcern(wcMajority))
	if err != nil {
		return err
	}
	d.db = client.Database(d.database)

	log.Info("[DB] Connected to mongo database: ", d.database)
	return nil
}

// SetupLocker sets up the locker
func (d *mongoDatabase) SetupLocker() error {
	log.Debug("[DB] Setting up locker")

	ctx, cancel := d.callContext()
	defer cancel()

	locker := lock.NewClient(d.db.Collection("locks"))
	if err := locker.CreateIndexes(ctx); err != nil {
		return err
	}
	d.locker = locker
	d.purger = lock.NewPurger(locker)

	log.Info("[DB] Locker setup")
	return nil
}

// XLock polls for an exclusive lock on a resource until ctx is done
func (d *mongoDatabase) XLock(ctx context.Context, resourceId string) (string, error) {
	lockId := uuid.NewString()
	details := lock.LockDetails{TTL: lockTTLSecs}

	for {
		callCtx, cancel := d.callContext()
		err := d.locker.XLock(callCtx, resourceId, lockId, details)
		cancel()
		if err == nil {
			return lockId, nil
		}
		if !errors.Is(err, lock.ErrAlreadyLocked) {
			return "", err
		}

		purgeCtx, cancel := d.callContext()
		if _, err := d.purger.Purge(purgeCtx); err != nil {
			log.WithError(err).Warn("[DB] Error purging expired locks")
		}
		cancel()

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("lock %s: %w", resourceId, errors.Join(common.ErrTimeout, ctx.Err()))
		case <-time.After(lockPollInterval):
		}
	}
}

// Unlock unlocks a resource
func (d *mongoDatabase) Unlock(lockId string) error {
	ctx, cancel := d.callContext()
	defer cancel()

	_, err := d.locker.Unlock(ctx, lockId)
	return err
}

func (d *mongoDatabase) createIndex(collection string, keys bson.D, unique bool, sparse bool) error {
	log.Debug("[DB] Setting up indexes for ", collection)
	ctx, cancel := d.callContext()
	defer cancel()
	_, err := d.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(unique).SetSparse(sparse),
	})
	return err
}

// Setup Indexes
func (d *mongoDatabase) SetupIndexes() error {
	log.Debug("[DB] Setting up indexes")

	indexes := []struct {
		collection string
		keys       bson.D
		unique     bool
		sparse     bool
	}{
		{models.CollectionInvoices, bson.D{{Key: "hash", Value: 1}}, true, false},
		{models.CollectionInvoices, bson.D{{Key: "payment_hash", Value: 1}}, true, false},
		{models.CollectionInvoices, bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}}, false, false},
		{models.CollectionMints, bson.D{{Key: "mint_id", Value: 1}}, true, false},
		{models.CollectionUsedProofs, bson.D{{Key: "mint_id", Value: 1}, {Key: "secret", Value: 1}}, true, false},
		{models.CollectionUsedProofs, bson.D{{Key: "batch_id", Value: 1}}, false, false},
		{models.CollectionPendingMelt, bson.D{{Key: "melt_id", Value: 1}}, true, false},
		{models.CollectionPendingMelt, bson.D{{Key: "status", Value: 1}}, false, false},
		{models.CollectionCustomers, bson.D{{Key: "alias", Value: 1}}, true, false},
		{models.CollectionCustomers, bson.D{{Key: "nostr_pubkey", Value: 1}}, true, true},
		{models.CollectionCustomerInvoices, bson.D{{Key: "payment_hash", Value: 1}}, true, false},
		{models.CollectionHealthChecks, bson.D{{Key: "instance_id", Value: 1}, {Key: "hostname", Value: 1}}, true, false},
	}

	for _, index := range indexes {
		if err := d.createIndex(index.collection, index.keys, index.unique, index.sparse); err != nil {
			return err
		}
	}

	log.Info("[DB] Indexes setup")

	return nil
}

// Disconnect disconnects from the database
func (d *mongoDatabase) Disconnect() error {
	log.Debug("[DB] Disconnecting from database")
	ctx, cancel := d.callContext()
	defer cancel()
	err := d.db.Client().Disconnect(ctx)
	log.Info("[DB] Disconnected from database")
	return err
}

// method for insert single value in a collection
func (d *mongoDatabase) InsertOne(collection string, data interface{}) (primitive.ObjectID, error) {
	ctx, cancel := d.callContext()
	defer cancel()
	result, err := d.db.Collection(collection).InsertOne(ctx, data)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// ordered insert, stops at the first failing document
func (d *mongoDatabase) InsertMany(collection string, data []interface{}) error {
	ctx, cancel := d.callContext()
	defer cancel()
	_, err := d.db.Collection(collection).InsertMany(ctx, data, options.InsertMany().SetOrdered(true))
	return err
}

// method for find single value in a collection
func (d *mongoDatabase) FindOne(collection string, filter interface{}, result interface{}) error {
	ctx, cancel := d.callContext()
	defer cancel()
	return d.db.Collection(collection).FindOne(ctx, filter).Decode(result)
}

// method for find multiple values in a collection
func (d *mongoDatabase) FindMany(collection string, filter interface{}, result interface{}) error {
	ctx, cancel := d.callContext()
	defer cancel()
	cursor, err := d.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	return cursor.All(ctx, result)
}

// UpdateOne returns the number of matched documents so callers can use the
// filter as a compare-and-set guard
func (d *mongoDatabase) UpdateOne(collection string, filter interface{}, update interface{}) (int64, error) {
	ctx, cancel := d.callContext()
	defer cancel()
	result, err := d.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// method for upsert single value in a collection
func (d *mongoDatabase) UpsertOne(collection string, filter interface{}, update interface{}) (primitive.ObjectID, error) {
	ctx, cancel := d.callContext()
	defer cancel()

	opts := options.Update().SetUpsert(true)
	result, err := d.db.Collection(collection).UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := result.UpsertedID.(primitive.ObjectID)
	return id, nil
}

func (d *mongoDatabase) FindOneAndUpdate(collection string, filter interface{}, update interface{}, result interface{}) error {
	ctx, cancel := d.callContext()
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return d.db.Collection(collection).FindOneAndUpdate(ctx, filter, update, opts).Decode(result)
}

func (d *mongoDatabase) DeleteMany(collection string, filter interface{}) (int64, error) {
	ctx, cancel := d.callContext()
	defer cancel()
	result, err := d.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func NewMongoDatabase(uri string, database string, timeout time.Duration) Database {
	return &mongoDatabase{
		uri:      uri,
		database: database,
		timeout:  timeout,
	}
}

// InitDB creates a new database wrapper
func InitDB() {
	DB = NewMongoDatabase(
		Config.MongoDB.URI,
		Config.MongoDB.Database,
		time.Duration(Config.MongoDB.TimeoutMillis)*time.Millisecond,
	)

	err := DB.Connect()
	if err != nil {
		log.Fatal("[DB] Error connecting to database: ", err)
	}
	err = DB.SetupIndexes()
	if err != nil {
		log.Fatal("[DB] Error setting up indexes: ", err)
	}
	err = DB.SetupLocker()
	if err != nil {
		log.Fatal("[DB] Error setting up locker: ", err)
	}
	log.Info("[DB] Database initialized")
}

func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
