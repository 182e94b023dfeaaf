package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/dan13ram/walletka-settlement/app/mocks"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var duplicateKeyError = mongo.WriteException{
	WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
}

var bulkDuplicateKeyError = mongo.BulkWriteException{
	WriteErrors: []mongo.BulkWriteError{{WriteError: mongo.WriteError{Code: 11000, Message: "E11000 duplicate key error"}}},
}

func TestMongoInvoiceStore(t *testing.T) {
	t.Run("Insert Duplicate", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoInvoiceStore(mockDB)

		mockDB.EXPECT().InsertOne(models.CollectionInvoices, mock.Anything).Return(primitive.NilObjectID, duplicateKeyError)

		err := store.Insert(models.Invoice{PaymentHash: "ph1"})
		assert.ErrorIs(t, err, common.ErrDuplicatePaymentHash)
	})

	t.Run("Find Not Found", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoInvoiceStore(mockDB)

		mockDB.EXPECT().FindOne(models.CollectionInvoices, bson.M{"hash": "h1"}, mock.Anything).Return(mongo.ErrNoDocuments)

		_, err := store.FindByHash("h1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("Mark Paid Guard", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoInvoiceStore(mockDB)
		at := time.Now()

		from := []models.InvoiceStatus{models.InvoiceStatusUnpaid, models.InvoiceStatusInFlight}
		filter := bson.M{
			"payment_hash": "ph1",
			"status":       bson.M{"$in": from},
		}
		update := bson.M{"$set": bson.M{
			"status":       models.InvoiceStatusPaid,
			"updated_at":   at,
			"confirmed_at": at,
		}}
		mockDB.EXPECT().UpdateOne(models.CollectionInvoices, filter, update).Return(int64(1), nil)

		matched, err := store.UpdateStatus("ph1", from, models.InvoiceStatusPaid, at)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("Find Unsettled Ignores Expiry", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoInvoiceStore(mockDB)

		filter := bson.M{
			"status": bson.M{"$in": []models.InvoiceStatus{models.InvoiceStatusUnpaid, models.InvoiceStatusInFlight}},
		}
		mockDB.EXPECT().FindMany(models.CollectionInvoices, filter, mock.Anything).Return(nil)

		invoices, err := store.FindUnsettled()
		require.NoError(t, err)
		assert.Empty(t, invoices)
	})

	t.Run("Mark Token Issued Guard", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoInvoiceStore(mockDB)
		at := time.Now()

		filter := bson.M{
			"hash":         "h1",
			"status":       models.InvoiceStatusPaid,
			"token_status": models.TokenStatusNotIssued,
		}
		mockDB.EXPECT().UpdateOne(models.CollectionInvoices, filter, mock.Anything).Return(int64(0), nil)

		matched, err := store.MarkTokenIssued("h1", at)
		require.NoError(t, err)
		assert.False(t, matched)
	})
}

func TestMongoMintStore(t *testing.T) {
	t.Run("Decrement Underflow", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoMintStore(mockDB)

		filter := bson.M{
			"mint_id":          "mint-one",
			"circulation_msat": bson.M{"$gte": int64(5000)},
		}
		mockDB.EXPECT().FindOneAndUpdate(models.CollectionMints, filter, mock.Anything, mock.Anything).Return(mongo.ErrNoDocuments)
		mockDB.EXPECT().FindOne(models.CollectionMints, bson.M{"mint_id": "mint-one"}, mock.Anything).
			Run(func(_ string, _ interface{}, result interface{}) {
				result.(*models.MintLedger).CirculationMsat = 1000
			}).
			Return(nil)

		mint, ok, err := store.Decrement("mint-one", 5000)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, uint64(1000), mint.CirculationMsat)
	})

	t.Run("Decrement Unknown Mint", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoMintStore(mockDB)

		mockDB.EXPECT().FindOneAndUpdate(models.CollectionMints, mock.Anything, mock.Anything, mock.Anything).Return(mongo.ErrNoDocuments)
		mockDB.EXPECT().FindOne(models.CollectionMints, mock.Anything, mock.Anything).Return(mongo.ErrNoDocuments)

		_, _, err := store.Decrement("mint-one", 5000)
		assert.ErrorIs(t, err, common.ErrMintNotFound)
	})

	t.Run("Increment", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoMintStore(mockDB)

		call := mockDB.EXPECT().FindOneAndUpdate(models.CollectionMints, bson.M{"mint_id": "mint-one"}, mock.Anything, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}, result interface{}) {
			assert.Equal(t, bson.M{"circulation_msat": int64(700)}, update.(bson.M)["$inc"])
			result.(*models.MintLedger).CirculationMsat = 1700
		})
		call.Return(nil)

		mint, err := store.Increment("mint-one", 700)
		require.NoError(t, err)
		assert.Equal(t, uint64(1700), mint.CirculationMsat)
	})
}

func TestMongoUsedProofStore(t *testing.T) {
	batch := []models.UsedProof{
		{MintID: "mint-one", Secret: "a", BatchID: "batch-1"},
		{MintID: "mint-one", Secret: "b", BatchID: "batch-1"},
	}
	spentFilter := bson.M{
		"mint_id": "mint-one",
		"secret":  bson.M{"$in": []string{"a", "b"}},
	}

	t.Run("Already Spent", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoUsedProofStore(mockDB)

		mockDB.EXPECT().FindMany(models.CollectionUsedProofs, spentFilter, mock.Anything).
			Run(func(_ string, _ interface{}, result interface{}) {
				*result.(*[]models.UsedProof) = []models.UsedProof{{Secret: "b"}}
			}).
			Return(nil)

		assert.ErrorIs(t, store.InsertBatch(batch), common.ErrDoubleSpend)
	})

	t.Run("Lost Race Is Compensated", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoUsedProofStore(mockDB)

		mockDB.EXPECT().FindMany(models.CollectionUsedProofs, spentFilter, mock.Anything).Return(nil)
		mockDB.EXPECT().InsertMany(models.CollectionUsedProofs, mock.Anything).Return(bulkDuplicateKeyError)
		mockDB.EXPECT().DeleteMany(models.CollectionUsedProofs, bson.M{"batch_id": "batch-1"}).Return(int64(1), nil)

		assert.ErrorIs(t, store.InsertBatch(batch), common.ErrDoubleSpend)
	})

	t.Run("Compensation Failure", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoUsedProofStore(mockDB)

		mockDB.EXPECT().FindMany(models.CollectionUsedProofs, spentFilter, mock.Anything).Return(nil)
		mockDB.EXPECT().InsertMany(models.CollectionUsedProofs, mock.Anything).Return(bulkDuplicateKeyError)
		mockDB.EXPECT().DeleteMany(models.CollectionUsedProofs, mock.Anything).Return(int64(0), errors.New("error"))

		err := store.InsertBatch(batch)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrDoubleSpend)
	})

	t.Run("Inserted", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		store := NewMongoUsedProofStore(mockDB)

		mockDB.EXPECT().FindMany(models.CollectionUsedProofs, spentFilter, mock.Anything).Return(nil)
		mockDB.EXPECT().InsertMany(models.CollectionUsedProofs, mock.Anything).
			Run(func(_ string, docs []interface{}) {
				assert.Len(t, docs, 2)
			}).
			Return(nil)

		require.NoError(t, store.InsertBatch(batch))
	})
}

func TestMongoPendingMeltStore(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	store := NewMongoPendingMeltStore(mockDB)

	filter := bson.M{"melt_id": "m1", "status": models.MeltStatusPending}
	mockDB.EXPECT().UpdateOne(models.CollectionPendingMelt, filter, mock.Anything).Return(int64(0), nil)

	err := store.UpdateStatus("m1", models.MeltStatusSettled, time.Now())
	assert.ErrorIs(t, err, common.ErrNotFound)
}
