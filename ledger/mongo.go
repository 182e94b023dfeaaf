package ledger

import (
	"fmt"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

type mongoInvoiceStore struct {
	db app.Database
}

func NewMongoInvoiceStore(db app.Database) InvoiceStore {
	return &mongoInvoiceStore{db: db}
}

func (s *mongoInvoiceStore) Insert(invoice models.Invoice) error {
	_, err := s.db.InsertOne(models.CollectionInvoices, invoice)
	if app.IsDuplicateKey(err) {
		return common.ErrDuplicatePaymentHash
	}
	return err
}

func (s *mongoInvoiceStore) findOne(filter bson.M) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.FindOne(models.CollectionInvoices, filter, &invoice)
	if app.IsNotFound(err) {
		return invoice, fmt.Errorf("invoice %v: %w", filter, common.ErrNotFound)
	}
	return invoice, err
}

func (s *mongoInvoiceStore) FindByHash(hash string) (models.Invoice, error) {
	return s.findOne(bson.M{"hash": hash})
}

func (s *mongoInvoiceStore) FindByPaymentHash(paymentHash string) (models.Invoice, error) {
	return s.findOne(bson.M{"payment_hash": paymentHash})
}

func (s *mongoInvoiceStore) UpdateStatus(paymentHash string, from []models.InvoiceStatus, to models.InvoiceStatus, at time.Time) (bool, error) {
	filter := bson.M{
		"payment_hash": paymentHash,
		"status":       bson.M{"$in": from},
	}
	set := bson.M{
		"status":     to,
		"updated_at": at,
	}
	if to == models.InvoiceStatusPaid {
		set["confirmed_at"] = at
	}
	matched, err := s.db.UpdateOne(models.CollectionInvoices, filter, bson.M{"$set": set})
	return matched > 0, err
}

func (s *mongoInvoiceStore) MarkTokenIssued(hash string, at time.Time) (bool, error) {
	filter := bson.M{
		"hash":         hash,
		"status":       models.InvoiceStatusPaid,
		"token_status": models.TokenStatusNotIssued,
	}
	update := bson.M{
		"$set": bson.M{
			"token_status": models.TokenStatusIssued,
			"updated_at":   at,
		},
	}
	matched, err := s.db.UpdateOne(models.CollectionInvoices, filter, update)
	return matched > 0, err
}

func (s *mongoInvoiceStore) FindExpirable(now time.Time) ([]models.Invoice, error) {
	filter := bson.M{
		"status": bson.M{"$in": []models.InvoiceStatus{models.InvoiceStatusUnpaid, models.InvoiceStatusInFlight}},
		"expires_at": bson.M{
			"$gt":  time.Unix(0, 0),
			"$lte": now,
		},
	}
	invoices := []models.Invoice{}
	err := s.db.FindMany(models.CollectionInvoices, filter, &invoices)
	return invoices, err
}

func (s *mongoInvoiceStore) FindUnsettled() ([]models.Invoice, error) {
	filter := bson.M{
		"status": bson.M{"$in": []models.InvoiceStatus{models.InvoiceStatusUnpaid, models.InvoiceStatusInFlight}},
	}
	invoices := []models.Invoice{}
	err := s.db.FindMany(models.CollectionInvoices, filter, &invoices)
	return invoices, err
}

type mongoMintStore struct {
	db app.Database
}

func NewMongoMintStore(db app.Database) MintStore {
	return &mongoMintStore{db: db}
}

func (s *mongoMintStore) Ensure(mint models.MintLedger) error {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"mint_id":          mint.MintID,
			"circulation_msat": int64(0),
			"created_at":       now,
		},
		"$set": bson.M{
			"active_keyset_id":    mint.ActiveKeysetID,
			"inactive_keyset_ids": mint.InactiveKeysetIDs,
			"max_order":           mint.MaxOrder,
			"fee_reserve_policy":  mint.FeeReservePolicy,
			"updated_at":          now,
		},
	}
	_, err := s.db.UpsertOne(models.CollectionMints, bson.M{"mint_id": mint.MintID}, update)
	return err
}

func (s *mongoMintStore) Find(mintID string) (models.MintLedger, error) {
	var mint models.MintLedger
	err := s.db.FindOne(models.CollectionMints, bson.M{"mint_id": mintID}, &mint)
	if app.IsNotFound(err) {
		return mint, fmt.Errorf("mint %s: %w", mintID, common.ErrMintNotFound)
	}
	return mint, err
}

func (s *mongoMintStore) Increment(mintID string, amountMsat uint64) (models.MintLedger, error) {
	var mint models.MintLedger
	update := bson.M{
		"$inc": bson.M{"circulation_msat": int64(amountMsat)},
		"$set": bson.M{"updated_at": time.Now()},
	}
	err := s.db.FindOneAndUpdate(models.CollectionMints, bson.M{"mint_id": mintID}, update, &mint)
	if app.IsNotFound(err) {
		return mint, fmt.Errorf("mint %s: %w", mintID, common.ErrMintNotFound)
	}
	return mint, err
}

func (s *mongoMintStore) Decrement(mintID string, amountMsat uint64) (models.MintLedger, bool, error) {
	var mint models.MintLedger
	filter := bson.M{
		"mint_id":          mintID,
		"circulation_msat": bson.M{"$gte": int64(amountMsat)},
	}
	update := bson.M{
		"$inc": bson.M{"circulation_msat": -int64(amountMsat)},
		"$set": bson.M{"updated_at": time.Now()},
	}
	err := s.db.FindOneAndUpdate(models.CollectionMints, filter, update, &mint)
	if err == nil {
		return mint, true, nil
	}
	if !app.IsNotFound(err) {
		return mint, false, err
	}
	mint, err = s.Find(mintID)
	if err != nil {
		return mint, false, err
	}
	return mint, false, nil
}

type mongoUsedProofStore struct {
	db app.Database
}

func NewMongoUsedProofStore(db app.Database) UsedProofStore {
	return &mongoUsedProofStore{db: db}
}

func (s *mongoUsedProofStore) FindSpent(mintID string, secrets []string) ([]string, error) {
	filter := bson.M{
		"mint_id": mintID,
		"secret":  bson.M{"$in": secrets},
	}
	used := []models.UsedProof{}
	if err := s.db.FindMany(models.CollectionUsedProofs, filter, &used); err != nil {
		return nil, err
	}
	spent := make([]string, 0, len(used))
	for _, proof := range used {
		spent = append(spent, proof.Secret)
	}
	return spent, nil
}

// InsertBatch relies on the unique (mint_id, secret) index. A batch that
// loses a race is deleted by its batch id before reporting the double spend.
func (s *mongoUsedProofStore) InsertBatch(proofs []models.UsedProof) error {
	if len(proofs) == 0 {
		return nil
	}
	mintID := proofs[0].MintID
	batchID := proofs[0].BatchID

	secrets := make([]string, 0, len(proofs))
	for _, proof := range proofs {
		secrets = append(secrets, proof.Secret)
	}
	spent, err := s.FindSpent(mintID, secrets)
	if err != nil {
		return err
	}
	if len(spent) > 0 {
		return common.ErrDoubleSpend
	}

	docs := make([]interface{}, 0, len(proofs))
	for _, proof := range proofs {
		docs = append(docs, proof)
	}
	err = s.db.InsertMany(models.CollectionUsedProofs, docs)
	if err == nil {
		return nil
	}

	if _, delErr := s.db.DeleteMany(models.CollectionUsedProofs, bson.M{"batch_id": batchID}); delErr != nil {
		log.WithError(delErr).WithField("batch_id", batchID).Error("[PROOF STORE] Error removing partial batch")
		return fmt.Errorf("partial batch %s left behind: %w", batchID, delErr)
	}
	if app.IsDuplicateKey(err) {
		return common.ErrDoubleSpend
	}
	return err
}

type mongoPendingMeltStore struct {
	db app.Database
}

func NewMongoPendingMeltStore(db app.Database) PendingMeltStore {
	return &mongoPendingMeltStore{db: db}
}

func (s *mongoPendingMeltStore) Insert(melt models.PendingMelt) error {
	_, err := s.db.InsertOne(models.CollectionPendingMelt, melt)
	return err
}

func (s *mongoPendingMeltStore) UpdateStatus(meltID string, status string, at time.Time) error {
	filter := bson.M{
		"melt_id": meltID,
		"status":  models.MeltStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": at,
		},
	}
	matched, err := s.db.UpdateOne(models.CollectionPendingMelt, filter, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return fmt.Errorf("pending melt %s: %w", meltID, common.ErrNotFound)
	}
	return nil
}

func (s *mongoPendingMeltStore) FindPending() ([]models.PendingMelt, error) {
	melts := []models.PendingMelt{}
	err := s.db.FindMany(models.CollectionPendingMelt, bson.M{"status": models.MeltStatusPending}, &melts)
	return melts, err
}
