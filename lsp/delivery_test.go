package lsp

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/lightning"
	lnmocks "github.com/dan13ram/walletka-settlement/lightning/mocks"
	"github.com/dan13ram/walletka-settlement/lsp/mocks"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

const (
	testNodeID    = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	testPubkey    = "17162c921dc4d2518f9a101db33695df1afb56ab82f5ff3e5da6eec3ca5cd917"
	testMintID    = "lsp-mint"
	testHash      = "ph-customer"
	fiftyKSatMsat = uint64(50_000_000)
)

type deliveryHarness struct {
	customers CustomerStore
	invoices  CustomerInvoiceStore
	node      *lnmocks.MockNodeService
	issuer    *mocks.MockTokenIssuer
	messenger *mocks.MockMessenger
	engine    *DeliveryEngine
}

func newDeliveryHarness(t *testing.T) *deliveryHarness {
	h := &deliveryHarness{
		customers: NewMemoryCustomerStore(),
		invoices:  NewMemoryCustomerInvoiceStore(),
		node:      lnmocks.NewMockNodeService(t),
		issuer:    mocks.NewMockTokenIssuer(t),
		messenger: mocks.NewMockMessenger(t),
	}
	h.engine = NewDeliveryEngine(h.customers, h.invoices, h.node, h.issuer, h.messenger, testMintID, time.Second)
	return h
}

func (h *deliveryHarness) addCustomer(t *testing.T, nodeID *string, pubkey *string, config models.CustomerConfig) {
	require.NoError(t, h.customers.Insert(models.Customer{
		Alias:       "kosami",
		NodeID:      nodeID,
		NostrPubkey: pubkey,
		Config:      config,
	}))
	require.NoError(t, h.invoices.Insert(models.CustomerInvoice{
		PaymentHash: testHash,
		Alias:       "kosami",
		AmountMsat:  fiftyKSatMsat,
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
}

// tokenlessStore fails every token write.
type tokenlessStore struct {
	CustomerInvoiceStore
}

func (s tokenlessStore) SetToken(paymentHash string, token string) (string, error) {
	return "", errors.New("write conflict")
}

func strPtr(s string) *string {
	return &s
}

func TestChannelCapacitySat(t *testing.T) {
	assert.Equal(t, uint64(60_000), ChannelCapacitySat(50_000_000))
	assert.Equal(t, uint64(24_000), ChannelCapacitySat(20_000_999))
	assert.Equal(t, uint64(0), ChannelCapacitySat(999))
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	event := models.NewPaymentReceived(testHash, fiftyKSatMsat)

	t.Run("Unknown Payment Hash", func(t *testing.T) {
		h := newDeliveryHarness(t)

		strategy, err := h.engine.Deliver(ctx, "other", 1000)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryNone, strategy)
	})

	t.Run("Customer Without Node", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, nil, strPtr(testPubkey), models.DefaultCustomerConfig())

		strategy, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryNone, strategy)
	})

	t.Run("Keysend", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(&lightning.PaymentResult{AmountMsat: fiftyKSatMsat}, nil)

		require.NoError(t, h.engine.HandlePaymentReceived(ctx, event))

		invoice, err := h.invoices.FindByPaymentHash(testHash)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryKeysend, invoice.DeliveredVia)
		assert.NotNil(t, invoice.DeliveredAt)
	})

	t.Run("Already Delivered", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())
		_, err := h.invoices.MarkDelivered(testHash, models.DeliveryKeysend, time.Now())
		require.NoError(t, err)

		strategy, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryKeysend, strategy)
	})

	t.Run("Channel After Keysend Failure", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.node.EXPECT().OpenChannel(mock.Anything, testNodeID, uint64(60_000), fiftyKSatMsat, true).Return("txid:0", nil)

		strategy, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryChannel, strategy)
	})

	t.Run("Private Channel", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.PublicChannels = false
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.node.EXPECT().OpenChannel(mock.Anything, testNodeID, uint64(60_000), fiftyKSatMsat, false).Return("txid:0", nil)

		strategy, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryChannel, strategy)
	})

	t.Run("Full Cascade To Ecash", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.node.EXPECT().OpenChannel(mock.Anything, testNodeID, uint64(60_000), fiftyKSatMsat, true).Return("", common.ErrChannel)
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("cashuAtoken", nil)
		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAtoken").Return(nil)

		require.NoError(t, h.engine.HandlePaymentReceived(ctx, event))

		invoice, err := h.invoices.FindByPaymentHash(testHash)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryEcash, invoice.DeliveredVia)
		assert.Equal(t, "cashuAtoken", invoice.Token)
	})

	t.Run("Small Amount Skips Channel", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())
		amount := uint64(20_000_000)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, amount).Return(nil, common.ErrPayment)
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, amount).Return("cashuAsmall", nil)
		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAsmall").Return(nil)

		strategy, err := h.engine.Deliver(ctx, testHash, amount)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryEcash, strategy)
	})

	t.Run("Event Without Amount Uses Invoice Amount", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(&lightning.PaymentResult{}, nil)

		err := h.engine.HandlePaymentReceived(ctx, models.PaymentEvent{Kind: models.EventPaymentReceived, PaymentHash: testHash})
		require.NoError(t, err)
	})

	t.Run("Missing Pubkey Is Undeliverable", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), nil, models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.node.EXPECT().OpenChannel(mock.Anything, testNodeID, uint64(60_000), fiftyKSatMsat, true).Return("", common.ErrChannel)

		_, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		assert.ErrorIs(t, err, common.ErrUndeliverablePayment)

		// acknowledged on the bus
		h2 := newDeliveryHarness(t)
		h2.addCustomer(t, strPtr(testNodeID), nil, models.DefaultCustomerConfig())
		h2.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h2.node.EXPECT().OpenChannel(mock.Anything, testNodeID, uint64(60_000), fiftyKSatMsat, true).Return("", common.ErrChannel)
		assert.NoError(t, h2.engine.HandlePaymentReceived(ctx, event))

		invoice, err := h2.invoices.FindByPaymentHash(testHash)
		require.NoError(t, err)
		assert.Nil(t, invoice.DeliveredAt)
	})

	t.Run("Ecash Disabled Is Undeliverable", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.EnableEcash = false
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)

		_, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		assert.ErrorIs(t, err, common.ErrUndeliverablePayment)
	})

	t.Run("Above Ecash Limit Is Undeliverable", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.MaxEcashReceiveSat = 10_000
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)

		_, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		assert.ErrorIs(t, err, common.ErrUndeliverablePayment)
	})

	t.Run("Redelivery Resends Stored Token", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment).Once()
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("cashuAonce", nil).Once()
		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAonce").Return(errors.New("relay down")).Once()

		err := h.engine.HandlePaymentReceived(ctx, event)
		require.Error(t, err)

		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAonce").Return(nil).Once()

		require.NoError(t, h.engine.HandlePaymentReceived(ctx, event))
		invoice, err := h.invoices.FindByPaymentHash(testHash)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryEcash, invoice.DeliveredVia)
	})

	t.Run("Token Issue Failure Is Redelivered", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("", common.ErrSigning)

		err := h.engine.HandlePaymentReceived(ctx, event)
		assert.ErrorIs(t, err, common.ErrSigning)
	})

	t.Run("Keysend Timeout Is Redelivered", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).
			Return(nil, common.WrapTimeout(context.DeadlineExceeded)).Once()

		err := h.engine.HandlePaymentReceived(ctx, event)
		assert.ErrorIs(t, err, common.ErrTimeout)
		assert.True(t, common.IsRetriable(err))

		invoice, err := h.invoices.FindByPaymentHash(testHash)
		require.NoError(t, err)
		assert.Nil(t, invoice.DeliveredAt)
		assert.Empty(t, invoice.Token)
	})

	t.Run("Channel Open Timeout Is Redelivered", func(t *testing.T) {
		h := newDeliveryHarness(t)
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), models.DefaultCustomerConfig())

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment).Once()
		h.node.EXPECT().OpenChannel(mock.Anything, testNodeID, uint64(60_000), fiftyKSatMsat, true).
			Return("", common.WrapTimeout(context.DeadlineExceeded)).Once()

		err := h.engine.HandlePaymentReceived(ctx, event)
		assert.ErrorIs(t, err, common.ErrTimeout)
	})

	t.Run("Permanent Failure Is Acknowledged", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("", common.ErrMintNotFound).Once()

		_, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		assert.ErrorIs(t, err, common.ErrMintNotFound)

		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("", common.ErrMintNotFound).Once()
		assert.NoError(t, h.engine.HandlePaymentReceived(ctx, event))
	})

	t.Run("Unstored Token Is Still Sent", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)
		h.engine = NewDeliveryEngine(h.customers, tokenlessStore{h.invoices}, h.node, h.issuer, h.messenger, testMintID, time.Second)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment)
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("cashuAlost", nil).Once()
		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAlost").Return(nil).Once()

		strategy, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryEcash, strategy)
	})

	t.Run("Unstored Token Is Acknowledged", func(t *testing.T) {
		h := newDeliveryHarness(t)
		config := models.DefaultCustomerConfig()
		config.MinChannelSizeSat = 100_000
		h.addCustomer(t, strPtr(testNodeID), strPtr(testPubkey), config)
		h.engine = NewDeliveryEngine(h.customers, tokenlessStore{h.invoices}, h.node, h.issuer, h.messenger, testMintID, time.Second)

		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment).Once()
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("cashuAlost", nil).Once()
		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAlost").Return(errors.New("relay down")).Once()

		_, err := h.engine.Deliver(ctx, testHash, fiftyKSatMsat)
		assert.ErrorIs(t, err, common.ErrUnrecordedToken)
		assert.True(t, common.IsFatal(err))

		// the bus must not redeliver, a retry would mint a second token
		h.node.EXPECT().SendKeysend(mock.Anything, testNodeID, fiftyKSatMsat).Return(nil, common.ErrPayment).Once()
		h.issuer.EXPECT().IssueToken(mock.Anything, testMintID, fiftyKSatMsat).Return("cashuAlost2", nil).Once()
		h.messenger.EXPECT().SendToken(mock.Anything, testPubkey, "cashuAlost2").Return(errors.New("relay down")).Once()

		assert.NoError(t, h.engine.HandlePaymentReceived(ctx, event))
	})
}
