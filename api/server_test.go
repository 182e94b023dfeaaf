package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dan13ram/walletka-settlement/api/mocks"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/mint"
	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

type staticHealth []models.ServiceHealth

func (h staticHealth) ServiceHealths() []models.ServiceHealth {
	return h
}

func newTestServer(t *testing.T) (*mocks.MockSettlement, *mocks.MockCustomers, http.Handler) {
	settlement := mocks.NewMockSettlement(t)
	customers := mocks.NewMockCustomers(t)
	health := staticHealth{{Name: "invoice expiry", Healthy: true}}
	server := NewServer(settlement, customers, health, "walletka.app")
	return settlement, customers, server.Handler()
}

func do(t *testing.T, handler http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, reader))
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), v))
}

func TestMintRoutes(t *testing.T) {
	t.Run("Request Mint", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().RequestMint(mock.Anything, "mint-one", uint64(21000)).Return(models.Invoice{Hash: "h1", Bolt11: "lnbcrt1"}, nil)

		recorder := do(t, handler, http.MethodGet, "/mint-one/mint?amount=21000", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body requestMintResponse
		decode(t, recorder, &body)
		assert.Equal(t, "h1", body.Hash)
		assert.Equal(t, "lnbcrt1", body.PaymentRequest)
	})

	t.Run("Request Mint Without Amount", func(t *testing.T) {
		_, _, handler := newTestServer(t)

		recorder := do(t, handler, http.MethodGet, "/mint-one/mint", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Post Mint", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		outputs := models.BlindedMessages{{Amount: 1000, B_: "b1"}}
		promises := models.BlindedSignatures{{Amount: 1000, C_: "c1", Id: "ks1"}}
		settlement.EXPECT().ProcessMint(mock.Anything, "mint-one", mint.MintRequest{Hash: "h1", Outputs: outputs}).Return(promises, nil)

		recorder := do(t, handler, http.MethodPost, "/mint-one/mint?hash=h1", `{"outputs":[{"amount":1000,"B_":"b1"}]}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var body promisesResponse
		decode(t, recorder, &body)
		assert.Equal(t, promises, body.Promises)
	})

	t.Run("Post Mint By Payment Hash Twice", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().ProcessMint(mock.Anything, "mint-one", mock.Anything).Return(nil, common.ErrPreventDoubleIssuance)

		recorder := do(t, handler, http.MethodPost, "/mint-one/mint?payment_hash=ph1", `{"outputs":[]}`)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Post Mint Without Hash", func(t *testing.T) {
		_, _, handler := newTestServer(t)

		recorder := do(t, handler, http.MethodPost, "/mint-one/mint", `{"outputs":[]}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Split Double Spend", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().ProcessSplit(mock.Anything, "mint-one", mock.Anything, mock.Anything).Return(nil, common.ErrDoubleSpend)

		recorder := do(t, handler, http.MethodPost, "/mint-one/split", `{"proofs":[{"amount":8,"secret":"s1","C":"c","id":"ks1"}],"outputs":[{"amount":8,"B_":"b"}]}`)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Split Malformed Body", func(t *testing.T) {
		_, _, handler := newTestServer(t)

		recorder := do(t, handler, http.MethodPost, "/mint-one/split", `{"proofs":`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Melt Paid", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		change := models.BlindedSignatures{{Amount: 1000, C_: "c", Id: "ks1"}}
		settlement.EXPECT().ProcessMelt(mock.Anything, "mint-one", mock.MatchedBy(func(req mint.MeltRequest) bool {
			return req.Bolt11 == "lnbcrt1" && len(req.Proofs) == 1
		})).Return(&mint.MeltResult{Paid: true, Preimage: "pre", FeeMsat: 10, Change: change}, nil)

		recorder := do(t, handler, http.MethodPost, "/mint-one/melt", `{"pr":"lnbcrt1","proofs":[{"amount":8,"secret":"s1","C":"c","id":"ks1"}]}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var body meltResponse
		decode(t, recorder, &body)
		assert.True(t, body.Paid)
		require.NotNil(t, body.Preimage)
		assert.Equal(t, "pre", *body.Preimage)
		assert.Equal(t, change, body.Change)
	})

	t.Run("Melt Payment Failed", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().ProcessMelt(mock.Anything, "mint-one", mock.Anything).Return(nil, common.ErrPayment)

		recorder := do(t, handler, http.MethodPost, "/mint-one/melt", `{"pr":"lnbcrt1","proofs":[]}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var body meltResponse
		decode(t, recorder, &body)
		assert.False(t, body.Paid)
		assert.Nil(t, body.Preimage)
	})

	t.Run("Melt Insufficient Proofs", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().ProcessMelt(mock.Anything, "mint-one", mock.Anything).Return(nil, common.ErrInsufficientProofs)

		recorder := do(t, handler, http.MethodPost, "/mint-one/melt", `{"pr":"lnbcrt1","proofs":[]}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Melt Timeout", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().ProcessMelt(mock.Anything, "mint-one", mock.Anything).Return(nil, common.ErrTimeout)

		recorder := do(t, handler, http.MethodPost, "/mint-one/melt", `{"pr":"lnbcrt1","proofs":[]}`)
		assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)
	})

	t.Run("Check Fees", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().CheckFees("mint-one", "lnbcrt1").Return(uint64(1000), nil)

		recorder := do(t, handler, http.MethodPost, "/mint-one/checkfees", `{"pr":"lnbcrt1"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var body checkFeesResponse
		decode(t, recorder, &body)
		assert.Equal(t, uint64(1000), body.Fee)
	})

	t.Run("Keys", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().Keys(mock.Anything, "mint-one", "").Return(models.Keys{1: "02aa"}, nil)
		settlement.EXPECT().Keys(mock.Anything, "mint-one", "ks0").Return(models.Keys{2: "02bb"}, nil)

		recorder := do(t, handler, http.MethodGet, "/mint-one/keys", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"1":"02aa"}`, recorder.Body.String())

		recorder = do(t, handler, http.MethodGet, "/mint-one/keys/ks0", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"2":"02bb"}`, recorder.Body.String())
	})

	t.Run("Unknown Mint", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().Info(mock.Anything, "nope").Return(models.MintInfo{}, common.ErrMintNotFound)

		recorder := do(t, handler, http.MethodGet, "/nope/info", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Keysets", func(t *testing.T) {
		settlement, _, handler := newTestServer(t)
		settlement.EXPECT().Keysets(mock.Anything, "mint-one").Return([]models.Keyset{{Id: "ks1", Active: true}, {Id: "ks0"}}, nil)

		recorder := do(t, handler, http.MethodGet, "/mint-one/keysets", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"keysets":["ks1","ks0"]}`, recorder.Body.String())
	})
}

func TestLspRoutes(t *testing.T) {
	pubkey := "17162c921dc4d2518f9a101db33695df1afb56ab82f5ff3e5da6eec3ca5cd917"

	t.Run("Signup Creates", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		customers.EXPECT().Signup(pubkey, (*string)(nil)).Return(models.Customer{Alias: "kosami", NostrPubkey: &pubkey}, true, nil)

		recorder := do(t, handler, http.MethodPost, "/api/lsp/signup", `{"nostr_pubkey":"`+pubkey+`"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		var body signupResponse
		decode(t, recorder, &body)
		assert.Equal(t, "kosami", body.Alias)
		assert.Equal(t, "kosami@walletka.app", body.Nip05)
	})

	t.Run("Signup Existing", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		customers.EXPECT().Signup(pubkey, mock.Anything).Return(models.Customer{Alias: "kosami"}, false, nil)

		recorder := do(t, handler, http.MethodPost, "/api/lsp/signup", `{"nostr_pubkey":"`+pubkey+`","node_id":"02aa"}`)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Signup Invalid", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		customers.EXPECT().Signup("bad", (*string)(nil)).Return(models.Customer{}, false, common.ErrInvalidRequest)

		recorder := do(t, handler, http.MethodPost, "/api/lsp/signup", `{"nostr_pubkey":"bad"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Update Config", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		config := models.DefaultCustomerConfig()
		config.EnableEcash = false
		customers.EXPECT().UpdateConfig("kosami", config).Return(models.Customer{Alias: "kosami", Config: config}, nil)

		payload, err := json.Marshal(config)
		require.NoError(t, err)
		recorder := do(t, handler, http.MethodPut, "/api/lsp/config/kosami", string(payload))
		require.Equal(t, http.StatusOK, recorder.Code)

		var body models.CustomerConfig
		decode(t, recorder, &body)
		assert.Equal(t, config, body)
	})

	t.Run("Get Invoice", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		customers.EXPECT().IssueInvoice(mock.Anything, "kosami", uint64(50_000_000)).Return(models.CustomerInvoice{Bolt11: "lnbcrt500u1"}, nil)

		recorder := do(t, handler, http.MethodGet, "/api/lsp/invoice/kosami?amount=50000000", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"pr":"lnbcrt500u1","successAction":null,"routes":[]}`, recorder.Body.String())
	})

	t.Run("Nip05", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		customers.EXPECT().Nip05("kosami").Return(pubkey, nil)

		recorder := do(t, handler, http.MethodGet, "/.well-known/nostr.json?name=KoSami", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.JSONEq(t, `{"names":{"kosami":"`+pubkey+`"}}`, recorder.Body.String())
	})

	t.Run("Nip05 Unknown", func(t *testing.T) {
		_, customers, handler := newTestServer(t)
		customers.EXPECT().Nip05("nobody").Return("", common.ErrNotFound)

		recorder := do(t, handler, http.MethodGet, "/.well-known/nostr.json?name=nobody", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		recorder = do(t, handler, http.MethodGet, "/.well-known/nostr.json", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Not Mounted Without Customers", func(t *testing.T) {
		handler := NewServer(mocks.NewMockSettlement(t), nil, staticHealth{}, "").Handler()

		recorder := do(t, handler, http.MethodPost, "/api/lsp/signup", `{}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestOperationalRoutes(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		_, _, handler := newTestServer(t)

		recorder := do(t, handler, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Healthy bool `json:"healthy"`
		}
		decode(t, recorder, &body)
		assert.True(t, body.Healthy)
	})

	t.Run("Unhealthy", func(t *testing.T) {
		handler := NewServer(mocks.NewMockSettlement(t), nil, staticHealth{{Name: "lsp consumer", Healthy: false}}, "").Handler()

		recorder := do(t, handler, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})

	t.Run("Metrics", func(t *testing.T) {
		_, _, handler := newTestServer(t)

		recorder := do(t, handler, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(common.ErrNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(common.ErrInvoiceNotPayable))
	assert.Equal(t, http.StatusBadRequest, statusFor(common.ErrAmountMismatch))
	assert.Equal(t, http.StatusBadGateway, statusFor(common.ErrPayment))
	assert.Equal(t, http.StatusInternalServerError, statusFor(common.ErrLedgerUnderflow))
}
