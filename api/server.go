package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/mint"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const HTTPServerName = "http server"

// Settlement is the mint facing surface of the settlement coordinator.
type Settlement interface {
	RequestMint(ctx context.Context, mintID string, amountMsat uint64) (models.Invoice, error)
	ProcessMint(ctx context.Context, mintID string, req mint.MintRequest) (models.BlindedSignatures, error)
	ProcessSplit(ctx context.Context, mintID string, proofs models.Proofs, outputs models.BlindedMessages) (models.BlindedSignatures, error)
	ProcessMelt(ctx context.Context, mintID string, req mint.MeltRequest) (*mint.MeltResult, error)
	CheckFees(mintID string, bolt11 string) (uint64, error)
	Keys(ctx context.Context, mintID string, keysetID string) (models.Keys, error)
	Keysets(ctx context.Context, mintID string) ([]models.Keyset, error)
	Info(ctx context.Context, mintID string) (models.MintInfo, error)
}

type Customers interface {
	Signup(nostrPubkey string, nodeID *string) (models.Customer, bool, error)
	UpdateConfig(alias string, config models.CustomerConfig) (models.Customer, error)
	IssueInvoice(ctx context.Context, alias string, amountMsat uint64) (models.CustomerInvoice, error)
	Nip05(name string) (string, error)
}

type HealthReporter interface {
	ServiceHealths() []models.ServiceHealth
}

type Server struct {
	settlement Settlement
	customers  Customers
	health     HealthReporter
	domain     string
	router     http.Handler
}

// NewServer builds the router. Customers may be nil, in which case the lsp
// routes are not mounted.
func NewServer(settlement Settlement, customers Customers, health HealthReporter, domain string) *Server {
	s := &Server{
		settlement: settlement,
		customers:  customers,
		health:     health,
		domain:     domain,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	if s.customers != nil {
		r.Get("/.well-known/nostr.json", s.Nip05)
		r.Route("/api/lsp", func(lsp chi.Router) {
			lsp.Post("/signup", s.Signup)
			lsp.Put("/config/{alias}", s.UpdateConfig)
			lsp.Get("/invoice/{alias}", s.GetInvoice)
		})
	}

	r.Route("/{mint_id}", func(m chi.Router) {
		m.Get("/mint", s.RequestMint)
		m.Post("/mint", s.PostMint)
		m.Post("/split", s.Split)
		m.Post("/melt", s.Melt)
		m.Post("/checkfees", s.CheckFees)
		m.Get("/keys", s.Keys)
		m.Get("/keys/{keyset_id}", s.Keys)
		m.Get("/keysets", s.Keysets)
		m.Get("/info", s.Info)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": chimw.GetReqID(r.Context()),
		}).Debug("[HTTP] Handled request")
	})
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	healths := s.health.ServiceHealths()
	healthy := true
	for _, health := range healths {
		healthy = healthy && health.Healthy
	}
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"healthy":         healthy,
		"service_healths": healths,
	})
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrMintNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrInvalidRequest),
		errors.Is(err, common.ErrAmountMismatch),
		errors.Is(err, common.ErrInsufficientProofs),
		errors.Is(err, common.ErrVerify):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrDoubleSpend),
		errors.Is(err, common.ErrPreventDoubleIssuance),
		errors.Is(err, common.ErrInvoiceNotPayable),
		errors.Is(err, common.ErrInvalidTransition),
		errors.Is(err, common.ErrDuplicatePaymentHash):
		return http.StatusConflict
	case errors.Is(err, common.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, common.ErrPayment), errors.Is(err, common.ErrChannel):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("[HTTP] Request failed")
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("[HTTP] Error writing response")
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(common.ErrInvalidRequest, err)
	}
	return nil
}

func amountParam(r *http.Request) (uint64, error) {
	amount, err := strconv.ParseUint(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount == 0 {
		return 0, fmt.Errorf("amount must be a positive integer: %w", common.ErrInvalidRequest)
	}
	return amount, nil
}

// HTTPService runs the server as an app.Service.
type HTTPService struct {
	server *http.Server
	wg     *sync.WaitGroup

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func NewHTTPService(handler http.Handler, address string, wg *sync.WaitGroup) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		wg: wg,
		health: models.ServiceHealth{
			Name:    HTTPServerName,
			Healthy: true,
		},
	}
}

func (s *HTTPService) Start() {
	log.Info("[HTTP] Listening on ", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("[HTTP] Server stopped")
		s.healthMu.Lock()
		s.health.Healthy = false
		s.healthMu.Unlock()
	}
	s.wg.Done()
}

func (s *HTTPService) Health() models.ServiceHealth {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()
	health := s.health
	health.LastSyncTime = time.Now()
	health.NextSyncTime = health.LastSyncTime
	return health
}

func (s *HTTPService) Stop() {
	log.Debug("[HTTP] Stopping server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("[HTTP] Error shutting down server")
	}
}

var _ app.Service = (*HTTPService)(nil)
