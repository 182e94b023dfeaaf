package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/go-chi/chi/v5"
)

type signupRequest struct {
	NostrPubkey string  `json:"nostr_pubkey"`
	NodeID      *string `json:"node_id,omitempty"`
}

type signupResponse struct {
	models.Customer
	Nip05 string `json:"nip05,omitempty"`
}

// invoiceResponse follows the lnurl-pay callback shape.
type invoiceResponse struct {
	PaymentRequest string   `json:"pr"`
	SuccessAction  *string  `json:"successAction"`
	Routes         []string `json:"routes"`
}

type nip05Response struct {
	Names map[string]string `json:"names"`
}

func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var body signupRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	customer, created, err := s.customers.Signup(body.NostrPubkey, body.NodeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response := signupResponse{Customer: customer}
	if s.domain != "" {
		response.Nip05 = customer.Alias + "@" + s.domain
	}
	writeJSON(w, status, response)
}

func (s *Server) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var config models.CustomerConfig
	if err := decodeBody(r, &config); err != nil {
		writeError(w, r, err)
		return
	}
	customer, err := s.customers.UpdateConfig(chi.URLParam(r, "alias"), config)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer.Config)
}

func (s *Server) GetInvoice(w http.ResponseWriter, r *http.Request) {
	amount, err := amountParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	invoice, err := s.customers.IssueInvoice(r.Context(), chi.URLParam(r, "alias"), amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceResponse{PaymentRequest: invoice.Bolt11, Routes: []string{}})
}

func (s *Server) Nip05(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))
	if name == "" {
		writeError(w, r, errors.Join(common.ErrNotFound, errors.New("name is required")))
		return
	}
	pubkey, err := s.customers.Nip05(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nip05Response{Names: map[string]string{name: pubkey}})
}
