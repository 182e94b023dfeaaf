package api

import (
	"errors"
	"net/http"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/mint"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/go-chi/chi/v5"
)

type requestMintResponse struct {
	PaymentRequest string `json:"pr"`
	Hash           string `json:"hash"`
}

type mintRequest struct {
	Outputs models.BlindedMessages `json:"outputs"`
}

type promisesResponse struct {
	Promises models.BlindedSignatures `json:"promises"`
}

type splitRequest struct {
	Proofs  models.Proofs          `json:"proofs"`
	Outputs models.BlindedMessages `json:"outputs"`
}

type meltRequest struct {
	PaymentRequest string                 `json:"pr"`
	Proofs         models.Proofs          `json:"proofs"`
	Outputs        models.BlindedMessages `json:"outputs,omitempty"`
}

type meltResponse struct {
	Paid     bool                     `json:"paid"`
	Preimage *string                  `json:"preimage"`
	FeeMsat  uint64                   `json:"fee_msat"`
	Change   models.BlindedSignatures `json:"change,omitempty"`
}

type checkFeesRequest struct {
	PaymentRequest string `json:"pr"`
}

type checkFeesResponse struct {
	Fee uint64 `json:"fee"`
}

type keysetsResponse struct {
	Keysets []string `json:"keysets"`
}

func (s *Server) RequestMint(w http.ResponseWriter, r *http.Request) {
	amount, err := amountParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	invoice, err := s.settlement.RequestMint(r.Context(), chi.URLParam(r, "mint_id"), amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requestMintResponse{PaymentRequest: invoice.Bolt11, Hash: invoice.Hash})
}

func (s *Server) PostMint(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := mint.MintRequest{
		Hash:        query.Get("hash"),
		PaymentHash: query.Get("payment_hash"),
	}
	if req.Hash == "" && req.PaymentHash == "" {
		writeError(w, r, errors.Join(common.ErrInvalidRequest, errors.New("hash or payment_hash is required")))
		return
	}
	var body mintRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	req.Outputs = body.Outputs

	promises, err := s.settlement.ProcessMint(r.Context(), chi.URLParam(r, "mint_id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promisesResponse{Promises: promises})
}

func (s *Server) Split(w http.ResponseWriter, r *http.Request) {
	var body splitRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	promises, err := s.settlement.ProcessSplit(r.Context(), chi.URLParam(r, "mint_id"), body.Proofs, body.Outputs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promisesResponse{Promises: promises})
}

// Melt answers a failed payment with paid=false, the proofs stay unspent.
func (s *Server) Melt(w http.ResponseWriter, r *http.Request) {
	var body meltRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.settlement.ProcessMelt(r.Context(), chi.URLParam(r, "mint_id"), mint.MeltRequest{
		Bolt11:  body.PaymentRequest,
		Proofs:  body.Proofs,
		Outputs: body.Outputs,
	})
	if errors.Is(err, common.ErrPayment) {
		writeJSON(w, http.StatusOK, meltResponse{Paid: false})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	preimage := result.Preimage
	writeJSON(w, http.StatusOK, meltResponse{
		Paid:     result.Paid,
		Preimage: &preimage,
		FeeMsat:  result.FeeMsat,
		Change:   result.Change,
	})
}

func (s *Server) CheckFees(w http.ResponseWriter, r *http.Request) {
	var body checkFeesRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	fee, err := s.settlement.CheckFees(chi.URLParam(r, "mint_id"), body.PaymentRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkFeesResponse{Fee: fee})
}

func (s *Server) Keys(w http.ResponseWriter, r *http.Request) {
	keys, err := s.settlement.Keys(r.Context(), chi.URLParam(r, "mint_id"), chi.URLParam(r, "keyset_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) Keysets(w http.ResponseWriter, r *http.Request) {
	keysets, err := s.settlement.Keysets(r.Context(), chi.URLParam(r, "mint_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	ids := make([]string, 0, len(keysets))
	for _, keyset := range keysets {
		ids = append(ids, keyset.Id)
	}
	writeJSON(w, http.StatusOK, keysetsResponse{Keysets: ids})
}

func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	info, err := s.settlement.Info(r.Context(), chi.URLParam(r, "mint_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
