package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
)

// Engine performs the blind signature work of a mint. Issue, SignChange
// and IssueToken failures wrap common.ErrSigning, split verification
// failures wrap common.ErrVerify and uncovered melts wrap
// common.ErrInsufficientProofs.
type Engine interface {
	Issue(ctx context.Context, mintID string, outputs models.BlindedMessages) (models.BlindedSignatures, error)
	VerifyAndSignSplit(ctx context.Context, mintID string, proofs models.Proofs, outputs models.BlindedMessages) (models.BlindedSignatures, error)
	VerifyMelt(ctx context.Context, mintID string, proofs models.Proofs, requiredMsat uint64) error
	SignChange(ctx context.Context, mintID string, proofs models.Proofs, spentMsat uint64, outputs models.BlindedMessages) (models.BlindedSignatures, error)
	IssueToken(ctx context.Context, mintID string, amountMsat uint64) (string, error)
	Keys(ctx context.Context, mintID string, keysetID string) (models.Keys, error)
	Keysets(ctx context.Context, mintID string) ([]models.Keyset, error)
	Info(ctx context.Context, mintID string) (models.MintInfo, error)
}

type issueRequest struct {
	Outputs models.BlindedMessages `json:"outputs"`
}

type splitRequest struct {
	Proofs  models.Proofs          `json:"proofs"`
	Outputs models.BlindedMessages `json:"outputs"`
}

type verifyMeltRequest struct {
	Proofs       models.Proofs `json:"proofs"`
	RequiredMsat uint64        `json:"required_msat"`
}

type changeRequest struct {
	Proofs    models.Proofs          `json:"proofs"`
	SpentMsat uint64                 `json:"spent_msat"`
	Outputs   models.BlindedMessages `json:"outputs"`
}

type tokenRequest struct {
	AmountMsat uint64 `json:"amount_msat"`
}

type promisesResponse struct {
	Promises models.BlindedSignatures `json:"promises"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type keysetsResponse struct {
	Keysets []models.Keyset `json:"keysets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// EngineClient talks JSON over HTTP to an engine serving every mint under
// /mints/{mint_id}.
type EngineClient struct {
	baseURL string
	client  *http.Client
}

func NewEngineClient(baseURL string, timeout time.Duration) *EngineClient {
	return &EngineClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("engine returned %d: %s", e.status, e.message)
}

func (c *EngineClient) endpoint(mintID string, path ...string) string {
	parts := []string{c.baseURL, "mints", url.PathEscape(mintID)}
	for _, p := range path {
		parts = append(parts, url.PathEscape(p))
	}
	return strings.Join(parts, "/")
}

func (c *EngineClient) do(ctx context.Context, method string, endpoint string, body interface{}, target interface{}) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() && !errors.Is(err, common.ErrTimeout) {
			return errors.Join(common.ErrTimeout, err)
		}
		return common.WrapTimeout(err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		target := &errorResponse{}
		if err := json.NewDecoder(res.Body).Decode(target); err != nil || target.Error == "" {
			target.Error = http.StatusText(res.StatusCode)
		}
		return &statusError{status: res.StatusCode, message: target.Error}
	}
	if target == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(target)
}

// wrap tags an engine failure with the operation sentinel. Timeouts stay
// timeouts.
func wrap(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrTimeout) {
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, err.Error())
}

func (c *EngineClient) Issue(ctx context.Context, mintID string, outputs models.BlindedMessages) (models.BlindedSignatures, error) {
	target := &promisesResponse{}
	err := c.do(ctx, http.MethodPost, c.endpoint(mintID, "issue"), &issueRequest{Outputs: outputs}, target)
	if err != nil {
		return nil, wrap(err, common.ErrSigning)
	}
	return target.Promises, nil
}

func (c *EngineClient) VerifyAndSignSplit(ctx context.Context, mintID string, proofs models.Proofs, outputs models.BlindedMessages) (models.BlindedSignatures, error) {
	target := &promisesResponse{}
	err := c.do(ctx, http.MethodPost, c.endpoint(mintID, "split"), &splitRequest{Proofs: proofs, Outputs: outputs}, target)
	if err != nil {
		return nil, wrap(err, common.ErrVerify)
	}
	return target.Promises, nil
}

func (c *EngineClient) VerifyMelt(ctx context.Context, mintID string, proofs models.Proofs, requiredMsat uint64) error {
	err := c.do(ctx, http.MethodPost, c.endpoint(mintID, "melt", "verify"), &verifyMeltRequest{Proofs: proofs, RequiredMsat: requiredMsat}, nil)
	var status *statusError
	if errors.As(err, &status) && status.status == http.StatusUnprocessableEntity {
		return wrap(err, common.ErrInsufficientProofs)
	}
	return wrap(err, common.ErrVerify)
}

func (c *EngineClient) SignChange(ctx context.Context, mintID string, proofs models.Proofs, spentMsat uint64, outputs models.BlindedMessages) (models.BlindedSignatures, error) {
	target := &promisesResponse{}
	err := c.do(ctx, http.MethodPost, c.endpoint(mintID, "melt", "change"), &changeRequest{Proofs: proofs, SpentMsat: spentMsat, Outputs: outputs}, target)
	if err != nil {
		return nil, wrap(err, common.ErrSigning)
	}
	return target.Promises, nil
}

func (c *EngineClient) IssueToken(ctx context.Context, mintID string, amountMsat uint64) (string, error) {
	target := &tokenResponse{}
	err := c.do(ctx, http.MethodPost, c.endpoint(mintID, "token"), &tokenRequest{AmountMsat: amountMsat}, target)
	if err != nil {
		return "", wrap(err, common.ErrSigning)
	}
	return target.Token, nil
}

func (c *EngineClient) Keys(ctx context.Context, mintID string, keysetID string) (models.Keys, error) {
	endpoint := c.endpoint(mintID, "keys")
	if keysetID != "" {
		endpoint = c.endpoint(mintID, "keys", keysetID)
	}
	keys := models.Keys{}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *EngineClient) Keysets(ctx context.Context, mintID string) ([]models.Keyset, error) {
	target := &keysetsResponse{}
	if err := c.do(ctx, http.MethodGet, c.endpoint(mintID, "keysets"), nil, target); err != nil {
		return nil, err
	}
	return target.Keysets, nil
}

func (c *EngineClient) Info(ctx context.Context, mintID string) (models.MintInfo, error) {
	info := models.MintInfo{}
	err := c.do(ctx, http.MethodGet, c.endpoint(mintID, "info"), nil, &info)
	return info, err
}
