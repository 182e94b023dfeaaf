package lightning

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/models"
	"github.com/lightninglabs/lndclient"
	"github.com/lightningnetwork/lnd/invoices"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/invoicesrpc"
	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/routing/route"
	log "github.com/sirupsen/logrus"
)

const maxPaymentTimeout = time.Minute

type lnd struct {
	svc        *lndclient.GrpcLndServices
	maxFeeMsat uint64
}

func NewLnd(config models.LndConfig) (*lnd, error) {
	svc, err := lndclient.NewLndServices(&lndclient.LndServicesConfig{
		LndAddress:        fmt.Sprintf("%s:%s", config.Address, config.GRPCPort),
		Network:           lndclient.Network(config.Network),
		CustomMacaroonHex: config.MacaroonHex,
		TLSData:           config.TLSData,
	})
	if err != nil {
		return nil, err
	}
	log.Info("[LND] Connected to node at ", config.Address)
	return &lnd{svc: svc, maxFeeMsat: config.MaxFeeMsat}, nil
}

func (l *lnd) CreateInvoice(ctx context.Context, amountMsat uint64, expiry time.Duration, description string) (*Invoice, error) {
	preimage := &lntypes.Preimage{}
	if _, err := rand.Read(preimage[:]); err != nil {
		return nil, err
	}

	hash, req, err := l.svc.Client.AddInvoice(
		ctx,
		&invoicesrpc.AddInvoiceData{
			Memo:     description,
			Value:    lnwire.MilliSatoshi(amountMsat),
			Preimage: preimage,
			Expiry:   int64(expiry.Seconds()),
		},
	)
	if err != nil {
		return nil, common.WrapTimeout(err)
	}

	return &Invoice{
		PaymentHash:    hash.String(),
		PaymentRequest: req,
		AmountMsat:     amountMsat,
		ExpiresAt:      time.Now().Add(expiry),
	}, nil
}

func (l *lnd) maxFee() btcutil.Amount {
	return btcutil.Amount(l.maxFeeMsat / common.MsatPerSat)
}

// paymentTimeout keeps the router from retrying a payment past the
// caller's deadline. lnd counts whole seconds.
func paymentTimeout(ctx context.Context) time.Duration {
	timeout := maxPaymentTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	timeout = timeout.Truncate(time.Second)
	if timeout < time.Second {
		timeout = time.Second
	}
	return timeout
}

// callError reports an expired caller deadline as ErrTimeout so callers
// treat the outcome as unknown rather than failed.
func callError(ctx context.Context, sentinel error, err error) error {
	if ctx.Err() != nil {
		return common.WrapTimeout(errors.Join(ctx.Err(), err))
	}
	return fmt.Errorf("%w: %s", sentinel, err.Error())
}

// waitPayment blocks until the router reports a final state.
func waitPayment(ctx context.Context, statuses chan lndclient.PaymentStatus, errs chan error) (*PaymentResult, error) {
	for {
		select {
		case status := <-statuses:
			switch status.State {
			case lnrpc.Payment_SUCCEEDED:
				return &PaymentResult{
					PaymentHash: status.Hash.String(),
					Preimage:    status.Preimage.String(),
					AmountMsat:  uint64(status.Value),
					FeeMsat:     uint64(status.Fee),
				}, nil
			case lnrpc.Payment_FAILED:
				return nil, fmt.Errorf("%w: %s", common.ErrPayment, status.FailureReason.String())
			}
		case err := <-errs:
			return nil, callError(ctx, common.ErrPayment, err)
		case <-ctx.Done():
			return nil, common.WrapTimeout(ctx.Err())
		}
	}
}

func (l *lnd) PayInvoice(ctx context.Context, bolt11 string, amountMsat uint64) (*PaymentResult, error) {
	req := lndclient.SendPaymentRequest{
		Invoice: bolt11,
		MaxFee:  l.maxFee(),
		Timeout: paymentTimeout(ctx),
	}
	// only amountless invoices take an explicit amount
	if amountMsat > 0 {
		req.Amount = btcutil.Amount(amountMsat / common.MsatPerSat)
	}
	statuses, errs, err := l.svc.Router.SendPayment(ctx, req)
	if err != nil {
		return nil, callError(ctx, common.ErrPayment, err)
	}
	return waitPayment(ctx, statuses, errs)
}

func parseVertex(nodeID string) (route.Vertex, error) {
	vertex, err := route.NewVertexFromStr(nodeID)
	if err != nil {
		return route.Vertex{}, fmt.Errorf("node id %q: %w", nodeID, common.ErrInvalidRequest)
	}
	return vertex, nil
}

func (l *lnd) SendKeysend(ctx context.Context, nodeID string, amountMsat uint64) (*PaymentResult, error) {
	target, err := parseVertex(nodeID)
	if err != nil {
		return nil, err
	}
	statuses, errs, err := l.svc.Router.SendPayment(ctx, lndclient.SendPaymentRequest{
		Target:  target,
		Amount:  btcutil.Amount(amountMsat / common.MsatPerSat),
		MaxFee:  l.maxFee(),
		Timeout: paymentTimeout(ctx),
		KeySend: true,
	})
	if err != nil {
		return nil, callError(ctx, common.ErrPayment, err)
	}
	return waitPayment(ctx, statuses, errs)
}

func (l *lnd) OpenChannel(ctx context.Context, nodeID string, amountSats uint64, pushMsat uint64, public bool) (string, error) {
	peer, err := parseVertex(nodeID)
	if err != nil {
		return "", err
	}
	outpoint, err := l.svc.Client.OpenChannel(
		ctx,
		peer,
		btcutil.Amount(amountSats),
		btcutil.Amount(pushMsat/common.MsatPerSat),
		!public,
	)
	if err != nil {
		return "", callError(ctx, common.ErrChannel, err)
	}
	return outpoint.String(), nil
}

func (l *lnd) TrackInvoice(ctx context.Context, paymentHash string) (<-chan InvoiceState, <-chan error, error) {
	hash, err := lntypes.MakeHashFromStr(paymentHash)
	if err != nil {
		return nil, nil, err
	}
	updates, errs, err := l.svc.Invoices.SubscribeSingleInvoice(ctx, hash)
	if err != nil {
		return nil, nil, err
	}

	states := make(chan InvoiceState)
	go func() {
		defer close(states)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				state := InvoiceStateOpen
				switch update.State {
				case invoices.ContractSettled:
					state = InvoiceStateSettled
				case invoices.ContractCanceled:
					state = InvoiceStateCanceled
				}
				select {
				case states <- state:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return states, errs, nil
}

func (l *lnd) Close() {
	l.svc.Close()
}
