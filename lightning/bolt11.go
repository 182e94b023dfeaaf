package lightning

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/lightningnetwork/lnd/zpay32"
)

type DecodedInvoice struct {
	PaymentHash string
	AmountMsat  uint64
	Destination string
	ExpiresAt   time.Time
}

func NetworkParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	}
	return nil, fmt.Errorf("unknown network %q", network)
}

// DecodeInvoice parses a bolt11 payment request for the given network.
func DecodeInvoice(bolt11 string, network string) (DecodedInvoice, error) {
	params, err := NetworkParams(network)
	if err != nil {
		return DecodedInvoice{}, err
	}
	invoice, err := zpay32.Decode(bolt11, params)
	if err != nil {
		return DecodedInvoice{}, fmt.Errorf("decode invoice: %w: %s", common.ErrInvalidRequest, err.Error())
	}
	if invoice.PaymentHash == nil {
		return DecodedInvoice{}, fmt.Errorf("invoice without payment hash: %w", common.ErrInvalidRequest)
	}
	decoded := DecodedInvoice{
		PaymentHash: hex.EncodeToString(invoice.PaymentHash[:]),
		ExpiresAt:   invoice.Timestamp.Add(invoice.Expiry()),
	}
	if invoice.MilliSat != nil {
		decoded.AmountMsat = uint64(*invoice.MilliSat)
	}
	if invoice.Destination != nil {
		decoded.Destination = hex.EncodeToString(invoice.Destination.SerializeCompressed())
	}
	return decoded, nil
}
