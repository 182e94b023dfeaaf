package common

import (
	"context"
	"errors"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrMintNotFound          = errors.New("mint not found")
	ErrDuplicatePaymentHash  = errors.New("duplicate payment hash")
	ErrInvalidTransition     = errors.New("invalid invoice status transition")
	ErrInvoiceNotPayable     = errors.New("invoice not payable")
	ErrPreventDoubleIssuance = errors.New("tokens already issued for invoice")
	ErrAmountMismatch        = errors.New("requested amount does not match invoice amount")
	ErrDoubleSpend           = errors.New("proof already spent")
	ErrLedgerUnderflow       = errors.New("circulation would become negative")
	ErrSigning               = errors.New("mint engine signing failed")
	ErrVerify                = errors.New("mint engine verification failed")
	ErrInsufficientProofs    = errors.New("proofs do not cover amount and fee reserve")
	ErrPayment               = errors.New("payment failed")
	ErrChannel               = errors.New("channel open failed")
	ErrUndeliverablePayment  = errors.New("payment received but undeliverable")
	ErrTimeout               = errors.New("timeout")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrUnrecordedToken       = errors.New("issued token not recorded")
)

// IsRetriable reports whether the failed operation left no ledger mutation
// behind and may be attempted again.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	if IsFatal(err) || errors.Is(err, ErrInvalidTransition) {
		return false
	}
	return errors.Is(err, ErrSigning) ||
		errors.Is(err, ErrVerify) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded)
}

// IsFatal reports invariant breaches that require manual reconciliation.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDoubleSpend) ||
		errors.Is(err, ErrLedgerUnderflow) ||
		errors.Is(err, ErrUnrecordedToken)
}

// IsPermanent reports failures caused by configuration or request data.
// Repeating the operation cannot succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrMintNotFound) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrAmountMismatch)
}

// WrapTimeout maps an expired deadline onto ErrTimeout and keeps any other
// error untouched.
func WrapTimeout(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		return errors.Join(ErrTimeout, err)
	}
	return err
}
