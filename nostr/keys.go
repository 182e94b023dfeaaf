package nostr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/cosmos/go-bip39"
	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip06"
	"github.com/nbd-wtf/go-nostr/nip19"
)

var ErrInvalidPublicKey = errors.New("invalid nostr public key")

type Keys struct {
	SecretKey string
	PublicKey string
}

// KeysFromMnemonic derives the account key at m/44'/1237'/0'/0/0.
func KeysFromMnemonic(mnemonic string, passphrase string) (Keys, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return Keys{}, errors.New("invalid mnemonic")
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return Keys{}, err
	}
	sk, err := nip06.PrivateKeyFromSeed(seed)
	if err != nil {
		return Keys{}, err
	}
	pk, err := gonostr.GetPublicKey(sk)
	if err != nil {
		return Keys{}, err
	}
	return Keys{SecretKey: sk, PublicKey: pk}, nil
}

// ParsePublicKey accepts an npub or a hex x-only key and returns the hex
// form.
func ParsePublicKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, "npub") {
		prefix, value, err := nip19.Decode(key)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidPublicKey, err.Error())
		}
		pk, ok := value.(string)
		if prefix != "npub" || !ok {
			return "", ErrInvalidPublicKey
		}
		key = pk
	}

	b, err := hex.DecodeString(key)
	if err != nil || len(b) != schnorr.PubKeyBytesLen {
		return "", ErrInvalidPublicKey
	}
	if _, err := schnorr.ParsePubKey(b); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPublicKey, err.Error())
	}
	return strings.ToLower(key), nil
}

func EncodePublicKey(pk string) (string, error) {
	return nip19.EncodePublicKey(pk)
}
