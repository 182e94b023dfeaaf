package nostr

import (
	"context"
	"errors"
	"io"
	"testing"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetOutput(io.Discard)
}

const (
	testMnemonic  = "leader monkey parrot ring guide accident before fence cannon height naive bean"
	testSecretKey = "7f7ff03d123792d6ac594bfa67bf6d0c0ab55b6b1fdb6249303fe861f1ccba9a"
	testPublicKey = "17162c921dc4d2518f9a101db33695df1afb56ab82f5ff3e5da6eec3ca5cd917"
)

type capturePublisher struct {
	events []gonostr.Event
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, event gonostr.Event) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	p.events = append(p.events, event)
	return 1, nil
}

func TestKeysFromMnemonic(t *testing.T) {
	t.Run("Derives Account Key", func(t *testing.T) {
		keys, err := KeysFromMnemonic(testMnemonic, "")

		assert.NoError(t, err)
		assert.Equal(t, testSecretKey, keys.SecretKey)
		assert.Equal(t, testPublicKey, keys.PublicKey)
	})

	t.Run("Tolerates Whitespace", func(t *testing.T) {
		keys, err := KeysFromMnemonic("  leader monkey parrot ring guide accident\nbefore fence cannon height naive bean ", "")

		assert.NoError(t, err)
		assert.Equal(t, testPublicKey, keys.PublicKey)
	})

	t.Run("Invalid Mnemonic", func(t *testing.T) {
		_, err := KeysFromMnemonic("leader monkey parrot", "")

		assert.Error(t, err)
	})
}

func TestParsePublicKey(t *testing.T) {
	npub, err := EncodePublicKey(testPublicKey)
	require.NoError(t, err)

	t.Run("Npub", func(t *testing.T) {
		pk, err := ParsePublicKey(npub)

		assert.NoError(t, err)
		assert.Equal(t, testPublicKey, pk)
	})

	t.Run("Hex", func(t *testing.T) {
		pk, err := ParsePublicKey(testPublicKey)

		assert.NoError(t, err)
		assert.Equal(t, testPublicKey, pk)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, key := range []string{"", "npub1invalid", "abcd", testSecretKey + "00"} {
			_, err := ParsePublicKey(key)
			assert.ErrorIs(t, err, ErrInvalidPublicKey, key)
		}
	})
}

func TestSendToken(t *testing.T) {
	sender, err := KeysFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	recipientSk := gonostr.GeneratePrivateKey()
	recipientPk, err := gonostr.GetPublicKey(recipientSk)
	require.NoError(t, err)
	recipientNpub, err := EncodePublicKey(recipientPk)
	require.NoError(t, err)

	t.Run("Encrypted Direct Message", func(t *testing.T) {
		publisher := &capturePublisher{}
		messenger := NewMessenger(sender, publisher)

		err := messenger.SendToken(context.Background(), recipientNpub, "cashuAeyJ0b2tlbiI6W119")

		assert.NoError(t, err)
		require.Len(t, publisher.events, 1)
		event := publisher.events[0]
		assert.Equal(t, gonostr.KindEncryptedDirectMessage, event.Kind)
		assert.Equal(t, sender.PublicKey, event.PubKey)
		require.Len(t, event.Tags, 1)
		assert.Equal(t, gonostr.Tag{"p", recipientPk}, event.Tags[0])

		ok, err := event.CheckSignature()
		assert.NoError(t, err)
		assert.True(t, ok)

		shared, err := nip04.ComputeSharedSecret(sender.PublicKey, recipientSk)
		require.NoError(t, err)
		plain, err := nip04.Decrypt(event.Content, shared)
		assert.NoError(t, err)
		assert.Equal(t, "cashuAeyJ0b2tlbiI6W119", plain)
	})

	t.Run("Invalid Recipient", func(t *testing.T) {
		publisher := &capturePublisher{}
		messenger := NewMessenger(sender, publisher)

		err := messenger.SendToken(context.Background(), "npub1nope", "token")

		assert.ErrorIs(t, err, ErrInvalidPublicKey)
		assert.Empty(t, publisher.events)
	})

	t.Run("Publish Failure", func(t *testing.T) {
		messenger := NewMessenger(sender, &capturePublisher{err: errors.New("relays down")})

		err := messenger.SendToken(context.Background(), recipientPk, "token")

		assert.Error(t, err)
	})

	t.Run("No Relays", func(t *testing.T) {
		messenger := NewMessenger(sender, NewRelayPublisher(nil))

		err := messenger.SendToken(context.Background(), recipientPk, "token")

		assert.Error(t, err)
	})
}
