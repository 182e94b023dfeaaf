package nostr

import (
	"context"
	"errors"
	"fmt"

	gonostr "github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	log "github.com/sirupsen/logrus"
)

// Publisher sends a signed event and returns how many relays accepted it.
type Publisher interface {
	Publish(ctx context.Context, event gonostr.Event) (int, error)
}

type relayPublisher struct {
	relays []string
}

func NewRelayPublisher(relays []string) Publisher {
	return &relayPublisher{relays: relays}
}

func (p *relayPublisher) Publish(ctx context.Context, event gonostr.Event) (int, error) {
	if len(p.relays) == 0 {
		return 0, errors.New("no relays configured")
	}

	accepted := 0
	var errs []error
	for _, url := range p.relays {
		relay, err := gonostr.RelayConnect(ctx, url)
		if err != nil {
			log.WithError(err).WithField("relay", url).Warn("[NOSTR] Error connecting to relay")
			errs = append(errs, err)
			continue
		}
		err = relay.Publish(ctx, event)
		relay.Close()
		if err != nil {
			log.WithError(err).WithField("relay", url).Warn("[NOSTR] Error publishing to relay")
			errs = append(errs, err)
			continue
		}
		accepted++
	}
	if accepted == 0 {
		return 0, fmt.Errorf("no relay accepted event %s: %w", event.ID, errors.Join(errs...))
	}
	return accepted, nil
}

// Messenger delivers e-cash tokens as NIP-04 encrypted direct messages.
type Messenger struct {
	keys      Keys
	publisher Publisher
}

func NewMessenger(keys Keys, publisher Publisher) *Messenger {
	return &Messenger{keys: keys, publisher: publisher}
}

func (m *Messenger) PublicKey() string {
	return m.keys.PublicKey
}

func (m *Messenger) directMessage(recipient string, content string) (gonostr.Event, error) {
	shared, err := nip04.ComputeSharedSecret(recipient, m.keys.SecretKey)
	if err != nil {
		return gonostr.Event{}, err
	}
	encrypted, err := nip04.Encrypt(content, shared)
	if err != nil {
		return gonostr.Event{}, err
	}

	event := gonostr.Event{
		PubKey:    m.keys.PublicKey,
		CreatedAt: gonostr.Now(),
		Kind:      gonostr.KindEncryptedDirectMessage,
		Tags:      gonostr.Tags{gonostr.Tag{"p", recipient}},
		Content:   encrypted,
	}
	if err := event.Sign(m.keys.SecretKey); err != nil {
		return gonostr.Event{}, err
	}
	return event, nil
}

func (m *Messenger) SendToken(ctx context.Context, recipient string, token string) error {
	pk, err := ParsePublicKey(recipient)
	if err != nil {
		return err
	}
	event, err := m.directMessage(pk, token)
	if err != nil {
		return fmt.Errorf("build direct message: %w", err)
	}
	accepted, err := m.publisher.Publish(ctx, event)
	if err != nil {
		return err
	}
	log.WithField("recipient", pk).WithField("event_id", event.ID).Info("[NOSTR] Sent token to ", accepted, " relays")
	return nil
}
