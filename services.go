package main

import (
	"sync"
	"time"

	"github.com/dan13ram/walletka-settlement/app"
	"github.com/dan13ram/walletka-settlement/common"
	"github.com/dan13ram/walletka-settlement/events"
	"github.com/dan13ram/walletka-settlement/ledger"
	"github.com/dan13ram/walletka-settlement/lightning"
	"github.com/dan13ram/walletka-settlement/lsp"
	"github.com/dan13ram/walletka-settlement/mint"
	"github.com/dan13ram/walletka-settlement/nostr"
	log "github.com/sirupsen/logrus"
)

const (
	MintConsumerName = "mint consumer"
	LspConsumerName  = "lsp consumer"
)

func reconnectBackoff() time.Duration {
	return time.Duration(app.Config.RabbitMQ.ReconnectMillis) * time.Millisecond
}

func NewLedgers(db app.Database) mint.Ledgers {
	return mint.Ledgers{
		Invoices: ledger.NewInvoiceLedger(ledger.NewMongoInvoiceStore(db)),
		Account:  ledger.NewMintAccount(ledger.NewMongoMintStore(db)),
		Proofs:   ledger.NewProofStore(ledger.NewMongoUsedProofStore(db)),
		Melts:    ledger.NewPendingMelts(ledger.NewMongoPendingMeltStore(db)),
	}
}

func EnsureMints(account *ledger.MintAccount) {
	for _, config := range app.Config.Mints {
		if err := account.EnsureMint(config); err != nil {
			log.Fatal("[MAIN] Error ensuring mint: ", err)
		}
		log.Debug("[MAIN] Mint ready: ", config.MintID)
	}
}

// NewInvoiceMonitorService returns the monitor service together with the
// node every invoice should be created through.
func NewInvoiceMonitorService(node lightning.NodeService, tracker lightning.InvoiceTracker, bus events.Notifier, wg *sync.WaitGroup) (app.Service, lightning.NodeService, *lightning.InvoiceMonitor) {
	if !app.Config.InvoiceMonitor.Enabled {
		log.Debug("[MAIN] Invoice monitor disabled")
		return app.NewEmptyService(wg), node, nil
	}
	backoff := time.Duration(app.Config.InvoiceMonitor.IntervalMillis) * time.Millisecond
	monitor := lightning.NewInvoiceMonitor(tracker, bus, backoff, wg)
	return monitor, lightning.NewWatchedNode(node, monitor), monitor
}

func NewMintConsumerService(bus events.Notifier, coordinator *mint.Coordinator, wg *sync.WaitGroup) app.Service {
	if !app.Config.MintConsumer.Enabled {
		log.Debug("[MAIN] Mint consumer disabled")
		return app.NewEmptyService(wg)
	}
	return events.NewSubscriberService(MintConsumerName, bus, app.Config.Settlement.ConsumerQueue, coordinator.HandlePaymentReceived, reconnectBackoff(), wg)
}

func NewDeliveryEngine(customers lsp.CustomerStore, invoices lsp.CustomerInvoiceStore, node lightning.NodeService, coordinator *mint.Coordinator) *lsp.DeliveryEngine {
	keys, err := nostr.KeysFromMnemonic(app.Config.Nostr.Mnemonic, common.DefaultBIP39Passphrase)
	if err != nil {
		log.Fatal("[MAIN] Error deriving nostr keys: ", err)
	}
	messenger := nostr.NewMessenger(keys, nostr.NewRelayPublisher(app.Config.Nostr.Relays))
	log.Info("[MAIN] Sending tokens from nostr pubkey ", messenger.PublicKey())

	callTimeout := time.Duration(app.Config.Settlement.CallTimeoutMillis) * time.Millisecond
	return lsp.NewDeliveryEngine(customers, invoices, node, coordinator, messenger, app.Config.Lsp.MintID, callTimeout)
}

func NewLspConsumerService(bus events.Notifier, delivery *lsp.DeliveryEngine, wg *sync.WaitGroup) app.Service {
	if !app.Config.LspConsumer.Enabled || delivery == nil {
		log.Debug("[MAIN] Lsp consumer disabled")
		return app.NewEmptyService(wg)
	}
	return events.NewSubscriberService(LspConsumerName, bus, app.Config.Lsp.ConsumerQueue, delivery.HandlePaymentReceived, reconnectBackoff(), wg)
}

// ResumeWatching hands invoices created before a restart back to the
// monitor so their payments are not missed.
func ResumeWatching(monitor *lightning.InvoiceMonitor, invoices *ledger.InvoiceLedger, customers *lsp.CustomerService) {
	if monitor == nil {
		return
	}
	open, err := invoices.ListOpen()
	if err != nil {
		log.WithError(err).Error("[MAIN] Error listing open mint invoices")
	}
	for _, invoice := range open {
		monitor.Watch(invoice.PaymentHash, invoice.AmountMsat, invoice.ExpiresAt)
	}

	if customers != nil {
		pending, err := customers.OpenInvoices()
		if err != nil {
			log.WithError(err).Error("[MAIN] Error listing open customer invoices")
		}
		for _, invoice := range pending {
			monitor.Watch(invoice.PaymentHash, invoice.AmountMsat, invoice.ExpiresAt)
		}
	}
	log.Info("[MAIN] Watching ", monitor.Watching(), " open invoices")
}
