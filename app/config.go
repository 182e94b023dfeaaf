package app

import (
	"os"

	"github.com/dan13ram/walletka-settlement/models"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	log.Debug("[CONFIG] Initializing config")
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readKeysFromGSM()
	applyDefaults()
	validateConfig()
	log.Info("[CONFIG] Config initialized")
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}
	log.Debug("[CONFIG] Reading config file")
	yamlFile, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}
	log.Debug("[CONFIG] Config loaded from file: ", configFile)
	return true
}

func applyDefaults() {
	if Config.MongoDB.TimeoutMillis == 0 {
		Config.MongoDB.TimeoutMillis = 5000
	}
	if Config.Settlement.CallTimeoutMillis == 0 {
		Config.Settlement.CallTimeoutMillis = 10000
	}
	if Config.Settlement.LockTimeoutMillis == 0 {
		Config.Settlement.LockTimeoutMillis = Config.Settlement.CallTimeoutMillis
	}
	if Config.MintEngine.TimeoutMillis == 0 {
		Config.MintEngine.TimeoutMillis = Config.Settlement.CallTimeoutMillis
	}
	if Config.Settlement.InvoiceExpirySecs == 0 {
		Config.Settlement.InvoiceExpirySecs = 3600
	}
	if Config.Settlement.ExpiryGraceSecs == 0 {
		Config.Settlement.ExpiryGraceSecs = 3600
	}
	if Config.Settlement.InvoiceDescription == "" {
		Config.Settlement.InvoiceDescription = "Walletka Cashu invoice"
	}
	if Config.Settlement.ConsumerQueue == "" {
		Config.Settlement.ConsumerQueue = "walletka.cashu.received_payments"
	}
	if Config.Lsp.ConsumerQueue == "" {
		Config.Lsp.ConsumerQueue = "walletka.lsp.received_payments"
	}
	if Config.Lsp.InvoiceExpirySecs == 0 {
		Config.Lsp.InvoiceExpirySecs = 36000
	}
	if Config.Lsp.InvoiceDescription == "" {
		Config.Lsp.InvoiceDescription = "Walletka LSP invoice"
	}
	if Config.RabbitMQ.Exchange == "" {
		Config.RabbitMQ.Exchange = "walletka.payments"
	}
	if Config.RabbitMQ.PrefetchCount == 0 {
		Config.RabbitMQ.PrefetchCount = 10
	}
	if Config.RabbitMQ.ReconnectMillis == 0 {
		Config.RabbitMQ.ReconnectMillis = 5000
	}
	if Config.InvoiceMonitor.IntervalMillis == 0 {
		Config.InvoiceMonitor.IntervalMillis = 5000
	}
	if Config.HTTP.ListenAddress == "" {
		Config.HTTP.ListenAddress = ":8080"
	}
	if Config.Lnd.Network == "" {
		Config.Lnd.Network = "regtest"
	}
}

func validateConfig() {
	log.Debug("[CONFIG] Validating config")
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.MongoDB.TimeoutMillis <= 0 {
		log.Fatal("[CONFIG] MongoDB.TimeoutMillis is invalid")
	}

	if Config.RabbitMQ.URL == "" {
		log.Fatal("[CONFIG] RabbitMQ.URL is required")
	}

	if Config.Lnd.Address == "" {
		log.Fatal("[CONFIG] Lnd.Address is required")
	}
	if Config.Lnd.MacaroonHex == "" {
		log.Fatal("[CONFIG] Lnd.MacaroonHex is required")
	}

	if Config.MintEngine.URL == "" {
		log.Fatal("[CONFIG] MintEngine.URL is required")
	}

	if len(Config.Mints) == 0 {
		log.Fatal("[CONFIG] At least one mint is required")
	}
	seen := map[string]bool{}
	for _, mint := range Config.Mints {
		if mint.MintID == "" {
			log.Fatal("[CONFIG] Mints.MintID is required")
		}
		if seen[mint.MintID] {
			log.Fatal("[CONFIG] Duplicate mint id: ", mint.MintID)
		}
		seen[mint.MintID] = true
		if mint.ActiveKeysetID == "" {
			log.Fatal("[CONFIG] Mints.ActiveKeysetID is required for mint ", mint.MintID)
		}
	}

	if Config.LspConsumer.Enabled {
		if Config.Lsp.MintID == "" {
			log.Fatal("[CONFIG] Lsp.MintID is required")
		}
		if !seen[Config.Lsp.MintID] {
			log.Fatal("[CONFIG] Lsp.MintID is not a configured mint: ", Config.Lsp.MintID)
		}
		if Config.Nostr.Mnemonic == "" {
			log.Fatal("[CONFIG] Nostr.Mnemonic is required")
		}
		if len(Config.Nostr.Relays) == 0 {
			log.Fatal("[CONFIG] Nostr.Relays is required")
		}
	}

	if Config.Settlement.CallTimeoutMillis <= 0 {
		log.Fatal("[CONFIG] Settlement.CallTimeoutMillis is invalid")
	}

	if Config.HealthCheck.InstanceID == "" {
		log.Fatal("[CONFIG] HealthCheck.InstanceID is required")
	}
	if Config.HealthCheck.IntervalMillis <= 0 {
		log.Fatal("[CONFIG] HealthCheck.IntervalMillis is invalid")
	}
	log.Debug("[CONFIG] Config validated")
}
