package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/walletka-settlement/models"
)

func readServiceConfigFromENV(prefix string, service *models.ServiceConfig) {
	if os.Getenv(prefix+"_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv(prefix + "_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing ", prefix, "_ENABLED: ", err.Error())
		} else {
			service.Enabled = enabled
		}
	}
	if os.Getenv(prefix+"_INTERVAL_MS") != "" {
		intervalMillis, err := strconv.ParseInt(os.Getenv(prefix+"_INTERVAL_MS"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing ", prefix, "_INTERVAL_MS: ", err.Error())
		} else {
			service.IntervalMillis = intervalMillis
		}
	}
}

func readInt64FromENV(name string, target *int64) {
	if os.Getenv(name) == "" {
		return
	}
	value, err := strconv.ParseInt(os.Getenv(name), 10, 64)
	if err != nil {
		log.Warn("[ENV] Error parsing ", name, ": ", err.Error())
		return
	}
	*target = value
}

func readStringFromENV(name string, target *string) {
	if os.Getenv(name) != "" {
		*target = os.Getenv(name)
	}
}

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}
	log.Debug("[ENV] Reading config from env")

	// mongodb
	readStringFromENV("MONGODB_URI", &Config.MongoDB.URI)
	readStringFromENV("MONGODB_DATABASE", &Config.MongoDB.Database)
	readInt64FromENV("MONGODB_TIMEOUT_MS", &Config.MongoDB.TimeoutMillis)

	// rabbitmq
	readStringFromENV("RABBITMQ_URL", &Config.RabbitMQ.URL)
	readStringFromENV("RABBITMQ_EXCHANGE", &Config.RabbitMQ.Exchange)
	readInt64FromENV("RABBITMQ_RECONNECT_MS", &Config.RabbitMQ.ReconnectMillis)
	if os.Getenv("RABBITMQ_PREFETCH_COUNT") != "" {
		prefetch, err := strconv.Atoi(os.Getenv("RABBITMQ_PREFETCH_COUNT"))
		if err != nil {
			log.Warn("[ENV] Error parsing RABBITMQ_PREFETCH_COUNT: ", err.Error())
		} else {
			Config.RabbitMQ.PrefetchCount = prefetch
		}
	}

	// lnd
	readStringFromENV("LND_ADDRESS", &Config.Lnd.Address)
	readStringFromENV("LND_GRPC_PORT", &Config.Lnd.GRPCPort)
	readStringFromENV("LND_NETWORK", &Config.Lnd.Network)
	readStringFromENV("LND_MACAROON_HEX", &Config.Lnd.MacaroonHex)
	readStringFromENV("LND_TLS_DATA", &Config.Lnd.TLSData)
	if os.Getenv("LND_MAX_FEE_MSAT") != "" {
		maxFee, err := strconv.ParseUint(os.Getenv("LND_MAX_FEE_MSAT"), 10, 64)
		if err != nil {
			log.Warn("[ENV] Error parsing LND_MAX_FEE_MSAT: ", err.Error())
		} else {
			Config.Lnd.MaxFeeMsat = maxFee
		}
	}

	// nostr
	readStringFromENV("NOSTR_MNEMONIC", &Config.Nostr.Mnemonic)
	if os.Getenv("NOSTR_RELAYS") != "" {
		Config.Nostr.Relays = strings.Split(os.Getenv("NOSTR_RELAYS"), ",")
	}

	// mint engine
	readStringFromENV("MINT_ENGINE_URL", &Config.MintEngine.URL)
	readInt64FromENV("MINT_ENGINE_TIMEOUT_MS", &Config.MintEngine.TimeoutMillis)

	// settlement
	readInt64FromENV("SETTLEMENT_CALL_TIMEOUT_MS", &Config.Settlement.CallTimeoutMillis)
	readInt64FromENV("SETTLEMENT_LOCK_TIMEOUT_MS", &Config.Settlement.LockTimeoutMillis)
	readInt64FromENV("SETTLEMENT_INVOICE_EXPIRY_SECS", &Config.Settlement.InvoiceExpirySecs)
	readInt64FromENV("SETTLEMENT_EXPIRY_GRACE_SECS", &Config.Settlement.ExpiryGraceSecs)
	readStringFromENV("SETTLEMENT_CONSUMER_QUEUE", &Config.Settlement.ConsumerQueue)
	if os.Getenv("SETTLEMENT_DISTRIBUTED_LOCK") != "" {
		distributed, err := strconv.ParseBool(os.Getenv("SETTLEMENT_DISTRIBUTED_LOCK"))
		if err != nil {
			log.Warn("[ENV] Error parsing SETTLEMENT_DISTRIBUTED_LOCK: ", err.Error())
		} else {
			Config.Settlement.DistributedLock = distributed
		}
	}

	// lsp
	readStringFromENV("LSP_MINT_ID", &Config.Lsp.MintID)
	readStringFromENV("LSP_CONSUMER_QUEUE", &Config.Lsp.ConsumerQueue)
	readStringFromENV("LSP_DOMAIN", &Config.Lsp.Domain)
	readInt64FromENV("LSP_INVOICE_EXPIRY_SECS", &Config.Lsp.InvoiceExpirySecs)

	// http
	readStringFromENV("HTTP_LISTEN_ADDRESS", &Config.HTTP.ListenAddress)

	// services
	readServiceConfigFromENV("MINT_CONSUMER", &Config.MintConsumer)
	readServiceConfigFromENV("LSP_CONSUMER", &Config.LspConsumer)
	readServiceConfigFromENV("INVOICE_EXPIRY", &Config.InvoiceExpiry)
	readServiceConfigFromENV("INVOICE_MONITOR", &Config.InvoiceMonitor)

	// health check
	readStringFromENV("HEALTH_CHECK_INSTANCE_ID", &Config.HealthCheck.InstanceID)
	readInt64FromENV("HEALTH_CHECK_INTERVAL_MS", &Config.HealthCheck.IntervalMillis)
	if os.Getenv("HEALTH_CHECK_READ_LAST_HEALTH") != "" {
		readLastHealth, err := strconv.ParseBool(os.Getenv("HEALTH_CHECK_READ_LAST_HEALTH"))
		if err != nil {
			log.Warn("[ENV] Error parsing HEALTH_CHECK_READ_LAST_HEALTH: ", err.Error())
		} else {
			Config.HealthCheck.ReadLastHealth = readLastHealth
		}
	}

	// logging
	readStringFromENV("LOG_LEVEL", &Config.Logger.Level)
	readStringFromENV("LOG_FORMAT", &Config.Logger.Format)
	if Config.Logger.Level == "" {
		log.Warn("[ENV] Setting LogLevel to debug")
		Config.Logger.Level = "debug"
	}

	// google secret manager
	if os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED") != "" {
		enabled, err := strconv.ParseBool(os.Getenv("GOOGLE_SECRET_MANAGER_ENABLED"))
		if err != nil {
			log.Warn("[ENV] Error parsing GOOGLE_SECRET_MANAGER_ENABLED: ", err.Error())
		} else {
			Config.GoogleSecretManager.Enabled = enabled
		}
	}
	readStringFromENV("GOOGLE_MONGO_SECRET_NAME", &Config.GoogleSecretManager.MongoSecretName)
	readStringFromENV("GOOGLE_RABBITMQ_SECRET_NAME", &Config.GoogleSecretManager.RabbitMQSecretName)
	readStringFromENV("GOOGLE_LND_SECRET_NAME", &Config.GoogleSecretManager.LndSecretName)
	readStringFromENV("GOOGLE_NOSTR_SECRET_NAME", &Config.GoogleSecretManager.NostrSecretName)

	log.Debug("[ENV] Config read from env")
}
