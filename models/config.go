package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	RabbitMQ            RabbitMQConfig            `yaml:"rabbitmq" json:"rabbitmq"`
	Lnd                 LndConfig                 `yaml:"lnd" json:"lnd"`
	Nostr               NostrConfig               `yaml:"nostr" json:"nostr"`
	MintEngine          MintEngineConfig          `yaml:"mint_engine" json:"mint_engine"`
	Mints               []MintConfig              `yaml:"mints" json:"mints"`
	Settlement          SettlementConfig          `yaml:"settlement" json:"settlement"`
	Lsp                 LspConfig                 `yaml:"lsp" json:"lsp"`
	HTTP                HTTPConfig                `yaml:"http" json:"http"`
	MintConsumer        ServiceConfig             `yaml:"mint_consumer" json:"mint_consumer"`
	LspConsumer         ServiceConfig             `yaml:"lsp_consumer" json:"lsp_consumer"`
	InvoiceExpiry       ServiceConfig             `yaml:"invoice_expiry" json:"invoice_expiry"`
	InvoiceMonitor      ServiceConfig             `yaml:"invoice_monitor" json:"invoice_monitor"`
}

type GoogleSecretManagerConfig struct {
	Enabled            bool   `yaml:"enabled" json:"enabled"`
	MongoSecretName    string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	RabbitMQSecretName string `yaml:"rabbitmq_secret_name" json:"rabbitmq_secret_name"`
	LndSecretName      string `yaml:"lnd_secret_name" json:"lnd_secret_name"`
	NostrSecretName    string `yaml:"nostr_secret_name" json:"nostr_secret_name"`
}

type HealthCheckConfig struct {
	InstanceID     string `yaml:"instance_id" json:"instance_id"`
	IntervalMillis int64  `yaml:"interval_ms" json:"interval_ms"`
	ReadLastHealth bool   `yaml:"read_last_health" json:"read_last_health"`
}

type LoggerConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type RabbitMQConfig struct {
	URL             string `yaml:"url" json:"url"`
	Exchange        string `yaml:"exchange" json:"exchange"`
	PrefetchCount   int    `yaml:"prefetch_count" json:"prefetch_count"`
	ReconnectMillis int64  `yaml:"reconnect_ms" json:"reconnect_ms"`
}

type LndConfig struct {
	Address     string `yaml:"address" json:"address"`
	GRPCPort    string `yaml:"grpc_port" json:"grpc_port"`
	Network     string `yaml:"network" json:"network"`
	MacaroonHex string `yaml:"macaroon_hex" json:"macaroon_hex"`
	TLSData     string `yaml:"tls_data" json:"tls_data"`
	MaxFeeMsat  uint64 `yaml:"max_fee_msat" json:"max_fee_msat"`
}

type NostrConfig struct {
	Mnemonic string   `yaml:"mnemonic" json:"mnemonic"`
	Relays   []string `yaml:"relays" json:"relays"`
}

type MintEngineConfig struct {
	URL           string `yaml:"url" json:"url"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type MintConfig struct {
	MintID            string           `yaml:"mint_id" json:"mint_id"`
	ActiveKeysetID    string           `yaml:"active_keyset_id" json:"active_keyset_id"`
	InactiveKeysetIDs []string         `yaml:"inactive_keyset_ids" json:"inactive_keyset_ids"`
	MaxOrder          uint8            `yaml:"max_order" json:"max_order"`
	FeeReservePolicy  FeeReservePolicy `yaml:"fee_reserve_policy" json:"fee_reserve_policy"`
}

type SettlementConfig struct {
	CallTimeoutMillis  int64  `yaml:"call_timeout_ms" json:"call_timeout_ms"`
	LockTimeoutMillis  int64  `yaml:"lock_timeout_ms" json:"lock_timeout_ms"`
	InvoiceExpirySecs  int64  `yaml:"invoice_expiry_secs" json:"invoice_expiry_secs"`
	ExpiryGraceSecs    int64  `yaml:"expiry_grace_secs" json:"expiry_grace_secs"`
	InvoiceDescription string `yaml:"invoice_description" json:"invoice_description"`
	DistributedLock    bool   `yaml:"distributed_lock" json:"distributed_lock"`
	ConsumerQueue      string `yaml:"consumer_queue" json:"consumer_queue"`
}

type LspConfig struct {
	MintID             string `yaml:"mint_id" json:"mint_id"`
	ConsumerQueue      string `yaml:"consumer_queue" json:"consumer_queue"`
	InvoiceExpirySecs  int64  `yaml:"invoice_expiry_secs" json:"invoice_expiry_secs"`
	InvoiceDescription string `yaml:"invoice_description" json:"invoice_description"`
	Domain             string `yaml:"domain" json:"domain"`
}

type HTTPConfig struct {
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
