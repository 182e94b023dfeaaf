package common

const (
	MsatPerSat              = 1000
	DefaultCallTimeoutMs    = 10000
	DefaultInvoiceExpirySec = 3600
	DefaultBIP39Passphrase  = ""
	HashLength              = 32
	NodeIDLength            = 33
)
