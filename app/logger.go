package app

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// InitLogger applies the configured level. "json" switches to structured
// output for log shippers, anything else keeps the text formatter.
func InitLogger() {
	logLevel := strings.ToLower(Config.Logger.Level)
	log.Debug("[LOGGER] Initializing logger with level: ", logLevel)

	log.SetLevel(parseLevel(logLevel))
	if strings.ToLower(Config.Logger.Format) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	log.Info("[LOGGER] Logger initialized with level: ", logLevel)
}
