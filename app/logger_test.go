package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	defer func() {
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
		Config.Logger.Level = ""
		Config.Logger.Format = ""
	}()

	levels := map[string]log.Level{
		"debug":   log.DebugLevel,
		"WARN":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"info":    log.InfoLevel,
		"verbose": log.InfoLevel,
	}
	for level, expected := range levels {
		Config.Logger.Level = level
		InitLogger()
		assert.Equal(t, expected, log.GetLevel(), level)
	}

	Config.Logger.Format = "json"
	InitLogger()
	_, ok := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, ok)
}
