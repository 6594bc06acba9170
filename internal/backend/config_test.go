package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/config"
)

func TestFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		DataBackend:     "table",
		SQLiteDBPath:    "./data/tracker.db",
		TableServiceURL: "http://127.0.0.1:10002/devstoreaccount1",
		TableName:       "transactions",
		FallbackEnabled: true,
		StoreOpTimeout:  3 * time.Second,
	}

	cfg, err := FromAppConfig(appCfg)
	require.NoError(t, err)
	assert.Equal(t, TableBackend, cfg.Type)
	assert.Equal(t, "http://127.0.0.1:10002/devstoreaccount1", cfg.TableServiceURL)
	assert.Equal(t, "transactions", cfg.TableName)
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, 3*time.Second, cfg.OpTimeout)
}

func TestFromAppConfigRejectsNil(t *testing.T) {
	_, err := FromAppConfig(nil)
	require.Error(t, err)
}

func TestFromAppConfigRejectsUnknownBackend(t *testing.T) {
	_, err := FromAppConfig(&config.Config{DataBackend: "redis"})
	require.Error(t, err)
}
