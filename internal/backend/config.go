package backend

import (
	"fmt"
	"time"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/config"
)

// Config holds configuration for store creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Azure Table Storage specific
	TableServiceURL string
	TableName       string

	// Fallback tier
	FallbackEnabled bool
	OpTimeout       time.Duration
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		TableServiceURL: appConfig.TableServiceURL,
		TableName:       appConfig.TableName,

		FallbackEnabled: appConfig.FallbackEnabled,
		OpTimeout:       appConfig.StoreOpTimeout,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}

	case TableBackend:
		if c.TableServiceURL == "" {
			return fmt.Errorf("table service URL is required for table backend")
		}
		if c.TableName == "" {
			return fmt.Errorf("table name is required for table backend")
		}

	case MemoryBackend:
		// Nothing extra to check; the fallback tier is pointless here
		// but harmless.
	}

	return nil
}
