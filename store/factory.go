package store

import (
	"fmt"

	"github.com/reflectoken/rtk/db"
)

// StoreType represents the type of store implementation
type StoreType string

const (
	// BoltStoreType uses the bbolt implementation (default)
	BoltStoreType StoreType = "bolt"

	// LevelDBStoreType uses the LevelDB implementation
	LevelDBStoreType StoreType = "leveldb"
)

// StoreConfig holds configuration for creating store instances
type StoreConfig struct {
	// Type specifies which store implementation to use
	Type StoreType `json:"type" yaml:"type"`

	// Directory is the database directory path
	Directory string `json:"directory" yaml:"directory"`
}

// Validate validates the store configuration
func (sc *StoreConfig) Validate() error {
	if sc.Type == "" {
		return fmt.Errorf("store type cannot be empty")
	}
	if sc.Directory == "" {
		return fmt.Errorf("directory cannot be empty")
	}
	switch sc.Type {
	case BoltStoreType, LevelDBStoreType:
		return nil
	default:
		return fmt.Errorf("unsupported store type: %s", sc.Type)
	}
}

// CreateProvider creates a database provider based on the configuration
func CreateProvider(config *StoreConfig) (db.DatabaseProvider, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch config.Type {
	case BoltStoreType:
		return db.NewBoltProvider(config.Directory)
	case LevelDBStoreType:
		return db.NewLevelDBProvider(config.Directory)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// CreateAccountStore creates an account store over the configured provider
func CreateAccountStore(config *StoreConfig) (AccountStore, error) {
	provider, err := CreateProvider(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	accStore, err := NewGenericAccountStore(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create account store: %w", err)
	}
	return accStore, nil
}
