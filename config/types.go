package config

import (
	"github.com/reflectoken/rtk/store"
)

// ConfigFile is the top-level YAML document
type ConfigFile struct {
	Config NodeConfig `yaml:"config"`
}

// NodeConfig configures one program-host node
type NodeConfig struct {
	// ListenAddr is the JSON-RPC listen address
	ListenAddr string `yaml:"listen_addr"`

	// ProgramAddress is the base58 identity the program runs as
	ProgramAddress string `yaml:"program_address"`

	// Store selects and locates the embedded account database
	Store store.StoreConfig `yaml:"store"`

	// RentConfigPath optionally points at an INI file with a [rent] section
	RentConfigPath string `yaml:"rent_config,omitempty"`
}
