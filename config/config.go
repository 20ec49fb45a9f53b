package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/reflectoken/rtk/program"
	"github.com/reflectoken/rtk/store"
)

// LoadNodeConfig reads and parses the node YAML config file
func LoadNodeConfig(path string) (*NodeConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config %s: %w", path, err)
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, fmt.Errorf("could not decode config %s: %w", path, err)
	}

	cfg := cfgFile.Config
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.ProgramAddress == "" {
		cfg.ProgramAddress = DefaultProgramAddress
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = store.BoltStoreType
	}
	if cfg.Store.Directory == "" {
		cfg.Store.Directory = DefaultDataDir
	}
	return &cfg, nil
}

// LoadRentConfig reads rent parameters from the [rent] section of an .ini
// file. An empty path yields the defaults.
func LoadRentConfig(path string) (program.Rent, error) {
	rent := program.DefaultRent
	if path == "" {
		return rent, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return rent, fmt.Errorf("could not load rent config %s: %w", path, err)
	}
	rentSection := cfg.Section("rent")
	if err := rentSection.MapTo(&rent); err != nil {
		return rent, fmt.Errorf("could not map rent config: %w", err)
	}
	return rent, nil
}
