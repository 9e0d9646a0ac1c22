// Package config loads the server's config.yaml and folds it, with
// defaults applied, into an immutable snapshot cloned into each
// connection at accept time.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the immutable-after-load configuration every connection
// carries a copy of.
type Snapshot struct {
	ServerPort        uint16
	ServerMOTD        string
	EnableCompression bool
	OnlineMode        bool
	WriteDebugNBT     bool
}

// Defaults matches spec.md §3's config snapshot defaults.
func Defaults() Snapshot {
	return Snapshot{
		ServerPort:        25565,
		ServerMOTD:        "Hello, World!",
		EnableCompression: true,
		OnlineMode:        true,
		WriteDebugNBT:     true,
	}
}

// fileConfig is the raw YAML shape: every field optional, absence means
// "use the default". It mirrors the Rust prototype's Config/ConfigServer
// split so loading and defaulting stay separate concerns.
type fileConfig struct {
	Server struct {
		Port *uint16 `yaml:"port"`
		MOTD *string `yaml:"motd"`

		Networking struct {
			EnableCompression *bool `yaml:"enable_compression"`
			OnlineMode        *bool `yaml:"online_mode"`
		} `yaml:"networking"`
	} `yaml:"server"`
}

// Load reads path (normally "config.yaml" in the working directory). A
// missing file is not fatal: it yields all-defaults. A present but
// malformed file is a fatal init error, surfaced to the caller to decide
// exit behavior.
func Load(path string) (Snapshot, error) {
	snap := Defaults()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return snap, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return Snapshot{}, fmt.Errorf("malformed config %s: %w", path, err)
	}

	if fc.Server.Port != nil {
		snap.ServerPort = *fc.Server.Port
	}
	if fc.Server.MOTD != nil {
		snap.ServerMOTD = *fc.Server.MOTD
	}
	if fc.Server.Networking.EnableCompression != nil {
		snap.EnableCompression = *fc.Server.Networking.EnableCompression
	}
	if fc.Server.Networking.OnlineMode != nil {
		snap.OnlineMode = *fc.Server.Networking.OnlineMode
	}

	return snap, nil
}
