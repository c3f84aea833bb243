// Copyright 2024 The ishishnode Authors
// This file is part of the ishishnode library.
//
// The ishishnode library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// The ishishnode library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU Lesser
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ishishnode library. If not, see <http://www.gnu.org/licenses/>.

// Package config holds the node's persisted settings and the data
// directory bootstrap logic shared by every entrypoint.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ishish222/ishishnode/node"
)

// Config is the persisted, on-disk shape of a node's settings (chosen
// wallet, topic, listen address, difficulty, rendezvous). Every field can
// be overridden by a CLI flag; the entrypoint writes the effective
// settings, overrides included, back to the config file on each start.
type Config struct {
	Difficulty  uint8  `toml:"difficulty"`
	GossipTopic string `toml:"gossip_topic"`
	ListenAddr  string `toml:"listen_addr"`
	WalletName  string `toml:"wallet_name"`

	// Rendezvous is the mDNS service name peers discover each other under.
	// It defaults to the gossip topic name but can be set separately.
	Rendezvous string `toml:"rendezvous"`
}

// Default returns the configuration used when no config file exists yet.
func Default() Config {
	return Config{
		Difficulty:  node.DefaultDifficulty,
		GossipTopic: node.DefaultGossipTopic,
		ListenAddr:  node.DefaultListenAddr,
		WalletName:  node.DefaultWalletName,
		Rendezvous:  node.DefaultGossipTopic,
	}
}

// Load reads and decodes the TOML config file at path. A missing file is
// not an error: it returns Default().
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, overwriting any existing file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureDataDir creates dir (and logs the creation) if it does not
// already exist.
func EnsureDataDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Info("Creating ishish home dir", "path", dir)
		return os.MkdirAll(dir, 0700)
	}
	return nil
}
