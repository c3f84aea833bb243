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
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ishishnode library. If not, see <http://www.gnu.org/licenses/>.

package node

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
)

const (
	// DefaultGossipTopic is the pubsub topic joined when none is given on
	// the command line.
	DefaultGossipTopic = "test-net"

	// DefaultDifficulty is the leading-zero-byte count a block's hash
	// must satisfy when none is given on the command line.
	DefaultDifficulty uint8 = 2

	// DefaultListenAddr is the libp2p multiaddr the host listens on when
	// none is given on the command line.
	DefaultListenAddr = "/ip4/0.0.0.0/tcp/0"

	// DefaultWalletName is the keystore file name opened by the console's
	// "open" command when no name is given.
	DefaultWalletName = "default"

	homeDirName = ".ishish"
)

// DefaultDataDir returns the directory holding this node's keystore and
// configuration file, creating it if it does not already exist.
func DefaultDataDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}

	dir := filepath.Join(home, homeDirName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Info("Creating ishish home dir", "path", dir)
		if err := os.MkdirAll(dir, 0700); err != nil {
			log.Crit("Failed to create ishish home dir", "path", dir, "err", err)
		}
	}
	return dir
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
