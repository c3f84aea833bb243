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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/ishish222/ishishnode/config"
	"github.com/ishish222/ishishnode/gossip"
	"github.com/ishish222/ishishnode/metrics"
	"github.com/ishish222/ishishnode/node"
)

var (
	difficultyFlag = &cli.UintFlag{
		Name:  "difficulty",
		Usage: "Number of leading zero bytes a mined block's hash must satisfy (overridden by a positional argument)",
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Directory holding the keystore and config file (default: ~/.ishish)",
	}
	topicFlag = &cli.StringFlag{
		Name:  "topic",
		Usage: "Gossipsub topic joined with peers",
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "Libp2p multiaddr to listen on",
	}
	walletFlag = &cli.StringFlag{
		Name:  "wallet",
		Usage: "Keystore file name opened by default on the \"open\" command",
	}
	rendezvousFlag = &cli.StringFlag{
		Name:  "rendezvous",
		Usage: "mDNS service tag peers discover each other under",
	}
)

func main() {
	app := &cli.App{
		Name:      "ishishnode",
		Usage:     "a small proof-of-work peer-to-peer ledger",
		ArgsUsage: "[difficulty]",
		Flags:     []cli.Flag{difficultyFlag, dataDirFlag, topicFlag, listenFlag, walletFlag, rendezvousFlag},
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		dataDir = node.DefaultDataDir()
	}
	if dataDir == "" {
		return fmt.Errorf("could not determine a data directory, pass --datadir explicitly")
	}
	if err := config.EnsureDataDir(dataDir); err != nil {
		return fmt.Errorf("preparing data directory: %w", err)
	}

	cfgPath := filepath.Join(dataDir, "config.toml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if ctx.IsSet(difficultyFlag.Name) {
		cfg.Difficulty = uint8(ctx.Uint(difficultyFlag.Name))
	}
	if arg := ctx.Args().First(); arg != "" {
		difficulty, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return fmt.Errorf("parsing difficulty argument %q: %w", arg, err)
		}
		cfg.Difficulty = uint8(difficulty)
	}
	if ctx.IsSet(topicFlag.Name) {
		cfg.GossipTopic = ctx.String(topicFlag.Name)
	}
	if ctx.IsSet(listenFlag.Name) {
		cfg.ListenAddr = ctx.String(listenFlag.Name)
	}
	if ctx.IsSet(walletFlag.Name) {
		cfg.WalletName = ctx.String(walletFlag.Name)
	}
	if ctx.IsSet(rendezvousFlag.Name) {
		cfg.Rendezvous = ctx.String(rendezvousFlag.Name)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		log.Warn("could not persist config", "path", cfgPath, "err", err)
	}

	log.Info("starting ishishnode",
		"difficulty", cfg.Difficulty, "topic", cfg.GossipTopic,
		"listen", cfg.ListenAddr, "datadir", dataDir)

	stop := make(chan struct{})
	go metrics.CollectGoRuntimeStats(10*time.Second, stop)
	defer close(stop)

	transport, err := gossip.NewLibp2pTransport(context.Background(), cfg.ListenAddr, cfg.GossipTopic, cfg.Rendezvous)
	if err != nil {
		return fmt.Errorf("starting gossip transport: %w", err)
	}
	defer transport.Close()

	n := node.New(transport, cfg.Difficulty, dataDir, cfg.WalletName)

	console := node.NewConsole()
	defer console.Close()

	fmt.Println("Reading commands from stdin")
	n.Run(console)
	return nil
}
