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

// Package node wires the block/chain model, ledger, transaction pool,
// mining worker and gossip transport into the single-threaded event
// loop that is this program's reason for existing: everything else is
// a collaborator the loop calls into.
package node

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ishish222/ishishnode/consensus"
	"github.com/ishish222/ishishnode/gossip"
	"github.com/ishish222/ishishnode/metrics"
	"github.com/ishish222/ishishnode/miner"
	"github.com/ishish222/ishishnode/settlement"
	"github.com/ishish222/ishishnode/txpool"
	"github.com/ishish222/ishishnode/wallet"
)

// backgroundCtx is the context passed to gossip publishes. It carries no
// deadline, and the transport's Publish adds none of its own.
var backgroundCtx = context.Background()

// Node owns the local chain, ledger and pool, and drives them by
// reacting to console commands, mined blocks and gossip frames. It is
// not safe for concurrent use: Run is meant to be its only caller.
type Node struct {
	DataDir    string
	WalletName string
	Difficulty uint8

	chain consensus.Blockchain
	pool  *txpool.Pool
	ledg  *settlement.Ledger

	signer *wallet.Signer

	worker    *miner.Worker
	transport gossip.Transport
}

// New builds a node with an empty chain, ledger and pool, ready to run.
func New(transport gossip.Transport, difficulty uint8, dataDir, walletName string) *Node {
	return &Node{
		DataDir:    dataDir,
		WalletName: walletName,
		Difficulty: difficulty,
		pool:       txpool.New(),
		ledg:       settlement.New(),
		worker:     miner.NewWorker(),
		transport:  transport,
	}
}

// Balance reports addr's current ledger balance.
func (n *Node) Balance(addr common.Address) uint64 {
	return n.ledg.Balance(addr)
}

// proposeCandidate builds the next block to mine: a genesis block if the
// chain is empty, otherwise a successor of the current tip. It carries
// up to the pool's first three pending transactions, per consensus's
// per-block transaction cap.
func (n *Node) proposeCandidate(coinbase common.Address) consensus.Block {
	pending := n.pool.FirstK(consensus.MaxBlockTransactions)

	if n.chain.Len() == 0 {
		return consensus.NewGenesisBlock(coinbase, n.Difficulty, pending)
	}
	tip, _ := n.chain.Tip()
	return consensus.NewSuccessorBlock(coinbase, tip, n.Difficulty, pending)
}

// startMining builds a fresh candidate from the current chain tip, hands
// it to the worker, and tells the worker to run. It is a no-op if no
// wallet is open.
func (n *Node) startMining() {
	if n.signer == nil {
		log.Warn("node: cannot start mining, no wallet open")
		return
	}
	candidate := n.proposeCandidate(n.signer.Address)
	n.worker.MineBlock(candidate)
	n.worker.Start()
}

// stopMining halts the worker's search, if running, without discarding
// its current candidate. No block is emitted again until startMining.
func (n *Node) stopMining() {
	n.worker.Stop()
}

// onMined handles a block the local worker has just sealed: apply it to
// the ledger, append it to the chain, broadcast the new chain, and
// immediately queue the next candidate.
func (n *Node) onMined(b consensus.Block) {
	log.Info("node: mined block", "number", b.Header.Number)

	settlement.ApplyBlock(n.ledg, b, n.pool)
	if err := n.chain.Append(b); err != nil {
		log.Error("node: failed to append locally mined block", "err", err)
		return
	}
	metrics.BlocksMined.Inc(1)
	metrics.BlocksAppended.Inc(1)
	metrics.PoolSize.Update(int64(n.pool.Len()))

	n.broadcastChain()

	if n.signer != nil {
		candidate := n.proposeCandidate(n.signer.Address)
		n.worker.MineBlock(candidate)
	}
}

// onGossipFrame handles a raw frame received from the transport.
func (n *Node) onGossipFrame(raw []byte) {
	metrics.GossipMessagesIn.Inc(1)

	frame, err := gossip.Decode(raw)
	if err != nil {
		log.Warn("node: dropping unparseable gossip frame", "kind", frame.Kind, "err", err)
		return
	}

	switch {
	case frame.Blockchain != nil:
		n.onPeerChain(*frame.Blockchain)
	case frame.Transaction != nil:
		n.onPeerTransaction(*frame.Transaction)
	}
}

// onPeerChain applies the fork-choice rule: a peer's chain is adopted
// only if it is strictly longer than ours and verifies end to end.
func (n *Node) onPeerChain(candidate consensus.Blockchain) {
	log.Info("node: received candidate chain from peer", "len", candidate.Len(), "ours", n.chain.Len())

	if !consensus.ShouldAdopt(n.chain, candidate) {
		log.Info("node: keeping local chain")
		return
	}

	log.Info("node: adopting heavier verified chain from peer")
	metrics.ReorgsAccepted.Inc(1)
	n.chain = candidate
	settlement.Rebuild(n.ledg, n.chain, n.pool)
	metrics.PoolSize.Update(int64(n.pool.Len()))

	// We don't know whether mining was running before the reorg, so we
	// only refresh the queued candidate, never (re)start the worker.
	if n.signer != nil {
		n.worker.MineBlock(n.proposeCandidate(n.signer.Address))
	}
}

func (n *Node) onPeerTransaction(tx consensus.Transaction) {
	log.Info("node: received transaction from peer", "from", tx.From, "to", tx.To, "amount", tx.Amount)
	n.pool.Push(tx)
	metrics.PoolSize.Update(int64(n.pool.Len()))
}

// broadcastChain publishes the current chain to the gossip topic.
func (n *Node) broadcastChain() {
	raw, err := gossip.EncodeBlockchain(n.chain)
	if err != nil {
		log.Error("node: failed to encode chain for broadcast", "err", err)
		return
	}
	if err := n.transport.Publish(backgroundCtx, raw); err != nil {
		log.Error("node: failed to publish chain", "err", err)
		return
	}
	metrics.GossipMessagesOut.Inc(1)
}

// broadcastTransaction publishes tx to the gossip topic and enqueues it
// locally, mirroring what every peer will do on receipt.
func (n *Node) broadcastTransaction(tx consensus.Transaction) {
	raw, err := gossip.EncodeTransaction(tx)
	if err != nil {
		log.Error("node: failed to encode transaction for broadcast", "err", err)
		return
	}
	if err := n.transport.Publish(backgroundCtx, raw); err != nil {
		log.Error("node: failed to publish transaction", "err", err)
		return
	}
	metrics.GossipMessagesOut.Inc(1)
	n.pool.Push(tx)
	metrics.PoolSize.Update(int64(n.pool.Len()))
}
