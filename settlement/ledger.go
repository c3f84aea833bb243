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

// Package settlement holds the account-balance ledger: a pure function of
// the current chain, rebuildable from scratch by replaying every block.
package settlement

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/ishish222/ishishnode/consensus"
	"github.com/ishish222/ishishnode/txpool"
)

// Ledger maps addresses to balances. Internal arithmetic is on unsigned
// 256-bit integers, matching go-ethereum's own account-balance
// representation; external read-outs truncate to uint64.
type Ledger struct {
	accounts map[common.Address]*uint256.Int
}

// New returns an empty ledger. Absent addresses default to a zero balance.
func New() *Ledger {
	return &Ledger{accounts: make(map[common.Address]*uint256.Int)}
}

// Balance returns addr's balance, truncated to 64 bits. Absent addresses
// report zero.
func (l *Ledger) Balance(addr common.Address) uint64 {
	acc, ok := l.accounts[addr]
	if !ok {
		return 0
	}
	return acc.Uint64()
}

func (l *Ledger) account(addr common.Address) *uint256.Int {
	acc, ok := l.accounts[addr]
	if !ok {
		acc = new(uint256.Int)
		l.accounts[addr] = acc
	}
	return acc
}

func (l *Ledger) credit(addr common.Address, amount uint64) {
	acc := l.account(addr)
	acc.Add(acc, new(uint256.Int).SetUint64(amount))
}

// debit subtracts amount from addr's balance. A debit that would take the
// balance negative instead saturates it to zero and is logged — see
// DESIGN.md for why this was chosen over rejecting the transaction or
// panicking.
func (l *Ledger) debit(addr common.Address, amount uint64) {
	acc := l.account(addr)
	amt := new(uint256.Int).SetUint64(amount)
	if acc.Cmp(amt) < 0 {
		log.Warn("settlement: debit exceeds balance, saturating to zero",
			"address", addr, "balance", acc.Uint64(), "amount", amount)
		acc.Clear()
		return
	}
	acc.Sub(acc, amt)
}

// ApplyBlock credits b's coinbase with the block reward, then for each
// transaction in order debits From, credits To, and evicts the first
// pool entry field-equal to it.
func ApplyBlock(l *Ledger, b consensus.Block, pool *txpool.Pool) {
	l.credit(b.Header.Coinbase, consensus.BlockReward)

	for _, tx := range b.Content {
		l.debit(tx.From, tx.Amount)
		l.credit(tx.To, tx.Amount)
		pool.RemoveFirstEqual(tx)
	}
}

// Rebuild resets l to empty and replays chain from genesis, applying the
// same pool-eviction side effect as ApplyBlock for each block. This is the
// single authoritative source of truth after a reorg.
func Rebuild(l *Ledger, chain consensus.Blockchain, pool *txpool.Pool) {
	l.accounts = make(map[common.Address]*uint256.Int)
	for _, b := range chain.Blocks {
		ApplyBlock(l, b, pool)
	}
}
