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

// Package txpool holds the in-memory sequence of pending transfers
// awaiting inclusion in a block.
//
// The pool is owned exclusively by the node loop (see package node), so it
// needs no internal locking: the single-threaded event multiplexer driving
// every mutation is what makes this package safe to leave lock-free, not a
// mutex here.
package txpool

import "github.com/ishish222/ishishnode/consensus"

// Pool is an ordered, FIFO sequence of pending transactions. There is no
// deduplication at push time and no capacity bound: a transaction received
// twice is held twice and evicted at most once per occurrence in a block.
// Acceptable for a small testnet; a flood of unique transactions is a known
// DoS surface left for a future iteration.
type Pool struct {
	items []consensus.Transaction
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Push appends tx to the end of the pool.
func (p *Pool) Push(tx consensus.Transaction) {
	p.items = append(p.items, tx)
}

// RemoveFirstEqual removes the first entry field-equal to tx, if any, and
// reports whether one was found.
func (p *Pool) RemoveFirstEqual(tx consensus.Transaction) bool {
	for i, item := range p.items {
		if item == tx {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return true
		}
	}
	return false
}

// FirstK returns a copy of up to the first k pending entries. The pool is
// left unchanged: block construction reads the pool, it does not consume
// it.
func (p *Pool) FirstK(k int) []consensus.Transaction {
	if k > len(p.items) {
		k = len(p.items)
	}
	out := make([]consensus.Transaction, k)
	copy(out, p.items[:k])
	return out
}

// All returns a copy of every pending transaction, in FIFO order, for
// display (print_pool).
func (p *Pool) All() []consensus.Transaction {
	out := make([]consensus.Transaction, len(p.items))
	copy(out, p.items)
	return out
}

// Len reports the number of pending transactions.
func (p *Pool) Len() int {
	return len(p.items)
}
