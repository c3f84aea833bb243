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

package consensus

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// MaxBlockTransactions is the number of pending transactions a proposed
// block carries at most. This is a deliberate throttle, not a protocol
// constant, and is kept as a named parameter rather than inlined.
const MaxBlockTransactions = 3

// BlockReward is the fixed amount credited to a block's coinbase address
// on settlement. There is no fee market, so this is the entire incentive.
const BlockReward = 1

// Transaction is a pure value transfer. It carries no signature: authenticity
// is delegated to the gossip transport, a known limitation, not an
// oversight.
type Transaction struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

// BlockHeader carries every field that is hashed into CurHash except
// CurHash itself, which is zeroed before hashing and written back on
// success.
type BlockHeader struct {
	Coinbase   common.Address `json:"coinbase"`
	Number     uint64         `json:"number"`
	Nonce      uint64         `json:"nonce"`
	Difficulty uint8          `json:"difficulty"`
	CurHash    [32]byte       `json:"cur_hash"`
	PrevHash   [32]byte       `json:"prev_hash"`
}

// Block is a header plus the ordered transactions it carries.
type Block struct {
	Header  BlockHeader   `json:"header"`
	Content []Transaction `json:"content"`
}

// firstK returns a copy of the first k entries of txs (or all of them, if
// there are fewer than k). The pool is read, never consumed, by block
// construction; eviction happens only once a block is adopted.
func firstK(txs []Transaction, k int) []Transaction {
	if len(txs) < k {
		k = len(txs)
	}
	out := make([]Transaction, k)
	copy(out, txs[:k])
	return out
}

// NewGenesisBlock builds block 0: zero PrevHash, zero Number.
func NewGenesisBlock(coinbase common.Address, difficulty uint8, pending []Transaction) Block {
	return Block{
		Header: BlockHeader{
			Coinbase:   coinbase,
			Number:     0,
			Nonce:      0,
			Difficulty: difficulty,
		},
		Content: firstK(pending, MaxBlockTransactions),
	}
}

// NewSuccessorBlock builds the block immediately following prev.
func NewSuccessorBlock(coinbase common.Address, prev Block, difficulty uint8, pending []Transaction) Block {
	return Block{
		Header: BlockHeader{
			Coinbase:   coinbase,
			Number:     prev.Header.Number + 1,
			Nonce:      0,
			Difficulty: difficulty,
			PrevHash:   prev.Header.CurHash,
		},
		Content: firstK(pending, MaxBlockTransactions),
	}
}

// HashBlock computes H(block) = SHA-256(serialize(block with CurHash
// zeroed)). The receiver's CurHash is never consulted; callers that want
// the field written back on success should use Seal.
func HashBlock(b Block) ([32]byte, error) {
	b.Header.CurHash = [32]byte{}
	data, err := json.Marshal(b)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// SatisfiesDifficulty reports whether the first `difficulty` bytes of hash
// are all zero.
func SatisfiesDifficulty(hash [32]byte, difficulty uint8) bool {
	n := int(difficulty)
	if n > len(hash) {
		n = len(hash)
	}
	for i := 0; i < n; i++ {
		if hash[i] != 0 {
			return false
		}
	}
	return true
}

// Seal checks whether b (at its current Nonce) satisfies its own declared
// difficulty, and if so returns a copy with CurHash filled in. Used both
// by the miner, trying one nonce at a time, and by tests.
func Seal(b Block) (Block, bool, error) {
	hash, err := HashBlock(b)
	if err != nil {
		return Block{}, false, err
	}
	if !SatisfiesDifficulty(hash, b.Header.Difficulty) {
		return Block{}, false, nil
	}
	b.Header.CurHash = hash
	return b, true, nil
}

// VerifyBlock recomputes H(block) with CurHash zeroed and checks the
// difficulty-byte prefix. It does not compare against the block's stored
// CurHash value: this mirrors the original proof-of-work predicate, which
// only asks "does this header hash to something this easy", not "does the
// stored hash field agree". The link checks in VerifyChain and Append
// compare a block's PrevHash with the stored CurHash of its predecessor,
// so a stored CurHash is never checked against the recomputed hash.
func VerifyBlock(b Block) error {
	hash, err := HashBlock(b)
	if err != nil {
		return ErrHashConversionFailed
	}
	if !SatisfiesDifficulty(hash, b.Header.Difficulty) {
		return ErrInvalidProofOfWork
	}
	return nil
}
