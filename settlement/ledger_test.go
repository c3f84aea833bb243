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

package settlement

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ishish222/ishishnode/consensus"
	"github.com/ishish222/ishishnode/txpool"
)

var (
	addrA1 = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addrA2 = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func mine(t *testing.T, b consensus.Block) consensus.Block {
	t.Helper()
	for nonce := uint64(0); ; nonce++ {
		b.Header.Nonce = nonce
		sealed, ok, err := consensus.Seal(b)
		require.NoError(t, err)
		if ok {
			return sealed
		}
	}
}

func TestApplyBlockCreditsCoinbaseReward(t *testing.T) {
	l := New()
	pool := txpool.New()
	b := mine(t, consensus.NewGenesisBlock(addrA1, 1, nil))

	ApplyBlock(l, b, pool)
	require.Equal(t, uint64(consensus.BlockReward), l.Balance(addrA1))
}

func TestApplyBlockDebitsAndCreditsTransactions(t *testing.T) {
	l := New()
	pool := txpool.New()

	genesis := mine(t, consensus.NewGenesisBlock(addrA1, 1, nil))
	ApplyBlock(l, genesis, pool)
	require.Equal(t, uint64(1), l.Balance(addrA1))

	tx := consensus.Transaction{From: addrA1, To: addrA2, Amount: 1}
	next := mine(t, consensus.NewSuccessorBlock(addrA1, genesis, 1, []consensus.Transaction{tx}))
	ApplyBlock(l, next, pool)

	require.Equal(t, uint64(1), l.Balance(addrA1)) // debited 1, credited reward 1
	require.Equal(t, uint64(1), l.Balance(addrA2))
}

func TestApplyBlockEvictsMatchingPoolEntry(t *testing.T) {
	l := New()
	pool := txpool.New()
	tx := consensus.Transaction{From: addrA1, To: addrA2, Amount: 1}
	pool.Push(tx)

	genesis := mine(t, consensus.NewGenesisBlock(addrA1, 1, []consensus.Transaction{tx}))
	ApplyBlock(l, genesis, pool)

	require.Equal(t, 0, pool.Len())
}

func TestDebitSaturatesToZeroRatherThanUnderflow(t *testing.T) {
	l := New()
	pool := txpool.New()

	tx := consensus.Transaction{From: addrA1, To: addrA2, Amount: 1000}
	genesis := mine(t, consensus.NewGenesisBlock(addrA1, 1, []consensus.Transaction{tx}))
	ApplyBlock(l, genesis, pool)

	// addrA1 only ever received the block reward (1), never 1000: the
	// debit must saturate to zero instead of wrapping or panicking.
	require.Equal(t, uint64(0), l.Balance(addrA1))
	require.Equal(t, uint64(1000), l.Balance(addrA2))
}

func TestBalanceOfUnknownAddressIsZero(t *testing.T) {
	l := New()
	require.Equal(t, uint64(0), l.Balance(addrA1))
}

func TestRebuildReplaysEntireChainFromScratch(t *testing.T) {
	l := New()
	pool := txpool.New()

	genesis := mine(t, consensus.NewGenesisBlock(addrA1, 1, nil))
	tx := consensus.Transaction{From: addrA1, To: addrA2, Amount: 1}
	next := mine(t, consensus.NewSuccessorBlock(addrA1, genesis, 1, []consensus.Transaction{tx}))

	var chain consensus.Blockchain
	require.NoError(t, chain.Append(genesis))
	require.NoError(t, chain.Append(next))

	Rebuild(l, chain, pool)

	require.Equal(t, uint64(1), l.Balance(addrA1))
	require.Equal(t, uint64(1), l.Balance(addrA2))
}

func TestRebuildResetsPriorState(t *testing.T) {
	l := New()
	pool := txpool.New()

	stale := mine(t, consensus.NewGenesisBlock(addrA2, 1, nil))
	ApplyBlock(l, stale, pool)
	require.Equal(t, uint64(1), l.Balance(addrA2))

	fresh := mine(t, consensus.NewGenesisBlock(addrA1, 1, nil))
	Rebuild(l, consensus.Blockchain{Blocks: []consensus.Block{fresh}}, pool)

	require.Equal(t, uint64(0), l.Balance(addrA2))
	require.Equal(t, uint64(1), l.Balance(addrA1))
}
