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
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	addrA1 = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addrA2 = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// mine is a test helper: brute-force a nonce for b at the given difficulty.
// Difficulty 1 in tests keeps this fast.
func mine(t *testing.T, b Block) Block {
	t.Helper()
	for nonce := uint64(0); ; nonce++ {
		b.Header.Nonce = nonce
		sealed, ok, err := Seal(b)
		require.NoError(t, err)
		if ok {
			return sealed
		}
	}
}

func TestGenesisBlockShape(t *testing.T) {
	b := NewGenesisBlock(addrA1, 1, nil)
	require.Equal(t, uint64(0), b.Header.Number)
	require.Equal(t, [32]byte{}, b.Header.PrevHash)
	require.Empty(t, b.Content)
}

func TestBlockCarriesAtMostThreeTransactions(t *testing.T) {
	pending := []Transaction{
		{From: addrA1, To: addrA2, Amount: 1},
		{From: addrA1, To: addrA2, Amount: 2},
		{From: addrA1, To: addrA2, Amount: 3},
		{From: addrA1, To: addrA2, Amount: 4},
	}
	b := NewGenesisBlock(addrA1, 1, pending)
	require.Len(t, b.Content, MaxBlockTransactions)
	require.Equal(t, pending[:3], b.Content)
}

func TestSealAndVerify(t *testing.T) {
	b := NewGenesisBlock(addrA1, 1, nil)
	sealed := mine(t, b)
	require.NoError(t, VerifyBlock(sealed))
}

func TestVerifyBlockRejectsUnmetDifficulty(t *testing.T) {
	b := NewGenesisBlock(addrA1, 8, nil) // effectively impossible to hit by accident
	require.ErrorIs(t, VerifyBlock(b), ErrInvalidProofOfWork)
}

func TestChainLinkingAndFailure(t *testing.T) {
	genesis := mine(t, NewGenesisBlock(addrA1, 1, nil))
	var chain Blockchain
	require.NoError(t, chain.Append(genesis))

	next := mine(t, NewSuccessorBlock(addrA1, genesis, 1, nil))
	require.NoError(t, chain.Append(next))
	require.Equal(t, 2, chain.Len())
	require.Equal(t, genesis.Header.CurHash, next.Header.PrevHash)

	tampered := next
	tampered.Header.PrevHash[0] ^= 0xFF
	tampered = mine(t, tampered) // re-seal so only the link, not the proof of work, is broken
	require.ErrorIs(t, chain.Append(tampered), ErrPrevHashMismatch)
}

func TestVerifyChainDetectsBrokenLink(t *testing.T) {
	genesis := mine(t, NewGenesisBlock(addrA1, 1, nil))
	next := mine(t, NewSuccessorBlock(addrA1, genesis, 1, nil))
	next.Header.PrevHash[0] ^= 0xFF
	next = mine(t, next) // re-seal so only the link, not the proof of work, is broken

	chain := Blockchain{Blocks: []Block{genesis, next}}
	require.ErrorIs(t, VerifyChain(chain), ErrPrevHashMismatch)
}

func TestForkChoiceLaws(t *testing.T) {
	genesis := mine(t, NewGenesisBlock(addrA1, 1, nil))
	current := Blockchain{Blocks: []Block{genesis}}

	// Equal length: never adopted.
	equalLen := Blockchain{Blocks: []Block{genesis}}
	require.False(t, ShouldAdopt(current, equalLen))

	// Longer and valid: adopted.
	next := mine(t, NewSuccessorBlock(addrA1, genesis, 1, nil))
	longerValid := Blockchain{Blocks: []Block{genesis, next}}
	require.True(t, ShouldAdopt(current, longerValid))

	// Longer but invalid (tampered link): rejected.
	tampered := next
	tampered.Header.PrevHash[0] ^= 0xFF
	longerInvalid := Blockchain{Blocks: []Block{genesis, tampered}}
	require.False(t, ShouldAdopt(current, longerInvalid))
}

func TestBlockchainRoundTrip(t *testing.T) {
	genesis := mine(t, NewGenesisBlock(addrA1, 1, []Transaction{{From: addrA1, To: addrA2, Amount: 5}}))
	chain := Blockchain{Blocks: []Block{genesis}}

	data, err := json.Marshal(chain)
	require.NoError(t, err)

	var decoded Blockchain
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, chain, decoded)
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := Transaction{From: addrA1, To: addrA2, Amount: 7}
	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, tx, decoded)
}

func TestHashStableUnderRoundTrip(t *testing.T) {
	b := mine(t, NewGenesisBlock(addrA1, 1, nil))
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded Block
	require.NoError(t, json.Unmarshal(data, &decoded))

	h1, err := HashBlock(b)
	require.NoError(t, err)
	h2, err := HashBlock(decoded)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}
