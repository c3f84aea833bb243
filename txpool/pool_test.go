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

package txpool

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ishish222/ishishnode/consensus"
)

var (
	addrA1 = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addrA2 = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestPushAndFirstKDoesNotConsume(t *testing.T) {
	p := New()
	p.Push(consensus.Transaction{From: addrA1, To: addrA2, Amount: 1})
	p.Push(consensus.Transaction{From: addrA1, To: addrA2, Amount: 2})
	p.Push(consensus.Transaction{From: addrA1, To: addrA2, Amount: 3})
	p.Push(consensus.Transaction{From: addrA1, To: addrA2, Amount: 4})

	first := p.FirstK(3)
	require.Len(t, first, 3)
	require.Equal(t, uint64(1), first[0].Amount)
	require.Equal(t, 4, p.Len(), "FirstK must not consume the pool")
}

func TestFirstKShorterThanPool(t *testing.T) {
	p := New()
	p.Push(consensus.Transaction{From: addrA1, To: addrA2, Amount: 1})
	require.Len(t, p.FirstK(3), 1)
}

func TestRemoveFirstEqualRemovesOnlyOneOccurrence(t *testing.T) {
	p := New()
	tx := consensus.Transaction{From: addrA1, To: addrA2, Amount: 1}
	p.Push(tx)
	p.Push(tx) // duplicate, no dedup at push time

	require.True(t, p.RemoveFirstEqual(tx))
	require.Equal(t, 1, p.Len(), "only the first matching occurrence is evicted")

	require.True(t, p.RemoveFirstEqual(tx))
	require.Equal(t, 0, p.Len())

	require.False(t, p.RemoveFirstEqual(tx), "nothing left to remove")
}

func TestRemoveFirstEqualNoMatch(t *testing.T) {
	p := New()
	p.Push(consensus.Transaction{From: addrA1, To: addrA2, Amount: 1})
	other := consensus.Transaction{From: addrA2, To: addrA1, Amount: 99}
	require.False(t, p.RemoveFirstEqual(other))
	require.Equal(t, 1, p.Len())
}
