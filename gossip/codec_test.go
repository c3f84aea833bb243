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

package gossip

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

func TestEncodeDecodeBlockchainRoundTrip(t *testing.T) {
	chain := consensus.Blockchain{Blocks: []consensus.Block{
		consensus.NewGenesisBlock(addrA1, 1, nil),
	}}

	raw, err := EncodeBlockchain(chain)
	require.NoError(t, err)
	require.Equal(t, tagNewBlockchain, string(raw[:tagLen]))

	frame, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, tagNewBlockchain, frame.Kind)
	require.NotNil(t, frame.Blockchain)
	require.Equal(t, chain, *frame.Blockchain)
	require.Nil(t, frame.Transaction)
}

func TestEncodeDecodeTransactionRoundTrip(t *testing.T) {
	tx := consensus.Transaction{From: addrA1, To: addrA2, Amount: 42}

	raw, err := EncodeTransaction(tx)
	require.NoError(t, err)
	require.Equal(t, tagNewTransaction, string(raw[:tagLen]))

	frame, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, tagNewTransaction, frame.Kind)
	require.NotNil(t, frame.Transaction)
	require.Equal(t, tx, *frame.Transaction)
	require.Nil(t, frame.Blockchain)
}

func TestDecodeRejectsFramesShorterThanTag(t *testing.T) {
	_, err := Decode([]byte("NB"))
	require.ErrorIs(t, err, ErrFrameTooShort)

	_, err = Decode(nil)
	require.ErrorIs(t, err, ErrFrameTooShort)
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	frame, err := Decode([]byte("XYZsomepayload"))
	require.ErrorIs(t, err, ErrUnknownTag)
	require.Equal(t, "XYZ", frame.Kind)
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	raw := append([]byte(tagNewTransaction), 0xff, 0xfe, 0xfd)
	_, err := Decode(raw)
	require.ErrorIs(t, err, ErrNotUTF8)
}

func TestDecodeTagSlicingIsByteBasedNotRuneBased(t *testing.T) {
	// A payload beginning with a multi-byte UTF-8 sequence must not
	// corrupt the fixed 3-byte tag slice.
	raw := append([]byte(tagNewTransaction), []byte("\xe2\x98\x83{}")...)
	_, err := Decode(raw)
	require.Error(t, err) // "\xe2\x98\x83{}" is not valid Transaction JSON, but the tag itself must still parse as "TRA"
	require.NotErrorIs(t, err, ErrUnknownTag)
}

func TestDecodePropagatesMalformedJSON(t *testing.T) {
	raw := append([]byte(tagNewBlockchain), []byte("not json")...)
	_, err := Decode(raw)
	require.Error(t, err)
}
