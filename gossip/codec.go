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

// Package gossip encodes and decodes the wire frames exchanged between
// peers, and carries the pubsub transport those frames travel over.
//
// A frame is a 3-byte ASCII tag followed by a JSON payload, with no
// length prefix and no delimiter between the two: the tag width is
// fixed and assumed, not verified against the encoding. The slice is
// deliberately byte-based rather than rune-based, since slicing by rune
// count would be wrong on any non-ASCII payload byte that happens to
// look like a continuation byte.
package gossip

import (
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/ishish222/ishishnode/consensus"
)

const (
	tagLen = 3

	tagNewBlockchain  = "NBM"
	tagNewTransaction = "TRA"
)

var (
	// ErrFrameTooShort is returned when a received frame is shorter than
	// the fixed tag width and so cannot carry a tag at all.
	ErrFrameTooShort = errors.New("gossip: frame shorter than tag width")

	// ErrUnknownTag is returned when a frame's tag does not match any
	// known message kind.
	ErrUnknownTag = errors.New("gossip: unrecognized frame tag")

	// ErrNotUTF8 is returned when a frame's bytes are not valid UTF-8, so
	// it cannot be a tag followed by a JSON payload at all.
	ErrNotUTF8 = errors.New("gossip: frame is not valid UTF-8")
)

// Frame is a decoded wire message: exactly one of Blockchain or
// Transaction is populated, selected by Kind.
type Frame struct {
	Kind        string
	Blockchain  *consensus.Blockchain
	Transaction *consensus.Transaction
}

// EncodeBlockchain serializes chain as an "NBM" frame.
func EncodeBlockchain(chain consensus.Blockchain) ([]byte, error) {
	payload, err := json.Marshal(chain)
	if err != nil {
		return nil, err
	}
	return append([]byte(tagNewBlockchain), payload...), nil
}

// EncodeTransaction serializes tx as a "TRA" frame.
func EncodeTransaction(tx consensus.Transaction) ([]byte, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	return append([]byte(tagNewTransaction), payload...), nil
}

// Decode splits raw into its tag and payload and parses the payload
// according to the tag. An unrecognized tag returns ErrUnknownTag rather
// than panicking, so the caller can decide whether to log and drop the
// frame or close the connection on a misbehaving peer.
func Decode(raw []byte) (Frame, error) {
	if len(raw) < tagLen {
		return Frame{}, ErrFrameTooShort
	}
	if !utf8.Valid(raw) {
		return Frame{}, ErrNotUTF8
	}
	tag := string(raw[:tagLen])
	payload := raw[tagLen:]

	switch tag {
	case tagNewBlockchain:
		var chain consensus.Blockchain
		if err := json.Unmarshal(payload, &chain); err != nil {
			return Frame{}, err
		}
		return Frame{Kind: tagNewBlockchain, Blockchain: &chain}, nil
	case tagNewTransaction:
		var tx consensus.Transaction
		if err := json.Unmarshal(payload, &tx); err != nil {
			return Frame{}, err
		}
		return Frame{Kind: tagNewTransaction, Transaction: &tx}, nil
	default:
		return Frame{Kind: tag}, ErrUnknownTag
	}
}
