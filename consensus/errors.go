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

// Package consensus implements the block and chain model: serialization,
// proof-of-work, chain verification and the heavier-chain fork-choice rule.
package consensus

import "errors"

var (
	// ErrInvalidProofOfWork is returned when a block's hash does not satisfy
	// its own declared difficulty.
	ErrInvalidProofOfWork = errors.New("consensus: invalid proof of work")

	// ErrPrevHashMismatch is returned when a block's PrevHash does not link
	// to the preceding block's CurHash, or its Number does not follow on.
	ErrPrevHashMismatch = errors.New("consensus: prev hash mismatch")

	// ErrHashConversionFailed signals an internal invariant violation while
	// hashing: VerifyBlock returns it when a block cannot be serialized.
	ErrHashConversionFailed = errors.New("consensus: hash conversion failed")

	// ErrEmptyBlockchain is returned by operations that require at least
	// one block (e.g. Tip) when none exists.
	ErrEmptyBlockchain = errors.New("consensus: blockchain is empty")
)
