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

// Package miner runs the proof-of-work search for a single candidate
// block on its own goroutine, so the node's event loop never blocks on
// CPU-bound hashing.
package miner

import (
	"math/rand"

	"github.com/ethereum/go-ethereum/log"
	gethmetrics "github.com/rcrowley/go-metrics"

	"github.com/ishish222/ishishnode/consensus"
)

var (
	hashesComputed = gethmetrics.NewRegisteredCounter("miner/hashes", nil)
	blocksMined    = gethmetrics.NewRegisteredCounter("miner/blocks", nil)
)

// Worker searches for a nonce that satisfies a candidate block's
// difficulty. Two independent pieces of state gate the search: whether a
// candidate has been set (MineBlock) and whether the worker is running
// (Start/Stop). MineBlock never changes whether the worker is running,
// and Start/Stop never touch the candidate; this lets a node replace the
// block a stopped worker will mine next without waking it, and lets a
// reorg hand the worker a fresh candidate without caring whether mining
// happened to be running beforehand.
type Worker struct {
	request   chan consensus.Block
	start     chan struct{}
	stopMine  chan struct{}
	mined     chan consensus.Block
	terminate chan struct{}
	done      chan struct{}
}

// NewWorker starts the worker's background goroutine, idle and without a
// candidate, and returns a handle to it. Call Close to terminate it.
func NewWorker() *Worker {
	w := &Worker{
		request:   make(chan consensus.Block),
		start:     make(chan struct{}),
		stopMine:  make(chan struct{}),
		mined:     make(chan consensus.Block),
		terminate: make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

// MineBlock replaces whatever candidate the worker is currently
// searching, if any, with candidate, resetting its nonce. It does not
// start or resume the search: call Start for that.
func (w *Worker) MineBlock(candidate consensus.Block) {
	select {
	case w.request <- candidate:
	case <-w.done:
	}
}

// Start begins (or resumes) searching the current candidate, if any. It
// is a no-op with respect to the candidate itself.
func (w *Worker) Start() {
	select {
	case w.start <- struct{}{}:
	case <-w.done:
	}
}

// Stop halts whatever search is in flight without discarding the current
// candidate; no block is emitted until a subsequent Start. It is a no-op
// if the worker is already stopped or has been closed.
func (w *Worker) Stop() {
	select {
	case w.stopMine <- struct{}{}:
	case <-w.done:
	}
}

// Mined delivers successfully sealed blocks. A block superseded by a
// later MineBlock call before it is found is never delivered.
func (w *Worker) Mined() <-chan consensus.Block {
	return w.mined
}

// Close terminates the worker goroutine for good. It is safe to call
// once; further calls are no-ops.
func (w *Worker) Close() {
	select {
	case <-w.done:
		return
	default:
	}
	close(w.terminate)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)

	var (
		candidate    consensus.Block
		hasCandidate bool
		running      bool
		nonce        uint64
	)

	for {
		// attempt is nil whenever there is nothing to search for, which
		// makes its case in the select below permanently blocked instead
		// of busy-spinning: a nil channel is never ready.
		var attempt chan struct{}
		if running && hasCandidate {
			attempt = attemptSignal
		}

		select {
		case next := <-w.request:
			log.Debug("miner: new candidate received", "number", next.Header.Number)
			candidate = next
			hasCandidate = true
			nonce = rand.Uint64()

		case <-w.start:
			running = true

		case <-w.stopMine:
			running = false

		case <-attempt:
			candidate.Header.Nonce = nonce
			hashesComputed.Inc(1)
			sealed, ok, err := consensus.Seal(candidate)
			if err != nil {
				log.Error("miner: failed to hash candidate", "err", err)
				hasCandidate = false
				continue
			}
			if ok {
				blocksMined.Inc(1)
				log.Info("miner: sealed block", "number", sealed.Header.Number, "nonce", sealed.Header.Nonce)
				hasCandidate = false
				select {
				case w.mined <- sealed:
				case next := <-w.request:
					// A newer candidate arrived while we were handing off
					// the mined block; honor it instead of stalling.
					candidate = next
					hasCandidate = true
					nonce = rand.Uint64()
				case <-w.stopMine:
					running = false
				case <-w.terminate:
					return
				}
				continue
			}
			nonce++

		case <-w.terminate:
			return
		}
	}
}

// attemptSignal is a perpetually-ready channel used only to make a
// select branch selectable exactly when running && hasCandidate, without
// allocating a fresh channel on every loop iteration.
var attemptSignal = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()
