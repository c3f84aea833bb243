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

// Package metrics collects the node's own counters. It wraps
// rcrowley/go-metrics the same way go-ethereum's own metrics-consuming
// packages do: package-level registered instruments, incremented inline
// by the code whose behavior they describe.
package metrics

import gethmetrics "github.com/rcrowley/go-metrics"

var (
	// BlocksMined counts blocks this node has itself sealed.
	BlocksMined = gethmetrics.NewRegisteredCounter("node/blocks/mined", nil)

	// BlocksAppended counts locally mined blocks appended to the local
	// chain. Blocks that arrive in a peer's adopted chain are not counted
	// here; the adoption itself is counted by ReorgsAccepted.
	BlocksAppended = gethmetrics.NewRegisteredCounter("node/blocks/appended", nil)

	// ReorgsAccepted counts times a peer's chain replaced the local one.
	ReorgsAccepted = gethmetrics.NewRegisteredCounter("node/chain/reorgs", nil)

	// PoolSize is a point-in-time gauge of pending transactions.
	PoolSize = gethmetrics.NewRegisteredGauge("node/pool/size", nil)

	// GossipMessagesIn counts frames received from the transport.
	GossipMessagesIn = gethmetrics.NewRegisteredCounter("node/gossip/in", nil)

	// GossipMessagesOut counts frames published to the transport.
	GossipMessagesOut = gethmetrics.NewRegisteredCounter("node/gossip/out", nil)
)
