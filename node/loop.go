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

package node

import "github.com/ethereum/go-ethereum/log"

// Run multiplexes the three event sources that drive a node: console
// commands, locally mined blocks, and gossip frames from peers. It
// returns when console reports end of input.
func (n *Node) Run(console *Console) {
	defer n.worker.Close()

	commands := console.Commands()
	mined := n.worker.Mined()
	frames := n.transport.Messages()

	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				log.Info("node: console closed, shutting down")
				return
			}
			n.dispatch(cmd, console)
			console.Done()

		case b := <-mined:
			n.onMined(b)

		case raw, ok := <-frames:
			if !ok {
				log.Warn("node: gossip transport closed")
				frames = nil // stop selecting a closed channel forever
				continue
			}
			n.onGossipFrame(raw)
		}
	}
}
