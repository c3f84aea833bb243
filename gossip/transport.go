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
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	libp2p "github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/peerstore"
	mdns "github.com/libp2p/go-libp2p/p2p/discovery/mdns"
)

// Transport carries raw gossip frames to and from the local peer's
// neighborhood. It knows nothing about frame contents; codec.go owns
// that.
type Transport interface {
	// Publish broadcasts raw to every subscribed peer.
	Publish(ctx context.Context, raw []byte) error

	// Messages delivers frames received from other peers. It is closed
	// when the transport shuts down.
	Messages() <-chan []byte

	// Close tears down the host, pubsub subscription and mDNS service.
	Close() error
}

// libp2pTransport is a gossipsub-over-libp2p Transport with local-network
// peer discovery via mDNS. A discovered peer is connected explicitly
// rather than left to gossipsub's own peer exchange, since on a small
// local network mDNS is the only discovery signal available.
type libp2pTransport struct {
	host  host.Host
	pub   *pubsub.PubSub
	topic *pubsub.Topic
	sub   *pubsub.Subscription
	mdns  mdns.Service

	ctx    context.Context
	cancel context.CancelFunc

	msgs chan []byte
	once sync.Once
}

// NewLibp2pTransport starts a libp2p host listening on listenAddr,
// joins the gossipsub topic named topicName, and begins mDNS discovery
// under rendezvous. listenAddr follows libp2p multiaddr syntax, e.g.
// "/ip4/0.0.0.0/tcp/0" to pick an ephemeral port.
func NewLibp2pTransport(ctx context.Context, listenAddr, topicName, rendezvous string) (Transport, error) {
	ctx, cancel := context.WithCancel(ctx)

	h, err := libp2p.New(
		libp2p.ListenAddrStrings(listenAddr),
		libp2p.NATPortMap(),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	gsub, err := pubsub.NewGossipSub(ctx, h)
	if err != nil {
		cancel()
		h.Close()
		return nil, err
	}

	topic, err := gsub.Join(topicName)
	if err != nil {
		cancel()
		h.Close()
		return nil, err
	}

	sub, err := topic.Subscribe()
	if err != nil {
		cancel()
		h.Close()
		return nil, err
	}

	t := &libp2pTransport{
		host:   h,
		pub:    gsub,
		topic:  topic,
		sub:    sub,
		ctx:    ctx,
		cancel: cancel,
		msgs:   make(chan []byte, 32),
	}

	t.mdns = mdns.NewMdnsService(h, rendezvous, &discoveryNotifee{host: h})
	if err := t.mdns.Start(); err != nil {
		t.Close()
		return nil, err
	}

	log.Info("gossip: host listening", "id", h.ID(), "addrs", h.Addrs())

	go t.readLoop()
	return t, nil
}

func (t *libp2pTransport) readLoop() {
	defer close(t.msgs)
	for {
		msg, err := t.sub.Next(t.ctx)
		if err != nil {
			return // context cancelled, i.e. Close was called
		}
		if msg.ReceivedFrom == t.host.ID() {
			continue // gossipsub already excludes self, but stay defensive
		}
		select {
		case t.msgs <- msg.Data:
		case <-t.ctx.Done():
			return
		}
	}
}

func (t *libp2pTransport) Publish(ctx context.Context, raw []byte) error {
	return t.topic.Publish(ctx, raw)
}

func (t *libp2pTransport) Messages() <-chan []byte {
	return t.msgs
}

func (t *libp2pTransport) Close() error {
	var err error
	t.once.Do(func() {
		t.cancel()
		if t.mdns != nil {
			err = t.mdns.Close()
		}
		t.sub.Cancel()
		t.topic.Close()
		err = t.host.Close()
	})
	return err
}

// discoveryNotifee translates mDNS peer-found events into an explicit
// connection attempt.
type discoveryNotifee struct {
	host host.Host
}

func (n *discoveryNotifee) HandlePeerFound(pi peer.AddrInfo) {
	n.host.Peerstore().AddAddrs(pi.ID, pi.Addrs, peerstore.TempAddrTTL)
	if err := n.host.Connect(context.Background(), pi); err != nil {
		log.Warn("gossip: mDNS peer connect failed", "peer", pi.ID, "err", err)
		return
	}
	log.Info("gossip: mDNS discovered and connected peer", "peer", pi.ID)
}
