// Package relay implements the dumb message relay between two peers. It
// assigns peer ids, runs the join handshake, and forwards every gameplay
// message verbatim to the other peer. It holds no game state and makes no
// gameplay decisions.
package relay

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"

	"github.com/halfcourt/dodgebrawl/shared/messages"
	"github.com/halfcourt/dodgebrawl/shared/protocol"
)

// Relay pairs up to two peers and shuttles messages between them.
type Relay struct {
	mu sync.RWMutex

	version  string
	tickRate int
	started  time.Time

	transport *transports.WsServerTransport

	peers map[*router.NetworkClient]esync.NetworkId
	names map[esync.NetworkId]string
}

// New creates a relay that accepts clients speaking the given protocol
// version and announces the given simulation tick rate.
func New(version string, tickRate int) *Relay {
	return &Relay{
		version:  version,
		tickRate: tickRate,
		started:  time.Now(),
		peers:    make(map[*router.NetworkClient]esync.NetworkId),
		names:    make(map[esync.NetworkId]string),
	}
}

// Start registers router callbacks and serves WebSocket connections on the
// port. Blocks until the transport stops.
func (r *Relay) Start(port uint) error {
	r.registerCallbacks()
	r.transport = transports.NewWsServerTransport(port, "", nil)
	log.Printf("[relay] listening on :%d", port)
	return r.transport.Start()
}

func (r *Relay) registerCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[relay] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		r.onDisconnect(client, err)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[relay] client %s error: %v", client.Id(), err)
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		r.onJoin(client, msg)
	})

	// Gameplay traffic is forwarded untouched.
	forward[messages.PickupEvent](r)
	forward[messages.ThrowEvent](r)
	forward[messages.CatchEvent](r)
	forward[messages.CatchFailEvent](r)
	forward[messages.AbilityEvent](r)
	forward[messages.JumpEvent](r)
	forward[messages.DashEvent](r)
	forward[messages.DamageEvent](r)
	forward[messages.ReviveEvent](r)
	forward[messages.RoundResetEvent](r)
	forward[messages.CharacterSnapshot](r)
	forward[messages.BallSnapshot](r)
}

// forward registers a relay route for one message type.
func forward[T any](r *Relay) {
	router.On(func(client *router.NetworkClient, msg T) {
		r.forwardToOther(client, msg)
	})
}

func (r *Relay) onJoin(client *router.NetworkClient, msg messages.JoinRequest) {
	if msg.Version != r.version {
		r.reject(client, fmt.Sprintf("version mismatch: relay %s, client %s", r.version, msg.Version))
		return
	}

	r.mu.Lock()
	id, ok := r.freePeerIDLocked()
	if !ok {
		r.mu.Unlock()
		r.reject(client, "match full")
		return
	}
	r.peers[client] = id
	r.names[id] = msg.PlayerName
	r.mu.Unlock()

	log.Printf("[relay] %s joined as peer %d (%q)", client.Id(), id, msg.PlayerName)

	if err := client.SendMessage(messages.JoinAccepted{PeerID: id, TickRate: r.tickRate}); err != nil {
		log.Printf("[relay] join accept send: %v", err)
		return
	}

	// Introduce the peers to each other.
	r.mu.RLock()
	for other, otherID := range r.peers {
		if other == client {
			continue
		}
		if err := other.SendMessage(messages.PeerJoined{PeerID: id, PlayerName: msg.PlayerName}); err != nil {
			log.Printf("[relay] peer joined send: %v", err)
		}
		if err := client.SendMessage(messages.PeerJoined{PeerID: otherID, PlayerName: r.names[otherID]}); err != nil {
			log.Printf("[relay] peer joined send: %v", err)
		}
	}
	r.mu.RUnlock()
}

func (r *Relay) freePeerIDLocked() (esync.NetworkId, bool) {
	taken := make(map[esync.NetworkId]bool, len(r.peers))
	for _, id := range r.peers {
		taken[id] = true
	}
	if !taken[protocol.PeerLeft] {
		return protocol.PeerLeft, true
	}
	if !taken[protocol.PeerRight] {
		return protocol.PeerRight, true
	}
	return 0, false
}

func (r *Relay) reject(client *router.NetworkClient, reason string) {
	log.Printf("[relay] rejecting %s: %s", client.Id(), reason)
	if err := client.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		log.Printf("[relay] reject send: %v", err)
	}
}

func (r *Relay) onDisconnect(client *router.NetworkClient, err error) {
	r.mu.Lock()
	id, joined := r.peers[client]
	delete(r.peers, client)
	if joined {
		delete(r.names, id)
	}
	remaining := make([]*router.NetworkClient, 0, len(r.peers))
	for other := range r.peers {
		remaining = append(remaining, other)
	}
	r.mu.Unlock()

	if err != nil {
		log.Printf("[relay] client %s disconnected: %v", client.Id(), err)
	} else {
		log.Printf("[relay] client %s disconnected", client.Id())
	}
	if !joined {
		return
	}
	for _, other := range remaining {
		if sendErr := other.SendMessage(messages.PeerLeft{PeerID: id}); sendErr != nil {
			log.Printf("[relay] peer left send: %v", sendErr)
		}
	}
}

func (r *Relay) forwardToOther(from *router.NetworkClient, msg any) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, joined := r.peers[from]; !joined {
		return // no forwarding before the handshake
	}
	for other := range r.peers {
		if other == from {
			continue
		}
		if err := other.SendMessage(msg); err != nil {
			log.Printf("[relay] forward failed: %v", err)
		}
	}
}

// Status is a point-in-time view for the HTTP status endpoint.
type Status struct {
	Version       string   `json:"version"`
	UptimeSeconds int64    `json:"uptimeSeconds"`
	Peers         []string `json:"peers"`
	Full          bool     `json:"full"`
}

// CurrentStatus snapshots relay state.
func (r *Relay) CurrentStatus() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers := make([]string, 0, len(r.names))
	for id, name := range r.names {
		peers = append(peers, fmt.Sprintf("%d:%s", id, name))
	}
	return Status{
		Version:       r.version,
		UptimeSeconds: int64(time.Since(r.started).Seconds()),
		Peers:         peers,
		Full:          len(r.names) >= 2,
	}
}
