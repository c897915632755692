package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"

	"github.com/halfcourt/dodgebrawl/config"
	"github.com/halfcourt/dodgebrawl/shared/messages"
)

type PeerState int

const (
	StateDisconnected PeerState = iota
	StateConnecting
	StateConnected
	StateJoined
	StateError
)

// Peer manages a WebSocket connection to the relay. Discrete action events
// arrive on buffered channels drained by simulation systems inside the tick;
// snapshots keep only the most recent per entity, discarding stale ones by
// timestamp. All shared fields are protected by mu (router callbacks run on
// necs goroutines).
type Peer struct {
	mu sync.RWMutex

	state     PeerState
	lastError error
	peerID    esync.NetworkId
	tickRate  int
	opponent  esync.NetworkId
	conn      *websocket.Conn

	charSnaps map[esync.NetworkId]messages.CharacterSnapshot
	ballSnap  *messages.BallSnapshot

	pickupCh     chan messages.PickupEvent
	throwCh      chan messages.ThrowEvent
	catchCh      chan messages.CatchEvent
	catchFailCh  chan messages.CatchFailEvent
	abilityCh    chan messages.AbilityEvent
	jumpCh       chan messages.JumpEvent
	dashCh       chan messages.DashEvent
	damageCh     chan messages.DamageEvent
	reviveCh     chan messages.ReviveEvent
	roundResetCh chan messages.RoundResetEvent
}

func NewPeer() *Peer {
	n := config.Net.EventBuffer
	return &Peer{
		state:        StateDisconnected,
		charSnaps:    make(map[esync.NetworkId]messages.CharacterSnapshot),
		pickupCh:     make(chan messages.PickupEvent, n),
		throwCh:      make(chan messages.ThrowEvent, n),
		catchCh:      make(chan messages.CatchEvent, n),
		catchFailCh:  make(chan messages.CatchFailEvent, n),
		abilityCh:    make(chan messages.AbilityEvent, n),
		jumpCh:       make(chan messages.JumpEvent, n),
		dashCh:       make(chan messages.DashEvent, n),
		damageCh:     make(chan messages.DamageEvent, n),
		reviveCh:     make(chan messages.ReviveEvent, n),
		roundResetCh: make(chan messages.RoundResetEvent, n),
	}
}

// Connect dials the relay in a background goroutine and initiates the join
// handshake.
func (p *Peer) Connect(address, version, playerName string) {
	p.mu.Lock()
	p.state = StateConnecting
	p.lastError = nil
	p.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[peer] connected to relay")
		p.mu.Lock()
		p.state = StateConnected
		p.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			p.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		p.mu.RLock()
		conn := p.conn
		p.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				p.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[peer] join accepted: peerID=%d tickRate=%d", msg.PeerID, msg.TickRate)
		p.mu.Lock()
		p.peerID = msg.PeerID
		p.tickRate = msg.TickRate
		p.state = StateJoined
		p.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[peer] join rejected: %s", msg.Reason)
		p.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.PeerJoined) {
		log.Printf("[peer] opponent joined: peerID=%d name=%s", msg.PeerID, msg.PlayerName)
		p.mu.Lock()
		p.opponent = msg.PeerID
		p.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.PeerLeft) {
		log.Printf("[peer] opponent left: peerID=%d", msg.PeerID)
		p.mu.Lock()
		p.opponent = 0
		p.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, snap messages.CharacterSnapshot) {
		p.mu.Lock()
		prev, ok := p.charSnaps[snap.CharacterID]
		if !ok || snap.Tick >= prev.Tick { // stale snapshots are discarded
			p.charSnaps[snap.CharacterID] = snap
		}
		p.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, snap messages.BallSnapshot) {
		p.mu.Lock()
		if p.ballSnap == nil || snap.Tick >= p.ballSnap.Tick {
			p.ballSnap = &snap
		}
		p.mu.Unlock()
	})

	onEvent(p, p.pickupCh)
	onEvent(p, p.throwCh)
	onEvent(p, p.catchCh)
	onEvent(p, p.catchFailCh)
	onEvent(p, p.abilityCh)
	onEvent(p, p.jumpCh)
	onEvent(p, p.dashCh)
	onEvent(p, p.damageCh)
	onEvent(p, p.reviveCh)
	onEvent(p, p.roundResetCh)

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[peer] disconnected: %v", err)
		p.mu.Lock()
		if p.state != StateError {
			p.state = StateDisconnected
		}
		p.conn = nil
		p.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[peer] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			p.mu.Lock()
			p.conn = conn
			p.mu.Unlock()
		})
		if err != nil {
			p.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// onEvent registers a router callback that pushes a typed event onto ch,
// dropping it when the buffer is full.
func onEvent[T any](p *Peer, ch chan T) {
	router.On(func(_ *router.NetworkClient, evt T) {
		select {
		case ch <- evt:
		default:
		}
	})
}

func (p *Peer) Disconnect() {
	p.mu.Lock()
	conn := p.conn
	p.state = StateDisconnected
	p.conn = nil
	p.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (p *Peer) State() PeerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Peer) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastError
}

// PeerID returns the relay-assigned peer id (0 before join).
func (p *Peer) PeerID() esync.NetworkId {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.peerID
}

// OpponentID returns the opposing peer id (0 until it joins).
func (p *Peer) OpponentID() esync.NetworkId {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opponent
}

// Ready reports whether both peers are joined and replication may flow.
func (p *Peer) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state == StateJoined && p.opponent != 0
}

// SendEvent serializes and sends a discrete action event over the reliable
// ordered channel.
func (p *Peer) SendEvent(msg any) error {
	return p.send(msg)
}

// PublishSnapshot sends a best-effort state snapshot. Rate limiting is the
// publisher system's job; a send failure is logged and dropped.
func (p *Peer) PublishSnapshot(msg any) {
	if err := p.send(msg); err != nil {
		log.Printf("[peer] snapshot publish failed: %v", err)
	}
}

func (p *Peer) send(msg any) error {
	p.mu.RLock()
	conn := p.conn
	p.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (p *Peer) setError(err error) {
	p.mu.Lock()
	p.state = StateError
	p.lastError = err
	p.mu.Unlock()
}

// LatestCharacterSnapshot returns the newest snapshot for an entity, if any.
func (p *Peer) LatestCharacterSnapshot(id esync.NetworkId) (messages.CharacterSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap, ok := p.charSnaps[id]
	return snap, ok
}

// LatestBallSnapshot returns the newest ball snapshot, if any.
func (p *Peer) LatestBallSnapshot() (messages.BallSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.ballSnap == nil {
		return messages.BallSnapshot{}, false
	}
	return *p.ballSnap, true
}

// DrainPickupEvents returns all pending pickup events, non-blocking.
func (p *Peer) DrainPickupEvents() []messages.PickupEvent { return drainChan(p.pickupCh) }

// DrainThrowEvents returns all pending throw events, non-blocking.
func (p *Peer) DrainThrowEvents() []messages.ThrowEvent { return drainChan(p.throwCh) }

// DrainCatchEvents returns all pending catch events, non-blocking.
func (p *Peer) DrainCatchEvents() []messages.CatchEvent { return drainChan(p.catchCh) }

// DrainCatchFailEvents returns all pending failed-catch events, non-blocking.
func (p *Peer) DrainCatchFailEvents() []messages.CatchFailEvent { return drainChan(p.catchFailCh) }

// DrainAbilityEvents returns all pending ability events, non-blocking.
func (p *Peer) DrainAbilityEvents() []messages.AbilityEvent { return drainChan(p.abilityCh) }

// DrainJumpEvents returns all pending jump events, non-blocking.
func (p *Peer) DrainJumpEvents() []messages.JumpEvent { return drainChan(p.jumpCh) }

// DrainDashEvents returns all pending dash events, non-blocking.
func (p *Peer) DrainDashEvents() []messages.DashEvent { return drainChan(p.dashCh) }

// DrainDamageEvents returns all pending damage events, non-blocking.
func (p *Peer) DrainDamageEvents() []messages.DamageEvent { return drainChan(p.damageCh) }

// DrainReviveEvents returns all pending revive events, non-blocking.
func (p *Peer) DrainReviveEvents() []messages.ReviveEvent { return drainChan(p.reviveCh) }

// DrainRoundResetEvents returns all pending round resets, non-blocking.
func (p *Peer) DrainRoundResetEvents() []messages.RoundResetEvent { return drainChan(p.roundResetCh) }

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
