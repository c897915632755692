package network

import (
	"sync"

	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"

	"github.com/halfcourt/dodgebrawl/components"
)

// Mode selects how ownership is resolved.
type Mode int

const (
	// ModeOffline runs both characters in a single process; everything is
	// locally authoritative except externally controlled entities.
	ModeOffline Mode = iota
	// ModeNetworked resolves ownership by comparing an entity's owning peer
	// against the local peer id.
	ModeNetworked
)

// Resolver decides, per entity, whether the local peer is authoritative
// ("mine") or a mirror. It is a pure function of connection state and the
// overrides on the entity's Owner component; it keeps no timers.
//
// A non-mine entity must never originate authoritative mutations. Every
// simulation system consults the resolver each tick, so a connection-state
// change takes effect on the next tick without explicit re-registration.
type Resolver struct {
	mu        sync.RWMutex
	mode      Mode
	localPeer esync.NetworkId
	ready     bool
}

// NewResolver creates a resolver. Offline resolvers are ready immediately.
func NewResolver(mode Mode) *Resolver {
	return &Resolver{mode: mode, ready: mode == ModeOffline}
}

// SetLocalPeer records the peer id assigned by the relay.
func (r *Resolver) SetLocalPeer(id esync.NetworkId) {
	r.mu.Lock()
	r.localPeer = id
	r.mu.Unlock()
}

// LocalPeer returns the assigned peer id (0 before join).
func (r *Resolver) LocalPeer() esync.NetworkId {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.localPeer
}

// SetReady flips the connection-ready flag. Until ready, a networked resolver
// treats every entity as a mirror.
func (r *Resolver) SetReady(ready bool) {
	r.mu.Lock()
	r.ready = ready
	r.mu.Unlock()
}

// Mode returns the configured mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// IsMine reports whether the local peer is authoritative for the entity.
func (r *Resolver) IsMine(entry *donburi.Entry) bool {
	var owner *components.OwnerData
	if entry.HasComponent(components.Owner) {
		owner = components.Owner.Get(entry)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.mode == ModeOffline {
		return owner == nil || !owner.ExternallyControlled
	}
	if owner != nil && owner.ForceLocal {
		return true
	}
	if !r.ready || owner == nil {
		return false
	}
	return owner.Peer == r.localPeer
}
