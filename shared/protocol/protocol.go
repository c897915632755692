// Package protocol fixes the network id layout both peers and the relay
// agree on. Characters use their owning peer's id; the ball has a reserved
// id of its own.
package protocol

import (
	"github.com/leap-fish/necs/esync"

	"github.com/halfcourt/dodgebrawl/shared/netconfig"
)

const (
	// PeerLeft is assigned to the first peer to join and plays the left
	// side. It is the initial ball authority and wins simultaneous-claim
	// ties (lower peer id wins).
	PeerLeft  esync.NetworkId = 1
	PeerRight esync.NetworkId = 2

	// BallID is the reserved network id of the match ball.
	BallID esync.NetworkId = 100
)

// SideFor maps a peer id to its arena side.
func SideFor(peer esync.NetworkId) netconfig.Side {
	if peer == PeerLeft {
		return netconfig.SideLeft
	}
	return netconfig.SideRight
}

// PeerFor maps an arena side to its peer id.
func PeerFor(side netconfig.Side) esync.NetworkId {
	if side == netconfig.SideLeft {
		return PeerLeft
	}
	return PeerRight
}
