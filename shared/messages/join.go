package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a peer after connecting to the relay.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the relay when a peer's join request is accepted.
// PeerID 1 joins the left side, PeerID 2 the right. The lower peer id is the
// initial ball authority and wins simultaneous-claim ties.
type JoinAccepted struct {
	PeerID   esync.NetworkId
	TickRate int
}

// JoinRejected is sent by the relay when a peer's join request is rejected.
type JoinRejected struct {
	Reason string
}

// PeerJoined notifies an already-connected peer that its opponent arrived.
type PeerJoined struct {
	PeerID     esync.NetworkId
	PlayerName string
}

// PeerLeft notifies a peer that its opponent disconnected.
type PeerLeft struct {
	PeerID esync.NetworkId
}
