package components

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// OwnerData records which peer is authoritative for an entity, plus the two
// overrides the ownership resolver honors. At most one peer treats a given
// entity as authoritative; everyone else mirrors it.
type OwnerData struct {
	Peer                 esync.NetworkId
	ExternallyControlled bool // driven by an outside driver (e.g. remote AI host)
	ForceLocal           bool // test/tooling override: always mine
}

var Owner = donburi.NewComponentType[OwnerData]()
