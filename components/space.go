package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// SpaceData wraps the resolv collision space. Singleton per world.
type SpaceData struct {
	*resolv.Space
}

var Space = donburi.NewComponentType[SpaceData]()
