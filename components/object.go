package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// CenterX returns the horizontal center of the object.
func (o *ObjectData) CenterX() float64 {
	return o.X + o.W/2
}

// CenterY returns the vertical center of the object.
func (o *ObjectData) CenterY() float64 {
	return o.Y + o.H/2
}
