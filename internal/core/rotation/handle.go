package rotation

import (
	"math"

	"github.com/zeusync/interact/internal/core/model"
	"github.com/zeusync/interact/pkg/geom"
)

// HandlePosition places the rotation handle on its circle at the current
// total angle, shifted by the live corner drags so it follows the top edge
// while the view is being resized.
func HandlePosition(state *model.State, radialOffset float64) geom.Vector2 {
	r := Radius(state, radialOffset)
	a := state.CurrentAngle()
	sin, cos := math.Sincos(a)

	var w float64
	for _, c := range state.Corners {
		w += c.X
	}
	h := state.Corners[model.TopLeading].Y + state.Corners[model.TopTrailing].Y

	return geom.Vector2{
		X: r*sin + cos*w/2 - sin*h,
		Y: -r*cos + cos*h + sin*w/2,
	}
}
