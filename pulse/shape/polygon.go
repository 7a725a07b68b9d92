package shape

import (
	"fmt"
	"math"

	"github.com/oliverbestmann/hermit/glm"
	"github.com/oliverbestmann/hermit/pulse"
)

// RegularPolygon builds a convex polygon with the given number of sides around the
// origin as a triangle fan in counter clockwise order. Fewer than three sides are
// raised to three. The rim vertices are addressed by 16 bit indices, which limits
// the polygon to math.MaxUint16 sides.
func RegularPolygon(sides int, radius float32, color pulse.Color) ([]Vertex, []uint16, error) {
	sides = max(sides, 3)

	if sides > math.MaxUint16 {
		return nil, nil, fmt.Errorf("polygon with %d sides: %w", sides, ErrIndexRange)
	}

	vertices := make([]Vertex, 0, sides+1)
	indices := make([]uint16, 0, sides*3)

	// center of the fan
	vertices = append(vertices, Colored(0, 0, 0, color))

	step := 2 * math.Pi / float64(sides)
	for idx := range sides {
		// start at the top
		angle := glm.Rad(math.Pi/2 + step*float64(idx))
		pos := glm.Polar(angle, radius).Extend(0)
		vertices = append(vertices, Colored(pos[0], pos[1], pos[2], color))
	}

	for idx := range sides {
		a := uint16(1 + idx)
		b := uint16(1 + (idx+1)%sides)
		indices = append(indices, 0, a, b)
	}

	return vertices, indices, nil
}
