package glm

import (
	"golang.org/x/exp/constraints"
)

// Numeric is the set of element types vectors and matrices accept. Normalizing and
// projecting divide, so integer elements are not supported.
type Numeric interface {
	constraints.Float
}

// Rad is an angle in radians
type Rad float32

func sqrt[T Numeric](value T) T {
	return T(fastSqrt(float32(value)))
}
