package glm

type Vec2[T Numeric] [2]T

func (lhs Vec2[T]) Extend(z T) Vec3[T] {
	return Vec3[T]{lhs[0], lhs[1], z}
}

// Polar returns a vector of the given length pointing in the direction of angle,
// measured counter-clockwise from the positive x axis.
func Polar[T Numeric](angle Rad, length T) Vec2[T] {
	s, c := Sincos(angle)
	return Vec2[T]{T(c) * length, T(s) * length}
}
