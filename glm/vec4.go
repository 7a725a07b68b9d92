package glm

type Vec4[T Numeric] [4]T

func (lhs Vec4[T]) Truncate() Vec3[T] {
	return Vec3[T]{lhs[0], lhs[1], lhs[2]}
}

// Project divides x, y and z by w.
func (lhs Vec4[T]) Project() Vec3[T] {
	return lhs.Truncate().MulScalar(1 / lhs[3])
}
