package glm

// Quaternion is a rotation with imaginary part V and real part S.
type Quaternion[T Numeric] struct {
	V Vec3[T]
	S T
}

func IdentityQuaternion[T Numeric]() Quaternion[T] {
	return Quaternion[T]{S: 1}
}

// QuaternionFromAxisAngle returns a rotation of angle around axis.
// The axis must be normalized.
func QuaternionFromAxisAngle[T Numeric](axis Vec3[T], angle Rad) Quaternion[T] {
	s, c := Sincos(angle * 0.5)

	return Quaternion[T]{
		V: axis.MulScalar(T(s)),
		S: T(c),
	}
}
