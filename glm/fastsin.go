package glm

import (
	"golang.org/x/mobile/exp/f32"
)

// Sincos returns sin and cos of the given angle.
func Sincos(r Rad) (float32, float32) {
	return fastSin(r), fastCos(r)
}

func fastSin(r Rad) float32 {
	return f32.Sin(float32(r))
}

func fastCos(r Rad) float32 {
	return f32.Cos(float32(r))
}

func fastTan(r Rad) float32 {
	return f32.Tan(float32(r))
}

func fastSqrt(v float32) float32 {
	return f32.Sqrt(v)
}
