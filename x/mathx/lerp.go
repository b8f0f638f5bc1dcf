package mathx

import "golang.org/x/exp/constraints"

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// InvLerp returns where v sits between a and b as a fraction (0 at a, 1 at b).
// Callers must guarantee a != b.
func InvLerp[T constraints.Float](a, b, v T) T {
	return (v - a) / (b - a)
}
