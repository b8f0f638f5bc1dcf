package mathx

import "golang.org/x/exp/constraints"

// MapClamped maps x in [inMin,inMax] linearly onto [outMin,outMax] and
// clamps the result to the output range. inMax must differ from inMin.
func MapClamped[T constraints.Float](x, inMin, inMax, outMin, outMax T) T {
	return Clamp(Lerp(outMin, outMax, InvLerp(inMin, inMax, x)), outMin, outMax)
}
