// Package hydrology implements the downhill-direction, erosion,
// flow-accumulation, and river-extraction passes (spec.md §4.4–4.8),
// grounded on the teacher's geography/erosion.go (8-neighbour
// steepest-difference scan) and geography/rivers.go (lowest-neighbour
// descent tracing), generalized from single-source tracing to the spec's
// full flow-accumulation sweep and functional single-downhill choice.
package hydrology

// Offsets is the fixed 8-neighbour direction table from spec.md §4.4,
// indexed 0..7.
var Offsets = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// Opposite returns the direction index pointing back, used by the
// antisymmetry property test (spec.md §8 invariant 7).
func Opposite(d int) int {
	return (d + 4) % 8
}
