package mesh

import "terrahydro/internal/scale"

// Split describes one sampled child cell produced by Run: the
// absolute coordinate in the refined mesh and its sampled elevation
// (spec.md §3 "Split").
type Split struct {
	X, Y int
	Z    float64
}

// splitRule is spec.md §3's SplitRule: the sampling interval for one of the
// four children of a parent cell, identified by its (ox,oy) slot in the
// 2×2 child block.
type splitRule struct {
	ox, oy int
	x, y   int // absolute child coordinate
	lo, hi float64
}

// Uniform is the capability Run needs from the RNG (internal/rng.Rand
// satisfies it).
type Uniform interface {
	Uniform(lo, hi float64) float64
}

// Run performs one pass of 2× refinement (spec.md §4.3): given a parent
// mesh of width W, it produces a fresh mesh of width 2W such that every
// child block samples an elevation no higher than its parent and at least
// one monotone descent exists from every child to the parent's local
// minimum corner — preserving the downhill-connectivity invariant.
//
// randomRange is the per-iteration (lo, hi) ⊆ [0,1] sampling sub-interval
// from the pipeline parameters (spec.md §6).
func Run(parent *Mesh, rngSrc Uniform, randomRange scale.Interval) (*Mesh, []Split) {
	w := parent.W
	out := New(2*w, parent.OOBZ())
	splits := make([]Split, 0, 4*w*w)

	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			splits = splitCell(parent, out, x, y, rngSrc, randomRange, splits)
		}
	}
	return out, splits
}

// childOrder fixes the encounter order used to break ties when sorting by
// lo: (0,0), (0,1), (1,0), (1,1).
var childOrder = [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

func splitCell(parent, out *Mesh, x, y int, rngSrc Uniform, randomRange scale.Interval, splits []Split) []Split {
	z := parent.GetZ(x, y)

	rules := make([]*splitRule, 4)
	for i, oxy := range childOrder {
		ox, oy := oxy[0], oxy[1]
		dx, dy := 2*ox-1, 2*oy-1

		minZ := parent.GetZ(x+dx, y)
		if v := parent.GetZ(x, y+dy); v < minZ {
			minZ = v
		}
		if v := parent.GetZ(x+dx, y+dy); v < minZ {
			minZ = v
		}
		if z < minZ {
			minZ = z
		}

		rules[i] = &splitRule{
			ox: ox, oy: oy,
			x: 2*x + ox, y: 2*y + oy,
			lo: minZ, hi: z,
		}
	}

	// Sort by lo ascending; ties keep the original encounter order since
	// sort.SliceStable is not needed here — a manual stable insertion sort
	// over 4 elements is simpler and avoids importing sort for four items.
	order := stableSortByLo(rules)

	for _, idx := range order {
		r := rules[idx]
		u := rngSrc.Uniform(randomRange.Lo, randomRange.Hi)
		zc := scale.New(scale.Interval{Lo: 0, Hi: 1}, scale.Interval{Lo: r.lo, Hi: r.hi}).Apply(u)

		out.SetZ(r.x, r.y, zc)
		splits = append(splits, Split{X: r.x, Y: r.y, Z: zc})

		for _, other := range rules {
			if other == r {
				continue
			}
			if other.ox == r.ox || other.oy == r.oy {
				if zc < other.lo {
					other.lo = zc
				}
			}
		}
	}
	return splits
}

// stableSortByLo returns indices into rules ordered by ascending lo, with
// ties broken by original index (the fixed childOrder encounter order).
func stableSortByLo(rules []*splitRule) []int {
	order := []int{0, 1, 2, 3}
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && rules[order[j]].lo < rules[order[j-1]].lo {
			order[j], order[j-1] = order[j-1], order[j]
			j--
		}
	}
	return order
}
