package hydrology

import "terrahydro/internal/tferrors"

// SingleDownhill is the capability FlowMap and RiverRunner need: a single
// chosen downhill direction per cell (spec.md §9 "Polymorphism"). Both
// *SingleDownhillMap and *FixedSingleDownhillMap satisfy it.
type SingleDownhill interface {
	Get(x, y int) (dir int, ok bool)
}

// FlowMap is spec.md §3/§4.7: per-cell drainage count.
type FlowMap struct {
	W    int
	Flow []uint64
}

// ComputeFlow traces one unit of rain from every in-bounds cell down its
// single-downhill chain until it exits the grid, incrementing every
// visited cell (spec.md §4.7). Grounded on the teacher's
// geography/rivers.go traceRiver loop, generalized from "trace one source
// to the sea" to "trace every source to exit, tallying visits".
//
// w is the mesh width the SingleDownhillMap was built over. Returns an
// error if any trace exceeds w*w steps (spec.md §8 invariant 3) — this
// cannot happen after a successful Erosion, since every cell then has a
// strictly lower neighbour and elevation strictly decreases along a
// trace, but is still checked defensively per spec.md §7.
func ComputeFlow(w int, sdm SingleDownhill) (*FlowMap, error) {
	fm := &FlowMap{W: w, Flow: make([]uint64, w*w)}
	maxSteps := w * w

	for sy := 0; sy < w; sy++ {
		for sx := 0; sx < w; sx++ {
			x, y := sx, sy
			steps := 0
			for x >= 0 && x < w && y >= 0 && y < w {
				fm.Flow[y*w+x]++
				steps++
				if steps > maxSteps {
					return fm, tferrors.ErrFlowTraceOverrun
				}
				dir, ok := sdm.Get(x, y)
				if !ok {
					break
				}
				o := Offsets[dir]
				x, y = x+o[0], y+o[1]
			}
		}
	}
	return fm, nil
}

// Get returns the flow count at (x,y), or 0 if out of bounds.
func (fm *FlowMap) Get(x, y int) uint64 {
	if x < 0 || x >= fm.W || y < 0 || y >= fm.W {
		return 0
	}
	return fm.Flow[y*fm.W+x]
}
