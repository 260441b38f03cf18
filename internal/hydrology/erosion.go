package hydrology

import (
	"terrahydro/internal/mesh"
	"terrahydro/internal/tferrors"
)

// Uniform is the capability Erode needs from the RNG (internal/rng.Rand
// satisfies it), mirroring mesh.Uniform in internal/mesh/splitter.go.
type Uniform interface {
	Uniform(lo, hi float64) float64
}

// Erode repairs m (spec.md §4.6) so that every in-bounds cell has at least
// one strictly lower neighbour, by repeatedly lowering pit cells. Grounded
// on the teacher's geography/erosion.go ApplyThermalErosion, which scans
// the same 8-neighbour table and moves material toward the steepest
// lower neighbour; this generalizes that single-pass transfer into a
// repeat-until-downhill-complete loop per spec.md's contract.
//
// Returns the repaired mesh, the final DownhillMap (always
// downhill-complete on success), and an error if max_iterations is
// exhausted while pits remain.
func Erode(m *mesh.Mesh, rngSrc Uniform, maxIterations int) (*mesh.Mesh, *DownhillMap, error) {
	cur := m.Clone()

	var dm *DownhillMap
	for iter := 0; iter < maxIterations; iter++ {
		dm = ComputeDownhill(cur)
		pits := dm.Pits()
		if len(pits) == 0 {
			return cur, dm, nil
		}
		for _, p := range pits {
			lowerPit(cur, p[0], p[1], rngSrc)
		}
	}

	dm = ComputeDownhill(cur)
	if !dm.AllCellsHaveDownhill() {
		return cur, dm, tferrors.ErrErosionDiverged
	}
	return cur, dm, nil
}

// lowerPit sets z[x,y] strictly below the minimum of its in-bounds
// neighbours, by a random fraction of the gap (spec.md §4.6 step 4).
func lowerPit(m *mesh.Mesh, x, y int, rngSrc Uniform) {
	z := m.GetZ(x, y)
	minNeighbor := z
	any := false
	for _, o := range Offsets {
		nx, ny := x+o[0], y+o[1]
		if nx < 0 || nx >= m.W || ny < 0 || ny >= m.W {
			continue
		}
		v := m.GetZ(nx, ny)
		if !any || v < minNeighbor {
			minNeighbor = v
			any = true
		}
	}
	if !any {
		// A 1x1 mesh has no in-bounds neighbours; nothing to erode against.
		return
	}

	gap := minNeighbor - z
	frac := rngSrc.Uniform(0.05, 0.5)
	newZ := minNeighbor - frac*(gap+1e-9)
	m.SetZ(x, y, newZ)
}
