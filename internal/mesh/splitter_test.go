package mesh

import (
	"testing"

	"terrahydro/internal/rng"
	"terrahydro/internal/scale"

	"github.com/stretchr/testify/assert"
)

// hasDownhillNeighbor checks the 8-neighbour downhill condition directly
// against a Mesh, independent of the hydrology package (avoids an import
// cycle: hydrology depends on mesh, not the reverse).
func hasDownhillNeighbor(m *Mesh, x, y int) bool {
	offsets := [8][2]int{
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	}
	z := m.GetZ(x, y)
	for _, o := range offsets {
		if m.GetZ(x+o[0], y+o[1]) < z {
			return true
		}
	}
	return false
}

func allCellsHaveDownhill(m *Mesh) bool {
	for y := 0; y < m.W; y++ {
		for x := 0; x < m.W; x++ {
			if !hasDownhillNeighbor(m, x, y) {
				return false
			}
		}
	}
	return true
}

func TestRunDoublesWidth(t *testing.T) {
	parent := New(4, 1.0)
	r := rng.New(1)
	out, splits := Run(parent, r, scale.Interval{Lo: 0.2, Hi: 0.8})

	assert.Equal(t, 8, out.W)
	assert.Len(t, splits, 4*4*4)
}

func TestRunPreservesDownhillInvariant(t *testing.T) {
	// Construct a parent mesh with every interior cell downhill-complete.
	// oobZ is set below the global minimum so every boundary cell is
	// automatically downhill-complete via its out-of-bounds neighbours.
	parent := New(4, -1.0)
	parent.SetZ(0, 0, 0.9)
	parent.SetZ(1, 0, 0.7)
	parent.SetZ(2, 0, 0.5)
	parent.SetZ(3, 0, 0.3)
	parent.SetZ(0, 1, 0.8)
	parent.SetZ(1, 1, 0.6)
	parent.SetZ(2, 1, 0.4)
	parent.SetZ(3, 1, 0.2)
	parent.SetZ(0, 2, 0.7)
	parent.SetZ(1, 2, 0.5)
	parent.SetZ(2, 2, 0.3)
	parent.SetZ(3, 2, 0.1)
	parent.SetZ(0, 3, 0.6)
	parent.SetZ(1, 3, 0.4)
	parent.SetZ(2, 3, 0.2)
	parent.SetZ(3, 3, 0.0)

	r := rng.New(42)
	out, _ := Run(parent, r, scale.Interval{Lo: 0.1, Hi: 0.9})

	assert.True(t, allCellsHaveDownhill(out))
}

func TestSplitChildNeverExceedsParent(t *testing.T) {
	parent := New(2, 1.0)
	parent.SetZ(0, 0, 0.5)
	parent.SetZ(1, 0, 0.5)
	parent.SetZ(0, 1, 0.5)
	parent.SetZ(1, 1, 0.5)

	r := rng.New(7)
	out, _ := Run(parent, r, scale.Interval{Lo: 0.0, Hi: 1.0})

	for y := 0; y < out.W; y++ {
		for x := 0; x < out.W; x++ {
			assert.LessOrEqual(t, out.GetZ(x, y), 0.5+1e-9)
		}
	}
}

func TestApplySurfaceDetailDisabledIsNoop(t *testing.T) {
	m := New(3, 0)
	m.SetZ(1, 1, 5)
	n := NewDetailNoise(1)
	out := ApplySurfaceDetail(m, n, 0)
	assert.Equal(t, m.GetZ(1, 1), out.GetZ(1, 1))
}

func TestApplySurfaceDetailPerturbs(t *testing.T) {
	m := New(4, 0)
	n := NewDetailNoise(1)
	out := ApplySurfaceDetail(m, n, 100)

	changed := false
	for y := 0; y < m.W; y++ {
		for x := 0; x < m.W; x++ {
			if out.GetZ(x, y) != m.GetZ(x, y) {
				changed = true
			}
		}
	}
	assert.True(t, changed)
}
