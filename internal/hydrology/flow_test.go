package hydrology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// direction field shared by S4 and S5, matching spec.md's literal grid
// with the first coordinate as the outer (row) index.
var s4Dirs = [][]int{
	{6, 6, 6, 6},
	{6, 6, 6, 6},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
}

// S4 — Rain trace on 4×4 mesh, single source at (2,1).
func TestS4SingleSourceTrace(t *testing.T) {
	sdm := &FixedSingleDownhillMap{W: 4, Dir: s4Dirs}

	visits := make(map[[2]int]int)
	x, y := 2, 1
	steps := 0
	for x >= 0 && x < 4 && y >= 0 && y < 4 {
		visits[[2]int{x, y}]++
		steps++
		if steps > 16 {
			t.Fatal("trace exceeded W*W steps")
		}
		dir, ok := sdm.Get(x, y)
		if !ok {
			break
		}
		o := Offsets[dir]
		x, y = x+o[0], y+o[1]
	}

	want := [][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 1},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
	}
	for wx := 0; wx < 4; wx++ {
		for wy := 0; wy < 4; wy++ {
			assert.Equal(t, want[wx][wy], visits[[2]int{wx, wy}], "flow[%d][%d]", wx, wy)
		}
	}
}

// S5 — Full FlowMap from 4×4, rain every cell.
func TestS5FullFlowMap(t *testing.T) {
	sdm := &FixedSingleDownhillMap{W: 4, Dir: s4Dirs}

	fm, err := ComputeFlow(4, sdm)
	assert.NoError(t, err)

	want := [][]int{
		{1, 2, 3, 4},
		{3, 6, 9, 12},
		{2, 2, 2, 2},
		{1, 1, 1, 1},
	}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			assert.Equal(t, uint64(want[x][y]), fm.Get(x, y), "flow[%d][%d]", x, y)
		}
	}
}

func TestEveryCellFlowsAtLeastOnce(t *testing.T) {
	sdm := &FixedSingleDownhillMap{W: 4, Dir: s4Dirs}
	fm, err := ComputeFlow(4, sdm)
	assert.NoError(t, err)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			assert.GreaterOrEqual(t, fm.Get(x, y), uint64(1))
		}
	}
}
