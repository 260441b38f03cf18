package hydrology

import (
	"testing"

	"terrahydro/internal/mesh"

	"github.com/stretchr/testify/assert"
)

func TestRunRiversEmitsSegmentAboveThreshold(t *testing.T) {
	// 4x4 slope draining toward (3,3); flow accumulates along the bottom row.
	m := mesh.New(4, -100)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			m.SetZ(x, y, float64(10-x-y))
		}
	}

	dirs := [][]int{
		{6, 6, 6, 4},
		{6, 6, 6, 4},
		{6, 6, 6, 4},
		{4, 4, 4, 4},
	}
	sdm := &FixedSingleDownhillMap{W: 4, Dir: dirs}

	fm, err := ComputeFlow(4, sdm)
	assert.NoError(t, err)

	result := RunRivers(m, sdm, fm, 2, 0.0, FlowToWidth{Min: 1, Max: 5})

	assert.NotEmpty(t, result.Rivers)
	for _, r := range result.Rivers {
		assert.GreaterOrEqual(t, fm.Get(r.FromX, r.FromY), uint64(2))
		assert.GreaterOrEqual(t, m.GetZ(r.FromX, r.FromY), 0.0)
	}
	for _, j := range result.Junctions {
		assert.Equal(t, Blue, j.Colour)
		assert.GreaterOrEqual(t, j.WidthIn, 1.0-1e-9)
		assert.LessOrEqual(t, j.WidthIn, 5.0+1e-9)
	}
}

func TestRunRiversRespectsSeaLevel(t *testing.T) {
	m := mesh.New(2, -100)
	m.SetZ(0, 0, 5)
	m.SetZ(1, 0, -5)
	m.SetZ(0, 1, 5)
	m.SetZ(1, 1, -5)

	dirs := [][]int{
		{4, 4},
		{4, 4},
	}
	sdm := &FixedSingleDownhillMap{W: 2, Dir: dirs}
	fm, err := ComputeFlow(2, sdm)
	assert.NoError(t, err)

	result := RunRivers(m, sdm, fm, 1, 0.0, FlowToWidth{Min: 1, Max: 2})
	for _, r := range result.Rivers {
		assert.GreaterOrEqual(t, m.GetZ(r.FromX, r.FromY), 0.0)
	}
}
