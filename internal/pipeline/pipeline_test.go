package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrahydro/internal/hydrology"
	"terrahydro/internal/scale"
)

func baseParams(seed int64, iterations int) Params {
	return Params{
		Seed:                  seed,
		Iterations:            iterations,
		RandomRange:           scale.Interval{Lo: 0.2, Hi: 0.8},
		MaxErosionIterations:  500,
		ZMin:                  0,
		ZMax:                  100,
		OOBZ:                  -1,
		SeaLevel:              10,
		RiverThreshold:        1,
		FlowToWidth:           hydrology.FlowToWidth{Min: 1, Max: 10},
	}
}

func TestRunProducesCorrectWidth(t *testing.T) {
	w, err := Run(context.Background(), baseParams(1, 3))
	require.NoError(t, err)
	assert.Equal(t, 8, w.Mesh.W)
}

func TestRunIsDownhillComplete(t *testing.T) {
	w, err := Run(context.Background(), baseParams(2, 2))
	require.NoError(t, err)
	dm := hydrology.ComputeDownhill(w.Mesh)
	assert.True(t, dm.AllCellsHaveDownhill())
}

func TestRunAssignsSnapshotIdentity(t *testing.T) {
	w, err := Run(context.Background(), baseParams(3, 1))
	require.NoError(t, err)
	assert.NotEqual(t, w.ID.String(), "")
}

func TestRunRejectsNegativeIterations(t *testing.T) {
	p := baseParams(1, -1)
	_, err := Run(context.Background(), p)
	assert.Error(t, err)
}

func TestRunZeroIterationsYieldsSingleCell(t *testing.T) {
	w, err := Run(context.Background(), baseParams(4, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Mesh.W)
}

func TestRunIsDeterministicForSameSeed(t *testing.T) {
	w1, err := Run(context.Background(), baseParams(42, 3))
	require.NoError(t, err)
	w2, err := Run(context.Background(), baseParams(42, 3))
	require.NoError(t, err)

	for x := 0; x < w1.Mesh.W; x++ {
		for y := 0; y < w1.Mesh.W; y++ {
			assert.Equal(t, w1.Mesh.GetZ(x, y), w2.Mesh.GetZ(x, y))
		}
	}
}
