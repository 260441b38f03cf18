// Package pipeline implements the Scaffolding/driver described in spec.md
// §9: seed a 1×1 mesh, repeatedly split-and-erode to the target
// resolution, rescale to the final elevation range, then run the
// downhill/flow/river stages once. Grounded on the teacher's
// cmd/world-service/main.go generation sequence (seed → GenerateHeightmap
// → ApplyThermalErosion → trace rivers), generalized from a
// fixed-resolution single pass into the iterated refine/erode loop
// spec.md's MeshSplitter requires.
package pipeline

import (
	"context"
	"fmt"

	"terrahydro/internal/hydrology"
	"terrahydro/internal/logging"
	"terrahydro/internal/mesh"
	"terrahydro/internal/rng"
	"terrahydro/internal/scale"
	"terrahydro/internal/snapshot"
	"terrahydro/internal/tferrors"
)

// Params bundles every knob the driver needs (spec.md §6 plus the
// DOMAIN STACK additions in SPEC_FULL.md §3).
type Params struct {
	Seed int64

	// Iterations is the number of Splitter/Erosion refinement passes; the
	// mesh starts at 1x1 and doubles in width each iteration, so the final
	// width is 2^Iterations.
	Iterations int

	// RandomRange is the (lo,hi) sub-interval of [0,1] MeshSplitter samples
	// from, applied uniformly to every iteration.
	RandomRange scale.Interval

	// MaxErosionIterations bounds each iteration's Erosion repair loop.
	MaxErosionIterations int

	// ZMin/ZMax is the final elevation range the finished mesh is rescaled
	// into before the hydrology stages run.
	ZMin, ZMax float64

	// OOBZ is the out-of-bounds sentinel carried by every mesh, rescaled
	// alongside stored cells (SPEC_FULL.md §9 Open Question resolution).
	OOBZ float64

	SeaLevel float64

	// RiverThreshold is the minimum flow a cell needs to emit a river
	// segment.
	RiverThreshold uint64
	FlowToWidth    hydrology.FlowToWidth

	// DetailAmplitude, when > 0, enables the optional Perlin surface-detail
	// enrichment (SPEC_FULL.md DOMAIN STACK) before each iteration's
	// Erosion pass.
	DetailAmplitude float64
}

// Run executes the full pipeline and returns an immutable snapshot.World
// ready for handoff (spec.md §5).
func Run(ctx context.Context, p Params) (*snapshot.World, error) {
	ctx = logging.NewRun(ctx)
	logger := logging.WithStage(ctx, "pipeline")
	logger.Info().Int64("seed", p.Seed).Int("iterations", p.Iterations).Msg("starting generation")

	if p.Iterations < 0 {
		return nil, tferrors.New(tferrors.KindInvariant, "INVALID_PARAMS", "iterations must be >= 0")
	}

	r := rng.New(p.Seed)
	var detail *mesh.DetailNoise
	if p.DetailAmplitude > 0 {
		detail = mesh.NewDetailNoise(p.Seed + 1)
	}

	m := mesh.New(1, p.OOBZ)

	for i := 0; i < p.Iterations; i++ {
		stage := logging.WithStage(ctx, fmt.Sprintf("split-%d", i))
		split, _ := mesh.Run(m, r, p.RandomRange)
		m = split
		stage.Info().Int("width", m.W).Msg("split")

		if detail != nil {
			m = mesh.ApplySurfaceDetail(m, detail, p.DetailAmplitude)
		}

		eroded, dm, err := hydrology.Erode(m, r, p.MaxErosionIterations)
		if err != nil {
			return nil, err
		}
		m = eroded
		logging.WithStage(ctx, fmt.Sprintf("erode-%d", i)).Info().
			Int("pits_remaining", len(dm.Pits())).Msg("eroded")
	}

	// A flat mesh (e.g. the single cell left by zero iterations) has no
	// elevation range to rescale from, so it is passed through unchanged.
	rescaled := m
	if p.ZMax != p.ZMin && m.GetMaxZ() != m.GetMinZ() {
		s := scale.New(scale.Interval{Lo: m.GetMinZ(), Hi: m.GetMaxZ()}, scale.Interval{Lo: p.ZMin, Hi: p.ZMax})
		rescaled = m.Rescale(s)
	}

	dm := hydrology.ComputeDownhill(rescaled)
	if !dm.AllCellsHaveDownhill() {
		return nil, tferrors.ErrErosionDiverged
	}
	sdm := hydrology.ComputeSingleDownhill(dm, r)

	fm, err := hydrology.ComputeFlow(rescaled.W, sdm)
	if err != nil {
		return nil, err
	}

	result := hydrology.RunRivers(rescaled, sdm, fm, p.RiverThreshold, p.SeaLevel, p.FlowToWidth)
	logger.Info().Int("rivers", len(result.Rivers)).Int("junctions", len(result.Junctions)).Msg("generation complete")

	return snapshot.NewWorld(rescaled, fm, result.Rivers, result.Junctions, p.SeaLevel), nil
}
