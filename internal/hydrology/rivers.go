package hydrology

import (
	"terrahydro/internal/mesh"
	"terrahydro/internal/scale"
)

// RGBA is a plain colour quad, matching spec.md §4.8's BLUE = (0,0,1,1).
type RGBA struct{ R, G, B, A float64 }

// Blue is the fixed river/junction colour from spec.md §4.8.
var Blue = RGBA{R: 0, G: 0, B: 1, A: 1}

// Junction is spec.md §3: a river endpoint with in/out widths.
type Junction struct {
	X, Y              int
	WidthIn, WidthOut float64
	Colour            RGBA
}

// River is spec.md §3: a directed edge from a cell to its single-downhill
// neighbour.
type River struct {
	FromX, FromY int
	ToX, ToY     int
	Colour       RGBA
}

// FlowToWidth is the (w_min, w_max) output range for flow_scale (spec.md
// §4.8 input).
type FlowToWidth struct{ Min, Max float64 }

// RiverRunnerResult bundles the extracted river graph (spec.md §4.8).
type RiverRunnerResult struct {
	Rivers    []River
	Junctions []Junction
}

// RunRivers filters flow >= threshold above sea level and emits directed
// river segments with junction widths scaled to flow (spec.md §4.8).
// Grounded on the teacher's geography/rivers.go traceRiver (lowest-
// neighbour descent, sea-level termination), generalized from a single
// random-source sampling pass into a full threshold sweep over every
// qualifying cell's pre-computed single-downhill neighbour.
func RunRivers(m *mesh.Mesh, sdm SingleDownhill, fm *FlowMap, threshold uint64, seaLevel float64, flowToWidth FlowToWidth) RiverRunnerResult {
	w := fm.W

	var maxFlowOverSea uint64
	any := false
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			if m.GetZ(x, y) >= seaLevel {
				f := fm.Get(x, y)
				if !any || f > maxFlowOverSea {
					maxFlowOverSea = f
					any = true
				}
			}
		}
	}

	// A degenerate (threshold == max flow) range would give Scale a
	// zero-width From interval; widen it by one unit so every qualifying
	// cell still maps to a defined width instead of panicking.
	hi := float64(maxFlowOverSea)
	if hi <= float64(threshold) {
		hi = float64(threshold) + 1
	}
	flowScale := scale.New(
		scale.Interval{Lo: float64(threshold), Hi: hi},
		scale.Interval{Lo: flowToWidth.Min, Hi: flowToWidth.Max},
	)

	var result RiverRunnerResult
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			f := fm.Get(x, y)
			if f < threshold || m.GetZ(x, y) < seaLevel {
				continue
			}
			dir, ok := sdm.Get(x, y)
			if !ok {
				continue
			}
			o := Offsets[dir]
			nx, ny := x+o[0], y+o[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= w {
				continue
			}

			wSrc := flowScale.Apply(float64(f))
			wDst := flowScale.Apply(float64(fm.Get(nx, ny)))

			result.Junctions = append(result.Junctions,
				Junction{X: x, Y: y, WidthIn: wSrc, WidthOut: wSrc, Colour: Blue},
				Junction{X: nx, Y: ny, WidthIn: wDst, WidthOut: wDst, Colour: Blue},
			)
			result.Rivers = append(result.Rivers, River{FromX: x, FromY: y, ToX: nx, ToY: ny, Colour: Blue})
		}
	}
	return result
}
