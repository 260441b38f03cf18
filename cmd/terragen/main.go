package main

import (
	"context"
	"encoding/binary"
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"terrahydro/internal/hydrology"
	"terrahydro/internal/ioformats"
	"terrahydro/internal/logging"
	"terrahydro/internal/mesh"
	"terrahydro/internal/pipeline"
	"terrahydro/internal/rng"
	"terrahydro/internal/scale"
	"terrahydro/internal/snapshot"
)

// Config holds every pipeline.Params input plus the I/O paths, assembled
// from flags falling back to environment variables falling back to
// hardcoded defaults — the same layering as the teacher's
// cmd/world-service/main.go loadConfig.
type Config struct {
	Seed                 int64
	Iterations           int
	RangeLo, RangeHi     float64
	MaxErosionIterations int
	ZMin, ZMax           float64
	SeaLevel             float64
	RiverThreshold       uint64
	WidthMin, WidthMax   float64
	DetailAmplitude      float64

	OutHeightmap string
	OutRivers    string
	OutJunctions string

	LoadHeightmapPNG string
	LoadHeightmapCSV string
}

func envInt64(name string, def int64) int64 {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(name string, def float64) float64 {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// loadConfig assembles a Config from flags whose defaults are seeded from
// environment variables, in the same layering as the teacher's
// loadConfig: env var overrides a hardcoded default, and an explicit flag
// overrides both.
func loadConfig() Config {
	var c Config
	var riverThreshold int64

	flag.Int64Var(&c.Seed, "seed", envInt64("TERRAGEN_SEED", 1), "RNG seed")
	flag.IntVar(&c.Iterations, "iterations", envInt("TERRAGEN_ITERATIONS", 7), "number of split/erosion refinement passes")
	flag.Float64Var(&c.RangeLo, "range-lo", envFloat("TERRAGEN_RANGE_LO", 0.15), "lower bound of the split sampling sub-interval")
	flag.Float64Var(&c.RangeHi, "range-hi", envFloat("TERRAGEN_RANGE_HI", 0.85), "upper bound of the split sampling sub-interval")
	flag.IntVar(&c.MaxErosionIterations, "max-erosion-iterations", envInt("TERRAGEN_MAX_EROSION_ITERATIONS", 1000), "erosion repair loop bound per refinement pass")
	flag.Float64Var(&c.ZMin, "z-min", envFloat("TERRAGEN_Z_MIN", 0), "final elevation range minimum")
	flag.Float64Var(&c.ZMax, "z-max", envFloat("TERRAGEN_Z_MAX", 255), "final elevation range maximum")
	flag.Float64Var(&c.SeaLevel, "sea-level", envFloat("TERRAGEN_SEA_LEVEL", 60), "elevation below which rivers do not emit")
	flag.Int64Var(&riverThreshold, "river-threshold", envInt64("TERRAGEN_RIVER_THRESHOLD", 8), "minimum flow to emit a river segment")
	flag.Float64Var(&c.WidthMin, "width-min", envFloat("TERRAGEN_WIDTH_MIN", 1), "minimum river width")
	flag.Float64Var(&c.WidthMax, "width-max", envFloat("TERRAGEN_WIDTH_MAX", 12), "maximum river width")
	flag.Float64Var(&c.DetailAmplitude, "detail-amplitude", envFloat("TERRAGEN_DETAIL_AMPLITUDE", 0), "optional Perlin surface-detail amplitude; 0 disables it")

	flag.StringVar(&c.OutHeightmap, "out-heightmap", os.Getenv("TERRAGEN_OUT_HEIGHTMAP"), "path to write the raw float32 heightmap")
	flag.StringVar(&c.OutRivers, "out-rivers", os.Getenv("TERRAGEN_OUT_RIVERS"), "path to write the river CSV")
	flag.StringVar(&c.OutJunctions, "out-junctions", os.Getenv("TERRAGEN_OUT_JUNCTIONS"), "path to write the junction CSV")

	flag.StringVar(&c.LoadHeightmapPNG, "load-heightmap-png", "", "bypass generation: load a grayscale PNG heightmap instead")
	flag.StringVar(&c.LoadHeightmapCSV, "load-heightmap-csv", "", "bypass generation: load a CSV heightmap instead")

	flag.Parse()
	c.RiverThreshold = uint64(riverThreshold)
	return c
}

func main() {
	logging.InitLogger()
	cfg := loadConfig()
	ctx := context.Background()

	var world *snapshot.World
	if cfg.LoadHeightmapPNG != "" || cfg.LoadHeightmapCSV != "" {
		w, err := runFromLoadedHeightmap(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("loaded-heightmap run failed")
		}
		world = w
	} else {
		params := pipeline.Params{
			Seed:                 cfg.Seed,
			Iterations:           cfg.Iterations,
			RandomRange:          scale.Interval{Lo: cfg.RangeLo, Hi: cfg.RangeHi},
			MaxErosionIterations: cfg.MaxErosionIterations,
			ZMin:                 cfg.ZMin,
			ZMax:                 cfg.ZMax,
			OOBZ:                 cfg.ZMin - 1,
			SeaLevel:             cfg.SeaLevel,
			RiverThreshold:       cfg.RiverThreshold,
			FlowToWidth:          hydrology.FlowToWidth{Min: cfg.WidthMin, Max: cfg.WidthMax},
			DetailAmplitude:      cfg.DetailAmplitude,
		}
		w, err := pipeline.Run(ctx, params)
		if err != nil {
			log.Fatal().Err(err).Msg("pipeline failed")
		}
		world = w
	}

	if err := writeOutputs(cfg, world); err != nil {
		log.Fatal().Err(err).Msg("writing outputs")
	}
}

// runFromLoadedHeightmap bypasses generation (spec.md §6: "feed an
// externally supplied mesh straight into the hydrology stages") and
// re-derives the downhill/flow/river stages from a loaded mesh.
func runFromLoadedHeightmap(cfg Config) (*snapshot.World, error) {
	path := cfg.LoadHeightmapPNG
	isPNG := path != ""
	if !isPNG {
		path = cfg.LoadHeightmapCSV
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var loaded *mesh.Mesh
	if isPNG {
		loaded, err = ioformats.LoadHeightmapPNG(f, cfg.ZMin-1)
	} else {
		loaded, err = ioformats.LoadHeightmapCSV(f, cfg.ZMin-1)
	}
	if err != nil {
		return nil, err
	}

	r := rng.New(cfg.Seed)
	eroded, _, err := hydrology.Erode(loaded, r, cfg.MaxErosionIterations)
	if err != nil {
		return nil, err
	}

	sdm := hydrology.ComputeSingleDownhill(hydrology.ComputeDownhill(eroded), r)
	fm, err := hydrology.ComputeFlow(eroded.W, sdm)
	if err != nil {
		return nil, err
	}
	result := hydrology.RunRivers(eroded, sdm, fm, cfg.RiverThreshold, cfg.SeaLevel, hydrology.FlowToWidth{Min: cfg.WidthMin, Max: cfg.WidthMax})

	return snapshot.NewWorld(eroded, fm, result.Rivers, result.Junctions, cfg.SeaLevel), nil
}

// writeOutputs emits the three optional output artifacts named in
// spec.md §6: the raw float32 heightmap, the river CSV, and the junction
// CSV. Each is skipped when its flag is empty.
func writeOutputs(cfg Config, world *snapshot.World) error {
	if cfg.OutHeightmap != "" {
		if err := writeFile(cfg.OutHeightmap, func(f io.Writer) error {
			return writeHeightmapBinary(f, world.Mesh)
		}); err != nil {
			return err
		}
	}
	if cfg.OutRivers != "" {
		if err := writeFile(cfg.OutRivers, func(f io.Writer) error {
			return ioformats.WriteRivers(f, world.Rivers, world.Flow)
		}); err != nil {
			return err
		}
	}
	if cfg.OutJunctions != "" {
		if err := writeFile(cfg.OutJunctions, func(f io.Writer) error {
			return ioformats.WriteJunctions(f, world.Junctions)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// writeHeightmapBinary emits the mesh as row-major float32 little-endian
// samples, W*W of them, width-prefixed so a reader can reconstruct the
// grid without an accompanying header file.
func writeHeightmapBinary(w io.Writer, m *mesh.Mesh) error {
	if err := binary.Write(w, binary.LittleEndian, int32(m.W)); err != nil {
		return err
	}
	for y := 0; y < m.W; y++ {
		for x := 0; x < m.W; x++ {
			if err := binary.Write(w, binary.LittleEndian, float32(m.GetZ(x, y))); err != nil {
				return err
			}
		}
	}
	return nil
}
