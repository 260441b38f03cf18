package hydrology

// Index is the capability ComputeSingleDownhill needs from the RNG
// (terrahydro/internal/rng.Rand satisfies it).
type Index interface {
	Index(n int) int
}

// SingleDownhillMap is spec.md §3/§4.5: per cell, one chosen downhill
// direction index (0..7), chosen uniformly at random among the true
// entries of the DownhillMap so flow accumulation has a single-valued
// descent function.
type SingleDownhillMap struct {
	w       int
	dir     []int
	defined []bool
}

// ComputeSingleDownhill derives a SingleDownhillMap from dm by picking,
// for each cell, a uniformly random index among its true directions.
// For cells with no downhill neighbour, Get reports ok == false; spec.md
// §4.6 ensures such cells do not exist after Erosion.
func ComputeSingleDownhill(dm *DownhillMap, rngSrc Index) *SingleDownhillMap {
	w := dm.w
	sdm := &SingleDownhillMap{w: w, dir: make([]int, w*w), defined: make([]bool, w*w)}
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			mask := dm.Directions(x, y)
			var trueIdx []int
			for d, v := range mask {
				if v {
					trueIdx = append(trueIdx, d)
				}
			}
			if len(trueIdx) == 0 {
				continue
			}
			chosen := trueIdx[rngSrc.Index(len(trueIdx))]
			sdm.dir[y*w+x] = chosen
			sdm.defined[y*w+x] = true
		}
	}
	return sdm
}

// Get returns the chosen downhill direction index for (x,y) and whether
// one is defined.
func (sdm *SingleDownhillMap) Get(x, y int) (int, bool) {
	if x < 0 || x >= sdm.w || y < 0 || y >= sdm.w {
		return 0, false
	}
	i := y*sdm.w + x
	return sdm.dir[i], sdm.defined[i]
}

// FixedSingleDownhillMap is a test double for SingleDownhillMap's
// capability (spec.md §9 "Polymorphism"): a prescribed direction table.
// Dir is indexed Dir[x][y], matching the convention spec.md's scenarios
// use for literal grids (the first coordinate is the outer/row index).
type FixedSingleDownhillMap struct {
	W   int
	Dir [][]int
}

// Get implements the same interface as *SingleDownhillMap.
func (f *FixedSingleDownhillMap) Get(x, y int) (int, bool) {
	if x < 0 || x >= f.W || y < 0 || y >= f.W {
		return 0, false
	}
	return f.Dir[x][y], true
}
