package hydrology

import "terrahydro/internal/mesh"

// DownhillMap is spec.md §3's 8-bit-per-cell downhill direction mask: for
// each cell, which of the 8 neighbours (offsets.go) are strictly lower.
type DownhillMap struct {
	w   int
	dir [][8]bool
}

// ComputeDownhill builds a DownhillMap from m (spec.md §4.4).
func ComputeDownhill(m *mesh.Mesh) *DownhillMap {
	w := m.W
	dm := &DownhillMap{w: w, dir: make([][8]bool, w*w)}
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			z := m.GetZ(x, y)
			var mask [8]bool
			for d, o := range Offsets {
				mask[d] = m.GetZ(x+o[0], y+o[1]) < z
			}
			dm.dir[y*w+x] = mask
		}
	}
	return dm
}

// Directions returns the 8-entry downhill mask for (x,y). Out-of-bounds
// coordinates return an all-false mask.
func (dm *DownhillMap) Directions(x, y int) [8]bool {
	if x < 0 || x >= dm.w || y < 0 || y >= dm.w {
		return [8]bool{}
	}
	return dm.dir[y*dm.w+x]
}

// HasDownhill reports whether cell (x,y) has any downhill neighbour.
func (dm *DownhillMap) HasDownhill(x, y int) bool {
	for _, v := range dm.Directions(x, y) {
		if v {
			return true
		}
	}
	return false
}

// AllCellsHaveDownhill is spec.md §4.4's all_cells_have_downhill: the
// conjunction, over every cell, of "any direction is true".
func (dm *DownhillMap) AllCellsHaveDownhill() bool {
	for y := 0; y < dm.w; y++ {
		for x := 0; x < dm.w; x++ {
			if !dm.HasDownhill(x, y) {
				return false
			}
		}
	}
	return true
}

// Pits returns the coordinates of every cell with no downhill neighbour
// (spec.md §4.6 step 2).
func (dm *DownhillMap) Pits() [][2]int {
	var pits [][2]int
	for y := 0; y < dm.w; y++ {
		for x := 0; x < dm.w; x++ {
			if !dm.HasDownhill(x, y) {
				pits = append(pits, [2]int{x, y})
			}
		}
	}
	return pits
}
