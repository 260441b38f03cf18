// Package mesh implements the square elevation grid (spec.md §4.2) and the
// fractal subdivision pass that refines it while preserving the downhill
// property (spec.md §4.3). It generalizes the teacher's flat Heightmap
// (internal/worldgen/geography/types.go: a row-major []float64 behind
// bounds-checked Get/Set) by adding an explicit out-of-bounds sentinel,
// min/max tracking, and an immutable rescale.
package mesh

// Mesh is a square grid of elevations, side W, plus a sentinel value
// returned for any out-of-bounds query (spec.md §3 "oob_z").
type Mesh struct {
	W    int
	z    []float64
	oobZ float64
}

// New creates a W×W mesh with every stored cell at 0 and the given
// out-of-bounds sentinel. Panics if W < 1, per spec.md §3 invariant.
func New(w int, oobZ float64) *Mesh {
	if w < 1 {
		panic("mesh: width must be >= 1")
	}
	return &Mesh{W: w, z: make([]float64, w*w), oobZ: oobZ}
}

// OOBZ returns the out-of-bounds sentinel elevation.
func (m *Mesh) OOBZ() float64 { return m.oobZ }

func (m *Mesh) inBounds(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.W
}

// GetZ returns z[x,y], or OOBZ() if (x,y) is out of bounds. Never panics.
func (m *Mesh) GetZ(x, y int) float64 {
	if !m.inBounds(x, y) {
		return m.oobZ
	}
	return m.z[y*m.W+x]
}

// SetZ sets z[x,y]. Panics if (x,y) is out of bounds — a programmer error
// per spec.md §7.
func (m *Mesh) SetZ(x, y int, v float64) {
	if !m.inBounds(x, y) {
		panic("mesh: SetZ out of bounds")
	}
	m.z[y*m.W+x] = v
}

// GetMinZ returns the minimum stored elevation. The mesh is always
// non-empty by construction, so this never operates on an empty set.
func (m *Mesh) GetMinZ() float64 {
	min := m.z[0]
	for _, v := range m.z[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// GetMaxZ returns the maximum stored elevation.
func (m *Mesh) GetMaxZ() float64 {
	max := m.z[0]
	for _, v := range m.z[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Scaler is the minimal capability Rescale needs; satisfied by
// internal/scale.Scale.
type Scaler interface {
	Apply(v float64) float64
}

// Rescale produces a new mesh of equal width with every stored cell
// remapped through s. OOBZ is rescaled too — see DESIGN.md for the
// rationale (an unscaled wall/cliff sentinel would silently stop bounding
// the terrain once the stored range moves).
func (m *Mesh) Rescale(s Scaler) *Mesh {
	out := &Mesh{W: m.W, z: make([]float64, len(m.z)), oobZ: s.Apply(m.oobZ)}
	for i, v := range m.z {
		out.z[i] = s.Apply(v)
	}
	return out
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{W: m.W, z: make([]float64, len(m.z)), oobZ: m.oobZ}
	copy(out.z, m.z)
	return out
}
