package mesh

import "github.com/aquilax/go-perlin"

// DetailNoise generates multi-octave Perlin noise, grounded on the
// teacher's geography/noise.go (PerlinGenerator wrapping
// aquilax/go-perlin.NewPerlin(alpha, beta, n, seed)).
type DetailNoise struct {
	p *perlin.Perlin
}

// NewDetailNoise creates a generator seeded independently of the pipeline
// RNG stream, so enabling/disabling surface detail never perturbs the
// sequence consumed by MeshSplitter/Erosion.
func NewDetailNoise(seed int64) *DetailNoise {
	return &DetailNoise{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (n *DetailNoise) noise2D(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}

// ApplySurfaceDetail adds bounded, additive multi-octave Perlin jitter to
// every cell of m and returns a fresh mesh. It is an explicitly optional
// domain-stack enrichment (SPEC_FULL.md DOMAIN STACK) — not part of
// spec.md's core algorithm — and MUST be applied before Erosion so Erosion
// still re-establishes the downhill-complete invariant afterward; it must
// never run after the final Erosion pass of an iteration.
func ApplySurfaceDetail(m *Mesh, n *DetailNoise, amplitude float64) *Mesh {
	if amplitude <= 0 {
		return m.Clone()
	}

	out := m.Clone()
	scaleFactor := 1.0 / float64(m.W)
	for y := 0; y < m.W; y++ {
		for x := 0; x < m.W; x++ {
			fx, fy := float64(x)*scaleFactor, float64(y)*scaleFactor
			n1 := n.noise2D(fx*2, fy*2)
			n2 := n.noise2D(fx*10, fy*10)
			variation := n1*amplitude + n2*amplitude*0.2
			out.SetZ(x, y, m.GetZ(x, y)+variation)
		}
	}
	return out
}
