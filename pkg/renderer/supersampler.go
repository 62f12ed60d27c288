package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer returns the clamped color seen through normalized image point (x, y)
type Tracer interface {
	Trace(x, y float64) core.Vec3
}

// Supersampler resolves a pixel footprint by adaptive quadtree refinement:
// corners that disagree by at least Threshold split the footprint in four
type Supersampler struct {
	tracer    Tracer
	threshold float64
}

// NewSupersampler creates a supersampler over tracer
func NewSupersampler(tracer Tracer, threshold float64) *Supersampler {
	return &Supersampler{tracer: tracer, threshold: threshold}
}

// ResolvePixel returns the averaged color over the footprint
// [left,right] x [bottom,top] with at most maxSplits levels of subdivision
func (s *Supersampler) ResolvePixel(left, bottom, right, top float64, maxSplits int) core.Vec3 {
	color, _ := s.resolve(left, bottom, right, top, maxSplits)
	return color
}

// resolve also reports how many corner traces it made. Shared corners of
// sibling quadrants are traced again.
func (s *Supersampler) resolve(left, bottom, right, top float64, maxSplits int) (core.Vec3, int) {
	bl := s.tracer.Trace(left, bottom)
	br := s.tracer.Trace(right, bottom)
	tl := s.tracer.Trace(left, top)
	tr := s.tracer.Trace(right, top)

	if maxSplits > 0 && cornerDifference(bl, br, tl, tr) >= s.threshold {
		midX := 0.5 * (left + right)
		midY := 0.5 * (bottom + top)
		maxSplits--

		c0, n0 := s.resolve(left, bottom, midX, midY, maxSplits)
		c1, n1 := s.resolve(midX, bottom, right, midY, maxSplits)
		c2, n2 := s.resolve(left, midY, midX, top, maxSplits)
		c3, n3 := s.resolve(midX, midY, right, top, maxSplits)

		return c0.Add(c1).Add(c2).Add(c3).Multiply(0.25), 4 + n0 + n1 + n2 + n3
	}

	return bl.Add(br).Add(tl).Add(tr).Multiply(0.25), 4
}

// cornerDifference is the largest color distance along the bottom, left and
// right edges of a footprint
func cornerDifference(bl, br, tl, tr core.Vec3) float64 {
	return max(
		bl.Subtract(br).Abs().Length(),
		bl.Subtract(tl).Abs().Length(),
		br.Subtract(tr).Abs().Length(),
	)
}
