package renderer

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// funcTracer adapts a function to Tracer and counts calls
type funcTracer struct {
	mu    sync.Mutex
	calls int
	fn    func(x, y float64) core.Vec3
}

func (f *funcTracer) Trace(x, y float64) core.Vec3 {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(x, y)
}

func TestSupersampler_ConstantCorners(t *testing.T) {
	color := core.NewVec3(0.2, 0.4, 0.6)

	// A zero threshold forces every split; the average is still the constant
	for _, threshold := range []float64{0, 0.1} {
		for _, splits := range []int{0, 1, 3, 5} {
			tracer := &funcTracer{fn: func(x, y float64) core.Vec3 { return color }}
			ss := NewSupersampler(tracer, threshold)

			got := ss.ResolvePixel(0, 0, 1, 1, splits)
			if !vecNear(got, color, 1e-12) {
				t.Errorf("threshold=%g splits=%d: got %v, want %v", threshold, splits, got, color)
			}
		}
	}
}

func TestSupersampler_NoSplitBelowThreshold(t *testing.T) {
	color := core.NewVec3(0.5, 0.5, 0.5)
	tracer := &funcTracer{fn: func(x, y float64) core.Vec3 { return color }}
	ss := NewSupersampler(tracer, 0.1)

	got := ss.ResolvePixel(0, 0, 1, 1, 5)
	if got != color {
		t.Errorf("got %v, want %v", got, color)
	}
	if tracer.calls != 4 {
		t.Errorf("traced %d corners, want 4 (no subdivision)", tracer.calls)
	}
}

func TestSupersampler_SplitsOnEdge(t *testing.T) {
	// White to the right of x=0.3, black to the left
	edge := func(x, y float64) core.Vec3 {
		if x > 0.3 {
			return core.Gray(1)
		}
		return core.Vec3{}
	}

	tests := []struct {
		splits   int
		calls    int
		expected float64
	}{
		{0, 4, 0.5},
		{1, 4 + 16, 0.75},
		{2, 4 + 16 + 32, 0.625},
	}

	for _, tt := range tests {
		tracer := &funcTracer{fn: edge}
		ss := NewSupersampler(tracer, 0.1)

		got := ss.ResolvePixel(0, 0, 1, 1, tt.splits)
		if math.Abs(got.X-tt.expected) > 1e-12 {
			t.Errorf("splits=%d: got %v, want gray %f", tt.splits, got, tt.expected)
		}
		if tracer.calls != tt.calls {
			t.Errorf("splits=%d: traced %d corners, want %d", tt.splits, tracer.calls, tt.calls)
		}
	}
}

func TestCornerDifference(t *testing.T) {
	black, white := core.Vec3{}, core.Gray(1)

	// Only the right edge differs
	if d := cornerDifference(black, black, black, white); math.Abs(d-math.Sqrt(3)) > 1e-12 {
		t.Errorf("right edge difference = %f, want sqrt(3)", d)
	}
	if d := cornerDifference(black, black, white, white); math.Abs(d-math.Sqrt(3)) > 1e-12 {
		t.Errorf("left/right edge difference = %f, want sqrt(3)", d)
	}
	if d := cornerDifference(white, white, white, white); d != 0 {
		t.Errorf("constant corners difference = %f, want 0", d)
	}
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
