package mandel

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate_ReferencePoints(t *testing.T) {
	tests := []struct {
		name        string
		x, y        float64
		maxIter     int
		wantIter    int
		wantBounded bool
	}{
		{"main cardioid", -0.5, 0, 100, 100, true},
		{"origin", 0, 0, 100, 100, true},
		{"tip of the needle", -2, 0, 100, 100, true},
		{"far corner escapes at once", 2, 2, 100, 0, false},
		{"real axis at 1", 1, 0, 100, 2, false},
		{"zero iterations", 2, 2, 0, 0, true},
		{"zero iterations inside", -0.5, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.x, tt.y, tt.maxIter)
			if got.Iterations != tt.wantIter {
				t.Errorf("Iterations = %d, want %d", got.Iterations, tt.wantIter)
			}
			if got.IsBounded != tt.wantBounded {
				t.Errorf("IsBounded = %v, want %v", got.IsBounded, tt.wantBounded)
			}
			if got.IsBounded != (got.Iterations == tt.maxIter) {
				t.Errorf("IsBounded = %v with %d/%d iterations", got.IsBounded, got.Iterations, tt.maxIter)
			}
			if got.IsBounded && got.SmoothValue != float64(got.Iterations) {
				t.Errorf("SmoothValue = %v, want %d for bounded point", got.SmoothValue, got.Iterations)
			}
		})
	}
}

func TestEvaluate_SmoothValue(t *testing.T) {
	got := Evaluate(2, 2, 50)

	// z1 = 2+2i escapes with |z|² = 8.
	want := 1 - math.Log(math.Log(math.Sqrt(8))/math.Ln2)/math.Ln2
	if math.Abs(got.SmoothValue-want) > 1e-12 {
		t.Errorf("SmoothValue = %v, want %v", got.SmoothValue, want)
	}

	for _, c := range [][2]float64{{0.3, 0.5}, {-0.75, 0.11}, {0.26, 0}, {-1.5, 0.5}, {10, -10}} {
		r := Evaluate(c[0], c[1], 500)
		if r.IsBounded {
			continue
		}
		if math.IsNaN(r.SmoothValue) || math.IsInf(r.SmoothValue, 0) {
			t.Errorf("Evaluate(%v) SmoothValue = %v", c, r.SmoothValue)
		}
		if r.SmoothValue >= float64(r.Iterations+1) {
			t.Errorf("Evaluate(%v) SmoothValue = %v, want < %d", c, r.SmoothValue, r.Iterations+1)
		}
	}
}

func TestMapPixel_Default(t *testing.T) {
	tests := []struct {
		px, py float64
		wx, wy float64
	}{
		{0, 0, -2, -2},
		{2, 2, 0, 0},
		{4, 4, 2, 2},
		{1, 3, -1, 1},
	}
	for _, tt := range tests {
		x, y := MapPixel(tt.px, tt.py, 4, 4, nil)
		if x != tt.wx || y != tt.wy {
			t.Errorf("MapPixel(%v, %v) = (%v, %v), want (%v, %v)", tt.px, tt.py, x, y, tt.wx, tt.wy)
		}
	}
}

func TestMapPixel_CanonicalViewportMatchesDefault(t *testing.T) {
	vp := DefaultViewport(37, 23)
	for py := 0; py < vp.Height; py++ {
		for px := 0; px < vp.Width; px++ {
			x1, y1 := MapPixel(float64(px), float64(py), vp.Width, vp.Height, nil)
			x2, y2 := MapPixel(float64(px), float64(py), vp.Width, vp.Height, &vp)
			if math.Abs(x1-x2) > 1e-12 || math.Abs(y1-y2) > 1e-12 {
				t.Fatalf("pixel (%d,%d): default (%v,%v), viewport (%v,%v)", px, py, x1, y1, x2, y2)
			}
		}
	}
}

func TestMapPixel_Viewport(t *testing.T) {
	vp := Viewport{CenterX: -0.75, CenterY: 0.1, Zoom: 0.025, Width: 100, Height: 100}

	x, y := MapPixel(50, 50, 100, 100, &vp)
	if x != -0.75 || y != 0.1 {
		t.Errorf("center = (%v, %v), want (-0.75, 0.1)", x, y)
	}

	x, y = MapPixel(0, 0, 100, 100, &vp)
	if math.Abs(x-(-0.8)) > 1e-12 || math.Abs(y-0.05) > 1e-12 {
		t.Errorf("corner = (%v, %v), want (-0.8, 0.05)", x, y)
	}
}

func TestViewport_Validate(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		ok   bool
	}{
		{"default", DefaultViewport(10, 10), true},
		{"zero zoom", Viewport{Width: 10, Height: 10}, false},
		{"negative zoom", Viewport{Zoom: -1, Width: 10, Height: 10}, false},
		{"nan zoom", Viewport{Zoom: math.NaN(), Width: 10, Height: 10}, false},
		{"zero width", Viewport{Zoom: 1, Height: 10}, false},
		{"negative height", Viewport{Zoom: 1, Width: 10, Height: -1}, false},
		{"nan center", Viewport{CenterX: math.NaN(), Zoom: 1, Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		err := tt.vp.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidViewport", tt.name, err)
		}
	}
}

func TestRegion_Viewport(t *testing.T) {
	vp := SeahorseValley.Viewport(200, 100)
	if math.Abs(vp.CenterX-(-0.75)) > 1e-12 || math.Abs(vp.CenterY-0.1) > 1e-12 {
		t.Errorf("center = (%v, %v), want (-0.75, 0.1)", vp.CenterX, vp.CenterY)
	}
	if math.Abs(vp.Zoom-0.025) > 1e-12 {
		t.Errorf("Zoom = %v, want 0.025", vp.Zoom)
	}
	if vp.Width != 200 || vp.Height != 100 {
		t.Errorf("size = %dx%d, want 200x100", vp.Width, vp.Height)
	}
}

func TestPresetByName(t *testing.T) {
	p, ok := PresetByName("full set")
	if !ok {
		t.Fatal("preset \"full set\" not found")
	}
	if p.CenterX != -0.5 || p.Zoom != 1 {
		t.Errorf("Full Set = %+v", p)
	}

	if _, ok := PresetByName("seahorse VALLEY"); !ok {
		t.Error("landmark preset not found")
	}
	if _, ok := PresetByName("nowhere"); ok {
		t.Error("unknown preset found")
	}

	for _, p := range Presets() {
		if err := p.Viewport(8, 8).Validate(); err != nil {
			t.Errorf("preset %q: %v", p.Name, err)
		}
	}
}
