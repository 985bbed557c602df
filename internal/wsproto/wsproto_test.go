package wsproto

import (
	"errors"
	"testing"
	"time"

	mandel "github.com/marben/parallel_mandel"
)

func TestRenderRequest_Defaults(t *testing.T) {
	req, err := RenderRequest{}.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if req.Size != DefaultSize || req.Viewport.Width != DefaultSize || req.Viewport.Height != DefaultSize {
		t.Errorf("size = %d (%dx%d), want %d", req.Size, req.Viewport.Width, req.Viewport.Height, DefaultSize)
	}
	if req.MaxIterations != DefaultIterations {
		t.Errorf("MaxIterations = %d, want %d", req.MaxIterations, DefaultIterations)
	}
	if req.Scheme.Name != DefaultScheme {
		t.Errorf("Scheme = %q, want %q", req.Scheme.Name, DefaultScheme)
	}
	if req.Viewport.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", req.Viewport.Zoom)
	}
}

func TestRenderRequest_Preset(t *testing.T) {
	req, err := RenderRequest{Preset: "valley", CenterX: 9, Zoom: 3, Size: 64, Scheme: "fire", Parallel: true, Smooth: true}.Request()
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if req.Viewport.CenterX != -0.75 || req.Viewport.CenterY != 0.1 || req.Viewport.Zoom != 0.05 {
		t.Errorf("viewport = %+v, want the Valley preset", req.Viewport)
	}
	if req.Scheme.Name != "Fire" || !req.UseParallel || !req.Smooth {
		t.Errorf("request = %+v", req)
	}
}

func TestRenderRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  RenderRequest
	}{
		{"negative size", RenderRequest{Size: -4}},
		{"too large", RenderRequest{Size: MaxSize + 1}},
		{"negative zoom", RenderRequest{Zoom: -1}},
		{"negative iterations", RenderRequest{Iterations: Iterations(-3)}},
		{"unknown scheme", RenderRequest{Scheme: "sepia"}},
		{"unknown preset", RenderRequest{Preset: "atlantis"}},
	}
	for _, tt := range tests {
		if _, err := tt.req.Request(); !errors.Is(err, mandel.ErrInvalidRequest) {
			t.Errorf("%s: Request() error = %v, want ErrInvalidRequest", tt.name, err)
		}
	}
}

func TestRenderRequest_Iterations(t *testing.T) {
	tests := []struct {
		name       string
		iterations *int
		want       int
	}{
		{"unset", nil, DefaultIterations},
		{"zero", Iterations(0), 0},
		{"explicit", Iterations(1200), 1200},
	}
	for _, tt := range tests {
		req, err := RenderRequest{Size: 8, Iterations: tt.iterations}.Request()
		if err != nil {
			t.Fatalf("%s: Request() error = %v", tt.name, err)
		}
		if req.MaxIterations != tt.want {
			t.Errorf("%s: MaxIterations = %d, want %d", tt.name, req.MaxIterations, tt.want)
		}
	}
}

func TestNewReply(t *testing.T) {
	r := NewReply(10, 20, mandel.Stats{Strategy: mandel.StrategyFallback, Workers: 1, Pixels: 200, Elapsed: 2 * time.Second}, []byte{1})
	if r.Width != 10 || r.Height != 20 || len(r.PNG) != 1 {
		t.Errorf("NewReply() = %+v", r)
	}
	if r.Strategy != "fallback" || r.ElapsedMS != 2000 || r.PPS != 100 {
		t.Errorf("NewReply() stats = %+v", r)
	}
}
