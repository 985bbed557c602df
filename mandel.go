// Package mandel computes and colors raster images of the Mandelbrot set.
//
// A render maps every pixel of a width x height image onto a Viewport of the
// complex plane, runs the escape-time iteration for it and colors the result
// with a ColorScheme. Renders are driven by a Renderer, which splits the image
// into row bands for a Pool of compute units or, when parallelism is disabled
// or fails, scans the image sequentially in tiles.
package mandel

import (
	"fmt"
	"math"
	"strings"
)

// Viewport is the part of the complex plane being rendered and the pixel
// dimensions it is rendered at.
//
// Zoom 1 spans [-2,2] on both axes around the center; smaller values magnify.
type Viewport struct {
	CenterX, CenterY float64
	Zoom             float64
	Width, Height    int
}

// DefaultViewport is the canonical [-2,2]x[-2,2] view.
func DefaultViewport(width, height int) Viewport {
	return Viewport{Zoom: 1, Width: width, Height: height}
}

// Validate reports whether the viewport can be rendered.
func (v Viewport) Validate() error {
	if !(v.Zoom > 0) || math.IsInf(v.Zoom, 0) {
		return fmt.Errorf("%w: zoom %v", ErrInvalidViewport, v.Zoom)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}
	if math.IsNaN(v.CenterX) || math.IsNaN(v.CenterY) {
		return fmt.Errorf("%w: center (%v, %v)", ErrInvalidViewport, v.CenterX, v.CenterY)
	}
	return nil
}

// Sized returns a copy of v rendered at width x height.
func (v Viewport) Sized(width, height int) Viewport {
	v.Width, v.Height = width, height
	return v
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport centers a viewport on the region, zoomed so that the larger side
// of the region fits the image.
func (r Region) Viewport(width, height int) Viewport {
	span := math.Max(r.Xmax-r.Xmin, r.Ymax-r.Ymin)
	return Viewport{
		CenterX: (r.Xmin + r.Xmax) / 2,
		CenterY: (r.Ymin + r.Ymax) / 2,
		Zoom:    span / 4,
		Width:   width,
		Height:  height,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Preset is a named starting view. Width and Height of the resulting
// Viewport are filled in by the caller.
type Preset struct {
	Name             string
	CenterX, CenterY float64
	Zoom             float64
}

// Viewport returns the preset rendered at width x height.
func (p Preset) Viewport(width, height int) Viewport {
	return Viewport{CenterX: p.CenterX, CenterY: p.CenterY, Zoom: p.Zoom, Width: width, Height: height}
}

func regionPreset(name string, r Region) Preset {
	v := r.Viewport(1, 1)
	return Preset{Name: name, CenterX: v.CenterX, CenterY: v.CenterY, Zoom: v.Zoom}
}

var presets = []Preset{
	{Name: "Full Set", CenterX: -0.5, CenterY: 0, Zoom: 1},
	{Name: "Spiral", CenterX: 0.275, CenterY: 0.007, Zoom: 0.01},
	{Name: "Valley", CenterX: -0.75, CenterY: 0.1, Zoom: 0.05},
	{Name: "Lightning", CenterX: -0.5533, CenterY: 0.6217, Zoom: 0.008},
	regionPreset("Seahorse Valley", SeahorseValley),
	regionPreset("Elephant Valley", ElephantValley),
	regionPreset("Spiral Minibrot", SpiralMinibrot),
	regionPreset("Triple Spiral", TripleSpiral),
	regionPreset("Valley of the Dragon", ValleyOfTheDragon),
	regionPreset("Minibrot in a Mini-Spiral", MinibrotInMiniSpiral),
}

// Presets lists the named starting views.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName looks a preset up by name, ignoring case.
func PresetByName(name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// MapPixel converts pixel (px, py) of a width x height image into a point of
// the complex plane. A nil viewport maps onto the canonical [-2,2]x[-2,2] view.
func MapPixel(px, py float64, width, height int, vp *Viewport) (x, y float64) {
	if vp == nil {
		return px/float64(width)*4 - 2, py/float64(height)*4 - 2
	}
	rng := 2 * vp.Zoom
	x = vp.CenterX + (px/float64(width)-0.5)*rng*2
	y = vp.CenterY + (py/float64(height)-0.5)*rng*2
	return x, y
}

// EvaluationResult is the escape-time outcome for one point.
type EvaluationResult struct {
	Iterations int
	IsBounded  bool
	// SmoothValue is the continuous iteration count for escaped points and
	// equals Iterations for bounded ones.
	SmoothValue float64
}

const escapeRadiusSquared = 4

// Evaluate runs z -> z² + c from z = 0 for c = (x0, y0).
//
// Iterations counts the steps whose result stayed within the escape radius,
// so a point that escapes on the first step has 0 iterations and a point that
// never escapes has maxIterations.
func Evaluate(x0, y0 float64, maxIterations int) EvaluationResult {
	var x, y, xSquared, ySquared float64
	for i := 0; i < maxIterations; i++ {
		y = 2*x*y + y0
		x = xSquared - ySquared + x0
		xSquared = x * x
		ySquared = y * y

		if escape := xSquared + ySquared; escape > escapeRadiusSquared {
			return EvaluationResult{
				Iterations:  i,
				SmoothValue: smooth(i, escape),
			}
		}
	}
	return EvaluationResult{
		Iterations:  maxIterations,
		IsBounded:   true,
		SmoothValue: float64(maxIterations),
	}
}

// smooth applies the continuous escape correction. escape is always > 4 here.
func smooth(iteration int, escape float64) float64 {
	return float64(iteration) + 1 - math.Log(math.Log(math.Sqrt(escape))/math.Ln2)/math.Ln2
}
