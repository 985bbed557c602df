package mandel

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque color, 0-255 per channel.
type RGB struct {
	R, G, B uint8
}

// RGBA converts c to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ColorScheme maps evaluation results to colors. Points in the set get InSet;
// escaped points are colored by Gradient, which receives a ratio in [0,1]
// and is dark at 0.
type ColorScheme struct {
	Name     string
	InSet    RGB
	Gradient func(t float64) RGB
}

// Color returns the color of a point. With smooth set the gradient ratio is
// derived from smoothValue instead of the integer iteration count.
func (s ColorScheme) Color(isBounded bool, iterations, maxIterations int, smoothValue float64, smooth bool) RGB {
	if isBounded {
		return s.InSet
	}
	v := float64(iterations)
	if smooth {
		v = smoothValue
	}
	return s.Gradient(ratio(v, maxIterations))
}

// Colorize colors an evaluation result with s.
func Colorize(r EvaluationResult, maxIterations int, smooth bool, s ColorScheme) RGB {
	return s.Color(r.IsBounded, r.Iterations, maxIterations, r.SmoothValue, smooth)
}

func ratio(v float64, maxIterations int) float64 {
	if maxIterations <= 0 || math.IsNaN(v) {
		return 0
	}
	t := v / float64(maxIterations)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

func shade(v float64) uint8 {
	return uint8(math.Floor(v))
}

var (
	// Classic is a grayscale ramp with a near-white set.
	Classic = ColorScheme{
		Name:  "Classic",
		InSet: RGB{240, 240, 240},
		Gradient: func(t float64) RGB {
			v := shade(50 * t)
			return RGB{v, v, v}
		},
	}

	// Ocean ramps from black into deep blue with a light blue set.
	Ocean = ColorScheme{
		Name:  "Ocean",
		InSet: RGB{200, 220, 255},
		Gradient: func(t float64) RGB {
			return RGB{0, shade(50 * t), shade(100 * t)}
		},
	}

	// Fire ramps from black into dark red with a light yellow set.
	Fire = ColorScheme{
		Name:  "Fire",
		InSet: RGB{255, 250, 200},
		Gradient: func(t float64) RGB {
			s := math.Sqrt(t)
			return RGB{shade(150 * s), shade(50 * s), 0}
		},
	}

	// Rainbow cycles hue three times across the ramp while brightening.
	Rainbow = ColorScheme{
		Name:  "Rainbow",
		InSet: RGB{245, 245, 245},
		Gradient: func(t float64) RGB {
			h := math.Mod(t*3*360, 360)
			return fromColorful(colorful.Hsv(h, 0.85, 0.7*math.Sqrt(t)))
		},
	}

	// Dusk blends from night blue to violet in CIE-L*a*b*.
	Dusk = ColorScheme{
		Name:  "Dusk",
		InSet: RGB{250, 235, 245},
		Gradient: func(t float64) RGB {
			return fromColorful(duskFrom.BlendLab(duskTo, t))
		},
	}
)

var (
	duskFrom = colorful.Color{R: 0.02, G: 0.02, B: 0.06}
	duskTo   = colorful.Color{R: 0.55, G: 0.25, B: 0.60}
)

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

var schemes = []ColorScheme{Classic, Ocean, Fire, Rainbow, Dusk}

// Schemes lists the selectable color schemes.
func Schemes() []ColorScheme {
	out := make([]ColorScheme, len(schemes))
	copy(out, schemes)
	return out
}

// SchemeByName looks a scheme up by name, ignoring case.
func SchemeByName(name string) (ColorScheme, bool) {
	for _, s := range schemes {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return ColorScheme{}, false
}
