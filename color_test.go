package mandel

import (
	"math"
	"testing"
)

func TestColor_BoundedIgnoresIterations(t *testing.T) {
	for _, s := range Schemes() {
		for _, iter := range []int{0, 1, 50, 100} {
			got := s.Color(true, iter, 100, float64(iter)/3, true)
			if got != s.InSet {
				t.Errorf("%s: bounded color at %d iterations = %v, want %v", s.Name, iter, got, s.InSet)
			}
		}
	}
}

func TestColor_LightSetDarkEscape(t *testing.T) {
	for _, s := range Schemes() {
		if s.InSet.R < 190 || s.InSet.G < 190 || s.InSet.B < 190 {
			t.Errorf("%s: in-set color %v is not light", s.Name, s.InSet)
		}
		dark := s.Color(false, 0, 100, 0, false)
		if dark.R > 32 || dark.G > 32 || dark.B > 32 {
			t.Errorf("%s: fastest escape color %v is not dark", s.Name, dark)
		}
	}
}

func TestColor_ZeroMaxIterations(t *testing.T) {
	for _, s := range Schemes() {
		got := s.Color(false, 0, 0, 0, false)
		if want := s.Gradient(0); got != want {
			t.Errorf("%s: Color with max 0 = %v, want %v", s.Name, got, want)
		}
		got = s.Color(false, 0, 0, math.NaN(), true)
		if want := s.Gradient(0); got != want {
			t.Errorf("%s: smooth Color with max 0 = %v, want %v", s.Name, got, want)
		}
	}
}

func TestColor_RatioClamped(t *testing.T) {
	for _, s := range Schemes() {
		if got, want := s.Color(false, 0, 10, 25, true), s.Gradient(1); got != want {
			t.Errorf("%s: over-range smooth = %v, want %v", s.Name, got, want)
		}
		if got, want := s.Color(false, 0, 10, -3, true), s.Gradient(0); got != want {
			t.Errorf("%s: negative smooth = %v, want %v", s.Name, got, want)
		}
	}
}

func TestColor_SmoothUsesSmoothValue(t *testing.T) {
	// 40/100 versus 80/100 on the grayscale ramp.
	if got := Classic.Color(false, 40, 100, 80, false); got != (RGB{20, 20, 20}) {
		t.Errorf("discrete = %v, want {20 20 20}", got)
	}
	if got := Classic.Color(false, 40, 100, 80, true); got != (RGB{40, 40, 40}) {
		t.Errorf("smooth = %v, want {40 40 40}", got)
	}
}

func TestColorize(t *testing.T) {
	r := Evaluate(2, 2, 50)
	if got := Colorize(r, 50, false, Classic); got != (RGB{0, 0, 0}) {
		t.Errorf("Colorize(escaped) = %v, want black", got)
	}
	r = Evaluate(0, 0, 50)
	if got := Colorize(r, 50, true, Fire); got != Fire.InSet {
		t.Errorf("Colorize(bounded) = %v, want %v", got, Fire.InSet)
	}
}

func TestSchemes_DistinctGradients(t *testing.T) {
	all := Schemes()
	if len(all) < 3 {
		t.Fatalf("len(Schemes()) = %d, want at least 3", len(all))
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].Gradient(1) == all[j].Gradient(1) {
				t.Errorf("%s and %s share gradient end %v", all[i].Name, all[j].Name, all[i].Gradient(1))
			}
		}
	}
}

func TestSchemeByName(t *testing.T) {
	s, ok := SchemeByName("ocean")
	if !ok || s.Name != "Ocean" {
		t.Errorf("SchemeByName(ocean) = %q, %v", s.Name, ok)
	}
	if _, ok := SchemeByName("plaid"); ok {
		t.Error("SchemeByName(plaid) found a scheme")
	}
}
