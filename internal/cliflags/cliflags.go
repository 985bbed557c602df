// Package cliflags holds pflag values shared by the command line tools.
package cliflags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	mandel "github.com/marben/parallel_mandel"
)

// SchemeValue is a --scheme flag accepting any scheme name, ignoring case.
type SchemeValue struct {
	Scheme mandel.ColorScheme
}

var _ pflag.Value = (*SchemeValue)(nil)

func (v *SchemeValue) String() string { return v.Scheme.Name }

func (v *SchemeValue) Set(s string) error {
	scheme, ok := mandel.SchemeByName(s)
	if !ok {
		return fmt.Errorf("unknown scheme %q (want one of %s)", s, SchemeNames())
	}
	v.Scheme = scheme
	return nil
}

func (v *SchemeValue) Type() string { return "scheme" }

// PresetValue is a --preset flag. The zero value means no preset was chosen.
type PresetValue struct {
	Preset mandel.Preset
	set    bool
}

var _ pflag.Value = (*PresetValue)(nil)

func (v *PresetValue) String() string { return v.Preset.Name }

func (v *PresetValue) Set(s string) error {
	p, ok := mandel.PresetByName(s)
	if !ok {
		return fmt.Errorf("unknown preset %q (want one of %s)", s, PresetNames())
	}
	v.Preset, v.set = p, true
	return nil
}

func (v *PresetValue) Type() string { return "preset" }

// IsSet reports whether a preset was chosen.
func (v *PresetValue) IsSet() bool { return v.set }

// SchemeNames lists the scheme names for usage strings.
func SchemeNames() string {
	var names []string
	for _, s := range mandel.Schemes() {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

// PresetNames lists the preset names for usage strings.
func PresetNames() string {
	var names []string
	for _, p := range mandel.Presets() {
		names = append(names, fmt.Sprintf("%q", p.Name))
	}
	return strings.Join(names, ", ")
}
