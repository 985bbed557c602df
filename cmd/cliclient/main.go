// cliclient asks a Mandelbrot server for one render and saves the image.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/marben/parallel_mandel/internal/cliflags"
	"github.com/marben/parallel_mandel/internal/imgfile"
	"github.com/marben/parallel_mandel/internal/wsproto"
)

type options struct {
	url        string
	preset     cliflags.PresetValue
	centerX    float64
	centerY    float64
	zoom       float64
	size       int
	scheme     cliflags.SchemeValue
	iterations int
	parallel   bool
	smooth     bool
	out        string
	timeout    time.Duration
}

func mainCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "cliclient",
		Short: "Request a render from a Mandelbrot server and save it",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.url, "url", "ws://localhost:8080"+wsproto.Path, "server WebSocket endpoint")
	f.Var(&o.preset, "preset", "named view, one of "+cliflags.PresetNames())
	f.Float64Var(&o.centerX, "center-x", -0.5, "real part of the view center")
	f.Float64Var(&o.centerY, "center-y", 0, "imaginary part of the view center")
	f.Float64Var(&o.zoom, "zoom", 1, "zoom factor; 1 spans [-2,2], smaller magnifies")
	f.IntVar(&o.size, "size", wsproto.DefaultSize, "edge of the square image in pixels")
	f.Var(&o.scheme, "scheme", "color scheme, one of "+cliflags.SchemeNames())
	f.IntVar(&o.iterations, "iterations", wsproto.DefaultIterations, "maximum iterations per point; 0 colors every point as bounded")
	f.BoolVar(&o.parallel, "parallel", true, "ask for a parallel render")
	f.BoolVar(&o.smooth, "smooth", false, "smooth coloring of escaped points")
	f.StringVar(&o.out, "out", "mandel.png", "output file, .png or .tif/.tiff")
	f.DurationVar(&o.timeout, "timeout", 5*time.Minute, "give up after this long")

	return cmd
}

func (o *options) request() wsproto.RenderRequest {
	rr := wsproto.RenderRequest{
		CenterX:    o.centerX,
		CenterY:    o.centerY,
		Zoom:       o.zoom,
		Size:       o.size,
		Scheme:     o.scheme.String(),
		Iterations: wsproto.Iterations(o.iterations),
		Parallel:   o.parallel,
		Smooth:     o.smooth,
	}
	if o.preset.IsSet() {
		rr.Preset = o.preset.Preset.Name
	}
	return rr
}

func run(ctx context.Context, o *options) error {
	if _, err := imgfile.FormatFor(o.out); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	log.Printf("requesting render from %s", o.url)
	res, err := wsproto.Fetch(ctx, o.url, o.request(), func(pct float64) {
		log.Printf("progress: %5.1f%%", pct)
	})
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	c := res.Reply
	log.Printf("rendered %dx%d (%s, %d workers) in %dms", c.Width, c.Height, c.Strategy, c.Workers, c.ElapsedMS)

	if err := imgfile.Save(o.out, res.Image); err != nil {
		return err
	}
	log.Printf("fully rendered file saved to %q", o.out)
	return nil
}

func main() {
	log.Printf("Starting CLI client...")
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}
