// mandel renders one view of the Mandelbrot set to an image file.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/parallel_mandel"
	"github.com/marben/parallel_mandel/internal/cliflags"
	"github.com/marben/parallel_mandel/internal/imgfile"
	"github.com/marben/parallel_mandel/internal/wsproto"
)

type options struct {
	size        int
	preset      cliflags.PresetValue
	centerX     float64
	centerY     float64
	zoom        float64
	scheme      cliflags.SchemeValue
	iterations  int
	parallel    bool
	workers     int
	smooth      bool
	supersample int
	annotate    bool
	out         string
	verbose     bool
}

func mainCmd() *cobra.Command {
	o := &options{scheme: cliflags.SchemeValue{Scheme: mandel.Classic}}

	cmd := &cobra.Command{
		Use:   "mandel",
		Short: "Render the Mandelbrot set to a PNG or TIFF file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return run(cmd.Context(), o)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.size, "size", 800, "edge of the square image in pixels")
	f.Var(&o.preset, "preset", "named view, one of "+cliflags.PresetNames())
	f.Float64Var(&o.centerX, "center-x", -0.5, "real part of the view center")
	f.Float64Var(&o.centerY, "center-y", 0, "imaginary part of the view center")
	f.Float64Var(&o.zoom, "zoom", 1, "zoom factor; 1 spans [-2,2], smaller magnifies")
	f.Var(&o.scheme, "scheme", "color scheme, one of "+cliflags.SchemeNames())
	f.IntVar(&o.iterations, "iterations", 256, "maximum iterations per point")
	f.BoolVar(&o.parallel, "parallel", true, "split the render across compute units")
	f.IntVar(&o.workers, "workers", 0, "compute units for parallel renders (0 = number of CPUs)")
	f.BoolVar(&o.smooth, "smooth", false, "smooth coloring of escaped points")
	f.IntVar(&o.supersample, "supersample", 1, "render at N times the size and downscale")
	f.BoolVar(&o.annotate, "annotate", false, "draw the view parameters onto the image")
	f.StringVar(&o.out, "out", "", "output file, .png or .tif/.tiff (default out/<timestamp>.png)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log render details")

	cmd.MarkFlagsMutuallyExclusive("preset", "center-x")
	cmd.MarkFlagsMutuallyExclusive("preset", "center-y")
	cmd.MarkFlagsMutuallyExclusive("preset", "zoom")

	return cmd
}

func (o *options) request() (mandel.Request, error) {
	if o.supersample < 1 {
		return mandel.Request{}, fmt.Errorf("--supersample must be at least 1, got %d", o.supersample)
	}
	if o.size <= 0 {
		return mandel.Request{}, fmt.Errorf("--size must be positive, got %d", o.size)
	}

	if o.size > wsproto.MaxSize/o.supersample {
		return mandel.Request{}, fmt.Errorf("--size %d with --supersample %d exceeds %d pixels per edge", o.size, o.supersample, wsproto.MaxSize)
	}

	size := o.size * o.supersample
	vp := mandel.Viewport{CenterX: o.centerX, CenterY: o.centerY, Zoom: o.zoom, Width: size, Height: size}
	if o.preset.IsSet() {
		vp = o.preset.Preset.Viewport(size, size)
	}

	return mandel.Request{
		Size:          size,
		Viewport:      vp,
		Scheme:        o.scheme.Scheme,
		MaxIterations: o.iterations,
		UseParallel:   o.parallel,
		Smooth:        o.smooth,
	}, nil
}

func run(ctx context.Context, o *options) error {
	if o.verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	out := o.out
	if out == "" {
		out = imgfile.TimestampName("out", time.Now(), imgfile.PNG)
	}
	if _, err := imgfile.FormatFor(out); err != nil {
		return err
	}

	req, err := o.request()
	if err != nil {
		return err
	}

	workers := o.workers
	if !o.parallel {
		workers = -1
	}
	r := mandel.NewRenderer(mandel.WithWorkers(workers))
	defer r.Cleanup()

	nextLog := 10.0
	h, err := r.StartRender(ctx, req, func(pct float64) {
		if pct >= nextLog {
			log.Printf("rendering: %3.0f%%", pct)
			for nextLog <= pct {
				nextLog += 10
			}
		}
	}, nil)
	if err != nil {
		return fmt.Errorf("start render: %w", err)
	}
	if err := h.Wait(ctx); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	stats := h.Stats()
	log.Printf("rendered %dx%d (%s, %d workers) in %v, %.0f points/s",
		req.Viewport.Width, req.Viewport.Height, stats.Strategy, stats.Workers,
		stats.Elapsed.Round(time.Millisecond), stats.PointsPerSecond())

	img := imgfile.Downscale(h.Image(), o.supersample)
	if o.annotate {
		imgfile.Annotate(img, imgfile.Banner(req.Viewport, req.Scheme.Name, req.MaxIterations))
	}

	if err := imgfile.Save(out, img); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	log.Printf("saved %q", out)
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
