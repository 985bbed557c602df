package mandel

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTileSize is the edge of the tiles scanned by the sequential path.
const DefaultTileSize = 50

// Request describes one render.
type Request struct {
	// Size, when positive, renders a Size x Size image and overrides the
	// viewport dimensions.
	Size          int
	Viewport      Viewport
	Scheme        ColorScheme
	MaxIterations int
	UseParallel   bool
	// Smooth colors escaped points by their continuous iteration count.
	Smooth bool
}

func (r Request) job() (job, error) {
	vp := r.Viewport
	if r.Size > 0 {
		vp = vp.Sized(r.Size, r.Size)
	}
	if err := vp.Validate(); err != nil {
		return job{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if r.MaxIterations < 0 {
		return job{}, fmt.Errorf("%w: max iterations %d", ErrInvalidRequest, r.MaxIterations)
	}
	if r.Scheme.Gradient == nil {
		return job{}, fmt.Errorf("%w: color scheme %q has no gradient", ErrInvalidRequest, r.Scheme.Name)
	}
	return job{
		Width:         vp.Width,
		Height:        vp.Height,
		MaxIterations: r.MaxIterations,
		Viewport:      vp,
		Scheme:        r.Scheme,
		Smooth:        r.Smooth,
	}, nil
}

// Stats describes a completed render.
type Stats struct {
	Strategy Strategy
	Workers  int
	Pixels   int
	Elapsed  time.Duration
}

// PointsPerSecond is the evaluation throughput of the render.
func (s Stats) PointsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Pixels) / s.Elapsed.Seconds()
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers sets the number of compute units for parallel renders.
// 0 uses the number of CPUs; a negative value makes every render sequential.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithTileSize sets the tile edge of the sequential path.
func WithTileSize(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.tileSize = n
		}
	}
}

// WithProgressEvery sets how many rows a compute unit finishes between
// progress events.
func WithProgressEvery(k int) Option {
	return func(r *Renderer) {
		if k > 0 {
			r.progressEvery = k
		}
	}
}

// Renderer drives renders. At most one render is active at a time; starting
// another discards the active one first.
type Renderer struct {
	workers       int
	tileSize      int
	progressEvery int

	newPool func(size, progressEvery int) (*Pool, error)

	mu     sync.Mutex
	active *Handle
	seq    atomic.Uint64
}

// NewRenderer returns a Renderer with the given options applied.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		tileSize:      DefaultTileSize,
		progressEvery: DefaultProgressEvery,
		newPool:       NewPool,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// StartRender discards any active render and starts req in the background.
// onProgress and onComplete may be nil; they are called from the render's
// goroutine and must not call back into the Renderer.
//
// A request that cannot be set up returns an error together with a handle
// in StateFailed; onComplete is never called for it.
func (r *Renderer) StartRender(ctx context.Context, req Request, onProgress ProgressFunc, onComplete CompleteFunc) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopActive()

	h := &Handle{
		id:         r.seq.Add(1),
		done:       make(chan struct{}),
		onProgress: onProgress,
		onComplete: onComplete,
	}

	j, err := req.job()
	if err != nil {
		h.err = err
		h.state.Store(int32(StateFailed))
		close(h.done)
		Logger().Warn("render rejected", "render", h.id, "err", err)
		return h, err
	}

	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.img = image.NewRGBA(image.Rect(0, 0, j.Width, j.Height))
	h.state.Store(int32(StateRunning))
	r.active = h

	Logger().Info("render started", "render", h.id,
		"width", j.Width, "height", j.Height, "iterations", j.MaxIterations,
		"scheme", j.Scheme.Name, "parallel", req.UseParallel)

	go r.run(ctx, h, j, req.UseParallel)
	return h, nil
}

// Cleanup cancels the active render, if any, and waits until its compute
// units are released. It is safe to call at any time.
func (r *Renderer) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopActive()
}

func (r *Renderer) stopActive() {
	if r.active == nil {
		return
	}
	r.active.Cancel()
	<-r.active.done
	r.active = nil
}

func (r *Renderer) run(ctx context.Context, h *Handle, j job, useParallel bool) {
	defer close(h.done)
	defer h.cancel()

	log := Logger().With("render", h.id)
	start := time.Now()

	var (
		strategy = StrategySequential
		workers  = 1
		err      error
	)
	if useParallel {
		strategy, workers, err = r.renderParallel(ctx, h, j)
	} else {
		err = r.renderSequential(ctx, h, j)
	}

	if err != nil {
		if isCancel(err) {
			h.err = fmt.Errorf("%w: %w", ErrRenderCancelled, err)
			h.state.Store(int32(StateCancelled))
			log.Info("render cancelled")
			return
		}
		h.err = err
		h.state.Store(int32(StateFailed))
		log.Error("render failed", "err", err)
		return
	}

	h.stats = Stats{
		Strategy: strategy,
		Workers:  workers,
		Pixels:   j.Width * j.Height,
		Elapsed:  time.Since(start),
	}
	log.Info("render completed",
		"strategy", h.stats.Strategy,
		"workers", h.stats.Workers,
		"elapsed", h.stats.Elapsed,
		"points_per_second", int64(h.stats.PointsPerSecond()))

	h.progress(100)
	h.state.Store(int32(StateCompleted))
	if h.onComplete != nil {
		h.onComplete()
	}
}

func (r *Renderer) renderParallel(ctx context.Context, h *Handle, j job) (Strategy, int, error) {
	log := Logger().With("render", h.id)

	pool, err := r.newPool(r.workers, r.progressEvery)
	if err != nil {
		log.Debug("no compute units, rendering sequentially", "err", err)
		return StrategySequential, 1, r.renderSequential(ctx, h, j)
	}
	defer pool.Close()

	err = pool.Render(ctx, j, h.img, h.progress)
	if err == nil {
		return StrategyParallel, pool.Size(), nil
	}
	if ctx.Err() != nil {
		return StrategyParallel, pool.Size(), ctx.Err()
	}

	log.Warn("parallel render failed, recomputing sequentially", "err", err)
	pool.Close()
	return StrategyFallback, 1, r.renderSequential(ctx, h, j)
}

// renderSequential scans the image tile by tile, reporting progress and
// yielding after each tile.
func (r *Renderer) renderSequential(ctx context.Context, h *Handle, j job) error {
	total := j.Width * j.Height
	finished := 0

	for _, t := range splitTiles(h.img.Bounds(), r.tileSize, r.tileSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for py := t.Min.Y; py < t.Max.Y; py++ {
			for px := t.Min.X; px < t.Max.X; px++ {
				x, y := MapPixel(float64(px), float64(py), j.Width, j.Height, &j.Viewport)
				res := Evaluate(x, y, j.MaxIterations)
				setPixel(h.img, px, py, Colorize(res, j.MaxIterations, j.Smooth, j.Scheme))
			}
		}
		finished += t.Dx() * t.Dy()
		h.progress(float64(finished) / float64(total) * 100)
		runtime.Gosched()
	}
	return nil
}

// Handle tracks one render.
type Handle struct {
	id     uint64
	img    *image.RGBA
	state  atomic.Int32
	done   chan struct{}
	cancel context.CancelFunc

	// Written by the render goroutine before done is closed.
	err   error
	stats Stats

	onProgress   ProgressFunc
	onComplete   CompleteFunc
	lastProgress float64
}

// progress forwards pct to the caller if it moves the render forward.
func (h *Handle) progress(pct float64) {
	if pct <= h.lastProgress {
		return
	}
	h.lastProgress = pct
	if h.onProgress != nil {
		h.onProgress(pct)
	}
}

// Cancel stops the render. Completed renders are unaffected.
func (h *Handle) Cancel() {
	if h.cancel != nil {
		h.cancel()
	}
}

// Done is closed when the render has stopped for any reason.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the render stops and returns its error, if any.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State is the current state of the render.
func (h *Handle) State() State { return State(h.state.Load()) }

// Image is the pixel buffer of the render. Its Pix holds width*height*4
// bytes of row-major RGBA. It is only fully populated once the render has
// completed, and is nil for renders that failed during setup.
func (h *Handle) Image() *image.RGBA { return h.img }

// Stats describes the render. It is zero until the render completed.
func (h *Handle) Stats() Stats {
	select {
	case <-h.done:
		return h.stats
	default:
		return Stats{}
	}
}
