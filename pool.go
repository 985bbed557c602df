package mandel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultProgressEvery is the number of rows a unit computes between
// progress events.
const DefaultProgressEvery = 10

// progressCap bounds the reported progress until every band has landed.
const progressCap = 99

// job is one render as seen by the pool.
type job struct {
	Width, Height int
	MaxIterations int
	Viewport      Viewport
	Scheme        ColorScheme
	Smooth        bool
}

// unitRequest is what a compute unit receives for one render.
type unitRequest struct {
	ctx context.Context

	Generation    uint64
	WorkerID      int
	Band          RowBand
	Width, Height int
	MaxIterations int
	Viewport      Viewport
}

func (r unitRequest) validate() error {
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("image size %dx%d", r.Width, r.Height)
	case r.MaxIterations < 0:
		return fmt.Errorf("max iterations %d", r.MaxIterations)
	case r.Band.StartX < 0 || r.Band.StartY < 0 ||
		r.Band.EndX > r.Width || r.Band.EndY > r.Height ||
		r.Band.StartX > r.Band.EndX || r.Band.StartY > r.Band.EndY:
		return fmt.Errorf("band %v outside %dx%d", r.Band.Rect(), r.Width, r.Height)
	}
	return r.Viewport.Validate()
}

type eventKind int

const (
	eventProgress eventKind = iota
	eventComplete
)

// unitEvent is the only thing a unit sends back. Every event carries the
// generation of the render it belongs to.
type unitEvent struct {
	Kind            eventKind
	Generation      uint64
	WorkerID        int
	PixelsCompleted int

	// Set on eventComplete only.
	Records []pixelRecord
	Err     error
}

// pixelRecord is one evaluated pixel. The point is bounded when Iterations
// equals the render's max iterations.
type pixelRecord struct {
	PX, PY     int
	Iterations int
	Smooth     float64
}

// Pool owns a fixed set of compute units. Each Render dispatches exactly one
// row band to every unit and assembles their results into an image.
//
// Units share nothing with each other. Only the goroutine running Render
// writes into the image, after a unit's completion event arrived.
type Pool struct {
	size          int
	progressEvery int

	inboxes []chan unitRequest
	events  chan unitEvent

	generation atomic.Uint64
	render     sync.Mutex

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	// fault, when set, is consulted by a unit after computing its band.
	fault func(unitRequest) error
}

// NewPool starts size compute units. A size of 0 uses the number of CPUs.
// progressEvery <= 0 uses DefaultProgressEvery.
func NewPool(size, progressEvery int) (*Pool, error) {
	if size == 0 {
		size = max(runtime.NumCPU(), 1)
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrNoUnits, size)
	}
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}

	p := &Pool{
		size:          size,
		progressEvery: progressEvery,
		inboxes:       make([]chan unitRequest, size),
		events:        make(chan unitEvent, size*4),
		done:          make(chan struct{}),
	}
	for i := range p.inboxes {
		p.inboxes[i] = make(chan unitRequest)
	}

	p.wg.Add(size)
	for i := range size {
		go p.unit(i)
	}
	return p, nil
}

// Size is the number of compute units.
func (p *Pool) Size() int { return p.size }

// Close releases all units and waits for them to exit. It is safe to call
// more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.done) })
	p.wg.Wait()
}

func (p *Pool) closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *Pool) unit(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case req := <-p.inboxes[id]:
			p.run(req)
		}
	}
}

func (p *Pool) run(req unitRequest) {
	records, err := p.safeCompute(req)
	p.post(req.ctx, unitEvent{
		Kind:            eventComplete,
		Generation:      req.Generation,
		WorkerID:        req.WorkerID,
		PixelsCompleted: len(records),
		Records:         records,
		Err:             err,
	})
}

func (p *Pool) safeCompute(req unitRequest) (records []pixelRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("unit panicked: %v", r)
		}
	}()
	return p.compute(req)
}

func (p *Pool) compute(req unitRequest) ([]pixelRecord, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	b := req.Band
	width := b.EndX - b.StartX
	records := make([]pixelRecord, 0, b.Pixels())

	rows := 0
	for py := b.StartY; py < b.EndY; py++ {
		if err := req.ctx.Err(); err != nil {
			return nil, err
		}
		for px := b.StartX; px < b.EndX; px++ {
			x, y := MapPixel(float64(px), float64(py), req.Width, req.Height, &req.Viewport)
			r := Evaluate(x, y, req.MaxIterations)
			records = append(records, pixelRecord{PX: px, PY: py, Iterations: r.Iterations, Smooth: r.SmoothValue})
		}

		rows++
		if rows%p.progressEvery == 0 || py == b.EndY-1 {
			p.post(req.ctx, unitEvent{
				Kind:            eventProgress,
				Generation:      req.Generation,
				WorkerID:        req.WorkerID,
				PixelsCompleted: rows * width,
			})
		}
	}

	if p.fault != nil {
		if err := p.fault(req); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// post delivers ev unless the render it belongs to is gone. An event may
// still be buffered after cancellation; Render drops it by generation.
func (p *Pool) post(ctx context.Context, ev unitEvent) {
	select {
	case p.events <- ev:
	case <-ctx.Done():
	case <-p.done:
	}
}

// Render computes j into img, reporting progress as it goes. It returns a
// *UnitError if any unit fails; img then holds the bands that completed
// before the failure and nothing of the failed one.
//
// Calls to Render on one pool are serialized.
func (p *Pool) Render(ctx context.Context, j job, img *image.RGBA, progress ProgressFunc) error {
	p.render.Lock()
	defer p.render.Unlock()

	if p.closed() {
		return ErrPoolClosed
	}
	if progress == nil {
		progress = func(float64) {}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen := p.generation.Add(1)
	log := Logger().With("render", gen)

	bands := SplitRows(j.Width, j.Height, p.size)
	state := newProgressState(j.Width * j.Height)

	for id, band := range bands {
		req := unitRequest{
			ctx:           ctx,
			Generation:    gen,
			WorkerID:      id,
			Band:          band,
			Width:         j.Width,
			Height:        j.Height,
			MaxIterations: j.MaxIterations,
			Viewport:      j.Viewport,
		}
		select {
		case p.inboxes[id] <- req:
			log.Debug("band dispatched", "worker", id, "rows", band.Rows())
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return ErrPoolClosed
		}
	}

	for pending := len(bands); pending > 0; {
		var ev unitEvent
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return ErrPoolClosed
		case ev = <-p.events:
		}

		if ev.Generation != gen {
			log.Debug("stale event dropped", "worker", ev.WorkerID, "from", ev.Generation)
			continue
		}

		switch ev.Kind {
		case eventProgress:
			if pct, ok := state.update(ev.WorkerID, ev.PixelsCompleted); ok {
				progress(pct)
			}
		case eventComplete:
			if ev.Err != nil {
				err := &UnitError{WorkerID: ev.WorkerID, Generation: gen, Err: ev.Err}
				log.Warn("unit failed", "worker", ev.WorkerID, "err", ev.Err)
				return err
			}
			paint(img, ev.Records, j)
			pending--
			log.Debug("band landed", "worker", ev.WorkerID, "pixels", len(ev.Records), "pending", pending)
			if pct, ok := state.update(ev.WorkerID, len(ev.Records)); ok && pending > 0 {
				progress(pct)
			}
		}
	}

	progress(100)
	return nil
}

// progressState is the per-render map of worker to pixels completed.
type progressState struct {
	total     int
	completed map[int]int
	last      float64
}

func newProgressState(total int) *progressState {
	return &progressState{total: total, completed: make(map[int]int)}
}

// update records the pixels a worker has finished and returns the new
// overall percentage, capped below 100, if it increased.
func (s *progressState) update(worker, pixels int) (float64, bool) {
	s.completed[worker] = pixels
	if s.total <= 0 {
		return 0, false
	}

	sum := 0
	for _, n := range s.completed {
		sum += n
	}
	pct := min(float64(sum)/float64(s.total)*100, progressCap)
	if pct <= s.last {
		return s.last, false
	}
	s.last = pct
	return pct, true
}

func paint(img *image.RGBA, records []pixelRecord, j job) {
	for _, r := range records {
		c := j.Scheme.Color(r.Iterations == j.MaxIterations, r.Iterations, j.MaxIterations, r.Smooth, j.Smooth)
		setPixel(img, r.PX, r.PY, c)
	}
}

func setPixel(img *image.RGBA, x, y int, c RGB) {
	i := img.PixOffset(x, y)
	s := img.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, 255
}

// isCancel reports whether err comes from a cancelled or expired context.
func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
