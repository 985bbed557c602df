// Package wsproto defines the irpc services the render server and its
// clients offer each other over a WebSocket.
//
// The server serves RenderService. Every client serves a ProgressSink, which
// the server attaches to a session right after the connection is accepted.
// Render calls name that session; the server reports their progress to the
// session's sink and returns the PNG-encoded image in a RenderReply.
package wsproto

import (
	"fmt"

	mandel "github.com/marben/parallel_mandel"
)

// Path is the HTTP path of the WebSocket endpoint.
const Path = "/ws"

// Defaults applied to unset fields of a RenderRequest.
const (
	DefaultSize       = 800
	DefaultIterations = 256
	DefaultScheme     = "Classic"
)

// MaxSize bounds the edge of an image a client may ask for.
const MaxSize = 8192

// RenderRequest asks the server for one render. When Preset is set, the
// preset's center and zoom replace CenterX, CenterY and Zoom. A zero Zoom
// without a preset means 1. A nil Iterations means DefaultIterations; zero
// is a valid limit.
type RenderRequest struct {
	Preset     string
	CenterX    float64
	CenterY    float64
	Zoom       float64
	Size       int
	Scheme     string
	Iterations *int
	Parallel   bool
	Smooth     bool
}

// Iterations returns a pointer to n for RenderRequest.Iterations.
func Iterations(n int) *int { return &n }

// Request converts r into an engine request, applying defaults.
func (r RenderRequest) Request() (mandel.Request, error) {
	size := r.Size
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 || size > MaxSize {
		return mandel.Request{}, fmt.Errorf("%w: size %d out of range (1..%d)", mandel.ErrInvalidRequest, r.Size, MaxSize)
	}

	iterations := DefaultIterations
	if r.Iterations != nil {
		iterations = *r.Iterations
	}

	schemeName := r.Scheme
	if schemeName == "" {
		schemeName = DefaultScheme
	}
	scheme, ok := mandel.SchemeByName(schemeName)
	if !ok {
		return mandel.Request{}, fmt.Errorf("%w: unknown color scheme %q", mandel.ErrInvalidRequest, r.Scheme)
	}

	vp := mandel.Viewport{CenterX: r.CenterX, CenterY: r.CenterY, Zoom: r.Zoom}
	if vp.Zoom == 0 {
		vp.Zoom = 1
	}
	if r.Preset != "" {
		p, ok := mandel.PresetByName(r.Preset)
		if !ok {
			return mandel.Request{}, fmt.Errorf("%w: unknown preset %q", mandel.ErrInvalidRequest, r.Preset)
		}
		vp = p.Viewport(0, 0)
	}

	req := mandel.Request{
		Size:          size,
		Viewport:      vp.Sized(size, size),
		Scheme:        scheme,
		MaxIterations: iterations,
		UseParallel:   r.Parallel,
		Smooth:        r.Smooth,
	}
	if err := req.Viewport.Validate(); err != nil {
		return mandel.Request{}, fmt.Errorf("%w: %w", mandel.ErrInvalidRequest, err)
	}
	if req.MaxIterations < 0 {
		return mandel.Request{}, fmt.Errorf("%w: iterations %d", mandel.ErrInvalidRequest, req.MaxIterations)
	}
	return req, nil
}

// RenderReply describes a finished render and carries its image.
type RenderReply struct {
	Width     int
	Height    int
	Strategy  string
	Workers   int
	ElapsedMS int64
	PPS       float64
	// PNG is the encoded image.
	PNG []byte
}

// NewReply builds the reply for a completed render of the given size.
func NewReply(width, height int, s mandel.Stats, png []byte) RenderReply {
	return RenderReply{
		Width:     width,
		Height:    height,
		Strategy:  string(s.Strategy),
		Workers:   s.Workers,
		ElapsedMS: s.Elapsed.Milliseconds(),
		PPS:       s.PointsPerSecond(),
		PNG:       png,
	}
}
