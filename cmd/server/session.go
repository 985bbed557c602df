package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/marben/irpc"

	mandel "github.com/marben/parallel_mandel"
	"github.com/marben/parallel_mandel/internal/imgfile"
	"github.com/marben/parallel_mandel/internal/wsproto"
)

var (
	errUnknownSession = errors.New("unknown session")
	errDiscarded      = errors.New("render discarded by a newer request")
)

// renderService implements wsproto.RenderService. Every connection gets a
// session with its own renderer.
type renderService struct {
	opts []mandel.Option

	mu       sync.Mutex
	sessions map[uint64]*session
	nextID   uint64
}

func newRenderService(opts ...mandel.Option) *renderService {
	return &renderService{opts: opts, sessions: make(map[uint64]*session)}
}

// connect runs the session of a new connection until the connection closes.
func (rs *renderService) connect(ep *irpc.Endpoint) {
	sink, err := wsproto.NewProgressSinkIrpcClient(ep)
	if err != nil {
		log.Printf("err: new progress sink client: %v", err)
		ep.Close()
		return
	}

	s := rs.open(sink)
	defer rs.close(s)

	if err := sink.Attach(ep.Context(), s.id); err != nil {
		log.Printf("err: attach session %d on %q: %v", s.id, ep.RemoteAddr(), err)
		ep.Close()
		return
	}
	<-ep.Context().Done()
	log.Printf("connection from %q closed: %v", ep.RemoteAddr(), context.Cause(ep.Context()))
}

func (rs *renderService) open(sink wsproto.ProgressSink) *session {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.nextID++
	s := &session{id: rs.nextID, sink: sink, renderer: mandel.NewRenderer(rs.opts...)}
	rs.sessions[s.id] = s
	return s
}

func (rs *renderService) close(s *session) {
	rs.mu.Lock()
	delete(rs.sessions, s.id)
	rs.mu.Unlock()
	s.renderer.Cleanup()
}

// Render implements wsproto.RenderService.
func (rs *renderService) Render(ctx context.Context, id uint64, rr wsproto.RenderRequest) (wsproto.RenderReply, error) {
	rs.mu.Lock()
	s, ok := rs.sessions[id]
	rs.mu.Unlock()
	if !ok {
		return wsproto.RenderReply{}, fmt.Errorf("%w %d", errUnknownSession, id)
	}
	return s.render(ctx, rr)
}

// session serves the render requests of one connection. Each request
// discards the render started by the previous one.
type session struct {
	id       uint64
	sink     wsproto.ProgressSink
	renderer *mandel.Renderer

	mu sync.Mutex
	// forwarded is closed once the progress of the latest render has been
	// sent to the sink.
	forwarded chan struct{}
}

func (s *session) render(ctx context.Context, rr wsproto.RenderRequest) (wsproto.RenderReply, error) {
	h, forwarded, err := s.start(ctx, rr)
	if err != nil {
		return wsproto.RenderReply{}, err
	}

	<-h.Done()
	<-forwarded

	switch h.State() {
	case mandel.StateCompleted:
		data, err := imgfile.PNGBytes(h.Image())
		if err != nil {
			return wsproto.RenderReply{}, fmt.Errorf("encode image: %w", err)
		}
		b := h.Image().Bounds()
		return wsproto.NewReply(b.Dx(), b.Dy(), h.Stats(), data), nil
	case mandel.StateCancelled:
		if ctx.Err() == nil {
			return wsproto.RenderReply{}, errDiscarded
		}
	}
	return wsproto.RenderReply{}, h.Wait(ctx)
}

// start discards the running render and starts rr. The returned channel is
// closed after the last progress of the new render reached the sink.
func (s *session) start(ctx context.Context, rr wsproto.RenderRequest) (*mandel.Handle, <-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// progress of the discarded render must not interleave with ours
	s.renderer.Cleanup()
	if s.forwarded != nil {
		<-s.forwarded
	}

	req, err := rr.Request()
	if err != nil {
		return nil, nil, err
	}

	updates := make(chan float64, 1)
	h, err := s.renderer.StartRender(ctx, req, func(pct float64) {
		offer(updates, pct)
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	forwarded := make(chan struct{})
	s.forwarded = forwarded
	go func() {
		defer close(forwarded)
		s.forward(ctx, updates)
	}()
	go func() {
		// the renderer reports progress only until the handle is done
		<-h.Done()
		close(updates)
	}()
	return h, forwarded, nil
}

// forward sends progress to the sink until updates is closed.
func (s *session) forward(ctx context.Context, updates <-chan float64) {
	for pct := range updates {
		if err := s.sink.Progress(ctx, pct); err != nil {
			mandel.Logger().Debug("progress not delivered", "session", s.id, "err", err)
		}
	}
}

// offer replaces a pending update with pct, so a slow sink only ever
// receives the latest progress.
func offer(updates chan float64, pct float64) {
	for {
		select {
		case updates <- pct:
			return
		default:
		}
		select {
		case <-updates:
		default:
		}
	}
}
