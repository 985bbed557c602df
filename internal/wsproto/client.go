package wsproto

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/coder/websocket"
	"github.com/marben/irpc"
)

// ErrServer wraps errors reported by the server for a render.
var ErrServer = errors.New("server error")

// readLimit fits the PNG of the largest image a server renders.
const readLimit = MaxSize*MaxSize*4 + 1<<20

// Result is a finished render received from a server.
type Result struct {
	Image image.Image
	Reply RenderReply
}

// Client is a connection to a render server.
type Client struct {
	ep     *irpc.Endpoint
	render *RenderServiceIrpcClient
	sink   *sink
	cancel context.CancelFunc
}

// Dial connects to the server at url (ws:// or wss://, including the path).
func Dial(ctx context.Context, url string) (*Client, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c.SetReadLimit(readLimit)

	// the connection outlives ctx, which only bounds the handshake
	connCtx, cancel := context.WithCancel(context.Background())
	s := newSink()
	ep := irpc.NewEndpoint(websocket.NetConn(connCtx, c, websocket.MessageBinary),
		irpc.WithEndpointServices(NewProgressSinkIrpcService(s)))

	render, err := NewRenderServiceIrpcClient(ep)
	if err != nil {
		ep.Close()
		cancel()
		return nil, fmt.Errorf("render client: %w", err)
	}
	return &Client{ep: ep, render: render, sink: s, cancel: cancel}, nil
}

// Render asks the server for one render and waits for its image. progress
// may be nil. A Render call discards any render of this client still
// running on the server.
func (c *Client) Render(ctx context.Context, req RenderRequest, progress func(float64)) (*Result, error) {
	session, err := c.sink.session(ctx, c.ep.Context())
	if err != nil {
		return nil, err
	}
	c.sink.setProgress(progress)

	reply, err := c.render.Render(ctx, session, req)
	if err != nil {
		if ctx.Err() != nil || c.ep.Context().Err() != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}

	img, err := png.Decode(bytes.NewReader(reply.PNG))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Result{Image: img, Reply: reply}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	defer c.cancel()
	return c.ep.Close()
}

// Fetch connects to url, asks for one render and waits for its image.
func Fetch(ctx context.Context, url string, req RenderRequest, progress func(float64)) (*Result, error) {
	c, err := Dial(ctx, url)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Render(ctx, req, progress)
}

// sink implements ProgressSink for a Client.
type sink struct {
	attached chan struct{}

	mu       sync.Mutex
	id       uint64
	progress func(float64)
}

func newSink() *sink {
	return &sink{attached: make(chan struct{})}
}

func (s *sink) Attach(_ context.Context, session uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.attached:
		return errors.New("already attached")
	default:
	}
	s.id = session
	close(s.attached)
	return nil
}

func (s *sink) Progress(_ context.Context, percent float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.progress != nil {
		s.progress(percent)
	}
	return nil
}

func (s *sink) setProgress(f func(float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = f
}

// session waits until the server attached the sink.
func (s *sink) session(ctx, epCtx context.Context) (uint64, error) {
	select {
	case <-s.attached:
		return s.id, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("waiting for session: %w", ctx.Err())
	case <-epCtx.Done():
		return 0, fmt.Errorf("waiting for session: %w", context.Cause(epCtx))
	}
}
