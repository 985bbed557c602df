package main

import (
	"context"
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	mandel "github.com/marben/parallel_mandel"
	"github.com/marben/parallel_mandel/internal/wsproto"
)

func newTestServer(t *testing.T, static string) (*httptest.Server, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	l := NewWSListener(ctx, "test"+wsproto.Path)
	irpcServer := newIrpcServer(mandel.WithWorkers(3))
	go irpcServer.Serve(l)

	srv := httptest.NewServer(newMux(l, static))
	t.Cleanup(func() {
		irpcServer.Close()
		cancel()
		srv.Close()
	})
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + wsproto.Path
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestServer_Render(t *testing.T) {
	_, url := newTestServer(t, t.TempDir())
	ctx := testContext(t)

	var progress []float64
	res, err := wsproto.Fetch(ctx, url, wsproto.RenderRequest{
		Preset: "Full Set", Size: 48, Scheme: "rainbow", Iterations: wsproto.Iterations(80), Parallel: true, Smooth: true,
	}, func(p float64) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if b := res.Image.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("image bounds = %v, want 48x48", b)
	}
	if r := res.Reply; r.Width != 48 || r.Strategy != string(mandel.StrategyParallel) || r.Workers != 3 {
		t.Errorf("reply = %+v", r)
	}
	if len(progress) == 0 || progress[len(progress)-1] != 100 {
		t.Fatalf("progress = %v, want it to end at 100", progress)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] <= progress[i-1] {
			t.Fatalf("progress not increasing: %v", progress)
		}
	}
}

func TestServer_InvalidRequest(t *testing.T) {
	_, url := newTestServer(t, t.TempDir())
	ctx := testContext(t)

	_, err := wsproto.Fetch(ctx, url, wsproto.RenderRequest{Scheme: "sepia"}, nil)
	if !errors.Is(err, wsproto.ErrServer) {
		t.Errorf("Fetch() error = %v, want ErrServer", err)
	}
}

func TestServer_ZeroIterations(t *testing.T) {
	_, url := newTestServer(t, t.TempDir())
	ctx := testContext(t)

	res, err := wsproto.Fetch(ctx, url, wsproto.RenderRequest{Size: 8, Iterations: wsproto.Iterations(0)}, nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	// nothing escapes within zero steps
	want := color.RGBAModel.Convert(res.Image.At(0, 0))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := color.RGBAModel.Convert(res.Image.At(x, y)); c != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v everywhere", x, y, c, want)
			}
		}
	}
}

func TestServer_NewRequestDiscardsRunning(t *testing.T) {
	_, url := newTestServer(t, t.TempDir())
	ctx := testContext(t)

	c, err := wsproto.Dial(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	running := make(chan struct{})
	slowErr := make(chan error, 1)
	go func() {
		slow := wsproto.RenderRequest{CenterX: -0.5, Zoom: 0.4, Size: 400, Iterations: wsproto.Iterations(20000), Parallel: true}
		var once bool
		_, err := c.Render(ctx, slow, func(float64) {
			if !once {
				once = true
				close(running)
			}
		})
		slowErr <- err
	}()

	select {
	case <-running:
	case err := <-slowErr:
		t.Fatalf("slow render stopped before reporting progress: %v", err)
	}

	res, err := c.Render(ctx, wsproto.RenderRequest{Size: 20, Iterations: wsproto.Iterations(30)}, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r := res.Reply; r.Width != 20 || r.Height != 20 {
		t.Errorf("completed render is %dx%d, want the second request's 20x20", r.Width, r.Height)
	}
	if err := <-slowErr; !errors.Is(err, wsproto.ErrServer) || !strings.Contains(err.Error(), "discarded") {
		t.Errorf("slow Render() error = %v, want it discarded", err)
	}
}

func TestServer_GarbageClosesOnlyThatConnection(t *testing.T) {
	_, url := newTestServer(t, t.TempDir())
	ctx := testContext(t)

	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.CloseNow()

	// 0x7f is no packet type
	if err := c.Write(ctx, websocket.MessageBinary, []byte{0x7f}); err != nil {
		t.Fatal(err)
	}
	for {
		if _, _, err := c.Read(ctx); err != nil {
			if ctx.Err() != nil {
				t.Fatal("connection still open")
			}
			break
		}
	}

	if _, err := wsproto.Fetch(ctx, url, wsproto.RenderRequest{Size: 10}, nil); err != nil {
		t.Errorf("Fetch() on a new connection error = %v", err)
	}
}

func TestServer_Static(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>mandel</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv, _ := newTestServer(t, dir)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET / status = %d, want 200", resp.StatusCode)
	}
}
