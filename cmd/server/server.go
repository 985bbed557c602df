package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/marben/irpc"
	"github.com/spf13/cobra"

	mandel "github.com/marben/parallel_mandel"
	"github.com/marben/parallel_mandel/internal/wsproto"
)

type options struct {
	addr    string
	static  string
	workers int
	verbose bool
}

func mainCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve Mandelbrot renders over irpc on a WebSocket",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.addr, "addr", ":8080", "listen address")
	f.StringVar(&o.static, "static", "./static", "directory served at /")
	f.IntVar(&o.workers, "workers", 0, "compute units per render (0 = number of CPUs, negative = sequential only)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log render details")

	return cmd
}

func run(ctx context.Context, o *options) error {
	if o.verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	irpcServer := newIrpcServer(mandel.WithWorkers(o.workers))
	websocketListener, httpServer := webServer(ctx, o.addr, o.static)

	errc := make(chan error, 2)
	// httpServer provides index.html, main.wasm along with websocket endpoint
	go func() {
		log.Printf("listening on http://%s", o.addr)
		errc <- fmt.Errorf("httpServer: %w", httpServer.ListenAndServe())
	}()
	go func() {
		errc <- fmt.Errorf("irpcServer.Serve ws: %w", irpcServer.Serve(websocketListener))
	}()

	var err error
	select {
	case err = <-errc:
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
		err = errors.Join(err, serr)
	}
	if serr := irpcServer.Close(); serr != nil {
		err = errors.Join(err, serr)
	}
	return err
}

// newIrpcServer serves wsproto.RenderService. Every connection gets a session
// with its own renderer configured by opts.
func newIrpcServer(opts ...mandel.Option) *irpc.Server {
	renderer := newRenderService(opts...)

	// irpc server with onConnect hook to attach clients to their sessions
	irpcServer := irpc.NewServer(irpc.WithOnConnect(renderer.connect))
	irpcServer.AddService(wsproto.NewRenderServiceIrpcService(renderer))
	return irpcServer
}

// main is the entry point for the Mandelbrot server.
// Every WebSocket connection gets its own renderer; see renderService.
func main() {
	if err := mainCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("run: %+v", err)
	}
}
