//go:build js && wasm

// webclient is a WASM client for the Mandelbrot render server. It reads the
// view from the page's query string, asks the server for a render and draws
// the result on the canvas.
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"syscall/js"

	"github.com/marben/parallel_mandel/internal/wsproto"
)

func main() {
	logScreenf("Starting WASM web client...")

	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketURL := proto + "://" + host + wsproto.Path

	q, err := url.ParseQuery(strings.TrimPrefix(loc.Get("search").String(), "?"))
	if err != nil {
		logFatalf("query: %v", err)
	}
	req, err := wsproto.RequestFromQuery(q)
	if err != nil {
		logFatalf("%v", err)
	}

	size := req.Size
	if size == 0 {
		size = wsproto.DefaultSize
	}
	initCanvas(size, size, "#3a3a6e")

	// Establish IRPC connection (Endpoint) over Websocket
	logScreenf("Connecting to Mandelbrot server at %s...", websocketURL)
	client, err := wsproto.Dial(context.Background(), websocketURL)
	if err != nil {
		logFatalf("connect: %v", err)
	}

	logScreenf("Requesting render...")
	res, err := client.Render(context.Background(), req, setProgress)
	if err != nil {
		logFatalf("render: %v", err)
	}
	client.Close()

	c := res.Reply
	logScreenf("Rendered %dx%d (%s, %d workers) in %dms", c.Width, c.Height, c.Strategy, c.Workers, c.ElapsedMS)
	displayImage(res.Image)

	// Block main goroutine to keep WASM running
	select {}
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

func setProgress(pct float64) {
	doc := js.Global().Get("document")
	doc.Call("getElementById", "progress").Set("value", pct)
}
