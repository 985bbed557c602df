//go:build js && wasm

package main

import (
	"image"
	"image/draw"
	"syscall/js"
	"time"
)

// displayImage puts img on the canvas, resizing the canvas to fit.
func displayImage(img image.Image) {
	start := time.Now()

	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	width := rgba.Rect.Dx()
	height := rgba.Rect.Dy()

	canvas := js.Global().Get("document").Call("getElementById", "myCanvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	ctx := canvas.Call("getContext", "2d")

	jsData := js.Global().Get("Uint8ClampedArray").New(len(rgba.Pix))
	js.CopyBytesToJS(jsData, rgba.Pix)

	imageData := js.Global().Get("ImageData").New(jsData, width, height)
	ctx.Call("putImageData", imageData, 0, 0)
	logScreenf("draw took %s", time.Since(start))
}

func initCanvas(width, height int, color string) {
	canvas := js.Global().Get("document").Call("getElementById", "myCanvas")
	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}
