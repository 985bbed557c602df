// Package imgfile encodes rendered images and writes them to disk.
package imgfile

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	mandel "github.com/marben/parallel_mandel"
)

// Format is an output file format.
type Format int

const (
	PNG Format = iota
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case TIFF:
		return "tiff"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported format %v", f)
}

// PNGBytes returns img encoded as PNG.
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img to path, creating missing directories. The format follows
// the extension.
func Save(path string, img image.Image) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// TimestampName returns dir/<timestamp>.<ext>.
func TimestampName(dir string, now time.Time, f Format) string {
	return filepath.Join(dir, now.Format("20060102150405")+"."+f.String())
}

// Downscale shrinks img by factor using Catmull-Rom resampling. It is how
// supersampled renders are reduced to their output size.
func Downscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/factor, b.Dy()/factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Banner describes a render in one line.
func Banner(vp mandel.Viewport, scheme string, iterations int) string {
	return fmt.Sprintf("x=%s y=%s zoom=%s it=%d %s",
		strconv.FormatFloat(vp.CenterX, 'f', -1, 64),
		strconv.FormatFloat(vp.CenterY, 'f', -1, 64),
		strconv.FormatFloat(vp.Zoom, 'g', 6, 64),
		iterations, scheme)
}

const annotatePad = 3

// Annotate draws lines of text over a dark box in the top-left corner of img.
func Annotate(img *image.RGBA, lines ...string) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	box := image.Rect(0, 0, width+2*annotatePad, len(lines)*lineHeight+2*annotatePad).
		Add(img.Bounds().Min).
		Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(box.Min.X+annotatePad, box.Min.Y+annotatePad+i*lineHeight+metrics.Ascent.Ceil())
		d.DrawString(l)
	}
}
