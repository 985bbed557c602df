package mandel

import "image"

// RowBand is the half-open pixel rectangle [StartX,EndX) x [StartY,EndY)
// owned by one compute unit.
type RowBand struct {
	StartX, EndX int
	StartY, EndY int
}

// Rect returns the band as an image rectangle.
func (b RowBand) Rect() image.Rectangle {
	return image.Rect(b.StartX, b.StartY, b.EndX, b.EndY)
}

// Pixels is the number of pixels in the band.
func (b RowBand) Pixels() int {
	return (b.EndX - b.StartX) * (b.EndY - b.StartY)
}

// Rows is the number of rows in the band.
func (b RowBand) Rows() int {
	return b.EndY - b.StartY
}

// SplitRows partitions a width x height image into exactly workers full-width
// bands of ceil(height/workers) rows. The last non-empty band is clipped to
// height; when there are more workers than rows the trailing bands are empty.
func SplitRows(width, height, workers int) []RowBand {
	if workers < 1 {
		workers = 1
	}
	rows := (height + workers - 1) / workers

	bands := make([]RowBand, workers)
	for i := range bands {
		start := min(i*rows, height)
		end := min(start+rows, height)
		bands[i] = RowBand{StartX: 0, EndX: width, StartY: start, EndY: end}
	}
	return bands
}

// splitTiles splits r into tiles of size tileW × tileH in row-major order.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitTiles(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)

		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)

			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}

	return tiles
}
