package mandel

import (
	"image"
	"testing"
)

func TestSplitRows(t *testing.T) {
	got := SplitRows(10, 10, 3)
	want := []RowBand{
		{StartX: 0, EndX: 10, StartY: 0, EndY: 4},
		{StartX: 0, EndX: 10, StartY: 4, EndY: 8},
		{StartX: 0, EndX: 10, StartY: 8, EndY: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("band %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSplitRows_Partition(t *testing.T) {
	for _, width := range []int{1, 7} {
		for height := 1; height <= 20; height++ {
			for workers := 1; workers <= 24; workers++ {
				bands := SplitRows(width, height, workers)
				if len(bands) != workers {
					t.Fatalf("SplitRows(%d,%d,%d): %d bands", width, height, workers, len(bands))
				}

				covered := make([]int, height)
				total := 0
				for _, b := range bands {
					if b.StartX != 0 || b.EndX != width {
						t.Fatalf("band %+v does not span the full width %d", b, width)
					}
					for y := b.StartY; y < b.EndY; y++ {
						covered[y]++
					}
					total += b.Pixels()
				}
				for y, n := range covered {
					if n != 1 {
						t.Fatalf("SplitRows(%d,%d,%d): row %d covered %d times", width, height, workers, y, n)
					}
				}
				if total != width*height {
					t.Fatalf("SplitRows(%d,%d,%d): %d pixels, want %d", width, height, workers, total, width*height)
				}
			}
		}
	}
}

func TestSplitRows_MoreWorkersThanRows(t *testing.T) {
	bands := SplitRows(5, 2, 4)
	if bands[0].Rows() != 1 || bands[1].Rows() != 1 {
		t.Errorf("first bands = %+v %+v, want one row each", bands[0], bands[1])
	}
	for _, b := range bands[2:] {
		if b.Pixels() != 0 {
			t.Errorf("trailing band %+v, want empty", b)
		}
	}
}

func TestSplitTiles(t *testing.T) {
	tiles := splitTiles(image.Rect(0, 0, 120, 75), 50, 50)
	if len(tiles) != 6 {
		t.Fatalf("len = %d, want 6", len(tiles))
	}
	if got, want := tiles[0], image.Rect(0, 0, 50, 50); got != want {
		t.Errorf("first tile = %v, want %v", got, want)
	}
	if got, want := tiles[5], image.Rect(100, 50, 120, 75); got != want {
		t.Errorf("last tile = %v, want %v", got, want)
	}

	area := 0
	for i, tile := range tiles {
		area += tile.Dx() * tile.Dy()
		if i > 0 && tile.Min.Y < tiles[i-1].Min.Y {
			t.Errorf("tile %d %v is out of row-major order", i, tile)
		}
	}
	if area != 120*75 {
		t.Errorf("area = %d, want %d", area, 120*75)
	}
}
