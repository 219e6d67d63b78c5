package render

import (
	"image"
	"sync"
)

// tileScheduler hands out tiles of the pixel grid to workers and tracks how
// much of the grid is done.
type tileScheduler struct {
	tiles []image.Rectangle
	next  int

	totalPixels    int
	finishedPixels int
	onProgress     func(done float64)

	m sync.Mutex
}

func newTileScheduler(w, h, tileW, tileH int, onProgress func(float64)) *tileScheduler {
	return &tileScheduler{
		tiles:       splitRectNoClip(image.Rect(0, 0, w, h), tileW, tileH),
		totalPixels: w * h,
		onProgress:  onProgress,
	}
}

func (ts *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	ts.m.Lock()
	defer ts.m.Unlock()

	if ts.next >= len(ts.tiles) {
		return image.Rectangle{}, false
	}
	tile = ts.tiles[ts.next]
	ts.next++
	return tile, true
}

// tileFinished records a rendered tile. onProgress runs under the lock, so
// reported fractions never go backwards.
func (ts *tileScheduler) tileFinished(tile image.Rectangle) {
	ts.m.Lock()
	defer ts.m.Unlock()

	ts.finishedPixels += tile.Dx() * tile.Dy()
	if ts.onProgress != nil {
		ts.onProgress(ts.finished())
	}
}

func (ts *tileScheduler) finished() float64 {
	return float64(ts.finishedPixels) / float64(ts.totalPixels)
}

// splitRectNoClip splits r into tiles of size tileW × tileH, top row first.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
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
