// Package parallel provides the tile-based, data-parallel dispatch used to
// run one verification invocation per output pixel.
//
// The output is divided into 64x64 pixel tiles. Every tile owns its pixel
// buffer, so invocations running on different workers never share mutable
// state; the tiles are composited into the final image after all workers
// have returned.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64
)

// Tile is a rectangular block of output pixels evaluated as one job.
// Edge tiles may be smaller than TileWidth x TileHeight.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Width is the actual width in pixels.
	Width int

	// Height is the actual height in pixels.
	Height int

	// Data holds Width*Height RGBA pixels, row-major, 4 bytes each.
	Data []byte
}

// newTile allocates a tile with its pixel buffer.
func newTile(x, y, w, h int) *Tile {
	return &Tile{X: x, Y: y, Width: w, Height: h, Data: make([]byte, w*h*4)}
}

// Bounds returns the canvas-space origin and size of the tile.
func (t *Tile) Bounds() (x, y, w, h int) {
	return t.X * TileWidth, t.Y * TileHeight, t.Width, t.Height
}

// PixelOffset returns the byte offset into Data for tile-local (px, py),
// or -1 if the pixel is outside the tile.
func (t *Tile) PixelOffset(px, py int) int {
	if px < 0 || px >= t.Width || py < 0 || py >= t.Height {
		return -1
	}
	return (py*t.Width + px) * 4
}

// SetPixel stores an RGBA pixel at tile-local (px, py).
// Out-of-bounds writes are ignored.
func (t *Tile) SetPixel(px, py int, r, g, b, a uint8) {
	off := t.PixelOffset(px, py)
	if off < 0 {
		return
	}
	t.Data[off] = r
	t.Data[off+1] = g
	t.Data[off+2] = b
	t.Data[off+3] = a
}

// Stride returns the row stride in bytes.
func (t *Tile) Stride() int {
	return t.Width * 4
}
