package parallel

// TileGrid covers a width x height canvas with tiles.
// Tiles are stored row-major: index = ty*tilesX + tx.
//
// Thread safety: distinct tiles may be written concurrently; the grid
// itself is immutable after construction.
type TileGrid struct {
	tiles  []*Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a grid for the given canvas. Non-positive
// dimensions yield an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	g := &TileGrid{
		tilesX: (width + TileWidth - 1) / TileWidth,
		tilesY: (height + TileHeight - 1) / TileHeight,
		width:  width,
		height: height,
	}
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			w := min(TileWidth, width-tx*TileWidth)
			h := min(TileHeight, height-ty*TileHeight)
			g.tiles[ty*g.tilesX+tx] = newTile(tx, ty, w, h)
		}
	}
	return g
}

// Tiles returns all tiles in row-major order.
// The returned slice should not be modified.
func (g *TileGrid) Tiles() []*Tile {
	return g.tiles
}

// TileCount returns the number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// Width returns the canvas width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the canvas height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// Jobs returns one job per tile that calls fn with the tile and its
// row-major index.
func (g *TileGrid) Jobs(fn func(i int, t *Tile)) []func() {
	jobs := make([]func(), len(g.tiles))
	for i, tile := range g.tiles {
		jobs[i] = func() { fn(i, tile) }
	}
	return jobs
}

// Composite copies every tile into dst, a row-major RGBA buffer with the
// given stride. dst must hold at least height*stride bytes.
func (g *TileGrid) Composite(dst []byte, stride int) {
	if len(dst) < g.height*stride {
		return
	}
	for _, t := range g.tiles {
		x, y, _, _ := t.Bounds()
		src := t.Stride()
		n := min(src, stride-x*4)
		if n <= 0 {
			continue
		}
		for row := range t.Height {
			d := (y+row)*stride + x*4
			s := row * src
			copy(dst[d:d+n], t.Data[s:s+n])
		}
	}
}
