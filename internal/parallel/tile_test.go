package parallel

import (
	"bytes"
	"context"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantTiles     int
		lastW, lastH  int
	}{
		{"exact", 128, 64, 2, 64, 64},
		{"edge tiles", 100, 70, 4, 36, 6},
		{"single pixel", 1, 1, 1, 1, 1},
		{"empty", 0, 10, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTileGrid(tt.width, tt.height)
			if g.TileCount() != tt.wantTiles {
				t.Fatalf("TileCount() = %d, want %d", g.TileCount(), tt.wantTiles)
			}
			if tt.wantTiles == 0 {
				return
			}
			last := g.Tiles()[len(g.Tiles())-1]
			if last.Width != tt.lastW || last.Height != tt.lastH {
				t.Errorf("last tile = %dx%d, want %dx%d", last.Width, last.Height, tt.lastW, tt.lastH)
			}
			if len(last.Data) != tt.lastW*tt.lastH*4 {
				t.Errorf("len(Data) = %d", len(last.Data))
			}
		})
	}
}

func TestTile_PixelOffset(t *testing.T) {
	tile := newTile(1, 2, 10, 5)
	if off := tile.PixelOffset(3, 2); off != (2*10+3)*4 {
		t.Errorf("PixelOffset(3,2) = %d", off)
	}
	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, 5}} {
		if off := tile.PixelOffset(p[0], p[1]); off != -1 {
			t.Errorf("PixelOffset(%d,%d) = %d, want -1", p[0], p[1], off)
		}
	}
	x, y, w, h := tile.Bounds()
	if x != 64 || y != 128 || w != 10 || h != 5 {
		t.Errorf("Bounds() = %d,%d %dx%d", x, y, w, h)
	}
}

func TestTileGrid_JobsComposite(t *testing.T) {
	const w, h = 130, 70
	g := NewTileGrid(w, h)

	pool := NewPool(4)
	defer pool.Close()

	err := pool.Run(context.Background(), g.Jobs(func(_ int, tile *Tile) {
		ox, oy, _, _ := tile.Bounds()
		for py := range tile.Height {
			for px := range tile.Width {
				tile.SetPixel(px, py, uint8(ox+px), uint8(oy+py), 7, 255)
			}
		}
	}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	dst := make([]byte, w*h*4)
	g.Composite(dst, w*4)

	want := make([]byte, w*h*4)
	for y := range h {
		for x := range w {
			o := (y*w + x) * 4
			want[o], want[o+1], want[o+2], want[o+3] = uint8(x), uint8(y), 7, 255
		}
	}
	if !bytes.Equal(dst, want) {
		t.Error("composited buffer does not match per-pixel writes")
	}
}

func TestTileGrid_CompositeShortBuffer(t *testing.T) {
	g := NewTileGrid(8, 8)
	dst := make([]byte, 10)
	g.Composite(dst, 32)
	if !bytes.Equal(dst, make([]byte, 10)) {
		t.Error("Composite should not write into a short buffer")
	}
}
