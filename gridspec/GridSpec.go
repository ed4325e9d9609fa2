// Package gridspec implements static, immutable 2D tile maps which
// describe the layout of gridworld environments
package gridspec

import (
	"fmt"
	"strings"
)

// TileType describes the static type of a single cell in a tile map
type TileType int

const (
	Empty TileType = iota
	Wall
	Start
	Reward
	Reward2
	Reward3
	Reward4
	Lava

	// OutOfBounds is a sentinel returned for coordinates that fall
	// outside the map. It is never stored in a GridSpec.
	OutOfBounds
)

func (t TileType) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Start:
		return "Start"
	case Reward:
		return "Reward"
	case Reward2:
		return "Reward2"
	case Reward3:
		return "Reward3"
	case Reward4:
		return "Reward4"
	case Lava:
		return "Lava"
	default:
		return "OutOfBounds"
	}
}

// renderRunes maps tiles to the characters used to parse and render
// tile maps
var renderRunes = map[TileType]rune{
	Empty:   'O',
	Wall:    '#',
	Start:   'S',
	Reward:  'R',
	Reward2: '2',
	Reward3: '3',
	Reward4: '4',
	Lava:    'L',
}

// Rune returns the character used to parse and render the tile
func (t TileType) Rune() rune {
	if r, ok := renderRunes[t]; ok {
		return r
	}
	return '?'
}

// GridSpec is an immutable 2D tile map. Cells are addressed either by
// (x, y) coordinates, with y increasing downward, or by a flattened
// index in [0, Width*Height).
type GridSpec struct {
	width  int
	height int
	tiles  []TileType
}

// New creates a GridSpec with the argument dimensions from a
// row-major slice of tiles
func New(width, height int, tiles []TileType) (*GridSpec, error) {
	if len(tiles) != width*height {
		return nil, fmt.Errorf("new: have %d tiles, need %d for a "+
			"(%d x %d) map", len(tiles), width*height, width, height)
	}
	cp := make([]TileType, len(tiles))
	copy(cp, tiles)
	return &GridSpec{width, height, cp}, nil
}

// FromString parses a GridSpec from an ASCII map, one text row per map
// row. Recognized characters are 'O' or ' ' (empty), '#' (wall),
// 'S' (start), 'R', '2', '3', '4' (reward tiers) and 'L' (lava).
// All rows must have equal length.
func FromString(layout string) (*GridSpec, error) {
	lines := strings.Split(strings.Trim(layout, "\n"), "\n")
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("fromString: empty layout")
	}

	width := len(lines[0])
	tiles := make([]TileType, 0, width*len(lines))
	for i, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("fromString: row %d has length %d "+
				"!= %d", i, len(line), width)
		}
		for _, r := range line {
			tile, err := tileOf(r)
			if err != nil {
				return nil, fmt.Errorf("fromString: row %d: %v", i, err)
			}
			tiles = append(tiles, tile)
		}
	}

	return &GridSpec{width, len(lines), tiles}, nil
}

func tileOf(r rune) (TileType, error) {
	if r == ' ' {
		return Empty, nil
	}
	for tile, rendered := range renderRunes {
		if r == rendered {
			return tile, nil
		}
	}
	return Empty, fmt.Errorf("unknown tile character %q", r)
}

// Width returns the number of columns in the map
func (g *GridSpec) Width() int {
	return g.width
}

// Height returns the number of rows in the map
func (g *GridSpec) Height() int {
	return g.height
}

// Len returns the total number of cells in the map
func (g *GridSpec) Len() int {
	return g.width * g.height
}

// XYToIdx converts (x, y) coordinates to a flattened cell index
func (g *GridSpec) XYToIdx(x, y int) int {
	return y*g.width + x
}

// IdxToXY converts a flattened cell index to (x, y) coordinates
func (g *GridSpec) IdxToXY(idx int) (x, y int) {
	y = idx / g.width
	x = idx - y*g.width
	return
}

// OutOfBounds returns whether the coordinates (x, y) fall outside the
// map
func (g *GridSpec) OutOfBounds(x, y int) bool {
	return x < 0 || x >= g.width || y < 0 || y >= g.height
}

// At returns the tile at coordinates (x, y), or the OutOfBounds
// sentinel for coordinates outside the map
func (g *GridSpec) At(x, y int) TileType {
	if g.OutOfBounds(x, y) {
		return OutOfBounds
	}
	return g.tiles[g.XYToIdx(x, y)]
}

// Get returns the tile at a flattened cell index
func (g *GridSpec) Get(idx int) TileType {
	x, y := g.IdxToXY(idx)
	return g.At(x, y)
}

// Neighbors returns the tiles of the 4-connected neighbors of the cell
// at idx in the order up, down, left, right. Neighbors outside the map
// are reported as OutOfBounds.
func (g *GridSpec) Neighbors(idx int) [4]TileType {
	x, y := g.IdxToXY(idx)
	return [4]TileType{
		g.At(x, y-1),
		g.At(x, y+1),
		g.At(x-1, y),
		g.At(x+1, y),
	}
}

// Find returns the (x, y) coordinates of every cell holding the
// argument tile, in row-major order
func (g *GridSpec) Find(tile TileType) [][2]int {
	var coords [][2]int
	for i, t := range g.tiles {
		if t == tile {
			x, y := g.IdxToXY(i)
			coords = append(coords, [2]int{x, y})
		}
	}
	return coords
}

// String renders the map as ASCII text, one text row per map row
func (g *GridSpec) String() string {
	var builder strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			builder.WriteRune(renderRunes[g.At(x, y)])
		}
		builder.WriteRune('\n')
	}
	return builder.String()
}
