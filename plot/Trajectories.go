// Package plot renders gridworld tile maps and state trajectories to
// images
package plot

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/gridcraft/gridspec"
)

// cellSize is the rendered side length of a single grid cell in pixels
const cellSize int = 32

// tileColors maps rewarding and structural tiles to their rendered
// colors
var tileColors = map[gridspec.TileType][3]float64{
	gridspec.Wall:    {0.0, 0.0, 0.0},
	gridspec.Start:   {0.0, 0.0, 1.0},
	gridspec.Reward:  {0.0, 0.2, 0.0},
	gridspec.Reward2: {0.0, 0.5, 0.0},
	gridspec.Reward3: {0.0, 1.0, 0.0},
	gridspec.Reward4: {1.0, 0.0, 1.0},
	gridspec.Lava:    {1.0, 0.5, 0.0},
}

// pathColors are cycled through when drawing trajectories
var pathColors = [][3]float64{
	{1.0, 0.0, 0.0},
	{0.8, 0.4, 0.0},
	{0.6, 0.0, 0.6},
	{0.0, 0.6, 0.6},
	{0.4, 0.4, 0.4},
}

// Trajectories renders the tile map gs with each path drawn over it as
// a line through the centers of its visited cells, saving the image as
// a PNG at filename. Paths are sequences of flattened cell indices.
func Trajectories(gs *gridspec.GridSpec, paths [][]int,
	filename string) error {
	dc := gg.NewContext(gs.Width()*cellSize, gs.Height()*cellSize)

	dc.SetRGB(1.0, 1.0, 1.0)
	dc.Clear()

	// Draw the tiles
	for y := 0; y < gs.Height(); y++ {
		for x := 0; x < gs.Width(); x++ {
			color, ok := tileColors[gs.At(x, y)]
			if !ok {
				continue
			}
			dc.SetRGB(color[0], color[1], color[2])
			dc.DrawRectangle(float64(x*cellSize), float64(y*cellSize),
				float64(cellSize), float64(cellSize))
			dc.Fill()
		}
	}

	// Draw each path through the cell centers
	dc.SetLineWidth(2.0)
	for i, path := range paths {
		if len(path) < 2 {
			continue
		}

		// Cycle path colors so overlapping trajectories stay
		// distinguishable
		color := pathColors[i%len(pathColors)]
		dc.SetRGBA(color[0], color[1], color[2], 0.8)

		x, y := center(gs, path[0])
		dc.MoveTo(x, y)
		for _, state := range path[1:] {
			x, y = center(gs, state)
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("trajectories: could not save image: %v", err)
	}
	return nil
}

// center returns the pixel coordinates of the center of the cell at a
// flattened index
func center(gs *gridspec.GridSpec, state int) (float64, float64) {
	x, y := gs.IdxToXY(state)
	return (float64(x) + 0.5) * float64(cellSize),
		(float64(y) + 0.5) * float64(cellSize)
}
