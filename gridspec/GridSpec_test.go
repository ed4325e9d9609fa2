package gridspec

import "testing"

const testLayout string = `#####
#SOR#
#O#2#
#####`

func TestFromString(t *testing.T) {
	gs, err := FromString(testLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	if gs.Width() != 5 || gs.Height() != 4 {
		t.Errorf("got dimensions (%d x %d), want (5 x 4)", gs.Width(),
			gs.Height())
	}
	if gs.Len() != 20 {
		t.Errorf("got %d cells, want 20", gs.Len())
	}

	tiles := map[[2]int]TileType{
		{0, 0}: Wall,
		{1, 1}: Start,
		{2, 1}: Empty,
		{3, 1}: Reward,
		{2, 2}: Wall,
		{3, 2}: Reward2,
	}
	for xy, want := range tiles {
		if got := gs.At(xy[0], xy[1]); got != want {
			t.Errorf("tile at (%d, %d) = %v, want %v", xy[0], xy[1], got,
				want)
		}
	}
}

func TestFromStringRaggedRows(t *testing.T) {
	if _, err := FromString("###\n##"); err == nil {
		t.Error("expected an error for ragged rows")
	}
}

func TestFromStringUnknownTile(t *testing.T) {
	if _, err := FromString("#?#"); err == nil {
		t.Error("expected an error for an unknown tile character")
	}
}

func TestCoordinateConversion(t *testing.T) {
	gs, err := FromString(testLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	for idx := 0; idx < gs.Len(); idx++ {
		x, y := gs.IdxToXY(idx)
		if back := gs.XYToIdx(x, y); back != idx {
			t.Errorf("index %d -> (%d, %d) -> %d", idx, x, y, back)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	gs, err := FromString(testLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	inBounds := [][2]int{{0, 0}, {4, 3}, {2, 2}}
	for _, xy := range inBounds {
		if gs.OutOfBounds(xy[0], xy[1]) {
			t.Errorf("(%d, %d) reported out of bounds", xy[0], xy[1])
		}
	}

	outOfBounds := [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 4}}
	for _, xy := range outOfBounds {
		if !gs.OutOfBounds(xy[0], xy[1]) {
			t.Errorf("(%d, %d) reported in bounds", xy[0], xy[1])
		}
		if got := gs.At(xy[0], xy[1]); got != OutOfBounds {
			t.Errorf("tile at (%d, %d) = %v, want OutOfBounds", xy[0],
				xy[1], got)
		}
	}
}

func TestNeighbors(t *testing.T) {
	gs, err := FromString(testLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	// Neighbors of the empty cell at (2, 1) in up, down, left, right
	// order
	got := gs.Neighbors(gs.XYToIdx(2, 1))
	want := [4]TileType{Wall, Wall, Start, Reward}
	if got != want {
		t.Errorf("neighbors = %v, want %v", got, want)
	}

	// A corner cell sees the out-of-bounds sentinel
	got = gs.Neighbors(gs.XYToIdx(0, 0))
	want = [4]TileType{OutOfBounds, Wall, OutOfBounds, Wall}
	if got != want {
		t.Errorf("corner neighbors = %v, want %v", got, want)
	}
}

func TestFind(t *testing.T) {
	gs, err := FromString(testLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	starts := gs.Find(Start)
	if len(starts) != 1 || starts[0] != [2]int{1, 1} {
		t.Errorf("start tiles = %v, want [[1 1]]", starts)
	}

	if lava := gs.Find(Lava); lava != nil {
		t.Errorf("lava tiles = %v, want none", lava)
	}

	if walls := gs.Find(Wall); len(walls) != 15 {
		t.Errorf("found %d wall tiles, want 15", len(walls))
	}
}
