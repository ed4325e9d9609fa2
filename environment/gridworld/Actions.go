// Package gridworld implements tile-based 2D gridworld environments
// with discrete states and stochastic action noise
package gridworld

// Action is one of the five discrete gridworld actions
type Action int

const (
	Noop Action = iota
	Up
	Down
	Left
	Right
)

// NumActions is the cardinality of the gridworld action space
const NumActions int = 5

// displacements maps each Action to its (dx, dy) displacement. The y
// axis grows downward, so Up decreases y.
var displacements = [NumActions][2]int{
	Noop:  {0, 0},
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// Displacement returns the (dx, dy) cell displacement of the action
func (a Action) Displacement() (dx, dy int) {
	return displacements[a][0], displacements[a][1]
}

func (a Action) String() string {
	switch a {
	case Noop:
		return "NOOP"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return "RIGHT"
	}
}
