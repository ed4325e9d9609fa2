package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridcraft/environment"
	"github.com/samuelfneumann/gridcraft/gridspec"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// StartTileStarter samples starting states uniformly among the cells
// marked as start tiles in a GridSpec. Starting states are returned as
// length-1 vectors holding the flattened cell index.
type StartTileStarter struct {
	starts []int
	rand   distuv.Categorical
}

// NewStartTileStarter returns a Starter sampling uniformly among the
// start tiles of gs. A map without start tiles is a configuration
// error.
func NewStartTileStarter(gs *gridspec.GridSpec,
	seed uint64) (environment.Starter, error) {
	coords := gs.Find(gridspec.Start)
	if len(coords) == 0 {
		return nil, fmt.Errorf("newStartTileStarter: map has no start tiles")
	}

	starts := make([]int, len(coords))
	weights := make([]float64, len(coords))
	for i, xy := range coords {
		starts[i] = gs.XYToIdx(xy[0], xy[1])
		weights[i] = 1.0 / float64(len(coords))
	}

	source := rand.NewSource(seed)
	return &StartTileStarter{starts, distuv.NewCategorical(weights,
		source)}, nil
}

// Start returns a starting state vector
func (s *StartTileStarter) Start() *mat.VecDense {
	state := s.starts[int(s.rand.Rand())]
	return mat.NewVecDense(1, []float64{float64(state)})
}
