package experiment

import (
	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gridcraft/environment"
	ts "github.com/samuelfneumann/gridcraft/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Policy selects actions from timesteps when running episodes in an
// environment
type Policy interface {
	SelectAction(t ts.TimeStep) *mat.VecDense
}

// UniformRandom is a Policy selecting actions uniformly at random from
// a discrete action space
type UniformRandom struct {
	rand distuv.Categorical
}

// NewUniformRandom returns a UniformRandom policy over the discrete
// action space described by spec
func NewUniformRandom(spec env.Spec, seed uint64) *UniformRandom {
	numActions := int(spec.UpperBound.AtVec(0)-spec.LowerBound.AtVec(0)) + 1
	weights := make([]float64, numActions)
	for i := range weights {
		weights[i] = 1.0 / float64(numActions)
	}

	source := rand.NewSource(seed)
	return &UniformRandom{distuv.NewCategorical(weights, source)}
}

// SelectAction selects an action uniformly at random
func (u *UniformRandom) SelectAction(t ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{u.rand.Rand()})
}
