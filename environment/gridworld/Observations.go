package gridworld

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/gridcraft/gridspec"
	"github.com/samuelfneumann/gridcraft/utils/matutils"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// ErrLossyObs is returned when reconstructing a state from an
// observation that does not carry enough information to identify it
var ErrLossyObs = errors.New("cannot convert lossy observation to state")

// numEyes is the number of binary features prefixed to eyes-augmented
// observations: 4 wall-or-out-of-bounds indicators followed by 4
// primary-reward indicators, one per 4-connected neighbor
const numEyes int = 8

// ObsModel is a codec between internal integer states and external
// observation vectors. Obs and State are exact inverses for every
// model except LocalObs, whose encoding is lossy.
type ObsModel interface {
	// Obs encodes a state as an observation vector of length Len()
	Obs(state int) *mat.VecDense

	// State decodes an observation back to the state it encodes
	State(obs mat.Vector) (int, error)

	// ObsBatch encodes states as the rows of an (n, Len()) tensor
	ObsBatch(states []int) *tensor.Dense

	// StateBatch decodes each row of an (n, Len()) tensor, preserving
	// row order
	StateBatch(batch *tensor.Dense) ([]int, error)

	// Len returns the observation dimensionality
	Len() int
}

// IndexObs encodes states as their raw flattened cell index in a
// length-1 vector
type IndexObs struct {
	gs *gridspec.GridSpec
}

// NewIndexObs returns a raw-index observation model
func NewIndexObs(gs *gridspec.GridSpec) *IndexObs {
	return &IndexObs{gs}
}

func (i *IndexObs) Len() int {
	return 1
}

func (i *IndexObs) Obs(state int) *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(state)})
}

func (i *IndexObs) State(obs mat.Vector) (int, error) {
	if obs.Len() != 1 {
		return 0, fmt.Errorf("state: index observation has length %d != 1",
			obs.Len())
	}
	return int(obs.AtVec(0)), nil
}

func (i *IndexObs) ObsBatch(states []int) *tensor.Dense {
	return obsBatch(i, states)
}

func (i *IndexObs) StateBatch(batch *tensor.Dense) ([]int, error) {
	return stateBatch(i, batch)
}

// OneHotObs encodes states as one-hot vectors, either flat over all
// cells or coordinate-wise as one-hot(x) concatenated with one-hot(y),
// optionally prefixed with 8 binary eye features describing the
// 4-connected neighborhood.
type OneHotObs struct {
	gs             *gridspec.GridSpec
	coordinatewise bool
	eyes           bool
}

// NewOneHotObs returns a one-hot observation model. If coordinatewise
// is true, x and y coordinates are one-hot encoded separately and
// concatenated instead of one-hot encoding the flattened cell index.
// If eyes is true, observations are prefixed with 8 binary features:
// whether each 4-connected neighbor is a wall or out of bounds,
// followed by whether each is a primary reward tile.
func NewOneHotObs(gs *gridspec.GridSpec, coordinatewise, eyes bool) *OneHotObs {
	return &OneHotObs{gs, coordinatewise, eyes}
}

func (o *OneHotObs) Len() int {
	length := o.gs.Len()
	if o.coordinatewise {
		length = o.gs.Width() + o.gs.Height()
	}
	if o.eyes {
		length += numEyes
	}
	return length
}

func (o *OneHotObs) Obs(state int) *mat.VecDense {
	obs := mat.NewVecDense(o.Len(), nil)

	offset := 0
	if o.eyes {
		neighbors := o.gs.Neighbors(state)
		for j, nb := range neighbors {
			if nb == gridspec.Wall || nb == gridspec.OutOfBounds {
				obs.SetVec(j, 1.0)
			}
			if nb == gridspec.Reward {
				obs.SetVec(j+len(neighbors), 1.0)
			}
		}
		offset = numEyes
	}

	if o.coordinatewise {
		x, y := o.gs.IdxToXY(state)
		obs.SetVec(offset+x, 1.0)
		obs.SetVec(offset+o.gs.Width()+y, 1.0)
	} else {
		obs.SetVec(offset+state, 1.0)
	}

	return obs
}

func (o *OneHotObs) State(obs mat.Vector) (int, error) {
	if obs.Len() != o.Len() {
		return 0, fmt.Errorf("state: observation has length %d != %d",
			obs.Len(), o.Len())
	}

	// Strip the eye features before decoding
	offset := 0
	if o.eyes {
		offset = numEyes
	}

	if o.coordinatewise {
		width, height := o.gs.Width(), o.gs.Height()
		x := matutils.MaxVec(sliceVec(obs, offset, width))
		y := matutils.MaxVec(sliceVec(obs, offset+width, height))
		return o.gs.XYToIdx(x, y), nil
	}

	return matutils.MaxVec(sliceVec(obs, offset, o.gs.Len())), nil
}

func (o *OneHotObs) ObsBatch(states []int) *tensor.Dense {
	return obsBatch(o, states)
}

func (o *OneHotObs) StateBatch(batch *tensor.Dense) ([]int, error) {
	return stateBatch(o, batch)
}

// LocalObs encodes states with an injected, possibly partial view of
// the grid. The encoding is lossy, so states can never be recovered
// from observations: State and StateBatch always fail with ErrLossyObs.
type LocalObs struct {
	obs    func(state int) *mat.VecDense
	length int
}

// NewLocalObs returns a lossy observation model computing observations
// of the argument length with the function obs
func NewLocalObs(obs func(state int) *mat.VecDense, length int) *LocalObs {
	return &LocalObs{obs, length}
}

func (l *LocalObs) Len() int {
	return l.length
}

func (l *LocalObs) Obs(state int) *mat.VecDense {
	return l.obs(state)
}

func (l *LocalObs) State(obs mat.Vector) (int, error) {
	return 0, ErrLossyObs
}

func (l *LocalObs) ObsBatch(states []int) *tensor.Dense {
	return obsBatch(l, states)
}

func (l *LocalObs) StateBatch(batch *tensor.Dense) ([]int, error) {
	return nil, ErrLossyObs
}

// obsBatch stacks the encodings of states as the rows of an
// (n, model.Len()) tensor
func obsBatch(model ObsModel, states []int) *tensor.Dense {
	dims := model.Len()
	backing := make([]float64, len(states)*dims)
	for i, state := range states {
		copy(backing[i*dims:(i+1)*dims], model.Obs(state).RawVector().Data)
	}

	return tensor.New(
		tensor.WithShape(len(states), dims),
		tensor.WithBacking(backing),
	)
}

// stateBatch decodes each row of an (n, model.Len()) tensor
func stateBatch(model ObsModel, batch *tensor.Dense) ([]int, error) {
	if batch.Dims() != 2 {
		return nil, fmt.Errorf("stateBatch: batch must be 2-dimensional, "+
			"got %d dimensions", batch.Dims())
	}
	rows, dims := batch.Shape()[0], batch.Shape()[1]
	if dims != model.Len() {
		return nil, fmt.Errorf("stateBatch: rows have length %d != %d",
			dims, model.Len())
	}
	data, ok := batch.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("stateBatch: batch must hold float64 values")
	}

	states := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := mat.NewVecDense(dims, data[i*dims:(i+1)*dims])
		state, err := model.State(row)
		if err != nil {
			return nil, fmt.Errorf("stateBatch: could not decode row %d: %v",
				i, err)
		}
		states[i] = state
	}
	return states, nil
}

// sliceVec returns the length-n subvector of v starting at index from
func sliceVec(v mat.Vector, from, n int) mat.Vector {
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, v.AtVec(from+i))
	}
	return out
}
