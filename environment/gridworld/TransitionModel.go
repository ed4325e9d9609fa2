package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gridcraft/gridspec"
	"gonum.org/v1/gonum/mat"
)

// TransitionModel computes the distribution over executed actions
// given an intended action. With probability (1 - eps) the intended
// action is executed; the remaining eps probability mass is spread
// uniformly over the other legal actions. An action is legal if its
// displacement keeps the agent in bounds and off wall tiles. Intending
// an illegal action is equivalent to standing still: the model then
// returns a degenerate distribution on Noop.
type TransitionModel struct {
	gs  *gridspec.GridSpec
	eps float64
}

// NewTransitionModel returns a new TransitionModel with action noise
// eps ∈ [0, 1]
func NewTransitionModel(gs *gridspec.GridSpec,
	eps float64) (*TransitionModel, error) {
	if eps < 0.0 || eps > 1.0 {
		return nil, fmt.Errorf("newTransitionModel: eps = %v not in [0, 1]",
			eps)
	}
	return &TransitionModel{gs, eps}, nil
}

// ActionProbs returns the probability of executing each of the five
// actions when the agent at state intends action a. The returned
// vector has length NumActions and sums to 1.
func (t *TransitionModel) ActionProbs(state int, a Action) *mat.VecDense {
	legal := t.LegalActions(state)

	probs := mat.NewVecDense(NumActions, nil)
	intendedLegal := false
	for _, move := range legal {
		if move == a {
			intendedLegal = true
			break
		}
	}

	if !intendedLegal {
		probs.SetVec(int(Noop), 1.0)
		return probs
	}

	// With a single legal action there are no alternatives to
	// redistribute noise to, so the intended action is executed with
	// certainty
	if len(legal) == 1 {
		probs.SetVec(int(a), 1.0)
		return probs
	}

	noise := t.eps / float64(len(legal)-1)
	for _, move := range legal {
		probs.SetVec(int(move), noise)
	}
	probs.SetVec(int(a), 1.0-t.eps)

	return probs
}

// LegalActions returns the actions whose displacement from state stays
// in bounds and off wall tiles. Noop is always legal from a valid
// state.
func (t *TransitionModel) LegalActions(state int) []Action {
	x, y := t.gs.IdxToXY(state)

	var legal []Action
	for a := 0; a < NumActions; a++ {
		dx, dy := Action(a).Displacement()
		nx, ny := x+dx, y+dy
		if t.gs.OutOfBounds(nx, ny) || t.gs.At(nx, ny) == gridspec.Wall {
			continue
		}
		legal = append(legal, Action(a))
	}
	return legal
}
