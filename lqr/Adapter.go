package lqr

import "gonum.org/v1/gonum/mat"

// Env describes an environment with linear dynamics and quadratic
// rewards from which an LQR problem instance can be extracted. The
// environment rewards
//
//	x^T * RewQ * x + u^T * RewR * u + Rewq^T * x
//
// which the solver minimizes as a cost, so extraction negates the
// reward terms.
type Env interface {
	// StateDims returns the state dimensionality dX
	StateDims() int

	// ActionDims returns the action dimensionality dU
	ActionDims() int

	// Dynamics returns the dX x (dX+dU) dynamics matrix
	Dynamics() *mat.Dense

	// RewQ returns the dX x dX quadratic state reward term
	RewQ() mat.Matrix

	// RewR returns the dU x dU quadratic action reward term
	RewR() mat.Matrix

	// Rewq returns the dX linear state reward term
	Rewq() mat.Vector
}

// ExtractMatrices builds the matrices of an LQR problem instance from
// an environment. The cost matrix is the negated, doubled block
// diagonal of [RewQ, RewR]: the environment maximizes reward while the
// solver minimizes cost, and the solver's cost convention carries a
// factor of 0.5. The linear cost term is the negated Rewq in the state
// block.
func ExtractMatrices(e Env) (Fm *mat.Dense, fv *mat.VecDense, Cm *mat.Dense,
	cv *mat.VecDense) {
	dX, dU := e.StateDims(), e.ActionDims()

	Fm = e.Dynamics()
	fv = mat.NewVecDense(dX, nil)

	Cm = mat.NewDense(dX+dU, dX+dU, nil)
	rewQ := e.RewQ()
	for i := 0; i < dX; i++ {
		for j := 0; j < dX; j++ {
			Cm.Set(i, j, -2.0*rewQ.At(i, j))
		}
	}
	rewR := e.RewR()
	for i := 0; i < dU; i++ {
		for j := 0; j < dU; j++ {
			Cm.Set(dX+i, dX+j, -2.0*rewR.At(i, j))
		}
	}

	cv = mat.NewVecDense(dX+dU, nil)
	rewq := e.Rewq()
	for i := 0; i < dX; i++ {
		cv.SetVec(i, -rewq.AtVec(i))
	}

	return Fm, fv, Cm, cv
}

// SolveEnv extracts an LQR problem instance from an environment and
// solves it over horizon T
func SolveEnv(e Env, T int) (*Solution, error) {
	Fm, fv, Cm, cv := ExtractMatrices(e)
	return Solve(T, Fm, fv, Cm, cv)
}
