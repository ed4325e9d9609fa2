// Package lqr implements a discrete-time, finite-horizon
// Linear-Quadratic-Regulator solver.
//
// The dynamical system is described as
//
//	x_{t+1} = Fm * [x_t, u_t] + fv
//
// and the cost to minimize is
//
//	0.5 * [x, u]^T * Cm * [x, u] + cv^T * [x, u]
//
// The solver performs the Riccati-style backward recursion over the
// horizon, producing the time-varying optimal linear-feedback policy
// u_t = K_t * x_t + k_t together with the quadratic value and Q
// functions at every timestep.
package lqr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Solution holds the per-timestep policy and value terms computed by
// Solve. Index t ranges over [0, T).
type Solution struct {
	// K and KBias parameterize the policy: u_t = K[t]*x_t + KBias[t]
	K     []*mat.Dense
	KBias []*mat.VecDense

	// Vxx and Vx are the quadratic and linear value function terms
	Vxx []*mat.SymDense
	Vx  []*mat.VecDense

	// Qtt and Qt are the quadratic and linear Q-function terms over
	// the joint state-action vector
	Qtt []*mat.SymDense
	Qt  []*mat.VecDense
}

// Solve computes the finite-horizon LQR solution for horizon T with
// time-invariant dynamics (Fm, fv) and cost (Cm, cv).
//
// Fm is the dX x (dX+dU) dynamics matrix, fv the dX dynamics bias, Cm
// the (dX+dU) x (dX+dU) quadratic cost term, and cv the (dX+dU) linear
// cost term. State dimensions precede action dimensions in both the
// dynamics-matrix columns and the cost-matrix rows and columns.
//
// The action-action block of the cost must be positive-definite at
// every timestep; if it is not, the Cholesky factorization fails and
// Solve returns an error.
func Solve(T int, Fm *mat.Dense, fv *mat.VecDense, Cm *mat.Dense,
	cv *mat.VecDense) (*Solution, error) {
	dX, dXdU := Fm.Dims()
	dU := dXdU - dX
	if err := validate(T, dX, dU, fv, Cm, cv); err != nil {
		return nil, fmt.Errorf("solve: %v", err)
	}

	s := &Solution{
		K:     make([]*mat.Dense, T),
		KBias: make([]*mat.VecDense, T),
		Vxx:   make([]*mat.SymDense, T),
		Vx:    make([]*mat.VecDense, T),
		Qtt:   make([]*mat.SymDense, T),
		Qt:    make([]*mat.VecDense, T),
	}

	for t := T - 1; t >= 0; t-- {
		// Add in the cost
		qtt := mat.DenseCopyOf(Cm)
		qt := mat.VecDenseCopyOf(cv)

		// Add in the value function from the next timestep
		if t < T-1 {
			var quad mat.Dense
			quad.Product(Fm.T(), s.Vxx[t+1], Fm)
			qtt.Add(qtt, &quad)

			var future, lin mat.VecDense
			future.MulVec(s.Vxx[t+1], fv)
			future.AddVec(&future, s.Vx[t+1])
			lin.MulVec(Fm.T(), &future)
			qt.AddVec(qt, &lin)
		}

		// Floating-point accumulation can break exact symmetry, which
		// would destabilize the Cholesky factorization below
		symmetrize(qtt)

		// Partition the Q function into state, action, and cross
		// blocks
		quu := symFromDense(qtt.Slice(dX, dX+dU, dX, dX+dU))
		qux := mat.DenseCopyOf(qtt.Slice(dX, dX+dU, 0, dX))
		qxx := qtt.Slice(0, dX, 0, dX)
		qxu := qtt.Slice(0, dX, dX, dX+dU)
		qu := mat.VecDenseCopyOf(qt.SliceVec(dX, dX+dU))
		qx := qt.SliceVec(0, dX)

		// Solve for the feedback law against the Cholesky factor of
		// the action-action block rather than inverting it
		var chol mat.Cholesky
		if ok := chol.Factorize(quu); !ok {
			return nil, fmt.Errorf("solve: action cost block not "+
				"positive-definite at timestep %d", t)
		}

		kBias := mat.NewVecDense(dU, nil)
		if err := chol.SolveVecTo(kBias, qu); err != nil {
			return nil, fmt.Errorf("solve: could not compute policy bias "+
				"at timestep %d: %v", t, err)
		}
		kBias.ScaleVec(-1, kBias)

		gain := mat.NewDense(dU, dX, nil)
		if err := chol.SolveTo(gain, qux); err != nil {
			return nil, fmt.Errorf("solve: could not compute policy gain "+
				"at timestep %d: %v", t, err)
		}
		gain.Scale(-1, gain)

		// Update the value function
		var vxx mat.Dense
		vxx.Mul(qxu, gain)
		vxx.Add(qxx, &vxx)
		symmetrize(&vxx)

		vx := mat.NewVecDense(dX, nil)
		vx.MulVec(qxu, kBias)
		vx.AddVec(qx, vx)

		s.K[t] = gain
		s.KBias[t] = kBias
		s.Vxx[t] = symFromDense(&vxx)
		s.Vx[t] = vx
		s.Qtt[t] = symFromDense(qtt)
		s.Qt[t] = qt
	}

	return s, nil
}

// validate checks the dimensions of an LQR problem instance
func validate(T, dX, dU int, fv *mat.VecDense, Cm *mat.Dense,
	cv *mat.VecDense) error {
	if T < 1 {
		return fmt.Errorf("horizon T = %d < 1", T)
	}
	if dU < 1 {
		return fmt.Errorf("dynamics matrix has %d columns, need more than "+
			"the %d state dimensions", dX+dU, dX)
	}
	if fv.Len() != dX {
		return fmt.Errorf("dynamics bias has length %d != %d", fv.Len(), dX)
	}
	if r, c := Cm.Dims(); r != dX+dU || c != dX+dU {
		return fmt.Errorf("cost matrix is (%d x %d), need (%d x %d)",
			r, c, dX+dU, dX+dU)
	}
	if cv.Len() != dX+dU {
		return fmt.Errorf("linear cost term has length %d != %d", cv.Len(),
			dX+dU)
	}
	return nil
}

// symmetrize replaces a square matrix with 0.5 * (A + A^T) in place
func symmetrize(a *mat.Dense) {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.5 * (a.At(i, j) + a.At(j, i))
			a.Set(i, j, v)
			a.Set(j, i, v)
		}
	}
}

// symFromDense copies a symmetric square matrix into a SymDense
func symFromDense(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}
	return sym
}
