package lqr

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// quadraticEnv is a fixed 2-state, 1-action environment with linear
// dynamics and quadratic rewards
type quadraticEnv struct{}

func (quadraticEnv) StateDims() int  { return 2 }
func (quadraticEnv) ActionDims() int { return 1 }

func (quadraticEnv) Dynamics() *mat.Dense {
	return mat.NewDense(2, 3, []float64{
		1, 0.1, 0,
		0, 1, 0.1,
	})
}

func (quadraticEnv) RewQ() mat.Matrix {
	return mat.NewDense(2, 2, []float64{
		-0.5, 0,
		0, -0.5,
	})
}

func (quadraticEnv) RewR() mat.Matrix {
	return mat.NewDense(1, 1, []float64{-0.5})
}

func (quadraticEnv) Rewq() mat.Vector {
	return mat.NewVecDense(2, []float64{1, 0})
}

func TestExtractMatrices(t *testing.T) {
	e := quadraticEnv{}
	Fm, fv, Cm, cv := ExtractMatrices(e)

	if !mat.Equal(Fm, e.Dynamics()) {
		t.Error("dynamics matrix should pass through unchanged")
	}
	for i := 0; i < fv.Len(); i++ {
		if fv.AtVec(i) != 0.0 {
			t.Error("dynamics bias should be zero")
		}
	}

	// Rewards of -0.5 on the diagonal negate and double to a cost
	// identity
	wantCm := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	if !mat.Equal(Cm, wantCm) {
		t.Errorf("cost matrix:\ngot:\n%v\nwant:\n%v",
			mat.Formatted(Cm), mat.Formatted(wantCm))
	}

	wantCv := mat.NewVecDense(3, []float64{-1, 0, 0})
	if !mat.Equal(cv, wantCv) {
		t.Errorf("linear cost term: got %v, want %v",
			mat.Formatted(cv), mat.Formatted(wantCv))
	}

	// Off-diagonal blocks between state and action stay zero
	if Cm.At(0, 2) != 0.0 || Cm.At(2, 0) != 0.0 {
		t.Error("state-action cost blocks should be zero")
	}
}

func TestSolveEnvMatchesSolve(t *testing.T) {
	e := quadraticEnv{}
	T := 8

	fromEnv, err := SolveEnv(e, T)
	if err != nil {
		t.Fatalf("could not solve from environment: %v", err)
	}

	Fm, fv, Cm, cv := ExtractMatrices(e)
	manual, err := Solve(T, Fm, fv, Cm, cv)
	if err != nil {
		t.Fatalf("could not solve: %v", err)
	}

	for t2 := 0; t2 < T; t2++ {
		if !mat.Equal(fromEnv.K[t2], manual.K[t2]) {
			t.Errorf("K[%d] differs from the manual solution", t2)
		}
		if !mat.Equal(fromEnv.KBias[t2], manual.KBias[t2]) {
			t.Errorf("k[%d] differs from the manual solution", t2)
		}
		if !mat.Equal(fromEnv.Vxx[t2], manual.Vxx[t2]) {
			t.Errorf("Vxx[%d] differs from the manual solution", t2)
		}
	}
}

func TestSolveEnvPolicy(t *testing.T) {
	// The linear reward term pulls the state toward positive values,
	// so the last-step bias must be zero while earlier biases are not
	s, err := SolveEnv(quadraticEnv{}, 5)
	if err != nil {
		t.Fatalf("could not solve from environment: %v", err)
	}

	if got := s.KBias[4].AtVec(0); got != 0.0 {
		t.Errorf("k[4] = %v, want 0", got)
	}
	if got := s.KBias[0].AtVec(0); got == 0.0 {
		t.Error("k[0] should be non-zero under a linear state reward")
	}
}
