package gridworld

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/gridcraft/gridspec"
	"gonum.org/v1/gonum/mat"
)

const obsLayout string = `#####
#SOR#
#O#O#
#####`

func obsModels(t *testing.T, gs *gridspec.GridSpec) map[string]ObsModel {
	t.Helper()
	return map[string]ObsModel{
		"index":          NewIndexObs(gs),
		"oneHot":         NewOneHotObs(gs, false, false),
		"oneHotEyes":     NewOneHotObs(gs, false, true),
		"coordinate":     NewOneHotObs(gs, true, false),
		"coordinateEyes": NewOneHotObs(gs, true, true),
	}
}

func TestObsRoundTrip(t *testing.T) {
	gs, err := gridspec.FromString(obsLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	for name, model := range obsModels(t, gs) {
		for state := 0; state < gs.Len(); state++ {
			obs := model.Obs(state)
			if obs.Len() != model.Len() {
				t.Errorf("%v: observation has length %d, want %d", name,
					obs.Len(), model.Len())
			}

			back, err := model.State(obs)
			if err != nil {
				t.Errorf("%v: could not decode state %d: %v", name, state,
					err)
			}
			if back != state {
				t.Errorf("%v: state %d decoded as %d", name, state, back)
			}
		}
	}
}

func TestObsBatchRoundTrip(t *testing.T) {
	gs, err := gridspec.FromString(obsLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	states := []int{0, 6, 7, 8, 11, 13}
	for name, model := range obsModels(t, gs) {
		batch := model.ObsBatch(states)

		if batch.Dims() != 2 {
			t.Fatalf("%v: batch has %d dimensions, want 2", name,
				batch.Dims())
		}
		if rows := batch.Shape()[0]; rows != len(states) {
			t.Errorf("%v: batch has %d rows, want %d", name, rows,
				len(states))
		}
		if cols := batch.Shape()[1]; cols != model.Len() {
			t.Errorf("%v: batch rows have length %d, want %d", name, cols,
				model.Len())
		}

		back, err := model.StateBatch(batch)
		if err != nil {
			t.Fatalf("%v: could not decode batch: %v", name, err)
		}
		for i := range states {
			if back[i] != states[i] {
				t.Errorf("%v: row %d decoded as %d, want %d", name, i,
					back[i], states[i])
			}
		}
	}
}

func TestOneHotObsLengths(t *testing.T) {
	gs, err := gridspec.FromString(obsLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	lengths := map[ObsModel]int{
		NewIndexObs(gs):                1,
		NewOneHotObs(gs, false, false): gs.Len(),
		NewOneHotObs(gs, false, true):  gs.Len() + 8,
		NewOneHotObs(gs, true, false):  gs.Width() + gs.Height(),
		NewOneHotObs(gs, true, true):   gs.Width() + gs.Height() + 8,
	}
	for model, want := range lengths {
		if got := model.Len(); got != want {
			t.Errorf("observation length = %d, want %d", got, want)
		}
	}
}

func TestEyeFeatures(t *testing.T) {
	gs, err := gridspec.FromString(obsLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}
	model := NewOneHotObs(gs, false, true)

	// The empty cell at (2, 1) has a wall above, a wall below, the
	// start tile to the left, and the primary reward tile to the right
	obs := model.Obs(gs.XYToIdx(2, 1))

	wallEyes := []float64{1, 1, 0, 0}
	for i, want := range wallEyes {
		if got := obs.AtVec(i); got != want {
			t.Errorf("wall eye %d = %v, want %v", i, got, want)
		}
	}

	rewardEyes := []float64{0, 0, 0, 1}
	for i, want := range rewardEyes {
		if got := obs.AtVec(4 + i); got != want {
			t.Errorf("reward eye %d = %v, want %v", i, got, want)
		}
	}
}

func TestLocalObsIsLossy(t *testing.T) {
	gs, err := gridspec.FromString(obsLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	// Observe only whether the cell above is a wall
	model := NewLocalObs(func(state int) *mat.VecDense {
		obs := mat.NewVecDense(1, nil)
		if gs.Neighbors(state)[0] == gridspec.Wall {
			obs.SetVec(0, 1.0)
		}
		return obs
	}, 1)

	obs := model.Obs(gs.XYToIdx(1, 1))
	if obs.AtVec(0) != 1.0 {
		t.Errorf("observation = %v, want 1", obs.AtVec(0))
	}

	if _, err := model.State(obs); !errors.Is(err, ErrLossyObs) {
		t.Errorf("decoding a local observation returned %v, want "+
			"ErrLossyObs", err)
	}
	if _, err := model.StateBatch(model.ObsBatch([]int{0, 1})); !errors.Is(
		err, ErrLossyObs) {
		t.Errorf("decoding a local batch returned %v, want ErrLossyObs", err)
	}
}

func TestStateBatchRejectsWrongShape(t *testing.T) {
	gs, err := gridspec.FromString(obsLayout)
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}
	model := NewOneHotObs(gs, false, false)

	batch := NewIndexObs(gs).ObsBatch([]int{0, 1})
	if _, err := model.StateBatch(batch); err == nil {
		t.Error("expected an error for rows of the wrong length")
	}
}
