package gridworld

import (
	"testing"

	"github.com/samuelfneumann/gridcraft/gridspec"
)

func TestDefaultRewardTiers(t *testing.T) {
	gs, err := gridspec.FromString("SR234O")
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}
	rewFn := NewDefaultRewardFunction()

	wants := map[int]float64{
		0: 0.0,  // start
		1: 1.0,  // reward
		2: 0.5,  // reward2
		3: 0.1,  // reward3
		4: -1.0, // reward4
		5: 0.0,  // empty
	}
	for next, want := range wants {
		if got := rewFn.Reward(gs, 0, Right, next); got != want {
			t.Errorf("reward for landing on cell %d = %v, want %v", next,
				got, want)
		}
	}
}

func TestRewardFunctionCopiesMapping(t *testing.T) {
	gs, err := gridspec.FromString("SR")
	if err != nil {
		t.Fatalf("could not parse layout: %v", err)
	}

	mapping := map[gridspec.TileType]float64{gridspec.Reward: 2.0}
	rewFn := NewRewardFunction(mapping)

	// Mutating the argument mapping must not affect the constructed
	// RewardFunction
	mapping[gridspec.Reward] = -100.0
	if got := rewFn.Reward(gs, 0, Right, 1); got != 2.0 {
		t.Errorf("reward = %v, want 2.0", got)
	}
}

func TestRewardFunctionBounds(t *testing.T) {
	rewFn := NewDefaultRewardFunction()

	if got := rewFn.Min(); got != -1.0 {
		t.Errorf("min reward = %v, want -1.0", got)
	}
	if got := rewFn.Max(); got != 1.0 {
		t.Errorf("max reward = %v, want 1.0", got)
	}

	// The zero reward of unmapped tiles bounds the range of an
	// all-negative mapping
	negative := NewRewardFunction(map[gridspec.TileType]float64{
		gridspec.Lava: -10.0,
	})
	if got := negative.Max(); got != 0.0 {
		t.Errorf("max reward = %v, want 0.0", got)
	}
}
