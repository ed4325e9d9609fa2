package gridworld

import (
	"github.com/samuelfneumann/gridcraft/gridspec"
	"github.com/samuelfneumann/gridcraft/utils/floatutils"
)

// RewardFunction scores transitions by the tile the agent lands on.
// Tiles absent from the reward mapping are worth 0.
type RewardFunction struct {
	rewards map[gridspec.TileType]float64
}

// NewRewardFunction returns a RewardFunction with the argument
// tile-to-reward mapping. The mapping is copied, so later mutation of
// the argument does not affect the RewardFunction.
func NewRewardFunction(rewards map[gridspec.TileType]float64) *RewardFunction {
	cp := make(map[gridspec.TileType]float64, len(rewards))
	for tile, r := range rewards {
		cp[tile] = r
	}
	return &RewardFunction{cp}
}

// NewDefaultRewardFunction returns a RewardFunction with the default
// four reward tiers
func NewDefaultRewardFunction() *RewardFunction {
	return NewRewardFunction(map[gridspec.TileType]float64{
		gridspec.Reward:  1.0,
		gridspec.Reward2: 0.5,
		gridspec.Reward3: 0.1,
		gridspec.Reward4: -1.0,
	})
}

// Reward returns the reward for transitioning from state to nextState
// with the executed action a
func (r *RewardFunction) Reward(gs *gridspec.GridSpec, state int, a Action,
	nextState int) float64 {
	return r.rewards[gs.Get(nextState)]
}

// Min returns the minimum reward attainable under the reward mapping
func (r *RewardFunction) Min() float64 {
	min := 0.0
	for _, reward := range r.rewards {
		min = floatutils.Min(min, reward)
	}
	return min
}

// Max returns the maximum reward attainable under the reward mapping
func (r *RewardFunction) Max() float64 {
	max := 0.0
	for _, reward := range r.rewards {
		max = floatutils.Max(max, reward)
	}
	return max
}
