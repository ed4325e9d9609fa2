package environment

import ts "github.com/samuelfneumann/gridcraft/timestep"

// RewardLimit implements the Ender interface to end episodes whenever
// the reward on a timestep exceeds some threshold. It can be used to
// end episodes on the first positive reward, treating every rewarding
// state as terminal.
type RewardLimit struct {
	threshold float64
}

// NewRewardLimit creates and returns a new reward limit which ends
// episodes whenever a timestep's reward is strictly greater than
// threshold
func NewRewardLimit(threshold float64) Ender {
	return RewardLimit{threshold}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is
// timestep.TerminalStateReached
func (r RewardLimit) End(t *ts.TimeStep) bool {
	if t.Reward > r.threshold {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}
	return false
}
