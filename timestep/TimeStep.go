// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either a first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes the way in which an episode ended, if the TimeStep is
// the last in its episode
type EndType int

const (
	// TerminalStateReached indicates that an episode ended in an
	// environmental terminal state
	TerminalStateReached EndType = iota

	// Timeout indicates that an episode ended due to an episode step
	// limit
	Timeout

	// Nil indicates that the episode has not yet ended
	Nil
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// Info holds auxiliary, environment-specific data about a transition
// that is not part of the observation proper, such as the intermediate
// states visited during a frame-skipped step or a masked task reward.
type Info map[string]interface{}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	EndType     EndType

	// Info is nil unless the environment has side-channel data to
	// report for the transition
	Info Info
}

// New returns a new TimeStep with a Nil EndType and no Info
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{t, r, d, o, n, Nil, nil}
}

// SetEnd sets the way in which the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.EndType = e
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number)
}
