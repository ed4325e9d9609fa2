// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	ts "github.com/samuelfneumann/gridcraft/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when and how episodes end
type Ender interface {
	// End takes the next timestep in an episode and modifies it
	// in-place to have the appropriate StepType and EndType if the
	// episode should end at that timestep, returning whether the
	// episode ended
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment and determines the goal states of an environment
type Task interface {
	Starter
	Ender

	GetReward(state, action, nextState mat.Vector) float64
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	Min() float64
	Max() float64
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Reset() (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep

	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
