// Package experiment implements functionality for running episodes of
// a policy acting in an environment while tracking diagnostic data
package experiment

import (
	"fmt"
	"time"

	env "github.com/samuelfneumann/gridcraft/environment"
	"github.com/samuelfneumann/gridcraft/experiment/tracker"
	ts "github.com/samuelfneumann/gridcraft/timestep"
	"github.com/samuelfneumann/gridcraft/utils/progressbar"
)

// Online runs a policy in an environment for a fixed number of
// timesteps, sending every timestep to its Trackers
type Online struct {
	env.Environment
	Policy
	maxSteps     uint
	currentSteps uint
	trackers     []tracker.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given policy. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter lists
// the tracker.Trackers which determine what data is saved.
func NewOnline(e env.Environment, p Policy, steps uint,
	t ...tracker.Tracker) *Online {
	return &Online{e, p, steps, 0, t}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode, returning whether the maximum
// timestep limit of the experiment has been reached
func (o *Online) RunEpisode(pbar *progressbar.ProgressBar) (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: could not reset "+
			"environment: %v", err)
	}
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		action := o.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: could not step "+
				"environment: %v", err)
		}

		o.track(step)
		if pbar != nil {
			pbar.Increment()
		}
	}

	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps, displaying a
// progress bar on the terminal
func (o *Online) Run() error {
	pbar := progressbar.New(40, int(o.maxSteps), time.Second, false)
	pbar.Display()
	defer pbar.Close()

	ended := false
	for !ended {
		var err error
		ended, err = o.RunEpisode(pbar)
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() {
	for _, t := range o.trackers {
		t.Save()
	}
}

// track tracks the current timestep by caching its data in each
// Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
