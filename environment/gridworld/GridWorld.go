package gridworld

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gridcraft/environment"
	"github.com/samuelfneumann/gridcraft/gridspec"
	ts "github.com/samuelfneumann/gridcraft/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Keys under which side-channel transition data is reported in a
// timestep's Info field
const (
	// FrameskipStates holds the []int of states visited during the
	// micro-steps of a frame-skipped step
	FrameskipStates string = "frameskip_states"

	// FrameskipObservations holds the *tensor.Dense of stacked
	// observations of the visited states
	FrameskipObservations string = "frameskip_observations"

	// FrameskipActions holds the []Action applied on each micro-step
	FrameskipActions string = "frameskip_actions"

	// TaskReward holds the float64 reward masked from a timestep when
	// zero-reward masking is on
	TaskReward string = "task_reward"
)

// Config describes a specific configuration of a GridWorld
type Config struct {
	// ObsModel encodes states into observations. If nil, states are
	// observed as their raw cell index.
	ObsModel ObsModel

	// RewardFunction scores transitions. If nil, the default four
	// reward tiers are used.
	RewardFunction *RewardFunction

	// ActionNoise is the probability mass redistributed from the
	// intended action to alternative legal actions. The simulation
	// currently requires deterministic transitions, so any non-zero
	// value is a configuration error.
	ActionNoise float64

	// Frameskip repeats the chosen action for this many consecutive
	// micro-steps per Step call, reporting the final reward only and
	// recording the intermediate trace in the timestep Info. Values
	// below 2 disable frame skipping.
	Frameskip int

	// ZeroReward masks the true reward out of returned timesteps,
	// moving it into the Info field under TaskReward
	ZeroReward bool

	// TerminateOnReward ends the episode whenever the reported reward
	// is positive
	TerminateOnReward bool

	// Ender optionally ends episodes, e.g. at a step limit
	Ender env.Ender

	Discount float64
}

// GridWorld is a tile-based MDP environment. An agent occupies a
// single non-wall cell and moves with the five gridworld actions,
// collecting rewards determined by the tiles it lands on.
type GridWorld struct {
	gs    *gridspec.GridSpec
	model *TransitionModel
	rewFn *RewardFunction
	obs   ObsModel

	starter     env.Starter
	rewardEnder env.Ender
	ender       env.Ender

	frameskip  int
	zeroReward bool
	discount   float64

	source rand.Source

	state       int
	started     bool
	currentStep ts.TimeStep
}

// New creates a new GridWorld on the argument tile map and returns it
// along with its first timestep. The environment starts ready to use:
// a starting cell has already been sampled uniformly among the map's
// start tiles.
func New(gs *gridspec.GridSpec, c Config, seed uint64) (*GridWorld,
	ts.TimeStep, error) {
	if c.ActionNoise != 0.0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: must use deterministic " +
			"transitions")
	}

	model, err := NewTransitionModel(gs, c.ActionNoise)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	starter, err := NewStartTileStarter(gs, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	obs := c.ObsModel
	if obs == nil {
		obs = NewIndexObs(gs)
	}
	rewFn := c.RewardFunction
	if rewFn == nil {
		rewFn = NewDefaultRewardFunction()
	}

	var rewardEnder env.Ender
	if c.TerminateOnReward {
		rewardEnder = env.NewRewardLimit(0.0)
	}

	g := &GridWorld{
		gs:          gs,
		model:       model,
		rewFn:       rewFn,
		obs:         obs,
		starter:     starter,
		rewardEnder: rewardEnder,
		ender:       c.Ender,
		frameskip:   c.Frameskip,
		zeroReward:  c.ZeroReward,
		discount:    c.Discount,
		source:      rand.NewSource(seed),
	}

	firstStep, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}

	return g, firstStep, nil
}

// Reset resets the environment, sampling a new starting cell uniformly
// among the map's start tiles, and returns the starting timestep
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	start := g.starter.Start()
	g.state = int(start.AtVec(0))
	g.started = true

	step := ts.New(ts.First, 0, g.discount, g.obs.Obs(g.state), 0)
	g.currentStep = step

	return step, nil
}

// Step takes one environmental step given some action. If frame
// skipping is configured, the action is applied on each of the
// micro-steps, and the trace of intermediate states, observations, and
// actions is reported in the returned timestep's Info field.
func (g *GridWorld) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if !g.started {
		return ts.TimeStep{}, true, fmt.Errorf("step: environment stepped " +
			"before reset")
	}
	if action.Len() != 1 {
		return ts.TimeStep{}, true, fmt.Errorf("step: actions must be " +
			"1-dimensional")
	}
	a := Action(int(action.AtVec(0)))
	if a < 0 || int(a) >= NumActions {
		return ts.TimeStep{}, true, fmt.Errorf("step: no action %v", a)
	}

	var info ts.Info
	var next int
	var reward float64

	if g.frameskip > 1 {
		next = g.state
		visited := make([]int, 0, g.frameskip)
		actions := make([]Action, g.frameskip)
		for i := 0; i < g.frameskip; i++ {
			next, reward = g.transition(next, a)
			visited = append(visited, next)
			actions[i] = a
		}
		info = ts.Info{
			FrameskipStates:       visited,
			FrameskipObservations: g.obs.ObsBatch(visited),
			FrameskipActions:      actions,
		}
	} else {
		next, reward = g.transition(g.state, a)
	}

	g.state = next

	if g.zeroReward {
		if info == nil {
			info = ts.Info{}
		}
		info[TaskReward] = reward
		reward = 0.0
	}

	step := ts.New(ts.Mid, reward, g.discount, g.obs.Obs(next),
		g.currentStep.Number+1)
	step.Info = info

	if g.rewardEnder != nil {
		g.rewardEnder.End(&step)
	}
	if g.ender != nil && !step.Last() {
		g.ender.End(&step)
	}

	g.currentStep = step
	return step, step.Last(), nil
}

// transition performs one micro-step from state with intended action
// a, returning the next state and the transition's reward. The
// executed action is drawn from the transition model's distribution
// over actions.
func (g *GridWorld) transition(state int, a Action) (int, float64) {
	probs := g.model.ActionProbs(state, a)

	weights := make([]float64, NumActions)
	copy(weights, probs.RawVector().Data)
	executed := Action(distuv.NewCategorical(weights, g.source).Rand())

	x, y := g.gs.IdxToXY(state)
	dx, dy := executed.Displacement()
	next := g.gs.XYToIdx(x+dx, y+dy)

	return next, g.rewFn.Reward(g.gs, state, executed, next)
}

// CurrentTimeStep returns the current timestep of the environment
func (g *GridWorld) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// GridSpec returns the tile map the environment runs on
func (g *GridWorld) GridSpec() *gridspec.GridSpec {
	return g.gs
}

// StateToObs encodes a state with the environment's observation model
func (g *GridWorld) StateToObs(state int) *mat.VecDense {
	return g.obs.Obs(state)
}

// ObsToState decodes an observation back to the state it encodes
func (g *GridWorld) ObsToState(obs mat.Vector) (int, error) {
	return g.obs.State(obs)
}

// Tile returns the tile at the cell an observation encodes
func (g *GridWorld) Tile(obs mat.Vector) (gridspec.TileType, error) {
	state, err := g.obs.State(obs)
	if err != nil {
		return gridspec.OutOfBounds, fmt.Errorf("tile: %v", err)
	}
	return g.gs.Get(state), nil
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0.0})
	upperBound := mat.NewVecDense(1, []float64{float64(NumActions - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() env.Spec {
	dims := g.obs.Len()
	shape := mat.NewVecDense(dims, nil)
	lowerBound := mat.NewVecDense(dims, nil)

	if _, ok := g.obs.(*IndexObs); ok {
		upperBound := mat.NewVecDense(1, []float64{float64(g.gs.Len() - 1)})
		return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
			env.Discrete)
	}

	ones := make([]float64, dims)
	for i := range ones {
		ones[i] = 1.0
	}
	upperBound := mat.NewVecDense(dims, ones)
	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// RewardSpec returns the reward specification of the environment
func (g *GridWorld) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.rewFn.Min()})
	upperBound := mat.NewVecDense(1, []float64{g.rewFn.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the
// environment
func (g *GridWorld) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String renders the tile map as text with the agent drawn as '*'
func (g *GridWorld) String() string {
	var builder strings.Builder
	width := g.gs.Width()

	builder.WriteString(strings.Repeat("-", width+2))
	builder.WriteRune('\n')
	for y := 0; y < g.gs.Height(); y++ {
		builder.WriteRune('|')
		for x := 0; x < width; x++ {
			if g.gs.XYToIdx(x, y) == g.state {
				builder.WriteRune('*')
			} else {
				builder.WriteRune(g.gs.At(x, y).Rune())
			}
		}
		builder.WriteString("|\n")
	}
	builder.WriteString(strings.Repeat("-", width+2))
	builder.WriteRune('\n')

	return builder.String()
}
