package main

import (
	"fmt"

	"github.com/samuelfneumann/gridcraft/environment"
	"github.com/samuelfneumann/gridcraft/environment/gridworld"
	"github.com/samuelfneumann/gridcraft/experiment"
	"github.com/samuelfneumann/gridcraft/experiment/tracker"
	"github.com/samuelfneumann/gridcraft/gridspec"
	"github.com/samuelfneumann/gridcraft/lqr"
	"github.com/samuelfneumann/gridcraft/plot"
	"github.com/samuelfneumann/gridcraft/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

const layout string = `#########
#SOOOOOR#
#O##O##O#
#OOO#OOO#
#O#OOO#O#
#SOO#OO2#
#########`

func main() {
	var seed uint64 = 192382

	gs, err := gridspec.FromString(layout)
	if err != nil {
		panic(err)
	}

	// Create the gridworld with flat one-hot observations and
	// episodes ending on the first reward or after 100 steps
	config := gridworld.Config{
		ObsModel:          gridworld.NewOneHotObs(gs, false, false),
		TerminateOnReward: true,
		Ender:             environment.NewStepLimit(100),
		Discount:          0.99,
	}
	g, _, err := gridworld.New(gs, config, seed)
	if err != nil {
		panic(err)
	}
	fmt.Println(g)

	// Run a uniform random policy, tracking episodic returns
	policy := experiment.NewUniformRandom(g.ActionSpec(), seed)
	returns := tracker.NewReturn("./data.bin")
	e := experiment.NewOnline(g, policy, 10_000, returns)
	if err := e.Run(); err != nil {
		panic(err)
	}
	e.Save()

	data := tracker.LoadData("./data.bin")
	fmt.Printf("Ran %d episodes\n", len(data))

	// Record one last episode and plot its path over the map
	step, err := g.Reset()
	if err != nil {
		panic(err)
	}
	path := []int{}
	for !step.Last() {
		state, err := g.ObsToState(step.Observation)
		if err != nil {
			panic(err)
		}
		path = append(path, state)

		step, _, err = g.Step(policy.SelectAction(step))
		if err != nil {
			panic(err)
		}
	}
	if err := plot.Trajectories(gs, [][]int{path}, "./trajs.png"); err != nil {
		panic(err)
	}

	// Solve a small LQR problem: a 1-D system x_{t+1} = x_t + u_t
	// with unit state and action costs
	Fm := mat.NewDense(1, 2, []float64{1, 1})
	fv := mat.NewVecDense(1, nil)
	Cm := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	cv := mat.NewVecDense(2, nil)

	solution, err := lqr.Solve(20, Fm, fv, Cm, cv)
	if err != nil {
		panic(err)
	}
	fmt.Println("K[0]:", matutils.Format(solution.K[0]))
	fmt.Println("Vxx[0]:", matutils.Format(solution.Vxx[0]))
}
