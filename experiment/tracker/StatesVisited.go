package tracker

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/samuelfneumann/gridcraft/timestep"
	"gonum.org/v1/gonum/mat"
)

// StatesVisited tracks how many distinct states are visited in each
// episode. Observations are mapped back to states with an injected
// decoding function, usually the observation model of the environment
// generating the timesteps. Observation models with lossy encodings
// cannot be tracked this way.
type StatesVisited struct {
	decode   func(*mat.VecDense) (int, error)
	visited  map[int]struct{}
	counts   []float64
	filename string
}

// NewStatesVisited creates and returns a new *StatesVisited Tracker
// which decodes observations to states with decode
func NewStatesVisited(filename string,
	decode func(*mat.VecDense) (int, error)) Tracker {
	return &StatesVisited{
		decode:   decode,
		visited:  make(map[int]struct{}),
		filename: filename,
	}
}

// Track records the state a timestep's observation encodes. When the
// last timestep of an episode is tracked, the number of distinct
// states seen in that episode is stored.
//
// Track panics if the observation cannot be decoded to a state.
func (s *StatesVisited) Track(step ts.TimeStep) {
	state, err := s.decode(step.Observation)
	if err != nil {
		log.Fatalf("track: could not decode observation: %v", err)
	}
	s.visited[state] = struct{}{}

	if step.Last() {
		s.counts = append(s.counts, float64(len(s.visited)))
		s.visited = make(map[int]struct{})
	}
}

// Save saves the per-episode distinct state counts to disk
func (s *StatesVisited) Save() {
	file, err := os.Create(s.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(s.counts); err != nil {
		log.Fatalf("could not encode states visited data: %v", err)
	}
}
