package city

import (
	"fmt"

	"citygrowth/internal/core"
	"citygrowth/internal/monitoring"
)

// State is the lifecycle phase of a Session.
type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateStepping
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateStepping:
		return "stepping"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Sink receives the height grid at the end of every run.
type Sink interface {
	Render(title string, heights [][]int) error
}

// RunResult describes the outcome of one RunSteps call.
type RunResult struct {
	Title     string   `json:"title"`
	Requested int      `json:"requested"`
	Completed int      `json:"completed"`
	Exhausted bool     `json:"exhausted"`
	StoppedAt *int     `json:"stopped_at,omitempty"`
	Heights   [][]int  `json:"heights"`
	Zones     [][]Zone `json:"zones"`
	Metrics   Metrics  `json:"metrics"`
}

// Session owns one grid, ledger and random stream. It is not safe for
// concurrent use; front ends serialize access themselves.
type Session struct {
	cfg    Config
	grid   *Grid
	ledger *Ledger
	rng    *core.RNG
	state  State
	sink   Sink
	steps  int
}

// NewSession returns an uninitialized session that reports to sink. A nil sink
// discards output.
func NewSession(sink Sink) *Session {
	return &Session{sink: sink, cfg: DefaultConfig()}
}

// SetSink replaces the display sink.
func (s *Session) SetSink(sink Sink) { s.sink = sink }

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Config returns the configuration applied by the most recent reset or run.
func (s *Session) Config() Config { return s.cfg }

// Grid exposes the live grid. It is nil before the first reset.
func (s *Session) Grid() *Grid { return s.grid }

// Ledger exposes the live ledger. It is nil before the first reset.
func (s *Session) Ledger() *Ledger { return s.ledger }

// StepsTaken counts growth steps applied since the last reset.
func (s *Session) StepsTaken() int { return s.steps }

// Reset validates cfg and rebuilds the grid and ledger from cfg.Seed.
func (s *Session) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.reset(cfg)
	return nil
}

func (s *Session) reset(cfg Config) {
	if s.grid == nil || s.grid.N() != cfg.Size {
		s.grid = NewGrid(cfg.Size)
	}
	if s.rng == nil {
		s.rng = core.NewRNG(cfg.Seed)
	} else {
		s.rng.Reseed(cfg.Seed)
	}
	s.ledger = NewLedger(cfg.Params.InitialMaterial, cfg.Params.PopulationCapacity)
	Seed(s.grid, s.rng, cfg.Params.MaxHeight, cfg.Params.ParkProbability)
	s.cfg = cfg
	s.steps = 0
	s.state = StateReady
}

// RunSteps runs up to cfg.Params.StepCount growth steps, seeding the session
// first if it has never been reset. Grid size, seed and the initial amounts
// only take effect on the next reset. The run stops early when the ledger runs
// out of material. The final grid is handed to the sink.
func (s *Session) RunSteps(cfg Config) (RunResult, error) {
	if err := cfg.Validate(); err != nil {
		return RunResult{}, err
	}
	if s.state == StateUninitialized {
		s.reset(cfg)
	}
	s.applyDials(cfg.Params)

	res := RunResult{
		Title:     fmt.Sprintf("After %d steps", cfg.Params.StepCount),
		Requested: cfg.Params.StepCount,
	}
	completed, ok := s.advance(cfg.Params.StepCount)
	res.Completed = completed
	if !ok {
		at := completed
		res.Exhausted = true
		res.StoppedAt = &at
		monitoring.Logf("city: materials exhausted at step %d", at)
	}

	res.Heights = s.grid.Heights()
	res.Zones = s.grid.Zones()
	res.Metrics = Measure(s.grid, s.ledger)
	if s.sink != nil {
		if err := s.sink.Render(res.Title, res.Heights); err != nil {
			monitoring.Logf("city: display sink: %v", err)
		}
	}
	return res, nil
}

// SetParams replaces the growth dials used by Tick and later runs. Dials that
// only matter at seeding time are stored for the next reset.
func (s *Session) SetParams(p Params) error {
	next := s.cfg
	next.Params = p
	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg.Params = p
	return nil
}

// applyDials copies the per-step dials without touching the initial amounts
// the current ledger was built from.
func (s *Session) applyDials(p Params) {
	s.cfg.Params.GrowthRate = p.GrowthRate
	s.cfg.Params.MaxHeight = p.MaxHeight
	s.cfg.Params.ParkProbability = p.ParkProbability
	s.cfg.Params.StepCount = p.StepCount
	s.cfg.Params.NearRoadBonus = p.NearRoadBonus
}

// Tick applies a single growth step with the session's current dials and
// reports whether it ran. It seeds the session on first use.
func (s *Session) Tick() bool {
	if s.state == StateUninitialized {
		s.reset(s.cfg)
	}
	_, ok := s.advance(1)
	return ok
}

// advance runs up to n steps and returns how many completed. ok is false when
// the ledger refused a step.
func (s *Session) advance(n int) (completed int, ok bool) {
	s.state = StateStepping
	defer func() { s.state = StateReady }()

	p := s.cfg.Params
	rates := RatesFor(p.GrowthRate)
	for t := 0; t < n; t++ {
		if !Step(s.grid, s.ledger, s.rng, rates, p.NearRoadBonus, p.MaxHeight) {
			return t, false
		}
		s.steps++
	}
	return n, true
}

// Metrics summarises the current grid and ledger. It seeds the session on
// first use so readers never observe unset cells.
func (s *Session) Metrics() Metrics {
	if s.state == StateUninitialized {
		s.reset(s.cfg)
	}
	return Measure(s.grid, s.ledger)
}
