package app

import (
	"errors"
	"fmt"
	"time"

	"citygrowth/internal/core"
	"citygrowth/internal/monitoring"
	"citygrowth/internal/sims/city"
)

// Action is a user command bound to a key.
type Action int

const (
	ActionToggleRun Action = iota + 1
	ActionStep
	ActionRunBatch
	ActionReset
	ActionReseed
	ActionQuit
)

// ErrQuit is returned by Apply when the user asked to leave.
var ErrQuit = errors.New("quit")

type batchRunner interface {
	RunBatch() (city.RunResult, error)
}

type exhaustionReporter interface {
	Exhausted() bool
}

// Controller maps user actions onto a simulation. It owns the run/pause state
// and the seed used by resets; rendering is left to the Game.
type Controller struct {
	sim     core.Sim
	seed    int64
	running bool
	last    string
	newSeed func() int64
}

// NewController returns a paused controller for sim.
func NewController(sim core.Sim, seed int64) *Controller {
	return &Controller{
		sim:     sim,
		seed:    seed,
		newSeed: func() int64 { return time.Now().UnixNano() },
	}
}

// Running reports whether continuous stepping is on.
func (c *Controller) Running() bool { return c.running }

// Seed reports the seed used by the last reset.
func (c *Controller) Seed() int64 { return c.seed }

// Apply performs a.
func (c *Controller) Apply(a Action) error {
	switch a {
	case ActionToggleRun:
		c.running = !c.running
	case ActionStep:
		c.running = false
		c.step()
	case ActionRunBatch:
		c.running = false
		runner, ok := c.sim.(batchRunner)
		if !ok {
			c.step()
			return nil
		}
		res, err := runner.RunBatch()
		if err != nil {
			return fmt.Errorf("run batch: %w", err)
		}
		c.last = res.Title
		if res.Exhausted {
			c.last = fmt.Sprintf("%s, stopped at %d", res.Title, *res.StoppedAt)
		}
	case ActionReset:
		c.reset(c.seed)
	case ActionReseed:
		c.reset(c.newSeed())
	case ActionQuit:
		return ErrQuit
	}
	return nil
}

// Tick advances one step when running and due. Running stops once the sim
// reports exhaustion.
func (c *Controller) Tick(due bool) {
	if !c.running || !due {
		return
	}
	c.step()
}

func (c *Controller) step() {
	if c.exhausted() {
		c.running = false
		return
	}
	c.sim.Step()
	if c.exhausted() {
		c.running = false
		monitoring.Logf("city: materials exhausted, stepping paused")
	}
}

func (c *Controller) reset(seed int64) {
	c.seed = seed
	c.running = false
	c.last = ""
	c.sim.Reset(seed)
}

func (c *Controller) exhausted() bool {
	r, ok := c.sim.(exhaustionReporter)
	return ok && r.Exhausted()
}

// Status is the one-line summary shown under the HUD.
func (c *Controller) Status() string {
	state := "paused"
	if c.running {
		state = "running"
	}
	if c.exhausted() {
		state = "exhausted"
	}
	if c.last != "" {
		return fmt.Sprintf("%s | %s", state, c.last)
	}
	return fmt.Sprintf("%s | seed %d", state, c.seed)
}
