package city

import "citygrowth/internal/core"

// Sim exposes a Session through the framework-wide core.Sim contract so the
// GUI can drive it tick by tick.
type Sim struct {
	cfg     Config
	session *Session
	display []uint8
}

// New returns a city simulation with an n×n grid using defaults.
func New(n int) *Sim {
	cfg := DefaultConfig()
	cfg.Size = n
	return NewWithConfig(cfg)
}

// NewWithConfig returns a city simulation configured from cfg. Invalid
// configurations fall back to the defaults.
func NewWithConfig(cfg Config) *Sim {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	s := &Sim{cfg: cfg, session: NewSession(nil)}
	_ = s.session.SetParams(cfg.Params)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "city" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Size, H: s.cfg.Size} }

// Cells exposes the current display buffer.
func (s *Sim) Cells() []uint8 {
	if s.display == nil {
		s.rebuildDisplay()
	}
	return s.display
}

// Session exposes the underlying session.
func (s *Sim) Session() *Session { return s.session }

// Reset reseeds the city. A zero seed falls back to the configured seed.
func (s *Sim) Reset(seed int64) {
	cfg := s.cfg
	cfg.Params = s.session.Config().Params
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := s.session.Reset(cfg); err != nil {
		return
	}
	s.rebuildDisplay()
}

// Step advances the city by a single growth tick. Once material runs out the
// grid no longer changes.
func (s *Sim) Step() {
	if s.session.Tick() {
		s.rebuildDisplay()
	}
}

// RunBatch runs a full StepCount batch, as one press of the run button.
func (s *Sim) RunBatch() (RunResult, error) {
	res, err := s.session.RunSteps(s.session.Config())
	if err == nil {
		s.rebuildDisplay()
	}
	return res, err
}

// Exhausted reports whether the ledger has run out of material.
func (s *Sim) Exhausted() bool {
	l := s.session.Ledger()
	return l != nil && l.Exhausted()
}

// ZoneLayer exposes the row-major zone layer.
func (s *Sim) ZoneLayer() []Zone { return s.grid().ZoneCells() }

// HeightLayer exposes the row-major height layer.
func (s *Sim) HeightLayer() []int { return s.grid().HeightCells() }

// MaxHeight reports the active height cap.
func (s *Sim) MaxHeight() int { return s.session.Config().Params.MaxHeight }

// BonusMask marks the cells whose growth probability includes the near-road
// bonus under the current dials.
func (s *Sim) BonusMask() []bool {
	g := s.grid()
	p := s.session.Config().Params
	rates := RatesFor(p.GrowthRate)
	n := g.N()
	mask := make([]bool, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			base := rates.Rate(g.Zone(row, col))
			mask[row*n+col] = EffectiveRate(g, row, col, rates, p.NearRoadBonus) != base
		}
	}
	return mask
}

func (s *Sim) grid() *Grid {
	if s.session.Grid() == nil {
		s.Reset(0)
	}
	return s.session.Grid()
}

func init() {
	core.Register("city", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
