package city

const (
	// DefaultMaterial is the building material available after a reset.
	DefaultMaterial = 1000
	// DefaultPopulationCapacity is the population capacity after a reset.
	DefaultPopulationCapacity = 5000
)

// Ledger tracks the consumable resources that gate growth steps.
type Ledger struct {
	Material           int `json:"material"`
	PopulationCapacity int `json:"population_capacity"`

	initialMaterial   int
	initialPopulation int
}

// NewLedger returns a ledger holding the given initial amounts.
func NewLedger(material, population int) *Ledger {
	l := &Ledger{initialMaterial: material, initialPopulation: population}
	l.Reset()
	return l
}

// CheckAndConsume spends one unit of material. It reports false, leaving the
// ledger untouched, when no material is left.
func (l *Ledger) CheckAndConsume() bool {
	if l.Material < 1 {
		return false
	}
	l.Material--
	return true
}

// Exhausted reports whether the next step would be refused.
func (l *Ledger) Exhausted() bool { return l.Material < 1 }

// Reset restores the initial amounts.
func (l *Ledger) Reset() {
	l.Material = l.initialMaterial
	l.PopulationCapacity = l.initialPopulation
}
