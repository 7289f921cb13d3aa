package sim

// NumSpecies is the fixed arity of the model. Growth rates, matrix rows and
// population vectors are all indexed by the same species order.
const NumSpecies = 3

// Species indexes one of the three modeled populations.
type Species uint8

const (
	SpeciesPredator Species = iota
	SpeciesPrey
	SpeciesCompetitor
)

// String returns the display label for the species.
func (s Species) String() string {
	switch s {
	case SpeciesPredator:
		return "predator"
	case SpeciesPrey:
		return "prey"
	case SpeciesCompetitor:
		return "competitor"
	}
	return "unknown"
}

// AllSpecies lists the species in index order.
func AllSpecies() []Species {
	return []Species{SpeciesPredator, SpeciesPrey, SpeciesCompetitor}
}
