package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scenario selects one of the built-in growth-rate regimes. The set is
// closed: presentation layers switch between these three presets and
// nothing else.
type Scenario uint8

const (
	// ScenarioBalanced cycles all three populations around the interior
	// fixed point of the reference matrix.
	ScenarioBalanced Scenario = iota
	// ScenarioExplosiveGrowth pushes every growth rate strongly positive.
	ScenarioExplosiveGrowth
	// ScenarioCollapse forces every growth rate negative, driving all
	// populations down to the floor.
	ScenarioCollapse

	numScenarios // keep last
)

// ErrUnknownScenario reports a tag or value outside the preset set.
var ErrUnknownScenario = errors.New("sim: unknown scenario")

type preset struct {
	tag         string
	rates       [NumSpecies]float64
	description string
}

var presets = [numScenarios]preset{
	ScenarioBalanced: {
		tag:         "balanced",
		rates:       [NumSpecies]float64{0.5, 0.3, 0.4},
		description: "Moderate growth for all three species; dominance trades hands in a slow cycle.",
	},
	ScenarioExplosiveGrowth: {
		tag:         "explosive-growth",
		rates:       [NumSpecies]float64{1.5, 1.2, 1.3},
		description: "Strongly positive growth everywhere; populations overshoot until self-limitation bites.",
	},
	ScenarioCollapse: {
		tag:         "collapse",
		rates:       [NumSpecies]float64{-0.8, -0.6, -0.7},
		description: "Negative growth everywhere; every population decays toward the survival floor.",
	},
}

// Valid reports whether s is one of the built-in presets.
func (s Scenario) Valid() bool { return s < numScenarios }

// String returns the scenario tag, e.g. "explosive-growth".
func (s Scenario) String() string {
	if !s.Valid() {
		return fmt.Sprintf("scenario(%d)", uint8(s))
	}
	return presets[s].tag
}

// Scenarios lists the built-in presets in display order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioBalanced, ScenarioExplosiveGrowth, ScenarioCollapse}
}

// DescribeScenario returns the human-readable description shown by the
// presentation layer.
func DescribeScenario(s Scenario) (string, error) {
	if !s.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownScenario, uint8(s))
	}
	return presets[s].description, nil
}

// GrowthRatesFor returns the growth-rate triple the scenario installs.
func GrowthRatesFor(s Scenario) ([NumSpecies]float64, error) {
	if !s.Valid() {
		return [NumSpecies]float64{}, fmt.Errorf("%w: %d", ErrUnknownScenario, uint8(s))
	}
	return presets[s].rates, nil
}

// ParseScenario resolves a string tag to a Scenario. Matching is
// case-insensitive and whitespace-tolerant. Unknown tags fail with
// ErrUnknownScenario; a near-miss adds a suggestion to the message.
func ParseScenario(tag string) (Scenario, error) {
	norm := strings.ToLower(strings.TrimSpace(tag))
	for i := range presets {
		if presets[i].tag == norm {
			return Scenario(i), nil
		}
	}
	if hint, ok := closestTag(norm); ok {
		return 0, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownScenario, tag, hint)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScenario, tag)
}

// closestTag finds the preset tag nearest to the input, if any lies within
// the tolerated edit distance.
func closestTag(tag string) (string, bool) {
	best := ""
	bestDist := 0
	for i := range presets {
		cand := presets[i].tag
		dist := levenshtein.ComputeDistance(tag, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if best == "" || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best, best != ""
}

// levenshteinLimit scales the tolerated edit distance with tag length.
func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
