// Package main solves the interior fixed point A N* = -r of the
// configured Lotka-Volterra community for each scenario preset and
// reports whether it is feasible. A quick parameter sanity check before
// committing to a long run.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/lotka/config"
	"github.com/pthm-cable/lotka/sim"
)

// report holds the analysis results for one scenario.
type report struct {
	scenario    sim.Scenario
	equilibrium sim.Vector
	feasible    bool
	singular    bool
	residual    float64
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	scenarioTag := flag.String("scenario", "", "Analyze a single scenario (empty = all presets)")
	outputDir := flag.String("output", "", "Output directory for equilibria.csv (empty = stdout only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	scenarios := sim.Scenarios()
	if *scenarioTag != "" {
		s, err := sim.ParseScenario(*scenarioTag)
		if err != nil {
			log.Fatalf("invalid scenario: %v", err)
		}
		scenarios = []sim.Scenario{s}
	}

	a := interactionDense(cfg)

	var reports []report
	for _, scenario := range scenarios {
		rates, err := sim.GrowthRatesFor(scenario)
		if err != nil {
			log.Fatalf("growth rates for %s: %v", scenario, err)
		}

		r := solve(a, rates)
		r.scenario = scenario
		reports = append(reports, r)
		printReport(r)
	}

	if *outputDir != "" {
		if err := writeCSV(*outputDir, reports); err != nil {
			log.Fatalf("failed to write results: %v", err)
		}
		fmt.Printf("\nResults saved to: %s\n", filepath.Join(*outputDir, "equilibria.csv"))
	}
}

// interactionDense copies the config matrix into gonum form. Shape is
// enforced by config validation.
func interactionDense(cfg *config.Config) *mat.Dense {
	a := mat.NewDense(sim.NumSpecies, sim.NumSpecies, nil)
	for i, row := range cfg.Simulation.InteractionMatrix {
		for j, v := range row {
			a.Set(i, j, v)
		}
	}
	return a
}

// solve finds N* with A N* = -r and checks that it lies in the positive
// orthant. The residual ||A N* + r|| reports conditioning trouble that a
// formally successful solve can still carry.
func solve(a *mat.Dense, rates [sim.NumSpecies]float64) report {
	b := mat.NewVecDense(sim.NumSpecies, nil)
	for i := 0; i < sim.NumSpecies; i++ {
		b.SetVec(i, -rates[i])
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return report{singular: true}
	}

	rep := report{feasible: true}
	for i := 0; i < sim.NumSpecies; i++ {
		rep.equilibrium[i] = x.AtVec(i)
		if x.AtVec(i) <= 0 {
			rep.feasible = false
		}
	}

	var res mat.VecDense
	res.MulVec(a, &x)
	res.SubVec(&res, b)
	rep.residual = mat.Norm(&res, 2)

	return rep
}

// printReport writes one scenario's result to stdout.
func printReport(r report) {
	fmt.Printf("\nScenario: %s\n", r.scenario)
	if r.singular {
		fmt.Println("  interaction matrix is singular, no unique equilibrium")
		return
	}

	fmt.Printf("  equilibrium: predator=%.4f prey=%.4f competitor=%.4f\n",
		r.equilibrium[sim.SpeciesPredator],
		r.equilibrium[sim.SpeciesPrey],
		r.equilibrium[sim.SpeciesCompetitor])
	fmt.Printf("  residual: %.3e\n", r.residual)

	if r.feasible {
		fmt.Println("  feasible: all populations positive")
	} else {
		fmt.Println("  infeasible: equilibrium leaves the positive orthant")
	}
}

// writeCSV saves all reports to equilibria.csv in the output directory.
func writeCSV(dir string, reports []report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "equilibria.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"scenario", "predator", "prey", "competitor", "feasible", "residual"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		row := []string{
			r.scenario.String(),
			fmt.Sprintf("%.6f", r.equilibrium[sim.SpeciesPredator]),
			fmt.Sprintf("%.6f", r.equilibrium[sim.SpeciesPrey]),
			fmt.Sprintf("%.6f", r.equilibrium[sim.SpeciesCompetitor]),
			strconv.FormatBool(r.feasible && !r.singular),
			fmt.Sprintf("%.3e", r.residual),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
