package sim

import (
	"errors"
	"strings"
	"testing"
)

func TestParseScenario(t *testing.T) {
	cases := []struct {
		name    string
		tag     string
		want    Scenario
		wantErr bool
		hint    string
	}{
		{"balanced", "balanced", ScenarioBalanced, false, ""},
		{"explosive", "explosive-growth", ScenarioExplosiveGrowth, false, ""},
		{"collapse", "collapse", ScenarioCollapse, false, ""},
		{"case and space", "  Balanced ", ScenarioBalanced, false, ""},
		{"typo suggests balanced", "ballanced", 0, true, `"balanced"`},
		{"typo suggests collapse", "colapse", 0, true, `"collapse"`},
		{"nonsense", "warp-speed", 0, true, ""},
		{"empty", "", 0, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseScenario(tc.tag)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseScenario(%q) = %v, want error", tc.tag, got)
				}
				if !errors.Is(err, ErrUnknownScenario) {
					t.Errorf("error %v does not wrap ErrUnknownScenario", err)
				}
				if tc.hint != "" && !strings.Contains(err.Error(), tc.hint) {
					t.Errorf("error %q missing suggestion %s", err, tc.hint)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScenario(%q): %v", tc.tag, err)
			}
			if got != tc.want {
				t.Errorf("ParseScenario(%q) = %v, want %v", tc.tag, got, tc.want)
			}
		})
	}
}

func TestApplyScenarioChangesOnlyGrowthRates(t *testing.T) {
	e := NewEngine(DefaultParameters())
	before := e.Parameters()

	for _, s := range Scenarios() {
		if err := e.ApplyScenario(s); err != nil {
			t.Fatalf("apply %v: %v", s, err)
		}
		after := e.Parameters()
		if after.Interaction != before.Interaction {
			t.Errorf("%v: interaction matrix changed", s)
		}
		if after.TimeStep != before.TimeStep {
			t.Errorf("%v: time step changed", s)
		}
		if after.Floor != before.Floor {
			t.Errorf("%v: floor changed", s)
		}
		want, _ := GrowthRatesFor(s)
		if after.GrowthRates != want {
			t.Errorf("%v: growth rates = %v, want %v", s, after.GrowthRates, want)
		}
	}
}

func TestUnknownScenarioLeavesStateUnchanged(t *testing.T) {
	e := NewEngine(DefaultParameters())
	rates := e.Parameters().GrowthRates
	scenario := e.Scenario()

	err := e.ApplyScenario(Scenario(9))
	if !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("error = %v, want ErrUnknownScenario", err)
	}
	if e.Parameters().GrowthRates != rates {
		t.Error("growth rates changed on failed apply")
	}
	if e.Scenario() != scenario {
		t.Error("scenario changed on failed apply")
	}
}

func TestDescribeScenario(t *testing.T) {
	for _, s := range Scenarios() {
		desc, err := DescribeScenario(s)
		if err != nil {
			t.Errorf("%v: %v", s, err)
		}
		if desc == "" {
			t.Errorf("%v: empty description", s)
		}
	}
	if _, err := DescribeScenario(Scenario(99)); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("error = %v, want ErrUnknownScenario", err)
	}
}

func TestScenarioString(t *testing.T) {
	cases := []struct {
		s    Scenario
		want string
	}{
		{ScenarioBalanced, "balanced"},
		{ScenarioExplosiveGrowth, "explosive-growth"},
		{ScenarioCollapse, "collapse"},
		{Scenario(9), "scenario(9)"},
	}
	for _, tc := range cases {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", uint8(tc.s), got, tc.want)
		}
	}
}
