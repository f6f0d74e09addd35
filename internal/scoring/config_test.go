package scoring

import (
	"math"
	"testing"
)

func TestProfileForDispatch(t *testing.T) {
	testCases := []struct {
		name     string
		topEntry string
	}{
		{"marketing", "ppc"},
		{"product", "product"},
		{"pm", "product"},
		{"hr", "talent_acquisition"},
		{"finance", "financial_analysis"},
		{"ux", "user_research"},
		{"unknown-variant", "ppc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := ProfileFor(tc.name)
			if len(config.CategoryWeights) == 0 {
				t.Fatal("Profile has no weight table")
			}
			if config.CategoryWeights[0].Category != tc.topEntry {
				t.Errorf("Expected first category %q, got %q", tc.topEntry, config.CategoryWeights[0].Category)
			}
		})
	}
}

func TestProfileTablesAreConsistent(t *testing.T) {
	profiles := map[string]*Config{
		"marketing": MarketingProfile(),
		"product":   ProductProfile(),
		"hr":        HRProfile(),
		"finance":   FinanceProfile(),
		"ux":        UXProfile(),
	}

	for name, config := range profiles {
		t.Run(name, func(t *testing.T) {
			sum := 0.0
			declared := map[string]bool{}
			for _, cw := range config.CategoryWeights {
				sum += cw.Weight
				declared[cw.Category] = true
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("Category weights sum to %.4f, expected 1.0", sum)
			}

			for domain, categories := range config.FitGroups {
				if len(categories) == 0 {
					t.Errorf("Fit group %q is empty", domain)
				}
				for _, category := range categories {
					if !declared[category] {
						t.Errorf("Fit group %q references undeclared category %q", domain, category)
					}
				}
			}

			if math.Abs(config.HardShare+config.SoftShare-1.0) > 1e-9 {
				t.Errorf("Hard/soft shares sum to %.2f", config.HardShare+config.SoftShare)
			}
			if len(config.LabelRules) == 0 || config.LabelRules[len(config.LabelRules)-1].Threshold != 0 {
				t.Error("Label rules must end with a catch-all threshold of 0")
			}
		})
	}
}
