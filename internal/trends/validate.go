package trends

import (
	"fmt"
	"strings"
)

// Sub-score ceilings from the scoring rubric.
const (
	maxDevelopmentPotential = 40
	maxInterestLevel        = 20
	maxLifeUtility          = 20
	maxProductionEase       = 20
)

// ValidateConcept checks the seven required fields and the sub-score
// ranges on a decoded draft. nil means valid. Score fields are pointers,
// which resolves the present-vs-zero ambiguity explicitly: a total_score
// that is present but zero passes, an absent one fails, and an absent
// sub-score fails its range check.
//
// ValidateConcept deliberately does not require the sub-scores to sum to
// total_score; see ConsistentScores.
func ValidateConcept(d ConceptDraft) error {
	required := []struct {
		name  string
		value string
	}{
		{"product_name", d.ProductName},
		{"market_category", d.MarketCategory},
		{"target_audience", d.TargetAudience},
		{"description", d.Description},
		{"manufacturing_details", d.ManufacturingDetails},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s required", f.name)
		}
	}
	if d.TotalScore == nil {
		return fmt.Errorf("total_score required")
	}
	if d.ScoreBreakdown == nil {
		return fmt.Errorf("score_breakdown required")
	}
	b := d.ScoreBreakdown
	if err := validateSubScore("development_potential", b.DevelopmentPotential, maxDevelopmentPotential); err != nil {
		return err
	}
	if err := validateSubScore("interest_level", b.InterestLevel, maxInterestLevel); err != nil {
		return err
	}
	if err := validateSubScore("life_utility", b.LifeUtility, maxLifeUtility); err != nil {
		return err
	}
	if err := validateSubScore("production_ease", b.ProductionEase, maxProductionEase); err != nil {
		return err
	}
	return nil
}

func validateSubScore(name string, v *int, max int) error {
	if v == nil {
		return fmt.Errorf("%s missing from score_breakdown", name)
	}
	if *v < 0 || *v > max {
		return fmt.Errorf("%s out of range [0,%d]: %d", name, max, *v)
	}
	return nil
}

// ConsistentScores reports whether the four sub-scores sum to the total.
// Models frequently produce totals that drift from the breakdown; the
// validator tolerates that, so this check is a separate utility rather
// than part of ValidateConcept.
func ConsistentScores(b ScoreBreakdown, total int) bool {
	return b.DevelopmentPotential+b.InterestLevel+b.LifeUtility+b.ProductionEase == total
}
