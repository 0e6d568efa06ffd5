package trends

// Tier cutoffs are fixed business constants, not configuration.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
)

type TierClass string

const (
	TierExcellent TierClass = "excellent"
	TierGood      TierClass = "good"
	TierOther     TierClass = "other"
)

type Tier struct {
	Name  string
	Badge string
	Class TierClass
}

// TierForScore is total over all integers: anything at or above 80 is
// excellent (including scores above 100), anything below 60 is other
// (including negative scores). Boundary values belong to the higher tier.
func TierForScore(score int) Tier {
	switch {
	case score >= ExcellentThreshold:
		return Tier{Name: "优秀", Badge: "🏆 优秀", Class: TierExcellent}
	case score >= GoodThreshold:
		return Tier{Name: "良好", Badge: "⭐ 良好", Class: TierGood}
	default:
		return Tier{Name: "其他", Badge: "📋 其他", Class: TierOther}
	}
}

func (c *Concept) applyTier(t Tier) {
	c.TierName = t.Name
	c.TierBadge = t.Badge
	c.TierClass = t.Class
}
