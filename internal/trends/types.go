package trends

// Topic is one trending keyword from the hot list, ranked 1..N within a
// single fetch.
type Topic struct {
	Rank      int    `json:"rank"`
	Keyword   string `json:"keyword"`
	HeatValue int    `json:"heat_value"`
	Tag       string `json:"tag"`
	Category  string `json:"category"`
}

// ResearchBundle holds the search-derived context for one topic. A field
// may carry the "search results limited" placeholder instead of real
// content; that is a valid state, not an error.
type ResearchBundle struct {
	SocialMedia     string `json:"social_media"`
	NewsBackground  string `json:"news_background"`
	UserInsights    string `json:"user_insights"`
	MarketPotential string `json:"market_potential"`
}

type ScoreBreakdown struct {
	DevelopmentPotential int `json:"development_potential"`
	InterestLevel        int `json:"interest_level"`
	LifeUtility          int `json:"life_utility"`
	ProductionEase       int `json:"production_ease"`
}

// DraftBreakdown mirrors ScoreBreakdown with pointer fields so a
// sub-score the model omitted is distinguishable from one it set to zero.
type DraftBreakdown struct {
	DevelopmentPotential *int `json:"development_potential"`
	InterestLevel        *int `json:"interest_level"`
	LifeUtility          *int `json:"life_utility"`
	ProductionEase       *int `json:"production_ease"`
}

// ConceptDraft is the shape decoded straight from a model response,
// before validation and before topic/research data is merged in.
type ConceptDraft struct {
	ProductName          string          `json:"product_name"`
	MarketCategory       string          `json:"market_category"`
	TargetAudience       string          `json:"target_audience"`
	Description          string          `json:"description"`
	ManufacturingDetails string          `json:"manufacturing_details"`
	ScoreBreakdown       *DraftBreakdown `json:"score_breakdown"`
	TotalScore           *int            `json:"total_score"`
	ScoreJustification   string          `json:"score_justification"`
}

// Concept is a validated, tier-annotated product idea. The JSON field
// names are load-bearing: the report templates key on them.
type Concept struct {
	ProductName          string         `json:"product_name"`
	MarketCategory       string         `json:"market_category"`
	TargetAudience       string         `json:"target_audience"`
	Description          string         `json:"description"`
	ManufacturingDetails string         `json:"manufacturing_details"`
	ScoreBreakdown       ScoreBreakdown `json:"score_breakdown"`
	TotalScore           int            `json:"total_score"`
	ScoreJustification   string         `json:"score_justification"`

	Keyword   string `json:"keyword"`
	Rank      int    `json:"rank"`
	HeatValue int    `json:"heat_value"`
	Tag       string `json:"tag"`
	Category  string `json:"category"`

	ResearchSummary ResearchBundle `json:"research_summary"`

	TierName  string    `json:"tier_name"`
	TierBadge string    `json:"tier_badge"`
	TierClass TierClass `json:"tier_class"`
}

type Metadata struct {
	GeneratedAt    string  `json:"generated_at"`
	TotalAnalyzed  int     `json:"total_analyzed"`
	AverageScore   float64 `json:"average_score"`
	ExcellentCount int     `json:"excellent_count"`
	GoodCount      int     `json:"good_count"`
	OtherCount     int     `json:"other_count"`
}

type TierBuckets struct {
	Excellent []Concept `json:"excellent"`
	Good      []Concept `json:"good"`
	Other     []Concept `json:"other"`
}

// ResultsDocument is the complete output of one analysis run.
// AllProducts is sorted by total score descending; the buckets partition
// the same sequence without reordering it.
type ResultsDocument struct {
	Metadata    Metadata    `json:"metadata"`
	Products    TierBuckets `json:"products"`
	AllProducts []Concept   `json:"all_products"`
}
