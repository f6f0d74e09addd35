package scoring

// CategoryWeight is one entry of the ordered hard-skill weight table. The
// slice order doubles as the tie-break order for strengths and development
// rankings, so it is a slice rather than a map.
type CategoryWeight struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// LabelRule maps a minimum overall score to a qualitative label. Rules are
// evaluated top to bottom; the first threshold met wins.
type LabelRule struct {
	Threshold float64 `json:"threshold"`
	Label     string  `json:"label"`
}

// Config carries every numeric rule the engine applies. Each assessment
// variant ships its own table; nothing in the engine is hardcoded.
type Config struct {
	CategoryWeights []CategoryWeight    `json:"category_weights"`
	FitGroups       map[string][]string `json:"fit_groups"`
	LabelRules      []LabelRule         `json:"label_rules"`
	HardShare       float64             `json:"hard_share"`
	SoftShare       float64             `json:"soft_share"`
	TopStrengths    int                 `json:"top_strengths"`
	TopDevelopment  int                 `json:"top_development"`
}

// DefaultConfig is the digital-marketing profile.
func DefaultConfig() *Config {
	return MarketingProfile()
}

// ProfileFor returns the rule table for the named assessment variant,
// defaulting to the marketing profile for unknown names.
func ProfileFor(name string) *Config {
	switch name {
	case "product", "pm":
		return ProductProfile()
	case "hr":
		return HRProfile()
	case "finance":
		return FinanceProfile()
	case "ux":
		return UXProfile()
	default:
		return MarketingProfile()
	}
}

func defaultLabelRules() []LabelRule {
	return []LabelRule{
		{Threshold: 85, Label: "Lead"},
		{Threshold: 75, Label: "Senior"},
		{Threshold: 60, Label: "Mid"},
		{Threshold: 45, Label: "Junior"},
		{Threshold: 0, Label: "Needs development"},
	}
}

// MarketingProfile scores the digital-marketing assessment variant.
func MarketingProfile() *Config {
	return &Config{
		CategoryWeights: []CategoryWeight{
			{Category: "ppc", Weight: 0.2},
			{Category: "seo", Weight: 0.2},
			{Category: "analytics", Weight: 0.15},
			{Category: "content", Weight: 0.15},
			{Category: "social", Weight: 0.1},
			{Category: "strategy", Weight: 0.1},
			{Category: "behavioral", Weight: 0.1},
		},
		FitGroups: map[string][]string{
			"performance_marketing": {"ppc", "analytics", "strategy"},
			"seo":                   {"seo", "content"},
			"analytics":             {"analytics", "strategy"},
			"content_marketing":     {"content", "social", "strategy"},
			"generalist":            {"ppc", "seo", "analytics", "content", "strategy"},
		},
		LabelRules:     defaultLabelRules(),
		HardShare:      0.7,
		SoftShare:      0.3,
		TopStrengths:   2,
		TopDevelopment: 2,
	}
}

// HRProfile scores the human-resources assessment variant.
func HRProfile() *Config {
	return &Config{
		CategoryWeights: []CategoryWeight{
			{Category: "talent_acquisition", Weight: 0.2},
			{Category: "employee_relations", Weight: 0.15},
			{Category: "compensation_benefits", Weight: 0.1},
			{Category: "learning_development", Weight: 0.15},
			{Category: "hr_operations", Weight: 0.15},
			{Category: "people_strategy", Weight: 0.15},
			{Category: "behavioral", Weight: 0.1},
		},
		FitGroups: map[string][]string{
			"hr_generalist":                   {"talent_acquisition", "employee_relations", "hr_operations", "learning_development"},
			"talent_acquisition_specialist":   {"talent_acquisition", "employee_relations"},
			"hr_business_partner":             {"people_strategy", "employee_relations", "learning_development"},
			"compensation_analyst":            {"compensation_benefits", "hr_operations"},
			"learning_development_specialist": {"learning_development", "employee_relations", "people_strategy"},
		},
		LabelRules:     defaultLabelRules(),
		HardShare:      0.7,
		SoftShare:      0.3,
		TopStrengths:   2,
		TopDevelopment: 2,
	}
}

// FinanceProfile scores the corporate-finance assessment variant.
func FinanceProfile() *Config {
	return &Config{
		CategoryWeights: []CategoryWeight{
			{Category: "financial_analysis", Weight: 0.2},
			{Category: "budgeting", Weight: 0.15},
			{Category: "risk_compliance", Weight: 0.15},
			{Category: "strategic_finance", Weight: 0.15},
			{Category: "accounting_ops", Weight: 0.1},
			{Category: "treasury", Weight: 0.15},
			{Category: "behavioral", Weight: 0.1},
		},
		FitGroups: map[string][]string{
			"finance_manager":        {"financial_analysis", "budgeting", "strategic_finance", "treasury"},
			"financial_analyst":      {"financial_analysis", "budgeting", "accounting_ops"},
			"controller":             {"accounting_ops", "risk_compliance", "budgeting"},
			"treasury_analyst":       {"treasury", "risk_compliance", "financial_analysis"},
			"strategic_finance_lead": {"strategic_finance", "financial_analysis", "treasury"},
		},
		LabelRules:     defaultLabelRules(),
		HardShare:      0.7,
		SoftShare:      0.3,
		TopStrengths:   2,
		TopDevelopment: 2,
	}
}

// UXProfile scores the UX-design assessment variant.
func UXProfile() *Config {
	return &Config{
		CategoryWeights: []CategoryWeight{
			{Category: "user_research", Weight: 0.15},
			{Category: "information_architecture", Weight: 0.15},
			{Category: "interaction_design", Weight: 0.2},
			{Category: "visual_design", Weight: 0.15},
			{Category: "usability_accessibility", Weight: 0.15},
			{Category: "design_strategy", Weight: 0.1},
			{Category: "behavioral", Weight: 0.1},
		},
		FitGroups: map[string][]string{
			"ux_researcher":        {"user_research", "usability_accessibility", "information_architecture"},
			"ui_visual_designer":   {"visual_design", "interaction_design"},
			"product_designer":     {"interaction_design", "user_research", "design_strategy"},
			"interaction_designer": {"interaction_design", "information_architecture", "usability_accessibility"},
			"design_lead":          {"design_strategy", "user_research", "interaction_design", "visual_design"},
		},
		LabelRules:     defaultLabelRules(),
		HardShare:      0.7,
		SoftShare:      0.3,
		TopStrengths:   2,
		TopDevelopment: 2,
	}
}

// ProductProfile scores the product-management assessment variant.
func ProductProfile() *Config {
	return &Config{
		CategoryWeights: []CategoryWeight{
			{Category: "product", Weight: 0.2},
			{Category: "execution", Weight: 0.2},
			{Category: "strategy", Weight: 0.15},
			{Category: "analytics", Weight: 0.15},
			{Category: "technical", Weight: 0.1},
			{Category: "design", Weight: 0.1},
			{Category: "behavioral", Weight: 0.1},
		},
		FitGroups: map[string][]string{
			"product_strategy": {"product", "strategy"},
			"execution":        {"execution", "technical"},
			"insight":          {"analytics", "design"},
			"generalist":       {"product", "execution", "strategy", "analytics", "technical", "design"},
		},
		LabelRules:     defaultLabelRules(),
		HardShare:      0.7,
		SoftShare:      0.3,
		TopStrengths:   2,
		TopDevelopment: 2,
	}
}
