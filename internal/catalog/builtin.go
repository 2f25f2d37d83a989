package catalog

import "iris/internal/intent"

// Builtin returns the compiled-in default catalog used when no catalog
// file is configured. The entry order here is deliberate: it is the
// tie-break order for equal scores.
func Builtin() *Catalog {
	cat, err := New([]Entry{
		{
			ID:         "mindmap",
			Name:       "Idea Mindmap",
			DomainTags: []string{"research", "product"},
			IntentTags: []intent.Intent{intent.Ideate, intent.Structure},
			Cost:       CostLow,
			Actions:    []string{"draft"},
			Scope:      ScopeNone,
		},
		{
			ID:         "canvas",
			Name:       "Lean Canvas",
			DomainTags: []string{"product", "pitch"},
			IntentTags: []intent.Intent{intent.Structure},
			Cost:       CostLow,
			Actions:    []string{"draft", "plan"},
			Scope:      ScopeLocal,
		},
		{
			ID:         "roadmap",
			Name:       "Roadmap Planner",
			DomainTags: []string{"planning", "product", "operations"},
			IntentTags: []intent.Intent{intent.Plan},
			Cost:       CostLow,
			Actions:    []string{"plan"},
			Scope:      ScopeLocal,
		},
		{
			ID:         "forecast",
			Name:       "Revenue Forecaster",
			DomainTags: []string{"finance", "modeling"},
			IntentTags: []intent.Intent{intent.Simulate},
			Cost:       CostMed,
			Actions:    []string{"simulate"},
			Scope:      ScopeLocal,
		},
		{
			ID:         "studio",
			Name:       "Draft Studio",
			DomainTags: []string{"content", "marketing", "pitch"},
			IntentTags: []intent.Intent{intent.Build, intent.Ideate, intent.Structure},
			Cost:       CostLow,
			Actions:    []string{"draft", "plan"},
			Scope:      ScopeLocal,
		},
		{
			ID:         "launchpad",
			Name:       "Launchpad",
			DomainTags: []string{"marketing", "product"},
			IntentTags: []intent.Intent{intent.Publish},
			Cost:       CostHigh,
			Actions:    []string{"publish"},
			Scope:      ScopeMarket,
		},
		{
			ID:         "counsel",
			Name:       "Compliance Counsel",
			DomainTags: []string{"legal"},
			IntentTags: []intent.Intent{intent.Audit},
			Cost:       CostMed,
			Actions:    []string{"audit", "legal-check"},
			Scope:      ScopeGlobal,
		},
		{
			ID:         "deck",
			Name:       "Pitch Deck Builder",
			DomainTags: []string{"pitch", "finance"},
			IntentTags: []intent.Intent{intent.Build, intent.Publish},
			Cost:       CostMed,
			Actions:    []string{"draft", "publish"},
			Scope:      ScopeMarket,
		},
	})
	if err != nil {
		// The builtin catalog is covered by tests; reaching this is a bug.
		panic(err)
	}
	return cat
}
