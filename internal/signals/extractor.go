// Package signals turns raw message text into the domain, intent, and
// friction signals the recommendation pipeline scores against. Extraction
// is a pure function over two ordered rule tables; identical input always
// produces identical output.
package signals

import (
	"regexp"
	"strings"

	"iris/internal/intent"
)

// Signals captures everything a single message tells the pipeline.
type Signals struct {
	// DomainSignals is the deduplicated set of matched domain tags, in
	// first-match order.
	DomainSignals []string `json:"domain_signals"`
	// IntentSignals holds the ranked intents, length 1 or 2.
	IntentSignals []intent.Intent `json:"intent_signals"`
	// FrictionSignals lists the matched lowercase friction phrases.
	FrictionSignals []string `json:"friction_signals"`
	// FrictionScore is the summed weight of all matched friction phrases.
	FrictionScore float64 `json:"friction_score"`
	// Confidence is the blended readiness-to-act estimate in [0,1].
	Confidence float64 `json:"confidence"`
}

// Primary returns the top-ranked intent signal.
func (s Signals) Primary() intent.Intent {
	if len(s.IntentSignals) == 0 {
		return intent.ChatOnly
	}
	return s.IntentSignals[0]
}

// HasDomain reports whether tag is among the domain signals.
func (s Signals) HasDomain(tag string) bool {
	for _, t := range s.DomainSignals {
		if t == tag {
			return true
		}
	}
	return false
}

type domainRule struct {
	pattern *regexp.Regexp
	tags    []string
}

func domain(pattern string, tags ...string) domainRule {
	return domainRule{pattern: regexp.MustCompile(`(?i)\b(?:` + pattern + `)\b`), tags: tags}
}

// domainRules maps message vocabulary to open-vocabulary domain tags.
// Rules are consulted in order; every matching rule contributes its tags
// into a deduplicated set.
var domainRules = []domainRule{
	domain(`revenue|budget|pricing|cash ?flow|funding|invest\w*|financ\w*|runway`, "finance"),
	domain(`forecast\w*|unit economics|margins?`, "finance", "modeling"),
	domain(`marketing|audience|campaign\w*|brand\w*|seo|social media|newsletter`, "marketing"),
	domain(`legal|contract\w*|compliance|regulat\w*|privacy|terms of service|gdpr`, "legal"),
	domain(`product|feature\w*|mvp|prototype\w*|user stor(?:y|ies)`, "product"),
	domain(`pitch\w*|deck|investors?|fundrais\w*|demo day`, "pitch"),
	domain(`research|surveys?|competitors?|market size|interviews?`, "research"),
	domain(`hiring|team|recruit\w*|onboard\w*|operations?|process\w*`, "operations"),
	domain(`blog|article|essay|copy\w*|landing page|website`, "content"),
	domain(`roadmap\w*|milestones?|timeline\w*|sprints?`, "planning"),
}

type frictionRule struct {
	phrase string
	weight float64
}

// frictionRules lists lowercase phrases that signal concrete intent to
// act rather than idle conversation. Weights sum into FrictionScore.
var frictionRules = []frictionRule{
	{"i need to", 0.5},
	{"help me", 0.5},
	{"i want to", 0.4},
	{"can you help", 0.5},
	{"how do i", 0.4},
	{"i'm trying to", 0.4},
	{"we need to", 0.4},
	{"where do i start", 0.5},
	{"which lens", 0.6},
	{"what lens", 0.6},
	{"which tool", 0.6},
	{"what tool", 0.6},
	{"ready to", 0.3},
	{"let's", 0.3},
}

const (
	frictionWeight = 0.4
	intentWeight   = 0.4
	domainWeight   = 0.2
)

// Extract computes the Signals for one message. The confidence blend is
// deliberately simple and monotone: more friction never lowers it.
func Extract(message string) Signals {
	lower := strings.ToLower(message)

	var tags []string
	seen := make(map[string]bool)
	for _, rule := range domainRules {
		if !rule.pattern.MatchString(message) {
			continue
		}
		for _, tag := range rule.tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	var phrases []string
	frictionScore := 0.0
	for _, rule := range frictionRules {
		if strings.Contains(lower, rule.phrase) {
			phrases = append(phrases, rule.phrase)
			frictionScore += rule.weight
		}
	}

	intents := intent.Classify(message)

	confidence := frictionWeight * frictionScore
	if intents[0].Actionable() {
		confidence += intentWeight
	}
	if len(tags) > 0 {
		confidence += domainWeight
	}

	return Signals{
		DomainSignals:   tags,
		IntentSignals:   intents,
		FrictionSignals: phrases,
		FrictionScore:   frictionScore,
		Confidence:      clamp01(confidence),
	}
}

// clamp01 bounds v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
