package recommend

import (
	"fmt"
	"regexp"
	"strings"

	"iris/internal/catalog"
	"iris/internal/intent"
	"iris/internal/scoring"
	"iris/internal/signals"
)

// TaskSeed is the prefilled draft offered when the user accepts a
// recommendation. It is derived purely from the triggering message.
type TaskSeed struct {
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// Recommendation is one lens suggestion ready to surface.
type Recommendation struct {
	LensID   string   `json:"lens_id"`
	Name     string   `json:"name"`
	Reason   string   `json:"reason"`
	Score    float64  `json:"score"`
	TaskSeed TaskSeed `json:"task_seed"`
}

// multiAskPattern widens the output cap when the user is explicitly
// shopping for a lens rather than just working.
var multiAskPattern = regexp.MustCompile(`(?i)\b(which|what)\s+(lens|lenses|tool|tools)\b`)

const (
	maxTitleRunes  = 60
	maxSeedDomains = 3
	maxSeedActions = 3
)

func maxRecommendations(message string) int {
	if multiAskPattern.MatchString(message) {
		return scoring.MaxCandidates
	}
	return 1
}

func assemble(message string, sig signals.Signals, sc scoring.Scored, entry catalog.Entry) Recommendation {
	return Recommendation{
		LensID:   sc.LensID,
		Name:     sc.Name,
		Reason:   synthesizeReason(sig, sc),
		Score:    sc.Score,
		TaskSeed: buildTaskSeed(message, sig, entry),
	}
}

// synthesizeReason prefers the most specific justification available:
// intent plus domain, then intent only, then domain only, then a
// generic fallback.
func synthesizeReason(sig signals.Signals, sc scoring.Scored) string {
	primary := sig.Primary()
	hasIntent := sc.IntentMatch > 0 && primary.Actionable()
	domains := sc.MatchedDomains
	if len(domains) > maxSeedDomains {
		domains = domains[:maxSeedDomains]
	}

	switch {
	case hasIntent && len(domains) > 0:
		return fmt.Sprintf("You seem ready to %s around %s; %s fits both.",
			intentVerb(primary), strings.Join(domains, ", "), sc.Name)
	case hasIntent:
		return fmt.Sprintf("You seem ready to %s; %s is built for that.",
			intentVerb(primary), sc.Name)
	case len(domains) > 0:
		return fmt.Sprintf("This conversation touches %s, which %s covers.",
			strings.Join(domains, ", "), sc.Name)
	default:
		return fmt.Sprintf("%s matches where this conversation is heading.", sc.Name)
	}
}

// intentVerb renders an intent as the verb phrase used in reasons.
func intentVerb(i intent.Intent) string {
	switch i {
	case intent.Ideate:
		return "explore ideas"
	case intent.Structure:
		return "structure your thinking"
	case intent.Plan:
		return "plan next steps"
	case intent.Simulate:
		return "run the numbers"
	case intent.Build:
		return "build something concrete"
	case intent.Publish:
		return "publish"
	case intent.Audit:
		return "review for risk"
	}
	return "keep going"
}

func buildTaskSeed(message string, sig signals.Signals, entry catalog.Entry) TaskSeed {
	domains := intersectStrings(sig.DomainSignals, entry.DomainTags)
	if len(domains) > maxSeedDomains {
		domains = domains[:maxSeedDomains]
	}

	summary := "Seeded from your latest message."
	if len(domains) > 0 {
		summary = fmt.Sprintf("Seeded from your latest message; focus: %s.", strings.Join(domains, ", "))
	}

	actions := intersectStrings(intent.RequestedActions(sig.IntentSignals), entry.Actions)
	if len(actions) == 0 {
		actions = append([]string(nil), entry.Actions...)
	}
	if len(actions) > maxSeedActions {
		actions = actions[:maxSeedActions]
	}

	return TaskSeed{
		Title:            truncateTitle(message, maxTitleRunes),
		Summary:          summary,
		SuggestedActions: actions,
	}
}

// truncateTitle shortens a message to at most max runes plus an
// ellipsis. Rune-based so multibyte text is never split mid-character.
func truncateTitle(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}

func intersectStrings(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	var out []string
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}
