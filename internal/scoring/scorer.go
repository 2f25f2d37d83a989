// Package scoring ranks catalog entries against the current turn's
// signals. Entries are scored independently with a fixed weighted blend,
// filtered by a pass threshold, and capped; catalog order breaks ties.
package scoring

import (
	"sort"

	"iris/internal/catalog"
	"iris/internal/intent"
	"iris/internal/session"
	"iris/internal/signals"
)

// Weights of the scoring blend. They sum to 1.0 before penalties.
const (
	weightDomain = 0.25
	weightIntent = 0.25
	weightAction = 0.20
	weightShadow = 0.10
	weightCost   = 0.10
	weightSpam   = 0.10

	// shadowBoost rewards lenses the user has already opened once.
	shadowBoost = 0.5

	// PassThreshold is the minimum score a lens needs to be surfaced.
	PassThreshold = 0.25

	// MaxCandidates caps the ranked list.
	MaxCandidates = 3

	// spamWindow bounds how far back repeat recommendations count
	// against a lens.
	spamWindow = 5
)

// Scored is one ranked candidate with its component scores kept for
// reason synthesis and debugging.
type Scored struct {
	LensID         string   `json:"lens_id"`
	Name           string   `json:"name"`
	Score          float64  `json:"score"`
	DomainMatch    float64  `json:"domain_match"`
	IntentMatch    float64  `json:"intent_match"`
	ActionMatch    float64  `json:"action_match"`
	MatchedDomains []string `json:"matched_domains,omitempty"`
}

// Rank scores every catalog entry and returns those above the pass
// threshold, best first, at most MaxCandidates. Malformed entries with
// empty tag or action sets score zero on the affected components rather
// than erroring.
func Rank(sig signals.Signals, sess *session.Context, cat *catalog.Catalog) []Scored {
	requested := intent.RequestedActions(sig.IntentSignals)

	var out []Scored
	for _, entry := range cat.Entries() {
		s := scoreEntry(sig, sess, entry, requested)
		if s.Score >= PassThreshold {
			out = append(out, s)
		}
	}

	// Stable sort: equal scores keep catalog order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}

func scoreEntry(sig signals.Signals, sess *session.Context, entry catalog.Entry, requested []string) Scored {
	matchedDomains := intersect(sig.DomainSignals, entry.DomainTags)
	domainMatch := ratio(len(matchedDomains), len(sig.DomainSignals), len(entry.DomainTags))

	intentMatch := ratio(
		countIntentOverlap(sig.IntentSignals, entry.IntentTags),
		len(sig.IntentSignals), len(entry.IntentTags),
	)

	actionMatch := ratio(len(intersect(requested, entry.Actions)), len(requested), len(entry.Actions))

	shadow := 0.0
	if sess.LensesUsed[entry.ID] {
		shadow = shadowBoost
	}

	score := weightDomain*domainMatch +
		weightIntent*intentMatch +
		weightAction*actionMatch +
		weightShadow*shadow -
		weightCost*costPenalty(entry.Cost) -
		weightSpam*spamPenalty(entry.ID, sess)

	return Scored{
		LensID:         entry.ID,
		Name:           entry.Name,
		Score:          score,
		DomainMatch:    domainMatch,
		IntentMatch:    intentMatch,
		ActionMatch:    actionMatch,
		MatchedDomains: matchedDomains,
	}
}

// ratio divides matches by the signal-side count, degrading to zero
// when either side is empty.
func ratio(matched, signalCount, entryCount int) float64 {
	if signalCount == 0 || entryCount == 0 {
		return 0
	}
	return float64(matched) / float64(signalCount)
}

// costPenalty is total over catalog.Cost: heavier lenses are harder to
// recommend unprompted.
func costPenalty(c catalog.Cost) float64 {
	switch c {
	case catalog.CostLow:
		return 0
	case catalog.CostMed:
		return 0.3
	case catalog.CostHigh:
		return 0.6
	}
	return 0
}

// spamPenalty grows with how often the lens was already recommended in
// the recent window, saturating at 1.
func spamPenalty(lensID string, sess *session.Context) float64 {
	count := 0
	for _, rec := range sess.RecentRecommendations {
		if rec.LensID == lensID && sess.CurrentTurn-rec.Turn < spamWindow {
			count++
		}
	}
	penalty := 0.5 * float64(count)
	if penalty > 1 {
		return 1
	}
	return penalty
}

func intersect(signalSide, entrySide []string) []string {
	set := make(map[string]bool, len(entrySide))
	for _, v := range entrySide {
		set[v] = true
	}
	var out []string
	for _, v := range signalSide {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}

func countIntentOverlap(signalSide []intent.Intent, entrySide []intent.Intent) int {
	set := make(map[intent.Intent]bool, len(entrySide))
	for _, v := range entrySide {
		set[v] = true
	}
	count := 0
	for _, v := range signalSide {
		if set[v] {
			count++
		}
	}
	return count
}
