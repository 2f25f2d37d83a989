// Package trigger decides whether this turn may surface a lens
// recommendation at all. It is the anti-spam gate: suppression rules
// always win over trigger rules, and among triggers the first match in a
// fixed priority order is the one reported.
package trigger

import (
	"iris/internal/intent"
	"iris/internal/session"
	"iris/internal/signals"
)

// Reason names the trigger rule that fired.
type Reason string

const (
	ReasonIntentShift   Reason = "intent_shift"
	ReasonExplicitAsk   Reason = "explicit_ask"
	ReasonHighFriction  Reason = "high_friction"
	ReasonRepeatedTopic Reason = "repeated_topic"
)

// Suppression names the rule that silenced the turn.
type Suppression string

const (
	SuppressionCooldown   Suppression = "cooldown"
	SuppressionDismissals Suppression = "dismissals"
)

// Result is the gate's verdict for one turn. Reason is set only when
// ShouldRecommend is true; Suppression only when a suppression rule
// fired, which lets callers tell a cooled-down turn apart from a turn
// that simply triggered nothing.
type Result struct {
	ShouldRecommend bool        `json:"should_recommend"`
	Reason          Reason      `json:"reason,omitempty"`
	Suppression     Suppression `json:"suppression,omitempty"`
}

// ExtractFunc recomputes the signals of a prior message. Injected so the
// engine can put a cache in front of raw extraction.
type ExtractFunc func(message string) signals.Signals

const (
	// cooldownTurns is the global window after any recommendation during
	// which no new one may fire.
	cooldownTurns = 3
	// dismissalThreshold dismissals, the latest within dismissalWindow
	// turns, silence the conversation entirely.
	dismissalThreshold = 2
	dismissalWindow    = 10
	// Confidence floors for the friction-driven triggers.
	explicitAskConfidence  = 0.5
	highFrictionConfidence = 0.7
	// repeatedTopicSpan is how many messages (including the current one)
	// must share a domain signal.
	repeatedTopicSpan = 3
)

// Evaluate runs the ordered decision list for one turn. extract may be
// nil, in which case raw extraction is used for the topic-repetition
// look-back.
func Evaluate(sig signals.Signals, sess *session.Context, extract ExtractFunc) Result {
	if extract == nil {
		extract = signals.Extract
	}

	// Suppression rules take precedence over every trigger.
	for _, rec := range sess.RecentRecommendations {
		if sess.CurrentTurn-rec.Turn < cooldownTurns {
			return Result{Suppression: SuppressionCooldown}
		}
	}
	if dismissedRecently(sess) {
		return Result{Suppression: SuppressionDismissals}
	}

	if isIntentShift(sess.PriorPrimaryIntent(), sig.Primary()) {
		return Result{ShouldRecommend: true, Reason: ReasonIntentShift}
	}
	if len(sig.FrictionSignals) > 0 && sig.Confidence >= explicitAskConfidence {
		return Result{ShouldRecommend: true, Reason: ReasonExplicitAsk}
	}
	if sig.Confidence >= highFrictionConfidence {
		return Result{ShouldRecommend: true, Reason: ReasonHighFriction}
	}
	if repeatedTopic(sig, sess, extract) {
		return Result{ShouldRecommend: true, Reason: ReasonRepeatedTopic}
	}

	return Result{}
}

func dismissedRecently(sess *session.Context) bool {
	count := 0
	latest := -1
	for _, rec := range sess.RecentRecommendations {
		if !rec.Dismissed {
			continue
		}
		count++
		if rec.Turn > latest {
			latest = rec.Turn
		}
	}
	return count >= dismissalThreshold && sess.CurrentTurn-latest < dismissalWindow
}

// isIntentShift reports a pivot from idle or ideation into concrete
// action. Structure and Ideate are not shift targets: moving between
// loose modes is not a commitment signal.
func isIntentShift(prior, current intent.Intent) bool {
	if prior != intent.ChatOnly && prior != intent.Ideate {
		return false
	}
	switch current {
	case intent.Plan, intent.Simulate, intent.Build, intent.Publish, intent.Audit:
		return true
	default:
		return false
	}
}

// repeatedTopic reports whether the current message and the two before
// it share at least one domain signal. Prior messages are re-extracted
// on every call; the engine's cache keeps that cheap.
func repeatedTopic(sig signals.Signals, sess *session.Context, extract ExtractFunc) bool {
	prior := repeatedTopicSpan - 1
	if len(sess.RecentMessages) < prior {
		return false
	}

	shared := append([]string(nil), sig.DomainSignals...)
	tail := sess.RecentMessages[len(sess.RecentMessages)-prior:]
	for _, message := range tail {
		if len(shared) == 0 {
			return false
		}
		shared = intersect(shared, extract(message).DomainSignals)
	}
	return len(shared) > 0
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, tag := range b {
		set[tag] = true
	}
	var out []string
	for _, tag := range a {
		if set[tag] {
			out = append(out, tag)
		}
	}
	return out
}
