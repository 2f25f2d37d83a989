package intent

import (
	"regexp"
	"sort"
	"strings"
)

// keyword holds a compiled pattern for one intent cue.
type keyword struct {
	pattern *regexp.Regexp
	word    string
}

// actionIntents lists the seven non-chat intents in the order their
// keyword tables are consulted. ChatOnly is the fallback, never scored.
var actionIntents = []Intent{Ideate, Structure, Plan, Simulate, Build, Publish, Audit}

var intentKeywords = map[Intent][]keyword{
	Ideate: compileKeywords(
		"brainstorm", "ideate", "idea", "what if", "imagine", "inspiration", "come up with",
	),
	Structure: compileKeywords(
		"organize", "structure", "outline", "framework", "categorize", "break down", "map out",
	),
	Plan: compileKeywords(
		"plan", "roadmap", "milestone", "timeline", "schedule", "step", "prioritize", "strategy",
	),
	Simulate: compileKeywords(
		"simulate", "forecast", "projection", "scenario", "model out", "run the numbers", "estimate", "what would happen",
	),
	Build: compileKeywords(
		"build", "create", "draft", "write up", "prototype", "put together", "implement", "make a",
	),
	Publish: compileKeywords(
		"publish", "launch", "release", "announce", "go live", "share it", "post", "submit",
	),
	Audit: compileKeywords(
		"audit", "review", "compliance", "legal", "verify", "validate", "double-check", "risk",
	),
}

// compileKeywords turns raw keywords into word-boundary patterns.
// Single words tolerate common suffixes (plan -> plans, planning);
// multi-word phrases match exactly.
func compileKeywords(words ...string) []keyword {
	out := make([]keyword, len(words))
	for i, w := range words {
		var pattern string
		if strings.ContainsAny(w, " -") {
			pattern = `(?i)\b` + regexp.QuoteMeta(w) + `\b`
		} else {
			pattern = `(?i)\b` + regexp.QuoteMeta(w) + `(?:es|s|ed|ing)?\b`
		}
		out[i] = keyword{pattern: regexp.MustCompile(pattern), word: w}
	}
	return out
}

// Classify returns the ranked intents for a message: one or two values.
// Every keyword occurrence counts, not just presence, so "plan the plan"
// scores Plan twice. The runner-up is included only when its score is at
// least half the winner's. A message with no matches is ChatOnly.
func Classify(message string) []Intent {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return []Intent{ChatOnly}
	}

	type classScore struct {
		intent Intent
		score  int
	}

	var scores []classScore
	for _, it := range actionIntents {
		total := 0
		for _, kw := range intentKeywords[it] {
			total += len(kw.pattern.FindAllStringIndex(trimmed, -1))
		}
		if total > 0 {
			scores = append(scores, classScore{intent: it, score: total})
		}
	}

	if len(scores) == 0 {
		return []Intent{ChatOnly}
	}

	// Stable sort keeps table order as the tie-break between equal scores.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	out := []Intent{scores[0].intent}
	if len(scores) > 1 && scores[1].score*2 >= scores[0].score {
		out = append(out, scores[1].intent)
	}
	return out
}
