// Package intent classifies a chat message into a closed set of user
// intents and maps each intent to the action verbs a lens must support
// to serve it. Classification is deterministic keyword matching; there
// is no learned model behind it.
package intent

import "fmt"

// Intent is one of the eight recognised user intents for a chat turn.
type Intent string

const (
	// ChatOnly means the message carries no actionable intent.
	ChatOnly  Intent = "chat_only"
	Ideate    Intent = "ideate"
	Structure Intent = "structure"
	Plan      Intent = "plan"
	Simulate  Intent = "simulate"
	Build     Intent = "build"
	Publish   Intent = "publish"
	Audit     Intent = "audit"
)

// All returns every intent in stable declaration order.
func All() []Intent {
	return []Intent{ChatOnly, Ideate, Structure, Plan, Simulate, Build, Publish, Audit}
}

// Parse converts a string into an Intent.
func Parse(s string) (Intent, error) {
	switch Intent(s) {
	case ChatOnly, Ideate, Structure, Plan, Simulate, Build, Publish, Audit:
		return Intent(s), nil
	default:
		return "", fmt.Errorf("unknown intent %q", s)
	}
}

// Actionable reports whether the intent asks for concrete work rather
// than idle conversation.
func (i Intent) Actionable() bool {
	return i != "" && i != ChatOnly
}

// Verbs returns the action verbs a lens must support to serve the
// intent. The switch is kept total over the enumeration so a new
// intent variant cannot silently fall through.
func Verbs(i Intent) []string {
	switch i {
	case ChatOnly:
		return nil
	case Ideate:
		return []string{"draft"}
	case Structure:
		return []string{"draft", "plan"}
	case Plan:
		return []string{"plan"}
	case Simulate:
		return []string{"simulate"}
	case Build:
		return []string{"draft", "plan"}
	case Publish:
		return []string{"publish"}
	case Audit:
		return []string{"audit", "legal-check"}
	}
	return nil
}

// RequestedActions returns the deduplicated union of Verbs over the
// given intents, preserving first-seen order.
func RequestedActions(intents []Intent) []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range intents {
		for _, verb := range Verbs(it) {
			if seen[verb] {
				continue
			}
			seen[verb] = true
			out = append(out, verb)
		}
	}
	return out
}
