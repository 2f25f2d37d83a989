// Package session holds the caller-owned conversation state the
// recommendation pipeline reads. The pipeline never mutates a Context;
// only the conversation host advances it, after consuming each result.
package session

import "iris/internal/intent"

// History bounds. Older entries are discarded when a Context advances
// past them; the pipeline only ever looks a few turns back.
const (
	MaxRecentMessages        = 10
	MaxPreviousIntents       = 20
	MaxRecentRecommendations = 20
)

// Record remembers one lens recommendation surfaced to the user.
type Record struct {
	LensID    string `json:"lens_id"`
	Turn      int    `json:"turn"`
	Dismissed bool   `json:"dismissed"`
}

// Context is the per-conversation state. All fields are read-only to the
// decision pipeline; Advance and the Mark helpers are for the host.
type Context struct {
	RecentMessages        []string        `json:"recent_messages"`
	LensesUsed            map[string]bool `json:"lenses_used"`
	RecentRecommendations []Record        `json:"recent_recommendations"`
	CurrentTurn           int             `json:"current_turn"`
	PreviousIntents       []intent.Intent `json:"previous_intents"`
}

// NewContext returns an empty context at turn zero.
func NewContext() *Context {
	return &Context{LensesUsed: make(map[string]bool)}
}

// Clone returns a deep copy, so stores can hand out snapshots without
// sharing backing arrays with callers.
func (c *Context) Clone() *Context {
	if c == nil {
		return nil
	}
	out := &Context{
		RecentMessages:        append([]string(nil), c.RecentMessages...),
		RecentRecommendations: append([]Record(nil), c.RecentRecommendations...),
		CurrentTurn:           c.CurrentTurn,
		PreviousIntents:       append([]intent.Intent(nil), c.PreviousIntents...),
		LensesUsed:            make(map[string]bool, len(c.LensesUsed)),
	}
	for id, used := range c.LensesUsed {
		out.LensesUsed[id] = used
	}
	return out
}

// PriorPrimaryIntent returns the most recent prior primary intent, or
// ChatOnly when the conversation has no history yet.
func (c *Context) PriorPrimaryIntent() intent.Intent {
	if len(c.PreviousIntents) == 0 {
		return intent.ChatOnly
	}
	return c.PreviousIntents[len(c.PreviousIntents)-1]
}

// Advance folds one consumed turn into the context: the message, its
// primary intent, and the lenses that were recommended this turn. The
// turn counter moves forward by one.
func (c *Context) Advance(message string, primary intent.Intent, recommended []string) {
	c.RecentMessages = appendBounded(c.RecentMessages, message, MaxRecentMessages)
	c.PreviousIntents = appendBounded(c.PreviousIntents, primary, MaxPreviousIntents)
	for _, lensID := range recommended {
		c.RecentRecommendations = appendBounded(c.RecentRecommendations, Record{
			LensID: lensID,
			Turn:   c.CurrentTurn,
		}, MaxRecentRecommendations)
	}
	c.CurrentTurn++
}

// MarkOpened records that the user opened a lens.
func (c *Context) MarkOpened(lensID string) {
	if c.LensesUsed == nil {
		c.LensesUsed = make(map[string]bool)
	}
	c.LensesUsed[lensID] = true
}

// MarkDismissed flags the most recent recommendation of lensID as
// dismissed. Unknown ids are ignored.
func (c *Context) MarkDismissed(lensID string) {
	for i := len(c.RecentRecommendations) - 1; i >= 0; i-- {
		if c.RecentRecommendations[i].LensID == lensID {
			c.RecentRecommendations[i].Dismissed = true
			return
		}
	}
}

func appendBounded[T any](list []T, item T, max int) []T {
	list = append(list, item)
	if len(list) > max {
		list = list[len(list)-max:]
	}
	return list
}
