package server

import (
	"time"

	"iris/internal/intent"
	"iris/internal/recommend"
	"iris/internal/session"
)

// APIResponse is the standard envelope for every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RecommendRequest is the stateless decision request: the caller ships
// the full session context inline and nothing is stored.
type RecommendRequest struct {
	Message string           `json:"message"`
	Session *SessionDocument `json:"session,omitempty"`
	Debug   bool             `json:"debug,omitempty"`
}

// SessionDocument is the wire form of a session context.
type SessionDocument struct {
	RecentMessages        []string         `json:"recent_messages,omitempty"`
	LensesUsed            []string         `json:"lenses_used,omitempty"`
	RecentRecommendations []session.Record `json:"recent_recommendations,omitempty"`
	CurrentTurn           int              `json:"current_turn,omitempty"`
	PreviousIntents       []intent.Intent  `json:"previous_intents,omitempty"`
}

// ToContext converts the wire form into a session context.
func (d *SessionDocument) ToContext() *session.Context {
	ctx := session.NewContext()
	if d == nil {
		return ctx
	}
	ctx.RecentMessages = append(ctx.RecentMessages, d.RecentMessages...)
	for _, id := range d.LensesUsed {
		ctx.LensesUsed[id] = true
	}
	ctx.RecentRecommendations = append(ctx.RecentRecommendations, d.RecentRecommendations...)
	ctx.CurrentTurn = d.CurrentTurn
	ctx.PreviousIntents = append(ctx.PreviousIntents, d.PreviousIntents...)
	return ctx
}

// NewSessionDocument converts a session context into its wire form.
func NewSessionDocument(ctx *session.Context) *SessionDocument {
	doc := &SessionDocument{
		RecentMessages:        ctx.RecentMessages,
		RecentRecommendations: ctx.RecentRecommendations,
		CurrentTurn:           ctx.CurrentTurn,
		PreviousIntents:       ctx.PreviousIntents,
	}
	for id := range ctx.LensesUsed {
		doc.LensesUsed = append(doc.LensesUsed, id)
	}
	return doc
}

// RecommendResponse carries the decision for both the stateless and the
// session-bound endpoints.
type RecommendResponse struct {
	SessionID       string                     `json:"session_id,omitempty"`
	Turn            int                        `json:"turn"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Debug           *recommend.Debug           `json:"debug,omitempty"`
}

// SessionRequest creates a session.
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// MessageRequest records one conversation turn for a stored session.
type MessageRequest struct {
	Message string `json:"message"`
	Debug   bool   `json:"debug,omitempty"`
}

// EventRequest reports user feedback on a surfaced recommendation.
type EventRequest struct {
	LensID         string `json:"lens_id"`
	Event          string `json:"event"` // opened, dismissed
	TimeToActionMS int64  `json:"time_to_action_ms,omitempty"`
}

// HealthResponse reports process health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Lenses    int       `json:"lenses"`
}
