// Package telemetry accumulates per-session recommendation outcomes.
// The recorder is an in-process sink: handlers feed it events and the
// snapshot is exposed for offline tuning of trigger and scoring
// parameters. Nothing here feeds back into live decisions.
package telemetry

import (
	"sync"
	"time"
)

// Event is one recommendation outcome tied to a session turn.
type Event struct {
	LensID string    `json:"lens_id"`
	Turn   int       `json:"turn"`
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}

// SessionTelemetry is the accumulated outcome history of one session.
type SessionTelemetry struct {
	Shown        []Event         `json:"shown"`
	Opened       []Event         `json:"opened"`
	Dismissed    []Event         `json:"dismissed"`
	TimeToAction []time.Duration `json:"time_to_action"`
}

// Recorder collects events across sessions. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	sessions map[string]*SessionTelemetry
	now      func() time.Time
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		sessions: make(map[string]*SessionTelemetry),
		now:      time.Now,
	}
}

func (r *Recorder) session(sessionID string) *SessionTelemetry {
	st, ok := r.sessions[sessionID]
	if !ok {
		st = &SessionTelemetry{}
		r.sessions[sessionID] = st
	}
	return st
}

// RecordShown notes that a lens recommendation was surfaced to the user.
func (r *Recorder) RecordShown(sessionID, lensID string, turn int, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.session(sessionID)
	st.Shown = append(st.Shown, Event{LensID: lensID, Turn: turn, Reason: reason, At: r.now()})
}

// RecordOpened notes that the user accepted a recommendation.
func (r *Recorder) RecordOpened(sessionID, lensID string, turn int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.session(sessionID)
	st.Opened = append(st.Opened, Event{LensID: lensID, Turn: turn, At: r.now()})
}

// RecordDismissed notes that the user rejected a recommendation.
func (r *Recorder) RecordDismissed(sessionID, lensID string, turn int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.session(sessionID)
	st.Dismissed = append(st.Dismissed, Event{LensID: lensID, Turn: turn, At: r.now()})
}

// RecordTimeToAction notes how long a recommendation sat before the
// user acted on it.
func (r *Recorder) RecordTimeToAction(sessionID string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.session(sessionID)
	st.TimeToAction = append(st.TimeToAction, d)
}

// Snapshot returns a deep copy of one session's telemetry. The second
// return is false when the session has no recorded events.
func (r *Recorder) Snapshot(sessionID string) (SessionTelemetry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.sessions[sessionID]
	if !ok {
		return SessionTelemetry{}, false
	}
	return SessionTelemetry{
		Shown:        append([]Event(nil), st.Shown...),
		Opened:       append([]Event(nil), st.Opened...),
		Dismissed:    append([]Event(nil), st.Dismissed...),
		TimeToAction: append([]time.Duration(nil), st.TimeToAction...),
	}, true
}

// Sessions returns the ids of every session with recorded events.
func (r *Recorder) Sessions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}
