package telemetry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderAccumulates(t *testing.T) {
	r := NewRecorder()

	r.RecordShown("s1", "forecast", 4, "explicit_ask")
	r.RecordShown("s1", "deck", 4, "explicit_ask")
	r.RecordOpened("s1", "forecast", 5)
	r.RecordDismissed("s1", "deck", 5)
	r.RecordTimeToAction("s1", 12*time.Second)

	st, ok := r.Snapshot("s1")
	require.True(t, ok)
	require.Len(t, st.Shown, 2)
	assert.Equal(t, "forecast", st.Shown[0].LensID)
	assert.Equal(t, 4, st.Shown[0].Turn)
	assert.Equal(t, "explicit_ask", st.Shown[0].Reason)
	assert.False(t, st.Shown[0].At.IsZero())

	require.Len(t, st.Opened, 1)
	assert.Equal(t, "forecast", st.Opened[0].LensID)
	require.Len(t, st.Dismissed, 1)
	assert.Equal(t, "deck", st.Dismissed[0].LensID)
	assert.Equal(t, []time.Duration{12 * time.Second}, st.TimeToAction)
}

func TestRecorderSessionsAreIsolated(t *testing.T) {
	r := NewRecorder()
	r.RecordShown("s1", "forecast", 1, "high_friction")
	r.RecordShown("s2", "roadmap", 3, "intent_shift")

	s1, ok := r.Snapshot("s1")
	require.True(t, ok)
	require.Len(t, s1.Shown, 1)
	assert.Equal(t, "forecast", s1.Shown[0].LensID)

	s2, ok := r.Snapshot("s2")
	require.True(t, ok)
	assert.Equal(t, "roadmap", s2.Shown[0].LensID)

	assert.ElementsMatch(t, []string{"s1", "s2"}, r.Sessions())
}

func TestSnapshotUnknownSession(t *testing.T) {
	_, ok := NewRecorder().Snapshot("missing")
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordShown("s1", "forecast", 1, "high_friction")

	st, ok := r.Snapshot("s1")
	require.True(t, ok)
	st.Shown[0].LensID = "mutated"
	st.Shown = append(st.Shown, Event{LensID: "extra"})

	fresh, ok := r.Snapshot("s1")
	require.True(t, ok)
	require.Len(t, fresh.Shown, 1)
	assert.Equal(t, "forecast", fresh.Shown[0].LensID)
}

func TestRecorderConcurrentUse(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(turn int) {
			defer wg.Done()
			r.RecordShown("s1", "forecast", turn, "high_friction")
			r.RecordOpened("s1", "forecast", turn)
		}(i)
	}
	wg.Wait()

	st, ok := r.Snapshot("s1")
	require.True(t, ok)
	assert.Len(t, st.Shown, 16)
	assert.Len(t, st.Opened, 16)
}
