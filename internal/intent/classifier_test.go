package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyChatOnly(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"hello there",
		"thanks, that was helpful",
		"how was your weekend?",
	}
	for _, msg := range cases {
		got := Classify(msg)
		require.Len(t, got, 1, "message %q", msg)
		assert.Equal(t, ChatOnly, got[0], "message %q", msg)
	}
}

func TestClassifySingleIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"I need to plan the steps and milestones for this project", Plan},
		{"I need to simulate the numbers and forecast revenue scenarios", Simulate},
		{"let's brainstorm some ideas", Ideate},
		{"publish this and announce the launch", Publish},
		{"can you audit this contract for compliance risk", Audit},
	}
	for _, tc := range cases {
		got := Classify(tc.message)
		require.NotEmpty(t, got, "message %q", tc.message)
		assert.Equal(t, tc.want, got[0], "message %q", tc.message)
	}
}

func TestClassifyRunnerUpRule(t *testing.T) {
	// Four Plan cues against two Build cues: 2*2 >= 4, runner-up included.
	msg := "plan the roadmap with milestones and a timeline, then build a prototype"
	got := Classify(msg)
	require.Len(t, got, 2)
	assert.Equal(t, Plan, got[0])
	assert.Equal(t, Build, got[1])

	// Four Plan cues against a single Build cue: 2*1 < 4, runner-up dropped.
	msg = "plan the roadmap with milestones and a timeline before we build"
	got = Classify(msg)
	require.Len(t, got, 1)
	assert.Equal(t, Plan, got[0])
}

func TestClassifyOccurrencesBeatPresence(t *testing.T) {
	// "plan" twice outscores a single Build cue even though both are present.
	got := Classify("plan the plan and build it")
	assert.Equal(t, Plan, got[0])
}

func TestClassifyLengthBounds(t *testing.T) {
	msgs := []string{
		"hello",
		"plan it",
		"plan the roadmap, build a prototype, publish the launch post, audit the legal risk",
	}
	for _, msg := range msgs {
		got := Classify(msg)
		assert.GreaterOrEqual(t, len(got), 1, "message %q", msg)
		assert.LessOrEqual(t, len(got), 2, "message %q", msg)
	}
}

func TestVerbsCoverAllIntents(t *testing.T) {
	for _, it := range All() {
		verbs := Verbs(it)
		if it == ChatOnly {
			assert.Empty(t, verbs)
			continue
		}
		assert.NotEmpty(t, verbs, "intent %s must map to at least one verb", it)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, it := range All() {
		got, err := Parse(string(it))
		require.NoError(t, err)
		assert.Equal(t, it, got)
	}
	_, err := Parse("daydream")
	assert.Error(t, err)
}

func TestRequestedActionsDeduplicates(t *testing.T) {
	// Build and Structure both request draft+plan; the union stays deduplicated.
	got := RequestedActions([]Intent{Build, Structure})
	assert.Equal(t, []string{"draft", "plan"}, got)

	assert.Empty(t, RequestedActions([]Intent{ChatOnly}))
	assert.Empty(t, RequestedActions(nil))
}
