package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iris/internal/catalog"
	"iris/internal/intent"
	"iris/internal/session"
	"iris/internal/signals"
)

func simulateSignals() signals.Signals {
	return signals.Signals{
		DomainSignals: []string{"finance", "modeling"},
		IntentSignals: []intent.Intent{intent.Simulate},
	}
}

func TestRankFullMatch(t *testing.T) {
	ranked := Rank(simulateSignals(), session.NewContext(), catalog.Builtin())

	require.Len(t, ranked, 1)
	top := ranked[0]
	assert.Equal(t, "forecast", top.LensID)
	assert.Equal(t, "Revenue Forecaster", top.Name)
	assert.Equal(t, 1.0, top.DomainMatch)
	assert.Equal(t, 1.0, top.IntentMatch)
	assert.Equal(t, 1.0, top.ActionMatch)
	assert.ElementsMatch(t, []string{"finance", "modeling"}, top.MatchedDomains)
	// 0.25 + 0.25 + 0.20 minus the med cost penalty.
	assert.InDelta(t, 0.67, top.Score, 1e-9)
}

func TestRankShadowBoost(t *testing.T) {
	sess := session.NewContext()
	sess.LensesUsed["forecast"] = true

	ranked := Rank(simulateSignals(), sess, catalog.Builtin())

	require.Len(t, ranked, 1)
	assert.InDelta(t, 0.72, ranked[0].Score, 1e-9)
}

func TestRankSpamPenalty(t *testing.T) {
	tests := []struct {
		name    string
		records []session.Record
		turn    int
		want    float64
	}{
		{
			name:    "one recent recommendation",
			records: []session.Record{{LensID: "forecast", Turn: 8}},
			turn:    10,
			want:    0.62,
		},
		{
			name: "penalty saturates",
			records: []session.Record{
				{LensID: "forecast", Turn: 7},
				{LensID: "forecast", Turn: 8},
				{LensID: "forecast", Turn: 9},
			},
			turn: 10,
			want: 0.57,
		},
		{
			name:    "old recommendation outside window",
			records: []session.Record{{LensID: "forecast", Turn: 5}},
			turn:    10,
			want:    0.67,
		},
		{
			name:    "other lens does not count",
			records: []session.Record{{LensID: "roadmap", Turn: 9}},
			turn:    10,
			want:    0.67,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.NewContext()
			sess.RecentRecommendations = tt.records
			sess.CurrentTurn = tt.turn

			ranked := Rank(simulateSignals(), sess, catalog.Builtin())

			require.Len(t, ranked, 1)
			assert.InDelta(t, tt.want, ranked[0].Score, 1e-9)
		})
	}
}

func TestRankPartialOverlapOrdering(t *testing.T) {
	sig := signals.Signals{
		DomainSignals: []string{"pitch", "legal"},
		IntentSignals: []intent.Intent{intent.Build},
	}

	ranked := Rank(sig, session.NewContext(), catalog.Builtin())

	require.Len(t, ranked, 3)
	assert.Equal(t, "studio", ranked[0].LensID)
	assert.Equal(t, "deck", ranked[1].LensID)
	assert.Equal(t, "canvas", ranked[2].LensID)

	assert.Equal(t, 0.5, ranked[0].DomainMatch)
	assert.Equal(t, []string{"pitch"}, ranked[0].MatchedDomains)
	assert.InDelta(t, 0.575, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0.445, ranked[1].Score, 1e-9)
	assert.InDelta(t, 0.325, ranked[2].Score, 1e-9)
}

func TestRankCatalogOrderBreaksTies(t *testing.T) {
	entry := func(id string) catalog.Entry {
		return catalog.Entry{
			ID:         id,
			Name:       id,
			DomainTags: []string{"finance"},
			IntentTags: []intent.Intent{intent.Plan},
			Actions:    []string{"plan"},
		}
	}
	cat, err := catalog.New([]catalog.Entry{entry("alpha"), entry("beta")})
	require.NoError(t, err)

	sig := signals.Signals{
		DomainSignals: []string{"finance"},
		IntentSignals: []intent.Intent{intent.Plan},
	}
	ranked := Rank(sig, session.NewContext(), cat)

	require.Len(t, ranked, 2)
	assert.Equal(t, "alpha", ranked[0].LensID)
	assert.Equal(t, "beta", ranked[1].LensID)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
}

func TestRankCapsCandidates(t *testing.T) {
	entry := func(id string) catalog.Entry {
		return catalog.Entry{
			ID:         id,
			Name:       id,
			DomainTags: []string{"planning"},
			IntentTags: []intent.Intent{intent.Plan},
			Actions:    []string{"plan"},
		}
	}
	cat, err := catalog.New([]catalog.Entry{
		entry("a"), entry("b"), entry("c"), entry("d"), entry("e"),
	})
	require.NoError(t, err)

	sig := signals.Signals{
		DomainSignals: []string{"planning"},
		IntentSignals: []intent.Intent{intent.Plan},
	}
	ranked := Rank(sig, session.NewContext(), cat)

	assert.Len(t, ranked, MaxCandidates)
}

func TestRankEmptySignals(t *testing.T) {
	ranked := Rank(signals.Signals{}, session.NewContext(), catalog.Builtin())
	assert.Empty(t, ranked)
}

func TestRankEmptyEntrySets(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{{ID: "bare", Name: "Bare"}})
	require.NoError(t, err)

	ranked := Rank(simulateSignals(), session.NewContext(), cat)
	assert.Empty(t, ranked)
}

func TestRankShadowAloneNeverPasses(t *testing.T) {
	sess := session.NewContext()
	for _, e := range catalog.Builtin().Entries() {
		sess.LensesUsed[e.ID] = true
	}

	ranked := Rank(signals.Signals{}, sess, catalog.Builtin())
	assert.Empty(t, ranked)
}
