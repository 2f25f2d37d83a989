package signals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iris/internal/intent"
)

func TestExtractEmptyMessage(t *testing.T) {
	sig := Extract("")

	assert.Empty(t, sig.DomainSignals)
	assert.Empty(t, sig.FrictionSignals)
	assert.Zero(t, sig.FrictionScore)
	assert.Zero(t, sig.Confidence)
	require.Len(t, sig.IntentSignals, 1)
	assert.Equal(t, intent.ChatOnly, sig.Primary())
}

func TestExtractDomainSignalsDeduplicated(t *testing.T) {
	// "revenue" and "funding" both map to finance; the tag appears once.
	sig := Extract("our revenue depends on the funding round")

	assert.Equal(t, []string{"finance"}, sig.DomainSignals)
	assert.True(t, sig.HasDomain("finance"))
	assert.False(t, sig.HasDomain("legal"))
}

func TestExtractMultiTagRule(t *testing.T) {
	sig := Extract("forecast next quarter")

	assert.Contains(t, sig.DomainSignals, "finance")
	assert.Contains(t, sig.DomainSignals, "modeling")
}

func TestExtractFrictionSignals(t *testing.T) {
	sig := Extract("I need to get this done, can you help?")

	assert.Contains(t, sig.FrictionSignals, "i need to")
	assert.Contains(t, sig.FrictionSignals, "can you help")
	assert.InDelta(t, 1.0, sig.FrictionScore, 1e-9)
}

func TestExtractConfidenceBlend(t *testing.T) {
	t.Run("chat only, no signals", func(t *testing.T) {
		sig := Extract("good morning")
		assert.Zero(t, sig.Confidence)
	})

	t.Run("actionable intent only", func(t *testing.T) {
		sig := Extract("publish it")
		assert.InDelta(t, 0.4, sig.Confidence, 1e-9)
	})

	t.Run("friction, intent and domain together", func(t *testing.T) {
		sig := Extract("I need to simulate the numbers and forecast revenue scenarios")
		// 0.4*0.5 friction + 0.4 intent + 0.2 domain
		assert.InDelta(t, 0.8, sig.Confidence, 1e-9)
		assert.Equal(t, intent.Simulate, sig.Primary())
	})

	t.Run("clamped at one", func(t *testing.T) {
		sig := Extract("help me, I need to launch, can you help, which lens, what tool, where do I start, I'm trying to publish the campaign")
		assert.Equal(t, 1.0, sig.Confidence)
	})
}

func TestExtractConfidenceMonotoneInFriction(t *testing.T) {
	// Appending friction phrases can only increase the friction score and
	// must never decrease confidence.
	base := "publish the campaign"
	phrases := []string{"i need to", "help me", "can you help", "which lens"}

	prev := Extract(base)
	msg := base
	for _, phrase := range phrases {
		msg = msg + " " + phrase
		cur := Extract(msg)
		require.GreaterOrEqual(t, cur.FrictionScore, prev.FrictionScore, "message %q", msg)
		require.GreaterOrEqual(t, cur.Confidence, prev.Confidence, "message %q", msg)
		prev = cur
	}
}

func TestExtractDeterministic(t *testing.T) {
	msg := "I need to plan the roadmap and forecast the budget"
	first := Extract(msg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(msg))
	}
}

func TestExtractLongMessage(t *testing.T) {
	msg := strings.Repeat("we should plan the launch and review the contract. ", 200)
	sig := Extract(msg)

	assert.LessOrEqual(t, sig.Confidence, 1.0)
	assert.GreaterOrEqual(t, sig.Confidence, 0.0)
	assert.LessOrEqual(t, len(sig.IntentSignals), 2)
}
