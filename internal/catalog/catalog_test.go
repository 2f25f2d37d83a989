package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iris/internal/intent"
)

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "missing id",
			entries: []Entry{{Name: "Nameless"}},
			wantErr: "missing id",
		},
		{
			name:    "missing name",
			entries: []Entry{{ID: "x"}},
			wantErr: "missing name",
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: "x", Name: "One"},
				{ID: "x", Name: "Two"},
			},
			wantErr: "duplicate id",
		},
		{
			name:    "bad cost",
			entries: []Entry{{ID: "x", Name: "X", Cost: "extreme"}},
			wantErr: "unknown entry cost",
		},
		{
			name:    "bad scope",
			entries: []Entry{{ID: "x", Name: "X", Scope: "universe"}},
			wantErr: "unknown access scope",
		},
		{
			name:    "bad intent tag",
			entries: []Entry{{ID: "x", Name: "X", IntentTags: []intent.Intent{"daydream"}}},
			wantErr: "unknown intent",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	cat, err := New([]Entry{{ID: "x", Name: "X"}})
	require.NoError(t, err)

	e, ok := cat.Get("x")
	require.True(t, ok)
	assert.Equal(t, CostLow, e.Cost)
	assert.Equal(t, ScopeNone, e.Scope)
}

func TestEntriesAreCopied(t *testing.T) {
	cat, err := New([]Entry{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	require.NoError(t, err)

	got := cat.Entries()
	got[0].ID = "mutated"

	again := cat.Entries()
	assert.Equal(t, "a", again[0].ID)
	assert.Equal(t, 2, cat.Len())
}

func TestBuiltinCatalog(t *testing.T) {
	cat := Builtin()
	require.Greater(t, cat.Len(), 0)

	seen := make(map[string]bool)
	for _, e := range cat.Entries() {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Actions, "builtin entry %s has no actions", e.ID)
		for _, it := range e.IntentTags {
			_, err := intent.Parse(string(it))
			assert.NoError(t, err, "builtin entry %s", e.ID)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lenses.yaml")

	content := `
lenses:
  - id: forecast
    name: Revenue Forecaster
    domain_tags: [finance, modeling]
    intent_tags: [simulate]
    cost: med
    actions: [simulate]
    scope: local
  - id: counsel
    name: Compliance Counsel
    domain_tags: [legal]
    intent_tags: [audit]
    actions: [audit, legal-check]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	e, ok := cat.Get("forecast")
	require.True(t, ok)
	assert.Equal(t, CostMed, e.Cost)
	assert.Equal(t, ScopeLocal, e.Scope)
	assert.Equal(t, []intent.Intent{intent.Simulate}, e.IntentTags)

	e, ok = cat.Get("counsel")
	require.True(t, ok)
	assert.Equal(t, CostLow, e.Cost)
	assert.Equal(t, ScopeNone, e.Scope)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lenses: []\n"), 0o644))
	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no lenses")
}
