// Package catalog holds the static, read-only registry of lenses the
// platform can hand a conversation off to. The catalog is loaded once at
// process start and injected; nothing in this package mutates it
// afterwards.
package catalog

import (
	"fmt"

	"iris/internal/intent"
)

// Cost classifies how heavy it feels for a user to enter a lens.
type Cost string

const (
	CostLow  Cost = "low"
	CostMed  Cost = "med"
	CostHigh Cost = "high"
)

// ParseCost converts a string into a Cost. Empty defaults to low.
func ParseCost(s string) (Cost, error) {
	switch Cost(s) {
	case "":
		return CostLow, nil
	case CostLow, CostMed, CostHigh:
		return Cost(s), nil
	default:
		return "", fmt.Errorf("unknown entry cost %q", s)
	}
}

// Scope is the coarse access classification of where a lens operates.
// It is surfaced for caller policy checks and never scored numerically.
type Scope string

const (
	ScopeNone   Scope = "none"
	ScopeLocal  Scope = "local"
	ScopeGlobal Scope = "global"
	ScopeMarket Scope = "market"
)

// ParseScope converts a string into a Scope. Empty defaults to none.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeNone, nil
	case ScopeNone, ScopeLocal, ScopeGlobal, ScopeMarket:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown access scope %q", s)
	}
}

// Entry describes one lens. Tag and action sets are open-vocabulary
// strings; matching is set intersection, so new domains extend the
// system without touching its types. An entry with empty sets is legal
// and simply never matches.
type Entry struct {
	ID         string          `yaml:"id" json:"id"`
	Name       string          `yaml:"name" json:"name"`
	DomainTags []string        `yaml:"domain_tags" json:"domain_tags"`
	IntentTags []intent.Intent `yaml:"intent_tags" json:"intent_tags"`
	Cost       Cost            `yaml:"cost" json:"cost"`
	Actions    []string        `yaml:"actions" json:"actions"`
	Scope      Scope           `yaml:"scope" json:"scope"`
}

// Catalog is an immutable set of entries keyed by id. Iteration order is
// load order, which the scorer relies on for deterministic tie-breaking.
type Catalog struct {
	entries []Entry
	byID    map[string]Entry
}

// New validates entries and builds a Catalog.
func New(entries []Entry) (*Catalog, error) {
	byID := make(map[string]Entry, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %q: missing name", e.ID)
		}
		if _, dup := byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", e.ID)
		}
		cost, err := ParseCost(string(e.Cost))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
		}
		e.Cost = cost
		scope, err := ParseScope(string(e.Scope))
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
		}
		e.Scope = scope
		for _, tag := range e.IntentTags {
			if _, err := intent.Parse(string(tag)); err != nil {
				return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
			}
		}
		byID[e.ID] = e
		out = append(out, e)
	}
	return &Catalog{entries: out, byID: byID}, nil
}

// Get returns the entry with the given id.
func (c *Catalog) Get(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Entries returns a copy of all entries in load order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
