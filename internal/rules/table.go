package rules

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an immutable set of species profiles. It is safe for concurrent
// reads and is passed by pointer to whatever needs it.
type Table struct {
	profiles map[string]*SpeciesProfile
	folded   map[string]string
	keys     []string
}

// NewTable builds a table from profiles. Keys must be non-empty and unique
// ignoring case.
func NewTable(profiles ...*SpeciesProfile) (*Table, error) {
	t := &Table{
		profiles: make(map[string]*SpeciesProfile, len(profiles)),
		folded:   make(map[string]string, len(profiles)),
	}
	for _, p := range profiles {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			return nil, fmt.Errorf("species profile with empty key")
		}
		fold := strings.ToLower(key)
		if existing, dup := t.folded[fold]; dup {
			return nil, fmt.Errorf("duplicate species %q (conflicts with %q)", key, existing)
		}
		cp := *p
		cp.Key = key
		t.profiles[key] = &cp
		t.folded[fold] = key
		t.keys = append(t.keys, key)
	}
	sort.Strings(t.keys)
	return t, nil
}

// Lookup resolves a species key, trying an exact match before a
// case-insensitive one.
func (t *Table) Lookup(key string) (*SpeciesProfile, bool) {
	if t == nil {
		return nil, false
	}
	if p, ok := t.profiles[key]; ok {
		return p, true
	}
	if canonical, ok := t.folded[strings.ToLower(strings.TrimSpace(key))]; ok {
		return t.profiles[canonical], true
	}
	return nil, false
}

// Species returns all species keys in lexical order.
func (t *Table) Species() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Search returns species keys containing query, case-insensitively. An empty
// query matches everything.
func (t *Table) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return t.Species()
	}
	var out []string
	for _, k := range t.keys {
		if strings.Contains(strings.ToLower(k), q) {
			out = append(out, k)
		}
	}
	return out
}

func (t *Table) Len() int {
	return len(t.keys)
}
