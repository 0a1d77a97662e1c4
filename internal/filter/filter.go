// Package filter derives the visible subset of a view's collection from a
// free-text search and a set of enum dropdown selections.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// All is the dropdown value that disables an enum predicate.
const All = "all"

// SearchKey is the filter map key that carries free text.
const SearchKey = "search"

// Record is anything the engine can filter.
// Every types.Entity satisfies it.
type Record interface {
	SearchText() []string
	EnumValue(field string) (string, bool)
}

// Criteria is the conjunction of a text search and enum equality checks.
// A zero Criteria matches every record.
type Criteria struct {
	Search string
	Equals map[string]string
}

// ParseCriteria converts a Table.Fetch filter map into Criteria.
// Returns ErrInvalidFilter when a value is not a string.
func ParseCriteria(m map[string]any) (Criteria, error) {
	var c Criteria
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return Criteria{}, fmt.Errorf("filter %q has %T value: %w", k, v, types.ErrInvalidFilter)
		}
		if k == SearchKey {
			c.Search = s
			continue
		}
		if c.Equals == nil {
			c.Equals = make(map[string]string)
		}
		c.Equals[k] = s
	}
	return c, nil
}

// Fields returns the enum field names in sorted order.
func (c Criteria) Fields() []string {
	fields := make([]string, 0, len(c.Equals))
	for f := range c.Equals {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks every enum field name against probe, a zero record of
// the filtered type. Returns ErrInvalidFilter for an unknown field.
func Validate(c Criteria, probe Record) error {
	for _, f := range c.Fields() {
		if _, ok := probe.EnumValue(f); !ok {
			return fmt.Errorf("unknown field %q: %w", f, types.ErrInvalidFilter)
		}
	}
	return nil
}

// Matches reports whether r satisfies every predicate in c.
// Text matching is case-insensitive containment in any search field.
// Enum matching is exact; "" and All match everything.
func Matches(r Record, c Criteria) bool {
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		hit := false
		for _, s := range r.SearchText() {
			if strings.Contains(strings.ToLower(s), needle) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for field, want := range c.Equals {
		if want == "" || want == All {
			continue
		}
		got, ok := r.EnumValue(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Apply returns the records of items matching c, in their original order.
// The input slice is not modified. An empty result is a non-nil empty slice.
func Apply[T Record](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(it, c) {
			out = append(out, it)
		}
	}
	return out
}

// Select applies a Table.Fetch filter map to a table's entities and returns
// the matches as []any, the shape Table.Fetch returns.
// Returns ErrInvalidFilter for non-string values or unknown fields.
func Select(table string, items []types.Entity, m map[string]any) ([]any, error) {
	c, err := ParseCriteria(m)
	if err != nil {
		return nil, err
	}
	probe, err := types.NewEntity(table)
	if err != nil {
		return nil, err
	}
	if err := Validate(c, probe); err != nil {
		return nil, err
	}
	out := make([]any, 0, len(items))
	for _, e := range Apply(items, c) {
		out = append(out, e)
	}
	return out, nil
}
