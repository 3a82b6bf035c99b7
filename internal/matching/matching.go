// Package matching holds the import rules that clean up raw bank
// descriptions and file uncategorized rows under a category.
package matching

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var (
	ErrNotFound        = errors.New("rule not found")
	ErrEmptyPattern    = errors.New("pattern is required")
	ErrEmptyRule       = errors.New("rule must set a description or a category")
	ErrUnknownCategory = errors.New("category is not in the catalog")
)

// Rule rewrites any imported row whose description contains Pattern,
// ignoring case. An empty Description or Category leaves that field alone.
type Rule struct {
	ID          uuid.UUID
	Pattern     string
	Description string
	Category    string
	CreatedAt   time.Time
}

// Set is an ordered, read-only view of the rules used for one import.
type Set struct {
	rules []Rule
}

// NewSet orders rules so the longest pattern wins, newest first on ties.
func NewSet(rules []*Rule) *Set {
	s := &Set{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if r == nil || strings.TrimSpace(r.Pattern) == "" {
			continue
		}

		rule := *r
		rule.Pattern = strings.ToLower(strings.TrimSpace(rule.Pattern))
		s.rules = append(s.rules, rule)
	}

	slices.SortStableFunc(s.rules, func(a, b Rule) int {
		if c := cmp.Compare(len(b.Pattern), len(a.Pattern)); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return s
}

func (s *Set) Len() int {
	return len(s.rules)
}

// Match returns the best rule for a raw description.
func (s *Set) Match(description string) (Rule, bool) {
	description = strings.ToLower(description)

	for _, r := range s.rules {
		if strings.Contains(description, r.Pattern) {
			return r, true
		}
	}

	return Rule{}, false
}

// Apply rewrites rows in place and returns how many changed. A rule's
// category only replaces a missing or catch-all category, and only when
// its kind agrees with the row's type.
func (s *Set) Apply(rows []ingest.DraftRow) int {
	changed := 0

	for i := range rows {
		r, ok := s.Match(rows[i].Description)
		if !ok {
			continue
		}

		touched := false

		if r.Description != "" && r.Description != rows[i].Description {
			rows[i].Description = r.Description
			touched = true
		}

		if r.Category != "" && uncategorized(rows[i]) {
			e, known := catalog.Lookup(r.Category)
			typ := transaction.Type(strings.ToLower(rows[i].Type))

			if known && (typ == "" || typ == e.Kind) {
				rows[i].Category = e.Code
				rows[i].Type = string(e.Kind)
				touched = true
			}
		}

		if touched {
			changed++
		}
	}

	return changed
}

func uncategorized(row ingest.DraftRow) bool {
	if row.Category == "" {
		return true
	}

	return row.Category == catalog.Fallback(transaction.Type(strings.ToLower(row.Type)))
}
