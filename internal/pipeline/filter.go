package pipeline

import (
	"strings"
	"time"
)

// FacetAll is the sentinel facet value meaning "no constraint".
const FacetAll = "all"

// DateBucket selects a calendar-month window relative to now.
type DateBucket int

const (
	BucketAll DateBucket = iota
	BucketCurrentMonth
	BucketPreviousMonth
)

// FilterSpec enumerates the active predicates for one filter pass.
type FilterSpec struct {
	Search     string
	Facets     map[string]string // facet name -> accepted value, FacetAll disables
	DateBucket DateBucket
}

// View binds a record type to the fields filtering can see.
type View[E any] struct {
	// Search returns the string fields matched by free-text search.
	Search func(E) []string
	// Facet returns the record's canonical value for a facet name.
	Facet func(E, string) string
	// Date returns the record's bucketed date. ok=false marks an undated
	// record, which date buckets exclude and BucketAll keeps.
	Date func(E) (time.Time, bool)
	// Derived maps facet name -> special value -> predicate, computed
	// against now on every pass rather than stored state. Scoping by
	// facet name keeps a record whose stored value happens to equal a
	// special value (say a category literally named "overdue") on the
	// plain equality path for every other facet.
	Derived map[string]map[string]func(E, time.Time) bool
}

// Filter returns the records matching every active predicate in spec.
// It never mutates records or spec; filtering twice with the same inputs
// yields identical output.
func Filter[E any](records []E, v View[E], spec FilterSpec, now time.Time) []E {
	query := strings.ToLower(strings.TrimSpace(spec.Search))
	start, end, bounded := bucketBounds(spec.DateBucket, now)

	out := make([]E, 0, len(records))
	for _, r := range records {
		if !matchesFacets(r, v, spec.Facets, now) {
			continue
		}
		if bounded {
			// views without a date accessor have only undated records,
			// which every bounded bucket excludes
			if v.Date == nil {
				continue
			}
			d, ok := v.Date(r)
			if !ok || d.Before(start) || !d.Before(end) {
				continue
			}
		}
		if query != "" && !matchesSearch(r, v, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// bucketBounds returns the half-open [start, end) window for a bucket.
// BucketAll reports bounded=false.
func bucketBounds(bucket DateBucket, now time.Time) (start, end time.Time, bounded bool) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	switch bucket {
	case BucketCurrentMonth:
		return monthStart, monthStart.AddDate(0, 1, 0), true
	case BucketPreviousMonth:
		return monthStart.AddDate(0, -1, 0), monthStart, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func matchesFacets[E any](r E, v View[E], facets map[string]string, now time.Time) bool {
	for name, want := range facets {
		if want == "" || want == FacetAll {
			continue
		}
		if derived, ok := v.Derived[name][want]; ok {
			if !derived(r, now) {
				return false
			}
			continue
		}
		if v.Facet == nil || v.Facet(r, name) != want {
			return false
		}
	}
	return true
}

func matchesSearch[E any](r E, v View[E], query string) bool {
	if v.Search == nil {
		return false
	}
	for _, field := range v.Search(r) {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
