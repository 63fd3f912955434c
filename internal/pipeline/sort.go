package pipeline

import (
	"sort"
	"time"
)

// SortBy returns a copy of records ordered by less. The sort is stable:
// records with equal keys keep their input order, so output is deterministic
// across calls. The input slice is left untouched.
func SortBy[E any](records []E, less func(a, b E) bool) []E {
	out := make([]E, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// DateAsc orders by date ascending. Undated records sort last rather than
// being dropped.
func DateAsc[E any](date func(E) (time.Time, bool)) func(a, b E) bool {
	return func(a, b E) bool {
		da, aok := date(a)
		db, bok := date(b)
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return da.Before(db)
	}
}

// DateDesc orders by date descending, undated records last.
func DateDesc[E any](date func(E) (time.Time, bool)) func(a, b E) bool {
	return func(a, b E) bool {
		da, aok := date(a)
		db, bok := date(b)
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return db.Before(da)
	}
}

// RatioAsc orders by num/den ascending. A zero denominator is treated as 1,
// matching the inventory convention that a reorder level of 0 compares raw
// quantities.
func RatioAsc[E any](num, den func(E) float64) func(a, b E) bool {
	ratio := func(e E) float64 {
		d := den(e)
		if d == 0 {
			d = 1
		}
		return num(e) / d
	}
	return func(a, b E) bool { return ratio(a) < ratio(b) }
}
