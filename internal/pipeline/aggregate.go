package pipeline

import "strings"

// Number covers the numeric types aggregation sums over.
type Number interface {
	~int | ~int64 | ~float64
}

// Bucket is one aggregation group.
type Bucket[N Number] struct {
	Label string // first-seen spelling of the bucket value
	Total N
	Count int
}

// Aggregation is the result of grouping a collection. Buckets appear in
// first-occurrence order, not alphabetical; consumers that want a different
// order sort afterwards.
type Aggregation[N Number] struct {
	Buckets    []Bucket[N]
	GrandTotal N
	Records    int
}

// SumBy groups records by the case-normalized bucket value and sums value per
// group. The grand total is the sum across all groups, so the per-bucket
// totals always add up to it exactly.
func SumBy[E any, N Number](records []E, bucket func(E) string, value func(E) N) Aggregation[N] {
	var agg Aggregation[N]
	pos := make(map[string]int)
	for _, r := range records {
		label := bucket(r)
		key := strings.ToLower(strings.TrimSpace(label))
		i, ok := pos[key]
		if !ok {
			i = len(agg.Buckets)
			pos[key] = i
			agg.Buckets = append(agg.Buckets, Bucket[N]{Label: label})
		}
		v := value(r)
		agg.Buckets[i].Total += v
		agg.Buckets[i].Count++
		agg.GrandTotal += v
		agg.Records++
	}
	return agg
}

// CountBy groups records by bucket value and counts them, independent of any
// value field.
func CountBy[E any](records []E, bucket func(E) string) Aggregation[int] {
	return SumBy(records, bucket, func(E) int { return 1 })
}

// Share returns part as a whole-number percentage of total, rounding only
// here at the presentation edge. A zero total yields 0.
func Share[N Number](part, total N) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
