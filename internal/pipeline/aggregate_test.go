package pipeline

import "testing"

type testExpense struct {
	Category string
	Cents    int64
}

func TestSumByCategory(t *testing.T) {
	records := []testExpense{
		{Category: "fuel", Cents: 10000},
		{Category: "fuel", Cents: 5000},
		{Category: "labor", Cents: 20000},
	}
	agg := SumBy(records,
		func(e testExpense) string { return e.Category },
		func(e testExpense) int64 { return e.Cents })

	if len(agg.Buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(agg.Buckets))
	}
	if agg.Buckets[0].Label != "fuel" || agg.Buckets[0].Total != 15000 {
		t.Fatalf("fuel bucket = %+v, want total 15000", agg.Buckets[0])
	}
	if agg.Buckets[1].Label != "labor" || agg.Buckets[1].Total != 20000 {
		t.Fatalf("labor bucket = %+v, want total 20000", agg.Buckets[1])
	}
	if agg.GrandTotal != 35000 {
		t.Fatalf("grand total = %d, want 35000", agg.GrandTotal)
	}
}

func TestSumByGrandTotalEqualsBucketSum(t *testing.T) {
	records := []testExpense{
		{Category: "seed", Cents: 1250},
		{Category: "fuel", Cents: 9900},
		{Category: "seed", Cents: 75},
		{Category: "repairs", Cents: 42000},
		{Category: "fuel", Cents: 1},
	}
	agg := SumBy(records,
		func(e testExpense) string { return e.Category },
		func(e testExpense) int64 { return e.Cents })

	var sum int64
	for _, b := range agg.Buckets {
		sum += b.Total
	}
	if sum != agg.GrandTotal {
		t.Fatalf("bucket sum = %d, grand total = %d", sum, agg.GrandTotal)
	}
}

func TestSumByBucketOrderIsFirstOccurrence(t *testing.T) {
	records := []testExpense{
		{Category: "zinc"},
		{Category: "alfalfa"},
		{Category: "zinc"},
		{Category: "mulch"},
	}
	agg := SumBy(records,
		func(e testExpense) string { return e.Category },
		func(e testExpense) int64 { return e.Cents })

	want := []string{"zinc", "alfalfa", "mulch"}
	for i, label := range want {
		if agg.Buckets[i].Label != label {
			t.Fatalf("bucket[%d] = %q, want %q", i, agg.Buckets[i].Label, label)
		}
	}
}

func TestSumByNormalizesBucketCase(t *testing.T) {
	records := []testExpense{
		{Category: "Fuel", Cents: 100},
		{Category: "fuel ", Cents: 50},
	}
	agg := SumBy(records,
		func(e testExpense) string { return e.Category },
		func(e testExpense) int64 { return e.Cents })

	if len(agg.Buckets) != 1 {
		t.Fatalf("buckets = %d, want 1 (case/space variants share a bucket)", len(agg.Buckets))
	}
	if agg.Buckets[0].Label != "Fuel" {
		t.Fatalf("label = %q, want first-seen spelling Fuel", agg.Buckets[0].Label)
	}
	if agg.Buckets[0].Total != 150 {
		t.Fatalf("total = %d, want 150", agg.Buckets[0].Total)
	}
}

func TestCountBy(t *testing.T) {
	records := []testEntry{
		{Status: "pending"},
		{Status: "completed"},
		{Status: "pending"},
		{Status: "in-progress"},
	}
	agg := CountBy(records, func(e testEntry) string { return e.Status })

	if agg.Records != 4 {
		t.Fatalf("records = %d, want 4", agg.Records)
	}
	if agg.Buckets[0].Label != "pending" || agg.Buckets[0].Count != 2 {
		t.Fatalf("pending bucket = %+v, want count 2", agg.Buckets[0])
	}
}

func TestShare(t *testing.T) {
	if got := Share(int64(150), int64(350)); got != 43 {
		t.Fatalf("Share(150, 350) = %d, want 43", got)
	}
	if got := Share(0, 0); got != 0 {
		t.Fatalf("Share(0, 0) = %d, want 0", got)
	}
	if got := Share(7, 7); got != 100 {
		t.Fatalf("Share(7, 7) = %d, want 100", got)
	}
}
