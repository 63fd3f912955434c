package service

import (
	"context"
	"math"
	"time"

	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/pipeline"
)

// Reporter builds the cross-entity summary shown on the reports view. It
// loads fresh collections from the repositories and derives everything else
// through the pipeline, so a report is always consistent with one snapshot.
type Reporter struct {
	Fields    *repository.FieldRepo
	Tasks     *repository.TaskRepo
	Inventory *repository.InventoryRepo
	Expenses  *repository.EntryRepo
	Income    *repository.EntryRepo
}

// TaskStats summarizes task state.
type TaskStats struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

// CompletionPct is the completed share as a whole-number percentage.
func (s TaskStats) CompletionPct() int {
	return pipeline.Share(s.Completed, s.Total)
}

// MoneyStats summarizes one money table over the report period.
type MoneyStats struct {
	ByCategory pipeline.Aggregation[int64]
	TotalCents int64
	Count      int
}

// AverageCents is the mean entry amount; 0 when there are no entries.
func (s MoneyStats) AverageCents() int64 {
	if s.Count == 0 {
		return 0
	}
	return s.TotalCents / int64(s.Count)
}

// InventoryStats summarizes stock on hand.
type InventoryStats struct {
	Items           int
	TotalValueCents int64
	ByCategory      pipeline.Aggregation[int64]
	LowStock        []repository.InventoryItem
}

// Report is the full cross-entity summary.
type Report struct {
	TotalAcres float64
	FieldCount int
	Tasks      TaskStats
	Expenses   MoneyStats
	Income     MoneyStats
	Inventory  InventoryStats
}

// NetCents is income minus expenses over the report period.
func (r Report) NetCents() int64 {
	return r.Income.TotalCents - r.Expenses.TotalCents
}

// Build assembles a report. bucket limits the money sections to a calendar
// month window; task and inventory sections always cover everything.
func (r *Reporter) Build(ctx context.Context, now time.Time, bucket pipeline.DateBucket) (Report, error) {
	var rep Report

	fields, err := r.Fields.List(ctx)
	if err != nil {
		return rep, err
	}
	rep.FieldCount = len(fields)
	for _, f := range fields {
		rep.TotalAcres += f.AreaAcres
	}

	tasks, err := r.Tasks.List(ctx)
	if err != nil {
		return rep, err
	}
	rep.Tasks = taskStats(tasks, now)

	items, err := r.Inventory.List(ctx)
	if err != nil {
		return rep, err
	}
	rep.Inventory = inventoryStats(items)

	expenses, err := r.Expenses.List(ctx)
	if err != nil {
		return rep, err
	}
	rep.Expenses = moneyStats(expenses, bucket, now)

	income, err := r.Income.List(ctx)
	if err != nil {
		return rep, err
	}
	rep.Income = moneyStats(income, bucket, now)

	return rep, nil
}

// TaskOverdue reports whether a task's due date has passed without the task
// reaching the terminal status. Evaluated against the caller's now so a
// status change or the passage of time is reflected immediately.
func TaskOverdue(t repository.Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != repository.TaskCompleted
}

func taskStats(tasks []repository.Task, now time.Time) TaskStats {
	counts := pipeline.CountBy(tasks, func(t repository.Task) string { return t.Status })
	s := TaskStats{Total: counts.Records}
	for _, b := range counts.Buckets {
		switch b.Label {
		case repository.TaskCompleted:
			s.Completed = b.Count
		case repository.TaskPending:
			s.Pending = b.Count
		case repository.TaskInProgress:
			s.InProgress = b.Count
		}
	}
	for _, t := range tasks {
		if TaskOverdue(t, now) {
			s.Overdue++
		}
	}
	return s
}

func inventoryStats(items []repository.InventoryItem) InventoryStats {
	value := func(i repository.InventoryItem) int64 {
		return int64(math.Round(i.Quantity * float64(i.CostPerUnitCents)))
	}
	agg := pipeline.SumBy(items, func(i repository.InventoryItem) string { return i.Category }, value)

	s := InventoryStats{Items: len(items), TotalValueCents: agg.GrandTotal, ByCategory: agg}
	for _, i := range items {
		if i.LowStock() {
			s.LowStock = append(s.LowStock, i)
		}
	}
	return s
}

func moneyStats(entries []repository.Entry, bucket pipeline.DateBucket, now time.Time) MoneyStats {
	view := pipeline.View[repository.Entry]{
		Date: func(e repository.Entry) (time.Time, bool) { return e.EntryDate, !e.EntryDate.IsZero() },
	}
	scoped := pipeline.Filter(entries, view, pipeline.FilterSpec{DateBucket: bucket}, now)
	agg := pipeline.SumBy(scoped,
		func(e repository.Entry) string { return e.Category },
		func(e repository.Entry) int64 { return e.AmountCents })
	return MoneyStats{ByCategory: agg, TotalCents: agg.GrandTotal, Count: agg.Records}
}
