package tui

import (
	"time"

	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/pipeline"
	"github.com/farmkeep/farmkeep/internal/service"
)

// Enriched rows carry the joined display fields each list view needs. The
// join, filter, and sort all run through the pipeline on every refresh, so
// views never hold derived state of their own.

type taskRow struct {
	repository.Task
	FieldName string
}

type fieldRow struct {
	repository.Field
	CropID      string
	CropName    string
	CropVariety string
	CropStatus  string
}

type entryRow struct {
	repository.Entry
	FieldName string
}

type itemRow struct {
	repository.InventoryItem
}

func taskRows(tasks []repository.Task, fields []repository.Field) []taskRow {
	return pipeline.Enrich(tasks, fields,
		func(t repository.Task) string {
			if t.FieldID == nil {
				return ""
			}
			return *t.FieldID
		},
		func(f repository.Field) string { return f.ID },
		func(t repository.Task, f *repository.Field) taskRow {
			row := taskRow{Task: t}
			if f != nil {
				row.FieldName = f.Name
			}
			return row
		})
}

// fieldRows attaches each field's current crop. With several crops on one
// field the most recently planted wins, matching what the cards showed in
// practice.
func fieldRows(fields []repository.Field, crops []repository.Crop) []fieldRow {
	return pipeline.Enrich(fields, crops,
		func(f repository.Field) string { return f.ID },
		func(c repository.Crop) string { return c.FieldID },
		func(f repository.Field, c *repository.Crop) fieldRow {
			row := fieldRow{Field: f}
			if c != nil {
				row.CropID = c.ID
				row.CropName = c.Name
				row.CropVariety = c.Variety
				row.CropStatus = c.Status
			}
			return row
		})
}

func entryRows(entries []repository.Entry, fields []repository.Field) []entryRow {
	return pipeline.Enrich(entries, fields,
		func(e repository.Entry) string {
			if e.FieldID == nil {
				return ""
			}
			return *e.FieldID
		},
		func(f repository.Field) string { return f.ID },
		func(e repository.Entry, f *repository.Field) entryRow {
			row := entryRow{Entry: e}
			if f != nil {
				row.FieldName = f.Name
			}
			return row
		})
}

func itemRows(items []repository.InventoryItem) []itemRow {
	out := make([]itemRow, 0, len(items))
	for _, i := range items {
		out = append(out, itemRow{InventoryItem: i})
	}
	return out
}

// facet names shared by specs and views
const (
	facetStatus   = "status"
	facetPriority = "priority"
	facetCategory = "category"
	facetStock    = "stock"
)

// derived facet values
const (
	stockLow      = "low"
	stockAdequate = "adequate"
	statusOverdue = "overdue"
)

func taskPipelineView() pipeline.View[taskRow] {
	return pipeline.View[taskRow]{
		Search: func(t taskRow) []string {
			return []string{t.Title, t.Description, t.Category, t.FieldName}
		},
		Facet: func(t taskRow, name string) string {
			switch name {
			case facetStatus:
				return t.Status
			case facetPriority:
				return t.Priority
			case facetCategory:
				return t.Category
			}
			return ""
		},
		Date: func(t taskRow) (time.Time, bool) {
			if t.DueDate == nil {
				return time.Time{}, false
			}
			return *t.DueDate, true
		},
		Derived: map[string]map[string]func(taskRow, time.Time) bool{
			facetStatus: {
				statusOverdue: func(t taskRow, now time.Time) bool {
					return service.TaskOverdue(t.Task, now)
				},
			},
		},
	}
}

func fieldPipelineView() pipeline.View[fieldRow] {
	return pipeline.View[fieldRow]{
		Search: func(f fieldRow) []string {
			return []string{f.Name, f.SoilType, f.Irrigation, f.CropName, f.CropVariety}
		},
		Facet: func(f fieldRow, name string) string {
			if name == facetStatus {
				return f.Status
			}
			return ""
		},
	}
}

func itemPipelineView() pipeline.View[itemRow] {
	return pipeline.View[itemRow]{
		Search: func(i itemRow) []string { return []string{i.Name, i.Category, i.Unit} },
		Facet: func(i itemRow, name string) string {
			if name == facetCategory {
				return i.Category
			}
			return ""
		},
		Derived: map[string]map[string]func(itemRow, time.Time) bool{
			facetStock: {
				stockLow:      func(i itemRow, _ time.Time) bool { return i.LowStock() },
				stockAdequate: func(i itemRow, _ time.Time) bool { return !i.LowStock() },
			},
		},
	}
}

func entryPipelineView() pipeline.View[entryRow] {
	return pipeline.View[entryRow]{
		Search: func(e entryRow) []string {
			return []string{e.Title, e.Category, e.FieldName, e.PaymentMethod, e.Description}
		},
		Facet: func(e entryRow, name string) string {
			if name == facetCategory {
				return e.Category
			}
			return ""
		},
		Date: func(e entryRow) (time.Time, bool) { return e.EntryDate, !e.EntryDate.IsZero() },
	}
}

// visibleTasks runs the full task pipeline: field join, filters, due-date
// sort.
func (a *App) visibleTasks() []taskRow {
	rows := taskRows(a.tasks, a.fields)
	spec := pipeline.FilterSpec{
		Search: a.search,
		Facets: map[string]string{
			facetStatus:   a.taskStatus,
			facetPriority: a.taskPriority,
			facetCategory: a.taskCategory,
		},
	}
	rows = pipeline.Filter(rows, taskPipelineView(), spec, a.now())
	date := taskPipelineView().Date
	if a.taskSortAsc {
		return pipeline.SortBy(rows, pipeline.DateAsc(date))
	}
	return pipeline.SortBy(rows, pipeline.DateDesc(date))
}

func (a *App) visibleFields() []fieldRow {
	rows := fieldRows(a.fields, a.crops)
	spec := pipeline.FilterSpec{Search: a.search}
	return pipeline.Filter(rows, fieldPipelineView(), spec, a.now())
}

// visibleItems filters inventory and orders it by stock ratio so the items
// closest to (or past) their reorder level surface first.
func (a *App) visibleItems() []itemRow {
	rows := itemRows(a.items)
	spec := pipeline.FilterSpec{
		Search: a.search,
		Facets: map[string]string{
			facetCategory: a.itemCategory,
			facetStock:    a.itemStock,
		},
	}
	rows = pipeline.Filter(rows, itemPipelineView(), spec, a.now())
	return pipeline.SortBy(rows, pipeline.RatioAsc(
		func(i itemRow) float64 { return i.Quantity },
		func(i itemRow) float64 { return i.ReorderLevel },
	))
}

func (a *App) visibleEntries() []entryRow {
	entries := a.expenses
	if a.financePane == paneIncome {
		entries = a.income
	}
	rows := entryRows(entries, a.fields)
	spec := pipeline.FilterSpec{
		Search:     a.search,
		Facets:     map[string]string{facetCategory: a.entryCategory},
		DateBucket: a.entryBucket,
	}
	rows = pipeline.Filter(rows, entryPipelineView(), spec, a.now())
	return pipeline.SortBy(rows, pipeline.DateDesc(entryPipelineView().Date))
}

// entrySummary aggregates the visible entries by category.
func (a *App) entrySummary(rows []entryRow) pipeline.Aggregation[int64] {
	return pipeline.SumBy(rows,
		func(e entryRow) string { return e.Category },
		func(e entryRow) int64 { return e.AmountCents })
}

// categoriesOf collects distinct facet values in first-occurrence order for
// cycling, with the sentinel first.
func categoriesOf[E any](rows []E, value func(E) string) []string {
	out := []string{pipeline.FacetAll}
	agg := pipeline.CountBy(rows, value)
	for _, b := range agg.Buckets {
		if b.Label != "" {
			out = append(out, b.Label)
		}
	}
	return out
}

// cycleFacet advances current within options, wrapping to the start.
func cycleFacet(current string, options []string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) == 0 {
		return pipeline.FacetAll
	}
	return options[0]
}
