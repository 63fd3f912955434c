// Package testdata seeds a sample farm so a fresh database has something to
// look at. Wired behind the --seed flag; never runs implicitly.
package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/farmkeep/farmkeep/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Fields    *repository.FieldRepo
	Crops     *repository.CropRepo
	Tasks     *repository.TaskRepo
	Inventory *repository.InventoryRepo
	Expenses  *repository.EntryRepo
	Income    *repository.EntryRepo
}

// Seed creates a small worked farm: fields with crops, a task backlog,
// stocked inventory, and a few months of money entries.
func Seed(ctx context.Context, repos Repos) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	fieldSpecs := []repository.Field{
		{Name: "North Paddock", AreaAcres: 32, SoilType: "clay loam", Irrigation: "pivot", Status: "active"},
		{Name: "River Flat", AreaAcres: 18.5, SoilType: "silt", Irrigation: "flood", Status: "active"},
		{Name: "Hill Block", AreaAcres: 44, SoilType: "sandy loam", Irrigation: "dryland", Status: "fallow"},
	}
	crops := []struct {
		name, variety string
		monthsIn      int
	}{
		{"Wheat", "Scepter", 3},
		{"Canola", "Stingray", 2},
		{"Oats", "Mulgara", 1},
	}

	var fields []repository.Field
	for i, spec := range fieldSpecs {
		f, err := repos.Fields.Insert(ctx, spec)
		if err != nil {
			return fmt.Errorf("seed field %s: %w", spec.Name, err)
		}
		fields = append(fields, f)

		if spec.Status == "active" {
			planted := now.AddDate(0, -crops[i].monthsIn, 0)
			harvest := planted.AddDate(0, 6, 0)
			if _, err := repos.Crops.Insert(ctx, repository.Crop{
				FieldID:           f.ID,
				Name:              crops[i].name,
				Variety:           crops[i].variety,
				PlantedAt:         &planted,
				ExpectedHarvestAt: &harvest,
				Status:            "growing",
			}); err != nil {
				return fmt.Errorf("seed crop: %w", err)
			}
		}
	}

	taskSpecs := []struct {
		title, category, priority, status string
		dueOffsetDays                     int
	}{
		{"Spray broadleaf weeds", "spraying", "high", repository.TaskPending, -2},
		{"Service tractor 50hr", "maintenance", "medium", repository.TaskPending, 3},
		{"Check pivot nozzles", "irrigation", "medium", repository.TaskInProgress, 1},
		{"Order urea", "purchasing", "high", repository.TaskPending, 5},
		{"Soil test Hill Block", "agronomy", "low", repository.TaskPending, 14},
		{"Grease baler", "maintenance", "low", repository.TaskCompleted, -7},
		{"Move cattle to River Flat", "livestock", "medium", repository.TaskCompleted, -10},
	}
	for i, spec := range taskSpecs {
		due := now.AddDate(0, 0, spec.dueOffsetDays)
		task := repository.Task{
			Title:    spec.title,
			Category: spec.category,
			Priority: spec.priority,
			Status:   spec.status,
			DueDate:  &due,
		}
		if len(fields) > 0 {
			task.FieldID = &fields[i%len(fields)].ID
		}
		if spec.status == repository.TaskCompleted {
			done := due.AddDate(0, 0, -1)
			task.CompletedAt = &done
		}
		if _, err := repos.Tasks.Insert(ctx, task); err != nil {
			return fmt.Errorf("seed task %s: %w", spec.title, err)
		}
	}

	restocked := now.AddDate(0, 0, -20)
	items := []repository.InventoryItem{
		{Name: "Urea 46%", Category: "fertilizer", Quantity: 4, Unit: "tonnes", ReorderLevel: 6, CostPerUnitCents: 78000},
		{Name: "Diesel", Category: "fuel", Quantity: 1200, Unit: "litres", ReorderLevel: 400, CostPerUnitCents: 190},
		{Name: "Glyphosate", Category: "chemicals", Quantity: 60, Unit: "litres", ReorderLevel: 20, CostPerUnitCents: 1150},
		{Name: "Baling twine", Category: "supplies", Quantity: 8, Unit: "rolls", ReorderLevel: 10, CostPerUnitCents: 4500},
	}
	for _, item := range items {
		item.LastRestockedAt = &restocked
		if _, err := repos.Inventory.Insert(ctx, item); err != nil {
			return fmt.Errorf("seed inventory %s: %w", item.Name, err)
		}
	}

	expenseCats := []string{"fuel", "fertilizer", "repairs", "labor", "seeds"}
	for i := 0; i < 18; i++ {
		e := repository.Entry{
			Title:         fmt.Sprintf("Expense %02d", i+1),
			Category:      expenseCats[rng.Intn(len(expenseCats))],
			AmountCents:   int64(rng.Intn(90000) + 2500),
			EntryDate:     now.AddDate(0, 0, -rng.Intn(75)),
			PaymentMethod: []string{"card", "transfer", "account"}[rng.Intn(3)],
		}
		if _, err := repos.Expenses.Insert(ctx, e); err != nil {
			return fmt.Errorf("seed expense: %w", err)
		}
	}

	incomeSpecs := []repository.Entry{
		{Title: "Wheat delivery", Category: "grain", AmountCents: 1250000},
		{Title: "Hay sale", Category: "fodder", AmountCents: 310000},
		{Title: "Agistment", Category: "services", AmountCents: 80000},
	}
	for i, e := range incomeSpecs {
		e.EntryDate = now.AddDate(0, 0, -10*(i+1))
		e.PaymentMethod = "transfer"
		if _, err := repos.Income.Insert(ctx, e); err != nil {
			return fmt.Errorf("seed income: %w", err)
		}
	}

	return nil
}
