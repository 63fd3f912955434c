package repository

import "time"

// Field represents a field row.
type Field struct {
	ID         string
	Name       string
	AreaAcres  float64
	SoilType   string
	Irrigation string
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Crop represents a crop row. A crop always belongs to a field.
type Crop struct {
	ID                string
	FieldID           string
	Name              string
	Variety           string
	PlantedAt         *time.Time
	ExpectedHarvestAt *time.Time
	Status            string
	CreatedAt         time.Time
}

// Task represents a task row. FieldID is nil for farm-wide tasks.
type Task struct {
	ID          string
	FieldID     *string
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task status values. Everything that is not completed counts toward
// overdue once its due date passes.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

// InventoryItem represents an inventory row. Quantity and reorder level share
// the item's unit; cost is stored in cents.
type InventoryItem struct {
	ID               string
	Name             string
	Category         string
	Quantity         float64
	Unit             string
	ReorderLevel     float64
	CostPerUnitCents int64
	LastRestockedAt  *time.Time
}

// LowStock reports whether the item is at or below its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// Entry represents one expense or income row; the two tables share a shape.
type Entry struct {
	ID            string
	FieldID       *string
	Title         string
	Category      string
	AmountCents   int64
	EntryDate     time.Time
	Description   string
	PaymentMethod string
	CreatedAt     time.Time
}
