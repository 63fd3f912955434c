package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farmkeep/farmkeep/internal/config"
	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/money"
	"github.com/farmkeep/farmkeep/internal/service"
)

// form is a small sequential input: enter advances fields, enter on the last
// field submits.
type form struct {
	labels []string
	values []string
	idx    int
}

func newForm(labels ...string) form {
	return form{labels: labels, values: make([]string, len(labels))}
}

func (f form) value(label string) string {
	for i, l := range f.labels {
		if l == label {
			return strings.TrimSpace(f.values[i])
		}
	}
	return ""
}

func newFieldForm() form {
	return newForm("Name", "Area (acres)", "Soil type", "Irrigation", "Notes")
}

func newTaskForm() form {
	return newForm("Title", "Field", "Category", "Priority", "Due date (YYYY-MM-DD)")
}

func newItemForm() form {
	return newForm("Name", "Category", "Quantity", "Unit", "Reorder level", "Cost per unit")
}

func newEntryForm() form {
	return newForm("Title", "Category", "Amount", "Date (YYYY-MM-DD)", "Field")
}

func restockForm(name string) form {
	f := newForm("Quantity to add")
	f.labels[0] = fmt.Sprintf("Quantity to add to %s", name)
	return f
}

// Edit forms reuse the new-record layouts with current values filled in, so
// submit parsing stays identical for both paths.

func (a *App) editFieldForm(f fieldRow) form {
	fm := newFieldForm()
	fm.values = []string{f.Name, strconv.FormatFloat(f.AreaAcres, 'f', -1, 64), f.SoilType, f.Irrigation, f.Notes}
	return fm
}

func (a *App) editTaskForm(t taskRow) form {
	fm := newTaskForm()
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.In(a.tz).Format("2006-01-02")
	}
	fm.values = []string{t.Title, t.FieldName, t.Category, t.Priority, due}
	return fm
}

func (a *App) editItemForm(i itemRow) form {
	fm := newItemForm()
	cost := ""
	if i.CostPerUnitCents != 0 {
		cost = money.Format(i.CostPerUnitCents, "")
	}
	fm.values = []string{
		i.Name, i.Category,
		strconv.FormatFloat(i.Quantity, 'f', -1, 64), i.Unit,
		strconv.FormatFloat(i.ReorderLevel, 'f', -1, 64), cost,
	}
	return fm
}

func (a *App) editEntryForm(e entryRow) form {
	fm := newEntryForm()
	fm.values = []string{
		e.Title, e.Category,
		money.Format(e.AmountCents, ""),
		e.EntryDate.In(a.tz).Format("2006-01-02"),
		e.FieldName,
	}
	return fm
}

func (a *App) submitForm(kind modalState, f form) tea.Cmd {
	switch kind {
	case modalNewField:
		return a.createFieldCmd(f)
	case modalNewTask:
		return a.createTaskCmd(f)
	case modalNewItem:
		item, err := a.parseItemForm(f)
		if err != nil {
			a.status = "error: " + err.Error()
			return nil
		}
		if match := service.SuggestExisting(item.Name, a.items); match != nil {
			a.pendingItem = item
			a.suggestedItem = match
			a.modal = modalDuplicateItem
			return nil
		}
		return a.createItemCmd(item)
	case modalNewEntry:
		return a.createEntryCmd(f)
	case modalEditField:
		id := a.editingID
		a.editingID = ""
		return a.updateFieldCmd(id, f)
	case modalEditTask:
		id := a.editingID
		a.editingID = ""
		return a.updateTaskCmd(id, f)
	case modalEditItem:
		id := a.editingID
		a.editingID = ""
		return a.updateItemCmd(id, f)
	case modalEditEntry:
		id := a.editingID
		a.editingID = ""
		return a.updateEntryCmd(id, f)
	case modalRestock:
		id := a.restockID
		a.restockID = ""
		qty, err := strconv.ParseFloat(strings.TrimSpace(f.values[0]), 64)
		if err != nil || qty <= 0 {
			a.status = "enter a positive quantity"
			return nil
		}
		return a.restockCmd(id, qty)
	}
	return nil
}

func (a *App) parseFieldForm(f form) (repository.Field, bool) {
	name := f.value("Name")
	if name == "" {
		a.status = "field name required"
		return repository.Field{}, false
	}
	area, _ := strconv.ParseFloat(f.value("Area (acres)"), 64)
	return repository.Field{
		Name:       name,
		AreaAcres:  area,
		SoilType:   f.value("Soil type"),
		Irrigation: f.value("Irrigation"),
		Status:     "active",
		Notes:      f.value("Notes"),
	}, true
}

func (a *App) createFieldCmd(f form) tea.Cmd {
	field, ok := a.parseFieldForm(f)
	if !ok {
		return nil
	}
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.repos.Fields.Insert(a.ctx, field); err != nil {
				return errMsg{err}
			}
			return statusMsg("field added")
		},
		a.loadAll(),
	)
}

func (a *App) parseTaskForm(f form) (repository.Task, bool) {
	title := f.value("Title")
	if title == "" {
		a.status = "task title required"
		return repository.Task{}, false
	}
	task := repository.Task{
		Title:    title,
		FieldID:  a.fieldIDByName(f.value("Field")),
		Category: strings.ToLower(f.value("Category")),
		Priority: normalizePriority(f.value("Priority")),
		Status:   repository.TaskPending,
	}
	if raw := f.value("Due date (YYYY-MM-DD)"); raw != "" {
		due, err := time.ParseInLocation("2006-01-02", raw, a.tz)
		if err != nil {
			a.status = "due date must be YYYY-MM-DD"
			return repository.Task{}, false
		}
		task.DueDate = &due
	}
	return task, true
}

func (a *App) createTaskCmd(f form) tea.Cmd {
	task, ok := a.parseTaskForm(f)
	if !ok {
		return nil
	}
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.repos.Tasks.Insert(a.ctx, task); err != nil {
				return errMsg{err}
			}
			return statusMsg("task added")
		},
		a.loadAll(),
	)
}

func (a *App) parseItemForm(f form) (repository.InventoryItem, error) {
	name := f.value("Name")
	if name == "" {
		return repository.InventoryItem{}, fmt.Errorf("item name required")
	}
	qty, err := strconv.ParseFloat(f.value("Quantity"), 64)
	if err != nil {
		return repository.InventoryItem{}, fmt.Errorf("quantity must be a number")
	}
	reorder, err := strconv.ParseFloat(f.value("Reorder level"), 64)
	if err != nil {
		return repository.InventoryItem{}, fmt.Errorf("reorder level must be a number")
	}
	var cost int64
	if raw := f.value("Cost per unit"); raw != "" {
		if cost, err = money.ParseCents(raw); err != nil {
			return repository.InventoryItem{}, fmt.Errorf("cost must be an amount like 12.50")
		}
	}
	return repository.InventoryItem{
		Name:             name,
		Category:         strings.ToLower(f.value("Category")),
		Quantity:         qty,
		Unit:             f.value("Unit"),
		ReorderLevel:     reorder,
		CostPerUnitCents: cost,
	}, nil
}

func (a *App) createItemCmd(item repository.InventoryItem) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.repos.Inventory.Insert(a.ctx, item); err != nil {
				return errMsg{err}
			}
			return statusMsg("item added")
		},
		a.loadAll(),
	)
}

func (a *App) parseEntryForm(f form) (repository.Entry, bool) {
	title := f.value("Title")
	if title == "" {
		a.status = "entry title required"
		return repository.Entry{}, false
	}
	amount, err := money.ParseCents(f.value("Amount"))
	if err != nil {
		a.status = "amount must be a value like 125.00"
		return repository.Entry{}, false
	}
	date := a.now().In(a.tz)
	if raw := f.value("Date (YYYY-MM-DD)"); raw != "" {
		if date, err = time.ParseInLocation("2006-01-02", raw, a.tz); err != nil {
			a.status = "date must be YYYY-MM-DD"
			return repository.Entry{}, false
		}
	}
	return repository.Entry{
		Title:       title,
		Category:    strings.ToLower(f.value("Category")),
		AmountCents: amount,
		EntryDate:   date,
		FieldID:     a.fieldIDByName(f.value("Field")),
	}, true
}

func (a *App) createEntryCmd(f form) tea.Cmd {
	entry, ok := a.parseEntryForm(f)
	if !ok {
		return nil
	}
	repo := a.repos.Expenses
	label := "expense added"
	if a.financePane == paneIncome {
		repo = a.repos.Income
		label = "income added"
	}
	return tea.Batch(
		func() tea.Msg {
			if _, err := repo.Insert(a.ctx, entry); err != nil {
				return errMsg{err}
			}
			return statusMsg(label)
		},
		a.loadAll(),
		a.loadMonthTotals(),
	)
}

func (a *App) completeTaskCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Tasks.MarkCompleted(a.ctx, id, a.now()); err != nil {
				return errMsg{err}
			}
			return statusMsg("task completed")
		},
		a.loadAll(),
	)
}

func (a *App) restockCmd(id string, qty float64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Inventory.Restock(a.ctx, id, qty, a.now()); err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("restocked +%g", qty))
		},
		a.loadAll(),
	)
}

func (a *App) updateFieldCmd(id string, f form) tea.Cmd {
	field, ok := a.parseFieldForm(f)
	if !ok {
		return nil
	}
	field.ID = id
	for _, existing := range a.fields {
		if existing.ID == id {
			field.Status = existing.Status
		}
	}
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Fields.Update(a.ctx, field); err != nil {
				return errMsg{err}
			}
			return statusMsg("field updated")
		},
		a.loadAll(),
	)
}

// updateTaskCmd rewrites the editable columns but keeps the task's progress;
// completing stays the job of the complete action.
func (a *App) updateTaskCmd(id string, f form) tea.Cmd {
	task, ok := a.parseTaskForm(f)
	if !ok {
		return nil
	}
	task.ID = id
	for _, existing := range a.tasks {
		if existing.ID == id {
			task.Status = existing.Status
			task.CompletedAt = existing.CompletedAt
			task.Description = existing.Description
		}
	}
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Tasks.Update(a.ctx, task); err != nil {
				return errMsg{err}
			}
			return statusMsg("task updated")
		},
		a.loadAll(),
	)
}

func (a *App) updateItemCmd(id string, f form) tea.Cmd {
	item, err := a.parseItemForm(f)
	if err != nil {
		a.status = "error: " + err.Error()
		return nil
	}
	item.ID = id
	for _, existing := range a.items {
		if existing.ID == id {
			item.LastRestockedAt = existing.LastRestockedAt
		}
	}
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Inventory.Update(a.ctx, item); err != nil {
				return errMsg{err}
			}
			return statusMsg("item updated")
		},
		a.loadAll(),
	)
}

func (a *App) updateEntryCmd(id string, f form) tea.Cmd {
	entry, ok := a.parseEntryForm(f)
	if !ok {
		return nil
	}
	entry.ID = id
	repo := a.repos.Expenses
	label := "expense updated"
	if a.financePane == paneIncome {
		repo = a.repos.Income
		label = "income updated"
	}
	for _, existing := range a.financeEntries() {
		if existing.ID == id {
			entry.Description = existing.Description
			entry.PaymentMethod = existing.PaymentMethod
		}
	}
	return tea.Batch(
		func() tea.Msg {
			if err := repo.Update(a.ctx, entry); err != nil {
				return errMsg{err}
			}
			return statusMsg(label)
		},
		a.loadAll(),
		a.loadMonthTotals(),
	)
}

func (a *App) harvestCropCmd(cropID, cropName string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.repos.Crops.UpdateStatus(a.ctx, cropID, "harvested"); err != nil {
				return errMsg{err}
			}
			return statusMsg(cropName + " harvested")
		},
		a.loadAll(),
	)
}

// deleteCurrentCmd removes the record behind the confirm modal; which repo
// it hits depends on the view the modal was opened from.
func (a *App) deleteCurrentCmd(id string) tea.Cmd {
	var del func() error
	switch a.state {
	case viewFields:
		del = func() error { return a.repos.Fields.Delete(a.ctx, id) }
	case viewTasks:
		del = func() error { return a.repos.Tasks.Delete(a.ctx, id) }
	case viewInventory:
		del = func() error { return a.repos.Inventory.Delete(a.ctx, id) }
	case viewFinance:
		repo := a.repos.Expenses
		if a.financePane == paneIncome {
			repo = a.repos.Income
		}
		del = func() error { return repo.Delete(a.ctx, id) }
	default:
		return nil
	}
	return tea.Batch(
		func() tea.Msg {
			if err := del(); err != nil {
				return errMsg{err}
			}
			return statusMsg("deleted")
		},
		a.loadAll(),
		a.loadMonthTotals(),
	)
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if a.services.Maintenance == nil {
				return errMsg{fmt.Errorf("maintenance not configured")}
			}
			if err := a.services.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			return resetDoneMsg{}
		},
		a.loadAll(),
		a.loadMonthTotals(),
	)
}

// settings

var settingNames = []string{
	"Date format",
	"Currency symbol",
	"Timezone",
	"Units",
	"Weather station",
	"Forecast days",
}

func (a *App) settingValue(i int) string {
	switch i {
	case 0:
		return a.cfg.UI.DateFormat
	case 1:
		return a.cfg.UI.CurrencySymbol
	case 2:
		return a.cfg.UI.Timezone
	case 3:
		return a.cfg.UI.Units
	case 4:
		return a.cfg.Weather.Station
	case 5:
		return strconv.Itoa(a.cfg.Weather.ForecastDays)
	}
	return ""
}

func (a *App) saveSettingCmd(i int, value string) tea.Cmd {
	switch i {
	case 0:
		a.cfg.UI.DateFormat = value
	case 1:
		a.cfg.UI.CurrencySymbol = value
	case 2:
		if _, err := time.LoadLocation(value); err != nil {
			a.status = "unknown timezone: " + value
			return nil
		}
		a.cfg.UI.Timezone = value
	case 3:
		if value != "metric" && value != "imperial" {
			a.status = "units must be metric or imperial"
			return nil
		}
		a.cfg.UI.Units = value
	case 4:
		a.cfg.Weather.Station = value
	case 5:
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 || days > 14 {
			a.status = "forecast days must be 1-14"
			return nil
		}
		a.cfg.Weather.ForecastDays = days
	}
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("settings saved (restart to apply everywhere)")
	}
}

// resetSettingsCmd restores built-in preferences but keeps the database path,
// so a preferences reset never detaches the app from its data.
func (a *App) resetSettingsCmd() tea.Cmd {
	def := config.Defaults()
	def.Database.Path = a.cfg.Database.Path
	a.cfg = def
	return func() tea.Msg {
		if err := config.Save(def); err != nil {
			return errMsg{err}
		}
		return statusMsg("settings restored to defaults")
	}
}

// fieldIDByName resolves a typed field name, case-insensitively. Empty or
// unknown names mean a farm-wide record.
func (a *App) fieldIDByName(name string) *string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	for _, f := range a.fields {
		if strings.ToLower(f.Name) == name {
			id := f.ID
			return &id
		}
	}
	return nil
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "high", "h":
		return "high"
	case "low", "l":
		return "low"
	default:
		return "medium"
	}
}
