package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/money"
	"github.com/farmkeep/farmkeep/internal/pipeline"
	"github.com/farmkeep/farmkeep/internal/service"
	"github.com/farmkeep/farmkeep/internal/weather"
)

// styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	lowStyle   = lipgloss.NewStyle().Bold(true)
)

const navHint = "[1] Dashboard  [2] Fields  [3] Tasks  [4] Inventory  [5] Finance  [6] Weather  [7] Reports  [8] Settings  [q] Quit"

func (a *App) View() string {
	var body string
	switch a.state {
	case viewFields:
		body = a.renderFields()
	case viewTasks:
		body = a.renderTasks()
	case viewInventory:
		body = a.renderInventory()
	case viewFinance:
		body = a.renderFinance()
	case viewWeather:
		body = a.renderWeather()
	case viewReports:
		body = a.renderReports()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) fmtMoney(cents int64) string {
	return money.Format(cents, a.cfg.UI.CurrencySymbol)
}

func (a *App) fmtDate(t time.Time) string {
	return t.In(a.tz).Format(a.cfg.UI.DateFormat)
}

func (a *App) fmtTemp(c float64) string {
	if a.cfg.UI.Units == "imperial" {
		return fmt.Sprintf("%.0f°F", c*9/5+32)
	}
	return fmt.Sprintf("%.0f°C", c)
}

func (a *App) searchLine() string {
	if a.searching {
		return fmt.Sprintf("search: %s_", a.search)
	}
	if a.search != "" {
		return fmt.Sprintf("search: %s  [esc] clear", a.search)
	}
	return ""
}

func (a *App) footer(hints string) string {
	out := "\n" + hints + "\n" + navHint
	if line := a.searchLine(); line != "" {
		out += "\n" + line
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderDashboard() string {
	now := a.now().In(a.tz)
	title := titleStyle.Render("FarmKeep - " + now.Format("Monday 2 January 2006"))

	overdue, dueSoon := 0, 0
	soon := now.AddDate(0, 0, 7)
	for _, t := range a.tasks {
		if service.TaskOverdue(t, now) {
			overdue++
		} else if t.Status != repository.TaskCompleted && t.DueDate != nil && t.DueDate.Before(soon) {
			dueSoon++
		}
	}
	low := 0
	for _, i := range a.items {
		if i.LowStock() {
			low++
		}
	}

	body := fmt.Sprintf("Fields: %d   Tasks: %d (%d overdue, %d due this week)   Inventory: %d items (%d low)",
		len(a.fields), len(a.tasks), overdue, dueSoon, len(a.items), low)
	body += fmt.Sprintf("\nThis month: spent %s, earned %s, net %s",
		a.fmtMoney(a.monthExpenseCents), a.fmtMoney(a.monthIncomeCents), a.fmtMoney(a.monthIncomeCents-a.monthExpenseCents))

	if a.weatherReady {
		body += fmt.Sprintf("\nWeather at %s: %s, %s, humidity %d%%",
			a.cfg.Weather.Station, a.fmtTemp(a.current.TempC), a.current.Condition, a.current.Humidity)
		for _, al := range a.alerts {
			body += "\n" + lowStyle.Render(fmt.Sprintf("! %s: %s", al.Severity, al.Title))
		}
	}

	next := pipeline.SortBy(a.tasks, pipeline.DateAsc(func(t repository.Task) (time.Time, bool) {
		if t.DueDate == nil {
			return time.Time{}, false
		}
		return *t.DueDate, true
	}))
	body += "\nUpcoming tasks:"
	shown := 0
	for _, t := range next {
		if t.Status == repository.TaskCompleted {
			continue
		}
		due := "no due date"
		if t.DueDate != nil {
			due = a.fmtDate(*t.DueDate)
		}
		body += fmt.Sprintf("\n- %-36s %s", t.Title, due)
		if shown++; shown == 5 {
			break
		}
	}
	if shown == 0 {
		body += "\n  (nothing pending)"
	}
	return title + "\n" + body + a.footer("")
}

func (a *App) renderFields() string {
	title := titleStyle.Render("Fields")
	rows := a.visibleFields()
	out := title + "\n"
	if len(rows) == 0 {
		out += "(no fields)\n"
	}
	for i, f := range rows {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		crop := "fallow"
		if f.CropName != "" {
			crop = f.CropName
			if f.CropVariety != "" {
				crop += " (" + f.CropVariety + ")"
			}
		}
		out += fmt.Sprintf("%s %-24s %7.1f ac  %-12s %-12s %s\n",
			marker, f.Name, f.AreaAcres, f.SoilType, f.Irrigation, crop)
	}
	if a.fieldTasksName != "" {
		out += "\n" + titleStyle.Render("Tasks on "+a.fieldTasksName) + "\n"
		if len(a.fieldTaskList) == 0 {
			out += "(none scheduled)\n"
		}
		for _, t := range a.fieldTaskList {
			due := "no due date"
			if t.DueDate != nil {
				due = a.fmtDate(*t.DueDate)
			}
			out += fmt.Sprintf("  %-32s %-12s %s\n", t.Title, t.Status, due)
		}
	}
	return out + a.footer("[n] New field  [e] Edit  [enter] Tasks  [h] Harvest  [x] Delete  [/] Search")
}

func (a *App) renderTasks() string {
	title := titleStyle.Render("Tasks")
	rows := a.visibleTasks()
	dir := "due soonest first"
	if !a.taskSortAsc {
		dir = "due latest first"
	}
	now := a.now()
	pending, inProgress, completed, overdue := 0, 0, 0, 0
	for _, t := range a.tasks {
		switch t.Status {
		case repository.TaskCompleted:
			completed++
		case repository.TaskInProgress:
			inProgress++
		default:
			pending++
		}
		if service.TaskOverdue(t, now) {
			overdue++
		}
	}
	out := title + "\n"
	out += fmt.Sprintf("%d pending, %d in progress, %d completed, %d overdue\n",
		pending, inProgress, completed, overdue)
	out += fmt.Sprintf("status: %s  priority: %s  category: %s  (%s)\n",
		a.taskStatus, a.taskPriority, a.taskCategory, dir)
	if len(rows) == 0 {
		out += "(no tasks match)\n"
	}
	for i, t := range rows {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		due := "          "
		if t.DueDate != nil {
			due = a.fmtDate(*t.DueDate)
		}
		status := t.Status
		if service.TaskOverdue(t.Task, now) {
			status = lowStyle.Render("OVERDUE")
		}
		field := t.FieldName
		if field == "" {
			field = "farm-wide"
		}
		out += fmt.Sprintf("%s %-36s %-10s %-8s %-16s %s\n", marker, t.Title, due, t.Priority, field, status)
	}
	return out + a.footer("[n] New  [e] Edit  [c] Complete  [s] Status  [p] Priority  [f] Category  [o] Sort  [x] Delete  [/] Search")
}

func (a *App) renderInventory() string {
	title := titleStyle.Render("Inventory")
	rows := a.visibleItems()
	var totalValueCents int64
	low := 0
	for _, it := range a.items {
		totalValueCents += int64(math.Round(it.Quantity * float64(it.CostPerUnitCents)))
		if it.LowStock() {
			low++
		}
	}
	out := title + "\n"
	if low > 0 {
		out += lowStyle.Render(fmt.Sprintf("%d item(s) at or below reorder level", low)) + "\n"
	}
	out += fmt.Sprintf("%d items worth %s\n", len(a.items), a.fmtMoney(totalValueCents))
	out += fmt.Sprintf("category: %s  stock: %s\n", a.itemCategory, a.itemStock)
	if len(rows) == 0 {
		out += "(no items match)\n"
	}
	for i, it := range rows {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		qty := fmt.Sprintf("%g %s", it.Quantity, it.Unit)
		note := ""
		if it.LowStock() {
			note = lowStyle.Render("LOW")
		}
		out += fmt.Sprintf("%s %-28s %-14s %-12s reorder at %g  %s %s\n",
			marker, it.Name, it.Category, qty, it.ReorderLevel, a.fmtMoney(it.CostPerUnitCents), note)
	}
	return out + a.footer("[n] New  [e] Edit  [r] Restock  [s] Stock filter  [f] Category  [x] Delete  [/] Search")
}

func (a *App) renderFinance() string {
	pane := "Expenses"
	if a.financePane == paneIncome {
		pane = "Income"
	}
	title := titleStyle.Render("Finance - " + pane)
	rows := a.visibleEntries()
	out := title + "\n"
	out += fmt.Sprintf("category: %s  period: %s\n", a.entryCategory, bucketLabel(a.entryBucket))
	if len(rows) == 0 {
		out += "(no entries match)\n"
	}
	for i, e := range rows {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		field := e.FieldName
		if field == "" {
			field = "-"
		}
		out += fmt.Sprintf("%s %s  %-32s %-14s %-16s %10s\n",
			marker, a.fmtDate(e.EntryDate), e.Title, e.Category, field, a.fmtMoney(e.AmountCents))
	}

	summary := a.entrySummary(rows)
	if len(summary.Buckets) > 0 {
		out += fmt.Sprintf("\nTotal: %s\n", a.fmtMoney(summary.GrandTotal))
		for _, b := range summary.Buckets {
			out += fmt.Sprintf("- %-20s %10s  %3d%%\n",
				b.Label, a.fmtMoney(b.Total), pipeline.Share(b.Total, summary.GrandTotal))
		}
	}
	return out + a.footer("[tab] Expenses/Income  [n] New  [e] Edit  [f] Category  [b] Period  [x] Delete  [/] Search")
}

func (a *App) renderWeather() string {
	title := titleStyle.Render("Weather - " + a.cfg.Weather.Station)
	if !a.weatherReady {
		return title + "\nloading..." + a.footer("[r] Refresh")
	}
	out := title + "\n"
	out += fmt.Sprintf("Now: %s  %s  humidity %d%%  wind %.0f km/h  precip %.1f mm\n",
		a.fmtTemp(a.current.TempC), a.current.Condition, a.current.Humidity, a.current.WindKPH, a.current.Precipitation)
	for _, al := range a.alerts {
		out += lowStyle.Render(fmt.Sprintf("! %s (%s): %s", al.Title, al.Severity, al.Message)) + "\n"
	}
	out += "\nForecast:\n"
	for _, d := range a.forecast {
		out += a.weatherDayLine(d)
	}
	if len(a.history) > 0 {
		out += "\nLast week:\n"
		for _, d := range a.history {
			out += a.weatherDayLine(d)
		}
	}
	return out + a.footer("[r] Refresh")
}

func (a *App) weatherDayLine(d weather.Day) string {
	return fmt.Sprintf("  %s  %6s / %-6s  %-12s %.1f mm\n",
		d.Date.In(a.tz).Format("Mon 02 Jan"), a.fmtTemp(d.LowC), a.fmtTemp(d.HighC), d.Condition, d.Precipitation)
}

func (a *App) renderReports() string {
	title := titleStyle.Render("Reports - " + bucketLabel(a.reportBucket))
	if a.report == nil {
		return title + "\nbuilding report..." + a.footer("[b] Period")
	}
	r := a.report
	out := title + "\n"
	out += fmt.Sprintf("Farm: %d fields, %.1f acres\n", r.FieldCount, r.TotalAcres)
	out += fmt.Sprintf("Tasks: %d total, %d completed (%d%%), %d pending, %d in progress, %d overdue\n",
		r.Tasks.Total, r.Tasks.Completed, r.Tasks.CompletionPct(), r.Tasks.Pending, r.Tasks.InProgress, r.Tasks.Overdue)
	out += fmt.Sprintf("Money: spent %s, earned %s, net %s (avg expense %s)\n",
		a.fmtMoney(r.Expenses.TotalCents), a.fmtMoney(r.Income.TotalCents), a.fmtMoney(r.NetCents()), a.fmtMoney(r.Expenses.AverageCents()))

	out += "\nExpenses by category:\n"
	if len(r.Expenses.ByCategory.Buckets) == 0 {
		out += "  (none)\n"
	}
	for _, b := range r.Expenses.ByCategory.Buckets {
		out += fmt.Sprintf("  %-20s %10s  %3d%%\n",
			b.Label, a.fmtMoney(b.Total), pipeline.Share(b.Total, r.Expenses.ByCategory.GrandTotal))
	}

	out += fmt.Sprintf("\nInventory: %d items worth %s\n", r.Inventory.Items, a.fmtMoney(r.Inventory.TotalValueCents))
	if len(r.Inventory.LowStock) > 0 {
		out += lowStyle.Render("Low stock:") + "\n"
		for _, it := range r.Inventory.LowStock {
			out += fmt.Sprintf("  %-28s %g %s (reorder at %g)\n", it.Name, it.Quantity, it.Unit, it.ReorderLevel)
		}
	}
	return out + a.footer("[b] Period")
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	for i, name := range settingNames {
		marker := " "
		if i == a.settingsCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-18s %s\n", marker, name, a.settingValue(i))
	}
	out += "\n[d] Restore default settings  [x] Reset all farm data\n"
	return out + a.footer("[enter] Edit")
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmDelete:
		return titleStyle.Render("Delete this record?") + "\n[y] Yes  [n] No"
	case modalConfirmReset:
		return titleStyle.Render("Reset all farm data?") + "\nFields, crops, tasks, inventory and finances will be deleted.\n[y] Yes  [n] No"
	case modalDuplicateItem:
		s := a.suggestedItem
		out := titleStyle.Render("Similar item exists") + "\n"
		if s != nil {
			out += fmt.Sprintf("%q looks like %q (%g %s on hand)\n", a.pendingItem.Name, s.Name, s.Quantity, s.Unit)
		}
		return out + "[r] Restock existing  [c] Create anyway  [esc] Cancel"
	case modalEditSetting:
		return titleStyle.Render("Edit "+settingNames[a.settingsCursor]) +
			fmt.Sprintf("\n%s_\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalNewField, modalNewTask, modalNewItem, modalNewEntry,
		modalEditField, modalEditTask, modalEditItem, modalEditEntry, modalRestock:
		return a.renderForm()
	}
	return ""
}

var formTitles = map[modalState]string{
	modalNewField:  "New field",
	modalNewTask:   "New task",
	modalNewItem:   "New inventory item",
	modalNewEntry:  "New entry",
	modalEditField: "Edit field",
	modalEditTask:  "Edit task",
	modalEditItem:  "Edit inventory item",
	modalEditEntry: "Edit entry",
	modalRestock:   "Restock",
}

func (a *App) renderForm() string {
	out := titleStyle.Render(formTitles[a.modal]) + "\n"
	for i, label := range a.form.labels {
		marker := " "
		cursor := ""
		if i == a.form.idx {
			marker = "▶"
			cursor = "_"
		}
		out += fmt.Sprintf("%s %-28s %s%s\n", marker, label+":", a.form.values[i], cursor)
	}
	return out + "[enter] Next/Save  [esc] Cancel"
}

func bucketLabel(b pipeline.DateBucket) string {
	switch b {
	case pipeline.BucketCurrentMonth:
		return "this month"
	case pipeline.BucketPreviousMonth:
		return "last month"
	default:
		return "all time"
	}
}
