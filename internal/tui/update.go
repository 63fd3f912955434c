package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/pipeline"
	"github.com/farmkeep/farmkeep/internal/service"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleViewKey(m)
	case collectionsMsg:
		a.fields = m.fields
		a.crops = m.crops
		a.tasks = m.tasks
		a.items = m.items
		a.expenses = m.expenses
		a.income = m.income
		a.clampCursor()
	case weatherMsg:
		a.current = m.current
		a.forecast = m.forecast
		a.alerts = m.alerts
		a.history = m.history
		a.weatherReady = true
	case monthTotalsMsg:
		a.monthExpenseCents = m.expenses
		a.monthIncomeCents = m.income
	case reportMsg:
		rep := service.Report(m)
		a.report = &rep
	case fieldTasksMsg:
		a.fieldTasksName = m.name
		a.fieldTaskList = m.tasks
	case resetDoneMsg:
		a.cursor, a.settingsCursor = 0, 0
		a.report = nil
		a.status = "all farm data cleared"
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleViewKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1":
		a.switchView(viewDashboard)
	case "2":
		a.switchView(viewFields)
	case "3":
		a.switchView(viewTasks)
	case "4":
		a.switchView(viewInventory)
	case "5":
		a.switchView(viewFinance)
	case "6":
		a.switchView(viewWeather)
	case "7":
		a.switchView(viewReports)
		return a, a.loadReport()
	case "8":
		a.switchView(viewSettings)
	case "/":
		if a.state != viewDashboard && a.state != viewWeather && a.state != viewReports && a.state != viewSettings {
			a.searching = true
		}
	case "esc":
		if a.search != "" {
			a.search = ""
			a.cursor = 0
		}
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		if a.state == viewSettings && a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case "down", "j":
		if a.cursor < a.visibleLen()-1 {
			a.cursor++
		}
		if a.state == viewSettings && a.settingsCursor < len(settingNames)-1 {
			a.settingsCursor++
		}
	default:
		return a.handleViewSpecificKey(m)
	}
	return a, nil
}

func (a *App) handleViewSpecificKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case viewTasks:
		switch m.String() {
		case "n":
			a.openForm(modalNewTask, newTaskForm())
		case "enter", "c":
			rows := a.visibleTasks()
			if a.cursor < len(rows) {
				t := rows[a.cursor]
				if t.Status != repository.TaskCompleted {
					return a, a.completeTaskCmd(t.ID)
				}
				a.status = "already completed"
			}
		case "s":
			a.taskStatus = cycleFacet(a.taskStatus, taskStatusOptions())
			a.cursor = 0
		case "p":
			a.taskPriority = cycleFacet(a.taskPriority, taskPriorityOptions())
			a.cursor = 0
		case "f":
			a.taskCategory = cycleFacet(a.taskCategory, categoriesOf(taskRows(a.tasks, a.fields),
				func(t taskRow) string { return t.Category }))
			a.cursor = 0
		case "o":
			a.taskSortAsc = !a.taskSortAsc
		case "e":
			rows := a.visibleTasks()
			if a.cursor < len(rows) {
				a.editingID = rows[a.cursor].ID
				a.openForm(modalEditTask, a.editTaskForm(rows[a.cursor]))
			}
		case "backspace", "delete", "x":
			rows := a.visibleTasks()
			if a.cursor < len(rows) {
				a.pendingDeleteID = rows[a.cursor].ID
				a.modal = modalConfirmDelete
			}
		}
	case viewFields:
		switch m.String() {
		case "n":
			a.openForm(modalNewField, newFieldForm())
		case "e":
			rows := a.visibleFields()
			if a.cursor < len(rows) {
				a.editingID = rows[a.cursor].ID
				a.openForm(modalEditField, a.editFieldForm(rows[a.cursor]))
			}
		case "enter":
			rows := a.visibleFields()
			if a.cursor < len(rows) {
				return a, a.fieldTasksCmd(rows[a.cursor].ID, rows[a.cursor].Name)
			}
		case "h":
			rows := a.visibleFields()
			if a.cursor < len(rows) {
				row := rows[a.cursor]
				if row.CropID == "" {
					a.status = "no crop on this field"
				} else if row.CropStatus == "harvested" {
					a.status = "already harvested"
				} else {
					return a, a.harvestCropCmd(row.CropID, row.CropName)
				}
			}
		case "backspace", "delete", "x":
			rows := a.visibleFields()
			if a.cursor < len(rows) {
				a.pendingDeleteID = rows[a.cursor].ID
				a.modal = modalConfirmDelete
			}
		}
	case viewInventory:
		switch m.String() {
		case "n":
			a.openForm(modalNewItem, newItemForm())
		case "r", "enter":
			rows := a.visibleItems()
			if a.cursor < len(rows) {
				a.restockID = rows[a.cursor].ID
				a.openForm(modalRestock, restockForm(rows[a.cursor].Name))
			}
		case "e":
			rows := a.visibleItems()
			if a.cursor < len(rows) {
				a.editingID = rows[a.cursor].ID
				a.openForm(modalEditItem, a.editItemForm(rows[a.cursor]))
			}
		case "s":
			a.itemStock = cycleFacet(a.itemStock, []string{pipeline.FacetAll, stockLow, stockAdequate})
			a.cursor = 0
		case "f":
			a.itemCategory = cycleFacet(a.itemCategory, categoriesOf(itemRows(a.items),
				func(i itemRow) string { return i.Category }))
			a.cursor = 0
		case "backspace", "delete", "x":
			rows := a.visibleItems()
			if a.cursor < len(rows) {
				a.pendingDeleteID = rows[a.cursor].ID
				a.modal = modalConfirmDelete
			}
		}
	case viewFinance:
		switch m.String() {
		case "tab":
			if a.financePane == paneExpenses {
				a.financePane = paneIncome
			} else {
				a.financePane = paneExpenses
			}
			a.entryCategory = pipeline.FacetAll
			a.cursor = 0
		case "n":
			a.openForm(modalNewEntry, newEntryForm())
		case "e":
			rows := a.visibleEntries()
			if a.cursor < len(rows) {
				a.editingID = rows[a.cursor].ID
				a.openForm(modalEditEntry, a.editEntryForm(rows[a.cursor]))
			}
		case "f":
			a.entryCategory = cycleFacet(a.entryCategory, categoriesOf(entryRows(a.financeEntries(), a.fields),
				func(e entryRow) string { return e.Category }))
			a.cursor = 0
		case "b":
			a.entryBucket = cycleBucket(a.entryBucket)
			a.cursor = 0
		case "backspace", "delete", "x":
			rows := a.visibleEntries()
			if a.cursor < len(rows) {
				a.pendingDeleteID = rows[a.cursor].ID
				a.modal = modalConfirmDelete
			}
		}
	case viewReports:
		switch m.String() {
		case "b":
			a.reportBucket = cycleBucket(a.reportBucket)
			return a, a.loadReport()
		}
	case viewWeather:
		switch m.String() {
		case "r":
			a.status = "refreshing weather..."
			return a, a.loadWeather()
		}
	case viewSettings:
		switch m.String() {
		case "enter":
			a.modal = modalEditSetting
			a.inputBuffer = a.settingValue(a.settingsCursor)
		case "d":
			return a, a.resetSettingsCmd()
		case "x":
			a.modal = modalConfirmReset
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.searching = false
		a.search = ""
		a.cursor = 0
	case tea.KeyEnter:
		a.searching = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.search) > 0 {
			a.search = a.search[:len(a.search)-1]
		}
	case tea.KeySpace:
		a.search += " "
	case tea.KeyRunes:
		a.search += string(m.Runes)
	}
	a.clampCursor()
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			id := a.pendingDeleteID
			a.pendingDeleteID = ""
			return a, a.deleteCurrentCmd(id)
		case "n", "N", "esc":
			a.modal = modalNone
			a.pendingDeleteID = ""
		}
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalDuplicateItem:
		switch m.String() {
		case "r":
			a.modal = modalNone
			if a.suggestedItem != nil {
				id := a.suggestedItem.ID
				qty := a.pendingItem.Quantity
				a.suggestedItem = nil
				return a, a.restockCmd(id, qty)
			}
		case "c":
			a.modal = modalNone
			a.suggestedItem = nil
			return a, a.createItemCmd(a.pendingItem)
		case "esc", "n":
			a.modal = modalNone
			a.suggestedItem = nil
			a.status = "cancelled"
		}
	case modalEditSetting:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.inputBuffer = ""
		case tea.KeyEnter:
			value := strings.TrimSpace(a.inputBuffer)
			a.modal = modalNone
			a.inputBuffer = ""
			return a, a.saveSettingCmd(a.settingsCursor, value)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.inputBuffer) > 0 {
				a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
			}
		case tea.KeySpace:
			a.inputBuffer += " "
		case tea.KeyRunes:
			a.inputBuffer += string(m.Runes)
		}
	case modalNewField, modalNewTask, modalNewItem, modalNewEntry,
		modalEditField, modalEditTask, modalEditItem, modalEditEntry, modalRestock:
		return a.handleFormKey(m)
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		a.form = form{}
		a.editingID = ""
	case tea.KeyEnter:
		if a.form.idx < len(a.form.labels)-1 {
			a.form.idx++
			return a, nil
		}
		kind := a.modal
		f := a.form
		a.modal = modalNone
		a.form = form{}
		return a, a.submitForm(kind, f)
	case tea.KeyUp:
		if a.form.idx > 0 {
			a.form.idx--
		}
	case tea.KeyDown:
		if a.form.idx < len(a.form.labels)-1 {
			a.form.idx++
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		v := a.form.values[a.form.idx]
		if len(v) > 0 {
			a.form.values[a.form.idx] = v[:len(v)-1]
		}
	case tea.KeySpace:
		a.form.values[a.form.idx] += " "
	case tea.KeyRunes:
		a.form.values[a.form.idx] += string(m.Runes)
	}
	return a, nil
}

func (a *App) switchView(v appState) {
	a.state = v
	a.status = ""
	a.search = ""
	a.searching = false
	a.cursor = 0
	a.fieldTasksName = ""
	a.fieldTaskList = nil
}

func (a *App) openForm(kind modalState, f form) {
	a.modal = kind
	a.form = f
}

func (a *App) financeEntries() []repository.Entry {
	if a.financePane == paneIncome {
		return a.income
	}
	return a.expenses
}

func (a *App) visibleLen() int {
	switch a.state {
	case viewFields:
		return len(a.visibleFields())
	case viewTasks:
		return len(a.visibleTasks())
	case viewInventory:
		return len(a.visibleItems())
	case viewFinance:
		return len(a.visibleEntries())
	}
	return 0
}

func (a *App) clampCursor() {
	if n := a.visibleLen(); a.cursor >= n {
		a.cursor = 0
	}
}

func taskStatusOptions() []string {
	return []string{pipeline.FacetAll, repository.TaskPending, repository.TaskInProgress, repository.TaskCompleted, statusOverdue}
}

func taskPriorityOptions() []string {
	return []string{pipeline.FacetAll, "low", "medium", "high"}
}

func cycleBucket(b pipeline.DateBucket) pipeline.DateBucket {
	switch b {
	case pipeline.BucketAll:
		return pipeline.BucketCurrentMonth
	case pipeline.BucketCurrentMonth:
		return pipeline.BucketPreviousMonth
	default:
		return pipeline.BucketAll
	}
}
