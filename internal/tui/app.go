package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farmkeep/farmkeep/internal/config"
	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/pipeline"
	"github.com/farmkeep/farmkeep/internal/service"
	"github.com/farmkeep/farmkeep/internal/weather"
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	weather  weather.Provider
	tz       *time.Location
	now      func() time.Time

	state  appState
	status string
	modal  modalState
	form   form

	// raw collections, replaced wholesale on every load
	fields   []repository.Field
	crops    []repository.Crop
	tasks    []repository.Task
	items    []repository.InventoryItem
	expenses []repository.Entry
	income   []repository.Entry

	current      weather.Current
	forecast     []weather.Day
	alerts       []weather.Alert
	history      []weather.Day
	weatherReady bool

	report       *service.Report
	reportBucket pipeline.DateBucket

	monthExpenseCents int64
	monthIncomeCents  int64

	// shared list state; reset when the view changes
	search    string
	searching bool
	cursor    int

	// task filters
	taskStatus   string
	taskPriority string
	taskCategory string
	taskSortAsc  bool

	// inventory filters
	itemCategory string
	itemStock    string

	// finance filters
	financePane   financePane
	entryCategory string
	entryBucket   pipeline.DateBucket

	// settings editing
	settingsCursor int
	inputBuffer    string

	// pending ids for confirm and edit modals
	pendingDeleteID string
	restockID       string
	editingID       string
	suggestedItem   *repository.InventoryItem
	pendingItem     repository.InventoryItem

	// per-field task drill-down on the fields view
	fieldTasksName string
	fieldTaskList  []repository.Task
}

type Repos struct {
	Fields    *repository.FieldRepo
	Crops     *repository.CropRepo
	Tasks     *repository.TaskRepo
	Inventory *repository.InventoryRepo
	Expenses  *repository.EntryRepo
	Income    *repository.EntryRepo
}

type Services struct {
	Reporter    *service.Reporter
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewDashboard appState = "dashboard"
	viewFields    appState = "fields"
	viewTasks     appState = "tasks"
	viewInventory appState = "inventory"
	viewFinance   appState = "finance"
	viewWeather   appState = "weather"
	viewReports   appState = "reports"
	viewSettings  appState = "settings"
)

type modalState string

const (
	modalNone          modalState = ""
	modalNewField      modalState = "newField"
	modalNewTask       modalState = "newTask"
	modalNewItem       modalState = "newItem"
	modalNewEntry      modalState = "newEntry"
	modalEditField     modalState = "editField"
	modalEditTask      modalState = "editTask"
	modalEditItem      modalState = "editItem"
	modalEditEntry     modalState = "editEntry"
	modalRestock       modalState = "restock"
	modalConfirmDelete modalState = "confirmDelete"
	modalConfirmReset  modalState = "confirmReset"
	modalDuplicateItem modalState = "duplicateItem"
	modalEditSetting   modalState = "editSetting"
)

type financePane string

const (
	paneExpenses financePane = "expenses"
	paneIncome   financePane = "income"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, provider weather.Provider, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	return &App{
		ctx:           ctx,
		cfg:           cfg,
		repos:         repos,
		services:      services,
		weather:       provider,
		tz:            tz,
		now:           time.Now,
		state:         viewDashboard,
		taskStatus:    pipeline.FacetAll,
		taskPriority:  pipeline.FacetAll,
		taskCategory:  pipeline.FacetAll,
		taskSortAsc:   true,
		itemCategory:  pipeline.FacetAll,
		itemStock:     pipeline.FacetAll,
		financePane:   paneExpenses,
		entryCategory: pipeline.FacetAll,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadAll(), a.loadWeather(), a.loadMonthTotals())
}

// loadAll refreshes every collection in one command so a reload is one
// atomic snapshot swap.
func (a *App) loadAll() tea.Cmd {
	return func() tea.Msg {
		var m collectionsMsg
		var err error
		if m.fields, err = a.repos.Fields.List(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.crops, err = a.repos.Crops.List(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.tasks, err = a.repos.Tasks.List(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.items, err = a.repos.Inventory.List(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.expenses, err = a.repos.Expenses.List(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.income, err = a.repos.Income.List(a.ctx); err != nil {
			return errMsg{err}
		}
		return m
	}
}

func (a *App) loadWeather() tea.Cmd {
	days := a.cfg.Weather.ForecastDays
	if days <= 0 {
		days = 7
	}
	end := a.now().AddDate(0, 0, -1)
	return func() tea.Msg {
		var m weatherMsg
		var err error
		if m.current, err = a.weather.Current(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.forecast, err = a.weather.Forecast(a.ctx, days); err != nil {
			return errMsg{err}
		}
		if m.alerts, err = a.weather.Alerts(a.ctx); err != nil {
			return errMsg{err}
		}
		if m.history, err = a.weather.History(a.ctx, end.AddDate(0, 0, -6), end); err != nil {
			return errMsg{err}
		}
		return m
	}
}

func (a *App) loadMonthTotals() tea.Cmd {
	// The dashboard month lives in the configured timezone, matching the
	// finance view's bucket windows and form date parsing.
	month := a.now().In(a.tz)
	return func() tea.Msg {
		spend, err := a.repos.Expenses.SumForMonth(a.ctx, month)
		if err != nil {
			return errMsg{err}
		}
		earned, err := a.repos.Income.SumForMonth(a.ctx, month)
		if err != nil {
			return errMsg{err}
		}
		return monthTotalsMsg{expenses: spend, income: earned}
	}
}

func (a *App) fieldTasksCmd(fieldID, name string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := a.repos.Tasks.ListByField(a.ctx, fieldID)
		if err != nil {
			return errMsg{err}
		}
		return fieldTasksMsg{name: name, tasks: tasks}
	}
}

func (a *App) loadReport() tea.Cmd {
	now, bucket := a.now(), a.reportBucket
	return func() tea.Msg {
		rep, err := a.services.Reporter.Build(a.ctx, now, bucket)
		if err != nil {
			return errMsg{err}
		}
		return reportMsg(rep)
	}
}

// messages

type collectionsMsg struct {
	fields   []repository.Field
	crops    []repository.Crop
	tasks    []repository.Task
	items    []repository.InventoryItem
	expenses []repository.Entry
	income   []repository.Entry
}

type weatherMsg struct {
	current  weather.Current
	forecast []weather.Day
	alerts   []weather.Alert
	history  []weather.Day
}

type monthTotalsMsg struct {
	expenses int64
	income   int64
}

type reportMsg service.Report

// resetDoneMsg reports a completed data wipe; the model resets its own
// cursors and cached report when it arrives.
type resetDoneMsg struct{}

// fieldTasksMsg carries the tasks scheduled on one field, for the
// drill-down panel on the fields view.
type fieldTasksMsg struct {
	name  string
	tasks []repository.Task
}

type statusMsg string

type errMsg struct{ error }
