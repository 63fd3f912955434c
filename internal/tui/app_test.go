package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farmkeep/farmkeep/internal/config"
	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/pipeline"
	"github.com/farmkeep/farmkeep/internal/service"
)

func fixedNow() time.Time {
	return time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
}

func strp(s string) *string { return &s }

func datep(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testApp() *App {
	cfg := config.Config{}
	cfg.UI.DateFormat = "02/01/2006"
	cfg.UI.CurrencySymbol = "$"
	a := New(nil, cfg, Repos{}, Services{}, nil, time.UTC)
	a.now = fixedNow

	a.fields = []repository.Field{
		{ID: "f1", Name: "North Paddock", AreaAcres: 12, SoilType: "clay"},
		{ID: "f2", Name: "River Flat", AreaAcres: 8, SoilType: "loam"},
	}
	a.crops = []repository.Crop{
		{ID: "c1", FieldID: "f1", Name: "Wheat", Variety: "Scepter"},
	}
	a.tasks = []repository.Task{
		{ID: "t1", Title: "Spray wheat rust", FieldID: strp("f1"), Status: repository.TaskPending, Priority: "high", Category: "spraying", DueDate: datep(2026, 6, 1)},
		{ID: "t2", Title: "Service tractor", Status: repository.TaskPending, Priority: "medium", Category: "maintenance", DueDate: datep(2026, 6, 20)},
		{ID: "t3", Title: "Order seed", Status: repository.TaskCompleted, Priority: "low", Category: "planning", DueDate: datep(2026, 5, 1)},
		{ID: "t4", Title: "Walk fences", Status: repository.TaskPending, Priority: "low", Category: "maintenance"},
	}
	a.items = []repository.InventoryItem{
		{ID: "i1", Name: "Urea 46%", Category: "fertilizer", Quantity: 4, Unit: "bags", ReorderLevel: 6},
		{ID: "i2", Name: "Diesel", Category: "fuel", Quantity: 400, Unit: "L", ReorderLevel: 100},
	}
	a.expenses = []repository.Entry{
		{ID: "e1", Title: "Diesel top-up", Category: "fuel", AmountCents: 15000, EntryDate: time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC), FieldID: strp("f1")},
		{ID: "e2", Title: "Casual labor", Category: "labor", AmountCents: 20000, EntryDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)},
	}
	a.income = []repository.Entry{
		{ID: "e3", Title: "Hay sale", Category: "sales", AmountCents: 50000, EntryDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	return a
}

func TestVisibleTasksJoinsFieldNames(t *testing.T) {
	a := testApp()
	rows := a.visibleTasks()
	if len(rows) != 4 {
		t.Fatalf("len = %d, want 4", len(rows))
	}
	byID := map[string]taskRow{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	if byID["t1"].FieldName != "North Paddock" {
		t.Errorf("t1 field = %q, want North Paddock", byID["t1"].FieldName)
	}
	if byID["t2"].FieldName != "" {
		t.Errorf("t2 field = %q, want empty", byID["t2"].FieldName)
	}
}

func TestVisibleTasksSortsDueFirstUndatedLast(t *testing.T) {
	a := testApp()
	rows := a.visibleTasks()
	if rows[0].ID != "t3" || rows[len(rows)-1].ID != "t4" {
		ids := make([]string, len(rows))
		for i, r := range rows {
			ids[i] = r.ID
		}
		t.Fatalf("order = %v, want earliest due first, undated last", ids)
	}
	a.taskSortAsc = false
	rows = a.visibleTasks()
	if rows[0].ID != "t2" {
		t.Fatalf("desc first = %s, want t2", rows[0].ID)
	}
}

func TestVisibleTasksOverdueFacet(t *testing.T) {
	a := testApp()
	a.taskStatus = statusOverdue
	rows := a.visibleTasks()
	if len(rows) != 1 || rows[0].ID != "t1" {
		t.Fatalf("overdue rows = %v, want just t1", rows)
	}
}

func TestVisibleTasksSearchMatchesFieldName(t *testing.T) {
	a := testApp()
	a.search = "paddock"
	rows := a.visibleTasks()
	if len(rows) != 1 || rows[0].ID != "t1" {
		t.Fatalf("search rows = %d, want 1 (t1)", len(rows))
	}
}

func TestVisibleItemsLowStockFirst(t *testing.T) {
	a := testApp()
	rows := a.visibleItems()
	if rows[0].ID != "i1" {
		t.Fatalf("first item = %s, want i1 (lowest stock ratio)", rows[0].ID)
	}
	a.itemStock = stockLow
	rows = a.visibleItems()
	if len(rows) != 1 || rows[0].ID != "i1" {
		t.Fatalf("low-stock rows = %d, want 1", len(rows))
	}
}

func TestVisibleEntriesFollowsPaneAndBucket(t *testing.T) {
	a := testApp()
	if got := len(a.visibleEntries()); got != 2 {
		t.Fatalf("expense rows = %d, want 2", got)
	}
	a.entryBucket = pipeline.BucketCurrentMonth
	rows := a.visibleEntries()
	if len(rows) != 1 || rows[0].ID != "e1" {
		t.Fatalf("current-month rows = %v, want just e1", rows)
	}
	a.financePane = paneIncome
	a.entryBucket = pipeline.BucketAll
	rows = a.visibleEntries()
	if len(rows) != 1 || rows[0].ID != "e3" {
		t.Fatalf("income rows = %v, want just e3", rows)
	}
}

func TestEntrySummaryShares(t *testing.T) {
	a := testApp()
	agg := a.entrySummary(a.visibleEntries())
	if agg.GrandTotal != 35000 {
		t.Fatalf("grand total = %d, want 35000", agg.GrandTotal)
	}
	if len(agg.Buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(agg.Buckets))
	}
}

func TestCycleFacetWraps(t *testing.T) {
	opts := []string{pipeline.FacetAll, "a", "b"}
	got := cycleFacet("b", opts)
	if got != pipeline.FacetAll {
		t.Fatalf("cycle = %q, want %q", got, pipeline.FacetAll)
	}
	if got := cycleFacet("missing", opts); got != pipeline.FacetAll {
		t.Fatalf("cycle from unknown = %q, want %q", got, pipeline.FacetAll)
	}
}

func TestCategoriesOfSentinelFirst(t *testing.T) {
	a := testApp()
	cats := categoriesOf(itemRows(a.items), func(i itemRow) string { return i.Category })
	if cats[0] != pipeline.FacetAll {
		t.Fatalf("first option = %q, want sentinel", cats[0])
	}
	if len(cats) != 3 {
		t.Fatalf("options = %v, want sentinel + 2 categories", cats)
	}
}

func TestUpdateSwitchesViews(t *testing.T) {
	a := testApp()
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	a = model.(*App)
	if a.state != viewTasks {
		t.Fatalf("state = %s, want %s", a.state, viewTasks)
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")})
	a = model.(*App)
	if a.state != viewFinance {
		t.Fatalf("state = %s, want %s", a.state, viewFinance)
	}
}

func TestUpdateResetDoneClearsModelState(t *testing.T) {
	a := testApp()
	a.cursor = 3
	a.settingsCursor = 2
	a.report = &service.Report{}

	model, _ := a.Update(resetDoneMsg{})
	a = model.(*App)
	if a.cursor != 0 || a.settingsCursor != 0 {
		t.Fatalf("cursors = %d, %d, want 0, 0", a.cursor, a.settingsCursor)
	}
	if a.report != nil {
		t.Fatalf("report = %v, want nil", a.report)
	}
	if a.status != "all farm data cleared" {
		t.Fatalf("status = %q", a.status)
	}
}

func TestEditKeyPrefillsTaskForm(t *testing.T) {
	a := testApp()
	a.state = viewTasks
	a.cursor = 1 // due-ascending order puts t1 second, after completed t3

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	a = model.(*App)
	if a.modal != modalEditTask {
		t.Fatalf("modal = %q, want %q", a.modal, modalEditTask)
	}
	if a.editingID != "t1" {
		t.Fatalf("editingID = %q, want t1", a.editingID)
	}
	want := map[string]string{
		"Title":                 "Spray wheat rust",
		"Field":                 "North Paddock",
		"Category":              "spraying",
		"Priority":              "high",
		"Due date (YYYY-MM-DD)": "2026-06-01",
	}
	for label, w := range want {
		if got := a.form.value(label); got != w {
			t.Fatalf("form %q = %q, want %q", label, got, w)
		}
	}
}

func TestEditKeyPrefillsEntryForm(t *testing.T) {
	a := testApp()
	a.state = viewFinance

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	a = model.(*App)
	if a.modal != modalEditEntry {
		t.Fatalf("modal = %q, want %q", a.modal, modalEditEntry)
	}
	if a.editingID != "e1" {
		t.Fatalf("editingID = %q, want e1", a.editingID)
	}
	if got := a.form.value("Amount"); got != "150.00" {
		t.Fatalf("amount = %q, want 150.00", got)
	}
	if got := a.form.value("Date (YYYY-MM-DD)"); got != "2026-06-03" {
		t.Fatalf("date = %q, want 2026-06-03", got)
	}
	if got := a.form.value("Field"); got != "North Paddock" {
		t.Fatalf("field = %q, want North Paddock", got)
	}

	// abandoning the edit drops the pending id
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(*App)
	if a.editingID != "" {
		t.Fatalf("editingID after esc = %q, want empty", a.editingID)
	}
}

func TestFieldTasksPanel(t *testing.T) {
	a := testApp()
	a.state = viewFields

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on a field returned no command")
	}

	model, _ := a.Update(fieldTasksMsg{name: "North Paddock", tasks: []repository.Task{
		{ID: "t1", Title: "Spray wheat rust", Status: repository.TaskPending, DueDate: datep(2026, 6, 1)},
	}})
	a = model.(*App)
	out := a.renderFields()
	if !strings.Contains(out, "Tasks on North Paddock") || !strings.Contains(out, "Spray wheat rust") {
		t.Fatalf("fields view missing task panel:\n%s", out)
	}

	a.switchView(viewDashboard)
	if a.fieldTasksName != "" || a.fieldTaskList != nil {
		t.Fatal("task panel should clear on view switch")
	}
}

func TestHarvestKeyTargetsFieldCrop(t *testing.T) {
	a := testApp()
	a.state = viewFields
	a.crops[0].Status = "growing"

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if cmd == nil {
		t.Fatal("harvest on a cropped field returned no command")
	}

	a.cursor = 1 // River Flat has no crop
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	a = model.(*App)
	if cmd != nil {
		t.Fatal("harvest on a fallow field should be a no-op")
	}
	if a.status != "no crop on this field" {
		t.Fatalf("status = %q", a.status)
	}
}

func TestUpdateSearchTyping(t *testing.T) {
	a := testApp()
	a.state = viewTasks
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	a = model.(*App)
	if !a.searching {
		t.Fatal("expected search mode")
	}
	for _, r := range "wheat" {
		model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		a = model.(*App)
	}
	if a.search != "wheat" {
		t.Fatalf("search = %q, want wheat", a.search)
	}
	rows := a.visibleTasks()
	if len(rows) != 1 || rows[0].ID != "t1" {
		t.Fatalf("filtered rows = %d, want 1", len(rows))
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(*App)
	if a.search != "" || a.searching {
		t.Fatalf("esc should clear search, got %q", a.search)
	}
}

func TestViewRendersEachState(t *testing.T) {
	a := testApp()
	for _, state := range []appState{viewDashboard, viewFields, viewTasks, viewInventory, viewFinance, viewReports, viewSettings} {
		a.state = state
		out := a.View()
		if out == "" {
			t.Fatalf("empty view for %s", state)
		}
	}
}

func TestRenderTasksMarksOverdue(t *testing.T) {
	a := testApp()
	a.state = viewTasks
	out := a.View()
	if !strings.Contains(out, "OVERDUE") {
		t.Fatal("expected overdue marker in task list")
	}
	if !strings.Contains(out, "Spray wheat rust") {
		t.Fatal("expected task title in view")
	}
}

func TestRenderFinanceShowsCategoryShares(t *testing.T) {
	a := testApp()
	a.state = viewFinance
	out := a.View()
	if !strings.Contains(out, "$350.00") {
		t.Fatalf("expected grand total in view:\n%s", out)
	}
	if !strings.Contains(out, "fuel") || !strings.Contains(out, "labor") {
		t.Fatal("expected category breakdown in view")
	}
}

func TestFormAdvancesAndSubmitCancels(t *testing.T) {
	a := testApp()
	a.state = viewFields
	a.openForm(modalNewField, newFieldForm())
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	a = model.(*App)
	if a.form.values[0] != "X" {
		t.Fatalf("form value = %q, want X", a.form.values[0])
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = model.(*App)
	if a.form.idx != 1 {
		t.Fatalf("form idx = %d, want 1", a.form.idx)
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(*App)
	if a.modal != modalNone {
		t.Fatalf("modal = %s, want closed", a.modal)
	}
}

func TestFieldIDByNameCaseInsensitive(t *testing.T) {
	a := testApp()
	id := a.fieldIDByName("north paddock")
	if id == nil || *id != "f1" {
		t.Fatalf("id = %v, want f1", id)
	}
	if a.fieldIDByName("") != nil {
		t.Fatal("empty name should resolve to nil")
	}
	if a.fieldIDByName("nowhere") != nil {
		t.Fatal("unknown name should resolve to nil")
	}
}
