package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farmkeep/farmkeep/internal/config"
	"github.com/farmkeep/farmkeep/internal/database"
	"github.com/farmkeep/farmkeep/internal/database/repository"
	"github.com/farmkeep/farmkeep/internal/service"
	"github.com/farmkeep/farmkeep/internal/testdata"
	"github.com/farmkeep/farmkeep/internal/tui"
	"github.com/farmkeep/farmkeep/internal/weather"
)

func main() {
	seed := flag.Bool("seed", false, "seed the database with demo farm data and exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories
	fieldRepo := repository.NewFieldRepo(db)
	cropRepo := repository.NewCropRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	invRepo := repository.NewInventoryRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	incomeRepo := repository.NewIncomeRepo(db)

	if *seed {
		err := testdata.Seed(ctx, testdata.Repos{
			Fields: fieldRepo, Crops: cropRepo, Tasks: taskRepo,
			Inventory: invRepo, Expenses: expenseRepo, Income: incomeRepo,
		})
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Println("seeded demo farm data")
		return
	}

	reporter := &service.Reporter{
		Fields: fieldRepo, Tasks: taskRepo, Inventory: invRepo,
		Expenses: expenseRepo, Income: incomeRepo,
	}
	maintenance := &service.MaintenanceService{DB: db}

	station := weather.NewSimulated(cfg.Weather.Station)

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{Fields: fieldRepo, Crops: cropRepo, Tasks: taskRepo, Inventory: invRepo, Expenses: expenseRepo, Income: incomeRepo},
		tui.Services{Reporter: reporter, Maintenance: maintenance},
		station, loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
