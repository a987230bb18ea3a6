package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/planning"
)

func openTestRepo(t *testing.T) (*PlanRepository, context.Context) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "cabinetry_test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	version, err := RunMigrations(ctx, db)
	if err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if version < 1 {
		t.Fatalf("expected schema version >= 1, got %d", version)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewPlanRepository(db), ctx
}

func TestStandardsKeepInsertionOrder(t *testing.T) {
	repo, ctx := openTestRepo(t)

	project, err := repo.CreateProject(ctx, domain.Project{Name: "Kitchen", Unit: "mm"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	created, err := repo.CreateStandards(ctx, []domain.Standard{
		{ProjectID: project.ID, Category: domain.CategoryCarcass, Material: "HDHMR", ThicknessMM: 18, RatePerSqft: 55},
		{ProjectID: project.ID, Category: domain.CategoryCarcass, Material: "Marine Ply", ThicknessMM: 19},
		{ProjectID: project.ID, Category: domain.CategoryEdgeband, Material: "PVC Edge Band", ThicknessMM: 1, EdgeBandMM: 22, RatePerUnit: 3},
	})
	if err != nil {
		t.Fatalf("create standards: %v", err)
	}
	if len(created) != 3 || created[0].ID == 0 {
		t.Fatalf("expected three standards with ids, got %+v", created)
	}

	listed, err := repo.ListStandards(ctx, project.ID)
	if err != nil {
		t.Fatalf("list standards: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 standards, got %d", len(listed))
	}
	if got := planning.Catalog(listed).ByCategory(domain.CategoryCarcass).Material; got != "HDHMR" {
		t.Fatalf("expected first carcass standard to win, got %q", got)
	}
	if listed[2].EdgeBandMM != 22 || listed[2].RatePerUnit != 3 {
		t.Fatalf("edge band fields not persisted: %+v", listed[2])
	}

	if err := repo.DeleteStandard(ctx, listed[0].ID); err != nil {
		t.Fatalf("delete standard: %v", err)
	}
	if err := repo.DeleteStandard(ctx, listed[0].ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestModuleRoundTripAndOrdering(t *testing.T) {
	repo, ctx := openTestRepo(t)

	project, err := repo.CreateProject(ctx, domain.Project{Name: "Wardrobe"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	second, err := repo.CreateModule(ctx, domain.Module{
		ProjectID: project.ID, PositionIndex: 1, Name: "W2", ModuleType: domain.ModuleTypeTall,
		WidthMM: 900, HeightMM: 2100, DepthMM: 600, DrawerCount: 2, DrawerHeightsMM: "[180, 200]",
		HasBackPanel: false, BackPanelType: domain.BackNone, HardwareJSON: `{"Hanger Rod": 1}`,
	})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}
	if _, err := repo.CreateModule(ctx, domain.Module{ProjectID: project.ID, PositionIndex: 0, Name: "W1", WidthMM: 600, HeightMM: 720, DepthMM: 550, HasBackPanel: true}); err != nil {
		t.Fatalf("create module: %v", err)
	}

	modules, err := repo.ListModules(ctx, project.ID)
	if err != nil {
		t.Fatalf("list modules: %v", err)
	}
	if len(modules) != 2 || modules[0].Name != "W1" || modules[1].Name != "W2" {
		t.Fatalf("expected modules ordered by position, got %+v", modules)
	}
	got := modules[1]
	if got.HasBackPanel {
		t.Fatalf("has_back_panel=false must survive a round trip")
	}
	if got.DrawerHeightsMM != "[180, 200]" || got.HardwareJSON != `{"Hanger Rod": 1}` {
		t.Fatalf("json text columns not preserved: %+v", got)
	}

	second.Name = "W2 Renamed"
	second.ProjectID = 999
	updated, err := repo.UpdateModule(ctx, second)
	if err != nil {
		t.Fatalf("update module: %v", err)
	}
	if updated.Name != "W2 Renamed" || updated.ProjectID != project.ID {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := repo.UpdateModule(ctx, domain.Module{ID: 12345, Name: "ghost"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found updating missing module, got %v", err)
	}
	if err := repo.DeleteModule(ctx, second.ID); err != nil {
		t.Fatalf("delete module: %v", err)
	}
	if _, err := repo.GetModule(ctx, second.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestReplaceOutputsSwapsWholeSet(t *testing.T) {
	repo, ctx := openTestRepo(t)

	project, err := repo.CreateProject(ctx, domain.Project{Name: "Kitchen"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := repo.GetOutputs(ctx, project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found before first generation, got %v", err)
	}

	module := domain.Module{
		Name: "B1", ModuleType: domain.ModuleTypeBase, WidthMM: 600, HeightMM: 720, DepthMM: 550,
		DoorCount: 1, DoorOpenType: domain.OpenHinged, ShelfCount: 1, ShelfType: domain.ShelfFixed,
		HasBackPanel: true, BackPanelType: domain.BackRecessed, HardwareJSON: "{}",
	}
	first := planning.Generate([]domain.Module{module}, nil)
	if err := repo.ReplaceOutputs(ctx,
		domain.OutputSet{ProjectID: project.ID, RunID: "run-1", GeneratedAt: time.Now(), Outputs: first},
		domain.GenerationRun{RunID: "run-1", ProjectID: project.ID, ModuleCount: 1, PanelCount: len(first.CutList)},
	); err != nil {
		t.Fatalf("replace outputs: %v", err)
	}

	module.DoorCount = 2
	second := planning.Generate([]domain.Module{module, module}, nil)
	if err := repo.ReplaceOutputs(ctx,
		domain.OutputSet{ProjectID: project.ID, RunID: "run-2", GeneratedAt: time.Now(), Outputs: second},
		domain.GenerationRun{RunID: "run-2", ProjectID: project.ID, ModuleCount: 2, PanelCount: len(second.CutList)},
	); err != nil {
		t.Fatalf("replace outputs again: %v", err)
	}

	stored, err := repo.GetOutputs(ctx, project.ID)
	if err != nil {
		t.Fatalf("get outputs: %v", err)
	}
	if stored.RunID != "run-2" {
		t.Fatalf("expected latest run, got %q", stored.RunID)
	}
	if len(stored.CutList) != len(second.CutList) || len(stored.DoorSchedule) != 4 {
		t.Fatalf("stored outputs do not match second generation: panels=%d doors=%d", len(stored.CutList), len(stored.DoorSchedule))
	}
	if stored.MaterialTakeoff.GrandTotal != second.MaterialTakeoff.GrandTotal {
		t.Fatalf("grand total mismatch: %v != %v", stored.MaterialTakeoff.GrandTotal, second.MaterialTakeoff.GrandTotal)
	}
	if !stored.CutList[0].EdgeL1 {
		t.Fatalf("edge flags lost in storage: %+v", stored.CutList[0])
	}

	runs, err := repo.ListGenerationRuns(ctx, project.ID, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "run-2" {
		t.Fatalf("expected two runs newest first, got %+v", runs)
	}
}
