package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/metrics"
	"github.com/atvirokodosprendimai/cabinetry/internal/planning"
	"github.com/atvirokodosprendimai/cabinetry/internal/units"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PlanService struct {
	repo   domain.PlanRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewPlanService(repo domain.PlanRepository, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{repo: repo, logger: logger, now: time.Now}
}

func (s *PlanService) CreateProject(ctx context.Context, name, client, unit string) (domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Project{}, errors.New("name is required")
	}
	unit = defaultString(unit, units.MM)
	if !units.Valid(unit) {
		return domain.Project{}, fmt.Errorf("unsupported unit %q", unit)
	}
	return s.repo.CreateProject(ctx, domain.Project{Name: name, Client: strings.TrimSpace(client), Unit: unit})
}

func (s *PlanService) GetProject(ctx context.Context, id uint) (domain.Project, error) {
	if id == 0 {
		return domain.Project{}, errors.New("project_id is required")
	}
	return s.repo.GetProject(ctx, id)
}

func (s *PlanService) ListProjects(ctx context.Context, query string, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return s.repo.ListProjects(ctx, query, limit)
}

func (s *PlanService) ListStandards(ctx context.Context, projectID uint) ([]domain.Standard, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListStandards(ctx, projectID)
}

var standardCategories = map[string]bool{
	domain.CategoryCarcass:    true,
	domain.CategoryShutter:    true,
	domain.CategoryBackPanel:  true,
	domain.CategoryCountertop: true,
	domain.CategoryHardware:   true,
	domain.CategoryEdgeband:   true,
	domain.CategoryGeneral:    true,
}

func (s *PlanService) CreateStandard(ctx context.Context, value domain.Standard) (domain.Standard, error) {
	if value.ProjectID == 0 {
		return domain.Standard{}, errors.New("project_id is required")
	}
	value.Category = strings.TrimSpace(value.Category)
	if !standardCategories[value.Category] {
		return domain.Standard{}, fmt.Errorf("unknown category %q", value.Category)
	}
	if value.ThicknessMM < 0 || value.RatePerSqft < 0 || value.RatePerUnit < 0 || value.EdgeBandMM < 0 {
		return domain.Standard{}, errors.New("thickness, rates and edge band width must not be negative")
	}
	if _, err := s.repo.GetProject(ctx, value.ProjectID); err != nil {
		return domain.Standard{}, err
	}
	value.Name = defaultString(value.Name, value.Category)

	created, err := s.repo.CreateStandards(ctx, []domain.Standard{value})
	if err != nil {
		return domain.Standard{}, err
	}
	return created[0], nil
}

// LoadDefaultStandards appends the starter catalog to a project. Existing
// standards stay in place and keep precedence.
func (s *PlanService) LoadDefaultStandards(ctx context.Context, projectID uint) ([]domain.Standard, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	defaults := planning.DefaultStandards()
	for i := range defaults {
		defaults[i].ProjectID = projectID
	}
	return s.repo.CreateStandards(ctx, defaults)
}

func (s *PlanService) DeleteStandard(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("standard id is required")
	}
	return s.repo.DeleteStandard(ctx, id)
}

func (s *PlanService) ListModules(ctx context.Context, projectID uint) ([]domain.Module, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListModules(ctx, projectID)
}

// CreateModule appends a module to the end of its project. Enumerated
// fields left blank take the default template's values.
func (s *PlanService) CreateModule(ctx context.Context, value domain.Module) (domain.Module, error) {
	if value.ProjectID == 0 {
		return domain.Module{}, errors.New("project_id is required")
	}
	value = withTemplate(value)
	if err := validateModule(value); err != nil {
		return domain.Module{}, err
	}
	existing, err := s.ListModules(ctx, value.ProjectID)
	if err != nil {
		return domain.Module{}, err
	}
	value.PositionIndex = len(existing)
	return s.repo.CreateModule(ctx, value)
}

// UpdateModule replaces a module's fields. Its project and position are
// kept from the stored record.
func (s *PlanService) UpdateModule(ctx context.Context, value domain.Module) (domain.Module, error) {
	if value.ID == 0 {
		return domain.Module{}, errors.New("module id is required")
	}
	current, err := s.repo.GetModule(ctx, value.ID)
	if err != nil {
		return domain.Module{}, err
	}
	value.ProjectID = current.ProjectID
	value.PositionIndex = current.PositionIndex
	value = withTemplate(value)
	if err := validateModule(value); err != nil {
		return domain.Module{}, err
	}
	return s.repo.UpdateModule(ctx, value)
}

func (s *PlanService) DeleteModule(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("module id is required")
	}
	return s.repo.DeleteModule(ctx, id)
}

// DuplicateModule copies a module to the end of its project under the
// name "<name> (copy)".
func (s *PlanService) DuplicateModule(ctx context.Context, id uint) (domain.Module, error) {
	if id == 0 {
		return domain.Module{}, errors.New("module id is required")
	}
	source, err := s.repo.GetModule(ctx, id)
	if err != nil {
		return domain.Module{}, err
	}
	dup := source
	dup.ID = 0
	dup.Name = source.Name + " (copy)"
	dup.CreatedAt = time.Time{}
	dup.UpdatedAt = time.Time{}
	return s.CreateModule(ctx, dup)
}

func withTemplate(m domain.Module) domain.Module {
	tpl := planning.DefaultModule()
	m.Name = strings.TrimSpace(m.Name)
	m.ModuleType = defaultString(m.ModuleType, tpl.ModuleType)
	m.DoorOpenType = defaultString(m.DoorOpenType, tpl.DoorOpenType)
	m.ShelfType = defaultString(m.ShelfType, tpl.ShelfType)
	m.BackPanelType = defaultString(m.BackPanelType, tpl.BackPanelType)
	m.DrawerHeightsMM = domain.JSONText(defaultString(string(m.DrawerHeightsMM), string(tpl.DrawerHeightsMM)))
	m.HardwareJSON = domain.JSONText(defaultString(string(m.HardwareJSON), string(tpl.HardwareJSON)))
	return m
}

func validateModule(m domain.Module) error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.WidthMM <= 0 || m.HeightMM <= 0 || m.DepthMM <= 0 {
		return errors.New("width_mm, height_mm and depth_mm must be positive")
	}
	if m.DoorCount < 0 || m.DrawerCount < 0 || m.ShelfCount < 0 {
		return errors.New("door, drawer and shelf counts must not be negative")
	}
	return nil
}

// Compute runs the planning engine over caller-supplied inputs without
// touching storage.
func (s *PlanService) Compute(ctx context.Context, modules []domain.Module, standards []domain.Standard) (domain.Outputs, error) {
	started := s.now()
	out, err := runEngine(ctx, modules, standards)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.RecordGeneration(metrics.Generation{
		Source:   "compute",
		Status:   status,
		Duration: s.now().Sub(started),
		Panels:   len(out.CutList),
		Doors:    len(out.DoorSchedule),
		Hardware: len(out.HardwareSchedule),
	})
	return out, err
}

// Generate recomputes every output for a project from its stored modules
// and standards and replaces the stored outputs in one step.
func (s *PlanService) Generate(ctx context.Context, projectID uint) (domain.OutputSet, error) {
	started := s.now()
	set, err := s.generate(ctx, projectID)
	elapsed := s.now().Sub(started)

	if err != nil {
		metrics.RecordGeneration(metrics.Generation{Source: "project", Status: metrics.StatusError, Duration: elapsed})
		s.logger.Warn("generation failed", zap.Uint("project_id", projectID), zap.Error(err))
		return domain.OutputSet{}, err
	}

	metrics.RecordGeneration(metrics.Generation{
		Source:   "project",
		Status:   metrics.StatusSuccess,
		Duration: elapsed,
		Panels:   len(set.CutList),
		Doors:    len(set.DoorSchedule),
		Hardware: len(set.HardwareSchedule),
	})
	metrics.SetGrandTotal(strconv.FormatUint(uint64(projectID), 10), set.MaterialTakeoff.GrandTotal)
	s.logger.Info("outputs generated",
		zap.Uint("project_id", projectID),
		zap.String("run_id", set.RunID),
		zap.Int("panels", len(set.CutList)),
		zap.Int("doors", len(set.DoorSchedule)),
		zap.Int("hardware", len(set.HardwareSchedule)),
		zap.Float64("grand_total", set.MaterialTakeoff.GrandTotal),
		zap.Duration("duration", elapsed),
	)
	return set, nil
}

func (s *PlanService) generate(ctx context.Context, projectID uint) (domain.OutputSet, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return domain.OutputSet{}, err
	}
	modules, err := s.repo.ListModules(ctx, projectID)
	if err != nil {
		return domain.OutputSet{}, err
	}
	if len(modules) == 0 {
		return domain.OutputSet{}, errors.New("add at least one module first")
	}
	standards, err := s.repo.ListStandards(ctx, projectID)
	if err != nil {
		return domain.OutputSet{}, err
	}

	out, err := runEngine(ctx, modules, standards)
	if err != nil {
		return domain.OutputSet{}, err
	}

	set := domain.OutputSet{
		ProjectID:   projectID,
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Outputs:     out,
	}
	run := domain.GenerationRun{
		RunID:         set.RunID,
		ProjectID:     projectID,
		ModuleCount:   len(modules),
		PanelCount:    len(out.CutList),
		DoorCount:     len(out.DoorSchedule),
		HardwareCount: len(out.HardwareSchedule),
		GrandTotal:    out.MaterialTakeoff.GrandTotal,
	}
	if err := s.repo.ReplaceOutputs(ctx, set, run); err != nil {
		return domain.OutputSet{}, fmt.Errorf("store outputs: %w", err)
	}
	return set, nil
}

// runEngine fans the three independent pipelines out and joins them. The
// takeoff stays on the cut-list goroutine since it consumes its result.
func runEngine(ctx context.Context, modules []domain.Module, standards []domain.Standard) (domain.Outputs, error) {
	var out domain.Outputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.DoorSchedule = planning.GenerateDoorSchedule(modules, standards)
		return gctx.Err()
	})
	g.Go(func() error {
		out.CutList = planning.GenerateCutList(modules, standards)
		out.MaterialTakeoff = planning.GenerateMaterialTakeoff(out.CutList, standards)
		return gctx.Err()
	})
	g.Go(func() error {
		out.HardwareSchedule = planning.GenerateHardwareSchedule(modules, standards)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return domain.Outputs{}, err
	}
	return out, nil
}

func (s *PlanService) GetOutputs(ctx context.Context, projectID uint) (domain.OutputSet, error) {
	if projectID == 0 {
		return domain.OutputSet{}, errors.New("project_id is required")
	}
	return s.repo.GetOutputs(ctx, projectID)
}

func (s *PlanService) ListGenerationRuns(ctx context.Context, projectID uint, limit int) ([]domain.GenerationRun, error) {
	if projectID == 0 {
		return nil, errors.New("project_id is required")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 500 {
		limit = 500
	}
	return s.repo.ListGenerationRuns(ctx, projectID, limit)
}

func defaultString(input, fallback string) string {
	if strings.TrimSpace(input) == "" {
		return fallback
	}
	return strings.TrimSpace(input)
}
