package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type PlanRepository struct {
	db *gorm.DB
}

func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}

func (r *PlanRepository) CreateProject(ctx context.Context, value domain.Project) (domain.Project, error) {
	m := ProjectModel{Name: value.Name, Client: value.Client, Unit: value.Unit}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Project{}, err
	}
	return toProject(m), nil
}

func (r *PlanRepository) GetProject(ctx context.Context, id uint) (domain.Project, error) {
	var m ProjectModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Project{}, notFound(err)
	}
	return toProject(m), nil
}

func (r *PlanRepository) ListProjects(ctx context.Context, query string, limit int) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Model(&ProjectModel{})
	if strings.TrimSpace(query) != "" {
		like := "%" + strings.TrimSpace(query) + "%"
		q = q.Where("name LIKE ? OR client LIKE ?", like, like)
	}
	rows := make([]ProjectModel, 0)
	if err := q.Order("updated_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Project, 0, len(rows))
	for _, m := range rows {
		result = append(result, toProject(m))
	}
	return result, nil
}

func (r *PlanRepository) CreateStandards(ctx context.Context, values []domain.Standard) ([]domain.Standard, error) {
	if len(values) == 0 {
		return []domain.Standard{}, nil
	}
	rows := make([]StandardModel, 0, len(values))
	for _, v := range values {
		rows = append(rows, StandardModel{
			ProjectID:   v.ProjectID,
			Name:        v.Name,
			Category:    v.Category,
			Material:    v.Material,
			Brand:       v.Brand,
			ThicknessMM: v.ThicknessMM,
			Finish:      v.Finish,
			RatePerSqft: v.RatePerSqft,
			RatePerUnit: v.RatePerUnit,
			EdgeBandMM:  v.EdgeBandMM,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Standard, 0, len(rows))
	for _, m := range rows {
		result = append(result, toStandard(m))
	}
	return result, nil
}

// ListStandards returns a project's standards in insertion order, which
// is the order category resolution depends on.
func (r *PlanRepository) ListStandards(ctx context.Context, projectID uint) ([]domain.Standard, error) {
	rows := make([]StandardModel, 0)
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Standard, 0, len(rows))
	for _, m := range rows {
		result = append(result, toStandard(m))
	}
	return result, nil
}

func (r *PlanRepository) DeleteStandard(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&StandardModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *PlanRepository) CreateModule(ctx context.Context, value domain.Module) (domain.Module, error) {
	m := fromModule(value)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Module{}, err
	}
	return toModule(m), nil
}

func (r *PlanRepository) UpdateModule(ctx context.Context, value domain.Module) (domain.Module, error) {
	var existing ModuleModel
	if err := r.db.WithContext(ctx).First(&existing, value.ID).Error; err != nil {
		return domain.Module{}, notFound(err)
	}
	m := fromModule(value)
	m.ProjectID = existing.ProjectID
	m.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return domain.Module{}, err
	}
	return toModule(m), nil
}

func (r *PlanRepository) GetModule(ctx context.Context, id uint) (domain.Module, error) {
	var m ModuleModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Module{}, notFound(err)
	}
	return toModule(m), nil
}

func (r *PlanRepository) ListModules(ctx context.Context, projectID uint) ([]domain.Module, error) {
	rows := make([]ModuleModel, 0)
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("position_index ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Module, 0, len(rows))
	for _, m := range rows {
		result = append(result, toModule(m))
	}
	return result, nil
}

func (r *PlanRepository) DeleteModule(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&ModuleModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

// ReplaceOutputs swaps a project's stored outputs for set and records run,
// all in one transaction.
func (r *PlanRepository) ReplaceOutputs(ctx context.Context, set domain.OutputSet, run domain.GenerationRun) error {
	payloads := map[string]any{
		domain.OutputDoorSchedule:     set.DoorSchedule,
		domain.OutputCutList:          set.CutList,
		domain.OutputMaterialTakeoff:  set.MaterialTakeoff,
		domain.OutputHardwareSchedule: set.HardwareSchedule,
	}
	rows := make([]OutputModel, 0, len(payloads))
	for _, outputType := range outputTypes {
		data, err := json.Marshal(payloads[outputType])
		if err != nil {
			return fmt.Errorf("encode %s: %w", outputType, err)
		}
		rows = append(rows, OutputModel{
			ProjectID:   set.ProjectID,
			OutputType:  outputType,
			RunID:       set.RunID,
			Data:        string(data),
			GeneratedAt: set.GeneratedAt,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", set.ProjectID).Delete(&OutputModel{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		runRow := GenerationRunModel{
			RunID:         run.RunID,
			ProjectID:     run.ProjectID,
			ModuleCount:   run.ModuleCount,
			PanelCount:    run.PanelCount,
			DoorCount:     run.DoorCount,
			HardwareCount: run.HardwareCount,
			GrandTotal:    run.GrandTotal,
		}
		if err := tx.Create(&runRow).Error; err != nil {
			return err
		}
		return tx.Model(&ProjectModel{}).Where("id = ?", set.ProjectID).Update("updated_at", time.Now()).Error
	})
}

var outputTypes = []string{
	domain.OutputDoorSchedule,
	domain.OutputCutList,
	domain.OutputMaterialTakeoff,
	domain.OutputHardwareSchedule,
}

// GetOutputs returns the latest stored outputs. A project that was never
// generated yields domain.ErrNotFound.
func (r *PlanRepository) GetOutputs(ctx context.Context, projectID uint) (domain.OutputSet, error) {
	rows := make([]OutputModel, 0)
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&rows).Error; err != nil {
		return domain.OutputSet{}, err
	}
	if len(rows) == 0 {
		return domain.OutputSet{}, notFound(gorm.ErrRecordNotFound)
	}

	set := domain.OutputSet{ProjectID: projectID}
	for _, m := range rows {
		set.RunID = m.RunID
		set.GeneratedAt = m.GeneratedAt
		var target any
		switch m.OutputType {
		case domain.OutputDoorSchedule:
			target = &set.DoorSchedule
		case domain.OutputCutList:
			target = &set.CutList
		case domain.OutputMaterialTakeoff:
			target = &set.MaterialTakeoff
		case domain.OutputHardwareSchedule:
			target = &set.HardwareSchedule
		default:
			continue
		}
		if err := json.Unmarshal([]byte(m.Data), target); err != nil {
			return domain.OutputSet{}, fmt.Errorf("decode %s: %w", m.OutputType, err)
		}
	}
	return set, nil
}

func (r *PlanRepository) ListGenerationRuns(ctx context.Context, projectID uint, limit int) ([]domain.GenerationRun, error) {
	rows := make([]GenerationRunModel, 0)
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.GenerationRun, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.GenerationRun{
			ID:            m.ID,
			RunID:         m.RunID,
			ProjectID:     m.ProjectID,
			ModuleCount:   m.ModuleCount,
			PanelCount:    m.PanelCount,
			DoorCount:     m.DoorCount,
			HardwareCount: m.HardwareCount,
			GrandTotal:    m.GrandTotal,
			CreatedAt:     m.CreatedAt,
		})
	}
	return result, nil
}

func toProject(m ProjectModel) domain.Project {
	return domain.Project{ID: m.ID, Name: m.Name, Client: m.Client, Unit: m.Unit, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func toStandard(m StandardModel) domain.Standard {
	return domain.Standard{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Category:    m.Category,
		Material:    m.Material,
		Brand:       m.Brand,
		ThicknessMM: m.ThicknessMM,
		Finish:      m.Finish,
		RatePerSqft: m.RatePerSqft,
		RatePerUnit: m.RatePerUnit,
		EdgeBandMM:  m.EdgeBandMM,
		CreatedAt:   m.CreatedAt,
	}
}

func fromModule(v domain.Module) ModuleModel {
	return ModuleModel{
		ID:              v.ID,
		ProjectID:       v.ProjectID,
		PositionIndex:   v.PositionIndex,
		Name:            v.Name,
		ModuleType:      v.ModuleType,
		Zone:            v.Zone,
		WidthMM:         v.WidthMM,
		HeightMM:        v.HeightMM,
		DepthMM:         v.DepthMM,
		DoorCount:       v.DoorCount,
		DoorStyle:       v.DoorStyle,
		DoorOpenType:    v.DoorOpenType,
		DrawerCount:     v.DrawerCount,
		DrawerHeightsMM: string(v.DrawerHeightsMM),
		ShelfCount:      v.ShelfCount,
		ShelfType:       v.ShelfType,
		HasBackPanel:    v.HasBackPanel,
		BackPanelType:   v.BackPanelType,
		CarcassMaterial: v.CarcassMaterial,
		ShutterMaterial: v.ShutterMaterial,
		HardwareJSON:    string(v.HardwareJSON),
		Notes:           v.Notes,
	}
}

func toModule(m ModuleModel) domain.Module {
	return domain.Module{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		PositionIndex:   m.PositionIndex,
		Name:            m.Name,
		ModuleType:      m.ModuleType,
		Zone:            m.Zone,
		WidthMM:         m.WidthMM,
		HeightMM:        m.HeightMM,
		DepthMM:         m.DepthMM,
		DoorCount:       m.DoorCount,
		DoorStyle:       m.DoorStyle,
		DoorOpenType:    m.DoorOpenType,
		DrawerCount:     m.DrawerCount,
		DrawerHeightsMM: domain.JSONText(m.DrawerHeightsMM),
		ShelfCount:      m.ShelfCount,
		ShelfType:       m.ShelfType,
		HasBackPanel:    m.HasBackPanel,
		BackPanelType:   m.BackPanelType,
		CarcassMaterial: m.CarcassMaterial,
		ShutterMaterial: m.ShutterMaterial,
		HardwareJSON:    domain.JSONText(m.HardwareJSON),
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
