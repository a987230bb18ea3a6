package domain

import "context"

type PlanRepository interface {
	CreateProject(ctx context.Context, value Project) (Project, error)
	GetProject(ctx context.Context, id uint) (Project, error)
	ListProjects(ctx context.Context, query string, limit int) ([]Project, error)

	CreateStandards(ctx context.Context, values []Standard) ([]Standard, error)
	ListStandards(ctx context.Context, projectID uint) ([]Standard, error)
	DeleteStandard(ctx context.Context, id uint) error

	CreateModule(ctx context.Context, value Module) (Module, error)
	UpdateModule(ctx context.Context, value Module) (Module, error)
	GetModule(ctx context.Context, id uint) (Module, error)
	ListModules(ctx context.Context, projectID uint) ([]Module, error)
	DeleteModule(ctx context.Context, id uint) error

	ReplaceOutputs(ctx context.Context, set OutputSet, run GenerationRun) error
	GetOutputs(ctx context.Context, projectID uint) (OutputSet, error)
	ListGenerationRuns(ctx context.Context, projectID uint, limit int) ([]GenerationRun, error)
}
