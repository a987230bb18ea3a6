package sqlite

import "time"

type ProjectModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;index"`
	Client    string `gorm:"not null;default:''"`
	Unit      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProjectModel) TableName() string { return "projects" }

type StandardModel struct {
	ID          uint    `gorm:"primaryKey"`
	ProjectID   uint    `gorm:"not null;index"`
	Name        string  `gorm:"not null;default:''"`
	Category    string  `gorm:"not null;index"`
	Material    string  `gorm:"not null;default:''"`
	Brand       string  `gorm:"not null;default:''"`
	ThicknessMM float64 `gorm:"column:thickness_mm;not null;default:0"`
	Finish      string  `gorm:"not null;default:''"`
	RatePerSqft float64 `gorm:"column:rate_per_sqft;not null;default:0"`
	RatePerUnit float64 `gorm:"column:rate_per_unit;not null;default:0"`
	EdgeBandMM  float64 `gorm:"column:edge_band_mm;not null;default:0"`
	CreatedAt   time.Time
}

func (StandardModel) TableName() string { return "standards" }

type ModuleModel struct {
	ID              uint    `gorm:"primaryKey"`
	ProjectID       uint    `gorm:"not null;index"`
	PositionIndex   int     `gorm:"not null;default:0"`
	Name            string  `gorm:"not null"`
	ModuleType      string  `gorm:"not null"`
	Zone            string  `gorm:"not null;default:''"`
	WidthMM         float64 `gorm:"column:width_mm;not null"`
	HeightMM        float64 `gorm:"column:height_mm;not null"`
	DepthMM         float64 `gorm:"column:depth_mm;not null"`
	DoorCount       int     `gorm:"not null;default:0"`
	DoorStyle       string  `gorm:"not null;default:''"`
	DoorOpenType    string  `gorm:"not null"`
	DrawerCount     int     `gorm:"not null;default:0"`
	DrawerHeightsMM string  `gorm:"column:drawer_heights_mm;not null"`
	ShelfCount      int     `gorm:"not null;default:0"`
	ShelfType       string  `gorm:"not null"`
	HasBackPanel    bool    `gorm:"not null"`
	BackPanelType   string  `gorm:"not null"`
	CarcassMaterial string  `gorm:"not null;default:''"`
	ShutterMaterial string  `gorm:"not null;default:''"`
	HardwareJSON    string  `gorm:"column:hardware_json;not null"`
	Notes           string  `gorm:"not null;default:''"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ModuleModel) TableName() string { return "modules" }

// OutputModel stores one generated output set as JSON. There is at most
// one row per project and output type.
type OutputModel struct {
	ID          uint   `gorm:"primaryKey"`
	ProjectID   uint   `gorm:"not null;index:idx_project_output,unique"`
	OutputType  string `gorm:"not null;index:idx_project_output,unique"`
	RunID       string `gorm:"not null"`
	Data        string `gorm:"not null"`
	GeneratedAt time.Time
}

func (OutputModel) TableName() string { return "outputs" }

type GenerationRunModel struct {
	ID            uint    `gorm:"primaryKey"`
	RunID         string  `gorm:"not null;uniqueIndex"`
	ProjectID     uint    `gorm:"not null;index"`
	ModuleCount   int     `gorm:"not null;default:0"`
	PanelCount    int     `gorm:"not null;default:0"`
	DoorCount     int     `gorm:"not null;default:0"`
	HardwareCount int     `gorm:"not null;default:0"`
	GrandTotal    float64 `gorm:"not null;default:0"`
	CreatedAt     time.Time
}

func (GenerationRunModel) TableName() string { return "generation_runs" }
