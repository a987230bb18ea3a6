package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

const (
	ModuleTypeBase    = "base"
	ModuleTypeWall    = "wall"
	ModuleTypeTall    = "tall"
	ModuleTypeDrawer  = "drawer"
	ModuleTypeCorner  = "corner"
	ModuleTypeShelf   = "shelf"
	ModuleTypeHanging = "hanging"
)

const (
	OpenHinged  = "hinged"
	OpenSliding = "sliding"
	OpenLiftUp  = "lift_up"
	OpenFlap    = "flap"
	OpenNone    = "none"
)

const (
	ShelfFixed      = "fixed"
	ShelfAdjustable = "adjustable"
	ShelfPullout    = "pullout"
	ShelfNone       = "none"
)

const (
	BackRecessed = "recessed"
	BackNailed   = "nailed"
	BackNone     = "none"
)

const (
	CategoryCarcass    = "carcass"
	CategoryShutter    = "shutter"
	CategoryBackPanel  = "back_panel"
	CategoryCountertop = "countertop"
	CategoryHardware   = "hardware"
	CategoryEdgeband   = "edgeband"
	CategoryGeneral    = "general"
)

const (
	OutputDoorSchedule     = "door_schedule"
	OutputCutList          = "cut_list"
	OutputMaterialTakeoff  = "material_takeoff"
	OutputHardwareSchedule = "hardware_schedule"
)

// JSONText holds a JSON document kept as text, the way module records
// store drawer heights and custom hardware. It decodes from either a JSON
// string or any inline JSON value, so callers may write
// "drawer_heights_mm": "[180, 200]" or "drawer_heights_mm": [180, 200].
type JSONText string

func (t *JSONText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = JSONText(s)
		return nil
	}
	if string(data) == "null" {
		*t = ""
		return nil
	}
	*t = JSONText(data)
	return nil
}

type Project struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Client    string    `json:"client"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Module is one cabinet unit. Dimensions are always millimetres.
type Module struct {
	ID            uint   `json:"id,omitempty"`
	ProjectID     uint   `json:"project_id,omitempty"`
	PositionIndex int    `json:"position_index"`
	Name          string `json:"name"`
	ModuleType    string `json:"module_type"`
	Zone          string `json:"zone"`

	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
	DepthMM  float64 `json:"depth_mm"`

	DoorCount    int    `json:"door_count"`
	DoorStyle    string `json:"door_style"`
	DoorOpenType string `json:"door_open_type"`

	DrawerCount     int      `json:"drawer_count"`
	DrawerHeightsMM JSONText `json:"drawer_heights_mm"`

	ShelfCount int    `json:"shelf_count"`
	ShelfType  string `json:"shelf_type"`

	HasBackPanel  bool   `json:"has_back_panel"`
	BackPanelType string `json:"back_panel_type"`

	CarcassMaterial string   `json:"carcass_material"`
	ShutterMaterial string   `json:"shutter_material"`
	HardwareJSON    JSONText `json:"hardware_json"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Standard is one category's material specification.
type Standard struct {
	ID          uint      `json:"id,omitempty"`
	ProjectID   uint      `json:"project_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Category    string    `json:"category"`
	Material    string    `json:"material"`
	Brand       string    `json:"brand,omitempty"`
	ThicknessMM float64   `json:"thickness_mm"`
	Finish      string    `json:"finish"`
	RatePerSqft float64   `json:"rate_per_sqft"`
	RatePerUnit float64   `json:"rate_per_unit"`
	EdgeBandMM  float64   `json:"edge_band_mm"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ModuleRef identifies the module an output row was derived from.
type ModuleRef struct {
	ModuleName string `json:"module_name"`
	ModuleType string `json:"module_type"`
	Zone       string `json:"zone"`
}

func RefOf(m Module) ModuleRef {
	return ModuleRef{ModuleName: m.Name, ModuleType: m.ModuleType, Zone: m.Zone}
}

type Panel struct {
	Seq int `json:"seq"`
	ModuleRef
	Part        string  `json:"part"`
	LengthMM    int     `json:"length_mm"`
	WidthMM     int     `json:"width_mm"`
	ThicknessMM float64 `json:"thickness_mm"`
	AreaSqmm    int     `json:"area_sqmm"`
	Material    string  `json:"material"`
	Qty         int     `json:"qty"`
	EdgeL1      bool    `json:"edge_L1"`
	EdgeL2      bool    `json:"edge_L2"`
	EdgeW1      bool    `json:"edge_W1"`
	EdgeW2      bool    `json:"edge_W2"`
}

type DoorSpec struct {
	ModuleRef
	DoorNo      string  `json:"door_no"`
	DoorStyle   string  `json:"door_style"`
	OpenType    string  `json:"open_type"`
	WidthMM     float64 `json:"width_mm"`
	HeightMM    float64 `json:"height_mm"`
	ThicknessMM float64 `json:"thickness_mm"`
	AreaSqmm    int     `json:"area_sqmm"`
	Material    string  `json:"material"`
	Finish      string  `json:"finish"`
}

type HardwareItem struct {
	ModuleRef
	Item          string  `json:"item"`
	Category      string  `json:"category"`
	Qty           float64 `json:"qty"`
	Unit          string  `json:"unit"`
	Rate          float64 `json:"rate"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// MaterialGroup is one takeoff row. The edge-band row carries running
// length instead of area and has IsEdgeband set.
type MaterialGroup struct {
	Material       string  `json:"material"`
	ThicknessMM    float64 `json:"thickness_mm"`
	PanelCount     int     `json:"panel_count"`
	TotalAreaSqmm  int     `json:"total_area_sqmm"`
	TotalAreaSqft  float64 `json:"total_area_sqft"`
	WastagePct     float64 `json:"wastage_pct"`
	SheetsNeeded   int     `json:"sheets_needed"`
	RatePerSqft    float64 `json:"rate_per_sqft"`
	EstimatedCost  float64 `json:"estimated_cost"`
	TotalRunningMM float64 `json:"total_running_mm,omitempty"`
	TotalRunningFt float64 `json:"total_running_ft,omitempty"`
	RatePerRft     float64 `json:"rate_per_rft,omitempty"`
	IsEdgeband     bool    `json:"is_edgeband,omitempty"`
}

type Takeoff struct {
	Items      []MaterialGroup `json:"items"`
	GrandTotal float64         `json:"grand_total"`
}

// Outputs is the result of one generate invocation. The four sets are
// produced and replaced together.
type Outputs struct {
	DoorSchedule     []DoorSpec     `json:"door_schedule"`
	CutList          []Panel        `json:"cut_list"`
	MaterialTakeoff  Takeoff        `json:"material_takeoff"`
	HardwareSchedule []HardwareItem `json:"hardware_schedule"`
}

type OutputSet struct {
	ProjectID   uint      `json:"project_id"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Outputs
}

type GenerationRun struct {
	ID            uint      `json:"id"`
	RunID         string    `json:"run_id"`
	ProjectID     uint      `json:"project_id"`
	ModuleCount   int       `json:"module_count"`
	PanelCount    int       `json:"panel_count"`
	DoorCount     int       `json:"door_count"`
	HardwareCount int       `json:"hardware_count"`
	GrandTotal    float64   `json:"grand_total"`
	CreatedAt     time.Time `json:"created_at"`
}
