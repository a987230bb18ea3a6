package planning

import "github.com/atvirokodosprendimai/cabinetry/internal/domain"

// DefaultStandards is the starter catalog loaded into a new project.
func DefaultStandards() []domain.Standard {
	return []domain.Standard{
		{Name: "Carcass", Category: domain.CategoryCarcass, Material: "HDHMR", Brand: "Action Tesa", ThicknessMM: 18, Finish: "Pre-Lam", RatePerSqft: 55},
		{Name: "Shutter", Category: domain.CategoryShutter, Material: "HDHMR + Laminate", Brand: "Merino", ThicknessMM: 18, Finish: "Matte", RatePerSqft: 85},
		{Name: "Back Panel", Category: domain.CategoryBackPanel, Material: "MR Ply", ThicknessMM: 6, RatePerSqft: 25},
		{Name: "Countertop", Category: domain.CategoryCountertop, Material: "Granite", ThicknessMM: 20, Finish: "Polished", RatePerSqft: 120},
		{Name: "Edge Band", Category: domain.CategoryEdgeband, Material: "PVC Edge Band", ThicknessMM: 1, EdgeBandMM: 22, RatePerUnit: 3},
		{Name: "Hardware", Category: domain.CategoryHardware, Material: "SS / Zinc", RatePerUnit: 45},
	}
}

// DefaultModule is the template a new module starts from.
func DefaultModule() domain.Module {
	return domain.Module{
		ModuleType:      domain.ModuleTypeBase,
		WidthMM:         600,
		HeightMM:        720,
		DepthMM:         550,
		DoorCount:       1,
		DoorStyle:       "slab",
		DoorOpenType:    domain.OpenHinged,
		DrawerHeightsMM: "[]",
		ShelfCount:      1,
		ShelfType:       domain.ShelfFixed,
		HasBackPanel:    true,
		BackPanelType:   domain.BackRecessed,
		HardwareJSON:    "{}",
	}
}
