package planning

import "github.com/atvirokodosprendimai/cabinetry/internal/domain"

func testCatalog() []domain.Standard {
	return []domain.Standard{
		{Category: domain.CategoryCarcass, Material: "HDHMR", ThicknessMM: 18, Finish: "Pre-Lam", RatePerSqft: 55},
		{Category: domain.CategoryShutter, Material: "HDHMR + Laminate", ThicknessMM: 18, Finish: "Matte", RatePerSqft: 85},
		{Category: domain.CategoryBackPanel, Material: "MR Ply", ThicknessMM: 6, RatePerSqft: 25},
		{Category: domain.CategoryEdgeband, Material: "PVC Edge Band", ThicknessMM: 1, EdgeBandMM: 22, RatePerUnit: 3},
		{Category: domain.CategoryHardware, Material: "SS / Zinc", RatePerUnit: 45},
	}
}

func baseModule(name string) domain.Module {
	return domain.Module{
		Name:          name,
		ModuleType:    domain.ModuleTypeBase,
		Zone:          "Kitchen",
		WidthMM:       600,
		HeightMM:      720,
		DepthMM:       550,
		DoorCount:     1,
		DoorStyle:     "slab",
		DoorOpenType:  domain.OpenHinged,
		ShelfCount:    1,
		ShelfType:     domain.ShelfFixed,
		HasBackPanel:  true,
		BackPanelType: domain.BackRecessed,
		HardwareJSON:  "{}",
	}
}
