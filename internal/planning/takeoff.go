package planning

import (
	"math"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/atvirokodosprendimai/cabinetry/internal/units"
)

const (
	SheetLengthMM = 2440
	SheetWidthMM  = 1220
	SheetAreaSqmm = SheetLengthMM * SheetWidthMM

	SheetWastagePct    = 8
	EdgeBandWastagePct = 10
)

type groupKey struct {
	material  string
	thickness float64
}

// GenerateMaterialTakeoff groups the cut list by material and thickness,
// sizes sheet purchases with sheet wastage, and appends one edge-band row
// built from every banded edge.
func GenerateMaterialTakeoff(panels []domain.Panel, standards []domain.Standard) domain.Takeoff {
	catalog := Catalog(standards)

	order := make([]groupKey, 0)
	groups := make(map[groupKey]*domain.MaterialGroup)
	for _, p := range panels {
		key := groupKey{material: p.Material, thickness: p.ThicknessMM}
		g, ok := groups[key]
		if !ok {
			g = &domain.MaterialGroup{Material: p.Material, ThicknessMM: p.ThicknessMM}
			groups[key] = g
			order = append(order, key)
		}
		g.TotalAreaSqmm += p.AreaSqmm * p.Qty
		g.PanelCount += p.Qty
	}

	sheetFactor := 1 + SheetWastagePct/100.0
	items := make([]domain.MaterialGroup, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		var rate float64
		if std, ok := catalog.ForMaterial(g.Material, g.ThicknessMM); ok {
			rate = std.RatePerSqft
		}
		sqft := units.SqmmToSqft(float64(g.TotalAreaSqmm))

		g.TotalAreaSqft = round2(sqft)
		g.WastagePct = SheetWastagePct
		g.SheetsNeeded = int(math.Ceil(float64(g.TotalAreaSqmm) * sheetFactor / SheetAreaSqmm))
		g.RatePerSqft = rate
		g.EstimatedCost = roundHalfUp(sqft * sheetFactor * rate)
		items = append(items, *g)
	}

	items = append(items, edgeBandRow(panels, catalog.ByCategory(domain.CategoryEdgeband)))

	var total float64
	for _, item := range items {
		total += item.EstimatedCost
	}
	return domain.Takeoff{Items: items, GrandTotal: total}
}

// BandedLengthMM sums the length of every edge flagged for banding.
func BandedLengthMM(panels []domain.Panel) float64 {
	var total float64
	for _, p := range panels {
		l := float64(p.LengthMM * p.Qty)
		w := float64(p.WidthMM * p.Qty)
		if p.EdgeL1 {
			total += l
		}
		if p.EdgeL2 {
			total += l
		}
		if p.EdgeW1 {
			total += w
		}
		if p.EdgeW2 {
			total += w
		}
	}
	return total
}

func edgeBandRow(panels []domain.Panel, std domain.Standard) domain.MaterialGroup {
	running := BandedLengthMM(panels)
	feet := units.RunningFeet(running)
	rate := std.RatePerUnit
	return domain.MaterialGroup{
		Material:       resolveString("", std.Material, DefaultEdgeBandMaterial),
		ThicknessMM:    resolveNumber(std.EdgeBandMM, DefaultEdgeBandMM),
		WastagePct:     EdgeBandWastagePct,
		TotalRunningMM: roundHalfUp(running),
		TotalRunningFt: round2(feet),
		RatePerRft:     rate,
		EstimatedCost:  roundHalfUp(feet * (1 + EdgeBandWastagePct/100.0) * rate),
		IsEdgeband:     true,
	}
}
