package planning

import (
	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
)

const (
	UnitPieces = "pcs"
	UnitSet    = "set"
	UnitPair   = "pair"
)

// hingesPerDoor steps up with door height: 2 up to 1000mm, 3 up to
// 1500mm, 4 above that.
func hingesPerDoor(heightMM float64) int {
	switch {
	case heightMM > 1500:
		return 4
	case heightMM > 1000:
		return 3
	default:
		return 2
	}
}

// telescopicMinDepthMM is the module depth above which drawers get full
// extension channels.
const telescopicMinDepthMM = 450

// GenerateHardwareSchedule applies the hardware rule table to every
// module and appends the module's custom entries. Every row is priced at
// the hardware standard's unit rate.
func GenerateHardwareSchedule(modules []domain.Module, standards []domain.Standard) []domain.HardwareItem {
	s := resolveSpecs(standards)
	rate := s.hardware.RatePerUnit

	rows := make([]domain.HardwareItem, 0)
	for _, m := range modules {
		ref := domain.RefOf(m)
		add := func(item, category string, qty float64, unit string) {
			rows = append(rows, domain.HardwareItem{
				ModuleRef:     ref,
				Item:          item,
				Category:      category,
				Qty:           qty,
				Unit:          unit,
				Rate:          rate,
				EstimatedCost: roundHalfUp(qty * rate),
			})
		}

		if m.DoorCount > 0 && m.DoorOpenType == domain.OpenHinged {
			add("Soft-Close Hinge", "hinge", float64(hingesPerDoor(m.HeightMM)*m.DoorCount), UnitPieces)
		}
		if m.DoorOpenType == domain.OpenLiftUp {
			add("Lift-Up Mechanism", "lift_up", float64(m.DoorCount), UnitSet)
		}
		if m.DoorOpenType == domain.OpenFlap {
			add("Flap Stay", "flap_stay", float64(2*m.DoorCount), UnitPieces)
		}
		if m.DoorOpenType == domain.OpenSliding {
			add("Sliding Channel Set", "sliding_channel", 1, UnitSet)
		}
		if m.DrawerCount > 0 {
			channel := "Ball Bearing Channel"
			if m.DepthMM > telescopicMinDepthMM {
				channel = "Telescopic Channel (full ext.)"
			}
			add(channel, "drawer_channel", float64(m.DrawerCount), UnitPair)
		}
		if handles := m.DoorCount + m.DrawerCount; handles > 0 {
			add("Handle / Knob", "handle", float64(handles), UnitPieces)
		}
		if m.ShelfCount > 0 && m.ShelfType == domain.ShelfAdjustable {
			add("Shelf Support Pin", "shelf_pin", float64(4*m.ShelfCount), UnitPieces)
		}
		if m.ModuleType == domain.ModuleTypeBase {
			add("Adjustable Leg", "leg", 4, UnitPieces)
		}

		for _, c := range parseCustomHardware(m.HardwareJSON) {
			add(c.name, "custom", c.qty, UnitPieces)
		}
	}
	return rows
}
