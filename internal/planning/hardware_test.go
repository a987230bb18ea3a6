package planning

import (
	"testing"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hwRow struct {
	Item string
	Qty  float64
	Cost float64
}

func hwRows(items []domain.HardwareItem) []hwRow {
	out := make([]hwRow, 0, len(items))
	for _, it := range items {
		out = append(out, hwRow{Item: it.Item, Qty: it.Qty, Cost: it.EstimatedCost})
	}
	return out
}

func TestHingesPerDoor(t *testing.T) {
	assert.Equal(t, 2, hingesPerDoor(720))
	assert.Equal(t, 2, hingesPerDoor(1000))
	assert.Equal(t, 3, hingesPerDoor(1001))
	assert.Equal(t, 3, hingesPerDoor(1500))
	assert.Equal(t, 4, hingesPerDoor(1600))
}

func TestGenerateHardwareSchedule_TallHingedDoors(t *testing.T) {
	m := baseModule("T1")
	m.ModuleType = domain.ModuleTypeTall
	m.HeightMM = 1600
	m.DoorCount = 2
	m.ShelfCount = 0
	items := GenerateHardwareSchedule([]domain.Module{m}, testCatalog())

	require.NotEmpty(t, items)
	assert.Equal(t, "Soft-Close Hinge", items[0].Item)
	assert.Equal(t, 8.0, items[0].Qty)
	assert.Equal(t, "hinge", items[0].Category)
	assert.Equal(t, UnitPieces, items[0].Unit)
}

func TestGenerateHardwareSchedule_FullRuleTable(t *testing.T) {
	m := baseModule("B1")
	m.DoorCount = 2
	m.DrawerCount = 1
	m.ShelfCount = 2
	m.ShelfType = domain.ShelfAdjustable
	m.HardwareJSON = `{"Dustbin Pullout": 1, "Cutlery Tray": 2}`

	items := GenerateHardwareSchedule([]domain.Module{m}, testCatalog())

	assert.Equal(t, []hwRow{
		{Item: "Soft-Close Hinge", Qty: 4, Cost: 180},
		{Item: "Telescopic Channel (full ext.)", Qty: 1, Cost: 45},
		{Item: "Handle / Knob", Qty: 3, Cost: 135},
		{Item: "Shelf Support Pin", Qty: 8, Cost: 360},
		{Item: "Adjustable Leg", Qty: 4, Cost: 180},
		{Item: "Dustbin Pullout", Qty: 1, Cost: 45},
		{Item: "Cutlery Tray", Qty: 2, Cost: 90},
	}, hwRows(items))
	assert.Equal(t, "custom", items[5].Category)
	assert.Equal(t, 45.0, items[0].Rate)
}

func TestGenerateHardwareSchedule_OpenTypes(t *testing.T) {
	wall := func(open string, doors int) domain.Module {
		m := baseModule("W")
		m.ModuleType = domain.ModuleTypeWall
		m.DoorOpenType = open
		m.DoorCount = doors
		m.ShelfCount = 0
		return m
	}

	tests := []struct {
		name string
		mod  domain.Module
		want []hwRow
	}{
		{
			name: "lift up",
			mod:  wall(domain.OpenLiftUp, 1),
			want: []hwRow{{"Lift-Up Mechanism", 1, 45}, {"Handle / Knob", 1, 45}},
		},
		{
			name: "flap",
			mod:  wall(domain.OpenFlap, 2),
			want: []hwRow{{"Flap Stay", 4, 180}, {"Handle / Knob", 2, 90}},
		},
		{
			name: "sliding is one set",
			mod:  wall(domain.OpenSliding, 3),
			want: []hwRow{{"Sliding Channel Set", 1, 45}, {"Handle / Knob", 3, 135}},
		},
		{
			name: "no doors no drawers",
			mod:  wall(domain.OpenNone, 0),
			want: []hwRow{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateHardwareSchedule([]domain.Module{tt.mod}, testCatalog())
			assert.Equal(t, tt.want, hwRows(got))
		})
	}
}

func TestGenerateHardwareSchedule_ShallowDrawersUseBallBearing(t *testing.T) {
	m := baseModule("D")
	m.DepthMM = 450
	m.DoorCount = 0
	m.DrawerCount = 3
	items := GenerateHardwareSchedule([]domain.Module{m}, testCatalog())

	require.NotEmpty(t, items)
	assert.Equal(t, "Ball Bearing Channel", items[0].Item)
	assert.Equal(t, UnitPair, items[0].Unit)
	assert.Equal(t, 3.0, items[0].Qty)
}

func TestGenerateHardwareSchedule_MissingRateCostsZero(t *testing.T) {
	items := GenerateHardwareSchedule([]domain.Module{baseModule("B1")}, nil)
	require.NotEmpty(t, items)
	for _, it := range items {
		assert.Zero(t, it.Rate)
		assert.Zero(t, it.EstimatedCost)
	}
}

func TestGenerateHardwareSchedule_CustomHardwareDegrades(t *testing.T) {
	tests := []struct {
		name string
		json domain.JSONText
		want []string
	}{
		{name: "malformed", json: `{"Hook": `, want: nil},
		{name: "array", json: `[1, 2]`, want: nil},
		{name: "scalar", json: `42`, want: nil},
		{name: "empty", json: ``, want: nil},
		{name: "invalid entries dropped", json: `{"A": -1, "B": "x", "C": 2, "D": null}`, want: []string{"C"}},
		{name: "duplicate keeps first position", json: `{"Hook": 1, "Rail": 1, "Hook": 3}`, want: []string{"Hook", "Rail"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := baseModule("W")
			m.ModuleType = domain.ModuleTypeWall
			m.DoorCount = 0
			m.ShelfCount = 0
			m.HardwareJSON = tt.json
			var got []string
			for _, it := range GenerateHardwareSchedule([]domain.Module{m}, testCatalog()) {
				got = append(got, it.Item)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCustomHardware_DuplicateTakesLastValue(t *testing.T) {
	items := parseCustomHardware(`{"Hook": 1, "Hook": 3}`)
	require.Len(t, items, 1)
	assert.Equal(t, 3.0, items[0].qty)
}
