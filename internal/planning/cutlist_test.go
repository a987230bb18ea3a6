package planning

import (
	"testing"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partsOf(panels []domain.Panel) []string {
	out := make([]string, 0, len(panels))
	for _, p := range panels {
		out = append(out, p.Part)
	}
	return out
}

func TestGenerateCutList_RecessedCarcass(t *testing.T) {
	panels := GenerateCutList([]domain.Module{baseModule("B1")}, testCatalog())

	require.Equal(t, []string{"Left Side", "Right Side", "Top", "Bottom", "Shelf 1", "Back Panel"}, partsOf(panels))

	left := panels[0]
	assert.Equal(t, 720, left.LengthMM)
	assert.Equal(t, 538, left.WidthMM, "depth minus back thickness and routing clearance")
	assert.Equal(t, 720*538, left.AreaSqmm)
	assert.Equal(t, "HDHMR", left.Material)
	assert.Equal(t, 18.0, left.ThicknessMM)

	top := panels[2]
	assert.Equal(t, 564, top.LengthMM)
	assert.Equal(t, 538, top.WidthMM)

	shelf := panels[4]
	assert.Equal(t, 562, shelf.LengthMM)
	assert.Equal(t, 528, shelf.WidthMM)
	assert.True(t, shelf.EdgeW1)

	back := panels[5]
	assert.Equal(t, 732, back.LengthMM)
	assert.Equal(t, 576, back.WidthMM)
	assert.Equal(t, 6.0, back.ThicknessMM)
	assert.Equal(t, "MR Ply", back.Material)
}

func TestGenerateCutList_NailedBackUsesFullSize(t *testing.T) {
	m := baseModule("W1")
	m.BackPanelType = domain.BackNailed
	panels := GenerateCutList([]domain.Module{m}, testCatalog())

	assert.Equal(t, 550, panels[0].WidthMM)
	back := panels[len(panels)-1]
	assert.Equal(t, "Back Panel", back.Part)
	assert.Equal(t, 720, back.LengthMM)
	assert.Equal(t, 600, back.WidthMM)
}

func TestGenerateCutList_EdgeFlags(t *testing.T) {
	panels := GenerateCutList([]domain.Module{baseModule("B1")}, testCatalog())
	for _, p := range panels {
		assert.True(t, p.EdgeL1, p.Part)
		assert.True(t, p.EdgeL2, p.Part)
		assert.Equal(t, p.Part == "Shelf 1", p.EdgeW1, p.Part)
		assert.False(t, p.EdgeW2, p.Part)
	}
}

func TestGenerateCutList_SequenceSharedAcrossModules(t *testing.T) {
	a := baseModule("A")
	b := baseModule("B")
	b.ShelfCount = 3
	panels := GenerateCutList([]domain.Module{a, b}, testCatalog())

	require.Len(t, panels, 6+8)
	for i, p := range panels {
		assert.Equal(t, i+1, p.Seq)
	}
	assert.Equal(t, "A", panels[5].ModuleName)
	assert.Equal(t, "B", panels[6].ModuleName)
	assert.Equal(t, "Left Side", panels[6].Part)
}

func TestGenerateCutList_PanelCountWithoutShelves(t *testing.T) {
	tests := []struct {
		name      string
		back      bool
		drawers   int
		wantCount int
	}{
		{name: "carcass only", wantCount: 4},
		{name: "with back", back: true, wantCount: 5},
		{name: "two drawers", drawers: 2, wantCount: 14},
		{name: "back and drawers", back: true, drawers: 3, wantCount: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := baseModule("M")
			m.ShelfCount = 0
			m.HasBackPanel = tt.back
			m.DrawerCount = tt.drawers
			assert.Len(t, GenerateCutList([]domain.Module{m}, testCatalog()), tt.wantCount)
		})
	}
}

func TestGenerateCutList_MalformedDrawerHeightsUseEqualSplit(t *testing.T) {
	m := baseModule("D1")
	m.ModuleType = domain.ModuleTypeDrawer
	m.ShelfCount = 0
	m.HasBackPanel = false
	m.DrawerCount = 3
	m.DrawerHeightsMM = "{bad json"

	panels := GenerateCutList([]domain.Module{m}, testCatalog())
	require.Len(t, panels, 4+15)

	for d := 0; d < 3; d++ {
		box := panels[4+d*5 : 4+d*5+5]
		assert.Equal(t, 236, box[0].LengthMM, "front: 240 - 4")
		assert.Equal(t, 562, box[0].WidthMM)
		assert.Equal(t, "HDHMR + Laminate", box[0].Material)
		assert.Equal(t, 210, box[1].LengthMM, "back: 240 - 30")
		assert.Equal(t, 526, box[1].WidthMM)
		assert.Equal(t, 490, box[2].WidthMM, "left: depth - 60")
		assert.Equal(t, 490, box[3].WidthMM)
		assert.Equal(t, 526, box[4].LengthMM)
		assert.Equal(t, 6.0, box[4].ThicknessMM)
		assert.Equal(t, "MR Ply", box[4].Material)
	}
}

func TestGenerateCutList_PartialDrawerHeights(t *testing.T) {
	m := baseModule("D2")
	m.DrawerCount = 2
	m.DrawerHeightsMM = "[200]"
	panels := GenerateCutList([]domain.Module{m}, testCatalog())

	var fronts []int
	for _, p := range panels {
		if p.Part == "Drawer 1 Front" || p.Part == "Drawer 2 Front" {
			fronts = append(fronts, p.LengthMM)
		}
	}
	// second drawer: (720 - 1*18) / 2 = 351
	assert.Equal(t, []int{196, 347}, fronts)
}

func TestGenerateCutList_ClampsNegativeDimensions(t *testing.T) {
	m := baseModule("Shallow")
	m.DepthMM = 10
	m.DrawerCount = 1
	m.DrawerHeightsMM = "[20]"
	panels := GenerateCutList([]domain.Module{m}, testCatalog())

	for _, p := range panels {
		assert.GreaterOrEqual(t, p.LengthMM, 0, p.Part)
		assert.GreaterOrEqual(t, p.WidthMM, 0, p.Part)
		assert.GreaterOrEqual(t, p.AreaSqmm, 0, p.Part)
	}
	assert.Equal(t, 0, panels[0].WidthMM)
	assert.Equal(t, 0, panels[0].AreaSqmm)
}

func TestGenerateCutList_FallbackDefaultsAndOverrides(t *testing.T) {
	m := baseModule("X")
	m.CarcassMaterial = "BWP Ply"
	panels := GenerateCutList([]domain.Module{m}, nil)

	assert.Equal(t, "BWP Ply", panels[0].Material)
	assert.Equal(t, 18.0, panels[0].ThicknessMM)
	back := panels[len(panels)-1]
	assert.Equal(t, DefaultBackMaterial, back.Material)
	assert.Equal(t, 6.0, back.ThicknessMM)
}

func TestGenerateCutList_FirstStandardPerCategoryWins(t *testing.T) {
	standards := append(testCatalog(), domain.Standard{Category: domain.CategoryCarcass, Material: "Marine Ply", ThicknessMM: 19})
	panels := GenerateCutList([]domain.Module{baseModule("B1")}, standards)
	assert.Equal(t, "HDHMR", panels[0].Material)
	assert.Equal(t, 564, panels[2].LengthMM)
}

func TestGenerateCutList_EmptyInput(t *testing.T) {
	assert.Empty(t, GenerateCutList(nil, testCatalog()))
}

func TestPanelAreaUsesUnroundedDimensions(t *testing.T) {
	p := newPanel(1, domain.ModuleRef{ModuleName: "B1"}, "Top", 100.4, 100.4, 18, "HDHMR", 1)
	assert.Equal(t, 100, p.LengthMM)
	assert.Equal(t, 100, p.WidthMM)
	assert.Equal(t, 10080, p.AreaSqmm)

	clamped := newPanel(2, domain.ModuleRef{ModuleName: "B1"}, "Shelf 1", -5, 300.6, 18, "HDHMR", 1)
	assert.Equal(t, 0, clamped.LengthMM)
	assert.Equal(t, 301, clamped.WidthMM)
	assert.Equal(t, 0, clamped.AreaSqmm)
}
