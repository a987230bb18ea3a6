package planning

import (
	"testing"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStandardsCoverEveryPricedCategory(t *testing.T) {
	catalog := Catalog(DefaultStandards())
	for _, category := range []string{
		domain.CategoryCarcass,
		domain.CategoryShutter,
		domain.CategoryBackPanel,
		domain.CategoryCountertop,
		domain.CategoryEdgeband,
		domain.CategoryHardware,
	} {
		assert.NotEmpty(t, catalog.ByCategory(category).Material, category)
	}
}

func TestDefaultModuleWithDefaultStandards(t *testing.T) {
	m := DefaultModule()
	m.Name = "B1"
	out := Generate([]domain.Module{m}, DefaultStandards())

	require.Len(t, out.CutList, 6)
	require.Len(t, out.DoorSchedule, 1)
	assert.Equal(t, "HDHMR + Laminate", out.DoorSchedule[0].Material)

	var items []string
	for _, it := range out.HardwareSchedule {
		items = append(items, it.Item)
	}
	assert.Equal(t, []string{"Soft-Close Hinge", "Handle / Knob", "Adjustable Leg"}, items)
	assert.Greater(t, out.MaterialTakeoff.GrandTotal, 0.0)
}
