package planning

import (
	"encoding/json"
	"testing"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitchen() []domain.Module {
	sink := baseModule("Sink Base")
	sink.DoorCount = 2
	sink.ShelfCount = 0
	sink.HardwareJSON = `{"Sink Tray": 1}`

	drawers := baseModule("Drawer Stack")
	drawers.ModuleType = domain.ModuleTypeDrawer
	drawers.DoorCount = 0
	drawers.DrawerCount = 3
	drawers.DrawerHeightsMM = "[180, 240]"

	tall := baseModule("Pantry")
	tall.ModuleType = domain.ModuleTypeTall
	tall.HeightMM = 2100
	tall.DoorCount = 2
	tall.ShelfCount = 5
	tall.ShelfType = domain.ShelfAdjustable

	return []domain.Module{sink, drawers, tall}
}

func TestGenerate_IsIdempotent(t *testing.T) {
	first := Generate(kitchen(), testCatalog())
	second := Generate(kitchen(), testCatalog())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("outputs differ between runs (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	assert.Equal(t, 1, second.CutList[0].Seq, "sequence restarts per invocation")
}

func TestGenerate_TakeoffMatchesCutList(t *testing.T) {
	out := Generate(kitchen(), testCatalog())

	want := GenerateMaterialTakeoff(out.CutList, testCatalog())
	if diff := cmp.Diff(want, out.MaterialTakeoff); diff != "" {
		t.Fatalf("takeoff mismatch (-want +got):\n%s", diff)
	}

	var panels int
	for _, g := range out.MaterialTakeoff.Items {
		panels += g.PanelCount
	}
	assert.Equal(t, len(out.CutList), panels)
	assert.Len(t, out.DoorSchedule, 4)
}

func TestGenerate_DoesNotMutateInputs(t *testing.T) {
	modules := kitchen()
	standards := testCatalog()
	before := cmp.Diff(kitchen(), modules) + cmp.Diff(testCatalog(), standards)
	require.Empty(t, before)

	Generate(modules, standards)

	if diff := cmp.Diff(kitchen(), modules); diff != "" {
		t.Fatalf("modules mutated:\n%s", diff)
	}
	if diff := cmp.Diff(testCatalog(), standards); diff != "" {
		t.Fatalf("standards mutated:\n%s", diff)
	}
}
