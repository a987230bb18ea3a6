package planning

import (
	"fmt"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
)

const (
	// hingedGapMM is the total gap reserved across the module, split
	// between the doors horizontally and taken once vertically.
	hingedGapMM      = 4
	slidingOverlapMM = 20
)

// GenerateDoorSchedule emits one row per door leaf. Modules without doors
// are skipped.
func GenerateDoorSchedule(modules []domain.Module, standards []domain.Standard) []domain.DoorSpec {
	s := resolveSpecs(standards)
	thickness := s.shutterT
	finish := s.shutterFinish()

	rows := make([]domain.DoorSpec, 0)
	for _, m := range modules {
		if m.DoorCount <= 0 {
			continue
		}
		n := float64(m.DoorCount)

		var doorW, doorH float64
		if m.DoorOpenType == domain.OpenSliding {
			doorW = m.WidthMM/n + slidingOverlapMM
			doorH = m.HeightMM
		} else {
			doorW = (m.WidthMM - hingedGapMM) / n
			doorH = m.HeightMM - hingedGapMM
		}
		doorW = clampZero(doorW)
		doorH = clampZero(doorH)

		material := s.shutterMaterial(m)
		area := int(roundHalfUp(doorW * doorH))
		ref := domain.RefOf(m)

		for i := 1; i <= m.DoorCount; i++ {
			rows = append(rows, domain.DoorSpec{
				ModuleRef:   ref,
				DoorNo:      fmt.Sprintf("%s-D%d", m.Name, i),
				DoorStyle:   m.DoorStyle,
				OpenType:    m.DoorOpenType,
				WidthMM:     round2(doorW),
				HeightMM:    round2(doorH),
				ThicknessMM: thickness,
				AreaSqmm:    area,
				Material:    material,
				Finish:      finish,
			})
		}
	}
	return rows
}
