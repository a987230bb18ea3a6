package planning

import "github.com/atvirokodosprendimai/cabinetry/internal/domain"

// Generate runs every generator over the same inputs. The takeoff is
// aggregated from the cut list produced in the same call.
func Generate(modules []domain.Module, standards []domain.Standard) domain.Outputs {
	cutList := GenerateCutList(modules, standards)
	return domain.Outputs{
		DoorSchedule:     GenerateDoorSchedule(modules, standards),
		CutList:          cutList,
		MaterialTakeoff:  GenerateMaterialTakeoff(cutList, standards),
		HardwareSchedule: GenerateHardwareSchedule(modules, standards),
	}
}
