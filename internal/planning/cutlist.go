package planning

import (
	"fmt"
	"strings"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
)

const (
	// recessClearanceMM is added to the back panel thickness when the back
	// sits in a routed groove.
	recessClearanceMM = 6
	// recessOversizeMM is how far a recessed back panel extends into the
	// grooves, in each direction combined.
	recessOversizeMM = 12

	shelfLengthClearanceMM = 2
	shelfDepthClearanceMM  = 10

	drawerFrontClearanceMM = 4
	drawerBoxClearanceMM   = 30
	drawerWidthClearanceMM = 2
	drawerDepthClearanceMM = 60
)

// seqCounter numbers panels across one whole cut-list pass.
type seqCounter struct{ next int }

func (c *seqCounter) take() int {
	c.next++
	return c.next
}

// GenerateCutList decomposes each module into carcass, shelf, back panel
// and drawer box panels. Panels are numbered from 1 in module order, and
// the numbering does not restart between modules.
func GenerateCutList(modules []domain.Module, standards []domain.Standard) []domain.Panel {
	s := resolveSpecs(standards)
	seq := &seqCounter{}
	rows := make([]domain.Panel, 0, len(modules)*6)
	for _, m := range modules {
		rows = appendModulePanels(rows, seq, m, s)
	}
	return rows
}

func appendModulePanels(rows []domain.Panel, seq *seqCounter, m domain.Module, s specs) []domain.Panel {
	w, h, d := m.WidthMM, m.HeightMM, m.DepthMM
	t := s.carcassT
	bt := s.backT

	carcassMat := s.carcassMaterial(m)
	backMat := s.backMaterial()
	shutterMat := s.shutterMaterial(m)

	recessed := m.BackPanelType == domain.BackRecessed
	depth := d
	if recessed {
		depth = d - (bt + recessClearanceMM)
	}
	ref := domain.RefOf(m)
	add := func(part string, length, width, thickness float64, material string) {
		rows = append(rows, newPanel(seq.take(), ref, part, length, width, thickness, material, 1))
	}

	add("Left Side", h, depth, t, carcassMat)
	add("Right Side", h, depth, t, carcassMat)
	add("Top", w-2*t, depth, t, carcassMat)
	add("Bottom", w-2*t, depth, t, carcassMat)

	for i := 1; i <= m.ShelfCount; i++ {
		add(fmt.Sprintf("Shelf %d", i), w-2*t-shelfLengthClearanceMM, depth-shelfDepthClearanceMM, t, carcassMat)
	}

	if m.HasBackPanel {
		if recessed {
			add("Back Panel", h+recessOversizeMM, w-2*t+recessOversizeMM, bt, backMat)
		} else {
			add("Back Panel", h, w, bt, backMat)
		}
	}

	if m.DrawerCount > 0 {
		heights := parseDrawerHeights(m.DrawerHeightsMM)
		defaultH := (h - float64(m.ShelfCount)*t) / float64(m.DrawerCount)
		innerW := w - 2*t - drawerWidthClearanceMM
		innerD := d - drawerDepthClearanceMM

		for i := 1; i <= m.DrawerCount; i++ {
			dh := defaultH
			if i-1 < len(heights) && heights[i-1] != 0 {
				dh = heights[i-1]
			}
			label := fmt.Sprintf("Drawer %d", i)
			add(label+" Front", dh-drawerFrontClearanceMM, innerW, s.shutterT, shutterMat)
			add(label+" Back", dh-drawerBoxClearanceMM, innerW-2*t, t, carcassMat)
			add(label+" Left", dh-drawerBoxClearanceMM, innerD, t, carcassMat)
			add(label+" Right", dh-drawerBoxClearanceMM, innerD, t, carcassMat)
			add(label+" Base", innerW-2*t, innerD, bt, backMat)
		}
	}

	return rows
}

// newPanel clamps both dimensions to zero before rounding. The area is
// taken from the clamped dimensions before they are rounded.
func newPanel(seq int, ref domain.ModuleRef, part string, length, width, thickness float64, material string, qty int) domain.Panel {
	l := clampZero(length)
	w := clampZero(width)
	return domain.Panel{
		Seq:         seq,
		ModuleRef:   ref,
		Part:        part,
		LengthMM:    int(roundHalfUp(l)),
		WidthMM:     int(roundHalfUp(w)),
		ThicknessMM: thickness,
		AreaSqmm:    int(roundHalfUp(l * w)),
		Material:    material,
		Qty:         qty,
		EdgeL1:      true,
		EdgeL2:      true,
		EdgeW1:      strings.Contains(part, "Shelf"),
		EdgeW2:      false,
	}
}
