// Package planning turns cabinet modules and a standards catalog into a
// cut list, door schedule, hardware schedule and material takeoff.
//
// Every function in this package is a pure computation over its inputs:
// no I/O, no shared state, safe to call concurrently. Malformed or missing
// optional input never produces an error; it degrades to the defaults
// below.
package planning

import (
	"math"
	"strings"

	"github.com/atvirokodosprendimai/cabinetry/internal/domain"
)

const (
	DefaultCarcassThicknessMM = 18
	DefaultBackThicknessMM    = 6
	DefaultShutterThicknessMM = 18
	DefaultEdgeBandMM         = 1

	DefaultCarcassMaterial  = "HDHMR 18mm"
	DefaultBackMaterial     = "MR Ply 6mm"
	DefaultShutterMaterial  = "Ply + Laminate"
	DefaultShutterFinish    = "Laminate"
	DefaultEdgeBandMaterial = "PVC Edge Band"
)

// Catalog is an ordered standards list. Lookups take the first match.
type Catalog []domain.Standard

// ByCategory returns the first standard of the category, or the zero
// Standard when the catalog has none.
func (c Catalog) ByCategory(category string) domain.Standard {
	for _, s := range c {
		if s.Category == category {
			return s
		}
	}
	return domain.Standard{}
}

// ForMaterial returns the first standard, of any category, whose material
// and thickness both match.
func (c Catalog) ForMaterial(material string, thicknessMM float64) (domain.Standard, bool) {
	for _, s := range c {
		if s.Material == material && s.ThicknessMM == thicknessMM {
			return s, true
		}
	}
	return domain.Standard{}, false
}

// resolveString applies module override, then catalog value, then the
// built-in default. Blank strings count as absent.
func resolveString(override, standard, fallback string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if strings.TrimSpace(standard) != "" {
		return standard
	}
	return fallback
}

// resolveNumber treats zero as absent, matching how the catalog leaves
// unset numeric columns.
func resolveNumber(standard, fallback float64) float64 {
	if standard != 0 {
		return standard
	}
	return fallback
}

// specs is the per-call resolution of the categories every generator
// reads. It is built once per invocation and never shared.
type specs struct {
	carcass  domain.Standard
	back     domain.Standard
	shutter  domain.Standard
	hardware domain.Standard
	edgeband domain.Standard

	carcassT float64
	backT    float64
	shutterT float64
}

func resolveSpecs(standards []domain.Standard) specs {
	c := Catalog(standards)
	s := specs{
		carcass:  c.ByCategory(domain.CategoryCarcass),
		back:     c.ByCategory(domain.CategoryBackPanel),
		shutter:  c.ByCategory(domain.CategoryShutter),
		hardware: c.ByCategory(domain.CategoryHardware),
		edgeband: c.ByCategory(domain.CategoryEdgeband),
	}
	s.carcassT = resolveNumber(s.carcass.ThicknessMM, DefaultCarcassThicknessMM)
	s.backT = resolveNumber(s.back.ThicknessMM, DefaultBackThicknessMM)
	s.shutterT = resolveNumber(s.shutter.ThicknessMM, DefaultShutterThicknessMM)
	return s
}

func (s specs) carcassMaterial(m domain.Module) string {
	return resolveString(m.CarcassMaterial, s.carcass.Material, DefaultCarcassMaterial)
}

// The back panel has no per-module override.
func (s specs) backMaterial() string {
	return resolveString("", s.back.Material, DefaultBackMaterial)
}

func (s specs) shutterMaterial(m domain.Module) string {
	return resolveString(m.ShutterMaterial, s.shutter.Material, DefaultShutterMaterial)
}

func (s specs) shutterFinish() string {
	return resolveString("", s.shutter.Finish, DefaultShutterFinish)
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func round2(v float64) float64 {
	return roundHalfUp(v*100) / 100
}

func clampZero(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
