// Package units converts the millimetre values used everywhere internally
// into display units and back.
package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	MM     = "mm"
	Inches = "inches"
	FtIn   = "ft-in"
)

const (
	mmPerInch   = 25.4
	mmPerFoot   = 304.8
	sqmmPerSqft = 92903.04
)

var Labels = map[string]string{
	MM:     "mm",
	Inches: "in",
	FtIn:   "ft-in",
}

// Valid reports whether unit is one of the supported display units.
func Valid(unit string) bool {
	_, ok := Labels[unit]
	return ok
}

func MMToInches(mm float64) float64 { return mm / mmPerInch }

func InchesToMM(in float64) float64 { return in * mmPerInch }

// MMToFtIn splits a length into whole feet and remaining inches.
func MMToFtIn(mm float64) (ft int, inches float64) {
	total := mm / mmPerInch
	ft = int(math.Floor(total / 12))
	return ft, math.Mod(total, 12)
}

func FtInToMM(ft int, inches float64) float64 {
	return (float64(ft)*12 + inches) * mmPerInch
}

func SqmmToSqft(sqmm float64) float64 { return sqmm / sqmmPerSqft }

func RunningFeet(mm float64) float64 { return mm / mmPerFoot }

// FormatDimension renders a millimetre length in the requested unit.
// Unknown units fall back to millimetres.
func FormatDimension(mm float64, unit string) string {
	switch unit {
	case Inches:
		return fmt.Sprintf("%.2f in", MMToInches(mm))
	case FtIn:
		ft, in := MMToFtIn(mm)
		return fmt.Sprintf("%d'-%.1f\"", ft, in)
	default:
		return fmt.Sprintf("%d mm", int64(math.Floor(mm+0.5)))
	}
}

// FormatArea renders square millimetres as m² for the metric unit and as
// square feet otherwise.
func FormatArea(sqmm float64, unit string) string {
	if unit == MM || unit == "" {
		return fmt.Sprintf("%.4f m²", sqmm/1e6)
	}
	return fmt.Sprintf("%.2f sqft", SqmmToSqft(sqmm))
}

var ftInPattern = regexp.MustCompile(`(\d+)['\-\s]+(\d+\.?\d*)`)

// ParseDimension reads a user-entered length in the given unit and returns
// millimetres. Unparseable input yields 0. The ft-in unit accepts 2'6",
// 2-6 and "2 6"; a bare number is read as inches.
func ParseDimension(value, unit string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	switch unit {
	case Inches:
		return InchesToMM(leadingFloat(s))
	case FtIn:
		if m := ftInPattern.FindStringSubmatch(s); m != nil {
			ft, _ := strconv.Atoi(m[1])
			in, _ := strconv.ParseFloat(m[2], 64)
			return FtInToMM(ft, in)
		}
		return InchesToMM(leadingFloat(s))
	default:
		return leadingFloat(s)
	}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// leadingFloat parses the numeric prefix of s, ignoring trailing text
// such as a unit suffix.
func leadingFloat(s string) float64 {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
