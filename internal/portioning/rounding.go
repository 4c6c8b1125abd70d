// Package portioning turns raw forecast numbers into quantities a kitchen can
// actually dispatch: unit-aware rounding and the meat portioning rule.
package portioning

import (
	"math"
	"strings"
)

// Tier boundaries for container-like units (cuba, unid).
const (
	negligibleQuantity = 0.05
	halfContainerFrom  = 0.5
	fullContainerFrom  = 0.8
	quarterStepsFrom   = 1.0
)

// RoundQuantity quantizes a raw quantity to a practical value for the unit.
//
// Weight units ("kg") keep two decimals. Container units ("cuba", "unid")
// follow a step function: below 0.05 nothing is sent, up to 0.5 the nearest
// tenth (never less than 0.1), then half a container, then a full container,
// and from 1.0 upwards the nearest quarter. Any other unit rounds to the
// nearest tenth, dropping anything below 0.05.
func RoundQuantity(raw float64, unitType string) float64 {
	if raw <= 0 || math.IsNaN(raw) {
		return 0
	}

	unit := strings.ToLower(unitType)

	switch {
	case strings.Contains(unit, "kg"):
		return roundTo(raw, 100)
	case strings.Contains(unit, "cuba"), strings.Contains(unit, "unid"):
		return roundContainer(raw)
	default:
		if raw < negligibleQuantity {
			return 0
		}
		return roundTo(raw, 10)
	}
}

func roundContainer(raw float64) float64 {
	switch {
	case raw < negligibleQuantity:
		return 0
	case raw < halfContainerFrom:
		rounded := roundTo(raw, 10)
		if rounded == 0 {
			return 0.1
		}
		return rounded
	case raw < fullContainerFrom:
		return 0.5
	case raw < quarterStepsFrom:
		return 1
	default:
		return roundTo(raw, 4)
	}
}

// roundTo rounds to the nearest 1/steps
func roundTo(v, steps float64) float64 {
	return math.Round(v*steps) / steps
}

// Round rounds v to the given number of decimals
func Round(v float64, decimals int) float64 {
	return roundTo(v, math.Pow(10, float64(decimals)))
}
