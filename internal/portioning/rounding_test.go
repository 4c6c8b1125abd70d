package portioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundQuantity(t *testing.T) {
	testCases := []struct {
		name     string
		raw      float64
		unit     string
		expected float64
	}{
		{"kg two decimals", 1.23456, "kg", 1.23},
		{"kg is case insensitive", 0.019, "KG", 0.02},
		{"cuba negligible", 0.04, "cuba", 0},
		{"cuba lower boundary", 0.05, "cuba", 0.1},
		{"cuba nearest tenth", 0.27, "cuba", 0.3},
		{"cuba just below half", 0.49, "cuba", 0.5},
		{"cuba half container", 0.5, "cuba", 0.5},
		{"cuba upper half tier", 0.79, "cuba", 0.5},
		{"cuba full container", 0.8, "cuba", 1},
		{"cuba near one", 0.92, "cuba", 1},
		{"cuba quarter steps", 2.9625, "cuba", 3},
		{"cuba quarter down", 1.1, "cuba", 1},
		{"cuba quarter up", 1.13, "cuba", 1.25},
		{"unid uses container tiers", 0.65, "unid", 0.5},
		{"unidades plural", 0.85, "Unidades", 1},
		{"other negligible", 0.049, "litros", 0},
		{"other nearest tenth", 0.27, "litros", 0.3},
		{"other large value", 12.34, "bandeja", 12.3},
		{"empty unit", 0.66, "", 0.7},
		{"zero", 0, "cuba", 0},
		{"negative is clamped", -3, "kg", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, RoundQuantity(tc.raw, tc.unit), 1e-9)
		})
	}
}

func TestRoundQuantity_Idempotent(t *testing.T) {
	units := []string{"kg", "cuba", "unid", "litros"}

	for _, unit := range units {
		for i := 0; i <= 5000; i++ {
			x := float64(i) * 0.0013
			once := RoundQuantity(x, unit)
			twice := RoundQuantity(once, unit)
			if once != twice {
				t.Fatalf("RoundQuantity not idempotent for unit %q at %v: %v then %v", unit, x, once, twice)
			}
		}
	}
}

func TestRoundQuantity_NeverNegative(t *testing.T) {
	for _, unit := range []string{"kg", "cuba", "other"} {
		for _, raw := range []float64{-10, -0.01, 0, 0.001} {
			assert.GreaterOrEqual(t, RoundQuantity(raw, unit), 0.0)
		}
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.0198, Round(0.019812, 4))
	assert.Equal(t, 12.35, Round(12.345001, 2))
	assert.Equal(t, 3.0, Round(2.6, 0))
}
