package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		name      string
		projected float64
		budget    float64
		wantLevel string
		wantScore float64
	}{
		{"well under budget", 3000, 10000, "Low", 30},
		{"at medium boundary", 7000, 10000, "Low", 70},
		{"just over medium boundary", 7001, 10000, "Medium", 70.01},
		{"at high boundary", 9000, 10000, "Medium", 90},
		{"over high boundary", 9500, 10000, "High", 95},
		{"over budget entirely", 15000, 10000, "High", 150},
		{"no budget but spending", 5000, 0, "Medium", 0},
		{"no budget no spending", 0, 0, "Low", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, score := RiskLevel(tt.projected, tt.budget)
			assert.Equal(t, tt.wantLevel, level)
			assert.InDelta(t, tt.wantScore, score, 0.001)
		})
	}
}

func TestMicroHabits(t *testing.T) {
	t.Run("food heavy spending", func(t *testing.T) {
		habits := MicroHabits(map[string]float64{"Food": 5000}, 10000)
		assert.Contains(t, habits, "Cook twice this week instead of ordering in.")
	})

	t.Run("entertainment and shopping", func(t *testing.T) {
		habits := MicroHabits(map[string]float64{"Entertainment": 1500, "Shopping": 2500}, 0)
		assert.Len(t, habits, 2)
	})

	t.Run("food rule needs a budget", func(t *testing.T) {
		habits := MicroHabits(map[string]float64{"Food": 99999}, 0)
		assert.Len(t, habits, 1)
		assert.Contains(t, habits[0], "micro-habits")
	})

	t.Run("clean month gets the default nudge", func(t *testing.T) {
		habits := MicroHabits(map[string]float64{}, 10000)
		assert.Len(t, habits, 1)
		assert.Contains(t, habits[0], "savings goal")
	})
}
