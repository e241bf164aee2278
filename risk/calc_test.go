package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestPlannedRiskAndReward(t *testing.T) {
	t.Parallel()

	pv := decimal.NewFromInt(20)

	assert.True(t, PlannedRisk(100, 95, 2, pv).Equal(decimal.NewFromInt(200)))
	assert.True(t, PlannedRisk(100, 105, 2, pv).Equal(decimal.NewFromInt(200)))
	assert.True(t, PlannedReward(100, 115, 1, pv).Equal(decimal.NewFromInt(300)))
}

func TestRR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		entry, stop, take float64
		want              float64
	}{
		{"long_two_to_one", 100, 95, 110, 2},
		{"short_three_to_one", 100, 102, 94, 3},
		{"stop_at_entry", 100, 100, 110, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, RR(tt.entry, tt.stop, tt.take), 1e-12)
		})
	}
}

func TestNewPlan(t *testing.T) {
	t.Parallel()

	pv := decimal.NewFromInt(5)

	p := NewPlan(4000, ptr(3990), ptr(4030), 1, pv)
	assert.True(t, p.Risk.Equal(decimal.NewFromInt(50)))
	assert.True(t, p.Reward.Equal(decimal.NewFromInt(150)))
	assert.InDelta(t, 3.0, p.RR, 1e-12)

	none := NewPlan(4000, nil, nil, 1, pv)
	assert.True(t, none.Risk.IsZero())
	assert.True(t, none.Reward.IsZero())
	assert.Zero(t, none.RR)
}

func TestRMultiple(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.5, RMultiple(decimal.NewFromInt(150), decimal.NewFromInt(100)), 1e-12)
	assert.InDelta(t, -1.0, RMultiple(decimal.NewFromInt(-100), decimal.NewFromInt(100)), 1e-12)
	assert.Zero(t, RMultiple(decimal.NewFromInt(100), decimal.Zero))
}
