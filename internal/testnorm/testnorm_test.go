package testnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nidhireddyjanga/rfp-ai-system/internal/model"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []model.RawTest
		want []string
	}{
		{
			name: "known names map to codes",
			raw: []model.RawTest{
				{Name: "Insulation Resistance Test"},
				{Name: "High Voltage Test"},
				{Name: "Conductor Resistance Test"},
				{Name: "Flame Retardant Test"},
			},
			want: []string{"IR_TEST", "HV_TEST", "CR_TEST", "FR_TEST"},
		},
		{
			name: "unknown name passes through",
			raw:  []model.RawTest{{Name: "Bend Test"}},
			want: []string{"Bend Test"},
		},
		{
			name: "structured entry prefers test_code",
			raw:  []model.RawTest{{TestCode: "IR_TEST", Name: "Insulation Resistance Test"}},
			want: []string{"IR_TEST"},
		},
		{
			name: "structured entry falls back to name",
			raw:  []model.RawTest{{Name: "High Voltage Test"}},
			want: []string{"HV_TEST"},
		},
		{
			name: "empty entries dropped",
			raw:  []model.RawTest{{}, {Name: "High Voltage Test"}},
			want: []string{"HV_TEST"},
		},
		{
			name: "order preserved",
			raw: []model.RawTest{
				{Name: "Flame Retardant Test"},
				{Name: "Custom Test"},
				{Name: "Insulation Resistance Test"},
			},
			want: []string{"FR_TEST", "Custom Test", "IR_TEST"},
		},
		{
			name: "nil input",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}
