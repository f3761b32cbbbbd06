package shift_test

import (
	"testing"

	"fuelstation/internal/domain"
	"fuelstation/internal/shift"

	"github.com/stretchr/testify/assert"
)

func TestNextShiftType(t *testing.T) {
	tests := []struct {
		current domain.ShiftType
		want    domain.ShiftType
	}{
		{domain.ShiftMorning, domain.ShiftEvening},
		{domain.ShiftEvening, domain.ShiftNight},
		{domain.ShiftNight, domain.ShiftMorning},
		{domain.ShiftDay, domain.ShiftNight},
		{"", domain.ShiftDay},
		{"split", domain.ShiftDay},
	}

	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			assert.Equal(t, tt.want, shift.NextShiftType(tt.current))
		})
	}
}
