package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalHoursBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     string
	}{
		{"FullDay", "09:00", "18:00", "9:00"},
		{"WithMinutes", "09:15", "17:45", "8:30"},
		{"ShortShift", "10:00", "10:05", "0:05"},
		{"EmptyCheckIn", "", "18:00", ""},
		{"EmptyCheckOut", "09:00", "", ""},
		{"Garbage", "morning", "18:00", ""},
		{"CheckOutBeforeCheckIn", "18:00", "09:00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalHoursBetween(tt.checkIn, tt.checkOut))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusLeave} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("vacation"))
	assert.False(t, ValidStatus(""))
}
