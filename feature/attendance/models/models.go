package models

import (
	"fmt"
	"time"
)

// Attendance statuses.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half-day"
	StatusLeave   = "leave"
)

// Record is one delivery-staff attendance entry for a calendar day.
type Record struct {
	ID              string `json:"id,omitempty"`
	Date            string `json:"date"` // YYYY-MM-DD
	DeliveryManID   string `json:"deliveryManId"`
	DeliveryManName string `json:"deliveryManName"`
	EmployeeID      string `json:"employeeId"`
	Phone           string `json:"phone"`
	Status          string `json:"status"`
	CheckInTime     string `json:"checkInTime"`  // HH:MM
	CheckOutTime    string `json:"checkOutTime"` // HH:MM
	TotalHours      string `json:"totalHours"`   // H:MM
	Location        string `json:"location"`
	VehicleNumber   string `json:"vehicleNumber"`
	Notes           string `json:"notes"`
	Overtime        int    `json:"overtime"`
	LateMinutes     int    `json:"lateMinutes"`
	EarlyDeparture  int    `json:"earlyDeparture"`
}

// ValidStatus reports whether s is one of the known attendance statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusLeave:
		return true
	default:
		return false
	}
}

// TotalHoursBetween derives the worked duration between two HH:MM clock times
// as an H:MM string. An empty or unparsable pair yields an empty string, and
// a checkout before checkin is treated as no recorded hours.
func TotalHoursBetween(checkIn, checkOut string) string {
	if checkIn == "" || checkOut == "" {
		return ""
	}

	in, err := time.Parse("15:04", checkIn)
	if err != nil {
		return ""
	}
	out, err := time.Parse("15:04", checkOut)
	if err != nil {
		return ""
	}

	diff := out.Sub(in)
	if diff < 0 {
		return ""
	}
	hours := int(diff / time.Hour)
	minutes := int(diff/time.Minute) % 60
	return fmt.Sprintf("%d:%02d", hours, minutes)
}
