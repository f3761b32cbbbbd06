package shift

import "fuelstation/internal/domain"

var rotation = map[domain.ShiftType]domain.ShiftType{
	domain.ShiftMorning: domain.ShiftEvening,
	domain.ShiftEvening: domain.ShiftNight,
	domain.ShiftNight:   domain.ShiftMorning,
	domain.ShiftDay:     domain.ShiftNight,
}

// NextShiftType returns the type a successor shift takes after current.
// Unknown types fall back to day.
func NextShiftType(current domain.ShiftType) domain.ShiftType {
	if next, ok := rotation[current]; ok {
		return next
	}
	return domain.ShiftDay
}
