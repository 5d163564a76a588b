package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Slot is a half-open interval [Start, End) within one day.
type Slot struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func NewSlot(start TimeOfDay, durationMinutes int) Slot {
	return Slot{Start: start, End: start.Add(durationMinutes)}
}

// Overlaps is true when both intervals share at least one instant.
// Back-to-back slots do not overlap.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Slot) Duration() int { return int(s.End - s.Start) }

// Booking is the scheduling view of an appointment.
type Booking struct {
	ID              uint
	BarberID        uint
	Date            time.Time
	Start           TimeOfDay
	DurationMinutes int
	Status          Status
}

func (b Booking) Slot() Slot { return NewSlot(b.Start, b.DurationMinutes) }

func (b Booking) End() TimeOfDay { return b.Start.Add(b.DurationMinutes) }

// BookingFromModel projects a stored appointment onto the day it starts in loc.
func BookingFromModel(ap models.Appointment, loc *time.Location) Booking {
	start := ap.StartTime.In(loc)

	duration := ap.DurationMin
	if duration <= 0 && !ap.EndTime.IsZero() {
		duration = int(ap.EndTime.Sub(ap.StartTime) / time.Minute)
	}

	status, err := ParseStatus(ap.Status)
	if err != nil {
		status = Status(ap.Status)
	}

	return Booking{
		ID:              ap.ID,
		BarberID:        ap.BarberID,
		Date:            DateOf(start),
		Start:           TimeOfDayOf(start),
		DurationMinutes: duration,
		Status:          status,
	}
}

func BookingsFromModels(aps []models.Appointment, loc *time.Location) []Booking {
	out := make([]Booking, 0, len(aps))
	for _, ap := range aps {
		out = append(out, BookingFromModel(ap, loc))
	}
	return out
}

// ===============================
// Calculator
// ===============================

const DefaultStepMinutes = 30

type CalculatorConfig struct {
	StepMinutes int
}

// Calculator derives bookable start times. It holds no state besides its
// configuration and is safe for concurrent use.
type Calculator struct {
	step int
}

func NewCalculator(cfg CalculatorConfig) *Calculator {
	step := cfg.StepMinutes
	if step <= 0 {
		step = DefaultStepMinutes
	}
	return &Calculator{step: step}
}

func (c *Calculator) Step() int { return c.step }

// WithStep returns a calculator using step, or c itself when step is not positive.
func (c *Calculator) WithStep(step int) *Calculator {
	if step <= 0 || step == c.step {
		return c
	}
	return &Calculator{step: step}
}

// AvailableSlots walks the working window of date in fixed steps and returns,
// in ascending order, every candidate of durationMinutes that fits the window
// and overlaps no blocking booking. A day off yields an empty, non-nil slice.
func (c *Calculator) AvailableSlots(
	wh WorkingHours,
	date time.Time,
	existing []Booking,
	durationMinutes int,
) ([]Slot, error) {

	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if err := wh.Validate(); err != nil {
		return nil, err
	}

	slots := []Slot{}
	if !wh.WorksOn(date.Weekday()) {
		return slots, nil
	}

	busy := busyIntervals(date, existing)

	for start := wh.Start; start.Add(durationMinutes) <= wh.End; start = start.Add(c.step) {
		candidate := NewSlot(start, durationMinutes)
		if !wh.Fits(candidate) || overlapsAny(candidate, busy) {
			continue
		}
		slots = append(slots, candidate)
	}

	return slots, nil
}

// CheckBooking validates a concrete booking request against the same rules
// AvailableSlots applies, without requiring step alignment.
func (c *Calculator) CheckBooking(
	wh WorkingHours,
	date time.Time,
	existing []Booking,
	start TimeOfDay,
	durationMinutes int,
) error {

	if durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if err := wh.Validate(); err != nil {
		return err
	}

	candidate := NewSlot(start, durationMinutes)
	if !wh.WorksOn(date.Weekday()) || !wh.Fits(candidate) {
		return ErrOutsideWorkingHours
	}
	if overlapsAny(candidate, busyIntervals(date, existing)) {
		return ErrTimeConflict
	}
	return nil
}

func busyIntervals(date time.Time, existing []Booking) []Slot {
	busy := make([]Slot, 0, len(existing))
	for _, b := range existing {
		if !b.Status.Blocks() || b.DurationMinutes <= 0 {
			continue
		}
		if !b.Date.IsZero() && !SameDay(b.Date, date) {
			continue
		}
		busy = append(busy, b.Slot())
	}
	return busy
}

func overlapsAny(s Slot, busy []Slot) bool {
	for _, b := range busy {
		if s.Overlaps(b) {
			return true
		}
	}
	return false
}

// DropBefore keeps the slots starting at or after earliest.
func DropBefore(slots []Slot, earliest TimeOfDay) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start >= earliest {
			out = append(out, s)
		}
	}
	return out
}

// StartTimes renders the slot starts as "HH:mm".
func StartTimes(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.String())
	}
	return out
}
