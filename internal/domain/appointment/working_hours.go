package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// WorkingHours is the recurring weekly window a barber accepts bookings in.
type WorkingHours struct {
	Start             TimeOfDay
	End               TimeOfDay
	AvailableWeekdays []time.Weekday

	// Lunch is an optional break inside [Start, End).
	Lunch *Slot
}

// DefaultWorkingHours is used when a barber never saved an expediente.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{
		Start: 9 * 60,
		End:   19 * 60,
		AvailableWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
}

func (wh WorkingHours) Validate() error {
	if wh.Start < 0 || wh.End > MinutesPerDay || wh.Start >= wh.End {
		return ErrInvalidWorkingHours
	}
	for _, d := range wh.AvailableWeekdays {
		if d < time.Sunday || d > time.Saturday {
			return ErrInvalidWorkingHours
		}
	}
	if wh.Lunch != nil {
		l := *wh.Lunch
		if l.Start >= l.End || l.Start < wh.Start || l.End > wh.End {
			return ErrInvalidWorkingHours
		}
	}
	return nil
}

func (wh WorkingHours) WorksOn(day time.Weekday) bool {
	for _, d := range wh.AvailableWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Fits reports whether s lies inside the daily window and clear of the lunch break.
func (wh WorkingHours) Fits(s Slot) bool {
	if s.Start < wh.Start || s.End > wh.End {
		return false
	}
	if wh.Lunch != nil && s.Overlaps(*wh.Lunch) {
		return false
	}
	return true
}

// WorkingHoursFromModel converts the persisted row. A nil row means defaults.
func WorkingHoursFromModel(m *models.WorkingHours) (WorkingHours, error) {
	if m == nil {
		return DefaultWorkingHours(), nil
	}

	start, err := ParseTimeOfDay(m.StartTime)
	if err != nil {
		return WorkingHours{}, ErrInvalidWorkingHours
	}
	end, err := ParseTimeOfDay(m.EndTime)
	if err != nil {
		return WorkingHours{}, ErrInvalidWorkingHours
	}

	wh := WorkingHours{
		Start:             start,
		End:               end,
		AvailableWeekdays: make([]time.Weekday, 0, len(m.AvailableWeekdays)),
	}
	for _, d := range m.AvailableWeekdays {
		wh.AvailableWeekdays = append(wh.AvailableWeekdays, time.Weekday(d))
	}

	if m.LunchStart != "" && m.LunchEnd != "" {
		ls, err := ParseTimeOfDay(m.LunchStart)
		if err != nil {
			return WorkingHours{}, ErrInvalidWorkingHours
		}
		le, err := ParseTimeOfDay(m.LunchEnd)
		if err != nil {
			return WorkingHours{}, ErrInvalidWorkingHours
		}
		wh.Lunch = &Slot{Start: ls, End: le}
	}

	return wh, wh.Validate()
}

// ToModel fills the persisted fields of m from wh.
func (wh WorkingHours) ToModel(m *models.WorkingHours) {
	m.StartTime = wh.Start.String()
	m.EndTime = wh.End.String()
	m.AvailableWeekdays = make([]int, 0, len(wh.AvailableWeekdays))
	for _, d := range wh.AvailableWeekdays {
		m.AvailableWeekdays = append(m.AvailableWeekdays, int(d))
	}
	m.LunchStart, m.LunchEnd = "", ""
	if wh.Lunch != nil {
		m.LunchStart = wh.Lunch.Start.String()
		m.LunchEnd = wh.Lunch.End.String()
	}
}
