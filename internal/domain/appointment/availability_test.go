package appointment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-19 is a Monday.
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func morningHours() WorkingHours {
	return WorkingHours{
		Start:             MustTimeOfDay("09:00"),
		End:               MustTimeOfDay("12:00"),
		AvailableWeekdays: []time.Weekday{time.Monday, time.Tuesday},
	}
}

func booking(start string, duration int, status Status) Booking {
	return Booking{
		BarberID:        1,
		Date:            monday,
		Start:           MustTimeOfDay(start),
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{StepMinutes: 30})

	slots, err := calc.AvailableSlots(morningHours(), monday, nil, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, StartTimes(slots))
	assert.Equal(t, MustTimeOfDay("12:00"), slots[len(slots)-1].End)
}

func TestAvailableSlots_SkipsOverlappingBooking(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	existing := []Booking{booking("10:00", 30, StatusScheduled)}
	slots, err := calc.AvailableSlots(morningHours(), monday, existing, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, StartTimes(slots))
}

func TestAvailableSlots_DayOffIsEmptyNotError(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	sunday := monday.AddDate(0, 0, -1)
	slots, err := calc.AvailableSlots(morningHours(), sunday, nil, 30)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableSlots_CanceledNeverBlocks(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	existing := []Booking{booking("10:00", 60, StatusCanceled)}
	slots, err := calc.AvailableSlots(morningHours(), monday, existing, 60)
	require.NoError(t, err)
	assert.Contains(t, StartTimes(slots), "10:00")
}

func TestAvailableSlots_OtherStatusesBlock(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	for _, st := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted} {
		existing := []Booking{booking("10:00", 60, st)}
		slots, err := calc.AvailableSlots(morningHours(), monday, existing, 60)
		require.NoError(t, err)
		assert.NotContains(t, StartTimes(slots), "10:00", st)
		assert.NotContains(t, StartTimes(slots), "09:30", st)
	}
}

func TestAvailableSlots_BackToBackAllowed(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	existing := []Booking{booking("09:00", 60, StatusConfirmed)}
	slots, err := calc.AvailableSlots(morningHours(), monday, existing, 30)
	require.NoError(t, err)
	assert.Equal(t, "10:00", slots[0].Start.String())
}

func TestAvailableSlots_IgnoresBookingsOnOtherDays(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	other := booking("09:00", 180, StatusScheduled)
	other.Date = monday.AddDate(0, 0, 1)

	slots, err := calc.AvailableSlots(morningHours(), monday, []Booking{other}, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 5)
}

func TestAvailableSlots_LunchBreak(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	wh := morningHours()
	wh.Lunch = &Slot{Start: MustTimeOfDay("10:00"), End: MustTimeOfDay("11:00")}

	slots, err := calc.AvailableSlots(wh, monday, nil, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, StartTimes(slots))
}

func TestAvailableSlots_CustomStep(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{StepMinutes: 45})

	slots, err := calc.AvailableSlots(morningHours(), monday, nil, 45)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:45", "10:30", "11:15"}, StartTimes(slots))
	assert.Equal(t, 45, calc.Step())
	assert.Equal(t, 15, calc.WithStep(15).Step())
	assert.Same(t, calc, calc.WithStep(0))
}

func TestAvailableSlots_Errors(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})

	_, err := calc.AvailableSlots(morningHours(), monday, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = calc.AvailableSlots(morningHours(), monday, nil, -30)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	bad := morningHours()
	bad.Start, bad.End = bad.End, bad.Start
	_, err = calc.AvailableSlots(bad, monday, nil, 30)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)

	equal := morningHours()
	equal.End = equal.Start
	_, err = calc.AvailableSlots(equal, monday, nil, 30)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestCheckBooking(t *testing.T) {
	calc := NewCalculator(CalculatorConfig{})
	existing := []Booking{booking("10:00", 30, StatusScheduled)}

	assert.NoError(t, calc.CheckBooking(morningHours(), monday, existing, MustTimeOfDay("10:30"), 90))
	assert.NoError(t, calc.CheckBooking(morningHours(), monday, existing, MustTimeOfDay("09:15"), 45))
	assert.ErrorIs(t, calc.CheckBooking(morningHours(), monday, existing, MustTimeOfDay("09:45"), 30), ErrTimeConflict)
	assert.ErrorIs(t, calc.CheckBooking(morningHours(), monday, existing, MustTimeOfDay("11:30"), 60), ErrOutsideWorkingHours)
	assert.ErrorIs(t, calc.CheckBooking(morningHours(), monday.AddDate(0, 0, 5), nil, MustTimeOfDay("09:00"), 30), ErrOutsideWorkingHours)
}

func TestDropBefore(t *testing.T) {
	slots := []Slot{NewSlot(540, 30), NewSlot(570, 30), NewSlot(600, 30)}
	assert.Equal(t, []string{"09:30", "10:00"}, StartTimes(DropBefore(slots, 560)))
}

// Randomised check of the slot guarantees over generated inputs.
func TestAvailableSlots_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCanceled}

	for i := 0; i < 500; i++ {
		start := TimeOfDay(rng.Intn(12*60/15) * 15)
		end := start + TimeOfDay(30+rng.Intn(10*60/15)*15)
		if end > MinutesPerDay {
			end = MinutesPerDay
		}

		wh := WorkingHours{Start: start, End: end}
		for d := time.Sunday; d <= time.Saturday; d++ {
			if rng.Intn(2) == 0 {
				wh.AvailableWeekdays = append(wh.AvailableWeekdays, d)
			}
		}

		date := monday.AddDate(0, 0, rng.Intn(7))

		var existing []Booking
		for j := rng.Intn(6); j > 0; j-- {
			existing = append(existing, Booking{
				Date:            date,
				Start:           start + TimeOfDay(rng.Intn(int(end-start))),
				DurationMinutes: 5 + rng.Intn(90),
				Status:          statuses[rng.Intn(len(statuses))],
			})
		}

		duration := 5 + rng.Intn(120)
		calc := NewCalculator(CalculatorConfig{StepMinutes: []int{5, 10, 15, 30, 60}[rng.Intn(5)]})

		slots, err := calc.AvailableSlots(wh, date, existing, duration)
		require.NoError(t, err)

		again, err := calc.AvailableSlots(wh, date, existing, duration)
		require.NoError(t, err)
		require.Equal(t, slots, again)

		if !wh.WorksOn(date.Weekday()) {
			require.Empty(t, slots)
			continue
		}

		for k, s := range slots {
			require.GreaterOrEqual(t, s.Start, wh.Start)
			require.LessOrEqual(t, s.Start.Add(duration), wh.End)
			require.Equal(t, duration, s.Duration())
			if k > 0 {
				require.Greater(t, s.Start, slots[k-1].Start)
			}
			for _, b := range existing {
				if b.Status == StatusCanceled {
					continue
				}
				require.False(t, s.Overlaps(b.Slot()), "slot %s overlaps booking at %s", s.Start, b.Start)
			}
		}
	}
}
