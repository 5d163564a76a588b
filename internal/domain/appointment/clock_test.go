package appointment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(570), v)

	v, err = ParseTimeOfDay("18:45:00")
	require.NoError(t, err)
	assert.Equal(t, "18:45", v.String())

	for _, bad := range []string{"", "25:00", "9h", "12:60"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

func TestTimeOfDayOn(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	got := MustTimeOfDay("14:15").On(time.Date(2026, 10, 19, 23, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 10, 19, 14, 15, 0, 0, loc), got)
	assert.Equal(t, TimeOfDay(855), TimeOfDayOf(got))
}

func TestSlotJSON(t *testing.T) {
	b, err := json.Marshal(NewSlot(MustTimeOfDay("10:00"), 45))
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10:00","end":"10:45"}`, string(b))
}

func TestBookingFromModel(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	start := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)

	b := BookingFromModel(models.Appointment{
		ID:        7,
		BarberID:  3,
		StartTime: start,
		EndTime:   start.Add(50 * time.Minute),
		Status:    "confirmado",
	}, loc)

	assert.Equal(t, "10:00", b.Start.String())
	assert.Equal(t, 50, b.DurationMinutes)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.True(t, SameDay(b.Date, time.Date(2026, 10, 19, 0, 0, 0, 0, loc)))
}

func TestWorkingHoursFromModel(t *testing.T) {
	wh, err := WorkingHoursFromModel(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkingHours(), wh)
	assert.False(t, wh.WorksOn(time.Sunday))

	m := &models.WorkingHours{
		StartTime:         "08:00",
		EndTime:           "17:00",
		AvailableWeekdays: []int{1, 3, 5},
		LunchStart:        "12:00",
		LunchEnd:          "13:00",
	}
	wh, err = WorkingHoursFromModel(m)
	require.NoError(t, err)
	assert.True(t, wh.WorksOn(time.Wednesday))
	require.NotNil(t, wh.Lunch)
	assert.False(t, wh.Fits(NewSlot(MustTimeOfDay("11:30"), 60)))

	var back models.WorkingHours
	wh.ToModel(&back)
	assert.Equal(t, m.StartTime, back.StartTime)
	assert.Equal(t, []int{1, 3, 5}, []int(back.AvailableWeekdays))
	assert.Equal(t, "13:00", back.LunchEnd)

	m.LunchEnd = "18:00"
	_, err = WorkingHoursFromModel(m)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)

	m.LunchStart, m.LunchEnd = "", ""
	m.AvailableWeekdays = []int{7}
	_, err = WorkingHoursFromModel(m)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestServiceSelection(t *testing.T) {
	sel := SelectionFromProducts([]models.BarberProduct{
		{ID: 1, Name: "Corte", DurationMin: 30, Price: 45},
		{ID: 2, Name: "Barba", DurationMin: 20, Price: 30.5},
	})
	require.NoError(t, sel.Validate())
	assert.Equal(t, 50, sel.TotalDuration())
	assert.InDelta(t, 75.5, sel.TotalPrice(), 0.001)

	assert.ErrorIs(t, ServiceSelection{}.Validate(), ErrNoServicesSelected)
	assert.ErrorIs(t, ServiceSelection{{DurationMinutes: 0}}.Validate(), ErrInvalidDuration)
	assert.ErrorIs(t, ServiceSelection{{DurationMinutes: 10, Price: -1}}.Validate(), ErrInvalidPrice)
}
