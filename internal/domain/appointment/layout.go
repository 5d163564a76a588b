package appointment

import (
	"sort"
	"time"
)

const (
	DefaultPixelsPerMinute  = 2.0
	DefaultMinBoxHeight     = 60.0
	DefaultActionsMinHeight = 100.0
)

type LayoutConfig struct {
	PixelsPerMinute  float64
	MinHeight        float64
	ActionsMinHeight float64
}

func (c LayoutConfig) withDefaults() LayoutConfig {
	if c.PixelsPerMinute <= 0 {
		c.PixelsPerMinute = DefaultPixelsPerMinute
	}
	if c.MinHeight <= 0 {
		c.MinHeight = DefaultMinBoxHeight
	}
	if c.ActionsMinHeight <= 0 {
		c.ActionsMinHeight = DefaultActionsMinHeight
	}
	return c
}

// Window is the rendered part of every day column. It is independent of any
// barber's working hours.
type Window struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (w Window) Validate() error {
	if w.Start < 0 || w.End > MinutesPerDay || w.Start >= w.End {
		return ErrInvalidWindow
	}
	return nil
}

// Cover widens w so the whole working window of wh is visible.
func (w Window) Cover(wh WorkingHours) Window {
	if wh.Start < w.Start {
		w.Start = wh.Start
	}
	if wh.End > w.End {
		w.End = wh.End
	}
	return w
}

func (w Window) Height(pixelsPerMinute float64) float64 {
	return float64(w.End-w.Start) * pixelsPerMinute
}

type LayoutBox struct {
	Booking     Booking
	Column      int
	TopOffset   float64
	Height      float64
	ShowActions bool
	Actions     []Action
}

type DayColumn struct {
	Index int
	Date  time.Time
	Boxes []LayoutBox
}

type GridLine struct {
	Label  string  `json:"label"`
	Offset float64 `json:"offset"`
}

// ===============================
// Engine
// ===============================

type LayoutEngine struct {
	cfg LayoutConfig
}

func NewLayoutEngine(cfg LayoutConfig) *LayoutEngine {
	return &LayoutEngine{cfg: cfg.withDefaults()}
}

func (e *LayoutEngine) Config() LayoutConfig { return e.cfg }

type dayKey struct {
	y int
	m time.Month
	d int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// Layout groups bookings into one column per visible day and positions each
// box relative to window.Start. Bookings on days outside visibleDays are
// dropped. Boxes overlapping in time are not split into sub-columns.
// A non-positive pixelsPerMinute falls back to the configured scale.
func (e *LayoutEngine) Layout(
	bookings []Booking,
	visibleDays []time.Time,
	window Window,
	pixelsPerMinute float64,
) ([]DayColumn, error) {

	if len(visibleDays) == 0 {
		return nil, ErrEmptyDayRange
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	ppm := pixelsPerMinute
	if ppm <= 0 {
		ppm = e.cfg.PixelsPerMinute
	}

	columns := make([]DayColumn, len(visibleDays))
	index := make(map[dayKey]int, len(visibleDays))
	for i, d := range visibleDays {
		columns[i] = DayColumn{Index: i, Date: DateOf(d), Boxes: []LayoutBox{}}
		if _, seen := index[keyOf(d)]; !seen {
			index[keyOf(d)] = i
		}
	}

	for _, b := range bookings {
		col, ok := index[keyOf(b.Date)]
		if !ok {
			continue
		}
		columns[col].Boxes = append(columns[col].Boxes, e.box(b, col, window, ppm))
	}

	for i := range columns {
		boxes := columns[i].Boxes
		sort.SliceStable(boxes, func(a, b int) bool {
			return boxes[a].Booking.Start < boxes[b].Booking.Start
		})
	}

	return columns, nil
}

func (e *LayoutEngine) box(b Booking, column int, window Window, ppm float64) LayoutBox {
	top := float64(b.Start-window.Start) * ppm
	if top < 0 {
		top = 0
	}

	raw := float64(b.DurationMinutes) * ppm
	height := raw
	if height < e.cfg.MinHeight {
		height = e.cfg.MinHeight
	}

	return LayoutBox{
		Booking:     b,
		Column:      column,
		TopOffset:   top,
		Height:      height,
		ShowActions: raw >= e.cfg.ActionsMinHeight,
		Actions:     b.Status.Actions(),
	}
}

// WeekDays returns n consecutive calendar days starting at anchor's day.
func WeekDays(anchor time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	first := DateOf(anchor)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// GridLines returns one labelled line per stepMinutes boundary inside window,
// both ends included.
func GridLines(window Window, stepMinutes int, pixelsPerMinute float64) []GridLine {
	if stepMinutes <= 0 {
		stepMinutes = 60
	}
	step := TimeOfDay(stepMinutes)

	first := window.Start
	if rem := first % step; rem != 0 {
		first += step - rem
	}

	lines := []GridLine{}
	for t := first; t <= window.End; t += step {
		lines = append(lines, GridLine{
			Label:  t.String(),
			Offset: float64(t-window.Start) * pixelsPerMinute,
		})
	}
	return lines
}
