package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const maxVisibleDays = 31

// ScheduleSettings are the rendering defaults of the week view.
type ScheduleSettings struct {
	Window          domain.Window
	VisibleDays     int
	GridStepMinutes int
}

type WeekScheduleInput struct {
	BarberID        uint
	From            string // "" = hoje
	Days            int    // 0 = padrão
	PixelsPerMinute float64
}

type GetWeekSchedule struct {
	repo     domain.Repository
	engine   *domain.LayoutEngine
	settings ScheduleSettings
	clock    Clock
}

func NewGetWeekSchedule(
	repo domain.Repository,
	engine *domain.LayoutEngine,
	settings ScheduleSettings,
	clock Clock,
) *GetWeekSchedule {
	if settings.VisibleDays <= 0 {
		settings.VisibleDays = 7
	}
	if settings.GridStepMinutes <= 0 {
		settings.GridStepMinutes = 60
	}
	return &GetWeekSchedule{
		repo:     repo,
		engine:   engine,
		settings: settings,
		clock:    clock,
	}
}

func (uc *GetWeekSchedule) Execute(
	ctx context.Context,
	in WeekScheduleInput,
) (*dto.WeekScheduleDTO, error) {

	// --------------------------------------------------
	// 1️⃣ Intervalo visível
	// --------------------------------------------------
	from := domain.DateOf(uc.clock.now())
	if in.From != "" {
		d, err := uc.clock.parseDate(in.From)
		if err != nil {
			return nil, err
		}
		from = d
	}

	n := in.Days
	if n <= 0 {
		n = uc.settings.VisibleDays
	}
	if n > maxVisibleDays {
		n = maxVisibleDays
	}
	days := domain.WeekDays(from, n)

	ppm := in.PixelsPerMinute
	if ppm <= 0 {
		ppm = uc.engine.Config().PixelsPerMinute
	}

	// --------------------------------------------------
	// 2️⃣ Janela: padrão, ampliada pelo expediente
	// --------------------------------------------------
	wh, err := workingHoursOf(ctx, uc.repo, in.BarberID)
	if err != nil {
		return nil, err
	}
	window := uc.settings.Window.Cover(wh)

	// --------------------------------------------------
	// 3️⃣ Agendamentos do período
	// --------------------------------------------------
	end := from.AddDate(0, 0, n)
	aps, err := uc.repo.ListAppointmentsForPeriod(ctx, in.BarberID, from, end)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Appointment, len(aps))
	for _, ap := range aps {
		byID[ap.ID] = ap
	}

	// --------------------------------------------------
	// 4️⃣ Layout
	// --------------------------------------------------
	columns, err := uc.engine.Layout(
		domain.BookingsFromModels(aps, uc.clock.location()),
		days,
		window,
		ppm,
	)
	if err != nil {
		return nil, err
	}

	out := &dto.WeekScheduleDTO{
		From:            from.Format(dateLayout),
		To:              days[len(days)-1].Format(dateLayout),
		Window:          window,
		PixelsPerMinute: ppm,
		TotalHeight:     window.Height(ppm),
		GridLines:       domain.GridLines(window, uc.settings.GridStepMinutes, ppm),
		Days:            make([]dto.ScheduleDayDTO, 0, len(columns)),
	}

	for _, col := range columns {
		day := dto.ScheduleDayDTO{
			Index:   col.Index,
			Date:    col.Date.Format(dateLayout),
			Weekday: int(col.Date.Weekday()),
			Working: wh.WorksOn(col.Date.Weekday()),
			Boxes:   make([]dto.ScheduleBoxDTO, 0, len(col.Boxes)),
		}
		for _, box := range col.Boxes {
			day.Boxes = append(day.Boxes, scheduleBox(box, byID[box.Booking.ID]))
		}
		out.Days = append(out.Days, day)
	}

	return out, nil
}

func scheduleBox(box domain.LayoutBox, ap models.Appointment) dto.ScheduleBoxDTO {
	names := make([]string, 0, len(ap.Services))
	for _, s := range ap.Services {
		names = append(names, strings.TrimSpace(s.Name))
	}

	return dto.ScheduleBoxDTO{
		AppointmentID: box.Booking.ID,
		Start:         box.Booking.Start.String(),
		End:           box.Booking.End().String(),
		DurationMin:   box.Booking.DurationMinutes,
		Status:        string(box.Booking.Status),
		ClientName:    ap.Client.Name,
		Services:      names,
		TotalPrice:    ap.TotalPrice,
		TopOffset:     box.TopOffset,
		Height:        box.Height,
		ShowActions:   box.ShowActions,
		Actions:       dto.Actions(box.Actions),
	}
}
