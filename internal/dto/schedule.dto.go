package dto

import domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"

type ScheduleBoxDTO struct {
	AppointmentID uint     `json:"appointment_id"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
	DurationMin   int      `json:"duration_min"`
	Status        string   `json:"status"`
	ClientName    string   `json:"client_name"`
	Services      []string `json:"services"`
	TotalPrice    float64  `json:"total_price"`
	TopOffset     float64  `json:"top_offset"`
	Height        float64  `json:"height"`
	ShowActions   bool     `json:"show_actions"`
	Actions       []string `json:"actions"`
}

type ScheduleDayDTO struct {
	Index   int              `json:"index"`
	Date    string           `json:"date"`
	Weekday int              `json:"weekday"`
	Working bool             `json:"working"`
	Boxes   []ScheduleBoxDTO `json:"boxes"`
}

type WeekScheduleDTO struct {
	From            string            `json:"from"`
	To              string            `json:"to"`
	Window          domain.Window     `json:"window"`
	PixelsPerMinute float64           `json:"pixels_per_minute"`
	TotalHeight     float64           `json:"total_height"`
	GridLines       []domain.GridLine `json:"grid_lines"`
	Days            []ScheduleDayDTO  `json:"days"`
}
