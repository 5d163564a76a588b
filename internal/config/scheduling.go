package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Scheduling holds the knobs of the slot calculator and the week view.
type Scheduling struct {
	SlotStepMinutes  int     `toml:"slot_step_minutes"`
	DayStart         string  `toml:"day_start"`
	DayEnd           string  `toml:"day_end"`
	PixelsPerMinute  float64 `toml:"pixels_per_minute"`
	MinBoxHeight     float64 `toml:"min_box_height"`
	ActionsMinHeight float64 `toml:"actions_min_height"`
	VisibleDays      int     `toml:"visible_days"`
	CacheTTLSeconds  int     `toml:"cache_ttl_seconds"`
}

type schedulingFile struct {
	Scheduling Scheduling `toml:"scheduling"`
}

func DefaultScheduling() Scheduling {
	return Scheduling{
		SlotStepMinutes:  30,
		DayStart:         "09:00",
		DayEnd:           "20:00",
		PixelsPerMinute:  2,
		MinBoxHeight:     60,
		ActionsMinHeight: 100,
		VisibleDays:      7,
		CacheTTLSeconds:  300,
	}
}

// LoadScheduling reads the [scheduling] table of a TOML file. A missing file
// yields the defaults; invalid values are replaced by their default.
func LoadScheduling(path string) (Scheduling, error) {
	file := schedulingFile{Scheduling: DefaultScheduling()}

	if path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Scheduling{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	return file.Scheduling.normalized(), nil
}

// ParseScheduling is LoadScheduling over an in-memory document.
func ParseScheduling(doc string) (Scheduling, error) {
	file := schedulingFile{Scheduling: DefaultScheduling()}
	if _, err := toml.Decode(doc, &file); err != nil {
		return Scheduling{}, fmt.Errorf("config: decode scheduling: %w", err)
	}
	return file.Scheduling.normalized(), nil
}

func (s Scheduling) normalized() Scheduling {
	def := DefaultScheduling()

	if s.SlotStepMinutes <= 0 || s.SlotStepMinutes > 24*60 {
		s.SlotStepMinutes = def.SlotStepMinutes
	}
	if !validHM(s.DayStart) || !validHM(s.DayEnd) || s.DayStart >= s.DayEnd {
		s.DayStart, s.DayEnd = def.DayStart, def.DayEnd
	}
	if s.PixelsPerMinute <= 0 {
		s.PixelsPerMinute = def.PixelsPerMinute
	}
	if s.MinBoxHeight <= 0 {
		s.MinBoxHeight = def.MinBoxHeight
	}
	if s.ActionsMinHeight <= 0 {
		s.ActionsMinHeight = def.ActionsMinHeight
	}
	if s.VisibleDays <= 0 || s.VisibleDays > 31 {
		s.VisibleDays = def.VisibleDays
	}
	if s.CacheTTLSeconds < 0 {
		s.CacheTTLSeconds = def.CacheTTLSeconds
	}
	return s
}

func (s Scheduling) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

func validHM(v string) bool {
	if len(v) != 5 {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

// Exists reports whether path points to a readable file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
