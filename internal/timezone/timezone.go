package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when tzdata is missing.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock returns a now func bound to loc.
func Clock(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// ParseDate parses "YYYY-MM-DD" as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}

// ParseDateTime parses a "YYYY-MM-DD" date and "HH:mm" time in loc.
func ParseDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, loc)
}
