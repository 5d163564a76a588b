package appointment

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

// ===============================
// Business errors
// ===============================

var (
	ErrInvalidDuration     = httperr.ErrBusiness("invalid_duration")
	ErrInvalidWorkingHours = httperr.ErrBusiness("invalid_working_hours")
	ErrEmptyDayRange       = httperr.ErrBusiness("empty_day_range")
	ErrInvalidWindow       = httperr.ErrBusiness("invalid_window")
	ErrInvalidTimeOfDay    = httperr.ErrBusiness("invalid_time_of_day")

	ErrInvalidStatus     = httperr.ErrBusiness("invalid_status")
	ErrInvalidTransition = httperr.ErrBusiness("invalid_state")

	ErrNoServicesSelected = httperr.ErrBusiness("no_services_selected")
	ErrInvalidPrice       = httperr.ErrBusiness("invalid_price")

	ErrTimeConflict        = httperr.ErrBusiness("time_conflict")
	ErrOutsideWorkingHours = httperr.ErrBusiness("outside_working_hours")
	ErrTooSoon             = httperr.ErrBusiness("too_soon")

	ErrInvalidRating   = httperr.ErrBusiness("invalid_rating")
	ErrCommentTooLong  = httperr.ErrBusiness("comment_too_long")
	ErrAlreadyReviewed = httperr.ErrBusiness("already_reviewed")
	ErrNotCompleted    = httperr.ErrBusiness("not_completed")
)
