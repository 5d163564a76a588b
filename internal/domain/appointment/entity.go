package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Apply moves ap to next, stamping the matching timestamp.
func Apply(ap *models.Appointment, next Status, now time.Time) error {
	current, err := ParseStatus(ap.Status)
	if err != nil {
		return ErrInvalidTransition
	}
	if err := Transition(current, next); err != nil {
		return err
	}

	ap.Status = string(next)
	switch next {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCanceled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	return Apply(ap, StatusConfirmed, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Apply(ap, StatusCanceled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Apply(ap, StatusCompleted, now)
}

// ===============================
// Reviews
// ===============================

const MaxReviewComment = 500

func ValidateReview(ap *models.Appointment, rating int, comment string) error {
	if st, _ := ParseStatus(ap.Status); st != StatusCompleted {
		return ErrNotCompleted
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if len([]rune(comment)) > MaxReviewComment {
		return ErrCommentTooLong
	}
	return nil
}
