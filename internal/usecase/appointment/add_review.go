package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/requestid"
)

type AddReviewInput struct {
	Slug    string
	Code    string
	Rating  int
	Comment string
}

// AddReview lets the client rate a completed appointment once.
type AddReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddReview {
	return &AddReview{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddReview) Execute(
	ctx context.Context,
	in AddReviewInput,
) (*models.Review, error) {

	shop, err := uc.repo.GetBarbershopBySlug(ctx, in.Slug)
	if err != nil {
		return nil, notFound(err, "barbershop_not_found")
	}

	ap, err := uc.repo.GetAppointmentByCode(ctx, shop.ID, in.Code)
	if err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	if ap.Review != nil {
		return nil, domain.ErrAlreadyReviewed
	}

	comment := strings.TrimSpace(in.Comment)
	if err := domain.ValidateReview(ap, in.Rating, comment); err != nil {
		return nil, err
	}

	review := &models.Review{
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		Rating:        in.Rating,
		Comment:       comment,
	}
	if err := uc.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "review_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		RequestID:    requestid.From(ctx),
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"rating":    in.Rating,
		},
	})

	return review, nil
}
