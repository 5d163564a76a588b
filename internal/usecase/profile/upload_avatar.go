package profile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/requestid"
)

// AvatarStore uploads an encoded image and returns its public URL.
type AvatarStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type AvatarRepository interface {
	UpdateAvatar(ctx context.Context, userID uint, url string) error
}

type UploadAvatarInput struct {
	BarbershopID uint
	BarberID     uint
	Image        io.Reader
}

type UploadAvatar struct {
	store AvatarStore
	users AvatarRepository
	audit *audit.Dispatcher
}

func NewUploadAvatar(
	store AvatarStore,
	users AvatarRepository,
	audit *audit.Dispatcher,
) *UploadAvatar {
	return &UploadAvatar{
		store: store,
		users: users,
		audit: audit,
	}
}

func (uc *UploadAvatar) Execute(ctx context.Context, in UploadAvatarInput) (string, error) {
	if uc.store == nil {
		return "", httperr.ErrBusiness("storage_not_configured")
	}

	body, err := storage.EncodeAvatar(in.Image, storage.AvatarSize, storage.AvatarQuality)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return "", httperr.ErrBusiness("invalid_image")
		}
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%s.webp", in.BarberID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, body, storage.AvatarContentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := uc.users.UpdateAvatar(ctx, in.BarberID, url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", httperr.ErrBusiness("barber_not_found")
		}
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "avatar_updated",
		Entity:       "user",
		EntityID:     &in.BarberID,
		RequestID:    requestid.From(ctx),
		Metadata:     map[string]any{"url": url},
	})

	return url, nil
}
