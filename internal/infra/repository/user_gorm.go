package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Barbershop").
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateOwner creates the barbershop and its owner in one transaction.
func (r *UserGormRepository) CreateOwner(
	ctx context.Context,
	shop *models.Barbershop,
	user *models.User,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return err
		}
		user.BarbershopID = shop.ID
		user.Role = models.RoleOwner
		return tx.Omit("Barbershop").Create(user).Error
	})
}

func (r *UserGormRepository) CreateBarber(ctx context.Context, user *models.User) error {
	user.Role = models.RoleBarber
	return r.db.WithContext(ctx).Omit("Barbershop").Create(user).Error
}

func (r *UserGormRepository) ListBarbers(ctx context.Context, barbershopID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) UpdateAvatar(ctx context.Context, userID uint, url string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
