package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationRepository defines the data access surface for Reservation entities
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	List(ctx context.Context, page, limit int) ([]model.Reservation, int64, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return GetDB(ctx, r.db).Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := GetDB(ctx, r.db).
		Preload("Client").Preload("Vehicle").
		First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) List(ctx context.Context, page, limit int) ([]model.Reservation, int64, error) {
	var reservations []model.Reservation
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Reservation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Client").Preload("Vehicle").
		Order("start_date asc").Offset(offset).Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

func (r *reservationRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := GetDB(ctx, r.db).
		Preload("Vehicle").
		Where("client_id = ?", clientID).
		Order("start_date asc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Reservation{}).Error
}
