package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RentalRepository defines the data access surface for Rental entities.
// CountActiveOverlapping implements the half-open overlap rule used by the
// availability check: requested.start < existing.end AND requested.end >
// existing.start, restricted to ACTIVE rentals of the plate.
type RentalRepository interface {
	Create(ctx context.Context, rental *model.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Rental, int64, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Rental, error)
	ListByPlate(ctx context.Context, plate string) ([]model.Rental, error)
	CountActiveOverlapping(ctx context.Context, plate string, start, end time.Time) (int64, error)
	Update(ctx context.Context, rental *model.Rental) error
}

type rentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *model.Rental) error {
	return GetDB(ctx, r.db).Create(rental).Error
}

func (r *rentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	var rental model.Rental
	if err := GetDB(ctx, r.db).
		Preload("Client").Preload("Employee").Preload("Vehicle").
		First(&rental, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *rentalRepository) List(ctx context.Context, status string, page, limit int) ([]model.Rental, int64, error) {
	var rentals []model.Rental
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Rental{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetch := db.Preload("Client").Preload("Employee").Preload("Vehicle")
	if status != "" {
		fetch = fetch.Where("status = ?", status)
	}
	if err := fetch.Order("created_at desc").Offset(offset).Limit(limit).Find(&rentals).Error; err != nil {
		return nil, 0, err
	}

	return rentals, total, nil
}

func (r *rentalRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Rental, error) {
	var rentals []model.Rental
	err := GetDB(ctx, r.db).
		Preload("Vehicle").Preload("Fines").
		Where("client_id = ?", clientID).
		Order("start_date desc").
		Find(&rentals).Error
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) ListByPlate(ctx context.Context, plate string) ([]model.Rental, error) {
	var rentals []model.Rental
	err := GetDB(ctx, r.db).
		Preload("Client").
		Where("plate = ?", plate).
		Order("start_date desc").
		Find(&rentals).Error
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepository) CountActiveOverlapping(ctx context.Context, plate string, start, end time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Rental{}).
		Where("plate = ? AND status = ? AND start_date < ? AND end_date > ?",
			plate, model.RentalActive, end, start).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *rentalRepository) Update(ctx context.Context, rental *model.Rental) error {
	return GetDB(ctx, r.db).Save(rental).Error
}
