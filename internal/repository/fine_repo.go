package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FineRepository defines the data access surface for Fine entities
type FineRepository interface {
	Create(ctx context.Context, fine *model.Fine) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Fine, error)
	List(ctx context.Context, page, limit int) ([]model.Fine, int64, error)
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]model.Fine, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Fine, error)
}

type fineRepository struct {
	db *gorm.DB
}

func NewFineRepository(db *gorm.DB) FineRepository {
	return &fineRepository{db: db}
}

func (r *fineRepository) Create(ctx context.Context, fine *model.Fine) error {
	return GetDB(ctx, r.db).Create(fine).Error
}

func (r *fineRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Fine, error) {
	var fine model.Fine
	if err := GetDB(ctx, r.db).Preload("Rental").First(&fine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fine, nil
}

func (r *fineRepository) List(ctx context.Context, page, limit int) ([]model.Fine, int64, error) {
	var fines []model.Fine
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Fine{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Rental").Order("created_at desc").Offset(offset).Limit(limit).Find(&fines).Error; err != nil {
		return nil, 0, err
	}

	return fines, total, nil
}

func (r *fineRepository) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]model.Fine, error) {
	var fines []model.Fine
	err := GetDB(ctx, r.db).
		Where("rental_id = ?", rentalID).
		Order("incident_date desc").
		Find(&fines).Error
	if err != nil {
		return nil, err
	}
	return fines, nil
}

// ListByClient resolves fines through the owning rental so a customer can
// see every fine attached to any of their rentals.
func (r *fineRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Fine, error) {
	var fines []model.Fine
	err := GetDB(ctx, r.db).
		Joins("JOIN rentals ON rentals.id = fines.rental_id").
		Where("rentals.client_id = ?", clientID).
		Preload("Rental").
		Order("fines.incident_date desc").
		Find(&fines).Error
	if err != nil {
		return nil, err
	}
	return fines, nil
}
