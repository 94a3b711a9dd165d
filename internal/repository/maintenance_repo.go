package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceRepository defines the data access surface for Maintenance records
type MaintenanceRepository interface {
	Create(ctx context.Context, maintenance *model.Maintenance) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error)
	ListByPlate(ctx context.Context, plate string) ([]model.Maintenance, error)
	Update(ctx context.Context, maintenance *model.Maintenance) error
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, maintenance *model.Maintenance) error {
	return GetDB(ctx, r.db).Create(maintenance).Error
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error) {
	var maintenance model.Maintenance
	if err := GetDB(ctx, r.db).First(&maintenance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &maintenance, nil
}

func (r *maintenanceRepository) ListByPlate(ctx context.Context, plate string) ([]model.Maintenance, error) {
	var records []model.Maintenance
	err := GetDB(ctx, r.db).
		Where("plate = ?", plate).
		Order("start_date desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, maintenance *model.Maintenance) error {
	return GetDB(ctx, r.db).Save(maintenance).Error
}
