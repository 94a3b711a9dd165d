package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// VehicleRepository defines the data access surface for Vehicle entities.
// UpdateState is a compare-and-swap: it only flips the state when the
// vehicle is still in the expected one, and reports whether it did.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	List(ctx context.Context, state string, page, limit int) ([]model.Vehicle, int64, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	UpdateState(ctx context.Context, plate, from, to string) (bool, error)
	SetState(ctx context.Context, plate, to string) error
	Delete(ctx context.Context, plate string) error
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(vehicle).Error
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := GetDB(ctx, r.db).First(&vehicle, "plate = ?", plate).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, state string, page, limit int) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Vehicle{})
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetch := db.Order("plate asc").Offset(offset).Limit(limit)
	if state != "" {
		fetch = fetch.Where("state = ?", state)
	}
	if err := fetch.Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) UpdateState(ctx context.Context, plate, from, to string) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Vehicle{}).
		Where("plate = ? AND state = ?", plate, from).
		Update("state", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *vehicleRepository) SetState(ctx context.Context, plate, to string) error {
	return GetDB(ctx, r.db).Model(&model.Vehicle{}).
		Where("plate = ?", plate).
		Update("state", to).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, plate string) error {
	return GetDB(ctx, r.db).Where("plate = ?", plate).Delete(&model.Vehicle{}).Error
}
