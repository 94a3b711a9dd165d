package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

var plateRegex = regexp.MustCompile(`^[A-Z0-9]{6,7}$`)

// --- DTOs ---

type CreateVehicleRequest struct {
	Plate     string `json:"plate" binding:"required"`
	Brand     string `json:"brand" binding:"required"`
	Model     string `json:"model" binding:"required"`
	Year      int    `json:"year" binding:"required"`
	DailyRate string `json:"daily_rate" binding:"required"`
}

type UpdateVehicleRequest struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	DailyRate string `json:"daily_rate"`
}

type VehicleResponse struct {
	Plate     string `json:"plate"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	DailyRate string `json:"daily_rate"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type VehicleService interface {
	CreateVehicle(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)
	GetVehicle(ctx context.Context, plate string) (VehicleResponse, error)
	ListVehicles(ctx context.Context, state string, page, limit int) ([]VehicleResponse, int64, error)
	UpdateVehicle(ctx context.Context, plate string, req UpdateVehicleRequest) (VehicleResponse, error)
	DeleteVehicle(ctx context.Context, plate string) error
	IsAvailable(ctx context.Context, plate string, startDate, endDate string) (bool, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, rentalRepo repository.RentalRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, rentalRepo: rentalRepo}
}

// NormalizePlate uppercases and validates a plate against the 6-7 character
// alphanumeric format.
func NormalizePlate(plate string) (string, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if !plateRegex.MatchString(plate) {
		return "", fmt.Errorf("%w: plate must be 6 or 7 alphanumeric characters", apperrors.ErrInvalidInput)
	}
	return plate, nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error) {
	plate, err := NormalizePlate(req.Plate)
	if err != nil {
		return VehicleResponse{}, err
	}

	rate, err := decimal.NewFromString(req.DailyRate)
	if err != nil || !rate.IsPositive() {
		return VehicleResponse{}, fmt.Errorf("%w: daily_rate must be a positive number", apperrors.ErrInvalidInput)
	}

	if _, err := s.vehicleRepo.FindByPlate(ctx, plate); err == nil {
		return VehicleResponse{}, fmt.Errorf("%w: vehicle %s", apperrors.ErrDuplicate, plate)
	}

	vehicle := model.Vehicle{
		Plate:     plate,
		Brand:     strings.TrimSpace(req.Brand),
		Model:     strings.TrimSpace(req.Model),
		Year:      req.Year,
		DailyRate: rate,
		State:     model.VehicleAvailable,
	}
	if err := s.vehicleRepo.Create(ctx, &vehicle); err != nil {
		return VehicleResponse{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, plate string) (VehicleResponse, error) {
	plate, err := NormalizePlate(plate)
	if err != nil {
		return VehicleResponse{}, err
	}
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return VehicleResponse{}, notFound("vehicle", err)
	}
	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, state string, page, limit int) ([]VehicleResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	vehicles, total, err := s.vehicleRepo.List(ctx, state, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses, total, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, plate string, req UpdateVehicleRequest) (VehicleResponse, error) {
	plate, err := NormalizePlate(plate)
	if err != nil {
		return VehicleResponse{}, err
	}
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return VehicleResponse{}, notFound("vehicle", err)
	}

	if req.Brand != "" {
		vehicle.Brand = strings.TrimSpace(req.Brand)
	}
	if req.Model != "" {
		vehicle.Model = strings.TrimSpace(req.Model)
	}
	if req.Year != 0 {
		vehicle.Year = req.Year
	}
	if req.DailyRate != "" {
		rate, err := decimal.NewFromString(req.DailyRate)
		if err != nil || !rate.IsPositive() {
			return VehicleResponse{}, fmt.Errorf("%w: daily_rate must be a positive number", apperrors.ErrInvalidInput)
		}
		vehicle.DailyRate = rate
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return VehicleResponse{}, err
	}
	return toVehicleResponse(*vehicle), nil
}

// DeleteVehicle removes a vehicle from the fleet. A rented vehicle cannot
// be deleted.
func (s *vehicleService) DeleteVehicle(ctx context.Context, plate string) error {
	plate, err := NormalizePlate(plate)
	if err != nil {
		return err
	}
	vehicle, err := s.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return notFound("vehicle", err)
	}
	if vehicle.State == model.VehicleRented {
		return fmt.Errorf("%w: vehicle %s is rented", apperrors.ErrInvalidState, plate)
	}
	return s.vehicleRepo.Delete(ctx, plate)
}

// IsAvailable reports whether the vehicle can be rented for the date range:
// it must be in the AVAILABLE state with no active rental overlapping the
// half-open interval [startDate, endDate).
func (s *vehicleService) IsAvailable(ctx context.Context, plate string, startDate, endDate string) (bool, error) {
	plate, err := NormalizePlate(plate)
	if err != nil {
		return false, err
	}
	start, err := parseDate(startDate)
	if err != nil {
		return false, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return false, err
	}

	vehicle, err := s.vehicleRepo.FindByPlate(ctx, plate)
	if err != nil {
		return false, notFound("vehicle", err)
	}
	if vehicle.State != model.VehicleAvailable {
		return false, nil
	}

	overlapping, err := s.rentalRepo.CountActiveOverlapping(ctx, plate, start, end)
	if err != nil {
		return false, err
	}
	return overlapping == 0, nil
}

func toVehicleResponse(v model.Vehicle) VehicleResponse {
	return VehicleResponse{
		Plate:     v.Plate,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		DailyRate: v.DailyRate.String(),
		State:     v.State,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
}
