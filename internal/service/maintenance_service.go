package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type OpenMaintenanceRequest struct {
	Plate       string `json:"plate" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	Cost        string `json:"cost"`
	StartDate   string `json:"start_date" binding:"required"`
}

type MaintenanceResponse struct {
	ID          string  `json:"id"`
	Plate       string  `json:"plate"`
	ServiceType string  `json:"service_type"`
	Cost        string  `json:"cost"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// --- Interface ---

// MaintenanceService owns the administrative availability transitions:
// opening a record parks the vehicle in MAINTENANCE, closing it releases
// the vehicle back to AVAILABLE. A rented vehicle cannot enter maintenance.
type MaintenanceService interface {
	OpenMaintenance(ctx context.Context, req OpenMaintenanceRequest) (MaintenanceResponse, error)
	CloseMaintenance(ctx context.Context, id string, endDate string) (MaintenanceResponse, error)
	ListByPlate(ctx context.Context, plate string) ([]MaintenanceResponse, error)
}

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
	txManager       repository.TransactionManager
	fleet           FleetBroadcaster
}

func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
	txManager repository.TransactionManager,
	fleet FleetBroadcaster,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
		txManager:       txManager,
		fleet:           fleet,
	}
}

func (s *maintenanceService) OpenMaintenance(ctx context.Context, req OpenMaintenanceRequest) (MaintenanceResponse, error) {
	plate, err := NormalizePlate(req.Plate)
	if err != nil {
		return MaintenanceResponse{}, err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return MaintenanceResponse{}, err
	}

	cost := decimal.Zero
	if req.Cost != "" {
		cost, err = decimal.NewFromString(req.Cost)
		if err != nil || cost.IsNegative() {
			return MaintenanceResponse{}, fmt.Errorf("%w: cost must be a non-negative number", apperrors.ErrInvalidInput)
		}
	}

	var record model.Maintenance
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vehicle, err := s.vehicleRepo.FindByPlate(txCtx, plate)
		if err != nil {
			return notFound("vehicle", err)
		}
		if vehicle.State == model.VehicleRented {
			return fmt.Errorf("%w: vehicle %s is rented", apperrors.ErrInvalidState, plate)
		}
		if vehicle.State == model.VehicleMaintenance {
			return fmt.Errorf("%w: vehicle %s is already in maintenance", apperrors.ErrInvalidState, plate)
		}

		record = model.Maintenance{
			Plate:       plate,
			ServiceType: req.ServiceType,
			Cost:        cost,
			StartDate:   start,
		}
		if err := s.maintenanceRepo.Create(txCtx, &record); err != nil {
			return err
		}
		return s.vehicleRepo.SetState(txCtx, plate, model.VehicleMaintenance)
	})
	if err != nil {
		return MaintenanceResponse{}, err
	}

	if s.fleet != nil {
		s.fleet.BroadcastVehicleState(plate, model.VehicleMaintenance)
	}
	return toMaintenanceResponse(record), nil
}

func (s *maintenanceService) CloseMaintenance(ctx context.Context, id string, endDate string) (MaintenanceResponse, error) {
	maintenanceID, err := uuid.Parse(id)
	if err != nil {
		return MaintenanceResponse{}, fmt.Errorf("%w: invalid maintenance id", apperrors.ErrInvalidInput)
	}
	if endDate == "" {
		endDate = time.Now().UTC().Format(dateLayout)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return MaintenanceResponse{}, err
	}

	var record *model.Maintenance
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		record, err = s.maintenanceRepo.FindByID(txCtx, maintenanceID)
		if err != nil {
			return notFound("maintenance record", err)
		}
		if record.EndDate != nil {
			return fmt.Errorf("%w: maintenance already closed", apperrors.ErrInvalidState)
		}
		if end.Before(record.StartDate) {
			return fmt.Errorf("%w: end date before start date", apperrors.ErrInvalidDateRange)
		}

		record.EndDate = &end
		if err := s.maintenanceRepo.Update(txCtx, record); err != nil {
			return err
		}

		// Release only from MAINTENANCE; the vehicle may have been removed
		// from the fleet in the meantime.
		_, err = s.vehicleRepo.UpdateState(txCtx, record.Plate, model.VehicleMaintenance, model.VehicleAvailable)
		return err
	})
	if err != nil {
		return MaintenanceResponse{}, err
	}

	if s.fleet != nil {
		s.fleet.BroadcastVehicleState(record.Plate, model.VehicleAvailable)
	}
	return toMaintenanceResponse(*record), nil
}

func (s *maintenanceService) ListByPlate(ctx context.Context, plate string) ([]MaintenanceResponse, error) {
	plate, err := NormalizePlate(plate)
	if err != nil {
		return nil, err
	}
	records, err := s.maintenanceRepo.ListByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	responses := make([]MaintenanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toMaintenanceResponse(r))
	}
	return responses, nil
}

func toMaintenanceResponse(m model.Maintenance) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:          m.ID.String(),
		Plate:       m.Plate,
		ServiceType: m.ServiceType,
		Cost:        m.Cost.String(),
		StartDate:   m.StartDate.Format(dateLayout),
	}
	if m.EndDate != nil {
		s := m.EndDate.Format(dateLayout)
		resp.EndDate = &s
	}
	return resp
}
