package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/permission"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FleetBroadcaster pushes vehicle availability changes to connected
// dashboards. The websocket hub implements it; tests pass nil.
type FleetBroadcaster interface {
	BroadcastVehicleState(plate, state string)
}

// --- DTOs ---

type CreateRentalRequest struct {
	ClientID   string `json:"client_id" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"required"`
	Plate      string `json:"plate" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	TotalCost  string `json:"total_cost"` // optional override, staff only
}

type RentalResponse struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	ClientName   string `json:"client_name,omitempty"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Plate        string `json:"plate"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalCost    string `json:"total_cost"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type RentalService interface {
	CreateRental(ctx context.Context, principal permission.Principal, req CreateRentalRequest) (RentalResponse, error)
	CloseRental(ctx context.Context, id string) (RentalResponse, error)
	CancelRental(ctx context.Context, id string) (RentalResponse, error)
	GetRental(ctx context.Context, id string) (RentalResponse, error)
	ListRentals(ctx context.Context, status string, page, limit int) ([]RentalResponse, int64, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]RentalResponse, error)
}

type rentalService struct {
	rentalRepo   repository.RentalRepository
	clientRepo   repository.ClientRepository
	employeeRepo repository.EmployeeRepository
	vehicleRepo  repository.VehicleRepository
	txManager    repository.TransactionManager
	registry     *permission.Registry
	fleet        FleetBroadcaster
	now          func() time.Time

	// plateLocks serializes create/close/cancel per plate so that the
	// availability check and the state flip act as one unit. Unrelated
	// plates proceed in parallel.
	plateLocks sync.Map // plate -> *sync.Mutex
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	clientRepo repository.ClientRepository,
	employeeRepo repository.EmployeeRepository,
	vehicleRepo repository.VehicleRepository,
	txManager repository.TransactionManager,
	registry *permission.Registry,
	fleet FleetBroadcaster,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		registry:     registry,
		fleet:        fleet,
		now:          time.Now,
	}
}

func (s *rentalService) plateLock(plate string) *sync.Mutex {
	lock, _ := s.plateLocks.LoadOrStore(plate, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *rentalService) broadcastState(plate, state string) {
	if s.fleet != nil {
		s.fleet.BroadcastVehicleState(plate, state)
	}
}

// CreateRental validates the request, computes the total cost and creates
// an ACTIVE rental while flipping the vehicle to RENTED, all in one
// transaction. Validation order: date range, availability, then referenced
// entities. The first violation wins.
func (s *rentalService) CreateRental(ctx context.Context, principal permission.Principal, req CreateRentalRequest) (RentalResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return RentalResponse{}, fmt.Errorf("%w: invalid client_id", apperrors.ErrInvalidInput)
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RentalResponse{}, fmt.Errorf("%w: invalid employee_id", apperrors.ErrInvalidInput)
	}

	plate, err := NormalizePlate(req.Plate)
	if err != nil {
		return RentalResponse{}, err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return RentalResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return RentalResponse{}, err
	}

	today := dateOnly(s.now())
	if start.Before(today) || end.Before(today) {
		return RentalResponse{}, fmt.Errorf("%w: dates must not be in the past", apperrors.ErrInvalidDateRange)
	}
	if end.Before(start) {
		return RentalResponse{}, fmt.Errorf("%w: end date before start date", apperrors.ErrInvalidDateRange)
	}

	lock := s.plateLock(plate)
	lock.Lock()
	defer lock.Unlock()

	var rental model.Rental
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		vehicle, err := s.vehicleRepo.FindByPlate(txCtx, plate)
		if err != nil {
			return notFound("vehicle", err)
		}
		if vehicle.State != model.VehicleAvailable {
			return fmt.Errorf("%w: vehicle %s is %s", apperrors.ErrVehicleUnavailable, vehicle.Plate, vehicle.State)
		}

		overlapping, err := s.rentalRepo.CountActiveOverlapping(txCtx, plate, start, end)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return fmt.Errorf("%w: vehicle %s already rented for those dates", apperrors.ErrVehicleUnavailable, vehicle.Plate)
		}

		if _, err := s.clientRepo.FindByID(txCtx, clientID); err != nil {
			return notFound("client", err)
		}
		if _, err := s.employeeRepo.FindByID(txCtx, employeeID); err != nil {
			return notFound("employee", err)
		}

		totalCost, err := s.resolveCost(principal, req.TotalCost, start, end, vehicle.DailyRate)
		if err != nil {
			return err
		}

		rental = model.Rental{
			ClientID:   clientID,
			EmployeeID: employeeID,
			Plate:      vehicle.Plate,
			StartDate:  start,
			EndDate:    end,
			TotalCost:  totalCost,
			Status:     model.RentalActive,
		}
		if err := s.rentalRepo.Create(txCtx, &rental); err != nil {
			return fmt.Errorf("failed to create rental: %w", err)
		}

		flipped, err := s.vehicleRepo.UpdateState(txCtx, vehicle.Plate, model.VehicleAvailable, model.VehicleRented)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("%w: vehicle %s changed state concurrently", apperrors.ErrVehicleUnavailable, vehicle.Plate)
		}
		return nil
	})
	if err != nil {
		return RentalResponse{}, err
	}

	s.broadcastState(rental.Plate, model.VehicleRented)
	return toRentalResponse(rental), nil
}

// resolveCost applies the caller-supplied override when the role permits it,
// otherwise bills days × daily rate. Customer-initiated paths never override.
func (s *rentalService) resolveCost(principal permission.Principal, requested string, start, end time.Time, dailyRate decimal.Decimal) (decimal.Decimal, error) {
	if requested != "" && s.registry.Allows(principal.Role, permission.CapOverrideRentalCost) {
		cost, err := decimal.NewFromString(requested)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: invalid total_cost", apperrors.ErrInvalidInput)
		}
		if cost.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: total_cost cannot be negative", apperrors.ErrInvalidInput)
		}
		return cost, nil
	}
	days := rentalDays(start, end)
	return dailyRate.Mul(decimal.NewFromInt(int64(days))), nil
}

// CloseRental completes an active rental and returns the vehicle to the
// fleet. Closing an already completed rental is a no-op returning the
// rental unchanged; a cancelled rental cannot be closed.
func (s *rentalService) CloseRental(ctx context.Context, id string) (RentalResponse, error) {
	return s.finishRental(ctx, id, model.RentalCompleted)
}

// CancelRental aborts an active rental and releases the vehicle.
func (s *rentalService) CancelRental(ctx context.Context, id string) (RentalResponse, error) {
	return s.finishRental(ctx, id, model.RentalCancelled)
}

func (s *rentalService) finishRental(ctx context.Context, id string, target string) (RentalResponse, error) {
	rentalID, err := uuid.Parse(id)
	if err != nil {
		return RentalResponse{}, fmt.Errorf("%w: invalid rental id", apperrors.ErrInvalidInput)
	}

	// Peek at the rental to learn its plate; the lock must be taken before
	// the transaction starts so the lock order matches CreateRental.
	peek, err := s.rentalRepo.FindByID(ctx, rentalID)
	if err != nil {
		return RentalResponse{}, notFound("rental", err)
	}
	lock := s.plateLock(peek.Plate)
	lock.Lock()
	defer lock.Unlock()

	var rental *model.Rental
	var released bool
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rental, err = s.rentalRepo.FindByID(txCtx, rentalID)
		if err != nil {
			return notFound("rental", err)
		}

		switch rental.Status {
		case model.RentalActive:
			// fall through to the transition below
		case model.RentalCompleted:
			if target == model.RentalCompleted {
				return nil // closing twice is idempotent
			}
			return fmt.Errorf("%w: rental already completed", apperrors.ErrInvalidState)
		default:
			return fmt.Errorf("%w: rental is %s", apperrors.ErrInvalidState, rental.Status)
		}

		rental.Status = target
		if err := s.rentalRepo.Update(txCtx, rental); err != nil {
			return err
		}

		// Releasing is a no-op when the vehicle is not RENTED (e.g. it was
		// moved to maintenance administratively).
		released, err = s.vehicleRepo.UpdateState(txCtx, rental.Plate, model.VehicleRented, model.VehicleAvailable)
		return err
	})
	if err != nil {
		return RentalResponse{}, err
	}

	if released {
		s.broadcastState(rental.Plate, model.VehicleAvailable)
	}
	return toRentalResponse(*rental), nil
}

func (s *rentalService) GetRental(ctx context.Context, id string) (RentalResponse, error) {
	rentalID, err := uuid.Parse(id)
	if err != nil {
		return RentalResponse{}, fmt.Errorf("%w: invalid rental id", apperrors.ErrInvalidInput)
	}
	rental, err := s.rentalRepo.FindByID(ctx, rentalID)
	if err != nil {
		return RentalResponse{}, notFound("rental", err)
	}
	return toRentalResponse(*rental), nil
}

func (s *rentalService) ListRentals(ctx context.Context, status string, page, limit int) ([]RentalResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	rentals, total, err := s.rentalRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		responses = append(responses, toRentalResponse(r))
	}
	return responses, total, nil
}

func (s *rentalService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]RentalResponse, error) {
	rentals, err := s.rentalRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		responses = append(responses, toRentalResponse(r))
	}
	return responses, nil
}

// --- helpers ---

// notFound maps a gorm record miss to the service error taxonomy.
func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, entity)
	}
	return err
}

func toRentalResponse(r model.Rental) RentalResponse {
	resp := RentalResponse{
		ID:         r.ID.String(),
		ClientID:   r.ClientID.String(),
		EmployeeID: r.EmployeeID.String(),
		Plate:      r.Plate,
		StartDate:  r.StartDate.Format(dateLayout),
		EndDate:    r.EndDate.Format(dateLayout),
		TotalCost:  r.TotalCost.String(),
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if r.Client != nil {
		resp.ClientName = r.Client.FirstName + " " + r.Client.LastName
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.FirstName + " " + r.Employee.LastName
	}
	return resp
}
