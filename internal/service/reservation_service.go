package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateReservationRequest struct {
	ClientID  string `json:"client_id" binding:"required"`
	Plate     string `json:"plate"` // optional preferred vehicle
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ReservationResponse struct {
	ID         string  `json:"id"`
	ClientID   string  `json:"client_id"`
	Plate      *string `json:"plate"`
	ReservedAt string  `json:"reserved_at"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

// --- Interface ---

// ReservationService records desired rental windows. A reservation never
// holds vehicle state; availability is only decided when the rental is
// actually created.
type ReservationService interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (ReservationResponse, error)
	GetReservation(ctx context.Context, id string) (ReservationResponse, error)
	ListReservations(ctx context.Context, page, limit int) ([]ReservationResponse, int64, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]ReservationResponse, error)
	CancelReservation(ctx context.Context, id string) error
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	clientRepo      repository.ClientRepository
	vehicleRepo     repository.VehicleRepository
	now             func() time.Time
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		clientRepo:      clientRepo,
		vehicleRepo:     vehicleRepo,
		now:             time.Now,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (ReservationResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ReservationResponse{}, fmt.Errorf("%w: invalid client_id", apperrors.ErrInvalidInput)
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return ReservationResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return ReservationResponse{}, err
	}

	today := dateOnly(s.now())
	if start.Before(today) || end.Before(today) {
		return ReservationResponse{}, fmt.Errorf("%w: dates must not be in the past", apperrors.ErrInvalidDateRange)
	}
	if end.Before(start) {
		return ReservationResponse{}, fmt.Errorf("%w: end date before start date", apperrors.ErrInvalidDateRange)
	}

	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return ReservationResponse{}, notFound("client", err)
	}

	reservation := model.Reservation{
		ClientID:   clientID,
		ReservedAt: today,
		StartDate:  start,
		EndDate:    end,
	}
	if req.Plate != "" {
		plate, err := NormalizePlate(req.Plate)
		if err != nil {
			return ReservationResponse{}, err
		}
		if _, err := s.vehicleRepo.FindByPlate(ctx, plate); err != nil {
			return ReservationResponse{}, notFound("vehicle", err)
		}
		reservation.Plate = &plate
	}

	if err := s.reservationRepo.Create(ctx, &reservation); err != nil {
		return ReservationResponse{}, fmt.Errorf("failed to create reservation: %w", err)
	}
	return toReservationResponse(reservation), nil
}

func (s *reservationService) GetReservation(ctx context.Context, id string) (ReservationResponse, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return ReservationResponse{}, fmt.Errorf("%w: invalid reservation id", apperrors.ErrInvalidInput)
	}
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return ReservationResponse{}, notFound("reservation", err)
	}
	return toReservationResponse(*reservation), nil
}

func (s *reservationService) ListReservations(ctx context.Context, page, limit int) ([]ReservationResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	reservations, total, err := s.reservationRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		responses = append(responses, toReservationResponse(r))
	}
	return responses, total, nil
}

func (s *reservationService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]ReservationResponse, error) {
	reservations, err := s.reservationRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		responses = append(responses, toReservationResponse(r))
	}
	return responses, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation id", apperrors.ErrInvalidInput)
	}
	if _, err := s.reservationRepo.FindByID(ctx, reservationID); err != nil {
		return notFound("reservation", err)
	}
	return s.reservationRepo.Delete(ctx, reservationID)
}

func toReservationResponse(r model.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID.String(),
		ClientID:   r.ClientID.String(),
		Plate:      r.Plate,
		ReservedAt: r.ReservedAt.Format(dateLayout),
		StartDate:  r.StartDate.Format(dateLayout),
		EndDate:    r.EndDate.Format(dateLayout),
	}
}
