package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type AttachFineRequest struct {
	RentalID     string `json:"rental_id" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	IncidentDate string `json:"incident_date" binding:"required"`
}

type FineResponse struct {
	ID           string `json:"id"`
	RentalID     string `json:"rental_id"`
	Plate        string `json:"plate,omitempty"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	IncidentDate string `json:"incident_date"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type FineService interface {
	AttachFine(ctx context.Context, req AttachFineRequest) (FineResponse, error)
	GetFine(ctx context.Context, id string) (FineResponse, error)
	ListFines(ctx context.Context, page, limit int) ([]FineResponse, int64, error)
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]FineResponse, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]FineResponse, error)
}

type fineService struct {
	fineRepo   repository.FineRepository
	rentalRepo repository.RentalRepository
}

func NewFineService(fineRepo repository.FineRepository, rentalRepo repository.RentalRepository) FineService {
	return &fineService{fineRepo: fineRepo, rentalRepo: rentalRepo}
}

// AttachFine creates a fine tied to an existing rental. The rental may be
// in any status; damage is often discovered after the vehicle came back,
// and neither the rental nor the vehicle is mutated.
func (s *fineService) AttachFine(ctx context.Context, req AttachFineRequest) (FineResponse, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return FineResponse{}, fmt.Errorf("%w: invalid amount", apperrors.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return FineResponse{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return FineResponse{}, fmt.Errorf("%w: description is required", apperrors.ErrInvalidInput)
	}

	incidentDate, err := parseDate(req.IncidentDate)
	if err != nil {
		return FineResponse{}, err
	}

	rentalID, err := uuid.Parse(req.RentalID)
	if err != nil {
		return FineResponse{}, fmt.Errorf("%w: invalid rental_id", apperrors.ErrInvalidInput)
	}
	rental, err := s.rentalRepo.FindByID(ctx, rentalID)
	if err != nil {
		return FineResponse{}, notFound("rental", err)
	}

	fine := model.Fine{
		RentalID:     rental.ID,
		Description:  description,
		Amount:       amount,
		IncidentDate: incidentDate,
	}
	if err := s.fineRepo.Create(ctx, &fine); err != nil {
		return FineResponse{}, fmt.Errorf("failed to create fine: %w", err)
	}

	resp := toFineResponse(fine)
	resp.Plate = rental.Plate
	return resp, nil
}

func (s *fineService) GetFine(ctx context.Context, id string) (FineResponse, error) {
	fineID, err := uuid.Parse(id)
	if err != nil {
		return FineResponse{}, fmt.Errorf("%w: invalid fine id", apperrors.ErrInvalidInput)
	}
	fine, err := s.fineRepo.FindByID(ctx, fineID)
	if err != nil {
		return FineResponse{}, notFound("fine", err)
	}
	return toFineResponse(*fine), nil
}

func (s *fineService) ListFines(ctx context.Context, page, limit int) ([]FineResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	fines, total, err := s.fineRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]FineResponse, 0, len(fines))
	for _, f := range fines {
		responses = append(responses, toFineResponse(f))
	}
	return responses, total, nil
}

func (s *fineService) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]FineResponse, error) {
	fines, err := s.fineRepo.ListByRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	responses := make([]FineResponse, 0, len(fines))
	for _, f := range fines {
		responses = append(responses, toFineResponse(f))
	}
	return responses, nil
}

func (s *fineService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]FineResponse, error) {
	fines, err := s.fineRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]FineResponse, 0, len(fines))
	for _, f := range fines {
		responses = append(responses, toFineResponse(f))
	}
	return responses, nil
}

func toFineResponse(f model.Fine) FineResponse {
	resp := FineResponse{
		ID:           f.ID.String(),
		RentalID:     f.RentalID.String(),
		Description:  f.Description,
		Amount:       f.Amount.String(),
		IncidentDate: f.IncidentDate.Format(dateLayout),
		CreatedAt:    f.CreatedAt.Format(time.RFC3339),
	}
	if f.Rental != nil {
		resp.Plate = f.Rental.Plate
	}
	return resp
}
