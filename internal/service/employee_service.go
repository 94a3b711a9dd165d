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
)

// --- DTOs ---

type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	DNI       string `json:"dni" binding:"required"`
	Position  string `json:"position"`
}

type UpdateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DNI       string `json:"dni"`
	Position  string `json:"position"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, page, limit int) ([]EmployeeResponse, int64, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	dni := strings.TrimSpace(req.DNI)
	if dni == "" {
		return EmployeeResponse{}, fmt.Errorf("%w: dni is required", apperrors.ErrInvalidInput)
	}

	if _, err := s.employeeRepo.FindByDNI(ctx, dni); err == nil {
		return EmployeeResponse{}, fmt.Errorf("%w: employee with dni %s", apperrors.ErrDuplicate, dni)
	}

	employee := model.Employee{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		DNI:       dni,
		Position:  strings.TrimSpace(req.Position),
	}
	if err := s.employeeRepo.Create(ctx, &employee); err != nil {
		return EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id string) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("%w: invalid employee id", apperrors.ErrInvalidInput)
	}
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, notFound("employee", err)
	}
	return toEmployeeResponse(*employee), nil
}

func (s *employeeService) ListEmployees(ctx context.Context, page, limit int) ([]EmployeeResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	employees, total, err := s.employeeRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}
	return responses, total, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, fmt.Errorf("%w: invalid employee id", apperrors.ErrInvalidInput)
	}
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, notFound("employee", err)
	}

	if req.FirstName != "" {
		employee.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		employee.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Position != "" {
		employee.Position = strings.TrimSpace(req.Position)
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return EmployeeResponse{}, err
	}
	return toEmployeeResponse(*employee), nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id string) error {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid employee id", apperrors.ErrInvalidInput)
	}
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		return notFound("employee", err)
	}
	return s.employeeRepo.Delete(ctx, employeeID)
}

func toEmployeeResponse(e model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID.String(),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		DNI:       e.DNI,
		Position:  e.Position,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
