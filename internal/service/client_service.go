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

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// --- DTOs ---

type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	DNI       string `json:"dni" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type UpdateClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type ClientResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DNI       string `json:"dni"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetClient(ctx context.Context, id string) (ClientResponse, error)
	ListClients(ctx context.Context, page, limit int) ([]ClientResponse, int64, error)
	SearchClients(ctx context.Context, q string) ([]ClientResponse, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	dni := strings.TrimSpace(req.DNI)
	if dni == "" {
		return ClientResponse{}, fmt.Errorf("%w: dni is required", apperrors.ErrInvalidInput)
	}
	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return ClientResponse{}, fmt.Errorf("%w: invalid email format", apperrors.ErrInvalidInput)
	}

	if _, err := s.clientRepo.FindByDNI(ctx, dni); err == nil {
		return ClientResponse{}, fmt.Errorf("%w: client with dni %s", apperrors.ErrDuplicate, dni)
	}

	client := model.Client{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		DNI:       dni,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
	}
	if err := s.clientRepo.Create(ctx, &client); err != nil {
		return ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}
	return toClientResponse(client), nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (ClientResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("%w: invalid client id", apperrors.ErrInvalidInput)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return ClientResponse{}, notFound("client", err)
	}
	return toClientResponse(*client), nil
}

func (s *clientService) ListClients(ctx context.Context, page, limit int) ([]ClientResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	clients, total, err := s.clientRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, toClientResponse(c))
	}
	return responses, total, nil
}

func (s *clientService) SearchClients(ctx context.Context, q string) ([]ClientResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []ClientResponse{}, nil
	}
	clients, err := s.clientRepo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	responses := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, toClientResponse(c))
	}
	return responses, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("%w: invalid client id", apperrors.ErrInvalidInput)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return ClientResponse{}, notFound("client", err)
	}

	if req.FirstName != "" {
		client.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		client.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Phone != "" {
		client.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Email != "" {
		if !emailRegex.MatchString(req.Email) {
			return ClientResponse{}, fmt.Errorf("%w: invalid email format", apperrors.ErrInvalidInput)
		}
		client.Email = strings.TrimSpace(req.Email)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return ClientResponse{}, err
	}
	return toClientResponse(*client), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid client id", apperrors.ErrInvalidInput)
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return notFound("client", err)
	}
	return s.clientRepo.Delete(ctx, clientID)
}

func toClientResponse(c model.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		DNI:       c.DNI,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
