package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"
	"backend/internal/permission"
	"backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{4,20}$`)

// --- DTOs ---

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required"`
	ClientID   string `json:"client_id"`
	EmployeeID string `json:"employee_id"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Role       string  `json:"role"`
	ClientID   *string `json:"client_id"`
	EmployeeID *string `json:"employee_id"`
	CreatedAt  string  `json:"created_at"`
}

// --- Interface ---

type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetUserByID(ctx context.Context, id string) (UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	userRepo     repository.UserRepository
	clientRepo   repository.ClientRepository
	employeeRepo repository.EmployeeRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	employeeRepo repository.EmployeeRepository,
) UserService {
	return &userService{userRepo: userRepo, clientRepo: clientRepo, employeeRepo: employeeRepo}
}

// CreateUser enforces the account invariants: a customer account must link
// to an existing client, a staff account to an existing employee.
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	if !usernameRegex.MatchString(req.Username) {
		return UserResponse{}, fmt.Errorf("%w: username must be 4-20 characters (letters, digits, ._-)", apperrors.ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return UserResponse{}, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrInvalidInput)
	}

	role := permission.ParseRole(req.Role)
	if role == permission.RoleAnonymous {
		return UserResponse{}, fmt.Errorf("%w: role must be supervisor, frontdesk or customer", apperrors.ErrInvalidInput)
	}

	user := model.User{
		Username: req.Username,
		Role:     string(role),
	}

	switch role {
	case permission.RoleCustomer:
		if req.ClientID == "" {
			return UserResponse{}, fmt.Errorf("%w: a customer account requires a client_id", apperrors.ErrInvalidInput)
		}
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			return UserResponse{}, fmt.Errorf("%w: invalid client_id", apperrors.ErrInvalidInput)
		}
		if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
			return UserResponse{}, notFound("client", err)
		}
		user.ClientID = &clientID
	default:
		if req.EmployeeID == "" {
			return UserResponse{}, fmt.Errorf("%w: a staff account requires an employee_id", apperrors.ErrInvalidInput)
		}
		employeeID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return UserResponse{}, fmt.Errorf("%w: invalid employee_id", apperrors.ErrInvalidInput)
		}
		if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
			return UserResponse{}, notFound("employee", err)
		}
		user.EmployeeID = &employeeID
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return UserResponse{}, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Create(ctx, &user); err != nil {
		return UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}
	return toUserResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, fmt.Errorf("%w: invalid user id", apperrors.ErrInvalidInput)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, notFound("user", err)
	}
	return toUserResponse(*user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	users, total, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, fmt.Errorf("%w: invalid user id", apperrors.ErrInvalidInput)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, notFound("user", err)
	}

	if req.Username != "" && req.Username != user.Username {
		if !usernameRegex.MatchString(req.Username) {
			return UserResponse{}, fmt.Errorf("%w: username must be 4-20 characters (letters, digits, ._-)", apperrors.ErrInvalidInput)
		}
		if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
			return UserResponse{}, fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, req.Username)
		}
		user.Username = req.Username
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return UserResponse{}, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrInvalidInput)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if req.Role != "" {
		role := permission.ParseRole(req.Role)
		if role == permission.RoleAnonymous {
			return UserResponse{}, fmt.Errorf("%w: role must be supervisor, frontdesk or customer", apperrors.ErrInvalidInput)
		}
		// The link invariants still hold: customers keep a client link,
		// staff keep an employee link.
		if role == permission.RoleCustomer && user.ClientID == nil {
			return UserResponse{}, fmt.Errorf("%w: a customer account requires a linked client", apperrors.ErrInvalidInput)
		}
		if role != permission.RoleCustomer && user.EmployeeID == nil {
			return UserResponse{}, fmt.Errorf("%w: a staff account requires a linked employee", apperrors.ErrInvalidInput)
		}
		user.Role = string(role)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(*user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", apperrors.ErrInvalidInput)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return notFound("user", err)
	}
	return s.userRepo.Delete(ctx, userID)
}

func toUserResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.ClientID != nil {
		v := u.ClientID.String()
		resp.ClientID = &v
	}
	if u.EmployeeID != nil {
		v := u.EmployeeID.String()
		resp.EmployeeID = &v
	}
	return resp
}
