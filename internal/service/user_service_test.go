package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uuid.UUID]model.User
	tokens map[string]model.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uuid.UUID]model.User),
		tokens: make(map[string]model.RefreshToken),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.Token] = *token
	return nil
}

func (f *fakeUserRepo) FindRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f *fakeUserRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func (f *fakeUserRepo) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return nil
}

func newUserFixture(t *testing.T) (UserService, uuid.UUID, uuid.UUID) {
	t.Helper()

	users := newFakeUserRepo()
	clients := newFakeClientRepo()
	employees := newFakeEmployeeRepo()

	client := model.Client{FirstName: "Maria", LastName: "Lopez", DNI: "30111222"}
	require.NoError(t, clients.Create(context.Background(), &client))
	employee := model.Employee{FirstName: "Juan", LastName: "Perez", DNI: "27999888"}
	require.NoError(t, employees.Create(context.Background(), &employee))

	return NewUserService(users, clients, employees), client.ID, employee.ID
}

func TestCreateCustomerAccountRequiresClient(t *testing.T) {
	svc, clientID, _ := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "maria.l",
		Password: "secret1",
		Role:     "customer",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "maria.l",
		Password: "secret1",
		Role:     "customer",
		ClientID: clientID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, user.ClientID)
	assert.Equal(t, clientID.String(), *user.ClientID)
}

func TestCreateStaffAccountRequiresEmployee(t *testing.T) {
	svc, _, employeeID := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "juan.p",
		Password: "secret1",
		Role:     "frontdesk",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	user, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username:   "juan.p",
		Password:   "secret1",
		Role:       "frontdesk",
		EmployeeID: employeeID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "frontdesk", user.Role)
}

func TestCreateUserRejectsBadUsername(t *testing.T) {
	svc, _, employeeID := newUserFixture(t)

	for _, username := range []string{"ab", "with space", "way_too_long_username_x"} {
		_, err := svc.CreateUser(context.Background(), CreateUserRequest{
			Username:   username,
			Password:   "secret1",
			Role:       "frontdesk",
			EmployeeID: employeeID.String(),
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "username %q", username)
	}
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svc, _, employeeID := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username:   "juan.p",
		Password:   "12345",
		Role:       "frontdesk",
		EmployeeID: employeeID.String(),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _, employeeID := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username:   "juan.p",
		Password:   "secret1",
		Role:       "admin",
		EmployeeID: employeeID.String(),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _, employeeID := newUserFixture(t)

	req := CreateUserRequest{
		Username:   "juan.p",
		Password:   "secret1",
		Role:       "frontdesk",
		EmployeeID: employeeID.String(),
	}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
