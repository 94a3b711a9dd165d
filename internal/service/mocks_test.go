package service

import (
	"context"
	"sync"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The fakes below are stateful in-memory repositories. They return
// gorm.ErrRecordNotFound on misses so the services exercise the same
// error mapping as with the real gorm-backed implementations.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- vehicles ---

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]model.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]model.Vehicle)}
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles[v.Plate] = *v
	return nil
}

func (f *fakeVehicleRepo) FindByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[plate]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (f *fakeVehicleRepo) List(ctx context.Context, state string, page, limit int) ([]model.Vehicle, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Vehicle
	for _, v := range f.vehicles {
		if state == "" || v.State == state {
			out = append(out, v)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeVehicleRepo) Update(ctx context.Context, v *model.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[v.Plate]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.vehicles[v.Plate] = *v
	return nil
}

func (f *fakeVehicleRepo) UpdateState(ctx context.Context, plate, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[plate]
	if !ok || v.State != from {
		return false, nil
	}
	v.State = to
	f.vehicles[plate] = v
	return true, nil
}

func (f *fakeVehicleRepo) SetState(ctx context.Context, plate, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[plate]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.State = to
	f.vehicles[plate] = v
	return nil
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, plate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.vehicles, plate)
	return nil
}

func (f *fakeVehicleRepo) stateOf(plate string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vehicles[plate].State
}

// --- rentals ---

type fakeRentalRepo struct {
	mu      sync.Mutex
	rentals map[uuid.UUID]model.Rental
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: make(map[uuid.UUID]model.Rental)}
}

func (f *fakeRentalRepo) Create(ctx context.Context, r *model.Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.rentals[r.ID] = *r
	return nil
}

func (f *fakeRentalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rentals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeRentalRepo) List(ctx context.Context, status string, page, limit int) ([]model.Rental, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Rental
	for _, r := range f.rentals {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRentalRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Rental
	for _, r := range f.rentals {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRentalRepo) ListByPlate(ctx context.Context, plate string) ([]model.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Rental
	for _, r := range f.rentals {
		if r.Plate == plate {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRentalRepo) CountActiveOverlapping(ctx context.Context, plate string, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rentals {
		if r.Plate == plate && r.Status == model.RentalActive &&
			r.StartDate.Before(end) && r.EndDate.After(start) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRentalRepo) Update(ctx context.Context, r *model.Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rentals[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.rentals[r.ID] = *r
	return nil
}

// --- clients ---

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[uuid.UUID]model.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]model.Client)}
}

func (f *fakeClientRepo) Create(ctx context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeClientRepo) FindByDNI(ctx context.Context, dni string) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.DNI == dni {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClientRepo) List(ctx context.Context, page, limit int) ([]model.Client, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClientRepo) Search(ctx context.Context, q string) ([]model.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, id)
	return nil
}

// --- employees ---

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[uuid.UUID]model.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uuid.UUID]model.Employee)}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.employees[e.ID] = *e
	return nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakeEmployeeRepo) FindByDNI(ctx context.Context, dni string) (*model.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.DNI == dni {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, page, limit int) ([]model.Employee, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.employees[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.employees[e.ID] = *e
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.employees, id)
	return nil
}

// --- fines ---

type fakeFineRepo struct {
	mu    sync.Mutex
	fines map[uuid.UUID]model.Fine
}

func newFakeFineRepo() *fakeFineRepo {
	return &fakeFineRepo{fines: make(map[uuid.UUID]model.Fine)}
}

func (f *fakeFineRepo) Create(ctx context.Context, fine *model.Fine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fine.ID == uuid.Nil {
		fine.ID = uuid.New()
	}
	if fine.CreatedAt.IsZero() {
		fine.CreatedAt = time.Now()
	}
	f.fines[fine.ID] = *fine
	return nil
}

func (f *fakeFineRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Fine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fine, ok := f.fines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &fine, nil
}

func (f *fakeFineRepo) List(ctx context.Context, page, limit int) ([]model.Fine, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Fine
	for _, fine := range f.fines {
		out = append(out, fine)
	}
	return out, int64(len(out)), nil
}

func (f *fakeFineRepo) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]model.Fine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Fine
	for _, fine := range f.fines {
		if fine.RentalID == rentalID {
			out = append(out, fine)
		}
	}
	return out, nil
}

func (f *fakeFineRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Fine, error) {
	return nil, nil
}
