package service

import (
	"context"
	"sync"
	"testing"

	"backend/internal/apperrors"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMaintenanceRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.Maintenance
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{records: make(map[uuid.UUID]model.Maintenance)}
}

func (f *fakeMaintenanceRepo) Create(ctx context.Context, m *model.Maintenance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.records[m.ID] = *m
	return nil
}

func (f *fakeMaintenanceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (f *fakeMaintenanceRepo) ListByPlate(ctx context.Context, plate string) ([]model.Maintenance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Maintenance
	for _, m := range f.records {
		if m.Plate == plate {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) Update(ctx context.Context, m *model.Maintenance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.records[m.ID] = *m
	return nil
}

func newMaintenanceFixture(t *testing.T) (MaintenanceService, *fakeVehicleRepo) {
	t.Helper()

	vehicles := newFakeVehicleRepo()
	require.NoError(t, vehicles.Create(context.Background(), &model.Vehicle{
		Plate:     "ABC1234",
		Brand:     "Toyota",
		Model:     "Corolla",
		Year:      2022,
		DailyRate: decimal.NewFromInt(50),
		State:     model.VehicleAvailable,
	}))

	svc := NewMaintenanceService(newFakeMaintenanceRepo(), vehicles, &fakeTxManager{}, nil)
	return svc, vehicles
}

func TestOpenMaintenanceParksVehicle(t *testing.T) {
	svc, vehicles := newMaintenanceFixture(t)

	record, err := svc.OpenMaintenance(context.Background(), OpenMaintenanceRequest{
		Plate:       "ABC1234",
		ServiceType: "oil change",
		Cost:        "80",
		StartDate:   "2025-02-01",
	})
	require.NoError(t, err)
	assert.Nil(t, record.EndDate)
	assert.Equal(t, model.VehicleMaintenance, vehicles.stateOf("ABC1234"))
}

func TestOpenMaintenanceRentedVehicleRejected(t *testing.T) {
	svc, vehicles := newMaintenanceFixture(t)
	require.NoError(t, vehicles.SetState(context.Background(), "ABC1234", model.VehicleRented))

	_, err := svc.OpenMaintenance(context.Background(), OpenMaintenanceRequest{
		Plate:       "ABC1234",
		ServiceType: "oil change",
		StartDate:   "2025-02-01",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestOpenMaintenanceTwiceRejected(t *testing.T) {
	svc, _ := newMaintenanceFixture(t)

	req := OpenMaintenanceRequest{Plate: "ABC1234", ServiceType: "brakes", StartDate: "2025-02-01"}
	_, err := svc.OpenMaintenance(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.OpenMaintenance(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestCloseMaintenanceReleasesVehicle(t *testing.T) {
	svc, vehicles := newMaintenanceFixture(t)

	record, err := svc.OpenMaintenance(context.Background(), OpenMaintenanceRequest{
		Plate:       "ABC1234",
		ServiceType: "oil change",
		StartDate:   "2025-02-01",
	})
	require.NoError(t, err)

	closed, err := svc.CloseMaintenance(context.Background(), record.ID, "2025-02-03")
	require.NoError(t, err)
	require.NotNil(t, closed.EndDate)
	assert.Equal(t, "2025-02-03", *closed.EndDate)
	assert.Equal(t, model.VehicleAvailable, vehicles.stateOf("ABC1234"))
}

func TestCloseMaintenanceTwiceRejected(t *testing.T) {
	svc, _ := newMaintenanceFixture(t)

	record, err := svc.OpenMaintenance(context.Background(), OpenMaintenanceRequest{
		Plate:       "ABC1234",
		ServiceType: "oil change",
		StartDate:   "2025-02-01",
	})
	require.NoError(t, err)

	_, err = svc.CloseMaintenance(context.Background(), record.ID, "2025-02-03")
	require.NoError(t, err)
	_, err = svc.CloseMaintenance(context.Background(), record.ID, "2025-02-04")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestCloseMaintenanceBeforeStartRejected(t *testing.T) {
	svc, _ := newMaintenanceFixture(t)

	record, err := svc.OpenMaintenance(context.Background(), OpenMaintenanceRequest{
		Plate:       "ABC1234",
		ServiceType: "oil change",
		StartDate:   "2025-02-10",
	})
	require.NoError(t, err)

	_, err = svc.CloseMaintenance(context.Background(), record.ID, "2025-02-05")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}
