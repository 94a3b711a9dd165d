package service

import (
	"context"
	"testing"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVehicleFixture(t *testing.T) (VehicleService, *fakeVehicleRepo, *fakeRentalRepo) {
	t.Helper()
	vehicles := newFakeVehicleRepo()
	rentals := newFakeRentalRepo()
	return NewVehicleService(vehicles, rentals), vehicles, rentals
}

func TestCreateVehicleNormalizesPlate(t *testing.T) {
	svc, _, _ := newVehicleFixture(t)

	vehicle, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
		Plate:     "ab123cd",
		Brand:     "Ford",
		Model:     "Fiesta",
		Year:      2021,
		DailyRate: "35",
	})
	require.NoError(t, err)
	assert.Equal(t, "AB123CD", vehicle.Plate)
	assert.Equal(t, model.VehicleAvailable, vehicle.State)
}

func TestCreateVehicleBadPlate(t *testing.T) {
	svc, _, _ := newVehicleFixture(t)

	for _, plate := range []string{"", "AB-123", "AB1", "ABCD12345"} {
		_, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
			Plate:     plate,
			Brand:     "Ford",
			Model:     "Fiesta",
			Year:      2021,
			DailyRate: "35",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "plate %q", plate)
	}
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	svc, _, _ := newVehicleFixture(t)

	req := CreateVehicleRequest{Plate: "AB123CD", Brand: "Ford", Model: "Fiesta", Year: 2021, DailyRate: "35"}
	_, err := svc.CreateVehicle(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateVehicle(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCreateVehicleNonPositiveRate(t *testing.T) {
	svc, _, _ := newVehicleFixture(t)

	for _, rate := range []string{"0", "-10", "abc"} {
		_, err := svc.CreateVehicle(context.Background(), CreateVehicleRequest{
			Plate:     "AB123CD",
			Brand:     "Ford",
			Model:     "Fiesta",
			Year:      2021,
			DailyRate: rate,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "rate %q", rate)
	}
}

func TestDeleteRentedVehicleBlocked(t *testing.T) {
	svc, vehicles, _ := newVehicleFixture(t)

	require.NoError(t, vehicles.Create(context.Background(), &model.Vehicle{
		Plate: "AB123CD", DailyRate: decimal.NewFromInt(35), State: model.VehicleRented,
	}))

	err := svc.DeleteVehicle(context.Background(), "AB123CD")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestIsAvailable(t *testing.T) {
	svc, vehicles, rentals := newVehicleFixture(t)

	require.NoError(t, vehicles.Create(context.Background(), &model.Vehicle{
		Plate: "AB123CD", DailyRate: decimal.NewFromInt(35), State: model.VehicleAvailable,
	}))
	require.NoError(t, rentals.Create(context.Background(), &model.Rental{
		ClientID:   uuid.New(),
		EmployeeID: uuid.New(),
		Plate:      "AB123CD",
		StartDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		TotalCost:  decimal.NewFromInt(175),
		Status:     model.RentalActive,
	}))

	available, err := svc.IsAvailable(context.Background(), "AB123CD", "2025-03-12", "2025-03-14")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.IsAvailable(context.Background(), "AB123CD", "2025-03-15", "2025-03-20")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestIsAvailableUnknownVehicle(t *testing.T) {
	svc, _, _ := newVehicleFixture(t)

	_, err := svc.IsAvailable(context.Background(), "ZZ999ZZ", "2025-03-12", "2025-03-14")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
