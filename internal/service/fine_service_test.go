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

func newFineFixture(t *testing.T) (FineService, *fakeRentalRepo, uuid.UUID) {
	t.Helper()

	rentals := newFakeRentalRepo()
	fines := newFakeFineRepo()

	rental := model.Rental{
		ClientID:   uuid.New(),
		EmployeeID: uuid.New(),
		Plate:      "ABC1234",
		StartDate:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		TotalCost:  decimal.NewFromInt(150),
		Status:     model.RentalCompleted,
	}
	require.NoError(t, rentals.Create(context.Background(), &rental))

	return NewFineService(fines, rentals), rentals, rental.ID
}

func TestAttachFine(t *testing.T) {
	svc, _, rentalID := newFineFixture(t)

	fine, err := svc.AttachFine(context.Background(), AttachFineRequest{
		RentalID:     rentalID.String(),
		Description:  "scratched rear bumper",
		Amount:       "75.25",
		IncidentDate: "2025-01-12",
	})
	require.NoError(t, err)
	assert.Equal(t, rentalID.String(), fine.RentalID)
	assert.Equal(t, "75.25", fine.Amount)
	assert.Equal(t, "ABC1234", fine.Plate)
}

func TestAttachFineZeroAmount(t *testing.T) {
	svc, _, rentalID := newFineFixture(t)

	_, err := svc.AttachFine(context.Background(), AttachFineRequest{
		RentalID:     rentalID.String(),
		Description:  "late return",
		Amount:       "0",
		IncidentDate: "2025-01-12",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestAttachFineNegativeAmount(t *testing.T) {
	svc, _, rentalID := newFineFixture(t)

	_, err := svc.AttachFine(context.Background(), AttachFineRequest{
		RentalID:     rentalID.String(),
		Description:  "late return",
		Amount:       "-5",
		IncidentDate: "2025-01-12",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestAttachFineBlankDescription(t *testing.T) {
	svc, _, rentalID := newFineFixture(t)

	_, err := svc.AttachFine(context.Background(), AttachFineRequest{
		RentalID:     rentalID.String(),
		Description:  "   ",
		Amount:       "20",
		IncidentDate: "2025-01-12",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAttachFineUnknownRental(t *testing.T) {
	svc, _, _ := newFineFixture(t)

	_, err := svc.AttachFine(context.Background(), AttachFineRequest{
		RentalID:     uuid.NewString(),
		Description:  "missing fuel",
		Amount:       "30",
		IncidentDate: "2025-01-12",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Damage is often reported days after the rental closed; the incident
// date is not constrained to the rental window.
func TestAttachFineAfterRentalWindow(t *testing.T) {
	svc, _, rentalID := newFineFixture(t)

	fine, err := svc.AttachFine(context.Background(), AttachFineRequest{
		RentalID:     rentalID.String(),
		Description:  "toll violation notice",
		Amount:       "12.40",
		IncidentDate: "2025-02-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03", fine.IncidentDate)
}

func TestListFinesByRental(t *testing.T) {
	svc, _, rentalID := newFineFixture(t)

	for _, amount := range []string{"10", "20"} {
		_, err := svc.AttachFine(context.Background(), AttachFineRequest{
			RentalID:     rentalID.String(),
			Description:  "damage",
			Amount:       amount,
			IncidentDate: "2025-01-12",
		})
		require.NoError(t, err)
	}

	fines, err := svc.ListByRental(context.Background(), rentalID)
	require.NoError(t, err)
	assert.Len(t, fines, 2)
}
