package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/apperrors"
	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type ClientRentalReport struct {
	ClientID    string           `json:"client_id"`
	ClientName  string           `json:"client_name"`
	RentalCount int64            `json:"rental_count"`
	TotalSpent  string           `json:"total_spent"`
	TotalFines  string           `json:"total_fines"`
	Rentals     []RentalResponse `json:"rentals"`
}

type MonthlyRevenue struct {
	Month   int    `json:"month"`
	Rentals int64  `json:"rentals"`
	Revenue string `json:"revenue"`
}

type FleetReport struct {
	Available   int64            `json:"available"`
	Rented      int64            `json:"rented"`
	Maintenance int64            `json:"maintenance"`
	TopVehicles []VehicleRanking `json:"top_vehicles"`
}

type VehicleRanking struct {
	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	RentalCount int64  `json:"rental_count"`
	Revenue     string `json:"revenue"`
}

// --- Interface ---

type ReportService interface {
	RentalsByClient(ctx context.Context, clientID string) (ClientRentalReport, error)
	RevenueByMonth(ctx context.Context, year int) ([]MonthlyRevenue, error)
	FleetUtilization(ctx context.Context) (FleetReport, error)
}

type reportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) ReportService {
	return &reportService{db: db}
}

// RentalsByClient aggregates a client's rental history with fine totals.
func (s *reportService) RentalsByClient(ctx context.Context, clientID string) (ClientRentalReport, error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return ClientRentalReport{}, fmt.Errorf("%w: invalid client id", apperrors.ErrInvalidInput)
	}

	var client model.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return ClientRentalReport{}, notFound("client", err)
	}

	var rentals []model.Rental
	if err := s.db.WithContext(ctx).Preload("Vehicle").
		Where("client_id = ?", id).
		Order("start_date desc").
		Find(&rentals).Error; err != nil {
		return ClientRentalReport{}, err
	}

	var fineTotal struct {
		Value decimal.Decimal
	}
	s.db.WithContext(ctx).Table("fines").
		Select("COALESCE(SUM(fines.amount), 0) as value").
		Joins("JOIN rentals ON rentals.id = fines.rental_id").
		Where("rentals.client_id = ?", id).
		Scan(&fineTotal)

	report := ClientRentalReport{
		ClientID:    client.ID.String(),
		ClientName:  client.FirstName + " " + client.LastName,
		RentalCount: int64(len(rentals)),
		TotalFines:  fineTotal.Value.String(),
	}

	total := decimal.Zero
	for _, r := range rentals {
		if r.Status != model.RentalCancelled {
			total = total.Add(r.TotalCost)
		}
		report.Rentals = append(report.Rentals, toRentalResponse(r))
	}
	report.TotalSpent = total.String()
	return report, nil
}

// RevenueByMonth buckets non-cancelled rental revenue by start month.
func (s *reportService) RevenueByMonth(ctx context.Context, year int) ([]MonthlyRevenue, error) {
	current := time.Now().Year()
	if year <= 0 {
		year = current
	}
	if year > current {
		return nil, fmt.Errorf("%w: year must not be in the future", apperrors.ErrInvalidInput)
	}

	var rows []struct {
		Month   int
		Rentals int64
		Revenue decimal.Decimal
	}
	err := s.db.WithContext(ctx).Table("rentals").
		Select("EXTRACT(MONTH FROM start_date)::int as month, COUNT(*) as rentals, COALESCE(SUM(total_cost), 0) as revenue").
		Where("status <> ? AND EXTRACT(YEAR FROM start_date) = ?", model.RentalCancelled, year).
		Group("month").
		Order("month asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Fill all twelve months so charts render empty buckets too
	byMonth := make(map[int]MonthlyRevenue, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = MonthlyRevenue{Month: r.Month, Rentals: r.Rentals, Revenue: r.Revenue.String()}
	}
	result := make([]MonthlyRevenue, 0, 12)
	for m := 1; m <= 12; m++ {
		if row, ok := byMonth[m]; ok {
			result = append(result, row)
		} else {
			result = append(result, MonthlyRevenue{Month: m, Rentals: 0, Revenue: "0"})
		}
	}
	return result, nil
}

// FleetUtilization summarizes fleet state counts and the most rented
// vehicles.
func (s *reportService) FleetUtilization(ctx context.Context) (FleetReport, error) {
	var report FleetReport

	count := func(state string) (int64, error) {
		var n int64
		err := s.db.WithContext(ctx).Model(&model.Vehicle{}).Where("state = ?", state).Count(&n).Error
		return n, err
	}

	var err error
	if report.Available, err = count(model.VehicleAvailable); err != nil {
		return FleetReport{}, err
	}
	if report.Rented, err = count(model.VehicleRented); err != nil {
		return FleetReport{}, err
	}
	if report.Maintenance, err = count(model.VehicleMaintenance); err != nil {
		return FleetReport{}, err
	}

	var rows []struct {
		Plate       string
		Brand       string
		Model       string
		RentalCount int64
		Revenue     decimal.Decimal
	}
	err = s.db.WithContext(ctx).Table("rentals").
		Select("vehicles.plate, vehicles.brand, vehicles.model, COUNT(rentals.id) as rental_count, COALESCE(SUM(rentals.total_cost), 0) as revenue").
		Joins("JOIN vehicles ON vehicles.plate = rentals.plate").
		Where("rentals.status <> ?", model.RentalCancelled).
		Group("vehicles.plate, vehicles.brand, vehicles.model").
		Order("rental_count DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return FleetReport{}, err
	}

	for _, r := range rows {
		report.TopVehicles = append(report.TopVehicles, VehicleRanking{
			Plate:       r.Plate,
			Brand:       r.Brand,
			Model:       r.Model,
			RentalCount: r.RentalCount,
			Revenue:     r.Revenue.String(),
		})
	}
	return report, nil
}
