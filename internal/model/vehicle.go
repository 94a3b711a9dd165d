package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vehicle state enum constants
const (
	VehicleAvailable   = "AVAILABLE"
	VehicleRented      = "RENTED"
	VehicleMaintenance = "MAINTENANCE"
)

// Vehicle represents a fleet vehicle. The plate is the natural key used
// across rentals, reservations and maintenance records.
type Vehicle struct {
	Plate     string          `gorm:"type:varchar(7);primaryKey" json:"plate"`
	Brand     string          `gorm:"type:varchar(100);not null" json:"brand"`
	Model     string          `gorm:"type:varchar(100);not null" json:"model"`
	Year      int             `gorm:"not null" json:"year"`
	DailyRate decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"daily_rate"`
	State     string          `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"state"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}
