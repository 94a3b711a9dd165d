package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Maintenance records a service interval for a vehicle. While a record is
// open (EndDate nil) the vehicle sits in the MAINTENANCE state and cannot
// be rented.
type Maintenance struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Plate       string          `gorm:"type:varchar(7);not null;index" json:"plate"`
	Vehicle     *Vehicle        `gorm:"foreignKey:Plate;references:Plate" json:"vehicle,omitempty"`
	ServiceType string          `gorm:"type:varchar(100);not null" json:"service_type"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"cost"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time      `gorm:"type:date" json:"end_date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
