package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rental status enum constants
const (
	RentalActive    = "ACTIVE"
	RentalCompleted = "COMPLETED"
	RentalCancelled = "CANCELLED"
)

// Rental ties a client, an employee and a vehicle together over a date
// range. A vehicle has at most one ACTIVE rental at any time.
type Rental struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee   *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Plate      string          `gorm:"type:varchar(7);not null;index" json:"plate"`
	Vehicle    *Vehicle        `gorm:"foreignKey:Plate;references:Plate" json:"vehicle,omitempty"`
	StartDate  time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time       `gorm:"type:date;not null" json:"end_date"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_cost"`
	Status     string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	Fines      []Fine          `gorm:"foreignKey:RentalID" json:"fines,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
