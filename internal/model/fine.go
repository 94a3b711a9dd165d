package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fine records damage or a penalty discovered during or after a rental.
// It always references an existing rental; the incident date may fall
// outside the rental's own date range (damage found after return).
type Fine struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RentalID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"rental_id"`
	Rental       *Rental         `gorm:"foreignKey:RentalID" json:"rental,omitempty"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	IncidentDate time.Time       `gorm:"type:date;not null" json:"incident_date"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
