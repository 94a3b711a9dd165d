package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a client's request for a future rental. It does not hold
// vehicle state; availability is only checked when the rental is created.
type Reservation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Plate      *string   `gorm:"type:varchar(7);index" json:"plate"` // optional preferred vehicle
	Vehicle    *Vehicle  `gorm:"foreignKey:Plate;references:Plate" json:"vehicle,omitempty"`
	ReservedAt time.Time `gorm:"type:date;not null" json:"reserved_at"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
