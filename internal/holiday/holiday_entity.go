package holiday

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePublic  = "PUBLIC"
	TypeCompany = "COMPANY"
)

// Holiday is a read-only input to business-day counting. Recurring holidays
// match on (month, day) every year regardless of the stored year.
type Holiday struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100)"`
	Date           time.Time `gorm:"type:date;not null"`
	Type           string    `gorm:"type:varchar(20);not null;default:'PUBLIC'"`
	Recurring      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}
