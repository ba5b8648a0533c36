package model

import (
	"github.com/google/uuid"
)

// Member is a person in a household that tasks can be assigned to.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName   string    `gorm:"not null"`
	LastName    string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	AvatarColor string

	Household Household `gorm:"foreignKey:HouseholdID"`
}
