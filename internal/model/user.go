package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a sign-in account. Profile data lives on the household member
// linked to it by email.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
