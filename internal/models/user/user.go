package user

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись. PasswordHash никогда не сериализуется наружу.
type User struct {
	ID           uuid.UUID  `json:"_id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	FullName     string     `json:"fullName" db:"full_name"`
	MobileNumber string     `json:"mobileNumber,omitempty" db:"mobile_number"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}
