package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRolePatient UserRole = "patient"
	UserRoleDoctor  UserRole = "doctor"
)

// Profile is the role-tagged user record, one per authenticated identity.
// The id doubles as the identity id issued at signup.
type Profile struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Role         UserRole  `db:"role" json:"role"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	FullName string   `json:"full_name" binding:"required"`
	Phone    string   `json:"phone"`
	Role     UserRole `json:"role" binding:"required,oneof=patient doctor"`

	// Doctor-only signup fields, held as a pending registration until the
	// profile-completion step creates the doctor record.
	Specialty       string   `json:"specialty"`
	LicenseNumber   string   `json:"license_number"`
	Bio             string   `json:"bio"`
	ConsultationFee *float64 `json:"consultation_fee"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type TokenClaims struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}

// AuthCode is a one-time authorization code exchanged for a session at the
// callback endpoint. Consumed atomically on first use.
type AuthCode struct {
	Code      string    `db:"code" json:"code"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
