package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Doctor extends a doctor-role profile with scheduling attributes.
// AvailableDays holds lowercase weekday names; an empty set means the doctor
// has no bookable dates at all.
type Doctor struct {
	Base
	UserID            uuid.UUID      `db:"user_id" json:"user_id"`
	Specialty         string         `db:"specialty" json:"specialty"`
	LicenseNumber     string         `db:"license_number" json:"license_number"`
	Bio               *string        `db:"bio" json:"bio,omitempty"`
	ConsultationFee   float64        `db:"consultation_fee" json:"consultation_fee"`
	AvailableDays     pq.StringArray `db:"available_days" json:"available_days"`
	WorkingHoursStart string         `db:"working_hours_start" json:"working_hours_start"`
	WorkingHoursEnd   string         `db:"working_hours_end" json:"working_hours_end"`
	IsAvailable       bool           `db:"is_available" json:"is_available"`

	Profile *Profile `db:"-" json:"profile,omitempty"`
}

// DoctorRegistration holds doctor signup fields supplied before email
// confirmation, keyed by the identity id and consumed by profile completion.
type DoctorRegistration struct {
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	Specialty       string    `db:"specialty" json:"specialty"`
	LicenseNumber   string    `db:"license_number" json:"license_number"`
	Bio             *string   `db:"bio" json:"bio,omitempty"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// CompleteDoctorProfileRequest finishes a doctor signup. Specialty, license
// and fee may be omitted here when the pending registration stored at signup
// already carries them.
type CompleteDoctorProfileRequest struct {
	Specialty         string   `json:"specialty"`
	LicenseNumber     string   `json:"license_number"`
	Bio               string   `json:"bio"`
	ConsultationFee   float64  `json:"consultation_fee" binding:"omitempty,gt=0"`
	AvailableDays     []string `json:"available_days" binding:"dive,weekday"`
	WorkingHoursStart string   `json:"working_hours_start" binding:"required"`
	WorkingHoursEnd   string   `json:"working_hours_end" binding:"required"`
}

// DoctorSchedule is the legal selection space the booking form renders:
// bookable dates inside the horizon plus the slot labels for any of them.
type DoctorSchedule struct {
	DoctorID      uuid.UUID `json:"doctor_id"`
	AvailableDays []string  `json:"available_days"`
	Dates         []string  `json:"dates"`
	Slots         []string  `json:"slots"`
}
