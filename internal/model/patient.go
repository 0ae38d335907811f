package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient extends a patient-role profile with medical metadata. Every field
// beyond the keys is optional: a patient record is auto-provisioned empty at
// first resolution and must never block booking.
type Patient struct {
	Base
	UserID                uuid.UUID  `db:"user_id" json:"user_id"`
	DateOfBirth           *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	BloodType             *string    `db:"blood_type" json:"blood_type,omitempty"`
	Allergies             *string    `db:"allergies" json:"allergies,omitempty"`
	MedicalConditions     *string    `db:"medical_conditions" json:"medical_conditions,omitempty"`
	EmergencyContactName  *string    `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`

	Profile *Profile `db:"-" json:"profile,omitempty"`
}

type UpdatePatientRequest struct {
	DateOfBirth           *time.Time `json:"date_of_birth"`
	BloodType             *string    `json:"blood_type"`
	Allergies             *string    `json:"allergies"`
	MedicalConditions     *string    `json:"medical_conditions"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
}
