package model

import (
	"github.com/google/uuid"
)

// Prescription is read-only from the patient surface: doctors issue them
// elsewhere, patients view them here.
type Prescription struct {
	Base
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`

	Items  []*PrescriptionItem `db:"-" json:"items,omitempty"`
	Doctor *Doctor             `db:"-" json:"doctor,omitempty"`
}

type PrescriptionItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescription_id"`
	MedicationName string    `db:"medication_name" json:"medication_name"`
	Dosage         string    `db:"dosage" json:"dosage"`
	Frequency      string    `db:"frequency" json:"frequency"`
	Duration       string    `db:"duration" json:"duration"`
	Instructions   *string   `db:"instructions" json:"instructions,omitempty"`
}
