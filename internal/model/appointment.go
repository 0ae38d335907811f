package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booking between a patient and a doctor at a calendar
// date plus a 30-minute slot label. Lifecycle: created as pending, the
// doctor confirms/completes, either side cancels while pending or confirmed.
// Appointments are never deleted, only transitioned to cancelled.
type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`

	Doctor  *Doctor  `db:"-" json:"doctor,omitempty"`
	Patient *Patient `db:"-" json:"patient,omitempty"`
}

// CanCancel reports whether the status machine admits a transition to
// cancelled. Completed and already-cancelled appointments are terminal.
func (a *Appointment) CanCancel() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes" binding:"max=1000"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    []AppointmentStatus
	FromDate  *time.Time
	Limit     int
}

// AppointmentEvent is the outbox payload for appointment lifecycle events.
type AppointmentEvent struct {
	AppointmentID uuid.UUID         `json:"appointment_id"`
	PatientID     uuid.UUID         `json:"patient_id"`
	DoctorID      uuid.UUID         `json:"doctor_id"`
	PatientEmail  string            `json:"patient_email"`
	DoctorName    string            `json:"doctor_name"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
}

const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
)
