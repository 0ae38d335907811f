package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/model"
)

// Sentinel errors shared by all storage backends.
var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a conditional insert hits a uniqueness
	// constraint, e.g. two patients racing for the same doctor/date/time slot.
	ErrDuplicate = errors.New("record already exists")
	// ErrInvalidTransition is returned when a guarded status update matches
	// no rows because the current status forbids the transition.
	ErrInvalidTransition = errors.New("invalid status transition")
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
	ListAvailable(ctx context.Context) ([]*model.Doctor, error)
}

type PatientRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
	// EnsureForUser provisions an empty patient record for the identity if
	// none exists yet. Idempotent: a concurrent duplicate attempt is not an
	// error. Reports whether a row was actually inserted.
	EnsureForUser(ctx context.Context, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, patient *model.Patient) error
}

type AppointmentRepository interface {
	// CreateWithEvent inserts the appointment and its outbox event in one
	// transaction. Returns ErrDuplicate when the doctor/date/time slot is
	// already taken.
	CreateWithEvent(ctx context.Context, apt *model.Appointment, evt *model.OutboxEvent) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	// CancelWithEvent transitions the appointment to cancelled, guarded on
	// the current status being pending or confirmed, and records the outbox
	// event in the same transaction. Returns ErrInvalidTransition when the
	// guard rejects the update.
	CancelWithEvent(ctx context.Context, id uuid.UUID, evt *model.OutboxEvent) error
}

type PrescriptionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Prescription, error)
	GetItems(ctx context.Context, prescriptionID uuid.UUID) ([]*model.PrescriptionItem, error)
}

type RegistrationRepository interface {
	Upsert(ctx context.Context, reg *model.DoctorRegistration) error
	Get(ctx context.Context, userID uuid.UUID) (*model.DoctorRegistration, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type AuthCodeRepository interface {
	Create(ctx context.Context, code *model.AuthCode) error
	// Consume atomically deletes and returns the code. Expired or unknown
	// codes yield ErrNotFound.
	Consume(ctx context.Context, code string) (*model.AuthCode, error)
}

type OutboxRepository interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string, retryAt time.Time) error
}
