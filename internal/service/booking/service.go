package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
)

// Service plans and mutates appointments: it computes the legal (date, time)
// selection space for a doctor and performs the pending-create and guarded
// cancel transitions of the appointment lifecycle.
type Service struct {
	repo        repository.AppointmentRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewService(
	repo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	profileRepo repository.ProfileRepository,
) *Service {
	return &Service{
		repo:        repo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// GetSchedule returns the legal selection space for a doctor: the bookable
// dates within the horizon and the slot labels valid on any of them. A doctor
// with no available days has no legal dates, which is surfaced as an explicit
// error rather than a silently empty calendar.
func (s *Service) GetSchedule(ctx context.Context, doctorID uuid.UUID) (*model.DoctorSchedule, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if len(doctor.AvailableDays) == 0 {
		return nil, apperrors.Conflict("doctor has no available days", nil)
	}

	return &model.DoctorSchedule{
		DoctorID:      doctor.ID,
		AvailableDays: doctor.AvailableDays,
		Dates:         BookableDates(s.now(), doctor.AvailableDays),
		Slots:         GenerateSlots(doctor.WorkingHoursStart, doctor.WorkingHoursEnd),
	}, nil
}

// Book validates the chosen (date, time) pair against the doctor's legal
// selection space and creates a pending appointment. Validation failures are
// rejected before any write is attempted.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if req.Date == "" || req.Time == "" {
		return nil, apperrors.BadRequest("date and time are required", nil)
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid doctor ID", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if len(doctor.AvailableDays) == 0 {
		return nil, apperrors.Conflict("doctor has no available days", nil)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.now().Location())
	if err != nil {
		return nil, apperrors.BadRequest("invalid date format", err)
	}

	if !DateBookable(date, s.now(), doctor.AvailableDays) {
		return nil, apperrors.BadRequest("selected date is not bookable", nil)
	}

	if !slotValid(req.Time, doctor.WorkingHoursStart, doctor.WorkingHoursEnd) {
		return nil, apperrors.BadRequest("selected time is not a bookable slot", nil)
	}

	patient, err := s.ensurePatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		AppointmentTime: req.Time,
		Status:          model.AppointmentStatusPending,
		Notes:           normalizeNotes(req.Notes),
	}

	evt, err := s.buildEvent(ctx, model.EventAppointmentBooked, apt, doctor, patient)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateWithEvent(ctx, apt, evt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("this time slot is already booked", err)
		}
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	return apt, nil
}

// Cancel transitions one of the caller's appointments to cancelled. The
// transition is guarded server-side: only pending and confirmed appointments
// can be cancelled.
func (s *Service) Cancel(ctx context.Context, userID, appointmentID uuid.UUID) error {
	apt, err := s.repo.Get(ctx, appointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return apperrors.NotFound("appointment", err)
	}
	if apt.PatientID != patient.ID {
		return apperrors.NotFound("appointment", nil)
	}

	doctor, err := s.doctorRepo.Get(ctx, apt.DoctorID)
	if err != nil {
		return fmt.Errorf("failed to get doctor: %w", err)
	}

	evt, err := s.buildEvent(ctx, model.EventAppointmentCancelled, apt, doctor, patient)
	if err != nil {
		return err
	}

	if err := s.repo.CancelWithEvent(ctx, appointmentID, evt); err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			return apperrors.Conflict("appointment can no longer be cancelled", err)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return nil
}

// GetOwn returns one of the caller's appointments.
func (s *Service) GetOwn(ctx context.Context, userID, appointmentID uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, appointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil || apt.PatientID != patient.ID {
		return nil, apperrors.NotFound("appointment", err)
	}
	return apt, nil
}

// ListOwn returns the caller's appointments, optionally restricted to
// upcoming ones.
func (s *Service) ListOwn(ctx context.Context, userID uuid.UUID, upcomingOnly bool, limit int) ([]*model.Appointment, error) {
	patient, err := s.ensurePatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	filters := &model.AppointmentFilters{
		PatientID: patient.ID,
		Limit:     limit,
	}
	if upcomingOnly {
		today := startOfDay(s.now())
		filters.FromDate = &today
		filters.Status = []model.AppointmentStatus{
			model.AppointmentStatusPending,
			model.AppointmentStatusConfirmed,
		}
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// ensurePatient resolves the caller's patient record, provisioning an empty
// one on first contact so a patient is never blocked from booking.
func (s *Service) ensurePatient(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err == nil {
		return patient, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if _, err := s.patientRepo.EnsureForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to provision patient: %w", err)
	}

	patient, err = s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient after provisioning: %w", err)
	}
	return patient, nil
}

func (s *Service) buildEvent(ctx context.Context, eventType string, apt *model.Appointment, doctor *model.Doctor, patient *model.Patient) (*model.OutboxEvent, error) {
	profile, err := s.profileRepo.Get(ctx, patient.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}

	doctorName := ""
	if doctor.Profile != nil && doctor.Profile.FullName != nil {
		doctorName = *doctor.Profile.FullName
	}

	payload, err := json.Marshal(&model.AppointmentEvent{
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		DoctorID:      apt.DoctorID,
		PatientEmail:  profile.Email,
		DoctorName:    doctorName,
		Date:          apt.AppointmentDate.Format("2006-01-02"),
		Time:          apt.AppointmentTime,
		Status:        apt.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}, nil
}

func slotValid(slot, start, end string) bool {
	for _, s := range GenerateSlots(start, end) {
		if s == slot {
			return true
		}
	}
	return false
}

func normalizeNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return &notes
}
