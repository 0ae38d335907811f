package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	"github.com/tabibi/patient-api/internal/service/booking"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
)

const dashboardLimit = 3

// Dashboard aggregates what the patient home screen shows.
type Dashboard struct {
	Profile              *model.Profile        `json:"profile"`
	Patient              *model.Patient        `json:"patient"`
	UpcomingAppointments []*model.Appointment  `json:"upcoming_appointments"`
	RecentPrescriptions  []*model.Prescription `json:"recent_prescriptions"`
}

type Service struct {
	repo             repository.PatientRepository
	profileRepo      repository.ProfileRepository
	prescriptionRepo repository.PrescriptionRepository
	bookingSvc       *booking.Service
}

func NewService(
	repo repository.PatientRepository,
	profileRepo repository.ProfileRepository,
	prescriptionRepo repository.PrescriptionRepository,
	bookingSvc *booking.Service,
) *Service {
	return &Service{
		repo:             repo,
		profileRepo:      profileRepo,
		prescriptionRepo: prescriptionRepo,
		bookingSvc:       bookingSvc,
	}
}

// GetDashboard returns the patient home view: the next few upcoming
// appointments and the most recent prescriptions.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	upcoming, err := s.bookingSvc.ListOwn(ctx, userID, true, dashboardLimit)
	if err != nil {
		return nil, err
	}

	patient, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	prescriptions, err := s.prescriptionRepo.ListForPatient(ctx, patient.ID, dashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	return &Dashboard{
		Profile:              profile,
		Patient:              patient,
		UpcomingAppointments: upcoming,
		RecentPrescriptions:  prescriptions,
	}, nil
}

// Get returns the caller's patient record, provisioning it if absent.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return patient, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if _, err := s.repo.EnsureForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to provision patient: %w", err)
	}
	patient, err = s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient after provisioning: %w", err)
	}
	return patient, nil
}

// Update applies partial demographic updates to the caller's record.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.BloodType != nil {
		patient.BloodType = req.BloodType
	}
	if req.Allergies != nil {
		patient.Allergies = req.Allergies
	}
	if req.MedicalConditions != nil {
		patient.MedicalConditions = req.MedicalConditions
	}
	if req.EmergencyContactName != nil {
		patient.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		patient.EmergencyContactPhone = req.EmergencyContactPhone
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}
