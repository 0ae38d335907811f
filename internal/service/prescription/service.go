package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
)

// Service exposes read-only prescription views for the patient surface.
type Service struct {
	repo        repository.PrescriptionRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewService(
	repo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
	}
}

// ListOwn returns the caller's prescriptions, newest first.
func (s *Service) ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Prescription, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return []*model.Prescription{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	prescriptions, err := s.repo.ListForPatient(ctx, patient.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

// GetOwn returns one of the caller's prescriptions with its items and the
// issuing doctor attached.
func (s *Service) GetOwn(ctx context.Context, userID, prescriptionID uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, prescriptionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("prescription", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil || prescription.PatientID != patient.ID {
		return nil, apperrors.NotFound("prescription", err)
	}

	items, err := s.repo.GetItems(ctx, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription items: %w", err)
	}
	prescription.Items = items

	if doctor, err := s.doctorRepo.Get(ctx, prescription.DoctorID); err == nil {
		prescription.Doctor = doctor
	}

	return prescription, nil
}
