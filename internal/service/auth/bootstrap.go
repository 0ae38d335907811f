package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
)

// Landing destinations decided at the authentication boundary.
const (
	PathDoctorHome      = "/doctor"
	PathCompleteProfile = "/doctor/complete-profile"
	PathPatientHome     = "/patient"
	PathAuthError       = "/auth/error"
	PathRoot            = "/"
)

// ResolveLanding decides where a freshly authenticated identity lands and,
// as a side effect, guarantees that every patient-role identity has exactly
// one patient record.
//
// Doctors are never auto-provisioned here: a doctor record requires
// specialty, license and fee, so doctors without one are routed to the
// profile-completion step instead.
func (s *Service) ResolveLanding(ctx context.Context, userID uuid.UUID, next string) (string, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		// The only hard error path: an identity without a profile is an
		// unrecoverable precondition violation.
		return PathAuthError, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve profile: %w", err)
	}

	switch profile.Role {
	case model.UserRoleDoctor:
		if _, err := s.doctorRepo.GetByUserID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return PathCompleteProfile, nil
			}
			return "", fmt.Errorf("failed to resolve doctor record: %w", err)
		}
		return PathDoctorHome, nil

	case model.UserRolePatient:
		if _, err := s.patientRepo.EnsureForUser(ctx, userID); err != nil {
			return "", fmt.Errorf("failed to provision patient record: %w", err)
		}
		return PathPatientHome, nil

	default:
		if next == "" {
			return PathRoot, nil
		}
		return next, nil
	}
}
