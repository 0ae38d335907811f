package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
)

const (
	listCacheKey   = "doctors:available"
	cacheTTL       = 1 * time.Minute
	cacheSweepRate = 5 * time.Minute
)

type Service struct {
	repo    repository.DoctorRepository
	regRepo repository.RegistrationRepository
	cache   *gocache.Cache
}

func NewService(repo repository.DoctorRepository, regRepo repository.RegistrationRepository) *Service {
	return &Service{
		repo:    repo,
		regRepo: regRepo,
		cache:   gocache.New(cacheTTL, cacheSweepRate),
	}
}

// ListAvailable returns bookable doctors, newest first. The listing is the
// hottest read in the portal, so results are cached briefly in-process.
func (s *Service) ListAvailable(ctx context.Context) ([]*model.Doctor, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Doctor), nil
	}

	doctors, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.Set(listCacheKey, doctors, gocache.DefaultExpiration)
	return doctors, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("doctor", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

// CompleteProfile creates the doctor record for a doctor-role identity that
// does not have one yet, consuming the pending registration stored at signup.
// Explicit request fields win over the stored registration.
func (s *Service) CompleteProfile(ctx context.Context, userID uuid.UUID, req *model.CompleteDoctorProfileRequest) (*model.Doctor, error) {
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.Conflict("doctor profile already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check doctor record: %w", err)
	}

	doctor := &model.Doctor{
		UserID:            userID,
		Specialty:         req.Specialty,
		LicenseNumber:     req.LicenseNumber,
		ConsultationFee:   req.ConsultationFee,
		AvailableDays:     req.AvailableDays,
		WorkingHoursStart: req.WorkingHoursStart,
		WorkingHoursEnd:   req.WorkingHoursEnd,
		IsAvailable:       true,
	}
	if req.Bio != "" {
		doctor.Bio = &req.Bio
	}

	reg, err := s.regRepo.Get(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get pending registration: %w", err)
	}
	if reg != nil {
		if doctor.Specialty == "" {
			doctor.Specialty = reg.Specialty
		}
		if doctor.LicenseNumber == "" {
			doctor.LicenseNumber = reg.LicenseNumber
		}
		if doctor.ConsultationFee == 0 {
			doctor.ConsultationFee = reg.ConsultationFee
		}
		if doctor.Bio == nil {
			doctor.Bio = reg.Bio
		}
	}

	if doctor.Specialty == "" || doctor.LicenseNumber == "" || doctor.ConsultationFee <= 0 {
		return nil, apperrors.BadRequest("specialty, license number and consultation fee are required", nil)
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("doctor profile already exists", err)
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	if err := s.regRepo.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to consume registration: %w", err)
	}

	s.cache.Delete(listCacheKey)
	return doctor, nil
}
