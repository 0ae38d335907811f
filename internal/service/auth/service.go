package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	"github.com/tabibi/patient-api/pkg/auth"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
	"github.com/tabibi/patient-api/pkg/security"
)

const authCodeExpiry = 15 * time.Minute

type Service struct {
	profileRepo repository.ProfileRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	regRepo     repository.RegistrationRepository
	codeRepo    repository.AuthCodeRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	expiryHours int
}

func NewService(
	profileRepo repository.ProfileRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	regRepo repository.RegistrationRepository,
	codeRepo repository.AuthCodeRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	expiryHours int,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		regRepo:     regRepo,
		codeRepo:    codeRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		expiryHours: expiryHours,
	}
}

// Register creates the identity's profile and, for doctor signups, stashes
// the doctor-only fields as a pending registration keyed by the identity id.
// It returns a one-time authorization code standing in for the confirmation
// link the user follows to /auth/callback.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (string, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", apperrors.BadRequest("invalid password", err)
	}

	profile := &model.Profile{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if req.FullName != "" {
		profile.FullName = &req.FullName
	}
	if req.Phone != "" {
		profile.Phone = &req.Phone
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apperrors.Conflict("email is already registered", err)
		}
		return "", fmt.Errorf("failed to create profile: %w", err)
	}

	if req.Role == model.UserRoleDoctor {
		reg := &model.DoctorRegistration{
			UserID:        profile.ID,
			Specialty:     req.Specialty,
			LicenseNumber: req.LicenseNumber,
		}
		if req.Bio != "" {
			reg.Bio = &req.Bio
		}
		if req.ConsultationFee != nil {
			reg.ConsultationFee = *req.ConsultationFee
		}
		if err := s.regRepo.Upsert(ctx, reg); err != nil {
			return "", fmt.Errorf("failed to store doctor registration: %w", err)
		}
	}

	return s.issueAuthCode(ctx, profile.ID)
}

// Login verifies credentials and issues a session token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	if err := s.hasher.Compare(profile.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	return s.generateTokens(profile)
}

// ExchangeCode consumes a one-time authorization code and produces the
// session plus the landing destination for the authenticated identity.
func (s *Service) ExchangeCode(ctx context.Context, code, next string) (*model.TokenResponse, string, error) {
	ac, err := s.codeRepo.Consume(ctx, code)
	if err != nil {
		return nil, "", apperrors.Unauthorized(fmt.Errorf("invalid or expired code: %w", err))
	}

	profile, err := s.profileRepo.Get(ctx, ac.UserID)
	if err != nil {
		return nil, "", apperrors.Unauthorized(fmt.Errorf("profile missing for identity: %w", err))
	}

	tokens, err := s.generateTokens(profile)
	if err != nil {
		return nil, "", err
	}

	dest, err := s.ResolveLanding(ctx, ac.UserID, next)
	if err != nil {
		return nil, "", err
	}
	return tokens, dest, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid refresh token: %w", err))
	}

	profile, err := s.profileRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("profile not found: %w", err))
	}

	return s.generateTokens(profile)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) generateTokens(profile *model.Profile) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Duration(s.expiryHours) * time.Hour / time.Second),
	}, nil
}

func (s *Service) issueAuthCode(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate auth code: %w", err)
	}
	code := hex.EncodeToString(buf)

	if err := s.codeRepo.Create(ctx, &model.AuthCode{
		Code:      code,
		UserID:    userID,
		ExpiresAt: time.Now().Add(authCodeExpiry),
	}); err != nil {
		return "", fmt.Errorf("failed to store auth code: %w", err)
	}
	return code, nil
}
