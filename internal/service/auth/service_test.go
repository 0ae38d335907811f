package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	pkgauth "github.com/tabibi/patient-api/pkg/auth"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
	"github.com/tabibi/patient-api/pkg/security"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	for _, existing := range f.profiles {
		if existing.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeDoctorRepo struct {
	byUser map[uuid.UUID]*model.Doctor
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	f.byUser[d.UserID] = d
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	for _, d := range f.byUser {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	if d, ok := f.byUser[userID]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) ListAvailable(_ context.Context) ([]*model.Doctor, error) {
	return nil, nil
}

type fakePatientRepo struct {
	byUser  map[uuid.UUID]*model.Patient
	ensured int
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	for _, p := range f.byUser {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Patient, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatientRepo) EnsureForUser(_ context.Context, userID uuid.UUID) (bool, error) {
	f.ensured++
	if _, ok := f.byUser[userID]; ok {
		return false, nil
	}
	f.byUser[userID] = &model.Patient{Base: model.Base{ID: uuid.New()}, UserID: userID}
	return true, nil
}

func (f *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	f.byUser[p.UserID] = p
	return nil
}

type fakeRegistrationRepo struct {
	byUser map[uuid.UUID]*model.DoctorRegistration
}

func (f *fakeRegistrationRepo) Upsert(_ context.Context, reg *model.DoctorRegistration) error {
	f.byUser[reg.UserID] = reg
	return nil
}

func (f *fakeRegistrationRepo) Get(_ context.Context, userID uuid.UUID) (*model.DoctorRegistration, error) {
	if reg, ok := f.byUser[userID]; ok {
		return reg, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(f.byUser, userID)
	return nil
}

type fakeAuthCodeRepo struct {
	codes map[string]*model.AuthCode
}

func (f *fakeAuthCodeRepo) Create(_ context.Context, code *model.AuthCode) error {
	f.codes[code.Code] = code
	return nil
}

func (f *fakeAuthCodeRepo) Consume(_ context.Context, code string) (*model.AuthCode, error) {
	ac, ok := f.codes[code]
	if !ok || ac.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrNotFound
	}
	delete(f.codes, code)
	return ac, nil
}

type authEnv struct {
	svc      *Service
	profiles *fakeProfileRepo
	doctors  *fakeDoctorRepo
	patients *fakePatientRepo
	regs     *fakeRegistrationRepo
	codes    *fakeAuthCodeRepo
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{}}
	doctors := &fakeDoctorRepo{byUser: map[uuid.UUID]*model.Doctor{}}
	patients := &fakePatientRepo{byUser: map[uuid.UUID]*model.Patient{}}
	regs := &fakeRegistrationRepo{byUser: map[uuid.UUID]*model.DoctorRegistration{}}
	codes := &fakeAuthCodeRepo{codes: map[string]*model.AuthCode{}}

	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})

	svc := NewService(profiles, doctors, patients, regs, codes, jwtSvc, security.NewBcryptHasher(4), 1)

	return &authEnv{
		svc:      svc,
		profiles: profiles,
		doctors:  doctors,
		patients: patients,
		regs:     regs,
		codes:    codes,
	}
}

func TestRegisterPatient(t *testing.T) {
	env := newAuthEnv(t)

	code, err := env.svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "patient@example.com",
		Password: "hunter2hunter2",
		FullName: "Pat Doe",
		Role:     model.UserRolePatient,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	profile, err := env.profiles.GetByEmail(context.Background(), "patient@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.UserRolePatient, profile.Role)
	assert.NotEqual(t, "hunter2hunter2", profile.PasswordHash)
	assert.Empty(t, env.regs.byUser, "patient signups stash no registration")
}

func TestRegisterDoctorStashesRegistration(t *testing.T) {
	env := newAuthEnv(t)

	fee := 150.0
	_, err := env.svc.Register(context.Background(), &model.RegisterRequest{
		Email:           "doc@example.com",
		Password:        "hunter2hunter2",
		Role:            model.UserRoleDoctor,
		Specialty:       "dermatology",
		LicenseNumber:   "LIC-42",
		ConsultationFee: &fee,
	})
	require.NoError(t, err)

	profile, err := env.profiles.GetByEmail(context.Background(), "doc@example.com")
	require.NoError(t, err)

	reg, err := env.regs.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "dermatology", reg.Specialty)
	assert.Equal(t, "LIC-42", reg.LicenseNumber)
	assert.Equal(t, 150.0, reg.ConsultationFee)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newAuthEnv(t)

	req := &model.RegisterRequest{
		Email:    "dup@example.com",
		Password: "hunter2hunter2",
		Role:     model.UserRolePatient,
	}
	_, err := env.svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = env.svc.Register(context.Background(), req)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)

	_, err := env.svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "login@example.com",
		Password: "hunter2hunter2",
		Role:     model.UserRolePatient,
	})
	require.NoError(t, err)

	tokens, err := env.svc.Login(context.Background(), "login@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := env.svc.ValidateToken(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", claims.Email)
	assert.Equal(t, model.UserRolePatient, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newAuthEnv(t)

	_, err := env.svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "login@example.com",
		Password: "hunter2hunter2",
		Role:     model.UserRolePatient,
	})
	require.NoError(t, err)

	_, err = env.svc.Login(context.Background(), "login@example.com", "wrong-password")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestExchangeCode(t *testing.T) {
	env := newAuthEnv(t)

	code, err := env.svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "patient@example.com",
		Password: "hunter2hunter2",
		Role:     model.UserRolePatient,
	})
	require.NoError(t, err)

	tokens, dest, err := env.svc.ExchangeCode(context.Background(), code, "")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, PathPatientHome, dest)

	// A code is single use.
	_, _, err = env.svc.ExchangeCode(context.Background(), code, "")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
