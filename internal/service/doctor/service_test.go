package doctor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
	apperrors "github.com/tabibi/patient-api/pkg/errors"
)

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
	lists   int
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	for _, existing := range f.doctors {
		if existing.UserID == d.UserID {
			return repository.ErrDuplicate
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) ListAvailable(_ context.Context) ([]*model.Doctor, error) {
	f.lists++
	var out []*model.Doctor
	for _, d := range f.doctors {
		if d.IsAvailable {
			out = append(out, d)
		}
	}
	return out, nil
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

func newTestService() (*Service, *fakeDoctorRepo, *fakeRegistrationRepo) {
	repo := &fakeDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{}}
	regs := &fakeRegistrationRepo{byUser: map[uuid.UUID]*model.DoctorRegistration{}}
	return NewService(repo, regs), repo, regs
}

func TestListAvailableCaches(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.doctors[uuid.New()] = &model.Doctor{
		Base:        model.Base{ID: uuid.New()},
		IsAvailable: true,
	}

	first, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	second, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lists, "second listing must come from cache")
}

func TestCompleteProfileMergesRegistration(t *testing.T) {
	svc, repo, regs := newTestService()

	userID := uuid.New()
	bio := "20 years of practice"
	regs.byUser[userID] = &model.DoctorRegistration{
		UserID:          userID,
		Specialty:       "cardiology",
		LicenseNumber:   "LIC-1",
		Bio:             &bio,
		ConsultationFee: 120,
	}

	doc, err := svc.CompleteProfile(context.Background(), userID, &model.CompleteDoctorProfileRequest{
		AvailableDays:     []string{"monday", "friday"},
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "17:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "cardiology", doc.Specialty)
	assert.Equal(t, "LIC-1", doc.LicenseNumber)
	assert.Equal(t, 120.0, doc.ConsultationFee)
	require.NotNil(t, doc.Bio)
	assert.Equal(t, bio, *doc.Bio)
	assert.True(t, doc.IsAvailable)

	_, err = repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, regs.byUser, "registration is consumed on completion")
}

func TestCompleteProfileRequestFieldsWin(t *testing.T) {
	svc, _, regs := newTestService()

	userID := uuid.New()
	regs.byUser[userID] = &model.DoctorRegistration{
		UserID:          userID,
		Specialty:       "cardiology",
		LicenseNumber:   "LIC-1",
		ConsultationFee: 120,
	}

	doc, err := svc.CompleteProfile(context.Background(), userID, &model.CompleteDoctorProfileRequest{
		Specialty:         "dermatology",
		LicenseNumber:     "LIC-2",
		ConsultationFee:   200,
		AvailableDays:     []string{"tuesday"},
		WorkingHoursStart: "10:00",
		WorkingHoursEnd:   "16:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "dermatology", doc.Specialty)
	assert.Equal(t, "LIC-2", doc.LicenseNumber)
	assert.Equal(t, 200.0, doc.ConsultationFee)
}

func TestCompleteProfileMissingFields(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CompleteProfile(context.Background(), uuid.New(), &model.CompleteDoctorProfileRequest{
		AvailableDays:     []string{"monday"},
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "17:00",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCompleteProfileAlreadyExists(t *testing.T) {
	svc, repo, _ := newTestService()

	userID := uuid.New()
	repo.doctors[uuid.New()] = &model.Doctor{
		Base:   model.Base{ID: uuid.New()},
		UserID: userID,
	}

	_, err := svc.CompleteProfile(context.Background(), userID, &model.CompleteDoctorProfileRequest{
		Specialty:         "cardiology",
		LicenseNumber:     "LIC-1",
		ConsultationFee:   100,
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "17:00",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}
