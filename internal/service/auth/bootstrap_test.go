package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabibi/patient-api/internal/model"
)

func TestResolveLandingPatient(t *testing.T) {
	env := newAuthEnv(t)

	userID := uuid.New()
	env.profiles.profiles[userID] = &model.Profile{
		ID:    userID,
		Email: "patient@example.com",
		Role:  model.UserRolePatient,
	}

	dest, err := env.svc.ResolveLanding(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, PathPatientHome, dest)
	assert.Contains(t, env.patients.byUser, userID, "patient record is provisioned on first landing")

	// Resolving again is idempotent: same destination, still one record.
	dest, err = env.svc.ResolveLanding(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, PathPatientHome, dest)
	assert.Len(t, env.patients.byUser, 1)
	assert.Equal(t, 2, env.patients.ensured)
}

func TestResolveLandingDoctorWithoutRecord(t *testing.T) {
	env := newAuthEnv(t)

	userID := uuid.New()
	env.profiles.profiles[userID] = &model.Profile{
		ID:    userID,
		Email: "doc@example.com",
		Role:  model.UserRoleDoctor,
	}

	dest, err := env.svc.ResolveLanding(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, PathCompleteProfile, dest)
	assert.Empty(t, env.patients.byUser, "doctors are never auto-provisioned as patients")
}

func TestResolveLandingDoctorWithRecord(t *testing.T) {
	env := newAuthEnv(t)

	userID := uuid.New()
	env.profiles.profiles[userID] = &model.Profile{
		ID:    userID,
		Email: "doc@example.com",
		Role:  model.UserRoleDoctor,
	}
	env.doctors.byUser[userID] = &model.Doctor{
		Base:   model.Base{ID: uuid.New()},
		UserID: userID,
	}

	dest, err := env.svc.ResolveLanding(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, PathDoctorHome, dest)
}

func TestResolveLandingMissingProfile(t *testing.T) {
	env := newAuthEnv(t)

	dest, err := env.svc.ResolveLanding(context.Background(), uuid.New(), "/somewhere")
	require.NoError(t, err)
	assert.Equal(t, PathAuthError, dest)
}

func TestResolveLandingUnknownRole(t *testing.T) {
	env := newAuthEnv(t)

	userID := uuid.New()
	env.profiles.profiles[userID] = &model.Profile{
		ID:    userID,
		Email: "staff@example.com",
		Role:  model.UserRole("staff"),
	}

	dest, err := env.svc.ResolveLanding(context.Background(), userID, "/admin")
	require.NoError(t, err)
	assert.Equal(t, "/admin", dest)

	dest, err = env.svc.ResolveLanding(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, PathRoot, dest)
}
