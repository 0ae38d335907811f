package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
)

// Doctor signup fields live here between signup and profile completion,
// keyed by the identity id, so confirmation can happen on any device.
type registrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Upsert(ctx context.Context, reg *model.DoctorRegistration) error {
	query := `
		INSERT INTO doctor_registrations (user_id, specialty, license_number, bio, consultation_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			specialty = EXCLUDED.specialty,
			license_number = EXCLUDED.license_number,
			bio = EXCLUDED.bio,
			consultation_fee = EXCLUDED.consultation_fee
	`
	reg.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		reg.UserID,
		reg.Specialty,
		reg.LicenseNumber,
		reg.Bio,
		reg.ConsultationFee,
		reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert doctor registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) Get(ctx context.Context, userID uuid.UUID) (*model.DoctorRegistration, error) {
	query := `SELECT * FROM doctor_registrations WHERE user_id = $1`
	var reg model.DoctorRegistration
	err := r.db.GetContext(ctx, &reg, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor registration: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM doctor_registrations WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete doctor registration: %w", err)
	}
	return nil
}
