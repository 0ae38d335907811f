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

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, user_id, specialty, license_number, bio, consultation_fee,
			available_days, working_hours_start, working_hours_end, is_available,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.UserID,
		doctor.Specialty,
		doctor.LicenseNumber,
		doctor.Bio,
		doctor.ConsultationFee,
		doctor.AvailableDays,
		doctor.WorkingHoursStart,
		doctor.WorkingHoursEnd,
		doctor.IsAvailable,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if err := r.attachProfile(ctx, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE user_id = $1`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) ListAvailable(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT * FROM doctors
		WHERE is_available = true
		ORDER BY created_at DESC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	for _, d := range doctors {
		if err := r.attachProfile(ctx, d); err != nil {
			return nil, err
		}
	}
	return doctors, nil
}

func (r *doctorRepository) attachProfile(ctx context.Context, doctor *model.Doctor) error {
	query := `SELECT * FROM profiles WHERE id = $1`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, doctor.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get doctor profile: %w", err)
	}
	doctor.Profile = &profile
	return nil
}
