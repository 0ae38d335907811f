package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
)

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := `SELECT * FROM prescriptions WHERE id = $1`
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListForPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*model.Prescription, error) {
	query := `
		SELECT * FROM prescriptions
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{patientID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	var prescriptions []*model.Prescription
	err := r.db.SelectContext(ctx, &prescriptions, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) GetItems(ctx context.Context, prescriptionID uuid.UUID) ([]*model.PrescriptionItem, error) {
	query := `SELECT * FROM prescription_items WHERE prescription_id = $1`
	var items []*model.PrescriptionItem
	err := r.db.SelectContext(ctx, &items, query, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription items: %w", err)
	}
	return items, nil
}
