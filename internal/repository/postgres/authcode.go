package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tabibi/patient-api/internal/model"
	"github.com/tabibi/patient-api/internal/repository"
)

type authCodeRepository struct {
	db *sqlx.DB
}

func NewAuthCodeRepository(db *sqlx.DB) repository.AuthCodeRepository {
	return &authCodeRepository{db: db}
}

func (r *authCodeRepository) Create(ctx context.Context, code *model.AuthCode) error {
	query := `
		INSERT INTO auth_codes (code, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`
	code.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		code.Code,
		code.UserID,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth code: %w", err)
	}
	return nil
}

// Consume deletes the code and returns it in one statement, so a code can
// only ever be exchanged once even under concurrent callbacks.
func (r *authCodeRepository) Consume(ctx context.Context, code string) (*model.AuthCode, error) {
	query := `
		DELETE FROM auth_codes
		WHERE code = $1 AND expires_at > $2
		RETURNING code, user_id, expires_at, created_at
	`
	var ac model.AuthCode
	err := r.db.GetContext(ctx, &ac, query, code, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume auth code: %w", err)
	}
	return &ac, nil
}
