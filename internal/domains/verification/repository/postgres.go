package repository

import (
	"context"
	"fmt"
	"time"

	"toolsail-backend/internal/domains/verification/model"
	"toolsail-backend/pkg/database"
)

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, t *model.Token) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verification_tokens (id, email, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Email, t.TokenHash, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification token: %w", err)
	}
	return nil
}

// ListActiveByEmail trả các token còn dùng được, mới nhất trước
func (r *postgresRepository) ListActiveByEmail(ctx context.Context, email string, now time.Time, maxAttempts int) ([]*model.Token, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, token, attempts, expires_at, created_at
		FROM verification_tokens
		WHERE email = $1 AND expires_at > $2 AND attempts < $3
		ORDER BY created_at DESC`, email, now, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("list verification tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*model.Token
	for rows.Next() {
		t := &model.Token{}
		if err := rows.Scan(&t.ID, &t.Email, &t.TokenHash, &t.Attempts, &t.ExpiresAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan verification token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *postgresRepository) Consume(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("consume verification token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresRepository) RecordFailedAttempt(ctx context.Context, email string, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE verification_tokens SET attempts = attempts + 1
		WHERE email = $1 AND expires_at > $2`, email, now)
	if err != nil {
		return fmt.Errorf("record verification attempt: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE email = $1`, email); err != nil {
		return fmt.Errorf("delete verification tokens: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired verification tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
