package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"toolsail-backend/internal/domains/submission/model"
	toolmodel "toolsail-backend/internal/domains/tool/model"
	toolrepo "toolsail-backend/internal/domains/tool/repository"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/database"
)

const submissionColumns = `id, tool_name, tool_url, tool_logo, tool_description, category_id, pricing_type,
	submitter_email, submitted_by_user_id, status, review_note, reviewed_by, reviewed_at, tool_id,
	created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanSubmission(row pgx.Row) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(
		&s.ID, &s.ToolName, &s.ToolURL, &s.ToolLogo, &s.ToolDescription, &s.CategoryID, &s.PricingType,
		&s.SubmitterEmail, &s.SubmittedByUserID, &s.Status, &s.ReviewNote, &s.ReviewedBy, &s.ReviewedAt, &s.ToolID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) Create(ctx context.Context, s *model.Submission) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tool_submissions (id, tool_name, tool_url, tool_logo, tool_description, category_id,
		                              pricing_type, submitter_email, submitted_by_user_id, status,
		                              created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.ToolName, s.ToolURL, s.ToolLogo, s.ToolDescription, s.CategoryID,
		s.PricingType, s.SubmitterEmail, s.SubmittedByUserID, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	return getByID(ctx, r.pool, id, false)
}

func getByID(ctx context.Context, db database.DBTX, id string, forUpdate bool) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM tool_submissions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanSubmission(db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return s, nil
}

func (r *postgresRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Submission, int64, error) {
	var where utils.Where
	if f.Status != "" {
		where.Add("status = ?", f.Status)
	}
	if f.SubmittedBy != "" {
		where.Add("submitted_by_user_id = ?", f.SubmittedBy)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tool_submissions`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	query := `SELECT ` + submissionColumns + ` FROM tool_submissions` + where.SQL() + ` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		query += ` LIMIT ` + where.Next(f.Limit) + ` OFFSET ` + where.Next(f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

// approval là kết quả của transaction duyệt
type approval struct {
	submission *model.Submission
	tool       *toolmodel.Tool
}

func (r *postgresRepository) Approve(ctx context.Context, id string, d model.Decision, build ToolBuilder) (*model.Submission, *toolmodel.Tool, error) {
	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (approval, error) {
		s, err := getByID(ctx, tx, id, true)
		if err != nil {
			return approval{}, err
		}
		if !s.IsPending() {
			return approval{}, model.ErrNotPending
		}

		t := build(s)
		if err := toolrepo.InsertTool(ctx, tx, t); err != nil {
			return approval{}, err
		}

		approved, err := scanSubmission(tx.QueryRow(ctx, `
			UPDATE tool_submissions
			SET status = $2, review_note = $3, reviewed_by = $4, reviewed_at = $5, tool_id = $6, updated_at = $5
			WHERE id = $1
			RETURNING `+submissionColumns,
			id, model.StatusApproved, d.Note, d.ReviewerID, d.At, t.ID,
		))
		if err != nil {
			return approval{}, fmt.Errorf("approve submission: %w", err)
		}
		return approval{submission: approved, tool: t}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res.submission, res.tool, nil
}

func (r *postgresRepository) Decide(ctx context.Context, id string, d model.Decision) (*model.Submission, error) {
	s, err := scanSubmission(r.pool.QueryRow(ctx, `
		UPDATE tool_submissions
		SET status = $2, review_note = $3, reviewed_by = $4, reviewed_at = $5, updated_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING `+submissionColumns,
		id, d.Status, d.Note, d.ReviewerID, d.At,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		// phân biệt không tồn tại với đã được quyết định
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, model.ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("decide submission: %w", err)
	}
	return s, nil
}
