package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"toolsail-backend/internal/domains/promotion/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/database"
)

const promotionColumns = `p.id, p.tool_id, p.title, p.placement, p.price, p.starts_at, p.ends_at,
	p.is_active, p.created_at, p.updated_at, t.id, t.name, t.url, t.logo_url`

const promotionFrom = ` FROM promotions p JOIN tools t ON t.id = p.tool_id`

type PostgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) PromotionRepository {
	return &PostgresRepository{db: db}
}

func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	p := &model.Promotion{Tool: &model.ToolRef{}}
	err := row.Scan(
		&p.ID, &p.ToolID, &p.Title, &p.Placement, &p.Price, &p.StartsAt, &p.EndsAt,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.Tool.ID, &p.Tool.Name, &p.Tool.URL, &p.Tool.LogoURL,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collect(rows pgx.Rows) ([]*model.Promotion, error) {
	defer rows.Close()
	items := make([]*model.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListLive(ctx context.Context, placement string, now time.Time) ([]*model.Promotion, error) {
	var where utils.Where
	where.Add("p.is_active = TRUE")
	where.Add("t.is_published = TRUE")
	where.Add("p.starts_at <= ?", now)
	where.Add("p.ends_at > ?", now)
	if placement != "" {
		where.Add("p.placement = ?", placement)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+promotionColumns+promotionFrom+where.SQL()+` ORDER BY p.price DESC, p.starts_at ASC`,
		where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("list live promotions: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Promotion, int64, error) {
	var where utils.Where
	if f.Placement != "" {
		where.Add("p.placement = ?", f.Placement)
	}
	if f.Active != nil {
		where.Add("p.is_active = ?", *f.Active)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM promotions p`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count promotions: %w", err)
	}

	query := `SELECT ` + promotionColumns + promotionFrom + where.SQL() + ` ORDER BY p.created_at DESC, p.id`
	if f.Limit > 0 {
		query += ` LIMIT ` + where.Next(f.Limit) + ` OFFSET ` + where.Next(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list promotions: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*model.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx, `SELECT `+promotionColumns+promotionFrom+` WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *model.Promotion) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO promotions (id, tool_id, title, placement, price, starts_at, ends_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.ToolID, p.Title, p.Placement, p.Price, p.StartsAt, p.EndsAt, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if shared.IsForeignKeyViolation(err) {
		return model.ErrToolNotFound
	}
	if err != nil {
		return fmt.Errorf("insert promotion: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, active bool, now time.Time) (*model.Promotion, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE promotions SET is_active = $2, updated_at = $3 WHERE id = $1`, id, active, now)
	if err != nil {
		return nil, fmt.Errorf("update promotion status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrPromotionNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPromotionNotFound
	}
	return nil
}

func (r *PostgresRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE promotions SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE AND ends_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired promotions: %w", err)
	}
	return tag.RowsAffected(), nil
}
