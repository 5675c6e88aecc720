package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/database"
)

const categoryColumns = `id, name, slug, icon, description, parent_id, display_order, created_at, updated_at`

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	c := &model.Category{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Icon, &c.Description,
		&c.ParentID, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*model.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg any) (*model.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ========================================
// READ
// ========================================

// List trả toàn bộ categories, roots trước rồi tới children, mỗi nhóm theo display_order, name
func (r *postgresRepository) List(ctx context.Context) ([]*model.Category, error) {
	return r.queryMany(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY (parent_id IS NOT NULL), display_order, name`)
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
}

func (r *postgresRepository) ListChildren(ctx context.Context, parentID string) ([]*model.Category, error) {
	return r.queryMany(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE parent_id = $1
		ORDER BY display_order, name`, parentID)
}

func (r *postgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) CountTools(ctx context.Context, id string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tools WHERE category_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tools: %w", err)
	}
	return n, nil
}

// ========================================
// WRITE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, c *model.Category) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Slug, c.Icon, c.Description, c.ParentID, c.DisplayOrder, c.CreatedAt, c.UpdatedAt,
	)
	if shared.IsUniqueViolation(err) {
		return model.ErrSlugExists
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, c *model.Category) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = $2, slug = $3, icon = $4, description = $5, parent_id = $6,
		    display_order = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.Icon, c.Description, c.ParentID, c.DisplayOrder, c.UpdatedAt,
	)
	if shared.IsUniqueViolation(err) {
		return model.ErrSlugExists
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if shared.IsForeignKeyViolation(err) {
		// race với insert tool/child sau khi service đã kiểm tra
		return model.ErrHasTools
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
