package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/database"
)

const toolColumns = `t.id, t.name, t.url, t.description, t.logo_url, t.category_id, t.pricing,
	t.is_featured, t.is_published, t.view_count, t.created_at, t.updated_at,
	c.id, c.name, c.slug`

const toolFrom = ` FROM tools t LEFT JOIN categories c ON c.id = t.category_id`

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func scanTool(row pgx.Row) (*model.Tool, error) {
	t := &model.Tool{}
	var catID, catName, catSlug *string
	err := row.Scan(
		&t.ID, &t.Name, &t.URL, &t.Description, &t.LogoURL, &t.CategoryID, &t.Pricing,
		&t.IsFeatured, &t.IsPublished, &t.ViewCount, &t.CreatedAt, &t.UpdatedAt,
		&catID, &catName, &catSlug,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		t.Category = &model.CategoryRef{ID: *catID, Name: utils.StringValue(catName), Slug: utils.StringValue(catSlug)}
	}
	return t, nil
}

func orderBy(sort string) string {
	switch sort {
	case model.SortOldest:
		return "t.created_at ASC, t.id ASC"
	case model.SortPopular:
		return "t.view_count DESC, t.created_at DESC, t.id ASC"
	case model.SortName:
		return "LOWER(t.name) ASC, t.id ASC"
	default:
		return "t.created_at DESC, t.id ASC"
	}
}

// List trả trang kết quả và tổng số dòng khớp filter
func (r *postgresRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Tool, int64, error) {
	if f.CategoryIDs != nil && len(f.CategoryIDs) == 0 {
		return []*model.Tool{}, 0, nil
	}

	var where utils.Where
	if f.Published != nil {
		where.Add("t.is_published = ?", *f.Published)
	}
	if f.Featured != nil {
		where.Add("t.is_featured = ?", *f.Featured)
	}
	if len(f.CategoryIDs) > 0 {
		where.Add("t.category_id = ANY(?)", f.CategoryIDs)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + utils.EscapeLike(search) + "%"
		where.Add("(t.name ILIKE ? OR t.description ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tools t`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tools: %w", err)
	}

	query := `SELECT ` + toolColumns + toolFrom + where.SQL() + ` ORDER BY ` + orderBy(f.Sort)
	if f.Limit > 0 {
		query += ` LIMIT ` + where.Next(f.Limit) + ` OFFSET ` + where.Next(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	tools := make([]*model.Tool, 0)
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tools, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Tool, error) {
	t, err := scanTool(r.db.QueryRow(ctx, `SELECT `+toolColumns+toolFrom+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrToolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) Create(ctx context.Context, t *model.Tool) error {
	return InsertTool(ctx, r.db, t)
}

// InsertTool ghi một tool qua db bất kỳ (pool hoặc tx).
// Submission approval gọi hàm này trong transaction của nó.
func InsertTool(ctx context.Context, db database.DBTX, t *model.Tool) error {
	_, err := db.Exec(ctx, `
		INSERT INTO tools (id, name, url, description, logo_url, category_id, pricing,
		                   is_featured, is_published, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.Name, t.URL, t.Description, t.LogoURL, t.CategoryID, t.Pricing,
		t.IsFeatured, t.IsPublished, t.ViewCount, t.CreatedAt, t.UpdatedAt,
	)
	if shared.IsForeignKeyViolation(err) {
		return model.ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("insert tool: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, t *model.Tool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tools
		SET name = $2, url = $3, description = $4, logo_url = $5, category_id = $6, pricing = $7,
		    is_featured = $8, is_published = $9, updated_at = $10
		WHERE id = $1`,
		t.ID, t.Name, t.URL, t.Description, t.LogoURL, t.CategoryID, t.Pricing,
		t.IsFeatured, t.IsPublished, t.UpdatedAt,
	)
	if shared.IsForeignKeyViolation(err) {
		return model.ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("update tool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrToolNotFound
	}
	return nil
}

func (r *postgresRepository) SetPublished(ctx context.Context, id string, published bool) (*model.Tool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tools SET is_published = $2, updated_at = $3 WHERE id = $1`, id, published, time.Now())
	if err != nil {
		return nil, fmt.Errorf("set published: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrToolNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepository) UpdateLogo(ctx context.Context, id, logoURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tools SET logo_url = $2, updated_at = $3 WHERE id = $1`, id, logoURL, time.Now())
	if err != nil {
		return fmt.Errorf("update logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrToolNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE tools SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}
