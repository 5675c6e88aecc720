package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"toolsail-backend/internal/domains/blog/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/database"
)

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.cover_image, p.category_id, p.tags,
	p.author_name, p.is_published, p.published_at, p.view_count, p.created_at, p.updated_at,
	bc.id, bc.name, bc.slug`

const postFrom = ` FROM blog_posts p LEFT JOIN blog_categories bc ON bc.id = p.category_id`

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

// ========================================
// POSTS
// ========================================

func scanPost(row pgx.Row) (*model.Post, error) {
	p := &model.Post{}
	var catID, catName, catSlug *string
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage, &p.CategoryID, pq.Array(&p.Tags),
		&p.AuthorName, &p.IsPublished, &p.PublishedAt, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}
	if catID != nil {
		p.Category = &model.CategoryRef{ID: *catID, Name: utils.StringValue(catName), Slug: utils.StringValue(catSlug)}
	}
	return p, nil
}

func postOrder(sort string) string {
	switch sort {
	case model.SortOldest:
		return "COALESCE(p.published_at, p.created_at) ASC, p.id"
	case model.SortPopular:
		return "p.view_count DESC, p.id"
	case model.SortTitle:
		return "LOWER(p.title) ASC, p.id"
	default:
		return "COALESCE(p.published_at, p.created_at) DESC, p.id"
	}
}

func (r *postgresRepository) ListPosts(ctx context.Context, f model.PostFilter) ([]*model.Post, int64, error) {
	var where utils.Where
	if f.Published != nil {
		where.Add("p.is_published = ?", *f.Published)
	}
	if f.CategorySlug != "" {
		where.Add("bc.slug = ?", f.CategorySlug)
	}
	if f.Tag != "" {
		where.Add("? = ANY(p.tags)", f.Tag)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+postFrom+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	query := `SELECT ` + postColumns + postFrom + where.SQL() + ` ORDER BY ` + postOrder(f.Sort)
	if f.Limit > 0 {
		query += ` LIMIT ` + where.Next(f.Limit) + ` OFFSET ` + where.Next(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

func (r *postgresRepository) getPost(ctx context.Context, column, value string) (*model.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+postFrom+` WHERE p.`+column+` = $1`, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	return r.getPost(ctx, "id", id)
}

func (r *postgresRepository) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return r.getPost(ctx, "slug", slug)
}

func (r *postgresRepository) PostSlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CreatePost(ctx context.Context, p *model.Post) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO blog_posts (id, title, slug, excerpt, content, cover_image, category_id, tags,
		                        author_name, is_published, published_at, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.CategoryID, pq.Array(p.Tags),
		p.AuthorName, p.IsPublished, p.PublishedAt, p.ViewCount, p.CreatedAt, p.UpdatedAt,
	)
	return mapPostWriteError("insert post", err)
}

func (r *postgresRepository) UpdatePost(ctx context.Context, p *model.Post) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE blog_posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, cover_image = $6, category_id = $7,
		    tags = $8, author_name = $9, is_published = $10, published_at = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.CategoryID,
		pq.Array(p.Tags), p.AuthorName, p.IsPublished, p.PublishedAt, p.UpdatedAt,
	)
	if err := mapPostWriteError("update post", err); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func mapPostWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case shared.IsUniqueViolation(err):
		return model.ErrSlugExists
	case shared.IsForeignKeyViolation(err):
		return model.ErrCategoryMissing
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (r *postgresRepository) DeletePost(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementPostViews(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `UPDATE blog_posts SET view_count = view_count + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment post views: %w", err)
	}
	return nil
}

// ========================================
// CATEGORIES
// ========================================

func scanCategory(row pgx.Row) (*model.BlogCategory, error) {
	c := &model.BlogCategory{}
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) ListCategories(ctx context.Context) ([]*model.BlogCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, slug, description, created_at, updated_at FROM blog_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list blog categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*model.BlogCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) GetCategoryByID(ctx context.Context, id string) (*model.BlogCategory, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`SELECT id, name, slug, description, created_at, updated_at FROM blog_categories WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog category: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) CategorySlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM blog_categories WHERE slug = $1 AND id <> $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog category slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CountPostsInCategory(ctx context.Context, id string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts WHERE category_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts in category: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) CreateCategory(ctx context.Context, c *model.BlogCategory) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO blog_categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	if shared.IsUniqueViolation(err) {
		return model.ErrSlugExists
	}
	if err != nil {
		return fmt.Errorf("insert blog category: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateCategory(ctx context.Context, c *model.BlogCategory) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE blog_categories SET name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.Description, c.UpdatedAt,
	)
	if shared.IsUniqueViolation(err) {
		return model.ErrSlugExists
	}
	if err != nil {
		return fmt.Errorf("update blog category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteCategory(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	if shared.IsForeignKeyViolation(err) {
		return model.ErrCategoryInUse
	}
	if err != nil {
		return fmt.Errorf("delete blog category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
