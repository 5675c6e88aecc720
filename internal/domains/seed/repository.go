package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/database"
)

var ErrFixturesInUse = shared.NewConflict("Seed data is referenced by other records", nil)

// Result đếm số dòng mỗi bảng bị ảnh hưởng
type Result struct {
	Categories     int64 `json:"categories"`
	Tools          int64 `json:"tools"`
	BlogCategories int64 `json:"blogCategories"`
	Posts          int64 `json:"posts"`
}

type Store interface {
	Insert(ctx context.Context, f Fixtures) (Result, error)
	Remove(ctx context.Context, f Fixtures) (Result, error)
}

type postgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

// Insert bỏ qua dòng đã tồn tại (ON CONFLICT DO NOTHING), nên gọi lại nhiều lần vẫn an toàn
func (s *postgresStore) Insert(ctx context.Context, f Fixtures) (Result, error) {
	var res Result
	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		// roots trước children để FK parent_id hợp lệ
		for _, root := range []bool{true, false} {
			for _, c := range f.Categories {
				if c.IsRoot() != root {
					continue
				}
				tag, err := tx.Exec(ctx, `
					INSERT INTO categories (id, name, slug, icon, description, parent_id, display_order, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
					ON CONFLICT DO NOTHING`,
					c.ID, c.Name, c.Slug, c.Icon, c.Description, c.ParentID, c.DisplayOrder, c.CreatedAt, c.UpdatedAt)
				if err != nil {
					return fmt.Errorf("seed category %s: %w", c.ID, err)
				}
				res.Categories += tag.RowsAffected()
			}
		}

		for _, t := range f.Tools {
			tag, err := tx.Exec(ctx, `
				INSERT INTO tools (id, name, url, description, logo_url, category_id, pricing,
				                   is_featured, is_published, view_count, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				ON CONFLICT DO NOTHING`,
				t.ID, t.Name, t.URL, t.Description, t.LogoURL, t.CategoryID, t.Pricing,
				t.IsFeatured, t.IsPublished, t.ViewCount, t.CreatedAt, t.UpdatedAt)
			if err != nil {
				return fmt.Errorf("seed tool %s: %w", t.ID, err)
			}
			res.Tools += tag.RowsAffected()
		}

		for _, c := range f.BlogCategories {
			tag, err := tx.Exec(ctx, `
				INSERT INTO blog_categories (id, name, slug, description, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT DO NOTHING`,
				c.ID, c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt)
			if err != nil {
				return fmt.Errorf("seed blog category %s: %w", c.ID, err)
			}
			res.BlogCategories += tag.RowsAffected()
		}

		for _, p := range f.Posts {
			tag, err := tx.Exec(ctx, `
				INSERT INTO blog_posts (id, title, slug, excerpt, content, cover_image, category_id, tags,
				                        author_name, is_published, published_at, view_count, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				ON CONFLICT DO NOTHING`,
				p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.CategoryID, pq.Array(p.Tags),
				p.AuthorName, p.IsPublished, p.PublishedAt, p.ViewCount, p.CreatedAt, p.UpdatedAt)
			if err != nil {
				return fmt.Errorf("seed post %s: %w", p.ID, err)
			}
			res.Posts += tag.RowsAffected()
		}
		return nil
	})
	return res, err
}

// Remove xóa theo ID fixture, thứ tự ngược FK
func (s *postgresStore) Remove(ctx context.Context, f Fixtures) (Result, error) {
	var res Result
	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		if res.Posts, err = deleteIDs(ctx, tx, "blog_posts", postIDs(f)); err != nil {
			return err
		}
		if res.BlogCategories, err = deleteIDs(ctx, tx, "blog_categories", blogCategoryIDs(f)); err != nil {
			return err
		}
		if res.Tools, err = deleteIDs(ctx, tx, "tools", toolIDs(f)); err != nil {
			return err
		}

		var children, roots []string
		for _, c := range f.Categories {
			if c.IsRoot() {
				roots = append(roots, c.ID)
			} else {
				children = append(children, c.ID)
			}
		}
		n, err := deleteIDs(ctx, tx, "categories", children)
		if err != nil {
			return err
		}
		m, err := deleteIDs(ctx, tx, "categories", roots)
		if err != nil {
			return err
		}
		res.Categories = n + m
		return nil
	})
	return res, err
}

func deleteIDs(ctx context.Context, tx pgx.Tx, table string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = ANY($1)`, ids)
	if shared.IsForeignKeyViolation(err) {
		return 0, ErrFixturesInUse
	}
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func toolIDs(f Fixtures) []string {
	ids := make([]string, 0, len(f.Tools))
	for _, t := range f.Tools {
		ids = append(ids, t.ID)
	}
	return ids
}

func postIDs(f Fixtures) []string {
	ids := make([]string, 0, len(f.Posts))
	for _, p := range f.Posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func blogCategoryIDs(f Fixtures) []string {
	ids := make([]string, 0, len(f.BlogCategories))
	for _, c := range f.BlogCategories {
		ids = append(ids, c.ID)
	}
	return ids
}
