package model

import (
	"time"

	"github.com/lib/pq"
)

type BlogCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Post struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     *string        `json:"excerpt"`
	Content     string         `json:"content"`
	CoverImage  *string        `json:"coverImage"`
	CategoryID  *string        `json:"categoryId"`
	Tags        pq.StringArray `json:"tags"`
	AuthorName  *string        `json:"authorName"`
	IsPublished bool           `json:"isPublished"`
	PublishedAt *time.Time     `json:"publishedAt"`
	ViewCount   int64          `json:"viewCount"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Category *CategoryRef `json:"category,omitempty"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Sort options của post listing
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
	SortTitle   = "title"
)

type PostFilter struct {
	CategorySlug string
	Tag          string
	Published    *bool
	Sort         string
	Limit        int
	Offset       int
}
