package model

import "time"

type Pricing string

const (
	PricingFree     Pricing = "Free"
	PricingFreemium Pricing = "Freemium"
	PricingPaid     Pricing = "Paid"
)

// PricingValues dùng cho validation.In
var PricingValues = []interface{}{string(PricingFree), string(PricingFreemium), string(PricingPaid)}

type Tool struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	LogoURL     *string   `json:"logoUrl"`
	CategoryID  string    `json:"categoryId"`
	Pricing     Pricing   `json:"pricing"`
	IsFeatured  bool      `json:"isFeatured"`
	IsPublished bool      `json:"isPublished"`
	ViewCount   int64     `json:"viewCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *CategoryRef `json:"category,omitempty"`
}

// CategoryRef là thông tin category join kèm tool
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Sort options của tool listing
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
	SortName    = "name"
)

// ListFilter là điều kiện query tools.
// CategoryIDs == nil: không lọc; CategoryIDs rỗng (không nil): không khớp gì.
type ListFilter struct {
	CategoryIDs []string
	Search      string
	Featured    *bool
	Published   *bool
	Sort        string
	Limit       int // 0 = không giới hạn
	Offset      int
}
