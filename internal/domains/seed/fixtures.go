// Package seed nạp và xóa bộ dữ liệu mẫu cố định cho môi trường dev.
package seed

import (
	"time"

	"github.com/lib/pq"

	blogmodel "toolsail-backend/internal/domains/blog/model"
	categorymodel "toolsail-backend/internal/domains/category/model"
	toolmodel "toolsail-backend/internal/domains/tool/model"
)

// Fixtures là toàn bộ dữ liệu mẫu; ID cố định để Clear xóa đúng những gì Seed đã thêm
type Fixtures struct {
	Categories     []*categorymodel.Category
	Tools          []*toolmodel.Tool
	BlogCategories []*blogmodel.BlogCategory
	Posts          []*blogmodel.Post
}

func strPtr(s string) *string { return &s }

// DefaultFixtures dựng fixture set với timestamp tính từ now.
// Category "cat1" là id mà các ví dụ submission dùng.
func DefaultFixtures(now time.Time) Fixtures {
	now = now.UTC().Truncate(time.Second)
	at := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	categories := []*categorymodel.Category{
		{ID: "cat1", Name: "Writing", Slug: "writing", Icon: strPtr("pen"), DisplayOrder: 1,
			Description: strPtr("Assistants for drafting, editing and summarizing text")},
		{ID: "cat2", Name: "Image Generation", Slug: "image-generation", Icon: strPtr("image"), DisplayOrder: 2,
			Description: strPtr("Text-to-image and image editing models")},
		{ID: "cat3", Name: "Coding", Slug: "coding", Icon: strPtr("code"), DisplayOrder: 3,
			Description: strPtr("Code completion, review and generation")},
		{ID: "cat4", Name: "Copywriting", Slug: "copywriting", ParentID: strPtr("cat1"), DisplayOrder: 1},
		{ID: "cat5", Name: "Code Review", Slug: "code-review", ParentID: strPtr("cat3"), DisplayOrder: 1},
	}
	for _, c := range categories {
		c.CreatedAt, c.UpdatedAt = at(30), at(30)
	}

	tools := []*toolmodel.Tool{
		{ID: "tool1", Name: "DraftPilot", URL: "https://draftpilot.example.com", CategoryID: "cat1",
			Description: "Turns rough bullet points into clean long-form drafts.", Pricing: toolmodel.PricingFreemium,
			IsFeatured: true, ViewCount: 420},
		{ID: "tool2", Name: "AdSmith", URL: "https://adsmith.example.com", CategoryID: "cat4",
			Description: "Generates ad copy variants tuned for each channel.", Pricing: toolmodel.PricingPaid,
			ViewCount: 150},
		{ID: "tool3", Name: "PixelDream", URL: "https://pixeldream.example.com", CategoryID: "cat2",
			Description: "Text-to-image studio with style presets and upscaling.", Pricing: toolmodel.PricingFreemium,
			IsFeatured: true, ViewCount: 980},
		{ID: "tool4", Name: "Sketchify", URL: "https://sketchify.example.com", CategoryID: "cat2",
			Description: "Converts photos into hand-drawn sketches.", Pricing: toolmodel.PricingFree,
			ViewCount: 75},
		{ID: "tool5", Name: "PairCoder", URL: "https://paircoder.example.com", CategoryID: "cat3",
			Description: "In-editor completion that understands the whole repository.", Pricing: toolmodel.PricingPaid,
			ViewCount: 610},
		{ID: "tool6", Name: "DiffSage", URL: "https://diffsage.example.com", CategoryID: "cat5",
			Description: "Reviews pull requests and flags risky changes.", Pricing: toolmodel.PricingFree,
			ViewCount: 230},
	}
	for i, t := range tools {
		t.IsPublished = true
		t.CreatedAt, t.UpdatedAt = at(len(tools)-i), at(len(tools)-i)
	}

	blogCategories := []*blogmodel.BlogCategory{
		{ID: "blogcat1", Name: "Guides", Slug: "guides", Description: strPtr("How-to articles")},
		{ID: "blogcat2", Name: "News", Slug: "news", Description: strPtr("Launches and updates")},
	}
	for _, c := range blogCategories {
		c.CreatedAt, c.UpdatedAt = at(20), at(20)
	}

	published := at(5)
	posts := []*blogmodel.Post{
		{ID: "post1", Title: "Choosing an AI writing assistant", Slug: "choosing-an-ai-writing-assistant",
			Excerpt: strPtr("What to look for before you pay for a writing tool."),
			Content: "Start with the kind of text you write most often, then compare output quality on your own samples.",
			CategoryID: strPtr("blogcat1"), Tags: pq.StringArray{"writing", "buying-guide"},
			AuthorName: strPtr("Toolsail Team"), IsPublished: true, PublishedAt: &published, ViewCount: 64},
		{ID: "post2", Title: "This month in image generation", Slug: "this-month-in-image-generation",
			Content: "New upscalers, faster samplers and better prompt adherence across the board.",
			CategoryID: strPtr("blogcat2"), Tags: pq.StringArray{"images", "news"},
			AuthorName: strPtr("Toolsail Team"), IsPublished: true, PublishedAt: &published, ViewCount: 31},
		{ID: "post3", Title: "Draft: reviewing code with AI", Slug: "draft-reviewing-code-with-ai",
			Content: "Work in progress.", CategoryID: strPtr("blogcat1"), Tags: pq.StringArray{"coding"}},
	}
	for _, p := range posts {
		p.CreatedAt, p.UpdatedAt = at(6), at(6)
	}

	return Fixtures{Categories: categories, Tools: tools, BlogCategories: blogCategories, Posts: posts}
}
