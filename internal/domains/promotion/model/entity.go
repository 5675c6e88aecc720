package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement là vị trí hiển thị được trả tiền
type Placement string

const (
	PlacementHomepage   Placement = "homepage"
	PlacementCategory   Placement = "category"
	PlacementNewsletter Placement = "newsletter"
)

var PlacementValues = []interface{}{
	string(PlacementHomepage), string(PlacementCategory), string(PlacementNewsletter),
}

// Promotion là một placement trả phí của tool trong khoảng [StartsAt, EndsAt)
type Promotion struct {
	ID        string          `json:"id"`
	ToolID    string          `json:"toolId"`
	Title     string          `json:"title"`
	Placement Placement       `json:"placement"`
	Price     decimal.Decimal `json:"price"`
	StartsAt  time.Time       `json:"startsAt"`
	EndsAt    time.Time       `json:"endsAt"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	Tool *ToolRef `json:"tool,omitempty"`
}

type ToolRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	LogoURL *string `json:"logoUrl"`
}

// IsLive: active và now nằm trong cửa sổ hiệu lực
func (p *Promotion) IsLive(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartsAt) && now.Before(p.EndsAt)
}

type ListFilter struct {
	Placement string
	Active    *bool
	Limit     int
	Offset    int
}
