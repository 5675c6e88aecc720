package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// nonNegative: ozzo Min không hỗ trợ decimal.Decimal
var nonNegative = validation.By(func(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if ok && d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
})

type CreatePromotionRequest struct {
	ToolID    string          `json:"toolId"`
	Title     string          `json:"title"`
	Placement string          `json:"placement"`
	Price     decimal.Decimal `json:"price"`
	StartsAt  time.Time       `json:"startsAt"`
	EndsAt    time.Time       `json:"endsAt"`
	IsActive  *bool           `json:"isActive"`
}

func (r CreatePromotionRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.ToolID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.RuneLength(3, 150)),
		validation.Field(&r.Placement, validation.Required, validation.In(PlacementValues...)),
		validation.Field(&r.Price, nonNegative),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.EndsAt, validation.Required),
	)
	if err != nil {
		return err
	}
	if !r.EndsAt.After(r.StartsAt) {
		return validation.Errors{"endsAt": errors.New("must be after startsAt")}
	}
	return nil
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsActive, validation.NotNil),
	)
}

// ListQuery là query string của GET /api/admin/promotions
type ListQuery struct {
	Placement string
	Active    string
	Page      string
	Limit     string
}
