package service

import (
	"context"

	categorymodel "toolsail-backend/internal/domains/category/model"
	"toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	// Public
	ListPublic(ctx context.Context, q model.ListQuery) ([]*model.Tool, pagination.Meta, error)
	GetPublic(ctx context.Context, id string) (*model.Tool, error)

	// Admin
	ListAdmin(ctx context.Context, p shared.Principal, q model.AdminListQuery) ([]*model.Tool, pagination.Meta, error)
	Create(ctx context.Context, p shared.Principal, req model.CreateToolRequest) (*model.Tool, error)
	Update(ctx context.Context, p shared.Principal, id string, req model.UpdateToolRequest) (*model.Tool, error)
	SetPublished(ctx context.Context, p shared.Principal, id string, published bool) (*model.Tool, error)
	UploadLogo(ctx context.Context, p shared.Principal, id string, data []byte) (*model.Tool, error)
	Export(ctx context.Context, p shared.Principal, q model.AdminListQuery) ([]byte, error)
}

// CategoryLookup là phần của category repository mà tool service cần
type CategoryLookup interface {
	GetByID(ctx context.Context, id string) (*categorymodel.Category, error)
	GetBySlug(ctx context.Context, slug string) (*categorymodel.Category, error)
	ListChildren(ctx context.Context, parentID string) ([]*categorymodel.Category, error)
}

// ObjectStorage lưu file logo, trả URL public
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type LogoProcessor interface {
	ValidateImage(data []byte) error
	ProcessLogo(data []byte) ([]byte, error)
}
