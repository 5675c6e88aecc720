package model

import "time"

// Category là node của cây danh mục tool, tối đa 2 cấp (root -> child)
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         *string   `json:"icon"`
	Description  *string   `json:"description"`
	ParentID     *string   `json:"parentId"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// chỉ set khi build tree
	Children []*Category `json:"children,omitempty"`
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// BuildTree gom danh sách phẳng (đã sort) thành roots kèm children.
// Child có parent không tồn tại trong danh sách bị bỏ qua.
func BuildTree(flat []*Category) []*Category {
	byID := make(map[string]*Category, len(flat))
	roots := make([]*Category, 0)

	for _, c := range flat {
		node := *c
		node.Children = nil
		byID[c.ID] = &node
	}
	for _, c := range flat {
		node := byID[c.ID]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byID[*node.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}
	return roots
}
