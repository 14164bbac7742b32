package categories

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	NameEn           string `json:"name_en"`
	NameAr           string `json:"name_ar"`
	ParentCategoryID *uint  `json:"parent_category_id,omitempty"`
	Description      string `json:"description,omitempty"`
}

func (r *CreateCategoryRequest) Validate(v *validator.Validator) bool {
	checkName(v, "name_en", r.NameEn)
	checkName(v, "name_ar", r.NameAr)
	v.Check(r.ParentCategoryID == nil || *r.ParentCategoryID > 0, "parent_category_id", "parent category id must be positive")
	v.Check(validator.MaxRunes(r.Description, 1000), "description", "description must not exceed 1000 characters")
	return v.Valid()
}

// NullableID is an optional id that tells an omitted field apart from an explicit null
type NullableID struct {
	Set   bool
	Value *uint
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

// UpdateCategoryRequest represents a partial update; parent_category_id: null moves the category to the top level
type UpdateCategoryRequest struct {
	NameEn           *string    `json:"name_en,omitempty"`
	NameAr           *string    `json:"name_ar,omitempty"`
	ParentCategoryID NullableID `json:"parent_category_id" swaggertype:"integer"`
	Description      *string    `json:"description,omitempty"`
}

func (r *UpdateCategoryRequest) Validate(v *validator.Validator) bool {
	if r.NameEn != nil {
		checkName(v, "name_en", *r.NameEn)
	}
	if r.NameAr != nil {
		checkName(v, "name_ar", *r.NameAr)
	}
	if r.ParentCategoryID.Value != nil {
		v.Check(*r.ParentCategoryID.Value > 0, "parent_category_id", "parent category id must be positive")
	}
	if r.Description != nil {
		v.Check(validator.MaxRunes(*r.Description, 1000), "description", "description must not exceed 1000 characters")
	}
	return v.Valid()
}

// ReorderRequest carries a drag-and-drop reorder batch
type ReorderRequest struct {
	Updates []OrderUpdate `json:"updates" binding:"required,min=1,dive"`
}

func checkName(v *validator.Validator, key, name string) {
	v.Check(validator.NotBlank(name), key, "name is required")
	v.Check(validator.MaxRunes(name, 150), key, "name must not exceed 150 characters")
}

// CategoryResponse represents the response for category data
type CategoryResponse struct {
	ID               uint               `json:"id"`
	NameEn           string             `json:"name_en"`
	NameAr           string             `json:"name_ar"`
	Slug             string             `json:"slug"`
	ParentCategoryID *uint              `json:"parent_category_id"`
	Description      string             `json:"description"`
	Order            int                `json:"order"`
	Subcategories    []CategoryResponse `json:"subcategories,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ToCategoryResponse converts a models.Category to CategoryResponse
func ToCategoryResponse(category *models.Category) *CategoryResponse {
	response := &CategoryResponse{
		ID:               category.ID,
		NameEn:           category.NameEn,
		NameAr:           category.NameAr,
		Slug:             category.Slug,
		ParentCategoryID: category.ParentCategoryID,
		Description:      category.Description,
		Order:            category.SortOrder,
		CreatedAt:        category.CreatedAt,
		UpdatedAt:        category.UpdatedAt,
	}
	if len(category.Subcategories) > 0 {
		response.Subcategories = ToCategoryResponseList(category.Subcategories)
	}
	return response
}

// ToCategoryResponseList converts a slice of models.Category to CategoryResponse
func ToCategoryResponseList(categories []models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses
}

// BuildTree nests a flat, order-sorted list under its top-level categories.
// Nodes whose parent is missing from the list are dropped.
func BuildTree(categories []models.Category) []CategoryResponse {
	children := make(map[uint][]*models.Category, len(categories))
	var roots []*models.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentCategoryID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentCategoryID] = append(children[*c.ParentCategoryID], c)
	}

	seen := make(map[uint]bool, len(categories))
	var build func(c *models.Category) CategoryResponse
	build = func(c *models.Category) CategoryResponse {
		seen[c.ID] = true
		node := *ToCategoryResponse(c)
		for _, child := range children[c.ID] {
			if seen[child.ID] {
				continue
			}
			node.Subcategories = append(node.Subcategories, build(child))
		}
		return node
	}

	tree := make([]CategoryResponse, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree
}
