package tools

import (
	"time"

	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// CreateToolRequest represents the request to create a tool
type CreateToolRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description,omitempty" binding:"omitempty,max=1000"`
	WebsiteURL  string `json:"website_url,omitempty"`
	IconURL     string `json:"icon_url,omitempty"`
}

func (r *CreateToolRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.Name), "name", "name is required")
	checkURL(v, "website_url", r.WebsiteURL)
	checkURL(v, "icon_url", r.IconURL)
	return v.Valid()
}

// UpdateToolRequest represents the request to update a tool
type UpdateToolRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	WebsiteURL  *string `json:"website_url,omitempty"`
	IconURL     *string `json:"icon_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateToolRequest) Validate(v *validator.Validator) bool {
	if r.Name != nil {
		v.Check(validator.NotBlank(*r.Name), "name", "name must not be blank")
	}
	if r.WebsiteURL != nil {
		checkURL(v, "website_url", *r.WebsiteURL)
	}
	if r.IconURL != nil {
		checkURL(v, "icon_url", *r.IconURL)
	}
	return v.Valid()
}

func checkURL(v *validator.Validator, key, value string) {
	v.Check(value == "" || validator.IsURL(value), key, "must be an absolute URL")
}

// ToolResponse represents the response for tool data
type ToolResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	WebsiteURL  string    `json:"website_url"`
	IconURL     string    `json:"icon_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToToolResponse converts a models.Tool to ToolResponse
func ToToolResponse(tool *models.Tool) *ToolResponse {
	return &ToolResponse{
		ID:          tool.ID,
		Name:        tool.Name,
		Slug:        tool.Slug,
		Description: tool.Description,
		WebsiteURL:  tool.WebsiteURL,
		IconURL:     tool.IconURL,
		IsActive:    tool.Active(),
		CreatedAt:   tool.CreatedAt,
		UpdatedAt:   tool.UpdatedAt,
	}
}

// ToToolResponseList converts a slice of models.Tool to ToolResponse
func ToToolResponseList(tools []models.Tool) []ToolResponse {
	responses := make([]ToolResponse, len(tools))
	for i := range tools {
		responses[i] = *ToToolResponse(&tools[i])
	}
	return responses
}
