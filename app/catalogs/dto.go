package catalogs

import (
	"time"

	"github.com/promptaat/promptaat/app/prompts"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

// CatalogRequest is the body of create and rename calls
type CatalogRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (r *CatalogRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.Name), "name", "name is required")
	v.Check(validator.MaxRunes(r.Name, 100), "name", "name must not exceed 100 characters")
	return v.Valid()
}

// AddPromptRequest is the body of an add-prompt call
type AddPromptRequest struct {
	PromptID uint `json:"prompt_id" binding:"required,min=1"`
}

// CatalogSummary is a catalog row with its prompt count
type CatalogSummary struct {
	ID          uint
	Name        string
	PromptCount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogResponse represents the response for catalog data
type CatalogResponse struct {
	ID          uint                     `json:"id"`
	Name        string                   `json:"name"`
	PromptCount int                      `json:"prompt_count"`
	Prompts     []prompts.PromptResponse `json:"prompts,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ToCatalogResponse converts a catalog with its loaded prompts; premium content stays locked
func ToCatalogResponse(catalog *models.Catalog) *CatalogResponse {
	return &CatalogResponse{
		ID:          catalog.ID,
		Name:        catalog.Name,
		PromptCount: len(catalog.Prompts),
		Prompts:     prompts.ToPromptResponseList(catalog.Prompts, false),
		CreatedAt:   catalog.CreatedAt,
		UpdatedAt:   catalog.UpdatedAt,
	}
}

// ToCatalogSummaryList converts list rows
func ToCatalogSummaryList(rows []CatalogSummary) []CatalogResponse {
	responses := make([]CatalogResponse, len(rows))
	for i := range rows {
		responses[i] = CatalogResponse{
			ID:          rows[i].ID,
			Name:        rows[i].Name,
			PromptCount: int(rows[i].PromptCount),
			CreatedAt:   rows[i].CreatedAt,
			UpdatedAt:   rows[i].UpdatedAt,
		}
	}
	return responses
}
