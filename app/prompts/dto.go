package prompts

import (
	"time"

	"github.com/promptaat/promptaat/app/tools"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

// SearchFilters defines the query parameters of the prompt search
type SearchFilters struct {
	Q             string `form:"q"`
	CategoryID    uint   `form:"category_id"`
	SubcategoryID uint   `form:"subcategory_id"`
	ToolID        uint   `form:"tool_id"`
	Premium       string `form:"premium"`
	Sort          string `form:"sort"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`

	// set by admin listings only
	IncludeUnpublished bool `form:"-"`
}

// SanitizeAndValidate cleans the filter inputs and applies paging defaults
func (f *SearchFilters) SanitizeAndValidate(v *validator.Validator, s sanitizer.HTMLStripperer) {
	sanitizer.StripAll(s, &f.Q, &f.Premium, &f.Sort)

	v.Check(validator.MaxRunes(f.Q, 200), "q", "search term must not exceed 200 characters")
	v.Check(validator.In(f.Premium, "", "true", "false"), "premium", "premium must be true or false")
	v.Check(validator.In(f.Sort, "", SortNewest, SortOldest, SortPopular), "sort", "sort must be one of newest, oldest, popular")
	v.Check(f.Page >= 0, "page", "page must not be negative")
	v.Check(f.PerPage >= 0 && f.PerPage <= maxPerPage, "per_page", "per_page must be between 1 and 100")

	f.applyDefaults()
}

func (f *SearchFilters) applyDefaults() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > maxPerPage {
		f.PerPage = defaultPerPage
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
}

// PremiumOnly returns the premium filter, nil when unset
func (f *SearchFilters) PremiumOnly() *bool {
	if f.Premium == "" {
		return nil
	}
	premium := f.Premium == "true"
	return &premium
}

// Offset of the first row of the requested page
func (f *SearchFilters) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// CreatePromptRequest represents the request to create a prompt
type CreatePromptRequest struct {
	TitleEn       string `json:"title_en" binding:"required,max=255"`
	TitleAr       string `json:"title_ar" binding:"required,max=255"`
	ContentEn     string `json:"content_en" binding:"required"`
	ContentAr     string `json:"content_ar" binding:"required"`
	DescriptionEn string `json:"description_en,omitempty"`
	DescriptionAr string `json:"description_ar,omitempty"`
	CategoryID    uint   `json:"category_id" binding:"required,min=1"`
	SubcategoryID *uint  `json:"subcategory_id,omitempty" binding:"omitempty,min=1"`
	ToolIDs       []uint `json:"tool_ids,omitempty" binding:"omitempty,dive,min=1"`
	IsPremium     bool   `json:"is_premium"`
	IsPublished   bool   `json:"is_published"`
}

func (r *CreatePromptRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.TitleEn), "title_en", "title_en is required")
	v.Check(validator.NotBlank(r.TitleAr), "title_ar", "title_ar is required")
	v.Check(validator.NotBlank(r.ContentEn), "content_en", "content_en is required")
	v.Check(validator.NotBlank(r.ContentAr), "content_ar", "content_ar is required")
	v.Check(r.SubcategoryID == nil || *r.SubcategoryID != r.CategoryID, "subcategory_id", "subcategory_id must differ from category_id")
	v.Check(validator.NoDuplicates(r.ToolIDs), "tool_ids", "tool_ids must not repeat")
	return v.Valid()
}

// UpdatePromptRequest represents the request to update a prompt. A nil
// ToolIDs leaves the tools untouched and an empty list detaches them all.
// A zero subcategory_id clears the subcategory.
type UpdatePromptRequest struct {
	TitleEn       *string `json:"title_en,omitempty" binding:"omitempty,max=255"`
	TitleAr       *string `json:"title_ar,omitempty" binding:"omitempty,max=255"`
	ContentEn     *string `json:"content_en,omitempty"`
	ContentAr     *string `json:"content_ar,omitempty"`
	DescriptionEn *string `json:"description_en,omitempty"`
	DescriptionAr *string `json:"description_ar,omitempty"`
	CategoryID    *uint   `json:"category_id,omitempty" binding:"omitempty,min=1"`
	SubcategoryID *uint   `json:"subcategory_id,omitempty"`
	ToolIDs       *[]uint `json:"tool_ids,omitempty"`
	IsPremium     *bool   `json:"is_premium,omitempty"`
	IsPublished   *bool   `json:"is_published,omitempty"`
}

func (r *UpdatePromptRequest) Validate(v *validator.Validator) bool {
	for key, value := range map[string]*string{
		"title_en":   r.TitleEn,
		"title_ar":   r.TitleAr,
		"content_en": r.ContentEn,
		"content_ar": r.ContentAr,
	} {
		if value != nil {
			v.Check(validator.NotBlank(*value), key, key+" must not be blank")
		}
	}
	if r.ToolIDs != nil {
		v.Check(validator.NoDuplicates(*r.ToolIDs), "tool_ids", "tool_ids must not repeat")
	}
	return v.Valid()
}

// PromptResponse represents the response for prompt data. Content is
// withheld from premium prompts unless the caller may read it.
type PromptResponse struct {
	ID            uint                 `json:"id"`
	TitleEn       string               `json:"title_en"`
	TitleAr       string               `json:"title_ar"`
	ContentEn     string               `json:"content_en,omitempty"`
	ContentAr     string               `json:"content_ar,omitempty"`
	DescriptionEn string               `json:"description_en"`
	DescriptionAr string               `json:"description_ar"`
	CategoryID    uint                 `json:"category_id"`
	SubcategoryID *uint                `json:"subcategory_id"`
	Tools         []tools.ToolResponse `json:"tools"`
	IsPremium     bool                 `json:"is_premium"`
	IsPublished   bool                 `json:"is_published"`
	Locked        bool                 `json:"locked"`
	Views         int64                `json:"views"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ToPromptResponse converts a models.Prompt, hiding the content when locked
func ToPromptResponse(prompt *models.Prompt, locked bool) *PromptResponse {
	resp := &PromptResponse{
		ID:            prompt.ID,
		TitleEn:       prompt.TitleEn,
		TitleAr:       prompt.TitleAr,
		DescriptionEn: prompt.DescriptionEn,
		DescriptionAr: prompt.DescriptionAr,
		CategoryID:    prompt.CategoryID,
		SubcategoryID: prompt.SubcategoryID,
		Tools:         tools.ToToolResponseList(prompt.Tools),
		IsPremium:     prompt.IsPremium,
		IsPublished:   prompt.IsPublished,
		Locked:        locked,
		Views:         prompt.Views,
		CreatedAt:     prompt.CreatedAt,
		UpdatedAt:     prompt.UpdatedAt,
	}
	if !locked {
		resp.ContentEn = prompt.ContentEn
		resp.ContentAr = prompt.ContentAr
	}
	return resp
}

// ToPromptResponseList converts prompts; premium content is withheld unless reveal is set
func ToPromptResponseList(prompts []models.Prompt, reveal bool) []PromptResponse {
	responses := make([]PromptResponse, len(prompts))
	for i := range prompts {
		responses[i] = *ToPromptResponse(&prompts[i], prompts[i].IsPremium && !reveal)
	}
	return responses
}
