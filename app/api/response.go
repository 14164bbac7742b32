package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error codes returned in ErrorInfo.Code
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeRateLimited  = "RATE_LIMITED"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// PaginationMeta describes one page of a paginated list
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type ListMeta struct {
	Count int `json:"count"`
}

// NewPaginationMeta fills the derived page fields
func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func success(c *gin.Context, status int, message string, data, meta interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	success(c, statusCode, message, data, nil)
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	success(c, http.StatusCreated, message, data, nil)
}

func UpdatedResponse(c *gin.Context, message string, data interface{}) {
	success(c, http.StatusOK, message, data, nil)
}

func DeletedResponse(c *gin.Context, message string) {
	success(c, http.StatusOK, message, nil, nil)
}

// ListResponse sends an unpaginated list with its item count
func ListResponse(c *gin.Context, message string, data interface{}, count int) {
	success(c, http.StatusOK, message, data, ListMeta{Count: count})
}

func PaginatedResponse(c *gin.Context, message string, data interface{}, meta PaginationMeta) {
	success(c, http.StatusOK, message, data, meta)
}

// ErrorResponse sends a failed envelope with the given code
func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Error: &ErrorInfo{Code: code, Message: message, Details: details},
	})
}

// ValidationErrorResponse reports per-field errors
func ValidationErrorResponse(c *gin.Context, details interface{}) {
	ErrorResponse(c, http.StatusBadRequest, CodeValidation, "Invalid request data", details)
}

// BadRequestResponse reports a body or parameter that could not be parsed
func BadRequestResponse(c *gin.Context, details string) {
	ErrorResponse(c, http.StatusBadRequest, CodeBadRequest, "Invalid request data", details)
}

func TooManyRequestsResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

// NotFoundResponse answers "<resource> not found"
func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, CodeNotFound, resource+" not found", nil)
}

func UnauthorizedResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized access", nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, CodeForbidden, message, nil)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, CodeConflict, message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, CodeInternal, message, nil)
}
