package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		send    func(c *gin.Context)
		status  int
		code    string
		message string
	}{
		{"BadRequest", func(c *gin.Context) { BadRequestResponse(c, "EOF") }, http.StatusBadRequest, "BAD_REQUEST", "Invalid request data"},
		{"Validation", func(c *gin.Context) { ValidationErrorResponse(c, map[string]string{"name_en": "required"}) }, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data"},
		{"NotFound", func(c *gin.Context) { NotFoundResponse(c, "Category") }, http.StatusNotFound, "NOT_FOUND", "Category not found"},
		{"Unauthorized", UnauthorizedResponse, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access"},
		{"Forbidden", func(c *gin.Context) { ForbiddenResponse(c, "Access denied") }, http.StatusForbidden, "FORBIDDEN", "Access denied"},
		{"Conflict", func(c *gin.Context) { ConflictResponse(c, "Category has subcategories") }, http.StatusConflict, "CONFLICT", "Category has subcategories"},
		{"TooManyRequests", func(c *gin.Context) { TooManyRequestsResponse(c, "Try again later") }, http.StatusTooManyRequests, "RATE_LIMITED", "Try again later"},
		{"Internal", func(c *gin.Context) { InternalErrorResponse(c, "Database connection failed") }, http.StatusInternalServerError, "INTERNAL_ERROR", "Database connection failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.send(c)

			assert.Equal(t, tt.status, w.Code)
			response := decode(t, w)
			assert.False(t, response.Success)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.code, response.Error.Code)
			assert.Equal(t, tt.message, response.Error.Message)
		})
	}
}

func TestSuccessResponses(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		CreatedResponse(c, "Category created", map[string]int{"id": 1})

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decode(t, w)
		assert.True(t, response.Success)
		assert.Equal(t, "Category created", response.Message)
		assert.NotNil(t, response.Data)
		assert.Nil(t, response.Error)
	})

	t.Run("Deleted has no data", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		DeletedResponse(c, "Category deleted")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decode(t, w)
		assert.True(t, response.Success)
		assert.Nil(t, response.Data)
	})

	t.Run("List carries count", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		ListResponse(c, "Tools retrieved", []string{"a", "b", "c"}, 3)

		response := decode(t, w)
		metaBytes, _ := json.Marshal(response.Meta)
		var meta ListMeta
		require.NoError(t, json.Unmarshal(metaBytes, &meta))
		assert.Equal(t, 3, meta.Count)
	})

	t.Run("Paginated carries meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		PaginatedResponse(c, "Prompts retrieved", []string{"a"}, NewPaginationMeta(2, 10, 25))

		response := decode(t, w)
		metaBytes, _ := json.Marshal(response.Meta)
		var meta PaginationMeta
		require.NoError(t, json.Unmarshal(metaBytes, &meta))
		assert.Equal(t, 2, meta.Page)
		assert.Equal(t, int64(25), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})
}

func TestNewPaginationMeta(t *testing.T) {
	m := NewPaginationMeta(1, 20, 0)
	assert.Equal(t, 0, m.TotalPages)
	assert.False(t, m.HasNext)
	assert.False(t, m.HasPrev)

	m = NewPaginationMeta(1, 20, 41)
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)

	m = NewPaginationMeta(3, 20, 41)
	assert.False(t, m.HasNext)
	assert.True(t, m.HasPrev)
}
