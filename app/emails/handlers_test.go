package emails

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/promptaat/promptaat/internal/logger"
	"github.com/promptaat/promptaat/internal/sanitizer"
	"github.com/promptaat/promptaat/internal/validator"
	"github.com/promptaat/promptaat/models"
)

type EmailHandlersTestSuite struct {
	suite.Suite
	repo   *memoryRepository
	router *gin.Engine
}

func TestEmailHandlers(t *testing.T) {
	suite.Run(t, new(EmailHandlersTestSuite))
}

func (s *EmailHandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.repo = &memoryRepository{}

	ctx := context.Background()
	for _, l := range []models.EmailLog{
		{Recipient: "a@example.com", Subject: "Verify", Template: models.EmailTemplateVerification, Status: models.EmailStatusSent},
		{Recipient: "b@example.com", Subject: "Reset", Template: models.EmailTemplatePasswordReset, Status: models.EmailStatusFailed, Error: "timeout"},
		{Recipient: "A@example.com", Subject: "Welcome", Template: models.EmailTemplateWelcome, Status: models.EmailStatusSent},
	} {
		entry := l
		s.Require().NoError(s.repo.Create(ctx, &entry))
	}

	handler := NewHandler(NewService(s.repo), sanitizer.NewHTMLStripper(), logger.NewNullLogger())
	s.router = gin.New()
	s.router.GET("/admin/emails", handler.ListLogs)
	s.router.GET("/admin/emails/:id", handler.GetLog)
}

func (s *EmailHandlersTestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

type listBody struct {
	Data []EmailLogResponse `json:"data"`
	Meta struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func (s *EmailHandlersTestSuite) TestListLogs() {
	w := s.get("/admin/emails?recipient=a@example.com")
	s.Require().Equal(http.StatusOK, w.Code)

	var body listBody
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Data, 2)
	s.Equal(int64(2), body.Meta.Total)
	s.Equal("Welcome", body.Data[0].Subject)

	w = s.get("/admin/emails?status=failed")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body.Data, 1)
	s.Equal("timeout", body.Data[0].Error)

	w = s.get("/admin/emails?page=2&per_page=2")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Data, 1)
	s.Equal(int64(3), body.Meta.Total)
}

func (s *EmailHandlersTestSuite) TestListLogsValidation() {
	for _, query := range []string{"status=bounced", "per_page=500", "template=newsletter", "user_id=42"} {
		w := s.get("/admin/emails?" + query)
		s.Equal(http.StatusBadRequest, w.Code, query)
	}
}

func (s *EmailHandlersTestSuite) TestGetLog() {
	id := s.repo.logs[1].ID

	w := s.get("/admin/emails/" + id.String())
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "b@example.com")

	w = s.get("/admin/emails/" + uuid.NewString())
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "Email log not found")

	w = s.get("/admin/emails/nope")
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestLogFilters_Defaults(t *testing.T) {
	f := LogFilters{Recipient: "<b>a@example.com</b>"}
	v := validator.New()
	f.SanitizeAndValidate(v, sanitizer.NewHTMLStripper())

	require.True(t, v.Valid())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, defaultPerPage, f.PerPage)
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, "a@example.com", f.Recipient)
}
