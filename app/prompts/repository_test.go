package prompts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
	"github.com/promptaat/promptaat/tests/suites"
)

type PromptsRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo Repository

	marketing *models.Category
	seo       *models.Category
	chatgpt   *models.Tool
	claude    *models.Tool
}

func (suite *PromptsRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true

	suite.RepositoryTestSuite.SetupSuite()

	suite.repo = NewRepository(suite.DB)
}

func (suite *PromptsRepositoryTestSuite) seed() {
	suite.marketing = &models.Category{NameEn: "Marketing", NameAr: "تسويق", Slug: "marketing", SortOrder: 1}
	suite.Require().NoError(suite.DB.Create(suite.marketing).Error)
	suite.seo = &models.Category{NameEn: "SEO", NameAr: "سيو", Slug: "seo", SortOrder: 1, ParentCategoryID: &suite.marketing.ID}
	suite.Require().NoError(suite.DB.Create(suite.seo).Error)

	suite.chatgpt = &models.Tool{Name: "ChatGPT", Slug: "chatgpt"}
	suite.claude = &models.Tool{Name: "Claude", Slug: "claude"}
	suite.Require().NoError(suite.DB.Create(suite.chatgpt).Error)
	suite.Require().NoError(suite.DB.Create(suite.claude).Error)
}

func TestPromptsRepository(t *testing.T) {
	suite.Run(t, new(PromptsRepositoryTestSuite))
}

func (suite *PromptsRepositoryTestSuite) BeforeTest(suiteName, testName string) {
	suite.RepositoryTestSuite.BeforeTest(suiteName, testName)
	suite.seed()
}

func (suite *PromptsRepositoryTestSuite) createPrompt(title string, published, premium bool, views int64, tools ...models.Tool) *models.Prompt {
	prompt := &models.Prompt{
		TitleEn: title, TitleAr: title, ContentEn: "content", ContentAr: "محتوى",
		DescriptionEn: "about " + title,
		CategoryID:    suite.marketing.ID, IsPublished: published, IsPremium: premium, Views: views,
		Tools: tools,
	}
	suite.Require().NoError(suite.repo.Create(context.Background(), prompt))
	return prompt
}

func (suite *PromptsRepositoryTestSuite) TestSearch() {
	ctx := context.Background()
	cold := suite.createPrompt("Cold email", true, false, 5, *suite.chatgpt)
	time.Sleep(5 * time.Millisecond)
	suite.createPrompt("Landing page", true, true, 50, *suite.claude)
	time.Sleep(5 * time.Millisecond)
	suite.createPrompt("Email draft", false, false, 0)

	prompts, total, err := suite.repo.Search(ctx, &SearchFilters{Page: 1, PerPage: 10, Sort: SortNewest})
	suite.AssertNoDBError(err)
	suite.Equal(int64(2), total)
	suite.Equal("Landing page", prompts[0].TitleEn)

	prompts, total, err = suite.repo.Search(ctx, &SearchFilters{Q: "EMAIL", Page: 1, PerPage: 10, Sort: SortNewest})
	suite.AssertNoDBError(err)
	suite.Equal(int64(1), total)
	suite.Equal(cold.ID, prompts[0].ID)
	suite.Len(prompts[0].Tools, 1)

	_, total, err = suite.repo.Search(ctx, &SearchFilters{Q: "email", Page: 1, PerPage: 10, IncludeUnpublished: true})
	suite.AssertNoDBError(err)
	suite.Equal(int64(2), total)

	prompts, _, err = suite.repo.Search(ctx, &SearchFilters{ToolID: suite.claude.ID, Page: 1, PerPage: 10})
	suite.AssertNoDBError(err)
	suite.Require().Len(prompts, 1)
	suite.Equal("Landing page", prompts[0].TitleEn)

	prompts, _, err = suite.repo.Search(ctx, &SearchFilters{Premium: "false", Sort: SortPopular, Page: 1, PerPage: 10})
	suite.AssertNoDBError(err)
	suite.Require().Len(prompts, 1)
	suite.Equal(cold.ID, prompts[0].ID)

	prompts, total, err = suite.repo.Search(ctx, &SearchFilters{Sort: SortOldest, Page: 2, PerPage: 1})
	suite.AssertNoDBError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(prompts, 1)
	suite.Equal("Landing page", prompts[0].TitleEn)

	_, total, err = suite.repo.Search(ctx, &SearchFilters{Q: "100%", Page: 1, PerPage: 10})
	suite.AssertNoDBError(err)
	suite.Zero(total)
}

func (suite *PromptsRepositoryTestSuite) TestIncrementViews() {
	ctx := context.Background()
	prompt := suite.createPrompt("Tagline", true, false, 0)

	suite.AssertNoDBError(suite.repo.IncrementViews(ctx, prompt.ID))
	suite.AssertNoDBError(suite.repo.IncrementViews(ctx, prompt.ID))

	found, err := suite.repo.GetByID(ctx, prompt.ID)
	suite.AssertNoDBError(err)
	suite.Equal(int64(2), found.Views)

	suite.ErrorIs(suite.repo.IncrementViews(ctx, 9999), gorm.ErrRecordNotFound)
}

func (suite *PromptsRepositoryTestSuite) TestUpdateReplacesTools() {
	ctx := context.Background()
	prompt := suite.createPrompt("Ad copy", true, false, 0, *suite.chatgpt)

	prompt.TitleEn = "Ad copy v2"
	prompt.SubcategoryID = &suite.seo.ID
	prompt.Tools = []models.Tool{*suite.claude}
	suite.AssertNoDBError(suite.repo.Update(ctx, prompt, true))

	found, err := suite.repo.GetByID(ctx, prompt.ID)
	suite.AssertNoDBError(err)
	suite.Equal("Ad copy v2", found.TitleEn)
	suite.Equal(suite.seo.ID, *found.SubcategoryID)
	suite.Require().Len(found.Tools, 1)
	suite.Equal(suite.claude.ID, found.Tools[0].ID)

	found.Tools = nil
	suite.AssertNoDBError(suite.repo.Update(ctx, found, true))
	suite.Zero(suite.countLinks(prompt.ID))
}

func (suite *PromptsRepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	prompt := suite.createPrompt("Bio", true, false, 0, *suite.chatgpt)

	suite.AssertNoDBError(suite.repo.Delete(ctx, prompt.ID))
	suite.Zero(suite.countLinks(prompt.ID))
	suite.ErrorIs(suite.repo.Delete(ctx, prompt.ID), gorm.ErrRecordNotFound)
}

func (suite *PromptsRepositoryTestSuite) countLinks(promptID uint) int64 {
	var n int64
	suite.Require().NoError(suite.DB.Table("prompt_tools").Where("prompt_id = ?", promptID).Count(&n).Error)
	return n
}
