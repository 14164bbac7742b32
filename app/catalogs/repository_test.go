package catalogs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
	"github.com/promptaat/promptaat/tests/suites"
)

type CatalogsRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo Repository
}

func (suite *CatalogsRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true

	suite.RepositoryTestSuite.SetupSuite()

	suite.repo = NewRepository(suite.DB)
}

func TestCatalogsRepository(t *testing.T) {
	suite.Run(t, new(CatalogsRepositoryTestSuite))
}

func (suite *CatalogsRepositoryTestSuite) fixtures() (*models.User, *models.Prompt) {
	user := &models.User{Email: "lina@example.com", PasswordHash: "x"}
	suite.Require().NoError(suite.DB.Create(user).Error)

	category := &models.Category{NameEn: "Writing", NameAr: "كتابة", Slug: "writing", SortOrder: 1}
	suite.Require().NoError(suite.DB.Create(category).Error)

	prompt := &models.Prompt{
		TitleEn: "Essay", TitleAr: "مقال", ContentEn: "c", ContentAr: "c",
		CategoryID: category.ID, IsPublished: true,
	}
	suite.Require().NoError(suite.DB.Create(prompt).Error)
	return user, prompt
}

func (suite *CatalogsRepositoryTestSuite) TestCatalogPrompts() {
	ctx := context.Background()
	user, prompt := suite.fixtures()

	catalog := &models.Catalog{UserID: user.ID, Name: "Reading list"}
	suite.AssertNoDBError(suite.repo.Create(ctx, catalog))

	suite.AssertNoDBError(suite.repo.AddPrompt(ctx, catalog.ID, prompt.ID))
	suite.AssertNoDBError(suite.repo.AddPrompt(ctx, catalog.ID, prompt.ID))

	rows, err := suite.repo.ListByUser(ctx, user.ID)
	suite.AssertNoDBError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(int64(1), rows[0].PromptCount)

	found, err := suite.repo.GetByID(ctx, catalog.ID)
	suite.AssertNoDBError(err)
	suite.Require().Len(found.Prompts, 1)
	suite.Equal("Essay", found.Prompts[0].TitleEn)

	suite.AssertNoDBError(suite.repo.Rename(ctx, catalog.ID, "Later"))
	found, err = suite.repo.GetByID(ctx, catalog.ID)
	suite.AssertNoDBError(err)
	suite.Equal("Later", found.Name)

	suite.AssertNoDBError(suite.repo.RemovePrompt(ctx, catalog.ID, prompt.ID))
	suite.ErrorIs(suite.repo.RemovePrompt(ctx, catalog.ID, prompt.ID), gorm.ErrRecordNotFound)

	suite.AssertNoDBError(suite.repo.Delete(ctx, catalog.ID))
	_, err = suite.repo.GetByID(ctx, catalog.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}
