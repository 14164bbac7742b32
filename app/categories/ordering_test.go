package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptaat/promptaat/models"
)

func TestOrdering_NextOrder(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	o := NewOrdering(repo)

	next, err := o.NextOrder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	require.NoError(t, repo.Create(ctx, &models.Category{Slug: "marketing", SortOrder: next}))

	next, err = o.NextOrder(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	// each parent is its own group
	next, err = o.NextOrder(ctx, uintPtr(1))
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestOrdering_ValidateAndUpdateOrder(t *testing.T) {
	ctx := context.Background()
	seed := func() *fakeRepository {
		return newFakeRepository(
			cat(1, "marketing", nil, 1),
			cat(2, "writing", nil, 2),
			cat(3, "sales", nil, 3),
			cat(4, "seo", uintPtr(1), 1),
			cat(5, "ads", uintPtr(1), 2),
		)
	}

	t.Run("Duplicate order within a group applies nothing", func(t *testing.T) {
		repo := seed()
		err := NewOrdering(repo).ValidateAndUpdateOrder(ctx, []OrderUpdate{{ID: 1, Order: 2}, {ID: 2, Order: 2}})

		assert.ErrorIs(t, err, models.ErrDuplicateSiblingOrder)
		assert.Zero(t, repo.orderWrites)
		assert.Equal(t, 1, repo.order(1))
		assert.Equal(t, 2, repo.order(2))
	})

	t.Run("Collision with an untouched sibling is rejected", func(t *testing.T) {
		repo := seed()
		err := NewOrdering(repo).ValidateAndUpdateOrder(ctx, []OrderUpdate{{ID: 1, Order: 3}})

		assert.ErrorIs(t, err, models.ErrDuplicateSiblingOrder)
		assert.Zero(t, repo.orderWrites)
	})

	t.Run("Swap within a group", func(t *testing.T) {
		repo := seed()
		err := NewOrdering(repo).ValidateAndUpdateOrder(ctx, []OrderUpdate{{ID: 1, Order: 2}, {ID: 2, Order: 1}})

		require.NoError(t, err)
		assert.Equal(t, 2, repo.order(1))
		assert.Equal(t, 1, repo.order(2))
		assert.Equal(t, 3, repo.order(3))
	})

	t.Run("Same order in different groups", func(t *testing.T) {
		repo := seed()
		err := NewOrdering(repo).ValidateAndUpdateOrder(ctx, []OrderUpdate{{ID: 3, Order: 7}, {ID: 5, Order: 7}})

		require.NoError(t, err)
		assert.Equal(t, 7, repo.order(3))
		assert.Equal(t, 7, repo.order(5))
	})

	t.Run("Empty batch", func(t *testing.T) {
		err := NewOrdering(seed()).ValidateAndUpdateOrder(ctx, nil)
		assert.ErrorIs(t, err, models.ErrEmptyOrderBatch)
	})

	t.Run("Category listed twice", func(t *testing.T) {
		repo := seed()
		err := NewOrdering(repo).ValidateAndUpdateOrder(ctx, []OrderUpdate{{ID: 1, Order: 5}, {ID: 1, Order: 6}})

		assert.ErrorIs(t, err, models.ErrDuplicateOrderTarget)
		assert.Zero(t, repo.orderWrites)
	})

	t.Run("Unknown category", func(t *testing.T) {
		repo := seed()
		err := NewOrdering(repo).ValidateAndUpdateOrder(ctx, []OrderUpdate{{ID: 1, Order: 5}, {ID: 42, Order: 6}})

		assert.ErrorIs(t, err, models.ErrRecordNotFound)
		assert.Zero(t, repo.orderWrites)
	})
}
