package categories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// OrderUpdate moves one category to a new position within its sibling group.
type OrderUpdate struct {
	ID    uint `json:"id" binding:"required,min=1"`
	Order int  `json:"order" binding:"min=0"`
}

// Ordering allocates and reassigns sibling display orders.
type Ordering struct {
	repo Repository
}

func NewOrdering(repo Repository) *Ordering {
	return &Ordering{repo: repo}
}

// NextOrder returns the order that appends a category to the sibling group
// of parentID. An empty group starts at 1.
func (o *Ordering) NextOrder(ctx context.Context, parentID *uint) (int, error) {
	maxOrder, err := o.repo.MaxOrder(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("failed to read max order: %w", err)
	}
	return maxOrder + 1, nil
}

// ValidateAndUpdateOrder applies a batch of order changes. Requested orders
// are merged over the current orders of every affected sibling group and each
// merged group must be free of duplicates. Nothing is written unless the
// whole batch is valid, and the writes share one transaction.
func (o *Ordering) ValidateAndUpdateOrder(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return models.ErrEmptyOrderBatch
	}

	requested := make(map[uint]int, len(updates))
	ids := make([]uint, 0, len(updates))
	for _, u := range updates {
		if _, dup := requested[u.ID]; dup {
			return fmt.Errorf("%w: %d", models.ErrDuplicateOrderTarget, u.ID)
		}
		requested[u.ID] = u.Order
		ids = append(ids, u.ID)
	}

	current, err := o.repo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if len(current) != len(ids) {
		return models.ErrRecordNotFound
	}

	// a category's group is its stored parent; reordering never moves it
	groups := make(map[uint]*uint)
	for i := range current {
		groups[groupKey(current[i].ParentCategoryID)] = current[i].ParentCategoryID
	}

	for _, parentID := range groups {
		siblings, err := o.repo.FindByParent(ctx, parentID)
		if err != nil {
			return fmt.Errorf("failed to load sibling group: %w", err)
		}
		if err := checkMergedOrders(siblings, requested); err != nil {
			return err
		}
	}

	if err := o.repo.UpdateOrders(ctx, requested); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update category order: %w", err)
	}
	return nil
}

func checkMergedOrders(siblings []models.Category, requested map[uint]int) error {
	taken := make(map[int]uint, len(siblings))
	for i := range siblings {
		order := siblings[i].SortOrder
		if o, ok := requested[siblings[i].ID]; ok {
			order = o
		}
		if other, ok := taken[order]; ok {
			return fmt.Errorf("%w: categories %d and %d both use order %d",
				models.ErrDuplicateSiblingOrder, other, siblings[i].ID, order)
		}
		taken[order] = siblings[i].ID
	}
	return nil
}

// groupKey maps a parent id to a map key; 0 is never a category id so it
// stands for the top level.
func groupKey(parentID *uint) uint {
	if parentID == nil {
		return 0
	}
	return *parentID
}
