package categories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// Hierarchy guards the parent links of the category tree.
type Hierarchy struct {
	repo     Repository
	maxDepth int
}

// NewHierarchy returns a Hierarchy; maxDepth <= 0 means unlimited depth.
func NewHierarchy(repo Repository, maxDepth int) *Hierarchy {
	return &Hierarchy{repo: repo, maxDepth: maxDepth}
}

// ValidateParent reports whether parentID may become the parent of categoryID.
// categoryID is nil for a category that does not exist yet.
//
// It returns false for a self reference, for a missing parent and for a parent
// that already descends from categoryID. A dangling link or a loop met while
// walking the existing ancestors is reported as ErrBrokenCategoryHierarchy.
func (h *Hierarchy) ValidateParent(ctx context.Context, categoryID *uint, parentID uint) (bool, error) {
	if categoryID != nil && *categoryID == parentID {
		return false, nil
	}

	parent, err := h.repo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load parent category: %w", err)
	}

	if categoryID == nil {
		return true, nil
	}

	cycle := false
	err = h.walkAncestors(ctx, parent, func(id uint) bool {
		if id == *categoryID {
			cycle = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return !cycle, nil
}

// CheckDepth verifies that placing categoryID (with its subtree) under
// parentID keeps the tree within the configured depth.
func (h *Hierarchy) CheckDepth(ctx context.Context, categoryID *uint, parentID *uint) error {
	if h.maxDepth <= 0 {
		return nil
	}

	levels := 1
	if parentID != nil {
		parent, err := h.repo.GetByID(ctx, *parentID)
		if err != nil {
			return fmt.Errorf("failed to load parent category: %w", err)
		}
		levels++
		if err := h.walkAncestors(ctx, parent, func(uint) bool {
			levels++
			return true
		}); err != nil {
			return err
		}
	}

	if categoryID != nil {
		height, err := h.subtreeHeight(ctx, *categoryID)
		if err != nil {
			return err
		}
		levels += height - 1
	}

	if levels > h.maxDepth {
		return fmt.Errorf("%w: %d levels, at most %d allowed", models.ErrCategoryDepthExceeded, levels, h.maxDepth)
	}
	return nil
}

// walkAncestors calls visit with each ancestor id above start, nearest first,
// until visit returns false or a top-level category is reached.
func (h *Hierarchy) walkAncestors(ctx context.Context, start *models.Category, visit func(id uint) bool) error {
	total, err := h.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	seen := map[uint]bool{start.ID: true}
	next := start.ParentCategoryID
	for steps := int64(0); next != nil; steps++ {
		if steps > total {
			return fmt.Errorf("%w: ancestor walk from %d did not terminate", models.ErrBrokenCategoryHierarchy, start.ID)
		}
		id := *next
		if !visit(id) {
			return nil
		}
		if seen[id] {
			return fmt.Errorf("%w: category %d is its own ancestor", models.ErrBrokenCategoryHierarchy, id)
		}
		seen[id] = true

		node, err := h.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: parent %d does not exist", models.ErrBrokenCategoryHierarchy, id)
			}
			return fmt.Errorf("failed to load ancestor category: %w", err)
		}
		next = node.ParentCategoryID
	}
	return nil
}

// subtreeHeight counts the levels from id down to its deepest descendant.
func (h *Hierarchy) subtreeHeight(ctx context.Context, id uint) (int, error) {
	total, err := h.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	height := 1
	seen := map[uint]bool{id: true}
	frontier := []uint{id}
	for len(frontier) > 0 {
		if int64(height) > total+1 {
			return 0, fmt.Errorf("%w: subtree of %d did not terminate", models.ErrBrokenCategoryHierarchy, id)
		}
		children, err := h.repo.FindChildren(ctx, frontier)
		if err != nil {
			return 0, fmt.Errorf("failed to load subcategories: %w", err)
		}

		next := make([]uint, 0, len(children))
		for i := range children {
			if seen[children[i].ID] {
				return 0, fmt.Errorf("%w: category %d is its own descendant", models.ErrBrokenCategoryHierarchy, children[i].ID)
			}
			seen[children[i].ID] = true
			next = append(next, children[i].ID)
		}
		if len(next) > 0 {
			height++
		}
		frontier = next
	}
	return height, nil
}
