package categories

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/promptaat/promptaat/models"
)

// fakeRepository keeps categories in memory with the same ordering and
// not-found behaviour as the gorm repository.
type fakeRepository struct {
	rows   map[uint]*models.Category
	nextID uint

	orderWrites int
	deleted     []uint
	failWith    error
}

func newFakeRepository(categories ...models.Category) *fakeRepository {
	r := &fakeRepository{rows: make(map[uint]*models.Category), nextID: 1}
	for i := range categories {
		c := categories[i]
		r.rows[c.ID] = &c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeRepository) sorted(keep func(*models.Category) bool) []models.Category {
	var out []models.Category
	for _, c := range r.rows {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeRepository) FindAll(context.Context) ([]models.Category, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	top := r.sorted(func(c *models.Category) bool { return c.ParentCategoryID == nil })
	rest := r.sorted(func(c *models.Category) bool { return c.ParentCategoryID != nil })
	sort.SliceStable(rest, func(i, j int) bool { return *rest[i].ParentCategoryID < *rest[j].ParentCategoryID })
	return append(top, rest...), nil
}

func (r *fakeRepository) GetByID(_ context.Context, id uint) (*models.Category, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepository) GetByIDs(_ context.Context, ids []uint) ([]models.Category, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.sorted(func(c *models.Category) bool { return want[c.ID] }), nil
}

func (r *fakeRepository) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range r.rows {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) FindByParent(_ context.Context, parentID *uint) ([]models.Category, error) {
	return r.sorted(func(c *models.Category) bool { return sameParent(c.ParentCategoryID, parentID) }), nil
}

func (r *fakeRepository) FindChildren(_ context.Context, parentIDs []uint) ([]models.Category, error) {
	want := make(map[uint]bool, len(parentIDs))
	for _, id := range parentIDs {
		want[id] = true
	}
	return r.sorted(func(c *models.Category) bool {
		return c.ParentCategoryID != nil && want[*c.ParentCategoryID]
	}), nil
}

func (r *fakeRepository) SlugExists(_ context.Context, slug string, excludeID uint) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	for _, c := range r.rows {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) MaxOrder(_ context.Context, parentID *uint) (int, error) {
	maxOrder := 0
	for _, c := range r.rows {
		if sameParent(c.ParentCategoryID, parentID) && c.SortOrder > maxOrder {
			maxOrder = c.SortOrder
		}
	}
	return maxOrder, nil
}

func (r *fakeRepository) CountChildren(_ context.Context, id uint) (int64, error) {
	var n int64
	for _, c := range r.rows {
		if c.ParentCategoryID != nil && *c.ParentCategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeRepository) Create(_ context.Context, category *models.Category) error {
	if r.failWith != nil {
		return r.failWith
	}
	category.ID = r.nextID
	r.nextID++
	cp := *category
	r.rows[category.ID] = &cp
	return nil
}

func (r *fakeRepository) Update(_ context.Context, category *models.Category) error {
	cp := *category
	r.rows[category.ID] = &cp
	return nil
}

func (r *fakeRepository) UpdateOrders(_ context.Context, orders map[uint]int) error {
	for id, order := range orders {
		r.rows[id].SortOrder = order
		r.orderWrites++
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id uint) error {
	delete(r.rows, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepository) order(id uint) int {
	return r.rows[id].SortOrder
}

func uintPtr(v uint) *uint { return &v }

func cat(id uint, slug string, parent *uint, order int) models.Category {
	return models.Category{ID: id, NameEn: slug, NameAr: slug, Slug: slug, ParentCategoryID: parent, SortOrder: order}
}
