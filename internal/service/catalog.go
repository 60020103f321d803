package service

import (
	"context"
	"strings"

	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
)

// Listing is a slice of reference data plus the total number of matches.
type Listing[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// CatalogService serves the reference data recipes are classified by
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListCategories returns every category by name. Categories without an image get the
// placeholder.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, storageErr("list categories", err)
	}
	for i := range categories {
		if strings.TrimSpace(categories[i].Img) == "" {
			categories[i].Img = models.DefaultCategoryImage
		}
	}
	return categories, nil
}

// ListAreas returns areas whose name starts with search, case-insensitively.
func (s *CatalogService) ListAreas(ctx context.Context, search string, limit, offset int) (*Listing[models.Area], error) {
	return prefixSearch[models.Area](ctx, s.db, "areas", search, limit, offset)
}

// ListIngredients returns ingredients whose name starts with search, case-insensitively.
func (s *CatalogService) ListIngredients(ctx context.Context, search string, limit, offset int) (*Listing[models.Ingredient], error) {
	return prefixSearch[models.Ingredient](ctx, s.db, "ingredients", search, limit, offset)
}

func prefixSearch[T any](ctx context.Context, db *gorm.DB, table, search string, limit, offset int) (*Listing[T], error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := func() *gorm.DB {
		q := db.WithContext(ctx).Model(new(T))
		if s := strings.TrimSpace(search); s != "" {
			q = q.Where("LOWER("+table+".name) LIKE LOWER(?) ESCAPE '\\'", escapeLike(s)+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, storageErr("count "+table, err)
	}

	items := make([]T, 0)
	if total > 0 {
		if err := query().Order(table + ".name ASC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
			return nil, storageErr("list "+table, err)
		}
	}
	return &Listing[T]{Items: items, Total: total}, nil
}
