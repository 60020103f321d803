package service

import (
	"math"

	"github.com/pageza/foodies/backend/internal/models"
)

// MaxLimit caps the page size of every listing.
const MaxLimit = 50

// MaxPage keeps Offset from overflowing for any limit up to MaxLimit.
const MaxPage = math.MaxInt32 / MaxLimit

// Default page sizes per listing.
const (
	DefaultCatalogLimit  = 8
	DefaultOwnedLimit    = 10
	DefaultPopularLimit  = 4
	DefaultCategoryLimit = 12
	DefaultSearchLimit   = 10
)

// Pagination is a normalized 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalizes raw page/limit values. page is kept within [1, MaxPage], a
// non-positive limit falls back to defaultLimit and anything above MaxLimit is clamped.
func NewPagination(page, limit, defaultLimit int) Pagination {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of rows skipped before this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// WithMaxLimit lowers Limit to max for listings with a tighter cap than MaxLimit.
func (p Pagination) WithMaxLimit(max int) Pagination {
	if p.Limit > max {
		p.Limit = max
	}
	return p
}

// TotalPages is zero for an empty result and ceil(total/limit) otherwise.
func (p Pagination) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// RecipePage is one page of a recipe listing.
type RecipePage struct {
	Items      []models.Recipe `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

func newRecipePage(items []models.Recipe, total int64, p Pagination) *RecipePage {
	if items == nil {
		items = []models.Recipe{}
	}
	return &RecipePage{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
	}
}
