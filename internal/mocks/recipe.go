package mocks

import (
	"context"

	"github.com/pageza/foodies/backend/internal/models"
	"github.com/pageza/foodies/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockRecipeQueryService is a mock implementation of service.IRecipeQueryService
type MockRecipeQueryService struct {
	mock.Mock
}

// ListCatalog mocks the ListCatalog method
func (m *MockRecipeQueryService) ListCatalog(ctx context.Context, filter service.RecipeFilter, p service.Pagination, viewerID *uint) (*service.RecipePage, error) {
	args := m.Called(ctx, filter, p, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipePage), args.Error(1)
}

// ListOwnedBy mocks the ListOwnedBy method
func (m *MockRecipeQueryService) ListOwnedBy(ctx context.Context, ownerID uint, p service.Pagination) (*service.RecipePage, error) {
	args := m.Called(ctx, ownerID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipePage), args.Error(1)
}

// ListFavoritesOf mocks the ListFavoritesOf method
func (m *MockRecipeQueryService) ListFavoritesOf(ctx context.Context, userID uint, p service.Pagination) (*service.RecipePage, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipePage), args.Error(1)
}

// ListPopular mocks the ListPopular method
func (m *MockRecipeQueryService) ListPopular(ctx context.Context, p service.Pagination, viewerID *uint) (*service.RecipePage, error) {
	args := m.Called(ctx, p, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipePage), args.Error(1)
}

// GetByID mocks the GetByID method
func (m *MockRecipeQueryService) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// ListDistinctFilters mocks the ListDistinctFilters method
func (m *MockRecipeQueryService) ListDistinctFilters(ctx context.Context, filter service.RecipeFilter) (*service.DistinctFilters, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DistinctFilters), args.Error(1)
}

// MockRecipeCommandService is a mock implementation of service.IRecipeCommandService
type MockRecipeCommandService struct {
	mock.Mock
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeCommandService) CreateRecipe(ctx context.Context, ownerID uint, in service.CreateRecipeInput, imagePath string) (*models.Recipe, error) {
	args := m.Called(ctx, ownerID, in, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeCommandService) DeleteRecipe(ctx context.Context, recipeID, requesterID uint) (*models.Recipe, error) {
	args := m.Called(ctx, recipeID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

var (
	_ service.IRecipeQueryService   = (*MockRecipeQueryService)(nil)
	_ service.IRecipeCommandService = (*MockRecipeCommandService)(nil)
)
