package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// CategoryService manages user-defined transaction categories.
type CategoryService struct {
	repo *storage.SQLiteRepository
}

func NewCategoryService(repo *storage.SQLiteRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryInput struct {
	Name string               `json:"name"`
	Type core.TransactionType `json:"type"`
}

func (s *CategoryService) Create(ctx context.Context, owner string, in CategoryInput) (*core.Category, error) {
	c := &core.Category{
		Owner: owner,
		Name:  strings.TrimSpace(in.Name),
		Type:  in.Type,
	}
	if err := c.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", c.Name, ErrDuplicate)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, owner string) ([]core.Category, error) {
	return s.repo.ListCategories(ctx, owner)
}

func (s *CategoryService) Update(ctx context.Context, owner, id string, in CategoryInput) (*core.Category, error) {
	c, err := s.repo.GetCategory(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	c.Name = strings.TrimSpace(in.Name)
	c.Type = in.Type
	if err := c.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", c.Name, ErrDuplicate)
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, owner, id string) error {
	return s.repo.DeleteCategory(ctx, owner, id)
}

// isUniqueViolation sniffs SQLite constraint failures. The driver exposes
// them only as formatted errors, so string matching is the practical check.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
