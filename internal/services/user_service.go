package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// UserService manages profile data. Registration and credential checks live
// in the auth package; this only touches the non-credential fields.
type UserService struct {
	repo *storage.SQLiteRepository
}

func NewUserService(repo *storage.SQLiteRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, id string) (*core.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

type ProfileInput struct {
	FullName      string     `json:"fullName"`
	AvatarURL     string     `json:"avatarUrl"`
	Currency      string     `json:"currency"`
	MonthlyBudget core.Money `json:"monthlyBudget"`
}

// UpdateProfile replaces the user's profile fields. Username, email, and
// the password hash are left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*core.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.FullName = strings.TrimSpace(in.FullName)
	u.AvatarURL = in.AvatarURL
	u.Currency = in.Currency
	u.MonthlyBudget = in.MonthlyBudget
	if err := u.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}
