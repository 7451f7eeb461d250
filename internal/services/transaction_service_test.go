package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestTransactionCreateDefaultsDate(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo)
	svc := NewTransactionService(repo, core.FixedClock{T: testNow})
	ctx := context.Background()

	tx, err := svc.Create(ctx, owner, TransactionInput{
		Type:     core.TypeExpense,
		Amount:   core.Money{Cents: 1250},
		Category: "Food",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !tx.Date.Equal(testNow) {
		t.Fatalf("date = %v, want clock time %v", tx.Date, testNow)
	}

	dated, err := svc.Create(ctx, owner, TransactionInput{
		Type:     core.TypeRevenue,
		Amount:   core.Money{Cents: 500000},
		Category: "Salary",
		Date:     "2024-06-01",
	})
	if err != nil {
		t.Fatalf("create dated: %v", err)
	}
	if dated.Date.Day() != 1 {
		t.Fatalf("date = %v, want June 1st", dated.Date)
	}
}

func TestTransactionValidation(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo)
	svc := NewTransactionService(repo, core.FixedClock{T: testNow})
	ctx := context.Background()

	cases := []TransactionInput{
		{Type: "transfer", Amount: core.Money{Cents: 100}, Category: "Food"},
		{Type: core.TypeExpense, Amount: core.Money{Cents: 100}},
		{Type: core.TypeExpense, Amount: core.Money{Cents: 100}, Category: "Food", Date: "yesterday"},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, owner, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("input %+v: got %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestExpensesByDateRangeValidation(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo)
	svc := NewTransactionService(repo, core.FixedClock{T: testNow})
	ctx := context.Background()

	if _, err := svc.ExpensesByDateRange(ctx, owner, "2024-06-30", "2024-06-01"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("inverted range: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.ExpensesByDateRange(ctx, owner, "", "2024-06-30"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing from: got %v, want ErrInvalidInput", err)
	}
}

func TestCategoryDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo)
	svc := NewCategoryService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, owner, CategoryInput{Name: "Food", Type: core.TypeExpense}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, owner, CategoryInput{Name: "Food", Type: core.TypeExpense}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate: got %v, want ErrDuplicate", err)
	}
	// Same name under the other type is a different category.
	if _, err := svc.Create(ctx, owner, CategoryInput{Name: "Food", Type: core.TypeRevenue}); err != nil {
		t.Fatalf("create revenue: %v", err)
	}
}

func TestUserProfileUpdate(t *testing.T) {
	repo := newTestRepo(t)
	owner := newTestOwner(t, repo)
	svc := NewUserService(repo)
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, owner, ProfileInput{
		FullName:      "Renamed User",
		Currency:      "EUR",
		MonthlyBudget: core.Money{Cents: 150000},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.FullName != "Renamed User" || u.Currency != "EUR" || u.MonthlyBudget.Cents != 150000 {
		t.Fatalf("profile not applied: %+v", u)
	}

	if _, err := svc.UpdateProfile(ctx, owner, ProfileInput{
		FullName: "X", Currency: "DOGE",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad currency: got %v, want ErrInvalidInput", err)
	}
}
