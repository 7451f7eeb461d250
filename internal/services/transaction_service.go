package services

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TransactionService manages revenue and expense entries.
type TransactionService struct {
	repo  *storage.SQLiteRepository
	clock core.Clock
}

func NewTransactionService(repo *storage.SQLiteRepository, clock core.Clock) *TransactionService {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &TransactionService{repo: repo, clock: clock}
}

type TransactionInput struct {
	Type        core.TransactionType `json:"type"`
	Amount      core.Money           `json:"amount"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
}

func (s *TransactionService) Create(ctx context.Context, owner string, in TransactionInput) (*core.Transaction, error) {
	t := &core.Transaction{
		Owner:       owner,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Date:        s.clock.Now(),
	}
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return nil, invalid(fmt.Errorf("date: %s", err))
		}
		t.Date = d
	}
	if err := t.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

func (s *TransactionService) Get(ctx context.Context, owner, id string) (*core.Transaction, error) {
	return s.repo.GetTransaction(ctx, owner, id)
}

// List returns the owner's transactions, most recent first.
func (s *TransactionService) List(ctx context.Context, owner string) ([]core.Transaction, error) {
	return s.repo.ListTransactions(ctx, owner)
}

// ExpensesByDateRange returns the owner's expenses dated in [from, to].
func (s *TransactionService) ExpensesByDateRange(ctx context.Context, owner, from, to string) ([]core.Transaction, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, invalid(fmt.Errorf("from: %s", err))
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, invalid(fmt.Errorf("to: %s", err))
	}
	if end.Before(start) {
		return nil, invalid(fmt.Errorf("range end %s precedes start %s", to, from))
	}
	return s.repo.ListExpensesByDateRange(ctx, owner, start, end)
}

func (s *TransactionService) Update(ctx context.Context, owner, id string, in TransactionInput) (*core.Transaction, error) {
	t, err := s.repo.GetTransaction(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	t.Type = in.Type
	t.Amount = in.Amount
	t.Category = strings.TrimSpace(in.Category)
	t.Description = in.Description
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return nil, invalid(fmt.Errorf("date: %s", err))
		}
		t.Date = d
	}
	if err := t.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.UpdateTransaction(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, owner, id string) error {
	return s.repo.DeleteTransaction(ctx, owner, id)
}
