package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeRevenue TransactionType = "revenue"
	TypeExpense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a single revenue or expense entry.
	Transaction struct {
		ID          string
		Owner       string
		Type        TransactionType
		Amount      Money
		Category    string
		Description string
		Date        time.Time
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}
)

var (
	ErrInvalidType     = errors.New("type must be revenue or expense")
	ErrEmptyCategory   = errors.New("category is required")
	ErrCategoryTooLong = errors.New("category name too long (max 50 characters)")
)

func (t TransactionType) Valid() bool {
	return t == TypeRevenue || t == TypeExpense
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
