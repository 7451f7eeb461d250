package core

import (
	"strings"
	"time"
)

// Category is a user-defined transaction label. The (owner, type, name)
// triple is unique per user.
type Category struct {
	ID        string
	Owner     string
	Name      string
	Type      TransactionType
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	if len(c.Name) > 50 {
		return ErrCategoryTooLong
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
