package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var supportedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "INR": true, "GBP": true, "JPY": true,
	"CAD": true, "AUD": true, "CHF": true, "CNY": true, "SEK": true,
}

type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	PasswordHash  string
	AvatarURL     string
	Currency      string
	MonthlyBudget Money
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var (
	ErrEmptyUsername   = errors.New("username is required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmptyFullName   = errors.New("full name is required")
	ErrInvalidCurrency = errors.New("currency not supported")
	ErrNegativeBudget  = errors.New("monthly budget cannot be negative")
)

func ValidCurrency(code string) bool {
	return supportedCurrencies[code]
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.FullName) == "" {
		return ErrEmptyFullName
	}
	if len(u.FullName) > 50 {
		return errors.New("full name too long (max 50 characters)")
	}
	if u.Currency != "" && !ValidCurrency(u.Currency) {
		return ErrInvalidCurrency
	}
	if u.MonthlyBudget.Cents < 0 {
		return ErrNegativeBudget
	}
	return nil
}
