package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending   BillStatus = "Pending"
	StatusPaid      BillStatus = "Paid"
	StatusOverdue   BillStatus = "Overdue"
	StatusCancelled BillStatus = "Cancelled"
)

const (
	Weekly    Recurrence = "weekly"
	Monthly   Recurrence = "monthly"
	Quarterly Recurrence = "quarterly"
	Yearly    Recurrence = "yearly"
)

const (
	CategoryUtilities    BillCategory = "Utilities"
	CategorySubscription BillCategory = "Subscription"
	CategoryRent         BillCategory = "Rent"
	CategoryInternet     BillCategory = "Internet"
	CategoryPhone        BillCategory = "Phone"
	CategoryInsurance    BillCategory = "Insurance"
	CategoryOther        BillCategory = "Other"
)

type (
	BillStatus   string
	Recurrence   string
	BillCategory string

	// Bill is a payable obligation owned by exactly one user. The persisted
	// status never flips to Overdue on its own; see EffectiveStatus.
	Bill struct {
		ID            string
		Owner         string
		VendorName    string
		VendorLogoURL string
		Description   string
		Amount        Money
		DueDate       time.Time
		Status        BillStatus
		IsRecurring   bool
		Recurrence    Recurrence
		PaymentMethod string
		PaidDate      *time.Time
		Category      BillCategory
		AttachmentURL string
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}
)

var (
	ErrEmptyVendor       = errors.New("vendor name is required")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDueDate    = errors.New("due date is required")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrInvalidCategory   = errors.New("invalid category")
)

func (s BillStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

func (r Recurrence) Valid() bool {
	switch r {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

func (c BillCategory) Valid() bool {
	switch c {
	case CategoryUtilities, CategorySubscription, CategoryRent,
		CategoryInternet, CategoryPhone, CategoryInsurance, CategoryOther:
		return true
	}
	return false
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.VendorName) == "" {
		return ErrEmptyVendor
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if b.DueDate.IsZero() {
		return ErrInvalidDueDate
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if !b.Recurrence.Valid() {
		return ErrInvalidRecurrence
	}
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EffectiveStatus folds the read-time Overdue derivation into the persisted
// status: a Pending bill due strictly before the start of the current day is
// presented as Overdue. Every other status passes through unchanged, and the
// persisted value is never touched.
func (b Bill) EffectiveStatus(now time.Time) BillStatus {
	if b.Status == StatusPending && b.DueDate.Before(StartOfDay(now)) {
		return StatusOverdue
	}
	return b.Status
}

// Advance moves a due date forward by one recurrence step using calendar
// arithmetic. Overflowing day-of-month values normalize the way time.AddDate
// does: Jan 31 + one month lands on Mar 2 (Mar 3 in non-leap years) and
// Feb 29 + one year lands on Mar 1. An unrecognized recurrence advances by
// one month, matching the monthly default rather than erroring.
func (r Recurrence) Advance(t time.Time) time.Time {
	switch r {
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Quarterly:
		return t.AddDate(0, 3, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// NextInstance builds the next bill in a recurring series from the parent's
// stored due date. The child carries no reference back to the parent, so
// generating twice from the same parent yields two siblings with identical
// due dates rather than a chain. ID and timestamps are assigned at persist
// time.
func (b Bill) NextInstance() Bill {
	return Bill{
		Owner:         b.Owner,
		VendorName:    b.VendorName,
		VendorLogoURL: b.VendorLogoURL,
		Description:   b.Description,
		Amount:        b.Amount,
		DueDate:       b.Recurrence.Advance(b.DueDate),
		Status:        StatusPending,
		IsRecurring:   true,
		Recurrence:    b.Recurrence,
		Category:      b.Category,
		AttachmentURL: b.AttachmentURL,
	}
}
