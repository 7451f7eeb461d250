// Package services implements the application operations on top of storage:
// the bill lifecycle, transactions, categories, and user profiles.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// BillService owns the bill lifecycle: creation, the allow-list update,
// payment, the derived Overdue view, and recurring-instance generation.
// The clock is injected so dueness can be tested against a fixed date.
type BillService struct {
	repo   *storage.SQLiteRepository
	events *amqp.Client
	clock  core.Clock
}

// NewBillService wires a bill service. events may be nil, in which case
// activity publishing is skipped. A nil clock falls back to wall time.
func NewBillService(repo *storage.SQLiteRepository, events *amqp.Client, clock core.Clock) *BillService {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &BillService{repo: repo, events: events, clock: clock}
}

// CreateBillInput carries the client-supplied bill fields. Everything but
// vendor name, amount, and due date is optional and defaulted. Amount is a
// pointer so an absent field is distinguishable from an explicit zero.
type CreateBillInput struct {
	VendorName    string            `json:"vendorName"`
	VendorLogoURL string            `json:"vendorLogoUrl"`
	Description   string            `json:"description"`
	Amount        *core.Money       `json:"amount"`
	DueDate       string            `json:"dueDate"`
	Category      core.BillCategory `json:"category"`
	IsRecurring   bool              `json:"isRecurring"`
	Recurrence    core.Recurrence   `json:"recurrence"`
	PaymentMethod string            `json:"paymentMethod"`
	AttachmentURL string            `json:"attachmentUrl"`
}

func (s *BillService) Create(ctx context.Context, owner string, in CreateBillInput) (*core.Bill, error) {
	due, err := parseDate(in.DueDate)
	if err != nil {
		return nil, invalid(fmt.Errorf("due date: %s", err))
	}
	if in.Amount == nil {
		return nil, invalid(errors.New("amount is required"))
	}

	b := &core.Bill{
		Owner:         owner,
		VendorName:    strings.TrimSpace(in.VendorName),
		VendorLogoURL: in.VendorLogoURL,
		Description:   in.Description,
		Amount:        *in.Amount,
		DueDate:       due,
		Status:        core.StatusPending,
		IsRecurring:   in.IsRecurring,
		Recurrence:    in.Recurrence,
		PaymentMethod: in.PaymentMethod,
		Category:      in.Category,
		AttachmentURL: in.AttachmentURL,
	}
	if b.Category == "" {
		b.Category = core.CategoryOther
	}
	if b.Recurrence == "" {
		b.Recurrence = core.Monthly
	}
	if err := b.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	s.publish(ctx, b.ID, owner, amqp.ActionCreated)
	return b, nil
}

// Get returns one bill with the derived status applied.
func (s *BillService) Get(ctx context.Context, owner, id string) (*core.Bill, error) {
	b, err := s.repo.GetBill(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	b.Status = b.EffectiveStatus(s.clock.Now())
	return b, nil
}

// updatableBillFields is the complete set of field names Update accepts. A
// request naming anything else is rejected as a whole; no partial writes.
// The vendor logo is create-only.
var updatableBillFields = map[string]bool{
	"vendorName":    true,
	"description":   true,
	"amount":        true,
	"dueDate":       true,
	"status":        true,
	"isRecurring":   true,
	"recurrence":    true,
	"paymentMethod": true,
	"category":      true,
	"attachmentUrl": true,
}

// Update applies a partial update given the raw JSON request body. Field
// names outside the allow-list fail the entire request before anything is
// loaded or written. Setting status to Paid through here does not stamp a
// paid date; only MarkPaid does that.
func (s *BillService) Update(ctx context.Context, owner, id string, body []byte) (*core.Bill, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, invalid(errors.New("request body must be a JSON object"))
	}
	for name := range fields {
		if !updatableBillFields[name] {
			return nil, invalid(fmt.Errorf("field %q cannot be updated", name))
		}
	}

	b, err := s.repo.GetBill(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := applyBillFields(b, fields); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, invalid(err)
	}

	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func applyBillFields(b *core.Bill, fields map[string]json.RawMessage) error {
	for name, raw := range fields {
		var err error
		switch name {
		case "vendorName":
			err = json.Unmarshal(raw, &b.VendorName)
		case "description":
			err = json.Unmarshal(raw, &b.Description)
		case "amount":
			err = json.Unmarshal(raw, &b.Amount)
		case "dueDate":
			var s string
			if err = json.Unmarshal(raw, &s); err == nil {
				b.DueDate, err = parseDate(s)
			}
		case "status":
			err = json.Unmarshal(raw, &b.Status)
		case "isRecurring":
			err = json.Unmarshal(raw, &b.IsRecurring)
		case "recurrence":
			err = json.Unmarshal(raw, &b.Recurrence)
		case "paymentMethod":
			err = json.Unmarshal(raw, &b.PaymentMethod)
		case "category":
			err = json.Unmarshal(raw, &b.Category)
		case "attachmentUrl":
			err = json.Unmarshal(raw, &b.AttachmentURL)
		}
		if err != nil {
			return invalid(fmt.Errorf("field %q: %s", name, err))
		}
	}
	return nil
}

// MarkPaid transitions a bill to Paid and stamps the paid date from the
// clock. A bill already Paid conflicts; any other status, including
// Cancelled, is accepted.
func (s *BillService) MarkPaid(ctx context.Context, owner, id string) (*core.Bill, error) {
	b, err := s.repo.GetBill(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if b.Status == core.StatusPaid {
		return nil, ErrAlreadyPaid
	}

	now := s.clock.Now()
	b.Status = core.StatusPaid
	b.PaidDate = &now
	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Bill marked as paid",
		"component", "bill_service",
		"bill_id", b.ID,
		"paid_date", now.Format("2006-01-02"))

	s.publish(ctx, b.ID, owner, amqp.ActionPaid)
	return b, nil
}

func (s *BillService) Delete(ctx context.Context, owner, id string) error {
	if err := s.repo.DeleteBill(ctx, owner, id); err != nil {
		return err
	}
	s.publish(ctx, id, owner, amqp.ActionDeleted)
	return nil
}

// List returns the owner's bills matching the filter, each presented with
// its derived status.
func (s *BillService) List(ctx context.Context, owner string, f storage.BillFilter) ([]core.Bill, error) {
	bills, err := s.repo.ListBills(ctx, owner, f)
	if err != nil {
		return nil, err
	}
	s.deriveStatuses(bills)
	return bills, nil
}

// Upcoming returns bills due between now and one calendar month out whose
// persisted status is Pending or Overdue.
func (s *BillService) Upcoming(ctx context.Context, owner string) ([]core.Bill, error) {
	now := s.clock.Now()
	bills, err := s.repo.ListUpcomingBills(ctx, owner, now, now.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	s.deriveStatuses(bills)
	return bills, nil
}

// Overdue returns bills whose persisted status is still Pending and whose
// due date has passed. Bills already persisted as Overdue are deliberately
// not part of this listing.
func (s *BillService) Overdue(ctx context.Context, owner string) ([]core.Bill, error) {
	bills, err := s.repo.ListOverdueBills(ctx, owner, core.StartOfDay(s.clock.Now()))
	if err != nil {
		return nil, err
	}
	s.deriveStatuses(bills)
	return bills, nil
}

// GenerateNext creates the next instance of a recurring bill. The child is
// an independent sibling seeded from the parent's stored due date; calling
// this twice for the same parent yields two instances with the same due
// date.
func (s *BillService) GenerateNext(ctx context.Context, owner, id string) (*core.Bill, error) {
	parent, err := s.repo.GetBill(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !parent.IsRecurring {
		return nil, ErrNotRecurring
	}

	child := parent.NextInstance()
	if err := s.repo.CreateBill(ctx, &child); err != nil {
		return nil, fmt.Errorf("create next instance: %w", err)
	}

	slog.InfoContext(ctx, "Generated next recurring instance",
		"component", "bill_service",
		"parent_id", parent.ID,
		"child_id", child.ID,
		"due_date", child.DueDate.Format("2006-01-02"))

	s.publish(ctx, child.ID, owner, amqp.ActionGenerated)
	return &child, nil
}

// Activity returns the owner's recent bill events, newest first.
func (s *BillService) Activity(ctx context.Context, owner string, limit int) ([]storage.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListActivity(ctx, owner, limit)
}

func (s *BillService) deriveStatuses(bills []core.Bill) {
	now := s.clock.Now()
	for i := range bills {
		bills[i].Status = bills[i].EffectiveStatus(now)
	}
}

// publish sends a bill event if a broker is configured. Publishing is best
// effort: the mutation has already committed, so a broker failure is logged
// and swallowed.
func (s *BillService) publish(ctx context.Context, billID, owner, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishBillEvent(ctx, billID, owner, action); err != nil {
		slog.WarnContext(ctx, "Failed to publish bill event",
			"component", "bill_service",
			"error", err,
			"bill_id", billID,
			"action", action)
	}
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("value is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
