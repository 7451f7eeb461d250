package core

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func validBill() Bill {
	return Bill{
		Owner:      "u1",
		VendorName: "Netflix",
		Amount:     Money{Cents: 1599},
		DueDate:    date(2024, 6, 1),
		Status:     StatusPending,
		Recurrence: Monthly,
		Category:   CategorySubscription,
	}
}

func TestBillValidate(t *testing.T) {
	if err := validBill().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Bill)
	}{
		{"empty vendor", func(b *Bill) { b.VendorName = "  " }},
		{"negative amount", func(b *Bill) { b.Amount.Cents = -1 }},
		{"zero due date", func(b *Bill) { b.DueDate = time.Time{} }},
		{"bad status", func(b *Bill) { b.Status = "Open" }},
		{"bad recurrence", func(b *Bill) { b.Recurrence = "daily" }},
		{"bad category", func(b *Bill) { b.Category = "Groceries" }},
	}
	for _, tc := range cases {
		b := validBill()
		tc.mutate(&b)
		if err := b.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestBillValidateZeroAmount(t *testing.T) {
	b := validBill()
	b.Amount.Cents = 0
	if err := b.Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status BillStatus
		due    time.Time
		want   BillStatus
	}{
		{"pending past due", StatusPending, date(2024, 6, 14), StatusOverdue},
		{"pending due today", StatusPending, date(2024, 6, 15), StatusPending},
		{"pending due earlier today", StatusPending, time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), StatusPending},
		{"pending future", StatusPending, date(2024, 6, 20), StatusPending},
		{"paid past due", StatusPaid, date(2024, 1, 1), StatusPaid},
		{"cancelled past due", StatusCancelled, date(2024, 1, 1), StatusCancelled},
		{"persisted overdue", StatusOverdue, date(2024, 1, 1), StatusOverdue},
	}
	for _, tc := range cases {
		b := validBill()
		b.Status = tc.status
		b.DueDate = tc.due
		if got := b.EffectiveStatus(now); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRecurrenceAdvance(t *testing.T) {
	cases := []struct {
		name string
		r    Recurrence
		from time.Time
		want time.Time
	}{
		{"weekly", Weekly, date(2024, 1, 1), date(2024, 1, 8)},
		{"monthly", Monthly, date(2024, 2, 15), date(2024, 3, 15)},
		// Jan 31 + 1 month normalizes through Feb 31 to Mar 2 (2024 is leap).
		{"monthly overflow", Monthly, date(2024, 1, 31), date(2024, 3, 2)},
		{"quarterly", Quarterly, date(2024, 1, 15), date(2024, 4, 15)},
		{"yearly", Yearly, date(2024, 3, 10), date(2025, 3, 10)},
		// Feb 29 + 1 year normalizes to Mar 1 of the non-leap year.
		{"yearly leap day", Yearly, date(2024, 2, 29), date(2025, 3, 1)},
		{"unknown falls back to monthly", Recurrence("biweekly"), date(2024, 1, 1), date(2024, 2, 1)},
	}
	for _, tc := range cases {
		if got := tc.r.Advance(tc.from); !got.Equal(tc.want) {
			t.Fatalf("%s: got %s, want %s", tc.name, got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestNextInstance(t *testing.T) {
	parent := Bill{
		ID:            "parent-id",
		Owner:         "u1",
		VendorName:    "Electric Co",
		VendorLogoURL: "https://logo.example/electric.png",
		Description:   "Monthly power bill",
		Amount:        Money{Cents: 8250},
		DueDate:       date(2024, 1, 1),
		Status:        StatusPaid,
		IsRecurring:   true,
		Recurrence:    Weekly,
		PaymentMethod: "card",
		Category:      CategoryUtilities,
		AttachmentURL: "https://files.example/jan.pdf",
	}

	child := parent.NextInstance()

	if !child.DueDate.Equal(date(2024, 1, 8)) {
		t.Fatalf("due date: got %s, want 2024-01-08", child.DueDate.Format("2006-01-02"))
	}
	if child.Status != StatusPending {
		t.Fatalf("child status: got %s, want Pending", child.Status)
	}
	if !child.IsRecurring {
		t.Fatal("child should stay recurring")
	}
	if child.ID != "" {
		t.Fatal("child must not inherit the parent ID")
	}
	if child.PaidDate != nil {
		t.Fatal("child must not inherit paid date")
	}
	if child.PaymentMethod != "" {
		t.Fatal("payment method is not copied to the next instance")
	}
	if child.VendorName != parent.VendorName || child.Amount != parent.Amount ||
		child.Category != parent.Category || child.Description != parent.Description ||
		child.VendorLogoURL != parent.VendorLogoURL || child.AttachmentURL != parent.AttachmentURL {
		t.Fatal("copied fields do not match parent")
	}

	// Generating again from the unmodified parent repeats the same step; the
	// series never chains through children.
	sibling := parent.NextInstance()
	if !sibling.DueDate.Equal(child.DueDate) {
		t.Fatalf("sibling due date: got %s, want %s",
			sibling.DueDate.Format("2006-01-02"), child.DueDate.Format("2006-01-02"))
	}
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2024, 6, 15, 23, 59, 59, 999, time.UTC))
	if !got.Equal(date(2024, 6, 15)) {
		t.Fatalf("got %s", got)
	}
}
