package http

import (
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// Wire representations. Domain types carry no JSON tags; the API shape is
// decided here.

type billJSON struct {
	ID            string            `json:"id"`
	VendorName    string            `json:"vendorName"`
	VendorLogoURL string            `json:"vendorLogoUrl,omitempty"`
	Description   string            `json:"description,omitempty"`
	Amount        core.Money        `json:"amount"`
	DueDate       string            `json:"dueDate"`
	Status        core.BillStatus   `json:"status"`
	IsRecurring   bool              `json:"isRecurring"`
	Recurrence    core.Recurrence   `json:"recurrence"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	PaidDate      *string           `json:"paidDate,omitempty"`
	Category      core.BillCategory `json:"category"`
	AttachmentURL string            `json:"attachmentUrl,omitempty"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

func toBillJSON(b *core.Bill) billJSON {
	out := billJSON{
		ID:            b.ID,
		VendorName:    b.VendorName,
		VendorLogoURL: b.VendorLogoURL,
		Description:   b.Description,
		Amount:        b.Amount,
		DueDate:       b.DueDate.UTC().Format(time.RFC3339),
		Status:        b.Status,
		IsRecurring:   b.IsRecurring,
		Recurrence:    b.Recurrence,
		PaymentMethod: b.PaymentMethod,
		Category:      b.Category,
		AttachmentURL: b.AttachmentURL,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if b.PaidDate != nil {
		paid := b.PaidDate.UTC().Format(time.RFC3339)
		out.PaidDate = &paid
	}
	return out
}

func toBillListJSON(bills []core.Bill) []billJSON {
	out := make([]billJSON, 0, len(bills))
	for i := range bills {
		out = append(out, toBillJSON(&bills[i]))
	}
	return out
}

type transactionJSON struct {
	ID          string               `json:"id"`
	Type        core.TransactionType `json:"type"`
	Amount      core.Money           `json:"amount"`
	Category    string               `json:"category"`
	Description string               `json:"description,omitempty"`
	Date        string               `json:"date"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

func toTransactionJSON(t *core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.UTC().Format(time.RFC3339),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTransactionListJSON(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionJSON(&txs[i]))
	}
	return out
}

type categoryJSON struct {
	ID   string               `json:"id"`
	Name string               `json:"name"`
	Type core.TransactionType `json:"type"`
}

func toCategoryJSON(c *core.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Type: c.Type}
}

func toCategoryListJSON(cats []core.Category) []categoryJSON {
	out := make([]categoryJSON, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryJSON(&cats[i]))
	}
	return out
}

type userJSON struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FullName      string     `json:"fullName"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	Currency      string     `json:"currency"`
	MonthlyBudget core.Money `json:"monthlyBudget"`
	LastLogin     *string    `json:"lastLogin,omitempty"`
	CreatedAt     string     `json:"createdAt"`
}

func toUserJSON(u *core.User) userJSON {
	out := userJSON{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		Currency:      u.Currency,
		MonthlyBudget: u.MonthlyBudget,
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastLogin != nil {
		last := u.LastLogin.UTC().Format(time.RFC3339)
		out.LastLogin = &last
	}
	return out
}

type activityJSON struct {
	BillID     string `json:"billId"`
	Action     string `json:"action"`
	OccurredAt string `json:"occurredAt"`
}

func toActivityListJSON(entries []storage.ActivityEntry) []activityJSON {
	out := make([]activityJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, activityJSON{
			BillID:     e.BillID,
			Action:     e.Action,
			OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

type receiptJSON struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
}
