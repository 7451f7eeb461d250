package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// BillFilter narrows ListBills. Zero values mean "no constraint", not
// "match empty".
type BillFilter struct {
	Status   core.BillStatus
	Category core.BillCategory
	DueFrom  *time.Time
	DueTo    *time.Time
}

const billColumns = `id, owner, vendor_name, vendor_logo_url, description,
	amount_cents, due_date, status, is_recurring, recurrence, payment_method,
	paid_date, category, attachment_url, created_at, updated_at`

func (r *SQLiteRepository) CreateBill(ctx context.Context, b *core.Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bills (id, owner, vendor_name, vendor_logo_url, description,
			amount_cents, due_date, status, is_recurring, recurrence,
			payment_method, paid_date, category, attachment_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Owner, b.VendorName, b.VendorLogoURL, b.Description,
		b.Amount.Cents, b.DueDate.Unix(), string(b.Status), boolToInt(b.IsRecurring),
		string(b.Recurrence), b.PaymentMethod, nullableUnix(b.PaidDate),
		string(b.Category), b.AttachmentURL, now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved",
		"id", b.ID,
		"vendor", b.VendorName,
		"amount_cents", b.Amount.Cents,
		"due_date", b.DueDate.Format("2006-01-02"))

	return nil
}

// GetBill fetches a bill scoped to its owner. A bill owned by someone else
// yields ErrNotFound, same as a missing one.
func (r *SQLiteRepository) GetBill(ctx context.Context, owner, id string) (*core.Bill, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = ? AND owner = ?`, id, owner)
	b, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// UpdateBill writes every mutable column of an owner-scoped bill in a single
// statement. Zero rows affected means the bill is missing or foreign.
func (r *SQLiteRepository) UpdateBill(ctx context.Context, b *core.Bill) error {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE bills SET vendor_name = ?, vendor_logo_url = ?, description = ?,
			amount_cents = ?, due_date = ?, status = ?, is_recurring = ?,
			recurrence = ?, payment_method = ?, paid_date = ?, category = ?,
			attachment_url = ?, updated_at = ?
		WHERE id = ? AND owner = ?`,
		b.VendorName, b.VendorLogoURL, b.Description, b.Amount.Cents,
		b.DueDate.Unix(), string(b.Status), boolToInt(b.IsRecurring),
		string(b.Recurrence), b.PaymentMethod, nullableUnix(b.PaidDate),
		string(b.Category), b.AttachmentURL, now.Unix(), b.ID, b.Owner,
	)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bill rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	b.UpdatedAt = now
	return nil
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bills WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bill rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBills returns the owner's bills matching every supplied filter,
// ordered by ascending due date.
func (r *SQLiteRepository) ListBills(ctx context.Context, owner string, f BillFilter) ([]core.Bill, error) {
	var (
		conds = []string{"owner = ?"}
		args  = []any{owner}
	)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(f.Category))
	}
	if f.DueFrom != nil {
		conds = append(conds, "due_date >= ?")
		args = append(args, f.DueFrom.Unix())
	}
	if f.DueTo != nil {
		conds = append(conds, "due_date <= ?")
		args = append(args, f.DueTo.Unix())
	}

	query := `SELECT ` + billColumns + ` FROM bills WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY due_date ASC`
	return r.queryBills(ctx, query, args...)
}

// ListUpcomingBills returns the owner's bills due in [from, to] whose
// persisted status is Pending or Overdue, ordered by ascending due date.
func (r *SQLiteRepository) ListUpcomingBills(ctx context.Context, owner string, from, to time.Time) ([]core.Bill, error) {
	return r.queryBills(ctx, `
		SELECT `+billColumns+` FROM bills
		WHERE owner = ? AND due_date >= ? AND due_date <= ?
			AND status IN (?, ?)
		ORDER BY due_date ASC`,
		owner, from.Unix(), to.Unix(),
		string(core.StatusPending), string(core.StatusOverdue))
}

// ListOverdueBills returns the owner's bills due strictly before the cutoff
// whose persisted status is still Pending. This deliberately filters on the
// persisted value, not the derived one.
func (r *SQLiteRepository) ListOverdueBills(ctx context.Context, owner string, before time.Time) ([]core.Bill, error) {
	return r.queryBills(ctx, `
		SELECT `+billColumns+` FROM bills
		WHERE owner = ? AND due_date < ? AND status = ?
		ORDER BY due_date ASC`,
		owner, before.Unix(), string(core.StatusPending))
}

func (r *SQLiteRepository) queryBills(ctx context.Context, query string, args ...any) ([]core.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return bills, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*core.Bill, error) {
	var (
		b           core.Bill
		status      string
		recurrence  string
		category    string
		isRecurring int64
		dueDate     int64
		paidDate    sql.NullInt64
		createdAt   int64
		updatedAt   int64
	)
	err := row.Scan(&b.ID, &b.Owner, &b.VendorName, &b.VendorLogoURL,
		&b.Description, &b.Amount.Cents, &dueDate, &status, &isRecurring,
		&recurrence, &b.PaymentMethod, &paidDate, &category, &b.AttachmentURL,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = core.BillStatus(status)
	b.Recurrence = core.Recurrence(recurrence)
	b.Category = core.BillCategory(category)
	b.IsRecurring = isRecurring != 0
	b.DueDate = time.Unix(dueDate, 0).UTC()
	if paidDate.Valid {
		t := time.Unix(paidDate.Int64, 0).UTC()
		b.PaidDate = &t
	}
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	b.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &b, nil
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func nullableUnix(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}
