package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestUser(t *testing.T, repo *SQLiteRepository, username string) *core.User {
	t.Helper()
	u := &core.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test User",
		PasswordHash: "x",
		Currency:     "USD",
	}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func newTestBill(owner string, due time.Time, status core.BillStatus) *core.Bill {
	return &core.Bill{
		Owner:      owner,
		VendorName: "Vendor",
		Amount:     core.Money{Cents: 1000},
		DueDate:    due,
		Status:     status,
		Recurrence: core.Monthly,
		Category:   core.CategoryOther,
	}
}

func TestBillOwnerScoping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	alice := newTestUser(t, repo, "alice")
	bob := newTestUser(t, repo, "bob")

	bill := newTestBill(alice.ID, time.Now(), core.StatusPending)
	if err := repo.CreateBill(ctx, bill); err != nil {
		t.Fatalf("create bill: %v", err)
	}

	// Bob cannot see, update, or delete Alice's bill; all paths report
	// not-found rather than anything that leaks existence.
	if _, err := repo.GetBill(ctx, bob.ID, bill.ID); err != ErrNotFound {
		t.Fatalf("get as bob: got %v, want ErrNotFound", err)
	}
	foreign := *bill
	foreign.Owner = bob.ID
	if err := repo.UpdateBill(ctx, &foreign); err != ErrNotFound {
		t.Fatalf("update as bob: got %v, want ErrNotFound", err)
	}
	if err := repo.DeleteBill(ctx, bob.ID, bill.ID); err != ErrNotFound {
		t.Fatalf("delete as bob: got %v, want ErrNotFound", err)
	}
	bills, err := repo.ListBills(ctx, bob.ID, BillFilter{})
	if err != nil {
		t.Fatalf("list as bob: %v", err)
	}
	if len(bills) != 0 {
		t.Fatalf("bob sees %d of alice's bills", len(bills))
	}

	got, err := repo.GetBill(ctx, alice.ID, bill.ID)
	if err != nil {
		t.Fatalf("get as alice: %v", err)
	}
	if got.VendorName != "Vendor" {
		t.Fatalf("unexpected vendor %q", got.VendorName)
	}
}

func TestListBillsFiltersAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "carol")

	mk := func(due time.Time, status core.BillStatus, cat core.BillCategory) {
		b := newTestBill(u.ID, due, status)
		b.Category = cat
		if err := repo.CreateBill(ctx, b); err != nil {
			t.Fatalf("create bill: %v", err)
		}
	}
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	mk(d3, core.StatusPending, core.CategoryRent)
	mk(d1, core.StatusPaid, core.CategoryUtilities)
	mk(d2, core.StatusPending, core.CategoryUtilities)

	all, err := repo.ListBills(ctx, u.ID, BillFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d bills, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].DueDate.Before(all[i-1].DueDate) {
			t.Fatal("bills not ordered by ascending due date")
		}
	}

	pending, err := repo.ListBills(ctx, u.ID, BillFilter{Status: core.StatusPending})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2", len(pending))
	}

	utils, err := repo.ListBills(ctx, u.ID, BillFilter{Category: core.CategoryUtilities})
	if err != nil {
		t.Fatalf("list utilities: %v", err)
	}
	if len(utils) != 2 {
		t.Fatalf("got %d utilities, want 2", len(utils))
	}

	ranged, err := repo.ListBills(ctx, u.ID, BillFilter{DueFrom: &d1, DueTo: &d2})
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("got %d in range, want 2 (inclusive bounds)", len(ranged))
	}
}

func TestListOverdueBillsPersistedStatusOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "dave")

	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -5)

	pending := newTestBill(u.ID, past, core.StatusPending)
	paid := newTestBill(u.ID, past, core.StatusPaid)
	future := newTestBill(u.ID, today.AddDate(0, 0, 5), core.StatusPending)
	for _, b := range []*core.Bill{pending, paid, future} {
		if err := repo.CreateBill(ctx, b); err != nil {
			t.Fatalf("create bill: %v", err)
		}
	}

	overdue, err := repo.ListOverdueBills(ctx, u.ID, today)
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != pending.ID {
		t.Fatalf("overdue listing should contain only the pending past-due bill, got %d", len(overdue))
	}
}

func TestListUpcomingBills(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "erin")

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 1, 0)

	inWindow := newTestBill(u.ID, now.AddDate(0, 0, 10), core.StatusPending)
	atEnd := newTestBill(u.ID, to, core.StatusOverdue)
	beyond := newTestBill(u.ID, to.AddDate(0, 0, 1), core.StatusPending)
	paid := newTestBill(u.ID, now.AddDate(0, 0, 3), core.StatusPaid)
	for _, b := range []*core.Bill{inWindow, atEnd, beyond, paid} {
		if err := repo.CreateBill(ctx, b); err != nil {
			t.Fatalf("create bill: %v", err)
		}
	}

	upcoming, err := repo.ListUpcomingBills(ctx, u.ID, now, to)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("got %d upcoming, want 2 (window inclusive, Pending/Overdue only)", len(upcoming))
	}
}

func TestTransactionCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "frank")

	tx := &core.Transaction{
		Owner:    u.ID,
		Type:     core.TypeExpense,
		Amount:   core.Money{Cents: 2500},
		Category: "Food",
		Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetTransaction(ctx, u.ID, tx.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Cents != 2500 || got.Type != core.TypeExpense {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Description = "lunch"
	if err := repo.UpdateTransaction(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := repo.DeleteTransaction(ctx, u.ID, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, u.ID, tx.ID); err != ErrNotFound {
		t.Fatalf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestExpensesByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "gina")

	mk := func(typ core.TransactionType, d time.Time) {
		tx := &core.Transaction{Owner: u.ID, Type: typ, Amount: core.Money{Cents: 100}, Category: "Other", Date: d}
		if err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	mk(core.TypeExpense, from.AddDate(0, 0, 5))
	mk(core.TypeRevenue, from.AddDate(0, 0, 6))
	mk(core.TypeExpense, from.AddDate(0, -1, 0))

	got, err := repo.ListExpensesByDateRange(ctx, u.ID, from, to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d expenses, want 1", len(got))
	}
}

func TestCategoryUniquePerOwnerTypeName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "hank")

	c := &core.Category{Owner: u.ID, Name: "Food", Type: core.TypeExpense}
	if err := repo.CreateCategory(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &core.Category{Owner: u.ID, Name: "Food", Type: core.TypeExpense}
	if err := repo.CreateCategory(ctx, dup); err == nil {
		t.Fatal("duplicate (owner, type, name) should be rejected")
	}
	// Same name for the other type is allowed.
	rev := &core.Category{Owner: u.ID, Name: "Food", Type: core.TypeRevenue}
	if err := repo.CreateCategory(ctx, rev); err != nil {
		t.Fatalf("create revenue category: %v", err)
	}
}

func TestActivityLog(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "iris")

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.RecordActivity(ctx, "bill-1", u.ID, "created", at); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.RecordActivity(ctx, "bill-1", u.ID, "paid", at.Add(time.Hour)); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := repo.ListActivity(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != "paid" {
		t.Fatalf("expected newest first, got %q", entries[0].Action)
	}
}
