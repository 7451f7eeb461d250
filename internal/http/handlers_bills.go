package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var in services.CreateBillInput
	if !decodeBody(w, r, &in) {
		return
	}

	bill, err := s.bills.Create(r.Context(), UserID(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, toBillJSON(bill))
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.bills.Get(r.Context(), UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillJSON(bill))
}

// handleListBills supports optional status, category, dueFrom, and dueTo
// query filters.
func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.BillFilter{
		Status:   core.BillStatus(q.Get("status")),
		Category: core.BillCategory(q.Get("category")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}
	if filter.Category != "" && !filter.Category.Valid() {
		writeError(w, http.StatusBadRequest, "invalid category filter")
		return
	}
	var ok bool
	if filter.DueFrom, ok = parseDateParam(w, q.Get("dueFrom"), "dueFrom"); !ok {
		return
	}
	if filter.DueTo, ok = parseDateParam(w, q.Get("dueTo"), "dueTo"); !ok {
		return
	}

	bills, err := s.bills.List(r.Context(), UserID(r.Context()), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillListJSON(bills))
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bill, err := s.bills.Update(r.Context(), UserID(r.Context()), r.PathValue("id"), body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillJSON(bill))
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.bills.Delete(r.Context(), UserID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "bill deleted")
}

func (s *Server) handleMarkBillPaid(w http.ResponseWriter, r *http.Request) {
	bill, err := s.bills.MarkPaid(r.Context(), UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillJSON(bill))
}

func (s *Server) handleUpcomingBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.Upcoming(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillListJSON(bills))
}

func (s *Server) handleOverdueBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.Overdue(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toBillListJSON(bills))
}

func (s *Server) handleGenerateNextBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.bills.GenerateNext(r.Context(), UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, toBillJSON(bill))
}

func (s *Server) handleBillActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	entries, err := s.bills.Activity(r.Context(), UserID(r.Context()), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toActivityListJSON(entries))
}

// parseDateParam parses an optional query date; reports false after writing
// a 400 when the value is present but malformed.
func parseDateParam(w http.ResponseWriter, value, name string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	writeError(w, http.StatusBadRequest, "invalid "+name+" date")
	return nil, false
}
