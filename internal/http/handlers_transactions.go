package http

import (
	"io"
	"net/http"

	"fintrack/internal/services"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in services.TransactionInput
	if !decodeBody(w, r, &in) {
		return
	}

	tx, err := s.transactions.Create(r.Context(), UserID(r.Context()), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, toTransactionJSON(tx))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.transactions.Get(r.Context(), UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toTransactionJSON(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toTransactionListJSON(txs))
}

func (s *Server) handleExpensesByRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txs, err := s.transactions.ExpensesByDateRange(r.Context(), UserID(r.Context()),
		q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toTransactionListJSON(txs))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in services.TransactionInput
	if !decodeBody(w, r, &in) {
		return
	}

	tx, err := s.transactions.Update(r.Context(), UserID(r.Context()), r.PathValue("id"), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, toTransactionJSON(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), UserID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "transaction deleted")
}

// maxReceiptSize caps uploads at 8 MiB; Vision rejects larger payloads
// anyway.
const maxReceiptSize = 8 << 20

// handleScanReceipt accepts a multipart upload under the "receipt" field
// and returns the extracted amount and description. Nothing is persisted;
// the client reviews the data and creates the transaction explicitly.
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	if s.receipts == nil {
		writeError(w, http.StatusServiceUnavailable, "receipt scanning is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, _, err := r.FormFile("receipt")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing receipt file")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read receipt file")
		return
	}

	receipt, err := s.receipts.ReadReceipt(r.Context(), image)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeData(w, http.StatusOK, receiptJSON{
		Amount:      receipt.Amount,
		Description: receipt.Description,
	})
}
