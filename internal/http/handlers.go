package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Saubhagya-45/smart-finance-tracker/internal/core"
)

type createTransactionRequest struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}

type transactionView struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Note        string `json:"note,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func viewOf(txn core.Transaction) transactionView {
	return transactionView{
		ID:          txn.ID,
		Kind:        string(txn.Kind),
		Category:    txn.Category,
		Amount:      txn.Amount.Decimal(),
		AmountCents: txn.Amount.Cents,
		Note:        txn.Note,
		CreatedAt:   txn.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := s.resolveOwner(w, r)

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	txn := core.Transaction{
		Owner:    owner,
		Kind:     core.Kind(strings.TrimSpace(req.Kind)),
		Category: strings.TrimSpace(req.Category),
		Amount:   core.Money{Cents: cents},
		Note:     sanitizeInput(req.Note),
	}

	stored, err := s.service.Record(r.Context(), txn)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Transaction create error", "error", err, "kind", req.Kind, "category", req.Category)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": viewOf(stored),
		"durable":     !s.degraded(),
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := s.resolveOwner(w, r)

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txns, err := s.service.Transactions(r.Context(), owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	txns = core.FilterTransactions(txns, filter)

	views := make([]transactionView, 0, len(txns))
	for _, txn := range txns {
		views = append(views, viewOf(txn))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": views,
		"count":        len(views),
		"durable":      !s.degraded(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	owner := s.resolveOwner(w, r)
	txns, err := s.service.Transactions(r.Context(), owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction export error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export transactions")
		return
	}
	txns = core.FilterTransactions(txns, filter)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "kind", "category", "amount", "note", "created_at"})
	for _, txn := range txns {
		_ = cw.Write([]string{
			txn.ID,
			string(txn.Kind),
			txn.Category,
			txn.Amount.Decimal(),
			txn.Note,
			txn.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "CSV write error", "error", err)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	owner := s.resolveOwner(w, r)

	var err error
	if r.URL.Query().Get("all") == "true" {
		err = s.service.ResetAll(r.Context())
	} else {
		err = s.service.Reset(r.Context(), owner)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger reset error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset ledger")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "cleared",
		"durable": !s.degraded(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txns, ok := s.ownerTransactions(w, r)
	if !ok {
		return
	}

	totals := core.TotalsOf(txns)
	writeJSON(w, http.StatusOK, map[string]any{
		"credit":        totals.Credit.Decimal(),
		"expense":       totals.Expense.Decimal(),
		"balance":       totals.Balance.Decimal(),
		"credit_cents":  totals.Credit.Cents,
		"expense_cents": totals.Expense.Cents,
		"balance_cents": totals.Balance.Cents,
		"durable":       !s.degraded(),
	})
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	kind := core.Kind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "kind must be 'Credit' or 'Expense'")
		return
	}

	txns, ok := s.ownerTransactions(w, r)
	if !ok {
		return
	}

	sums := core.SumByCategory(txns, kind)
	categories := make(map[string]string, len(sums))
	for category, sum := range sums {
		categories[category] = sum.Decimal()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"kind":       string(kind),
		"categories": categories,
		"durable":    !s.degraded(),
	})
}

type monthlyRow struct {
	Month   string `json:"month"`
	Credit  string `json:"credit"`
	Expense string `json:"expense"`
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	txns, ok := s.ownerTransactions(w, r)
	if !ok {
		return
	}

	sums := core.SumByMonth(txns)
	byMonth := make(map[string]*monthlyRow)
	for key, sum := range sums {
		row, exists := byMonth[key.Month]
		if !exists {
			row = &monthlyRow{Month: key.Month, Credit: "0.00", Expense: "0.00"}
			byMonth[key.Month] = row
		}
		switch key.Kind {
		case core.Credit:
			row.Credit = sum.Decimal()
		case core.Expense:
			row.Expense = sum.Decimal()
		}
	}

	rows := make([]monthlyRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	// YYYY-MM keys sort chronologically
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })

	writeJSON(w, http.StatusOK, map[string]any{
		"months":  rows,
		"durable": !s.degraded(),
	})
}

func (s *Server) handleCumulativeBalance(w http.ResponseWriter, r *http.Request) {
	txns, ok := s.ownerTransactions(w, r)
	if !ok {
		return
	}

	points := core.CumulativeBalance(txns)
	type pointView struct {
		At           string `json:"at"`
		Balance      string `json:"balance"`
		BalanceCents int64  `json:"balance_cents"`
	}
	views := make([]pointView, 0, len(points))
	for _, p := range points {
		views = append(views, pointView{
			At:           p.At.UTC().Format(time.RFC3339),
			Balance:      p.Balance.Decimal(),
			BalanceCents: p.Balance.Cents,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"points":  views,
		"durable": !s.degraded(),
	})
}

// ownerTransactions loads the requester's records, writing the error response
// itself when the load fails or the method is wrong.
func (s *Server) ownerTransactions(w http.ResponseWriter, r *http.Request) ([]core.Transaction, bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	owner := s.resolveOwner(w, r)
	txns, err := s.service.Transactions(r.Context(), owner)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction load error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "failed to load transactions")
		return nil, false
	}
	return txns, true
}

// filterFromQuery builds a record filter from kind, category, and month query
// parameters. Bad values fail fast instead of silently matching nothing.
func filterFromQuery(r *http.Request) (core.Filter, error) {
	var f core.Filter

	if v := strings.TrimSpace(r.URL.Query().Get("kind")); v != "" {
		kind := core.Kind(v)
		if !kind.Valid() {
			return core.Filter{}, fmt.Errorf("invalid kind '%s': must be 'Credit' or 'Expense'", v)
		}
		f.Kind = kind
	}

	f.Category = strings.TrimSpace(r.URL.Query().Get("category"))

	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if _, err := time.Parse("2006-01", v); err != nil {
			return core.Filter{}, fmt.Errorf("invalid month '%s': must be YYYY-MM", v)
		}
		f.Month = v
	}

	return f, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidKind) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, core.ErrNoteTooLong) ||
		errors.Is(err, core.ErrOwnerRequired)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
