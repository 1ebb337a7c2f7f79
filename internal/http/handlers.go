package http

import (
	"log/slog"
	"net/http"
	"strings"

	"famboard/internal/core"
	"famboard/internal/log"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	year, month := parseYearMonth(r)
	key := monthKey(year, month)

	if cached, ok := s.overviewCache.Get(key); ok {
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	overview, err := s.dashboard.Overview(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview failed", "error", err, "year", year, "month", month)
		writeError(w, r, http.StatusBadGateway, "failed to load dashboard data")
		return
	}

	s.overviewCache.Set(key, overview)
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	year, month := parseYearMonth(r)

	txType := core.Expense
	if strings.EqualFold(r.URL.Query().Get("type"), string(core.Income)) {
		txType = core.Income
	}

	totals, err := s.dashboard.CategoryBreakdown(r.Context(), txType, year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category breakdown failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to load category breakdown")
		return
	}
	writeJSON(w, r, http.StatusOK, totals)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	year, month := parseYearMonth(r)

	buckets, err := s.dashboard.WeeklyBreakdown(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekly breakdown failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to load weekly breakdown")
		return
	}
	writeJSON(w, r, http.StatusOK, buckets)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	year, month := parseYearMonth(r)

	categories, transactions, err := s.dashboard.TopSpending(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Top spending failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to load top spending")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"categories":   categories,
		"transactions": transactions,
	})
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	year, month := parseYearMonth(r)

	report, err := s.dashboard.MemberBalances(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Member balances failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to load member balances")
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	year, month := parseYearMonth(r)
	key := monthKey(year, month)

	if cached, ok := s.budgetCache.Get(key); ok {
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	report, source, err := s.dashboard.BudgetStatus(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Budget status failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to load budgets")
		return
	}

	resp := budgetResponse{Report: report, Source: source}
	s.budgetCache.Set(key, resp)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if cached, ok := s.taskCache.Get("board"); ok {
		writeJSON(w, r, http.StatusOK, cached)
		return
	}

	board, err := s.dashboard.TaskBoard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Task board failed", "error", err)
		writeError(w, r, http.StatusBadGateway, "failed to load tasks")
		return
	}

	s.taskCache.Set("board", board)
	writeJSON(w, r, http.StatusOK, board)
}

type archiveResponse struct {
	ReportID int64 `json:"reportId"`
	Year     int   `json:"year"`
	Month    int   `json:"month"`
}

func (s *Server) handleArchiveReport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if s.archiver == nil {
		writeError(w, r, http.StatusServiceUnavailable, "report archive not configured")
		return
	}
	year, month := parseYearMonth(r)

	id, err := s.archiver.ArchiveMonth(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Archive month failed",
			log.FieldError, err,
			log.FieldYear, year,
			log.FieldMonth, month,
			log.FieldOperation, log.OpArchive)
		writeError(w, r, http.StatusBadGateway, "failed to archive report")
		return
	}

	s.reqLog.LogReportArchived(r.Context(), id, year, month)
	s.invalidateCaches()

	writeJSON(w, r, http.StatusCreated, archiveResponse{ReportID: id, Year: year, Month: month})
}
