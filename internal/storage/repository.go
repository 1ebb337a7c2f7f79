// Package storage persists generated monthly reports in a local SQLite
// archive. The archive backs offline reads and the export queue; the family
// server stays the source of truth for live data.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrReportNotFound = errors.New("report not found")

// Report is an archived month summary.
type Report struct {
	ID           int64
	Year         int
	Month        int
	GeneratedAt  time.Time
	TotalIncome  int64
	TotalExpense int64
	Categories   []CategoryRow
	Members      []MemberRow
	Budgets      []BudgetRow
}

// CategoryRow is one category line of a report, split by section
// ("expense" or "income") and ordered by rank.
type CategoryRow struct {
	Section string
	Key     string
	Name    string
	Amount  int64
	Rank    int
}

// MemberRow is one member attribution line of a report.
type MemberRow struct {
	Section string
	UserID  string
	Name    string
	Amount  int64
}

// BudgetRow is a budget as it stood when the month was archived. It feeds
// reads for months the live server no longer reports.
type BudgetRow struct {
	BudgetID string
	Key      string
	Name     string
	Amount   int64
	Spent    int64
}

// PendingReport is the minimal shape queued for export.
type PendingReport struct {
	ID    int64
	Year  int
	Month int
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveReport stores a report, replacing any earlier archive of the same
// month. Returns the stored report id.
func (r *SQLiteRepository) SaveReport(ctx context.Context, report Report) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reports WHERE year = ? AND month = ?`,
		report.Year, report.Month); err != nil {
		return 0, fmt.Errorf("clear previous report: %w", err)
	}

	generatedAt := report.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reports (year, month, generated_at, total_income, total_expense)
		 VALUES (?, ?, ?, ?, ?)`,
		report.Year, report.Month, generatedAt.Format(time.RFC3339),
		report.TotalIncome, report.TotalExpense)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("report id: %w", err)
	}

	for _, c := range report.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_categories (report_id, section, category_key, name, amount, rank)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, c.Section, c.Key, c.Name, c.Amount, c.Rank); err != nil {
			return 0, fmt.Errorf("insert report category: %w", err)
		}
	}
	for _, m := range report.Members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_members (report_id, section, user_id, name, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			id, m.Section, m.UserID, m.Name, m.Amount); err != nil {
			return 0, fmt.Errorf("insert report member: %w", err)
		}
	}

	for _, b := range report.Budgets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_budgets (report_id, budget_id, category_key, name, amount, spent)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, b.BudgetID, b.Key, b.Name, b.Amount, b.Spent); err != nil {
			return 0, fmt.Errorf("insert report budget: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit report: %w", err)
	}

	slog.InfoContext(ctx, "Report archived",
		"id", id,
		"year", report.Year,
		"month", report.Month,
		"categories", len(report.Categories),
		"members", len(report.Members))

	return id, nil
}

// GetReport loads a report with its rows by id.
func (r *SQLiteRepository) GetReport(ctx context.Context, id int64) (Report, error) {
	return r.loadReport(ctx, `WHERE id = ?`, id)
}

// GetReportByMonth loads the archived report for a month.
func (r *SQLiteRepository) GetReportByMonth(ctx context.Context, year, month int) (Report, error) {
	return r.loadReport(ctx, `WHERE year = ? AND month = ?`, year, month)
}

func (r *SQLiteRepository) loadReport(ctx context.Context, where string, args ...any) (Report, error) {
	var report Report
	var generatedAt string
	row := r.db.QueryRowContext(ctx,
		`SELECT id, year, month, generated_at, total_income, total_expense FROM reports `+where, args...)
	err := row.Scan(&report.ID, &report.Year, &report.Month, &generatedAt,
		&report.TotalIncome, &report.TotalExpense)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	if err != nil {
		return Report{}, fmt.Errorf("scan report: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, generatedAt); perr == nil {
		report.GeneratedAt = t
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT section, category_key, name, amount, rank
		 FROM report_categories WHERE report_id = ? ORDER BY section, rank`, report.ID)
	if err != nil {
		return Report{}, fmt.Errorf("query report categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.Section, &c.Key, &c.Name, &c.Amount, &c.Rank); err != nil {
			return Report{}, fmt.Errorf("scan report category: %w", err)
		}
		report.Categories = append(report.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return Report{}, fmt.Errorf("iterate report categories: %w", err)
	}

	mrows, err := r.db.QueryContext(ctx,
		`SELECT section, user_id, name, amount
		 FROM report_members WHERE report_id = ? ORDER BY section, amount DESC`, report.ID)
	if err != nil {
		return Report{}, fmt.Errorf("query report members: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var m MemberRow
		if err := mrows.Scan(&m.Section, &m.UserID, &m.Name, &m.Amount); err != nil {
			return Report{}, fmt.Errorf("scan report member: %w", err)
		}
		report.Members = append(report.Members, m)
	}
	if err := mrows.Err(); err != nil {
		return Report{}, fmt.Errorf("iterate report members: %w", err)
	}

	brows, err := r.db.QueryContext(ctx,
		`SELECT budget_id, category_key, name, amount, spent
		 FROM report_budgets WHERE report_id = ? ORDER BY id`, report.ID)
	if err != nil {
		return Report{}, fmt.Errorf("query report budgets: %w", err)
	}
	defer brows.Close()
	for brows.Next() {
		var b BudgetRow
		if err := brows.Scan(&b.BudgetID, &b.Key, &b.Name, &b.Amount, &b.Spent); err != nil {
			return Report{}, fmt.Errorf("scan report budget: %w", err)
		}
		report.Budgets = append(report.Budgets, b)
	}
	if err := brows.Err(); err != nil {
		return Report{}, fmt.Errorf("iterate report budgets: %w", err)
	}

	return report, nil
}

// ListPendingExports returns reports that have not been exported yet,
// oldest first.
func (r *SQLiteRepository) ListPendingExports(ctx context.Context, limit int) ([]PendingReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, year, month FROM reports
		 WHERE exported = 0 ORDER BY year, month LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingReport
	for rows.Next() {
		var p PendingReport
		if err := rows.Scan(&p.ID, &p.Year, &p.Month); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending exports: %w", err)
	}
	return out, nil
}

// MarkExported records a successful export.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reports SET exported = 1, exported_at = ?, export_error = NULL WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark report exported: %w", err)
	}
	slog.InfoContext(ctx, "Report marked as exported", "id", id)
	return nil
}

// MarkExportError records a failed export attempt; the report stays pending.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64, exportErr error) error {
	msg := ""
	if exportErr != nil {
		msg = exportErr.Error()
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE reports SET export_error = ? WHERE id = ?`, msg, id)
	if err != nil {
		return fmt.Errorf("mark report export error: %w", err)
	}
	slog.WarnContext(ctx, "Report marked with export error", "id", id, "error", msg)
	return nil
}
