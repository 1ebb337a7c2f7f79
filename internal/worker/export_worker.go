// Package worker ships archived reports from the SQLite archive to the
// configured spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"famboard/internal/amqp"
	"famboard/internal/sheets"
	"famboard/internal/storage"
)

// ExportWorker consumes report sync messages and appends the archived rows
// to the report sheet.
type ExportWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.ReportWriter
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, writer sheets.ReportWriter, batchSize int) *ExportWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &ExportWorker{
		storage:   storage,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleSyncMessage exports one report. Returning an error requeues the
// message, so the export-error mark is informational only.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ReportSyncMessage) error {
	slog.InfoContext(ctx, "Processing report sync message",
		"report_id", msg.ReportID,
		"year", msg.Year,
		"month", msg.Month)

	return w.exportReport(ctx, msg.ReportID)
}

// ProcessPendingReports exports reports whose messages were lost.
func (w *ExportWorker) ProcessPendingReports(ctx context.Context) error {
	pending, err := w.storage.ListPendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending exports: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending report exports", "count", len(pending))

	for _, p := range pending {
		if err := w.exportReport(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending report",
				"report_id", p.ID, "error", err)
			continue
		}
	}
	return nil
}

// StartupExportCheck drains the pending backlog once at worker startup,
// recovering from missed messages or worker downtime.
func (w *ExportWorker) StartupExportCheck(ctx context.Context) error {
	pending, err := w.storage.ListPendingExports(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list pending exports for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending report exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending report exports on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, p := range pending {
		if err := w.exportReport(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export report during startup",
				"report_id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) exportReport(ctx context.Context, id int64) error {
	report, err := w.storage.GetReport(ctx, id)
	if err != nil {
		return fmt.Errorf("load report from archive: %w", err)
	}

	rows := reportRows(report)
	if err := w.writer.AppendReportRows(ctx, rows); err != nil {
		if markErr := w.storage.MarkExportError(ctx, id, err); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "report_id", id, "error", markErr)
		}
		return fmt.Errorf("append report rows: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark report as exported", "report_id", id, "error", err)
		// The export itself worked, do not requeue.
	}

	slog.InfoContext(ctx, "Successfully exported report",
		"report_id", id,
		"year", report.Year,
		"month", report.Month,
		"rows", len(rows))

	return nil
}

// reportRows flattens a report into spreadsheet lines: totals first, then
// ranked categories, then member attribution.
func reportRows(report storage.Report) []sheets.ReportRow {
	rows := []sheets.ReportRow{
		{Year: report.Year, Month: report.Month, Section: "total", Label: "expense", Amount: report.TotalExpense},
		{Year: report.Year, Month: report.Month, Section: "total", Label: "income", Amount: report.TotalIncome},
	}
	for _, c := range report.Categories {
		rows = append(rows, sheets.ReportRow{
			Year:    report.Year,
			Month:   report.Month,
			Section: "category/" + c.Section,
			Label:   strconv.Itoa(c.Rank) + ". " + c.Name,
			Amount:  c.Amount,
		})
	}
	for _, m := range report.Members {
		rows = append(rows, sheets.ReportRow{
			Year:    report.Year,
			Month:   report.Month,
			Section: "member/" + m.Section,
			Label:   m.Name,
			Amount:  m.Amount,
		})
	}
	for _, b := range report.Budgets {
		rows = append(rows, sheets.ReportRow{
			Year:    report.Year,
			Month:   report.Month,
			Section: "budget",
			Label:   b.Name,
			Amount:  b.Spent,
		})
	}
	return rows
}
