package sheets

import "context"

// ReportRow is one spreadsheet line of an exported month report.
// Section distinguishes totals, category breakdowns, and member attribution.
type ReportRow struct {
	Year    int
	Month   int
	Section string
	Label   string
	Amount  int64
}

// ReportWriter is the outbound port for report export.
type ReportWriter interface {
	AppendReportRows(ctx context.Context, rows []ReportRow) error
}
