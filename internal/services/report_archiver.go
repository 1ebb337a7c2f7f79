package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"famboard/internal/amqp"
	"famboard/internal/core"
	"famboard/internal/familyapi"
	"famboard/internal/session"
	"famboard/internal/storage"
	"famboard/internal/views"
)

const (
	SectionExpense = "expense"
	SectionIncome  = "income"
)

// ReportArchiver snapshots a month's computed summary into the local SQLite
// archive and queues it for spreadsheet export. The archive write is the
// operation; the publish is best effort and never fails it.
type ReportArchiver struct {
	source familyapi.Source
	repo   *storage.SQLiteRepository
	queue  *amqp.Client
	sess   session.Session
	now    func() time.Time
}

func NewReportArchiver(source familyapi.Source, repo *storage.SQLiteRepository, queue *amqp.Client, sess session.Session) *ReportArchiver {
	return &ReportArchiver{
		source: source,
		repo:   repo,
		queue:  queue,
		sess:   sess,
		now:    time.Now,
	}
}

// ArchiveMonth fetches the month, runs it through the engine and stores the
// result. Returns the archived report id.
func (a *ReportArchiver) ArchiveMonth(ctx context.Context, year, month int) (int64, error) {
	txs, err := a.source.ListTransactions(ctx, year, month)
	if err != nil {
		return 0, fmt.Errorf("fetch transactions: %w", err)
	}
	budgets, err := a.source.ListBudgets(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch budgets: %w", err)
	}
	members, err := a.source.ListMembers(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch members: %w", err)
	}

	report := a.buildReport(year, month, txs, budgets, members)

	id, err := a.repo.SaveReport(ctx, report)
	if err != nil {
		return 0, fmt.Errorf("archive report: %w", err)
	}

	if err := a.publishSync(ctx, id, year, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report sync message",
			"report_id", id, "error", err)
		// Archive succeeded; the worker's startup pass picks it up later.
	}

	return id, nil
}

func (a *ReportArchiver) buildReport(year, month int, txs []core.Transaction, budgets []core.Budget, members []core.Member) storage.Report {
	expenseFilter := views.MonthFilter(core.Expense, core.ScopeFamily, year, month)
	incomeFilter := views.MonthFilter(core.Income, core.ScopeFamily, year, month)

	report := storage.Report{
		Year:         year,
		Month:        month,
		GeneratedAt:  a.now().UTC(),
		TotalExpense: views.SumAmounts(txs, expenseFilter),
		TotalIncome:  views.SumAmounts(txs, incomeFilter),
	}

	for _, rc := range views.RankCategories(views.AggregateByCategory(txs, expenseFilter), views.DefaultCategoryRankSize) {
		report.Categories = append(report.Categories, storage.CategoryRow{
			Section: SectionExpense,
			Key:     rc.Key,
			Name:    rc.Name,
			Amount:  rc.Amount,
			Rank:    rc.Rank,
		})
	}
	for _, rc := range views.RankCategories(views.AggregateByCategory(txs, incomeFilter), views.DefaultCategoryRankSize) {
		report.Categories = append(report.Categories, storage.CategoryRow{
			Section: SectionIncome,
			Key:     rc.Key,
			Name:    rc.Name,
			Amount:  rc.Amount,
			Rank:    rc.Rank,
		})
	}

	balance := views.MemberBalanceReport(members, txs, expenseFilter.Start, expenseFilter.End, a.sess.Viewer)
	for _, mt := range balance.Expense {
		report.Members = append(report.Members, storage.MemberRow{
			Section: SectionExpense,
			UserID:  mt.UserID,
			Name:    mt.Name,
			Amount:  mt.Total,
		})
	}
	for _, mt := range balance.Income {
		report.Members = append(report.Members, storage.MemberRow{
			Section: SectionIncome,
			UserID:  mt.UserID,
			Name:    mt.Name,
			Amount:  mt.Total,
		})
	}

	for _, b := range budgets {
		report.Budgets = append(report.Budgets, storage.BudgetRow{
			BudgetID: b.ID,
			Key:      b.Category.ID,
			Name:     core.DisplayName(b.Category),
			Amount:   b.Amount,
			Spent:    b.Spent,
		})
	}

	return report
}

func (a *ReportArchiver) publishSync(ctx context.Context, reportID int64, year, month int) error {
	if a.queue == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping report sync message")
		return nil
	}
	return a.queue.PublishReportSync(ctx, reportID, year, month)
}

// ArchivedBudgets rebuilds core budgets from an archived month, satisfying
// the dashboard's historical source. A missing archive is not an error; it
// means the caller should fall back to the remote history.
func (a *ReportArchiver) ArchivedBudgets(ctx context.Context, year, month int) ([]core.Budget, error) {
	report, err := a.repo.GetReportByMonth(ctx, year, month)
	if errors.Is(err, storage.ErrReportNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load archived report: %w", err)
	}

	budgets := make([]core.Budget, 0, len(report.Budgets))
	for _, b := range report.Budgets {
		budgets = append(budgets, core.Budget{
			ID:       b.BudgetID,
			Category: core.Ref{ID: b.Key, Name: b.Name},
			Amount:   b.Amount,
			Spent:    b.Spent,
		})
	}
	return budgets, nil
}

// Close releases the archive and queue connections.
func (a *ReportArchiver) Close() error {
	var errs []error
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close report archiver: %v", errs)
	}
	return nil
}
