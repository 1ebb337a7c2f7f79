// Package familyapi defines the read ports onto the remote family server.
// Implementations live in the rest and memory subpackages.
package familyapi

import (
	"context"

	"famboard/internal/core"
)

// TransactionLister fetches the transactions recorded for a month.
type TransactionLister interface {
	ListTransactions(ctx context.Context, year int, month int) ([]core.Transaction, error)
}

// BudgetReader exposes both live budgets and the server-side history used
// for months that have already closed.
type BudgetReader interface {
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	ListBudgetHistory(ctx context.Context, year int, month int) ([]core.Budget, error)
}

// TaskLister fetches the family's todo tasks.
type TaskLister interface {
	ListTasks(ctx context.Context) ([]core.TodoTask, error)
}

// MemberLister fetches the family roster.
type MemberLister interface {
	ListMembers(ctx context.Context) ([]core.Member, error)
}

// Source is the full read surface the dashboard needs.
type Source interface {
	TransactionLister
	BudgetReader
	TaskLister
	MemberLister
}
