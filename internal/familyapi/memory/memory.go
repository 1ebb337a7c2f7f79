// Package memory is an in-process familyapi.Source used for local
// development and tests. It can be seeded by hand or from JSON files.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"famboard/internal/core"
)

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	budgets      []core.Budget
	history      map[[2]int][]core.Budget
	tasks        []core.TodoTask
	members      []core.Member
}

func New() *Store {
	return &Store{history: map[[2]int][]core.Budget{}}
}

// NewFromFiles loads fixture JSON from base. Missing or malformed files are
// skipped so a partial fixture directory still works.
func NewFromFiles(base string) *Store {
	s := New()
	readJSON(filepath.Join(base, "transactions.json"), &s.transactions)
	readJSON(filepath.Join(base, "budgets.json"), &s.budgets)
	readJSON(filepath.Join(base, "tasks.json"), &s.tasks)
	readJSON(filepath.Join(base, "members.json"), &s.members)
	return s
}

func (s *Store) SeedTransactions(txs ...core.Transaction) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txs...)
	return s
}

func (s *Store) SeedBudgets(budgets ...core.Budget) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, budgets...)
	return s
}

func (s *Store) SeedBudgetHistory(year, month int, budgets ...core.Budget) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int{year, month}
	s.history[key] = append(s.history[key], budgets...)
	return s
}

func (s *Store) SeedTasks(tasks ...core.TodoTask) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, tasks...)
	return s
}

func (s *Store) SeedMembers(members ...core.Member) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, members...)
	return s
}

func (s *Store) ListTransactions(_ context.Context, year, month int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, tx := range s.transactions {
		if tx.Date.IsZero() {
			continue
		}
		if tx.Date.Year() == year && int(tx.Date.Month()) == month {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...), nil
}

func (s *Store) ListBudgetHistory(_ context.Context, year, month int) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.history[[2]int{year, month}]...), nil
}

func (s *Store) ListTasks(_ context.Context) ([]core.TodoTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TodoTask(nil), s.tasks...), nil
}

func (s *Store) ListMembers(_ context.Context) ([]core.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Member(nil), s.members...), nil
}

func readJSON(path string, dst any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, dst)
}
