package views

import (
	"sort"

	"famboard/internal/core"
)

// Default ranking sizes used by the dashboard screens.
const (
	DefaultCategoryRankSize = 10
	DefaultTopTransactions  = 5
)

// RankedCategory is a category total annotated with its 1-based rank.
type RankedCategory struct {
	Rank int `json:"rank"`
	CategoryTotal
}

// RankCategories takes an already-sorted category breakdown and returns the
// first n entries with ranks 1..min(n, len). Fewer than n inputs return all
// of them, no padding.
func RankCategories(totals []CategoryTotal, n int) []RankedCategory {
	if n > len(totals) {
		n = len(totals)
	}
	ranked := make([]RankedCategory, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, RankedCategory{Rank: i + 1, CategoryTotal: totals[i]})
	}
	return ranked
}

// RankedTransaction is a single transaction annotated with its 1-based rank.
type RankedTransaction struct {
	Rank        int              `json:"rank"`
	Transaction core.Transaction `json:"transaction"`
}

// TopTransactions returns the n largest matching transactions by amount,
// descending, ties keeping original order. Filtering happens before the
// truncation, so a scope restriction can never starve the result below n
// while matching records remain.
func TopTransactions(txs []core.Transaction, f Filter, n int) []RankedTransaction {
	matched := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.matches(tx) {
			matched = append(matched, tx)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Amount > matched[j].Amount
	})

	if n > len(matched) {
		n = len(matched)
	}
	ranked := make([]RankedTransaction, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, RankedTransaction{Rank: i + 1, Transaction: matched[i]})
	}
	return ranked
}
