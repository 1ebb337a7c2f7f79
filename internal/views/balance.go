package views

import (
	"sort"

	"famboard/internal/core"
)

// MemberTotal is one member's summed personal-scope amount for a window.
type MemberTotal struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Total  int64  `json:"total"`
}

// BalanceReport holds the owner-facing per-member breakdowns, one list per
// transaction type.
type BalanceReport struct {
	Expense []MemberTotal `json:"expense"`
	Income  []MemberTotal `json:"income"`
}

// MemberBalanceReport attributes personal-scope transactions inside
// [start, end] to their creators and sums per member and type in one pass.
// Members with a zero total for a type are omitted from that list entirely,
// and each list is sorted descending by total.
//
// The breakdown is owner-only. Gating the call is the composing layer's job;
// invoked without owner context this degrades to an empty report rather than
// failing.
func MemberBalanceReport(members []core.Member, txs []core.Transaction, start, end core.Date, viewer core.Viewer) BalanceReport {
	report := BalanceReport{Expense: []MemberTotal{}, Income: []MemberTotal{}}
	if !viewer.IsOwner {
		return report
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.User.ID] = core.DisplayName(m.User)
	}

	window := Filter{Scope: core.ScopePersonal, Start: start, End: end}
	type key struct {
		userID string
		txType core.TransactionType
	}
	sums := make(map[key]int64)
	order := make(map[key]int)

	for _, tx := range txs {
		if !window.matches(tx) || tx.CreatedBy.IsZero() {
			continue
		}
		k := key{userID: tx.CreatedBy.ID, txType: tx.Type}
		if _, seen := sums[k]; !seen {
			order[k] = len(order)
		}
		sums[k] += tx.Amount
	}

	collect := func(txType core.TransactionType) []MemberTotal {
		entries := []MemberTotal{}
		for k, total := range sums {
			if k.txType != txType || total <= 0 {
				continue
			}
			name, known := names[k.userID]
			if !known {
				name = k.userID
			}
			entries = append(entries, MemberTotal{UserID: k.userID, Name: name, Total: total})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Total != entries[j].Total {
				return entries[i].Total > entries[j].Total
			}
			ki := key{userID: entries[i].UserID, txType: txType}
			kj := key{userID: entries[j].UserID, txType: txType}
			return order[ki] < order[kj]
		})
		return entries
	}

	report.Expense = collect(core.Expense)
	report.Income = collect(core.Income)
	return report
}
