// Package views is the aggregation and view-model engine: it turns raw
// entity lists fetched from the family API into the grouped, ranked and
// permission-filtered structures the screens render.
//
// Every function here is pure. No network, no storage, no shared state;
// callers fetch first, then aggregate. Bad records (unparseable dates,
// negative amounts) are skipped one at a time, never aborting a whole
// aggregation, and empty input always yields an empty result.
package views

import (
	"sort"
	"strconv"
	"time"

	"famboard/internal/core"
)

// Filter restricts an aggregation to one transaction type, one scope and an
// inclusive date window.
type Filter struct {
	Type  core.TransactionType
	Scope core.Scope
	Start core.Date
	End   core.Date
}

// MonthFilter builds a filter covering one calendar month.
func MonthFilter(txType core.TransactionType, scope core.Scope, year, month int) Filter {
	first := core.NewDate(year, month, 1)
	last := core.Date{Time: first.AddDate(0, 1, -1)}
	return Filter{Type: txType, Scope: scope, Start: first, End: last}
}

// matches applies the record-level skip policy: scope or type mismatches and
// out-of-window or unparseable dates silently exclude the record.
func (f Filter) matches(tx core.Transaction) bool {
	if tx.Amount < 0 {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Scope != "" && tx.Scope != f.Scope {
		return false
	}
	return tx.Date.Within(f.Start, f.End)
}

// CategoryTotal is one category bucket with its summed amount.
type CategoryTotal struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Amount int64  `json:"amount"`
}

// AggregateByCategory groups matching transactions into per-category totals,
// sorted descending by amount. Ties keep first-encountered order.
// Transactions without a category land in the type's sentinel bucket.
func AggregateByCategory(txs []core.Transaction, f Filter) []CategoryTotal {
	totals := []CategoryTotal{}
	index := make(map[string]int)

	for _, tx := range txs {
		if !f.matches(tx) {
			continue
		}
		key := tx.CategoryKey()
		i, seen := index[key]
		if !seen {
			name := core.DisplayName(tx.Category)
			if tx.Category.IsZero() {
				name = "Other"
			}
			index[key] = len(totals)
			totals = append(totals, CategoryTotal{Key: key, Name: name, Icon: tx.Category.Icon})
			i = index[key]
		}
		totals[i].Amount += tx.Amount
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount > totals[j].Amount
	})
	return totals
}

// WeekBucket is one week-of-month partition with its summed amount.
// Week numbering is ceil(dayOfMonth/7); week 5 holds days 29-31.
type WeekBucket struct {
	Week   int    `json:"week"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// AggregateByWeek partitions matching transactions into week-of-month
// buckets, sorted ascending by week number. Only weeks that received at
// least one transaction appear. Labels carry the day range, clamped to the
// month's real last day, e.g. "(29-30)" in a 30-day month.
func AggregateByWeek(txs []core.Transaction, f Filter) []WeekBucket {
	sums := make(map[int]int64)
	for _, tx := range txs {
		if !f.matches(tx) {
			continue
		}
		sums[tx.Date.WeekOfMonth()] += tx.Amount
	}
	if len(sums) == 0 {
		return []WeekBucket{}
	}

	lastDay := lastDayOfMonth(f.Start)
	buckets := make([]WeekBucket, 0, len(sums))
	for week, amount := range sums {
		buckets = append(buckets, WeekBucket{
			Week:   week,
			Label:  weekLabel(week, lastDay),
			Amount: amount,
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Week < buckets[j].Week })
	return buckets
}

// SumAmounts totals the matching transactions. Used by screens that show a
// single headline figure next to a breakdown.
func SumAmounts(txs []core.Transaction, f Filter) int64 {
	var total int64
	for _, tx := range txs {
		if f.matches(tx) {
			total += tx.Amount
		}
	}
	return total
}

func lastDayOfMonth(d core.Date) int {
	if d.IsZero() {
		return 31
	}
	y, m, _ := d.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func weekLabel(week, lastDay int) string {
	first := (week-1)*7 + 1
	last := week * 7
	if last > lastDay {
		last = lastDay
	}
	return "(" + strconv.Itoa(first) + "-" + strconv.Itoa(last) + ")"
}
