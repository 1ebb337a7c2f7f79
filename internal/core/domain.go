package core

import (
	"errors"
	"strings"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	ScopePersonal Scope = "personal"
	ScopeFamily   Scope = "family"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Sentinel category keys used when a transaction carries no category.
const (
	CategoryExpenseOther = "expense-other"
	CategoryIncomeOther  = "income-other"
)

// Well-known transaction tags.
const (
	TagTransfer   = "transfer"
	TagToFamily   = "to-family"
	TagFromFamily = "from-family"
)

type (
	TransactionType string
	Scope           string
	Priority        string
	Role            string

	// Transaction is a single income or expense record as returned by the
	// family API. Amounts are whole currency units (VND, no subunit).
	Transaction struct {
		ID        string          `json:"_id"`
		Type      TransactionType `json:"type"`
		Amount    int64           `json:"amount"`
		Category  Ref             `json:"category"`
		Date      Date            `json:"date"`
		Scope     Scope           `json:"transactionScope"`
		CreatedBy Ref             `json:"createdBy"`
		Tags      []string        `json:"tags"`
	}

	// Budget is an allocation for a category over a period, current or archived.
	Budget struct {
		ID          string `json:"_id"`
		Category    Ref    `json:"category"`
		Amount      int64  `json:"amount"`
		Spent       int64  `json:"spent"`
		PeriodStart Date   `json:"periodStart"`
		PeriodEnd   Date   `json:"periodEnd"`
	}

	// Member is one user's membership in the selected family.
	// Exactly one member per family has the owner role.
	Member struct {
		User Ref  `json:"user"`
		Role Role `json:"role"`
	}

	// Viewer identifies who is looking at a screen. It is supplied per call
	// and never stored by the engine.
	Viewer struct {
		UserID  string
		IsOwner bool
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidScope  = errors.New("invalid transaction scope")
	ErrEmptyTitle    = errors.New("empty title")
)

// Validate checks the closed enums and the amount invariant.
func (t Transaction) Validate() error {
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	switch t.Type {
	case Income, Expense:
	default:
		return ErrInvalidType
	}
	switch t.Scope {
	case ScopePersonal, ScopeFamily:
	default:
		return ErrInvalidScope
	}
	return nil
}

// HasTag reports whether the transaction carries the given tag.
func (t Transaction) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// CategoryKey returns the category id, or the type-specific sentinel bucket
// when the transaction has no category.
func (t Transaction) CategoryKey() string {
	if t.Category.ID != "" {
		return t.Category.ID
	}
	if t.Type == Income {
		return CategoryIncomeOther
	}
	return CategoryExpenseOther
}

func (b Budget) Validate() error {
	if b.Amount < 0 || b.Spent < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// OwnerID returns the user id of the family owner, or "" when the member
// list holds none.
func OwnerID(members []Member) string {
	for _, m := range members {
		if m.Role == RoleOwner {
			return m.User.ID
		}
	}
	return ""
}

// DisplayName returns the best human-readable name for a ref, falling back
// to the id when the API sent a bare string.
func DisplayName(r Ref) string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return r.ID
}

// Percent computes round(part/whole*100) with half-up rounding.
// A zero or negative whole yields 0, never a division error.
func Percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int((part*100 + whole/2) / whole)
}
