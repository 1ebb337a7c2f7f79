package views

import (
	"testing"

	"famboard/internal/core"
)

func balanceMembers() []core.Member {
	return []core.Member{
		{User: core.Ref{ID: "A", Name: "An"}, Role: core.RoleOwner},
		{User: core.Ref{ID: "B", Name: "Binh"}, Role: core.RoleMember},
		{User: core.Ref{ID: "C", Name: "Chi"}, Role: core.RoleMember},
	}
}

func personalTx(creator string, txType core.TransactionType, amount int64, d core.Date) core.Transaction {
	return core.Transaction{
		Type:      txType,
		Scope:     core.ScopePersonal,
		Amount:    amount,
		CreatedBy: core.Ref{ID: creator},
		Date:      d,
	}
}

func TestMemberBalanceReport(t *testing.T) {
	owner := core.Viewer{UserID: "A", IsOwner: true}
	start, end := core.NewDate(2025, 3, 1), core.NewDate(2025, 3, 31)

	txs := []core.Transaction{
		personalTx("A", core.Expense, 100, core.NewDate(2025, 3, 5)),
		personalTx("B", core.Expense, 0, core.NewDate(2025, 3, 6)),
		personalTx("C", core.Expense, 250, core.NewDate(2025, 3, 7)),
		personalTx("A", core.Income, 900, core.NewDate(2025, 3, 8)),
		// Family scope never counts toward member balances.
		{Type: core.Expense, Scope: core.ScopeFamily, Amount: 5000, CreatedBy: core.Ref{ID: "A"}, Date: core.NewDate(2025, 3, 9)},
	}

	got := MemberBalanceReport(balanceMembers(), txs, start, end, owner)

	if len(got.Expense) != 2 {
		t.Fatalf("expense entries = %d, want 2 (zero totals omitted)", len(got.Expense))
	}
	if got.Expense[0].Name != "Chi" || got.Expense[0].Total != 250 {
		t.Errorf("top expense = %+v, want Chi/250", got.Expense[0])
	}
	if got.Expense[1].Name != "An" || got.Expense[1].Total != 100 {
		t.Errorf("second expense = %+v, want An/100", got.Expense[1])
	}
	if len(got.Income) != 1 || got.Income[0].Total != 900 {
		t.Errorf("income = %+v, want single An/900 entry", got.Income)
	}
}

func TestMemberBalanceReport_zeroTotalOmitted(t *testing.T) {
	owner := core.Viewer{UserID: "A", IsOwner: true}
	txs := []core.Transaction{
		personalTx("A", core.Expense, 100, core.NewDate(2025, 3, 5)),
		personalTx("B", core.Expense, 0, core.NewDate(2025, 3, 5)),
	}

	got := MemberBalanceReport(balanceMembers(), txs, core.NewDate(2025, 3, 1), core.NewDate(2025, 3, 31), owner)
	if len(got.Expense) != 1 || got.Expense[0].UserID != "A" {
		t.Errorf("expense = %+v, want exactly one entry for A", got.Expense)
	}
}

func TestMemberBalanceReport_nonOwnerDegradesEmpty(t *testing.T) {
	member := core.Viewer{UserID: "B", IsOwner: false}
	txs := []core.Transaction{
		personalTx("A", core.Expense, 100, core.NewDate(2025, 3, 5)),
	}

	got := MemberBalanceReport(balanceMembers(), txs, core.NewDate(2025, 3, 1), core.NewDate(2025, 3, 31), member)
	if len(got.Expense) != 0 || len(got.Income) != 0 {
		t.Errorf("non-owner report = %+v, want empty", got)
	}
}

func TestMemberBalanceReport_unknownCreatorKeepsID(t *testing.T) {
	owner := core.Viewer{UserID: "A", IsOwner: true}
	txs := []core.Transaction{
		personalTx("ghost", core.Expense, 40, core.NewDate(2025, 3, 5)),
	}

	got := MemberBalanceReport(balanceMembers(), txs, core.NewDate(2025, 3, 1), core.NewDate(2025, 3, 31), owner)
	if len(got.Expense) != 1 || got.Expense[0].Name != "ghost" {
		t.Errorf("expense = %+v, want the raw id as display name", got.Expense)
	}
}
