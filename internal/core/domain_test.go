package core

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		part  int64
		whole int64
		want  int
	}{
		{name: "zero over zero is zero", part: 0, whole: 0, want: 0},
		{name: "half", part: 50, whole: 100, want: 50},
		{name: "over budget", part: 150, whole: 100, want: 150},
		{name: "rounds half up", part: 1, whole: 3, want: 33},
		{name: "rounds up at .5", part: 1, whole: 2, want: 50},
		{name: "two thirds rounds to 67", part: 2, whole: 3, want: 67},
		{name: "negative whole is zero", part: 10, whole: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.part, tt.whole); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{
			name: "valid expense",
			tx:   Transaction{Type: Expense, Scope: ScopePersonal, Amount: 1000},
		},
		{
			name: "zero amount is valid",
			tx:   Transaction{Type: Income, Scope: ScopeFamily, Amount: 0},
		},
		{
			name:    "negative amount",
			tx:      Transaction{Type: Expense, Scope: ScopePersonal, Amount: -1},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			tx:      Transaction{Type: "transfer", Scope: ScopePersonal, Amount: 1},
			wantErr: ErrInvalidType,
		},
		{
			name:    "unknown scope",
			tx:      Transaction{Type: Expense, Scope: "shared", Amount: 1},
			wantErr: ErrInvalidScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tx.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_CategoryKey(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{name: "with category", tx: Transaction{Type: Expense, Category: Ref{ID: "cat1"}}, want: "cat1"},
		{name: "uncategorized expense", tx: Transaction{Type: Expense}, want: CategoryExpenseOther},
		{name: "uncategorized income", tx: Transaction{Type: Income}, want: CategoryIncomeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.CategoryKey(); got != tt.want {
				t.Errorf("CategoryKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOwnerID(t *testing.T) {
	members := []Member{
		{User: Ref{ID: "u1", Name: "An"}, Role: RoleMember},
		{User: Ref{ID: "u2", Name: "Binh"}, Role: RoleOwner},
	}
	if got := OwnerID(members); got != "u2" {
		t.Errorf("OwnerID() = %q, want %q", got, "u2")
	}
	if got := OwnerID(nil); got != "" {
		t.Errorf("OwnerID(nil) = %q, want empty", got)
	}
}

func TestTransaction_HasTag(t *testing.T) {
	tx := Transaction{Tags: []string{TagTransfer, TagToFamily}}
	if !tx.HasTag(TagTransfer) {
		t.Error("expected transfer tag present")
	}
	if tx.HasTag(TagFromFamily) {
		t.Error("did not expect from-family tag")
	}
}
