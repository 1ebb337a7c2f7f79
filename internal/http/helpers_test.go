package http

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseYearMonth(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		target    string
		wantYear  int
		wantMonth int
	}{
		{"explicit", "/budgets?year=2024&month=11", 2024, 11},
		{"defaults", "/budgets", now.Year(), int(now.Month())},
		{"invalid month falls back", "/budgets?year=2024&month=13", 2024, int(now.Month())},
		{"garbage ignored", "/budgets?year=abc&month=xyz", now.Year(), int(now.Month())},
		{"zero year ignored", "/budgets?year=0&month=2", now.Year(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			year, month := parseYearMonth(r)
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("parseYearMonth() = %d, %d, want %d, %d", year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	if got := monthKey(2025, 4); got != "2025-04" {
		t.Errorf("monthKey(2025, 4) = %q", got)
	}
	if got := monthKey(2025, 12); got != "2025-12" {
		t.Errorf("monthKey(2025, 12) = %q", got)
	}
}
