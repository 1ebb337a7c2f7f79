package memory

import (
	"context"
	"errors"
	"testing"

	"famboard/internal/sheets"
)

func TestAppendAndRows(t *testing.T) {
	store := New()
	rows := []sheets.ReportRow{
		{Year: 2025, Month: 4, Section: "total", Label: "expense", Amount: 450000},
		{Year: 2025, Month: 4, Section: "category", Label: "Food", Amount: 300000},
	}
	if err := store.AppendReportRows(context.Background(), rows); err != nil {
		t.Fatalf("AppendReportRows() error = %v", err)
	}

	got := store.Rows()
	if len(got) != 2 || got[1].Label != "Food" {
		t.Errorf("Rows() = %+v", got)
	}
}

func TestFailNext(t *testing.T) {
	store := New()
	want := errors.New("boom")
	store.FailNext = want

	err := store.AppendReportRows(context.Background(), []sheets.ReportRow{{Section: "total"}})
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
	if len(store.Rows()) != 0 {
		t.Error("failed append should store nothing")
	}

	if err := store.AppendReportRows(context.Background(), []sheets.ReportRow{{Section: "total"}}); err != nil {
		t.Errorf("second append error = %v, want nil", err)
	}
}
