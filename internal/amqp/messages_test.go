package amqp

import "testing"

func TestReportSyncMessageRoundTrip(t *testing.T) {
	msg := NewReportSyncMessage(42, 2025, 4)
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := ReportSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("ReportSyncMessageFromJSON() error = %v", err)
	}
	if got.ReportID != 42 || got.Year != 2025 || got.Month != 4 {
		t.Errorf("got = %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not preserved")
	}
}

func TestReportSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := ReportSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}
