package amqp

import (
	"encoding/json"
	"time"
)

// ReportSyncMessage asks the export worker to push an archived report to
// the configured spreadsheet. It carries only the report identity; the
// worker loads the full report from the archive.
type ReportSyncMessage struct {
	ReportID  int64     `json:"reportId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportSyncMessage(reportID int64, year, month int) *ReportSyncMessage {
	return &ReportSyncMessage{
		ReportID:  reportID,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *ReportSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportSyncMessageFromJSON(data []byte) (*ReportSyncMessage, error) {
	var msg ReportSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
