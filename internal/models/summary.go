package models

import "time"

// Summary record statuses.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

// SummaryRecord is the Firestore ledger entry written for each summarizer invocation.
type SummaryRecord struct {
	FileURL      string    `firestore:"fileUrl,omitempty"`
	SummaryKey   string    `firestore:"summaryKey,omitempty"`
	SummaryURL   string    `firestore:"summaryUrl,omitempty"`
	Status       string    `firestore:"status,omitempty"`
	ErrorKind    string    `firestore:"errorKind,omitempty"`
	ErrorDetails string    `firestore:"errorDetails,omitempty"`
	PageCount    int       `firestore:"pageCount,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt,omitempty"`
}
