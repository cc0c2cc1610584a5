package models

import (
	"encoding/json"
	"time"
)

// IssueReport is a user-submitted data correction report against one of
// the dashboard tables.
type IssueReport struct {
	ID        string          `json:"id"`
	Issue     string          `json:"issue"`
	TableType string          `json:"tableType"`
	UserInfo  json.RawMessage `json:"userInfo,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Issue table type constants.
const (
	IssueTableCompanies = "companies"
	IssueTableETFs      = "etfs"
	IssueTableUnknown   = "unknown"
)

// Issue status constants.
const (
	IssueStatusPending  = "pending"
	IssueStatusReviewed = "reviewed"
	IssueStatusResolved = "resolved"
)

// ValidIssueTableTypes is the set of allowed tableType values.
var ValidIssueTableTypes = map[string]bool{
	IssueTableCompanies: true,
	IssueTableETFs:      true,
	IssueTableUnknown:   true,
}

// ValidIssueStatuses is the set of allowed status values.
var ValidIssueStatuses = map[string]bool{
	IssueStatusPending:  true,
	IssueStatusReviewed: true,
	IssueStatusResolved: true,
}
