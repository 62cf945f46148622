// Package model contains domain models/data structures.
// Pure data types shared across layers (HTTP, service, storage) with no
// persistence-specific dependencies or tags.
package model

import "time"

// SurveyPayload is the raw multi-section questionnaire body exactly as
// the client supplied it: section name (part1..part6) to a free-form
// field map. Values are strings, string lists, or small integers (e.g.
// a 1-5 rating). No schema is enforced; absent fields render as
// placeholders downstream.
type SurveyPayload map[string]map[string]any

// SubmissionRecord is the durable form of one submission: the payload
// augmented with the submitter's email (optional), an ISO-8601
// timestamp, and any uploaded file references. Written once to object
// storage, never updated or deleted.
type SubmissionRecord struct {
	FormData  SurveyPayload `json:"formData"`
	UserEmail string        `json:"userEmail,omitempty"`
	Timestamp string        `json:"timestamp"`
	FileURLs  []string      `json:"fileUrls"`
}

// Submission is the metadata row indexed in the database for listing
// and lookup. The full record lives in object storage under StorageKey.
type Submission struct {
	ID          string    `json:"id"`
	UserEmail   string    `json:"user_email,omitempty"`
	StorageKey  string    `json:"storage_key"`
	FileCount   int       `json:"file_count"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// EmailOutcome is the result of a single delivery attempt. Transient;
// never persisted.
type EmailOutcome struct {
	Success    bool
	ProviderID string
	Error      string
}

// SubmissionResult is the aggregate outcome returned to the client.
// Warning carries a soft-failure note (e.g. the user copy could not be
// sent under provider sandbox restrictions) and is null on a clean run.
type SubmissionResult struct {
	Success      bool    `json:"success"`
	SubmissionID string  `json:"submissionId,omitempty"`
	Warning      *string `json:"warning"`
	Error        string  `json:"error,omitempty"`
}
