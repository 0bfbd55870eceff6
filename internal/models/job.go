package models

import "time"

// JobStatus is the server-reported state of a batch estimation job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether the status ends the job's lifecycle. Once a
// terminal status has been observed no further polling is useful.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// BatchJob is a read-only snapshot of a server-side batch estimation job.
// The client never mutates it; polling replaces the whole snapshot.
type BatchJob struct {
	ID            string             `json:"id"`
	Status        JobStatus          `json:"status"`
	TotalRows     int                `json:"total_rows"`
	ProcessedRows int                `json:"processed_rows"`
	Results       []EstimationResult `json:"results,omitempty"`
	ErrorMessage  string             `json:"error_message,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// UploadResponse is returned by POST /estimate/batch.
type UploadResponse struct {
	JobID string `json:"job_id"`
}
