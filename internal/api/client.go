// Package api contains the gateway to the remote estimation service.
// It owns credential injection, request dispatch and the centralized
// reaction to authentication-rejected responses.
package api

import (
	"context"
	"io"

	"github.com/dkaras/relocost/internal/models"
)

// TokenSource supplies the current session credential. An empty string means
// no session is active and no auth header is sent.
type TokenSource interface {
	Token() string
}

// Client is the remote API surface the rest of the application talks to.
// Each call is a single request/response; none retries automatically.
type Client interface {
	// Login exchanges credentials for a token and the user's identity.
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)

	// GetConfig fetches reference data: selectable countries and durations.
	GetConfig(ctx context.Context) (*models.RemoteConfig, error)

	// CalculateEstimate submits a single estimation and returns the breakdown.
	CalculateEstimate(ctx context.Context, in models.EstimationInputs) (*models.EstimationResult, error)

	// UploadBatch uploads a spreadsheet for batch estimation and returns the
	// id of the server-side job tracking it.
	UploadBatch(ctx context.Context, filename string, content io.Reader) (string, error)

	// GetBatchJob fetches the current snapshot of a batch job.
	GetBatchJob(ctx context.Context, jobID string) (*models.BatchJob, error)
}
