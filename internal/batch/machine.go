package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dkaras/relocost/internal/api"
	"github.com/dkaras/relocost/internal/common"
	"github.com/dkaras/relocost/internal/logging"
	"github.com/dkaras/relocost/internal/models"
)

// State is the client-side phase of the batch flow.
type State string

const (
	StateIdle      State = "IDLE"
	StateUploading State = "UPLOADING"
	StatePolling   State = "POLLING"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
)

// DefaultPollInterval is how often the job status is re-fetched while the
// job is still pending or processing.
const DefaultPollInterval = 2 * time.Second

// Machine submits a batch file and polls the resulting job until it reaches
// a terminal status.
//
// Lifecycle: IDLE -> UPLOADING -> POLLING -> {COMPLETED, FAILED}. Reset (or
// submitting another file) returns to IDLE from any state and stops the
// poller; the remote job keeps running, the client simply stops observing it.
//
// A failed status fetch is not fatal: it is logged and the next tick retries.
// Only a terminal job status ends the polling loop.
type Machine struct {
	client   api.Client
	tokens   api.TokenSource
	log      logging.Logger
	interval time.Duration

	mu     sync.Mutex
	state  State
	jobID  string
	job    *models.BatchJob
	cancel context.CancelFunc
	done   chan struct{}
}

type MachineOption func(*Machine)

// WithPollInterval overrides the fixed polling interval (used by tests).
func WithPollInterval(d time.Duration) MachineOption {
	return func(m *Machine) { m.interval = d }
}

func NewMachine(client api.Client, tokens api.TokenSource, log logging.Logger, opts ...MachineOption) *Machine {
	m := &Machine{
		client:   client,
		tokens:   tokens,
		log:      log,
		interval: DefaultPollInterval,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current phase.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// JobID returns the id of the tracked job, or "" when none is active.
func (m *Machine) JobID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobID
}

// Job returns the last cached job snapshot, or nil if none has been fetched.
// The snapshot survives the terminal transition so results stay available.
func (m *Machine) Job() *models.BatchJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.job == nil {
		return nil
	}
	j := *m.job
	return &j
}

// Reset returns to IDLE, forgets the job and stops polling. Called when a
// new file is selected or the user navigates away.
func (m *Machine) Reset() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.done = nil
	m.state = StateIdle
	m.jobID = ""
	m.job = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Submit validates the file at path, uploads it and starts polling the
// returned job. Without an active session the submission is refused before
// anything is sent. Validation failures leave the current state untouched;
// an upload failure returns the machine to IDLE.
func (m *Machine) Submit(ctx context.Context, path string) error {
	if m.tokens == nil || m.tokens.Token() == "" {
		return common.ErrNotAuthenticated
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("inspect file: %w", err)
	}
	if err := ValidateFile(info.Name(), info.Size()); err != nil {
		return err
	}

	m.mu.Lock()
	if m.state == StateUploading {
		m.mu.Unlock()
		return common.ErrSubmitInProgress
	}
	m.mu.Unlock()

	// Selecting a new file abandons any previous job.
	m.Reset()

	m.mu.Lock()
	m.state = StateUploading
	m.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		m.setState(StateIdle)
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	jobID, err := m.client.UploadBatch(ctx, filepath.Base(path), f)
	if err != nil {
		m.setState(StateIdle)
		return fmt.Errorf("upload batch: %w", err)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	m.mu.Lock()
	m.jobID = jobID
	m.state = StatePolling
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	m.log.Info(ctx, "batch submitted", "job", jobID, "file", info.Name())
	go m.poll(pollCtx, jobID, done)

	return nil
}

// Wait blocks until polling for the active job finishes (terminal status or
// cancellation) and returns the last snapshot.
func (m *Machine) Wait(ctx context.Context) (*models.BatchJob, error) {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done == nil {
		return nil, common.ErrNoActiveJob
	}

	select {
	case <-ctx.Done():
		return m.Job(), ctx.Err()
	case <-done:
	}

	job := m.Job()
	if job == nil {
		return nil, common.ErrNoActiveJob
	}
	return job, nil
}

// poll fetches the status immediately on entry, then once per tick while the
// job is still pending or processing.
func (m *Machine) poll(ctx context.Context, jobID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if stop := m.tick(ctx, jobID); stop {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// tick issues one status fetch and applies the snapshot. It returns true
// when polling must stop: terminal status observed, or the machine moved on
// to a different job. Fetch failures return false so the next tick retries.
func (m *Machine) tick(ctx context.Context, jobID string) bool {
	m.mu.Lock()
	if m.state != StatePolling || m.jobID != jobID {
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()

	job, err := m.client.GetBatchJob(ctx, jobID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		m.log.Warn(ctx, "batch status fetch failed, will retry", "job", jobID, "error", err)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StatePolling || m.jobID != jobID {
		// Reset happened while the request was in flight.
		return true
	}

	m.job = job
	if !job.Status.Terminal() {
		return false
	}

	if job.Status == models.JobStatusCompleted {
		m.state = StateCompleted
	} else {
		m.state = StateFailed
	}
	return true
}

func (m *Machine) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
