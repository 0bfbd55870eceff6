package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkaras/relocost/internal/batch"
	"github.com/dkaras/relocost/internal/common"
	"github.com/dkaras/relocost/internal/models"
)

// SubmitBatch uploads a spreadsheet of deployments and follows the job
// until the server reports a terminal status.
func (a *App) SubmitBatch(ctx context.Context, path string) error {
	preview, err := batch.PreviewFile(path)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	if preview.Rows >= 0 {
		fmt.Fprintf(a.out, "Uploading %s (%d bytes, %d rows)...\n", preview.Name, preview.Size, preview.Rows)
	} else {
		fmt.Fprintf(a.out, "Uploading %s (%d bytes)...\n", preview.Name, preview.Size)
	}

	if err := a.machine.Submit(ctx, path); err != nil {
		switch {
		case errors.Is(err, common.ErrNotAuthenticated):
			fmt.Fprintln(a.out, "Please login first.")
		case errors.Is(err, common.ErrSubmitInProgress):
			fmt.Fprintln(a.out, "A batch job is already running, use 'status' to follow it.")
		default:
			fmt.Fprintln(a.out, "Upload failed:", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Job %s accepted, waiting for results...\n", a.machine.JobID())

	job, err := a.machine.Wait(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	a.printJob(job)
	return nil
}

// Status reports the current batch job, if any.
func (a *App) Status(ctx context.Context) error {
	state := a.machine.State()
	if state == batch.StateIdle {
		fmt.Fprintln(a.out, "No batch job.")
		return nil
	}
	fmt.Fprintln(a.out, "State:", state)
	if job := a.machine.Job(); job != nil {
		a.printJob(job)
	}
	return nil
}

// Template writes a spreadsheet template with the expected columns and one
// sample row. The format follows the file extension.
func (a *App) Template(ctx context.Context, path string) error {
	if err := batch.WriteTemplate(path); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Template written to", path)
	return nil
}

func (a *App) printJob(job *models.BatchJob) {
	switch job.Status {
	case models.JobStatusCompleted:
		fmt.Fprintf(a.out, "Job %s completed: %d of %d rows processed.\n", job.ID, job.ProcessedRows, job.TotalRows)
	case models.JobStatusFailed:
		msg := job.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		fmt.Fprintf(a.out, "Job %s failed: %s\n", job.ID, msg)
	default:
		fmt.Fprintf(a.out, "Job %s %s: %d of %d rows processed.\n", job.ID, job.Status, job.ProcessedRows, job.TotalRows)
	}
}
