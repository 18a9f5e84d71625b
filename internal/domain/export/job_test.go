package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob(t *testing.T) *Job {
	t.Helper()
	j, err := NewJob(DatasetOrders, FormatCSV, uuid.New())
	require.NoError(t, err)
	return j
}

func TestNewJob(t *testing.T) {
	tests := []struct {
		name      string
		dataset   Dataset
		format    Format
		requester uuid.UUID
		expectErr bool
	}{
		{"valid csv job", DatasetOrders, FormatCSV, uuid.New(), false},
		{"valid pdf job", DatasetInvoices, FormatPDF, uuid.New(), false},
		{"unknown dataset", Dataset("CUSTOMERS"), FormatCSV, uuid.New(), true},
		{"unknown format", DatasetOrders, Format("XLSX"), uuid.New(), true},
		{"missing requester", DatasetOrders, FormatCSV, uuid.Nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := NewJob(tt.dataset, tt.format, tt.requester)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, JobStatusPending, j.Status)
			assert.Zero(t, j.Attempts)
			assert.Equal(t, DefaultMaxAttempts, j.MaxAttempts)
		})
	}
}

func TestJob_SuccessfulRun(t *testing.T) {
	j := newTestJob(t)
	j.ClearDomainEvents()

	require.NoError(t, j.Start())
	assert.Equal(t, JobStatusRunning, j.Status)
	assert.Equal(t, 1, j.Attempts)
	require.NotNil(t, j.StartedAt)

	require.NoError(t, j.UpdateProgress(40))
	require.NoError(t, j.UpdateProgress(80))
	// Progress never goes backwards.
	require.NoError(t, j.UpdateProgress(60))
	assert.Equal(t, 80, j.Progress)

	assert.Error(t, j.UpdateProgress(101))

	require.NoError(t, j.Complete("s3://exports/orders-2026-08.csv"))
	assert.Equal(t, JobStatusCompleted, j.Status)
	assert.Equal(t, 100, j.Progress)
	require.NotNil(t, j.CompletedAt)
	assert.True(t, j.IsTerminal())

	assert.Error(t, j.Start(), "terminal jobs cannot restart")
	assert.Error(t, j.Cancel())
}

func TestJob_RetryThenPermanentFailure(t *testing.T) {
	j := newTestJob(t)

	// First two failures put the job back in the queue.
	for attempt := 1; attempt < DefaultMaxAttempts; attempt++ {
		require.NoError(t, j.Start())
		require.NoError(t, j.Fail("connection reset"))
		assert.Equal(t, JobStatusPending, j.Status, "attempt %d should requeue", attempt)
		assert.True(t, j.HasAttemptsLeft())
	}

	// The final attempt fails for good.
	require.NoError(t, j.Start())
	require.NoError(t, j.Fail("connection reset"))
	assert.Equal(t, JobStatusFailed, j.Status)
	assert.Equal(t, DefaultMaxAttempts, j.Attempts)
	assert.False(t, j.HasAttemptsLeft())
	require.NotNil(t, j.CompletedAt)

	assert.Error(t, j.Start())
}

func TestJob_Cancel(t *testing.T) {
	pending := newTestJob(t)
	require.NoError(t, pending.Cancel())
	assert.Equal(t, JobStatusCancelled, pending.Status)

	running := newTestJob(t)
	require.NoError(t, running.Start())
	require.NoError(t, running.Cancel())
	assert.Equal(t, JobStatusCancelled, running.Status)
	assert.Error(t, running.Complete("s3://exports/late.csv"), "cancelled job cannot complete")
}

func TestJob_Requeue(t *testing.T) {
	j := newTestJob(t)
	require.NoError(t, j.Start())
	require.NoError(t, j.UpdateProgress(55))

	// Crash recovery returns the job to the queue without burning an attempt.
	require.NoError(t, j.Requeue())
	assert.Equal(t, JobStatusPending, j.Status)
	assert.Zero(t, j.Progress)
	assert.Equal(t, 1, j.Attempts)

	assert.Error(t, j.Requeue(), "only running jobs can be requeued")
}

func TestJob_OperatorRetry(t *testing.T) {
	j := newTestJob(t)
	for attempt := 0; attempt < DefaultMaxAttempts; attempt++ {
		require.NoError(t, j.Start())
		require.NoError(t, j.Fail("bucket unreachable"))
	}
	require.Equal(t, JobStatusFailed, j.Status)

	// An operator retry restores the full attempt budget.
	require.NoError(t, j.Retry())
	assert.Equal(t, JobStatusPending, j.Status)
	assert.Zero(t, j.Attempts)
	assert.Zero(t, j.Progress)
	assert.Empty(t, j.ErrorMessage)
	assert.Nil(t, j.CompletedAt)
	assert.True(t, j.HasAttemptsLeft())

	assert.Error(t, j.Retry(), "only failed jobs can be retried")
}

func TestJob_TemplateAndPeriod(t *testing.T) {
	csvJob := newTestJob(t)
	assert.Error(t, csvJob.SetTemplate(uuid.New()), "CSV exports have no template")

	pdfJob, err := NewJob(DatasetInvoices, FormatPDF, uuid.New())
	require.NoError(t, err)
	assert.Error(t, pdfJob.SetTemplate(uuid.Nil))
	require.NoError(t, pdfJob.SetTemplate(uuid.New()))
	require.NotNil(t, pdfJob.TemplateID)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Error(t, pdfJob.SetPeriod(end, start))
	require.NoError(t, pdfJob.SetPeriod(start, end))
}

func TestFormat_FileExtension(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.FileExtension())
	assert.Equal(t, ".pdf", FormatPDF.FileExtension())
}
