package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-enroll-api/pkg/jobs"
	"github.com/noah-isme/edu-enroll-api/pkg/storage"
)

// syncDispatcher runs jobs inline, so tests see the rendered file immediately.
type syncDispatcher struct {
	svc  *ReceiptService
	jobs []jobs.Job
}

func (d *syncDispatcher) Enqueue(job jobs.Job) error {
	d.jobs = append(d.jobs, job)
	return d.svc.Process(context.Background(), job)
}

func newReceiptFixture(t *testing.T) (*ReceiptService, *syncDispatcher) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test_secret", time.Hour)
	svc := NewReceiptService(store, signer, nil, nil)
	dispatcher := &syncDispatcher{svc: svc}
	svc.AttachQueue(dispatcher)
	return svc, dispatcher
}

func TestReceiptIssueAndResolve(t *testing.T) {
	svc, dispatcher := newReceiptFixture(t)

	token, err := svc.Issue("Asha Rao", "Application for Vedic Maths")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Len(t, dispatcher.jobs, 1)
	assert.Equal(t, "receipt", dispatcher.jobs[0].Type)

	file, filename, err := svc.Resolve(token)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	assert.Contains(t, filename, ".pdf")
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	// PDF magic bytes.
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReceiptResolveBadToken(t *testing.T) {
	svc, _ := newReceiptFixture(t)

	_, _, err := svc.Resolve("not-a-token")
	require.Error(t, err)
}

func TestReceiptEnabledRequiresWiring(t *testing.T) {
	var nilSvc *ReceiptService
	assert.False(t, nilSvc.Enabled())

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)

	unwired := NewReceiptService(store, signer, nil, nil)
	assert.False(t, unwired.Enabled())

	unwired.AttachQueue(&syncDispatcher{svc: unwired})
	assert.True(t, unwired.Enabled())
}
