package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStore_RoundTrip(t *testing.T) {
	store := NewStubObjectStore()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "exports/job-1.csv", []byte("a,b\n1,2\n"), "text/csv"))

	exists, err := store.ObjectExists(ctx, "exports/job-1.csv")
	require.NoError(t, err)
	assert.True(t, exists)

	url, expiresAt, err := store.PresignDownload(ctx, "exports/job-1.csv")
	require.NoError(t, err)
	assert.Contains(t, url, "exports/job-1.csv")
	assert.False(t, expiresAt.IsZero())

	require.NoError(t, store.DeleteObject(ctx, "exports/job-1.csv"))

	exists, err = store.ObjectExists(ctx, "exports/job-1.csv")
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = store.PresignDownload(ctx, "exports/job-1.csv")
	assert.Error(t, err)
}

func TestStubObjectStore_RequiresKey(t *testing.T) {
	store := NewStubObjectStore()
	ctx := context.Background()

	assert.Error(t, store.Upload(ctx, "", []byte("x"), "text/csv"))
	_, _, err := store.PresignDownload(ctx, "")
	assert.Error(t, err)
	_, err = store.ObjectExists(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.DeleteObject(ctx, ""))
}
