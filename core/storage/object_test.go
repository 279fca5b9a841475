package storage_test

import (
	"context"
	"errors"
	"testing"

	"wallet-state/core/storage"
	"wallet-state/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObject_GetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		client := mocks.NewClient(t)
		client.ExpectValue("bucket", "snapshots/wallet-state", `{"v":1}`)

		v, err := storage.NewObject(client, "bucket", "/snapshots/").GetItem(ctx, "wallet-state")
		require.NoError(t, err)
		assert.Equal(t, `{"v":1}`, v)
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		client := mocks.NewClient(t)
		client.ExpectMissing("bucket", "wallet-state")

		_, err := storage.NewObject(client, "bucket", "").GetItem(ctx, "wallet-state")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("OtherError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", ctx, "bucket", "wallet-state", mock.Anything).
			Return(nil, errors.New("connection reset"))

		_, err := storage.NewObject(client, "bucket", "").GetItem(ctx, "wallet-state")
		assert.ErrorContains(t, err, "connection reset")
		assert.NotErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestObject_SetAndRemove(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	o := storage.NewObject(client, "bucket", "snapshots")

	client.On("PutObject", ctx, "bucket", "snapshots/k", mock.Anything, int64(7), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
		return opts.ContentType == "application/json"
	})).Return(minio.UploadInfo{}, nil)
	client.On("RemoveObject", ctx, "bucket", "snapshots/k", mock.Anything).Return(nil)

	require.NoError(t, o.SetItem(ctx, "k", `{"v":1}`))
	require.NoError(t, o.RemoveItem(ctx, "k"))
	client.AssertExpectations(t)
}

func TestObject_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(true, nil)

		require.NoError(t, storage.NewObject(client, "bucket", "").EnsureBucket(ctx, ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "bucket").Return(false, nil)
		client.On("MakeBucket", ctx, "bucket", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

		require.NoError(t, storage.NewObject(client, "bucket", "").EnsureBucket(ctx, "us-east-1"))
		client.AssertExpectations(t)
	})
}
