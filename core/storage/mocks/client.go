// Package mocks holds testify mocks for the storage package.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client mocks storage.Client, the MinIO subset used by the object medium.
type Client struct {
	mock.Mock
}

// NewClient returns a Client whose expectations are asserted when t ends.
func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ExpectValue makes GetObject on bucket/object return value.
func (m *Client) ExpectValue(bucket, object, value string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucket, object, mock.Anything).
		Return(io.NopCloser(strings.NewReader(value)), nil)
}

// ExpectMissing makes GetObject on bucket/object fail with NoSuchKey.
func (m *Client) ExpectMissing(bucket, object string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucket, object, mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

func (m *Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return m.Called(ctx, bucketName, objectName, opts).Error(0)
}
