package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Object is a medium storing each key as an object in an S3 compatible bucket.
type Object struct {
	client Client
	bucket string
	prefix string
}

// NewObject returns an Object medium. Keys map to "<prefix>/<key>".
func NewObject(client Client, bucket, prefix string) *Object {
	return &Object{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (o *Object) objectName(key string) string {
	if o.prefix == "" {
		return key
	}
	return path.Join(o.prefix, key)
}

// EnsureBucket creates the bucket when it does not exist.
func (o *Object) EnsureBucket(ctx context.Context, region string) error {
	exists, err := o.client.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", o.bucket, err)
	}
	if exists {
		return nil
	}
	if err := o.client.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", o.bucket, err)
	}
	return nil
}

func (o *Object) GetItem(ctx context.Context, key string) (string, error) {
	obj, err := o.client.GetObject(ctx, o.bucket, o.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return "", o.readError(key, err)
	}
	defer obj.Close()

	// minio reports missing objects on first read
	data, err := io.ReadAll(obj)
	if err != nil {
		return "", o.readError(key, err)
	}
	return string(data), nil
}

func (o *Object) readError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return fmt.Errorf("failed to read %q: %w", key, err)
}

func (o *Object) SetItem(ctx context.Context, key, value string) error {
	_, err := o.client.PutObject(ctx, o.bucket, o.objectName(key), strings.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (o *Object) RemoveItem(ctx context.Context, key string) error {
	if err := o.client.RemoveObject(ctx, o.bucket, o.objectName(key), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}
