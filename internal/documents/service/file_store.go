// Package service implements the document file store over a blob bucket.
package service

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"

	// Register blob bucket drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// FileStore persists document bytes under opaque storage keys. The metadata
// rows in the database reference the keys; the store never sees case or
// client identifiers beyond what the key encodes.
type FileStore interface {
	// Put writes the document bytes under the given key.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads the document bytes stored under the given key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Close releases the underlying bucket.
	Close() error
}

// blobFileStore implements FileStore using a gocloud.dev blob bucket.
type blobFileStore struct {
	bucket *blob.Bucket
}

// OpenFileStore opens the document bucket for the configured URL.
// Supports: file://, mem://, s3://, gs://
func OpenFileStore(ctx context.Context, bucketURL string) (FileStore, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open documents bucket: %w", err)
	}
	return &blobFileStore{bucket: bucket}, nil
}

// Put writes the document bytes under the given key.
func (s *blobFileStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return nil
}

// Get reads the document bytes stored under the given key.
func (s *blobFileStore) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", key, err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return data, nil
}

// Close releases the underlying bucket.
func (s *blobFileStore) Close() error {
	return s.bucket.Close()
}
