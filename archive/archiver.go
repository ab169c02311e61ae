// Package archive writes published deals to object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"dealfeed/types"
)

// ObjectStore is the subset of S3 the archiver uses
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Archiver stores each deal as {prefix}deals/{id}.json
type Archiver struct {
	store  ObjectStore
	bucket string
	prefix string
	logger *slog.Logger
}

// NewArchiver creates an Archiver; prefix is normalised to end in "/" when non-empty
func NewArchiver(store ObjectStore, bucket, prefix string, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.Default()
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Archiver{store: store, bucket: bucket, prefix: prefix, logger: logger.With("component", "archive")}
}

// Key returns the object key for a deal id
func (a *Archiver) Key(id string) string {
	return a.prefix + "deals/" + id + ".json"
}

// Archive writes the deal unless an object for its id already exists
func (a *Archiver) Archive(ctx context.Context, item types.DealItem) error {
	if item.ID == "" {
		return fmt.Errorf("cannot archive deal without id")
	}
	key := a.Key(item.ID)

	exists, err := a.store.Exists(ctx, a.bucket, key)
	if err != nil {
		return fmt.Errorf("failed to check s3://%s/%s: %w", a.bucket, key, err)
	}
	if exists {
		return nil
	}

	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deal %s: %w", item.ID, err)
	}
	if err := a.store.Put(ctx, a.bucket, key, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", a.bucket, key, err)
	}

	a.logger.Debug("archived deal", "id", item.ID, "key", key)
	return nil
}
