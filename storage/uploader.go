package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Location is empty when the bucket
// has no public base URL.
type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location,omitempty"`
	ETag     string `json:"etag,omitempty"`
}

// FileUploader is the object store the schedule archive writes to.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}
