package dataset

import (
	"context"
	"fmt"
	"os"

	s3service "scheme-recommendation-engine/internal/services/s3"
)

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed dataset source.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Name identifies the source in logs and errors.
func (f *FileSource) Name() string {
	return "file:" + f.Path
}

// Fetch reads the dataset file.
func (f *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return data, nil
}

// S3Source reads the dataset from an S3 object.
type S3Source struct {
	svc *s3service.Service
	key string
}

// NewS3Source creates an S3-backed dataset source.
func NewS3Source(svc *s3service.Service, key string) *S3Source {
	return &S3Source{svc: svc, key: key}
}

// Name identifies the source in logs and errors.
func (s *S3Source) Name() string {
	return "s3:" + s.key
}

// Fetch downloads the dataset object. Existence is checked first so a
// missing object surfaces as a clear error instead of a get failure.
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	exists, err := s.svc.FileExists(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("dataset object %s does not exist", s.key)
	}
	return s.svc.DownloadFile(ctx, s.key)
}
