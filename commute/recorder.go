package commute

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileRecorder appends samples to a log file, one JSON line per sample.
// Concurrent writers to the same file are not supported.
type FileRecorder struct {
	Path string
}

func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{Path: path}
}

func (r *FileRecorder) Record(sample Sample) (err error) {
	line, err := EncodeSample(sample)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "unable to create log directory")
		}
	}

	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "unable to open log file")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "unable to close log file")
		}
	}()

	if _, err := f.Write(line); err != nil {
		return errors.Wrap(err, "unable to append to log file")
	}

	if err := f.Sync(); err != nil {
		return errors.Wrap(err, "unable to flush log file")
	}

	return nil
}
