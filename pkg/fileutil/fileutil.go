package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohmanhakim/article-prep/pkg/failure"
)

// FileExtension returns the lowercased extension of path without its dot,
// or an empty string.
func FileExtension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// EnsureDir creates dir joined with path when it does not exist yet.
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	target := filepath.Join(append([]string{dir}, path...)...)
	if err := os.MkdirAll(target, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
			Err:       err,
		}
	}
	return nil
}

// WriteFileAtomic writes data next to path and renames it into place, so a
// reader never sees a partial file.
func WriteFileAtomic(path string, data []byte) failure.ClassifiedError {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &FileError{Message: err.Error(), Cause: ErrCausePathError, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &FileError{Message: err.Error(), Retryable: true, Cause: ErrCauseWriteError, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &FileError{Message: err.Error(), Retryable: true, Cause: ErrCauseWriteError, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &FileError{Message: err.Error(), Cause: ErrCauseWriteError, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &FileError{Message: err.Error(), Cause: ErrCauseWriteError, Err: err}
	}
	return nil
}
