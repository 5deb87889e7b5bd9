package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FileStore keeps resume artifacts on the local filesystem under rootDir.
type FileStore struct {
	rootDir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(rootDir string) (*FileStore, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating artifact root")
	}
	return &FileStore{rootDir: rootDir}, nil
}

func (f *FileStore) RootDir() string {
	return f.rootDir
}

// PathFor returns the full path for the provided object key, useful for
// functions and libraries that don't work with the artifact.Store.
func (f *FileStore) PathFor(key string) string {
	return filepath.Join(f.rootDir, key)
}

// Save writes the stream to a temporary file and renames it into place,
// so a partially written resume is never visible under its final name.
func (f *FileStore) Save(ctx context.Context, applicantID uuid.UUID, filename string, reader io.Reader) (string, error) {
	name, err := ValidateFilename(filename)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(f.rootDir, ".upload-*")
	if err != nil {
		return "", errors.Wrap(err, "creating temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "writing resume stream")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "closing resume file")
	}

	key := objectName(applicantID, name)
	dest := f.PathFor(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", errors.Wrap(err, "creating artifact partition")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", errors.Wrap(err, "publishing resume file")
	}
	return key, nil
}

func (f *FileStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	file, err := os.Open(f.PathFor(location))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func (f *FileStore) Delete(ctx context.Context, location string) error {
	if err := os.Remove(f.PathFor(location)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the object keys currently stored, walking the partition
// directories. Temporary upload files are skipped.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(f.rootDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name()[0] == '.' {
			return nil
		}
		rel, err := filepath.Rel(f.rootDir, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
