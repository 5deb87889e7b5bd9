// Package artifact stores and retrieves resume files. Backends share a
// location string format of "<yyyy-mm>/<applicant-id>_<filename>" so
// ownership of an object can be recovered from its name alone.
package artifact

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrInvalidType = errors.New("unsupported resume file type")
	ErrNotFound    = errors.New("artifact not found")
)

// allowedExtensions are the resume formats accepted at intake.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

type Store interface {
	Save(ctx context.Context, applicantID uuid.UUID, filename string, reader io.Reader) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Delete(ctx context.Context, location string) error
}

// ValidateFilename checks the name carries an accepted resume extension.
// It returns the sanitized base name safe to use as part of an object key.
func ValidateFilename(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", errors.Wrap(ErrInvalidType, "empty filename")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", errors.Wrapf(ErrInvalidType, "extension %q", ext)
	}
	return name, nil
}

// objectName builds the canonical object key for an applicant's resume,
// partitioned by month. Deterministic per (applicant, filename) within a
// partition so a re-submission replaces the previous upload instead of
// accumulating copies.
func objectName(applicantID uuid.UUID, filename string) string {
	return path.Join(timeBucket(), applicantID.String()+"_"+filename)
}

func timeBucket() string {
	return time.Now().UTC().Format("2006-01")
}

// OwnerOf parses the applicant id out of an object key. The second return
// is false when the key does not follow the canonical format.
func OwnerOf(key string) (uuid.UUID, bool) {
	base := path.Base(key)
	idx := strings.IndexByte(base, '_')
	if idx < 0 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(base[:idx])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
