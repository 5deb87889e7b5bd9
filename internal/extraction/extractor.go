// Package extraction turns stored resume artifacts into plain text for
// scoring. Formats are pluggable per file extension.
package extraction

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/talentwire/intake-api/internal/artifact"
)

// ErrUnreadable marks an artifact whose content cannot be turned into text.
// Callers treat it as a degraded outcome, not a system failure.
var ErrUnreadable = errors.New("resume content is not extractable")

type Extractor interface {
	ExtractText(ctx context.Context, location string) (string, error)
}

// ContentExtractor converts a single format's byte stream into plain text.
type ContentExtractor func(reader io.Reader) (string, error)

type ArtifactExtractor struct {
	artifacts artifact.Store
	registry  map[string]ContentExtractor
}

var _ Extractor = (*ArtifactExtractor)(nil)

func NewArtifactExtractor(artifacts artifact.Store) *ArtifactExtractor {
	e := &ArtifactExtractor{
		artifacts: artifacts,
		registry:  make(map[string]ContentExtractor),
	}
	e.Register(".txt", extractPlainText)
	return e
}

// Register installs a content extractor for the given extension, replacing
// any previous one.
func (e *ArtifactExtractor) Register(extension string, fn ContentExtractor) {
	e.registry[strings.ToLower(extension)] = fn
}

func (e *ArtifactExtractor) ExtractText(ctx context.Context, location string) (string, error) {
	fn, ok := e.registry[strings.ToLower(filepath.Ext(location))]
	if !ok {
		return "", errors.Wrapf(ErrUnreadable, "no extractor for %q", filepath.Ext(location))
	}

	reader, err := e.artifacts.Open(ctx, location)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			return "", errors.Wrap(ErrUnreadable, "artifact is missing")
		}
		return "", err
	}
	defer reader.Close()

	text, err := fn(reader)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.Wrap(ErrUnreadable, "no text content")
	}
	return text, nil
}

func extractPlainText(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.Wrap(ErrUnreadable, "not valid utf-8")
	}
	return string(data), nil
}
