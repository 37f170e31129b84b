package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source implements ports.SubjectSource by reading a local file.
// YAML and JSON documents are decoded; other files are returned as trimmed text.
// A missing file yields nil so an eventual assertion can wait for it.
type Source struct {
	Path string
	Raw  bool
}

// New creates a source reading path.
func New(path string) *Source {
	return &Source{Path: path}
}

// Fetch reads and decodes the file.
func (s *Source) Fetch(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read subject file: %w", err)
	}

	if s.Raw {
		return strings.TrimSpace(string(data)), nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return strings.TrimSpace(string(data)), nil
	}
	return v, nil
}
