// Package document is the persistence gateway: the layer set lives in a YAML
// sidecar next to the GIF it animates.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ashapiro/memeframe/internal/gif"
	"github.com/ashapiro/memeframe/internal/template"
)

// SidecarPath returns the document path that belongs to a GIF: same base
// name, .yaml extension.
func SidecarPath(gifPath string) string {
	ext := filepath.Ext(gifPath)
	return strings.TrimSuffix(gifPath, ext) + ".yaml"
}

// WriteRecords writes the layer records to a document file.
func WriteRecords(path string, records []template.Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadRecords reads layer records from a document file.
func ReadRecords(path string) ([]template.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []template.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return records, nil
}

// Save writes the sequence to gifPath and the layer set to its sidecar. The
// sequence written is the caller's choice (normally the pristine original, so
// re-opening and re-rendering is lossless).
func Save(gifPath string, m *template.MemeTemplate, seq *gif.Sequence) error {
	if err := seq.Save(gifPath); err != nil {
		return err
	}
	return WriteRecords(SidecarPath(gifPath), m.Serialize())
}

// Load opens the sequence at gifPath and, when a sidecar document exists,
// the layer set stored with it. With no sidecar the returned template is nil
// and the caller starts from a fresh layer set.
func Load(gifPath string) (*gif.Sequence, *template.MemeTemplate, error) {
	seq, err := gif.Open(gifPath)
	if err != nil {
		return nil, nil, err
	}

	records, err := ReadRecords(SidecarPath(gifPath))
	if errors.Is(err, fs.ErrNotExist) {
		return seq, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return seq, template.Deserialize(records), nil
}
