package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/validation"
)

// Format identifies a catalog file encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatOWL  Format = "owl"
)

// Record is one book as written in a JSON or YAML catalog file.
type Record struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Title    *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Genres   []string `json:"genres" yaml:"genres" validate:"dive,required"`
	AgeLimit *int     `json:"age_limit,omitempty" yaml:"age_limit,omitempty" validate:"omitempty,gte=0"`
	Rating   *float64 `json:"rating,omitempty" yaml:"rating,omitempty" validate:"omitempty,finite,gte=0"`
}

// file is the top-level shape of JSON and YAML catalogs.
type file struct {
	Books []Record `json:"books" yaml:"books"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".owl", ".rdf", ".xml":
		return FormatOWL, nil
	default:
		return "", errors.Catalogf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and validates a catalog file. Books keep the order they appear in the file.
func LoadFile(path string) ([]domain.Book, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //#nosec G304 -- Catalog path comes from operator configuration
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeCatalog, "read catalog %s", path)
	}

	books, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeCatalog, "load catalog %s", path)
	}
	return books, nil
}

// Decode parses a catalog in the given format and validates every record.
func Decode(r io.Reader, format Format) ([]domain.Book, error) {
	var records []Record
	switch format {
	case FormatJSON:
		var f file
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		records = f.Books
	case FormatYAML:
		var f file
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		records = f.Books
	case FormatOWL:
		var err error
		records, err = decodeOWL(r)
		if err != nil {
			return nil, fmt.Errorf("decode owl: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}

	return toBooks(records)
}

// toBooks validates records, rejects duplicate ids and converts to domain books.
func toBooks(records []Record) ([]domain.Book, error) {
	v := validation.New()
	books := make([]domain.Book, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		if err := v.Validate(rec); err != nil {
			return nil, fmt.Errorf("book #%d (%s): %w", i+1, rec.ID, err)
		}
		if first, dup := seen[rec.ID]; dup {
			return nil, errors.Validationf("book #%d: duplicate id %q (first seen at #%d)", i+1, rec.ID, first)
		}
		seen[rec.ID] = i + 1

		genres := rec.Genres
		if genres == nil {
			genres = []string{}
		}
		books = append(books, domain.Book{
			ID:       rec.ID,
			Title:    rec.Title,
			Genres:   genres,
			AgeLimit: rec.AgeLimit,
			Rating:   rec.Rating,
		})
	}
	return books, nil
}
