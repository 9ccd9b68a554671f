// Package loader reads spreadsheet bytes into the normalized workbook model.
//
// Loading is tiered: OOXML archives go through the structured parser first
// and fall back to a generic tabular parser, legacy binary workbooks go
// through the BIFF reader, and anything else is treated as CSV with encoding
// detection. All format-specific detection (pivot tables, charts, images,
// macro projects) happens here so the rest of the system consumes a uniform
// model.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

var log = logrus.WithField("component", "loader")

// ErrEmptyInput marks input with no bytes to sniff.
var ErrEmptyInput = errors.New("empty input")

// File signatures.
var (
	sigZip = []byte{0x50, 0x4B, 0x03, 0x04} // OOXML workbook (zip container)
	sigOLE = []byte{0xD0, 0xCF, 0x11, 0xE0} // legacy binary workbook (OLE container)
)

// Options tunes loading behavior.
type Options struct {
	// CSVEncoding overrides encoding detection for CSV input ("" = detect).
	CSVEncoding string
}

// Load reads the file at path and builds a workbook.
func Load(path string, opts Options) (*models.Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadBytes(data, opts)
}

// LoadBytes sniffs the content signature and dispatches to the matching
// loader tier.
func LoadBytes(data []byte, opts Options) (*models.Workbook, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	switch {
	case bytes.HasPrefix(data, sigZip):
		return loadOOXML(data)
	case bytes.HasPrefix(data, sigOLE):
		return loadBIFF(data)
	default:
		return loadCSV(data, opts.CSVEncoding)
	}
}

// loadOOXML tries the structured parser first and degrades to the generic
// tabular parser, which reads workbooks the structured parser rejects at the
// cost of merges, styles and embedded-object counts.
func loadOOXML(data []byte) (*models.Workbook, error) {
	wb, err := loadExcelize(data)
	if err == nil {
		return wb, nil
	}
	log.WithError(err).Warn("structured parser failed, trying generic tabular parser")

	wb, fallbackErr := loadXlsxReader(data)
	if fallbackErr == nil {
		return wb, nil
	}
	log.WithError(fallbackErr).Warn("generic tabular parser failed")

	return nil, fmt.Errorf("all workbook parsers failed: %w", err)
}
