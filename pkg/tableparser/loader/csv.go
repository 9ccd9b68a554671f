package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// csvSheetName names the single sheet a CSV source produces.
const csvSheetName = "Data"

// minDetectConfidence is the chardet confidence below which detection is
// distrusted and UTF-8 assumed.
const minDetectConfidence = 70

// loadCSV decodes CSV bytes, detecting the character encoding unless the
// caller pinned one, and builds a single-sheet workbook.
func loadCSV(data []byte, encodingName string) (*models.Workbook, error) {
	if encodingName == "" {
		encodingName = detectEncoding(data)
	}

	decoded, err := decodeCharset(data, encodingName)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", encodingName, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	sheet := models.NewSheet(csvSheetName)
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		rowNum++
		for colIdx, value := range record {
			if value == "" {
				continue
			}
			sheet.SetCell(rowNum, colIdx+1, models.NewStringCell(value))
		}
	}
	if rowNum == 0 {
		return nil, fmt.Errorf("csv input has no records")
	}

	log.WithField("encoding", encodingName).Debug("csv loaded")
	return &models.Workbook{Sheets: []*models.Sheet{sheet}}, nil
}

// detectEncoding guesses the character set of raw bytes, defaulting to UTF-8
// on low confidence.
func detectEncoding(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Confidence < minDetectConfidence || result.Charset == "" {
		return "UTF-8"
	}
	return result.Charset
}

// decodeCharset transforms bytes from the named IANA charset to UTF-8.
func decodeCharset(data []byte, name string) ([]byte, error) {
	if strings.EqualFold(name, "UTF-8") {
		return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return data, nil
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
