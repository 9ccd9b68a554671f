package overlay

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// parseSharedStrings walks xl/sharedStrings.xml and returns every string
// item as an ordered run list. Plain items become a single run with no
// script position.
func parseSharedStrings(r *zip.Reader) map[int][]models.RichTextRun {
	result := make(map[int][]models.RichTextRun)

	data := readZipFile(r, sharedStringsPart)
	if data == nil {
		return result
	}

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	index := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "si" {
			continue
		}
		result[index] = parseStringItem(decoder)
		index++
	}

	return result
}

// parseStringItem consumes one <si> element, collecting either its rich runs
// or its plain text.
func parseStringItem(decoder *xml.Decoder) []models.RichTextRun {
	var runs []models.RichTextRun
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "r":
				runs = append(runs, parseRun(decoder))
				depth--
			case "t":
				// Plain text item without runs.
				runs = append(runs, models.RichTextRun{Text: readElementText(decoder)})
				depth--
			case "rPh", "phoneticPr":
				// Phonetic hints are not part of the display text.
				skipElement(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return runs
}

// parseRun consumes one <r> element: its <t> text and the vertAlign, b and i
// properties under <rPr>.
func parseRun(decoder *xml.Decoder) models.RichTextRun {
	var run models.RichTextRun
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				run.Text += readElementText(decoder)
				depth--
			case "vertAlign":
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						switch attr.Value {
						case "superscript":
							run.VertAlign = models.VertAlignSuperscript
						case "subscript":
							run.VertAlign = models.VertAlignSubscript
						}
					}
				}
			case "b":
				run.Bold = boolProperty(t)
			case "i":
				run.Italic = boolProperty(t)
			}
		case xml.EndElement:
			depth--
		}
	}

	return run
}

// boolProperty reads an OOXML boolean property element: present means true
// unless val="0" or val="false".
func boolProperty(se xml.StartElement) bool {
	for _, attr := range se.Attr {
		if attr.Name.Local == "val" {
			return attr.Value != "0" && attr.Value != "false"
		}
	}
	return true
}

// parseCellStringMap walks one worksheet part and maps coordinates of
// shared-string cells (t="s") to their string identifiers.
func parseCellStringMap(r *zip.Reader, sheetPart string) map[models.Coord]int {
	result := make(map[models.Coord]int)

	data := readZipFile(r, sheetPart)
	if data == nil {
		return result
	}

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	var pendingCoord models.Coord
	pending := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "c":
				pending = false
				var ref, typ string
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "r":
						ref = attr.Value
					case "t":
						typ = attr.Value
					}
				}
				if typ == "s" {
					row, col := cellNameToCoord(ref)
					if row > 0 && col > 0 {
						pendingCoord = models.Coord{Row: row, Col: col}
						pending = true
					}
				}
			case "v":
				if pending {
					if id, err := strconv.Atoi(strings.TrimSpace(readElementText(decoder))); err == nil {
						result[pendingCoord] = id
					}
					pending = false
				}
			}
		case xml.EndElement:
			if t.Name.Local == "c" {
				pending = false
			}
		}
	}

	return result
}

// buildIndex assembles the full rich-text index for an archive: shared
// strings plus one cell-to-string mapping per sheet.
func buildIndex(r *zip.Reader) *models.RichTextIndex {
	index := &models.RichTextIndex{
		Strings:    parseSharedStrings(r),
		SheetCells: make(map[string]map[models.Coord]int),
	}
	for name, part := range sheetParts(r) {
		index.SheetCells[name] = parseCellStringMap(r, part)
	}
	return index
}
