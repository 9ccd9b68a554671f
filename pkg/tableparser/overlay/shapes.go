package overlay

import (
	"archive/zip"
	"encoding/xml"
	"sort"
	"strings"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// extractShapes scans every drawing part in the archive and returns the text
// carried by shape nodes. Text runs under one shape concatenate into a single
// entry; entries with identical text within the same drawing part collapse
// into one.
func extractShapes(r *zip.Reader) []models.ShapeText {
	var drawingParts []string
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "xl/drawings/drawing") && strings.HasSuffix(f.Name, ".xml") {
			drawingParts = append(drawingParts, f.Name)
		}
	}
	sort.Strings(drawingParts)

	var shapes []models.ShapeText
	for _, part := range drawingParts {
		shapes = append(shapes, parseDrawingPart(r, part)...)
	}
	return shapes
}

// parseDrawingPart walks one drawing XML part for <sp> shape elements.
func parseDrawingPart(r *zip.Reader, part string) []models.ShapeText {
	data := readZipFile(r, part)
	if data == nil {
		return nil
	}

	var shapes []models.ShapeText
	seen := make(map[string]bool)

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sp" {
			continue
		}
		kind, text := parseShapeElement(decoder)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		shapes = append(shapes, models.ShapeText{Kind: kind, Text: text, Source: part})
	}

	return shapes
}

// parseShapeElement consumes one <sp> element, concatenating all text runs
// and classifying the shape as a text box or a generic shape.
func parseShapeElement(decoder *xml.Decoder) (models.ShapeKind, string) {
	kind := models.ShapeOther
	var text strings.Builder
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
			case "cNvSpPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "txBox" && attr.Value == "1" {
						kind = models.ShapeTextbox
					}
				}
			case "prstGeom":
				for _, attr := range t.Attr {
					if attr.Name.Local == "prst" && attr.Value == "textBox" {
						kind = models.ShapeTextbox
					}
				}
			case "t":
				text.WriteString(readElementText(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return kind, strings.TrimSpace(text.String())
}
