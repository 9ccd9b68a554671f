// Package overlay recovers formatting the tabular loaders lose by reading
// the source archive's XML directly: shared-string rich text runs, per-cell
// string indices, and free-floating shape text. Every pass is best-effort
// enrichment; structural absence yields empty results, never errors.
package overlay

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

const sharedStringsPart = "xl/sharedStrings.xml"

// readZipFile returns the named archive entry, or nil when absent.
func readZipFile(r *zip.Reader, name string) []byte {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}

// readElementText collects character data until the current element closes.
func readElementText(decoder *xml.Decoder) string {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String()
}

// skipElement consumes tokens until the current element closes.
func skipElement(decoder *xml.Decoder) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return
		}
		switch token.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

// resolveRelativePath resolves a relationship target against a base archive
// directory.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

// sheetParts maps sheet names to their worksheet part paths by joining
// xl/workbook.xml with xl/_rels/workbook.xml.rels.
func sheetParts(r *zip.Reader) map[string]string {
	result := make(map[string]string)

	workbookXML := readZipFile(r, "xl/workbook.xml")
	if workbookXML == nil {
		return result
	}
	relIDToName := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(workbookXML)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var name, rID string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				name = attr.Value
			case "id":
				rID = attr.Value
			}
		}
		if name != "" && rID != "" {
			relIDToName[rID] = name
		}
	}

	relsXML := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if relsXML == nil {
		return result
	}
	decoder = xml.NewDecoder(strings.NewReader(string(relsXML)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var rID, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				rID = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if name, ok := relIDToName[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
			result[name] = resolveRelativePath(target, "xl")
		}
	}

	return result
}

// cellNameToCoord parses an A1-style reference into 1-based row and column.
// Malformed references yield (0, 0).
func cellNameToCoord(name string) (row, col int) {
	i := 0
	for i < len(name) {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			break
		}
		col = col*26 + int(c-'A'+1)
		i++
	}
	if i == 0 || i == len(name) {
		return 0, 0
	}
	for ; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' {
			return 0, 0
		}
		row = row*10 + int(c-'0')
	}
	return row, col
}
