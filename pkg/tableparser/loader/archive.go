package loader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// hasVBAProject reports whether the archive embeds a macro project.
func hasVBAProject(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == "xl/vbaProject.bin" {
			return true
		}
	}
	return false
}

// chartCounts maps sheet names to the number of charts anchored on them.
// Charts live in drawing parts as graphicFrame elements, so the count walks
// workbook relationships to each sheet's drawing part and counts frames
// there.
func chartCounts(data []byte) map[string]int {
	result := make(map[string]int)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return result
	}

	for sheetName, sheetPart := range worksheetParts(zr) {
		relsPart := strings.Replace(sheetPart, "worksheets/", "worksheets/_rels/", 1) + ".rels"
		drawingPart := drawingTarget(readArchiveFile(zr, relsPart))
		if drawingPart == "" {
			continue
		}
		if n := countGraphicFrames(readArchiveFile(zr, drawingPart)); n > 0 {
			result[sheetName] = n
		}
	}

	return result
}

// worksheetParts maps sheet names to worksheet part paths via xl/workbook.xml
// and its relationship part.
func worksheetParts(zr *zip.Reader) map[string]string {
	result := make(map[string]string)

	relIDToName := make(map[string]string)
	decoder := xml.NewDecoder(bytes.NewReader(readArchiveFile(zr, "xl/workbook.xml")))
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

	decoder = xml.NewDecoder(bytes.NewReader(readArchiveFile(zr, "xl/_rels/workbook.xml.rels")))
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
		name, ok := relIDToName[rID]
		if !ok || !strings.Contains(strings.ToLower(target), "worksheet") {
			continue
		}
		result[name] = resolveArchivePath(target, "xl")
	}

	return result
}

// drawingTarget returns the drawing part referenced by a worksheet
// relationship part, or "".
func drawingTarget(relsXML []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(relsXML))
	for {
		token, err := decoder.Token()
		if err != nil {
			return ""
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var relType, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Type":
				relType = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if strings.Contains(strings.ToLower(relType), "drawing") {
			return resolveArchivePath(target, "xl/drawings")
		}
	}
}

// countGraphicFrames counts graphicFrame elements in a drawing part. Each
// anchored chart occupies one frame.
func countGraphicFrames(drawingXML []byte) int {
	count := 0
	decoder := xml.NewDecoder(bytes.NewReader(drawingXML))
	for {
		token, err := decoder.Token()
		if err != nil {
			return count
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "graphicFrame" {
			count++
		}
	}
}

func readArchiveFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
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

func resolveArchivePath(target, baseDir string) string {
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
