package overlay

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

var log = logrus.WithField("component", "overlay")

// cacheSize bounds the number of archives whose parse results are retained.
const cacheSize = 16

type cacheEntry struct {
	hash   [sha256.Size]byte
	index  *models.RichTextIndex
	shapes []models.ShapeText
}

// Parser reads overlay data from spreadsheet archives. Parse results are
// memoized per path in a bounded cache keyed by content hash: parsing a path
// again after its bytes changed re-reads the archive. A Parser is not safe
// for concurrent use; give each worker its own.
type Parser struct {
	cache *lru.Cache[string, *cacheEntry]
}

// NewParser returns a parser with an empty cache.
func NewParser() *Parser {
	cache, _ := lru.New[string, *cacheEntry](cacheSize)
	return &Parser{cache: cache}
}

// RichTextIndex returns the rich-text index for the archive at path, or nil
// when the file is not a readable OOXML archive. Absence of any part yields
// an empty index, not an error.
func (p *Parser) RichTextIndex(path string) *models.RichTextIndex {
	entry := p.load(path)
	if entry == nil {
		return nil
	}
	return entry.index
}

// Shapes returns the free-floating shape text found in the archive at path.
func (p *Parser) Shapes(path string) []models.ShapeText {
	entry := p.load(path)
	if entry == nil {
		return nil
	}
	return entry.shapes
}

// SharedStrings returns the shared-string run table for the archive at path.
func (p *Parser) SharedStrings(path string) map[int][]models.RichTextRun {
	index := p.RichTextIndex(path)
	if index == nil {
		return map[int][]models.RichTextRun{}
	}
	return index.Strings
}

// CellStringMap returns the coordinate-to-string-identifier mapping for one
// sheet, restricted to string-typed cells.
func (p *Parser) CellStringMap(path, sheet string) map[models.Coord]int {
	index := p.RichTextIndex(path)
	if index == nil || index.SheetCells[sheet] == nil {
		return map[models.Coord]int{}
	}
	return index.SheetCells[sheet]
}

func (p *Parser) load(path string) *cacheEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Debug("overlay source unreadable")
		return nil
	}
	hash := sha256.Sum256(data)

	if entry, ok := p.cache.Get(path); ok && entry.hash == hash {
		return entry
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.WithError(err).Debug("overlay source is not an archive")
		return nil
	}

	entry := &cacheEntry{
		hash:   hash,
		index:  buildIndex(zr),
		shapes: extractShapes(zr),
	}
	p.cache.Add(path, entry)
	return entry
}
