// Package patch rewrites the interior of div regions inside an HTML document
// using plain text surgery. Markup outside the located region is never
// touched, so hand-authored formatting survives every run.
package patch

import (
	"fmt"
	"strings"

	"catalog_sync/internal/domain"
)

const (
	openTag  = "<div"
	closeTag = "</div>"
	indentBy = "  "
	gridOpen = `<div class="products-grid">`
)

// Bounds delimits a located region. Start is the offset of its opening tag,
// Content the first byte after the opening tag and End the first byte after
// the matching closing tag.
type Bounds struct {
	Start   int
	Content int
	End     int
}

// Locator finds a region in a document.
type Locator interface {
	Locate(doc string) (Bounds, error)
	String() string
}

// ClassLocator selects the Occurrence-th (1-based) `<div class="Class">`.
type ClassLocator struct {
	Class      string
	Occurrence int
}

func (l ClassLocator) String() string {
	return fmt.Sprintf("%s#%d", l.Class, l.occurrence())
}

func (l ClassLocator) occurrence() int {
	if l.Occurrence < 1 {
		return 1
	}
	return l.Occurrence
}

func (l ClassLocator) Locate(doc string) (Bounds, error) {
	marker := `<div class="` + l.Class + `">`
	pos, from := -1, 0
	for i := 0; i < l.occurrence(); i++ {
		next := strings.Index(doc[from:], marker)
		if next < 0 {
			return Bounds{}, fmt.Errorf("%w: %s", domain.ErrRegionNotFound, l)
		}
		pos = from + next
		from = pos + len(marker)
	}
	return closeRegion(doc, pos, pos+len(marker))
}

// PageLocator selects the products grid of the page whose container carries
// id="Page": the first products-grid div after the container's opening tag.
type PageLocator struct {
	Page string
}

func (l PageLocator) String() string { return "page:" + l.Page }

func (l PageLocator) Locate(doc string) (Bounds, error) {
	idPos := strings.Index(doc, `id="`+l.Page+`"`)
	if idPos < 0 {
		return Bounds{}, fmt.Errorf("%w: page %s", domain.ErrRegionNotFound, l.Page)
	}
	container := strings.LastIndex(doc[:idPos], openTag)
	if container < 0 {
		return Bounds{}, fmt.Errorf("%w: container of page %s", domain.ErrRegionNotFound, l.Page)
	}
	grid := strings.Index(doc[container:], gridOpen)
	if grid < 0 {
		return Bounds{}, fmt.Errorf("%w: products grid of page %s", domain.ErrRegionNotFound, l.Page)
	}
	start := container + grid
	return closeRegion(doc, start, start+len(gridOpen))
}

// closeRegion walks forward from content counting nested divs until the one
// opened at start is closed.
func closeRegion(doc string, start, content int) (Bounds, error) {
	depth, idx := 1, content
	for depth > 0 {
		nextClose := strings.Index(doc[idx:], closeTag)
		if nextClose < 0 {
			return Bounds{}, fmt.Errorf("%w: no closing tag for region at offset %d", domain.ErrUnbalanced, start)
		}
		nextClose += idx
		nextOpen := indexOpenTag(doc, idx)
		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			idx = nextOpen + len(openTag)
			continue
		}
		depth--
		idx = nextClose + len(closeTag)
	}
	return Bounds{Start: start, Content: content, End: idx}, nil
}

// indexOpenTag returns the offset of the next `<div` that really opens a div
// element (not `<divider` and the like), or -1.
func indexOpenTag(doc string, from int) int {
	for from < len(doc) {
		i := strings.Index(doc[from:], openTag)
		if i < 0 {
			return -1
		}
		i += from
		end := i + len(openTag)
		if end >= len(doc) {
			return -1
		}
		switch doc[end] {
		case ' ', '\t', '\n', '\r', '>', '/':
			return i
		}
		from = end
	}
	return -1
}

// indentAt returns the run of spaces and tabs that starts the line holding pos.
func indentAt(doc string, pos int) string {
	lineStart := strings.LastIndexByte(doc[:pos], '\n') + 1
	end := lineStart
	for end < pos && (doc[end] == ' ' || doc[end] == '\t') {
		end++
	}
	return doc[lineStart:end]
}

// ReplaceInner swaps the interior of the located region for blocks. Every
// injected line is indented one step deeper than the region's opening line
// and the closing tag is realigned with it. With no blocks the interior
// becomes a newline plus that indentation.
func ReplaceInner(doc string, loc Locator, blocks []string) (string, error) {
	b, err := loc.Locate(doc)
	if err != nil {
		return doc, err
	}
	indent := indentAt(doc, b.Start)
	closing := b.End - len(closeTag)

	var sb strings.Builder
	sb.Grow(len(doc))
	sb.WriteString(doc[:b.Content])
	sb.WriteByte('\n')
	if len(blocks) > 0 {
		inner := indent + indentBy
		first := true
		for _, block := range blocks {
			for _, line := range strings.Split(block, "\n") {
				if !first {
					sb.WriteByte('\n')
				}
				first = false
				sb.WriteString(inner)
				sb.WriteString(line)
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(indent)
	sb.WriteString(doc[closing:])
	return sb.String(), nil
}

// EnsureSnippet inserts snippet in front of anchor unless the document already
// contains it. A document without the anchor is returned unchanged.
func EnsureSnippet(doc, snippet, anchor string) string {
	if strings.Contains(doc, snippet) || !strings.Contains(doc, anchor) {
		return doc
	}
	return strings.Replace(doc, anchor, snippet+"\n        "+anchor, 1)
}
