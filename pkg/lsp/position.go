package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/siyuan-infoblox/pretty-import/pkg/lint"
)

// document converts between byte offsets and LSP positions, which count
// characters in UTF-16 code units
type document struct {
	text    string
	locator *lint.Locator
}

func newDocument(text string) *document {
	return &document{text: text, locator: lint.NewLocator(text)}
}

func (d *document) position(offset int) protocol.Position {
	if offset > len(d.text) {
		offset = len(d.text)
	}
	pos := d.locator.Position(offset)
	start := d.locator.LineStart(pos.Line - 1)

	units := 0
	for _, r := range d.text[start:offset] {
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: protocol.UInteger(pos.Line - 1), Character: protocol.UInteger(units)}
}

func (d *document) offset(pos protocol.Position) int {
	i := d.locator.LineStart(int(pos.Line))
	if int(pos.Line) > d.lastLine() {
		return len(d.text)
	}

	units := 0
	for i < len(d.text) && units < int(pos.Character) {
		r, size := utf8.DecodeRuneInString(d.text[i:])
		if r == '\n' {
			break
		}
		units += utf16.RuneLen(r)
		i += size
	}
	return i
}

func (d *document) lastLine() int {
	return d.locator.Position(len(d.text)).Line - 1
}

func (d *document) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: d.position(start), End: d.position(end)}
}
