// Package parser scans the leading import block of a JavaScript or
// TypeScript module into import records.
//
// Only the contiguous run of import declarations at the top of the module is
// read. A hashbang line, directive prologues such as 'use client' and comments
// may precede it. The first statement that is not an import declaration ends
// the block.
package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/parsly"

	"github.com/siyuan-infoblox/pretty-import/pkg/imports"
)

// Block is the leading import block of a module
type Block struct {
	Records []*imports.Record
	Start   int // start of the first record's extent
	End     int // end of the last record's extent
	Next    int // start of the first statement or comment after the block, -1 at end of input
}

type comment struct {
	text  string
	start int
	end   int
}

// errImportEquals marks a TypeScript `import x = require(...)` declaration
var errImportEquals = errors.New("import equals declaration")

type parser struct {
	text   string
	cursor *parsly.Cursor
}

// Parse reads the import block of text. Records carry their spans and
// attached comments but are not classified yet.
func Parse(text string) (*Block, error) {
	p := &parser{text: text, cursor: parsly.NewCursor("", []byte(text), 0)}
	p.skipHashbang()

	block := &Block{Next: -1}
	var pending []comment
	for {
		pending = append(pending, skipTrivia(p.cursor)...)
		start := p.cursor.Pos
		if start >= p.cursor.InputSize {
			if len(pending) > 0 {
				block.Next = pending[0].start
			}
			break
		}

		if !p.atImport() {
			if len(block.Records) == 0 && p.directive() {
				pending = nil
				continue
			}
			block.Next = start
			if len(pending) > 0 {
				block.Next = pending[0].start
			}
			break
		}

		record, err := p.statement(start)
		if err == errImportEquals {
			block.Next = start
			if len(pending) > 0 {
				block.Next = pending[0].start
			}
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", p.line(start))
		}

		record.Extent = record.Span
		// comments above the first import belong to the file header
		if len(block.Records) > 0 && len(pending) > 0 {
			for _, c := range pending {
				record.Leading = append(record.Leading, c.text)
			}
			record.Extent.Start = pending[0].start
		}
		pending = nil

		if c, ok := p.trailingComment(); ok {
			record.Trailing = c.text
			record.Extent.End = c.end
		}
		block.Records = append(block.Records, record)
	}

	if n := len(block.Records); n > 0 {
		block.Start = block.Records[0].Extent.Start
		block.End = block.Records[n-1].Extent.End
	}
	return block, nil
}

func (p *parser) skipHashbang() {
	if !strings.HasPrefix(p.text, "#!") {
		return
	}
	if i := strings.IndexByte(p.text, '\n'); i >= 0 {
		p.cursor.Pos = i
		return
	}
	p.cursor.Pos = p.cursor.InputSize
}

// skipTrivia consumes whitespace and comments and returns the comments
func skipTrivia(cursor *parsly.Cursor) []comment {
	var comments []comment
	for {
		matched := cursor.MatchAny(Whitespace, LineComment, BlockComment)
		switch matched.Code {
		case whitespaceToken:
		case lineCommentToken, blockCommentToken:
			comments = append(comments, comment{
				text:  matched.Text(cursor),
				start: matched.Offset,
				end:   cursor.Pos,
			})
		default:
			return comments
		}
	}
}

// atImport reports whether an import declaration starts at the cursor.
// Dynamic import() calls and import.meta are expressions.
func (p *parser) atImport() bool {
	pos := p.cursor.Pos
	defer func() { p.cursor.Pos = pos }()

	matched := p.cursor.MatchOne(Identifier)
	if matched.Code != identifierToken || matched.Text(p.cursor) != "import" {
		return false
	}
	skipTrivia(p.cursor)
	if p.cursor.Pos >= p.cursor.InputSize {
		return false
	}
	switch p.cursor.Input[p.cursor.Pos] {
	case '(', '.':
		return false
	}
	return true
}

// directive consumes a directive prologue entry such as 'use strict'
func (p *parser) directive() bool {
	pos := p.cursor.Pos
	matched := p.cursor.MatchAny(SingleQuoted, DoubleQuoted)
	if matched.Code != singleQuoteToken && matched.Code != doubleQuoteToken {
		p.cursor.Pos = pos
		return false
	}
	p.optional(Semicolon)
	return true
}

func (p *parser) statement(start int) (*imports.Record, error) {
	p.cursor.MatchOne(Identifier)
	record := &imports.Record{}

	matched, err := p.expect(SingleQuoted, DoubleQuoted, Identifier, Star, BraceBlock)
	if err != nil {
		return nil, err
	}

	switch matched.Code {
	case singleQuoteToken, doubleQuoteToken:
		setSource(record, matched.Text(p.cursor))
		return p.finish(record, start)
	case identifierToken:
		if matched.Text(p.cursor) == "type" && p.typeModifier() {
			record.IsTypeOnly = true
			if matched, err = p.expect(Identifier, Star, BraceBlock); err != nil {
				return nil, err
			}
		}
	}

	if err = p.clause(record, matched); err != nil {
		return nil, err
	}
	if err = p.expectKeyword("from"); err != nil {
		return nil, err
	}
	if matched, err = p.expect(SingleQuoted, DoubleQuoted); err != nil {
		return nil, err
	}
	setSource(record, matched.Text(p.cursor))
	return p.finish(record, start)
}

// typeModifier tells whether the `type` just read starts a type-only import
// rather than being a default binding named type
func (p *parser) typeModifier() bool {
	pos := p.cursor.Pos
	defer func() { p.cursor.Pos = pos }()

	skipTrivia(p.cursor)
	matched := p.cursor.MatchAny(Identifier, Star, BraceBlock)
	switch matched.Code {
	case starToken, braceBlockToken:
		return true
	case identifierToken:
		if matched.Text(p.cursor) != "from" {
			return true
		}
		// `import type from 'x'` binds type; `import type from from 'x'` does not
		skipTrivia(p.cursor)
		next := p.cursor.MatchAny(SingleQuoted, DoubleQuoted)
		return next.Code != singleQuoteToken && next.Code != doubleQuoteToken
	}
	return false
}

func (p *parser) clause(record *imports.Record, matched *parsly.TokenMatch) error {
	switch matched.Code {
	case identifierToken:
		record.Specifiers = append(record.Specifiers, imports.Specifier{
			Name:  imports.DefaultName,
			Alias: matched.Text(p.cursor),
		})
		if p.peekByte() == '=' {
			return errImportEquals
		}
		if !p.optional(Comma) {
			return nil
		}
		next, err := p.expect(Star, BraceBlock)
		if err != nil {
			return err
		}
		return p.clause(record, next)
	case starToken:
		if err := p.expectKeyword("as"); err != nil {
			return err
		}
		local, err := p.expect(Identifier)
		if err != nil {
			return err
		}
		record.Specifiers = append(record.Specifiers, imports.Specifier{
			Name:  imports.NamespaceName,
			Alias: local.Text(p.cursor),
		})
	case braceBlockToken:
		specs, err := namedList(matched.Text(p.cursor))
		if err != nil {
			return err
		}
		record.EmptyNamed = len(specs) == 0 && len(record.Specifiers) == 0
		record.Specifiers = append(record.Specifiers, specs...)
	}
	return nil
}

// finish reads the optional import attributes and semicolon
func (p *parser) finish(record *imports.Record, start int) (*imports.Record, error) {
	pos := p.cursor.Pos
	skipTrivia(p.cursor)
	keyword := p.cursor.MatchOne(Identifier)
	if keyword.Code == identifierToken {
		if kw := keyword.Text(p.cursor); kw == "with" || kw == "assert" {
			skipTrivia(p.cursor)
			if attrs := p.cursor.MatchOne(BraceBlock); attrs.Code == braceBlockToken {
				record.Attributes = kw + " " + attrs.Text(p.cursor)
				pos = p.cursor.Pos
			}
		}
	}
	p.cursor.Pos = pos

	p.optional(Semicolon)
	record.Span = imports.Span{Start: start, End: p.cursor.Pos}
	return record, nil
}

// trailingComment consumes a comment that starts on the line the previous
// statement ended on and fits on that line
func (p *parser) trailingComment() (comment, bool) {
	pos := p.cursor.Pos
	p.cursor.MatchOne(Whitespace)
	if strings.ContainsRune(p.text[pos:p.cursor.Pos], '\n') {
		p.cursor.Pos = pos
		return comment{}, false
	}

	matched := p.cursor.MatchAny(LineComment, BlockComment)
	if matched.Code != lineCommentToken && matched.Code != blockCommentToken {
		p.cursor.Pos = pos
		return comment{}, false
	}
	text := matched.Text(p.cursor)
	if strings.ContainsRune(text, '\n') {
		p.cursor.Pos = pos
		return comment{}, false
	}
	return comment{text: text, start: matched.Offset, end: p.cursor.Pos}, true
}

func (p *parser) expect(tokens ...*parsly.Token) (*parsly.TokenMatch, error) {
	skipTrivia(p.cursor)
	matched := p.cursor.MatchAny(tokens...)
	if matched.Code == parsly.EOF || matched.Code == parsly.Invalid {
		return nil, p.cursor.NewError(tokens...)
	}
	// the cursor reuses its match for every call
	m := *matched
	return &m, nil
}

func (p *parser) expectKeyword(keyword string) error {
	pos := p.cursor.Pos
	matched, err := p.expect(Identifier)
	if err != nil {
		return errors.Wrapf(err, "expected %q", keyword)
	}
	if text := matched.Text(p.cursor); text != keyword {
		p.cursor.Pos = pos
		return errors.Errorf("expected %q, found %q", keyword, text)
	}
	return nil
}

func (p *parser) optional(token *parsly.Token) bool {
	pos := p.cursor.Pos
	skipTrivia(p.cursor)
	if matched := p.cursor.MatchOne(token); matched.Code == token.Code {
		return true
	}
	p.cursor.Pos = pos
	return false
}

func (p *parser) peekByte() byte {
	pos := p.cursor.Pos
	defer func() { p.cursor.Pos = pos }()
	skipTrivia(p.cursor)
	if p.cursor.Pos >= p.cursor.InputSize {
		return 0
	}
	return p.cursor.Input[p.cursor.Pos]
}

func (p *parser) line(offset int) int {
	return strings.Count(p.text[:offset], "\n") + 1
}

func setSource(record *imports.Record, quoted string) {
	record.Quote = quoted[0]
	record.Source = quoted[1 : len(quoted)-1]
}

// namedList parses the braced specifier list `{ a, type B, c as d, 'e-f' as e }`
func namedList(block string) ([]imports.Specifier, error) {
	cursor := parsly.NewCursor("", []byte(block[1:len(block)-1]), 0)

	var specs []imports.Specifier
	var words []string
	flush := func() error {
		if len(words) == 0 {
			return nil
		}
		spec, err := specifier(words)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
		words = nil
		return nil
	}

	for {
		skipTrivia(cursor)
		matched := cursor.MatchAny(Identifier, SingleQuoted, DoubleQuoted, Comma)
		switch matched.Code {
		case parsly.EOF:
			if err := flush(); err != nil {
				return nil, err
			}
			return specs, nil
		case commaToken:
			if err := flush(); err != nil {
				return nil, err
			}
		case identifierToken, singleQuoteToken, doubleQuoteToken:
			words = append(words, matched.Text(cursor))
		default:
			return nil, cursor.NewError(Identifier, SingleQuoted, DoubleQuoted, Comma)
		}
	}
}

func specifier(words []string) (imports.Specifier, error) {
	switch {
	case len(words) == 1:
		return imports.Specifier{Name: words[0]}, nil
	case len(words) == 2 && words[0] == "type":
		return imports.Specifier{Name: words[1], IsType: true}, nil
	case len(words) == 3 && words[1] == "as":
		return imports.Specifier{Name: words[0], Alias: words[2]}, nil
	case len(words) == 4 && words[0] == "type" && words[2] == "as":
		return imports.Specifier{Name: words[1], Alias: words[3], IsType: true}, nil
	}
	return imports.Specifier{}, errors.Errorf("malformed import specifier %q", strings.Join(words, " "))
}
