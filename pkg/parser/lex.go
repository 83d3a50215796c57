package parser

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken int = iota
	lineCommentToken
	blockCommentToken
	identifierToken
	singleQuoteToken
	doubleQuoteToken
	braceBlockToken
	starToken
	commaToken
	semicolonToken
)

var Whitespace = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var LineComment = parsly.NewToken(lineCommentToken, "// comment", &lineComment{})
var BlockComment = parsly.NewToken(blockCommentToken, "/* comment */", matcher.NewSeqBlock("/*", "*/"))
var Identifier = parsly.NewToken(identifierToken, "Identifier", &identifier{})
var SingleQuoted = parsly.NewToken(singleQuoteToken, "'string'", matcher.NewBlock('\'', '\'', '\\'))
var DoubleQuoted = parsly.NewToken(doubleQuoteToken, "\"string\"", matcher.NewBlock('"', '"', '\\'))
var BraceBlock = parsly.NewToken(braceBlockToken, "{ ... }", matcher.NewBlock('{', '}', '\\'))
var Star = parsly.NewToken(starToken, "*", matcher.NewByte('*'))
var Comma = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
var Semicolon = parsly.NewToken(semicolonToken, ";", matcher.NewByte(';'))

// lineComment matches `//` up to, but not including, the end of the line
type lineComment struct{}

func (l *lineComment) Match(cursor *parsly.Cursor) (matched int) {
	if cursor.Pos+1 >= cursor.InputSize || cursor.Input[cursor.Pos] != '/' || cursor.Input[cursor.Pos+1] != '/' {
		return 0
	}
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if c := cursor.Input[i]; c == '\n' || c == '\r' {
			return matched
		}
		matched++
	}
	return matched
}

// identifier matches an ECMAScript identifier name. Bytes >= 0x80 are
// accepted so that non-ASCII names stay in one token.
type identifier struct{}

func (w *identifier) Match(cursor *parsly.Cursor) (matched int) {
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		c := cursor.Input[i]
		if isIdentStart(c) || (matched > 0 && c >= '0' && c <= '9') {
			matched++
			continue
		}
		return matched
	}
	return matched
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$' || c >= 0x80
}
