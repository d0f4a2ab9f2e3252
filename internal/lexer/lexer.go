package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"

	"github.com/KimNorgaard/go-acf/internal/token"
)

// Lexer holds the state for tokenizing ACF source.
type Lexer struct {
	input    []byte
	filename string
	pos      hcl.Pos // position of ch
	ch       rune
	width    int // byte width of ch
}

// New creates and returns a new Lexer. The filename is only used to
// qualify token ranges and may be empty.
func New(input []byte, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		pos:      hcl.Pos{Line: 1, Column: 1, Byte: 0},
	}
	l.readRune()
	return l
}

// NextToken scans the input and returns the next token.
// Whitespace between tokens is insignificant and never returned.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	start := l.pos
	var tok token.Token

	switch l.ch {
	case -1:
		tok.Type = token.EOF
	case '{', '}':
		tok.Literal = string(l.ch)
		tok.Type = token.Type(tok.Literal)
		l.advance()
	case '"':
		lit, ok := l.readString()
		if !ok {
			tok.Type = token.ILLEGAL
		} else {
			tok.Type = token.STRING
		}
		tok.Literal = lit
	default:
		tok.Type = token.ILLEGAL
		if l.ch == utf8.RuneError && l.width == 1 {
			tok.Literal = "invalid utf-8"
		} else {
			tok.Literal = fmt.Sprintf("unexpected character %q", l.ch)
		}
		l.advance()
	}

	tok.Range = hcl.Range{Filename: l.filename, Start: start, End: l.pos}
	return tok
}

func (l *Lexer) readRune() {
	if l.pos.Byte >= len(l.input) {
		l.ch = -1
		l.width = 0
		return
	}
	l.ch, l.width = utf8.DecodeRune(l.input[l.pos.Byte:])
}

func (l *Lexer) advance() {
	if l.ch == -1 {
		return
	}
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Byte += l.width
	l.readRune()
}

func (l *Lexer) skipWhitespace() {
	for l.ch != -1 && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

// readString consumes a double-quoted literal. There are no escape
// sequences: a backslash is an ordinary character and the literal ends at
// the very next quote, line breaks included.
func (l *Lexer) readString() (string, bool) {
	l.advance() // consume opening quote
	start := l.pos.Byte
	for l.ch != '"' {
		if l.ch == -1 {
			return "unterminated string literal", false
		}
		l.advance()
	}
	lit := string(l.input[start:l.pos.Byte])
	l.advance() // consume closing quote
	return lit, true
}
