package token

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Range   hcl.Range
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of file

	// Literals
	STRING Type = "STRING" // "AppState"

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
)

// Describe returns a short human-readable description of the token,
// suitable for use in syntax error messages.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case STRING:
		return fmt.Sprintf("string %q", t.Literal)
	case LBRACE, RBRACE:
		return fmt.Sprintf("'%s'", t.Type)
	case ILLEGAL:
		return t.Literal
	default:
		return string(t.Type)
	}
}
