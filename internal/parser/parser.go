package parser

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/KimNorgaard/go-acf/internal/ast"
	"github.com/KimNorgaard/go-acf/internal/lexer"
	"github.com/KimNorgaard/go-acf/internal/token"
)

// DefaultMaxDepth is the block nesting limit used when Config.MaxDepth is
// not positive.
const DefaultMaxDepth = 1000

// Config controls optional parser behavior. The zero value is ready to use.
type Config struct {
	// MaxDepth bounds block nesting. Top-level blocks are at depth 1.
	MaxDepth int

	// SingleRoot rejects documents with more than one top-level block.
	SingleRoot bool

	// OnDuplicate, if set, is called for every key that overwrites an
	// earlier value in the same block. rng is the range of the later key.
	OnDuplicate func(block *ast.Block, key string, rng hcl.Range)
}

// Parser holds the state of the parser.
type Parser struct {
	l   *lexer.Lexer
	cfg Config

	curToken  token.Token
	peekToken token.Token
}

// expression is a single key/value pair before it is folded into its
// block's mapping.
type expression struct {
	key   string
	value string
	rng   hcl.Range // range of the key literal
}

// New creates a new parser.
func New(l *lexer.Lexer, cfg Config) *Parser {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	p := &Parser{l: l, cfg: cfg}

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses the whole input. It returns either a complete document or
// a *SyntaxError, never both.
func (p *Parser) Parse() (*ast.Document, error) {
	doc := &ast.Document{Blocks: []*ast.Block{}}

	for !p.curTokenIs(token.EOF) {
		if p.cfg.SingleRoot && len(doc.Blocks) == 1 {
			return nil, p.errorf(ErrMultipleRoots, p.curToken.Range,
				"unexpected %s after root block %q; only one top-level block is allowed",
				p.curToken.Describe(), doc.Blocks[0].Name)
		}
		block, err := p.parseBlock(1)
		if err != nil {
			return nil, err
		}
		doc.Blocks = append(doc.Blocks, block)
	}

	return doc, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// The contract for all parse functions is that they are entered with
// p.curToken being the first token of the construct, and they return with
// p.curToken pointing to the token after the construct.

func (p *Parser) parseBlock(depth int) (*ast.Block, error) {
	if depth > p.cfg.MaxDepth {
		return nil, p.errorf(ErrTooDeep, p.curToken.Range,
			"blocks are nested deeper than the maximum depth of %d", p.cfg.MaxDepth)
	}

	if !p.curTokenIs(token.STRING) {
		return nil, p.unexpected("block name")
	}
	nameTok := p.curToken
	p.nextToken()

	if !p.curTokenIs(token.LBRACE) {
		return nil, p.unexpected(fmt.Sprintf("'{' after block name %q", nameTok.Literal))
	}
	open := p.curToken
	p.nextToken()

	block := &ast.Block{
		Name:        nameTok.Literal,
		Expressions: map[string]string{},
		Children:    []*ast.Block{},
		NameRange:   nameTok.Range,
	}

	var exprs []expression
	for p.curTokenIs(token.STRING) && p.peekTokenIs(token.STRING) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	for p.curTokenIs(token.STRING) {
		switch p.peekToken.Type {
		case token.LBRACE:
			child, err := p.parseBlock(depth + 1)
			if err != nil {
				return nil, err
			}
			block.Children = append(block.Children, child)
		case token.STRING:
			// Only reachable once a child has been parsed: leading pairs were
			// consumed above.
			return nil, p.errorf(ErrExpressionAfterBlock, p.curToken.Range,
				"key %q in block %q follows a nested block; key/value pairs must precede nested blocks",
				p.curToken.Literal, block.Name)
		default:
			name := p.curToken.Literal
			p.nextToken()
			return nil, p.unexpected(fmt.Sprintf("a value or '{' after %q", name))
		}
	}

	if p.curTokenIs(token.ILLEGAL) {
		return nil, p.unexpected("'}'")
	}
	if p.curTokenIs(token.LBRACE) {
		if len(block.Children) == 0 && len(exprs) > 0 {
			last := exprs[len(exprs)-1]
			return nil, p.errorf(ErrSyntax, p.curToken.Range,
				"unexpected '{' after value for key %q; a nested block needs a single name literal", last.key)
		}
		return nil, p.errorf(ErrSyntax, p.curToken.Range,
			"unexpected '{' in block %q; a nested block needs a name", block.Name)
	}
	if !p.curTokenIs(token.RBRACE) {
		rng := hcl.Range{
			Filename: open.Range.Filename,
			Start:    open.Range.Start,
			End:      p.curToken.Range.Start,
		}
		return nil, p.errorf(ErrExpectedClosingBrace, rng,
			"expected '}' to close block %q, got %s", block.Name, p.curToken.Describe())
	}
	block.Range = hcl.RangeBetween(nameTok.Range, p.curToken.Range)
	p.nextToken()

	for _, expr := range exprs {
		if _, exists := block.Expressions[expr.key]; exists && p.cfg.OnDuplicate != nil {
			p.cfg.OnDuplicate(block, expr.key, expr.rng)
		}
		block.Expressions[expr.key] = expr.value
	}

	return block, nil
}

func (p *Parser) parseExpression() (expression, error) {
	if !p.curTokenIs(token.STRING) {
		return expression{}, p.unexpected("key")
	}
	keyTok := p.curToken
	p.nextToken()

	if !p.curTokenIs(token.STRING) {
		return expression{}, p.unexpected(fmt.Sprintf("value for key %q", keyTok.Literal))
	}
	expr := expression{key: keyTok.Literal, value: p.curToken.Literal, rng: keyTok.Range}
	p.nextToken()

	return expr, nil
}

// unexpected reports the current token as not being what was wanted. An
// ILLEGAL token carries the lexer's own message.
func (p *Parser) unexpected(want string) error {
	if p.curTokenIs(token.ILLEGAL) {
		return p.errorf(ErrSyntax, p.curToken.Range, "%s", p.curToken.Literal)
	}
	return p.errorf(ErrSyntax, p.curToken.Range, "expected %s, got %s", want, p.curToken.Describe())
}

func (p *Parser) errorf(kind ErrorKind, rng hcl.Range, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Range: rng, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}
