package parser

import (
	"strconv"

	"github.com/pixelscript/pixelscript/apierr"
	"github.com/pixelscript/pixelscript/lexer"
	"github.com/pixelscript/pixelscript/span"
)

// Parser converts a token stream into a Program AST. It collects
// errors rather than panicking on the first one, following go-mix's
// parser.Parser — but unlike go-mix it has no constant-folding
// environment: pixelscript programs are re-parsed fresh on every edit
// and carry no parser-time variable table.
type Parser struct {
	lx   *lexer.Lexer
	cur  lexer.Token
	next lexer.Token

	errors []*apierr.Error
}

// New creates a Parser for src and primes its two-token lookahead.
func New(src string) *Parser {
	p := &Parser{lx: lexer.New(src)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lx.Next()
}

func (p *Parser) addErrorAt(sp span.Span, format string, a ...interface{}) {
	p.errors = append(p.errors, apierr.NewParserError(sp, format, a...))
}

func (p *Parser) curSpan() span.Span { return p.cur.Span }

// expect checks that cur.Type == want. On a match it advances past the
// token and returns true; otherwise it appends an error and returns
// false without advancing.
func (p *Parser) expect(want lexer.TokenType) bool {
	if p.cur.Type != want {
		p.addErrorAt(p.curSpan(), "expected %q, got %q", want, p.cur.Type)
		return false
	}
	p.advance()
	return true
}

// Parse parses the entire token stream into a Program. It returns the
// first collected error, if any; per the core API (parse replaces the
// current program only on success), the caller should keep its
// previous program when an error is returned.
func Parse(src string) (*Program, *apierr.Error) {
	p := New(src)
	prog := p.parseProgram()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return prog, nil
}

func (p *Parser) parseProgram() *Program {
	start := p.curSpan()
	prog := &Program{}

	seen := map[string]bool{}
	for p.cur.Type == lexer.FUNCTION {
		fn := p.parseFunctionDef()
		if fn != nil {
			if seen[fn.Name] {
				p.addErrorAt(fn.Sp, "duplicate function name %q", fn.Name)
			}
			seen[fn.Name] = true
			prog.Functions = append(prog.Functions, fn)
		}
	}

	prog.Body = p.parseStatements(lexer.EOF)
	end := p.curSpan()
	prog.Sp = span.Join(start, end)
	return prog
}

func (p *Parser) parseFunctionDef() *FunctionDef {
	start := p.curSpan()
	p.advance() // consume "function"

	if p.cur.Type != lexer.IDENT {
		p.addErrorAt(p.curSpan(), "expected function name, got %q", p.cur.Type)
		return nil
	}
	name := p.cur.Literal
	p.advance()

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	var params []string
	seenParams := map[string]bool{}
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.IDENT {
			p.addErrorAt(p.curSpan(), "expected parameter name, got %q", p.cur.Type)
			return nil
		}
		if seenParams[p.cur.Literal] {
			p.addErrorAt(p.curSpan(), "duplicate parameter name %q in function %q", p.cur.Literal, name)
		}
		seenParams[p.cur.Literal] = true
		params = append(params, p.cur.Literal)
		p.advance()
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	body := p.parseStatements(lexer.RBRACE)
	end := p.curSpan()
	p.expect(lexer.RBRACE)

	return &FunctionDef{Name: name, Params: params, Body: body, Sp: span.Join(start, end)}
}

// parseStatements parses statements until the current token is
// terminator (RBRACE for a block, EOF for the top-level body).
func (p *Parser) parseStatements(terminator lexer.TokenType) []Statement {
	var stmts []Statement
	for p.cur.Type != terminator && p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt == nil {
			// Parse error already recorded; advance to avoid looping
			// forever on the same malformed token.
			p.advance()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) parseStatement() Statement {
	switch p.cur.Type {
	case lexer.IDENT:
		return p.parseAssignment()
	case lexer.IF:
		return p.parseIf()
	case lexer.REPEAT:
		return p.parseRepeat()
	case lexer.RETURN:
		return p.parseReturn()
	default:
		p.addErrorAt(p.curSpan(), "expected a statement, got %q", p.cur.Type)
		return nil
	}
}

func (p *Parser) parseAssignment() Statement {
	start := p.curSpan()
	name := p.cur.Literal
	p.advance() // ident

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	value := p.parseExpr(precNone)
	end := p.curSpan()
	p.expect(lexer.SEMI)
	return &Assignment{Name: name, Value: value, Sp: span.Join(start, end)}
}

func (p *Parser) parseReturn() Statement {
	start := p.curSpan()
	p.advance() // "return"
	value := p.parseExpr(precNone)
	if value == nil {
		return nil
	}
	end := value.Span()
	p.expect(lexer.SEMI)
	return &Return{Value: value, Sp: span.Join(start, end)}
}

func (p *Parser) parseIf() Statement {
	start := p.curSpan()
	p.advance() // "if"
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpr(precNone)
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	then := p.parseStatements(lexer.RBRACE)
	end := p.curSpan()
	p.expect(lexer.RBRACE)

	var elseBlock []Statement
	if p.cur.Type == lexer.ELSE {
		p.advance()
		if p.cur.Type == lexer.IF {
			nested := p.parseIf()
			if nested != nil {
				elseBlock = []Statement{nested}
				end = nested.Span()
			}
		} else if p.expect(lexer.LBRACE) {
			elseBlock = p.parseStatements(lexer.RBRACE)
			end = p.curSpan()
			p.expect(lexer.RBRACE)
		}
	}

	return &If{Cond: cond, Then: then, Else: elseBlock, Sp: span.Join(start, end)}
}

func (p *Parser) parseRepeat() Statement {
	start := p.curSpan()
	p.advance() // "repeat"
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	if p.cur.Type != lexer.IDENT {
		p.addErrorAt(p.curSpan(), "expected counter identifier, got %q", p.cur.Type)
		return nil
	}
	counter := p.cur.Literal
	p.advance()
	if !p.expect(lexer.UNTIL) {
		return nil
	}
	if p.cur.Type != lexer.NUMBER {
		p.addErrorAt(p.curSpan(), "repeat bound must be a number literal, got %q", p.cur.Type)
		return nil
	}
	bound, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		p.addErrorAt(p.curSpan(), "malformed number literal %q", p.cur.Literal)
		return nil
	}
	p.advance()
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	body := p.parseStatements(lexer.RBRACE)
	end := p.curSpan()
	p.expect(lexer.RBRACE)

	return &Repeat{Counter: counter, Bound: bound, Body: body, Sp: span.Join(start, end)}
}

// parseExpr implements precedence climbing: it parses a unary
// (prefix+postfix) expression, then repeatedly folds in binary
// operators whose precedence is at least minPrec, recursing with
// prec+1 for left-associative operators and prec for the single
// right-associative one (**).
func (p *Parser) parseExpr(minPrec int) Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		info, ok := binaryOps[p.cur.Type]
		if !ok || info.prec < minPrec {
			return left
		}
		p.advance()
		nextMin := info.prec + 1
		if info.right {
			nextMin = info.prec
		}
		right := p.parseExpr(nextMin)
		if right == nil {
			return left
		}
		left = &Binary{Op: info.op, Left: left, Right: right, Sp: span.Join(left.Span(), right.Span())}
	}
}

func (p *Parser) parseUnary() Expr {
	start := p.curSpan()
	switch p.cur.Type {
	case lexer.MINUS:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &Unary{Op: OpNeg, Operand: operand, Sp: span.Join(start, operand.Span())}
	case lexer.BANG:
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &Unary{Op: OpNot, Operand: operand, Sp: span.Join(start, operand.Span())}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for p.cur.Type == lexer.LBRACKET {
		p.advance()
		idx := p.parseExpr(precNone)
		end := p.curSpan()
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		expr = &Index{Base: expr, Idx: idx, Sp: span.Join(expr.Span(), end)}
	}
	return expr
}

func (p *Parser) parsePrimary() Expr {
	start := p.curSpan()
	switch p.cur.Type {
	case lexer.NUMBER:
		val, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			p.addErrorAt(start, "malformed number literal %q", p.cur.Literal)
			return nil
		}
		p.advance()
		return &NumberLit{Value: val, Sp: start}

	case lexer.IDENT:
		name := p.cur.Literal
		p.advance()
		if p.cur.Type == lexer.LPAREN {
			return p.parseCall(name, start)
		}
		return &Ident{Name: name, Sp: start}

	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr(precNone)
		p.expect(lexer.RPAREN)
		return inner

	case lexer.LBRACKET:
		return p.parseSeqLit(start)

	default:
		p.addErrorAt(start, "unexpected token %q in expression", p.cur.Type)
		return nil
	}
}

func (p *Parser) parseCall(name string, start span.Span) Expr {
	p.advance() // consume "("
	var args []Expr
	for p.cur.Type != lexer.RPAREN && p.cur.Type != lexer.EOF {
		arg := p.parseExpr(precNone)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.curSpan()
	p.expect(lexer.RPAREN)
	return &Call{Name: name, Args: args, Sp: span.Join(start, end)}
}

func (p *Parser) parseSeqLit(start span.Span) Expr {
	p.advance() // consume "["
	var elems []Expr
	for p.cur.Type != lexer.RBRACKET && p.cur.Type != lexer.EOF {
		el := p.parseExpr(precNone)
		if el == nil {
			return nil
		}
		elems = append(elems, el)
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	end := p.curSpan()
	p.expect(lexer.RBRACKET)
	return &SeqLit{Elements: elems, Sp: span.Join(start, end)}
}
