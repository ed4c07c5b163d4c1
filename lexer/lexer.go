package lexer

import (
	"unicode"

	"github.com/pixelscript/pixelscript/span"
)

// Lexer scans pixelscript source text one byte at a time, tracking
// line and column so every Token carries an accurate Span.
type Lexer struct {
	src       string
	current   byte
	position  int
	srcLength int
	line      int
	col       int
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	lx := &Lexer{src: src, srcLength: len(src), line: 1, col: 1}
	if lx.srcLength > 0 {
		lx.current = src[0]
	}
	return lx
}

func (lx *Lexer) pos() span.Pos { return span.Pos{Line: lx.line, Col: lx.col} }

func (lx *Lexer) peek() byte {
	if lx.position+1 >= lx.srcLength {
		return 0
	}
	return lx.src[lx.position+1]
}

func (lx *Lexer) advance() {
	if lx.current == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	lx.position++
	if lx.position >= lx.srcLength {
		lx.current = 0
		lx.position = lx.srcLength
	} else {
		lx.current = lx.src[lx.position]
	}
}

func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(lx.current):
			lx.advance()
		case lx.current == '/' && lx.peek() == '/':
			for lx.current != '\n' && lx.current != 0 {
				lx.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func (lx *Lexer) make(typ TokenType, literal string, start span.Pos) Token {
	return Token{Type: typ, Literal: literal, Span: span.Span{Start: start, End: lx.pos()}}
}

// two recognises a two-character operator (current + peek): if the peek
// matches want it advances past the first character and returns
// twoType, otherwise it returns oneType without advancing. Next then
// consumes the remaining character either way.
func (lx *Lexer) two(want byte, twoType, oneType TokenType) TokenType {
	if lx.peek() == want {
		lx.advance()
		return twoType
	}
	return oneType
}

// Next returns the next token in the stream, or an EOF token once the
// source is exhausted.
func (lx *Lexer) Next() Token {
	lx.skipWhitespaceAndComments()
	start := lx.pos()

	if lx.current == 0 {
		return lx.make(EOF, "", start)
	}

	switch c := lx.current; {
	case isDigit(c):
		return lx.readNumber(start)
	case isAlpha(c):
		return lx.readIdent(start)
	}

	var typ TokenType

	switch lx.current {
	case '+':
		typ = PLUS
	case '-':
		typ = MINUS
	case '*':
		typ = lx.two('*', POW, STAR)
	case '/':
		typ = SLASH
	case '%':
		typ = PERCENT
	case '&':
		typ = lx.two('&', ANDAND, AMP)
	case '|':
		typ = lx.two('|', OROR, PIPE)
	case '^':
		typ = CARET
	case '<':
		if lx.peek() == '<' {
			lx.advance()
			typ = SHL
		} else if lx.peek() == '=' {
			lx.advance()
			typ = LE
		} else {
			typ = LT
		}
	case '>':
		if lx.peek() == '>' {
			lx.advance()
			typ = SHR
		} else if lx.peek() == '=' {
			lx.advance()
			typ = GE
		} else {
			typ = GT
		}
	case '=':
		typ = lx.two('=', EQ, ASSIGN)
	case '!':
		typ = lx.two('=', NE, BANG)
	case '(':
		typ = LPAREN
	case ')':
		typ = RPAREN
	case '{':
		typ = LBRACE
	case '}':
		typ = RBRACE
	case '[':
		typ = LBRACKET
	case ']':
		typ = RBRACKET
	case ',':
		typ = COMMA
	case ';':
		typ = SEMI
	default:
		typ = ILLEGAL
	}

	lit := string(typ)
	if typ == ILLEGAL {
		lit = string(lx.current)
	}
	lx.advance()
	return lx.make(typ, lit, start)
}

func (lx *Lexer) readNumber(start span.Pos) Token {
	begin := lx.position
	for isDigit(lx.current) {
		lx.advance()
	}
	if lx.current == '.' && isDigit(lx.peek()) {
		lx.advance() // consume '.'
		for isDigit(lx.current) {
			lx.advance()
		}
	}
	return lx.make(NUMBER, lx.src[begin:lx.position], start)
}

func (lx *Lexer) readIdent(start span.Pos) Token {
	begin := lx.position
	for isAlnum(lx.current) {
		lx.advance()
	}
	lit := lx.src[begin:lx.position]
	return lx.make(lookupIdent(lit), lit, start)
}

// All tokenizes the entire source, excluding the trailing EOF token.
// Useful for tests.
func (lx *Lexer) All() []Token {
	toks := make([]Token, 0)
	for {
		tok := lx.Next()
		if tok.Type == EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}
