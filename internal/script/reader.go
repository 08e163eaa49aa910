package script

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"calvin/internal/diag"
	"calvin/internal/source"
)

type tokenType uint8

const (
	tokenEOF tokenType = iota
	tokenAtom
	tokenString
	tokenChar
	tokenLParen
	tokenRParen
)

type token struct {
	Type  tokenType
	Text  string
	Start int
	End   int
}

type lexer struct {
	src  string
	pos  int
	file source.FileID
}

func (l *lexer) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(err)
	}
	return source.Span{File: l.file, Start: s, End: e}
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' || r == '\'' || r == ';'
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += w
		case r == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{Type: tokenEOF, Start: start, End: start}, nil
	}
	switch c := l.src[l.pos]; c {
	case '(':
		l.pos++
		return token{Type: tokenLParen, Text: "(", Start: start, End: l.pos}, nil
	case ')':
		l.pos++
		return token{Type: tokenRParen, Text: ")", Start: start, End: l.pos}, nil
	case '"':
		return l.readString()
	case '\'':
		return l.readChar()
	}
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.src[l.pos:])
		if isDelimiter(r) {
			break
		}
		l.pos += w
	}
	return token{Type: tokenAtom, Text: l.src[start:l.pos], Start: start, End: l.pos}, nil
}

// readString keeps backslash sequences as written, except \" which
// becomes a quote. Escaping for output happens when the literal is built.
func (l *lexer) readString() (token, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '"':
			l.pos++
			return token{Type: tokenString, Text: sb.String(), Start: start, End: l.pos}, nil
		case c == '\\' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '"':
			sb.WriteByte('"')
			l.pos += 2
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, diag.Errorf(diag.SynUnclosedString, "unterminated string literal").At(l.span(start, l.pos))
}

func (l *lexer) readChar() (token, error) {
	start := l.pos
	l.pos++
	end := strings.IndexByte(l.src[l.pos:], '\'')
	if end < 0 {
		l.pos = len(l.src)
		return token{}, diag.Errorf(diag.SynUnclosedString, "unterminated char literal").At(l.span(start, l.pos))
	}
	text := l.src[l.pos : l.pos+end]
	l.pos += end + 1
	if text == `\'` || text == `\\` {
		text = text[1:]
	}
	if utf8.RuneCountInString(text) != 1 {
		return token{}, diag.Errorf(diag.SynBadLiteral, "char literal must hold one character, got %q", text).
			At(l.span(start, l.pos))
	}
	return token{Type: tokenChar, Text: text, Start: start, End: l.pos}, nil
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// Parse reads every top-level form of the file.
func Parse(f *source.File) ([]*Datum, error) {
	return ParseString(f.ID, string(f.Content))
}

// ParseString reads every top-level form of src, attributing spans to file.
func ParseString(file source.FileID, src string) ([]*Datum, error) {
	p := &parser{lex: &lexer{src: src, file: file}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var forms []*Datum
	for p.cur.Type != tokenEOF {
		d, err := p.datum()
		if err != nil {
			return nil, err
		}
		forms = append(forms, d)
	}
	return forms, nil
}

func (p *parser) datum() (*Datum, error) {
	tok := p.cur
	sp := p.lex.span(tok.Start, tok.End)
	switch tok.Type {
	case tokenLParen:
		return p.list()
	case tokenRParen:
		return nil, diag.Errorf(diag.SynUnexpectedForm, "unexpected ')'").At(sp)
	case tokenString:
		return &Datum{Kind: KindString, Text: tok.Text, Span: sp}, p.advance()
	case tokenChar:
		return &Datum{Kind: KindChar, Text: tok.Text, Span: sp}, p.advance()
	case tokenAtom:
		return &Datum{Kind: classify(tok.Text), Text: tok.Text, Span: sp}, p.advance()
	}
	return nil, diag.Errorf(diag.SynUnexpectedForm, "unexpected end of input").At(sp)
}

func (p *parser) list() (*Datum, error) {
	open := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	d := &Datum{Kind: KindList}
	for p.cur.Type != tokenRParen {
		if p.cur.Type == tokenEOF {
			return nil, diag.Errorf(diag.SynUnclosedParen, "missing ')'").
				At(p.lex.span(open.Start, open.End))
		}
		item, err := p.datum()
		if err != nil {
			return nil, err
		}
		d.Items = append(d.Items, item)
	}
	d.Span = p.lex.span(open.Start, p.cur.End)
	return d, p.advance()
}

func classify(text string) Kind {
	if text == "..." {
		return KindEllipsis
	}
	c := text[0]
	if !(c >= '0' && c <= '9') && !((c == '-' || c == '+') && len(text) > 1) {
		return KindSymbol
	}
	if _, err := strconv.ParseInt(text, 0, 64); err == nil {
		return KindInt
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return KindReal
	}
	return KindSymbol
}
