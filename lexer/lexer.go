// Package lexer turns Corth source text into a token stream.
package lexer

import (
	"fmt"
	"strings"

	"github.com/LensPlaysGames/corth/diag"
	"github.com/LensPlaysGames/corth/token"
)

// scanner walks a rune slice, tracking one-based line/column position the
// way the original compiler's Lex function did.
type scanner struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newScanner(source string) *scanner {
	return &scanner{src: []rune(source), pos: 0, line: 1, col: 1}
}

func (s *scanner) peek(offset int) (rune, bool) {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.src) {
		return 0, false
	}
	return s.src[idx], true
}

func (s *scanner) current() (rune, bool) { return s.peek(0) }

func (s *scanner) position() token.Position {
	return token.Position{Line: s.line, Col: s.col}
}

func (s *scanner) advance() {
	if s.pos >= len(s.src) {
		return
	}
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isOperatorGlyph(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '=', '<', '>', '#', '|', '&':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Lex scans source into an ordered token sequence. It is a pure function
// of its input: it reports recoverable conditions (a lone '|' or '&')
// through sink as warnings and keeps scanning, but halts and returns an
// error on the first fatal condition (an unidentified keyword, or a
// string literal missing its closing quote) with no partial token list.
func Lex(source string, sink diag.Sink) ([]token.Token, error) {
	s := newScanner(source)
	var toks []token.Token

	for {
		ch, ok := s.current()
		if !ok {
			break
		}

		switch {
		case isWhitespace(ch):
			s.advance()

		case isOperatorGlyph(ch):
			tok, err := lexOperator(s, sink)
			if err != nil {
				return nil, err
			}
			if tok != nil {
				toks = append(toks, *tok)
			}

		case isDigit(ch):
			toks = append(toks, lexInt(s))

		case isAlpha(ch):
			tok, err := lexKeyword(s)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)

		case ch == '"':
			tok, err := lexString(s)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)

		default:
			// Characters outside the recognized set (e.g. stray
			// punctuation) are silently skipped, matching the original
			// lexer's behavior of falling through its recognition chain
			// without emitting a token or an error.
			s.advance()
		}
	}

	return toks, nil
}

// lexOperator handles the one- and two-glyph operators, the `||`/`&&`
// doubling rules, and `//` line comments (which consume input but never
// produce a token).
func lexOperator(s *scanner, sink diag.Sink) (*token.Token, error) {
	pos := s.position()
	first, _ := s.current()
	s.advance()
	next, hasNext := s.current()

	text := string(first)

	switch {
	case (first == '=' || first == '<' || first == '>') && hasNext && next == '=':
		text += "="
		s.advance()

	case first == '<' && hasNext && next == '<':
		text += "<"
		s.advance()

	case first == '>' && hasNext && next == '>':
		text += ">"
		s.advance()

	case first == '|':
		if hasNext && next == '|' {
			text += "|"
			s.advance()
		} else {
			sink.WarnAt(pos, "expected '|' following '|'")
			text = "||"
		}

	case first == '&':
		if hasNext && next == '&' {
			text += "&"
			s.advance()
		} else {
			sink.WarnAt(pos, "expected '&' following '&'")
			text = "&&"
		}

	case first == '/' && hasNext && next == '/':
		s.advance() // consume the second '/'
		for {
			ch, ok := s.current()
			if !ok {
				break
			}
			if ch == '\n' {
				s.advance()
				break
			}
			s.advance()
		}
		return nil, nil
	}

	if _, ok := token.OpFromText(text); !ok {
		panic(fmt.Sprintf("lexer: unreachable operator text %q", text))
	}

	tok := token.New(token.Op, text, pos)
	return &tok, nil
}

func lexInt(s *scanner) token.Token {
	pos := s.position()
	var sb strings.Builder
	for {
		ch, ok := s.current()
		if !ok || !isDigit(ch) {
			break
		}
		sb.WriteRune(ch)
		s.advance()
	}
	return token.New(token.Int, sb.String(), pos)
}

func lexKeyword(s *scanner) (token.Token, error) {
	pos := s.position()
	var sb strings.Builder
	for {
		ch, ok := s.current()
		if !ok {
			break
		}
		if isAlpha(ch) || (sb.Len() > 0 && ch == '_') {
			sb.WriteRune(ch)
			s.advance()
			continue
		}
		break
	}

	text := sb.String()
	if _, ok := token.KeywordFromText(text); !ok {
		return token.Token{}, fmt.Errorf("unidentified keyword: %s (line %d, col %d)", text, pos.Line, pos.Col)
	}
	return token.New(token.Keyword, text, pos), nil
}

func lexString(s *scanner) (token.Token, error) {
	pos := s.position()
	s.advance() // consume opening quote

	var sb strings.Builder
	for {
		ch, ok := s.current()
		if !ok {
			return token.Token{}, fmt.Errorf("expected closing quotes following opening quotes (line %d, col %d)", pos.Line, pos.Col)
		}
		if ch == '"' {
			s.advance()
			break
		}
		sb.WriteRune(ch)
		s.advance()
	}

	return token.New(token.String, sb.String(), pos), nil
}
