// Package block walks a validated token sequence and annotates every
// control-flow keyword with the index of its matched partner.
package block

import (
	"fmt"

	"github.com/LensPlaysGames/corth/stack"
	"github.com/LensPlaysGames/corth/token"
)

type kind int

const (
	kindIf kind = iota
	kindElse
	kindPendingWhile
	kindInLoop
)

// frame is one open control-flow construct awaiting its closer. Which
// fields are meaningful depends on kind.
type frame struct {
	kind       kind
	ifIndex    int
	elseIndex  int
	whileIndex int
	doIndex    int
	openPos    token.Position
}

// Resolve matches every if/else/endif and while/do/endwhile in tokens and
// writes matched-partner indexes into Token.Partner: an if gets its else
// (or its endif when there is no else), an else gets its endif, a do gets
// its endwhile, and an endwhile gets its while. endif and while tokens are
// left unannotated, since their own index serves as their label. It walks the
// sequence once with an explicit frame stack rather than recursive
// descent, so arbitrarily nested while loops resolve correctly even when
// one while's search for its do runs across another while/do pair.
func Resolve(tokens []token.Token) error {
	frames := stack.New[frame]()

	for i := range tokens {
		tok := &tokens[i]
		if tok.Kind != token.Keyword {
			continue
		}
		kw, ok := token.KeywordFromText(tok.Text)
		if !ok {
			panic("block: unreachable keyword text " + tok.Text)
		}

		switch kw {
		case token.KeywordIf:
			if top, err := frames.Peek(); err == nil && top.kind == kindPendingWhile {
				return fmt.Errorf("while at line %d, col %d requires a do before any if/else/endif (found if at line %d, col %d)",
					top.openPos.Line, top.openPos.Col, tok.Position.Line, tok.Position.Col)
			}
			frames.Push(frame{kind: kindIf, ifIndex: i, openPos: tok.Position})

		case token.KeywordElse:
			top, err := frames.Pop()
			if err != nil || top.kind != kindIf {
				return fmt.Errorf("else without enclosing if at line %d, col %d", tok.Position.Line, tok.Position.Col)
			}
			tokens[top.ifIndex].Partner = i
			frames.Push(frame{kind: kindElse, ifIndex: top.ifIndex, elseIndex: i, openPos: top.openPos})

		case token.KeywordEndif:
			top, err := frames.Pop()
			if err != nil || (top.kind != kindIf && top.kind != kindElse) {
				return fmt.Errorf("endif without enclosing if/else at line %d, col %d", tok.Position.Line, tok.Position.Col)
			}
			if top.kind == kindIf {
				tokens[top.ifIndex].Partner = i
			} else {
				tokens[top.elseIndex].Partner = i
			}

		case token.KeywordWhile:
			frames.Push(frame{kind: kindPendingWhile, whileIndex: i, openPos: tok.Position})

		case token.KeywordDo:
			top, err := frames.Pop()
			if err != nil || top.kind != kindPendingWhile {
				return fmt.Errorf("do without enclosing while at line %d, col %d", tok.Position.Line, tok.Position.Col)
			}
			frames.Push(frame{kind: kindInLoop, whileIndex: top.whileIndex, doIndex: i, openPos: top.openPos})

		case token.KeywordEndWhile:
			top, err := frames.Pop()
			if err != nil || top.kind != kindInLoop {
				return fmt.Errorf("endwhile without enclosing while/do at line %d, col %d", tok.Position.Line, tok.Position.Col)
			}
			tokens[top.doIndex].Partner = i
			tokens[i].Partner = top.whileIndex
		}
	}

	if !frames.Empty() {
		top, _ := frames.Peek()
		return fmt.Errorf("unmatched %s at line %d, col %d", describe(top.kind), top.openPos.Line, top.openPos.Col)
	}

	return nil
}

func describe(k kind) string {
	switch k {
	case kindIf:
		return "if"
	case kindElse:
		return "else"
	case kindPendingWhile:
		return "while (missing do)"
	case kindInLoop:
		return "do (missing endwhile)"
	default:
		panic("block: unreachable frame kind")
	}
}
