// Package validate performs a static stack-depth simulation over a token
// sequence, demoting tokens whose operands it can prove are missing.
package validate

import (
	"github.com/LensPlaysGames/corth/diag"
	"github.com/LensPlaysGames/corth/token"
)

// effect describes how much a token's depth delta is and how much depth
// must already be on the stack for the token to be legal.
type effect struct {
	delta int
	guard int
}

var opEffects = map[token.Op]effect{
	token.OpAdd:  {-1, 2},
	token.OpSub:  {-1, 2},
	token.OpMul:  {-1, 2},
	token.OpDiv:  {-1, 2},
	token.OpMod:  {-1, 2},
	token.OpEq:   {-1, 2},
	token.OpLt:   {-1, 2},
	token.OpGt:   {-1, 2},
	token.OpLe:   {-1, 2},
	token.OpGe:   {-1, 2},
	token.OpShl:  {-1, 2},
	token.OpShr:  {-1, 2},
	token.OpOr:   {-1, 2},
	token.OpAnd:  {-1, 2},
	token.OpDump: {-1, 1},
}

var keywordEffects = map[token.Keyword]effect{
	token.KeywordIf:       {-1, 1},
	token.KeywordDo:       {-1, 1},
	token.KeywordElse:     {0, 0},
	token.KeywordEndif:    {0, 0},
	token.KeywordWhile:    {0, 0},
	token.KeywordEndWhile: {0, 0},
	token.KeywordDup:      {1, 1},
	token.KeywordTwoDup:   {2, 2},
	token.KeywordMem:      {1, 0},
	token.KeywordLoadB:    {0, 1},
	token.KeywordStoreB:   {-2, 2},
	token.KeywordDump:     {-1, 1},
	token.KeywordDumpC:    {-1, 1},
	token.KeywordDumpS:    {-1, 1},
	token.KeywordDrop:     {-1, 1},
	token.KeywordSwap:     {0, 2},
	token.KeywordOver:     {1, 2},
	token.KeywordShl:      {-1, 2},
	token.KeywordShr:      {-1, 2},
	token.KeywordOr:       {-1, 2},
	token.KeywordAnd:      {-1, 2},
	token.KeywordMod:      {-1, 2},
}

// Stack abstractly interprets tokens in source order, tracking a lower
// bound on the runtime stack depth. Any token whose guard the running
// depth fails to satisfy is demoted to token.Whitespace in place (marking
// it for later removal) and reported as an error through sink; the scan
// continues so a single run can surface every offending token. A nonzero
// final depth is reported through sink as the advisory "stack not empty"
// warning, and Stack returns that residual depth.
func Stack(tokens []token.Token, sink diag.Sink) int {
	depth := 0

	for i := range tokens {
		tok := &tokens[i]

		switch tok.Kind {
		case token.Int, token.String:
			depth++
			continue

		case token.Op:
			eff, ok := opEffects[mustOp(tok.Text)]
			if !ok {
				panic("validate: unreachable operator " + tok.Text)
			}
			if depth < eff.guard {
				diag.StackErrorAt(sink, tok.Position)
				tok.Kind = token.Whitespace
				continue
			}
			depth += eff.delta

		case token.Keyword:
			eff, ok := keywordEffects[mustKeyword(tok.Text)]
			if !ok {
				panic("validate: unreachable keyword " + tok.Text)
			}
			if depth < eff.guard {
				diag.StackErrorAt(sink, tok.Position)
				tok.Kind = token.Whitespace
				continue
			}
			depth += eff.delta

		case token.Whitespace:
			// already demoted by an earlier pass; nothing to do.

		default:
			panic("validate: unreachable token kind")
		}
	}

	if depth != 0 {
		sink.Warnf("stack not empty at end of program: %d cell(s) left over", depth)
	}

	return depth
}

func mustOp(text string) token.Op {
	op, ok := token.OpFromText(text)
	if !ok {
		panic("validate: unreachable operator text " + text)
	}
	return op
}

func mustKeyword(text string) token.Keyword {
	kw, ok := token.KeywordFromText(text)
	if !ok {
		panic("validate: unreachable keyword text " + text)
	}
	return kw
}
