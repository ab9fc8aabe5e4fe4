package block

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LensPlaysGames/corth/diag"
	"github.com/LensPlaysGames/corth/lexer"
	"github.com/LensPlaysGames/corth/token"
)

func mustLex(t *testing.T, source string) []token.Token {
	t.Helper()
	toks, err := lexer.Lex(source, diag.NewCollectSink())
	assert.NoError(t, err)
	return toks
}

func TestResolveIfEndif(t *testing.T) {
	toks := mustLex(t, "1 if 2 endif")
	assert.NoError(t, Resolve(toks))

	ifIdx, endifIdx := 1, 3
	assert.Equal(t, endifIdx, toks[ifIdx].Partner)
}

func TestResolveIfElseEndif(t *testing.T) {
	toks := mustLex(t, "1 if 2 else 3 endif")
	assert.NoError(t, Resolve(toks))

	ifIdx, elseIdx, endifIdx := 1, 3, 5
	assert.Equal(t, elseIdx, toks[ifIdx].Partner)
	assert.Equal(t, endifIdx, toks[elseIdx].Partner)
}

func TestResolveNestedIf(t *testing.T) {
	toks := mustLex(t, "1 if 2 if 3 endif endif")
	assert.NoError(t, Resolve(toks))

	outerIf, innerIf, innerEndif, outerEndif := 1, 3, 5, 6
	assert.Equal(t, innerEndif, toks[innerIf].Partner)
	assert.Equal(t, outerEndif, toks[outerIf].Partner)
}

func TestResolveWhileDoEndwhile(t *testing.T) {
	toks := mustLex(t, "3 while dup 0 > do dup # 1 - endwhile drop")
	assert.NoError(t, Resolve(toks))

	whileIdx := 1
	doIdx := 5
	endwhileIdx := 10

	assert.Equal(t, endwhileIdx, toks[doIdx].Partner)
	assert.Equal(t, whileIdx, toks[endwhileIdx].Partner)
}

func TestResolveNestedWhile(t *testing.T) {
	toks := mustLex(t, "while do while do endwhile endwhile")
	assert.NoError(t, Resolve(toks))

	outerWhile, outerDo := 0, 1
	innerWhile, innerDo := 2, 3
	innerEndwhile, outerEndwhile := 4, 5

	assert.Equal(t, innerEndwhile, toks[innerDo].Partner)
	assert.Equal(t, innerWhile, toks[innerEndwhile].Partner)
	assert.Equal(t, outerEndwhile, toks[outerDo].Partner)
	assert.Equal(t, outerWhile, toks[outerEndwhile].Partner)
}

func TestResolveElseWithoutIfFails(t *testing.T) {
	toks := mustLex(t, "else endif")
	err := Resolve(toks)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "else without enclosing if")
}

func TestResolveEndifWithoutIfFails(t *testing.T) {
	toks := mustLex(t, "endif")
	err := Resolve(toks)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "endif without enclosing")
}

func TestResolveEndwhileWithoutDoFails(t *testing.T) {
	toks := mustLex(t, "while endwhile")
	err := Resolve(toks)
	assert.Error(t, err)
}

func TestResolveWhileWithoutDoAtEOFFails(t *testing.T) {
	toks := mustLex(t, "1 while dup")
	err := Resolve(toks)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched while")
}

func TestResolveIfBeforeWhileDoFails(t *testing.T) {
	toks := mustLex(t, "while 1 if 2 endif do endwhile")
	err := Resolve(toks)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires a do")
}

func TestResolveUnmatchedIfAtEOFFails(t *testing.T) {
	toks := mustLex(t, "1 if 2")
	err := Resolve(toks)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmatched if")
}

func TestResolveEmptyProgram(t *testing.T) {
	assert.NoError(t, Resolve(nil))
}
