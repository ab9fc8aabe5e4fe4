package validate

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

func TestStackValidProgramUntouched(t *testing.T) {
	toks := mustLex(t, "5 5 + #")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, 0, depth)
	assert.Empty(t, sink.Messages)
	for _, tok := range toks {
		assert.NotEqual(t, token.Whitespace, tok.Kind)
	}
}

func TestStackUnderflowDemotesToken(t *testing.T) {
	toks := mustLex(t, "+")
	sink := diag.NewCollectSink()

	Stack(toks, sink)

	assert.Equal(t, token.Whitespace, toks[0].Kind)
	assert.Len(t, sink.Messages, 1)
	assert.Equal(t, "ERR", sink.Messages[0].Level)
}

func TestStackUnderflowContinuesScanning(t *testing.T) {
	toks := mustLex(t, "+ 5 5 +")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, token.Whitespace, toks[0].Kind)
	assert.Equal(t, 1, depth)
	// one underflow error plus the residual-depth warning for the 1 cell left
	assert.Len(t, sink.Messages, 2)
}

func TestStackResidualWarning(t *testing.T) {
	toks := mustLex(t, "5 5")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, 2, depth)
	assert.Len(t, sink.Messages, 1)
	assert.Equal(t, "WRN", sink.Messages[0].Level)
}

func TestStackDupRequiresOneItem(t *testing.T) {
	toks := mustLex(t, "dup")
	sink := diag.NewCollectSink()

	Stack(toks, sink)

	assert.Equal(t, token.Whitespace, toks[0].Kind)
}

func TestStackTwoDupRequiresTwoItems(t *testing.T) {
	toks := mustLex(t, "5 twodup")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, token.Whitespace, toks[1].Kind)
	assert.Equal(t, 1, depth)
}

func TestStackMemNeedsNoOperands(t *testing.T) {
	toks := mustLex(t, "mem")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, 1, depth)
	// no underflow error; the only message is the residual-depth warning
	assert.Len(t, sink.Messages, 1)
	assert.Equal(t, "WRN", sink.Messages[0].Level)
}

func TestStackStoreBConsumesTwo(t *testing.T) {
	toks := mustLex(t, "mem 65 storeb")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, 0, depth)
	assert.Empty(t, sink.Messages)
}

func TestStackIfDoConsumeOne(t *testing.T) {
	toks := mustLex(t, "1 if 1 endif drop")
	sink := diag.NewCollectSink()

	depth := Stack(toks, sink)

	assert.Equal(t, 0, depth)
	assert.Empty(t, sink.Messages)
}

func TestStackEmptyProgram(t *testing.T) {
	sink := diag.NewCollectSink()
	depth := Stack(nil, sink)

	assert.Equal(t, 0, depth)
	assert.Empty(t, sink.Messages)
}
