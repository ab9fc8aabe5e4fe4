package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LensPlaysGames/corth/diag"
)

func opts(platform Platform, syntax Syntax) Options {
	return Options{SourcePath: "test.corth", OutputName: "test", Platform: platform, Syntax: syntax}
}

func TestCompileArithmeticAndDump(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	out, err := c.Compile("5 5 + #")
	assert.NoError(t, err)
	assert.Contains(t, out, "_start:")
	assert.Contains(t, out, "call printf")
}

func TestCompileEqualityProducesComparison(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Win64, GAS), sink)

	out, err := c.Compile("3 3 = #")
	assert.NoError(t, err)
	assert.Contains(t, out, "cmove")
}

func TestCompileIfElse(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	out, err := c.Compile("1 if 42 # else 13 # endif")
	assert.NoError(t, err)
	assert.Contains(t, out, "je addr_")
}

func TestCompileWhileLoop(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, GAS), sink)

	out, err := c.Compile("3 while dup 0 > do dup # 1 - endwhile drop")
	assert.NoError(t, err)
	assert.Contains(t, out, "jmp addr_")
}

func TestCompileMemoryStoreLoad(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Win64, NASM), sink)

	out, err := c.Compile("mem 65 storeb mem loadb dump_c")
	assert.NoError(t, err)
	assert.Contains(t, out, "mem resb 720000")
}

func TestCompileStringLiteral(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	out, err := c.Compile(`"Hi" dump_s`)
	assert.NoError(t, err)
	assert.Contains(t, out, "str_0 db 0x48,0x69,0")
}

func TestCompileReportsStackUnderflowButContinues(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	out, err := c.Compile("+ 5 5 +")
	assert.NoError(t, err)
	assert.NotEmpty(t, out)

	foundError := false
	for _, msg := range sink.Messages {
		if msg.Level == "ERR" {
			foundError = true
		}
	}
	assert.True(t, foundError)
}

func TestCompileUnidentifiedKeywordFails(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	_, err := c.Compile("bogus")
	assert.Error(t, err)
}

func TestCompileUnmatchedElseFails(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	_, err := c.Compile("else endif")
	assert.Error(t, err)
}

func TestCompileEmptySource(t *testing.T) {
	sink := diag.NewCollectSink()
	c := New(opts(Linux64, NASM), sink)

	out, err := c.Compile("")
	assert.NoError(t, err)
	assert.Contains(t, out, "_start:")
	assert.Contains(t, out, "mem resb 720000")
}

func TestOptionsFileExtension(t *testing.T) {
	assert.Equal(t, ".asm", opts(Linux64, NASM).FileExtension())
	assert.Equal(t, ".s", opts(Linux64, GAS).FileExtension())
}

func TestVerboseLogsPipelineStages(t *testing.T) {
	sink := diag.NewCollectSink()
	o := opts(Linux64, NASM)
	o.Verbose = true
	c := New(o, sink)

	_, err := c.Compile("5 #")
	assert.NoError(t, err)
	assert.NotEmpty(t, sink.Messages)
}
