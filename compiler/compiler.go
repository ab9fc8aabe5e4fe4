// Package compiler orchestrates the pipeline stages — lexing, stack
// validation, block resolution, and emission — into the single Compile
// entry point the hosting CLI calls.
package compiler

import (
	"bytes"
	"fmt"

	"github.com/LensPlaysGames/corth/block"
	"github.com/LensPlaysGames/corth/diag"
	"github.com/LensPlaysGames/corth/emit"
	"github.com/LensPlaysGames/corth/lexer"
	"github.com/LensPlaysGames/corth/token"
	"github.com/LensPlaysGames/corth/validate"
)

// Platform is the target operating system's ABI.
type Platform int

const (
	Linux64 Platform = iota
	Win64
)

func (p Platform) String() string {
	switch p {
	case Linux64:
		return "linux64"
	case Win64:
		return "win64"
	default:
		panic("compiler: unreachable Platform")
	}
}

// Syntax is the target assembler's dialect.
type Syntax int

const (
	NASM Syntax = iota
	GAS
)

func (s Syntax) String() string {
	switch s {
	case NASM:
		return "NASM"
	case GAS:
		return "GAS"
	default:
		panic("compiler: unreachable Syntax")
	}
}

// Mode selects whether the hosting CLI should hand the emitted assembly to
// an external assembler/linker, or merely generate the file. The core
// itself always just emits text; Mode is plumbed through Options so the
// collaborator that reads it doesn't need a second configuration type.
type Mode int

const (
	ModeCompile Mode = iota
	ModeGenerate
)

// Options is the immutable configuration record the hosting CLI builds
// and passes in; no setting in the core lives as a package-level global.
type Options struct {
	SourcePath string
	OutputName string
	Platform   Platform
	Syntax     Syntax
	Mode       Mode
	Verbose    bool
}

// FileExtension returns the conventional extension for this Options'
// syntax: ".asm" for NASM, ".s" for GAS.
func (o Options) FileExtension() string {
	return profileFor(o.Platform, o.Syntax).FileExtension
}

func profileFor(platform Platform, syntax Syntax) emit.Profile {
	switch {
	case platform == Linux64 && syntax == NASM:
		return emit.NASMLinux64
	case platform == Linux64 && syntax == GAS:
		return emit.GASLinux64
	case platform == Win64 && syntax == NASM:
		return emit.NASMWin64
	case platform == Win64 && syntax == GAS:
		return emit.GASWin64
	default:
		panic("compiler: unreachable (platform, syntax) pair")
	}
}

// Compiler runs the pipeline for one set of Options, reporting diagnostics
// through sink.
type Compiler struct {
	opts Options
	sink diag.Sink
}

// New builds a Compiler. sink receives every diagnostic the pipeline
// produces; pass a diag.CollectSink to inspect them programmatically, or a
// diag.WriterSink to stream them to a terminal.
func New(opts Options, sink diag.Sink) *Compiler {
	return &Compiler{opts: opts, sink: sink}
}

// Compile runs source through the full pipeline and returns the generated
// assembly text for the configured (platform, syntax) target. It returns
// an error only for fatal conditions — a lex failure or an unresolved
// control-flow keyword; recoverable stack-underflow errors are reported
// through the sink and do not abort compilation.
func (c *Compiler) Compile(source string) (string, error) {
	if c.opts.Verbose {
		c.sink.Logf("lexing %s", c.opts.SourcePath)
	}

	tokens, err := lexer.Lex(source, c.sink)
	if err != nil {
		return "", fmt.Errorf("lex error: %w", err)
	}

	if c.opts.Verbose {
		c.sink.Logf("validating stack effects (%d tokens)", len(tokens))
	}
	validate.Stack(tokens, c.sink)

	tokens = compact(tokens)

	if c.opts.Verbose {
		c.sink.Logf("resolving control-flow blocks")
	}
	if err := block.Resolve(tokens); err != nil {
		return "", fmt.Errorf("block resolution error: %w", err)
	}

	profile := profileFor(c.opts.Platform, c.opts.Syntax)
	if c.opts.Verbose {
		c.sink.Logf("emitting %s assembly", profile.Name)
	}

	var buf bytes.Buffer
	if err := emit.Emit(&buf, tokens, profile); err != nil {
		return "", fmt.Errorf("emit error: %w", err)
	}

	return buf.String(), nil
}

// compact drops every token the validator demoted to Whitespace, so no
// such token survives to reach the emitter.
func compact(tokens []token.Token) []token.Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok.Kind != token.Whitespace {
			out = append(out, tok)
		}
	}
	return out
}
