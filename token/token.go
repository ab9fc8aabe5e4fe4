// Package token contains the tokens that the lexer produces when scanning
// a Corth source program, along with the closed tables of operators and
// keywords the rest of the compiler switches over.
package token

import "fmt"

// Kind is the closed set of token variants a Corth program can contain.
type Kind int

// pre-defined Kind
const (
	Whitespace Kind = iota
	Int
	String
	Op
	Keyword
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "WHITESPACE"
	case Int:
		return "INTEGER"
	case String:
		return "STRING"
	case Op:
		return "OPERATOR"
	case Keyword:
		return "KEYWORD"
	default:
		panic(fmt.Sprintf("token: unreachable Kind %d in String", int(k)))
	}
}

// Op is the closed set of 15 operator surface forms.
type Op int

const (
	// OpInvalid is the zero value and never appears on a real token.
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpLt
	OpGt
	OpLe
	OpGe
	OpShl
	OpShr
	OpOr
	OpAnd
	OpDump
)

// OpCount is the number of real (non-invalid) operators. Keep in sync with
// the Op list above; token_test.go checks this mechanically.
const OpCount = 15

var opText = map[Op]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpMod:  "%",
	OpEq:   "=",
	OpLt:   "<",
	OpGt:   ">",
	OpLe:   "<=",
	OpGe:   ">=",
	OpShl:  "<<",
	OpShr:  ">>",
	OpOr:   "||",
	OpAnd:  "&&",
	OpDump: "#",
}

var textToOp map[string]Op

func init() {
	textToOp = make(map[string]Op, len(opText))
	for op, text := range opText {
		textToOp[text] = op
	}
}

// Text returns the surface form of an operator.
func (o Op) Text() string {
	text, ok := opText[o]
	if !ok {
		panic(fmt.Sprintf("token: unreachable Op %d in Text", int(o)))
	}
	return text
}

// OpFromText looks up the Op matching a surface form, if any.
func OpFromText(text string) (Op, bool) {
	op, ok := textToOp[text]
	return op, ok
}

// Keyword is the closed set of 22 reserved words.
type Keyword int

const (
	// KeywordInvalid is the zero value and never appears on a real token.
	KeywordInvalid Keyword = iota
	KeywordIf
	KeywordElse
	KeywordEndif
	KeywordDup
	KeywordTwoDup
	KeywordMem
	KeywordLoadB
	KeywordStoreB
	KeywordDo
	KeywordWhile
	KeywordEndWhile
	KeywordDump
	KeywordDumpC
	KeywordDumpS
	KeywordDrop
	KeywordSwap
	KeywordOver
	KeywordShl
	KeywordShr
	KeywordOr
	KeywordAnd
	KeywordMod
)

// KeywordCount is the number of real (non-invalid) keywords.
const KeywordCount = 22

var keywordText = map[Keyword]string{
	KeywordIf:       "if",
	KeywordElse:     "else",
	KeywordEndif:    "endif",
	KeywordDup:      "dup",
	KeywordTwoDup:   "twodup",
	KeywordMem:      "mem",
	KeywordLoadB:    "loadb",
	KeywordStoreB:   "storeb",
	KeywordDo:       "do",
	KeywordWhile:    "while",
	KeywordEndWhile: "endwhile",
	KeywordDump:     "dump",
	KeywordDumpC:    "dump_c",
	KeywordDumpS:    "dump_s",
	KeywordDrop:     "drop",
	KeywordSwap:     "swap",
	KeywordOver:     "over",
	KeywordShl:      "shl",
	KeywordShr:      "shr",
	KeywordOr:       "or",
	KeywordAnd:      "and",
	KeywordMod:      "mod",
}

var textToKeyword map[string]Keyword

func init() {
	textToKeyword = make(map[string]Keyword, len(keywordText))
	for kw, text := range keywordText {
		textToKeyword[text] = kw
	}
}

// Text returns the surface form of a keyword.
func (k Keyword) Text() string {
	text, ok := keywordText[k]
	if !ok {
		panic(fmt.Sprintf("token: unreachable Keyword %d in Text", int(k)))
	}
	return text
}

// KeywordFromText looks up the Keyword matching a surface form, if any.
func KeywordFromText(text string) (Keyword, bool) {
	kw, ok := textToKeyword[text]
	return kw, ok
}

// Position is a one-based line and column into the source text at which a
// token begins.
type Position struct {
	Line int
	Col  int
}

// Token is the smallest lexical unit the lexer produces.
//
// Partner is -1 until the block resolver annotates a control-flow token
// with the index of its matched partner (see the block package). It plays
// the role the original compiler gave a string-typed "data" field on the
// token, kept here as a dedicated numeric annotation instead.
type Token struct {
	Kind     Kind
	Text     string
	Position Position
	Partner  int
}

// New builds a Token with Partner set to the "unset" sentinel.
func New(kind Kind, text string, pos Position) Token {
	return Token{Kind: kind, Text: text, Position: pos, Partner: -1}
}

// Program pairs the original source (kept for diagnostics) with the
// ordered token sequence produced from it.
type Program struct {
	Source string
	Tokens []Token
}
