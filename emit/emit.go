package emit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/LensPlaysGames/corth/token"
)

// Emit writes tokens as assembly text to w, following profile's syntax and
// ABI conventions. tokens must already be validated and block-resolved:
// every if, else, do and endwhile keyword's Partner must index a real
// token (endif and while are labelled by their own index). Emit
// assumes no token.Whitespace tokens remain; the caller compacts those out
// beforehand. Emit is a deterministic function of (tokens, profile):
// running it twice over the same inputs produces byte-identical output.
func Emit(w io.Writer, tokens []token.Token, profile Profile) error {
	bw := bufio.NewWriter(w)

	writeHeader(bw, profile)

	var stringLiterals []string

	for i, tok := range tokens {
		switch tok.Kind {
		case token.Whitespace:
			continue

		case token.Int:
			emitInt(bw, profile, tok.Text)

		case token.String:
			emitString(bw, profile, tok.Text, &stringLiterals)

		case token.Op:
			if err := emitOp(bw, profile, tok); err != nil {
				return err
			}

		case token.Keyword:
			if err := emitKeyword(bw, profile, tok, i); err != nil {
				return err
			}

		default:
			panic("emit: unreachable token kind")
		}
	}

	writeFooter(bw, profile, stringLiterals)

	return bw.Flush()
}

func writeHeader(bw *bufio.Writer, p Profile) {
	fmt.Fprint(bw, p.SectionText)
	for _, extern := range p.ExternDirectives {
		fmt.Fprint(bw, "    ")
		fmt.Fprint(bw, extern)
	}
	fmt.Fprintf(bw, "    %s%s\n", p.GlobalDirective, p.EntrySymbol)
	fmt.Fprint(bw, p.label(p.EntrySymbol))
}

func writeFooter(bw *bufio.Writer, p Profile, stringLiterals []string) {
	fmt.Fprint(bw, p.two("mov", p.reg(p.ExitArgReg), p.imm("0")))
	fmt.Fprint(bw, p.one("call", "exit"))
	fmt.Fprint(bw, "\n")

	fmt.Fprint(bw, p.SectionData)
	fmt.Fprint(bw, p.DataConstants)
	for i, lit := range stringLiterals {
		fmt.Fprint(bw, p.StringLiteral(i, lit))
	}

	fmt.Fprint(bw, "\n")
	fmt.Fprint(bw, p.SectionBSS)
	fmt.Fprint(bw, p.BSSReservation("mem", memCapacity))
}

func emitInt(bw *bufio.Writer, p Profile, text string) {
	fmt.Fprint(bw, p.comment("push INT"))
	fmt.Fprint(bw, p.two("mov", p.reg("rax"), p.imm(text)))
	fmt.Fprint(bw, p.one("push", p.reg("rax")))
}

func emitString(bw *bufio.Writer, p Profile, text string, stringLiterals *[]string) {
	fmt.Fprint(bw, p.comment("push STRING"))
	for _, line := range p.PushStringAddr(p, len(*stringLiterals)) {
		fmt.Fprint(bw, line)
	}
	*stringLiterals = append(*stringLiterals, text)
}

func emitDump(bw *bufio.Writer, p Profile, fmtLabel string) {
	fmt.Fprint(bw, p.two("lea", p.reg(p.ArgReg1), p.MemRel(fmtLabel)))
	fmt.Fprint(bw, p.one("pop", p.reg(p.ArgReg2)))
	fmt.Fprint(bw, p.two("xor", p.reg("rax"), p.reg("rax")))
	if p.ShadowSpace {
		fmt.Fprint(bw, p.two("sub", p.reg("rsp"), p.imm("32")))
	}
	fmt.Fprint(bw, p.one("call", "printf"))
	if p.ShadowSpace {
		fmt.Fprint(bw, p.two("add", p.reg("rsp"), p.imm("32")))
	}
}

func emitOp(bw *bufio.Writer, p Profile, tok token.Token) error {
	op, ok := token.OpFromText(tok.Text)
	if !ok {
		panic("emit: unreachable operator text " + tok.Text)
	}

	switch op {
	case token.OpAdd:
		fmt.Fprint(bw, p.comment("add"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.two("add", p.reg("rax"), p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))

	case token.OpSub:
		fmt.Fprint(bw, p.comment("subtract"))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.two("sub", p.reg("rax"), p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))

	case token.OpMul:
		fmt.Fprint(bw, p.comment("multiply"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("mul", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))

	case token.OpDiv:
		fmt.Fprint(bw, p.comment("divide"))
		fmt.Fprint(bw, p.two("xor", p.reg("rdx"), p.reg("rdx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("div", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))

	case token.OpMod:
		fmt.Fprint(bw, p.comment("modulo"))
		fmt.Fprint(bw, p.two("xor", p.reg("rdx"), p.reg("rdx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("div", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rdx")))

	case token.OpEq:
		emitComparison(bw, p, "equality", "cmove", false)
	case token.OpLt:
		emitComparison(bw, p, "less than", "cmovl", true)
	case token.OpGt:
		emitComparison(bw, p, "greater than", "cmovg", true)
	case token.OpLe:
		emitComparison(bw, p, "less than or equal", "cmovle", true)
	case token.OpGe:
		emitComparison(bw, p, "greater than or equal", "cmovge", true)

	case token.OpShl:
		emitShift(bw, p, "shift left", "shl")
	case token.OpShr:
		emitShift(bw, p, "shift right", "shr")

	case token.OpOr:
		emitBitwise(bw, p, "bitwise or", "or")
	case token.OpAnd:
		emitBitwise(bw, p, "bitwise and", "and")

	case token.OpDump:
		fmt.Fprint(bw, p.comment("dump"))
		emitDump(bw, p, "fmt")

	default:
		panic("emit: unreachable operator")
	}

	return nil
}

// emitComparison renders a relational operator. popRbxFirst matches the
// original generator's quirk: equality pops rax then rbx (order doesn't
// matter for a symmetric comparison), the ordered relations pop rbx then
// rax.
func emitComparison(bw *bufio.Writer, p Profile, label, cmov string, popRbxFirst bool) {
	fmt.Fprint(bw, p.comment(label+" condition"))
	fmt.Fprint(bw, p.two("mov", p.reg("rcx"), p.imm("0")))
	fmt.Fprint(bw, p.two("mov", p.reg("rdx"), p.imm("1")))
	if popRbxFirst {
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
	} else {
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
	}
	fmt.Fprint(bw, p.two("cmp", p.reg("rax"), p.reg("rbx")))
	fmt.Fprint(bw, p.two(cmov, p.reg("rcx"), p.reg("rdx")))
	fmt.Fprint(bw, p.one("push", p.reg("rcx")))
}

func emitShift(bw *bufio.Writer, p Profile, label, mnemonic string) {
	fmt.Fprint(bw, p.comment(label))
	fmt.Fprint(bw, p.one("pop", p.reg("rcx")))
	fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
	fmt.Fprint(bw, p.two(mnemonic, p.reg("rbx"), p.reg("cl")))
	fmt.Fprint(bw, p.one("push", p.reg("rbx")))
}

func emitBitwise(bw *bufio.Writer, p Profile, label, mnemonic string) {
	fmt.Fprint(bw, p.comment(label))
	fmt.Fprint(bw, p.one("pop", p.reg("rax")))
	fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
	fmt.Fprint(bw, p.two(mnemonic, p.reg("rax"), p.reg("rbx")))
	fmt.Fprint(bw, p.one("push", p.reg("rax")))
}

func emitKeyword(bw *bufio.Writer, p Profile, tok token.Token, i int) error {
	kw, ok := token.KeywordFromText(tok.Text)
	if !ok {
		panic("emit: unreachable keyword text " + tok.Text)
	}

	switch kw {
	case token.KeywordIf:
		fmt.Fprint(bw, p.comment("if"))
		emitBranchIfZero(bw, p, tok.Partner)

	case token.KeywordElse:
		fmt.Fprint(bw, p.comment("else"))
		fmt.Fprint(bw, p.one("jmp", addrLabel(tok.Partner)))
		fmt.Fprint(bw, p.label(addrLabel(i)))

	case token.KeywordEndif:
		fmt.Fprint(bw, p.comment("endif"))
		fmt.Fprint(bw, p.label(addrLabel(i)))

	case token.KeywordWhile:
		fmt.Fprint(bw, p.comment("while"))
		fmt.Fprint(bw, p.label(addrLabel(i)))

	case token.KeywordDo:
		fmt.Fprint(bw, p.comment("do"))
		emitBranchIfZero(bw, p, tok.Partner)

	case token.KeywordEndWhile:
		fmt.Fprint(bw, p.comment("endwhile"))
		fmt.Fprint(bw, p.one("jmp", addrLabel(tok.Partner)))
		fmt.Fprint(bw, p.label(addrLabel(i)))

	case token.KeywordDup:
		fmt.Fprint(bw, p.comment("dup"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))

	case token.KeywordTwoDup:
		fmt.Fprint(bw, p.comment("twodup"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))
		fmt.Fprint(bw, p.one("push", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))

	case token.KeywordMem:
		fmt.Fprint(bw, p.comment("mem"))
		for _, line := range p.PushMemAddr(p) {
			fmt.Fprint(bw, line)
		}

	case token.KeywordLoadB:
		fmt.Fprint(bw, p.comment("load byte"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.two("xor", p.reg("rbx"), p.reg("rbx")))
		fmt.Fprint(bw, p.two("mov", p.reg("bl"), p.MemIndirect(p.reg("rax"))))
		fmt.Fprint(bw, p.one("push", p.reg("rbx")))

	case token.KeywordStoreB:
		fmt.Fprint(bw, p.comment("store byte"))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.two("mov", p.MemIndirect(p.reg("rax")), p.reg("bl")))

	case token.KeywordDump:
		fmt.Fprint(bw, p.comment("dump"))
		emitDump(bw, p, "fmt")

	case token.KeywordDumpC:
		fmt.Fprint(bw, p.comment("dump character"))
		emitDump(bw, p, "fmt_char")

	case token.KeywordDumpS:
		fmt.Fprint(bw, p.comment("dump string"))
		emitDump(bw, p, "fmt_str")

	case token.KeywordDrop:
		fmt.Fprint(bw, p.comment("drop"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))

	case token.KeywordSwap:
		fmt.Fprint(bw, p.comment("swap"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))
		fmt.Fprint(bw, p.one("push", p.reg("rbx")))

	case token.KeywordOver:
		fmt.Fprint(bw, p.comment("over"))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rax")))
		fmt.Fprint(bw, p.one("push", p.reg("rbx")))

	case token.KeywordShl:
		emitShift(bw, p, "shift left", "shl")
	case token.KeywordShr:
		emitShift(bw, p, "shift right", "shr")
	case token.KeywordOr:
		emitBitwise(bw, p, "bitwise or", "or")
	case token.KeywordAnd:
		emitBitwise(bw, p, "bitwise and", "and")

	case token.KeywordMod:
		fmt.Fprint(bw, p.comment("modulo"))
		fmt.Fprint(bw, p.two("xor", p.reg("rdx"), p.reg("rdx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rbx")))
		fmt.Fprint(bw, p.one("pop", p.reg("rax")))
		fmt.Fprint(bw, p.one("div", p.reg("rbx")))
		fmt.Fprint(bw, p.one("push", p.reg("rdx")))

	default:
		panic("emit: unreachable keyword")
	}

	return nil
}

func emitBranchIfZero(bw *bufio.Writer, p Profile, target int) {
	fmt.Fprint(bw, p.one("pop", p.reg("rax")))
	fmt.Fprint(bw, p.two("cmp", p.reg("rax"), p.imm("0")))
	fmt.Fprint(bw, p.one("je", addrLabel(target)))
}
