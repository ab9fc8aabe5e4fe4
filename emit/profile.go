// Package emit renders an annotated token sequence as assembly text.
//
// A single Emit function is driven by a Profile value instead of the four
// near-identical generator functions a straight port would need: a Profile
// bundles the syntax differences between NASM and GAS (operand order,
// register spelling, section directives, addressing modes) with the ABI
// differences between the System V and Windows x64 calling conventions
// (argument registers, entry symbol, shadow-space requirement).
package emit

import "fmt"

// Profile describes one (syntax, platform) target: how to spell an
// instruction and which registers the calling convention uses.
type Profile struct {
	Name string

	CommentPrefix string
	FileExtension string

	EntrySymbol      string
	GlobalDirective  string
	ExternDirectives []string

	SectionText string
	SectionData string
	SectionBSS  string

	RegPrefix          string
	ImmPrefix          string
	TwoOperandReversed bool

	MemRel      func(label string) string
	MemIndirect func(baseReg string) string

	// PushStringAddr renders the instructions that push the address of the
	// Nth string literal. The mechanism (mov vs lea, bare label vs
	// rip-relative) differs enough between NASM and GAS that it cannot be
	// expressed through the generic two-operand helper below.
	PushStringAddr func(p Profile, index int) []string

	// PushMemAddr renders the instructions that push the base address of
	// the bulk memory region.
	PushMemAddr func(p Profile) []string

	ArgReg1    string
	ArgReg2    string
	ExitArgReg string

	ShadowSpace bool

	DataConstants  string
	StringLiteral  func(index int, text string) string
	BSSReservation func(label string, size int) string
}

func (p Profile) reg(name string) string { return p.RegPrefix + name }
func (p Profile) imm(text string) string { return p.ImmPrefix + text }

func (p Profile) two(mnemonic, dst, src string) string {
	if p.TwoOperandReversed {
		return fmt.Sprintf("    %s %s, %s\n", mnemonic, src, dst)
	}
	return fmt.Sprintf("    %s %s, %s\n", mnemonic, dst, src)
}

func (p Profile) one(mnemonic, operand string) string {
	return fmt.Sprintf("    %s %s\n", mnemonic, operand)
}

func (p Profile) zero(mnemonic string) string {
	return fmt.Sprintf("    %s\n", mnemonic)
}

func (p Profile) label(name string) string { return name + ":\n" }

func (p Profile) comment(text string) string {
	return fmt.Sprintf("    %s -- %s --\n", p.CommentPrefix, text)
}

func addrLabel(i int) string { return fmt.Sprintf("addr_%d", i) }

const memCapacity = 720000

// NASMLinux64 targets NASM syntax under the System V AMD64 ABI, entering
// at _start per a freestanding Linux ELF binary.
var NASMLinux64 = Profile{
	Name:             "nasm-linux64",
	CommentPrefix:    ";;",
	FileExtension:    ".asm",
	EntrySymbol:      "_start",
	GlobalDirective:  "global ",
	ExternDirectives: []string{"extern exit\n", "extern printf\n"},
	SectionText:      "SECTION .text\n",
	SectionData:      "SECTION .data\n",
	SectionBSS:       "SECTION .bss\n",
	RegPrefix:        "",
	ImmPrefix:        "",
	MemRel:           func(label string) string { return fmt.Sprintf("[rel %s]", label) },
	MemIndirect:      func(baseReg string) string { return fmt.Sprintf("[%s]", baseReg) },
	PushStringAddr: func(p Profile, index int) []string {
		return []string{
			p.two("mov", p.reg("rax"), fmt.Sprintf("str_%d", index)),
			p.one("push", p.reg("rax")),
		}
	},
	PushMemAddr: func(p Profile) []string {
		return []string{p.one("push", "mem")}
	},
	ArgReg1:        "rdi",
	ArgReg2:        "rsi",
	ExitArgReg:     "rdi",
	ShadowSpace:    false,
	DataConstants:  "    fmt db '%u', 10, 0\n    fmt_char db '%c', 0\n    fmt_str db '%s', 0\n",
	StringLiteral:  nasmStringLiteral,
	BSSReservation: func(label string, size int) string { return fmt.Sprintf("    %s resb %d\n", label, size) },
}

// GASLinux64 targets GAS (AT&T) syntax under the System V AMD64 ABI,
// entering at a plain `main` symbol linked against the C runtime.
var GASLinux64 = Profile{
	Name:             "gas-linux64",
	CommentPrefix:    "#",
	FileExtension:    ".s",
	EntrySymbol:      "main",
	GlobalDirective:  ".globl ",
	ExternDirectives: nil,
	SectionText:      ".text\n",
	SectionData:      ".data\n",
	SectionBSS:       ".bss\n",
	RegPrefix:        "%",
	ImmPrefix:        "$",
	TwoOperandReversed: true,
	MemRel:      func(label string) string { return fmt.Sprintf("%s(%%rip)", label) },
	MemIndirect: func(baseReg string) string { return fmt.Sprintf("(%s)", baseReg) },
	PushStringAddr: func(p Profile, index int) []string {
		return []string{
			p.two("lea", p.reg("rax"), p.MemRel(fmt.Sprintf("str_%d", index))),
			p.one("push", p.reg("rax")),
		}
	},
	PushMemAddr: func(p Profile) []string {
		return []string{
			p.two("lea", p.reg("rax"), p.MemRel("mem")),
			p.one("push", p.reg("rax")),
		}
	},
	ArgReg1:        "rdi",
	ArgReg2:        "rsi",
	ExitArgReg:     "rdi",
	ShadowSpace:    false,
	DataConstants:  "    fmt: .string \"%u\\n\"\n    fmt_char: .string \"%c\"\n    fmt_str: .string \"%s\"\n",
	StringLiteral:  gasStringLiteral,
	BSSReservation: func(label string, size int) string { return fmt.Sprintf("    .comm %s, %d\n", label, size) },
}

// NASMWin64 targets NASM syntax under the Windows x64 calling convention,
// wrapping every C-runtime call with the mandatory 32-byte shadow space.
var NASMWin64 = Profile{
	Name:             "nasm-win64",
	CommentPrefix:    ";;",
	FileExtension:    ".asm",
	EntrySymbol:      "main",
	GlobalDirective:  "global ",
	ExternDirectives: []string{"extern printf\n", "extern exit\n"},
	SectionText:      "SECTION .text\n",
	SectionData:      "SECTION .data\n",
	SectionBSS:       "SECTION .bss\n",
	RegPrefix:        "",
	ImmPrefix:        "",
	MemRel:           func(label string) string { return fmt.Sprintf("[rel %s]", label) },
	MemIndirect:      func(baseReg string) string { return fmt.Sprintf("[%s]", baseReg) },
	PushStringAddr: func(p Profile, index int) []string {
		return []string{
			p.two("mov", p.reg("rax"), fmt.Sprintf("str_%d", index)),
			p.one("push", p.reg("rax")),
		}
	},
	PushMemAddr: func(p Profile) []string {
		return []string{p.one("push", "mem")}
	},
	ArgReg1:        "rcx",
	ArgReg2:        "rdx",
	ExitArgReg:     "rcx",
	ShadowSpace:    true,
	DataConstants:  "    fmt db '%u', 10, 0\n    fmt_char db '%c', 0\n    fmt_str db '%s', 0\n",
	StringLiteral:  nasmStringLiteral,
	BSSReservation: func(label string, size int) string { return fmt.Sprintf("    %s resb %d\n", label, size) },
}

// GASWin64 targets GAS (AT&T) syntax under the Windows x64 calling
// convention.
var GASWin64 = Profile{
	Name:             "gas-win64",
	CommentPrefix:    "#",
	FileExtension:    ".s",
	EntrySymbol:      "main",
	GlobalDirective:  ".globl ",
	ExternDirectives: nil,
	SectionText:      ".text\n",
	SectionData:      ".data\n",
	SectionBSS:       ".bss\n",
	RegPrefix:        "%",
	ImmPrefix:        "$",
	TwoOperandReversed: true,
	MemRel:      func(label string) string { return fmt.Sprintf("%s(%%rip)", label) },
	MemIndirect: func(baseReg string) string { return fmt.Sprintf("(%s)", baseReg) },
	PushStringAddr: func(p Profile, index int) []string {
		return []string{
			p.two("lea", p.reg("rax"), p.MemRel(fmt.Sprintf("str_%d", index))),
			p.one("push", p.reg("rax")),
		}
	},
	PushMemAddr: func(p Profile) []string {
		return []string{
			p.two("lea", p.reg("rax"), p.MemRel("mem")),
			p.one("push", p.reg("rax")),
		}
	},
	ArgReg1:        "rcx",
	ArgReg2:        "rdx",
	ExitArgReg:     "rcx",
	ShadowSpace:    true,
	DataConstants:  "    fmt: .string \"%u\\n\"\n    fmt_char: .string \"%c\"\n    fmt_str: .string \"%s\"\n",
	StringLiteral:  gasStringLiteral,
	BSSReservation: func(label string, size int) string { return fmt.Sprintf("    .comm %s, %d\n", label, size) },
}
