// This is the main-driver for the Corth compiler.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/LensPlaysGames/corth/compiler"
	"github.com/LensPlaysGames/corth/diag"
)

func main() {
	var (
		help    bool
		verbose bool

		outputName string

		assemblerPath    string
		assemblerOptions string
		addAssemblerOpts string

		linkerPath    string
		linkerOptions string
		addLinkerOpts string

		win   bool
		win64 bool

		linux   bool
		linux64 bool

		win32, linux32 bool

		com  bool
		gen  bool
		nasm bool
		gas  bool
	)

	flag.BoolVar(&help, "h", false, "Print usage and exit.")
	flag.BoolVar(&help, "help", false, "Print usage and exit.")
	flag.BoolVar(&verbose, "v", false, "Log each pipeline stage as it runs.")
	flag.BoolVar(&verbose, "verbose", false, "Log each pipeline stage as it runs.")

	flag.StringVar(&outputName, "o", "a", "Base name for the generated assembly and binary.")
	flag.StringVar(&outputName, "output-name", "a", "Base name for the generated assembly and binary.")

	flag.StringVar(&assemblerPath, "a", "", "Path to the assembler executable.")
	flag.StringVar(&assemblerPath, "assembler-path", "", "Path to the assembler executable.")
	flag.StringVar(&assemblerOptions, "ao", "", "Options passed to the assembler, replacing the defaults.")
	flag.StringVar(&assemblerOptions, "assembler-options", "", "Options passed to the assembler, replacing the defaults.")
	flag.StringVar(&addAssemblerOpts, "add-ao", "", "Options appended to the default assembler options.")

	flag.StringVar(&linkerPath, "l", "", "Path to the linker executable.")
	flag.StringVar(&linkerPath, "linker-path", "", "Path to the linker executable.")
	flag.StringVar(&linkerOptions, "lo", "", "Options passed to the linker, replacing the defaults.")
	flag.StringVar(&linkerOptions, "linker-options", "", "Options passed to the linker, replacing the defaults.")
	flag.StringVar(&addLinkerOpts, "add-lo", "", "Options appended to the default linker options.")

	flag.BoolVar(&win, "win", false, "Target Windows x64.")
	flag.BoolVar(&win64, "win64", false, "Target Windows x64.")
	flag.BoolVar(&linux, "linux", false, "Target Linux x64.")
	flag.BoolVar(&linux64, "linux64", false, "Target Linux x64.")
	flag.BoolVar(&win32, "win32", false, "Unsupported: 32-bit targets are rejected.")
	flag.BoolVar(&linux32, "linux32", false, "Unsupported: 32-bit targets are rejected.")

	flag.BoolVar(&com, "com", false, "Assemble and link the program (default).")
	flag.BoolVar(&com, "compile", false, "Assemble and link the program (default).")
	flag.BoolVar(&gen, "gen", false, "Only generate the assembly file; skip the assembler and linker.")
	flag.BoolVar(&gen, "generate", false, "Only generate the assembly file; skip the assembler and linker.")

	flag.BoolVar(&nasm, "NASM", false, "Emit NASM syntax (default).")
	flag.BoolVar(&gas, "GAS", false, "Emit GAS syntax.")

	flag.Parse()

	if help {
		flag.Usage()
		return
	}

	if win32 || linux32 {
		fmt.Fprintln(os.Stderr, "corth: 32-bit targets are not supported")
		os.Exit(1)
	}

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: corth [flags] <source-path>")
		os.Exit(1)
	}
	sourcePath := flag.Args()[0]

	platform := compiler.Linux64
	if win || win64 {
		platform = compiler.Win64
	}
	if (win || win64) && (linux || linux64) {
		fmt.Fprintln(os.Stderr, "corth: -win and -linux are mutually exclusive")
		os.Exit(1)
	}

	syntax := compiler.NASM
	if gas {
		syntax = compiler.GAS
	}

	mode := compiler.ModeCompile
	if gen {
		mode = compiler.ModeGenerate
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corth: cannot read %s: %s\n", sourcePath, err)
		os.Exit(1)
	}

	opts := compiler.Options{
		SourcePath: sourcePath,
		OutputName: outputName,
		Platform:   platform,
		Syntax:     syntax,
		Mode:       mode,
		Verbose:    verbose,
	}

	sink := diag.NewWriterSink(os.Stderr)
	comp := compiler.New(opts, sink)

	asm, err := comp.Compile(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "corth: %s\n", err)
		os.Exit(1)
	}

	asmPath := outputName + opts.FileExtension()
	if err := os.WriteFile(asmPath, []byte(asm), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "corth: cannot write %s: %s\n", asmPath, err)
		os.Exit(1)
	}

	if mode == compiler.ModeGenerate {
		return
	}

	if err := assembleAndLink(asmPath, outputName, platform, syntax, assemblerPath, assemblerOptions, addAssemblerOpts, linkerPath, linkerOptions, addLinkerOpts); err != nil {
		fmt.Fprintf(os.Stderr, "corth: %s\n", err)
		os.Exit(1)
	}
}

// assembleAndLink hands the generated assembly file to an external
// assembler and linker, mirroring the defaults the hosting toolchain
// normally has on PATH for each (platform, syntax) pair while letting the
// caller override every path and option string.
func assembleAndLink(asmPath, outputName string, platform compiler.Platform, syntax compiler.Syntax, assemblerPath, assemblerOptions, addAssemblerOpts, linkerPath, linkerOptions, addLinkerOpts string) error {
	if assemblerPath == "" {
		if syntax == compiler.NASM {
			assemblerPath = "nasm"
		} else {
			assemblerPath = "as"
		}
	}
	if linkerPath == "" {
		linkerPath = "ld"
	}

	defaultAsmOpts := defaultAssemblerArgs(platform, syntax, asmPath, outputName)
	asmArgs := splitNonEmpty(assemblerOptions)
	if len(asmArgs) == 0 {
		asmArgs = defaultAsmOpts
	}
	asmArgs = append(asmArgs, splitNonEmpty(addAssemblerOpts)...)

	asmCmd := exec.Command(assemblerPath, asmArgs...)
	asmCmd.Stdout = os.Stdout
	asmCmd.Stderr = os.Stderr
	if err := asmCmd.Run(); err != nil {
		return fmt.Errorf("assembler failed: %w", err)
	}

	defaultLinkOpts := defaultLinkerArgs(platform, outputName)
	linkArgs := splitNonEmpty(linkerOptions)
	if len(linkArgs) == 0 {
		linkArgs = defaultLinkOpts
	}
	linkArgs = append(linkArgs, splitNonEmpty(addLinkerOpts)...)

	linkCmd := exec.Command(linkerPath, linkArgs...)
	linkCmd.Stdout = os.Stdout
	linkCmd.Stderr = os.Stderr
	var stdin bytes.Buffer
	linkCmd.Stdin = &stdin
	if err := linkCmd.Run(); err != nil {
		return fmt.Errorf("linker failed: %w", err)
	}

	return nil
}

func defaultAssemblerArgs(platform compiler.Platform, syntax compiler.Syntax, asmPath, outputName string) []string {
	if syntax == compiler.NASM {
		format := "elf64"
		if platform == compiler.Win64 {
			format = "win64"
		}
		return []string{"-f", format, asmPath, "-o", outputName + ".o"}
	}
	return []string{"-o", outputName + ".o", asmPath}
}

func defaultLinkerArgs(platform compiler.Platform, outputName string) []string {
	if platform == compiler.Win64 {
		return []string{"-o", outputName + ".exe", outputName + ".o", "-lmsvcrt"}
	}
	return []string{"-o", outputName, outputName + ".o", "-lc", "--dynamic-linker", "/lib64/ld-linux-x86-64.so.2"}
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Fields(s)
}
