// Command sproutc is the front-end driver: it wires the lexer, grammar
// loader, and LL(1) parser into four independently invocable modes,
// replacing original_source's interactive numbered-menu driver with
// plain CLI flags.
package main

import (
	"fmt"
	"os"

	"github.com/pborman/getopt"
	"go.uber.org/zap"

	"github.com/sprout-lang/sproutc/internal/compiler"
	"github.com/sprout-lang/sproutc/internal/report"
)

func main() {
	mode := getopt.StringLong("mode", 'm', "parse", "mode: strip | tokens | parse | timing")
	inPath := getopt.StringLong("in", 'i', "", "input source file")
	outPath := getopt.StringLong("out", 'o', "", "output file (defaults to stdout)")
	grammarPath := getopt.StringLong("grammar", 'g', "grammar.txt", "grammar file")
	debug := getopt.BoolLong("debug", 'd', "log LL(1) parse-table conflicts and other diagnostics")
	getopt.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "sproutc: --in is required")
		getopt.Usage()
		os.Exit(2)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}

	var logger *zap.Logger
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fatal(err)
		}
		logger = l
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	switch *mode {
	case "strip":
		runStrip(*inPath, out)
	case "tokens":
		runTokens(*inPath, *grammarPath, logger, out)
	case "parse":
		runParse(*inPath, *grammarPath, logger, out)
	case "timing":
		runTiming(*inPath, *grammarPath, logger, out)
	default:
		fmt.Fprintf(os.Stderr, "sproutc: unknown mode %q (want strip, tokens, parse, or timing)\n", *mode)
		os.Exit(2)
	}
}

func runStrip(inPath string, out *os.File) {
	src, err := os.Open(inPath)
	if err != nil {
		fatal(err)
	}
	defer src.Close()
	if err := report.StripComments(out, src); err != nil {
		fatal(err)
	}
}

func runTokens(inPath, grammarPath string, logger *zap.Logger, out *os.File) {
	c, err := compiler.New(grammarPath, logger)
	if err != nil {
		fatal(err)
	}
	src, err := os.Open(inPath)
	if err != nil {
		fatal(err)
	}
	defer src.Close()

	run := c.Lex(src)
	report.WriteTokenTable(out, run.Tokens)
	for _, msg := range report.LexicalDiagnostics(run.Tokens) {
		fmt.Fprintln(os.Stderr, msg)
	}
}

func runParse(inPath, grammarPath string, logger *zap.Logger, out *os.File) {
	c, err := compiler.New(grammarPath, logger)
	if err != nil {
		fatal(err)
	}
	src, err := os.Open(inPath)
	if err != nil {
		fatal(err)
	}
	defer src.Close()

	run := c.LexAndParse(src)
	if len(run.Diags) > 0 {
		report.WriteParseError(out)
		for _, d := range run.Diags {
			fmt.Fprintln(os.Stderr, d.Message)
		}
		os.Exit(1)
	}
	report.WriteParseTree(out, run.Tree)
}

func runTiming(inPath, grammarPath string, logger *zap.Logger, out *os.File) {
	c, err := compiler.New(grammarPath, logger)
	if err != nil {
		fatal(err)
	}
	src, err := os.Open(inPath)
	if err != nil {
		fatal(err)
	}
	defer src.Close()

	var run *compiler.Run
	timing := report.Time(func() {
		run = c.LexAndParse(src)
	})

	if len(run.Diags) == 0 {
		report.WriteParseTree(out, run.Tree)
	} else {
		report.WriteParseError(out)
	}
	report.WriteTiming(os.Stderr, timing)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "sproutc:", err)
	os.Exit(1)
}
