// Copyright © 2018 The ELPS authors

// Package cmd implements toylisp's command-line interface: a cobra
// root command with a viper-backed config file, collapsed to a
// three-mode contract (REPL with no arguments, file mode with one,
// usage error otherwise) plus flags for the debugger, tracer, and
// language server.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/giorgioyu125/toylisp/debugger"
	"github.com/giorgioyu125/toylisp/debugger/dapserver"
	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/lsp"
	"github.com/giorgioyu125/toylisp/parser"
	"github.com/giorgioyu125/toylisp/parser/regexparser"
	"github.com/giorgioyu125/toylisp/repl"
	"github.com/giorgioyu125/toylisp/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	debugFlag    bool
	traceFlag    bool
	traceBackend string
	lspFlag      bool
	regexParser  bool
)

var rootCmd = &cobra.Command{
	Use:   "toylisp [file]",
	Short: "toylisp — a small Lisp with arena-backed memory management",
	Long: `toylisp is a tree-walking interpreter for a small Lisp dialect with
lexical closures, macros, quasiquotation, and a two-arena memory
discipline (a permanent arena for global bindings, a scratch arena
reset after every top-level form).

  toylisp              Start an interactive REPL
  toylisp file.lisp     Evaluate every top-level form in file.lisp
  toylisp --debug file.lisp   Evaluate under the Debug Adapter Protocol
  toylisp --lsp               Serve the language server over stdio`,
	Args: cobra.ArbitraryArgs, // arg-count policy (0/1/2+) is enforced in runRoot
	RunE: runRoot,
}

// Execute runs rootCmd, printing any error it returns and exiting with
// status 1. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.toylisp.yaml)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "evaluate under the Debug Adapter Protocol, listening on stdio")
	rootCmd.Flags().BoolVar(&traceFlag, "trace", false, "emit tracing spans for each top-level cycle and function call")
	rootCmd.Flags().StringVar(&traceBackend, "trace-backend", "otel", `tracing backend to use with --trace: "otel" or "opencensus"`)
	rootCmd.Flags().BoolVar(&lspFlag, "lsp", false, "serve the language server over stdio instead of evaluating anything")
	rootCmd.Flags().BoolVar(&regexParser, "regex-parser", false, "read source with the goparsec-based reader instead of the recursive-descent one")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".toylisp")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // absence of a config file is not an error
}

func runRoot(cmd *cobra.Command, args []string) error {
	if lspFlag {
		return lsp.Serve()
	}
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: toylisp [file]")
		os.Exit(1)
	}

	ctx := lisp.NewContext()
	lisp.Bootstrap(ctx)

	if debugFlag {
		srv := dapserver.New(os.Stdin, os.Stdout)
		ctx.Runtime.Debugger = debugger.New(srv)
		go srv.Serve() //nolint:errcheck // the debug session ends when the process does
	}
	if traceFlag {
		shutdown, tracer, err := newTracer(cmd.Context(), traceBackend)
		if err != nil {
			return err
		}
		if shutdown != nil {
			defer shutdown(cmd.Context())
		}
		ctx.Runtime.Tracer = tracer
	}

	if len(args) == 0 {
		return repl.Run(ctx, filepath.Base(os.Args[0])+"> ")
	}
	return runFile(ctx, args[0])
}

// newTracer picks a lisp.Tracer implementation by name. "otel" (the
// default) flushes to stdout on shutdown; "opencensus" has no shutdown
// step of its own since it reports through whatever exporter the
// process has registered globally.
func newTracer(parent context.Context, backend string) (func(context.Context) error, lisp.Tracer, error) {
	switch backend {
	case "", "otel":
		return tracing.New("toylisp")
	case "opencensus":
		return nil, tracing.NewOpenCensus(parent), nil
	default:
		return nil, nil, fmt.Errorf("unknown trace backend %q (want %q or %q)", backend, "otel", "opencensus")
	}
}

func runFile(ctx *lisp.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // best-effort close after a read-only open

	start := time.Now()
	if regexParser {
		return runFileRegexParser(ctx, path, f, start)
	}

	rd, err := parser.NewReader(ctx, path, f)
	if err != nil {
		return err
	}
	for {
		form, err := rd.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(ctx.Runtime.Stderr, err) //nolint:errcheck // best-effort
			os.Exit(1)
		}
		result := ctx.EvalTopLevel(form)
		fmt.Fprintln(ctx.Runtime.Stdout, repl.Wrap(result.String())) //nolint:errcheck // best-effort
		ctx.ResetScratch()
	}
	fmt.Fprintf(ctx.Runtime.Stderr, "; elapsed: %s\n", time.Since(start))
	return nil
}

// runFileRegexParser is runFile's counterpart for the --regex-parser
// flag. regexparser.ReadAll parses the whole file into the scratch
// arena up front rather than one form at a time, so unlike runFile's
// loop this must NOT reset the scratch arena between evaluations —
// doing so would invalidate the not-yet-evaluated forms still sitting
// later in the same arena. The arena is reset once, after every form
// has been evaluated.
func runFileRegexParser(ctx *lisp.Context, path string, f *os.File, start time.Time) error {
	forms, err := regexparser.ReadAll(ctx, path, f)
	if err != nil {
		fmt.Fprintln(ctx.Runtime.Stderr, err) //nolint:errcheck // best-effort
		os.Exit(1)
	}
	for _, form := range forms {
		result := ctx.EvalTopLevel(form)
		fmt.Fprintln(ctx.Runtime.Stdout, repl.Wrap(result.String())) //nolint:errcheck // best-effort
	}
	ctx.ResetScratch()
	fmt.Fprintf(ctx.Runtime.Stderr, "; elapsed: %s\n", time.Since(start))
	return nil
}
