// Copyright © 2018 The ELPS authors

// Package repl implements the interactive read-eval-print loop:
// readline-backed line editing and history, a symbol completer, and a
// loop that parses one top-level form at a time and prints either its
// value or its error.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/giorgioyu125/toylisp/lisp"
	"github.com/giorgioyu125/toylisp/parser"
	"github.com/giorgioyu125/toylisp/parser/token"
	"github.com/muesli/reflow/wordwrap"
)

// outputWidth is the column at which a printed result or error is
// wrapped.
const outputWidth = 100

// Wrap word-wraps s to outputWidth columns, for printing a result or
// error value that may be long enough to want wrapping in a terminal.
// Exported so cmd's file-mode driver can apply the same wrapping.
func Wrap(s string) string {
	return wordwrap.String(s, outputWidth)
}

// Run starts an interactive session against ctx, printing prompt before
// each new top-level form and a continuation prompt (prompt's width,
// blank) while a form is incomplete. It returns when the input stream
// is closed (Ctrl-D) or ends with an error other than interrupt.
func Run(ctx *lisp.Context, prompt string) error {
	cont := strings.Repeat(" ", len(prompt))

	rl, err := readline.NewEx(&readline.Config{
		Stdout:            ctx.Runtime.Stdout,
		Stderr:            ctx.Runtime.Stderr,
		Prompt:            prompt,
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{ctx: ctx},
	})
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}

		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			continue
		}
		if err != nil {
			return err
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		form, perr := parseOne(ctx, buf.String())
		if perr == io.EOF {
			continue
		}
		if perr != nil {
			if isIncomplete(perr) {
				continue
			}
			fmt.Fprintln(ctx.Runtime.Stderr, perr) //nolint:errcheck // best-effort
			buf.Reset()
			continue
		}

		result := ctx.EvalTopLevel(form)
		fmt.Fprintln(ctx.Runtime.Stdout, Wrap(result.String())) //nolint:errcheck // best-effort
		ctx.ResetScratch()
		buf.Reset()
	}
}

func parseOne(ctx *lisp.Context, src string) (*lisp.LVal, error) {
	rd, err := parser.NewReader(ctx, "stdin", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return rd.Next()
}

// isIncomplete reports whether err is the "ran out of input mid-form"
// case, which should prompt for another line rather than being reported
// as a syntax error — an unterminated string literal, an open list that
// never saw its close paren, or a reader macro with nothing after it.
func isIncomplete(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"unexpected end of input",
		"unterminated string literal",
		"unterminated escape sequence",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	var locErr *token.LocationError
	return errors.As(err, &locErr) && strings.Contains(locErr.Err.Error(), "unexpected end of input")
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".toylisp_history")
}
