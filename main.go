// Copyright © 2018 The ELPS authors

// Command toylisp is the interpreter's entry point; all behavior lives
// in package cmd.
package main

import "github.com/giorgioyu125/toylisp/cmd"

func main() {
	cmd.Execute()
}
