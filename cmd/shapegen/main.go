/*
shapegen is a console utility translating grammar description to a Go package
containing syntax tree types, parser, visitor, and printer.
Usage is

	shapegen generate [-p <name>] [-o <dir>] [--backup] <file>
	shapegen check <file>
	shapegen inspect [--yaml] <file>
	shapegen diff [-p <name>] [-o <dir>] <file>

<file> is a grammar description file parsable by langdef.Parse().
Settings are read from shapegen.toml next to grammar file if present, flags override them.
*/
package main

import (
	"context"
	"os"
)

func main() {
	cmd := NewCLI(os.Stdout)
	if e := cmd.ExecuteContext(context.Background()); e != nil {
		printError(os.Stderr, e)
		os.Exit(3)
	}
}
