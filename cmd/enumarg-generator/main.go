// Package main provides the CLI entrypoint for enumarg-generator.
//
// enumarg-generator derives conversions between Go enums and the unsigned
// integers carried as scalar arguments of a D-Bus style wire encoding:
//   - Loads packages (AST + go/types) and collects integer enums
//   - Validates discriminants against the requested width
//   - Generates a total enum -> integer and a fallible integer -> enum function
//   - Explains failures with rustc-style diagnostics
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"enumarg-generator/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	os.Exit(cli.GetExitCode(err))
}
