// Package main provides the fleetops CLI: the dashboard server plus list,
// export and trend commands over the same fleet service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// systemError marks failures of the environment rather than of the
// user's input: config files, storage, sockets, output files.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

func sysErr(format string, args ...any) error {
	return systemError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "fleetops:", err)
		return exitCode(err)
	}
	return exitSuccess
}

func exitCode(err error) int {
	var se systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
