package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Command completed and nothing failed
	ExitTestFailed = 1 // A strict check found failed cases or missing media
	ExitError      = 2 // Configuration or runtime error
)

// TestFailureError indicates that the command ran successfully but the
// evidence it inspected contains failures.
type TestFailureError struct {
	Message string
}

func (e *TestFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var testFailureErr *TestFailureError
		if errors.As(err, &testFailureErr) {
			os.Exit(ExitTestFailed)
		}

		os.Exit(ExitError)
	}
}
