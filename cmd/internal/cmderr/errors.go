package cmderr

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes of the commands.
const (
	// CodeFailure is returned when the command could not complete its job.
	CodeFailure = 1
	// CodeUsage is returned on invalid arguments or configuration.
	CodeUsage = 2
)

// ExitErr specific error for ExitOnErr function that passes the exit code and error caused.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

func (x ExitErr) Unwrap() error { return x.Cause }

// Usage wraps err into ExitErr with CodeUsage.
func Usage(err error) error {
	return ExitErr{Code: CodeUsage, Cause: err}
}

// Code returns exit code for err: 0 for nil, the code of ExitErr or
// CodeFailure otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var e ExitErr
	if !errors.As(err, &e) {
		return CodeFailure
	}

	return e.Code
}

// ExitOnErr writes error to os.Stderr and calls os.Exit with passed exit code or by default 1.
// Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(Code(err))
	}
}
