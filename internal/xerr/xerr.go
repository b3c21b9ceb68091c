// Package xerr defines the error taxonomy shared by every osushell
// component: user mistakes, load failures, runtime faults, and fatal
// conditions. Callers match against the sentinels with errors.Is.
package xerr

import "errors"

// UserError: unknown command, bad arity, invalid name, unknown policy.
// Reported to the operator; the shell keeps running.
var (
	ErrUnknownCommand = errors.New("Unknown Command")
	ErrTooManyTokens  = errors.New("Bad command: Too many tokens")
	ErrBadCommand     = errors.New("bad command")
	ErrBadMkdir       = errors.New("Bad command: my_mkdir")
	ErrBadCd          = errors.New("Bad command: my_cd")
	ErrUnknownPolicy  = errors.New("bad command: unknown scheduling policy")
	ErrNestedExec     = errors.New("bad command: nested run/exec is not permitted")
)

// LoadError: the file is missing, or script-store capacity is exhausted.
// exec/run aborts and cleans up any PCBs it had already created.
var (
	ErrFileNotFound    = errors.New("Bad command: File not found")
	ErrScriptStoreFull = errors.New("script store is full")
)

// RuntimeError: an unrecoverable page fetch for a single process.
// The offending process is destroyed; scheduling continues for others.
var ErrUnrecoverableFault = errors.New("unable to load instruction: page evicted before use")

// FatalError: no evictable frame exists. The shell exits.
var ErrNoEvictableFrame = errors.New("fatal: no evictable frame available")

// ExitCode maps the well-known condition codes from the CLI table.
type ExitCode int

const (
	CodeOK             ExitCode = 0
	CodeUnknown        ExitCode = 1
	CodeTooManyTokens  ExitCode = 2
	CodeFileNotFound   ExitCode = 3
	CodeMkdir          ExitCode = 4
	CodeCd             ExitCode = 5
)

// Code classifies err into its CLI exit/error code, defaulting to
// CodeUnknown for anything not in the known taxonomy.
func Code(err error) ExitCode {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrTooManyTokens):
		return CodeTooManyTokens
	case errors.Is(err, ErrFileNotFound):
		return CodeFileNotFound
	case errors.Is(err, ErrBadMkdir):
		return CodeMkdir
	case errors.Is(err, ErrBadCd):
		return CodeCd
	default:
		return CodeUnknown
	}
}
