package shell

import (
	"fmt"
	"io"

	"github.com/osushell/osushell/internal/xerr"
)

const maxArgsSize = 7

// ScriptRunner is the interface the interpreter needs from the kernel
// to honor `run` and `exec` without depending on the scheduler package
// directly — keeps the core command dispatcher (this package) decoupled
// from process scheduling: the interpreter only needs to know these
// verbs (run, exec, quit) exist.
type ScriptRunner interface {
	Run(script string) error
	Exec(progs []string, policy string, multithread, background bool) error
	Quit() error
}

// Interpreter dispatches tokenized commands exactly as
// arity-checked, case-sensitive command names, reporting a fixed
// error/exit code table.
type Interpreter struct {
	Vars   *VarStore
	Out    io.Writer
	Runner ScriptRunner
}

// New builds an Interpreter bound to vars and runner, writing
// command output to out.
func New(vars *VarStore, runner ScriptRunner, out io.Writer) *Interpreter {
	return &Interpreter{Vars: vars, Out: out, Runner: runner}
}

// Execute tokenizes and dispatches line, returning the error/exit
// code of the last command in the line that failed (CodeOK and a nil
// error when none did). A ';'-chained line
// runs every command left to right, stopping only at the end of input
// — matching parseInput's unconditional recursion regardless of
// intermediate error codes.
func (i *Interpreter) Execute(line string) (xerr.ExitCode, error) {
	commands := SplitChained(line)
	var lastErr error
	for _, args := range commands {
		if err := i.Dispatch(args); err != nil {
			lastErr = err
			fmt.Fprintln(i.Out, err)
		}
	}
	return xerr.Code(lastErr), lastErr
}

// Dispatch runs a single already-tokenized command.
func (i *Interpreter) Dispatch(args []string) error {
	if len(args) < 1 {
		return xerr.ErrUnknownCommand
	}
	if len(args) > maxArgsSize {
		return xerr.ErrTooManyTokens
	}

	switch args[0] {
	case "help":
		if len(args) != 1 {
			return xerr.ErrUnknownCommand
		}
		return i.help()

	case "quit":
		if len(args) != 1 {
			return xerr.ErrUnknownCommand
		}
		return i.Runner.Quit()

	case "set":
		if len(args) < 3 || len(args) > maxArgsSize {
			return xerr.ErrUnknownCommand
		}
		i.Vars.Set(args[1], JoinValues(args[2:]))
		return nil

	case "print":
		if len(args) != 2 {
			return xerr.ErrUnknownCommand
		}
		return i.print(args[1])

	case "echo":
		if len(args) != 2 {
			return xerr.ErrUnknownCommand
		}
		return i.echo(args[1])

	case "my_ls":
		if len(args) != 1 {
			return xerr.ErrUnknownCommand
		}
		return i.Ls()

	case "my_mkdir":
		if len(args) != 2 {
			return xerr.ErrUnknownCommand
		}
		return i.Mkdir(args[1])

	case "my_touch":
		if len(args) != 2 {
			return xerr.ErrUnknownCommand
		}
		return i.Touch(args[1])

	case "my_cd":
		if len(args) != 2 {
			return xerr.ErrUnknownCommand
		}
		return i.Cd(args[1])

	case "run":
		if len(args) != 2 {
			return xerr.ErrUnknownCommand
		}
		return i.Runner.Run(args[1])

	case "exec":
		return i.execCommand(args[1:])

	default:
		return xerr.ErrUnknownCommand
	}
}

// execCommand parses exec's free-order argument list: 1-3 program
// names, exactly one policy token, and the optional MT/# flags.
func (i *Interpreter) execCommand(rest []string) error {
	if len(rest) < 2 || len(rest) > 6 {
		return xerr.ErrBadCommand
	}

	var progs []string
	var policy string
	var multithread, background bool

	for _, tok := range rest {
		switch tok {
		case "MT":
			multithread = true
		case "#":
			background = true
		case "FCFS", "SJF", "RR", "AGING", "RR30":
			if policy != "" {
				return xerr.ErrBadCommand
			}
			policy = tok
		default:
			if len(progs) >= 3 {
				return xerr.ErrBadCommand
			}
			progs = append(progs, tok)
		}
	}

	if policy == "" || len(progs) == 0 {
		return xerr.ErrBadCommand
	}

	return i.Runner.Exec(progs, policy, multithread, background)
}

func (i *Interpreter) print(name string) error {
	if v, ok := i.Vars.Get(name); ok {
		fmt.Fprintln(i.Out, v)
	} else {
		fmt.Fprintln(i.Out, "Variable does not exist")
	}
	return nil
}

func (i *Interpreter) echo(tok string) error {
	if len(tok) > 0 && tok[0] == '$' {
		if v, ok := i.Vars.Get(tok[1:]); ok {
			fmt.Fprintln(i.Out, v)
		} else {
			fmt.Fprintln(i.Out)
		}
		return nil
	}
	fmt.Fprintln(i.Out, tok)
	return nil
}

const helpText = `COMMAND            DESCRIPTION
help                Displays all the commands
quit                Exits / terminates the shell with "Bye!"
set VAR STRING      Assigns a value to shell memory
print VAR           Displays the STRING assigned to VAR
echo TOK            Displays TOK, or the value of $VAR
my_ls               Lists the current directory
my_mkdir NAME       Creates a directory
my_touch NAME       Creates an empty file
my_cd NAME          Changes directory
run SCRIPT          Executes SCRIPT under FCFS
exec P1 [P2 [P3]] POLICY [MT] [#]
                    Schedules 1-3 programs under POLICY
`

func (i *Interpreter) help() error {
	fmt.Fprintln(i.Out, helpText)
	return nil
}
