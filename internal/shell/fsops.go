package shell

import (
	"fmt"
	"os"
	"sort"

	"github.com/osushell/osushell/internal/xerr"
)

// isAlphaNumeric reports whether name contains only ASCII letters and
// digits, the constraint every my_* command's NAME argument must meet.
func isAlphaNumeric(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// Ls lists the current directory's non-hidden entries, alphabetized,
// one per line — my_ls.
func (i *Interpreter) Ls() error {
	entries, err := os.ReadDir(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "my_ls couldn't scan the directory:", err)
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(e.Name()) > 0 && e.Name()[0] == '.' {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(i.Out, n)
	}
	return nil
}

// Mkdir creates a directory named name (or the value of $name if it
// starts with '$') — my_mkdir.
func (i *Interpreter) Mkdir(name string) error {
	resolved, ok := i.resolveMaybeVar(name)
	if !ok || !isAlphaNumeric(resolved) {
		return xerr.ErrBadMkdir
	}
	if err := os.Mkdir(resolved, 0o777); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong in my_mkdir:", err)
	}
	return nil
}

// Touch creates an empty file named path — my_touch.
func (i *Interpreter) Touch(path string) error {
	if !isAlphaNumeric(path) {
		return xerr.ErrBadCommand
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if err != nil {
		fmt.Fprintln(i.Out, "my_touch:", err)
		return nil
	}
	return f.Close()
}

// Cd changes the shell's working directory — my_cd.
func (i *Interpreter) Cd(path string) error {
	if !isAlphaNumeric(path) {
		return xerr.ErrBadCd
	}
	if err := os.Chdir(path); err != nil {
		return xerr.ErrBadCd
	}
	return nil
}

// resolveMaybeVar returns name verbatim, or the value bound to name
// (minus its leading '$') when name starts with '$'.
func (i *Interpreter) resolveMaybeVar(name string) (string, bool) {
	if len(name) == 0 || name[0] != '$' {
		return name, true
	}
	return i.Vars.Get(name[1:])
}
