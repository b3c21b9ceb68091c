package memory

import (
	"bufio"
	"io"
	"os"

	"github.com/osushell/osushell/internal/backingstore"
	"github.com/osushell/osushell/internal/process"
	"github.com/osushell/osushell/internal/scriptstore"
	"github.com/osushell/osushell/internal/xerr"
)

// Loader copies a script file into the backing store and the script
// store, builds its PCB, and eagerly demand-loads the first min(pages,2)
// pages.
type Loader struct {
	lines   *scriptstore.Store
	backing *backingstore.Store
	pager   *Pager
	reg     *process.Registry
	out     io.Writer
}

// NewLoader wires a Loader to the shared script store, backing store,
// pager, and PCB registry. out receives the same page-fault banners
// HandlePageFault produces during execution, since priming a script's
// first pages faults exactly like any other fetch.
func NewLoader(lines *scriptstore.Store, backing *backingstore.Store, pager *Pager, reg *process.Registry, out io.Writer) *Loader {
	return &Loader{lines: lines, backing: backing, pager: pager, reg: reg, out: out}
}

// Load reads filename, mirrors it into the backing store, appends each
// line to the script store, and returns a freshly primed PCB.
func (l *Loader) Load(filename string) (*process.PCB, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, xerr.ErrFileNotFound
	}
	defer f.Close()

	mirrored, err := l.backing.Mirror(filename)
	if err != nil {
		return nil, err
	}

	start := l.lines.NextIndex()
	length := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if _, err := l.lines.Append(scanner.Text() + "\n"); err != nil {
			return nil, err
		}
		length++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	_ = mirrored

	pcb := process.New(start, length)
	l.reg.Add(pcb)

	pagesToLoad := pcb.PagesMax
	if pagesToLoad > 2 {
		pagesToLoad = 2
	}
	for page := 0; page < pagesToLoad; page++ {
		outcome, err := l.pager.HandlePageFault(pcb, page)
		if err != nil {
			l.reg.Remove(pcb)
			return nil, err
		}
		io.WriteString(l.out, outcome.Banner)
	}

	return pcb, nil
}
