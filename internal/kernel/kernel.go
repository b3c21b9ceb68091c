// Package kernel wires every substrate component — script store,
// backing store, frame store/pager, PCB registry, ready queue,
// schedulers — into the single value threaded through every shell
// operation, and implements the interfaces the interpreter and the
// schedulers need from it (shell.ScriptRunner, scheduler.Executor).
package kernel

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/osushell/osushell/internal/backingstore"
	"github.com/osushell/osushell/internal/config"
	"github.com/osushell/osushell/internal/memory"
	"github.com/osushell/osushell/internal/metrics"
	"github.com/osushell/osushell/internal/process"
	"github.com/osushell/osushell/internal/scriptstore"
	"github.com/osushell/osushell/internal/shell"
)

// Kernel owns every piece of process-wide mutable state and is the
// value every shell command ultimately runs against.
type Kernel struct {
	Cfg *config.Config
	Out io.Writer

	Lines    *scriptstore.Store
	Backing  *backingstore.Store
	Pager    *memory.Pager
	Registry *process.Registry
	Loader   *memory.Loader
	Vars     *shell.VarStore
	Interp   *shell.Interpreter
	Metrics  *metrics.Metrics
	Rec      *metrics.PagerRecorder

	quitReq   atomic.Bool
	executing atomic.Bool
	active    atomic.Int32
	workers   sync.WaitGroup
}

// New builds a fully wired Kernel from cfg, writing shell output to out.
func New(cfg *config.Config, out io.Writer) (*Kernel, error) {
	backing, err := backingstore.New(cfg.BackingStoreDir, nil)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	rec := metrics.NewPagerRecorder(m)
	lines := scriptstore.New(cfg.MaxScripts)
	reg := process.NewRegistry()
	frames := memory.NewFrameStore(cfg.FrameCount())
	pager := memory.NewPager(frames, lines, reg, rec)
	loader := memory.NewLoader(lines, backing, pager, reg, out)
	vars := shell.NewVarStore(cfg.VariableStoreSize)

	k := &Kernel{
		Cfg:      cfg,
		Out:      out,
		Lines:    lines,
		Backing:  backing,
		Pager:    pager,
		Registry: reg,
		Loader:   loader,
		Vars:     vars,
		Metrics:  m,
		Rec:      rec,
	}
	k.Interp = shell.New(vars, k, out)
	return k, nil
}

// Submit feeds one fetched script line back through the interpreter —
// the instruction executor a running scheduler calls on every fetched
// line. Entered with executing already held by the caller that started
// the run/exec in the first place.
func (k *Kernel) Submit(line string) error {
	_, err := k.Interp.Execute(line)
	return err
}

// Quit implements shell.ScriptRunner: prints "Bye!" and sets
// quit_requested, then either exits immediately (no workers
// outstanding) or leaves the exit to the last background worker to
// drain or to the next exec call, whichever comes first.
func (k *Kernel) Quit() error {
	fmt.Fprintln(k.Out, "Bye!")
	k.quitReq.Store(true)
	k.maybeExit()
	return nil
}

// maybeExit tears the shell down and exits the process once no
// background workers remain outstanding and a quit has been requested.
// Called both by Quit itself and by a draining background exec, since
// either may be the last thing still running.
func (k *Kernel) maybeExit() {
	if !k.quitReq.Load() || k.active.Load() > 0 {
		return
	}
	k.teardown()
	os.Exit(0)
}

// Shutdown joins any running workers, destroys the backing store, and
// returns — called on stdin EOF.
func (k *Kernel) Shutdown() {
	k.workers.Wait()
	k.teardown()
}

func (k *Kernel) teardown() {
	if err := k.Backing.Remove(); err != nil {
		fmt.Fprintln(k.Out, err)
	}
}

// QuitRequested reports whether a prior `quit` is pending worker drain.
func (k *Kernel) QuitRequested() bool { return k.quitReq.Load() }
