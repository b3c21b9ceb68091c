package scheduler

import (
	"fmt"
	"io"
	"sync"

	"github.com/osushell/osushell/internal/memory"
	"github.com/osushell/osushell/internal/process"
)

// Policy tags which ready-queue discipline and per-tick execution loop
// a scheduler run uses — one tagged variant instead of duplicating the
// loop five times.
type Policy int

const (
	FCFS Policy = iota
	SJF
	RR
	RR30
	Aging
)

// String renders the policy the way the CLI grammar names it.
func (p Policy) String() string {
	switch p {
	case FCFS:
		return "FCFS"
	case SJF:
		return "SJF"
	case RR:
		return "RR"
	case RR30:
		return "RR30"
	case Aging:
		return "AGING"
	default:
		return "UNKNOWN"
	}
}

// ParsePolicy maps a CLI token to a Policy, or reports ok=false.
func ParsePolicy(tok string) (Policy, bool) {
	switch tok {
	case "FCFS":
		return FCFS, true
	case "SJF":
		return SJF, true
	case "RR":
		return RR, true
	case "RR30":
		return RR30, true
	case "AGING":
		return Aging, true
	default:
		return 0, false
	}
}

// Quantum reports the instruction budget per scheduling turn. FCFS and
// SJF run each process to completion once dequeued, represented here as
// a zero quantum (meaning "unbounded").
func (p Policy) Quantum() int {
	switch p {
	case RR:
		return 2
	case RR30:
		return 30
	case Aging:
		return 1
	default:
		return 0
	}
}

// Enqueue inserts pcb into queue using this policy's discipline.
func (p Policy) Enqueue(queue *ReadyQueue, pcb *process.PCB) {
	switch p {
	case SJF:
		queue.EnqueueSJF(pcb)
	case Aging:
		queue.EnqueueSJFAging(pcb)
	default:
		queue.Enqueue(pcb)
	}
}

// Executor feeds a fetched script line back through the command
// interpreter, as if it had been typed at the prompt.
type Executor interface {
	Submit(line string) error
}

// SwitchRecorder receives a tick every time a PCB is re-enqueued rather
// than destroyed — quantum expiry, a fault-driven yield, or an AGING
// reselection. A nil SwitchRecorder on Engine disables the telemetry.
type SwitchRecorder interface {
	ContextSwitch()
}

type nopSwitchRecorder struct{}

func (nopSwitchRecorder) ContextSwitch() {}

// Engine drives one ready queue against the pager under a chosen
// policy. Mu is a sync.Locker rather than a concrete mutex so that
// single-threaded mode can supply a no-op and MT mode a real mutex
// shared by every worker — mirroring the original shell's
// lockReadyQueue being a no-op unless multithreadEnabled.
type Engine struct {
	Queue *ReadyQueue
	Pager *memory.Pager
	Reg   *process.Registry
	Exec  Executor
	Out   io.Writer
	Mu    sync.Locker
	Rec   SwitchRecorder
}

func (e *Engine) recorder() SwitchRecorder {
	if e.Rec == nil {
		return nopSwitchRecorder{}
	}
	return e.Rec
}

// noopLocker satisfies sync.Locker without any synchronization, used
// when only one goroutine ever touches the queue/pager.
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// NoopLocker returns a shared no-op Locker for single-threaded engines.
func NoopLocker() sync.Locker { return noopLocker{} }

func (e *Engine) destroy(pcb *process.PCB) {
	e.Mu.Lock()
	e.Reg.Remove(pcb)
	e.Mu.Unlock()
}

func (e *Engine) fetch(pcb *process.PCB) memory.FetchResult {
	e.Mu.Lock()
	defer e.Mu.Unlock()
	return e.Pager.FetchLine(pcb)
}

func (e *Engine) fault(pcb *process.PCB, page int) (memory.FaultOutcome, error) {
	e.Mu.Lock()
	defer e.Mu.Unlock()
	return e.Pager.HandlePageFault(pcb, page)
}

func (e *Engine) unrecoverable(pcb *process.PCB) {
	fmt.Fprintf(e.Out, "Error: Unable to load instruction for process %d at PC %d.\n", pcb.PID, pcb.PC)
}

// Run drains the queue under policy until it is empty, or returns a
// fatal error (no evictable frame) which the caller must treat as
// shell-exiting.
func (e *Engine) Run(policy Policy) error {
	for {
		e.Mu.Lock()
		pcb := e.Queue.Dequeue()
		e.Mu.Unlock()
		if pcb == nil {
			return nil
		}

		var err error
		switch policy {
		case FCFS, SJF:
			err = e.runToCompletion(pcb)
		case RR, RR30:
			err = e.runQuantum(pcb, policy.Quantum())
		case Aging:
			err = e.stepAging(pcb)
		}
		if err != nil {
			return err
		}
	}
}

// runToCompletion executes pcb until it finishes or hits an
// unrecoverable fault.
func (e *Engine) runToCompletion(pcb *process.PCB) error {
	for !pcb.Done() {
		page, _ := pcb.Page()
		res := e.fetch(pcb)
		if !res.Hit {
			outcome, err := e.fault(pcb, page)
			if err != nil {
				return err
			}
			io.WriteString(e.Out, outcome.Banner)
			res = e.fetch(pcb)
			if !res.Hit {
				e.unrecoverable(pcb)
				e.destroy(pcb)
				return nil
			}
		}
		if err := e.Exec.Submit(res.Line); err != nil {
			fmt.Fprintln(e.Out, err)
		}
		pcb.PC++
	}
	e.destroy(pcb)
	return nil
}

// runQuantum executes up to quantum instructions of pcb. A page fault
// costs no tick and yields immediately (enqueue at tail, break) — the
// defining RR/RR30 behaviour, adopted for RR30 as well as RR. A
// completed process is destroyed; one that runs the full
// quantum without yielding is re-enqueued at the tail.
func (e *Engine) runQuantum(pcb *process.PCB, quantum int) error {
	yielded := false
	for tick := 0; tick < quantum; tick++ {
		if pcb.Done() {
			break
		}
		page, _ := pcb.Page()
		if pcb.FrameFor(page) == process.UnloadedFrame {
			outcome, err := e.fault(pcb, page)
			if err != nil {
				return err
			}
			io.WriteString(e.Out, outcome.Banner)
			e.Mu.Lock()
			e.Queue.Enqueue(pcb)
			e.Mu.Unlock()
			e.recorder().ContextSwitch()
			yielded = true
			break
		}

		res := e.fetch(pcb)
		if !res.Hit {
			// Evicted out from under us between the unloaded check and
			// the fetch (possible only under MT races); surface it the
			// same way the run-to-completion path does and stop the
			// process.
			e.unrecoverable(pcb)
			e.destroy(pcb)
			return nil
		}
		if err := e.Exec.Submit(res.Line); err != nil {
			fmt.Fprintln(e.Out, err)
		}
		pcb.PC++
	}

	if pcb.Done() {
		e.destroy(pcb)
	} else if !yielded {
		e.Mu.Lock()
		e.Queue.Enqueue(pcb)
		e.Mu.Unlock()
		e.recorder().ContextSwitch()
	}
	return nil
}

// stepAging runs one instruction of pcb (quantum 1), ages every other
// queued PCB, and reselects whichever PCB now has the lowest
// JobLengthScore — reinserting the just-run PCB at the head if it is
// still the winner, or via EnqueueSJFAging otherwise. An unrecoverable
// fault re-enqueues immediately and skips aging/reselection entirely
// for this turn.
func (e *Engine) stepAging(pcb *process.PCB) error {
	if !pcb.Done() {
		page, _ := pcb.Page()
		res := e.fetch(pcb)
		if !res.Hit {
			outcome, err := e.fault(pcb, page)
			if err != nil {
				return err
			}
			io.WriteString(e.Out, outcome.Banner)
			res = e.fetch(pcb)
			if !res.Hit {
				e.unrecoverable(pcb)
				e.Mu.Lock()
				e.Queue.EnqueueSJFAging(pcb)
				e.Mu.Unlock()
				e.recorder().ContextSwitch()
				return nil
			}
		}
		if err := e.Exec.Submit(res.Line); err != nil {
			fmt.Fprintln(e.Out, err)
		}
		pcb.PC++
	}

	e.Mu.Lock()
	e.Queue.Age(pcb)
	lowest := e.Queue.LowestScore(pcb)
	e.Mu.Unlock()

	if !pcb.Done() {
		e.Mu.Lock()
		if lowest != pcb {
			e.Queue.EnqueueSJFAging(pcb)
		} else {
			e.Queue.EnqueueHead(pcb)
		}
		e.Mu.Unlock()
		if lowest != pcb {
			e.recorder().ContextSwitch()
		}
	} else {
		e.destroy(pcb)
	}
	return nil
}
