// Package process defines the process control block (PCB) — the
// per-process record threaded through the script store, the pager, and
// every ready-queue discipline — and the registry of all live PCBs the
// pager walks to repair page tables after an eviction.
//
// A page table is a plain []int of frame indices, never pointers, so
// eviction only has to clear matching ints across the registry instead
// of chasing aliased pointers.
package process

import "sync"

// FrameSize is the number of script lines held by one frame. Shared
// with internal/memory; kept here (rather than the reverse) so process
// has no dependency on the memory package.
const FrameSize = 3

// UnloadedFrame is the page-table sentinel meaning "not yet faulted in".
const UnloadedFrame = -1

// PCB is a process control block: script-store bounds, program counter,
// page table, and aging score.
type PCB struct {
	PID             int
	Start           int
	Length          int
	PC              int
	PagesMax        int
	PagesLoaded     int
	PageTable       []int
	JobLengthScore  int

	// Next links PCBs together while queued; a PCB is never in more
	// than one queue, so this single pointer suffices.
	Next *PCB
}

// pidCounter assigns unique, monotonically increasing PIDs.
var (
	pidMu      sync.Mutex
	pidCounter int
)

func nextPID() int {
	pidMu.Lock()
	defer pidMu.Unlock()
	pidCounter++
	return pidCounter - 1
}

// New creates a PCB for a script occupying [start, start+length) in the
// script store, with an all-unloaded page table sized to cover it.
func New(start, length int) *PCB {
	pagesMax := (length + FrameSize - 1) / FrameSize
	if length == 0 {
		pagesMax = 0
	}
	pt := make([]int, pagesMax)
	for i := range pt {
		pt[i] = UnloadedFrame
	}
	return &PCB{
		PID:            nextPID(),
		Start:          start,
		Length:         length,
		PC:             0,
		PagesMax:       pagesMax,
		PagesLoaded:    0,
		PageTable:      pt,
		JobLengthScore: length,
	}
}

// Done reports whether the process has executed every instruction.
func (p *PCB) Done() bool { return p.PC >= p.Length }

// Page returns the page/offset pair for the current program counter.
func (p *PCB) Page() (page, offset int) {
	return p.PC / FrameSize, p.PC % FrameSize
}

// FrameFor returns the frame mapped to page, or UnloadedFrame if it
// hasn't been faulted in.
func (p *PCB) FrameFor(page int) int {
	if page < 0 || page >= len(p.PageTable) {
		return UnloadedFrame
	}
	return p.PageTable[page]
}

// SetFrame records that page now maps to frame, incrementing
// PagesLoaded (invariant I1 requires it track non-unloaded entries).
func (p *PCB) SetFrame(page, frame int) {
	if p.PageTable[page] == UnloadedFrame {
		p.PagesLoaded++
	}
	p.PageTable[page] = frame
}

// ClearFrame marks page unloaded again (used by page-table fix-up after
// an eviction), decrementing PagesLoaded.
func (p *PCB) ClearFrame(page int) {
	if p.PageTable[page] != UnloadedFrame {
		p.PageTable[page] = UnloadedFrame
		p.PagesLoaded--
	}
}

// Registry is the set of all live PCBs. The pager walks it after every
// eviction to clear stale page-table entries across every process, not
// just the one that faulted.
type Registry struct {
	mu   sync.Mutex
	live map[int]*PCB
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{live: map[int]*PCB{}}
}

// Add enters pcb into the registry at creation.
func (r *Registry) Add(pcb *PCB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[pcb.PID] = pcb
}

// Remove takes pcb out of the registry at destruction.
func (r *Registry) Remove(pcb *PCB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, pcb.PID)
}

// ForEach calls fn for every live PCB. fn must not mutate the registry.
func (r *Registry) ForEach(fn func(*PCB)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pcb := range r.live {
		fn(pcb)
	}
}

// FixUpEvictedFrame clears every page-table entry across every live PCB
// that pointed at the just-evicted frame.
func (r *Registry) FixUpEvictedFrame(frame int) {
	r.ForEach(func(pcb *PCB) {
		for page, f := range pcb.PageTable {
			if f == frame {
				pcb.ClearFrame(page)
			}
		}
	})
}
