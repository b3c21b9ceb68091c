package memory

import (
	"github.com/osushell/osushell/internal/process"
	"github.com/osushell/osushell/internal/scriptstore"
)

// Recorder receives pager telemetry. Kernel wires a prometheus-backed
// implementation (internal/metrics); tests and tools that don't care
// about metrics pass NopRecorder{}.
type Recorder interface {
	PageFault()
	Eviction()
	FrameLoaded()
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) PageFault()   {}
func (NopRecorder) Eviction()    {}
func (NopRecorder) FrameLoaded() {}

// Pager resolves page faults against a FrameStore, sourcing page
// contents from the script store and repairing every live PCB's page
// table after an eviction. It has no locking of its own: callers that
// need cross-goroutine safety serialize through the scheduler Engine's
// Mu, which internal/kernel sets to one mutex shared by all workers of
// an MT exec call.
type Pager struct {
	frames *FrameStore
	lines  *scriptstore.Store
	reg    *process.Registry
	rec    Recorder
}

// NewPager builds a pager over the given frame store, script store, and
// PCB registry. rec may be nil, in which case telemetry is discarded.
func NewPager(frames *FrameStore, lines *scriptstore.Store, reg *process.Registry, rec Recorder) *Pager {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Pager{frames: frames, lines: lines, reg: reg, rec: rec}
}

// FaultOutcome distinguishes the two banners a page fault can produce.
type FaultOutcome struct {
	Frame    int
	Evicted  bool
	Banner   string
}

// HandlePageFault loads pcb's page-th page into a frame, evicting the
// LRU victim if none is free, and returns the banner text to print.
// Callers must not call this when pageTable[page] is already valid
// (law L4); that precondition is the caller's job to check.
func (p *Pager) HandlePageFault(pcb *process.PCB, page int) (FaultOutcome, error) {
	p.rec.PageFault()
	frame := p.frames.FindFreeFrame()
	var outcome FaultOutcome
	if frame == -1 {
		victim, contents, err := p.frames.EvictLRU()
		if err != nil {
			return FaultOutcome{}, err
		}
		p.rec.Eviction()
		p.reg.FixUpEvictedFrame(victim)
		frame = victim
		outcome = FaultOutcome{Frame: frame, Evicted: true, Banner: FormatVictimBanner(contents)}
	} else {
		outcome = FaultOutcome{Frame: frame, Evicted: false, Banner: FormatFaultBanner()}
	}

	p.frames.Load(frame, p.readPage(pcb, page))
	pcb.SetFrame(page, frame)
	p.frames.Access(frame)
	if !outcome.Evicted {
		// A reused victim frame was already resident; only a load into a
		// free frame raises the resident-frame count.
		p.rec.FrameLoaded()
	}

	return outcome, nil
}

// readPage copies FrameSize consecutive script-store lines starting at
// pcb.Start + page*FrameSize, padding trailing slots empty when the
// script is shorter than a full page.
func (p *Pager) readPage(pcb *process.PCB, page int) [FrameSize]string {
	var slots [FrameSize]string
	base := pcb.Start + page*FrameSize
	for i := 0; i < FrameSize; i++ {
		lineIdx := base + i
		if lineIdx >= pcb.Start+pcb.Length {
			continue
		}
		line, err := p.lines.Line(lineIdx)
		if err != nil {
			continue
		}
		slots[i] = line
	}
	return slots
}

// FetchResult is what FetchLine returns: either a hit (with the line
// text) or a miss that the caller must resolve via HandlePageFault.
type FetchResult struct {
	Hit   bool
	Line  string
	Frame int
}

// FetchLine computes pcb's current page/offset and returns the stored
// line on a hit, or Hit=false on a miss (page_table[page] unloaded).
func (p *Pager) FetchLine(pcb *process.PCB) FetchResult {
	page, offset := pcb.Page()
	frame := pcb.FrameFor(page)
	if frame == process.UnloadedFrame {
		return FetchResult{Hit: false}
	}
	p.frames.Pin(frame)
	defer p.frames.Unpin(frame)
	p.frames.Access(frame)
	return FetchResult{Hit: true, Line: p.frames.Line(frame, offset), Frame: frame}
}

// Frames exposes the underlying frame store for direct frame-level
// access without going through FetchLine/HandlePageFault.
func (p *Pager) Frames() *FrameStore { return p.frames }
