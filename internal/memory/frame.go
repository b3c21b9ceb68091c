// Package memory implements the paged frame store, its LRU eviction
// policy, and the page-fault handler (the Pager) that ties frames to
// PCB page tables. It is the hard core of the simulator: a grid of
// frames shared and aliased by every process's page table.
//
// Frames are addressed by plain integer handle rather than owned
// pointers, so a page table entry and an LRU order entry can both
// reference the same frame without aliasing a Go pointer across
// structures.
package memory

import (
	"fmt"
	"strings"

	"github.com/osushell/osushell/internal/process"
	"github.com/osushell/osushell/internal/xerr"
)

// FrameSize is the number of script lines held by one frame, shared
// with internal/process so both packages agree on page/offset math.
const FrameSize = process.FrameSize

// FrameStore is the fixed grid of frames backing every process's page
// table. A frame is either entirely free (all slots empty) or fully
// loaded (slots hold one script page). Recency is tracked by a single
// uniqueStack rather than per-frame timestamps: every access pushes the
// frame to the top, so the bottom of the stack is always the true
// least-recently-used candidate and eviction never needs to scan for a
// minimum.
type FrameStore struct {
	count    int
	contents [][FrameSize]string
	loaded   []bool
	pins     []int32
	recency  *uniqueStack[int]
}

// NewFrameStore allocates count frames, all initially free.
func NewFrameStore(count int) *FrameStore {
	return &FrameStore{
		count:    count,
		contents: make([][FrameSize]string, count),
		loaded:   make([]bool, count),
		pins:     make([]int32, count),
		recency:  newUniqueStack[int](),
	}
}

// Count reports the total number of frames.
func (fs *FrameStore) Count() int { return fs.count }

// FindFreeFrame returns the index of any free frame, or -1 if none.
func (fs *FrameStore) FindFreeFrame() int {
	for i := 0; i < fs.count; i++ {
		if !fs.loaded[i] {
			return i
		}
	}
	return -1
}

// Access stamps frame as most-recently-used. Every access, hit or
// fault-driven load, passes through here so the recency stack always
// reflects true use order.
func (fs *FrameStore) Access(frame int) {
	fs.recency.Push(frame)
}

// Pin marks frame as in-use so it cannot be evicted mid-fetch.
func (fs *FrameStore) Pin(frame int) { fs.pins[frame]++ }

// Unpin releases a prior Pin.
func (fs *FrameStore) Unpin(frame int) {
	if fs.pins[frame] > 0 {
		fs.pins[frame]--
	}
}

// Pinned reports whether frame currently has outstanding pins.
func (fs *FrameStore) Pinned(frame int) bool { return fs.pins[frame] > 0 }

// Load copies lines (already trimmed/padded to FrameSize by the caller)
// into frame's slots, overwriting whatever was there.
func (fs *FrameStore) Load(frame int, lines [FrameSize]string) {
	fs.contents[frame] = lines
	fs.loaded[frame] = true
}

// Line returns the text at frame's slot offset.
func (fs *FrameStore) Line(frame, offset int) string {
	return fs.contents[frame][offset]
}

// Contents returns a copy of frame's slots, for printing eviction banners.
func (fs *FrameStore) Contents(frame int) [FrameSize]string {
	return fs.contents[frame]
}

// IsFree reports whether frame currently holds no page.
func (fs *FrameStore) IsFree(frame int) bool {
	return !fs.loaded[frame]
}

// EvictLRU walks the recency stack from its bottom (least recently
// used) upward and evicts the first unpinned frame it finds, clearing
// its slots and resetting it to free. Ties never arise: the recency
// stack holds each loaded frame exactly once, in strict use order. If
// every loaded frame is pinned it returns ErrNoEvictableFrame, which
// callers must treat as fatal (this requires every frame to be
// simultaneously mid-fetch under MT mode — never happens as long as
// fetch_line's pin/unpin bracket is the only pin source).
func (fs *FrameStore) EvictLRU() (victim int, contents [FrameSize]string, err error) {
	victim = -1
	fs.recency.RLock()
	for _, candidate := range fs.recency.Order {
		if !fs.Pinned(candidate) {
			victim = candidate
			break
		}
	}
	fs.recency.RUnlock()
	if victim == -1 {
		return -1, contents, xerr.ErrNoEvictableFrame
	}
	contents = fs.contents[victim]
	fs.contents[victim] = [FrameSize]string{}
	fs.loaded[victim] = false
	fs.recency.Delete(victim)
	return victim, contents, nil
}

// FormatVictimBanner renders the bit-exact eviction banner:
// "Page fault! Victim page contents:\n\n" + up to three lines verbatim
// + "\nEnd of victim page contents.\n".
func FormatVictimBanner(contents [FrameSize]string) string {
	var b strings.Builder
	b.WriteString("Page fault! Victim page contents:\n\n")
	for _, line := range contents {
		if line == "" {
			continue
		}
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString("\nEnd of victim page contents.\n")
	return b.String()
}

// FormatFaultBanner renders the plain fault banner used when a free
// frame was available and no eviction was necessary.
func FormatFaultBanner() string {
	return "Page fault!\n"
}

func (fs *FrameStore) String() string {
	return fmt.Sprintf("FrameStore{count=%d, resident=%d}", fs.count, fs.recency.Length())
}
