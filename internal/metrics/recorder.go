package metrics

// PagerRecorder adapts Metrics to internal/memory.Recorder without
// internal/memory needing to import the prometheus client directly.
type PagerRecorder struct {
	m *Metrics
}

// NewPagerRecorder wraps m for use as a memory.Recorder.
func NewPagerRecorder(m *Metrics) *PagerRecorder { return &PagerRecorder{m: m} }

func (r *PagerRecorder) PageFault() { r.m.PageFaults.Inc() }
func (r *PagerRecorder) Eviction()  { r.m.Evictions.Inc() }
func (r *PagerRecorder) FrameLoaded() {
	r.m.FramesResident.Inc()
}

// ContextSwitch records a re-enqueue (quantum expiry, fault yield, or
// an AGING reselection that isn't the just-run process).
func (r *PagerRecorder) ContextSwitch() { r.m.ContextSwitches.Inc() }
