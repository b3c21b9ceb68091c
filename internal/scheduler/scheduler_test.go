package scheduler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osushell/osushell/internal/memory"
	"github.com/osushell/osushell/internal/process"
	"github.com/osushell/osushell/internal/scriptstore"
)

type recordingExecutor struct {
	lines []string
}

func (r *recordingExecutor) Submit(line string) error {
	r.lines = append(r.lines, line)
	return nil
}

type countingRecorder struct {
	switches int
}

func (c *countingRecorder) ContextSwitch() { c.switches++ }

func newTestEngine(t *testing.T, frameCount, storeCapacity int) (*Engine, *scriptstore.Store, *process.Registry, *recordingExecutor) {
	t.Helper()
	lines := scriptstore.New(storeCapacity)
	reg := process.NewRegistry()
	frames := memory.NewFrameStore(frameCount)
	pager := memory.NewPager(frames, lines, reg, nil)
	exec := &recordingExecutor{}
	engine := &Engine{
		Queue: NewReadyQueue(),
		Pager: pager,
		Reg:   reg,
		Exec:  exec,
		Out:   &bytes.Buffer{},
		Mu:    NoopLocker(),
	}
	return engine, lines, reg, exec
}

func loadPCB(t *testing.T, lines *scriptstore.Store, reg *process.Registry, text ...string) *process.PCB {
	t.Helper()
	start := lines.NextIndex()
	for _, l := range text {
		_, err := lines.Append(l + "\n")
		require.NoError(t, err)
	}
	pcb := process.New(start, len(text))
	reg.Add(pcb)
	return pcb
}

func TestFCFSRunsToCompletion(t *testing.T) {
	engine, lines, reg, exec := newTestEngine(t, 4, 20)
	pcb := loadPCB(t, lines, reg, "echo A", "echo B", "echo C")
	engine.Queue.Enqueue(pcb)

	err := engine.Run(FCFS)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo A\n", "echo B\n", "echo C\n"}, exec.lines)
	assert.True(t, pcb.Done())
}

func TestSJFRunsShortestFirst(t *testing.T) {
	engine, lines, reg, exec := newTestEngine(t, 8, 40)
	long := loadPCB(t, lines, reg, "L1", "L2", "L3", "L4", "L5", "L6")
	short := loadPCB(t, lines, reg, "S1", "S2", "S3")
	engine.Queue.EnqueueSJF(long)
	engine.Queue.EnqueueSJF(short)

	err := engine.Run(SJF)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1\n", "S2\n", "S3\n", "L1\n", "L2\n", "L3\n", "L4\n", "L5\n", "L6\n"}, exec.lines)
}

func TestRoundRobinInterleavesByQuantum(t *testing.T) {
	engine, lines, reg, exec := newTestEngine(t, 8, 40)
	a := loadPCB(t, lines, reg, "A1", "A2", "A3", "A4")
	b := loadPCB(t, lines, reg, "B1", "B2", "B3", "B4")
	engine.Queue.Enqueue(a)
	engine.Queue.Enqueue(b)

	err := engine.Run(RR)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1\n", "A2\n", "B1\n", "B2\n", "A3\n", "B3\n", "A4\n", "B4\n"}, exec.lines)
}

func TestRoundRobinYieldsOnPageFaultWithoutChargingQuantum(t *testing.T) {
	// One frame only: a's first tick faults, loads page 0 and yields
	// without executing anything; its next turn still runs a full
	// quantum (A1, A2) before A3 finishes it.
	engine, lines, reg, exec := newTestEngine(t, 1, 40)
	a := loadPCB(t, lines, reg, "A1", "A2", "A3")
	engine.Queue.Enqueue(a)

	err := engine.Run(RR)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1\n", "A2\n", "A3\n"}, exec.lines)
}

func TestAgingCompletesShortestJobsFirstOverall(t *testing.T) {
	engine, lines, reg, exec := newTestEngine(t, 16, 80)
	a := loadPCB(t, lines, reg, "a1", "a2")
	b := loadPCB(t, lines, reg, "b1", "b2", "b3", "b4")
	engine.Queue.EnqueueSJFAging(a)
	engine.Queue.EnqueueSJFAging(b)

	err := engine.Run(Aging)
	require.NoError(t, err)
	assert.True(t, a.Done())
	assert.True(t, b.Done())

	aIdx, bIdx := -1, -1
	for i, l := range exec.lines {
		if l == "a2\n" {
			aIdx = i
		}
		if l == "b4\n" {
			bIdx = i
		}
	}
	assert.Less(t, aIdx, bIdx, "the shorter job must finish before the longer one")
}

func TestContextSwitchRecordedOnRequeue(t *testing.T) {
	engine, lines, reg, exec := newTestEngine(t, 8, 40)
	_ = exec
	rec := &countingRecorder{}
	engine.Rec = rec
	a := loadPCB(t, lines, reg, "A1", "A2", "A3", "A4")
	engine.Queue.Enqueue(a)

	err := engine.Run(RR)
	require.NoError(t, err)
	assert.Greater(t, rec.switches, 0)
}
