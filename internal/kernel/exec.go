package kernel

import (
	"fmt"
	"os"

	"github.com/osushell/osushell/internal/process"
	"github.com/osushell/osushell/internal/scheduler"
	"github.com/osushell/osushell/internal/xerr"
)

// Run loads script and schedules it alone under FCFS — `run SCRIPT`.
func (k *Kernel) Run(script string) error {
	if k.executing.Load() {
		return xerr.ErrNestedExec
	}
	k.executing.Store(true)
	defer k.executing.Store(false)

	pcb, err := k.Loader.Load(script)
	if err != nil {
		return err
	}

	queue := scheduler.NewReadyQueue()
	queue.Enqueue(pcb)
	engine := &scheduler.Engine{
		Queue: queue,
		Pager: k.Pager,
		Reg:   k.Registry,
		Exec:  k,
		Out:   k.Out,
		Mu:    scheduler.NoopLocker(),
		Rec:   k.Rec,
	}
	return engine.Run(scheduler.FCFS)
}

// Exec loads 1-3 programs and schedules them together under policy.
// The `#` token is accepted for grammar compatibility but does not
// change control flow, matching the source shell's own unused
// background parameter. MT only takes effect for RR/RR30: it spawns
// Cfg.Workers goroutines against the shared queue and returns without
// waiting for them to drain, exactly like a pthread_create with no
// matching pthread_join in the call path — everything else runs to
// completion before Exec returns.
func (k *Kernel) Exec(progs []string, policyTok string, multithread, background bool) error {
	_ = background

	if k.executing.Load() {
		return xerr.ErrNestedExec
	}
	if k.quitReq.Load() {
		k.Shutdown()
		os.Exit(0)
	}

	policy, ok := scheduler.ParsePolicy(policyTok)
	if !ok {
		return xerr.ErrUnknownPolicy
	}

	k.executing.Store(true)
	defer k.executing.Store(false)

	queue := scheduler.NewReadyQueue()
	var loaded []*process.PCB
	for _, prog := range progs {
		pcb, err := k.Loader.Load(prog)
		if err != nil {
			for _, p := range loaded {
				k.Registry.Remove(p)
			}
			return err
		}
		loaded = append(loaded, pcb)
		policy.Enqueue(queue, pcb)
	}

	mt := multithread && (policy == scheduler.RR || policy == scheduler.RR30)
	if !mt {
		engine := &scheduler.Engine{
			Queue: queue,
			Pager: k.Pager,
			Reg:   k.Registry,
			Exec:  k,
			Out:   k.Out,
			Mu:    scheduler.NoopLocker(),
			Rec:   k.Rec,
		}
		return engine.Run(policy)
	}

	lock := &mutexLocker{}
	engine := &scheduler.Engine{
		Queue: queue,
		Pager: k.Pager,
		Reg:   k.Registry,
		Exec:  k,
		Out:   k.Out,
		Mu:    lock,
		Rec:   k.Rec,
	}
	for i := 0; i < k.Cfg.Workers; i++ {
		k.workers.Add(1)
		k.active.Add(1)
		go func() {
			defer k.workers.Done()
			defer k.active.Add(-1)
			if err := engine.Run(policy); err != nil {
				fmt.Fprintln(k.Out, err)
			}
			k.maybeExit()
		}()
	}
	return nil
}
