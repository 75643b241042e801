package host

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go8080/i8080/cpu"
	"golang.org/x/sync/errgroup"
)

// maxROMSize matches the 8080's full 64 KiB address space; a ROM larger
// than this can never be fully loaded at address 0.
const maxROMSize = 65536

// historyLimit bounds the step-back ring so a long free-run session does
// not grow memory without limit.
const historyLimit = 4096

// Runner owns a *cpu.CPU and everything the core deliberately has no
// opinion on: loading a ROM from disk, a time-bounded run loop, sequencing
// interrupt injection against a concurrently running Step, and a snapshot
// ring for stepping backward. Grounded in the teacher's CPUZ80Runner, which
// wraps the raw CPU_Z80 with the same load/start/stop surface.
type Runner struct {
	cpu *cpu.CPU

	mu      sync.Mutex
	history []cpu.State
}

// New returns a Runner driving a fresh *cpu.CPU wired to bus.
func New(bus cpu.BusWriter) *Runner {
	return &Runner{cpu: cpu.New(bus)}
}

// CPU exposes the underlying core for inspection (register values, Halted,
// Memory). It returns the live *cpu.CPU, so a caller that invokes its Step
// or GenerateInterrupt directly bypasses Runner's mutex and history.
func (r *Runner) CPU() *cpu.CPU { return r.cpu }

// LoadFile reads path and loads it into the CPU's memory at address 0. It
// rejects any file larger than the 64 KiB address space before attempting
// the load.
func (r *Runner) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("host: reading rom: %w", err)
	}
	if len(data) > maxROMSize {
		return fmt.Errorf("host: rom %q is %d bytes, exceeds 64 KiB address space", path, len(data))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = r.history[:0]
	return r.cpu.LoadIntoMemory(data)
}

// Step executes exactly one instruction, recording a pre-step snapshot so
// StepBack can undo it.
func (r *Runner) Step() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stepLocked()
}

func (r *Runner) stepLocked() error {
	r.pushHistoryLocked()
	if err := r.cpu.Step(); err != nil {
		return err
	}
	return nil
}

func (r *Runner) pushHistoryLocked() {
	r.history = append(r.history, r.cpu.Snapshot())
	if len(r.history) > historyLimit {
		r.history = r.history[len(r.history)-historyLimit:]
	}
}

// StepBack restores the CPU to its state immediately before the most
// recent Step, and reports whether a prior state was available.
func (r *Runner) StepBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return false
	}
	last := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.cpu.Restore(last)
	return true
}

// Run free-runs the CPU, one Step per call, until it halts or ctx is
// cancelled. The step loop and the cancellation watch run concurrently via
// errgroup, the way the teacher's go.mod already depends on
// golang.org/x/sync for exactly this kind of paired goroutine.
func (r *Runner) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r.mu.Lock()
			halted := r.cpu.Halted()
			if halted {
				r.mu.Unlock()
				return nil
			}
			err := r.stepLocked()
			r.mu.Unlock()
			if err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Interrupt sequences cpu.GenerateInterrupt behind Runner's mutex so it can
// never interleave with an in-flight Step from Run, satisfying the
// requirement that the core's interrupt latch is touched by at most one
// goroutine at a time.
func (r *Runner) Interrupt(n byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cpu.GenerateInterrupt(n)
}
