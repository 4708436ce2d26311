package executor

import (
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// processState is the escalation lifecycle of one subprocess.
type processState int32

const (
	stateRunning processState = iota
	stateSignaled
	stateKilled
	stateExited
)

// killGrace is the fixed window between the graceful termination signal and
// the forceful kill.
const killGrace = 5 * time.Second

// escalator drives the Running → Signaled → Killed → Exited machine with a
// single timeout timer. The Running CAS is the one guard: whichever of
// signal and done leaves Running first wins, so a timer firing in the
// instant after process exit never marks the run timed out. The escalated
// flag only records that the timeout won.
type escalator struct {
	proc      *os.Process
	state     atomic.Int32
	escalated atomic.Bool

	mu         sync.Mutex
	timer      *time.Timer
	graceTimer *time.Timer
}

func newEscalator(proc *os.Process, timeout time.Duration) *escalator {
	e := &escalator{proc: proc}
	e.state.Store(int32(stateRunning))
	e.timer = time.AfterFunc(timeout, e.signal)
	return e
}

// signal sends the graceful termination signal and arms the grace timer.
func (e *escalator) signal() {
	if !e.state.CompareAndSwap(int32(stateRunning), int32(stateSignaled)) {
		return
	}
	e.escalated.Store(true)
	_ = e.proc.Signal(syscall.SIGTERM)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Load() == int32(stateSignaled) {
		e.graceTimer = time.AfterFunc(killGrace, e.kill)
	}
}

// kill escalates to SIGKILL after the grace window passed without an exit.
func (e *escalator) kill() {
	if !e.state.CompareAndSwap(int32(stateSignaled), int32(stateKilled)) {
		return
	}
	_ = e.proc.Kill()
}

// done records process exit and disarms any pending timers. The CAS loses
// to an escalation already in flight, keeping Signaled/Killed as the
// terminal record.
func (e *escalator) done() {
	e.state.CompareAndSwap(int32(stateRunning), int32(stateExited))

	e.mu.Lock()
	defer e.mu.Unlock()
	e.timer.Stop()
	if e.graceTimer != nil {
		e.graceTimer.Stop()
	}
}

// fired reports whether the timeout elapsed before the process exited.
func (e *escalator) fired() bool {
	return e.escalated.Load()
}
