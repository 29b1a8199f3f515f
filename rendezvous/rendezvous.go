// Package rendezvous implements the strictly alternating handoff between a
// driver goroutine that wants exactly one frame per call and a worker
// goroutine that runs its own loop and only stops at yield points.
//
// The driver owns the turn between frames. Advance hands the turn to the
// worker and blocks until the worker hands it back from its next yield
// point. At no time can both sides be running frame work.
package rendezvous

import "sync"

type turn int

const (
	driverTurn turn = iota
	workerTurn
)

// ResetKind selects the reset applied at the next yield point.
type ResetKind int

const (
	ResetSoft ResetKind = iota
	ResetHard
)

// Commands are the driver intents a worker observes when it is released.
type Commands struct {
	Stop      bool
	SoftReset bool
	HardReset bool
}

// Rendezvous is the shared handshake state. The zero value is not usable;
// create one with New.
type Rendezvous struct {
	mu   sync.Mutex
	cond *sync.Cond

	turn      turn
	stopReq   bool
	softReset bool
	hardReset bool
	alive     bool
}

// New creates a rendezvous with no worker attached.
func New() *Rendezvous {
	r := &Rendezvous{}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Start arms the handshake for a new worker. Intents left over from a
// previous worker are discarded. It panics if a worker is still alive.
func (r *Rendezvous) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.alive {
		panic("rendezvous: Start with a live worker")
	}
	r.turn = driverTurn
	r.stopReq = false
	r.softReset = false
	r.hardReset = false
	r.alive = true
}

// Advance releases the worker for one frame and blocks until the worker
// yields again or exits. Returns false if no worker is alive, either
// before the call or after it.
func (r *Rendezvous) Advance() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.alive {
		return false
	}
	r.turn = workerTurn
	r.cond.Broadcast()
	for r.turn == workerTurn && r.alive {
		r.cond.Wait()
	}
	return r.alive
}

// RequestStop sets the stop intent and releases the worker so it observes
// the intent at its next yield point. It blocks like Advance.
func (r *Rendezvous) RequestStop() {
	r.mu.Lock()
	r.stopReq = true
	r.mu.Unlock()
	r.Advance()
}

// RequestReset sets a reset intent. It does not release the worker; the
// intent is delivered with the next Advance.
func (r *Rendezvous) RequestReset(kind ResetKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case ResetHard:
		r.hardReset = true
	default:
		r.softReset = true
	}
}

// AwaitExit blocks until the worker has called Exit.
func (r *Rendezvous) AwaitExit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.alive {
		r.cond.Wait()
	}
}

// Alive reports whether a worker is attached and has not exited.
func (r *Rendezvous) Alive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alive
}

// Wait is the worker's half of the handshake. It blocks until the driver
// releases the worker and returns the pending intents, clearing the reset
// intents. Once a stop has been requested Wait no longer blocks.
func (r *Rendezvous) Wait() Commands {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.turn == driverTurn && !r.stopReq {
		r.cond.Wait()
	}
	cmd := Commands{
		Stop:      r.stopReq,
		SoftReset: r.softReset,
		HardReset: r.hardReset,
	}
	r.softReset = false
	r.hardReset = false
	return cmd
}

// Yield announces that the current frame is complete, hands the turn back
// to the driver, then waits to be released again.
func (r *Rendezvous) Yield() Commands {
	r.mu.Lock()
	r.turn = driverTurn
	r.cond.Broadcast()
	r.mu.Unlock()
	return r.Wait()
}

// Exit marks the worker dead and wakes any waiting driver. A worker must
// not touch the rendezvous after calling Exit.
func (r *Rendezvous) Exit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alive = false
	r.turn = driverTurn
	r.cond.Broadcast()
}
