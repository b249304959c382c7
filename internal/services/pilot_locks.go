package services

import "sync"

// PilotLocks serializes read-then-write sequences per pilot so concurrent
// commands from one user cannot lose a rank update.
type PilotLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPilotLocks() *PilotLocks {
	return &PilotLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until pilotID is free and returns the matching unlock func
func (p *PilotLocks) Lock(pilotID string) func() {
	p.mu.Lock()
	l, ok := p.locks[pilotID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[pilotID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
