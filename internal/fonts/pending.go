package fonts

import (
	"fmt"
	"sync"
)

// State is where a font lookup stands.
type State int

const (
	StatePending State = iota
	StateReady
	StateFallback
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFallback:
		return "fallback"
	}
	return "unknown"
}

// Pending is a font lookup running in the background. It settles once, on Ready with a path
// or on Fallback with the reason; the caller then loads the file on the GL thread or keeps
// raylib's default font.
type Pending struct {
	mu    sync.Mutex
	state State
	path  string
	err   error
	done  chan struct{}
}

// Load starts searching BaseDirs for search and its SearchCandidates.
func Load(search string) *Pending {
	return load(BaseDirs(), search)
}

func load(bases []string, search string) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		path, err := resolve(bases, search)
		p.mu.Lock()
		if err != nil {
			p.state, p.err = StateFallback, err
		} else {
			p.state, p.path = StateReady, path
		}
		p.mu.Unlock()
		close(p.done)
	}()
	return p
}

func resolve(bases []string, search string) (string, error) {
	if search == "" {
		return "", fmt.Errorf("fonts: no font configured")
	}
	for _, c := range SearchCandidates(search) {
		if full, ok := find(bases, c); ok {
			return full, nil
		}
	}
	return "", fmt.Errorf("fonts: %q not found under %v", search, bases)
}

// State returns the current state and, once settled, the font path or the fallback reason.
func (p *Pending) State() (State, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.path, p.err
}

// Done is closed once the lookup has settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}
