package anim

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/physlab/internal/dynamo"
)

// Player runs one animator on its own ticker goroutine. All methods are
// safe for concurrent use.
type Player struct {
	mu     sync.Mutex
	anim   *Animator
	cancel context.CancelFunc
	done   chan struct{}
	logger *slog.Logger
}

func NewPlayer(a *Animator, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{anim: a, logger: logger}
}

// Start begins ticking. Calling Start on a playing player does nothing.
func (p *Player) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.activeLocked() {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	p.anim.Start()

	p.logger.Info("animation started", "scene", p.anim.Scene().Name(), "interval", p.anim.Config().Interval)
	go p.loop(loopCtx, done)
}

func (p *Player) activeLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *Player) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := newTicker(p.anim.Config().Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			p.mu.Lock()
			p.anim.Tick()
			running, ticks := p.anim.State().Running, p.anim.Ticks()
			p.mu.Unlock()
			if !running {
				p.logger.Info("animation finished", "scene", p.anim.Scene().Name(), "ticks", ticks)
				return
			}
		}
	}
}

// halt cancels the pending tick and waits for the goroutine to exit.
func (p *Player) halt() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Stop cancels the ticker goroutine without touching the animation.
func (p *Player) Stop() { p.halt() }

// Pause stops ticking but keeps the current frame.
func (p *Player) Pause() {
	p.halt()
	p.mu.Lock()
	p.anim.Pause()
	p.mu.Unlock()
}

// Resume continues a paused animation.
func (p *Player) Resume(ctx context.Context) { p.Start(ctx) }

// Toggle flips between playing and paused.
func (p *Player) Toggle(ctx context.Context) {
	if p.Playing() {
		p.Pause()
		return
	}
	p.Start(ctx)
}

// Reset cancels any pending tick and restores the initial state.
// Resetting a stopped player is a no-op.
func (p *Player) Reset() {
	p.halt()
	p.mu.Lock()
	p.anim.Reset()
	p.mu.Unlock()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeLocked()
}

// Wait blocks until the ticker goroutine exits or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state and bodies.
func (p *Player) Snapshot() (dynamo.SimulationState, []dynamo.Body) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.anim.State(), p.anim.Bodies()
}

// Do runs fn with exclusive access to the animator, e.g. to apply new
// slider values between ticks.
func (p *Player) Do(fn func(*Animator)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.anim)
}
