package autoscroll

import (
	"time"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/viewport"
)

// DefaultInterval is the delay between auto-scroll ticks.
const DefaultInterval = 50 * time.Millisecond

// Scroller is the part of viewport.Tracker the pump drives.
type Scroller interface {
	Inside(x, y int) bool
	Align(x, y int) (viewport.DragOffGrid, bool)
	ScrollRowUp() bool
	ScrollRowDown() bool
	ScrollColumnLeft() bool
	ScrollColumnRight() bool
}

// DragFunc receives drag motion outside the view, real or re-raised by a
// tick.
type DragFunc func(viewport.DragOffGrid)

// Pump scrolls one row or column per tick while a held pointer sits outside
// the view, then re-raises the drag at the same pointer position so the
// selection grows by exactly one unit per tick.
//
// The host runs a single tick chain for the pump's lifetime. Start hands out
// the chain's generation once; ticks carrying any other generation are
// stale and must not be rescheduled.
type Pump struct {
	scroller Scroller
	onDrag   DragFunc
	interval time.Duration

	held bool
	last viewport.DragOffGrid

	gen     uint64
	started bool
}

// Option configures a Pump.
type Option func(*Pump)

// WithInterval sets the tick interval. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(p *Pump) {
		if d > 0 {
			p.interval = d
		}
	}
}

// New creates a pump over scroller that reports drags to onDrag.
func New(scroller Scroller, onDrag DragFunc, opts ...Option) *Pump {
	p := &Pump{
		scroller: scroller,
		onDrag:   onDrag,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the tick interval.
func (p *Pump) Interval() time.Duration { return p.interval }

// Press records a button press. Only presses inside the view start a hold.
func (p *Pump) Press(x, y int) {
	p.last = viewport.DragOffGrid{PointerX: x, PointerY: y}
	p.held = p.scroller.Inside(x, y)
}

// Release ends the hold and stops scrolling immediately.
func (p *Pump) Release() {
	p.held = false
	p.last = viewport.DragOffGrid{PointerX: p.last.PointerX, PointerY: p.last.PointerY}
}

// Held reports whether a pointer hold is being tracked.
func (p *Pump) Held() bool { return p.held }

// Active reports whether the next tick will scroll.
func (p *Pump) Active() bool {
	return p.held && p.last.Outside()
}

// Last returns the most recent pointer state.
func (p *Pump) Last() viewport.DragOffGrid { return p.last }

// Move records pointer motion. buttonDown resynchronises the hold with the
// real button state. When the held pointer is outside the view the aligned
// drag is passed to the callback and returned.
func (p *Pump) Move(x, y int, buttonDown bool) (viewport.DragOffGrid, bool) {
	p.held = buttonDown
	d, outside := p.scroller.Align(x, y)
	p.last = d
	if !outside || !p.held {
		return d, false
	}
	if p.onDrag != nil {
		p.onDrag(d)
	}
	return d, true
}

// Tick performs one scroll step per crossed edge and re-raises the drag. It
// reports whether anything scrolled.
func (p *Pump) Tick() bool {
	if !p.Active() {
		return false
	}
	moved := false
	switch p.last.XEdge {
	case viewport.EdgeLeft:
		moved = p.scroller.ScrollColumnLeft() || moved
	case viewport.EdgeRight:
		moved = p.scroller.ScrollColumnRight() || moved
	}
	switch p.last.YEdge {
	case viewport.EdgeAbove:
		moved = p.scroller.ScrollRowUp() || moved
	case viewport.EdgeBelow:
		moved = p.scroller.ScrollRowDown() || moved
	}
	if moved {
		p.Move(p.last.PointerX, p.last.PointerY, true)
	}
	return moved
}

// Start claims the pump's tick chain. It returns the chain's generation
// and true the first time, and false on every later call.
func (p *Pump) Start() (uint64, bool) {
	if p.started {
		return 0, false
	}
	p.started = true
	p.gen++
	logging.Debug("autoscroll: tick chain %d started (%s)", p.gen, p.interval)
	return p.gen, true
}

// HandleTick runs one tick for chain gen. It returns false when gen is not
// the live chain, in which case the caller must not schedule another tick.
func (p *Pump) HandleTick(gen uint64) bool {
	if !p.started || gen != p.gen {
		return false
	}
	p.Tick()
	return true
}

// Stop ends the tick chain. A later Start begins a new one.
func (p *Pump) Stop() {
	p.started = false
	p.held = false
	p.gen++
}
