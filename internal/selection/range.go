package selection

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMixedBounds is returned when a range is decoded with exactly one
	// of its bounds set.
	ErrMixedBounds = errors.New("selection: range must have both bounds or neither")

	// ErrAnchorMismatch is returned when a forward delta is requested
	// between ranges that do not share an anchor.
	ErrAnchorMismatch = errors.New("selection: ranges do not share an anchor")
)

// Range is a closed interval over logical coordinates. Start is the anchor
// of a gesture and End is the moving edge; the two are not ordered.
// The zero value is the noop range.
type Range struct {
	start int
	end   int
	set   bool
}

// NewRange returns the range anchored at start with its moving edge at end.
func NewRange(start, end int) Range {
	return Range{start: start, end: end, set: true}
}

// Point returns the zero-width range [v, v].
func Point(v int) Range {
	return NewRange(v, v)
}

// Noop returns the range used in deltas to mean "no change".
func Noop() Range {
	return Range{}
}

// span builds a range ordered low to high, dropping anchor semantics.
func span(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return NewRange(a, b)
}

// IsNoop reports whether r carries no bounds.
func (r Range) IsNoop() bool { return !r.set }

// Start returns the anchor edge.
func (r Range) Start() int { return r.start }

// End returns the moving edge.
func (r Range) End() int { return r.end }

// Low returns min(start, end).
func (r Range) Low() int {
	if r.start < r.end {
		return r.start
	}
	return r.end
}

// High returns max(start, end).
func (r Range) High() int {
	if r.start > r.end {
		return r.start
	}
	return r.end
}

// Contains reports whether low <= v <= high. A noop range contains nothing.
func (r Range) Contains(v int) bool {
	if !r.set {
		return false
	}
	return v >= r.Low() && v <= r.High()
}

// Len returns the number of coordinates covered by r.
func (r Range) Len() int {
	if !r.set {
		return 0
	}
	return r.High() - r.Low() + 1
}

func (r Range) String() string {
	if !r.set {
		return "noop"
	}
	return fmt.Sprintf("[%d..%d]", r.start, r.end)
}

// ForwardDelta computes the minimal range of coordinates whose state changed
// when r's moving edge is replaced by next's, together with the operation a
// renderer should apply. Both ranges must share the same start.
func (r Range) ForwardDelta(next Range) (Range, Operation, error) {
	if !r.set || !next.set || r.start != next.start {
		return Noop(), OpNoop, fmt.Errorf("%w: %v -> %v", ErrAnchorMismatch, r, next)
	}

	e, n := r.end, next.end
	switch {
	case n == e:
		return Noop(), OpNoop, nil
	case e == r.start:
		// Single point. Moving towards lower coordinates is reported as a
		// removal starting one below the old edge.
		if n > e {
			return NewRange(e+1, n), OpAdd, nil
		}
		return NewRange(e-1, n), OpRemove, nil
	case e > r.start:
		if n > e {
			return NewRange(e+1, n), OpAdd, nil
		}
		return NewRange(e, n), OpRemove, nil
	default:
		if n < e {
			return NewRange(e-1, n), OpAdd, nil
		}
		return NewRange(e, n), OpRemove, nil
	}
}

// mustForwardDelta is ForwardDelta for callers that built next from r's own
// anchor. A mismatch means the caller's state is corrupt.
func (r Range) mustForwardDelta(next Range) (Range, Operation) {
	delta, op, err := r.ForwardDelta(next)
	if err != nil {
		panic(err)
	}
	return delta, op
}

// StepOption configures the directional step helpers.
type StepOption func(*stepConfig)

type stepConfig struct {
	clamp   int
	clamped bool
	step    int
}

// Clamp bounds a step: a result that would cross bound snaps to it.
func Clamp(bound int) StepOption {
	return func(c *stepConfig) {
		c.clamp = bound
		c.clamped = true
	}
}

// Step sets the step size. The default is 1.
func Step(n int) StepOption {
	return func(c *stepConfig) { c.step = n }
}

func newStepConfig(opts []StepOption) stepConfig {
	c := stepConfig{step: 1}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// IncrementHigh moves the high edge up.
func (r Range) IncrementHigh(opts ...StepOption) Range {
	c := newStepConfig(opts)
	if c.clamped && r.High()+c.step > c.clamp {
		return span(r.Low(), c.clamp)
	}
	return span(r.Low(), r.High()+c.step)
}

// DecrementHigh moves the high edge down.
func (r Range) DecrementHigh(opts ...StepOption) Range {
	c := newStepConfig(opts)
	if c.clamped && r.High()-c.step < c.clamp {
		return span(r.Low(), c.clamp)
	}
	return span(r.Low(), r.High()-c.step)
}

// IncrementLow moves the low edge up.
func (r Range) IncrementLow(opts ...StepOption) Range {
	c := newStepConfig(opts)
	if c.clamped && r.Low()+c.step > c.clamp {
		return span(c.clamp, r.High())
	}
	return span(r.Low()+c.step, r.High())
}

// DecrementLow moves the low edge down.
func (r Range) DecrementLow(opts ...StepOption) Range {
	c := newStepConfig(opts)
	if c.clamped && r.Low()-c.step < c.clamp {
		return span(c.clamp, r.High())
	}
	return span(r.Low()-c.step, r.High())
}

// ExtendLow is DecrementLow.
func (r Range) ExtendLow(opts ...StepOption) Range { return r.DecrementLow(opts...) }

// ShrinkLow is IncrementLow.
func (r Range) ShrinkLow(opts ...StepOption) Range { return r.IncrementLow(opts...) }

// ExtendHigh is IncrementHigh.
func (r Range) ExtendHigh(opts ...StepOption) Range { return r.IncrementHigh(opts...) }

// ShrinkHigh is DecrementHigh.
func (r Range) ShrinkHigh(opts ...StepOption) Range { return r.DecrementHigh(opts...) }

type rangeJSON struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// MarshalJSON encodes r as {"start":s,"end":e}, with nulls for noop.
func (r Range) MarshalJSON() ([]byte, error) {
	if !r.set {
		return json.Marshal(rangeJSON{})
	}
	start, end := r.start, r.end
	return json.Marshal(rangeJSON{Start: &start, End: &end})
}

// UnmarshalJSON decodes a range, rejecting one-sided bounds.
func (r *Range) UnmarshalJSON(data []byte) error {
	var raw rangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Start == nil && raw.End == nil:
		*r = Noop()
	case raw.Start == nil || raw.End == nil:
		return ErrMixedBounds
	default:
		*r = NewRange(*raw.Start, *raw.End)
	}
	return nil
}
