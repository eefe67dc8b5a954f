package grid

import "github.com/andyrewlee/cellgrid/internal/selection"

// paint is the visual selection state. It only changes through selection
// events, so it can be checked against the coordinator. A painted
// selection is always one rectangle, band of rows or band of columns, so
// it is kept as ranges and never grows with the selection's area.
type paint struct {
	mode selection.Mode
	xs   selection.Range
	ys   selection.Range
}

func newPaint() *paint {
	p := &paint{}
	p.clear()
	return p
}

func (p *paint) clear() {
	p.mode = selection.ModeNone
	p.xs = selection.Noop()
	p.ys = selection.Noop()
}

// apply folds ev into the visual state. A set replaces everything. Add and
// remove carry the full ranges after their delta, and those ranges are
// exactly the cells the delta leaves painted, even when it crosses the
// anchor.
func (p *paint) apply(ev selection.Event) {
	switch ev.Op {
	case selection.OpNoop:
		return
	case selection.OpSet:
		p.clear()
		p.mode = ev.Mode
	default:
		if ev.Mode != p.mode {
			return
		}
	}

	switch ev.Mode {
	case selection.ModeCells:
		p.xs, p.ys = ev.XRange, ev.YRange
	case selection.ModeRows:
		p.ys = ev.YRange
	case selection.ModeColumns:
		p.xs = ev.XRange
	default:
		p.clear()
	}
}

// marked reports whether data cell (x, y) is painted as selected.
func (p *paint) marked(x, y int) bool {
	switch p.mode {
	case selection.ModeCells:
		return p.xs.Contains(x) && p.ys.Contains(y)
	case selection.ModeRows:
		return p.ys.Contains(y)
	case selection.ModeColumns:
		return p.xs.Contains(x)
	}
	return false
}

func (p *paint) rowMarked(y int) bool {
	return p.mode == selection.ModeRows && p.ys.Contains(y)
}

func (p *paint) columnMarked(x int) bool {
	return p.mode == selection.ModeColumns && p.xs.Contains(x)
}

// size is the number of painted cells, rows or columns.
func (p *paint) size() int {
	switch p.mode {
	case selection.ModeCells:
		return p.xs.Len() * p.ys.Len()
	case selection.ModeRows:
		return p.ys.Len()
	case selection.ModeColumns:
		return p.xs.Len()
	}
	return 0
}
