package selection

// Mode identifies which axis manager owns the selection.
type Mode int

const (
	ModeNone Mode = iota
	ModeCells
	ModeRows
	ModeColumns
)

func (m Mode) String() string {
	switch m {
	case ModeCells:
		return "cells"
	case ModeRows:
		return "rows"
	case ModeColumns:
		return "columns"
	default:
		return "none"
	}
}

// Operation tells a renderer how to apply an Event.
type Operation string

const (
	// OpSet replaces the whole selected set.
	OpSet Operation = "set"
	// OpAdd and OpRemove only touch coordinates inside the delta ranges.
	OpAdd    Operation = "add"
	OpRemove Operation = "remove"
	OpNoop   Operation = "noop"
)

// Coord is a zero-based logical coordinate: X indexes columns, Y rows.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a single-step keyboard direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Event describes a selection change. Rows events leave XRange as noop and
// columns events leave YRange as noop.
type Event struct {
	Mode   Mode      `json:"mode"`
	Op     Operation `json:"operation"`
	XRange Range     `json:"x_range"`
	YRange Range     `json:"y_range"`
	DeltaX Range     `json:"delta_x_range"`
	DeltaY Range     `json:"delta_y_range"`
	Anchor Coord     `json:"anchor"`
}

// Contains reports whether (x, y) lies inside the event's full ranges.
func (e Event) Contains(x, y int) bool {
	switch e.Mode {
	case ModeCells:
		return e.XRange.Contains(x) && e.YRange.Contains(y)
	case ModeRows:
		return e.YRange.Contains(y)
	case ModeColumns:
		return e.XRange.Contains(x)
	default:
		return false
	}
}
