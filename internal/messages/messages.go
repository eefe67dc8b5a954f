package messages

import "time"

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error reports a failure to the UI. Logged marks errors that were already
// written to the log where they happened.
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// AutoScrollTick drives the grid's auto-scroll pump. Gen identifies the
// tick chain that scheduled it.
type AutoScrollTick struct {
	Gen uint64
	At  time.Time
}

// ResizeActive is sent when a column or row resize drag starts.
type ResizeActive struct {
	Column bool
	Index  int
}

// ResizeInactive is sent when a resize drag ends.
type ResizeInactive struct {
	Column bool
	Index  int
	Size   int
}

// CellEdited is sent after an inline edit is committed.
type CellEdited struct {
	X     int
	Y     int
	Value string
}

// SelectionChanged carries a short description of the current selection
// for the status line.
type SelectionChanged struct {
	Summary string
}

// SheetChanged reports that the sheet file changed on disk.
type SheetChanged struct {
	Path string
}

// SheetReloaded carries a freshly loaded sheet. Sheet is a *sheet.Sheet; it
// is typed any so this package stays free of domain imports.
type SheetReloaded struct {
	Path  string
	Sheet any
}

// SheetSaved reports a completed save. Sheet is the *sheet.Sheet the saved
// copy was taken from and Revision its edit count at that moment.
type SheetSaved struct {
	Path     string
	Sheet    any
	Revision uint64
}

// Copied reports that cells were copied to the clipboard.
type Copied struct {
	Cells int
}
