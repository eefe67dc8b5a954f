package selection

import "testing"

func TestCellManagerScenario(t *testing.T) {
	var m CellManager
	set := m.SetSelection(2, 2, Coord{X: 2, Y: 2})
	if set.Op != OpSet || !set.DeltaX.IsNoop() || !set.DeltaY.IsNoop() {
		t.Fatalf("unexpected set event %+v", set)
	}

	xEv, yEv := m.UpdateSelectionEnd(4, 2)
	if xEv.Op != OpAdd {
		t.Fatalf("expected x add, got %s", xEv.Op)
	}
	if xEv.XRange != NewRange(2, 4) {
		t.Fatalf("expected x range [2..4], got %v", xEv.XRange)
	}
	if xEv.DeltaX != NewRange(3, 4) {
		t.Fatalf("expected x delta [3..4], got %v", xEv.DeltaX)
	}
	if !xEv.DeltaY.IsNoop() {
		t.Fatalf("x event should carry noop y delta, got %v", xEv.DeltaY)
	}
	if yEv.Op != OpNoop {
		t.Fatalf("expected y noop, got %s", yEv.Op)
	}
	if xEv.Anchor != (Coord{X: 2, Y: 2}) {
		t.Fatalf("unexpected anchor %+v", xEv.Anchor)
	}
}

func TestCellManagerEventsCarryOtherAxis(t *testing.T) {
	var m CellManager
	m.SetSelection(1, 1, Coord{X: 1, Y: 1})
	xEv, yEv := m.UpdateSelectionEnd(3, 4)

	if xEv.YRange != Point(1) {
		t.Fatalf("x event should carry the previous y range, got %v", xEv.YRange)
	}
	if yEv.XRange != NewRange(1, 3) {
		t.Fatalf("y event should carry the new x range, got %v", yEv.XRange)
	}
	if yEv.DeltaY != NewRange(2, 4) || yEv.Op != OpAdd {
		t.Fatalf("unexpected y event %+v", yEv)
	}
	if !m.Contains(3, 4) || m.Contains(4, 4) {
		t.Fatal("Contains does not reflect the updated ranges")
	}
}

func TestCellManagerAnchorPersists(t *testing.T) {
	var m CellManager
	m.SetSelection(5, 5, Coord{X: 5, Y: 5})
	for _, end := range [][2]int{{6, 7}, {2, 9}, {5, 0}, {9, 9}, {5, 5}} {
		m.UpdateSelectionEnd(end[0], end[1])
		x, y := m.Ranges()
		if x.Start() != 5 || y.Start() != 5 {
			t.Fatalf("anchor moved to (%d,%d)", x.Start(), y.Start())
		}
		if x.End() != end[0] || y.End() != end[1] {
			t.Fatalf("end = (%d,%d), want %v", x.End(), y.End(), end)
		}
	}
}

func TestCellManagerTranslate(t *testing.T) {
	var m CellManager
	m.SetSelection(0, 0, Coord{})

	if _, ok := m.TranslateSelectionEnd(DirLeft, 10, 10); ok {
		t.Fatal("left at x=0 should be suppressed")
	}
	if _, ok := m.TranslateSelectionEnd(DirUp, 10, 10); ok {
		t.Fatal("up at y=0 should be suppressed")
	}

	ev, ok := m.TranslateSelectionEnd(DirRight, 10, 10)
	if !ok || ev.Op != OpAdd || ev.DeltaX != Point(1) {
		t.Fatalf("unexpected right event %+v ok=%v", ev, ok)
	}
	ev, ok = m.TranslateSelectionEnd(DirDown, 10, 10)
	if !ok || ev.Op != OpAdd || ev.DeltaY != Point(1) {
		t.Fatalf("unexpected down event %+v ok=%v", ev, ok)
	}

	m.SetSelection(9, 9, Coord{X: 9, Y: 9})
	if _, ok := m.TranslateSelectionEnd(DirRight, 10, 10); ok {
		t.Fatal("right at max-1 should be suppressed")
	}
	if _, ok := m.TranslateSelectionEnd(DirDown, 10, 10); ok {
		t.Fatal("down at max-1 should be suppressed")
	}
}

func TestRowManagerTranslateAtTop(t *testing.T) {
	var m RowManager
	m.SetSelection(0, Coord{X: 0, Y: 0})
	if _, ok := m.TranslateSelectionEnd(DirUp, 10); ok {
		t.Fatal("shift+up at the top row should not produce an event")
	}
	if _, ok := m.TranslateSelectionEnd(DirLeft, 10); ok {
		t.Fatal("rows ignore horizontal directions")
	}
	ev, ok := m.TranslateSelectionEnd(DirDown, 10)
	if !ok || ev.Mode != ModeRows || ev.YRange != NewRange(0, 1) {
		t.Fatalf("unexpected event %+v ok=%v", ev, ok)
	}
	if !ev.XRange.IsNoop() {
		t.Fatalf("rows events carry no x range, got %v", ev.XRange)
	}
}

func TestColumnManager(t *testing.T) {
	var m ColumnManager
	m.SetSelection(3, Coord{X: 3, Y: 0})
	ev := m.UpdateSelectionEnd(1)
	if ev.Op != OpRemove || ev.XRange != NewRange(3, 1) {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !m.Contains(1) || !m.Contains(3) || m.Contains(4) {
		t.Fatal("Contains does not match [3..1]")
	}
	if _, ok := m.TranslateSelectionEnd(DirUp, 10); ok {
		t.Fatal("columns ignore vertical directions")
	}
	m.Reset()
	if m.Active() || m.Contains(3) {
		t.Fatal("Reset should drop the selection")
	}
}
