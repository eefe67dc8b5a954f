package selection

import "testing"

type recorder struct {
	events []Event
}

func (r *recorder) listen(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) last(t *testing.T) Event {
	t.Helper()
	if len(r.events) == 0 {
		t.Fatal("no events recorded")
	}
	return r.events[len(r.events)-1]
}

func newTestCoordinator(maxX, maxY int) (*Coordinator, *recorder) {
	rec := &recorder{}
	c := NewCoordinator(ExtentsFunc(func() (int, int) { return maxX, maxY }))
	c.Subscribe(rec.listen)
	return c, rec
}

func TestPointerDownSelectsByKind(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		mode   Mode
	}{
		{"data", Target{Kind: KindData, X: 2, Y: 3}, ModeCells},
		{"index", Target{Kind: KindIndex, X: 0, Y: 3}, ModeRows},
		{"header", Target{Kind: KindHeader, X: 2, Y: 0}, ModeColumns},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestCoordinator(10, 10)
			c.PointerDown(tt.target, false)
			ev := rec.last(t)
			if ev.Op != OpSet || ev.Mode != tt.mode || c.Mode() != tt.mode {
				t.Fatalf("got op=%s mode=%s coordinator=%s, want set %s", ev.Op, ev.Mode, c.Mode(), tt.mode)
			}
			if ev.Anchor != (Coord{X: tt.target.X, Y: tt.target.Y}) {
				t.Fatalf("unexpected anchor %+v", ev.Anchor)
			}
		})
	}
}

func TestModeSwitchResetsOtherManagers(t *testing.T) {
	c, _ := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	c.PointerUp()
	c.PointerDown(Target{Kind: KindIndex, X: 0, Y: 4}, false)
	c.PointerUp()

	cells, rows, cols := c.Managers()
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			if cells.Contains(x, y) {
				t.Fatalf("cell manager still contains (%d,%d)", x, y)
			}
		}
		if cols.Contains(x) {
			t.Fatalf("column manager still contains %d", x)
		}
	}
	if !rows.Contains(4) || c.Mode() != ModeRows {
		t.Fatal("row selection should be active")
	}
}

func TestPointerDownWhileHeldDeactivates(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	c.PointerDown(Target{Kind: KindData, X: 5, Y: 5}, false)

	if c.Held() {
		t.Fatal("re-entrant press should release the hold")
	}
	if c.Mode() != ModeNone {
		t.Fatalf("expected ModeNone after cancel, got %s", c.Mode())
	}
	if ev := rec.last(t); ev.Mode != ModeNone || ev.Op != OpSet {
		t.Fatalf("expected clearing set event, got %+v", ev)
	}
	if _, ok := c.Anchor(); ok {
		t.Fatal("anchor should be cleared")
	}
}

func TestDragExtendsCells(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindData, X: 2, Y: 2}, false)
	c.PointerEnter(Target{Kind: KindData, X: 4, Y: 2}, true)

	if len(rec.events) != 3 {
		t.Fatalf("expected set + two axis events, got %d", len(rec.events))
	}
	xEv, yEv := rec.events[1], rec.events[2]
	if xEv.Op != OpAdd || xEv.XRange != NewRange(2, 4) || xEv.DeltaX != NewRange(3, 4) {
		t.Fatalf("unexpected x event %+v", xEv)
	}
	if yEv.Op != OpNoop {
		t.Fatalf("expected y noop, got %+v", yEv)
	}
}

func TestEnterWithoutButtonReleasesHold(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindData, X: 2, Y: 2}, false)
	n := len(rec.events)
	c.PointerEnter(Target{Kind: KindData, X: 4, Y: 4}, false)
	if c.Held() || len(rec.events) != n {
		t.Fatal("enter with no button should drop the hold and emit nothing")
	}
}

func TestRowDragProjectsHeaderToRowZero(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindIndex, X: 0, Y: 3}, false)
	c.PointerEnter(Target{Kind: KindHeader, X: 5, Y: 0}, true)

	ev := rec.last(t)
	if ev.Mode != ModeRows || ev.YRange != NewRange(3, 0) {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestShiftPointerDownExtends(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	c.PointerUp()
	c.PointerDown(Target{Kind: KindData, X: 3, Y: 1}, true)

	if len(rec.events) != 3 {
		t.Fatalf("expected set + extend pair, got %d events", len(rec.events))
	}
	if rec.events[1].XRange != NewRange(1, 3) {
		t.Fatalf("shift press should extend from the anchor, got %v", rec.events[1].XRange)
	}
	if a, _ := c.Anchor(); a != (Coord{X: 1, Y: 1}) {
		t.Fatalf("anchor should not move, got %+v", a)
	}
}

func TestShiftKeyFlagExtendsOnPress(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	c.PointerUp()
	c.KeyDown(DirNone, true, true)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 4}, false)
	if rec.last(t).YRange != NewRange(1, 4) {
		t.Fatalf("expected extension while shift is held, got %+v", rec.last(t))
	}

	c.PointerUp()
	c.KeyUp(false)
	c.PointerDown(Target{Kind: KindData, X: 6, Y: 6}, false)
	if ev := rec.last(t); ev.Op != OpSet {
		t.Fatalf("expected a fresh selection once shift is released, got %+v", ev)
	}
}

func TestArrowMovesAnchorAndCollapses(t *testing.T) {
	c, rec := newTestCoordinator(3, 3)
	c.PointerDown(Target{Kind: KindIndex, X: 0, Y: 1}, false)
	c.PointerUp()

	c.KeyDown(DirRight, false, false)
	ev := rec.last(t)
	if ev.Mode != ModeCells || ev.Op != OpSet || ev.Anchor != (Coord{X: 1, Y: 1}) {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.XRange != Point(1) || ev.YRange != Point(1) {
		t.Fatalf("expected single cell, got %v x %v", ev.XRange, ev.YRange)
	}

	c.KeyDown(DirRight, false, false)
	c.KeyDown(DirRight, false, false)
	if a, _ := c.Anchor(); a.X != 2 {
		t.Fatalf("anchor should clamp at max-1, got %+v", a)
	}
	c.KeyDown(DirUp, false, false)
	c.KeyDown(DirUp, false, false)
	if a, _ := c.Anchor(); a.Y != 0 {
		t.Fatalf("anchor should clamp at 0, got %+v", a)
	}
}

func TestKeyWithoutAnchorIsIgnored(t *testing.T) {
	c, rec := newTestCoordinator(3, 3)
	c.KeyDown(DirDown, false, false)
	c.KeyDown(DirDown, true, false)
	if len(rec.events) != 0 {
		t.Fatalf("expected no events without an anchor, got %d", len(rec.events))
	}
}

func TestShiftArrowRespectsMode(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindHeader, X: 4, Y: 0}, false)
	c.PointerUp()
	n := len(rec.events)

	c.KeyDown(DirDown, true, false)
	if len(rec.events) != n {
		t.Fatal("columns mode should ignore vertical extension")
	}
	c.KeyDown(DirRight, true, false)
	ev := rec.last(t)
	if ev.Mode != ModeColumns || ev.XRange != NewRange(4, 5) || ev.DeltaX != Point(5) {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestShiftUpAtTopInRowsModeEmitsNothing(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindIndex, X: 0, Y: 0}, false)
	c.PointerUp()
	n := len(rec.events)
	c.KeyDown(DirUp, true, false)
	if len(rec.events) != n {
		t.Fatal("expected no event at the top boundary")
	}
}

func TestDragOffGridRequiresHold(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.PointerDown(Target{Kind: KindIndex, X: 0, Y: 2}, false)
	c.DragOffGrid(0, 6)
	if ev := rec.last(t); ev.YRange != NewRange(2, 6) || ev.Op != OpAdd {
		t.Fatalf("unexpected event %+v", ev)
	}

	c.PointerUp()
	n := len(rec.events)
	c.DragOffGrid(0, 8)
	if len(rec.events) != n {
		t.Fatal("drag-off-grid after release should be ignored")
	}
}

func TestResizeSuspendsSelection(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.SetResizeActive(true)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	if len(rec.events) != 0 || c.Held() {
		t.Fatal("pointer input should be ignored during a resize session")
	}
	c.SetResizeActive(false)
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	if len(rec.events) != 1 {
		t.Fatal("pointer input should resume after the resize session")
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	c, rec := newTestCoordinator(10, 10)
	c.Select(1, 1)
	c.SetEnabled(false)
	c.KeyDown(DirDown, false, false)
	c.PointerDown(Target{Kind: KindData, X: 3, Y: 3}, false)
	if len(rec.events) != 1 {
		t.Fatalf("expected only the initial selection, got %d events", len(rec.events))
	}
	if !c.Contains(1, 1) {
		t.Fatal("disabling should keep the selection")
	}
}

func TestSelectAllAndSnapshot(t *testing.T) {
	c, rec := newTestCoordinator(4, 3)
	c.Select(2, 1)
	c.SelectAll()
	ev := rec.last(t)
	if ev.XRange != NewRange(0, 3) || ev.YRange != NewRange(0, 2) {
		t.Fatalf("unexpected ranges %v x %v", ev.XRange, ev.YRange)
	}
	snap := c.Selection()
	if snap.Anchor != (Coord{X: 2, Y: 1}) || !snap.Contains(3, 2) || snap.Contains(4, 2) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestListenerSeesPostMutationState(t *testing.T) {
	c := NewCoordinator(ExtentsFunc(func() (int, int) { return 10, 10 }))
	var observed []bool
	c.Subscribe(func(ev Event) {
		observed = append(observed, c.Contains(ev.XRange.End(), ev.YRange.End()))
	})
	c.PointerDown(Target{Kind: KindData, X: 1, Y: 1}, false)
	c.PointerEnter(Target{Kind: KindData, X: 3, Y: 3}, true)
	for i, ok := range observed {
		if !ok {
			t.Fatalf("listener %d observed pre-mutation state", i)
		}
	}
}
