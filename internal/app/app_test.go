package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/sheet"
)

// newTestApp shows a 3x3 sheet in a 60x10 terminal. The index column is 4
// wide and columns are 12 wide, so cell A1 spans x 4..15 on screen row 2.
func newTestApp(t *testing.T, s *sheet.Sheet) *App {
	t.Helper()
	if s == nil {
		s = sheet.FromRows([][]string{{"a", "b", "c"}, {"d", "e", "f"}, {"g", "h", "i"}})
	}
	a := New(nil, s, Options{})
	t.Cleanup(a.Shutdown)
	a.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	return a
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// collect runs cmd and flattens batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// send delivers msg and feeds every resulting message back into the app.
func send(a *App, msg tea.Msg) []tea.Msg {
	_, cmd := a.Update(msg)
	msgs := collect(cmd)
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			continue
		}
		a.Update(m)
	}
	return msgs
}

func hasMsg[T any](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}

func ctrl(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl} }

func TestWindowSizePlacesGridBelowToolbar(t *testing.T) {
	a := newTestApp(t, nil)

	send(a, tea.MouseClickMsg{X: 5, Y: 2, Button: tea.MouseLeft})
	send(a, tea.MouseReleaseMsg{X: 5, Y: 2, Button: tea.MouseLeft})
	if !a.Grid().Selected(0, 0) || a.summary != "A1" {
		t.Fatalf("click on A1 selected %q", a.summary)
	}

	send(a, tea.MouseClickMsg{X: 17, Y: 3, Button: tea.MouseLeft})
	if a.summary != "B2" {
		t.Fatalf("summary = %q, want B2", a.summary)
	}
}

func TestViewFillsTerminal(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, tea.MouseClickMsg{X: 5, Y: 2, Button: tea.MouseLeft})

	content := a.render()
	lines := strings.Split(content, "\n")
	if len(lines) != 10 {
		t.Fatalf("view has %d lines, want 10", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 60 {
			t.Fatalf("line %d is %d wide, want 60: %q", i, w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "cellgrid") || !strings.Contains(ansi.Strip(lines[0]), "[Quit]") {
		t.Fatalf("toolbar = %q", ansi.Strip(lines[0]))
	}
	if !strings.Contains(ansi.Strip(lines[9]), "A1") {
		t.Fatalf("status line = %q", ansi.Strip(lines[9]))
	}
}

func TestQuitAsksAgainWithUnsavedEdits(t *testing.T) {
	a := newTestApp(t, nil)
	quit := tea.KeyPressMsg{Code: 'q', Text: "q"}

	if !hasMsg[tea.QuitMsg](send(a, quit)) {
		t.Fatal("a clean sheet should quit at once")
	}

	a = newTestApp(t, nil)
	_ = a.Grid().Sheet().Set(0, 0, "x")
	if hasMsg[tea.QuitMsg](send(a, quit)) {
		t.Fatal("unsaved edits should hold the first quit")
	}
	if a.status != unsavedWarning {
		t.Fatalf("status = %q", a.status)
	}
	if !hasMsg[tea.QuitMsg](send(a, quit)) {
		t.Fatal("the second quit should go through")
	}
}

func TestQuitKeyGoesToEditorWhileEditing(t *testing.T) {
	a := newTestApp(t, nil)
	send(a, tea.MouseClickMsg{X: 5, Y: 2, Button: tea.MouseLeft})
	send(a, tea.MouseReleaseMsg{X: 5, Y: 2, Button: tea.MouseLeft})
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !a.Grid().Editing() {
		t.Fatal("enter should open the editor")
	}
	a.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if a.quitting {
		t.Fatal("q must be typed into the editor, not quit")
	}
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := a.Grid().Sheet().Get(0, 0); got != "aq" {
		t.Fatalf("A1 = %q, want %q", got, "aq")
	}
}

func TestSaveWritesFileAndClearsDirty(t *testing.T) {
	path := writeCSV(t, "a,b\nc,d\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestApp(t, s)
	_ = a.Grid().Sheet().Set(1, 1, "z")

	msgs := send(a, ctrl('s'))
	if !hasMsg[messages.SheetSaved](msgs) {
		t.Fatalf("expected SheetSaved, got %#v", msgs)
	}
	if a.Grid().Sheet().Dirty() {
		t.Fatal("sheet should be clean after saving")
	}
	if a.statusLevel != messages.ToastSuccess {
		t.Fatalf("status level = %q", a.statusLevel)
	}

	again, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if again.Get(1, 1) != "z" {
		t.Fatalf("saved D2 = %q, want z", again.Get(1, 1))
	}
}

func TestSaveKeepsLaterEditsDirty(t *testing.T) {
	path := writeCSV(t, "a,b\nc,d\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestApp(t, s)
	_ = a.Grid().Sheet().Set(1, 1, "first")

	_, cmd := a.Update(ctrl('s'))
	if cmd == nil {
		t.Fatal("ctrl+s should return a save command")
	}
	_ = a.Grid().Sheet().Set(1, 1, "second")
	for _, msg := range collect(cmd) {
		send(a, msg)
	}

	if !a.Grid().Sheet().Dirty() {
		t.Fatal("an edit made during the save must stay dirty")
	}
	if a.statusLevel != messages.ToastWarning {
		t.Fatalf("status level = %q, want warning", a.statusLevel)
	}
	if send(a, ctrl('q')); a.quitting {
		t.Fatal("quit must warn about the unsaved edit first")
	}
	again, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if again.Get(1, 1) != "first" {
		t.Fatalf("saved B2 = %q, want first", again.Get(1, 1))
	}
}

func TestSaveResultIgnoredAfterSheetSwap(t *testing.T) {
	path := writeCSV(t, "a,b\nc,d\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestApp(t, s)
	_ = s.Set(0, 0, "x")

	_, cmd := a.Update(ctrl('s'))
	replacement := sheet.FromRows([][]string{{"p", "q"}})
	replacement.Path = path
	_ = replacement.Set(0, 0, "r")
	a.Update(messages.SheetReloaded{Path: path, Sheet: replacement})

	for _, msg := range collect(cmd) {
		send(a, msg)
	}
	if !replacement.Dirty() {
		t.Fatal("a save of the old sheet must not clean the new one")
	}
}

func TestSaveWithoutPathWarns(t *testing.T) {
	a := newTestApp(t, nil)
	if msgs := send(a, ctrl('s')); len(msgs) != 0 {
		t.Fatalf("expected no command, got %#v", msgs)
	}
	if a.statusLevel != messages.ToastWarning {
		t.Fatalf("status level = %q, want warning", a.statusLevel)
	}
}

func TestExternalChangeReloadsCleanSheet(t *testing.T) {
	path := writeCSV(t, "a,b\nc,d\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestApp(t, s)
	send(a, tea.MouseClickMsg{X: 5, Y: 2, Button: tea.MouseLeft})

	if err := os.WriteFile(path, []byte("x,y\nz,w\nv,u\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	msgs := send(a, messages.SheetChanged{Path: path})
	if !hasMsg[messages.SheetReloaded](msgs) {
		t.Fatalf("expected SheetReloaded, got %#v", msgs)
	}
	got := a.Grid().Sheet()
	if got.Get(0, 0) != "x" {
		t.Fatalf("A1 = %q after reload", got.Get(0, 0))
	}
	if _, rows := got.Dims(); rows != 3 {
		t.Fatalf("rows = %d, want 3", rows)
	}
	if !a.Grid().Selected(0, 0) {
		t.Fatal("the anchor should survive a reload")
	}
}

func TestExternalChangeKeepsDirtySheet(t *testing.T) {
	path := writeCSV(t, "a,b\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestApp(t, s)
	_ = a.Grid().Sheet().Set(0, 0, "mine")

	if msgs := send(a, messages.SheetChanged{Path: path}); len(msgs) != 0 {
		t.Fatalf("dirty sheet should not reload, got %#v", msgs)
	}
	if a.Grid().Sheet().Get(0, 0) != "mine" || a.statusLevel != messages.ToastWarning {
		t.Fatal("edits should be kept with a warning")
	}
}

func TestReloadErrorShowsInStatus(t *testing.T) {
	path := writeCSV(t, "a\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestApp(t, s)
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	msgs := send(a, ctrl('r'))
	if !hasMsg[messages.Error](msgs) {
		t.Fatalf("expected an Error, got %#v", msgs)
	}
	if a.statusLevel != messages.ToastError || !strings.Contains(a.status, "reload") {
		t.Fatalf("status = %q (%s)", a.status, a.statusLevel)
	}
	if !errors.Is(a.err, os.ErrNotExist) {
		t.Fatalf("err = %v", a.err)
	}
}

func TestToolbarQuitButton(t *testing.T) {
	a := newTestApp(t, nil)
	a.View()

	deadline := time.Now().Add(2 * time.Second)
	z := a.zone.Get(toolbarZoneID("quit"))
	for z.IsZero() {
		if time.Now().After(deadline) {
			t.Fatal("toolbar zone was never registered")
		}
		time.Sleep(5 * time.Millisecond)
		z = a.zone.Get(toolbarZoneID("quit"))
	}

	if msgs := send(a, tea.MouseClickMsg{X: z.StartX - 1, Y: 0, Button: tea.MouseLeft}); hasMsg[tea.QuitMsg](msgs) {
		t.Fatal("a click left of the button should not quit")
	}
	if !hasMsg[tea.QuitMsg](send(a, tea.MouseClickMsg{X: z.StartX, Y: 0, Button: tea.MouseLeft})) {
		t.Fatal("clicking [Quit] should quit")
	}
}

func TestWatcherDeliversSheetChanged(t *testing.T) {
	path := writeCSV(t, "a\n")
	s, err := sheet.Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := New(nil, s, Options{Watch: true})
	defer a.Shutdown()

	got := make(chan tea.Msg, 8)
	a.SetMsgSender(func(msg tea.Msg) { got <- msg })
	a.Init()
	if a.watcher == nil {
		t.Fatal("watcher should be running")
	}

	if err := os.WriteFile(path, []byte("b\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case msg := <-got:
		if _, ok := msg.(messages.SheetChanged); !ok {
			t.Fatalf("unexpected message %#v", msg)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for SheetChanged")
	}
}
