package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/cellgrid/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"

	ActionExtendUp    Action = "extend_up"
	ActionExtendDown  Action = "extend_down"
	ActionExtendLeft  Action = "extend_left"
	ActionExtendRight Action = "extend_right"

	ActionSelectAll Action = "select_all"
	ActionDeselect  Action = "deselect"
	ActionEdit      Action = "edit"
	ActionCommit    Action = "commit"
	ActionCancel    Action = "cancel"
	ActionClear     Action = "clear"
	ActionCopy      Action = "copy"

	ActionSave   Action = "save"
	ActionReload Action = "reload"
	ActionQuit   Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	MoveUp    key.Binding
	MoveDown  key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding

	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding

	SelectAll key.Binding
	Deselect  key.Binding
	Edit      key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	Clear     key.Binding
	Copy      key.Binding

	Save   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var defaults = []bindingDef{
	{ActionMoveUp, []string{"up"}, "up"},
	{ActionMoveDown, []string{"down"}, "down"},
	{ActionMoveLeft, []string{"left"}, "left"},
	{ActionMoveRight, []string{"right"}, "right"},
	{ActionExtendUp, []string{"shift+up"}, "extend up"},
	{ActionExtendDown, []string{"shift+down"}, "extend down"},
	{ActionExtendLeft, []string{"shift+left"}, "extend left"},
	{ActionExtendRight, []string{"shift+right"}, "extend right"},
	{ActionSelectAll, []string{"ctrl+a"}, "select all"},
	{ActionDeselect, []string{"esc"}, "clear selection"},
	{ActionEdit, []string{"enter", "f2"}, "edit"},
	{ActionCommit, []string{"enter"}, "commit"},
	{ActionCancel, []string{"esc"}, "cancel"},
	{ActionClear, []string{"delete", "backspace"}, "clear cells"},
	{ActionCopy, []string{"y", "ctrl+c"}, "copy"},
	{ActionSave, []string{"ctrl+s"}, "save"},
	{ActionReload, []string{"ctrl+r"}, "reload"},
	{ActionQuit, []string{"q", "ctrl+q"}, "quit"},
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	var km KeyMap
	for _, def := range defaults {
		if b := bindingRef(&km, def.action); b != nil {
			*b = bindingFromDef(cfg, def)
		}
	}
	return km
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

func bindingRef(km *KeyMap, action Action) *key.Binding {
	switch action {
	case ActionMoveUp:
		return &km.MoveUp
	case ActionMoveDown:
		return &km.MoveDown
	case ActionMoveLeft:
		return &km.MoveLeft
	case ActionMoveRight:
		return &km.MoveRight
	case ActionExtendUp:
		return &km.ExtendUp
	case ActionExtendDown:
		return &km.ExtendDown
	case ActionExtendLeft:
		return &km.ExtendLeft
	case ActionExtendRight:
		return &km.ExtendRight
	case ActionSelectAll:
		return &km.SelectAll
	case ActionDeselect:
		return &km.Deselect
	case ActionEdit:
		return &km.Edit
	case ActionCommit:
		return &km.Commit
	case ActionCancel:
		return &km.Cancel
	case ActionClear:
		return &km.Clear
	case ActionCopy:
		return &km.Copy
	case ActionSave:
		return &km.Save
	case ActionReload:
		return &km.Reload
	case ActionQuit:
		return &km.Quit
	default:
		return nil
	}
}

// BindingForAction returns the binding for the given action.
func BindingForAction(km KeyMap, action Action) key.Binding {
	if b := bindingRef(&km, action); b != nil {
		return *b
	}
	return key.Binding{}
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	key := PrimaryKey(binding)
	if key == "" {
		return binding.Help().Key
	}
	return key
}

// HelpLine renders "key desc" pairs for the given bindings, separated by
// two spaces.
func HelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		hint := BindingHint(b)
		if hint == "" {
			continue
		}
		parts = append(parts, hint+" "+b.Help().Desc)
	}
	return strings.Join(parts, "  ")
}

// ActionInfo describes a configurable action for UI display.
type ActionInfo struct {
	Action Action
	Desc   string
	Group  string
}

// ActionInfos returns the ordered list of actions for UI display.
func ActionInfos() []ActionInfo {
	groups := map[Action]string{
		ActionCommit: "Editor",
		ActionCancel: "Editor",
		ActionSave:   "File",
		ActionReload: "File",
		ActionQuit:   "File",
	}
	infos := make([]ActionInfo, 0, len(defaults))
	for _, def := range defaults {
		group, ok := groups[def.action]
		if !ok {
			group = "Grid"
		}
		infos = append(infos, ActionInfo{Action: def.action, Desc: def.desc, Group: group})
	}
	return infos
}
