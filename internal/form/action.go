package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is one of the four buttons of the analysis window
type Action int

const (
	ActionSelectExport Action = iota + 1
	ActionSelectImport
	ActionRunAnalysis
	ActionExit
)

// Actions lists the actions in menu order
var Actions = []Action{ActionSelectExport, ActionSelectImport, ActionRunAnalysis, ActionExit}

// String returns the button caption
func (a Action) String() string {
	switch a {
	case ActionSelectExport:
		return "Select Export Data"
	case ActionSelectImport:
		return "Select Import Data"
	case ActionRunAnalysis:
		return "Run Analysis"
	case ActionExit:
		return "Exit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction accepts a menu number ("1".."4") or a caption, case-insensitive.
// "q" and "quit" mean ActionExit.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		a := Action(n)
		if a >= ActionSelectExport && a <= ActionExit {
			return a, nil
		}
		return 0, fmt.Errorf("unknown action %d", n)
	}

	switch strings.ToLower(s) {
	case "q", "quit":
		return ActionExit, nil
	}
	for _, a := range Actions {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
