package workflow

import "fmt"

// State is a step of the attach workflow.
type State int

const (
	Init State = iota
	AwaitingPermission
	PermissionDenied
	Loading
	Attached
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case AwaitingPermission:
		return "AwaitingPermission"
	case PermissionDenied:
		return "PermissionDenied"
	case Loading:
		return "Loading"
	case Attached:
		return "Attached"
	case LoadFailed:
		return "LoadFailed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == PermissionDenied || s == Attached || s == LoadFailed
}

// transitions lists the allowed moves. Nothing leads back to Loading.
var transitions = map[State][]State{
	Init:               {AwaitingPermission, Loading},
	AwaitingPermission: {Loading, PermissionDenied},
	Loading:            {Attached, LoadFailed},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
