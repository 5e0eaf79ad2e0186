package browser

import "github.com/google/uuid"

// Command is one discrete input from the user
type Command int

const (
	CmdNone Command = iota
	CmdMoveUp
	CmdMoveDown
	CmdEnterOrActivate
	CmdExitToParent
	CmdRequestErase
	CmdConfirm
	CmdDeny
	CmdQuit
	CmdRefresh
)

var commandNames = map[Command]string{
	CmdNone:            "none",
	CmdMoveUp:          "move_up",
	CmdMoveDown:        "move_down",
	CmdEnterOrActivate: "enter",
	CmdExitToParent:    "exit_to_parent",
	CmdRequestErase:    "request_erase",
	CmdConfirm:         "confirm",
	CmdDeny:            "deny",
	CmdQuit:            "quit",
	CmdRefresh:         "refresh",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// GateState is the state of the confirmation gate
type GateState int

const (
	Idle GateState = iota
	PendingDelete
)

func (s GateState) String() string {
	if s == PendingDelete {
		return "pending_delete"
	}
	return "idle"
}

// Decision is what the gate tells the session to do with a command
type Decision int

const (
	// Forward passes the command on to navigation
	Forward Decision = iota
	// Swallow drops the command
	Swallow
	// Arm moves the gate to PendingDelete for the selected file
	Arm
	// Reject refuses an erase request (directory or nothing selected)
	Reject
	// Execute resolves the pending request and runs the erase
	Execute
	// Cancel resolves the pending request without side effects
	Cancel
)

// Gate serializes access to the shredder. At most one request is pending
// and while it is, every command other than Confirm and Deny is swallowed.
type Gate struct {
	state     GateState
	target    Entry
	requestID string
}

// NewGate returns an idle gate
func NewGate() *Gate {
	return &Gate{state: Idle}
}

// State returns the current state
func (g *Gate) State() GateState { return g.state }

// Pending returns the target of the outstanding request
func (g *Gate) Pending() (Entry, bool) {
	if g.state != PendingDelete {
		return Entry{}, false
	}
	return g.target, true
}

// RequestID identifies the outstanding request; empty when idle
func (g *Gate) RequestID() string { return g.requestID }

// Decide is the transition table. It reports what to do with cmd given the
// current selection, without changing state.
func (g *Gate) Decide(cmd Command, selected Entry, hasSelection bool) Decision {
	switch g.state {
	case PendingDelete:
		switch cmd {
		case CmdConfirm:
			return Execute
		case CmdDeny:
			return Cancel
		default:
			return Swallow
		}
	default:
		switch cmd {
		case CmdRequestErase:
			if !hasSelection || selected.IsDir {
				return Reject
			}
			return Arm
		case CmdConfirm, CmdDeny:
			return Swallow
		default:
			return Forward
		}
	}
}

// Arm records a pending erase of target. It returns false, leaving the gate
// untouched, when a request is already pending or target is a directory.
func (g *Gate) Arm(target Entry) bool {
	if g.state != Idle || target.IsDir {
		return false
	}
	g.state = PendingDelete
	g.target = target
	g.requestID = uuid.NewString()
	return true
}

// Resolve returns the gate to Idle and hands back the entry that was
// pending. ok is false when nothing was pending.
func (g *Gate) Resolve() (target Entry, requestID string, ok bool) {
	if g.state != PendingDelete {
		return Entry{}, "", false
	}
	target, requestID = g.target, g.requestID
	g.state = Idle
	g.target = Entry{}
	g.requestID = ""
	return target, requestID, true
}
