package attendance

import (
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"
)

// Phase is the attendance lifecycle position, derived purely from the fetched
// record on every pass. NOT_STARTED -> CHECKED_IN -> COMPLETED, terminal.
type Phase string

const (
	PhaseNotStarted Phase = "NOT_STARTED"
	PhaseCheckedIn  Phase = "CHECKED_IN"
	PhaseCompleted  Phase = "COMPLETED"
)

// PhaseOf derives the phase from a record. A nil record means no check-in has
// happened yet.
func PhaseOf(rec *Record) Phase {
	switch {
	case rec == nil || rec.TimeIn == nil:
		return PhaseNotStarted
	case rec.TimeOut == nil:
		return PhaseCheckedIn
	default:
		return PhaseCompleted
	}
}

// Action is the attendance intent the worker may issue next.
type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
	ActionNone     Action = "none"
)

// ActionState is the permitted next action and how the UI must present it.
// Late windows are expected, frequent conditions, so they are disabled states
// with labels rather than errors.
type ActionState struct {
	Action         Action
	Enabled        bool
	RequiresReason bool // early check-out must carry a justification
	Early          bool
	Label          string
}

const (
	LabelWindowNotStarted  = "window hasn't started"
	LabelLateForCheckIn    = "late for check-in"
	LabelCheckInOpen       = "check-in open"
	LabelCheckOutOpen      = "check-out open"
	LabelEarlyCheckOut     = "early check-out, reason required"
	LabelLateForCheckOut   = "late for check-out"
	LabelAlreadyCheckedOut = "already checked out"
	LabelWindowUndefined   = "shift window not configured"
)

// sinceMod returns how many minutes now is past mark, modulo a day. It is the
// wrap-safe "how far into / past the window are we" measure.
func sinceMod(now, mark int) int {
	return ((now - mark) % clock.MinutesPerDay + clock.MinutesPerDay) % clock.MinutesPerDay
}

// EvaluateAction computes the permitted action for a phase at nowMinutes,
// given the shift's configured window and the grace period. All interval
// tests are wrap-safe so overnight shifts behave identically to day shifts.
func EvaluateAction(phase Phase, nowMinutes int, window settings.Window, graceMinutes int) ActionState {
	if !window.Defined || window.Start == window.End {
		return ActionState{Action: ActionNone, Label: LabelWindowUndefined}
	}

	shiftLen := sinceMod(window.End, window.Start)

	switch phase {
	case PhaseNotStarted:
		sinceStart := sinceMod(nowMinutes, window.Start)
		switch {
		case sinceStart < graceMinutes:
			// Inside [shiftStart, shiftStart+grace): check-in is open.
			return ActionState{Action: ActionCheckIn, Enabled: true, Label: LabelCheckInOpen}
		case sinceStart < shiftLen:
			// Shift is running but the check-in window has passed. The
			// worker is handled out-of-band; attendance is not auto-failed.
			return ActionState{Action: ActionCheckIn, Label: LabelLateForCheckIn}
		default:
			return ActionState{Action: ActionCheckIn, Label: LabelWindowNotStarted}
		}

	case PhaseCheckedIn:
		sinceEnd := sinceMod(nowMinutes, window.End)
		sinceStart := sinceMod(nowMinutes, window.Start)
		switch {
		case sinceEnd < graceMinutes:
			// Inside [shiftEnd, shiftEnd+grace): ordinary check-out.
			return ActionState{Action: ActionCheckOut, Enabled: true, Label: LabelCheckOutOpen}
		case sinceStart < shiftLen:
			// Still inside [shiftStart, shiftEnd): leaving early needs a
			// non-empty justification before the intent is issued.
			return ActionState{Action: ActionCheckOut, Enabled: true, RequiresReason: true, Early: true, Label: LabelEarlyCheckOut}
		default:
			return ActionState{Action: ActionCheckOut, Label: LabelLateForCheckOut}
		}

	default: // PhaseCompleted
		return ActionState{Action: ActionNone, Label: LabelAlreadyCheckedOut}
	}
}
