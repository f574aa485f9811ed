package attendance

import (
	"testing"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/stretchr/testify/assert"
)

func window(start, end string) settings.Window {
	return settings.ParseWindow(start, end)
}

func TestPhaseOf(t *testing.T) {
	now := time.Now()
	later := now.Add(8 * time.Hour)

	assert.Equal(t, PhaseNotStarted, PhaseOf(nil))
	assert.Equal(t, PhaseNotStarted, PhaseOf(&Record{}))
	assert.Equal(t, PhaseCheckedIn, PhaseOf(&Record{TimeIn: &now}))
	assert.Equal(t, PhaseCompleted, PhaseOf(&Record{TimeIn: &now, TimeOut: &later}))
}

func TestEvaluateAction_NotStarted_DayShift(t *testing.T) {
	day := window("08:00", "20:00")
	const grace = 15

	tests := []struct {
		name        string
		nowMinutes  int
		wantEnabled bool
		wantLabel   string
	}{
		{"before window", 7 * 60, false, LabelWindowNotStarted},
		{"at shift start", 8 * 60, true, LabelCheckInOpen},
		{"inside grace", 8*60 + 14, true, LabelCheckInOpen},
		{"grace just over", 8*60 + 15, false, LabelLateForCheckIn},
		{"mid shift", 14 * 60, false, LabelLateForCheckIn},
		{"after shift end", 21 * 60, false, LabelWindowNotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateAction(PhaseNotStarted, tt.nowMinutes, day, grace)
			assert.Equal(t, ActionCheckIn, got.Action)
			assert.Equal(t, tt.wantEnabled, got.Enabled)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestEvaluateAction_NotStarted_OvernightShift(t *testing.T) {
	night := window("22:00", "06:00")
	const grace = 15

	// 22:05 is inside the check-in window even though the window wraps.
	got := EvaluateAction(PhaseNotStarted, 22*60+5, night, grace)
	assert.True(t, got.Enabled)

	// 02:00 is mid-shift: late, not "hasn't started".
	got = EvaluateAction(PhaseNotStarted, 2*60, night, grace)
	assert.False(t, got.Enabled)
	assert.Equal(t, LabelLateForCheckIn, got.Label)

	// 12:00 is outside the shift entirely.
	got = EvaluateAction(PhaseNotStarted, 12*60, night, grace)
	assert.Equal(t, LabelWindowNotStarted, got.Label)
}

func TestEvaluateAction_CheckedIn_DayShift(t *testing.T) {
	day := window("08:00", "20:00")
	const grace = 15

	// Ordinary check-out inside [end, end+grace).
	got := EvaluateAction(PhaseCheckedIn, 20*60+5, day, grace)
	assert.Equal(t, ActionCheckOut, got.Action)
	assert.True(t, got.Enabled)
	assert.False(t, got.RequiresReason)

	// Mid-shift: early check-out, reason required.
	got = EvaluateAction(PhaseCheckedIn, 14*60, day, grace)
	assert.True(t, got.Enabled)
	assert.True(t, got.RequiresReason)
	assert.True(t, got.Early)

	// Past end+grace: disabled.
	got = EvaluateAction(PhaseCheckedIn, 20*60+30, day, grace)
	assert.False(t, got.Enabled)
	assert.Equal(t, LabelLateForCheckOut, got.Label)
}

func TestEvaluateAction_CheckedIn_OvernightShift(t *testing.T) {
	night := window("22:00", "06:00")
	const grace = 15

	// 06:10 is inside the wrapped check-out window.
	got := EvaluateAction(PhaseCheckedIn, 6*60+10, night, grace)
	assert.True(t, got.Enabled)
	assert.False(t, got.RequiresReason)

	// 23:30, mid overnight shift: early check-out.
	got = EvaluateAction(PhaseCheckedIn, 23*60+30, night, grace)
	assert.True(t, got.RequiresReason)

	// 03:00, still mid shift past midnight: early check-out.
	got = EvaluateAction(PhaseCheckedIn, 3*60, night, grace)
	assert.True(t, got.RequiresReason)

	// 06:30, past grace: late.
	got = EvaluateAction(PhaseCheckedIn, 6*60+30, night, grace)
	assert.False(t, got.Enabled)
	assert.Equal(t, LabelLateForCheckOut, got.Label)
}

func TestEvaluateAction_CompletedIsTerminal(t *testing.T) {
	day := window("08:00", "20:00")

	// Whatever the clock says, a completed record offers no action.
	for _, nowMinutes := range []int{0, 8 * 60, 14 * 60, 20 * 60, 23 * 60} {
		got := EvaluateAction(PhaseCompleted, nowMinutes, day, 15)
		assert.Equal(t, ActionNone, got.Action)
		assert.False(t, got.Enabled)
		assert.Equal(t, LabelAlreadyCheckedOut, got.Label)
	}
}

func TestEvaluateAction_UndefinedWindowNeverActive(t *testing.T) {
	got := EvaluateAction(PhaseNotStarted, 10*60, settings.Window{}, 15)
	assert.Equal(t, ActionNone, got.Action)
	assert.Equal(t, LabelWindowUndefined, got.Label)

	// Zero-length window behaves the same.
	zero := settings.Window{Start: 540, End: 540, Defined: true}
	got = EvaluateAction(PhaseNotStarted, 540, zero, 15)
	assert.Equal(t, ActionNone, got.Action)
}

func TestRecordDuration_ClampsSkew(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	out := in.Add(-time.Hour)
	rec := &Record{TimeIn: &in, TimeOut: &out}

	assert.Equal(t, time.Duration(0), rec.Duration())
	assert.Equal(t, "0h0m", rec.DurationLabel())

	okOut := in.Add(7*time.Hour + 58*time.Minute)
	rec.TimeOut = &okOut
	assert.Equal(t, "7h58m", rec.DurationLabel())
}
