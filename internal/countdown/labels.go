package countdown

import "github.com/fentz26/blanktimer/internal/models"

// Control labels bound by renderers.
const (
	LabelPause    = "Pause"
	LabelResume   = "Resume"
	LabelRestart  = "Restart"
	LabelCancel   = "Cancel"
	LabelNewTimer = "New timer"
)

// ToggleLabel is the label of the pause/resume control for s. It is empty
// when the control is unavailable.
func (s Snapshot) ToggleLabel() string {
	switch s.Status {
	case models.TimerStatusRunning:
		return LabelPause
	case models.TimerStatusPaused:
		return LabelResume
	case models.TimerStatusCompleted:
		return LabelRestart
	default:
		return ""
	}
}

// CanCancel reports whether the cancel control is available.
func (s Snapshot) CanCancel() bool {
	return s.Status == models.TimerStatusRunning || s.Status == models.TimerStatusPaused
}

// Headline is the large text in the middle of the ring: the remaining time
// while any is left, otherwise "Done" or "Cancelled".
func (s Snapshot) Headline() string {
	if s.Remaining > 0 {
		return models.FormatClock(s.Remaining)
	}
	if s.Status == models.TimerStatusCancelled {
		return "Cancelled"
	}
	return "Done"
}
