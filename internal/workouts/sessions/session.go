package sessions

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/workouts/internal/apperr"
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaused     Status = "PAUSED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

const (
	MaxNotesLength        = 500
	MaxCancelReasonLength = 200
)

// Session is one timed attempt at working through a plan. Only the most
// recent pause window is tracked.
type Session struct {
	ID              string
	UserID          string
	WorkoutPlanID   string
	Status          Status
	StartedAt       time.Time
	PausedAt        *time.Time
	ResumedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	TotalDurationMs *int64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

type StatusInfo struct {
	Status    Status     `json:"status"`
	Duration  string     `json:"duration"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

func New(id, userID, workoutPlanID string, notes *string, now time.Time) (*Session, error) {
	if id == "" {
		return nil, apperr.Validation("session id is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("user id is required")
	}
	if strings.TrimSpace(workoutPlanID) == "" {
		return nil, apperr.Validation("workout plan id is required")
	}
	notes, err := validNotes(notes, MaxNotesLength)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:            id,
		UserID:        userID,
		WorkoutPlanID: workoutPlanID,
		Status:        StatusInProgress,
		StartedAt:     now,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (s *Session) Pause(now time.Time) error {
	if !s.CanBePaused() {
		return apperr.InvalidTransition("cannot pause a workout session with status %s", s.Status)
	}
	s.Status = StatusPaused
	s.PausedAt = &now
	s.UpdatedAt = now
	return nil
}

func (s *Session) Resume(now time.Time) error {
	if !s.CanBeResumed() {
		return apperr.InvalidTransition("cannot resume a workout session with status %s", s.Status)
	}
	s.Status = StatusInProgress
	s.ResumedAt = &now
	s.UpdatedAt = now
	return nil
}

// Complete finishes the session and freezes its duration. Nil or blank notes
// keep the existing ones.
func (s *Session) Complete(notes *string, now time.Time) error {
	if !s.CanBeCompleted() {
		return apperr.InvalidTransition("cannot complete a workout session with status %s", s.Status)
	}
	notes, err := validNotes(notes, MaxNotesLength)
	if err != nil {
		return err
	}

	s.Status = StatusCompleted
	s.CompletedAt = &now
	if notes != nil {
		s.Notes = notes
	}
	s.freezeDuration(now)
	s.UpdatedAt = now
	return nil
}

func (s *Session) Cancel(reason *string, now time.Time) error {
	if !s.CanBeCancelled() {
		return apperr.InvalidTransition("cannot cancel a workout session with status %s", s.Status)
	}
	reason, err := validNotes(reason, MaxCancelReasonLength)
	if err != nil {
		return err
	}

	s.Status = StatusCancelled
	s.CancelledAt = &now
	if reason != nil {
		notes := "Cancelled: " + *reason
		s.Notes = &notes
	}
	s.freezeDuration(now)
	s.UpdatedAt = now
	return nil
}

func (s *Session) IsActive() bool {
	return s.Status == StatusInProgress || s.Status == StatusPaused
}

func (s *Session) IsFinished() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}

func (s *Session) CanBePaused() bool {
	return s.Status == StatusInProgress
}

func (s *Session) CanBeResumed() bool {
	return s.Status == StatusPaused
}

func (s *Session) CanBeCompleted() bool {
	return s.IsActive()
}

func (s *Session) CanBeCancelled() bool {
	return s.IsActive()
}

// CurrentDuration is the frozen duration of a finished session, otherwise
// the live duration at now. Only the latest pause window is subtracted.
func (s *Session) CurrentDuration(now time.Time) time.Duration {
	if s.IsFinished() && s.TotalDurationMs != nil {
		return time.Duration(*s.TotalDurationMs) * time.Millisecond
	}
	return s.duration(now)
}

func (s *Session) FormattedDuration(now time.Time) string {
	return FormatDuration(s.CurrentDuration(now))
}

func (s *Session) EndedAt() *time.Time {
	if s.CompletedAt != nil {
		return s.CompletedAt
	}
	return s.CancelledAt
}

func (s *Session) StatusInfo(now time.Time) StatusInfo {
	return StatusInfo{
		Status:    s.Status,
		Duration:  s.FormattedDuration(now),
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt(),
	}
}

func (s *Session) freezeDuration(now time.Time) {
	ms := s.duration(now).Milliseconds()
	s.TotalDurationMs = &ms
}

// duration excludes only the most recent pause window. A session whose last
// pause was never resumed stops counting at that pause, so after
// pause, resume and pause again the duration is the time from the start to
// the second pause, earlier pause gaps included.
func (s *Session) duration(now time.Time) time.Duration {
	end := now
	if ended := s.EndedAt(); ended != nil {
		end = *ended
	}

	var d time.Duration
	switch {
	case s.PausedAt != nil && s.ResumedAt != nil && !s.ResumedAt.Before(*s.PausedAt):
		d = end.Sub(s.StartedAt) - s.ResumedAt.Sub(*s.PausedAt)
	case s.PausedAt != nil:
		d = s.PausedAt.Sub(s.StartedAt)
	default:
		d = end.Sub(s.StartedAt)
	}
	return max(d, 0)
}

// FormatDuration renders MM:SS, or HH:MM:SS from one hour on.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	hours, minutes, seconds := total/3600, (total%3600)/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func validNotes(notes *string, maxLen int) (*string, error) {
	if notes == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return nil, apperr.Validation("text must be at most %d characters", maxLen)
	}
	return &trimmed, nil
}
