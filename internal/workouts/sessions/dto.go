package sessions

import (
	"time"

	"github.com/2beens/workouts/internal/workouts/plans"
)

type StartSessionInput struct {
	UserID        string  `json:"-"`
	WorkoutPlanID string  `json:"workoutPlanId"`
	Notes         *string `json:"notes,omitempty"`
}

type PlanInfo struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Description              *string `json:"description"`
	ExerciseCount            int     `json:"exerciseCount"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
}

type ExerciseInfo struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Sets                     int    `json:"sets"`
	Reps                     int    `json:"reps"`
	RestTimeSeconds          int    `json:"restTimeSeconds"`
	Order                    int    `json:"order"`
	EstimatedDurationSeconds int    `json:"estimatedDurationSeconds"`
}

type StartSessionInfo struct {
	CanPause        bool   `json:"canPause"`
	CanComplete     bool   `json:"canComplete"`
	CanCancel       bool   `json:"canCancel"`
	CurrentDuration string `json:"currentDuration"`
}

type StartSessionOutput struct {
	ID          string           `json:"id"`
	Status      Status           `json:"status"`
	StartedAt   time.Time        `json:"startedAt"`
	WorkoutPlan PlanInfo         `json:"workoutPlan"`
	Exercises   []ExerciseInfo   `json:"exercises"`
	SessionInfo StartSessionInfo `json:"sessionInfo"`
}

// SessionInput identifies a session of the user for the pause and resume operations.
type SessionInput struct {
	UserID    string
	SessionID string
}

type ControlInfo struct {
	CanPause    bool `json:"canPause"`
	CanResume   bool `json:"canResume"`
	CanComplete bool `json:"canComplete"`
	CanCancel   bool `json:"canCancel"`
}

// TransitionOutput is returned by pause and resume. Only the timestamp of the
// performed transition is set.
type TransitionOutput struct {
	ID              string      `json:"id"`
	Status          Status      `json:"status"`
	PausedAt        *time.Time  `json:"pausedAt,omitempty"`
	ResumedAt       *time.Time  `json:"resumedAt,omitempty"`
	CurrentDuration string      `json:"currentDuration"`
	SessionInfo     ControlInfo `json:"sessionInfo"`
}

type CompleteSessionInput struct {
	UserID    string  `json:"-"`
	SessionID string  `json:"-"`
	Notes     *string `json:"notes,omitempty"`
}

type PlanRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CompletionSummary struct {
	ExercisesCompleted int `json:"exercisesCompleted"`
	TotalExercises     int `json:"totalExercises"`
	CompletionRate     int `json:"completionRate"`
}

type CompleteSessionOutput struct {
	ID                string            `json:"id"`
	Status            Status            `json:"status"`
	CompletedAt       time.Time         `json:"completedAt"`
	TotalDurationMs   int64             `json:"totalDurationMs"`
	FormattedDuration string            `json:"formattedDuration"`
	Notes             *string           `json:"notes"`
	WorkoutPlan       PlanRef           `json:"workoutPlan"`
	Summary           CompletionSummary `json:"summary"`
}

type CancelSessionInput struct {
	UserID    string  `json:"-"`
	SessionID string  `json:"-"`
	Reason    *string `json:"reason,omitempty"`
}

type CancelSessionOutput struct {
	ID                string    `json:"id"`
	Status            Status    `json:"status"`
	CancelledAt       time.Time `json:"cancelledAt"`
	TotalDurationMs   int64     `json:"totalDurationMs"`
	FormattedDuration string    `json:"formattedDuration"`
	Notes             *string   `json:"notes"`
	Reason            *string   `json:"reason"`
}

type SessionDetailsOutput struct {
	ID              string      `json:"id"`
	WorkoutPlanID   string      `json:"workoutPlanId"`
	Notes           *string     `json:"notes"`
	TotalDurationMs *int64      `json:"totalDurationMs"`
	StatusInfo      StatusInfo  `json:"statusInfo"`
	SessionInfo     ControlInfo `json:"sessionInfo"`
}

type HistoryInput struct {
	UserID string
	// From narrows the history; it must be within the retention of the user's tier.
	From  *time.Time
	Page  int
	Limit int
}

type SessionSummary struct {
	ID                string     `json:"id"`
	WorkoutPlanID     string     `json:"workoutPlanId"`
	Status            Status     `json:"status"`
	StartedAt         time.Time  `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt"`
	TotalDurationMs   *int64     `json:"totalDurationMs"`
	FormattedDuration string     `json:"formattedDuration"`
	Notes             *string    `json:"notes"`
}

type HistoryOutput struct {
	Sessions      []SessionSummary `json:"sessions"`
	Pagination    plans.Pagination `json:"pagination"`
	RetentionDays int              `json:"retentionDays"`
}

func controlInfo(s *Session) ControlInfo {
	return ControlInfo{
		CanPause:    s.CanBePaused(),
		CanResume:   s.CanBeResumed(),
		CanComplete: s.CanBeCompleted(),
		CanCancel:   s.CanBeCancelled(),
	}
}
