package executions

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/workouts/internal/apperr"
)

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusSkipped    Status = "SKIPPED"
)

// Execution is the performance of one exercise of the plan within a session.
// It owns its sets, at most one per set number.
type Execution struct {
	ID               string
	WorkoutSessionID string
	ExerciseID       string
	Status           Status
	StartedAt        *time.Time
	CompletedAt      *time.Time
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int

	sets []*Set
}

type Summary struct {
	Status         Status   `json:"status"`
	Duration       string   `json:"duration"`
	CompletedSets  int      `json:"completedSets"`
	TotalSets      int      `json:"totalSets"`
	CompletionRate int      `json:"completionRate"`
	AverageWeight  *float64 `json:"averageWeight"`
	TotalReps      int      `json:"totalReps"`
}

func New(id, sessionID, exerciseID string, now time.Time) (*Execution, error) {
	if id == "" {
		return nil, apperr.Validation("execution id is required")
	}
	if sessionID == "" {
		return nil, apperr.Validation("workout session id is required")
	}
	if exerciseID == "" {
		return nil, apperr.Validation("exercise id is required")
	}
	return &Execution{
		ID:               id,
		WorkoutSessionID: sessionID,
		ExerciseID:       exerciseID,
		Status:           StatusNotStarted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (e *Execution) Start(now time.Time) error {
	if !e.CanBeStarted() {
		return apperr.InvalidTransition("exercise execution has already been started")
	}
	e.Status = StatusInProgress
	e.StartedAt = &now
	e.UpdatedAt = now
	return nil
}

// Complete finishes an execution in progress. Nil or blank notes keep the
// existing ones.
func (e *Execution) Complete(notes *string, now time.Time) error {
	if !e.CanBeCompleted() {
		return apperr.InvalidTransition("can only complete an exercise execution that is in progress, status is %s", e.Status)
	}
	notes, err := trimmedText(notes, MaxExecutionNotes)
	if err != nil {
		return err
	}

	e.Status = StatusCompleted
	e.CompletedAt = &now
	if notes != nil {
		e.Notes = notes
	}
	e.UpdatedAt = now
	return nil
}

func (e *Execution) Skip(reason *string, now time.Time) error {
	if !e.CanBeSkipped() {
		return apperr.InvalidTransition("cannot skip an exercise execution with status %s", e.Status)
	}
	reason, err := trimmedText(reason, MaxSkipReasonLength)
	if err != nil {
		return err
	}

	e.Status = StatusSkipped
	e.CompletedAt = &now
	if reason != nil {
		notes := "Skipped: " + *reason
		e.Notes = &notes
	}
	e.UpdatedAt = now
	return nil
}

func (e *Execution) AddSet(set Set, now time.Time) error {
	switch {
	case e.Status == StatusNotStarted:
		return apperr.InvalidTransition("cannot add sets before starting the exercise execution")
	case e.IsFinished():
		return apperr.InvalidTransition("cannot add sets to a %s exercise execution", strings.ToLower(string(e.Status)))
	}
	if e.set(set.SetNumber) != nil {
		return apperr.Conflict("set number %d already exists", set.SetNumber)
	}

	set.ExecutionID = e.ID
	e.sets = append(e.sets, &set)
	e.UpdatedAt = now
	return nil
}

// CompleteSet completes the set with the given number and returns a copy of it.
func (e *Execution) CompleteSet(setNumber int, c SetCompletion, now time.Time) (Set, error) {
	set := e.set(setNumber)
	if set == nil {
		return Set{}, ErrSetNotFound
	}
	if err := set.Complete(c, now); err != nil {
		return Set{}, err
	}
	e.UpdatedAt = now
	return *set, nil
}

// UpdateSetWeight corrects the weight of a set of an execution in progress.
func (e *Execution) UpdateSetWeight(setNumber int, weight float64, now time.Time) (Set, error) {
	if !e.IsActive() {
		return Set{}, apperr.InvalidTransition("cannot change sets of a %s exercise execution", strings.ToLower(string(e.Status)))
	}
	set := e.set(setNumber)
	if set == nil {
		return Set{}, ErrSetNotFound
	}
	if err := set.UpdateWeight(weight, now); err != nil {
		return Set{}, err
	}
	e.UpdatedAt = now
	return *set, nil
}

func (e *Execution) RemoveSet(setNumber int, now time.Time) error {
	idx := slices.IndexFunc(e.sets, func(s *Set) bool { return s.SetNumber == setNumber })
	if idx < 0 {
		return ErrSetNotFound
	}
	e.sets = slices.Delete(e.sets, idx, idx+1)
	e.UpdatedAt = now
	return nil
}

// OrderedSets returns copies of the sets sorted by set number.
func (e *Execution) OrderedSets() []Set {
	ordered := make([]Set, 0, len(e.sets))
	for _, s := range e.sets {
		ordered = append(ordered, *s)
	}
	slices.SortFunc(ordered, func(a, b Set) int { return a.SetNumber - b.SetNumber })
	return ordered
}

func (e *Execution) TotalSets() int {
	return len(e.sets)
}

func (e *Execution) CompletedSetsCount() int {
	count := 0
	for _, s := range e.sets {
		if s.IsCompleted() {
			count++
		}
	}
	return count
}

// AreAllSetsCompleted is false for an execution without sets.
func (e *Execution) AreAllSetsCompleted() bool {
	if len(e.sets) == 0 {
		return false
	}
	for _, s := range e.sets {
		if !s.IsCompleted() {
			return false
		}
	}
	return true
}

// NextIncompleteSet returns the lowest numbered set not yet completed.
func (e *Execution) NextIncompleteSet() (Set, bool) {
	for _, s := range e.OrderedSets() {
		if !s.IsCompleted() {
			return s, true
		}
	}
	return Set{}, false
}

// Duration runs from the start to completion, or to now while in progress.
func (e *Execution) Duration(now time.Time) time.Duration {
	if e.StartedAt == nil {
		return 0
	}
	end := now
	if e.CompletedAt != nil {
		end = *e.CompletedAt
	}
	return max(end.Sub(*e.StartedAt), 0)
}

// FormattedDuration renders MM:SS, minutes are not wrapped into hours.
func (e *Execution) FormattedDuration(now time.Time) string {
	total := int64(e.Duration(now) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (e *Execution) Summary(now time.Time) Summary {
	completed := e.CompletedSetsCount()
	total := len(e.sets)

	var weightSum float64
	weighted, reps := 0, 0
	for _, s := range e.sets {
		if !s.IsCompleted() {
			continue
		}
		reps += *s.ActualReps
		if s.Weight != nil {
			weightSum += *s.Weight
			weighted++
		}
	}

	summary := Summary{
		Status:         e.Status,
		Duration:       e.FormattedDuration(now),
		CompletedSets:  completed,
		TotalSets:      total,
		CompletionRate: percentage(completed, total),
		TotalReps:      reps,
	}
	if weighted > 0 {
		avg := weightSum / float64(weighted)
		summary.AverageWeight = &avg
	}
	return summary
}

func (e *Execution) CanBeStarted() bool {
	return e.Status == StatusNotStarted
}

func (e *Execution) CanBeCompleted() bool {
	return e.Status == StatusInProgress
}

func (e *Execution) CanBeSkipped() bool {
	return e.Status == StatusNotStarted || e.Status == StatusInProgress
}

func (e *Execution) IsActive() bool {
	return e.Status == StatusInProgress
}

func (e *Execution) IsFinished() bool {
	return e.Status == StatusCompleted || e.Status == StatusSkipped
}

func (e *Execution) set(setNumber int) *Set {
	for _, s := range e.sets {
		if s.SetNumber == setNumber {
			return s
		}
	}
	return nil
}

// loadSets replaces the sets with stored ones.
func (e *Execution) loadSets(sets []*Set) {
	e.sets = sets
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func trimmedText(text *string, maxLen int) (*string, error) {
	if text == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return nil, apperr.Validation("text must be at most %d characters", maxLen)
	}
	return &trimmed, nil
}
