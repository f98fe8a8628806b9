package executions

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/workouts/plans"
)

const (
	MinSetNumber        = 1
	MaxSetNumber        = 20
	MinPlannedReps      = 1
	MaxPlannedReps      = 100
	MaxActualReps       = 100
	MaxWeightKg         = 1000
	MaxSetRestSeconds   = 1800
	MaxSetNotesLength   = 200
	MaxExecutionNotes   = 500
	MaxSkipReasonLength = 200
)

// Set is one planned set of an execution. SetNumber and PlannedReps never
// change; a set is completed once both ActualReps and CompletedAt are set.
type Set struct {
	ID              string
	ExecutionID     string
	SetNumber       int
	PlannedReps     int
	ActualReps      *int
	Weight          *float64
	RestTimeSeconds *int
	CompletedAt     *time.Time
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

// SetCompletion is what was actually performed in a set.
type SetCompletion struct {
	ActualReps      int
	Weight          *float64
	RestTimeSeconds *int
	Notes           *string
}

type SetStats struct {
	IsCompleted          bool    `json:"isCompleted"`
	WasSuccessful        bool    `json:"wasSuccessful"`
	RepsDifference       int     `json:"repsDifference"`
	CompletionPercentage int     `json:"completionPercentage"`
	Volume               float64 `json:"volume"`
}

type Verdict string

const (
	VerdictBetter Verdict = "better"
	VerdictSame   Verdict = "same"
	VerdictWorse  Verdict = "worse"
)

type Comparison struct {
	RepsImprovement    int     `json:"repsImprovement"`
	WeightImprovement  float64 `json:"weightImprovement"`
	OverallImprovement Verdict `json:"overallImprovement"`
}

func NewSet(id, executionID string, setNumber, plannedReps int, weight *float64, now time.Time) (*Set, error) {
	if id == "" {
		return nil, apperr.Validation("set id is required")
	}
	if setNumber < MinSetNumber || setNumber > MaxSetNumber {
		return nil, apperr.Validation("set number must be between %d and %d", MinSetNumber, MaxSetNumber)
	}
	if plannedReps < MinPlannedReps || plannedReps > MaxPlannedReps {
		return nil, apperr.Validation("planned reps must be between %d and %d", MinPlannedReps, MaxPlannedReps)
	}
	if err := validateWeight(weight); err != nil {
		return nil, err
	}

	return &Set{
		ID:          id,
		ExecutionID: executionID,
		SetNumber:   setNumber,
		PlannedReps: plannedReps,
		Weight:      copyPtr(weight),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Complete records the performed reps. A nil weight keeps the weight the set
// was planned with. Completing a set twice is rejected.
func (s *Set) Complete(c SetCompletion, now time.Time) error {
	if s.IsCompleted() {
		return apperr.InvalidTransition("set %d is already completed", s.SetNumber)
	}
	if err := validateActualReps(c.ActualReps); err != nil {
		return err
	}
	if err := validateWeight(c.Weight); err != nil {
		return err
	}
	if err := validateRestTime(c.RestTimeSeconds); err != nil {
		return err
	}
	if err := validateSetNotes(c.Notes); err != nil {
		return err
	}

	reps := c.ActualReps
	s.ActualReps = &reps
	if c.Weight != nil {
		s.Weight = copyPtr(c.Weight)
	}
	s.RestTimeSeconds = copyPtr(c.RestTimeSeconds)
	s.Notes = copyPtr(c.Notes)
	s.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

func (s *Set) UpdateWeight(weight float64, now time.Time) error {
	if err := validateWeight(&weight); err != nil {
		return err
	}
	s.Weight = &weight
	s.UpdatedAt = now
	return nil
}

func (s *Set) IsCompleted() bool {
	return s.CompletedAt != nil && s.ActualReps != nil
}

func (s *Set) WasSuccessful() bool {
	return s.IsCompleted() && *s.ActualReps > 0
}

func (s *Set) RepsDifference() int {
	if !s.IsCompleted() {
		return 0
	}
	return *s.ActualReps - s.PlannedReps
}

func (s *Set) CompletionPercentage() int {
	if !s.IsCompleted() {
		return 0
	}
	if s.PlannedReps == 0 {
		return 100
	}
	return int(math.Round(float64(*s.ActualReps) / float64(s.PlannedReps) * 100))
}

// Volume is weight times reps of a completed, weighted set.
func (s *Set) Volume() float64 {
	if !s.IsCompleted() || s.Weight == nil {
		return 0
	}
	return *s.Weight * float64(*s.ActualReps)
}

func (s *Set) Stats() SetStats {
	return SetStats{
		IsCompleted:          s.IsCompleted(),
		WasSuccessful:        s.WasSuccessful(),
		RepsDifference:       s.RepsDifference(),
		CompletionPercentage: s.CompletionPercentage(),
		Volume:               s.Volume(),
	}
}

// CompareWith compares against a previous set. A weight change decides the
// verdict before a reps change does.
func (s *Set) CompareWith(previous Set) Comparison {
	reps := valueOr(s.ActualReps, 0) - valueOr(previous.ActualReps, 0)
	weight := valueOr(s.Weight, 0) - valueOr(previous.Weight, 0)

	verdict := VerdictSame
	switch {
	case weight > 0 || (weight == 0 && reps > 0):
		verdict = VerdictBetter
	case weight < 0 || (weight == 0 && reps < 0):
		verdict = VerdictWorse
	}

	return Comparison{
		RepsImprovement:    reps,
		WeightImprovement:  weight,
		OverallImprovement: verdict,
	}
}

func (s *Set) FormattedWeight() string {
	if s.Weight == nil {
		return "Bodyweight"
	}
	return strconv.FormatFloat(*s.Weight, 'f', -1, 64) + " kg"
}

func (s *Set) FormattedRestTime() string {
	if s.RestTimeSeconds == nil {
		return "Not recorded"
	}
	return plans.FormatRestTime(*s.RestTimeSeconds)
}

func (s *Set) FormattedDescription() string {
	if !s.IsCompleted() {
		return fmt.Sprintf("Set %d: %d reps planned", s.SetNumber, s.PlannedReps)
	}

	desc := fmt.Sprintf("Set %d: %d/%d reps", s.SetNumber, *s.ActualReps, s.PlannedReps)
	if s.Weight != nil && *s.Weight > 0 {
		desc += " | " + s.FormattedWeight()
	}
	if s.RestTimeSeconds != nil && *s.RestTimeSeconds > 0 {
		desc += " | Rest: " + s.FormattedRestTime()
	}
	return desc
}

func validateActualReps(reps int) error {
	if reps < 0 || reps > MaxActualReps {
		return apperr.Validation("actual reps must be between 0 and %d", MaxActualReps)
	}
	return nil
}

func validateWeight(weight *float64) error {
	if weight != nil && (*weight < 0 || *weight > MaxWeightKg || math.IsNaN(*weight)) {
		return apperr.Validation("weight must be between 0 and %d kg", MaxWeightKg)
	}
	return nil
}

func validateRestTime(seconds *int) error {
	if seconds != nil && (*seconds < 0 || *seconds > MaxSetRestSeconds) {
		return apperr.Validation("rest time must be between 0 and %d seconds", MaxSetRestSeconds)
	}
	return nil
}

func validateSetNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > MaxSetNotesLength {
		return apperr.Validation("set notes must be at most %d characters", MaxSetNotesLength)
	}
	return nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
