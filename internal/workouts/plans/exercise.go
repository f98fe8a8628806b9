package plans

import (
	"fmt"
	"time"

	"github.com/2beens/workouts/internal/apperr"
)

const (
	DefaultSets            = 3
	DefaultReps            = 10
	DefaultRestTimeSeconds = 60

	MinSets, MaxSets                       = 1, 20
	MinReps, MaxReps                       = 1, 100
	MinRestTimeSeconds, MaxRestTimeSeconds = 0, 600

	// estimated time under load for one set
	secondsPerSet = 30
)

type Exercise struct {
	ID                string
	WorkoutPlanID     string
	Name              string
	Description       *string
	TargetMuscleGroup *string
	Sets              int
	Reps              int
	RestTimeSeconds   int
	Order             int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type NewExerciseParams struct {
	ID                string
	WorkoutPlanID     string
	Name              string
	Description       *string
	TargetMuscleGroup *string
	Sets              int
	Reps              int
	RestTimeSeconds   int
	Order             int
}

func NewExercise(params NewExerciseParams, now time.Time) (*Exercise, error) {
	name, err := normalizeName("exercise name", params.Name)
	if err != nil {
		return nil, err
	}

	e := &Exercise{
		ID:                params.ID,
		WorkoutPlanID:     params.WorkoutPlanID,
		Name:              name,
		Description:       trimmedOrNil(params.Description),
		TargetMuscleGroup: trimmedOrNil(params.TargetMuscleGroup),
		Sets:              params.Sets,
		Reps:              params.Reps,
		RestTimeSeconds:   params.RestTimeSeconds,
		Order:             params.Order,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Exercise) Validate() error {
	if e.ID == "" {
		return apperr.Validation("exercise id is required")
	}
	if e.WorkoutPlanID == "" {
		return apperr.Validation("workout plan id is required")
	}
	if err := validateOptionalText("description", e.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateOptionalText("target muscle group", e.TargetMuscleGroup, MaxMuscleGroupLength); err != nil {
		return err
	}
	if err := validateRange("sets", e.Sets, MinSets, MaxSets); err != nil {
		return err
	}
	if err := validateRange("reps", e.Reps, MinReps, MaxReps); err != nil {
		return err
	}
	if err := validateRange("rest time", e.RestTimeSeconds, MinRestTimeSeconds, MaxRestTimeSeconds); err != nil {
		return err
	}
	if e.Order < 1 {
		return apperr.Validation("exercise order must be at least 1")
	}
	return nil
}

// EstimatedDurationSeconds is the time under load plus the rests between sets.
func (e *Exercise) EstimatedDurationSeconds() int {
	return e.Sets*secondsPerSet + (e.Sets-1)*e.RestTimeSeconds
}

func (e *Exercise) FormattedDescription() string {
	desc := fmt.Sprintf("%d sets x %d reps | Rest: %s", e.Sets, e.Reps, FormatRestTime(e.RestTimeSeconds))
	if e.TargetMuscleGroup != nil {
		desc += " | " + *e.TargetMuscleGroup
	}
	return desc
}

// Clone returns a deep copy, so the optional texts are not shared.
func (e *Exercise) Clone() Exercise {
	c := *e
	if e.Description != nil {
		d := *e.Description
		c.Description = &d
	}
	if e.TargetMuscleGroup != nil {
		m := *e.TargetMuscleGroup
		c.TargetMuscleGroup = &m
	}
	return c
}

// FormatRestTime renders seconds as "45s", "2min" or "1min 30s".
func FormatRestTime(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes, rest := seconds/60, seconds%60
	if rest == 0 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dmin %ds", minutes, rest)
}
