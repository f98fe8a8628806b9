package limits

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/workouts/internal/apperr"
)

// Unlimited marks a bound that never rejects.
const Unlimited = -1

const (
	FreeMaxWorkoutPlans      = 2
	FreeMaxExercisesPerPlan  = 5
	FreeHistoryRetentionDays = 30
)

// Limits is the set of usage bounds for one subscription tier.
type Limits struct {
	MaxWorkoutPlans          int  `json:"maxWorkoutPlans"`
	MaxExercisesPerPlan      int  `json:"maxExercisesPerPlan"`
	HistoryRetentionDays     int  `json:"historyRetentionDays"`
	CanAccessTrainerFeatures bool `json:"canAccessTrainerFeatures"`
}

type Summary struct {
	WorkoutPlans     string `json:"workoutPlans"`
	ExercisesPerPlan string `json:"exercisesPerPlan"`
	HistoryRetention string `json:"historyRetention"`
	TrainerFeatures  string `json:"trainerFeatures"`
}

func New(maxWorkoutPlans, maxExercisesPerPlan, historyRetentionDays int, canAccessTrainerFeatures bool) (Limits, error) {
	for name, v := range map[string]int{
		"max workout plans":      maxWorkoutPlans,
		"max exercises per plan": maxExercisesPerPlan,
		"history retention days": historyRetentionDays,
	} {
		if v != Unlimited && v <= 0 {
			return Limits{}, apperr.Validation("%s must be %d (unlimited) or positive, got %d", name, Unlimited, v)
		}
	}

	return Limits{
		MaxWorkoutPlans:          maxWorkoutPlans,
		MaxExercisesPerPlan:      maxExercisesPerPlan,
		HistoryRetentionDays:     historyRetentionDays,
		CanAccessTrainerFeatures: canAccessTrainerFeatures,
	}, nil
}

func FreeTier() Limits {
	return Limits{
		MaxWorkoutPlans:      FreeMaxWorkoutPlans,
		MaxExercisesPerPlan:  FreeMaxExercisesPerPlan,
		HistoryRetentionDays: FreeHistoryRetentionDays,
	}
}

func Premium() Limits {
	return Limits{
		MaxWorkoutPlans:          Unlimited,
		MaxExercisesPerPlan:      Unlimited,
		HistoryRetentionDays:     Unlimited,
		CanAccessTrainerFeatures: true,
	}
}

func (l Limits) CanCreateWorkoutPlan(currentCount int) bool {
	return l.MaxWorkoutPlans == Unlimited || currentCount < l.MaxWorkoutPlans
}

func (l Limits) CanAddExercise(currentCount int) bool {
	return l.MaxExercisesPerPlan == Unlimited || currentCount < l.MaxExercisesPerPlan
}

// ShouldRetainHistory reports whether data dated at date is still inside the
// retention window. The age is counted in whole days.
func (l Limits) ShouldRetainHistory(date, now time.Time) bool {
	if l.HistoryRetentionDays == Unlimited {
		return true
	}
	return ageInDays(date, now) <= l.HistoryRetentionDays
}

func (l Limits) IsPremium() bool {
	return l.MaxWorkoutPlans == Unlimited && l.MaxExercisesPerPlan == Unlimited
}

func (l Limits) Summary() Summary {
	s := Summary{
		WorkoutPlans:     describe(l.MaxWorkoutPlans, "workout plan", "workout plans"),
		ExercisesPerPlan: describe(l.MaxExercisesPerPlan, "exercise per plan", "exercises per plan"),
		TrainerFeatures:  "Not available",
	}
	if l.HistoryRetentionDays == Unlimited {
		s.HistoryRetention = "Unlimited history"
	} else {
		s.HistoryRetention = fmt.Sprintf("%d days of history", l.HistoryRetentionDays)
	}
	if l.CanAccessTrainerFeatures {
		s.TrainerFeatures = "Available"
	}
	return s
}

func describe(limit int, singular, plural string) string {
	switch limit {
	case Unlimited:
		return "Unlimited " + plural
	case 1:
		return "1 " + singular
	default:
		return fmt.Sprintf("%d %s", limit, plural)
	}
}

func ageInDays(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}
