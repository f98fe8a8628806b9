// Package progression derives advisory suggestions from completed sets. It
// holds no state and never touches storage.
package progression

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	// a set beaten or missed by at least this many reps moves the weight
	repsThreshold = 2

	increaseFactor = 1.05
	decreaseFactor = 0.95

	longExercise  = 15 // minutes
	shortExercise = 5  // minutes
)

const (
	RestExtra           = "Recommended: extra rest (90-120s), challenging set"
	RestNormal          = "Recommended: normal rest (45-60s), good performance"
	RestStandardWeighed = "Recommended: standard rest (60-90s), moderate weight"
	RestStandard        = "Recommended: standard rest (60s)"
)

// NextSetWeight suggests the weight of the next set. It returns nil when no
// weight was recorded for the completed one.
func NextSetWeight(weight *float64, plannedReps, actualReps int) *float64 {
	if weight == nil || *weight == 0 {
		return nil
	}

	next := *weight
	switch diff := actualReps - plannedReps; {
	case diff >= repsThreshold:
		next = round2(*weight * increaseFactor)
	case diff <= -repsThreshold:
		next = round2(*weight * decreaseFactor)
	}
	return &next
}

func RestTimeRecommendation(plannedReps, actualReps int, weight *float64) string {
	diff := actualReps - plannedReps
	switch {
	case diff <= -repsThreshold:
		return RestExtra
	case diff >= repsThreshold:
		return RestNormal
	case weight != nil && *weight > 0:
		return RestStandardWeighed
	default:
		return RestStandard
	}
}

// SetPerformance is what the engine needs to know about one completed set.
type SetPerformance struct {
	CompletionPercentage int
	Weight               *float64
}

type Recommendations struct {
	NextWorkoutSuggestions []string `json:"nextWorkoutSuggestions"`
	PerformanceNotes       []string `json:"performanceNotes"`
}

// Recommend summarizes a finished exercise. completed holds the completed
// sets in set number order, duration is how long the exercise took.
func Recommend(completed []SetPerformance, duration time.Duration) Recommendations {
	rec := Recommendations{
		NextWorkoutSuggestions: []string{},
		PerformanceNotes:       []string{},
	}
	if len(completed) == 0 {
		rec.PerformanceNotes = append(rec.PerformanceNotes, "Exercise was not performed")
		return rec
	}

	total := 0
	for _, set := range completed {
		total += set.CompletionPercentage
	}
	average := float64(total) / float64(len(completed))

	switch {
	case average >= 110:
		rec.PerformanceNotes = append(rec.PerformanceNotes, "Excellent performance, beat the plan")
		rec.NextWorkoutSuggestions = append(rec.NextWorkoutSuggestions, "Consider increasing the weight by 5-10%")
	case average >= 100:
		rec.PerformanceNotes = append(rec.PerformanceNotes, "Perfect performance, hit every planned rep")
		rec.NextWorkoutSuggestions = append(rec.NextWorkoutSuggestions, "Keep the weight or increase it slightly")
	case average >= 80:
		rec.PerformanceNotes = append(rec.PerformanceNotes, "Good performance, close to the goal")
		rec.NextWorkoutSuggestions = append(rec.NextWorkoutSuggestions, "Keep the current weight")
	default:
		rec.PerformanceNotes = append(rec.PerformanceNotes, "Performance below the plan")
		rec.NextWorkoutSuggestions = append(rec.NextWorkoutSuggestions, "Consider reducing the weight by 5-10%")
	}

	var weights []float64
	for _, set := range completed {
		if set.Weight != nil {
			weights = append(weights, *set.Weight)
		}
	}
	if len(weights) > 1 {
		if progression := weights[len(weights)-1] - weights[0]; progression > 0 {
			rec.PerformanceNotes = append(rec.PerformanceNotes,
				fmt.Sprintf("Weight progression: +%skg during the exercise", formatKg(progression)))
		}
	}

	switch minutes := math.Round(duration.Minutes()); {
	case minutes > longExercise:
		rec.NextWorkoutSuggestions = append(rec.NextWorkoutSuggestions, "Consider shortening the rest time")
	case minutes < shortExercise:
		rec.NextWorkoutSuggestions = append(rec.NextWorkoutSuggestions, "You can rest longer between sets if needed")
	}

	return rec
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatKg(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}
