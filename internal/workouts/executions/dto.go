package executions

import (
	"time"

	"github.com/2beens/workouts/internal/workouts/progression"
)

type StartExecutionInput struct {
	UserID         string   `json:"-"`
	SessionID      string   `json:"workoutSessionId"`
	ExerciseID     string   `json:"exerciseId"`
	StartingWeight *float64 `json:"startingWeight,omitempty"`
}

type ExerciseInfo struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	TargetMuscleGroup *string `json:"targetMuscleGroup"`
	Sets              int     `json:"sets"`
	Reps              int     `json:"reps"`
	RestTimeSeconds   int     `json:"restTimeSeconds"`
}

type SetInfo struct {
	ID                   string   `json:"id"`
	SetNumber            int      `json:"setNumber"`
	PlannedReps          int      `json:"plannedReps"`
	ActualReps           *int     `json:"actualReps"`
	Weight               *float64 `json:"weight"`
	IsCompleted          bool     `json:"isCompleted"`
	FormattedDescription string   `json:"formattedDescription"`
}

type StartSuggestions struct {
	RecommendedWeight *float64 `json:"recommendedWeight"`
	LastWeight        *float64 `json:"lastWeight"`
	LastReps          *int     `json:"lastReps"`
}

type StartExecutionInfo struct {
	CanComplete   bool `json:"canComplete"`
	CanSkip       bool `json:"canSkip"`
	TotalSets     int  `json:"totalSets"`
	CompletedSets int  `json:"completedSets"`
}

type StartExecutionOutput struct {
	ID            string             `json:"id"`
	ExerciseID    string             `json:"exerciseId"`
	Status        Status             `json:"status"`
	StartedAt     time.Time          `json:"startedAt"`
	Exercise      ExerciseInfo       `json:"exercise"`
	Sets          []SetInfo          `json:"sets"`
	Suggestions   StartSuggestions   `json:"suggestions"`
	ExecutionInfo StartExecutionInfo `json:"executionInfo"`
}

type CompleteSetInput struct {
	UserID          string   `json:"-"`
	ExecutionID     string   `json:"-"`
	SetNumber       int      `json:"-"`
	ActualReps      *int     `json:"actualReps"`
	Weight          *float64 `json:"weight,omitempty"`
	RestTimeSeconds *int     `json:"restTimeSeconds,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type SetPerformance struct {
	RepsDifference       int     `json:"repsDifference"`
	CompletionPercentage int     `json:"completionPercentage"`
	Volume               float64 `json:"volume"`
	WasSuccessful        bool    `json:"wasSuccessful"`
}

type ExecutionProgress struct {
	TotalSets           int  `json:"totalSets"`
	CompletedSets       int  `json:"completedSets"`
	RemainingSets       int  `json:"remainingSets"`
	CanCompleteExercise bool `json:"canCompleteExercise"`
	NextSetNumber       *int `json:"nextSetNumber"`
}

type SetSuggestions struct {
	NextSetWeight          *float64 `json:"nextSetWeight"`
	RestTimeRecommendation string   `json:"restTimeRecommendation"`
}

type CompleteSetOutput struct {
	SetID                string            `json:"setId"`
	SetNumber            int               `json:"setNumber"`
	PlannedReps          int               `json:"plannedReps"`
	ActualReps           int               `json:"actualReps"`
	Weight               *float64          `json:"weight"`
	RestTimeSeconds      *int              `json:"restTimeSeconds"`
	CompletedAt          time.Time         `json:"completedAt"`
	FormattedDescription string            `json:"formattedDescription"`
	Performance          SetPerformance    `json:"performance"`
	ExecutionInfo        ExecutionProgress `json:"executionInfo"`
	Suggestions          SetSuggestions    `json:"suggestions"`
}

type FinishExecutionInput struct {
	UserID        string  `json:"-"`
	ExecutionID   string  `json:"-"`
	Notes         *string `json:"notes,omitempty"`
	ForceComplete bool    `json:"forceComplete"`
}

type ExerciseRef struct {
	Name              string  `json:"name"`
	TargetMuscleGroup *string `json:"targetMuscleGroup"`
}

type ExecutionPerformance struct {
	TotalSets      int      `json:"totalSets"`
	CompletedSets  int      `json:"completedSets"`
	SkippedSets    int      `json:"skippedSets"`
	CompletionRate int      `json:"completionRate"`
	TotalReps      int      `json:"totalReps"`
	AverageWeight  *float64 `json:"averageWeight"`
	TotalVolume    float64  `json:"totalVolume"`
}

type FinishExecutionOutput struct {
	ID                string                      `json:"id"`
	ExerciseID        string                      `json:"exerciseId"`
	Status            Status                      `json:"status"`
	CompletedAt       time.Time                   `json:"completedAt"`
	TotalDurationMs   int64                       `json:"totalDurationMs"`
	FormattedDuration string                      `json:"formattedDuration"`
	Notes             *string                     `json:"notes"`
	Exercise          ExerciseRef                 `json:"exercise"`
	Performance       ExecutionPerformance        `json:"performance"`
	Sets              []SetInfo                   `json:"sets"`
	Recommendations   progression.Recommendations `json:"recommendations"`
}

type SkipExecutionInput struct {
	UserID      string  `json:"-"`
	ExecutionID string  `json:"-"`
	Reason      *string `json:"reason,omitempty"`
}

type SkipExecutionOutput struct {
	ID          string    `json:"id"`
	ExerciseID  string    `json:"exerciseId"`
	Status      Status    `json:"status"`
	CompletedAt time.Time `json:"completedAt"`
	Notes       *string   `json:"notes"`
}

type UpdateSetWeightInput struct {
	UserID      string   `json:"-"`
	ExecutionID string   `json:"-"`
	SetNumber   int      `json:"-"`
	Weight      *float64 `json:"weight"`
}

type UpdateSetWeightOutput struct {
	SetNumber int       `json:"setNumber"`
	Weight    float64   `json:"weight"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GetExecutionInput struct {
	UserID      string
	ExecutionID string
}

type ExecutionDetailsOutput struct {
	ID               string     `json:"id"`
	WorkoutSessionID string     `json:"workoutSessionId"`
	ExerciseID       string     `json:"exerciseId"`
	StartedAt        *time.Time `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	Notes            *string    `json:"notes"`
	Summary          Summary    `json:"summary"`
	Sets             []SetInfo  `json:"sets"`
	CanComplete      bool       `json:"canComplete"`
	CanSkip          bool       `json:"canSkip"`
}

func toSetInfos(sets []Set) []SetInfo {
	infos := make([]SetInfo, 0, len(sets))
	for i := range sets {
		s := &sets[i]
		infos = append(infos, SetInfo{
			ID:                   s.ID,
			SetNumber:            s.SetNumber,
			PlannedReps:          s.PlannedReps,
			ActualReps:           s.ActualReps,
			Weight:               s.Weight,
			IsCompleted:          s.IsCompleted(),
			FormattedDescription: s.FormattedDescription(),
		})
	}
	return infos
}
