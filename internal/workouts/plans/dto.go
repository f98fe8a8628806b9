package plans

import "time"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type CreatePlanInput struct {
	UserID      string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateLimitsInfo struct {
	Current       int  `json:"current"`
	Limit         int  `json:"limit"`
	CanCreateMore bool `json:"canCreateMore"`
}

type CreatePlanOutput struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	ExerciseCount int              `json:"exerciseCount"`
	LimitsInfo    CreateLimitsInfo `json:"limitsInfo"`
}

type ListPlansInput struct {
	UserID          string
	Page            int
	Limit           int
	Search          string
	IncludeInactive bool
}

type PlanSummary struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Description              *string   `json:"description"`
	IsActive                 bool      `json:"isActive"`
	ExerciseCount            int       `json:"exerciseCount"`
	EstimatedDurationMinutes int       `json:"estimatedDurationMinutes"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ListLimitsInfo struct {
	Current       int  `json:"current"`
	Limit         int  `json:"limit"`
	CanCreateMore bool `json:"canCreateMore"`
	IsPremium     bool `json:"isPremium"`
}

type ListPlansOutput struct {
	Plans      []PlanSummary  `json:"plans"`
	Pagination Pagination     `json:"pagination"`
	LimitsInfo ListLimitsInfo `json:"limitsInfo"`
}

type GetPlanInput struct {
	UserID string
	PlanID string
}

type ExerciseDetails struct {
	ID                       string    `json:"id"`
	WorkoutPlanID            string    `json:"workoutPlanId"`
	Name                     string    `json:"name"`
	Description              *string   `json:"description"`
	TargetMuscleGroup        *string   `json:"targetMuscleGroup"`
	Sets                     int       `json:"sets"`
	Reps                     int       `json:"reps"`
	RestTimeSeconds          int       `json:"restTimeSeconds"`
	Order                    int       `json:"order"`
	EstimatedDurationSeconds int       `json:"estimatedDurationSeconds"`
	FormattedDescription     string    `json:"formattedDescription"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

type PlanLimitsInfo struct {
	CanAddMoreExercises  bool `json:"canAddMoreExercises"`
	ExerciseLimit        int  `json:"exerciseLimit"`
	CurrentExerciseCount int  `json:"currentExerciseCount"`
	IsPremium            bool `json:"isPremium"`
}

type PlanDetailsOutput struct {
	ID                            string            `json:"id"`
	Name                          string            `json:"name"`
	Description                   *string           `json:"description"`
	IsActive                      bool              `json:"isActive"`
	CreatedAt                     time.Time         `json:"createdAt"`
	UpdatedAt                     time.Time         `json:"updatedAt"`
	Exercises                     []ExerciseDetails `json:"exercises"`
	EstimatedTotalDurationMinutes int               `json:"estimatedTotalDurationMinutes"`
	LimitsInfo                    PlanLimitsInfo    `json:"limitsInfo"`
}

type UpdatePlanInput struct {
	UserID      string  `json:"-"`
	PlanID      string  `json:"-"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type UpdatePlanOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	IsActive      bool      `json:"isActive"`
	ExerciseCount int       `json:"exerciseCount"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DeletePlanInput struct {
	UserID string
	PlanID string
	Force  bool
}

type DeletePlanOutput struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	DeletedPlanName string `json:"deletedPlanName"`
}

type AddExerciseInput struct {
	UserID            string  `json:"-"`
	PlanID            string  `json:"-"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	TargetMuscleGroup *string `json:"targetMuscleGroup,omitempty"`
	Sets              *int    `json:"sets,omitempty"`
	Reps              *int    `json:"reps,omitempty"`
	RestTimeSeconds   *int    `json:"restTimeSeconds,omitempty"`
}

type PlanInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ExerciseCount int    `json:"exerciseCount"`
	CanAddMore    bool   `json:"canAddMore"`
}

type AddExerciseOutput struct {
	ExerciseDetails
	PlanInfo PlanInfo `json:"planInfo"`
}

type ListExercisesInput struct {
	UserID string
	PlanID string
}

type ExercisesSummary struct {
	TotalSets       int      `json:"totalSets"`
	AverageRestTime int      `json:"averageRestTime"`
	MuscleGroups    []string `json:"muscleGroups"`
}

type ListExercisesOutput struct {
	Exercises []ExerciseDetails `json:"exercises"`
	PlanInfo  PlanInfo          `json:"planInfo"`
	Summary   ExercisesSummary  `json:"summary"`
}

type RemoveExerciseInput struct {
	UserID     string
	PlanID     string
	ExerciseID string
}

type ReorderExerciseInput struct {
	UserID     string `json:"-"`
	PlanID     string `json:"-"`
	ExerciseID string `json:"-"`
	NewOrder   int    `json:"newOrder"`
}

// ExercisesOrderOutput is returned by the remove and reorder operations.
type ExercisesOrderOutput struct {
	PlanID    string            `json:"planId"`
	Exercises []ExerciseDetails `json:"exercises"`
}

func toExerciseDetails(e Exercise) ExerciseDetails {
	return ExerciseDetails{
		ID:                       e.ID,
		WorkoutPlanID:            e.WorkoutPlanID,
		Name:                     e.Name,
		Description:              e.Description,
		TargetMuscleGroup:        e.TargetMuscleGroup,
		Sets:                     e.Sets,
		Reps:                     e.Reps,
		RestTimeSeconds:          e.RestTimeSeconds,
		Order:                    e.Order,
		EstimatedDurationSeconds: e.EstimatedDurationSeconds(),
		FormattedDescription:     e.FormattedDescription(),
		CreatedAt:                e.CreatedAt,
		UpdatedAt:                e.UpdatedAt,
	}
}

func toExercisesDetails(exercises []Exercise) []ExerciseDetails {
	details := make([]ExerciseDetails, 0, len(exercises))
	for _, e := range exercises {
		details = append(details, toExerciseDetails(e))
	}
	return details
}
