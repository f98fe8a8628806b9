package plans

import (
	"slices"
	"time"

	"github.com/2beens/workouts/internal/apperr"
)

// Plan is the workout plan aggregate. Exercise order is kept dense: the
// exercise at index i always has Order i+1.
type Plan struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// Version is the optimistic locking counter of the stored row.
	Version int

	exercises []Exercise
}

func NewPlan(id, userID, name string, description *string, now time.Time) (*Plan, error) {
	if id == "" {
		return nil, apperr.Validation("workout plan id is required")
	}
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	name, err := normalizeName("name", name)
	if err != nil {
		return nil, err
	}
	description = trimmedOrNil(description)
	if err := validateOptionalText("description", description, MaxDescriptionLength); err != nil {
		return nil, err
	}

	return &Plan{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Plan) ExerciseCount() int {
	return len(p.exercises)
}

func (p *Plan) HasExercises() bool {
	return len(p.exercises) > 0
}

// OrderedExercises returns copies of the exercises sorted by order. Changing
// them does not affect the plan.
func (p *Plan) OrderedExercises() []Exercise {
	ordered := make([]Exercise, 0, len(p.exercises))
	for i := range p.exercises {
		ordered = append(ordered, p.exercises[i].Clone())
	}
	slices.SortFunc(ordered, func(a, b Exercise) int {
		return a.Order - b.Order
	})
	return ordered
}

func (p *Plan) Exercise(id string) (Exercise, bool) {
	idx := p.indexOf(id)
	if idx < 0 {
		return Exercise{}, false
	}
	return p.exercises[idx].Clone(), true
}

func (p *Plan) CanAddExercise(maxExercises int) bool {
	return maxExercises < 0 || len(p.exercises) < maxExercises
}

func (p *Plan) NextExerciseOrder() int {
	return len(p.exercises) + 1
}

// AddExercise appends the exercise at the end of the plan.
func (p *Plan) AddExercise(exercise Exercise, now time.Time) error {
	if p.indexOf(exercise.ID) >= 0 {
		return apperr.Conflict("exercise %s is already part of the workout plan", exercise.ID)
	}
	exercise.WorkoutPlanID = p.ID
	exercise.Order = p.NextExerciseOrder()
	exercise.UpdatedAt = now
	p.exercises = append(p.exercises, exercise.Clone())
	p.UpdatedAt = now
	return nil
}

// RemoveExercise drops the exercise and closes the gap in the order.
func (p *Plan) RemoveExercise(exerciseID string, now time.Time) error {
	idx := p.indexOf(exerciseID)
	if idx < 0 {
		return apperr.NotFound("exercise %s not found in workout plan", exerciseID)
	}
	p.exercises = slices.Delete(p.exercises, idx, idx+1)
	p.reorder(now)
	p.UpdatedAt = now
	return nil
}

// UpdateExerciseOrder moves the exercise to the 1-based position newOrder,
// shifting the others.
func (p *Plan) UpdateExerciseOrder(exerciseID string, newOrder int, now time.Time) error {
	idx := p.indexOf(exerciseID)
	if idx < 0 {
		return apperr.NotFound("exercise %s not found in workout plan", exerciseID)
	}
	if newOrder < 1 || newOrder > len(p.exercises) {
		return apperr.Validation("new order must be between 1 and %d", len(p.exercises))
	}

	moved := p.exercises[idx]
	p.exercises = slices.Delete(p.exercises, idx, idx+1)
	p.exercises = slices.Insert(p.exercises, newOrder-1, moved)
	p.reorder(now)
	p.UpdatedAt = now
	return nil
}

// Update sets the name and description; a nil description leaves it untouched.
func (p *Plan) Update(name string, description *string, now time.Time) error {
	name, err := normalizeName("name", name)
	if err != nil {
		return err
	}
	if description != nil {
		description = trimmedOrNil(description)
		if err := validateOptionalText("description", description, MaxDescriptionLength); err != nil {
			return err
		}
		p.Description = description
	}
	p.Name = name
	p.UpdatedAt = now
	return nil
}

func (p *Plan) Activate(now time.Time) {
	p.IsActive = true
	p.UpdatedAt = now
}

func (p *Plan) Deactivate(now time.Time) {
	p.IsActive = false
	p.UpdatedAt = now
}

// EstimatedDurationSeconds sums the estimates of all exercises.
func (p *Plan) EstimatedDurationSeconds() int {
	total := 0
	for i := range p.exercises {
		total += p.exercises[i].EstimatedDurationSeconds()
	}
	return total
}

// EstimatedDurationMinutes rounds the total estimate up to whole minutes.
func (p *Plan) EstimatedDurationMinutes() int {
	return (p.EstimatedDurationSeconds() + 59) / 60
}

// loadExercises replaces the exercises with stored ones, sorted by order.
func (p *Plan) loadExercises(exercises []Exercise) {
	p.exercises = append(p.exercises[:0], exercises...)
	slices.SortFunc(p.exercises, func(a, b Exercise) int {
		return a.Order - b.Order
	})
}

func (p *Plan) reorder(now time.Time) {
	for i := range p.exercises {
		if p.exercises[i].Order != i+1 {
			p.exercises[i].Order = i + 1
			p.exercises[i].UpdatedAt = now
		}
	}
}

func (p *Plan) indexOf(exerciseID string) int {
	return slices.IndexFunc(p.exercises, func(e Exercise) bool {
		return e.ID == exerciseID
	})
}
