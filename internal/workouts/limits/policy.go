package limits

import (
	"fmt"
	"time"

	"github.com/2beens/workouts/internal/apperr"
)

// ValidationResult is the outcome of a limit check. Current and Limit carry
// the numbers the check was made against.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
	Current int    `json:"current"`
	Limit   int    `json:"limit"`
}

// Err converts a failed check into a LimitExceeded error, nil otherwise.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return apperr.LimitExceeded(r.Current, r.Limit, r.Message)
}

// Policy resolves limits per tier and validates usage against them.
type Policy struct {
	free    Limits
	premium Limits
}

func NewPolicy() *Policy {
	return &Policy{
		free:    FreeTier(),
		premium: Premium(),
	}
}

func (p *Policy) LimitsFor(isPremium bool) Limits {
	if isPremium {
		return p.premium
	}
	return p.free
}

func (p *Policy) ValidateCanCreateWorkoutPlan(currentCount int, isPremium bool) ValidationResult {
	l := p.LimitsFor(isPremium)
	if l.CanCreateWorkoutPlan(currentCount) {
		return ValidationResult{IsValid: true, Current: currentCount, Limit: l.MaxWorkoutPlans}
	}
	return ValidationResult{
		IsValid: false,
		Message: fmt.Sprintf(
			"workout plan limit reached (%d of %d), upgrade to premium for unlimited plans",
			currentCount, l.MaxWorkoutPlans,
		),
		Current: currentCount,
		Limit:   l.MaxWorkoutPlans,
	}
}

func (p *Policy) ValidateCanAddExercise(currentCount int, isPremium bool) ValidationResult {
	l := p.LimitsFor(isPremium)
	if l.CanAddExercise(currentCount) {
		return ValidationResult{IsValid: true, Current: currentCount, Limit: l.MaxExercisesPerPlan}
	}
	return ValidationResult{
		IsValid: false,
		Message: fmt.Sprintf(
			"exercise limit per plan reached (%d of %d), upgrade to premium for unlimited exercises",
			currentCount, l.MaxExercisesPerPlan,
		),
		Current: currentCount,
		Limit:   l.MaxExercisesPerPlan,
	}
}

func (p *Policy) ValidateTrainerAccess(isPremium bool) ValidationResult {
	if p.LimitsFor(isPremium).CanAccessTrainerFeatures {
		return ValidationResult{IsValid: true}
	}
	return ValidationResult{
		IsValid: false,
		Message: "trainer features are available to premium users only",
	}
}

// ValidateHistoryAccess checks whether data dated at date is visible. Current
// is the age in days, Limit the retention.
func (p *Policy) ValidateHistoryAccess(date, now time.Time, isPremium bool) ValidationResult {
	l := p.LimitsFor(isPremium)
	days := ageInDays(date, now)
	if l.ShouldRetainHistory(date, now) {
		return ValidationResult{IsValid: true, Current: days, Limit: l.HistoryRetentionDays}
	}
	return ValidationResult{
		IsValid: false,
		Message: fmt.Sprintf(
			"history older than %d days is available to premium users only",
			l.HistoryRetentionDays,
		),
		Current: days,
		Limit:   l.HistoryRetentionDays,
	}
}
