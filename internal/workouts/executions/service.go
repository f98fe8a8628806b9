package executions

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/internal/workouts/plans"
	"github.com/2beens/workouts/internal/workouts/progression"
	"github.com/2beens/workouts/internal/workouts/sessions"
	"github.com/2beens/workouts/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=executions_test

type executionsRepo interface {
	Create(ctx context.Context, execution *Execution) error
	Get(ctx context.Context, id, userID string) (*Execution, error)
	ExistsForSessionExercise(ctx context.Context, sessionID, exerciseID string) (bool, error)
	LastCompletedSet(ctx context.Context, userID, exerciseID string) (*Set, error)
	SaveSet(ctx context.Context, execution *Execution, setNumber int) error
	Update(ctx context.Context, execution *Execution) error
}

type sessionsGetter interface {
	Get(ctx context.Context, id, userID string) (*sessions.Session, error)
}

type plansGetter interface {
	Get(ctx context.Context, id, userID string) (*plans.Plan, error)
}

type Service struct {
	repo     executionsRepo
	sessions sessionsGetter
	plans    plansGetter

	NowFunc   func() time.Time
	NewIDFunc func() string
}

func NewService(repo executionsRepo, sessions sessionsGetter, plans plansGetter) *Service {
	return &Service{
		repo:      repo,
		sessions:  sessions,
		plans:     plans,
		NowFunc:   func() time.Time { return time.Now().UTC() },
		NewIDFunc: uuid.NewString,
	}
}

// Start begins an exercise of the session's plan and creates its planned
// sets. The weight of the sets is the starting weight if given, otherwise the
// weight of the last completed set of the same exercise.
func (s *Service) Start(ctx context.Context, input StartExecutionInput) (_ *StartExecutionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.executions.start")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := validateStartInput(input); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("session.id", input.SessionID),
		attribute.String("exercise.id", input.ExerciseID),
	)

	session, err := s.sessions.Get(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !session.IsActive() {
		return nil, apperr.InvalidTransition("cannot start an exercise in a %s workout session", session.Status)
	}

	plan, err := s.plans.Get(ctx, session.WorkoutPlanID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	exercise, ok := plan.Exercise(input.ExerciseID)
	if !ok {
		return nil, apperr.NotFound("exercise %s is not part of the workout plan", input.ExerciseID)
	}

	exists, err := s.repo.ExistsForSessionExercise(ctx, session.ID, exercise.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing execution: %w", err)
	}
	if exists {
		return nil, ErrExecutionExists
	}

	lastSet, err := s.repo.LastCompletedSet(ctx, input.UserID, exercise.ID)
	if err != nil {
		return nil, fmt.Errorf("get last completed set: %w", err)
	}
	suggestions := StartSuggestions{RecommendedWeight: input.StartingWeight}
	if lastSet != nil {
		suggestions.LastWeight = lastSet.Weight
		suggestions.LastReps = lastSet.ActualReps
		if suggestions.RecommendedWeight == nil {
			suggestions.RecommendedWeight = lastSet.Weight
		}
	}

	now := s.NowFunc()
	execution, err := New(s.NewIDFunc(), session.ID, exercise.ID, now)
	if err != nil {
		return nil, err
	}
	if err := execution.Start(now); err != nil {
		return nil, err
	}
	for n := 1; n <= exercise.Sets; n++ {
		set, err := NewSet(s.NewIDFunc(), execution.ID, n, exercise.Reps, suggestions.RecommendedWeight, now)
		if err != nil {
			return nil, err
		}
		if err := execution.AddSet(*set, now); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, execution); err != nil {
		return nil, fmt.Errorf("create execution: %w", err)
	}

	return &StartExecutionOutput{
		ID:         execution.ID,
		ExerciseID: exercise.ID,
		Status:     execution.Status,
		StartedAt:  *execution.StartedAt,
		Exercise: ExerciseInfo{
			ID:                exercise.ID,
			Name:              exercise.Name,
			Description:       exercise.Description,
			TargetMuscleGroup: exercise.TargetMuscleGroup,
			Sets:              exercise.Sets,
			Reps:              exercise.Reps,
			RestTimeSeconds:   exercise.RestTimeSeconds,
		},
		Sets:        toSetInfos(execution.OrderedSets()),
		Suggestions: suggestions,
		ExecutionInfo: StartExecutionInfo{
			CanComplete:   execution.CanBeCompleted(),
			CanSkip:       execution.CanBeSkipped(),
			TotalSets:     execution.TotalSets(),
			CompletedSets: execution.CompletedSetsCount(),
		},
	}, nil
}

func (s *Service) CompleteSet(ctx context.Context, input CompleteSetInput) (_ *CompleteSetOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.executions.completeset")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := validateCompleteSetInput(input); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("execution.id", input.ExecutionID),
		attribute.Int("set.number", input.SetNumber),
	)

	execution, err := s.loadExecution(ctx, input.ExecutionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !execution.IsActive() {
		return nil, apperr.InvalidTransition("cannot complete a set of a %s exercise execution", execution.Status)
	}
	if _, err := s.openSession(ctx, execution, input.UserID); err != nil {
		return nil, err
	}

	set, err := execution.CompleteSet(input.SetNumber, SetCompletion{
		ActualReps:      *input.ActualReps,
		Weight:          input.Weight,
		RestTimeSeconds: input.RestTimeSeconds,
		Notes:           input.Notes,
	}, s.NowFunc())
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveSet(ctx, execution, set.SetNumber); err != nil {
		return nil, fmt.Errorf("save set completion: %w", err)
	}

	progress := ExecutionProgress{
		TotalSets:           execution.TotalSets(),
		CompletedSets:       execution.CompletedSetsCount(),
		CanCompleteExercise: execution.AreAllSetsCompleted(),
	}
	progress.RemainingSets = progress.TotalSets - progress.CompletedSets
	if next, ok := execution.NextIncompleteSet(); ok {
		progress.NextSetNumber = &next.SetNumber
	}

	stats := set.Stats()
	return &CompleteSetOutput{
		SetID:                set.ID,
		SetNumber:            set.SetNumber,
		PlannedReps:          set.PlannedReps,
		ActualReps:           *set.ActualReps,
		Weight:               set.Weight,
		RestTimeSeconds:      set.RestTimeSeconds,
		CompletedAt:          *set.CompletedAt,
		FormattedDescription: set.FormattedDescription(),
		Performance: SetPerformance{
			RepsDifference:       stats.RepsDifference,
			CompletionPercentage: stats.CompletionPercentage,
			Volume:               stats.Volume,
			WasSuccessful:        stats.WasSuccessful,
		},
		ExecutionInfo: progress,
		Suggestions: SetSuggestions{
			NextSetWeight:          progression.NextSetWeight(set.Weight, set.PlannedReps, *set.ActualReps),
			RestTimeRecommendation: progression.RestTimeRecommendation(set.PlannedReps, *set.ActualReps, set.Weight),
		},
	}, nil
}

// Finish completes the execution. Unless forced, every set has to be completed first.
func (s *Service) Finish(ctx context.Context, input FinishExecutionInput) (_ *FinishExecutionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.executions.finish")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.Notes != nil && utf8.RuneCountInString(*input.Notes) > MaxExecutionNotes {
		return nil, apperr.Validation("notes must be at most %d characters", MaxExecutionNotes)
	}

	execution, err := s.loadExecution(ctx, input.ExecutionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !execution.IsActive() {
		return nil, apperr.InvalidTransition("exercise execution is not in progress, status is %s", execution.Status)
	}
	session, err := s.openSession(ctx, execution, input.UserID)
	if err != nil {
		return nil, err
	}
	if !execution.AreAllSetsCompleted() && !input.ForceComplete {
		return nil, apperr.Validation(
			"not all sets were completed (%d/%d), use forceComplete to finish anyway",
			execution.CompletedSetsCount(), execution.TotalSets(),
		)
	}

	exercise, err := s.exerciseOf(ctx, session, execution, input.UserID)
	if err != nil {
		return nil, err
	}

	now := s.NowFunc()
	if err := execution.Complete(input.Notes, now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, execution); err != nil {
		return nil, fmt.Errorf("update execution: %w", err)
	}

	sets := execution.OrderedSets()
	summary := execution.Summary(now)
	performance := ExecutionPerformance{
		TotalSets:      summary.TotalSets,
		CompletedSets:  summary.CompletedSets,
		SkippedSets:    summary.TotalSets - summary.CompletedSets,
		CompletionRate: summary.CompletionRate,
		TotalReps:      summary.TotalReps,
		AverageWeight:  summary.AverageWeight,
	}
	var completed []progression.SetPerformance
	for i := range sets {
		if !sets[i].IsCompleted() {
			continue
		}
		performance.TotalVolume += sets[i].Volume()
		completed = append(completed, progression.SetPerformance{
			CompletionPercentage: sets[i].CompletionPercentage(),
			Weight:               sets[i].Weight,
		})
	}

	duration := execution.Duration(now)
	return &FinishExecutionOutput{
		ID:                execution.ID,
		ExerciseID:        execution.ExerciseID,
		Status:            execution.Status,
		CompletedAt:       *execution.CompletedAt,
		TotalDurationMs:   duration.Milliseconds(),
		FormattedDuration: execution.FormattedDuration(now),
		Notes:             execution.Notes,
		Exercise: ExerciseRef{
			Name:              exercise.Name,
			TargetMuscleGroup: exercise.TargetMuscleGroup,
		},
		Performance:     performance,
		Sets:            toSetInfos(sets),
		Recommendations: progression.Recommend(completed, duration),
	}, nil
}

func (s *Service) Skip(ctx context.Context, input SkipExecutionInput) (_ *SkipExecutionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.executions.skip")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	execution, err := s.loadExecution(ctx, input.ExecutionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.openSession(ctx, execution, input.UserID); err != nil {
		return nil, err
	}
	if err := execution.Skip(input.Reason, s.NowFunc()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, execution); err != nil {
		return nil, fmt.Errorf("update execution: %w", err)
	}

	return &SkipExecutionOutput{
		ID:          execution.ID,
		ExerciseID:  execution.ExerciseID,
		Status:      execution.Status,
		CompletedAt: *execution.CompletedAt,
		Notes:       execution.Notes,
	}, nil
}

func (s *Service) UpdateSetWeight(ctx context.Context, input UpdateSetWeightInput) (_ *UpdateSetWeightOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.executions.updatesetweight")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.Weight == nil {
		return nil, apperr.Validation("weight is required")
	}
	if input.SetNumber < MinSetNumber || input.SetNumber > MaxSetNumber {
		return nil, apperr.Validation("set number must be between %d and %d", MinSetNumber, MaxSetNumber)
	}

	execution, err := s.loadExecution(ctx, input.ExecutionID, input.UserID)
	if err != nil {
		return nil, err
	}
	set, err := execution.UpdateSetWeight(input.SetNumber, *input.Weight, s.NowFunc())
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveSet(ctx, execution, set.SetNumber); err != nil {
		return nil, fmt.Errorf("save set: %w", err)
	}

	return &UpdateSetWeightOutput{
		SetNumber: set.SetNumber,
		Weight:    *set.Weight,
		UpdatedAt: set.UpdatedAt,
	}, nil
}

func (s *Service) Get(ctx context.Context, input GetExecutionInput) (_ *ExecutionDetailsOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.executions.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	execution, err := s.loadExecution(ctx, input.ExecutionID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &ExecutionDetailsOutput{
		ID:               execution.ID,
		WorkoutSessionID: execution.WorkoutSessionID,
		ExerciseID:       execution.ExerciseID,
		StartedAt:        execution.StartedAt,
		CompletedAt:      execution.CompletedAt,
		Notes:            execution.Notes,
		Summary:          execution.Summary(s.NowFunc()),
		Sets:             toSetInfos(execution.OrderedSets()),
		CanComplete:      execution.CanBeCompleted(),
		CanSkip:          execution.CanBeSkipped(),
	}, nil
}

func (s *Service) loadExecution(ctx context.Context, id, userID string) (*Execution, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if id == "" {
		return nil, apperr.Validation("exercise execution id is required")
	}
	if !pkg.IsUUID(id) {
		return nil, ErrExecutionNotFound
	}
	execution, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get execution: %w", err)
	}
	return execution, nil
}

// openSession loads the session of the execution. Executions of a completed
// or cancelled session are read-only.
func (s *Service) openSession(ctx context.Context, execution *Execution, userID string) (*sessions.Session, error) {
	session, err := s.sessions.Get(ctx, execution.WorkoutSessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !session.IsActive() {
		return nil, apperr.InvalidTransition("workout session is %s, its exercises can no longer change", session.Status)
	}
	return session, nil
}

// exerciseOf looks up the executed exercise in the plan of its session.
func (s *Service) exerciseOf(ctx context.Context, session *sessions.Session, execution *Execution, userID string) (plans.Exercise, error) {
	plan, err := s.plans.Get(ctx, session.WorkoutPlanID, userID)
	if err != nil {
		return plans.Exercise{}, fmt.Errorf("get plan: %w", err)
	}
	exercise, ok := plan.Exercise(execution.ExerciseID)
	if !ok {
		return plans.Exercise{}, plans.ErrExerciseNotFound
	}
	return exercise, nil
}

func validateStartInput(input StartExecutionInput) error {
	switch {
	case input.UserID == "":
		return apperr.Validation("user id is required")
	case input.SessionID == "":
		return apperr.Validation("workout session id is required")
	case input.ExerciseID == "":
		return apperr.Validation("exercise id is required")
	case !pkg.IsUUID(input.SessionID):
		return sessions.ErrSessionNotFound
	case !pkg.IsUUID(input.ExerciseID):
		return plans.ErrExerciseNotFound
	}
	return validateWeight(input.StartingWeight)
}

func validateCompleteSetInput(input CompleteSetInput) error {
	switch {
	case input.UserID == "":
		return apperr.Validation("user id is required")
	case input.ExecutionID == "":
		return apperr.Validation("exercise execution id is required")
	case input.SetNumber < MinSetNumber || input.SetNumber > MaxSetNumber:
		return apperr.Validation("set number must be between %d and %d", MinSetNumber, MaxSetNumber)
	case input.ActualReps == nil:
		return apperr.Validation("actual reps are required")
	}
	if err := validateActualReps(*input.ActualReps); err != nil {
		return err
	}
	if err := validateWeight(input.Weight); err != nil {
		return err
	}
	if err := validateRestTime(input.RestTimeSeconds); err != nil {
		return err
	}
	return validateSetNotes(input.Notes)
}
