package plans

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/internal/workouts/limits"
	"github.com/2beens/workouts/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=plans_test

type plansRepo interface {
	Create(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id, userID string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, plan *Plan) error
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	NameExists(ctx context.Context, userID, name, excludeID string) (bool, error)
	List(ctx context.Context, params ListParams) ([]*Plan, int, error)
	AddExercise(ctx context.Context, plan *Plan, exercise Exercise) error
	ExerciseNameExists(ctx context.Context, planID, name string) (bool, error)
	SaveExercises(ctx context.Context, plan *Plan, removedIDs ...string) error
}

type premiumChecker interface {
	IsPremium(ctx context.Context, userID string) (bool, error)
}

type activeSessionChecker interface {
	HasActiveForPlan(ctx context.Context, planID string) (bool, error)
}

type Service struct {
	repo     plansRepo
	premium  premiumChecker
	sessions activeSessionChecker
	policy   *limits.Policy

	// injectable for tests
	NowFunc   func() time.Time
	NewIDFunc func() string
}

func NewService(
	repo plansRepo,
	premium premiumChecker,
	sessions activeSessionChecker,
	policy *limits.Policy,
) *Service {
	return &Service{
		repo:      repo,
		premium:   premium,
		sessions:  sessions,
		policy:    policy,
		NowFunc:   func() time.Time { return time.Now().UTC() },
		NewIDFunc: uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, input CreatePlanInput) (_ *CreatePlanOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.UserID == "" {
		return nil, apperr.Validation("user id is required")
	}
	plan, err := NewPlan(s.NewIDFunc(), input.UserID, input.Name, input.Description, s.NowFunc())
	if err != nil {
		return nil, err
	}

	isPremium, err := s.premium.IsPremium(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check premium status: %w", err)
	}

	count, err := s.repo.CountActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("count active plans: %w", err)
	}
	if err := s.policy.ValidateCanCreateWorkoutPlan(count, isPremium).Err(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, input.UserID, plan.Name, "")
	if err != nil {
		return nil, fmt.Errorf("check plan name: %w", err)
	}
	if exists {
		return nil, apperr.DuplicateName("a workout plan named %q already exists", plan.Name)
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	l := s.policy.LimitsFor(isPremium)
	return &CreatePlanOutput{
		ID:            plan.ID,
		Name:          plan.Name,
		Description:   plan.Description,
		IsActive:      plan.IsActive,
		CreatedAt:     plan.CreatedAt,
		ExerciseCount: plan.ExerciseCount(),
		LimitsInfo: CreateLimitsInfo{
			Current:       count + 1,
			Limit:         l.MaxWorkoutPlans,
			CanCreateMore: l.CanCreateWorkoutPlan(count + 1),
		},
	}, nil
}

func (s *Service) List(ctx context.Context, input ListPlansInput) (_ *ListPlansOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.UserID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if input.Page == 0 {
		input.Page = DefaultPage
	}
	if input.Limit == 0 {
		input.Limit = DefaultPageSize
	}
	if input.Page < 1 {
		return nil, apperr.Validation("page must be at least 1")
	}
	if input.Limit < 1 || input.Limit > MaxPageSize {
		return nil, apperr.Validation("limit must be between 1 and %d", MaxPageSize)
	}
	if utf8.RuneCountInString(input.Search) > MaxSearchLength {
		return nil, apperr.Validation("search must be at most %d characters", MaxSearchLength)
	}
	span.SetAttributes(attribute.Int("page", input.Page), attribute.Int("limit", input.Limit))

	plans, total, err := s.repo.List(ctx, ListParams{
		UserID:          input.UserID,
		Page:            input.Page,
		Size:            input.Limit,
		Search:          input.Search,
		IncludeInactive: input.IncludeInactive,
	})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	isPremium, err := s.premium.IsPremium(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check premium status: %w", err)
	}
	activeCount, err := s.repo.CountActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("count active plans: %w", err)
	}

	summaries := make([]PlanSummary, 0, len(plans))
	for _, p := range plans {
		summaries = append(summaries, PlanSummary{
			ID:                       p.ID,
			Name:                     p.Name,
			Description:              p.Description,
			IsActive:                 p.IsActive,
			ExerciseCount:            p.ExerciseCount(),
			EstimatedDurationMinutes: p.EstimatedDurationMinutes(),
			CreatedAt:                p.CreatedAt,
			UpdatedAt:                p.UpdatedAt,
		})
	}

	l := s.policy.LimitsFor(isPremium)
	return &ListPlansOutput{
		Plans: summaries,
		Pagination: Pagination{
			Page:       input.Page,
			Limit:      input.Limit,
			Total:      total,
			TotalPages: (total + input.Limit - 1) / input.Limit,
		},
		LimitsInfo: ListLimitsInfo{
			Current:       activeCount,
			Limit:         l.MaxWorkoutPlans,
			CanCreateMore: l.CanCreateWorkoutPlan(activeCount),
			IsPremium:     isPremium,
		},
	}, nil
}

func (s *Service) Get(ctx context.Context, input GetPlanInput) (_ *PlanDetailsOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	isPremium, err := s.premium.IsPremium(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check premium status: %w", err)
	}

	l := s.policy.LimitsFor(isPremium)
	return &PlanDetailsOutput{
		ID:                            plan.ID,
		Name:                          plan.Name,
		Description:                   plan.Description,
		IsActive:                      plan.IsActive,
		CreatedAt:                     plan.CreatedAt,
		UpdatedAt:                     plan.UpdatedAt,
		Exercises:                     toExercisesDetails(plan.OrderedExercises()),
		EstimatedTotalDurationMinutes: plan.EstimatedDurationMinutes(),
		LimitsInfo: PlanLimitsInfo{
			CanAddMoreExercises:  plan.CanAddExercise(l.MaxExercisesPerPlan),
			ExerciseLimit:        l.MaxExercisesPerPlan,
			CurrentExerciseCount: plan.ExerciseCount(),
			IsPremium:            isPremium,
		},
	}, nil
}

func (s *Service) Update(ctx context.Context, input UpdatePlanInput) (_ *UpdatePlanOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.Name == nil && input.Description == nil && input.IsActive == nil {
		return nil, apperr.Validation("at least one field must be provided for update")
	}
	if input.Name != nil {
		if _, err := normalizeName("name", *input.Name); err != nil {
			return nil, err
		}
	}

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}
	now := s.NowFunc()

	name := plan.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	if name != plan.Name {
		exists, err := s.repo.NameExists(ctx, input.UserID, name, plan.ID)
		if err != nil {
			return nil, fmt.Errorf("check plan name: %w", err)
		}
		if exists {
			return nil, apperr.DuplicateName("a workout plan named %q already exists", name)
		}
	}
	if err := plan.Update(name, input.Description, now); err != nil {
		return nil, err
	}

	if input.IsActive != nil && *input.IsActive != plan.IsActive {
		if *input.IsActive {
			// reactivating counts against the plan limit like creating does
			if err := s.validateCanActivate(ctx, input.UserID); err != nil {
				return nil, err
			}
			plan.Activate(now)
		} else {
			plan.Deactivate(now)
		}
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	return &UpdatePlanOutput{
		ID:            plan.ID,
		Name:          plan.Name,
		Description:   plan.Description,
		IsActive:      plan.IsActive,
		ExerciseCount: plan.ExerciseCount(),
		UpdatedAt:     plan.UpdatedAt,
	}, nil
}

func (s *Service) Delete(ctx context.Context, input DeletePlanInput) (_ *DeletePlanOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Bool("force", input.Force))

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	if plan.HasExercises() && !input.Force {
		return nil, apperr.Validation(
			"workout plan has %d exercises, use force to delete it anyway", plan.ExerciseCount(),
		)
	}

	hasActive, err := s.sessions.HasActiveForPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("check active sessions: %w", err)
	}
	if hasActive {
		return nil, apperr.Conflict("workout plan is used by an active session, finish the session first")
	}

	if err := s.repo.Delete(ctx, plan); err != nil {
		return nil, fmt.Errorf("delete plan: %w", err)
	}

	return &DeletePlanOutput{
		Success:         true,
		Message:         fmt.Sprintf("workout plan %q deleted", plan.Name),
		DeletedPlanName: plan.Name,
	}, nil
}

func (s *Service) AddExercise(ctx context.Context, input AddExerciseInput) (_ *AddExerciseOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.addexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	params := NewExerciseParams{
		ID:                s.NewIDFunc(),
		WorkoutPlanID:     input.PlanID,
		Name:              input.Name,
		Description:       input.Description,
		TargetMuscleGroup: input.TargetMuscleGroup,
		Sets:              valueOr(input.Sets, DefaultSets),
		Reps:              valueOr(input.Reps, DefaultReps),
		RestTimeSeconds:   valueOr(input.RestTimeSeconds, DefaultRestTimeSeconds),
		Order:             1,
	}
	// validated up front, the order is assigned by the plan later
	exercise, err := NewExercise(params, s.NowFunc())
	if err != nil {
		return nil, err
	}

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperr.Validation("cannot add exercises to an inactive workout plan")
	}

	isPremium, err := s.premium.IsPremium(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check premium status: %w", err)
	}
	if err := s.policy.ValidateCanAddExercise(plan.ExerciseCount(), isPremium).Err(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExerciseNameExists(ctx, plan.ID, exercise.Name)
	if err != nil {
		return nil, fmt.Errorf("check exercise name: %w", err)
	}
	if exists {
		return nil, apperr.DuplicateName("an exercise named %q already exists in this plan", exercise.Name)
	}

	if err := plan.AddExercise(*exercise, exercise.CreatedAt); err != nil {
		return nil, err
	}
	added, _ := plan.Exercise(exercise.ID)

	if err := s.repo.AddExercise(ctx, plan, added); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}

	l := s.policy.LimitsFor(isPremium)
	return &AddExerciseOutput{
		ExerciseDetails: toExerciseDetails(added),
		PlanInfo: PlanInfo{
			ID:            plan.ID,
			Name:          plan.Name,
			ExerciseCount: plan.ExerciseCount(),
			CanAddMore:    plan.CanAddExercise(l.MaxExercisesPerPlan),
		},
	}, nil
}

func (s *Service) ListExercises(ctx context.Context, input ListExercisesInput) (_ *ListExercisesOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.listexercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}

	isPremium, err := s.premium.IsPremium(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check premium status: %w", err)
	}

	exercises := plan.OrderedExercises()
	summary := ExercisesSummary{
		MuscleGroups: make([]string, 0),
	}
	restTotal := 0
	for _, e := range exercises {
		summary.TotalSets += e.Sets
		restTotal += e.RestTimeSeconds
		if e.TargetMuscleGroup != nil && !slices.Contains(summary.MuscleGroups, *e.TargetMuscleGroup) {
			summary.MuscleGroups = append(summary.MuscleGroups, *e.TargetMuscleGroup)
		}
	}
	if len(exercises) > 0 {
		summary.AverageRestTime = int(float64(restTotal)/float64(len(exercises)) + 0.5)
	}
	slices.Sort(summary.MuscleGroups)

	l := s.policy.LimitsFor(isPremium)
	return &ListExercisesOutput{
		Exercises: toExercisesDetails(exercises),
		PlanInfo: PlanInfo{
			ID:            plan.ID,
			Name:          plan.Name,
			ExerciseCount: plan.ExerciseCount(),
			CanAddMore:    plan.CanAddExercise(l.MaxExercisesPerPlan),
		},
		Summary: summary,
	}, nil
}

func (s *Service) RemoveExercise(ctx context.Context, input RemoveExerciseInput) (_ *ExercisesOrderOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.removeexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := plan.RemoveExercise(input.ExerciseID, s.NowFunc()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveExercises(ctx, plan, input.ExerciseID); err != nil {
		return nil, fmt.Errorf("remove exercise: %w", err)
	}

	return &ExercisesOrderOutput{
		PlanID:    plan.ID,
		Exercises: toExercisesDetails(plan.OrderedExercises()),
	}, nil
}

func (s *Service) ReorderExercise(ctx context.Context, input ReorderExerciseInput) (_ *ExercisesOrderOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.reorderexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("new-order", input.NewOrder))

	plan, err := s.loadPlan(ctx, input.PlanID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := plan.UpdateExerciseOrder(input.ExerciseID, input.NewOrder, s.NowFunc()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveExercises(ctx, plan); err != nil {
		return nil, fmt.Errorf("reorder exercises: %w", err)
	}

	return &ExercisesOrderOutput{
		PlanID:    plan.ID,
		Exercises: toExercisesDetails(plan.OrderedExercises()),
	}, nil
}

func (s *Service) validateCanActivate(ctx context.Context, userID string) error {
	isPremium, err := s.premium.IsPremium(ctx, userID)
	if err != nil {
		return fmt.Errorf("check premium status: %w", err)
	}
	count, err := s.repo.CountActiveByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("count active plans: %w", err)
	}
	return s.policy.ValidateCanCreateWorkoutPlan(count, isPremium).Err()
}

func (s *Service) loadPlan(ctx context.Context, planID, userID string) (*Plan, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if planID == "" {
		return nil, apperr.Validation("workout plan id is required")
	}
	if !pkg.IsUUID(planID) {
		return nil, ErrPlanNotFound
	}
	plan, err := s.repo.Get(ctx, planID, userID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
