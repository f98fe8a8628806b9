package sessions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/internal/workouts/limits"
	"github.com/2beens/workouts/internal/workouts/plans"
	"github.com/2beens/workouts/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id, userID string) (*Session, error)
	ActiveByUser(ctx context.Context, userID string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	History(ctx context.Context, params HistoryParams) ([]*Session, int, error)
}

type plansGetter interface {
	Get(ctx context.Context, id, userID string) (*plans.Plan, error)
}

type executionsCounter interface {
	CountCompletedBySession(ctx context.Context, sessionID string) (int, error)
}

type premiumChecker interface {
	IsPremium(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	repo       sessionsRepo
	plans      plansGetter
	executions executionsCounter
	premium    premiumChecker
	policy     *limits.Policy

	NowFunc   func() time.Time
	NewIDFunc func() string
}

func NewService(
	repo sessionsRepo,
	plans plansGetter,
	executions executionsCounter,
	premium premiumChecker,
	policy *limits.Policy,
) *Service {
	return &Service{
		repo:       repo,
		plans:      plans,
		executions: executions,
		premium:    premium,
		policy:     policy,
		NowFunc:    func() time.Time { return time.Now().UTC() },
		NewIDFunc:  uuid.NewString,
	}
}

func (s *Service) Start(ctx context.Context, input StartSessionInput) (_ *StartSessionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.start")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.UserID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if input.WorkoutPlanID == "" {
		return nil, apperr.Validation("workout plan id is required")
	}
	if !pkg.IsUUID(input.WorkoutPlanID) {
		return nil, plans.ErrPlanNotFound
	}
	span.SetAttributes(attribute.String("plan.id", input.WorkoutPlanID))

	_, err = s.repo.ActiveByUser(ctx, input.UserID)
	switch {
	case err == nil:
		return nil, ErrActiveSessionExists
	case !errors.Is(err, ErrNoActiveSession):
		return nil, fmt.Errorf("get active session: %w", err)
	}

	plan, err := s.plans.Get(ctx, input.WorkoutPlanID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if !plan.IsActive {
		return nil, apperr.Validation("cannot start a session for an inactive workout plan")
	}
	if !plan.HasExercises() {
		return nil, apperr.Validation("cannot start a session for a workout plan without exercises")
	}

	now := s.NowFunc()
	session, err := New(s.NewIDFunc(), input.UserID, plan.ID, input.Notes, now)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ordered := plan.OrderedExercises()
	exercises := make([]ExerciseInfo, 0, len(ordered))
	for _, e := range ordered {
		exercises = append(exercises, ExerciseInfo{
			ID:                       e.ID,
			Name:                     e.Name,
			Sets:                     e.Sets,
			Reps:                     e.Reps,
			RestTimeSeconds:          e.RestTimeSeconds,
			Order:                    e.Order,
			EstimatedDurationSeconds: e.EstimatedDurationSeconds(),
		})
	}

	return &StartSessionOutput{
		ID:        session.ID,
		Status:    session.Status,
		StartedAt: session.StartedAt,
		WorkoutPlan: PlanInfo{
			ID:                       plan.ID,
			Name:                     plan.Name,
			Description:              plan.Description,
			ExerciseCount:            plan.ExerciseCount(),
			EstimatedDurationMinutes: plan.EstimatedDurationMinutes(),
		},
		Exercises: exercises,
		SessionInfo: StartSessionInfo{
			CanPause:        session.CanBePaused(),
			CanComplete:     session.CanBeCompleted(),
			CanCancel:       session.CanBeCancelled(),
			CurrentDuration: session.FormattedDuration(now),
		},
	}, nil
}

func (s *Service) Pause(ctx context.Context, input SessionInput) (_ *TransitionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.pause")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.loadSession(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	now := s.NowFunc()
	if err := session.Pause(now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return &TransitionOutput{
		ID:              session.ID,
		Status:          session.Status,
		PausedAt:        session.PausedAt,
		CurrentDuration: session.FormattedDuration(now),
		SessionInfo:     controlInfo(session),
	}, nil
}

func (s *Service) Resume(ctx context.Context, input SessionInput) (_ *TransitionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.resume")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.loadSession(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	now := s.NowFunc()
	if err := session.Resume(now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return &TransitionOutput{
		ID:              session.ID,
		Status:          session.Status,
		ResumedAt:       session.ResumedAt,
		CurrentDuration: session.FormattedDuration(now),
		SessionInfo:     controlInfo(session),
	}, nil
}

// Complete finishes the session and summarizes how many of the plan's
// exercises were completed in it.
func (s *Service) Complete(ctx context.Context, input CompleteSessionInput) (_ *CompleteSessionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.complete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.loadSession(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	now := s.NowFunc()
	if err := session.Complete(input.Notes, now); err != nil {
		return nil, err
	}

	plan, err := s.plans.Get(ctx, session.WorkoutPlanID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	completed, err := s.executions.CountCompletedBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("count completed executions: %w", err)
	}

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	total := plan.ExerciseCount()
	return &CompleteSessionOutput{
		ID:                session.ID,
		Status:            session.Status,
		CompletedAt:       *session.CompletedAt,
		TotalDurationMs:   *session.TotalDurationMs,
		FormattedDuration: session.FormattedDuration(now),
		Notes:             session.Notes,
		WorkoutPlan: PlanRef{
			ID:   plan.ID,
			Name: plan.Name,
		},
		Summary: CompletionSummary{
			ExercisesCompleted: completed,
			TotalExercises:     total,
			CompletionRate:     completionRate(completed, total),
		},
	}, nil
}

func (s *Service) Cancel(ctx context.Context, input CancelSessionInput) (_ *CancelSessionOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.cancel")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.loadSession(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	now := s.NowFunc()
	if err := session.Cancel(input.Reason, now); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return &CancelSessionOutput{
		ID:                session.ID,
		Status:            session.Status,
		CancelledAt:       *session.CancelledAt,
		TotalDurationMs:   *session.TotalDurationMs,
		FormattedDuration: session.FormattedDuration(now),
		Notes:             session.Notes,
		Reason:            input.Reason,
	}, nil
}

// GetActive returns ErrNoActiveSession when the user has nothing in progress.
func (s *Service) GetActive(ctx context.Context, userID string) (_ *SessionDetailsOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.getactive")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	session, err := s.repo.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}

	return s.details(session), nil
}

func (s *Service) Get(ctx context.Context, input SessionInput) (_ *SessionDetailsOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := s.loadSession(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	return s.details(session), nil
}

// History lists finished sessions inside the retention window of the user's
// tier. A From date older than the window is rejected with LimitExceeded.
func (s *Service) History(ctx context.Context, input HistoryInput) (_ *HistoryOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.history")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if input.UserID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if input.Page == 0 {
		input.Page = plans.DefaultPage
	}
	if input.Limit == 0 {
		input.Limit = plans.DefaultPageSize
	}
	if input.Page < 1 {
		return nil, apperr.Validation("page must be positive")
	}
	if input.Limit < 1 || input.Limit > plans.MaxPageSize {
		return nil, apperr.Validation("limit must be between 1 and %d", plans.MaxPageSize)
	}

	isPremium, err := s.premium.IsPremium(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check premium status: %w", err)
	}

	now := s.NowFunc()
	l := s.policy.LimitsFor(isPremium)
	var since time.Time
	if l.HistoryRetentionDays != limits.Unlimited {
		// a session is retained while its age in whole days is within the retention
		since = now.Add(-time.Duration(l.HistoryRetentionDays+1)*24*time.Hour + time.Microsecond)
	}
	if input.From != nil {
		if err := s.policy.ValidateHistoryAccess(*input.From, now, isPremium).Err(); err != nil {
			return nil, err
		}
		if input.From.After(since) {
			since = *input.From
		}
	}

	found, total, err := s.repo.History(ctx, HistoryParams{
		UserID: input.UserID,
		Since:  since,
		Page:   input.Page,
		Size:   input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list session history: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(found))
	for _, session := range found {
		summaries = append(summaries, SessionSummary{
			ID:                session.ID,
			WorkoutPlanID:     session.WorkoutPlanID,
			Status:            session.Status,
			StartedAt:         session.StartedAt,
			EndedAt:           session.EndedAt(),
			TotalDurationMs:   session.TotalDurationMs,
			FormattedDuration: session.FormattedDuration(now),
			Notes:             session.Notes,
		})
	}

	return &HistoryOutput{
		Sessions: summaries,
		Pagination: plans.Pagination{
			Page:       input.Page,
			Limit:      input.Limit,
			Total:      total,
			TotalPages: (total + input.Limit - 1) / input.Limit,
		},
		RetentionDays: l.HistoryRetentionDays,
	}, nil
}

func (s *Service) loadSession(ctx context.Context, id, userID string) (*Session, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if id == "" {
		return nil, apperr.Validation("session id is required")
	}
	if !pkg.IsUUID(id) {
		return nil, ErrSessionNotFound
	}
	session, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *Service) details(session *Session) *SessionDetailsOutput {
	return &SessionDetailsOutput{
		ID:              session.ID,
		WorkoutPlanID:   session.WorkoutPlanID,
		Notes:           session.Notes,
		TotalDurationMs: session.TotalDurationMs,
		StatusInfo:      session.StatusInfo(s.NowFunc()),
		SessionInfo:     controlInfo(session),
	}
}

func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
