package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/workouts/executions"
	"github.com/2beens/workouts/internal/workouts/limits"
	"github.com/2beens/workouts/internal/workouts/plans"
	"github.com/2beens/workouts/internal/workouts/premium"
	"github.com/2beens/workouts/internal/workouts/sessions"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func (s *IntegrationTestSuite) createPlan(ctx context.Context, user testUser, name string) plans.CreatePlanOutput {
	var out plans.CreatePlanOutput
	status := s.do(ctx, user, http.MethodPost, "/workout-plans", plans.CreatePlanInput{Name: name}, &out)
	s.Require().Equal(http.StatusCreated, status)
	return out
}

func (s *IntegrationTestSuite) addExercise(ctx context.Context, user testUser, planID, name string, sets int) plans.AddExerciseOutput {
	var out plans.AddExerciseOutput
	status := s.do(ctx, user, http.MethodPost, planPath(planID, "exercises"), plans.AddExerciseInput{
		Name:            name,
		Sets:            intPtr(sets),
		Reps:            intPtr(10),
		RestTimeSeconds: intPtr(90),
	}, &out)
	s.Require().Equal(http.StatusCreated, status)
	return out
}

func (s *IntegrationTestSuite) TestFreeTierLimits() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	user := s.newUser(ctx)

	first := s.createPlan(ctx, user, "Treino A")
	s.True(first.IsActive)
	s.Zero(first.ExerciseCount)
	s.Nil(first.Description)
	s.Equal(1, first.LimitsInfo.Current)
	s.Equal(limits.FreeMaxWorkoutPlans, first.LimitsInfo.Limit)
	s.True(first.LimitsInfo.CanCreateMore)

	// names are unique per user, ignoring case
	var dupErr apperr.ErrorResponse
	status := s.do(ctx, user, http.MethodPost, "/workout-plans", plans.CreatePlanInput{Name: "treino a"}, &dupErr)
	s.Equal(http.StatusConflict, status)
	s.Equal(apperr.KindDuplicateName, dupErr.Code)

	second := s.createPlan(ctx, user, "Treino B")
	s.False(second.LimitsInfo.CanCreateMore)

	var limitErr apperr.ErrorResponse
	status = s.do(ctx, user, http.MethodPost, "/workout-plans", plans.CreatePlanInput{Name: "Treino C"}, &limitErr)
	s.Equal(http.StatusForbidden, status)
	s.Equal(apperr.KindLimitExceeded, limitErr.Code)
	s.EqualValues(2, limitErr.Details["current"])
	s.EqualValues(2, limitErr.Details["limit"])

	for i := range limits.FreeMaxExercisesPerPlan {
		s.addExercise(ctx, user, first.ID, fmt.Sprintf("Exercise %d", i+1), 3)
	}
	status = s.do(ctx, user, http.MethodPost, planPath(first.ID, "exercises"), plans.AddExerciseInput{Name: "One Too Many"}, &limitErr)
	s.Equal(http.StatusForbidden, status)
	s.Equal(apperr.KindLimitExceeded, limitErr.Code)

	// another user does not see the plans
	other := s.newUser(ctx)
	var listOut plans.ListPlansOutput
	s.Equal(http.StatusOK, s.do(ctx, other, http.MethodGet, "/workout-plans", nil, &listOut))
	s.Empty(listOut.Plans)
	s.Equal(http.StatusNotFound, s.do(ctx, other, http.MethodGet, planPath(first.ID), nil, nil))

	var malformed apperr.ErrorResponse
	s.Equal(http.StatusNotFound, s.do(ctx, user, http.MethodGet, planPath("abc"), nil, &malformed))
	s.Equal(apperr.KindNotFound, malformed.Code)
}

func (s *IntegrationTestSuite) TestPremiumLiftsLimits() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	user := s.newUser(ctx)

	var statusOut premium.StatusOutput
	s.Equal(http.StatusOK, s.do(ctx, user, http.MethodGet, "/premium/status", nil, &statusOut))
	s.False(statusOut.IsPremium)
	s.Equal(premium.StatusNone, statusOut.Status)

	s.makePremium(user, 30*24*time.Hour)

	s.Equal(http.StatusOK, s.do(ctx, user, http.MethodGet, "/premium/status", nil, &statusOut))
	s.True(statusOut.IsPremium)
	s.NotNil(statusOut.ExpiryDate)

	for range limits.FreeMaxWorkoutPlans + 1 {
		s.createPlan(ctx, user, gofakeit.Adjective()+" "+gofakeit.UUID()[:8])
	}

	var listOut plans.ListPlansOutput
	s.Equal(http.StatusOK, s.do(ctx, user, http.MethodGet, "/workout-plans", nil, &listOut))
	s.Len(listOut.Plans, limits.FreeMaxWorkoutPlans+1)
	s.True(listOut.LimitsInfo.IsPremium)
	s.Equal(limits.Unlimited, listOut.LimitsInfo.Limit)
}

func (s *IntegrationTestSuite) TestWorkoutSessionFlow() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	user := s.newUser(ctx)

	plan := s.createPlan(ctx, user, "Treino A")
	bench := s.addExercise(ctx, user, plan.ID, "Bench Press", 3)
	s.addExercise(ctx, user, plan.ID, "Squat", 4)

	var started sessions.StartSessionOutput
	s.Require().Equal(http.StatusCreated, s.do(ctx, user, http.MethodPost, "/workout-sessions",
		sessions.StartSessionInput{WorkoutPlanID: plan.ID}, &started))
	s.Equal(sessions.StatusInProgress, started.Status)
	s.Len(started.Exercises, 2)

	// only one active session per user
	var conflict apperr.ErrorResponse
	s.Equal(http.StatusConflict, s.do(ctx, user, http.MethodPost, "/workout-sessions",
		sessions.StartSessionInput{WorkoutPlanID: plan.ID}, &conflict))

	// the plan cannot go away while the session runs
	s.Equal(http.StatusConflict, s.do(ctx, user, http.MethodDelete, planPath(plan.ID)+"?force=true", nil, nil))

	var execution executions.StartExecutionOutput
	s.Require().Equal(http.StatusCreated, s.do(ctx, user, http.MethodPost, "/exercise-executions",
		executions.StartExecutionInput{
			SessionID:      started.ID,
			ExerciseID:     bench.ID,
			StartingWeight: floatPtr(50),
		}, &execution))
	s.Equal(executions.StatusInProgress, execution.Status)
	s.Len(execution.Sets, 3)

	var setOut executions.CompleteSetOutput
	s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, setPath(execution.ID, 1, "complete"),
		executions.CompleteSetInput{ActualReps: intPtr(12)}, &setOut))
	s.Equal(2, setOut.Performance.RepsDifference)
	s.Equal(120, setOut.Performance.CompletionPercentage)
	s.Require().NotNil(setOut.Suggestions.NextSetWeight)
	s.InDelta(52.5, *setOut.Suggestions.NextSetWeight, 0.001)

	s.Equal(http.StatusConflict, s.do(ctx, user, http.MethodPut, setPath(execution.ID, 1, "complete"),
		executions.CompleteSetInput{ActualReps: intPtr(10)}, nil))

	var weightOut executions.UpdateSetWeightOutput
	s.Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, setPath(execution.ID, 2, "weight"),
		executions.UpdateSetWeightInput{Weight: floatPtr(52.5)}, &weightOut))
	s.InDelta(52.5, weightOut.Weight, 0.001)

	for setNumber := 2; setNumber <= 3; setNumber++ {
		s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, setPath(execution.ID, setNumber, "complete"),
			executions.CompleteSetInput{ActualReps: intPtr(10)}, &setOut))
	}
	s.True(setOut.ExecutionInfo.CanCompleteExercise)

	var finished executions.FinishExecutionOutput
	s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, "/exercise-executions/"+execution.ID+"/finish",
		executions.FinishExecutionInput{}, &finished))
	s.Equal(executions.StatusCompleted, finished.Status)
	s.Equal(3, finished.Performance.CompletedSets)
	s.Equal(32, finished.Performance.TotalReps)

	var paused sessions.TransitionOutput
	s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, "/workout-sessions/"+started.ID+"/pause", nil, &paused))
	s.Equal(sessions.StatusPaused, paused.Status)
	s.True(paused.SessionInfo.CanResume)

	s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, "/workout-sessions/"+started.ID+"/resume", nil, &paused))
	s.Equal(sessions.StatusInProgress, paused.Status)

	var completed sessions.CompleteSessionOutput
	s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodPut, "/workout-sessions/"+started.ID+"/complete",
		sessions.CompleteSessionInput{Notes: gofakeitNotes()}, &completed))
	s.Equal(sessions.StatusCompleted, completed.Status)
	s.Equal(1, completed.Summary.ExercisesCompleted)
	s.Equal(2, completed.Summary.TotalExercises)
	s.Equal(50, completed.Summary.CompletionRate)

	// terminal sessions stay terminal
	s.Equal(http.StatusConflict, s.do(ctx, user, http.MethodPut, "/workout-sessions/"+started.ID+"/cancel", nil, nil))

	var history sessions.HistoryOutput
	s.Require().Equal(http.StatusOK, s.do(ctx, user, http.MethodGet, "/workout-sessions/history", nil, &history))
	s.Len(history.Sessions, 1)
	s.Equal(limits.FreeHistoryRetentionDays, history.RetentionDays)

	s.Equal(http.StatusOK, s.do(ctx, user, http.MethodDelete, planPath(plan.ID)+"?force=true", nil, nil))
}

func gofakeitNotes() *string {
	notes := gofakeit.Sentence(6)
	return &notes
}
