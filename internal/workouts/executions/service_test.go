package executions_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/workouts/executions"
	"github.com/2beens/workouts/internal/workouts/plans"
	"github.com/2beens/workouts/internal/workouts/progression"
	"github.com/2beens/workouts/internal/workouts/sessions"
)

type serviceMocks struct {
	repo     *MockexecutionsRepo
	sessions *MocksessionsGetter
	plans    *MockplansGetter
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestService(t *testing.T) (*executions.Service, serviceMocks, *testClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		repo:     NewMockexecutionsRepo(ctrl),
		sessions: NewMocksessionsGetter(ctrl),
		plans:    NewMockplansGetter(ctrl),
	}
	clock := &testClock{now: testNow}
	s := executions.NewService(m.repo, m.sessions, m.plans)
	s.NowFunc = clock.Now
	ids := 0
	s.NewIDFunc = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return s, m, clock
}

func newTestSession(t *testing.T) *sessions.Session {
	t.Helper()
	s, err := sessions.New(testSessionID, "user-1", testPlanID, nil, testNow)
	require.NoError(t, err)
	return s
}

func newTestPlan(t *testing.T) *plans.Plan {
	t.Helper()
	p, err := plans.NewPlan(testPlanID, "user-1", "Push Day", nil, testNow)
	require.NoError(t, err)
	e, err := plans.NewExercise(plans.NewExerciseParams{
		ID:                testExerciseID,
		WorkoutPlanID:     p.ID,
		Name:              "Bench Press",
		TargetMuscleGroup: ptr("chest"),
		Sets:              3,
		Reps:              10,
		RestTimeSeconds:   90,
		Order:             1,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, p.AddExercise(*e, testNow))
	return p
}

func expectOpenSession(t *testing.T, m serviceMocks) {
	t.Helper()
	m.sessions.EXPECT().Get(gomock.Any(), testSessionID, "user-1").Return(newTestSession(t), nil)
}

func expectSessionAndPlan(m serviceMocks, session *sessions.Session, plan *plans.Plan) {
	m.sessions.EXPECT().Get(gomock.Any(), session.ID, "user-1").Return(session, nil)
	m.plans.EXPECT().Get(gomock.Any(), plan.ID, "user-1").Return(plan, nil)
}

func TestService_Start(t *testing.T) {
	s, m, _ := newTestService(t)

	expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))
	m.repo.EXPECT().ExistsForSessionExercise(gomock.Any(), testSessionID, testExerciseID).Return(false, nil)
	m.repo.EXPECT().LastCompletedSet(gomock.Any(), "user-1", testExerciseID).Return(nil, nil)

	var created *executions.Execution
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *executions.Execution) error {
			created = e
			return nil
		})

	out, err := s.Start(context.Background(), executions.StartExecutionInput{
		UserID:     "user-1",
		SessionID:  testSessionID,
		ExerciseID: testExerciseID,
	})
	require.NoError(t, err)

	assert.Equal(t, "id-1", out.ID)
	assert.Equal(t, executions.StatusInProgress, out.Status)
	assert.Equal(t, testNow, out.StartedAt)
	assert.Equal(t, "Bench Press", out.Exercise.Name)
	require.Len(t, out.Sets, 3)
	for i, set := range out.Sets {
		assert.Equal(t, i+1, set.SetNumber)
		assert.Equal(t, 10, set.PlannedReps)
		assert.Nil(t, set.Weight)
		assert.False(t, set.IsCompleted)
	}
	assert.Nil(t, out.Suggestions.RecommendedWeight)
	assert.Equal(t, executions.StartExecutionInfo{CanComplete: true, CanSkip: true, TotalSets: 3}, out.ExecutionInfo)

	require.NotNil(t, created)
	assert.Equal(t, 3, created.TotalSets())
	assert.Equal(t, testSessionID, created.WorkoutSessionID)
}

func TestService_Start_UsesLastWeight(t *testing.T) {
	s, m, _ := newTestService(t)

	expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))
	last := newTestSet(t, 3, ptr(47.5))
	require.NoError(t, last.Complete(executions.SetCompletion{ActualReps: 9}, testNow.Add(-48*time.Hour)))

	m.repo.EXPECT().ExistsForSessionExercise(gomock.Any(), testSessionID, testExerciseID).Return(false, nil)
	m.repo.EXPECT().LastCompletedSet(gomock.Any(), "user-1", testExerciseID).Return(last, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.Start(context.Background(), executions.StartExecutionInput{
		UserID:     "user-1",
		SessionID:  testSessionID,
		ExerciseID: testExerciseID,
	})
	require.NoError(t, err)
	assert.Equal(t, 47.5, *out.Suggestions.RecommendedWeight)
	assert.Equal(t, 47.5, *out.Suggestions.LastWeight)
	assert.Equal(t, 9, *out.Suggestions.LastReps)
	assert.Equal(t, 47.5, *out.Sets[0].Weight)
}

func TestService_Start_StartingWeightWins(t *testing.T) {
	s, m, _ := newTestService(t)

	expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))
	last := newTestSet(t, 1, ptr(40.0))
	require.NoError(t, last.Complete(executions.SetCompletion{ActualReps: 10}, testNow))

	m.repo.EXPECT().ExistsForSessionExercise(gomock.Any(), testSessionID, testExerciseID).Return(false, nil)
	m.repo.EXPECT().LastCompletedSet(gomock.Any(), "user-1", testExerciseID).Return(last, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.Start(context.Background(), executions.StartExecutionInput{
		UserID:         "user-1",
		SessionID:      testSessionID,
		ExerciseID:     testExerciseID,
		StartingWeight: ptr(50.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, *out.Suggestions.RecommendedWeight)
	assert.Equal(t, 40.0, *out.Suggestions.LastWeight)
	for _, set := range out.Sets {
		assert.Equal(t, 50.0, *set.Weight)
	}
}

func TestService_Start_PausedSession(t *testing.T) {
	s, m, _ := newTestService(t)

	session := newTestSession(t)
	require.NoError(t, session.Pause(testNow.Add(time.Minute)))
	expectSessionAndPlan(m, session, newTestPlan(t))
	m.repo.EXPECT().ExistsForSessionExercise(gomock.Any(), testSessionID, testExerciseID).Return(false, nil)
	m.repo.EXPECT().LastCompletedSet(gomock.Any(), "user-1", testExerciseID).Return(nil, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.Start(context.Background(), executions.StartExecutionInput{
		UserID:     "user-1",
		SessionID:  testSessionID,
		ExerciseID: testExerciseID,
	})
	require.NoError(t, err)
	assert.Equal(t, executions.StatusInProgress, out.Status)
	assert.Len(t, out.Sets, 3)
	assert.Equal(t, sessions.StatusPaused, session.Status)
}

func TestService_Start_Rejected(t *testing.T) {
	input := executions.StartExecutionInput{UserID: "user-1", SessionID: testSessionID, ExerciseID: testExerciseID}

	t.Run("missing exercise id", func(t *testing.T) {
		s, _, _ := newTestService(t)
		_, err := s.Start(context.Background(), executions.StartExecutionInput{UserID: "user-1", SessionID: testSessionID})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("malformed session id", func(t *testing.T) {
		s, _, _ := newTestService(t)
		_, err := s.Start(context.Background(), executions.StartExecutionInput{UserID: "user-1", SessionID: "abc", ExerciseID: testExerciseID})
		assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("malformed exercise id", func(t *testing.T) {
		s, _, _ := newTestService(t)
		_, err := s.Start(context.Background(), executions.StartExecutionInput{UserID: "user-1", SessionID: testSessionID, ExerciseID: "ex-1"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("completed session", func(t *testing.T) {
		s, m, _ := newTestService(t)
		session := newTestSession(t)
		require.NoError(t, session.Complete(nil, testNow.Add(time.Hour)))
		m.sessions.EXPECT().Get(gomock.Any(), testSessionID, "user-1").Return(session, nil)

		_, err := s.Start(context.Background(), input)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidStateTransition))
	})

	t.Run("session of another user", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.sessions.EXPECT().Get(gomock.Any(), testSessionID, "user-1").Return(nil, sessions.ErrSessionNotFound)

		_, err := s.Start(context.Background(), input)
		assert.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})

	t.Run("exercise not in plan", func(t *testing.T) {
		s, m, _ := newTestService(t)
		expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))

		_, err := s.Start(context.Background(), executions.StartExecutionInput{
			UserID:     "user-1",
			SessionID:  testSessionID,
			ExerciseID: missingExerciseID,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("already executed in session", func(t *testing.T) {
		s, m, _ := newTestService(t)
		expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))
		m.repo.EXPECT().ExistsForSessionExercise(gomock.Any(), testSessionID, testExerciseID).Return(true, nil)

		_, err := s.Start(context.Background(), input)
		assert.ErrorIs(t, err, executions.ErrExecutionExists)
	})
}

func TestService_CompleteSet(t *testing.T) {
	s, m, clock := newTestService(t)

	execution := newStartedExecution(t, 3)
	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	expectOpenSession(t, m)
	m.repo.EXPECT().SaveSet(gomock.Any(), execution, 1).Return(nil)

	clock.now = testNow.Add(2 * time.Minute)
	out, err := s.CompleteSet(context.Background(), executions.CompleteSetInput{
		UserID:      "user-1",
		ExecutionID: testExecutionID,
		SetNumber:   1,
		ActualReps:  ptr(12),
		Weight:      ptr(50.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 12, out.ActualReps)
	assert.Equal(t, clock.now, out.CompletedAt)
	assert.Equal(t, 120, out.Performance.CompletionPercentage)
	assert.Equal(t, 2, out.Performance.RepsDifference)
	assert.Equal(t, 600.0, out.Performance.Volume)
	assert.True(t, out.Performance.WasSuccessful)
	assert.Equal(t, "Set 1: 12/10 reps | 50 kg", out.FormattedDescription)

	require.NotNil(t, out.Suggestions.NextSetWeight)
	assert.Equal(t, 52.5, *out.Suggestions.NextSetWeight)
	assert.Equal(t, progression.RestNormal, out.Suggestions.RestTimeRecommendation)

	assert.Equal(t, 3, out.ExecutionInfo.TotalSets)
	assert.Equal(t, 1, out.ExecutionInfo.CompletedSets)
	assert.Equal(t, 2, out.ExecutionInfo.RemainingSets)
	assert.False(t, out.ExecutionInfo.CanCompleteExercise)
	require.NotNil(t, out.ExecutionInfo.NextSetNumber)
	assert.Equal(t, 2, *out.ExecutionInfo.NextSetNumber)
}

func TestService_CompleteSet_Rejected(t *testing.T) {
	t.Run("missing actual reps", func(t *testing.T) {
		s, _, _ := newTestService(t)
		_, err := s.CompleteSet(context.Background(), executions.CompleteSetInput{
			UserID:      "user-1",
			ExecutionID: testExecutionID,
			SetNumber:   1,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("set number out of range", func(t *testing.T) {
		s, _, _ := newTestService(t)
		_, err := s.CompleteSet(context.Background(), executions.CompleteSetInput{
			UserID:      "user-1",
			ExecutionID: testExecutionID,
			SetNumber:   21,
			ActualReps:  ptr(10),
		})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("skipped execution", func(t *testing.T) {
		s, m, _ := newTestService(t)
		execution := newStartedExecution(t, 3)
		require.NoError(t, execution.Skip(nil, testNow))
		m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)

		_, err := s.CompleteSet(context.Background(), executions.CompleteSetInput{
			UserID:      "user-1",
			ExecutionID: testExecutionID,
			SetNumber:   1,
			ActualReps:  ptr(10),
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidStateTransition))
	})

	t.Run("concurrent update", func(t *testing.T) {
		s, m, _ := newTestService(t)
		execution := newStartedExecution(t, 3)
		m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
		expectOpenSession(t, m)
		m.repo.EXPECT().SaveSet(gomock.Any(), execution, 2).Return(apperr.ErrConcurrentUpdate)

		_, err := s.CompleteSet(context.Background(), executions.CompleteSetInput{
			UserID:      "user-1",
			ExecutionID: testExecutionID,
			SetNumber:   2,
			ActualReps:  ptr(10),
		})
		assert.ErrorIs(t, err, apperr.ErrConcurrentUpdate)
	})
}

func TestService_Finish_RequiresAllSets(t *testing.T) {
	s, m, _ := newTestService(t)

	execution := newStartedExecution(t, 3)
	_, err := execution.CompleteSet(1, executions.SetCompletion{ActualReps: 10}, testNow)
	require.NoError(t, err)
	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	expectOpenSession(t, m)

	_, err = s.Finish(context.Background(), executions.FinishExecutionInput{
		UserID:      "user-1",
		ExecutionID: testExecutionID,
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "(1/3)")
	assert.Equal(t, executions.StatusInProgress, execution.Status)
}

func TestService_Finish_Forced(t *testing.T) {
	s, m, clock := newTestService(t)

	execution := newStartedExecution(t, 3)
	_, err := execution.CompleteSet(1, executions.SetCompletion{ActualReps: 10}, testNow)
	require.NoError(t, err)
	_, err = execution.CompleteSet(2, executions.SetCompletion{ActualReps: 6}, testNow)
	require.NoError(t, err)

	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))
	m.repo.EXPECT().Update(gomock.Any(), execution).Return(nil)

	clock.now = testNow.Add(4 * time.Minute)
	out, err := s.Finish(context.Background(), executions.FinishExecutionInput{
		UserID:        "user-1",
		ExecutionID:   testExecutionID,
		Notes:         ptr("grip failed"),
		ForceComplete: true,
	})
	require.NoError(t, err)

	assert.Equal(t, executions.StatusCompleted, out.Status)
	assert.Equal(t, int64(240000), out.TotalDurationMs)
	assert.Equal(t, "04:00", out.FormattedDuration)
	assert.Equal(t, "grip failed", *out.Notes)
	assert.Equal(t, "Bench Press", out.Exercise.Name)

	assert.Equal(t, executions.ExecutionPerformance{
		TotalSets:      3,
		CompletedSets:  2,
		SkippedSets:    1,
		CompletionRate: 67,
		TotalReps:      16,
		AverageWeight:  ptr(50.0),
		TotalVolume:    800,
	}, out.Performance)
	assert.Equal(t, []string{"Good performance, close to the goal"}, out.Recommendations.PerformanceNotes)
	assert.Equal(t, []string{
		"Keep the current weight",
		"You can rest longer between sets if needed",
	}, out.Recommendations.NextWorkoutSuggestions)
}

func TestService_Finish_AllSetsBeatPlan(t *testing.T) {
	s, m, clock := newTestService(t)

	execution := newStartedExecution(t, 2)
	_, err := execution.CompleteSet(1, executions.SetCompletion{ActualReps: 12}, testNow)
	require.NoError(t, err)
	_, err = execution.CompleteSet(2, executions.SetCompletion{ActualReps: 12, Weight: ptr(52.5)}, testNow)
	require.NoError(t, err)

	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	expectSessionAndPlan(m, newTestSession(t), newTestPlan(t))
	m.repo.EXPECT().Update(gomock.Any(), execution).Return(nil)

	clock.now = testNow.Add(8 * time.Minute)
	out, err := s.Finish(context.Background(), executions.FinishExecutionInput{
		UserID:      "user-1",
		ExecutionID: testExecutionID,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Performance.CompletionRate)
	assert.Equal(t, []string{
		"Excellent performance, beat the plan",
		"Weight progression: +2.5kg during the exercise",
	}, out.Recommendations.PerformanceNotes)
	assert.Equal(t, []string{"Consider increasing the weight by 5-10%"}, out.Recommendations.NextWorkoutSuggestions)
}

func TestService_Finish_NotActive(t *testing.T) {
	s, m, _ := newTestService(t)

	execution, err := executions.New(testExecutionID, testSessionID, testExerciseID, testNow)
	require.NoError(t, err)
	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)

	_, err = s.Finish(context.Background(), executions.FinishExecutionInput{
		UserID:        "user-1",
		ExecutionID:   testExecutionID,
		ForceComplete: true,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidStateTransition))
}

func TestService_Skip(t *testing.T) {
	s, m, _ := newTestService(t)

	execution := newStartedExecution(t, 3)
	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	expectOpenSession(t, m)
	m.repo.EXPECT().Update(gomock.Any(), execution).Return(nil)

	out, err := s.Skip(context.Background(), executions.SkipExecutionInput{
		UserID:      "user-1",
		ExecutionID: testExecutionID,
		Reason:      ptr("machine taken"),
	})
	require.NoError(t, err)
	assert.Equal(t, executions.StatusSkipped, out.Status)
	assert.Equal(t, "Skipped: machine taken", *out.Notes)
	assert.Equal(t, testNow, out.CompletedAt)
}

func TestService_EndedSessionIsReadOnly(t *testing.T) {
	endedSession := func(t *testing.T) *sessions.Session {
		session := newTestSession(t)
		require.NoError(t, session.Complete(nil, testNow.Add(time.Hour)))
		return session
	}

	t.Run("complete set", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(newStartedExecution(t, 3), nil)
		m.sessions.EXPECT().Get(gomock.Any(), testSessionID, "user-1").Return(endedSession(t), nil)

		_, err := s.CompleteSet(context.Background(), executions.CompleteSetInput{
			UserID:      "user-1",
			ExecutionID: testExecutionID,
			SetNumber:   1,
			ActualReps:  ptr(10),
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidStateTransition))
	})

	t.Run("finish", func(t *testing.T) {
		s, m, _ := newTestService(t)
		m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(newStartedExecution(t, 3), nil)
		m.sessions.EXPECT().Get(gomock.Any(), testSessionID, "user-1").Return(endedSession(t), nil)

		_, err := s.Finish(context.Background(), executions.FinishExecutionInput{
			UserID:        "user-1",
			ExecutionID:   testExecutionID,
			ForceComplete: true,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidStateTransition))
	})

	t.Run("skip", func(t *testing.T) {
		s, m, _ := newTestService(t)
		execution := newStartedExecution(t, 3)
		m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
		m.sessions.EXPECT().Get(gomock.Any(), testSessionID, "user-1").Return(endedSession(t), nil)

		_, err := s.Skip(context.Background(), executions.SkipExecutionInput{
			UserID:      "user-1",
			ExecutionID: testExecutionID,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidStateTransition))
		assert.Equal(t, executions.StatusInProgress, execution.Status)
	})
}

func TestService_UpdateSetWeight(t *testing.T) {
	s, m, clock := newTestService(t)

	execution := newStartedExecution(t, 3)
	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	m.repo.EXPECT().SaveSet(gomock.Any(), execution, 2).Return(nil)

	clock.now = testNow.Add(time.Minute)
	out, err := s.UpdateSetWeight(context.Background(), executions.UpdateSetWeightInput{
		UserID:      "user-1",
		ExecutionID: testExecutionID,
		SetNumber:   2,
		Weight:      ptr(57.5),
	})
	require.NoError(t, err)
	assert.Equal(t, executions.UpdateSetWeightOutput{SetNumber: 2, Weight: 57.5, UpdatedAt: clock.now}, *out)

	_, err = s.UpdateSetWeight(context.Background(), executions.UpdateSetWeightInput{
		UserID:      "user-1",
		ExecutionID: testExecutionID,
		SetNumber:   2,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestService_Get(t *testing.T) {
	s, m, clock := newTestService(t)

	execution := newStartedExecution(t, 2)
	m.repo.EXPECT().Get(gomock.Any(), testExecutionID, "user-1").Return(execution, nil)
	m.repo.EXPECT().Get(gomock.Any(), otherExecutionID, "user-1").Return(nil, executions.ErrExecutionNotFound)

	clock.now = testNow.Add(75 * time.Second)
	out, err := s.Get(context.Background(), executions.GetExecutionInput{UserID: "user-1", ExecutionID: testExecutionID})
	require.NoError(t, err)
	assert.Equal(t, "01:15", out.Summary.Duration)
	assert.Len(t, out.Sets, 2)
	assert.True(t, out.CanComplete)

	_, err = s.Get(context.Background(), executions.GetExecutionInput{UserID: "user-1", ExecutionID: otherExecutionID})
	assert.ErrorIs(t, err, executions.ErrExecutionNotFound)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
