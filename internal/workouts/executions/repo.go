package executions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/db"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

const sessionExerciseUniqueConstraint = "ux_exercise_execution_session_exercise"

var (
	ErrExecutionNotFound = apperr.NotFound("exercise execution not found")
	ErrExecutionExists   = apperr.Conflict("the exercise was already started in this workout session")
	ErrSetNotFound       = apperr.NotFound("set not found")
)

const executionColumns = `e.id, e.workout_session_id, e.exercise_id, e.status, e.started_at,
	e.completed_at, e.notes, e.version, e.created_at, e.updated_at`

const setColumns = `id, exercise_execution_id, set_number, planned_reps, actual_reps, weight,
	rest_time_seconds, completed_at, notes, version, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the execution and all of its sets in one transaction.
func (r *Repo) Create(ctx context.Context, execution *Execution) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("execution.id", execution.ID),
		attribute.Int("execution.sets", len(execution.sets)),
	)

	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO exercise_execution (
				id, workout_session_id, exercise_id, status, started_at,
				completed_at, notes, version, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)
		`,
			execution.ID, execution.WorkoutSessionID, execution.ExerciseID, execution.Status,
			execution.StartedAt, execution.CompletedAt, execution.Notes,
			execution.CreatedAt, execution.UpdatedAt,
		)
		if pkg.IsUniqueViolationOn(err, sessionExerciseUniqueConstraint) {
			return ErrExecutionExists.Wrap(err)
		}
		// the session or the exercise was removed in the meantime
		if pkg.IsForeignKeyViolationError(err) {
			return apperr.NotFound("workout session or exercise not found").Wrap(err)
		}
		if err != nil {
			return fmt.Errorf("insert execution: %w", err)
		}

		batch := &pgx.Batch{}
		for _, s := range execution.sets {
			batch.Queue(`
				INSERT INTO workout_set (`+setColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
			`,
				s.ID, execution.ID, s.SetNumber, s.PlannedReps, s.ActualReps, s.Weight,
				s.RestTimeSeconds, s.CompletedAt, s.Notes, s.CreatedAt, s.UpdatedAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert sets: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	execution.Version = 1
	for _, s := range execution.sets {
		s.Version = 1
	}
	return nil
}

// Get loads the execution with its sets. Executions of sessions owned by
// another user are reported as not found.
func (r *Repo) Get(ctx context.Context, id, userID string) (_ *Execution, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("execution.id", id))

	execution, err := scanExecution(r.db.QueryRow(ctx, `
		SELECT `+executionColumns+`
		FROM exercise_execution e
		JOIN workout_session s ON s.id = e.workout_session_id
		WHERE e.id = $1 AND s.user_id = $2
	`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExecutionNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+setColumns+`
		FROM workout_set
		WHERE exercise_execution_id = $1
		ORDER BY set_number
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	var sets []*Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	execution.loadSets(sets)
	return execution, nil
}

func (r *Repo) ExistsForSessionExercise(ctx context.Context, sessionID, exerciseID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.existsforsessionexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM exercise_execution
			WHERE workout_session_id = $1 AND exercise_id = $2
		)
	`, sessionID, exerciseID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LastCompletedSet returns the most recently completed set of the exercise
// in the user's completed executions, or nil when there is none.
func (r *Repo) LastCompletedSet(ctx context.Context, userID, exerciseID string) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.lastcompletedset")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	set, err := scanSet(r.db.QueryRow(ctx, `
		SELECT ws.id, ws.exercise_execution_id, ws.set_number, ws.planned_reps, ws.actual_reps, ws.weight,
			ws.rest_time_seconds, ws.completed_at, ws.notes, ws.version, ws.created_at, ws.updated_at
		FROM workout_set ws
		JOIN exercise_execution e ON e.id = ws.exercise_execution_id
		JOIN workout_session s ON s.id = e.workout_session_id
		WHERE e.exercise_id = $1 AND s.user_id = $2
			AND e.status = 'COMPLETED' AND ws.completed_at IS NOT NULL
		ORDER BY e.completed_at DESC, ws.set_number DESC
		LIMIT 1
	`, exerciseID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// SaveSet writes the set and touches the execution in one transaction, both
// guarded by their versions.
func (r *Repo) SaveSet(ctx context.Context, execution *Execution, setNumber int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.saveset")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("execution.id", execution.ID),
		attribute.Int("set.number", setNumber),
	)

	set := execution.set(setNumber)
	if set == nil {
		return ErrSetNotFound
	}

	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE workout_set
			SET actual_reps = $3, weight = $4, rest_time_seconds = $5, completed_at = $6,
				notes = $7, updated_at = $8, version = version + 1
			WHERE id = $1 AND version = $2
		`,
			set.ID, set.Version,
			set.ActualReps, set.Weight, set.RestTimeSeconds, set.CompletedAt, set.Notes, set.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update set: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.ErrConcurrentUpdate
		}
		return r.updateExecution(ctx, tx, execution)
	})
	if err != nil {
		return err
	}

	set.Version++
	execution.Version++
	return nil
}

// Update writes the state of the execution, guarded by its version.
func (r *Repo) Update(ctx context.Context, execution *Execution) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("execution.id", execution.ID),
		attribute.String("execution.status", string(execution.Status)),
	)

	if err := r.updateExecution(ctx, r.db, execution); err != nil {
		return err
	}
	execution.Version++
	return nil
}

func (r *Repo) CountCompletedBySession(ctx context.Context, sessionID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.executions.countcompletedbysession")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM exercise_execution
		WHERE workout_session_id = $1 AND status = 'COMPLETED'
	`, sessionID).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// dbtx is satisfied by *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *Repo) updateExecution(ctx context.Context, q dbtx, execution *Execution) error {
	tag, err := q.Exec(ctx, `
		UPDATE exercise_execution
		SET status = $3, started_at = $4, completed_at = $5, notes = $6, updated_at = $7,
			version = version + 1
		WHERE id = $1 AND version = $2
	`,
		execution.ID, execution.Version,
		execution.Status, execution.StartedAt, execution.CompletedAt, execution.Notes, execution.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update execution: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM exercise_execution WHERE id = $1)
	`, execution.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrExecutionNotFound
	}
	return apperr.ErrConcurrentUpdate
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(row scanner) (*Execution, error) {
	var e Execution
	if err := row.Scan(
		&e.ID, &e.WorkoutSessionID, &e.ExerciseID, &e.Status, &e.StartedAt,
		&e.CompletedAt, &e.Notes, &e.Version, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanSet(row scanner) (*Set, error) {
	var s Set
	if err := row.Scan(
		&s.ID, &s.ExecutionID, &s.SetNumber, &s.PlannedReps, &s.ActualReps, &s.Weight,
		&s.RestTimeSeconds, &s.CompletedAt, &s.Notes, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
