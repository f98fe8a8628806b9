package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/db"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

const (
	planNameUniqueIndex     = "ux_workout_plan_user_name"
	exerciseNameUniqueIndex = "ux_exercise_plan_name"
)

var (
	ErrPlanNotFound     = apperr.NotFound("workout plan not found")
	ErrExerciseNotFound = apperr.NotFound("exercise not found")
)

type ListParams struct {
	UserID          string
	Page            int
	Size            int
	Search          string
	IncludeInactive bool
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const planColumns = `id, user_id, name, description, is_active, version, created_at, updated_at`

const exerciseColumns = `id, workout_plan_id, name, description, target_muscle_group,
	sets, reps, rest_time_seconds, exercise_order, created_at, updated_at`

func (r *Repo) Create(ctx context.Context, plan *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	plan.Version = 1
	_, err = r.db.Exec(ctx, `
		INSERT INTO workout_plan (id, user_id, name, description, is_active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		plan.ID, plan.UserID, plan.Name, plan.Description, plan.IsActive,
		plan.Version, plan.CreatedAt, plan.UpdatedAt,
	)
	if pkg.IsUniqueViolationOn(err, planNameUniqueIndex) {
		return apperr.DuplicateName("a workout plan named %q already exists", plan.Name).Wrap(err)
	}
	return err
}

// Get loads the plan with its exercises, scoped to the owner.
func (r *Repo) Get(ctx context.Context, id, userID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("plan.id", id))

	plan, err := scanPlan(r.db.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM workout_plan
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	exercisesByPlan, err := r.exercisesByPlan(ctx, []string{plan.ID})
	if err != nil {
		return nil, err
	}
	plan.loadExercises(exercisesByPlan[plan.ID])

	return plan, nil
}

// Update writes the plan fields, guarded by the version the plan was loaded with.
func (r *Repo) Update(ctx context.Context, plan *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("plan.id", plan.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE workout_plan
		SET name = $3, description = $4, is_active = $5, updated_at = $6, version = version + 1
		WHERE id = $1 AND version = $2
	`,
		plan.ID, plan.Version,
		plan.Name, plan.Description, plan.IsActive, plan.UpdatedAt,
	)
	if pkg.IsUniqueViolationOn(err, planNameUniqueIndex) {
		return apperr.DuplicateName("a workout plan named %q already exists", plan.Name).Wrap(err)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, r.db, plan.ID)
	}

	plan.Version++
	return nil
}

func (r *Repo) Delete(ctx context.Context, plan *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("plan.id", plan.ID))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM workout_plan
		WHERE id = $1 AND version = $2
	`, plan.ID, plan.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, r.db, plan.ID)
	}
	return nil
}

func (r *Repo) CountActiveByUser(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.countactive")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout_plan
		WHERE user_id = $1 AND is_active
	`, userID).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// NameExists checks case-insensitively for a plan of the user with the given
// name. A non-empty excludeID ignores that plan.
func (r *Repo) NameExists(ctx context.Context, userID, name, excludeID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.nameexists")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM workout_plan
			WHERE user_id = $1
			  AND lower(name) = lower($2)
			  AND ($3::text = '' OR id::text <> $3)
		)
	`, userID, strings.TrimSpace(name), excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List returns one page of the user's plans (newest first) and the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []*Plan, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.Int("page", params.Page),
		attribute.Int("size", params.Size),
		attribute.Bool("include-inactive", params.IncludeInactive),
	)

	search := strings.TrimSpace(params.Search)
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout_plan
		WHERE user_id = $1
		  AND ($2::boolean OR is_active)
		  AND ($3::text = '' OR name ILIKE '%' || $3 || '%')
	`, params.UserID, params.IncludeInactive, search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+`
		FROM workout_plan
		WHERE user_id = $1
		  AND ($2::boolean OR is_active)
		  AND ($3::text = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5
	`,
		params.UserID, params.IncludeInactive, search,
		params.Size, params.Size*(params.Page-1),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	plans := make([]*Plan, 0, params.Size)
	ids := make([]string, 0, params.Size)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
		ids = append(ids, plan.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return plans, total, nil
	}

	exercisesByPlan, err := r.exercisesByPlan(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, plan := range plans {
		plan.loadExercises(exercisesByPlan[plan.ID])
	}

	return plans, total, nil
}

// AddExercise inserts the exercise the plan aggregate has just accepted. The
// plan version is bumped in the same transaction, so two concurrent adds
// cannot both pass the exercise limit.
func (r *Repo) AddExercise(ctx context.Context, plan *Plan, exercise Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.addexercise")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("plan.id", plan.ID))

	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.bumpVersion(ctx, tx, plan); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO exercise (`+exerciseColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			exercise.ID, plan.ID, exercise.Name, exercise.Description, exercise.TargetMuscleGroup,
			exercise.Sets, exercise.Reps, exercise.RestTimeSeconds, exercise.Order,
			exercise.CreatedAt, exercise.UpdatedAt,
		)
		if pkg.IsUniqueViolationOn(err, exerciseNameUniqueIndex) {
			return apperr.DuplicateName("an exercise named %q already exists in this plan", exercise.Name).Wrap(err)
		}
		return err
	})
	if err != nil {
		return err
	}

	plan.Version++
	return nil
}

// ExerciseNameExists checks case-insensitively for an exercise with the given name in the plan.
func (r *Repo) ExerciseNameExists(ctx context.Context, planID, name string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.exercisenameexists")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM exercise
			WHERE workout_plan_id = $1 AND lower(name) = lower($2)
		)
	`, planID, strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// SaveExercises persists the exercise order of the plan in one transaction.
// Exercises listed in removedIDs are deleted first.
func (r *Repo) SaveExercises(ctx context.Context, plan *Plan, removedIDs ...string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.saveexercises")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("plan.id", plan.ID))

	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.bumpVersion(ctx, tx, plan); err != nil {
			return err
		}

		if len(removedIDs) > 0 {
			if _, err := tx.Exec(ctx, `
				DELETE FROM exercise
				WHERE workout_plan_id = $1 AND id = ANY($2)
			`, plan.ID, removedIDs); err != nil {
				return fmt.Errorf("delete exercises: %w", err)
			}
		}

		batch := &pgx.Batch{}
		for _, e := range plan.exercises {
			batch.Queue(`
				UPDATE exercise
				SET exercise_order = $3, updated_at = $4
				WHERE id = $1 AND workout_plan_id = $2
			`, e.ID, plan.ID, e.Order, e.UpdatedAt)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return err
	}

	plan.Version++
	return nil
}

func (r *Repo) bumpVersion(ctx context.Context, tx pgx.Tx, plan *Plan) error {
	tag, err := tx.Exec(ctx, `
		UPDATE workout_plan
		SET updated_at = $3, version = version + 1
		WHERE id = $1 AND version = $2
	`, plan.ID, plan.Version, plan.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, tx, plan.ID)
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// missingOrStale tells a deleted plan apart from a version mismatch.
func (r *Repo) missingOrStale(ctx context.Context, q querier, planID string) error {
	var exists bool
	if err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM workout_plan WHERE id = $1)
	`, planID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrPlanNotFound
	}
	return apperr.ErrConcurrentUpdate
}

func (r *Repo) exercisesByPlan(ctx context.Context, planIDs []string) (map[string][]Exercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercise
		WHERE workout_plan_id = ANY($1)
		ORDER BY workout_plan_id, exercise_order
	`, planIDs)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	exercises := make(map[string][]Exercise, len(planIDs))
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.WorkoutPlanID, &e.Name, &e.Description, &e.TargetMuscleGroup,
			&e.Sets, &e.Reps, &e.RestTimeSeconds, &e.Order, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		exercises[e.WorkoutPlanID] = append(exercises[e.WorkoutPlanID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

func scanPlan(row pgx.Row) (*Plan, error) {
	plan := &Plan{}
	if err := row.Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.Description, &plan.IsActive,
		&plan.Version, &plan.CreatedAt, &plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return plan, nil
}
