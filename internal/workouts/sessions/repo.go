package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

const activeSessionUniqueIndex = "ux_workout_session_active_user"

var (
	ErrSessionNotFound     = apperr.NotFound("workout session not found")
	ErrNoActiveSession     = apperr.NotFound("no active workout session")
	ErrActiveSessionExists = apperr.Conflict("an active workout session already exists, complete or cancel it first")
)

const sessionColumns = `id, user_id, workout_plan_id, status, started_at, paused_at, resumed_at,
	completed_at, cancelled_at, total_duration_ms, notes, version, created_at, updated_at`

type HistoryParams struct {
	UserID string
	Since  time.Time
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts a new session. The partial unique index on active sessions
// rejects a second active session of the same user.
func (r *Repo) Create(ctx context.Context, session *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session.Version = 1
	_, err = r.db.Exec(ctx, `
		INSERT INTO workout_session (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		session.ID, session.UserID, session.WorkoutPlanID, session.Status, session.StartedAt,
		session.PausedAt, session.ResumedAt, session.CompletedAt, session.CancelledAt,
		session.TotalDurationMs, session.Notes, session.Version, session.CreatedAt, session.UpdatedAt,
	)
	if pkg.IsUniqueViolationOn(err, activeSessionUniqueIndex) {
		return ErrActiveSessionExists.Wrap(err)
	}
	return err
}

func (r *Repo) Get(ctx context.Context, id, userID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("session.id", id))

	session, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ActiveByUser returns ErrNoActiveSession when the user has no session in
// progress or paused.
func (r *Repo) ActiveByUser(ctx context.Context, userID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.activebyuser")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	session, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE user_id = $1 AND status IN ('IN_PROGRESS', 'PAUSED')
	`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *Repo) HasActiveForPlan(ctx context.Context, planID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.hasactiveforplan")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM workout_session
			WHERE workout_plan_id = $1 AND status IN ('IN_PROGRESS', 'PAUSED')
		)
	`, planID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update writes the state of the session, guarded by the version it was loaded with.
func (r *Repo) Update(ctx context.Context, session *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.String("session.status", string(session.Status)),
	)

	tag, err := r.db.Exec(ctx, `
		UPDATE workout_session
		SET status = $3, paused_at = $4, resumed_at = $5, completed_at = $6, cancelled_at = $7,
			total_duration_ms = $8, notes = $9, updated_at = $10, version = version + 1
		WHERE id = $1 AND version = $2
	`,
		session.ID, session.Version,
		session.Status, session.PausedAt, session.ResumedAt, session.CompletedAt, session.CancelledAt,
		session.TotalDurationMs, session.Notes, session.UpdatedAt,
	)
	if pkg.IsUniqueViolationOn(err, activeSessionUniqueIndex) {
		return ErrActiveSessionExists.Wrap(err)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM workout_session WHERE id = $1)
		`, session.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrSessionNotFound
		}
		return apperr.ErrConcurrentUpdate
	}

	session.Version++
	return nil
}

// History returns one page of the user's finished sessions started at or
// after Since (newest first), and the total count.
func (r *Repo) History(ctx context.Context, params HistoryParams) (_ []*Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.history")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout_session
		WHERE user_id = $1 AND status IN ('COMPLETED', 'CANCELLED') AND started_at >= $2
	`, params.UserID, params.Since).Scan(&total); err != nil {
		return nil, -1, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM workout_session
		WHERE user_id = $1 AND status IN ('COMPLETED', 'CANCELLED') AND started_at >= $2
		ORDER BY started_at DESC
		LIMIT $3 OFFSET $4
	`, params.UserID, params.Since, params.Size, (params.Page-1)*params.Size)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, -1, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	return sessions, total, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	if err := row.Scan(
		&s.ID, &s.UserID, &s.WorkoutPlanID, &s.Status, &s.StartedAt,
		&s.PausedAt, &s.ResumedAt, &s.CompletedAt, &s.CancelledAt,
		&s.TotalDurationMs, &s.Notes, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return s, nil
}
