package premium

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/workouts/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// LatestByUser returns the most recent subscription of the user, or nil when
// the user never subscribed.
func (r *Repo) LatestByUser(ctx context.Context, userID string) (_ *Subscription, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.premium.latestbyuser")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var sub Subscription
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, product_id, purchase_token, status, expiry_date, acknowledged, created_at, updated_at
		FROM subscription
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(
		&sub.ID, &sub.UserID, &sub.ProductID, &sub.PurchaseToken, &sub.Status,
		&sub.ExpiryDate, &sub.Acknowledged, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
