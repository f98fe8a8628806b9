package premium

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPending  SubscriptionStatus = "pending"
)

// Subscription is a stored purchase of the premium product. Verifying it
// against the store happens elsewhere, this service only reads the outcome.
type Subscription struct {
	ID            string
	UserID        string
	ProductID     string
	PurchaseToken string
	Status        SubscriptionStatus
	ExpiryDate    time.Time
	Acknowledged  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionActive && s.ExpiryDate.After(now)
}
