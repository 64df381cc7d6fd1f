package domain

import "context"

// Notifier is a best-effort side channel. Implementations may fail;
// the intake pipeline logs the failure and carries on.
type Notifier interface {
	Notify(ctx context.Context, reservation *Reservation) error
}
