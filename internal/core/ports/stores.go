package ports

import (
	"context"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// SessionStore persists per-browser sessions. Implementations must replace
// the user/token/refreshToken triple atomically: a reader never observes a
// user without its token or vice versa.
type SessionStore interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, sid string) (*domain.Session, error)
	// SaveAuth installs a full identity in one write.
	SaveAuth(ctx context.Context, sid string, user *domain.User, token, refreshToken string) error
	// SaveUser refreshes the cached user after revalidation, keeping tokens.
	SaveUser(ctx context.Context, sid string, user *domain.User) error
	// SaveToken swaps the access token after a transport-level refresh.
	SaveToken(ctx context.Context, sid, token string) error
	// ClearAuth drops user and tokens together, keeping the session id alive.
	ClearAuth(ctx context.Context, sid string) error
}

// WizardStore persists booking wizard state keyed by session id.
type WizardStore interface {
	Get(ctx context.Context, sid string) (*domain.WizardState, error)
	Save(ctx context.Context, sid string, state *domain.WizardState) error
	Delete(ctx context.Context, sid string) error
}

// CartCache holds the gateway's cached copy of the upstream cart.
type CartCache interface {
	Get(ctx context.Context, sid string) (*domain.Cart, error)
	Replace(ctx context.Context, sid string, cart *domain.Cart) error
	Clear(ctx context.Context, sid string) error
}

// LinkJobRepository is the durable ledger of guest-booking link jobs awaiting
// reconciliation.
type LinkJobRepository interface {
	Enqueue(ctx context.Context, job *domain.LinkJob) error
	Pending(ctx context.Context, limit int) ([]*domain.LinkJob, error)
	MarkDone(ctx context.Context, id string) error
	MarkAttempt(ctx context.Context, id string, attempts int, lastError string, failed bool) error
}

// Notifier is the outbound notification channel. Implementations deliver
// asynchronously; callers never block on or observe delivery failures.
type Notifier interface {
	Notify(n domain.Notification)
}
