// Package credit implements the per-user daily credit ledger. Every user
// gets a fixed number of generations per calendar day; the balance refills
// the first time the user is touched on a new date and floors at zero.
package credit

import (
	"context"
	"sync"
	"time"

	"github.com/copycraft-ai/copycraft/internal/models"
	"go.uber.org/zap"
)

// DefaultDailyLimit is the number of generations granted per day when no
// override is configured.
const DefaultDailyLimit = 10

// Repository persists credit accounts. GetAccount returns (nil, nil) for a
// user that has never been seen.
type Repository interface {
	GetAccount(ctx context.Context, userID string) (*models.CreditAccount, error)
	PutAccount(ctx context.Context, acct *models.CreditAccount) error
}

// Ledger applies the daily-reset and decrement rules on top of a Repository.
// All read-modify-write cycles for a given user are serialized through a
// per-user mutex, so two concurrent decrements can never both observe the
// same stale balance.
type Ledger struct {
	repo       Repository
	dailyLimit int
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithDailyLimit overrides the per-day credit grant.
func WithDailyLimit(limit int) Option {
	return func(l *Ledger) { l.dailyLimit = limit }
}

// WithLocation sets the reference timezone used for the calendar-date
// comparison. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) { l.loc = loc }
}

// WithClock injects the time source, used by tests to simulate rollovers.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(repo Repository, logger *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		repo:       repo,
		dailyLimit: DefaultDailyLimit,
		loc:        time.UTC,
		now:        time.Now,
		logger:     logger,
		users:      make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DailyLimit reports the configured per-day grant.
func (l *Ledger) DailyLimit() int { return l.dailyLimit }

func (l *Ledger) userLock(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	mu, ok := l.users[userID]
	if !ok {
		mu = &sync.Mutex{}
		l.users[userID] = mu
	}
	return mu
}

func (l *Ledger) today() string {
	return l.now().In(l.loc).Format("2006-01-02")
}

// ensure loads the account, lazily creating it at the daily limit and
// applying the once-per-rollover reset. The reset compares calendar date
// strings, not elapsed time. Callers must hold the user lock.
func (l *Ledger) ensure(ctx context.Context, userID string) (*models.CreditAccount, error) {
	today := l.today()

	acct, err := l.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		acct = &models.CreditAccount{UserID: userID, Credits: l.dailyLimit, LastReset: today}
		if err := l.repo.PutAccount(ctx, acct); err != nil {
			return nil, err
		}
		return acct, nil
	}
	if acct.LastReset != today {
		l.logger.Debug("resetting daily credits",
			zap.String("userId", userID),
			zap.String("lastReset", acct.LastReset),
			zap.String("today", today))
		acct.Credits = l.dailyLimit
		acct.LastReset = today
		if err := l.repo.PutAccount(ctx, acct); err != nil {
			return nil, err
		}
	}
	return acct, nil
}

// Balance returns the user's current credits after applying the daily reset.
func (l *Ledger) Balance(ctx context.Context, userID string) (int, error) {
	mu := l.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	acct, err := l.ensure(ctx, userID)
	if err != nil {
		return 0, err
	}
	return acct.Credits, nil
}

// Consume deducts amount credits and returns the new balance. The balance
// never goes negative; consuming at zero is a no-op, not an error.
func (l *Ledger) Consume(ctx context.Context, userID string, amount int) (int, error) {
	mu := l.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	acct, err := l.ensure(ctx, userID)
	if err != nil {
		return 0, err
	}

	newCredits := acct.Credits - amount
	if newCredits < 0 {
		newCredits = 0
	}
	if newCredits != acct.Credits {
		acct.Credits = newCredits
		if err := l.repo.PutAccount(ctx, acct); err != nil {
			return 0, err
		}
	}
	return acct.Credits, nil
}
