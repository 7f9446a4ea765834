package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Manager owns session lifecycle: issuing on login, resolving on each
// request, destroying on logout or timeout.
type Manager struct {
	store  Store
	clock  clockwork.Clock
	cfg    internal.SessionConfig
	logger *slog.Logger
}

func NewManager(store Store, clock clockwork.Clock, cfg internal.SessionConfig, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
	}
}

func (m *Manager) Config() internal.SessionConfig {
	return m.cfg
}

func (m *Manager) Clock() clockwork.Clock {
	return m.clock
}

func (m *Manager) Store() Store {
	return m.store
}

// Create issues a fresh session for userID and sets the cookie. The session
// starts Active: last_activity is seeded immediately so the enforcer sees a
// full window on the next request.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, userID int64) (Session, error) {
	now := m.clock.Now()
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
	}

	if err := m.store.Create(ctx, sess, m.cfg.MaxLifetime); err != nil {
		return Session{}, err
	}
	if err := m.store.Set(ctx, sess.Token, KeyLastActivity, now.Format(LastActivityFormat)); err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.Info("session created", "user_id", userID)
	return sess, nil
}

// Resolve returns the session referenced by the request cookie, if any.
func (m *Manager) Resolve(r *http.Request) (Session, bool, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false, nil
	}

	sess, found, err := m.store.Lookup(r.Context(), cookie.Value)
	if err != nil {
		return Session{}, false, err
	}
	return sess, found, nil
}

// Destroy flushes all session state and expires the cookie. Used by logout
// and by the timeout enforcer.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, token string) error {
	if err := m.store.Flush(ctx, token); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
