package session

import (
	"context"
	"errors"
	"time"
)

// KeyLastActivity is the session field the activity tracker writes on every
// qualifying request.
const KeyLastActivity = "last_activity"

// LastActivityFormat keeps sub-second precision and the zone offset, so the
// enforcer never compares a naive timestamp against an aware clock.
const LastActivityFormat = time.RFC3339Nano

// Session identifies one authenticated browser session.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

// Store is the per-session key/value collaborator. The backend owns
// persistence and expiry-at-rest; the middleware only reads and writes fields.
type Store interface {
	Create(ctx context.Context, sess Session, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (Session, bool, error)
	Get(ctx context.Context, token, key string) (string, bool, error)
	Set(ctx context.Context, token, key, value string) error
	Flush(ctx context.Context, token string) error
}

var ErrSessionNotFound = errors.New("session not found")

type ctxKey string

const contextSessionKey ctxKey = "session"

func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextSessionKey, sess)
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextSessionKey).(Session)
	return sess, ok
}
